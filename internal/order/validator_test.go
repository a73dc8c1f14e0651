package order

import (
	"testing"

	"storefront-be/internal/validate"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	validID  = "64a0c1e2f3a4b5c6d7e8f901"
	validID2 = "64a0c1e2f3a4b5c6d7e8f902"
)

func violations(t *testing.T, err error) []validate.FieldViolation {
	t.Helper()
	var verr *validate.ValidationError
	require.ErrorAs(t, err, &verr)
	return verr.Violations
}

func TestParseCart_Shapes(t *testing.T) {
	t.Run("EnvelopeForm", func(t *testing.T) {
		lines, err := ParseCart([]byte(`{"cart":[{"productId":"` + validID + `","quantity":2}]}`))
		require.NoError(t, err)
		require.Len(t, lines, 1)
		assert.Equal(t, validID, lines[0].ProductID)
		assert.Equal(t, 2, lines[0].Quantity)
	})

	t.Run("BareArrayNormalized", func(t *testing.T) {
		lines, err := ParseCart([]byte(`[{"productId":"` + validID + `","quantity":1}]`))
		require.NoError(t, err)
		require.Len(t, lines, 1)
		assert.Equal(t, 1, lines[0].Quantity)
	})

	t.Run("PreservesSubmissionOrder", func(t *testing.T) {
		lines, err := ParseCart([]byte(`[
			{"productId":"` + validID + `","quantity":2},
			{"productId":"` + validID2 + `","quantity":1}
		]`))
		require.NoError(t, err)
		require.Len(t, lines, 2)
		assert.Equal(t, validID, lines[0].ProductID)
		assert.Equal(t, validID2, lines[1].ProductID)
	})
}

func TestParseCart_EmptyCart(t *testing.T) {
	cases := map[string]string{
		"EmptyArray":    `[]`,
		"EmptyEnvelope": `{"cart":[]}`,
		"MissingCart":   `{}`,
		"EmptyBody":     ``,
		"InvalidJSON":   `{"cart":`,
		"NonArrayCart":  `{"cart":"oops"}`,
	}

	for name, body := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := ParseCart([]byte(body))
			v := violations(t, err)
			require.Len(t, v, 1)
			assert.Equal(t, "Cart must be a non-empty array.", v[0].Msg)
			assert.Equal(t, "cart", v[0].Path)
		})
	}
}

func TestParseCart_ProductID(t *testing.T) {
	t.Run("MissingProductID", func(t *testing.T) {
		_, err := ParseCart([]byte(`[{"quantity":1}]`))
		v := violations(t, err)
		require.Len(t, v, 1)
		assert.Equal(t, "Each cart item must have a productId.", v[0].Msg)
		assert.Equal(t, "cart[0].productId", v[0].Path)
	})

	t.Run("BadFormat", func(t *testing.T) {
		_, err := ParseCart([]byte(`[{"productId":"short","quantity":1}]`))
		v := violations(t, err)
		require.Len(t, v, 1)
		assert.Equal(t, "Invalid product ID format", v[0].Msg)
	})
}

func TestParseCart_Quantity(t *testing.T) {
	t.Run("ZeroQuantity", func(t *testing.T) {
		_, err := ParseCart([]byte(`[{"productId":"` + validID + `","quantity":0}]`))
		v := violations(t, err)
		require.Len(t, v, 1)
		assert.Equal(t, "Item quantity must be a number greater than 0.", v[0].Msg)
		assert.Equal(t, "cart[0].quantity", v[0].Path)
	})

	t.Run("NegativeQuantity", func(t *testing.T) {
		_, err := ParseCart([]byte(`[{"productId":"` + validID + `","quantity":-3}]`))
		v := violations(t, err)
		require.Len(t, v, 1)
	})

	t.Run("FractionalQuantity", func(t *testing.T) {
		_, err := ParseCart([]byte(`[{"productId":"` + validID + `","quantity":1.5}]`))
		v := violations(t, err)
		require.Len(t, v, 1)
	})

	t.Run("MissingQuantity", func(t *testing.T) {
		_, err := ParseCart([]byte(`[{"productId":"` + validID + `"}]`))
		v := violations(t, err)
		require.Len(t, v, 1)
	})

	t.Run("NumericStringAccepted", func(t *testing.T) {
		lines, err := ParseCart([]byte(`[{"productId":"` + validID + `","quantity":"4"}]`))
		require.NoError(t, err)
		assert.Equal(t, 4, lines[0].Quantity)
	})
}

func TestParseCart_CollectsAllViolations(t *testing.T) {
	// Two bad lines: every violation is reported together, not fail-fast.
	_, err := ParseCart([]byte(`[
		{"productId":"bogus","quantity":0},
		{"quantity":2},
		{"productId":"` + validID + `","quantity":3}
	]`))

	v := violations(t, err)
	require.Len(t, v, 3)
	assert.Equal(t, "cart[0].productId", v[0].Path)
	assert.Equal(t, "cart[0].quantity", v[1].Path)
	assert.Equal(t, "cart[1].productId", v[2].Path)
}
