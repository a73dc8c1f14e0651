package order

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"storefront-be/internal/catalog"
	"storefront-be/internal/validate"
)

const (
	msgCartEmpty       = "Cart must be a non-empty array."
	msgProductIDNeeded = "Each cart item must have a productId."
	msgProductIDFormat = "Invalid product ID format"
	msgQuantity        = "Item quantity must be a number greater than 0."
)

type rawCartLine struct {
	ProductID *string         `json:"productId"`
	Quantity  json.RawMessage `json:"quantity"`
}

type cartEnvelope struct {
	Cart []rawCartLine `json:"cart"`
}

// ParseCart normalizes and validates a raw checkout payload. Both the bare
// array form and the {"cart":[...]} form are accepted. Every rule is
// evaluated; all violations come back together in one ValidationError.
// Pure: no store access, no side effects.
func ParseCart(body []byte) ([]CartLine, error) {
	raw, err := normalizeCart(body)
	if err != nil {
		return nil, err
	}

	var c validate.Collector
	if len(raw) == 0 {
		c.Add("cart", msgCartEmpty)
		return nil, c.Err()
	}

	lines := make([]CartLine, 0, len(raw))
	for i, item := range raw {
		line := CartLine{}

		switch {
		case item.ProductID == nil || strings.TrimSpace(*item.ProductID) == "":
			c.Add(fmt.Sprintf("cart[%d].productId", i), msgProductIDNeeded)
		case !catalog.IsValidID(strings.TrimSpace(*item.ProductID)):
			c.Add(fmt.Sprintf("cart[%d].productId", i), msgProductIDFormat)
		default:
			line.ProductID = strings.TrimSpace(*item.ProductID)
		}

		qty, ok := parseQuantity(item.Quantity)
		if !ok {
			c.Add(fmt.Sprintf("cart[%d].quantity", i), msgQuantity)
		} else {
			line.Quantity = qty
		}

		lines = append(lines, line)
	}

	if err := c.Err(); err != nil {
		return nil, err
	}

	return lines, nil
}

// parseQuantity accepts a JSON integer, or a string holding one, strictly
// greater than zero. Floats and anything else fail.
func parseQuantity(raw json.RawMessage) (int, bool) {
	s := strings.TrimSpace(string(raw))
	if s == "" || s == "null" {
		return 0, false
	}
	if len(s) >= 2 && s[0] == '"' && s[len(s)-1] == '"' {
		s = s[1 : len(s)-1]
	}
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil || n <= 0 {
		return 0, false
	}
	return int(n), true
}

// normalizeCart decodes either accepted body shape into the line slice,
// preserving submission order.
func normalizeCart(body []byte) ([]rawCartLine, error) {
	trimmed := bytes.TrimSpace(body)

	shapeErr := func() error {
		var c validate.Collector
		c.Add("cart", msgCartEmpty)
		return c.Err()
	}

	if len(trimmed) == 0 {
		return nil, shapeErr()
	}

	if trimmed[0] == '[' {
		var raw []rawCartLine
		if err := json.Unmarshal(trimmed, &raw); err != nil {
			return nil, shapeErr()
		}
		return raw, nil
	}

	var env cartEnvelope
	if err := json.Unmarshal(trimmed, &env); err != nil {
		return nil, shapeErr()
	}
	return env.Cart, nil
}
