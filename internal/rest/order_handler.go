package rest

import (
	"errors"
	"io"
	"net/http"

	"storefront-be/internal/logger"
	"storefront-be/internal/metrics"
	"storefront-be/internal/middleware"
	"storefront-be/internal/order"
	"storefront-be/internal/validate"

	"go.uber.org/zap"
)

// maxCheckoutBody caps the request body; a cart never legitimately
// approaches this.
const maxCheckoutBody = 1 << 20

type OrderHandler struct {
	checkout order.Service
	metrics  *metrics.Checkout
}

func NewOrderHandler(checkout order.Service, m *metrics.Checkout) *OrderHandler {
	return &OrderHandler{checkout: checkout, metrics: m}
}

// POST /orders/checkout
func (h *OrderHandler) Checkout(w http.ResponseWriter, r *http.Request) {
	log := logger.FromCtx(r.Context())
	h.metrics.Attempts.Inc()

	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		h.metrics.ClientRejected.Inc()
		respondFail(w, http.StatusUnauthorized, "You are not logged in. Please log in to get access.")
		return
	}

	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxCheckoutBody))
	if err != nil {
		h.metrics.ClientRejected.Inc()
		respondViolations(w, &validate.ValidationError{
			Violations: []validate.FieldViolation{{Msg: "Cart must be a non-empty array.", Path: "cart"}},
		})
		return
	}

	lines, err := order.ParseCart(body)
	if err != nil {
		h.metrics.ClientRejected.Inc()
		var verr *validate.ValidationError
		if errors.As(err, &verr) {
			respondViolations(w, verr)
			return
		}
		respondServerError(w)
		return
	}

	o, err := h.checkout.Checkout(r.Context(), userID, lines)
	if err != nil {
		var nfe *order.NotFoundError
		if errors.As(err, &nfe) {
			h.metrics.ClientRejected.Inc()
			respondFail(w, http.StatusNotFound, nfe.Error())
			return
		}

		h.metrics.Failed.Inc()
		log.Error("checkout failed", zap.String("user_id", userID), zap.Error(err))
		respondServerError(w)
		return
	}

	h.metrics.Committed.Inc()

	items := make([]map[string]any, 0, len(o.Items))
	for _, item := range o.Items {
		items = append(items, map[string]any{
			"id":              item.ID,
			"productId":       item.ProductID,
			"quantity":        item.Quantity,
			"priceAtPurchase": item.PriceAtPurchase.StringFixed(2),
		})
	}

	respondSuccess(w, http.StatusCreated, map[string]any{
		"order": map[string]any{
			"id":        o.ID,
			"userId":    o.UserID,
			"total":     o.Total.StringFixed(2),
			"createdAt": o.CreatedAt,
			"items":     items,
		},
	})
}
