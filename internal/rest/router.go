package rest

import (
	"net/http"

	"storefront-be/internal/logger"
	"storefront-be/internal/metrics"
	"storefront-be/internal/middleware"
	"storefront-be/internal/user"

	"github.com/go-chi/chi/v5"
)

type Deps struct {
	Auth     *AuthHandler
	Products *ProductHandler
	Orders   *OrderHandler
	Reports  *ReportHandler
	Users    user.Repository
	Metrics  *metrics.Checkout
}

// NewRouter assembles the route table. Catalog reads are public; checkout
// needs any authenticated identity; catalog writes and reports need admin.
func NewRouter(d Deps) http.Handler {
	r := chi.NewRouter()

	r.Use(logger.RequestIDMiddleware)
	r.Use(logger.LoggingMiddleware)
	r.Use(middleware.RateLimitMiddleware)

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		respondSuccess(w, http.StatusOK, map[string]any{"health": "ok"})
	})

	r.Get("/metrics", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, d.Metrics.Snapshot())
	})

	r.Route("/auth", func(r chi.Router) {
		r.Post("/register", d.Auth.Register)
		r.Post("/login", d.Auth.Login)
	})

	requireAuth := middleware.RequireAuth(d.Users)

	r.Route("/products", func(r chi.Router) {
		r.Get("/", d.Products.List)
		r.Get("/{id}", d.Products.Get)

		r.Group(func(r chi.Router) {
			r.Use(requireAuth, middleware.RequireAdmin)
			r.Post("/", d.Products.Create)
			r.Put("/{id}", d.Products.Update)
			r.Delete("/{id}", d.Products.Delete)
		})
	})

	r.Route("/orders", func(r chi.Router) {
		r.Use(requireAuth)
		r.Post("/checkout", d.Orders.Checkout)
	})

	r.Route("/reports", func(r chi.Router) {
		r.Use(requireAuth, middleware.RequireAdmin)
		r.Get("/daily-revenue", d.Reports.DailyRevenue)
		r.Get("/category-sales", d.Reports.CategorySales)
	})

	return r
}
