package rest

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"storefront-be/internal/catalog"
	"storefront-be/internal/logger"
	"storefront-be/internal/validate"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type ProductHandler struct {
	products catalog.Service
}

func NewProductHandler(products catalog.Service) *ProductHandler {
	return &ProductHandler{products: products}
}

func productNotFoundMessage(id string) string {
	return fmt.Sprintf("No product found with ID %s", id)
}

// POST /products
func (h *ProductHandler) Create(w http.ResponseWriter, r *http.Request) {
	log := logger.FromCtx(r.Context())

	var input catalog.ProductInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		respondFail(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	p, err := h.products.CreateProduct(r.Context(), input)
	if err != nil {
		var verr *validate.ValidationError
		switch {
		case errors.As(err, &verr):
			respondViolations(w, verr)
		case errors.Is(err, catalog.ErrSKUExists):
			respondFail(w, http.StatusBadRequest, catalog.ErrSKUExists.Error())
		default:
			log.Error("create product failed", zap.Error(err))
			respondServerError(w)
		}
		return
	}

	respondSuccess(w, http.StatusCreated, map[string]any{"product": p})
}

// PUT /products/{id}
func (h *ProductHandler) Update(w http.ResponseWriter, r *http.Request) {
	log := logger.FromCtx(r.Context())
	id := chi.URLParam(r, "id")

	var update catalog.ProductUpdate
	if err := json.NewDecoder(r.Body).Decode(&update); err != nil {
		respondFail(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	p, err := h.products.UpdateProduct(r.Context(), id, update)
	if err != nil {
		var verr *validate.ValidationError
		switch {
		case errors.As(err, &verr):
			respondViolations(w, verr)
		case errors.Is(err, catalog.ErrProductNotFound):
			respondFail(w, http.StatusNotFound, productNotFoundMessage(id))
		default:
			log.Error("update product failed", zap.String("id", id), zap.Error(err))
			respondServerError(w)
		}
		return
	}

	respondSuccess(w, http.StatusOK, map[string]any{"product": p})
}

// DELETE /products/{id}
func (h *ProductHandler) Delete(w http.ResponseWriter, r *http.Request) {
	log := logger.FromCtx(r.Context())
	id := chi.URLParam(r, "id")

	if err := h.products.DeleteProduct(r.Context(), id); err != nil {
		if errors.Is(err, catalog.ErrProductNotFound) {
			respondFail(w, http.StatusNotFound, productNotFoundMessage(id))
			return
		}
		log.Error("delete product failed", zap.String("id", id), zap.Error(err))
		respondServerError(w)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// GET /products/{id}
func (h *ProductHandler) Get(w http.ResponseWriter, r *http.Request) {
	log := logger.FromCtx(r.Context())
	id := chi.URLParam(r, "id")

	p, err := h.products.GetProduct(r.Context(), id)
	if err != nil {
		if errors.Is(err, catalog.ErrProductNotFound) {
			respondFail(w, http.StatusNotFound, productNotFoundMessage(id))
			return
		}
		log.Error("get product failed", zap.String("id", id), zap.Error(err))
		respondServerError(w)
		return
	}

	respondSuccess(w, http.StatusOK, map[string]any{"product": p})
}

// GET /products
func (h *ProductHandler) List(w http.ResponseWriter, r *http.Request) {
	log := logger.FromCtx(r.Context())

	query := r.URL.Query()
	q := catalog.ListQuery{
		Name:     query.Get("name"),
		Category: query.Get("category"),
		Sort:     query.Get("sort"),
	}
	q.Page, _ = strconv.Atoi(query.Get("page"))
	q.Limit, _ = strconv.Atoi(query.Get("limit"))

	result, err := h.products.ListProducts(r.Context(), q)
	if err != nil {
		log.Error("list products failed", zap.Error(err))
		respondServerError(w)
		return
	}

	respondSuccess(w, http.StatusOK, result)
}
