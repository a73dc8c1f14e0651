package rest

import (
	"encoding/json"
	"errors"
	"net/http"

	"storefront-be/internal/logger"
	"storefront-be/internal/user"
	"storefront-be/internal/validate"

	"go.uber.org/zap"
)

type AuthHandler struct {
	users user.Service
}

func NewAuthHandler(users user.Service) *AuthHandler {
	return &AuthHandler{users: users}
}

// POST /auth/register
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	log := logger.FromCtx(r.Context())

	var input user.RegisterInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		respondFail(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	token, u, err := h.users.Register(r.Context(), input)
	if err != nil {
		var verr *validate.ValidationError
		switch {
		case errors.As(err, &verr):
			respondViolations(w, verr)
		case errors.Is(err, user.ErrEmailExists):
			respondFail(w, http.StatusBadRequest, user.ErrEmailExists.Error())
		default:
			log.Error("register failed", zap.Error(err))
			respondServerError(w)
		}
		return
	}

	respondAuth(w, http.StatusCreated, token, map[string]any{"user": u})
}

// POST /auth/login
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	log := logger.FromCtx(r.Context())

	var input user.LoginInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		respondFail(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	token, u, err := h.users.Login(r.Context(), input)
	if err != nil {
		var verr *validate.ValidationError
		switch {
		case errors.As(err, &verr):
			respondViolations(w, verr)
		case errors.Is(err, user.ErrInvalidCredentials):
			respondFail(w, http.StatusUnauthorized, user.ErrInvalidCredentials.Error())
		default:
			log.Error("login failed", zap.Error(err))
			respondServerError(w)
		}
		return
	}

	respondAuth(w, http.StatusOK, token, map[string]any{"user": u})
}
