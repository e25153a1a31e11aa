package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/devconnect/api/internal/api/middleware"
	"github.com/devconnect/api/internal/api/types"
	"github.com/devconnect/api/internal/services"
)

type AuthHandler struct {
	auth     services.AuthService
	validate *validator.Validate
}

func NewAuthHandler(auth services.AuthService, v *validator.Validate) *AuthHandler {
	return &AuthHandler{auth: auth, validate: v}
}

// Register handles POST /api/users.
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req types.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeFieldErrors(w, types.ErrorsResponse{Errors: []types.FieldError{{Msg: "invalid json"}}})
		return
	}
	if err := h.validate.Struct(req); err != nil {
		writeFieldErrors(w, types.ValidationErrors(err, req.Messages()))
		return
	}

	tok, err := h.auth.Register(r.Context(), req.Name, req.Email, req.Password)
	if err != nil {
		writeServiceError(w, err, http.StatusBadRequest)
		return
	}
	writeJSON(w, http.StatusOK, types.TokenResponse{Token: tok})
}

// Login handles POST /api/auth.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req types.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeFieldErrors(w, types.ErrorsResponse{Errors: []types.FieldError{{Msg: "invalid json"}}})
		return
	}
	if err := h.validate.Struct(req); err != nil {
		writeFieldErrors(w, types.ValidationErrors(err, req.Messages()))
		return
	}

	tok, err := h.auth.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		writeServiceError(w, err, http.StatusBadRequest)
		return
	}
	writeJSON(w, http.StatusOK, types.TokenResponse{Token: tok})
}

// Current handles GET /api/auth, returning the caller's user record.
func (h *AuthHandler) Current(w http.ResponseWriter, r *http.Request) {
	uid, err := uuid.Parse(middleware.GetUserID(r.Context()))
	if err != nil {
		writeMsg(w, http.StatusUnauthorized, "Token is not valid")
		return
	}
	u, err := h.auth.CurrentUser(r.Context(), uid)
	if err != nil {
		writeServiceError(w, err, http.StatusBadRequest)
		return
	}
	writeJSON(w, http.StatusOK, u)
}
