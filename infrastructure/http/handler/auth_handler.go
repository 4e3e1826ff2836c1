package handler

import (
	"encoding/json"
	"net/http"

	"github.com/mercato/mercato/application/port/inbound"
	"github.com/mercato/mercato/infrastructure/http/middleware"
	"github.com/mercato/mercato/infrastructure/http/response"
	"github.com/mercato/mercato/infrastructure/http/validator"
	"github.com/mercato/mercato/infrastructure/service/logger"
)

type AuthHandler struct {
	authUseCase inbound.AuthUseCase
	logger      logger.Logger
}

func NewAuthHandler(authUseCase inbound.AuthUseCase, log logger.Logger) *AuthHandler {
	return &AuthHandler{
		authUseCase: authUseCase,
		logger:      log,
	}
}

func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req inbound.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}

	if !validator.ValidateEmail(req.Email) {
		response.UnprocessableEntity(w, "Invalid email address")
		return
	}
	if !validator.ValidateUsername(req.Username) {
		response.UnprocessableEntity(w, "Username must be 3-50 characters (letters, digits, '_', '.', '-')")
		return
	}
	if !validator.ValidateFullName(req.FullName) {
		response.UnprocessableEntity(w, "Full name must be 2-100 characters")
		return
	}
	if !validator.ValidatePassword(req.Password) {
		response.UnprocessableEntity(w, "Password must be 6-100 characters")
		return
	}

	user, err := h.authUseCase.Register(r.Context(), req)
	if err != nil {
		writeError(w, err)
		return
	}

	response.Success(w, http.StatusCreated, "Account registered", user)
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req inbound.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}

	if !validator.ValidateRequired(req.Identifier) || !validator.ValidateRequired(req.Password) {
		response.UnprocessableEntity(w, "Username and password are required")
		return
	}

	tokens, err := h.authUseCase.Login(r.Context(), req)
	if err != nil {
		writeError(w, err)
		return
	}

	response.Success(w, http.StatusOK, "Login successful", tokens)
}

type refreshRequest struct {
	RefreshToken string `json:"refresh_token"`
}

func (h *AuthHandler) Refresh(w http.ResponseWriter, r *http.Request) {
	var req refreshRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}

	if !validator.ValidateRequired(req.RefreshToken) {
		response.UnprocessableEntity(w, "Refresh token is required")
		return
	}

	tokens, err := h.authUseCase.Refresh(r.Context(), req.RefreshToken)
	if err != nil {
		writeError(w, err)
		return
	}

	response.Success(w, http.StatusOK, "Token refreshed", tokens)
}

func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	user := middleware.IdentityFrom(r.Context())
	if user == nil {
		response.Unauthorized(w, "Authentication required")
		return
	}

	if err := h.authUseCase.Logout(r.Context(), user.ID); err != nil {
		writeError(w, err)
		return
	}

	response.Success(w, http.StatusOK, "Logged out", nil)
}

// Me returns the authenticated account as resolved by the auth middleware.
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	user := middleware.IdentityFrom(r.Context())
	if user == nil {
		response.Unauthorized(w, "Authentication required")
		return
	}

	response.Success(w, http.StatusOK, "Current account", user)
}
