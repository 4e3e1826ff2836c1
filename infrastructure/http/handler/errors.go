package handler

import (
	"errors"
	"net/http"

	"github.com/mercato/mercato/domain/apperror"
	"github.com/mercato/mercato/infrastructure/http/response"
)

// writeError maps domain sentinels to transport responses. Credential and
// token failures collapse to generic 401 messages so nothing about the
// failure mode leaks; authorization failures stay distinguishable as 403.
func writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, apperror.ErrInvalidCredentials):
		response.Unauthorized(w, "Invalid credentials")
	case errors.Is(err, apperror.ErrTokenMalformed),
		errors.Is(err, apperror.ErrTokenExpired),
		errors.Is(err, apperror.ErrInvalidToken):
		response.Unauthorized(w, "Invalid or expired token")
	case errors.Is(err, apperror.ErrWrongTokenType):
		response.Unauthorized(w, "Wrong token type")
	case errors.Is(err, apperror.ErrRefreshTokenMismatch):
		response.Unauthorized(w, "Refresh token is no longer valid")
	case errors.Is(err, apperror.ErrUnauthenticated):
		response.Unauthorized(w, "Authentication required")
	case errors.Is(err, apperror.ErrAccountInactive):
		response.Forbidden(w, "Account is inactive")
	case errors.Is(err, apperror.ErrForbidden):
		response.Forbidden(w, "Insufficient permissions")
	case errors.Is(err, apperror.ErrSelfDeletion):
		response.Forbidden(w, "Cannot delete your own account")
	case errors.Is(err, apperror.ErrWrongPassword):
		response.BadRequest(w, "Current password is incorrect")
	case errors.Is(err, apperror.ErrEmailTaken):
		response.Conflict(w, "Email already registered")
	case errors.Is(err, apperror.ErrUsernameTaken):
		response.Conflict(w, "Username already taken")
	case errors.Is(err, apperror.ErrSKUTaken):
		response.Conflict(w, "SKU already exists")
	case errors.Is(err, apperror.ErrUserNotFound):
		response.NotFound(w, "User not found")
	case errors.Is(err, apperror.ErrProductNotFound):
		response.NotFound(w, "Product not found")
	default:
		response.InternalServerError(w, "Internal server error")
	}
}
