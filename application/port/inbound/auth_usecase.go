package inbound

import (
	"context"

	"github.com/mercato/mercato/domain/entity"
)

type RegisterRequest struct {
	Email    string `json:"email"`
	Username string `json:"username"`
	FullName string `json:"full_name"`
	Password string `json:"password"`
}

// LoginRequest accepts either the account email or the username in the
// identifier field.
type LoginRequest struct {
	Identifier string `json:"username"`
	Password   string `json:"password"`
}

type TokenResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	TokenType    string `json:"token_type"`
	ExpiresIn    int    `json:"expires_in"`
}

type AuthUseCase interface {
	Register(ctx context.Context, req RegisterRequest) (*entity.User, error)
	Login(ctx context.Context, req LoginRequest) (*TokenResponse, error)
	// Refresh rotates the token pair: the supplied refresh token must match
	// the stored one, and the newly issued refresh token replaces it.
	Refresh(ctx context.Context, refreshToken string) (*TokenResponse, error)
	// Logout clears the stored refresh token. Idempotent.
	Logout(ctx context.Context, userID int64) error
}
