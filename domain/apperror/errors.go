// Package apperror defines the error taxonomy shared by use cases, storage
// adapters and the HTTP layer. Handlers translate these sentinels into
// transport status codes; nothing below the HTTP layer knows about status
// codes.
package apperror

import "errors"

var (
	// ErrInvalidCredentials covers both an unknown identifier and a wrong
	// password. The two cases are deliberately indistinguishable so the
	// login endpoint cannot be used for account enumeration.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrAccountInactive means the credentials were right but the account
	// has been deactivated (soft delete).
	ErrAccountInactive = errors.New("account is inactive")

	// Token verification failures. Callers surface all three as a generic
	// "invalid or expired token"; the distinction exists for logging.
	ErrTokenMalformed = errors.New("token is malformed")
	ErrTokenExpired   = errors.New("token has expired")
	ErrInvalidToken   = errors.New("invalid token")

	// ErrWrongTokenType is returned when an access token is presented to
	// the refresh endpoint or a refresh token to a protected endpoint.
	ErrWrongTokenType = errors.New("wrong token type")

	// ErrRefreshTokenMismatch means the token verified cryptographically
	// but no longer matches the value stored for the account: it was
	// superseded by rotation or cleared by logout.
	ErrRefreshTokenMismatch = errors.New("refresh token mismatch")

	ErrUnauthenticated = errors.New("authentication required")
	ErrForbidden       = errors.New("insufficient permissions")

	// ErrSelfDeletion guards the admin delete operation: an admin cannot
	// deactivate their own account through it.
	ErrSelfDeletion = errors.New("cannot delete own account")

	ErrWrongPassword = errors.New("current password is incorrect")

	ErrEmailTaken    = errors.New("email already registered")
	ErrUsernameTaken = errors.New("username already taken")
	ErrSKUTaken      = errors.New("sku already exists")

	ErrUserNotFound    = errors.New("user not found")
	ErrProductNotFound = errors.New("product not found")
)
