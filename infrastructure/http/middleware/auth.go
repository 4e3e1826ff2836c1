package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/mercato/mercato/application/port/outbound"
	"github.com/mercato/mercato/domain/entity"
	"github.com/mercato/mercato/infrastructure/http/response"
)

type contextKey string

const identityKey contextKey = "auth_identity"

// AuthMiddleware guards endpoints with bearer tokens. The pipeline per
// request: extract bearer → verify signature/expiry → require access kind →
// resolve the account → require active. Verification failures surface as a
// single generic 401 message; only an inactive account yields 403.
type AuthMiddleware struct {
	tokenService outbound.TokenService
	userRepo     outbound.UserRepository
}

func NewAuthMiddleware(tokenService outbound.TokenService, userRepo outbound.UserRepository) *AuthMiddleware {
	return &AuthMiddleware{
		tokenService: tokenService,
		userRepo:     userRepo,
	}
}

func (m *AuthMiddleware) RequireAuth(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user, status, message := m.resolve(r)
		if user == nil {
			if status == http.StatusForbidden {
				response.Forbidden(w, message)
			} else {
				response.Unauthorized(w, message)
			}
			return
		}

		ctx := context.WithValue(r.Context(), identityKey, user)
		next.ServeHTTP(w, r.WithContext(ctx))
	}
}

// OptionalAuth runs the same pipeline but degrades every failure to "no
// identity" instead of rejecting; used by endpoints whose behavior merely
// changes for logged-in callers.
func (m *AuthMiddleware) OptionalAuth(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user, _, _ := m.resolve(r)
		if user == nil {
			next.ServeHTTP(w, r)
			return
		}

		ctx := context.WithValue(r.Context(), identityKey, user)
		next.ServeHTTP(w, r.WithContext(ctx))
	}
}

// RequireRole gates an already-authenticated request on a role value.
// Parametrized by data so new roles need no new middleware.
func (m *AuthMiddleware) RequireRole(role entity.Role) func(http.HandlerFunc) http.HandlerFunc {
	return func(next http.HandlerFunc) http.HandlerFunc {
		return m.RequireAuth(func(w http.ResponseWriter, r *http.Request) {
			user := IdentityFrom(r.Context())
			if user == nil || user.Role != role {
				response.Forbidden(w, "Insufficient permissions")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func (m *AuthMiddleware) RequireAdmin(next http.HandlerFunc) http.HandlerFunc {
	return m.RequireRole(entity.RoleAdmin)(next)
}

// resolve walks the guard pipeline. A nil user comes back with the HTTP
// status and message the caller should reject with.
func (m *AuthMiddleware) resolve(r *http.Request) (*entity.User, int, string) {
	token, ok := bearerToken(r)
	if !ok {
		return nil, http.StatusUnauthorized, "Authorization header required"
	}

	claims, err := m.tokenService.VerifyToken(token)
	if err != nil {
		return nil, http.StatusUnauthorized, "Invalid or expired token"
	}

	if claims.Kind != outbound.TokenKindAccess {
		return nil, http.StatusUnauthorized, "Wrong token type"
	}

	user, err := m.userRepo.FindByID(r.Context(), claims.UserID)
	if err != nil {
		return nil, http.StatusUnauthorized, "Invalid or expired token"
	}

	if !user.IsActive {
		return nil, http.StatusForbidden, "Account is inactive"
	}

	return user, 0, ""
}

func bearerToken(r *http.Request) (string, bool) {
	authHeader := r.Header.Get("Authorization")
	if authHeader == "" {
		return "", false
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || parts[1] == "" {
		return "", false
	}
	return parts[1], true
}

// IdentityFrom returns the authenticated account bound to the request, or
// nil when the request carries no identity.
func IdentityFrom(ctx context.Context) *entity.User {
	if user, ok := ctx.Value(identityKey).(*entity.User); ok {
		return user
	}
	return nil
}
