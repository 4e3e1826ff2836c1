package outbound

import (
	"github.com/mercato/mercato/domain/entity"
	"github.com/mercato/mercato/domain/valueobject"
)

// TokenKind discriminates access from refresh tokens so neither can be
// used where the other is expected.
type TokenKind string

const (
	TokenKindAccess  TokenKind = "access"
	TokenKindRefresh TokenKind = "refresh"
)

// TokenClaims is the identity carried inside a verified token.
type TokenClaims struct {
	UserID   int64
	Username string
	Role     entity.Role
	Kind     TokenKind
}

// TokenService signs and verifies bearer tokens. Verification errors are
// apperror sentinels: ErrTokenMalformed, ErrTokenExpired or ErrInvalidToken
// (signature mismatch and everything else). Verification is stateless; the
// refresh flow additionally checks the stored per-account token.
type TokenService interface {
	IssueToken(user *entity.User, kind TokenKind) (string, error)
	// IssuePair issues an access and a refresh token with identical
	// identity claims.
	IssuePair(user *entity.User) (*valueobject.TokenPair, error)
	VerifyToken(token string) (*TokenClaims, error)
}
