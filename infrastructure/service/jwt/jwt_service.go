package jwt

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/mercato/mercato/application/port/outbound"
	"github.com/mercato/mercato/domain/apperror"
	"github.com/mercato/mercato/domain/entity"
	"github.com/mercato/mercato/domain/valueobject"
)

// Claims is the wire shape of both token kinds: identity claims plus the
// kind discriminator, with exp/iat in the registered claims.
type Claims struct {
	UserID   int64  `json:"user_id"`
	Username string `json:"username"`
	Role     string `json:"role"`
	TokenType string `json:"token_type"`
	jwt.RegisteredClaims
}

// JWTService signs and verifies HS256 tokens with a process-wide secret.
type JWTService struct {
	secret          []byte
	accessTokenTTL  time.Duration
	refreshTokenTTL time.Duration
}

func NewJWTService(secret string, accessTokenTTL, refreshTokenTTL time.Duration) (*JWTService, error) {
	if secret == "" {
		return nil, errors.New("jwt secret is required")
	}
	return &JWTService{
		secret:          []byte(secret),
		accessTokenTTL:  accessTokenTTL,
		refreshTokenTTL: refreshTokenTTL,
	}, nil
}

func (s *JWTService) IssueToken(user *entity.User, kind outbound.TokenKind) (string, error) {
	ttl := s.accessTokenTTL
	if kind == outbound.TokenKindRefresh {
		ttl = s.refreshTokenTTL
	}

	now := time.Now()
	claims := Claims{
		UserID:    user.ID,
		Username:  user.Username,
		Role:      user.Role.String(),
		TokenType: string(kind),
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign %s token: %w", kind, err)
	}
	return signed, nil
}

func (s *JWTService) IssuePair(user *entity.User) (*valueobject.TokenPair, error) {
	accessToken, err := s.IssueToken(user, outbound.TokenKindAccess)
	if err != nil {
		return nil, err
	}
	refreshToken, err := s.IssueToken(user, outbound.TokenKindRefresh)
	if err != nil {
		return nil, err
	}
	return valueobject.NewTokenPair(accessToken, refreshToken), nil
}

func (s *JWTService) VerifyToken(tokenString string) (*outbound.TokenClaims, error) {
	var claims Claims
	token, err := jwt.ParseWithClaims(tokenString, &claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.secret, nil
	}, jwt.WithValidMethods([]string{"HS256"}))

	if err != nil {
		return nil, mapValidationError(err)
	}
	if !token.Valid {
		return nil, apperror.ErrInvalidToken
	}

	role, ok := entity.ParseRole(claims.Role)
	if !ok {
		return nil, apperror.ErrInvalidToken
	}

	kind := outbound.TokenKind(claims.TokenType)
	if kind != outbound.TokenKindAccess && kind != outbound.TokenKindRefresh {
		return nil, apperror.ErrInvalidToken
	}

	return &outbound.TokenClaims{
		UserID:   claims.UserID,
		Username: claims.Username,
		Role:     role,
		Kind:     kind,
	}, nil
}

// mapValidationError preserves the malformed/expired/signature distinction
// for logging; the HTTP layer collapses all three to one generic message.
func mapValidationError(err error) error {
	switch {
	case errors.Is(err, jwt.ErrTokenMalformed):
		return apperror.ErrTokenMalformed
	case errors.Is(err, jwt.ErrTokenExpired):
		return apperror.ErrTokenExpired
	default:
		return apperror.ErrInvalidToken
	}
}
