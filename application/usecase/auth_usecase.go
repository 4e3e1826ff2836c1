package usecase

import (
	"context"
	"errors"
	"time"

	"github.com/mercato/mercato/application/port/inbound"
	"github.com/mercato/mercato/application/port/outbound"
	"github.com/mercato/mercato/domain/apperror"
	"github.com/mercato/mercato/domain/entity"
	"github.com/mercato/mercato/infrastructure/service/logger"
)

// AuthUseCase implements registration, login, refresh rotation and logout.
type AuthUseCase struct {
	userRepo        outbound.UserRepository
	tokenService    outbound.TokenService
	passwordService outbound.PasswordService
	logger          logger.Logger
	accessTokenTTL  time.Duration
}

func NewAuthUseCase(
	userRepo outbound.UserRepository,
	tokenService outbound.TokenService,
	passwordService outbound.PasswordService,
	log logger.Logger,
	accessTokenTTL time.Duration,
) inbound.AuthUseCase {
	return &AuthUseCase{
		userRepo:        userRepo,
		tokenService:    tokenService,
		passwordService: passwordService,
		logger:          log,
		accessTokenTTL:  accessTokenTTL,
	}
}

func (uc *AuthUseCase) Register(ctx context.Context, req inbound.RegisterRequest) (*entity.User, error) {
	hash, err := uc.passwordService.HashPassword(ctx, req.Password)
	if err != nil {
		return nil, err
	}

	user := entity.NewUser(req.Email, req.Username, req.FullName, hash)
	if err := uc.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}

	logger.LogAuthEvent(ctx, uc.logger, "register", user.ID, true, map[string]interface{}{
		"username": user.Username,
	})
	return user, nil
}

func (uc *AuthUseCase) Login(ctx context.Context, req inbound.LoginRequest) (*inbound.TokenResponse, error) {
	user, err := uc.authenticate(ctx, req.Identifier, req.Password)
	if err != nil {
		logger.LogAuthEvent(ctx, uc.logger, "login", 0, false, map[string]interface{}{
			"identifier": req.Identifier,
		})
		return nil, err
	}

	pair, err := uc.tokenService.IssuePair(user)
	if err != nil {
		return nil, err
	}

	// Overwrites any previous refresh token: a prior session's refresh
	// capability is implicitly invalidated here.
	if err := uc.userRepo.UpdateRefreshToken(ctx, user.ID, &pair.RefreshToken); err != nil {
		return nil, err
	}

	logger.LogAuthEvent(ctx, uc.logger, "login", user.ID, true, nil)
	return &inbound.TokenResponse{
		AccessToken:  pair.AccessToken,
		RefreshToken: pair.RefreshToken,
		TokenType:    "bearer",
		ExpiresIn:    int(uc.accessTokenTTL.Seconds()),
	}, nil
}

// authenticate resolves the identifier against email or username and checks
// the password. Unknown identifier and wrong password produce the same
// error; the active check runs only after the password matched.
func (uc *AuthUseCase) authenticate(ctx context.Context, identifier, password string) (*entity.User, error) {
	user, err := uc.userRepo.FindByIdentifier(ctx, identifier)
	if err != nil {
		if errors.Is(err, apperror.ErrUserNotFound) {
			return nil, apperror.ErrInvalidCredentials
		}
		return nil, err
	}

	ok, err := uc.passwordService.VerifyPassword(ctx, password, user.PasswordHash)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, apperror.ErrInvalidCredentials
	}

	if !user.IsActive {
		return nil, apperror.ErrAccountInactive
	}
	return user, nil
}

func (uc *AuthUseCase) Refresh(ctx context.Context, refreshToken string) (*inbound.TokenResponse, error) {
	claims, err := uc.tokenService.VerifyToken(refreshToken)
	if err != nil {
		logger.LogAuthEvent(ctx, uc.logger, "refresh", 0, false, map[string]interface{}{
			"reason": err.Error(),
		})
		return nil, err
	}

	if claims.Kind != outbound.TokenKindRefresh {
		return nil, apperror.ErrWrongTokenType
	}

	user, err := uc.userRepo.FindByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, apperror.ErrUserNotFound) {
			return nil, apperror.ErrInvalidToken
		}
		return nil, err
	}
	if !user.IsActive {
		return nil, apperror.ErrAccountInactive
	}

	// The token must be the one currently on record. A nil stored value
	// (logout) or a different value (rotation already happened) both mean
	// this token has been superseded.
	if user.RefreshToken == nil || *user.RefreshToken != refreshToken {
		logger.LogAuthEvent(ctx, uc.logger, "refresh", user.ID, false, map[string]interface{}{
			"reason": "stored token mismatch",
		})
		return nil, apperror.ErrRefreshTokenMismatch
	}

	pair, err := uc.tokenService.IssuePair(user)
	if err != nil {
		return nil, err
	}

	// Rotation: the old refresh token becomes unusable even though it has
	// not expired.
	if err := uc.userRepo.UpdateRefreshToken(ctx, user.ID, &pair.RefreshToken); err != nil {
		return nil, err
	}

	logger.LogAuthEvent(ctx, uc.logger, "refresh", user.ID, true, nil)
	return &inbound.TokenResponse{
		AccessToken:  pair.AccessToken,
		RefreshToken: pair.RefreshToken,
		TokenType:    "bearer",
		ExpiresIn:    int(uc.accessTokenTTL.Seconds()),
	}, nil
}

func (uc *AuthUseCase) Logout(ctx context.Context, userID int64) error {
	if err := uc.userRepo.UpdateRefreshToken(ctx, userID, nil); err != nil {
		return err
	}
	logger.LogAuthEvent(ctx, uc.logger, "logout", userID, true, nil)
	return nil
}
