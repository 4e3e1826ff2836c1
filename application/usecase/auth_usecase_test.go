package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/mercato/mercato/application/port/inbound"
	"github.com/mercato/mercato/application/port/outbound"
	"github.com/mercato/mercato/domain/apperror"
	"github.com/mercato/mercato/domain/entity"
)

func newAuthFixture() (inbound.AuthUseCase, *mockUserRepository, *mockTokenService) {
	userRepo := newMockUserRepository()
	tokenService := newMockTokenService()
	authUseCase := NewAuthUseCase(userRepo, tokenService, &mockPasswordService{}, &testLogger{}, 30*time.Minute)
	return authUseCase, userRepo, tokenService
}

func registerTestUser(t *testing.T, auth inbound.AuthUseCase) *entity.User {
	t.Helper()
	user, err := auth.Register(context.Background(), inbound.RegisterRequest{
		Email:    "test@example.com",
		Username: "tester",
		FullName: "Test User",
		Password: "password123",
	})
	if err != nil {
		t.Fatalf("Failed to register test user: %v", err)
	}
	return user
}

func TestAuthUseCaseRegister(t *testing.T) {
	ctx := context.Background()
	auth, userRepo, _ := newAuthFixture()

	t.Run("Success", func(t *testing.T) {
		user := registerTestUser(t, auth)
		if user.ID == 0 {
			t.Error("Registered user should have an ID")
		}
		if user.Role != entity.RoleUser {
			t.Errorf("Expected role 'user', got '%s'", user.Role)
		}
		if !user.IsActive {
			t.Error("New account should be active")
		}
		if user.PasswordHash == "password123" {
			t.Error("Password should be stored hashed")
		}
	})

	t.Run("DuplicateEmail", func(t *testing.T) {
		_, err := auth.Register(ctx, inbound.RegisterRequest{
			Email:    "test@example.com",
			Username: "someone-else",
			FullName: "Someone Else",
			Password: "password123",
		})
		if !errors.Is(err, apperror.ErrEmailTaken) {
			t.Errorf("Expected ErrEmailTaken, got %v", err)
		}
	})

	t.Run("DuplicateUsername", func(t *testing.T) {
		_, err := auth.Register(ctx, inbound.RegisterRequest{
			Email:    "other@example.com",
			Username: "tester",
			FullName: "Someone Else",
			Password: "password123",
		})
		if !errors.Is(err, apperror.ErrUsernameTaken) {
			t.Errorf("Expected ErrUsernameTaken, got %v", err)
		}
		if len(userRepo.users) != 1 {
			t.Errorf("Expected 1 stored user, got %d", len(userRepo.users))
		}
	})
}

func TestAuthUseCaseLogin(t *testing.T) {
	ctx := context.Background()
	auth, userRepo, _ := newAuthFixture()
	user := registerTestUser(t, auth)

	t.Run("ByUsername", func(t *testing.T) {
		resp, err := auth.Login(ctx, inbound.LoginRequest{Identifier: "tester", Password: "password123"})
		if err != nil {
			t.Fatalf("Login should succeed: %v", err)
		}
		if resp.AccessToken == "" || resp.RefreshToken == "" {
			t.Error("Token pair should not be empty")
		}
		if resp.TokenType != "bearer" {
			t.Errorf("Expected token type 'bearer', got '%s'", resp.TokenType)
		}
		if resp.ExpiresIn != 1800 {
			t.Errorf("Expected expires_in 1800, got %d", resp.ExpiresIn)
		}
		if refreshTokenOf(userRepo.users[user.ID]) != resp.RefreshToken {
			t.Error("Stored refresh token should match the issued one")
		}
	})

	t.Run("ByEmail", func(t *testing.T) {
		if _, err := auth.Login(ctx, inbound.LoginRequest{Identifier: "test@example.com", Password: "password123"}); err != nil {
			t.Errorf("Login by email should succeed: %v", err)
		}
	})

	t.Run("NewLoginReplacesStoredRefreshToken", func(t *testing.T) {
		first, err := auth.Login(ctx, inbound.LoginRequest{Identifier: "tester", Password: "password123"})
		if err != nil {
			t.Fatalf("Login should succeed: %v", err)
		}
		second, err := auth.Login(ctx, inbound.LoginRequest{Identifier: "tester", Password: "password123"})
		if err != nil {
			t.Fatalf("Login should succeed: %v", err)
		}
		stored := refreshTokenOf(userRepo.users[user.ID])
		if stored != second.RefreshToken {
			t.Error("Stored refresh token should be the most recent one")
		}
		if stored == first.RefreshToken {
			t.Error("Earlier refresh token should no longer be on record")
		}
	})

	t.Run("WrongPassword", func(t *testing.T) {
		_, err := auth.Login(ctx, inbound.LoginRequest{Identifier: "tester", Password: "wrong"})
		if !errors.Is(err, apperror.ErrInvalidCredentials) {
			t.Errorf("Expected ErrInvalidCredentials, got %v", err)
		}
	})

	t.Run("UnknownIdentifierSameError", func(t *testing.T) {
		_, err := auth.Login(ctx, inbound.LoginRequest{Identifier: "nobody", Password: "password123"})
		if !errors.Is(err, apperror.ErrInvalidCredentials) {
			t.Errorf("Expected ErrInvalidCredentials, got %v", err)
		}
	})

	t.Run("InactiveAccount", func(t *testing.T) {
		userRepo.users[user.ID].IsActive = false
		defer func() { userRepo.users[user.ID].IsActive = true }()

		_, err := auth.Login(ctx, inbound.LoginRequest{Identifier: "tester", Password: "password123"})
		if !errors.Is(err, apperror.ErrAccountInactive) {
			t.Errorf("Expected ErrAccountInactive, got %v", err)
		}
	})
}

func TestAuthUseCaseRefresh(t *testing.T) {
	ctx := context.Background()

	t.Run("RotatesTokenPair", func(t *testing.T) {
		auth, userRepo, _ := newAuthFixture()
		user := registerTestUser(t, auth)
		login, err := auth.Login(ctx, inbound.LoginRequest{Identifier: "tester", Password: "password123"})
		if err != nil {
			t.Fatalf("Login should succeed: %v", err)
		}

		refreshed, err := auth.Refresh(ctx, login.RefreshToken)
		if err != nil {
			t.Fatalf("Refresh should succeed: %v", err)
		}
		if refreshed.RefreshToken == login.RefreshToken {
			t.Error("Refresh should issue a new refresh token")
		}
		if refreshTokenOf(userRepo.users[user.ID]) != refreshed.RefreshToken {
			t.Error("Stored refresh token should be the rotated one")
		}

		// The superseded token no longer matches the stored value.
		_, err = auth.Refresh(ctx, login.RefreshToken)
		if !errors.Is(err, apperror.ErrRefreshTokenMismatch) {
			t.Errorf("Old refresh token should be rejected, got %v", err)
		}

		// The rotated token still works.
		if _, err := auth.Refresh(ctx, refreshed.RefreshToken); err != nil {
			t.Errorf("Rotated refresh token should work: %v", err)
		}
	})

	t.Run("AccessTokenRejected", func(t *testing.T) {
		auth, _, _ := newAuthFixture()
		registerTestUser(t, auth)
		login, err := auth.Login(ctx, inbound.LoginRequest{Identifier: "tester", Password: "password123"})
		if err != nil {
			t.Fatalf("Login should succeed: %v", err)
		}

		_, err = auth.Refresh(ctx, login.AccessToken)
		if !errors.Is(err, apperror.ErrWrongTokenType) {
			t.Errorf("Expected ErrWrongTokenType, got %v", err)
		}
	})

	t.Run("UnknownToken", func(t *testing.T) {
		auth, _, _ := newAuthFixture()
		_, err := auth.Refresh(ctx, "garbage")
		if !errors.Is(err, apperror.ErrInvalidToken) {
			t.Errorf("Expected ErrInvalidToken, got %v", err)
		}
	})

	t.Run("DeletedAccount", func(t *testing.T) {
		auth, userRepo, _ := newAuthFixture()
		user := registerTestUser(t, auth)
		login, err := auth.Login(ctx, inbound.LoginRequest{Identifier: "tester", Password: "password123"})
		if err != nil {
			t.Fatalf("Login should succeed: %v", err)
		}

		delete(userRepo.users, user.ID)

		_, err = auth.Refresh(ctx, login.RefreshToken)
		if !errors.Is(err, apperror.ErrInvalidToken) {
			t.Errorf("Expected ErrInvalidToken, got %v", err)
		}
	})

	t.Run("InactiveAccount", func(t *testing.T) {
		auth, userRepo, _ := newAuthFixture()
		user := registerTestUser(t, auth)
		login, err := auth.Login(ctx, inbound.LoginRequest{Identifier: "tester", Password: "password123"})
		if err != nil {
			t.Fatalf("Login should succeed: %v", err)
		}

		userRepo.users[user.ID].IsActive = false

		_, err = auth.Refresh(ctx, login.RefreshToken)
		if !errors.Is(err, apperror.ErrAccountInactive) {
			t.Errorf("Expected ErrAccountInactive, got %v", err)
		}
	})
}

func TestAuthUseCaseLogout(t *testing.T) {
	ctx := context.Background()
	auth, userRepo, _ := newAuthFixture()
	user := registerTestUser(t, auth)

	login, err := auth.Login(ctx, inbound.LoginRequest{Identifier: "tester", Password: "password123"})
	if err != nil {
		t.Fatalf("Login should succeed: %v", err)
	}

	if err := auth.Logout(ctx, user.ID); err != nil {
		t.Fatalf("Logout should succeed: %v", err)
	}
	if userRepo.users[user.ID].RefreshToken != nil {
		t.Error("Logout should clear the stored refresh token")
	}

	// A refresh token from before logout is dead even though unexpired.
	_, err = auth.Refresh(ctx, login.RefreshToken)
	if !errors.Is(err, apperror.ErrRefreshTokenMismatch) {
		t.Errorf("Refresh after logout should be rejected, got %v", err)
	}

	// Repeating logout is a no-op, not an error.
	if err := auth.Logout(ctx, user.ID); err != nil {
		t.Errorf("Repeated logout should succeed: %v", err)
	}
}

var _ outbound.TokenService = (*mockTokenService)(nil)
var _ outbound.UserRepository = (*mockUserRepository)(nil)
var _ outbound.PasswordService = (*mockPasswordService)(nil)
