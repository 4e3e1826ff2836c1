package usecase

import (
	"context"
	"fmt"

	"github.com/mercato/mercato/application/port/outbound"
	"github.com/mercato/mercato/domain/apperror"
	"github.com/mercato/mercato/domain/entity"
	"github.com/mercato/mercato/domain/valueobject"
	"github.com/mercato/mercato/infrastructure/service/logger"
)

type mockUserRepository struct {
	users  map[int64]*entity.User
	nextID int64
}

func newMockUserRepository() *mockUserRepository {
	return &mockUserRepository{
		users:  make(map[int64]*entity.User),
		nextID: 1,
	}
}

func (m *mockUserRepository) Create(ctx context.Context, user *entity.User) error {
	for _, existing := range m.users {
		if existing.Email == user.Email {
			return apperror.ErrEmailTaken
		}
		if existing.Username == user.Username {
			return apperror.ErrUsernameTaken
		}
	}
	user.ID = m.nextID
	m.nextID++
	m.users[user.ID] = user
	return nil
}

func (m *mockUserRepository) FindByID(ctx context.Context, id int64) (*entity.User, error) {
	if user, exists := m.users[id]; exists {
		copied := *user
		return &copied, nil
	}
	return nil, apperror.ErrUserNotFound
}

func (m *mockUserRepository) FindByIdentifier(ctx context.Context, identifier string) (*entity.User, error) {
	for _, user := range m.users {
		if user.Email == identifier || user.Username == identifier {
			copied := *user
			return &copied, nil
		}
	}
	return nil, apperror.ErrUserNotFound
}

func (m *mockUserRepository) Update(ctx context.Context, user *entity.User) error {
	if _, exists := m.users[user.ID]; !exists {
		return apperror.ErrUserNotFound
	}
	copied := *user
	m.users[user.ID] = &copied
	return nil
}

func (m *mockUserRepository) UpdateRefreshToken(ctx context.Context, userID int64, token *string) error {
	user, exists := m.users[userID]
	if !exists {
		return apperror.ErrUserNotFound
	}
	if token == nil {
		user.RefreshToken = nil
	} else {
		value := *token
		user.RefreshToken = &value
	}
	return nil
}

func (m *mockUserRepository) SetActive(ctx context.Context, userID int64, active bool) error {
	user, exists := m.users[userID]
	if !exists {
		return apperror.ErrUserNotFound
	}
	user.IsActive = active
	return nil
}

func (m *mockUserRepository) FindAll(ctx context.Context, offset, limit int, filters outbound.UserFilters) ([]*entity.User, int, error) {
	var users []*entity.User
	for _, user := range m.users {
		if filters.Role != "" && string(user.Role) != filters.Role {
			continue
		}
		if filters.IsActive != nil && user.IsActive != *filters.IsActive {
			continue
		}
		users = append(users, user)
	}
	return users, len(users), nil
}

// mockTokenService issues sequence-numbered fake tokens and remembers the
// claims behind each, so VerifyToken round-trips without real crypto.
type mockTokenService struct {
	counter int
	issued  map[string]outbound.TokenClaims
}

func newMockTokenService() *mockTokenService {
	return &mockTokenService{issued: make(map[string]outbound.TokenClaims)}
}

func (m *mockTokenService) IssueToken(user *entity.User, kind outbound.TokenKind) (string, error) {
	m.counter++
	token := fmt.Sprintf("mock-%s-token-%d", kind, m.counter)
	m.issued[token] = outbound.TokenClaims{
		UserID:   user.ID,
		Username: user.Username,
		Role:     user.Role,
		Kind:     kind,
	}
	return token, nil
}

func (m *mockTokenService) IssuePair(user *entity.User) (*valueobject.TokenPair, error) {
	access, err := m.IssueToken(user, outbound.TokenKindAccess)
	if err != nil {
		return nil, err
	}
	refresh, err := m.IssueToken(user, outbound.TokenKindRefresh)
	if err != nil {
		return nil, err
	}
	return valueobject.NewTokenPair(access, refresh), nil
}

func (m *mockTokenService) VerifyToken(token string) (*outbound.TokenClaims, error) {
	if claims, exists := m.issued[token]; exists {
		return &claims, nil
	}
	return nil, apperror.ErrInvalidToken
}

type mockPasswordService struct{}

func (m *mockPasswordService) HashPassword(ctx context.Context, password string) (string, error) {
	return "hashed-" + password, nil
}

func (m *mockPasswordService) VerifyPassword(ctx context.Context, password, hash string) (bool, error) {
	return hash == "hashed-"+password, nil
}

type testLogger struct{}

func (l *testLogger) Debug(ctx context.Context, message string, fields map[string]interface{}) {}
func (l *testLogger) Info(ctx context.Context, message string, fields map[string]interface{})  {}
func (l *testLogger) Warn(ctx context.Context, message string, fields map[string]interface{})  {}
func (l *testLogger) Error(ctx context.Context, message string, err error, fields map[string]interface{}) {
}
func (l *testLogger) WithFields(fields map[string]interface{}) logger.Logger { return l }

func refreshTokenOf(user *entity.User) string {
	if user.RefreshToken == nil {
		return ""
	}
	return *user.RefreshToken
}
