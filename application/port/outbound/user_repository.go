package outbound

import (
	"context"

	"github.com/mercato/mercato/domain/entity"
)

// UserFilters narrows user listings. Zero values mean "no filter";
// IsActive is a pointer so "only inactive" is expressible.
type UserFilters struct {
	Role     string
	IsActive *bool
	Search   string
}

// UserRepository is the account storage contract. Implementations map
// unique-constraint violations to apperror.ErrEmailTaken /
// apperror.ErrUsernameTaken and missing rows to apperror.ErrUserNotFound.
type UserRepository interface {
	Create(ctx context.Context, user *entity.User) error
	FindByID(ctx context.Context, id int64) (*entity.User, error)
	// FindByIdentifier matches the value against email or username,
	// both uniquely indexed.
	FindByIdentifier(ctx context.Context, identifier string) (*entity.User, error)
	Update(ctx context.Context, user *entity.User) error
	// UpdateRefreshToken overwrites the account's stored refresh token in a
	// single statement. Pass nil to clear it (logout). Concurrent writers
	// for the same account resolve last-write-wins.
	UpdateRefreshToken(ctx context.Context, userID int64, token *string) error
	SetActive(ctx context.Context, userID int64, active bool) error
	FindAll(ctx context.Context, offset, limit int, filters UserFilters) ([]*entity.User, int, error)
}
