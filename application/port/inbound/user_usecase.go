package inbound

import (
	"context"

	"github.com/mercato/mercato/domain/entity"
)

type ListUsersRequest struct {
	Skip     int
	Limit    int
	Role     string
	IsActive *bool
	Search   string
}

type UserListResponse struct {
	Users []*entity.User `json:"users"`
	Total int            `json:"total"`
	Skip  int            `json:"skip"`
	Limit int            `json:"limit"`
}

// UpdateUserRequest carries optional profile changes. Nil fields are left
// untouched. IsActive is honored only when the actor is an admin.
type UpdateUserRequest struct {
	Email    *string `json:"email"`
	Username *string `json:"username"`
	FullName *string `json:"full_name"`
	Password *string `json:"password"`
	IsActive *bool   `json:"is_active"`
}

type UserUseCase interface {
	List(ctx context.Context, req ListUsersRequest) (*UserListResponse, error)
	Get(ctx context.Context, id int64) (*entity.User, error)
	// Update applies changes to the target account. Non-admin actors may
	// only update themselves and may not change is_active.
	Update(ctx context.Context, targetID int64, actor *entity.User, req UpdateUserRequest) (*entity.User, error)
	UpdateRole(ctx context.Context, id int64, role entity.Role) (*entity.User, error)
	// Delete soft-deletes the target. Admins cannot delete themselves.
	Delete(ctx context.Context, targetID int64, actor *entity.User) error
	ChangePassword(ctx context.Context, user *entity.User, currentPassword, newPassword string) error
}
