package usecase

import (
	"context"

	"github.com/mercato/mercato/application/port/inbound"
	"github.com/mercato/mercato/application/port/outbound"
	"github.com/mercato/mercato/domain/apperror"
	"github.com/mercato/mercato/domain/entity"
	"github.com/mercato/mercato/infrastructure/service/logger"
)

// UserUseCase covers account management: listing, profile updates, role
// changes, soft deletion and password changes.
type UserUseCase struct {
	userRepo        outbound.UserRepository
	passwordService outbound.PasswordService
	logger          logger.Logger
}

func NewUserUseCase(
	userRepo outbound.UserRepository,
	passwordService outbound.PasswordService,
	log logger.Logger,
) inbound.UserUseCase {
	return &UserUseCase{
		userRepo:        userRepo,
		passwordService: passwordService,
		logger:          log,
	}
}

func (uc *UserUseCase) List(ctx context.Context, req inbound.ListUsersRequest) (*inbound.UserListResponse, error) {
	users, total, err := uc.userRepo.FindAll(ctx, req.Skip, req.Limit, outbound.UserFilters{
		Role:     req.Role,
		IsActive: req.IsActive,
		Search:   req.Search,
	})
	if err != nil {
		return nil, err
	}
	return &inbound.UserListResponse{
		Users: users,
		Total: total,
		Skip:  req.Skip,
		Limit: req.Limit,
	}, nil
}

func (uc *UserUseCase) Get(ctx context.Context, id int64) (*entity.User, error) {
	return uc.userRepo.FindByID(ctx, id)
}

func (uc *UserUseCase) Update(ctx context.Context, targetID int64, actor *entity.User, req inbound.UpdateUserRequest) (*entity.User, error) {
	if actor.ID != targetID && !actor.IsAdmin() {
		return nil, apperror.ErrForbidden
	}

	user, err := uc.userRepo.FindByID(ctx, targetID)
	if err != nil {
		return nil, err
	}

	if req.Email != nil {
		user.Email = *req.Email
	}
	if req.Username != nil {
		user.Username = *req.Username
	}
	if req.FullName != nil {
		user.FullName = *req.FullName
	}
	if req.Password != nil {
		hash, err := uc.passwordService.HashPassword(ctx, *req.Password)
		if err != nil {
			return nil, err
		}
		user.PasswordHash = hash
	}
	// Activation changes are an admin capability even on one's own account.
	if req.IsActive != nil && actor.IsAdmin() {
		user.IsActive = *req.IsActive
	}

	if err := uc.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

func (uc *UserUseCase) UpdateRole(ctx context.Context, id int64, role entity.Role) (*entity.User, error) {
	user, err := uc.userRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	user.Role = role
	if err := uc.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}

	uc.logger.Info(ctx, "user role updated", map[string]interface{}{
		"user_id": id,
		"role":    role.String(),
	})
	return user, nil
}

func (uc *UserUseCase) Delete(ctx context.Context, targetID int64, actor *entity.User) error {
	if actor.ID == targetID {
		return apperror.ErrSelfDeletion
	}

	if _, err := uc.userRepo.FindByID(ctx, targetID); err != nil {
		return err
	}

	if err := uc.userRepo.SetActive(ctx, targetID, false); err != nil {
		return err
	}

	uc.logger.Info(ctx, "user deactivated", map[string]interface{}{
		"user_id":  targetID,
		"actor_id": actor.ID,
	})
	return nil
}

func (uc *UserUseCase) ChangePassword(ctx context.Context, user *entity.User, currentPassword, newPassword string) error {
	ok, err := uc.passwordService.VerifyPassword(ctx, currentPassword, user.PasswordHash)
	if err != nil {
		return err
	}
	if !ok {
		return apperror.ErrWrongPassword
	}

	hash, err := uc.passwordService.HashPassword(ctx, newPassword)
	if err != nil {
		return err
	}

	user.PasswordHash = hash
	if err := uc.userRepo.Update(ctx, user); err != nil {
		return err
	}

	logger.LogAuthEvent(ctx, uc.logger, "password_change", user.ID, true, nil)
	return nil
}
