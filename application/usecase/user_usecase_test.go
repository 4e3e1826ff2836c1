package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/mercato/mercato/application/port/inbound"
	"github.com/mercato/mercato/domain/apperror"
	"github.com/mercato/mercato/domain/entity"
)

func newUserFixture(t *testing.T) (inbound.UserUseCase, *mockUserRepository, *entity.User, *entity.User) {
	t.Helper()
	userRepo := newMockUserRepository()
	uc := NewUserUseCase(userRepo, &mockPasswordService{}, &testLogger{})

	admin := entity.NewUser("admin@example.com", "admin", "Admin", "hashed-adminpass")
	admin.Role = entity.RoleAdmin
	if err := userRepo.Create(context.Background(), admin); err != nil {
		t.Fatalf("Failed to create admin: %v", err)
	}

	regular := entity.NewUser("user@example.com", "regular", "Regular User", "hashed-userpass")
	if err := userRepo.Create(context.Background(), regular); err != nil {
		t.Fatalf("Failed to create user: %v", err)
	}

	return uc, userRepo, admin, regular
}

func strPtr(s string) *string { return &s }
func boolPtr(b bool) *bool    { return &b }

func TestUserUseCaseUpdate(t *testing.T) {
	ctx := context.Background()

	t.Run("SelfUpdate", func(t *testing.T) {
		uc, _, _, regular := newUserFixture(t)

		updated, err := uc.Update(ctx, regular.ID, regular, inbound.UpdateUserRequest{
			FullName: strPtr("New Name"),
		})
		if err != nil {
			t.Fatalf("Self update should succeed: %v", err)
		}
		if updated.FullName != "New Name" {
			t.Errorf("Expected full name 'New Name', got '%s'", updated.FullName)
		}
		if updated.Email != "user@example.com" {
			t.Error("Unset fields should be left untouched")
		}
	})

	t.Run("NonAdminCannotUpdateOthers", func(t *testing.T) {
		uc, _, admin, regular := newUserFixture(t)

		_, err := uc.Update(ctx, admin.ID, regular, inbound.UpdateUserRequest{
			FullName: strPtr("Hacked"),
		})
		if !errors.Is(err, apperror.ErrForbidden) {
			t.Errorf("Expected ErrForbidden, got %v", err)
		}
	})

	t.Run("AdminCanUpdateOthers", func(t *testing.T) {
		uc, _, admin, regular := newUserFixture(t)

		updated, err := uc.Update(ctx, regular.ID, admin, inbound.UpdateUserRequest{
			IsActive: boolPtr(false),
		})
		if err != nil {
			t.Fatalf("Admin update should succeed: %v", err)
		}
		if updated.IsActive {
			t.Error("Admin should be able to deactivate an account")
		}
	})

	t.Run("NonAdminCannotChangeIsActive", func(t *testing.T) {
		uc, userRepo, _, regular := newUserFixture(t)

		updated, err := uc.Update(ctx, regular.ID, regular, inbound.UpdateUserRequest{
			IsActive: boolPtr(false),
			FullName: strPtr("Still Me"),
		})
		if err != nil {
			t.Fatalf("Self update should succeed: %v", err)
		}
		if !updated.IsActive {
			t.Error("is_active change by a non-admin should be ignored")
		}
		if !userRepo.users[regular.ID].IsActive {
			t.Error("Stored account should remain active")
		}
	})

	t.Run("PasswordIsRehashed", func(t *testing.T) {
		uc, userRepo, _, regular := newUserFixture(t)

		_, err := uc.Update(ctx, regular.ID, regular, inbound.UpdateUserRequest{
			Password: strPtr("newpass"),
		})
		if err != nil {
			t.Fatalf("Update should succeed: %v", err)
		}
		if userRepo.users[regular.ID].PasswordHash != "hashed-newpass" {
			t.Error("New password should be stored hashed")
		}
	})
}

func TestUserUseCaseUpdateRole(t *testing.T) {
	ctx := context.Background()
	uc, userRepo, _, regular := newUserFixture(t)

	updated, err := uc.UpdateRole(ctx, regular.ID, entity.RoleAdmin)
	if err != nil {
		t.Fatalf("Role update should succeed: %v", err)
	}
	if updated.Role != entity.RoleAdmin {
		t.Errorf("Expected role 'admin', got '%s'", updated.Role)
	}
	if userRepo.users[regular.ID].Role != entity.RoleAdmin {
		t.Error("Role change should be persisted")
	}

	if _, err := uc.UpdateRole(ctx, 9999, entity.RoleAdmin); !errors.Is(err, apperror.ErrUserNotFound) {
		t.Errorf("Expected ErrUserNotFound, got %v", err)
	}
}

func TestUserUseCaseDelete(t *testing.T) {
	ctx := context.Background()

	t.Run("SoftDeletes", func(t *testing.T) {
		uc, userRepo, admin, regular := newUserFixture(t)

		if err := uc.Delete(ctx, regular.ID, admin); err != nil {
			t.Fatalf("Delete should succeed: %v", err)
		}
		stored, exists := userRepo.users[regular.ID]
		if !exists {
			t.Fatal("Soft delete should keep the row")
		}
		if stored.IsActive {
			t.Error("Deleted account should be inactive")
		}
	})

	t.Run("SelfDeletionBlocked", func(t *testing.T) {
		uc, _, admin, _ := newUserFixture(t)

		if err := uc.Delete(ctx, admin.ID, admin); !errors.Is(err, apperror.ErrSelfDeletion) {
			t.Errorf("Expected ErrSelfDeletion, got %v", err)
		}
	})

	t.Run("UnknownTarget", func(t *testing.T) {
		uc, _, admin, _ := newUserFixture(t)

		if err := uc.Delete(ctx, 9999, admin); !errors.Is(err, apperror.ErrUserNotFound) {
			t.Errorf("Expected ErrUserNotFound, got %v", err)
		}
	})
}

func TestUserUseCaseChangePassword(t *testing.T) {
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		uc, userRepo, _, regular := newUserFixture(t)

		if err := uc.ChangePassword(ctx, regular, "userpass", "newpass"); err != nil {
			t.Fatalf("Password change should succeed: %v", err)
		}
		if userRepo.users[regular.ID].PasswordHash != "hashed-newpass" {
			t.Error("New password hash should be persisted")
		}
	})

	t.Run("WrongCurrentPassword", func(t *testing.T) {
		uc, userRepo, _, regular := newUserFixture(t)

		err := uc.ChangePassword(ctx, regular, "not-the-password", "newpass")
		if !errors.Is(err, apperror.ErrWrongPassword) {
			t.Errorf("Expected ErrWrongPassword, got %v", err)
		}
		if userRepo.users[regular.ID].PasswordHash != "hashed-userpass" {
			t.Error("Password should be unchanged after a failed attempt")
		}
	})
}

func TestUserUseCaseList(t *testing.T) {
	ctx := context.Background()
	uc, _, _, _ := newUserFixture(t)

	resp, err := uc.List(ctx, inbound.ListUsersRequest{Skip: 0, Limit: 20})
	if err != nil {
		t.Fatalf("List should succeed: %v", err)
	}
	if resp.Total != 2 {
		t.Errorf("Expected total 2, got %d", resp.Total)
	}
	if resp.Limit != 20 {
		t.Errorf("Expected limit 20, got %d", resp.Limit)
	}
}
