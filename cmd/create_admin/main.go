package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log"
	"os"

	_ "github.com/lib/pq"

	"github.com/mercato/mercato/domain/apperror"
	"github.com/mercato/mercato/domain/entity"
	"github.com/mercato/mercato/infrastructure/config"
	"github.com/mercato/mercato/infrastructure/persistence/postgres"
	"github.com/mercato/mercato/infrastructure/service/password"
)

// Bootstraps the first administrator account. Safe to run repeatedly: an
// existing account with the configured email or username is left untouched.
func main() {
	ctx := context.Background()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	adminPassword := cfg.AdminPassword
	if len(os.Args) > 1 {
		adminPassword = os.Args[1]
	}
	if adminPassword == "" {
		log.Fatal("ADMIN_PASSWORD environment variable or argument is required")
	}

	db, err := sql.Open("postgres", cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	if err := db.PingContext(ctx); err != nil {
		log.Fatalf("Failed to ping database: %v", err)
	}

	userRepo := postgres.NewUserRepository(db)

	passwordService := password.NewBcryptPasswordService(cfg.BcryptCost, cfg.HashWorkers)
	hash, err := passwordService.HashPassword(ctx, adminPassword)
	if err != nil {
		log.Fatalf("Failed to hash password: %v", err)
	}

	admin := entity.NewUser(cfg.AdminEmail, cfg.AdminUsername, cfg.AdminFullName, hash)
	admin.Role = entity.RoleAdmin

	if err := userRepo.Create(ctx, admin); err != nil {
		if errors.Is(err, apperror.ErrEmailTaken) || errors.Is(err, apperror.ErrUsernameTaken) {
			fmt.Println("Admin account already exists, nothing to do")
			return
		}
		log.Fatalf("Failed to create admin user: %v", err)
	}

	fmt.Printf("Admin account created: %s (%s), id=%d\n", admin.Username, admin.Email, admin.ID)
}
