package database

import (
	"context"
	"fmt"
	"log"

	"github.com/sangkips/mobilehub-pos/internal/config"
	"github.com/sangkips/mobilehub-pos/internal/domain/entity"
	"github.com/sangkips/mobilehub-pos/internal/domain/repository"
	"github.com/sangkips/mobilehub-pos/pkg/utils"
)

// SeedAdmin creates the shop owner account from ADMIN_EMAIL/ADMIN_PASSWORD
// when both are set and no user has that email yet.
func SeedAdmin(ctx context.Context, users repository.UserRepository, cfg config.AdminConfig) error {
	if cfg.Email == "" || cfg.Password == "" {
		return nil
	}

	existing, err := users.GetByEmail(ctx, cfg.Email)
	if err != nil {
		return fmt.Errorf("failed to look up admin user: %w", err)
	}
	if existing != nil {
		log.Printf("Admin user already exists: %s", cfg.Email)
		return nil
	}

	hashed, err := utils.HashPassword(cfg.Password)
	if err != nil {
		return fmt.Errorf("failed to hash admin password: %w", err)
	}

	name := cfg.Name
	if name == "" {
		name = "Shop Owner"
	}
	if err := users.Create(ctx, &entity.User{Name: name, Email: cfg.Email, Password: hashed}); err != nil {
		return fmt.Errorf("failed to create admin user: %w", err)
	}
	log.Printf("Admin user created: %s", cfg.Email)
	return nil
}
