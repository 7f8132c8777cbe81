package user

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/tair/pededrink/internal/config"
	"github.com/tair/pededrink/internal/user/domain"
	"github.com/tair/pededrink/internal/user/repository"
	"github.com/tair/pededrink/internal/user/usecase/command"
	"github.com/tair/pededrink/pkg/logger"
)

// ProvideUserRepository provides the user repository. Accounts live in
// Postgres when db is set and in memory otherwise.
func ProvideUserRepository(db *gorm.DB) (domain.UserRepository, error) {
	if db == nil {
		return repository.NewTracingUserRepository(repository.NewMemoryUserRepository()), nil
	}
	repo := repository.NewGormUserRepository(db)
	if err := repo.AutoMigrate(); err != nil {
		return nil, fmt.Errorf("failed to run user migrations: %w", err)
	}
	return repository.NewTracingUserRepository(repo), nil
}

// SeedAdmin makes sure the bootstrap admin account exists.
func SeedAdmin(ctx context.Context, repo domain.UserRepository, cfg config.Config) error {
	created, err := command.NewRegisterUserHandler(repo).EnsureAdmin(ctx, cfg.AdminUsername, cfg.AdminEmail, cfg.AdminPassword)
	if err != nil {
		return fmt.Errorf("failed to seed admin: %w", err)
	}
	if created {
		logger.Info(ctx).Str("email", cfg.AdminEmail).Msg("Seeded admin account")
	}
	return nil
}
