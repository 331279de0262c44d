// Package bootstrap brings a fresh or upgraded database to the state the
// core services assume: schema applied and exactly one active manager
// account available.
package bootstrap

import (
	"context"
	"fmt"

	"github.com/aurumpos/backend/internal/users"
	"github.com/aurumpos/backend/pkg/config"
	"github.com/aurumpos/backend/pkg/db"
	"github.com/aurumpos/backend/pkg/enums"
	"github.com/aurumpos/backend/pkg/logger"
	"github.com/aurumpos/backend/pkg/migrate"
	"github.com/aurumpos/backend/pkg/security"
)

const (
	defaultAdminUsername = "admin"
	defaultAdminPassword = "admin"
)

// Run applies pending migrations and seeds the default manager account
// when no active manager exists.
func Run(ctx context.Context, cfg *config.Config, logg *logger.Logger, client *db.Client) error {
	if err := migrate.MaybeRun(ctx, cfg, logg, client); err != nil {
		return fmt.Errorf("apply migrations: %w", err)
	}
	if err := seedDefaultManager(ctx, cfg, logg, client); err != nil {
		return fmt.Errorf("seed default manager: %w", err)
	}
	return nil
}

func seedDefaultManager(ctx context.Context, cfg *config.Config, logg *logger.Logger, client *db.Client) error {
	repo := users.NewRepository(client.DB())

	count, err := repo.CountActiveByRole(ctx, enums.RoleManager.String())
	if err != nil {
		return fmt.Errorf("count managers: %w", err)
	}
	if count > 0 {
		return nil
	}

	hashed, err := security.HashPassword(defaultAdminPassword, cfg.Password)
	if err != nil {
		return fmt.Errorf("hash default password: %w", err)
	}

	if _, err := repo.Create(ctx, users.CreateUserDTO{
		Username:   defaultAdminUsername,
		Credential: hashed,
		Role:       enums.RoleManager,
	}); err != nil {
		if db.IsUniqueViolation(err, "users.username") {
			// An inactive admin row already exists; leave it to the manager
			// tooling rather than silently reactivating it.
			logg.Warn(ctx, "default admin exists but no active manager found")
			return nil
		}
		return err
	}

	logg.Info(ctx, "seeded default manager account")
	return nil
}
