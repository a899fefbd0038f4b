package persistence

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"github.com/spec-kit/catalog-service/internal/auth"
	"github.com/spec-kit/catalog-service/internal/config"
	"github.com/spec-kit/catalog-service/internal/domain"
)

// SeedAdmin ensures the bootstrap admin account exists. Insertion ignores a
// username conflict, so reruns are no-ops. When ResetPassword is set the seed
// admin's hash is rewritten from the configured password once at startup.
func SeedAdmin(ctx context.Context, pool *pgxpool.Pool, cfg config.SeedConfig, bcryptCost int, logger *zap.Logger) error {
	if pool == nil {
		logger.Warn("no postgres pool available; skipping admin seed")
		return nil
	}
	if cfg.AdminUsername == "" || cfg.AdminPassword == "" {
		logger.Warn("admin seed credentials not configured; skipping admin seed")
		return nil
	}

	hash, err := auth.HashPassword(cfg.AdminPassword, bcryptCost)
	if err != nil {
		return fmt.Errorf("hash seed password: %w", err)
	}

	const insert = `
        INSERT INTO admins (username, password_hash, role)
        VALUES ($1, $2, $3)
        ON CONFLICT (username) DO NOTHING`
	cmd, err := pool.Exec(ctx, insert, cfg.AdminUsername, hash, string(domain.RoleAdmin))
	if err != nil {
		return fmt.Errorf("seed admin: %w", err)
	}

	if cmd.RowsAffected() > 0 {
		logger.Info("seeded admin account", zap.String("username", cfg.AdminUsername))
		return nil
	}

	if cfg.ResetPassword {
		const update = `UPDATE admins SET password_hash=$1 WHERE username=$2`
		if _, err := pool.Exec(ctx, update, hash, cfg.AdminUsername); err != nil {
			return fmt.Errorf("reset seed admin password: %w", err)
		}
		logger.Info("reset seed admin password", zap.String("username", cfg.AdminUsername))
	}
	return nil
}
