// Package storage opens the repositories selected by the configured storage driver.
package storage

import (
	"context"
	"fmt"
	"log/slog"

	portsrepo "github.com/SscSPs/token_ledger/internal/core/ports/repositories"
	"github.com/SscSPs/token_ledger/internal/platform/config"
	"github.com/SscSPs/token_ledger/internal/repositories/database/pgsql"
	"github.com/SscSPs/token_ledger/internal/repositories/memory"
	"github.com/SscSPs/token_ledger/pkg/database"
)

// Open returns the repositories for cfg.StorageDriver and a function releasing
// them. With migrate set, pending up migrations are applied first.
func Open(ctx context.Context, cfg *config.Config, migrate bool, logger *slog.Logger) (portsrepo.RepositoryProvider, func(), error) {
	switch cfg.StorageDriver {
	case config.StorageDriverMemory:
		logger.Warn("Using in-memory storage; ledger state is lost on exit")
		return memory.NewRepositoryProvider(), func() {}, nil

	case config.StorageDriverPostgres:
		if migrate {
			logger.Info("Running database migrations...")
			if _, err := database.RunMigrations(cfg.DatabaseURL, cfg.MigrationsPath, database.MigrateUp, logger); err != nil {
				return portsrepo.RepositoryProvider{}, nil, fmt.Errorf("failed to apply migrations: %w", err)
			}
		}

		dbPool, err := database.NewPgxPool(ctx, cfg.DatabaseURL, cfg.EnableDBCheck)
		if err != nil {
			return portsrepo.RepositoryProvider{}, nil, fmt.Errorf("failed to initialize database pool: %w", err)
		}
		logger.Info("Database connection pool established.")
		return pgsql.NewRepositoryProvider(dbPool), func() { database.ClosePgxPool(dbPool) }, nil

	default:
		return portsrepo.RepositoryProvider{}, nil, fmt.Errorf("unknown storage driver %q", cfg.StorageDriver)
	}
}
