// Package initializer builds the runtime dependencies described by the
// configuration: the logger, the record store and the metrics registry.
package initializer

import (
	"fmt"
	"log/slog"

	"github.com/amirasaad/wallet/infra"
	"github.com/amirasaad/wallet/infra/filestore"
	"github.com/amirasaad/wallet/infra/sqlstore"
	"github.com/amirasaad/wallet/pkg/app"
	"github.com/amirasaad/wallet/pkg/config"
	"github.com/amirasaad/wallet/pkg/metrics"
	"github.com/amirasaad/wallet/pkg/store"
)

// InitializeDependencies initializes all the application dependencies
func InitializeDependencies(cfg *config.App) (
	deps *app.Deps,
	err error,
) {
	logger := SetupLogger(cfg.Log, nil)
	return Build(cfg, logger)
}

// Build creates the dependencies using an existing logger.
func Build(cfg *config.App, logger *slog.Logger) (*app.Deps, error) {
	st, closeFn, err := NewStore(cfg, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize %s store: %w", cfg.Storage.Backend, err)
	}
	return &app.Deps{
		Store:   st,
		Metrics: metrics.New(),
		Logger:  logger,
		Close:   closeFn,
	}, nil
}

// NewStore opens the record store selected by STORAGE_BACKEND. The
// returned function releases it.
func NewStore(cfg *config.App, logger *slog.Logger) (store.Store, func() error, error) {
	noop := func() error { return nil }
	switch cfg.Storage.Backend {
	case config.BackendMemory:
		logger.Warn("Using in-memory store; data is lost on exit")
		return store.NewMemoryStore(), noop, nil
	case config.BackendSQLite:
		db, err := infra.NewDBConnection(cfg.Storage, cfg.Env)
		if err != nil {
			return nil, nil, err
		}
		st, err := sqlstore.New(db, logger)
		if err != nil {
			return nil, nil, err
		}
		sqlDB, err := db.DB()
		if err != nil {
			return nil, nil, err
		}
		logger.Info("Using SQLite store", "dsn", cfg.Storage.DSN)
		return st, sqlDB.Close, nil
	case config.BackendFile, "":
		st, err := filestore.New(cfg.Storage.Dir, logger)
		if err != nil {
			return nil, nil, err
		}
		logger.Info("Using file store", "dir", st.Root())
		return st, noop, nil
	default:
		return nil, nil, fmt.Errorf("unknown storage backend %q", cfg.Storage.Backend)
	}
}
