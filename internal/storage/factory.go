// Package storage selects and opens the PersistentStore backend.
package storage

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/sandevgo/haven/internal/core"
	"github.com/sandevgo/haven/internal/storage/inmem"
	"github.com/sandevgo/haven/internal/storage/postgres"
	"github.com/sandevgo/haven/internal/storage/sqlite"
	"github.com/sandevgo/haven/internal/storage/sqlstore"
	"github.com/sandevgo/haven/pkg/log"
)

const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
	DriverMemory   = "memory"
)

type Config interface {
	GetStoreDriver() string
	GetDatabasePath() string
	GetDatabaseURL() string
	GetUserID() string
}

// Open returns the configured store and a close function for the underlying connection.
func Open(ctx context.Context, cfg Config) (core.PersistentStore, func() error, error) {
	log.FromCtx(ctx).Info().
		Str("driver", cfg.GetStoreDriver()).
		Str("user", cfg.GetUserID()).
		Msg("opening memory store")

	var (
		store core.PersistentStore
		db    *sql.DB
		err   error
	)

	switch cfg.GetStoreDriver() {
	case DriverSQLite:
		db, err = sqlite.NewDB(ctx, cfg.GetDatabasePath())
		if err != nil {
			return nil, nil, err
		}
		store = sqlstore.NewSQLiteKVRepo(db)
	case DriverPostgres:
		db, err = postgres.NewDB(ctx, cfg.GetDatabaseURL())
		if err != nil {
			return nil, nil, err
		}
		store = sqlstore.NewPostgresKVRepo(db)
	case DriverMemory:
		store = inmem.NewKVStore()
	default:
		return nil, nil, fmt.Errorf("unknown store driver: %s", cfg.GetStoreDriver())
	}

	closeFn := func() error { return nil }
	if db != nil {
		closeFn = db.Close
	}
	return WithNamespace(store, cfg.GetUserID()), closeFn, nil
}
