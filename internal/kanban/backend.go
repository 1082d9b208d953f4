package kanban

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/hay-kot/kanban/internal/core/config"
	"github.com/hay-kot/kanban/internal/core/kv"
	"github.com/hay-kot/kanban/internal/core/remote"
	"github.com/hay-kot/kanban/internal/data/aztable"
	"github.com/hay-kot/kanban/internal/data/db"
	"github.com/hay-kot/kanban/internal/data/memstore"
	"github.com/hay-kot/kanban/internal/data/stores"
)

// Backend is the opened persistence layer: the task collection and the
// preference sidecar.
type Backend struct {
	Collection remote.Collection
	KV         kv.KV
	DB         *db.DB
}

// Close releases the database, if one was opened.
func (b *Backend) Close() error {
	if b.DB == nil {
		return nil
	}
	return b.DB.Close()
}

// OpenBackend opens the storage selected by cfg. The aztables backend keeps
// the theme sidecar in the local SQLite database.
func OpenBackend(ctx context.Context, cfg *config.Config, log zerolog.Logger) (*Backend, error) {
	switch cfg.Backend {
	case config.BackendMemory:
		return &Backend{Collection: memstore.New(), KV: memstore.NewKV()}, nil

	case config.BackendAzTables:
		database, err := openDB(cfg, log)
		if err != nil {
			return nil, err
		}
		coll, err := aztable.New(aztable.Options{
			ConnectionString: cfg.AzTables.ResolvedConnectionString(),
			Table:            cfg.AzTables.Table,
			PartitionKey:     cfg.AzTables.PartitionKey,
			MaxRetries:       cfg.AzTables.MaxRetries,
			TryTimeout:       cfg.AzTables.TryTimeout,
		})
		if err != nil {
			_ = database.Close()
			return nil, fmt.Errorf("open aztables: %w", err)
		}
		if err := coll.EnsureTable(ctx); err != nil {
			_ = database.Close()
			return nil, fmt.Errorf("ensure table: %w", err)
		}
		return &Backend{Collection: coll, KV: stores.NewKVStore(database), DB: database}, nil

	case config.BackendSQLite, "":
		database, err := openDB(cfg, log)
		if err != nil {
			return nil, err
		}
		return &Backend{
			Collection: stores.NewDocumentStore(database, remote.CollectionName),
			KV:         stores.NewKVStore(database),
			DB:         database,
		}, nil

	default:
		return nil, fmt.Errorf("unknown backend %q", cfg.Backend)
	}
}

// openDB opens the local database, moving a corrupt file aside and starting
// fresh once.
func openDB(cfg *config.Config, log zerolog.Logger) (*db.DB, error) {
	opts := db.OpenOptions{
		MaxOpenConns: cfg.Database.MaxOpenConns,
		MaxIdleConns: cfg.Database.MaxIdleConns,
		BusyTimeout:  cfg.Database.BusyTimeoutMS,
	}

	database, err := db.Open(cfg.DataDir, opts)
	if err == nil {
		return database, nil
	}
	if !stores.IsCorruptionError(err) {
		return nil, fmt.Errorf("open database: %w", err)
	}

	backup, rerr := stores.RecoverFromCorruption(cfg.DataDir)
	if rerr != nil {
		return nil, errors.Join(err, rerr)
	}
	log.Warn().Err(err).Str("backup", backup).Msg("database was corrupt, moved aside")

	database, err = db.Open(cfg.DataDir, opts)
	if err != nil {
		return nil, fmt.Errorf("open database after recovery: %w", err)
	}
	return database, nil
}
