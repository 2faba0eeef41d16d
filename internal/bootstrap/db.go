package bootstrap

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/redis/go-redis/v9"
	log "github.com/sirupsen/logrus"
	"github.com/timshannon/bolthold"
	bolt "go.etcd.io/bbolt"

	"github.com/maksimryndin/superlists/config"
	"github.com/maksimryndin/superlists/internal/lists/repository"
	"github.com/maksimryndin/superlists/internal/storage/postgres"
	"github.com/maksimryndin/superlists/internal/storage/sqlite"
)

// OpenStore opens the list store selected by cfg.Driver. SQL stores are
// migrated before they are returned.
func OpenStore(ctx context.Context, cfg *config.DatabaseConfig) (repository.Repository, error) {
	switch cfg.Driver {
	case config.DriverMemory:
		return repository.NewMemoryRepository(), nil

	case config.DriverSQLite:
		db, err := sqlite.OpenAndMigrate(ctx, cfg.Path)
		if err != nil {
			return nil, err
		}
		return repository.NewSQLRepository(db), nil

	case config.DriverPostgres:
		pool, err := postgres.NewPool(ctx, cfg)
		if err != nil {
			return nil, err
		}
		if _, err := postgres.Migrate(ctx, pool); err != nil {
			pool.Close()
			return nil, fmt.Errorf("run migrations: %w", err)
		}
		return repository.NewPgxRepository(pool), nil

	case config.DriverRedis:
		client := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr, DB: cfg.RedisDB})
		pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
		defer cancel()
		if err := client.Ping(pingCtx).Err(); err != nil {
			_ = client.Close()
			return nil, fmt.Errorf("redis ping: %w", err)
		}
		return repository.NewRedisRepository(client), nil

	case config.DriverBolt:
		if err := os.MkdirAll(filepath.Dir(cfg.Path), 0o755); err != nil {
			return nil, fmt.Errorf("create database dir: %w", err)
		}
		store, err := bolthold.Open(cfg.Path, 0o600, &bolthold.Options{
			Options: &bolt.Options{Timeout: 3 * time.Second},
		})
		if err != nil {
			return nil, fmt.Errorf("open bolt store: %w", err)
		}
		return repository.NewBoltRepository(store), nil
	}

	return nil, fmt.Errorf("unknown store driver %q", cfg.Driver)
}

// Migrate brings the schema of a SQL store up to date. Schemaless stores
// have nothing to migrate.
func Migrate(ctx context.Context, cfg *config.DatabaseConfig) ([]string, error) {
	switch cfg.Driver {
	case config.DriverSQLite:
		db, err := sqlite.Open(cfg.Path)
		if err != nil {
			return nil, err
		}
		defer db.Close()
		return sqlite.Migrate(ctx, db)

	case config.DriverPostgres:
		pool, err := postgres.NewPool(ctx, cfg)
		if err != nil {
			return nil, err
		}
		defer pool.Close()
		return postgres.Migrate(ctx, pool)
	}

	log.WithField("driver", cfg.Driver).Info("store has no schema to migrate")
	return nil, nil
}
