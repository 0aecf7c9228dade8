//go:generate mockgen -destination=mock/store.go -package=mock github.com/delvegame/delve/internal/persist Store

// Package persist saves and restores a run. Every backend stores the same
// sealed snapshot bytes: a JSON envelope carrying a blake2b checksum.
package persist

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/delvegame/delve/internal/config"
)

var (
	ErrNoSave  = errors.New("no saved game")
	ErrCorrupt = errors.New("saved game is corrupt")
)

// Store is one save slot.
type Store interface {
	Exists(ctx context.Context) (bool, error)
	Save(ctx context.Context, snap *Snapshot) error
	Load(ctx context.Context) (*Snapshot, error)
	Delete(ctx context.Context) error
	Close() error
}

// Open builds the store named by cfg.Backend.
func Open(ctx context.Context, cfg config.PersistenceConfig, log *zap.Logger) (Store, error) {
	switch cfg.Backend {
	case "", "none":
		return NopStore{}, nil
	case "file":
		return NewFileStore(cfg.Path, log), nil
	case "postgres":
		db, err := NewDB(ctx, cfg.DSN, log)
		if err != nil {
			return nil, err
		}
		if err := RunMigrations(ctx, db.Pool); err != nil {
			db.Close()
			return nil, err
		}
		return NewPostgresStore(db, "default"), nil
	case "redis":
		return NewRedisStoreFromURL(cfg.RedisURL, cfg.RedisKey, log)
	default:
		return nil, fmt.Errorf("unknown persistence backend %q", cfg.Backend)
	}
}

// NopStore never holds a save.
type NopStore struct{}

func (NopStore) Exists(context.Context) (bool, error) { return false, nil }
func (NopStore) Save(context.Context, *Snapshot) error { return nil }
func (NopStore) Load(context.Context) (*Snapshot, error) { return nil, ErrNoSave }
func (NopStore) Delete(context.Context) error { return nil }
func (NopStore) Close() error { return nil }
