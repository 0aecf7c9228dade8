package persist

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

// PostgresStore keeps the save as a sealed blob in the saves table, keyed
// by slot.
type PostgresStore struct {
	db   *DB
	slot string
}

func NewPostgresStore(db *DB, slot string) *PostgresStore {
	return &PostgresStore{db: db, slot: slot}
}

func (s *PostgresStore) Exists(ctx context.Context) (bool, error) {
	var n int
	err := s.db.Pool.QueryRow(ctx, `SELECT count(*) FROM saves WHERE slot = $1`, s.slot).Scan(&n)
	if err != nil {
		return false, fmt.Errorf("check save: %w", err)
	}
	return n > 0, nil
}

func (s *PostgresStore) Save(ctx context.Context, snap *Snapshot) error {
	data, err := Seal(snap)
	if err != nil {
		return err
	}
	depth := 0
	if snap.Map != nil {
		depth = snap.Map.Depth
	}
	_, err = s.db.Pool.Exec(ctx,
		`INSERT INTO saves (slot, run_id, depth, payload, saved_at)
		 VALUES ($1, $2, $3, $4, $5)
		 ON CONFLICT (slot) DO UPDATE SET
		   run_id = EXCLUDED.run_id, depth = EXCLUDED.depth,
		   payload = EXCLUDED.payload, saved_at = EXCLUDED.saved_at`,
		s.slot, snap.RunID, depth, data, snap.SavedAt,
	)
	if err != nil {
		return fmt.Errorf("save game: %w", err)
	}
	s.db.log.Info("game saved", zap.String("slot", s.slot), zap.Int("depth", depth))
	return nil
}

func (s *PostgresStore) Load(ctx context.Context) (*Snapshot, error) {
	var data []byte
	err := s.db.Pool.QueryRow(ctx, `SELECT payload FROM saves WHERE slot = $1`, s.slot).Scan(&data)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNoSave
	}
	if err != nil {
		return nil, fmt.Errorf("load save: %w", err)
	}
	return Unseal(data)
}

func (s *PostgresStore) Delete(ctx context.Context) error {
	if _, err := s.db.Pool.Exec(ctx, `DELETE FROM saves WHERE slot = $1`, s.slot); err != nil {
		return fmt.Errorf("delete save: %w", err)
	}
	return nil
}

// RecordRun appends a finished run to run_history.
func (s *PostgresStore) RecordRun(ctx context.Context, runID uuid.UUID, depth, kills int) error {
	_, err := s.db.Pool.Exec(ctx,
		`INSERT INTO run_history (run_id, depth, kills) VALUES ($1, $2, $3)
		 ON CONFLICT (run_id) DO UPDATE SET depth = EXCLUDED.depth, kills = EXCLUDED.kills`,
		runID, depth, kills,
	)
	if err != nil {
		return fmt.Errorf("record run: %w", err)
	}
	return nil
}

func (s *PostgresStore) Close() error {
	s.db.Close()
	return nil
}
