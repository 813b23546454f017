package repo

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sync"
)

// SnapshotStore keeps the serialized ledger. Load returns nil, nil when
// nothing has been saved yet.
type SnapshotStore interface {
	Load(ctx context.Context) ([]byte, error)
	Save(ctx context.Context, data []byte) error
}

// ========================
// POSTGRES
// ========================

// PostgresSnapshotRepo stores the snapshot as JSONB in ledger_snapshots.
type PostgresSnapshotRepo struct {
	db  *sql.DB
	key string
}

func NewPostgresSnapshotRepo(db *sql.DB, key string) *PostgresSnapshotRepo {
	return &PostgresSnapshotRepo{db: db, key: key}
}

func (r *PostgresSnapshotRepo) Load(ctx context.Context) ([]byte, error) {
	var body []byte
	err := r.db.QueryRowContext(ctx,
		`SELECT body FROM ledger_snapshots WHERE snapshot_key = $1`,
		r.key,
	).Scan(&body)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load snapshot %q: %w", r.key, err)
	}
	return body, nil
}

func (r *PostgresSnapshotRepo) Save(ctx context.Context, data []byte) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO ledger_snapshots (snapshot_key, body, updated_at)
		 VALUES ($1, $2, NOW())
		 ON CONFLICT (snapshot_key) DO UPDATE SET body = EXCLUDED.body, updated_at = NOW()`,
		r.key, string(data),
	)
	if err != nil {
		return fmt.Errorf("save snapshot %q: %w", r.key, err)
	}
	return nil
}

// ========================
// MEMORY
// ========================

// MemorySnapshotStore keeps the snapshot in process. Used in dev and tests.
type MemorySnapshotStore struct {
	mu   sync.RWMutex
	data []byte
}

func NewMemorySnapshotStore() *MemorySnapshotStore {
	return &MemorySnapshotStore{}
}

func (s *MemorySnapshotStore) Load(ctx context.Context) ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.data == nil {
		return nil, nil
	}
	return append([]byte(nil), s.data...), nil
}

func (s *MemorySnapshotStore) Save(ctx context.Context, data []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data = append([]byte(nil), data...)
	return nil
}
