package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/vladislavdragonenkov/bistrot/internal/storage"
)

const opTimeout = 5 * time.Second

type keyValueRepository struct {
	db *sql.DB
}

// NewKeyValueStore создаёт PostgreSQL-реализацию KeyValueStore.
// Каждый ключ — отдельная строка kv_entries; upsert даёт атомарность
// на уровне ключа, чего достаточно по контракту хранилища.
func NewKeyValueStore(store *Store) storage.KeyValueStore {
	return &keyValueRepository{db: store.DB()}
}

func (r *keyValueRepository) Get(ctx context.Context, key string) ([]byte, bool, error) {
	opCtx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	var value []byte
	err := r.db.QueryRowContext(opCtx, `
		SELECT value FROM kv_entries WHERE key = $1
	`, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("select kv entry: %w", err)
	}

	return value, true, nil
}

func (r *keyValueRepository) Set(ctx context.Context, key string, value []byte) error {
	opCtx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	if _, err := r.db.ExecContext(opCtx, `
		INSERT INTO kv_entries (key, value, updated_at)
		VALUES ($1, $2, NOW())
		ON CONFLICT (key) DO UPDATE
		SET value = EXCLUDED.value, updated_at = NOW()
	`, key, value); err != nil {
		return fmt.Errorf("upsert kv entry: %w", err)
	}

	return nil
}

func (r *keyValueRepository) Delete(ctx context.Context, key string) error {
	opCtx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	if _, err := r.db.ExecContext(opCtx, `
		DELETE FROM kv_entries WHERE key = $1
	`, key); err != nil {
		return fmt.Errorf("delete kv entry: %w", err)
	}

	return nil
}

var _ storage.KeyValueStore = (*keyValueRepository)(nil)
