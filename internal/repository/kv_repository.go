package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"
)

type kvObserver interface {
	ObserveKVOperation(op string, duration time.Duration)
}

// KVStore provides access to the flat key-value table backing all domain
// objects. Values are opaque JSON; key prefixes double as the collection
// boundary.
type KVStore struct {
	db      *sqlx.DB
	metrics kvObserver
}

// NewKVStore creates a new instance of KVStore. metrics may be nil.
func NewKVStore(db *sqlx.DB, metrics kvObserver) *KVStore {
	return &KVStore{db: db, metrics: metrics}
}

func (s *KVStore) observe(op string, start time.Time) {
	if s.metrics != nil {
		s.metrics.ObserveKVOperation(op, time.Since(start))
	}
}

// Get returns the raw value at key, or nil when the key is absent.
func (s *KVStore) Get(ctx context.Context, key string) ([]byte, error) {
	defer s.observe("get", time.Now())
	const query = `SELECT value FROM kv_store WHERE key = $1`
	var value []byte
	if err := s.db.GetContext(ctx, &value, query, key); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("kv get %s: %w", key, err)
	}
	return value, nil
}

// Set writes the value at key, overwriting any previous value.
func (s *KVStore) Set(ctx context.Context, key string, value []byte) error {
	defer s.observe("set", time.Now())
	const query = `INSERT INTO kv_store (key, value) VALUES ($1, $2)
		ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value`
	if _, err := s.db.ExecContext(ctx, query, key, value); err != nil {
		return fmt.Errorf("kv set %s: %w", key, err)
	}
	return nil
}

// SetMulti writes every entry in a single transaction. Used for records kept
// under more than one key (the profile's id and email index) so the keys
// cannot diverge under partial failure.
func (s *KVStore) SetMulti(ctx context.Context, entries map[string][]byte) error {
	defer s.observe("set_multi", time.Now())
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("kv set multi begin: %w", err)
	}
	const query = `INSERT INTO kv_store (key, value) VALUES ($1, $2)
		ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value`
	for key, value := range entries {
		if _, err := tx.ExecContext(ctx, query, key, value); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("kv set multi %s: %w", key, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("kv set multi commit: %w", err)
	}
	return nil
}

// GetByPrefix returns the raw values of every key starting with prefix,
// ordered by key.
func (s *KVStore) GetByPrefix(ctx context.Context, prefix string) ([][]byte, error) {
	defer s.observe("scan", time.Now())
	const query = `SELECT value FROM kv_store WHERE key LIKE $1 ORDER BY key`
	rows, err := s.db.QueryxContext(ctx, query, escapeLikePrefix(prefix)+"%")
	if err != nil {
		return nil, fmt.Errorf("kv scan %s: %w", prefix, err)
	}
	defer rows.Close()

	var values [][]byte
	for rows.Next() {
		var value []byte
		if err := rows.Scan(&value); err != nil {
			return nil, fmt.Errorf("kv scan %s: %w", prefix, err)
		}
		values = append(values, value)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("kv scan %s: %w", prefix, err)
	}
	return values, nil
}

// Delete removes the key if present.
func (s *KVStore) Delete(ctx context.Context, key string) error {
	defer s.observe("delete", time.Now())
	const query = `DELETE FROM kv_store WHERE key = $1`
	if _, err := s.db.ExecContext(ctx, query, key); err != nil {
		return fmt.Errorf("kv delete %s: %w", key, err)
	}
	return nil
}

// escapeLikePrefix neutralises LIKE wildcards so keys containing "%" or "_"
// (emails, for instance) cannot widen a prefix scan.
func escapeLikePrefix(prefix string) string {
	replacer := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return replacer.Replace(prefix)
}
