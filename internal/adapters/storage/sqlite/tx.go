package sqlite

import (
	"context"
	"database/sql"
	"time"

	"github.com/pkg/errors"
)

// blobTx wraps a write transaction
type blobTx struct {
	tx *sql.Tx
}

func (s *Store) beginTx(ctx context.Context) (*blobTx, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, errors.Wrap(err, "failed to begin transaction")
	}
	return &blobTx{tx: tx}, nil
}

// Put inserts or replaces a blob
func (t *blobTx) Put(key string, value []byte, now time.Time) error {
	_, err := t.tx.Exec(`
		INSERT OR REPLACE INTO blobs (key, value, updated_at)
		VALUES (?, ?, ?)
	`, key, value, now.UnixMilli())
	return err
}

// Commit commits the transaction
func (t *blobTx) Commit() error {
	return t.tx.Commit()
}

// Rollback aborts the transaction. It is a no-op after Commit.
func (t *blobTx) Rollback() error {
	return t.tx.Rollback()
}
