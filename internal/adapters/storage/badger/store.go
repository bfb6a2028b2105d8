// Package badger stores blobs in a BadgerDB key-value database
package badger

import (
	"context"
	"fmt"

	"github.com/dgraph-io/badger/v4"
	"github.com/pkg/errors"

	"adler/internal/logger"
	"adler/internal/ports"
)

// Store implements ports.BlobStore using BadgerDB
type Store struct {
	db   *badger.DB
	path string
}

// Ensure Store implements BlobStore
var _ ports.BlobStore = (*Store)(nil)

// badgerLogger adapts the application logger to BadgerDB's Logger interface
type badgerLogger struct {
	log *logger.Logger
}

func (l *badgerLogger) Errorf(format string, args ...interface{}) {
	l.log.Error(fmt.Sprintf(format, args...))
}

func (l *badgerLogger) Warningf(format string, args ...interface{}) {
	l.log.Warn(fmt.Sprintf(format, args...))
}

func (l *badgerLogger) Infof(format string, args ...interface{}) {
	l.log.Debug(fmt.Sprintf(format, args...))
}

func (l *badgerLogger) Debugf(format string, args ...interface{}) {
	l.log.Debug(fmt.Sprintf(format, args...))
}

// Open opens the database in dir. An empty dir opens an in-memory database.
// A nil log disables BadgerDB's internal logging.
func Open(dir string, log *logger.Logger) (*Store, error) {
	var opts badger.Options
	if dir == "" {
		opts = badger.DefaultOptions("").WithInMemory(true)
	} else {
		opts = badger.DefaultOptions(dir)
	}

	if log != nil {
		opts = opts.WithLogger(&badgerLogger{log: log})
	} else {
		opts = opts.WithLogger(nil)
	}

	db, err := badger.Open(opts)
	if err != nil {
		return nil, errors.Wrap(err, "failed to open badger")
	}
	return &Store{db: db, path: dir}, nil
}

// InMemory reports whether the store has no backing directory
func (s *Store) InMemory() bool {
	return s.path == ""
}

// Get returns the blob stored under key
func (s *Store) Get(ctx context.Context, key string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var value []byte
	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(key))
		if err != nil {
			return err
		}
		value, err = item.ValueCopy(nil)
		return err
	})
	if errors.Is(err, badger.ErrKeyNotFound) {
		return nil, ports.ErrBlobNotFound
	}
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read blob %s", key)
	}
	return value, nil
}

// Put replaces the blob stored under key
func (s *Store) Put(ctx context.Context, key string, value []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	txn := s.db.NewTransaction(true)
	defer txn.Discard()

	if err := txn.Set([]byte(key), value); err != nil {
		return errors.Wrapf(err, "failed to write blob %s", key)
	}
	return errors.WithStack(txn.Commit())
}

// Close closes the database
func (s *Store) Close() error {
	return s.db.Close()
}
