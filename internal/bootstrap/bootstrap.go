// Package bootstrap wires the configured store, logger and document shared by
// the adler binaries
package bootstrap

import (
	"context"
	"fmt"

	"adler/internal/adapters/storage"
	"adler/internal/application"
	"adler/internal/config"
	"adler/internal/logger"
	"adler/internal/ports"
)

// Env holds everything a binary needs to work on the book collection
type Env struct {
	Config *config.Config
	Log    *logger.Logger
	Store  ports.BlobStore
	Doc    *application.Document

	closers []func()
}

// Open loads the configuration, opens the log file and the store, and loads
// the collection into a document that projects into sink. sink may be nil.
func Open(ctx context.Context, sink ports.OutlineSink) (*Env, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	return OpenWith(ctx, cfg, sink)
}

// OpenWith is Open with an explicit configuration
func OpenWith(ctx context.Context, cfg *config.Config, sink ports.OutlineSink) (*Env, error) {
	env := &Env{Config: cfg}

	env.Log = logger.Discard()
	if cfg.LogFile != "" {
		log, closeLog, err := logger.NewFileLogger(cfg.LogFile, logger.ParseLevel(cfg.LogLevel))
		if err != nil {
			return nil, fmt.Errorf("failed to open log file: %w", err)
		}
		env.Log = log
		env.closers = append(env.closers, closeLog)
	}

	store, err := storage.Open(cfg, env.Log)
	if err != nil {
		env.Close()
		return nil, fmt.Errorf("failed to open %s store: %w", cfg.Backend, err)
	}
	env.Store = store
	env.closers = append(env.closers, func() {
		if err := store.Close(); err != nil {
			env.Log.Warn("failed to close store", "error", err)
		}
	})

	persist := application.NewPersistence(store, cfg.StorageKey, env.Log)
	env.Doc = application.NewDocument(persist, sink, application.WithLogger(env.Log))
	env.Doc.Load(ctx)

	env.Log.Debug("opened collection", "backend", cfg.Backend, "key", cfg.StorageKey, "books", len(env.Doc.Books()))
	return env, nil
}

// Close releases the store and the log file, in reverse order of opening
func (e *Env) Close() {
	for i := len(e.closers) - 1; i >= 0; i-- {
		e.closers[i]()
	}
	e.closers = nil
}
