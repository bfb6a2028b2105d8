// Package storage opens the configured BlobStore backend
package storage

import (
	"fmt"

	"adler/internal/adapters/storage/badger"
	"adler/internal/adapters/storage/file"
	"adler/internal/adapters/storage/memory"
	"adler/internal/adapters/storage/sqlite"
	"adler/internal/config"
	"adler/internal/logger"
	"adler/internal/ports"
)

// Open returns the backend selected by cfg
func Open(cfg *config.Config, log *logger.Logger) (ports.BlobStore, error) {
	switch cfg.Backend {
	case config.BackendFile, "":
		return file.New(cfg.StorePath()), nil
	case config.BackendSQLite:
		s, err := sqlite.Open(cfg.StorePath())
		if err != nil {
			return nil, err
		}
		return s, nil
	case config.BackendBadger:
		s, err := badger.Open(cfg.StorePath(), log)
		if err != nil {
			return nil, err
		}
		return s, nil
	case config.BackendMemory:
		return memory.New(), nil
	default:
		return nil, fmt.Errorf("unknown storage backend: %s", cfg.Backend)
	}
}

// WatchPath returns the file to watch for external writes, or "" when the
// backend has no single file per key
func WatchPath(cfg *config.Config) string {
	if cfg.Backend != config.BackendFile && cfg.Backend != "" {
		return ""
	}
	return file.New(cfg.StorePath()).Path(cfg.StorageKey)
}
