package storage

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"adler/internal/config"
	"adler/internal/logger"
)

func TestOpenBackends(t *testing.T) {
	for _, backend := range []string{config.BackendFile, config.BackendSQLite, config.BackendBadger, config.BackendMemory} {
		t.Run(backend, func(t *testing.T) {
			cfg := config.Default()
			cfg.Backend = backend
			cfg.DataDir = t.TempDir()

			store, err := Open(&cfg, logger.Discard())
			require.NoError(t, err)
			defer store.Close()

			ctx := context.Background()
			require.NoError(t, store.Put(ctx, cfg.StorageKey, []byte("[]")))
			got, err := store.Get(ctx, cfg.StorageKey)
			require.NoError(t, err)
			assert.Equal(t, "[]", string(got))
		})
	}
}

func TestOpenUnknown(t *testing.T) {
	cfg := config.Default()
	cfg.Backend = "postgres"

	_, err := Open(&cfg, nil)
	assert.Error(t, err)
}

func TestWatchPath(t *testing.T) {
	cfg := config.Default()
	cfg.DataDir = "/data"
	assert.Equal(t, filepath.Join("/data", "adler_books_v1.json"), WatchPath(&cfg))

	cfg.Backend = config.BackendSQLite
	assert.Equal(t, "", WatchPath(&cfg))
}
