package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func withConfigPath(t *testing.T, path string) {
	t.Helper()
	orig := Path
	Path = func() string { return path }
	t.Cleanup(func() { Path = orig })
}

func TestLoadDefaults(t *testing.T) {
	withConfigPath(t, filepath.Join(t.TempDir(), "missing.yaml"))

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, BackendFile, cfg.Backend)
	assert.Equal(t, "adler_books_v1", cfg.StorageKey)
	assert.Equal(t, 4*time.Second, cfg.ConfirmTimeout)
	assert.Equal(t, 300*time.Millisecond, cfg.RedrawInterval)
	assert.Equal(t, 60*time.Millisecond, cfg.RedrawDelay)
	assert.NotEmpty(t, cfg.DataDir)
}

func TestLoadFileAndEnv(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	content := "backend: sqlite\ndata_dir: " + dir + "\nconfirm_timeout: 2s\nlog_level: debug\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	withConfigPath(t, path)

	t.Setenv("ADLER_STORAGE_KEY", "other_key")
	t.Setenv("ADLER_LOG_LEVEL", "warn")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, BackendSQLite, cfg.Backend)
	assert.Equal(t, 2*time.Second, cfg.ConfirmTimeout)
	assert.Equal(t, "other_key", cfg.StorageKey)
	assert.Equal(t, "warn", cfg.LogLevel, "environment wins over the file")
	assert.Equal(t, filepath.Join(dir, "adler.db"), cfg.StorePath())
}

func TestLoadInvalid(t *testing.T) {
	withConfigPath(t, filepath.Join(t.TempDir(), "missing.yaml"))
	t.Setenv("ADLER_BACKEND", "postgres")

	_, err := Load()
	assert.ErrorContains(t, err, "invalid config")
}

func TestLoadMalformedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("backend: [unclosed"), 0644))
	withConfigPath(t, path)

	_, err := Load()
	assert.ErrorContains(t, err, "failed to parse config")
}

func TestStorePath(t *testing.T) {
	tests := []struct {
		backend string
		want    string
	}{
		{BackendFile, "/data"},
		{BackendSQLite, "/data/adler.db"},
		{BackendBadger, "/data/badger"},
		{BackendMemory, ""},
	}

	for _, tt := range tests {
		t.Run(tt.backend, func(t *testing.T) {
			cfg := Config{Backend: tt.backend, DataDir: "/data"}
			assert.Equal(t, tt.want, cfg.StorePath())
		})
	}
}

func TestValidateMemoryNeedsNoDataDir(t *testing.T) {
	cfg := Default()
	cfg.Backend = BackendMemory
	cfg.DataDir = ""
	assert.NoError(t, cfg.Validate())

	cfg.Backend = BackendFile
	assert.Error(t, cfg.Validate())
}
