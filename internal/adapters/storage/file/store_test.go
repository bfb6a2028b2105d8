package file

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"adler/internal/ports"
)

func TestStoreRoundTrip(t *testing.T) {
	ctx := context.Background()
	dir := filepath.Join(t.TempDir(), "data")
	s := New(dir)

	_, err := s.Get(ctx, "adler_books_v1")
	assert.ErrorIs(t, err, ports.ErrBlobNotFound)

	require.NoError(t, s.Put(ctx, "adler_books_v1", []byte(`[{"id":"a"}]`)))
	require.NoError(t, s.Put(ctx, "adler_books_v1", []byte(`[]`)))

	got, err := s.Get(ctx, "adler_books_v1")
	require.NoError(t, err)
	assert.Equal(t, "[]", string(got))
	assert.Equal(t, filepath.Join(dir, "adler_books_v1.json"), s.Path("adler_books_v1"))
}

func TestStoreLeavesNoTempFiles(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	s := New(dir)

	for range 3 {
		require.NoError(t, s.Put(ctx, "k", []byte("v")))
	}

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "k.json", entries[0].Name())
}

func TestStorePathStaysInDir(t *testing.T) {
	s := New("/data")
	assert.Equal(t, "/data", filepath.Dir(s.Path("../etc/passwd")))
}

func TestStoreReadError(t *testing.T) {
	dir := t.TempDir()
	s := New(dir)
	// a directory where the blob file should be
	require.NoError(t, os.MkdirAll(s.Path("k"), 0755))

	_, err := s.Get(context.Background(), "k")
	require.Error(t, err)
	assert.NotErrorIs(t, err, ports.ErrBlobNotFound)
}
