package commands

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"adler/internal/application"
	"adler/internal/ports"
)

type fakeExporter struct {
	got ports.ExportBook
	err error
}

func (f *fakeExporter) Export(_ context.Context, book ports.ExportBook, dir string) (string, error) {
	f.got = book
	if f.err != nil {
		return "", f.err
	}
	return filepath.Join(dir, book.Filename), nil
}

func TestExportCommand(t *testing.T) {
	ctx := context.Background()
	doc := newDoc(t)
	exp := &fakeExporter{}

	_, err := NewExportCommand(doc, exp, "", "/tmp/out").Execute(ctx)
	assert.ErrorIs(t, err, application.ErrNoActiveBook)

	book, _ := NewCreateBookCommand(doc, "Como  Ler um Livro").Execute(ctx)
	_, _ = NewDescribeBookCommand(doc, book.Book.ID, "notas").Execute(ctx)
	_, _ = NewAddChapterCommand(doc, book.Book.ID, "Um").Execute(ctx)

	res, err := NewExportCommand(doc, exp, "", "/tmp/out").Execute(ctx)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join("/tmp/out", "Como_Ler_um_Livro.pdf"), res.Path)
	assert.Equal(t, "Como  Ler um Livro", exp.got.Title)
	assert.Equal(t, "notas", exp.got.Description)
	assert.Equal(t, "## I. Um\n\n", exp.got.Outline)

	exp.err = errors.New("disk full")
	_, err = NewExportCommand(doc, exp, book.Book.ID, "/tmp/out").Execute(ctx)
	assert.ErrorContains(t, err, "disk full")
}

func TestExportCommand_Validate(t *testing.T) {
	assert.ErrorIs(t, NewExportCommand(nil, nil, "", "dir").Validate(), application.ErrInvalidOperation)
	assert.Error(t, NewExportCommand(nil, &fakeExporter{}, "", "").Validate())
}
