package commands

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"adler/internal/adapters/storage/memory"
	"adler/internal/application"
	"adler/internal/domain"
)

func newDoc(t *testing.T) *application.Document {
	t.Helper()
	n := 0
	doc := application.NewDocument(
		application.NewPersistence(memory.New(), "", nil),
		nil,
		application.WithIDFunc(func() string {
			n++
			return fmt.Sprintf("0000-book-%04d", n)
		}),
	)
	doc.Load(context.Background())
	return doc
}

func TestCreateBookCommand(t *testing.T) {
	ctx := context.Background()
	doc := newDoc(t)

	res, err := NewCreateBookCommand(doc, "  Como Ler um Livro ").Execute(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Como Ler um Livro", res.Book.Title)
	assert.Equal(t, "Created book: ook-0001 Como Ler um Livro", res.Message)

	res, err = NewCreateBookCommand(doc, "").Execute(ctx)
	require.NoError(t, err)
	assert.Equal(t, domain.NewBookTitle, res.Book.Title)
	assert.Len(t, doc.Books(), 2)
}

func TestRenameBookCommand_Validate(t *testing.T) {
	tests := []struct {
		name    string
		ref     string
		title   string
		wantErr string
	}{
		{name: "valid", ref: "0001", title: "Novo"},
		{name: "empty ref", ref: "", title: "Novo", wantErr: "book ID is required"},
		{name: "whitespace title", ref: "0001", title: "  ", wantErr: "title is required"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := NewRenameBookCommand(nil, tt.ref, tt.title).Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			assert.ErrorContains(t, err, tt.wantErr)
		})
	}
}

func TestBookCommands(t *testing.T) {
	ctx := context.Background()
	doc := newDoc(t)

	created, err := NewCreateBookCommand(doc, "Livro").Execute(ctx)
	require.NoError(t, err)
	ref := ShortID(created.Book.ID)

	res, err := NewRenameBookCommand(doc, ref, "Livro X").Execute(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Livro X", res.Book.Title)

	res, err = NewDescribeBookCommand(doc, ref, "sobre leitura").Execute(ctx)
	require.NoError(t, err)
	assert.Equal(t, "sobre leitura", res.Book.Description)

	res, err = NewSetBookTypeCommand(doc, ref, domain.BookTypePractical).Execute(ctx)
	require.NoError(t, err)
	assert.Equal(t, domain.BookTypePractical, res.Book.Type)

	_, err = NewSetBookTypeCommand(doc, ref, "outro").Execute(ctx)
	var verr *application.ValidationError
	assert.ErrorAs(t, err, &verr)

	_, err = NewRenameBookCommand(doc, "missing", "x").Execute(ctx)
	assert.ErrorIs(t, err, application.ErrNotFound)
}

func TestDeleteAndSelectBookCommands(t *testing.T) {
	ctx := context.Background()
	doc := newDoc(t)

	first, _ := NewCreateBookCommand(doc, "Primeiro").Execute(ctx)
	second, _ := NewCreateBookCommand(doc, "Segundo").Execute(ctx)

	sel, err := NewSelectBookCommand(doc, first.Book.ID).Execute(ctx)
	require.NoError(t, err)
	assert.Equal(t, first.Book.ID, sel.Book.ID)
	assert.Equal(t, first.Book.ID, doc.ActiveID())

	del, err := NewDeleteBookCommand(doc, first.Book.ID).Execute(ctx)
	require.NoError(t, err)
	assert.Equal(t, first.Book.ID, del.DeletedID)
	assert.Equal(t, second.Book.ID, del.ActiveID)
	assert.Contains(t, del.Message, "Primeiro")

	assert.Error(t, NewDeleteBookCommand(doc, "").Validate())
}

func TestShortID(t *testing.T) {
	assert.Equal(t, "abc", ShortID("abc"))
	assert.Equal(t, "89abcdef", ShortID("01234567-89abcdef"))
}
