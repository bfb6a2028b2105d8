package commands

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"adler/internal/application"
	"adler/internal/domain"
)

func TestEntryCommands(t *testing.T) {
	ctx := context.Background()
	doc := newDoc(t)
	book, _ := NewCreateBookCommand(doc, "Livro X").Execute(ctx)
	ref := book.Book.ID
	_, err := NewAddChapterCommand(doc, ref, "Cap 1").Execute(ctx)
	require.NoError(t, err)

	res, err := NewAddEntryCommand(doc, EntryTerm, ref, 0, "A", "B").Execute(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, res.EntryIndex)
	assert.Equal(t, []domain.Definition{{Termo: "A", Definicao: "B"}}, res.Chapter.Definitions)

	res, err = NewAddEntryCommand(doc, EntryProposition, ref, 0, "C", "").Execute(ctx)
	require.NoError(t, err)
	assert.Equal(t, []domain.Proposition{{Text: "C"}}, res.Chapter.Propositions)

	outline, err := NewOutlineCommand(doc, "", false).Execute(ctx)
	require.NoError(t, err)
	assert.Equal(t, "# Livro X\n\n## Cap 1\n### Termos\n- **A**: B\n### Proposições\n- C\n\n", outline)

	_, err = NewAddEntryCommand(doc, EntryTerm, ref, 0, "", "").Execute(ctx)
	require.NoError(t, err)
	res, err = NewSetEntryCommand(doc, EntryTerm, ref, 0, 1, domain.FieldTermo, "Z").Execute(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Z", res.Chapter.Definitions[1].Termo)

	res, err = NewMoveEntryCommand(doc, EntryTerm, ref, 0, 1, 0).Execute(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Z", res.Chapter.Definitions[0].Termo)

	res, err = NewSetEntryCommand(doc, EntryProposition, ref, 0, 0, "", "D").Execute(ctx)
	require.NoError(t, err)
	assert.Equal(t, "D", res.Chapter.Propositions[0].Text)

	res, err = NewDeleteEntryCommand(doc, EntryTerm, ref, 0, 0).Execute(ctx)
	require.NoError(t, err)
	assert.Equal(t, []domain.Definition{{Termo: "A", Definicao: "B"}}, res.Chapter.Definitions)

	_, err = NewDeleteEntryCommand(doc, EntryProposition, ref, 0, 3).Execute(ctx)
	assert.ErrorIs(t, err, application.ErrIndexOutOfRange)
}

func TestSetEntryCommand_Validate(t *testing.T) {
	tests := []struct {
		name    string
		kind    EntryKind
		field   domain.DefinitionField
		wantErr bool
	}{
		{"term termo", EntryTerm, domain.FieldTermo, false},
		{"term definicao", EntryTerm, domain.FieldDefinicao, false},
		{"term unknown field", EntryTerm, "nome", true},
		{"proposition ignores field", EntryProposition, "", false},
		{"unknown kind", "note", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := NewSetEntryCommand(nil, tt.kind, "b", 0, 0, tt.field, "v").Validate()
			assert.Equal(t, tt.wantErr, err != nil, "err = %v", err)
		})
	}
}

func TestOutlineCommand_Export(t *testing.T) {
	ctx := context.Background()
	doc := newDoc(t)

	_, err := NewOutlineCommand(doc, "", true).Execute(ctx)
	assert.ErrorIs(t, err, application.ErrNoActiveBook)

	out, err := NewOutlineCommand(doc, "", false).Execute(ctx)
	require.NoError(t, err)
	assert.Equal(t, "# Sem livro\n\n", out)

	book, _ := NewCreateBookCommand(doc, "Livro").Execute(ctx)
	_, _ = NewAddChapterCommand(doc, book.Book.ID, "Um").Execute(ctx)

	out, err = NewOutlineCommand(doc, book.Book.ID, true).Execute(ctx)
	require.NoError(t, err)
	assert.Equal(t, "## I. Um\n\n", out)
}
