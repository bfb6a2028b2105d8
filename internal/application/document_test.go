package application

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"adler/internal/adapters/storage/memory"
	"adler/internal/domain"
	"adler/internal/logger"
)

type recordingSink struct {
	outlines []string
}

func (s *recordingSink) Redraw(outline string) {
	s.outlines = append(s.outlines, outline)
}

func (s *recordingSink) last() string {
	if len(s.outlines) == 0 {
		return ""
	}
	return s.outlines[len(s.outlines)-1]
}

type fixture struct {
	doc   *Document
	store *memory.Store
	sink  *recordingSink
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	store := memory.New()
	sink := &recordingSink{}
	doc := NewDocument(
		NewPersistence(store, "", logger.Discard()),
		sink,
		WithIDFunc(seqIDs()),
	)
	doc.Load(context.Background())
	return &fixture{doc: doc, store: store, sink: sink}
}

// counts returns the number of saves and redraws since the fixture was built
func (f *fixture) counts() (int, int) {
	return f.store.Puts(), len(f.sink.outlines) - 1
}

func TestLoadEmptyProjectsNoBook(t *testing.T) {
	f := newFixture(t)

	assert.Equal(t, "# Sem livro\n\n", f.sink.last())
	_, ok := f.doc.Active()
	assert.False(t, ok)
	assert.Empty(t, f.doc.Books())
}

func TestCreateBook(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	first, err := f.doc.CreateBook(ctx)
	require.NoError(t, err)
	second, err := f.doc.CreateBook(ctx)
	require.NoError(t, err)

	assert.Equal(t, domain.NewBookTitle, first.Title)
	assert.Equal(t, domain.BookTypeTheoretical, first.Type)
	assert.Empty(t, first.Chapters)

	books := f.doc.Books()
	require.Len(t, books, 2)
	assert.Equal(t, second.ID, books[0].ID, "new books are prepended")
	assert.Equal(t, second.ID, f.doc.ActiveID())

	saves, redraws := f.counts()
	assert.Equal(t, 2, saves)
	assert.Equal(t, 2, redraws)
	assert.Equal(t, "# Livro sem título\n\n", f.sink.last())
}

func TestScenarioProjection(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	b, err := f.doc.CreateBook(ctx)
	require.NoError(t, err)
	require.NoError(t, f.doc.RenameBook(ctx, b.ID, "Livro X"))
	_, err = f.doc.CreateChapter(ctx, b.ID)
	require.NoError(t, err)
	require.NoError(t, f.doc.RenameChapter(ctx, b.ID, 0, "Cap 1"))
	require.NoError(t, f.doc.AddDefinition(ctx, b.ID, 0))
	require.NoError(t, f.doc.UpdateDefinition(ctx, b.ID, 0, 0, domain.FieldTermo, "A"))
	require.NoError(t, f.doc.UpdateDefinition(ctx, b.ID, 0, 0, domain.FieldDefinicao, "B"))
	require.NoError(t, f.doc.AddProposition(ctx, b.ID, 0))
	require.NoError(t, f.doc.UpdateProposition(ctx, b.ID, 0, 0, "C"))

	want := "# Livro X\n\n## Cap 1\n### Termos\n- **A**: B\n### Proposições\n- C\n\n"
	assert.Equal(t, want, f.sink.last())
	assert.Equal(t, want, f.doc.Outline())

	saves, redraws := f.counts()
	assert.Equal(t, 9, saves)
	assert.Equal(t, 9, redraws)
}

func TestSaveLoadRoundTrip(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	a, _ := f.doc.CreateBook(ctx)
	b, _ := f.doc.CreateBook(ctx)
	c, _ := f.doc.CreateBook(ctx)
	_, _ = f.doc.CreateChapter(ctx, a.ID)
	require.NoError(t, f.doc.AddDefinition(ctx, a.ID, 0))
	require.NoError(t, f.doc.SetBookType(ctx, c.ID, domain.BookTypePractical))
	require.NoError(t, f.doc.SetBookDescription(ctx, c.ID, "notas"))
	require.NoError(t, f.doc.DeleteBook(ctx, b.ID))

	reloaded := NewDocument(NewPersistence(f.store, "", nil), nil)
	reloaded.Load(ctx)

	assert.Equal(t, f.doc.Books(), reloaded.Books())
	assert.Equal(t, c.ID, reloaded.ActiveID(), "first book is active after load")
}

func TestDeleteBookActiveFallback(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	b1, _ := f.doc.CreateBook(ctx)
	b2, _ := f.doc.CreateBook(ctx)
	b3, _ := f.doc.CreateBook(ctx)
	// order is b3, b2, b1; active b3

	require.NoError(t, f.doc.SelectBook(b2.ID))
	require.NoError(t, f.doc.DeleteBook(ctx, b2.ID))
	assert.Equal(t, b3.ID, f.doc.ActiveID(), "first remaining becomes active")

	require.NoError(t, f.doc.DeleteBook(ctx, b1.ID))
	assert.Equal(t, b3.ID, f.doc.ActiveID(), "deleting an inactive book keeps the active one")

	require.NoError(t, f.doc.DeleteBook(ctx, b3.ID))
	assert.Equal(t, "", f.doc.ActiveID())
	assert.Equal(t, "# Sem livro\n\n", f.sink.last())
}

func TestSelectBookDoesNotPersist(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	b1, _ := f.doc.CreateBook(ctx)
	_, _ = f.doc.CreateBook(ctx)
	savesBefore, redrawsBefore := f.counts()

	require.NoError(t, f.doc.SelectBook(b1.ID))

	saves, redraws := f.counts()
	assert.Equal(t, savesBefore, saves)
	assert.Equal(t, redrawsBefore+1, redraws)
	assert.Equal(t, b1.ID, f.doc.ActiveID())
}

func TestReorderChapters(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	b, _ := f.doc.CreateBook(ctx)
	c1, _ := f.doc.CreateChapter(ctx, b.ID)
	c2, _ := f.doc.CreateChapter(ctx, b.ID)
	c3, _ := f.doc.CreateChapter(ctx, b.ID)
	require.NoError(t, f.doc.RenameChapter(ctx, b.ID, 0, "C1"))
	require.NoError(t, f.doc.RenameChapter(ctx, b.ID, 1, "C2"))
	require.NoError(t, f.doc.RenameChapter(ctx, b.ID, 2, "C3"))

	savesBefore, redrawsBefore := f.counts()
	require.NoError(t, f.doc.ReorderChapters(ctx, b.ID, []string{c2.ID, c1.ID, c3.ID}))

	saves, redraws := f.counts()
	assert.Equal(t, savesBefore+1, saves)
	assert.Equal(t, redrawsBefore+1, redraws)

	got, err := f.doc.Book(b.ID)
	require.NoError(t, err)
	ids := []string{got.Chapters[0].ID, got.Chapters[1].ID, got.Chapters[2].ID}
	assert.Equal(t, []string{c2.ID, c1.ID, c3.ID}, ids)
	assert.Equal(t, "C2", got.Chapters[0].Title)
	assert.Equal(t, "# Livro sem título\n\n## C2\n\n## C1\n\n## C3\n\n", f.sink.last())
}

func TestReorderChaptersRejectsNonPermutation(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	b, _ := f.doc.CreateBook(ctx)
	c1, _ := f.doc.CreateChapter(ctx, b.ID)
	_, _ = f.doc.CreateChapter(ctx, b.ID)
	savesBefore, _ := f.counts()

	tests := []struct {
		name  string
		order []string
	}{
		{"missing", []string{c1.ID}},
		{"repeated", []string{c1.ID, c1.ID}},
		{"unknown", []string{c1.ID, "nope"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := f.doc.ReorderChapters(ctx, b.ID, tt.order)
			var verr *ValidationError
			assert.ErrorAs(t, err, &verr)
		})
	}

	saves, _ := f.counts()
	assert.Equal(t, savesBefore, saves)
}

func TestMoveChapter(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	b, _ := f.doc.CreateBook(ctx)
	c1, _ := f.doc.CreateChapter(ctx, b.ID)
	c2, _ := f.doc.CreateChapter(ctx, b.ID)
	c3, _ := f.doc.CreateChapter(ctx, b.ID)

	t.Run("no-op", func(t *testing.T) {
		savesBefore, redrawsBefore := f.counts()
		require.NoError(t, f.doc.MoveChapter(ctx, b.ID, 1, 1))
		saves, redraws := f.counts()
		assert.Equal(t, savesBefore, saves)
		assert.Equal(t, redrawsBefore, redraws)
	})

	t.Run("move last to first", func(t *testing.T) {
		require.NoError(t, f.doc.MoveChapter(ctx, b.ID, 2, 0))
		got, _ := f.doc.Book(b.ID)
		assert.Equal(t, c3.ID, got.Chapters[0].ID)
		assert.Equal(t, c1.ID, got.Chapters[1].ID)
		assert.Equal(t, c2.ID, got.Chapters[2].ID)
	})

	t.Run("out of range", func(t *testing.T) {
		err := f.doc.MoveChapter(ctx, b.ID, 0, 3)
		assert.ErrorIs(t, err, ErrIndexOutOfRange)
	})
}

func TestDefinitionsAndPropositions(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	b, _ := f.doc.CreateBook(ctx)
	_, _ = f.doc.CreateChapter(ctx, b.ID)
	for range 3 {
		require.NoError(t, f.doc.AddDefinition(ctx, b.ID, 0))
		require.NoError(t, f.doc.AddProposition(ctx, b.ID, 0))
	}
	for i, s := range []string{"a", "b", "c"} {
		require.NoError(t, f.doc.UpdateDefinition(ctx, b.ID, 0, i, domain.FieldTermo, s))
		require.NoError(t, f.doc.UpdateProposition(ctx, b.ID, 0, i, s))
	}

	require.NoError(t, f.doc.MoveDefinition(ctx, b.ID, 0, 0, 2))
	require.NoError(t, f.doc.MoveProposition(ctx, b.ID, 0, 2, 0))
	require.NoError(t, f.doc.DeleteDefinition(ctx, b.ID, 0, 0))
	require.NoError(t, f.doc.DeleteProposition(ctx, b.ID, 0, 2))

	got, _ := f.doc.Book(b.ID)
	ch := got.Chapters[0]
	assert.Equal(t, []domain.Definition{{Termo: "c"}, {Termo: "a"}}, ch.Definitions)
	assert.Equal(t, []domain.Proposition{{Text: "c"}, {Text: "a"}}, ch.Propositions)

	t.Run("reorder replaces wholesale", func(t *testing.T) {
		final := []domain.Definition{{Termo: "z", Definicao: "zz"}}
		require.NoError(t, f.doc.ReorderDefinitions(ctx, b.ID, 0, final))
		require.NoError(t, f.doc.ReorderPropositions(ctx, b.ID, 0, []domain.Proposition{}))

		got, _ := f.doc.Book(b.ID)
		assert.Equal(t, final, got.Chapters[0].Definitions)
		assert.Empty(t, got.Chapters[0].Propositions)
	})

	t.Run("bad field", func(t *testing.T) {
		err := f.doc.UpdateDefinition(ctx, b.ID, 0, 0, "nome", "x")
		var verr *ValidationError
		assert.ErrorAs(t, err, &verr)
	})

	t.Run("bad entry index", func(t *testing.T) {
		err := f.doc.DeleteDefinition(ctx, b.ID, 0, 5)
		assert.ErrorIs(t, err, ErrIndexOutOfRange)
		err = f.doc.UpdateProposition(ctx, b.ID, 0, -1, "x")
		assert.ErrorIs(t, err, ErrIndexOutOfRange)
	})

	t.Run("bad chapter index", func(t *testing.T) {
		err := f.doc.AddDefinition(ctx, b.ID, 1)
		assert.ErrorIs(t, err, ErrIndexOutOfRange)
	})
}

func TestMoveEntrySamePositionDoesNothing(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	b, _ := f.doc.CreateBook(ctx)
	_, _ = f.doc.CreateChapter(ctx, b.ID)
	require.NoError(t, f.doc.AddDefinition(ctx, b.ID, 0))
	require.NoError(t, f.doc.AddProposition(ctx, b.ID, 0))
	saves, redraws := f.counts()

	require.NoError(t, f.doc.MoveDefinition(ctx, b.ID, 0, 0, 0))
	require.NoError(t, f.doc.MoveProposition(ctx, b.ID, 0, 0, 0))

	gotSaves, gotRedraws := f.counts()
	assert.Equal(t, saves, gotSaves)
	assert.Equal(t, redraws, gotRedraws)

	err := f.doc.MoveDefinition(ctx, b.ID, 0, 0, 1)
	assert.ErrorIs(t, err, ErrIndexOutOfRange)
}

func TestMoveEntryConcurrentWithAdd(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	b, _ := f.doc.CreateBook(ctx)
	_, _ = f.doc.CreateChapter(ctx, b.ID)
	for range 2 {
		require.NoError(t, f.doc.AddDefinition(ctx, b.ID, 0))
		require.NoError(t, f.doc.AddProposition(ctx, b.ID, 0))
	}

	const n = 500
	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		for range n {
			assert.NoError(t, f.doc.MoveDefinition(ctx, b.ID, 0, 0, 1))
			assert.NoError(t, f.doc.MoveProposition(ctx, b.ID, 0, 1, 0))
		}
	}()
	go func() {
		defer wg.Done()
		for range n {
			assert.NoError(t, f.doc.AddDefinition(ctx, b.ID, 0))
			assert.NoError(t, f.doc.AddProposition(ctx, b.ID, 0))
		}
	}()
	wg.Wait()

	got, _ := f.doc.Book(b.ID)
	assert.Len(t, got.Chapters[0].Definitions, n+2)
	assert.Len(t, got.Chapters[0].Propositions, n+2)
}

func TestDeleteChapter(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	b, _ := f.doc.CreateBook(ctx)
	_, _ = f.doc.CreateChapter(ctx, b.ID)
	c2, _ := f.doc.CreateChapter(ctx, b.ID)

	require.NoError(t, f.doc.DeleteChapter(ctx, b.ID, 0))
	got, _ := f.doc.Book(b.ID)
	require.Len(t, got.Chapters, 1)
	assert.Equal(t, c2.ID, got.Chapters[0].ID)

	assert.ErrorIs(t, f.doc.DeleteChapter(ctx, b.ID, 1), ErrIndexOutOfRange)
}

func TestUnknownBook(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	assert.ErrorIs(t, f.doc.RenameBook(ctx, "nope", "x"), ErrNotFound)
	assert.ErrorIs(t, f.doc.DeleteBook(ctx, "nope"), ErrNotFound)
	assert.ErrorIs(t, f.doc.SelectBook("nope"), ErrNotFound)
	_, err := f.doc.CreateChapter(ctx, "nope")
	assert.ErrorIs(t, err, ErrNotFound)

	var verr *ValidationError
	assert.ErrorAs(t, f.doc.RenameBook(ctx, "", "x"), &verr)
}

func TestSaveFailureKeepsMutation(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	b, _ := f.doc.CreateBook(ctx)
	boom := errors.New("quota exceeded")
	f.store.PutErr = boom
	_, redrawsBefore := f.counts()

	err := f.doc.RenameBook(ctx, b.ID, "Novo")

	assert.ErrorIs(t, err, boom)
	got, _ := f.doc.Book(b.ID)
	assert.Equal(t, "Novo", got.Title)
	_, redraws := f.counts()
	assert.Equal(t, redrawsBefore+1, redraws)
	assert.Equal(t, "# Novo\n\n", f.sink.last())
}

func TestCopiesDoNotAlias(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	b, _ := f.doc.CreateBook(ctx)
	_, _ = f.doc.CreateChapter(ctx, b.ID)

	got, _ := f.doc.Book(b.ID)
	got.Chapters[0].Title = "mutated"

	again, _ := f.doc.Book(b.ID)
	assert.Equal(t, domain.NewChapterTitle, again.Chapters[0].Title)
}

func TestResolveBookID(t *testing.T) {
	ctx := context.Background()
	store := memory.New()
	ids := []string{"0190aaaa", "0190aabb", "0190ccdd"}
	n := 0
	doc := NewDocument(NewPersistence(store, "", nil), nil, WithIDFunc(func() string {
		id := ids[n]
		n++
		return id
	}))
	for range ids {
		_, err := doc.CreateBook(ctx)
		require.NoError(t, err)
	}

	tests := []struct {
		ref     string
		want    string
		wantErr error
	}{
		{ref: "0190aabb", want: "0190aabb"},
		{ref: "0190c", want: "0190ccdd"},
		{ref: "0190aaa", want: "0190aaaa"},
		{ref: "bb", want: "0190aabb"},
		{ref: "zz", wantErr: ErrNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.ref, func(t *testing.T) {
			got, err := doc.ResolveBookID(tt.ref)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	_, err := doc.ResolveBookID("0190aa")
	var verr *ValidationError
	assert.ErrorAs(t, err, &verr, "ambiguous prefix")
}

func TestExportOutline(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	b, _ := f.doc.CreateBook(ctx)
	_, _ = f.doc.CreateChapter(ctx, b.ID)
	_, _ = f.doc.CreateChapter(ctx, b.ID)
	require.NoError(t, f.doc.RenameChapter(ctx, b.ID, 1, ""))

	out, err := f.doc.ExportOutline(b.ID)
	require.NoError(t, err)
	assert.Equal(t, "## I. Capítulo sem título\n\n## II. Capítulo 2\n\n", out)
}
