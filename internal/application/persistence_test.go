package application

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"adler/internal/adapters/storage/memory"
	"adler/internal/domain"
	"adler/internal/logger"
)

func seqIDs() domain.IDFunc {
	n := 0
	return func() string {
		n++
		return fmt.Sprintf("id-%d", n)
	}
}

func TestPersistenceLoadMissingIsEmpty(t *testing.T) {
	p := NewPersistence(memory.New(), "", logger.Discard())

	books := p.Load(context.Background())

	assert.NotNil(t, books)
	assert.Empty(t, books)
	assert.Equal(t, DefaultStorageKey, p.Key())
}

func TestPersistenceLoadCorruptedIsEmptyAndWarns(t *testing.T) {
	ctx := context.Background()
	store := memory.New()
	require.NoError(t, store.Put(ctx, DefaultStorageKey, []byte("{not json")))

	var buf bytes.Buffer
	p := NewPersistence(store, "", logger.New(&buf))

	books := p.Load(ctx)

	assert.Empty(t, books)
	assert.Contains(t, buf.String(), "WARN")
	assert.Contains(t, buf.String(), DefaultStorageKey)
}

func TestPersistenceLoadReadFailureIsEmpty(t *testing.T) {
	store := memory.New()
	store.GetErr = errors.New("disk gone")

	var buf bytes.Buffer
	p := NewPersistence(store, "", logger.New(&buf))

	assert.Empty(t, p.Load(context.Background()))
	assert.Contains(t, buf.String(), "disk gone")
}

func TestPersistenceRoundTrip(t *testing.T) {
	ctx := context.Background()
	p := NewPersistence(memory.New(), "custom", logger.Discard())

	books := []domain.Book{
		{
			ID:    "b1",
			Title: "Livro X",
			Type:  domain.BookTypePractical,
			Chapters: []domain.Chapter{
				{
					ID:           "c1",
					Title:        "Cap 1",
					Description:  "desc",
					Definitions:  []domain.Definition{{Termo: "A", Definicao: "B"}},
					Propositions: []domain.Proposition{{Text: "C"}},
				},
			},
		},
		domain.NewBook("b2"),
	}

	require.NoError(t, p.Save(ctx, books))
	assert.Equal(t, books, p.Load(ctx))
}

func TestPersistenceSaveFailure(t *testing.T) {
	store := memory.New()
	boom := errors.New("quota exceeded")
	store.PutErr = boom
	p := NewPersistence(store, "", logger.Discard())

	err := p.Save(context.Background(), []domain.Book{domain.NewBook("b1")})

	assert.ErrorIs(t, err, boom)
}

func TestDecodeLegacyShape(t *testing.T) {
	data := []byte(`[{"id":"b1","title":"Old","description":"","chapters":[
		{"title":"Cap","description":"","definitions":[{"termo":"X","definicao":"x"}],"propositions":[],
		 "parts":[
			{"definitions":[{"termo":"A","definicao":"a"}],"propositions":[{"text":"p1"}]},
			{"definitions":[{"termo":"B","definicao":"b"}],"propositions":[{"text":"p2"}]}
		 ]}
	]}]`)

	books, err := Decode(data, seqIDs())
	require.NoError(t, err)
	require.Len(t, books, 1)

	b := books[0]
	assert.Equal(t, domain.BookTypeTheoretical, b.Type)
	require.Len(t, b.Chapters, 1)

	ch := b.Chapters[0]
	assert.Equal(t, "id-1", ch.ID)
	assert.Equal(t, []domain.Definition{
		{Termo: "X", Definicao: "x"},
		{Termo: "A", Definicao: "a"},
		{Termo: "B", Definicao: "b"},
	}, ch.Definitions)
	assert.Equal(t, []domain.Proposition{{Text: "p1"}, {Text: "p2"}}, ch.Propositions)
}

func TestDecodeEmpty(t *testing.T) {
	for _, in := range []string{"", "  ", "null", "[]"} {
		t.Run(fmt.Sprintf("%q", in), func(t *testing.T) {
			books, err := Decode([]byte(in), seqIDs())
			require.NoError(t, err)
			assert.Empty(t, books)
		})
	}
}

func TestEncodeUsesStoredKeys(t *testing.T) {
	b := domain.NewBook("b1")
	b.Chapters = []domain.Chapter{domain.NewChapter("c1")}
	b.Chapters[0].Definitions = []domain.Definition{{Termo: "t", Definicao: "d"}}

	data, err := Encode([]domain.Book{b})
	require.NoError(t, err)

	s := string(data)
	assert.Contains(t, s, `"termo":"t"`)
	assert.Contains(t, s, `"definicao":"d"`)
	assert.NotContains(t, s, `"parts"`)
}
