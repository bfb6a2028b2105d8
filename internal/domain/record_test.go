package domain

import (
	"fmt"
	"reflect"
	"testing"
)

func counterIDs() IDFunc {
	n := 0
	return func() string {
		n++
		return fmt.Sprintf("id-%d", n)
	}
}

func legacyRecord() ChapterRecord {
	return ChapterRecord{
		Title:        "Legado",
		Definitions:  []Definition{{Termo: "root"}},
		Propositions: nil,
		Parts: []ChapterPart{
			{
				Definitions:  []Definition{{Termo: "a"}, {Termo: "b"}},
				Propositions: []Proposition{{Text: "p1"}},
			},
			{
				Definitions:  []Definition{{Termo: "c"}},
				Propositions: []Proposition{{Text: "p2"}, {Text: "p3"}},
			},
		},
	}
}

func TestNormalizeChapter(t *testing.T) {
	t.Run("flattens parts in order", func(t *testing.T) {
		got := NormalizeChapter(legacyRecord(), counterIDs())

		wantDefs := []Definition{{Termo: "root"}, {Termo: "a"}, {Termo: "b"}, {Termo: "c"}}
		if !reflect.DeepEqual(got.Definitions, wantDefs) {
			t.Errorf("definitions = %v, want %v", got.Definitions, wantDefs)
		}
		wantProps := []Proposition{{Text: "p1"}, {Text: "p2"}, {Text: "p3"}}
		if !reflect.DeepEqual(got.Propositions, wantProps) {
			t.Errorf("propositions = %v, want %v", got.Propositions, wantProps)
		}
		if got.IsLegacy() {
			t.Error("expected parts to be dropped")
		}
		if got.ID != "id-1" {
			t.Errorf("expected generated id, got %q", got.ID)
		}
	})

	t.Run("is idempotent", func(t *testing.T) {
		ids := counterIDs()
		once := NormalizeChapter(legacyRecord(), ids)
		twice := NormalizeChapter(once, ids)
		if !reflect.DeepEqual(once, twice) {
			t.Errorf("second normalization changed the record:\n%v\n%v", once, twice)
		}
	})

	t.Run("keeps existing id", func(t *testing.T) {
		r := ChapterRecord{ID: "keep", Title: "x"}
		got := NormalizeChapter(r, counterIDs())
		if got.ID != "keep" {
			t.Errorf("expected id to be kept, got %q", got.ID)
		}
		if got.Definitions == nil || got.Propositions == nil {
			t.Error("expected empty, non-nil entry slices")
		}
	})

	t.Run("drops an empty parts list", func(t *testing.T) {
		r := ChapterRecord{ID: "x", Parts: []ChapterPart{}}
		if !r.IsLegacy() {
			t.Fatal("expected a record with parts to be legacy")
		}
		got := NormalizeChapter(r, nil)
		if got.IsLegacy() || len(got.Definitions) != 0 || len(got.Propositions) != 0 {
			t.Errorf("unexpected normalization of empty parts: %+v", got)
		}
	})

	t.Run("leaves normalized entries in place", func(t *testing.T) {
		r := ChapterRecord{
			ID:           "x",
			Definitions:  []Definition{{Termo: "a", Definicao: "b"}},
			Propositions: []Proposition{{Text: "c"}},
		}
		got := NormalizeChapter(r, counterIDs())
		if !reflect.DeepEqual(got, r) {
			t.Errorf("normalized record changed:\n%v\n%v", got, r)
		}
	})

	t.Run("does not alias the input", func(t *testing.T) {
		r := ChapterRecord{ID: "x", Definitions: []Definition{{Termo: "a"}}}
		got := NormalizeChapter(r, nil)
		got.Definitions[0].Termo = "changed"
		if r.Definitions[0].Termo != "a" {
			t.Error("normalization aliased the input definitions")
		}
	})
}

func TestNormalizeBook(t *testing.T) {
	r := BookRecord{
		Title:    "Sem id",
		Chapters: []ChapterRecord{legacyRecord()},
	}

	b := NormalizeBook(r, counterIDs())

	if b.ID != "id-1" {
		t.Errorf("expected book id id-1, got %q", b.ID)
	}
	if b.Type != BookTypeTheoretical {
		t.Errorf("expected default type, got %q", b.Type)
	}
	if len(b.Chapters) != 1 || b.Chapters[0].ID != "id-2" {
		t.Fatalf("unexpected chapters: %+v", b.Chapters)
	}
	if len(b.Chapters[0].Definitions) != 4 {
		t.Errorf("expected 4 flattened definitions, got %d", len(b.Chapters[0].Definitions))
	}
}

func TestRecordsRoundTrip(t *testing.T) {
	books := []Book{*sampleBook()}
	books[0].Type = BookTypePractical

	got := NormalizeBooks(Records(books), nil)
	if !reflect.DeepEqual(got, books) {
		t.Errorf("round trip mismatch:\n%+v\n%+v", got, books)
	}
}
