package commands

import (
	"context"
	"testing"

	"adler/internal/domain"
)

func TestFuzzyScore(t *testing.T) {
	tests := []struct {
		name      string
		target    string
		query     string
		wantScore int
		wantMin   int // use this for relative comparisons
	}{
		{
			name:      "exact match",
			target:    "Leitura",
			query:     "Leitura",
			wantScore: 150, // 100 for contains + 50 for prefix
		},
		{
			name:      "prefix match",
			target:    "Leitura analitica",
			query:     "Leitura",
			wantScore: 150,
		},
		{
			name:      "substring match",
			target:    "Nivel de leitura",
			query:     "leitura",
			wantScore: 100, // contains only
		},
		{
			name:    "fuzzy match all chars at start",
			target:  "Leitura",
			query:   "lta",
			wantMin: 15,
		},
		{
			name:      "no match",
			target:    "Leitura",
			query:     "xyz",
			wantScore: 0,
		},
		{
			name:      "empty query",
			target:    "Leitura",
			query:     "",
			wantScore: 0,
		},
		{
			name:    "case insensitive",
			target:  "LEITURA",
			query:   "leitura",
			wantMin: 100,
		},
		{
			name:    "term separator",
			target:  "Termo: definicao longa",
			query:   "dl",
			wantMin: 20,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			score := FuzzyScore(tt.target, tt.query)

			if tt.wantScore > 0 {
				if score != tt.wantScore {
					t.Errorf("expected score %d, got %d", tt.wantScore, score)
				}
			} else if tt.wantMin > 0 {
				if score < tt.wantMin {
					t.Errorf("expected score >= %d, got %d", tt.wantMin, score)
				}
			} else {
				if score != 0 {
					t.Errorf("expected score 0, got %d", score)
				}
			}
		})
	}
}

func TestFuzzyScore_Ordering(t *testing.T) {
	query := "leitura"

	exactScore := FuzzyScore("leitura", query)
	prefixScore := FuzzyScore("leitura inspecional", query)
	containsScore := FuzzyScore("boa leitura", query)
	fuzzyScore := FuzzyScore("l.e.i.t.u.r.a", query)

	if exactScore < prefixScore {
		t.Errorf("exact match should score >= prefix: %d < %d", exactScore, prefixScore)
	}
	if prefixScore < containsScore {
		t.Errorf("prefix match should score >= contains: %d < %d", prefixScore, containsScore)
	}
	if containsScore <= fuzzyScore {
		t.Errorf("contains match should score higher than fuzzy: %d <= %d", containsScore, fuzzyScore)
	}
}

func TestFuzzySort(t *testing.T) {
	books := []domain.Book{
		{
			ID:    "b1",
			Title: "Como Ler um Livro",
			Chapters: []domain.Chapter{
				{
					Title:        "Leitura analitica",
					Definitions:  []domain.Definition{{Termo: "Termo", Definicao: "palavra usada sem ambiguidade"}},
					Propositions: []domain.Proposition{{Text: "Toda boa leitura e ativa"}},
				},
			},
		},
		{ID: "b2", Title: "Cozinha"},
	}

	sorted := FuzzySort(Candidates(books), "leitura")

	if len(sorted) != 2 {
		t.Fatalf("expected 2 results, got %d", len(sorted))
	}
	if sorted[0].Kind != MatchChapter || sorted[0].ChapterIndex != 0 {
		t.Errorf("expected chapter hit first, got %+v", sorted[0])
	}
	if sorted[1].Kind != MatchProposition || sorted[1].EntryIndex != 0 {
		t.Errorf("expected proposition hit second, got %+v", sorted[1])
	}

	for i := 1; i < len(sorted); i++ {
		if sorted[i].Score > sorted[i-1].Score {
			t.Errorf("results not sorted by score: %d > %d at index %d",
				sorted[i].Score, sorted[i-1].Score, i)
		}
	}
}

func TestSearchCommand_ShortQuery(t *testing.T) {
	cmd := NewSearchCommand(newDoc(t), "l")
	results, err := cmd.Execute(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if results != nil {
		t.Errorf("expected no results for a one-letter query, got %v", results)
	}
}
