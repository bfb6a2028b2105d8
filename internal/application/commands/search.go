package commands

import (
	"context"
	"sort"
	"strings"

	"adler/internal/application"
	"adler/internal/domain"
)

// MatchKind tells which part of a book a search hit came from
type MatchKind string

const (
	MatchBook        MatchKind = "book"
	MatchChapter     MatchKind = "chapter"
	MatchTerm        MatchKind = "term"
	MatchProposition MatchKind = "proposition"
)

// SearchResult is one scored hit. ChapterIndex and EntryIndex are -1 when
// they do not apply.
type SearchResult struct {
	BookID       string
	BookTitle    string
	Kind         MatchKind
	ChapterIndex int
	EntryIndex   int
	Text         string
	Score        int
}

// SearchCommand searches every book with fuzzy matching
type SearchCommand struct {
	doc   *application.Document
	Query string
}

// NewSearchCommand creates a new SearchCommand
func NewSearchCommand(doc *application.Document, query string) *SearchCommand {
	return &SearchCommand{
		doc:   doc,
		Query: query,
	}
}

// Execute runs the search command and returns scored, sorted results
func (c *SearchCommand) Execute(ctx context.Context) ([]SearchResult, error) {
	if len(c.Query) < 2 {
		return nil, nil
	}
	return FuzzySort(Candidates(c.doc.Books()), c.Query), nil
}

// Candidates flattens books into searchable entries
func Candidates(books []domain.Book) []SearchResult {
	var out []SearchResult
	for _, b := range books {
		hit := func(kind MatchKind, ci, ei int, text string) {
			out = append(out, SearchResult{
				BookID:       b.ID,
				BookTitle:    b.Title,
				Kind:         kind,
				ChapterIndex: ci,
				EntryIndex:   ei,
				Text:         text,
			})
		}

		hit(MatchBook, -1, -1, b.Title)
		for ci, ch := range b.Chapters {
			hit(MatchChapter, ci, -1, ch.Title)
			for ei, d := range ch.Definitions {
				hit(MatchTerm, ci, ei, d.Termo+": "+d.Definicao)
			}
			for ei, p := range ch.Propositions {
				hit(MatchProposition, ci, ei, p.Text)
			}
		}
	}
	return out
}

// FuzzyScore calculates a relevance score for how well target matches query
func FuzzyScore(target, query string) int {
	target = strings.ToLower(target)
	query = strings.ToLower(query)

	if len(query) == 0 {
		return 0
	}

	// Check for exact substring match first (highest priority)
	if strings.Contains(target, query) {
		score := 100
		// Bonus if it starts with query
		if strings.HasPrefix(target, query) {
			score += 50
		}
		return score
	}

	// Fuzzy match: check if chars appear in order
	score := 0
	queryIdx := 0
	prevMatchIdx := -1

	for i := 0; i < len(target) && queryIdx < len(query); i++ {
		if target[i] == query[queryIdx] {
			if prevMatchIdx == i-1 {
				score += 10 // consecutive chars
			}
			if i == 0 {
				score += 15 // start of string
			}
			if i > 0 && (target[i-1] == ' ' || target[i-1] == ':' || target[i-1] == '-') {
				score += 10 // after separator
			}
			score += 1
			prevMatchIdx = i
			queryIdx++
		}
	}

	if queryIdx == len(query) {
		return score
	}
	return 0
}

// FuzzySort scores candidates against the query, drops misses and sorts by
// relevance
func FuzzySort(candidates []SearchResult, query string) []SearchResult {
	scored := make([]SearchResult, 0, len(candidates))

	for _, r := range candidates {
		if s := FuzzyScore(r.Text, query); s > 0 {
			r.Score = s
			scored = append(scored, r)
		}
	}

	// Sort by score descending, keeping document order for ties
	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].Score > scored[j].Score
	})

	return scored
}
