package application

import (
	"fmt"
	"strings"

	"adler/internal/domain"
)

// ValidateRequired checks if a string field is non-empty (after trimming whitespace).
// Returns a ValidationError if the field is empty.
func ValidateRequired(fieldName, value string) error {
	if strings.TrimSpace(value) == "" {
		return &ValidationError{
			Field:   fieldName,
			Message: fmt.Sprintf("%s is required", formatFieldName(fieldName)),
		}
	}
	return nil
}

// formatFieldName converts camelCase field names to space-separated words
// for more readable error messages (e.g., "bookID" -> "book ID")
func formatFieldName(fieldName string) string {
	replacements := map[string]string{
		"bookID":       "book ID",
		"chapterIndex": "chapter index",
		"entryIndex":   "entry index",
		"title":        "title",
		"field":        "field",
		"order":        "order",
	}

	if formatted, ok := replacements[fieldName]; ok {
		return formatted
	}
	return fieldName
}

// ValidateIndex checks that a positional index addresses an element of a
// sequence of length n.
func ValidateIndex(kind string, index, n int) error {
	if index < 0 || index >= n {
		return &IndexError{Kind: kind, Index: index, Len: n}
	}
	return nil
}

// ValidateBookType checks that t names a known book type
func ValidateBookType(t domain.BookType) error {
	if !t.Valid() {
		return &ValidationError{
			Field:   "type",
			Message: fmt.Sprintf("expected %q or %q, got: %q", domain.BookTypeTheoretical, domain.BookTypePractical, t),
		}
	}
	return nil
}

// ValidateDefinitionField checks that f names a definition field
func ValidateDefinitionField(f domain.DefinitionField) error {
	if !f.Valid() {
		return &ValidationError{
			Field:   "field",
			Message: fmt.Sprintf("expected %q or %q, got: %q", domain.FieldTermo, domain.FieldDefinicao, f),
		}
	}
	return nil
}

// ValidatePermutation checks that order holds exactly the IDs in current,
// each once.
func ValidatePermutation(current, order []string) error {
	if len(current) != len(order) {
		return &ValidationError{
			Field:   "order",
			Message: fmt.Sprintf("expected %d ids, got %d", len(current), len(order)),
		}
	}

	remaining := make(map[string]int, len(current))
	for _, id := range current {
		remaining[id]++
	}
	for _, id := range order {
		if remaining[id] == 0 {
			return &ValidationError{
				Field:   "order",
				Message: fmt.Sprintf("unexpected or repeated id: %s", id),
			}
		}
		remaining[id]--
	}
	return nil
}
