package domain

import "slices"

// BookType classifies a book the way Adler does: theoretical or practical
type BookType string

const (
	BookTypeTheoretical BookType = "teorico"
	BookTypePractical   BookType = "pratico"
)

// String returns the display label for the book type
func (t BookType) String() string {
	switch t {
	case BookTypePractical:
		return "Prático"
	default:
		return "Teórico"
	}
}

// Valid reports whether t is a known book type
func (t BookType) Valid() bool {
	return t == BookTypeTheoretical || t == BookTypePractical
}

// Placeholders used when creating entities and when projecting blank fields
const (
	NewBookTitle    = "Livro sem título"
	NewChapterTitle = "Capítulo sem título"
)

// Book is the top-level document unit
type Book struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Type        BookType  `json:"type"`
	Chapters    []Chapter `json:"chapters"`
}

// Chapter is an ordered section of a book
type Chapter struct {
	ID           string        `json:"id"`
	Title        string        `json:"title"`
	Description  string        `json:"description"`
	Definitions  []Definition  `json:"definitions"`
	Propositions []Proposition `json:"propositions"`
}

// Definition is a term/explanation pair, addressed by its position in the chapter
type Definition struct {
	Termo     string `json:"termo"`
	Definicao string `json:"definicao"`
}

// Proposition is a single statement, addressed by its position in the chapter
type Proposition struct {
	Text string `json:"text"`
}

// DefinitionField names an editable field of a Definition
type DefinitionField string

const (
	FieldTermo     DefinitionField = "termo"
	FieldDefinicao DefinitionField = "definicao"
)

// Valid reports whether f names a Definition field
func (f DefinitionField) Valid() bool {
	return f == FieldTermo || f == FieldDefinicao
}

// Set assigns value to the named field
func (d *Definition) Set(field DefinitionField, value string) {
	switch field {
	case FieldTermo:
		d.Termo = value
	case FieldDefinicao:
		d.Definicao = value
	}
}

// NewBook returns an empty book with a fresh ID
func NewBook(id string) Book {
	return Book{
		ID:       id,
		Title:    NewBookTitle,
		Type:     BookTypeTheoretical,
		Chapters: []Chapter{},
	}
}

// NewChapter returns an empty chapter with a fresh ID
func NewChapter(id string) Chapter {
	return Chapter{
		ID:           id,
		Title:        NewChapterTitle,
		Definitions:  []Definition{},
		Propositions: []Proposition{},
	}
}

// Clone returns a deep copy of the book so callers never alias model slices
func (b Book) Clone() Book {
	out := b
	out.Chapters = make([]Chapter, len(b.Chapters))
	for i, ch := range b.Chapters {
		out.Chapters[i] = ch.Clone()
	}
	return out
}

// Clone returns a deep copy of the chapter
func (c Chapter) Clone() Chapter {
	out := c
	out.Definitions = slices.Clone(c.Definitions)
	if out.Definitions == nil {
		out.Definitions = []Definition{}
	}
	out.Propositions = slices.Clone(c.Propositions)
	if out.Propositions == nil {
		out.Propositions = []Proposition{}
	}
	return out
}

// CloneBooks deep-copies a collection
func CloneBooks(books []Book) []Book {
	out := make([]Book, len(books))
	for i, b := range books {
		out[i] = b.Clone()
	}
	return out
}

// ChapterIndex returns the position of the chapter with the given ID, or -1
func (b *Book) ChapterIndex(id string) int {
	return slices.IndexFunc(b.Chapters, func(c Chapter) bool { return c.ID == id })
}

// Move relocates the element at from to position to, shifting the others.
// Indices must be in range.
func Move[T any](s []T, from, to int) []T {
	if from == to {
		return s
	}
	v := s[from]
	s = slices.Delete(s, from, from+1)
	return slices.Insert(s, to, v)
}
