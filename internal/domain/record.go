package domain

// BookRecord is the stored shape of a book. Chapters may still be in the
// legacy shape until normalized.
type BookRecord struct {
	ID          string          `json:"id"`
	Title       string          `json:"title"`
	Description string          `json:"description"`
	Type        BookType        `json:"type,omitempty"`
	Chapters    []ChapterRecord `json:"chapters"`
}

// ChapterRecord is the stored shape of a chapter. Older documents nest
// definitions and propositions inside Parts instead of holding them directly.
type ChapterRecord struct {
	ID           string        `json:"id,omitempty"`
	Title        string        `json:"title"`
	Description  string        `json:"description"`
	Definitions  []Definition  `json:"definitions"`
	Propositions []Proposition `json:"propositions"`
	Parts        []ChapterPart `json:"parts,omitempty"`
}

// ChapterPart is a legacy grouping inside a chapter
type ChapterPart struct {
	Title        string        `json:"title,omitempty"`
	Definitions  []Definition  `json:"definitions"`
	Propositions []Proposition `json:"propositions"`
}

// IsLegacy reports whether the record still carries parts
func (r ChapterRecord) IsLegacy() bool {
	return r.Parts != nil
}

// NormalizeChapter flattens the legacy parts of r into chapter-level
// definitions and propositions (part order, then in-part order, after any
// entries already held by the chapter), drops parts, and assigns an ID if
// missing. Applying it to an already normalized record changes nothing.
func NormalizeChapter(r ChapterRecord, newID IDFunc) ChapterRecord {
	out := r
	out.Definitions = append([]Definition{}, r.Definitions...)
	out.Propositions = append([]Proposition{}, r.Propositions...)

	if r.IsLegacy() {
		for _, p := range r.Parts {
			out.Definitions = append(out.Definitions, p.Definitions...)
			out.Propositions = append(out.Propositions, p.Propositions...)
		}
		out.Parts = nil
	}

	if out.ID == "" && newID != nil {
		out.ID = newID()
	}
	return out
}

// Chapter converts a normalized record to the canonical chapter shape
func (r ChapterRecord) Chapter() Chapter {
	return Chapter{
		ID:           r.ID,
		Title:        r.Title,
		Description:  r.Description,
		Definitions:  append([]Definition{}, r.Definitions...),
		Propositions: append([]Proposition{}, r.Propositions...),
	}
}

// NormalizeBook normalizes every chapter of r and returns the canonical book.
// A missing ID or type is filled in.
func NormalizeBook(r BookRecord, newID IDFunc) Book {
	b := Book{
		ID:          r.ID,
		Title:       r.Title,
		Description: r.Description,
		Type:        r.Type,
		Chapters:    make([]Chapter, 0, len(r.Chapters)),
	}
	if b.ID == "" && newID != nil {
		b.ID = newID()
	}
	if !b.Type.Valid() {
		b.Type = BookTypeTheoretical
	}
	for _, ch := range r.Chapters {
		b.Chapters = append(b.Chapters, NormalizeChapter(ch, newID).Chapter())
	}
	return b
}

// NormalizeBooks normalizes a stored collection
func NormalizeBooks(records []BookRecord, newID IDFunc) []Book {
	books := make([]Book, 0, len(records))
	for _, r := range records {
		books = append(books, NormalizeBook(r, newID))
	}
	return books
}

// Records converts canonical books back to their stored shape
func Records(books []Book) []BookRecord {
	out := make([]BookRecord, 0, len(books))
	for _, b := range books {
		r := BookRecord{
			ID:          b.ID,
			Title:       b.Title,
			Description: b.Description,
			Type:        b.Type,
			Chapters:    make([]ChapterRecord, 0, len(b.Chapters)),
		}
		for _, ch := range b.Chapters {
			r.Chapters = append(r.Chapters, ChapterRecord{
				ID:           ch.ID,
				Title:        ch.Title,
				Description:  ch.Description,
				Definitions:  append([]Definition{}, ch.Definitions...),
				Propositions: append([]Proposition{}, ch.Propositions...),
			})
		}
		out = append(out, r)
	}
	return out
}
