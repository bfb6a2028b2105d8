package domain

import (
	"fmt"
	"regexp"
	"strings"
)

// Labels used by the projection. The outline is always rendered in Portuguese.
const (
	BookPlaceholder      = "Livro"
	NoBookPlaceholder    = "Sem livro"
	ChapterPlaceholder   = "Capítulo"
	TermPlaceholder      = "Termo"
	TermsHeading         = "Termos"
	PropositionsHeading  = "Proposições"
	exportFilenameFormat = "%s.pdf"
)

var whitespaceRun = regexp.MustCompile(`\s+`)

// Project renders the primary outline of a book: one H1 with the title, an
// H2 per chapter, H3 sections for terms and propositions, and bullet leaves.
// A nil book renders the "no book" placeholder heading only.
func Project(book *Book) string {
	var b strings.Builder

	title := NoBookPlaceholder
	if book != nil {
		title = titleOr(book.Title, BookPlaceholder)
	}
	fmt.Fprintf(&b, "# %s\n\n", title)

	if book != nil {
		writeChapters(&b, book.Chapters, false)
	}
	return b.String()
}

// ProjectExport renders the outline used for export. The top-level title is
// omitted (the exporter renders it once) and chapter headings are numbered
// with Roman numerals.
func ProjectExport(book *Book) string {
	if book == nil {
		return ""
	}
	var b strings.Builder
	writeChapters(&b, book.Chapters, true)
	return b.String()
}

func writeChapters(b *strings.Builder, chapters []Chapter, numbered bool) {
	for i, ch := range chapters {
		heading := ChapterHeading(ch, i)
		if numbered {
			heading = ToRoman(i+1) + ". " + heading
		}
		fmt.Fprintf(b, "## %s\n", heading)

		if len(ch.Definitions) > 0 {
			fmt.Fprintf(b, "### %s\n", TermsHeading)
			for j, d := range ch.Definitions {
				fmt.Fprintf(b, "- **%s**: %s\n", TermLabel(d, j), d.Definicao)
			}
		}

		if len(ch.Propositions) > 0 {
			fmt.Fprintf(b, "### %s\n", PropositionsHeading)
			for _, p := range ch.Propositions {
				fmt.Fprintf(b, "- %s\n", p.Text)
			}
		}

		b.WriteString("\n")
	}
}

// ChapterHeading returns the chapter title, or "Capítulo N" for the chapter at
// zero-based position i when the title is blank.
func ChapterHeading(ch Chapter, i int) string {
	return titleOr(ch.Title, fmt.Sprintf("%s %d", ChapterPlaceholder, i+1))
}

// TermLabel returns the term text, or "Termo N" for the definition at
// zero-based position i when the term is blank.
func TermLabel(d Definition, i int) string {
	return titleOr(d.Termo, fmt.Sprintf("%s %d", TermPlaceholder, i+1))
}

// ExportFilename derives the export file name from the book title: runs of
// whitespace collapse to a single underscore. Path separators become dashes.
func ExportFilename(title string) string {
	if title == "" {
		title = strings.ToLower(BookPlaceholder)
	}
	name := whitespaceRun.ReplaceAllString(title, "_")
	name = strings.NewReplacer("/", "-", "\\", "-").Replace(name)
	return fmt.Sprintf(exportFilenameFormat, name)
}

func titleOr(s, fallback string) string {
	if s == "" {
		return fallback
	}
	return s
}
