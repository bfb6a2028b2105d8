package pdf

import (
	"strings"

	"adler/internal/domain"
	"adler/internal/ports"
)

// A4 portrait in points, with a 12mm margin
const (
	pageWidth  = 595.0
	pageHeight = 842.0
	margin     = 34.0
)

// Fonts are the PDF core fonts, which cover Portuguese accents
const (
	fontRegular = "Helvetica"
	fontBold    = "Helvetica-Bold"
)

// Line is one positioned line of text. Y grows downwards from the top edge.
type Line struct {
	Text string
	Font string
	Size int
	X    float64
	Y    float64
}

// Page holds the lines of one page
type Page struct {
	Lines []Line
}

type block struct {
	text   string
	font   string
	size   int
	indent float64
	before float64
}

// Layout paginates the export material: the title once, the description,
// then the outline with headings in bold and items as bullets
func Layout(book ports.ExportBook) []Page {
	title := book.Title
	if title == "" {
		title = domain.BookPlaceholder
	}

	blocks := []block{{text: title, font: fontBold, size: 20}}
	if d := strings.TrimSpace(book.Description); d != "" {
		for _, para := range strings.Split(d, "\n") {
			blocks = append(blocks, block{text: para, font: fontRegular, size: 11, before: 4})
		}
	}
	blocks = append(blocks, outlineBlocks(book.Outline)...)

	var pages []Page
	page := Page{}
	y := margin
	for _, b := range blocks {
		lineHeight := float64(b.size) * 1.4
		for i, text := range wrap(b.text, charsPerLine(b.size, b.indent)) {
			advance := lineHeight
			if i == 0 {
				advance += b.before
			}
			if y+advance > pageHeight-margin && len(page.Lines) > 0 {
				pages = append(pages, page)
				page = Page{}
				y = margin
				advance = lineHeight
			}
			y += advance
			page.Lines = append(page.Lines, Line{
				Text: text,
				Font: b.font,
				Size: b.size,
				X:    margin + b.indent,
				Y:    y,
			})
		}
	}
	return append(pages, page)
}

func outlineBlocks(outline string) []block {
	var blocks []block
	for _, line := range strings.Split(outline, "\n") {
		line = strings.TrimSpace(line)
		switch {
		case line == "":
			continue
		case strings.HasPrefix(line, "### "):
			blocks = append(blocks, block{text: line[4:], font: fontBold, size: 12, indent: 10, before: 6})
		case strings.HasPrefix(line, "## "):
			blocks = append(blocks, block{text: line[3:], font: fontBold, size: 15, before: 14})
		case strings.HasPrefix(line, "# "):
			blocks = append(blocks, block{text: line[2:], font: fontBold, size: 20, before: 14})
		case strings.HasPrefix(line, "- "):
			text := strings.ReplaceAll(line[2:], "**", "")
			blocks = append(blocks, block{text: "• " + text, font: fontRegular, size: 11, indent: 20, before: 2})
		default:
			blocks = append(blocks, block{text: line, font: fontRegular, size: 11})
		}
	}
	return blocks
}

// charsPerLine estimates how many characters fit across the text column
func charsPerLine(size int, indent float64) int {
	avg := float64(size) * 0.5
	n := int((pageWidth - 2*margin - indent) / avg)
	return max(n, 10)
}

// wrap breaks text at spaces so no line is longer than width runes. Words
// longer than width are split.
func wrap(text string, width int) []string {
	words := strings.Fields(text)
	if len(words) == 0 {
		return []string{""}
	}

	var lines []string
	var cur []rune
	for _, w := range words {
		r := []rune(w)
		for len(r) > width {
			if len(cur) > 0 {
				lines = append(lines, string(cur))
				cur = nil
			}
			lines = append(lines, string(r[:width]))
			r = r[width:]
		}
		switch {
		case len(cur) == 0:
			cur = r
		case len(cur)+1+len(r) <= width:
			cur = append(append(cur, ' '), r...)
		default:
			lines = append(lines, string(cur))
			cur = r
		}
	}
	if len(cur) > 0 {
		lines = append(lines, string(cur))
	}
	return lines
}
