package pdf

import (
	"context"
	"os"
	"strings"
	"testing"

	"github.com/segmentio/encoding/json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"adler/internal/ports"
)

func texts(pages []Page) []string {
	var out []string
	for _, p := range pages {
		for _, l := range p.Lines {
			out = append(out, l.Text)
		}
	}
	return out
}

func TestLayout(t *testing.T) {
	pages := Layout(ports.ExportBook{
		Title:       "Livro X",
		Description: "Notas de leitura",
		Outline:     "## I. Cap 1\n### Termos\n- **A**: B\n### Proposições\n- C\n\n",
	})

	require.Len(t, pages, 1)
	assert.Equal(t, []string{"Livro X", "Notas de leitura", "I. Cap 1", "Termos", "• A: B", "Proposições", "• C"}, texts(pages))

	first := pages[0].Lines[0]
	assert.Equal(t, fontBold, first.Font)
	assert.Equal(t, 20, first.Size)

	for i := 1; i < len(pages[0].Lines); i++ {
		assert.Greater(t, pages[0].Lines[i].Y, pages[0].Lines[i-1].Y)
	}
}

func TestLayoutTitleOnce(t *testing.T) {
	pages := Layout(ports.ExportBook{Title: "Livro X", Outline: "## I. Um\n\n"})

	count := 0
	for _, s := range texts(pages) {
		if s == "Livro X" {
			count++
		}
	}
	assert.Equal(t, 1, count)
}

func TestLayoutBlankTitle(t *testing.T) {
	pages := Layout(ports.ExportBook{})
	assert.Equal(t, []string{"Livro"}, texts(pages))
}

func TestLayoutPaginates(t *testing.T) {
	var b strings.Builder
	for range 120 {
		b.WriteString("- proposição\n")
	}
	pages := Layout(ports.ExportBook{Title: "Longo", Outline: b.String()})

	require.Greater(t, len(pages), 1)
	for _, p := range pages {
		for _, l := range p.Lines {
			assert.LessOrEqual(t, l.Y, pageHeight-margin)
			assert.GreaterOrEqual(t, l.Y, margin)
		}
	}
	assert.Len(t, texts(pages), 121)
}

func TestWrap(t *testing.T) {
	tests := []struct {
		name  string
		text  string
		width int
		want  []string
	}{
		{"fits", "uma frase curta", 20, []string{"uma frase curta"}},
		{"breaks at spaces", "uma frase um pouco longa", 10, []string{"uma frase", "um pouco", "longa"}},
		{"splits long words", "abcdefghijkl", 5, []string{"abcde", "fghij", "kl"}},
		{"empty", "", 10, []string{""}},
		{"counts runes", "ação ação", 9, []string{"ação ação"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, wrap(tt.text, tt.width))
		})
	}
}

func TestDescribe(t *testing.T) {
	data, err := Describe([]Page{
		{Lines: []Line{{Text: "Livro", Font: fontBold, Size: 20, X: 34, Y: 62}}},
		{Lines: []Line{{Text: "• C", Font: fontRegular, Size: 11, X: 54, Y: 49.4}}},
	})
	require.NoError(t, err)

	var doc pdfDoc
	require.NoError(t, json.Unmarshal(data, &doc))
	assert.Equal(t, "A4P", doc.Paper)
	assert.Equal(t, "UpperLeft", doc.Origin)
	require.Contains(t, doc.Pages, "2")
	assert.Equal(t, "• C", doc.Pages["2"].Content.Text[0].Value)
	assert.Equal(t, fontRegular, doc.Pages["2"].Content.Text[0].Font.Name)
}

func TestExportCancelledLeavesNothing(t *testing.T) {
	dir := t.TempDir()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewExporter(nil).Export(ctx, ports.ExportBook{Title: "x"}, dir)
	require.Error(t, err)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries)
}
