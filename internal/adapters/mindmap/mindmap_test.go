package mindmap

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"adler/internal/logger"
)

const scenario = "# Livro X\n\n## Cap 1\n### Termos\n- **A**: B\n### Proposições\n- C\n\n## Cap 2\n\n"

func TestParse(t *testing.T) {
	root, err := Parse(scenario)
	require.NoError(t, err)

	assert.Equal(t, "Livro X", root.Text)
	assert.Equal(t, 1, root.Level)
	require.Len(t, root.Children, 2)

	cap1 := root.Children[0]
	assert.Equal(t, "Cap 1", cap1.Text)
	require.Len(t, cap1.Children, 2)

	terms := cap1.Children[0]
	assert.Equal(t, "Termos", terms.Text)
	require.Len(t, terms.Children, 1)
	assert.Equal(t, "A: B", terms.Children[0].Text)
	assert.Equal(t, 4, terms.Children[0].Level)

	props := cap1.Children[1]
	assert.Equal(t, "Proposições", props.Text)
	require.Len(t, props.Children, 1)
	assert.Equal(t, "C", props.Children[0].Text)

	assert.Equal(t, "Cap 2", root.Children[1].Text)
	assert.Empty(t, root.Children[1].Children)
	assert.Equal(t, 7, root.Count())
}

func TestParseExportOutlineGetsUnnamedRoot(t *testing.T) {
	root, err := Parse("## I. Um\n\n## II. Dois\n\n")
	require.NoError(t, err)

	assert.Equal(t, "", root.Text)
	require.Len(t, root.Children, 2)
	assert.Equal(t, "I. Um", root.Children[0].Text)
}

func TestParseEmpty(t *testing.T) {
	_, err := Parse("\n\n")
	assert.ErrorIs(t, err, ErrEmptyOutline)
}

func TestFallback(t *testing.T) {
	want := strings.Join([]string{
		"Livro X",
		"- Cap 1",
		"  - Termos",
		"    - A: B",
		"  - Proposições",
		"    - C",
		"- Cap 2",
	}, "\n") + "\n"

	assert.Equal(t, want, Fallback(scenario))
}

func TestFallbackKeepsLeadingDashes(t *testing.T) {
	outline := "# L\n\n## C\n### Proposições\n- -1 é negativo\n- --flag\n- \n\n"
	want := strings.Join([]string{
		"L",
		"- C",
		"  - Proposições",
		"    - -1 é negativo",
		"    - --flag",
	}, "\n") + "\n"

	assert.Equal(t, want, Fallback(outline))
}

func TestFallbackNoBook(t *testing.T) {
	assert.Equal(t, "Sem livro\n", Fallback("# Sem livro\n\n"))
}

func TestTree(t *testing.T) {
	root, err := Parse(scenario)
	require.NoError(t, err)

	out := Tree(root)
	for _, s := range []string{"Livro X", "Cap 1", "Termos", "A: B", "Proposições", "C", "Cap 2"} {
		assert.Contains(t, out, s)
	}
	assert.Contains(t, out, "╰──")
}

func TestViewFallsBackOnEmptyOutline(t *testing.T) {
	var buf bytes.Buffer
	out := View("plain text", logger.New(&buf))

	assert.Equal(t, "- plain text\n", out)
	assert.Contains(t, buf.String(), "fallback")
}

func TestRender(t *testing.T) {
	out, err := Render(scenario, 60)
	require.NoError(t, err)
	assert.Contains(t, out, "Livro X")
	assert.Contains(t, out, "Cap 1")
}

func TestWriteHTML(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteHTML(&buf, "Livro <X>", scenario))

	page := buf.String()
	assert.Contains(t, page, "<title>Livro &lt;X&gt;</title>")
	assert.Contains(t, page, "markmap-autoloader")
	assert.Contains(t, page, "## Cap 1")
	assert.Contains(t, page, "- Cap 1")
}
