package mindmap

import (
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/tree"

	"adler/internal/logger"
)

var (
	rootStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#7C3AED"))
	branchStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#10B981"))
	sectionStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#F59E0B"))
	leafStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#9CA3AF"))
)

// Render renders the outline as styled terminal markdown
func Render(outline string, width int) (string, error) {
	if width <= 0 {
		width = 80
	}
	renderer, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return "", err
	}
	return renderer.Render(outline)
}

// Tree draws the node tree with box-drawing branches
func Tree(root *Node) string {
	return build(root, 0).String()
}

func build(n *Node, depth int) *tree.Tree {
	t := tree.New().
		Root(styleFor(depth).Render(n.Text)).
		Enumerator(tree.RoundedEnumerator)
	for _, c := range n.Children {
		if len(c.Children) == 0 {
			t.Child(styleFor(depth + 1).Render(c.Text))
			continue
		}
		t.Child(build(c, depth+1))
	}
	return t
}

func styleFor(depth int) lipgloss.Style {
	switch depth {
	case 0:
		return rootStyle
	case 1:
		return branchStyle
	case 2:
		return sectionStyle
	default:
		return leafStyle
	}
}

// View renders the outline as a tree, or as the textual fallback when the
// outline cannot be parsed
func View(outline string, log *logger.Logger) string {
	root, err := Parse(outline)
	if err != nil {
		if log != nil {
			log.RenderFallback(err)
		}
		return Fallback(outline)
	}
	return Tree(root)
}

// Pretty renders the outline with glamour, or as the textual fallback when
// rendering fails
func Pretty(outline string, width int, log *logger.Logger) string {
	out, err := Render(outline, width)
	if err != nil {
		if log != nil {
			log.RenderFallback(err)
		}
		return Fallback(outline)
	}
	return out
}

// Fallback lays the outline out as an indented list: the title first, then
// every heading and item indented by its level. Emphasis markers are dropped.
func Fallback(outline string) string {
	var b strings.Builder
	heading := 1
	for _, line := range strings.Split(outline, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		level, text := 0, line
		switch {
		case strings.HasPrefix(line, "#"):
			level = len(line) - len(strings.TrimLeft(line, "#"))
			text = strings.TrimSpace(line[level:])
			heading = level
		case line == "-":
			// empty leaf
			continue
		case strings.HasPrefix(line, "- "):
			level = heading + 1
			text = strings.TrimSpace(strings.TrimPrefix(line, "- "))
		default:
			level = heading + 1
		}
		text = strings.ReplaceAll(text, "**", "")

		if level <= 1 {
			b.WriteString(text + "\n")
			continue
		}
		b.WriteString(strings.Repeat("  ", level-2) + "- " + text + "\n")
	}
	return b.String()
}
