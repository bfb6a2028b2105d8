// Package mindmap turns outlines into trees and renders them for the
// terminal or as a standalone markmap page
package mindmap

import (
	"errors"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

// ErrEmptyOutline is returned when an outline has no headings or items
var ErrEmptyOutline = errors.New("empty outline")

// Node is one branch of the mind-map. Headings keep their level (1-6); list
// items sit one level below the heading that holds them.
type Node struct {
	Text     string
	Level    int
	Children []*Node
}

var md = goldmark.New()

// Parse builds the heading/list tree of an outline. An outline without a
// single top-level heading gets an unnamed root.
func Parse(outline string) (*Node, error) {
	src := []byte(outline)
	doc := md.Parser().Parse(text.NewReader(src))

	root := &Node{Level: 0}
	stack := []*Node{root}
	top := func() *Node { return stack[len(stack)-1] }

	for n := doc.FirstChild(); n != nil; n = n.NextSibling() {
		switch v := n.(type) {
		case *ast.Heading:
			for len(stack) > 1 && top().Level >= v.Level {
				stack = stack[:len(stack)-1]
			}
			node := &Node{Text: inlineText(v, src), Level: v.Level}
			top().Children = append(top().Children, node)
			stack = append(stack, node)
		case *ast.List:
			parent := top()
			addList(parent, v, src, parent.Level+1)
		}
	}

	if len(root.Children) == 0 {
		return nil, ErrEmptyOutline
	}
	if len(root.Children) == 1 && root.Children[0].Level == 1 {
		return root.Children[0], nil
	}
	return root, nil
}

func addList(parent *Node, list *ast.List, src []byte, level int) {
	for item := list.FirstChild(); item != nil; item = item.NextSibling() {
		node := &Node{Level: level}
		var parts []string
		for c := item.FirstChild(); c != nil; c = c.NextSibling() {
			if sub, ok := c.(*ast.List); ok {
				addList(node, sub, src, level+1)
				continue
			}
			parts = append(parts, inlineText(c, src))
		}
		node.Text = strings.Join(parts, " ")
		parent.Children = append(parent.Children, node)
	}
}

// inlineText concatenates the text of n's inline descendants, dropping
// emphasis markers
func inlineText(n ast.Node, src []byte) string {
	var b strings.Builder
	_ = ast.Walk(n, func(c ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		switch v := c.(type) {
		case *ast.Text:
			b.Write(v.Segment.Value(src))
			if v.SoftLineBreak() || v.HardLineBreak() {
				b.WriteByte(' ')
			}
		case *ast.String:
			b.Write(v.Value)
		}
		return ast.WalkContinue, nil
	})
	return strings.TrimSpace(b.String())
}

// Count returns the number of nodes in the tree rooted at n
func (n *Node) Count() int {
	if n == nil {
		return 0
	}
	total := 1
	for _, c := range n.Children {
		total += c.Count()
	}
	return total
}
