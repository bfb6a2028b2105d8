package mcp

import (
	"context"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"adler/internal/adapters/mindmap"
	"adler/internal/application"
	"adler/internal/application/commands"
	"adler/internal/domain"
)

// RegisterReadTools adds all read-only book tools to the MCP server.
func RegisterReadTools(s *server.MCPServer, doc *application.Document) {
	s.AddTool(listBooksTool(), listBooksHandler(doc))
	s.AddTool(getBookTool(), getBookHandler(doc))
	s.AddTool(outlineTool(), outlineHandler(doc))
	s.AddTool(treeTool(), treeHandler(doc))
	s.AddTool(searchTool(), searchHandler(doc))
}

// --- list_books ---

func listBooksTool() mcp.Tool {
	return mcp.NewTool("list_books",
		mcp.WithDescription("List all books with their short IDs, type and chapter count. The first book is the active one."),
	)
}

func listBooksHandler(doc *application.Document) server.ToolHandlerFunc {
	return func(ctx context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		books, err := commands.NewListBooksCommand(doc).Execute(ctx)
		if err != nil {
			return toolError(err)
		}
		return formatEntities(books, formatBook)
	}
}

// --- get_book ---

func getBookTool() mcp.Tool {
	return mcp.NewTool("get_book",
		mcp.WithDescription("Show a book with numbered chapters, terms and propositions. Positions are 1-based."),
		mcp.WithString("book",
			mcp.Description("Book ID, or a unique prefix or suffix of it"),
			mcp.Required(),
		),
	)
}

func getBookHandler(doc *application.Document) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		ref := req.GetString("book", "")
		if ref == "" {
			return toolError(fmt.Errorf("book is required"))
		}

		book, err := commands.NewGetBookCommand(doc, ref).Execute(ctx)
		if err != nil {
			return toolError(err)
		}
		return mcp.NewToolResultText(describeBook(*book)), nil
	}
}

// --- outline ---

func outlineTool() mcp.Tool {
	return mcp.NewTool("outline",
		mcp.WithDescription("Project a book as a markdown outline. Export mode numbers chapters with Roman numerals and skips empty entries."),
		mcp.WithString("book",
			mcp.Description("Book ID or unique prefix/suffix. Omit for the active book."),
		),
		mcp.WithBoolean("export",
			mcp.Description("Use the export projection"),
		),
	)
}

func outlineHandler(doc *application.Document) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		ref := req.GetString("book", "")
		export := req.GetBool("export", false)

		outline, err := commands.NewOutlineCommand(doc, ref, export).Execute(ctx)
		if err != nil {
			return toolError(err)
		}
		if outline == "" {
			return mcp.NewToolResultText("No books."), nil
		}
		return mcp.NewToolResultText(outline), nil
	}
}

// --- tree ---

func treeTool() mcp.Tool {
	return mcp.NewTool("tree",
		mcp.WithDescription("Display a book's outline as an indented mind-map tree."),
		mcp.WithString("book",
			mcp.Description("Book ID or unique prefix/suffix. Omit for the active book."),
		),
	)
}

func treeHandler(doc *application.Document) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		outline, err := commands.NewOutlineCommand(doc, req.GetString("book", ""), false).Execute(ctx)
		if err != nil {
			return toolError(err)
		}
		tree := mindmap.Fallback(outline)
		if strings.TrimSpace(tree) == "" {
			return mcp.NewToolResultText("No books."), nil
		}
		return mcp.NewToolResultText(tree), nil
	}
}

// --- search ---

func searchTool() mcp.Tool {
	return mcp.NewTool("search",
		mcp.WithDescription("Fuzzy search book titles, chapter titles, terms and propositions."),
		mcp.WithString("query",
			mcp.Description("Search query, at least two characters"),
			mcp.Required(),
		),
	)
}

func searchHandler(doc *application.Document) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		query := req.GetString("query", "")
		if query == "" {
			return toolError(fmt.Errorf("query is required"))
		}

		results, err := commands.NewSearchCommand(doc, query).Execute(ctx)
		if err != nil {
			return toolError(err)
		}
		if len(results) == 0 {
			return mcp.NewToolResultText("No results found."), nil
		}

		var sb strings.Builder
		for _, r := range results {
			fmt.Fprintf(&sb, "%s  %-11s  %s  %s\n", commands.ShortID(r.BookID), r.Kind, location(r), r.Text)
		}
		return mcp.NewToolResultText(sb.String()), nil
	}
}

// --- helpers ---

func toolError(err error) (*mcp.CallToolResult, error) {
	return mcp.NewToolResultError(err.Error()), nil
}

func formatEntities[T any](entities []T, format func(T) string) (*mcp.CallToolResult, error) {
	if len(entities) == 0 {
		return mcp.NewToolResultText("No results."), nil
	}
	var sb strings.Builder
	for _, e := range entities {
		sb.WriteString(format(e))
		sb.WriteByte('\n')
	}
	return mcp.NewToolResultText(sb.String()), nil
}

func formatBook(b domain.Book) string {
	return fmt.Sprintf("%s  %-8s  %2d ch  %s", commands.ShortID(b.ID), b.Type, len(b.Chapters), b.Title)
}

func describeBook(b domain.Book) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "%s  %s [%s]\n", commands.ShortID(b.ID), b.Title, b.Type)
	if b.Description != "" {
		fmt.Fprintf(&sb, "  %s\n", b.Description)
	}
	for i, ch := range b.Chapters {
		fmt.Fprintf(&sb, "%d. %s\n", i+1, ch.Title)
		for j, d := range ch.Definitions {
			fmt.Fprintf(&sb, "   t%d  %s: %s\n", j+1, d.Termo, d.Definicao)
		}
		for j, p := range ch.Propositions {
			fmt.Fprintf(&sb, "   p%d  %s\n", j+1, p.Text)
		}
	}
	return sb.String()
}

func location(r commands.SearchResult) string {
	switch {
	case r.ChapterIndex < 0:
		return "-"
	case r.EntryIndex < 0:
		return fmt.Sprintf("%d", r.ChapterIndex+1)
	default:
		return fmt.Sprintf("%d.%d", r.ChapterIndex+1, r.EntryIndex+1)
	}
}
