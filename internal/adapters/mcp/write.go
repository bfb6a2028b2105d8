package mcp

import (
	"context"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"adler/internal/application"
	"adler/internal/application/commands"
	"adler/internal/domain"
	"adler/internal/ports"
)

// RegisterWriteTools adds all book editing tools to the MCP server.
// export_pdf is only registered when an exporter is given.
func RegisterWriteTools(s *server.MCPServer, doc *application.Document, exporter ports.Exporter, exportDir string) {
	s.AddTool(createBookTool(), createBookHandler(doc))
	s.AddTool(renameBookTool(), renameBookHandler(doc))
	s.AddTool(describeBookTool(), describeBookHandler(doc))
	s.AddTool(setBookTypeTool(), setBookTypeHandler(doc))
	s.AddTool(selectBookTool(), selectBookHandler(doc))
	s.AddTool(deleteBookTool(), deleteBookHandler(doc))

	s.AddTool(addChapterTool(), addChapterHandler(doc))
	s.AddTool(renameChapterTool(), renameChapterHandler(doc))
	s.AddTool(describeChapterTool(), describeChapterHandler(doc))
	s.AddTool(moveChapterTool(), moveChapterHandler(doc))
	s.AddTool(deleteChapterTool(), deleteChapterHandler(doc))

	for _, kind := range []commands.EntryKind{commands.EntryTerm, commands.EntryProposition} {
		s.AddTool(addEntryTool(kind), addEntryHandler(doc, kind))
		s.AddTool(setEntryTool(kind), setEntryHandler(doc, kind))
		s.AddTool(moveEntryTool(kind), moveEntryHandler(doc, kind))
		s.AddTool(deleteEntryTool(kind), deleteEntryHandler(doc, kind))
	}

	if exporter != nil {
		s.AddTool(exportTool(), exportHandler(doc, exporter, exportDir))
	}
}

// --- books ---

func createBookTool() mcp.Tool {
	return mcp.NewTool("create_book",
		mcp.WithDescription("Create a new theoretical book at the top of the list and make it active."),
		mcp.WithString("title",
			mcp.Description("Book title. Omit for the default title."),
		),
	)
}

func createBookHandler(doc *application.Document) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		result, err := commands.NewCreateBookCommand(doc, req.GetString("title", "")).Execute(ctx)
		if err != nil {
			return toolError(err)
		}
		return mcp.NewToolResultText(result.Message), nil
	}
}

func renameBookTool() mcp.Tool {
	return mcp.NewTool("rename_book",
		mcp.WithDescription("Set a book's title."),
		bookParam(),
		mcp.WithString("title",
			mcp.Description("New title"),
			mcp.Required(),
		),
	)
}

func renameBookHandler(doc *application.Document) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		cmd := commands.NewRenameBookCommand(doc, req.GetString("book", ""), req.GetString("title", ""))
		result, err := cmd.Execute(ctx)
		if err != nil {
			return toolError(err)
		}
		return mcp.NewToolResultText(result.Message), nil
	}
}

func describeBookTool() mcp.Tool {
	return mcp.NewTool("describe_book",
		mcp.WithDescription("Set a book's free-text description. An empty description clears it."),
		bookParam(),
		mcp.WithString("description",
			mcp.Description("Description text"),
		),
	)
}

func describeBookHandler(doc *application.Document) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		cmd := commands.NewDescribeBookCommand(doc, req.GetString("book", ""), req.GetString("description", ""))
		result, err := cmd.Execute(ctx)
		if err != nil {
			return toolError(err)
		}
		return mcp.NewToolResultText(result.Message), nil
	}
}

func setBookTypeTool() mcp.Tool {
	return mcp.NewTool("set_book_type",
		mcp.WithDescription("Classify a book as theoretical (teorico) or practical (pratico)."),
		bookParam(),
		mcp.WithString("type",
			mcp.Description("Book type"),
			mcp.Required(),
			mcp.Enum(string(domain.BookTypeTheoretical), string(domain.BookTypePractical)),
		),
	)
}

func setBookTypeHandler(doc *application.Document) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		t := domain.BookType(req.GetString("type", ""))
		result, err := commands.NewSetBookTypeCommand(doc, req.GetString("book", ""), t).Execute(ctx)
		if err != nil {
			return toolError(err)
		}
		return mcp.NewToolResultText(result.Message), nil
	}
}

func selectBookTool() mcp.Tool {
	return mcp.NewTool("select_book",
		mcp.WithDescription("Make a book active for this session. Tools called without a book use the active one. Selection is not saved."),
		bookParam(),
	)
}

func selectBookHandler(doc *application.Document) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		result, err := commands.NewSelectBookCommand(doc, req.GetString("book", "")).Execute(ctx)
		if err != nil {
			return toolError(err)
		}
		return mcp.NewToolResultText(result.Message), nil
	}
}

func deleteBookTool() mcp.Tool {
	return mcp.NewTool("delete_book",
		mcp.WithDescription("Delete a book and everything in it. Requires confirm=true."),
		bookParam(),
		confirmParam(),
	)
}

func deleteBookHandler(doc *application.Document) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		if err := requireConfirm(req); err != nil {
			return toolError(err)
		}
		result, err := commands.NewDeleteBookCommand(doc, req.GetString("book", "")).Execute(ctx)
		if err != nil {
			return toolError(err)
		}
		return mcp.NewToolResultText(result.Message), nil
	}
}

// --- chapters ---

func addChapterTool() mcp.Tool {
	return mcp.NewTool("add_chapter",
		mcp.WithDescription("Append a chapter to a book."),
		bookParam(),
		mcp.WithString("title",
			mcp.Description("Chapter title. Omit for the default title."),
		),
	)
}

func addChapterHandler(doc *application.Document) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		cmd := commands.NewAddChapterCommand(doc, req.GetString("book", ""), req.GetString("title", ""))
		result, err := cmd.Execute(ctx)
		if err != nil {
			return toolError(err)
		}
		return mcp.NewToolResultText(result.Message), nil
	}
}

func renameChapterTool() mcp.Tool {
	return mcp.NewTool("rename_chapter",
		mcp.WithDescription("Set a chapter's title."),
		bookParam(),
		positionParam("chapter", "Chapter position (1-based)"),
		mcp.WithString("title",
			mcp.Description("New title"),
			mcp.Required(),
		),
	)
}

func renameChapterHandler(doc *application.Document) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		ci, err := position(req, "chapter")
		if err != nil {
			return toolError(err)
		}
		cmd := commands.NewRenameChapterCommand(doc, req.GetString("book", ""), ci, req.GetString("title", ""))
		result, err := cmd.Execute(ctx)
		if err != nil {
			return toolError(err)
		}
		return mcp.NewToolResultText(result.Message), nil
	}
}

func describeChapterTool() mcp.Tool {
	return mcp.NewTool("describe_chapter",
		mcp.WithDescription("Set a chapter's free-text description."),
		bookParam(),
		positionParam("chapter", "Chapter position (1-based)"),
		mcp.WithString("description",
			mcp.Description("Description text"),
		),
	)
}

func describeChapterHandler(doc *application.Document) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		ci, err := position(req, "chapter")
		if err != nil {
			return toolError(err)
		}
		cmd := commands.NewDescribeChapterCommand(doc, req.GetString("book", ""), ci, req.GetString("description", ""))
		result, err := cmd.Execute(ctx)
		if err != nil {
			return toolError(err)
		}
		return mcp.NewToolResultText(result.Message), nil
	}
}

func moveChapterTool() mcp.Tool {
	return mcp.NewTool("move_chapter",
		mcp.WithDescription("Move a chapter to a new position within its book."),
		bookParam(),
		positionParam("chapter", "Current chapter position (1-based)"),
		positionParam("to", "Target position (1-based)"),
	)
}

func moveChapterHandler(doc *application.Document) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		from, err := position(req, "chapter")
		if err != nil {
			return toolError(err)
		}
		to, err := position(req, "to")
		if err != nil {
			return toolError(err)
		}
		result, err := commands.NewMoveChapterCommand(doc, req.GetString("book", ""), from, to).Execute(ctx)
		if err != nil {
			return toolError(err)
		}
		return mcp.NewToolResultText(result.Message), nil
	}
}

func deleteChapterTool() mcp.Tool {
	return mcp.NewTool("delete_chapter",
		mcp.WithDescription("Delete a chapter with its terms and propositions. Requires confirm=true."),
		bookParam(),
		positionParam("chapter", "Chapter position (1-based)"),
		confirmParam(),
	)
}

func deleteChapterHandler(doc *application.Document) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		if err := requireConfirm(req); err != nil {
			return toolError(err)
		}
		ci, err := position(req, "chapter")
		if err != nil {
			return toolError(err)
		}
		result, err := commands.NewDeleteChapterCommand(doc, req.GetString("book", ""), ci).Execute(ctx)
		if err != nil {
			return toolError(err)
		}
		return mcp.NewToolResultText(result.Message), nil
	}
}

// --- terms and propositions ---

func entryName(kind commands.EntryKind) string {
	if kind == commands.EntryTerm {
		return "term"
	}
	return "proposition"
}

func addEntryTool(kind commands.EntryKind) mcp.Tool {
	opts := []mcp.ToolOption{
		bookParam(),
		positionParam("chapter", "Chapter position (1-based)"),
	}
	if kind == commands.EntryTerm {
		opts = append(opts,
			mcp.WithDescription("Append a term and its definition to a chapter."),
			mcp.WithString("termo", mcp.Description("The term")),
			mcp.WithString("definicao", mcp.Description("Its definition")),
		)
	} else {
		opts = append(opts,
			mcp.WithDescription("Append a proposition to a chapter."),
			mcp.WithString("text", mcp.Description("Proposition text")),
		)
	}
	return mcp.NewTool("add_"+entryName(kind), opts...)
}

func addEntryHandler(doc *application.Document, kind commands.EntryKind) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		ci, err := position(req, "chapter")
		if err != nil {
			return toolError(err)
		}
		text, definition := req.GetString("text", ""), ""
		if kind == commands.EntryTerm {
			text, definition = req.GetString("termo", ""), req.GetString("definicao", "")
		}
		cmd := commands.NewAddEntryCommand(doc, kind, req.GetString("book", ""), ci, text, definition)
		result, err := cmd.Execute(ctx)
		if err != nil {
			return toolError(err)
		}
		return mcp.NewToolResultText(result.Message), nil
	}
}

func setEntryTool(kind commands.EntryKind) mcp.Tool {
	opts := []mcp.ToolOption{
		bookParam(),
		positionParam("chapter", "Chapter position (1-based)"),
		positionParam("position", fmt.Sprintf("%s position within the chapter (1-based)", entryName(kind))),
		mcp.WithString("value",
			mcp.Description("New text"),
			mcp.Required(),
		),
	}
	if kind == commands.EntryTerm {
		opts = append(opts,
			mcp.WithDescription("Edit a term's termo or definicao."),
			mcp.WithString("field",
				mcp.Description("Which field to set"),
				mcp.Required(),
				mcp.Enum(string(domain.FieldTermo), string(domain.FieldDefinicao)),
			),
		)
	} else {
		opts = append(opts, mcp.WithDescription("Edit a proposition's text."))
	}
	return mcp.NewTool("set_"+entryName(kind), opts...)
}

func setEntryHandler(doc *application.Document, kind commands.EntryKind) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		ci, err := position(req, "chapter")
		if err != nil {
			return toolError(err)
		}
		ei, err := position(req, "position")
		if err != nil {
			return toolError(err)
		}
		field := domain.DefinitionField(req.GetString("field", ""))
		cmd := commands.NewSetEntryCommand(doc, kind, req.GetString("book", ""), ci, ei, field, req.GetString("value", ""))
		result, err := cmd.Execute(ctx)
		if err != nil {
			return toolError(err)
		}
		return mcp.NewToolResultText(result.Message), nil
	}
}

func moveEntryTool(kind commands.EntryKind) mcp.Tool {
	return mcp.NewTool("move_"+entryName(kind),
		mcp.WithDescription(fmt.Sprintf("Move a %s to a new position within its chapter.", entryName(kind))),
		bookParam(),
		positionParam("chapter", "Chapter position (1-based)"),
		positionParam("position", "Current position (1-based)"),
		positionParam("to", "Target position (1-based)"),
	)
}

func moveEntryHandler(doc *application.Document, kind commands.EntryKind) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		ci, err := position(req, "chapter")
		if err != nil {
			return toolError(err)
		}
		from, err := position(req, "position")
		if err != nil {
			return toolError(err)
		}
		to, err := position(req, "to")
		if err != nil {
			return toolError(err)
		}
		result, err := commands.NewMoveEntryCommand(doc, kind, req.GetString("book", ""), ci, from, to).Execute(ctx)
		if err != nil {
			return toolError(err)
		}
		return mcp.NewToolResultText(result.Message), nil
	}
}

func deleteEntryTool(kind commands.EntryKind) mcp.Tool {
	return mcp.NewTool("delete_"+entryName(kind),
		mcp.WithDescription(fmt.Sprintf("Delete a %s. Requires confirm=true.", entryName(kind))),
		bookParam(),
		positionParam("chapter", "Chapter position (1-based)"),
		positionParam("position", "Position within the chapter (1-based)"),
		confirmParam(),
	)
}

func deleteEntryHandler(doc *application.Document, kind commands.EntryKind) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		if err := requireConfirm(req); err != nil {
			return toolError(err)
		}
		ci, err := position(req, "chapter")
		if err != nil {
			return toolError(err)
		}
		ei, err := position(req, "position")
		if err != nil {
			return toolError(err)
		}
		result, err := commands.NewDeleteEntryCommand(doc, kind, req.GetString("book", ""), ci, ei).Execute(ctx)
		if err != nil {
			return toolError(err)
		}
		return mcp.NewToolResultText(result.Message), nil
	}
}

// --- export_pdf ---

func exportTool() mcp.Tool {
	return mcp.NewTool("export_pdf",
		mcp.WithDescription("Export a book as a paginated PDF and return the written path."),
		mcp.WithString("book",
			mcp.Description("Book ID or unique prefix/suffix. Omit for the active book."),
		),
		mcp.WithString("dir",
			mcp.Description("Output directory. Omit for the configured export directory."),
		),
	)
}

func exportHandler(doc *application.Document, exporter ports.Exporter, exportDir string) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		dir := req.GetString("dir", exportDir)
		result, err := commands.NewExportCommand(doc, exporter, req.GetString("book", ""), dir).Execute(ctx)
		if err != nil {
			return toolError(err)
		}
		return mcp.NewToolResultText(result.Message), nil
	}
}

// --- params ---

func bookParam() mcp.ToolOption {
	return mcp.WithString("book",
		mcp.Description("Book ID, or a unique prefix or suffix of it"),
		mcp.Required(),
	)
}

func positionParam(name, desc string) mcp.ToolOption {
	return mcp.WithNumber(name,
		mcp.Description(desc),
		mcp.Required(),
		mcp.Min(1),
	)
}

func confirmParam() mcp.ToolOption {
	return mcp.WithBoolean("confirm",
		mcp.Description("Must be true to delete"),
		mcp.Required(),
	)
}

func requireConfirm(req mcp.CallToolRequest) error {
	if !req.GetBool("confirm", false) {
		return fmt.Errorf("deletion not confirmed: pass confirm=true")
	}
	return nil
}

// position reads a 1-based position argument and returns it 0-based
func position(req mcp.CallToolRequest, name string) (int, error) {
	n := req.GetInt(name, 0)
	if n < 1 {
		return 0, fmt.Errorf("%s must be a position starting at 1", name)
	}
	return n - 1, nil
}
