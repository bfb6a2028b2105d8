package commands

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"adler/internal/application"
	"adler/internal/domain"
)

// ChapterResult contains the chapter affected by a command
type ChapterResult struct {
	BookID  string
	Index   int
	Chapter domain.Chapter
	Message string
}

// AddChapterCommand appends a chapter to a book, optionally titled
type AddChapterCommand struct {
	doc     *application.Document
	BookRef string
	Title   string
}

// NewAddChapterCommand creates a new AddChapterCommand
func NewAddChapterCommand(doc *application.Document, bookRef, title string) *AddChapterCommand {
	return &AddChapterCommand{
		doc:     doc,
		BookRef: bookRef,
		Title:   title,
	}
}

// Execute runs the add chapter command
func (c *AddChapterCommand) Execute(ctx context.Context) (*ChapterResult, error) {
	id, err := c.doc.ResolveBookID(c.BookRef)
	if err != nil {
		return nil, err
	}
	ch, err := c.doc.CreateChapter(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to add chapter: %w", err)
	}

	book, err := c.doc.Book(id)
	if err != nil {
		return nil, err
	}
	index := len(book.Chapters) - 1

	if title := strings.TrimSpace(c.Title); title != "" {
		if err := c.doc.RenameChapter(ctx, id, index, title); err != nil {
			return nil, fmt.Errorf("failed to title chapter: %w", err)
		}
		ch.Title = title
	}

	return &ChapterResult{
		BookID:  id,
		Index:   index,
		Chapter: ch,
		Message: fmt.Sprintf("Added chapter %d: %s", index+1, ch.Title),
	}, nil
}

// ChapterEditCommand edits one chapter: its title or its description
type ChapterEditCommand struct {
	doc     *application.Document
	BookRef string
	Index   int
	Field   ChapterField
	Value   string
}

// ChapterField names an editable chapter field
type ChapterField string

const (
	ChapterTitle       ChapterField = "title"
	ChapterDescription ChapterField = "description"
)

// NewRenameChapterCommand creates a command that sets a chapter title
func NewRenameChapterCommand(doc *application.Document, bookRef string, index int, title string) *ChapterEditCommand {
	return &ChapterEditCommand{doc: doc, BookRef: bookRef, Index: index, Field: ChapterTitle, Value: title}
}

// NewDescribeChapterCommand creates a command that sets a chapter description
func NewDescribeChapterCommand(doc *application.Document, bookRef string, index int, description string) *ChapterEditCommand {
	return &ChapterEditCommand{doc: doc, BookRef: bookRef, Index: index, Field: ChapterDescription, Value: description}
}

// Validate checks if the edit is valid
func (c *ChapterEditCommand) Validate() error {
	if err := application.ValidateRequired("bookID", c.BookRef); err != nil {
		return err
	}
	switch c.Field {
	case ChapterTitle:
		return application.ValidateRequired("title", c.Value)
	case ChapterDescription:
		return nil
	default:
		return &application.ValidationError{
			Field:   "field",
			Message: fmt.Sprintf("unknown chapter field: %s", c.Field),
		}
	}
}

// Execute runs the chapter edit command
func (c *ChapterEditCommand) Execute(ctx context.Context) (*ChapterResult, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}

	id, err := c.doc.ResolveBookID(c.BookRef)
	if err != nil {
		return nil, err
	}

	var msg string
	switch c.Field {
	case ChapterTitle:
		title := strings.TrimSpace(c.Value)
		err = c.doc.RenameChapter(ctx, id, c.Index, title)
		msg = fmt.Sprintf("Renamed chapter %d to %s", c.Index+1, title)
	case ChapterDescription:
		err = c.doc.SetChapterDescription(ctx, id, c.Index, c.Value)
		msg = fmt.Sprintf("Updated description of chapter %d", c.Index+1)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to edit chapter: %w", err)
	}

	return chapterResult(c.doc, id, c.Index, msg)
}

// DeleteChapterCommand removes a chapter by position
type DeleteChapterCommand struct {
	doc     *application.Document
	BookRef string
	Index   int
}

// NewDeleteChapterCommand creates a new DeleteChapterCommand
func NewDeleteChapterCommand(doc *application.Document, bookRef string, index int) *DeleteChapterCommand {
	return &DeleteChapterCommand{
		doc:     doc,
		BookRef: bookRef,
		Index:   index,
	}
}

// Execute runs the delete chapter command
func (c *DeleteChapterCommand) Execute(ctx context.Context) (*ChapterResult, error) {
	id, err := c.doc.ResolveBookID(c.BookRef)
	if err != nil {
		return nil, err
	}
	removed, err := chapterResult(c.doc, id, c.Index, "")
	if err != nil {
		return nil, err
	}
	if err := c.doc.DeleteChapter(ctx, id, c.Index); err != nil {
		return nil, fmt.Errorf("failed to delete chapter: %w", err)
	}

	removed.Message = fmt.Sprintf("Deleted chapter %d: %s",
		c.Index+1, domain.ChapterHeading(removed.Chapter, c.Index))
	return removed, nil
}

// MoveChapterCommand moves a chapter to a new position
type MoveChapterCommand struct {
	doc     *application.Document
	BookRef string
	From    int
	To      int
}

// NewMoveChapterCommand creates a new MoveChapterCommand
func NewMoveChapterCommand(doc *application.Document, bookRef string, from, to int) *MoveChapterCommand {
	return &MoveChapterCommand{
		doc:     doc,
		BookRef: bookRef,
		From:    from,
		To:      to,
	}
}

// Execute runs the move chapter command
func (c *MoveChapterCommand) Execute(ctx context.Context) (*ChapterResult, error) {
	id, err := c.doc.ResolveBookID(c.BookRef)
	if err != nil {
		return nil, err
	}
	if err := c.doc.MoveChapter(ctx, id, c.From, c.To); err != nil {
		return nil, fmt.Errorf("failed to move chapter: %w", err)
	}

	return chapterResult(c.doc, id, c.To,
		fmt.Sprintf("Moved chapter %d to position %d", c.From+1, c.To+1))
}

// ReorderChaptersCommand applies a complete chapter order. Order entries are
// chapter ids or 1-based positions in the current order.
type ReorderChaptersCommand struct {
	doc     *application.Document
	BookRef string
	Order   []string
}

// NewReorderChaptersCommand creates a new ReorderChaptersCommand
func NewReorderChaptersCommand(doc *application.Document, bookRef string, order []string) *ReorderChaptersCommand {
	return &ReorderChaptersCommand{
		doc:     doc,
		BookRef: bookRef,
		Order:   order,
	}
}

// Execute runs the reorder command
func (c *ReorderChaptersCommand) Execute(ctx context.Context) (*BookResult, error) {
	id, err := c.doc.ResolveBookID(c.BookRef)
	if err != nil {
		return nil, err
	}
	book, err := c.doc.Book(id)
	if err != nil {
		return nil, err
	}

	ids := make([]string, len(c.Order))
	for i, ref := range c.Order {
		ids[i] = resolveChapterRef(book, ref)
	}
	if err := c.doc.ReorderChapters(ctx, id, ids); err != nil {
		return nil, fmt.Errorf("failed to reorder chapters: %w", err)
	}

	return bookResult(c.doc, id, fmt.Sprintf("Reordered %d chapters", len(ids)))
}

// resolveChapterRef maps a 1-based position to the chapter id at it, and
// returns anything else unchanged
func resolveChapterRef(book domain.Book, ref string) string {
	pos, err := strconv.Atoi(ref)
	if err != nil || pos < 1 || pos > len(book.Chapters) {
		return ref
	}
	return book.Chapters[pos-1].ID
}

func chapterResult(doc *application.Document, bookID string, index int, msg string) (*ChapterResult, error) {
	book, err := doc.Book(bookID)
	if err != nil {
		return nil, err
	}
	if err := application.ValidateIndex("chapter", index, len(book.Chapters)); err != nil {
		return nil, err
	}
	return &ChapterResult{
		BookID:  bookID,
		Index:   index,
		Chapter: book.Chapters[index],
		Message: msg,
	}, nil
}
