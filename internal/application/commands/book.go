package commands

import (
	"context"
	"fmt"
	"strings"

	"adler/internal/application"
	"adler/internal/domain"
)

// BookResult contains the book affected by a command
type BookResult struct {
	Book    domain.Book
	Message string
}

// CreateBookCommand creates a book, optionally titled
type CreateBookCommand struct {
	doc   *application.Document
	Title string
}

// NewCreateBookCommand creates a new CreateBookCommand
func NewCreateBookCommand(doc *application.Document, title string) *CreateBookCommand {
	return &CreateBookCommand{
		doc:   doc,
		Title: title,
	}
}

// Execute runs the create book command
func (c *CreateBookCommand) Execute(ctx context.Context) (*BookResult, error) {
	book, err := c.doc.CreateBook(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to create book: %w", err)
	}

	if title := strings.TrimSpace(c.Title); title != "" {
		if err := c.doc.RenameBook(ctx, book.ID, title); err != nil {
			return nil, fmt.Errorf("failed to title book: %w", err)
		}
		book.Title = title
	}

	return &BookResult{
		Book:    book,
		Message: fmt.Sprintf("Created book: %s %s", ShortID(book.ID), book.Title),
	}, nil
}

// RenameBookCommand sets a book title
type RenameBookCommand struct {
	doc     *application.Document
	BookRef string
	Title   string
}

// NewRenameBookCommand creates a new RenameBookCommand
func NewRenameBookCommand(doc *application.Document, bookRef, title string) *RenameBookCommand {
	return &RenameBookCommand{
		doc:     doc,
		BookRef: bookRef,
		Title:   title,
	}
}

// Validate checks if the rename operation is valid
func (c *RenameBookCommand) Validate() error {
	if err := application.ValidateRequired("bookID", c.BookRef); err != nil {
		return err
	}
	return application.ValidateRequired("title", c.Title)
}

// Execute runs the rename book command
func (c *RenameBookCommand) Execute(ctx context.Context) (*BookResult, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}

	id, err := c.doc.ResolveBookID(c.BookRef)
	if err != nil {
		return nil, err
	}
	title := strings.TrimSpace(c.Title)
	if err := c.doc.RenameBook(ctx, id, title); err != nil {
		return nil, fmt.Errorf("failed to rename book: %w", err)
	}

	return bookResult(c.doc, id, fmt.Sprintf("Renamed %s to %s", ShortID(id), title))
}

// DescribeBookCommand sets a book description. An empty description clears it.
type DescribeBookCommand struct {
	doc         *application.Document
	BookRef     string
	Description string
}

// NewDescribeBookCommand creates a new DescribeBookCommand
func NewDescribeBookCommand(doc *application.Document, bookRef, description string) *DescribeBookCommand {
	return &DescribeBookCommand{
		doc:         doc,
		BookRef:     bookRef,
		Description: description,
	}
}

// Validate checks if the describe operation is valid
func (c *DescribeBookCommand) Validate() error {
	return application.ValidateRequired("bookID", c.BookRef)
}

// Execute runs the describe book command
func (c *DescribeBookCommand) Execute(ctx context.Context) (*BookResult, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}

	id, err := c.doc.ResolveBookID(c.BookRef)
	if err != nil {
		return nil, err
	}
	if err := c.doc.SetBookDescription(ctx, id, c.Description); err != nil {
		return nil, fmt.Errorf("failed to describe book: %w", err)
	}

	return bookResult(c.doc, id, fmt.Sprintf("Updated description of %s", ShortID(id)))
}

// SetBookTypeCommand classifies a book
type SetBookTypeCommand struct {
	doc     *application.Document
	BookRef string
	Type    domain.BookType
}

// NewSetBookTypeCommand creates a new SetBookTypeCommand
func NewSetBookTypeCommand(doc *application.Document, bookRef string, t domain.BookType) *SetBookTypeCommand {
	return &SetBookTypeCommand{
		doc:     doc,
		BookRef: bookRef,
		Type:    t,
	}
}

// Validate checks if the type change is valid
func (c *SetBookTypeCommand) Validate() error {
	if err := application.ValidateRequired("bookID", c.BookRef); err != nil {
		return err
	}
	return application.ValidateBookType(c.Type)
}

// Execute runs the set book type command
func (c *SetBookTypeCommand) Execute(ctx context.Context) (*BookResult, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}

	id, err := c.doc.ResolveBookID(c.BookRef)
	if err != nil {
		return nil, err
	}
	if err := c.doc.SetBookType(ctx, id, c.Type); err != nil {
		return nil, fmt.Errorf("failed to set book type: %w", err)
	}

	return bookResult(c.doc, id, fmt.Sprintf("Marked %s as %s", ShortID(id), c.Type))
}

// DeleteBookResult contains the result of a delete operation
type DeleteBookResult struct {
	DeletedID string
	ActiveID  string
	Message   string
}

// DeleteBookCommand deletes a book. Confirmation happens before the command
// is built.
type DeleteBookCommand struct {
	doc     *application.Document
	BookRef string
}

// NewDeleteBookCommand creates a new DeleteBookCommand
func NewDeleteBookCommand(doc *application.Document, bookRef string) *DeleteBookCommand {
	return &DeleteBookCommand{
		doc:     doc,
		BookRef: bookRef,
	}
}

// Validate checks if the delete operation is valid
func (c *DeleteBookCommand) Validate() error {
	return application.ValidateRequired("bookID", c.BookRef)
}

// Execute runs the delete book command
func (c *DeleteBookCommand) Execute(ctx context.Context) (*DeleteBookResult, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}

	id, err := c.doc.ResolveBookID(c.BookRef)
	if err != nil {
		return nil, err
	}
	book, err := c.doc.Book(id)
	if err != nil {
		return nil, err
	}
	if err := c.doc.DeleteBook(ctx, id); err != nil {
		return nil, fmt.Errorf("failed to delete %s: %w", ShortID(id), err)
	}

	return &DeleteBookResult{
		DeletedID: id,
		ActiveID:  c.doc.ActiveID(),
		Message:   fmt.Sprintf("Deleted %s %s", ShortID(id), book.Title),
	}, nil
}

// SelectBookCommand makes a book active for the current session
type SelectBookCommand struct {
	doc     *application.Document
	BookRef string
}

// NewSelectBookCommand creates a new SelectBookCommand
func NewSelectBookCommand(doc *application.Document, bookRef string) *SelectBookCommand {
	return &SelectBookCommand{
		doc:     doc,
		BookRef: bookRef,
	}
}

// Execute runs the select book command
func (c *SelectBookCommand) Execute(ctx context.Context) (*BookResult, error) {
	id, err := c.doc.ResolveBookID(c.BookRef)
	if err != nil {
		return nil, err
	}
	if err := c.doc.SelectBook(id); err != nil {
		return nil, err
	}
	return bookResult(c.doc, id, fmt.Sprintf("Selected %s", ShortID(id)))
}

func bookResult(doc *application.Document, id, msg string) (*BookResult, error) {
	book, err := doc.Book(id)
	if err != nil {
		return nil, err
	}
	return &BookResult{Book: book, Message: msg}, nil
}

// ShortID abbreviates an id to its random tail, which ResolveBookID accepts
func ShortID(id string) string {
	const n = 8
	if len(id) <= n {
		return id
	}
	return id[len(id)-n:]
}
