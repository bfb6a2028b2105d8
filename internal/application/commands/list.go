package commands

import (
	"context"

	"adler/internal/application"
	"adler/internal/domain"
)

// ListBooksCommand lists all books in display order
type ListBooksCommand struct {
	doc *application.Document
}

// NewListBooksCommand creates a new ListBooksCommand
func NewListBooksCommand(doc *application.Document) *ListBooksCommand {
	return &ListBooksCommand{doc: doc}
}

// Execute runs the list books command
func (c *ListBooksCommand) Execute(ctx context.Context) ([]domain.Book, error) {
	return c.doc.Books(), nil
}

// GetBookCommand fetches one book
type GetBookCommand struct {
	doc     *application.Document
	BookRef string
}

// NewGetBookCommand creates a new GetBookCommand
func NewGetBookCommand(doc *application.Document, bookRef string) *GetBookCommand {
	return &GetBookCommand{
		doc:     doc,
		BookRef: bookRef,
	}
}

// Execute runs the get book command
func (c *GetBookCommand) Execute(ctx context.Context) (*domain.Book, error) {
	id, err := c.doc.ResolveBookID(c.BookRef)
	if err != nil {
		return nil, err
	}
	book, err := c.doc.Book(id)
	if err != nil {
		return nil, err
	}
	return &book, nil
}

// OutlineCommand projects a book. An empty BookRef projects the active book.
type OutlineCommand struct {
	doc     *application.Document
	BookRef string
	Export  bool
}

// NewOutlineCommand creates a new OutlineCommand
func NewOutlineCommand(doc *application.Document, bookRef string, export bool) *OutlineCommand {
	return &OutlineCommand{
		doc:     doc,
		BookRef: bookRef,
		Export:  export,
	}
}

// Execute runs the outline command
func (c *OutlineCommand) Execute(ctx context.Context) (string, error) {
	id := c.BookRef
	if id == "" {
		id = c.doc.ActiveID()
		if id == "" {
			if c.Export {
				return "", application.ErrNoActiveBook
			}
			return c.doc.Outline(), nil
		}
	} else {
		var err error
		if id, err = c.doc.ResolveBookID(id); err != nil {
			return "", err
		}
	}

	if c.Export {
		return c.doc.ExportOutline(id)
	}
	return c.doc.BookOutline(id)
}
