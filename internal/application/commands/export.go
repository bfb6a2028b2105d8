package commands

import (
	"context"
	"fmt"

	"adler/internal/application"
	"adler/internal/domain"
	"adler/internal/ports"
)

// ExportResult contains the written file
type ExportResult struct {
	BookID  string
	Path    string
	Message string
}

// ExportCommand exports a book as a paginated document. An empty BookRef
// exports the active book.
type ExportCommand struct {
	doc      *application.Document
	exporter ports.Exporter
	BookRef  string
	Dir      string
}

// NewExportCommand creates a new ExportCommand
func NewExportCommand(doc *application.Document, exporter ports.Exporter, bookRef, dir string) *ExportCommand {
	return &ExportCommand{
		doc:      doc,
		exporter: exporter,
		BookRef:  bookRef,
		Dir:      dir,
	}
}

// Validate checks if the export is possible
func (c *ExportCommand) Validate() error {
	if c.exporter == nil {
		return fmt.Errorf("%w: no exporter configured", application.ErrInvalidOperation)
	}
	return application.ValidateRequired("dir", c.Dir)
}

// Execute runs the export command
func (c *ExportCommand) Execute(ctx context.Context) (*ExportResult, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}

	id := c.BookRef
	if id == "" {
		if id = c.doc.ActiveID(); id == "" {
			return nil, application.ErrNoActiveBook
		}
	} else {
		var err error
		if id, err = c.doc.ResolveBookID(id); err != nil {
			return nil, err
		}
	}

	book, err := c.doc.Book(id)
	if err != nil {
		return nil, err
	}

	path, err := c.exporter.Export(ctx, ExportBook(book), c.Dir)
	if err != nil {
		return nil, fmt.Errorf("failed to export %s: %w", ShortID(id), err)
	}

	return &ExportResult{
		BookID:  id,
		Path:    path,
		Message: fmt.Sprintf("Exported %s to %s", book.Title, path),
	}, nil
}

// ExportBook builds the exporter input for a book
func ExportBook(book domain.Book) ports.ExportBook {
	return ports.ExportBook{
		Title:       book.Title,
		Description: book.Description,
		Outline:     domain.ProjectExport(&book),
		Filename:    domain.ExportFilename(book.Title),
	}
}
