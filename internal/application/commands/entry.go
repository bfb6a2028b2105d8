package commands

import (
	"context"
	"fmt"

	"adler/internal/application"
	"adler/internal/domain"
)

// EntryKind selects the chapter list an entry command works on
type EntryKind string

const (
	EntryTerm        EntryKind = "term"
	EntryProposition EntryKind = "proposition"
)

// Valid reports whether k is a known entry kind
func (k EntryKind) Valid() bool {
	return k == EntryTerm || k == EntryProposition
}

// EntryResult contains the chapter after an entry change
type EntryResult struct {
	BookID       string
	ChapterIndex int
	EntryIndex   int
	Chapter      domain.Chapter
	Message      string
}

// AddEntryCommand appends an entry to a chapter and optionally fills it in.
// For terms Text is the termo and Definition the definicao.
type AddEntryCommand struct {
	doc          *application.Document
	Kind         EntryKind
	BookRef      string
	ChapterIndex int
	Text         string
	Definition   string
}

// NewAddEntryCommand creates a new AddEntryCommand
func NewAddEntryCommand(doc *application.Document, kind EntryKind, bookRef string, chapterIndex int, text, definition string) *AddEntryCommand {
	return &AddEntryCommand{
		doc:          doc,
		Kind:         kind,
		BookRef:      bookRef,
		ChapterIndex: chapterIndex,
		Text:         text,
		Definition:   definition,
	}
}

// Validate checks if the add operation is valid
func (c *AddEntryCommand) Validate() error {
	if err := validateKind(c.Kind); err != nil {
		return err
	}
	return application.ValidateRequired("bookID", c.BookRef)
}

// Execute runs the add entry command
func (c *AddEntryCommand) Execute(ctx context.Context) (*EntryResult, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}
	id, err := c.doc.ResolveBookID(c.BookRef)
	if err != nil {
		return nil, err
	}

	switch c.Kind {
	case EntryTerm:
		err = c.doc.AddDefinition(ctx, id, c.ChapterIndex)
	case EntryProposition:
		err = c.doc.AddProposition(ctx, id, c.ChapterIndex)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to add %s: %w", c.Kind, err)
	}

	res, err := entryResult(c.doc, id, c.ChapterIndex, -1, "")
	if err != nil {
		return nil, err
	}
	res.EntryIndex = entryCount(res.Chapter, c.Kind) - 1

	switch c.Kind {
	case EntryTerm:
		if c.Text != "" {
			err = c.doc.UpdateDefinition(ctx, id, c.ChapterIndex, res.EntryIndex, domain.FieldTermo, c.Text)
		}
		if err == nil && c.Definition != "" {
			err = c.doc.UpdateDefinition(ctx, id, c.ChapterIndex, res.EntryIndex, domain.FieldDefinicao, c.Definition)
		}
	case EntryProposition:
		if c.Text != "" {
			err = c.doc.UpdateProposition(ctx, id, c.ChapterIndex, res.EntryIndex, c.Text)
		}
	}
	if err != nil {
		return nil, fmt.Errorf("failed to fill %s: %w", c.Kind, err)
	}

	return entryResult(c.doc, id, c.ChapterIndex, res.EntryIndex,
		fmt.Sprintf("Added %s %d to chapter %d", c.Kind, res.EntryIndex+1, c.ChapterIndex+1))
}

// SetEntryCommand edits one entry. Field is only used for terms.
type SetEntryCommand struct {
	doc          *application.Document
	Kind         EntryKind
	BookRef      string
	ChapterIndex int
	EntryIndex   int
	Field        domain.DefinitionField
	Value        string
}

// NewSetEntryCommand creates a new SetEntryCommand
func NewSetEntryCommand(doc *application.Document, kind EntryKind, bookRef string, chapterIndex, entryIndex int, field domain.DefinitionField, value string) *SetEntryCommand {
	return &SetEntryCommand{
		doc:          doc,
		Kind:         kind,
		BookRef:      bookRef,
		ChapterIndex: chapterIndex,
		EntryIndex:   entryIndex,
		Field:        field,
		Value:        value,
	}
}

// Validate checks if the set operation is valid
func (c *SetEntryCommand) Validate() error {
	if err := validateKind(c.Kind); err != nil {
		return err
	}
	if err := application.ValidateRequired("bookID", c.BookRef); err != nil {
		return err
	}
	if c.Kind == EntryTerm {
		return application.ValidateDefinitionField(c.Field)
	}
	return nil
}

// Execute runs the set entry command
func (c *SetEntryCommand) Execute(ctx context.Context) (*EntryResult, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}
	id, err := c.doc.ResolveBookID(c.BookRef)
	if err != nil {
		return nil, err
	}

	switch c.Kind {
	case EntryTerm:
		err = c.doc.UpdateDefinition(ctx, id, c.ChapterIndex, c.EntryIndex, c.Field, c.Value)
	case EntryProposition:
		err = c.doc.UpdateProposition(ctx, id, c.ChapterIndex, c.EntryIndex, c.Value)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to update %s: %w", c.Kind, err)
	}

	return entryResult(c.doc, id, c.ChapterIndex, c.EntryIndex,
		fmt.Sprintf("Updated %s %d in chapter %d", c.Kind, c.EntryIndex+1, c.ChapterIndex+1))
}

// DeleteEntryCommand removes one entry by position
type DeleteEntryCommand struct {
	doc          *application.Document
	Kind         EntryKind
	BookRef      string
	ChapterIndex int
	EntryIndex   int
}

// NewDeleteEntryCommand creates a new DeleteEntryCommand
func NewDeleteEntryCommand(doc *application.Document, kind EntryKind, bookRef string, chapterIndex, entryIndex int) *DeleteEntryCommand {
	return &DeleteEntryCommand{
		doc:          doc,
		Kind:         kind,
		BookRef:      bookRef,
		ChapterIndex: chapterIndex,
		EntryIndex:   entryIndex,
	}
}

// Execute runs the delete entry command
func (c *DeleteEntryCommand) Execute(ctx context.Context) (*EntryResult, error) {
	if err := validateKind(c.Kind); err != nil {
		return nil, err
	}
	id, err := c.doc.ResolveBookID(c.BookRef)
	if err != nil {
		return nil, err
	}

	switch c.Kind {
	case EntryTerm:
		err = c.doc.DeleteDefinition(ctx, id, c.ChapterIndex, c.EntryIndex)
	case EntryProposition:
		err = c.doc.DeleteProposition(ctx, id, c.ChapterIndex, c.EntryIndex)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to delete %s: %w", c.Kind, err)
	}

	return entryResult(c.doc, id, c.ChapterIndex, c.EntryIndex,
		fmt.Sprintf("Deleted %s %d from chapter %d", c.Kind, c.EntryIndex+1, c.ChapterIndex+1))
}

// MoveEntryCommand moves an entry within its chapter
type MoveEntryCommand struct {
	doc          *application.Document
	Kind         EntryKind
	BookRef      string
	ChapterIndex int
	From         int
	To           int
}

// NewMoveEntryCommand creates a new MoveEntryCommand
func NewMoveEntryCommand(doc *application.Document, kind EntryKind, bookRef string, chapterIndex, from, to int) *MoveEntryCommand {
	return &MoveEntryCommand{
		doc:          doc,
		Kind:         kind,
		BookRef:      bookRef,
		ChapterIndex: chapterIndex,
		From:         from,
		To:           to,
	}
}

// Execute runs the move entry command
func (c *MoveEntryCommand) Execute(ctx context.Context) (*EntryResult, error) {
	if err := validateKind(c.Kind); err != nil {
		return nil, err
	}
	id, err := c.doc.ResolveBookID(c.BookRef)
	if err != nil {
		return nil, err
	}

	switch c.Kind {
	case EntryTerm:
		err = c.doc.MoveDefinition(ctx, id, c.ChapterIndex, c.From, c.To)
	case EntryProposition:
		err = c.doc.MoveProposition(ctx, id, c.ChapterIndex, c.From, c.To)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to move %s: %w", c.Kind, err)
	}

	return entryResult(c.doc, id, c.ChapterIndex, c.To,
		fmt.Sprintf("Moved %s %d to position %d", c.Kind, c.From+1, c.To+1))
}

func validateKind(k EntryKind) error {
	if !k.Valid() {
		return &application.ValidationError{
			Field:   "kind",
			Message: fmt.Sprintf("expected %q or %q, got: %q", EntryTerm, EntryProposition, k),
		}
	}
	return nil
}

func entryCount(ch domain.Chapter, k EntryKind) int {
	if k == EntryTerm {
		return len(ch.Definitions)
	}
	return len(ch.Propositions)
}

func entryResult(doc *application.Document, bookID string, ci, ei int, msg string) (*EntryResult, error) {
	res, err := chapterResult(doc, bookID, ci, "")
	if err != nil {
		return nil, err
	}
	return &EntryResult{
		BookID:       bookID,
		ChapterIndex: ci,
		EntryIndex:   ei,
		Chapter:      res.Chapter,
		Message:      msg,
	}, nil
}
