package views

import "adler/internal/domain"

// ViewState contains common state shared by all view models.
// Embed this struct in view models to get width/height and message handling.
type ViewState struct {
	Width      int
	Height     int
	Message    string
	MessageErr bool
}

// SetSize updates the view dimensions
func (s *ViewState) SetSize(width, height int) {
	s.Width = width
	s.Height = height
}

// SetMessage sets a message to display in the view
func (s *ViewState) SetMessage(msg string, isErr bool) {
	s.Message = msg
	s.MessageErr = isErr
}

// ClearMessage clears the current message
func (s *ViewState) ClearMessage() {
	s.Message = ""
	s.MessageErr = false
}

// Pane identifies a column of the editor
type Pane int

const (
	PaneBooks Pane = iota
	PaneChapters
	PaneEntries
)

func (p Pane) String() string {
	switch p {
	case PaneBooks:
		return "Livros"
	case PaneChapters:
		return "Capítulos"
	case PaneEntries:
		return "Termos e proposições"
	default:
		return "?"
	}
}

// Next cycles forward through the panes
func (p Pane) Next() Pane {
	return (p + 1) % 3
}

// Prev cycles backward through the panes
func (p Pane) Prev() Pane {
	return (p + 2) % 3
}

// EntryRow addresses one row of the entries pane: the chapter's definitions
// come first, then its propositions.
type EntryRow struct {
	Proposition bool
	Index       int
}

// EntryRows lists the rows shown for a chapter
func EntryRows(ch domain.Chapter) []EntryRow {
	rows := make([]EntryRow, 0, len(ch.Definitions)+len(ch.Propositions))
	for i := range ch.Definitions {
		rows = append(rows, EntryRow{Index: i})
	}
	for i := range ch.Propositions {
		rows = append(rows, EntryRow{Proposition: true, Index: i})
	}
	return rows
}

// RowOf returns the position of an entry in the rows of ch, or -1
func RowOf(ch domain.Chapter, proposition bool, index int) int {
	for i, r := range EntryRows(ch) {
		if r.Proposition == proposition && r.Index == index {
			return i
		}
	}
	return -1
}
