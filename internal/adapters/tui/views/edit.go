package views

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"adler/internal/application"
	"adler/internal/application/commands"
	"adler/internal/domain"
)

// EditKind names what an edit changes
type EditKind int

const (
	EditBookTitle EditKind = iota
	EditBookDescription
	EditChapterTitle
	EditChapterDescription
	EditTerm
	EditProposition
)

func (k EditKind) String() string {
	switch k {
	case EditBookTitle:
		return "Book title"
	case EditBookDescription:
		return "Book description"
	case EditChapterTitle:
		return "Chapter title"
	case EditChapterDescription:
		return "Chapter description"
	case EditTerm:
		return "Term"
	case EditProposition:
		return "Proposition"
	default:
		return "Edit"
	}
}

// EditTarget addresses the field(s) being edited. Values holds the current
// text: the term and its definition for EditTerm, a single value otherwise.
type EditTarget struct {
	Kind    EditKind
	BookID  string
	Chapter int
	Entry   int
	Values  []string
}

// Apply writes values through the matching command and returns its message
func (t EditTarget) Apply(ctx context.Context, doc *application.Document, values []string) (string, error) {
	value := func(i int) string {
		if i < len(values) {
			return values[i]
		}
		return ""
	}

	switch t.Kind {
	case EditBookTitle:
		res, err := commands.NewRenameBookCommand(doc, t.BookID, value(0)).Execute(ctx)
		if err != nil {
			return "", err
		}
		return res.Message, nil

	case EditBookDescription:
		res, err := commands.NewDescribeBookCommand(doc, t.BookID, value(0)).Execute(ctx)
		if err != nil {
			return "", err
		}
		return res.Message, nil

	case EditChapterTitle:
		res, err := commands.NewRenameChapterCommand(doc, t.BookID, t.Chapter, value(0)).Execute(ctx)
		if err != nil {
			return "", err
		}
		return res.Message, nil

	case EditChapterDescription:
		res, err := commands.NewDescribeChapterCommand(doc, t.BookID, t.Chapter, value(0)).Execute(ctx)
		if err != nil {
			return "", err
		}
		return res.Message, nil

	case EditTerm:
		if _, err := commands.NewSetEntryCommand(doc, commands.EntryTerm, t.BookID, t.Chapter, t.Entry, domain.FieldTermo, value(0)).Execute(ctx); err != nil {
			return "", err
		}
		res, err := commands.NewSetEntryCommand(doc, commands.EntryTerm, t.BookID, t.Chapter, t.Entry, domain.FieldDefinicao, value(1)).Execute(ctx)
		if err != nil {
			return "", err
		}
		return res.Message, nil

	case EditProposition:
		res, err := commands.NewSetEntryCommand(doc, commands.EntryProposition, t.BookID, t.Chapter, t.Entry, "", value(0)).Execute(ctx)
		if err != nil {
			return "", err
		}
		return res.Message, nil
	}
	return "", fmt.Errorf("unknown edit kind: %d", t.Kind)
}

// SwitchToEditMsg opens the edit form for a target
type SwitchToEditMsg struct {
	Target EditTarget
}

// OpenEditorMsg asks the app to edit a description in $EDITOR
type OpenEditorMsg struct {
	Target EditTarget
}

// EditDoneMsg reports a successful edit
type EditDoneMsg struct {
	Message string
}

type editErrMsg struct {
	err error
}

// EditModel is a one or two field form over an EditTarget
type EditModel struct {
	ViewState
	doc    *application.Document
	target EditTarget
	form   *InputForm
}

// NewEditModel creates a new edit view model
func NewEditModel(doc *application.Document) *EditModel {
	return &EditModel{doc: doc}
}

// SetTarget prepares the form for target
func (m *EditModel) SetTarget(target EditTarget) {
	m.target = target
	m.ClearMessage()

	var fields []InputField
	switch target.Kind {
	case EditTerm:
		fields = []InputField{
			NewInputField("Termo", domain.TermPlaceholder, 200),
			NewInputField("Definição", "", 0),
		}
	case EditProposition:
		fields = []InputField{NewInputField("Proposição", "", 0)}
	case EditChapterTitle:
		fields = []InputField{NewInputField("Título", domain.NewChapterTitle, 200)}
	case EditBookTitle:
		fields = []InputField{NewInputField("Título", domain.NewBookTitle, 200)}
	default:
		fields = []InputField{NewInputField("Descrição", "", 0)}
	}

	m.form = NewInputForm(fields...)
	for i, v := range target.Values {
		m.form.SetValue(i, v)
	}
	m.form.SetWidth(m.Width - 8)
}

// Target returns the target being edited
func (m *EditModel) Target() EditTarget {
	return m.target
}

// Init initializes the edit view
func (m *EditModel) Init() tea.Cmd {
	if m.form == nil {
		return nil
	}
	return m.form.Init()
}

// Update handles messages for the edit view
func (m *EditModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.SetSize(msg.Width, msg.Height)
		if m.form != nil {
			m.form.SetWidth(msg.Width - 8)
		}
		return m, nil

	case editErrMsg:
		m.SetMessage(msg.err.Error(), true)
		return m, nil

	case tea.KeyMsg:
		if m.form == nil {
			return m, nil
		}
		switch {
		case key.Matches(msg, m.form.Keys.Cancel):
			return m, func() tea.Msg { return SwitchToBrowserMsg{} }
		case key.Matches(msg, m.form.Keys.Submit):
			return m, m.submit()
		}
	}

	if m.form == nil {
		return m, nil
	}
	_, cmd := m.form.Update(msg)
	return m, cmd
}

func (m *EditModel) submit() tea.Cmd {
	values := m.form.Values()
	target := m.target
	doc := m.doc
	return func() tea.Msg {
		msg, err := target.Apply(context.Background(), doc, values)
		if err != nil {
			return editErrMsg{err}
		}
		return EditDoneMsg{Message: msg}
	}
}

// View renders the edit view
func (m *EditModel) View() string {
	v := NewViewBuilder().Title(m.target.Kind.String())

	if m.target.Kind == EditTerm || m.target.Kind == EditProposition {
		v.Subtitle(fmt.Sprintf("%s %d, chapter %d", strings.ToLower(m.target.Kind.String()), m.target.Entry+1, m.target.Chapter+1))
	}

	if m.form != nil {
		for i := range m.form.Fields {
			v.Line(m.form.RenderField(i)).BlankLine()
		}
	}
	v.Message(m.Message, m.MessageErr)
	if m.form != nil {
		v.Raw(m.form.RenderHelp("save"))
	}
	return v.String()
}
