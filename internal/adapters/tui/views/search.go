package views

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"adler/internal/adapters/tui/styles"
	"adler/internal/application"
	"adler/internal/application/commands"
)

// SearchKeyMap defines key bindings for the search view
type SearchKeyMap struct {
	Up       key.Binding
	Down     key.Binding
	NextPage key.Binding
	PrevPage key.Binding
	Select   key.Binding
	Cancel   key.Binding
}

var SearchKeys = SearchKeyMap{
	Up: key.NewBinding(
		key.WithKeys("up", "ctrl+p"),
		key.WithHelp("↑", "up"),
	),
	Down: key.NewBinding(
		key.WithKeys("down", "ctrl+n"),
		key.WithHelp("↓", "down"),
	),
	NextPage: key.NewBinding(
		key.WithKeys("pgdown", "ctrl+f"),
		key.WithHelp("pgdn", "next page"),
	),
	PrevPage: key.NewBinding(
		key.WithKeys("pgup", "ctrl+b"),
		key.WithHelp("pgup", "prev page"),
	),
	Select: key.NewBinding(
		key.WithKeys("enter"),
		key.WithHelp("enter", "go to"),
	),
	Cancel: key.NewBinding(
		key.WithKeys("esc"),
		key.WithHelp("esc", "cancel"),
	),
}

const searchPageSize = 10

// SearchModel is the model for the search view
type SearchModel struct {
	ViewState
	doc       *application.Document
	input     textinput.Model
	results   []commands.SearchResult
	paginator *Paginator
}

// NewSearchModel creates a new search view model
func NewSearchModel(doc *application.Document) *SearchModel {
	input := textinput.New()
	input.Placeholder = "Search books, chapters, terms..."
	input.Focus()

	return &SearchModel{
		doc:       doc,
		input:     input,
		paginator: NewPaginator(searchPageSize),
	}
}

// Init initializes the search view
func (m *SearchModel) Init() tea.Cmd {
	return textinput.Blink
}

// Reset resets the search view
func (m *SearchModel) Reset() {
	m.input.SetValue("")
	m.results = nil
	m.paginator.Reset()
	m.input.Focus()
}

// Update handles messages for the search view
func (m *SearchModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.SetSize(msg.Width, msg.Height)
		return m, nil

	case searchResultsMsg:
		// Drop results for a query the user has already changed
		if msg.query != m.input.Value() {
			return m, nil
		}
		m.results = msg.results
		m.paginator.Reset()
		m.paginator.SetTotal(len(m.results))
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, SearchKeys.Cancel):
			return m, func() tea.Msg {
				return SwitchToBrowserMsg{}
			}

		case key.Matches(msg, SearchKeys.Up):
			m.paginator.CursorUp()
			return m, nil

		case key.Matches(msg, SearchKeys.Down):
			m.paginator.CursorDown()
			return m, nil

		case key.Matches(msg, SearchKeys.NextPage):
			m.paginator.NextPage()
			return m, nil

		case key.Matches(msg, SearchKeys.PrevPage):
			m.paginator.PrevPage()
			return m, nil

		case key.Matches(msg, SearchKeys.Select):
			if c := m.paginator.Cursor(); c >= 0 && c < len(m.results) {
				result := m.results[c]
				return m, func() tea.Msg {
					return SearchSelectMsg{Result: result}
				}
			}
			return m, nil
		}
	}

	// Update input
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)

	// Trigger search on input change
	query := m.input.Value()
	if len(query) >= 2 {
		return m, tea.Batch(cmd, m.search(query))
	} else if len(query) == 0 {
		m.results = nil
		m.paginator.Reset()
	}

	return m, cmd
}

func (m *SearchModel) search(query string) tea.Cmd {
	doc := m.doc
	return func() tea.Msg {
		results, err := commands.NewSearchCommand(doc, query).Execute(context.Background())
		if err != nil {
			return searchResultsMsg{query: query}
		}
		return searchResultsMsg{query: query, results: results}
	}
}

type searchResultsMsg struct {
	query   string
	results []commands.SearchResult
}

// SearchSelectMsg is sent when a search result is selected
type SearchSelectMsg struct {
	Result commands.SearchResult
}

// View renders the search view
func (m *SearchModel) View() string {
	var b strings.Builder

	b.WriteString(styles.Title.Render("Search"))
	b.WriteString("\n\n")

	b.WriteString(styles.InputFocused.Render(m.input.View()))
	b.WriteString("\n\n")

	if len(m.results) == 0 {
		if len(m.input.Value()) >= 2 {
			b.WriteString(styles.MutedText.Render("No results found"))
		} else {
			b.WriteString(styles.MutedText.Render("Type at least 2 characters to search"))
		}
	} else {
		b.WriteString(styles.Subtitle.Render(fmt.Sprintf("%d results, page %d/%d",
			len(m.results), m.paginator.CurrentPage(), m.paginator.TotalPages())))
		b.WriteString("\n\n")

		start, end := m.paginator.VisibleRange()
		for i := start; i < end; i++ {
			b.WriteString(m.renderResult(m.results[i], i == m.paginator.Cursor()))
			b.WriteString("\n")
		}
	}

	b.WriteString("\n\n")
	b.WriteString(RenderHelpLine(SearchKeys.Up, SearchKeys.Down, SearchKeys.NextPage, SearchKeys.Select, SearchKeys.Cancel))

	return styles.App.Render(b.String())
}

func (m *SearchModel) renderResult(r commands.SearchResult, selected bool) string {
	var tag string
	switch r.Kind {
	case commands.MatchBook:
		tag = "[LIVRO]"
	case commands.MatchChapter:
		tag = "[CAP]"
	case commands.MatchTerm:
		tag = "[TERMO]"
	case commands.MatchProposition:
		tag = "[PROP]"
	}

	where := r.BookTitle
	if r.ChapterIndex >= 0 && r.Kind != commands.MatchChapter {
		where = fmt.Sprintf("%s › %d", r.BookTitle, r.ChapterIndex+1)
	}
	text := fmt.Sprintf("%-7s %s", tag, Truncate(r.Text, max(m.Width-30, 20)))

	if selected {
		return styles.NodeSelected.Render(text) + " " + styles.MutedText.Render(where)
	}
	return text + " " + styles.MutedText.Render(where)
}
