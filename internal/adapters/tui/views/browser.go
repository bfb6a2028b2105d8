package views

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"adler/internal/adapters/tui/styles"
	"adler/internal/application"
	"adler/internal/application/commands"
	"adler/internal/domain"
	"adler/internal/ports"
)

// BrowserKeyMap defines key bindings for the browser view
type BrowserKeyMap struct {
	Up         key.Binding
	Down       key.Binding
	Left       key.Binding
	Right      key.Binding
	Enter      key.Binding
	New        key.Binding
	AddTerm    key.Binding
	AddProp    key.Binding
	Delete     key.Binding
	MoveUp     key.Binding
	MoveDown   key.Binding
	Describe   key.Binding
	ToggleType key.Binding
	Copy       key.Binding
	Recenter   key.Binding
	Mode       key.Binding
	Export     key.Binding
	ScrollUp   key.Binding
	ScrollDown key.Binding
	Search     key.Binding
	Help       key.Binding
	Quit       key.Binding
}

var BrowserKeys = BrowserKeyMap{
	Up: key.NewBinding(
		key.WithKeys("k", "up"),
		key.WithHelp("k/↑", "up"),
	),
	Down: key.NewBinding(
		key.WithKeys("j", "down"),
		key.WithHelp("j/↓", "down"),
	),
	Left: key.NewBinding(
		key.WithKeys("h", "left", "shift+tab"),
		key.WithHelp("h/←", "previous pane"),
	),
	Right: key.NewBinding(
		key.WithKeys("l", "right", "tab"),
		key.WithHelp("l/→", "next pane"),
	),
	Enter: key.NewBinding(
		key.WithKeys("enter"),
		key.WithHelp("enter", "edit"),
	),
	New: key.NewBinding(
		key.WithKeys("n"),
		key.WithHelp("n", "new"),
	),
	AddTerm: key.NewBinding(
		key.WithKeys("t"),
		key.WithHelp("t", "add term"),
	),
	AddProp: key.NewBinding(
		key.WithKeys("p"),
		key.WithHelp("p", "add proposition"),
	),
	Delete: key.NewBinding(
		key.WithKeys("d"),
		key.WithHelp("d d", "delete"),
	),
	MoveUp: key.NewBinding(
		key.WithKeys("K", "shift+up"),
		key.WithHelp("K", "move up"),
	),
	MoveDown: key.NewBinding(
		key.WithKeys("J", "shift+down"),
		key.WithHelp("J", "move down"),
	),
	Describe: key.NewBinding(
		key.WithKeys("e"),
		key.WithHelp("e", "edit description"),
	),
	ToggleType: key.NewBinding(
		key.WithKeys("T"),
		key.WithHelp("T", "toggle type"),
	),
	Copy: key.NewBinding(
		key.WithKeys("y"),
		key.WithHelp("y", "copy outline"),
	),
	Recenter: key.NewBinding(
		key.WithKeys("c"),
		key.WithHelp("c", "recenter"),
	),
	Mode: key.NewBinding(
		key.WithKeys("m"),
		key.WithHelp("m", "tree/markdown"),
	),
	Export: key.NewBinding(
		key.WithKeys("x"),
		key.WithHelp("x", "export pdf"),
	),
	ScrollUp: key.NewBinding(
		key.WithKeys("pgup", "ctrl+u"),
		key.WithHelp("pgup", "scroll outline"),
	),
	ScrollDown: key.NewBinding(
		key.WithKeys("pgdown", "ctrl+d"),
		key.WithHelp("pgdn", "scroll outline"),
	),
	Search: key.NewBinding(
		key.WithKeys("/"),
		key.WithHelp("/", "search"),
	),
	Help: key.NewBinding(
		key.WithKeys("?"),
		key.WithHelp("?", "help"),
	),
	Quit: key.NewBinding(
		key.WithKeys("q", "ctrl+c"),
		key.WithHelp("q", "quit"),
	),
}

// BrowserDeps holds the collaborators of the browser
type BrowserDeps struct {
	Exporter  ports.Exporter
	ExportDir string
	Guard     *DeleteGuard
	Outline   *OutlinePanel
}

// BrowserModel is the three-pane editor: books, chapters of the active book,
// and the entries of the selected chapter, next to the live outline.
type BrowserModel struct {
	ViewState
	doc      *application.Document
	deps     BrowserDeps
	pane     Pane
	books    *Paginator
	chapters *Paginator
	entries  *Paginator

	pending     string
	pendingWhat string
}

// actionMsg reports a finished mutation. after runs on the update loop to
// move cursors onto the changed row.
type actionMsg struct {
	message string
	after   func(*BrowserModel) tea.Cmd
}

// ShowErrorMsg asks the app to show the blocking error overlay
type ShowErrorMsg struct {
	Err error
}

// NewBrowserModel creates a new browser model
func NewBrowserModel(doc *application.Document, deps BrowserDeps) *BrowserModel {
	if deps.Guard == nil {
		deps.Guard = NewDeleteGuard(nil)
	}
	if deps.Outline == nil {
		deps.Outline = NewOutlinePanel(nil, nil)
	}
	m := &BrowserModel{
		doc:      doc,
		deps:     deps,
		books:    NewPaginator(10),
		chapters: NewPaginator(10),
		entries:  NewPaginator(10),
	}
	m.Refresh()
	return m
}

// Init initializes the browser
func (m *BrowserModel) Init() tea.Cmd {
	return nil
}

// Pane returns the focused pane
func (m *BrowserModel) Pane() Pane {
	return m.pane
}

// Outline returns the outline panel
func (m *BrowserModel) Outline() *OutlinePanel {
	return m.deps.Outline
}

// Update handles messages for the browser
func (m *BrowserModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.SetSize(msg.Width, msg.Height)
		return m, nil

	case OutlineMsg:
		m.deps.Outline.SetOutline(msg)
		return m, nil

	case recenterMsg:
		return m, m.deps.Outline.Update(msg)

	case ConfirmExpiredMsg:
		m.deps.Guard.Expire(msg)
		if msg.Key == m.pending && !m.deps.Guard.Pending(m.pending) {
			m.pending, m.pendingWhat = "", ""
		}
		return m, nil

	case actionMsg:
		m.SetMessage(msg.message, false)
		m.Refresh()
		if msg.after != nil {
			return m, msg.after(m)
		}
		return m, nil

	case EditDoneMsg:
		m.SetMessage(msg.Message, false)
		m.Refresh()
		return m, nil

	case SearchSelectMsg:
		m.jumpTo(msg.Result)
		return m, nil

	case tea.KeyMsg:
		m.ClearMessage()
		if !key.Matches(msg, BrowserKeys.Delete) {
			m.disarm()
		}
		return m, m.handleKey(msg)
	}

	return m, nil
}

func (m *BrowserModel) handleKey(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, BrowserKeys.Quit):
		return tea.Quit

	case key.Matches(msg, BrowserKeys.Up):
		m.moveCursor(-1)
	case key.Matches(msg, BrowserKeys.Down):
		m.moveCursor(1)

	case key.Matches(msg, BrowserKeys.Left):
		m.pane = m.pane.Prev()
	case key.Matches(msg, BrowserKeys.Right):
		m.pane = m.pane.Next()

	case key.Matches(msg, BrowserKeys.Enter):
		return m.edit()
	case key.Matches(msg, BrowserKeys.New):
		return m.create()
	case key.Matches(msg, BrowserKeys.AddTerm):
		return m.addEntry(commands.EntryTerm)
	case key.Matches(msg, BrowserKeys.AddProp):
		return m.addEntry(commands.EntryProposition)
	case key.Matches(msg, BrowserKeys.Delete):
		return m.delete()
	case key.Matches(msg, BrowserKeys.MoveUp):
		return m.move(-1)
	case key.Matches(msg, BrowserKeys.MoveDown):
		return m.move(1)
	case key.Matches(msg, BrowserKeys.Describe):
		return m.describe()
	case key.Matches(msg, BrowserKeys.ToggleType):
		return m.toggleType()

	case key.Matches(msg, BrowserKeys.Copy):
		return m.copyOutline()
	case key.Matches(msg, BrowserKeys.Recenter):
		return m.deps.Outline.Recenter()
	case key.Matches(msg, BrowserKeys.Mode):
		m.deps.Outline.ToggleMode()
	case key.Matches(msg, BrowserKeys.Export):
		return m.export()
	case key.Matches(msg, BrowserKeys.ScrollUp), key.Matches(msg, BrowserKeys.ScrollDown):
		return m.deps.Outline.Update(msg)

	case key.Matches(msg, BrowserKeys.Search):
		return func() tea.Msg { return SwitchToSearchMsg{} }
	case key.Matches(msg, BrowserKeys.Help):
		return func() tea.Msg { return SwitchToHelpMsg{} }
	}
	return nil
}

// Refresh re-reads the document and clamps the cursors. The books cursor
// always follows the active book.
func (m *BrowserModel) Refresh() {
	books := m.doc.Books()
	m.books.SetTotal(len(books))
	active := m.doc.ActiveID()
	if i := slices.IndexFunc(books, func(b domain.Book) bool { return b.ID == active }); i >= 0 {
		m.books.SetCursor(i)
	}

	book, ok := m.doc.Active()
	if !ok {
		m.chapters.SetTotal(0)
		m.entries.SetTotal(0)
		return
	}
	m.chapters.SetTotal(len(book.Chapters))
	if ch, _, ok := m.chapter(book); ok {
		m.entries.SetTotal(len(EntryRows(ch)))
	} else {
		m.entries.SetTotal(0)
	}
}

func (m *BrowserModel) chapter(book domain.Book) (domain.Chapter, int, bool) {
	ci := m.chapters.Cursor()
	if ci < 0 || ci >= len(book.Chapters) {
		return domain.Chapter{}, -1, false
	}
	return book.Chapters[ci], ci, true
}

func (m *BrowserModel) row(ch domain.Chapter) (EntryRow, bool) {
	rows := EntryRows(ch)
	ri := m.entries.Cursor()
	if ri < 0 || ri >= len(rows) {
		return EntryRow{}, false
	}
	return rows[ri], true
}

func (m *BrowserModel) moveCursor(delta int) {
	switch m.pane {
	case PaneBooks:
		books := m.doc.Books()
		next := m.books.Cursor() + delta
		if next < 0 || next >= len(books) {
			return
		}
		if err := m.doc.SelectBook(books[next].ID); err != nil {
			m.SetMessage(err.Error(), true)
			return
		}
		m.chapters.SetCursor(0)
		m.entries.SetCursor(0)
	case PaneChapters:
		if delta < 0 {
			m.chapters.CursorUp()
		} else {
			m.chapters.CursorDown()
		}
		m.entries.SetCursor(0)
	case PaneEntries:
		if delta < 0 {
			m.entries.CursorUp()
		} else {
			m.entries.CursorDown()
		}
	}
	m.Refresh()
}

func (m *BrowserModel) run(fn func(ctx context.Context) (string, error), after func(*BrowserModel) tea.Cmd) tea.Cmd {
	return func() tea.Msg {
		msg, err := fn(context.Background())
		if err != nil {
			return ShowErrorMsg{Err: err}
		}
		return actionMsg{message: msg, after: after}
	}
}

func (m *BrowserModel) edit() tea.Cmd {
	book, ok := m.doc.Active()
	if !ok {
		return nil
	}
	var target EditTarget
	switch m.pane {
	case PaneBooks:
		target = EditTarget{Kind: EditBookTitle, BookID: book.ID, Values: []string{book.Title}}
	case PaneChapters:
		ch, ci, ok := m.chapter(book)
		if !ok {
			return nil
		}
		target = EditTarget{Kind: EditChapterTitle, BookID: book.ID, Chapter: ci, Values: []string{ch.Title}}
	case PaneEntries:
		ch, ci, ok := m.chapter(book)
		if !ok {
			return nil
		}
		r, ok := m.row(ch)
		if !ok {
			return nil
		}
		target = entryTarget(book.ID, ci, ch, r)
	}
	return func() tea.Msg { return SwitchToEditMsg{Target: target} }
}

func entryTarget(bookID string, ci int, ch domain.Chapter, r EntryRow) EditTarget {
	if r.Proposition {
		return EditTarget{
			Kind: EditProposition, BookID: bookID, Chapter: ci, Entry: r.Index,
			Values: []string{ch.Propositions[r.Index].Text},
		}
	}
	d := ch.Definitions[r.Index]
	return EditTarget{
		Kind: EditTerm, BookID: bookID, Chapter: ci, Entry: r.Index,
		Values: []string{d.Termo, d.Definicao},
	}
}

func (m *BrowserModel) create() tea.Cmd {
	switch m.pane {
	case PaneBooks:
		return m.run(func(ctx context.Context) (string, error) {
			res, err := commands.NewCreateBookCommand(m.doc, "").Execute(ctx)
			if err != nil {
				return "", err
			}
			return res.Message, nil
		}, func(m *BrowserModel) tea.Cmd {
			m.chapters.SetCursor(0)
			m.entries.SetCursor(0)
			m.Refresh()
			return nil
		})

	case PaneChapters:
		bookID := m.doc.ActiveID()
		if bookID == "" {
			return nil
		}
		var index int
		return m.run(func(ctx context.Context) (string, error) {
			res, err := commands.NewAddChapterCommand(m.doc, bookID, "").Execute(ctx)
			if err != nil {
				return "", err
			}
			index = res.Index
			return res.Message, nil
		}, func(m *BrowserModel) tea.Cmd {
			m.chapters.SetCursor(index)
			m.entries.SetCursor(0)
			m.Refresh()
			return nil
		})

	default:
		return m.addEntry(commands.EntryTerm)
	}
}

// addEntry appends an empty entry to the selected chapter and opens its form
func (m *BrowserModel) addEntry(kind commands.EntryKind) tea.Cmd {
	book, ok := m.doc.Active()
	if !ok {
		return nil
	}
	_, ci, ok := m.chapter(book)
	if !ok {
		m.SetMessage("Select a chapter first", true)
		return nil
	}

	var res *commands.EntryResult
	return m.run(func(ctx context.Context) (string, error) {
		var err error
		res, err = commands.NewAddEntryCommand(m.doc, kind, book.ID, ci, "", "").Execute(ctx)
		if err != nil {
			return "", err
		}
		return res.Message, nil
	}, func(m *BrowserModel) tea.Cmd {
		prop := kind == commands.EntryProposition
		m.pane = PaneEntries
		m.entries.SetCursor(RowOf(res.Chapter, prop, res.EntryIndex))
		target := entryTarget(res.BookID, ci, res.Chapter, EntryRow{Proposition: prop, Index: res.EntryIndex})
		return func() tea.Msg { return SwitchToEditMsg{Target: target} }
	})
}

func (m *BrowserModel) delete() tea.Cmd {
	book, ok := m.doc.Active()
	if !ok {
		return nil
	}

	var target, what string
	var del func(ctx context.Context) (string, error)

	switch m.pane {
	case PaneBooks:
		target, what = BookTarget(book.ID), fmt.Sprintf("book %q", book.Title)
		del = func(ctx context.Context) (string, error) {
			res, err := commands.NewDeleteBookCommand(m.doc, book.ID).Execute(ctx)
			if err != nil {
				return "", err
			}
			return res.Message, nil
		}
	case PaneChapters:
		ch, ci, ok := m.chapter(book)
		if !ok {
			return nil
		}
		target, what = ChapterTarget(book.ID, ch.ID), fmt.Sprintf("chapter %q", domain.ChapterHeading(ch, ci))
		del = func(ctx context.Context) (string, error) {
			res, err := commands.NewDeleteChapterCommand(m.doc, book.ID, ci).Execute(ctx)
			if err != nil {
				return "", err
			}
			return res.Message, nil
		}
	case PaneEntries:
		ch, ci, ok := m.chapter(book)
		if !ok {
			return nil
		}
		r, ok := m.row(ch)
		if !ok {
			return nil
		}
		kind := commands.EntryTerm
		if r.Proposition {
			kind = commands.EntryProposition
		}
		// terms and propositions are deleted on the first press
		m.disarm()
		return m.run(func(ctx context.Context) (string, error) {
			res, err := commands.NewDeleteEntryCommand(m.doc, kind, book.ID, ci, r.Index).Execute(ctx)
			if err != nil {
				return "", err
			}
			return res.Message, nil
		}, nil)
	}
	if target == "" {
		return nil
	}
	if m.pending != "" && m.pending != target {
		m.deps.Guard.Cancel(m.pending)
	}
	m.pendingWhat = what

	fire, expire := m.deps.Guard.Press(target)
	if !fire {
		m.pending = target
		return expire
	}
	m.pending, m.pendingWhat = "", ""
	return m.run(del, nil)
}

// disarm cancels a pending delete when any other key is pressed
func (m *BrowserModel) disarm() {
	if m.pending == "" {
		return
	}
	m.deps.Guard.Cancel(m.pending)
	m.pending, m.pendingWhat = "", ""
}

func (m *BrowserModel) move(delta int) tea.Cmd {
	book, ok := m.doc.Active()
	if !ok {
		return nil
	}
	ch, ci, ok := m.chapter(book)
	if !ok {
		return nil
	}

	switch m.pane {
	case PaneChapters:
		to := ci + delta
		if to < 0 || to >= len(book.Chapters) {
			return nil
		}
		return m.run(func(ctx context.Context) (string, error) {
			res, err := commands.NewMoveChapterCommand(m.doc, book.ID, ci, to).Execute(ctx)
			if err != nil {
				return "", err
			}
			return res.Message, nil
		}, func(m *BrowserModel) tea.Cmd {
			m.chapters.SetCursor(to)
			m.Refresh()
			return nil
		})

	case PaneEntries:
		r, ok := m.row(ch)
		if !ok {
			return nil
		}
		kind, n := commands.EntryTerm, len(ch.Definitions)
		if r.Proposition {
			kind, n = commands.EntryProposition, len(ch.Propositions)
		}
		to := r.Index + delta
		if to < 0 || to >= n {
			return nil
		}
		var moved domain.Chapter
		return m.run(func(ctx context.Context) (string, error) {
			res, err := commands.NewMoveEntryCommand(m.doc, kind, book.ID, ci, r.Index, to).Execute(ctx)
			if err != nil {
				return "", err
			}
			moved = res.Chapter
			return res.Message, nil
		}, func(m *BrowserModel) tea.Cmd {
			m.entries.SetCursor(RowOf(moved, r.Proposition, to))
			return nil
		})
	}
	return nil
}

func (m *BrowserModel) describe() tea.Cmd {
	book, ok := m.doc.Active()
	if !ok {
		return nil
	}
	target := EditTarget{Kind: EditBookDescription, BookID: book.ID, Values: []string{book.Description}}
	if m.pane != PaneBooks {
		ch, ci, ok := m.chapter(book)
		if !ok {
			return nil
		}
		target = EditTarget{Kind: EditChapterDescription, BookID: book.ID, Chapter: ci, Values: []string{ch.Description}}
	}
	return func() tea.Msg { return OpenEditorMsg{Target: target} }
}

func (m *BrowserModel) toggleType() tea.Cmd {
	book, ok := m.doc.Active()
	if !ok {
		return nil
	}
	next := domain.BookTypePractical
	if book.Type == domain.BookTypePractical {
		next = domain.BookTypeTheoretical
	}
	return m.run(func(ctx context.Context) (string, error) {
		res, err := commands.NewSetBookTypeCommand(m.doc, book.ID, next).Execute(ctx)
		if err != nil {
			return "", err
		}
		return res.Message, nil
	}, nil)
}

func (m *BrowserModel) copyOutline() tea.Cmd {
	outline := m.doc.Outline()
	return func() tea.Msg {
		if err := clipboard.WriteAll(outline); err != nil {
			return ShowErrorMsg{Err: fmt.Errorf("failed to copy outline: %w", err)}
		}
		return actionMsg{message: "Outline copied to clipboard"}
	}
}

func (m *BrowserModel) export() tea.Cmd {
	if m.doc.ActiveID() == "" {
		return nil
	}
	return m.run(func(ctx context.Context) (string, error) {
		res, err := commands.NewExportCommand(m.doc, m.deps.Exporter, "", m.deps.ExportDir).Execute(ctx)
		if err != nil {
			return "", err
		}
		return res.Message, nil
	}, nil)
}

func (m *BrowserModel) jumpTo(r commands.SearchResult) {
	if err := m.doc.SelectBook(r.BookID); err != nil {
		m.SetMessage(err.Error(), true)
		return
	}
	m.pane = PaneBooks
	m.chapters.SetCursor(0)
	m.entries.SetCursor(0)
	m.Refresh()
	if r.ChapterIndex < 0 {
		return
	}

	m.pane = PaneChapters
	m.chapters.SetCursor(r.ChapterIndex)
	m.Refresh()
	if r.EntryIndex < 0 {
		return
	}

	book, ok := m.doc.Active()
	if !ok {
		return
	}
	if ch, _, ok := m.chapter(book); ok {
		m.pane = PaneEntries
		m.entries.SetCursor(RowOf(ch, r.Kind == commands.MatchProposition, r.EntryIndex))
	}
}

// layout computes pane sizes for the current window
type layout struct {
	listWidth     int
	listHeight    int
	outlineWidth  int
	outlineHeight int
	stacked       bool
}

const (
	headerLines = 4
	footerLines = 3
	wideLayout  = 100
)

func (m *BrowserModel) layout() layout {
	innerW := max(m.Width-4, 30)
	innerH := max(m.Height-2-headerLines-footerLines, 10)

	if innerW >= wideLayout {
		list := innerW * 55 / 100 / 3
		return layout{
			listWidth:     list,
			listHeight:    innerH,
			outlineWidth:  innerW - 3*list,
			outlineHeight: innerH,
		}
	}
	top := innerH / 2
	return layout{
		listWidth:     innerW / 3,
		listHeight:    top,
		outlineWidth:  innerW,
		outlineHeight: innerH - top,
		stacked:       true,
	}
}

// SetSize updates the view dimensions and resizes the panes
func (m *BrowserModel) SetSize(width, height int) {
	m.ViewState.SetSize(width, height)
	l := m.layout()
	rows := max(l.listHeight-3, 1)
	m.books.SetPageSize(rows)
	m.chapters.SetPageSize(rows)
	m.entries.SetPageSize(rows)
	m.deps.Outline.SetSize(l.outlineWidth-4, l.outlineHeight-3)
}

// View renders the browser
func (m *BrowserModel) View() string {
	l := m.layout()
	books := m.doc.Books()
	book, hasBook := m.doc.Active()

	var b strings.Builder
	b.WriteString(styles.Title.Render("Adler"))
	b.WriteString("\n")
	b.WriteString(styles.Subtitle.Render(m.subtitle(book, hasBook)))
	b.WriteString("\n\n")

	lists := lipgloss.JoinHorizontal(lipgloss.Top,
		RenderPane(PaneBooks.String(), m.renderBooks(books, l.listWidth-4), l.listWidth, l.listHeight, m.pane == PaneBooks),
		RenderPane(m.chaptersTitle(book, hasBook), m.renderChapters(book, l.listWidth-4), l.listWidth, l.listHeight, m.pane == PaneChapters),
		RenderPane(PaneEntries.String(), m.renderEntries(book, l.listWidth-4), l.listWidth, l.listHeight, m.pane == PaneEntries),
	)
	outline := RenderPane("Esquema", m.deps.Outline.View(), l.outlineWidth, l.outlineHeight, false)

	if l.stacked {
		b.WriteString(lipgloss.JoinVertical(lipgloss.Left, lists, outline))
	} else {
		b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, lists, outline))
	}
	b.WriteString("\n")

	switch {
	case m.pending != "" && m.deps.Guard.Pending(m.pending):
		b.WriteString(RenderConfirmPrompt(m.pendingWhat, m.deps.Guard.Timeout()))
	case m.Message != "":
		b.WriteString(RenderMessage(m.Message, m.MessageErr))
	}
	b.WriteString("\n")
	b.WriteString(m.renderHelpLine())

	return styles.App.Render(b.String())
}

func (m *BrowserModel) subtitle(book domain.Book, ok bool) string {
	if !ok {
		return "No books yet. Press n to create one."
	}
	if book.Description == "" {
		return commands.ShortID(book.ID)
	}
	return Truncate(strings.Join(strings.Fields(book.Description), " "), max(m.Width-6, 20))
}

func (m *BrowserModel) chaptersTitle(book domain.Book, ok bool) string {
	if !ok {
		return PaneChapters.String()
	}
	return PaneChapters.String() + " " + RenderTypeBadge(book.Type)
}

func (m *BrowserModel) renderRow(text string, width int, i, cursor int, focused, pending bool, base lipgloss.Style) string {
	text = Truncate(text, width)
	switch {
	case i == cursor && pending:
		return styles.NodePending.Render(text)
	case i == cursor && focused:
		return styles.NodeSelected.Render(text)
	case i == cursor:
		return base.Underline(true).Render(text)
	default:
		return base.Render(text)
	}
}

func (m *BrowserModel) renderBooks(books []domain.Book, width int) string {
	if len(books) == 0 {
		return styles.NodeEmpty.Render("(nenhum livro)")
	}
	pending := m.pending != "" && strings.HasPrefix(m.pending, "book:")
	var lines []string
	start, end := m.books.VisibleRange()
	for i := start; i < end; i++ {
		title := books[i].Title
		if title == "" {
			title = domain.BookPlaceholder
		}
		lines = append(lines, m.renderRow(title, width, i, m.books.Cursor(), m.pane == PaneBooks, pending, styles.NodeBook))
	}
	return strings.Join(lines, "\n")
}

func (m *BrowserModel) renderChapters(book domain.Book, width int) string {
	if len(book.Chapters) == 0 {
		return styles.NodeEmpty.Render("(nenhum capítulo)")
	}
	pending := m.pending != "" && strings.HasPrefix(m.pending, "chapter:")
	var lines []string
	start, end := m.chapters.VisibleRange()
	for i := start; i < end; i++ {
		text := fmt.Sprintf("%s. %s", domain.ToRoman(i+1), domain.ChapterHeading(book.Chapters[i], i))
		lines = append(lines, m.renderRow(text, width, i, m.chapters.Cursor(), m.pane == PaneChapters, pending, styles.NodeChapter))
	}
	return strings.Join(lines, "\n")
}

func (m *BrowserModel) renderEntries(book domain.Book, width int) string {
	ch, _, ok := m.chapter(book)
	if !ok {
		return ""
	}
	rows := EntryRows(ch)
	if len(rows) == 0 {
		return styles.NodeEmpty.Render("t: termo • p: proposição")
	}
	var lines []string
	start, end := m.entries.VisibleRange()
	for i := start; i < end; i++ {
		r := rows[i]
		var text string
		base := styles.NodeTerm
		if r.Proposition {
			text = "◦ " + ch.Propositions[r.Index].Text
			base = styles.NodeProposition
		} else {
			d := ch.Definitions[r.Index]
			text = "• " + domain.TermLabel(d, r.Index) + ": " + d.Definicao
		}
		lines = append(lines, m.renderRow(text, width, i, m.entries.Cursor(), m.pane == PaneEntries, false, base))
	}
	return strings.Join(lines, "\n")
}

func (m *BrowserModel) renderHelpLine() string {
	bindings := []key.Binding{BrowserKeys.Left, BrowserKeys.New, BrowserKeys.Enter, BrowserKeys.Delete}
	switch m.pane {
	case PaneChapters, PaneEntries:
		bindings = append(bindings, BrowserKeys.AddTerm, BrowserKeys.AddProp, BrowserKeys.MoveUp)
	default:
		bindings = append(bindings, BrowserKeys.Describe, BrowserKeys.ToggleType)
	}
	bindings = append(bindings, BrowserKeys.Copy, BrowserKeys.Help, BrowserKeys.Quit)
	return RenderHelpLine(bindings...)
}

// Messages for view switching
type SwitchToSearchMsg struct{}

type SwitchToHelpMsg struct{}

type SwitchToBrowserMsg struct{}
