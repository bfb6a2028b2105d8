package tui

import (
	"context"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"adler/internal/adapters/editor"
	"adler/internal/adapters/tui/views"
	"adler/internal/application"
	"adler/internal/logger"
	"adler/internal/ports"
)

// ViewState represents the current view
type ViewState int

const (
	ViewBrowser ViewState = iota
	ViewEdit
	ViewSearch
	ViewHelp
	ViewError
)

// ReloadMsg tells the app that the store was written by another process
type ReloadMsg struct{}

// Options configures the app's collaborators. Nil fields get defaults.
type Options struct {
	Editor    ports.EditorOpener
	Exporter  ports.Exporter
	ExportDir string
	Confirmer *application.Confirmer
	Throttle  *application.Throttle
	Sink      *Sink
	Logger    *logger.Logger
}

// App is the main TUI application model
type App struct {
	doc    *application.Document
	editor ports.EditorOpener
	log    *logger.Logger

	state   ViewState
	browser *views.BrowserModel
	edit    *views.EditModel
	search  *views.SearchModel
	help    *views.HelpModel
	errView *views.ErrorModel

	width  int
	height int
}

// NewApp creates a new TUI application
func NewApp(doc *application.Document, opts Options) *App {
	if opts.Logger == nil {
		opts.Logger = logger.Discard()
	}

	outline := views.NewOutlinePanel(opts.Throttle, opts.Logger)
	if opts.Sink != nil {
		outline.SetOutline(opts.Sink.Latest())
	} else {
		outline.SetOutline(views.OutlineMsg{Outline: doc.Outline()})
	}

	return &App{
		doc:    doc,
		editor: opts.Editor,
		log:    opts.Logger,
		state:  ViewBrowser,
		browser: views.NewBrowserModel(doc, views.BrowserDeps{
			Exporter:  opts.Exporter,
			ExportDir: opts.ExportDir,
			Guard:     views.NewDeleteGuard(opts.Confirmer),
			Outline:   outline,
		}),
		edit:    views.NewEditModel(doc),
		search:  views.NewSearchModel(doc),
		help:    views.NewHelpModel(),
		errView: views.NewErrorModel(),
	}
}

// State returns the current view
func (a *App) State() ViewState {
	return a.state
}

// Init initializes the application
func (a *App) Init() tea.Cmd {
	return a.browser.Init()
}

// Update handles messages for the application
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.browser.SetSize(msg.Width, msg.Height)
		a.edit.SetSize(msg.Width, msg.Height)
		a.search.SetSize(msg.Width, msg.Height)
		a.help.SetSize(msg.Width, msg.Height)
		a.errView.SetSize(msg.Width, msg.Height)
		return a, nil

	case ReloadMsg:
		a.doc.Reload(context.Background())
		a.browser.Refresh()
		return a, nil

	// View switching messages
	case views.SwitchToEditMsg:
		a.edit.SetTarget(msg.Target)
		a.state = ViewEdit
		return a, a.edit.Init()

	case views.SwitchToSearchMsg:
		a.search.Reset()
		a.state = ViewSearch
		return a, a.search.Init()

	case views.SwitchToHelpMsg:
		a.state = ViewHelp
		return a, nil

	case views.SwitchToBrowserMsg:
		a.state = ViewBrowser
		a.browser.Refresh()
		return a, nil

	case views.SearchSelectMsg:
		a.state = ViewBrowser
		_, cmd := a.browser.Update(msg)
		return a, cmd

	case views.EditDoneMsg:
		a.state = ViewBrowser
		_, cmd := a.browser.Update(msg)
		return a, cmd

	case views.ShowErrorMsg:
		a.log.Error("operation failed", "err", msg.Err)
		a.errView.SetError(msg.Err)
		a.state = ViewError
		return a, nil

	case views.OpenEditorMsg:
		a.state = ViewBrowser
		return a, a.openEditor(msg.Target)

	case editorFinishedMsg:
		return a, a.finishEditor(msg)
	}

	// Keys go to the current view only. Everything else also reaches the
	// browser so timers and projections land while another view is open.
	var cmds []tea.Cmd
	var cmd tea.Cmd
	switch a.state {
	case ViewBrowser:
		_, cmd = a.browser.Update(msg)
	case ViewEdit:
		_, cmd = a.edit.Update(msg)
	case ViewSearch:
		_, cmd = a.search.Update(msg)
	case ViewHelp:
		_, cmd = a.help.Update(msg)
	case ViewError:
		_, cmd = a.errView.Update(msg)
	}
	cmds = append(cmds, cmd)

	if _, isKey := msg.(tea.KeyMsg); !isKey && a.state != ViewBrowser {
		_, cmd = a.browser.Update(msg)
		cmds = append(cmds, cmd)
	}

	return a, tea.Batch(cmds...)
}

type editorFinishedMsg struct {
	target views.EditTarget
	path   string
	err    error
}

func (a *App) openEditor(target views.EditTarget) tea.Cmd {
	if a.editor == nil {
		return nil
	}

	var text string
	if len(target.Values) > 0 {
		text = target.Values[0]
	}
	path, err := editor.WriteDraft(text)
	if err != nil {
		return showError(err)
	}

	cmd, err := a.editor.Command(path)
	if err != nil {
		os.Remove(path)
		return showError(err)
	}

	return tea.ExecProcess(cmd, func(err error) tea.Msg {
		return editorFinishedMsg{target: target, path: path, err: err}
	})
}

func (a *App) finishEditor(msg editorFinishedMsg) tea.Cmd {
	defer os.Remove(msg.path)

	if msg.err != nil {
		return showError(msg.err)
	}
	text, err := editor.ReadDraft(msg.path)
	if err != nil {
		return showError(err)
	}

	target := msg.target
	doc := a.doc
	return func() tea.Msg {
		message, err := target.Apply(context.Background(), doc, []string{text})
		if err != nil {
			return views.ShowErrorMsg{Err: err}
		}
		return views.EditDoneMsg{Message: message}
	}
}

func showError(err error) tea.Cmd {
	return func() tea.Msg { return views.ShowErrorMsg{Err: err} }
}

// View renders the current view
func (a *App) View() string {
	switch a.state {
	case ViewEdit:
		return a.edit.View()
	case ViewSearch:
		return a.search.View()
	case ViewHelp:
		return a.help.View()
	case ViewError:
		return a.errView.View()
	default:
		return a.browser.View()
	}
}
