package views

import (
	"strings"
	"unicode/utf8"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"adler/internal/adapters/tui/styles"
)

// HelpKeyMap defines key bindings for the help view
type HelpKeyMap struct {
	Close key.Binding
}

var HelpKeys = HelpKeyMap{
	Close: key.NewBinding(
		key.WithKeys("esc", "q", "?"),
		key.WithHelp("esc/q/?", "close"),
	),
}

// HelpModel is the model for the help view
type HelpModel struct {
	ViewState
}

// NewHelpModel creates a new help view model
func NewHelpModel() *HelpModel {
	return &HelpModel{}
}

// Init initializes the help view
func (m *HelpModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the help view
func (m *HelpModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.SetSize(msg.Width, msg.Height)
		return m, nil

	case tea.KeyMsg:
		if key.Matches(msg, HelpKeys.Close) {
			return m, func() tea.Msg {
				return SwitchToBrowserMsg{}
			}
		}
	}

	return m, nil
}

type helpSection struct {
	title    string
	bindings []key.Binding
}

var helpSections = []helpSection{
	{"Navigation", []key.Binding{
		BrowserKeys.Up, BrowserKeys.Down, BrowserKeys.Left, BrowserKeys.Right,
	}},
	{"Editing", []key.Binding{
		BrowserKeys.New, BrowserKeys.AddTerm, BrowserKeys.AddProp, BrowserKeys.Enter,
		BrowserKeys.Describe, BrowserKeys.ToggleType, BrowserKeys.MoveUp, BrowserKeys.MoveDown,
		BrowserKeys.Delete,
	}},
	{"Outline", []key.Binding{
		BrowserKeys.Copy, BrowserKeys.Recenter, BrowserKeys.Mode,
		BrowserKeys.ScrollUp, BrowserKeys.ScrollDown, BrowserKeys.Export,
	}},
	{"General", []key.Binding{
		BrowserKeys.Search, BrowserKeys.Help, BrowserKeys.Quit,
	}},
}

// View renders the help view
func (m *HelpModel) View() string {
	var b strings.Builder

	b.WriteString(styles.Title.Render("Adler Help"))
	b.WriteString("\n\n")

	b.WriteString(styles.Subtitle.Render("Outlines for analytical reading"))
	b.WriteString("\n\n")

	for _, s := range helpSections {
		b.WriteString(styles.InputLabel.Render(s.title))
		b.WriteString("\n")
		for _, k := range s.bindings {
			h := k.Help()
			b.WriteString(helpLine(h.Key, h.Desc))
		}
		b.WriteString("\n")
	}

	b.WriteString(styles.InputLabel.Render("Deleting"))
	b.WriteString("\n")
	b.WriteString(styles.MutedText.Render("  The first d arms the selected row; a second d before the"))
	b.WriteString("\n")
	b.WriteString(styles.MutedText.Render("  timeout deletes it. Any other key disarms."))
	b.WriteString("\n\n")

	b.WriteString(styles.HelpDesc.Render("Press "))
	b.WriteString(styles.HelpKey.Render("esc"))
	b.WriteString(styles.HelpDesc.Render(" or "))
	b.WriteString(styles.HelpKey.Render("?"))
	b.WriteString(styles.HelpDesc.Render(" to close"))

	return styles.App.Render(b.String())
}

func helpLine(key, desc string) string {
	return "  " + styles.HelpKey.Render(padRight(key, 12)) + styles.HelpDesc.Render(desc) + "\n"
}

func padRight(s string, length int) string {
	n := utf8.RuneCountInString(s)
	if n >= length {
		return s
	}
	return s + strings.Repeat(" ", length-n)
}
