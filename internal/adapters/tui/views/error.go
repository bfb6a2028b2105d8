package views

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"adler/internal/adapters/tui/styles"
)

// ErrorModel is a blocking overlay: it shows one error until a key is pressed
type ErrorModel struct {
	ViewState
	err error
}

// NewErrorModel creates a new error overlay
func NewErrorModel() *ErrorModel {
	return &ErrorModel{}
}

// SetError sets the error to show
func (m *ErrorModel) SetError(err error) {
	m.err = err
}

// Err returns the error being shown
func (m *ErrorModel) Err() error {
	return m.err
}

// Init initializes the overlay
func (m *ErrorModel) Init() tea.Cmd {
	return nil
}

// Update dismisses the overlay on any key
func (m *ErrorModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.SetSize(msg.Width, msg.Height)
	case tea.KeyMsg:
		m.err = nil
		return m, func() tea.Msg { return SwitchToBrowserMsg{} }
	}
	return m, nil
}

// View renders the overlay centered in the window
func (m *ErrorModel) View() string {
	text := "unknown error"
	if m.err != nil {
		text = m.err.Error()
	}
	width := max(min(m.Width-10, 72), 20)

	box := styles.Overlay.Width(width).Render(
		styles.ErrorMsg.Render("Error") + "\n\n" +
			text + "\n\n" +
			RenderMuted("press any key to continue"),
	)
	if m.Width == 0 || m.Height == 0 {
		return box
	}
	return lipgloss.Place(m.Width, m.Height, lipgloss.Center, lipgloss.Center, box)
}
