package views

import (
	"time"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"adler/internal/adapters/mindmap"
	"adler/internal/application"
	"adler/internal/logger"
)

// OutlineMsg carries a new projection from the document. Seq orders
// projections delivered from different goroutines.
type OutlineMsg struct {
	Seq     uint64
	Outline string
}

// recenterMsg runs a throttled recenter after the redraw delay
type recenterMsg struct{}

// OutlineMode selects how the panel draws the projection
type OutlineMode int

const (
	OutlineTree OutlineMode = iota
	OutlineMarkdown
)

// OutlinePanel shows the live outline of the active book
type OutlinePanel struct {
	viewport viewport.Model
	throttle *application.Throttle
	log      *logger.Logger
	outline  string
	seq      uint64
	mode     OutlineMode
	now      func() time.Time
}

// NewOutlinePanel creates an empty panel
func NewOutlinePanel(throttle *application.Throttle, log *logger.Logger) *OutlinePanel {
	if throttle == nil {
		throttle = application.NewThrottle(0, 0)
	}
	if log == nil {
		log = logger.Discard()
	}
	return &OutlinePanel{
		viewport: viewport.New(0, 0),
		throttle: throttle,
		log:      log,
		now:      time.Now,
	}
}

// SetOutline applies a projection unless a newer one was already applied
func (p *OutlinePanel) SetOutline(msg OutlineMsg) {
	if msg.Seq != 0 && msg.Seq < p.seq {
		return
	}
	p.seq = msg.Seq
	p.outline = msg.Outline
	p.refresh()
}

// Outline returns the projection currently shown
func (p *OutlinePanel) Outline() string {
	return p.outline
}

// SetSize resizes the panel's viewport
func (p *OutlinePanel) SetSize(width, height int) {
	p.viewport.Width = max(width, 0)
	p.viewport.Height = max(height, 0)
	p.refresh()
}

// ToggleMode switches between the tree and the rendered markdown
func (p *OutlinePanel) ToggleMode() {
	if p.mode == OutlineTree {
		p.mode = OutlineMarkdown
	} else {
		p.mode = OutlineTree
	}
	p.refresh()
}

// Recenter asks for the panel to be re-fit. Requests inside the throttle
// interval are dropped; an allowed request runs after the redraw delay.
func (p *OutlinePanel) Recenter() tea.Cmd {
	if !p.throttle.Allow(p.now()) {
		return nil
	}
	return tea.Tick(p.throttle.Delay(), func(time.Time) tea.Msg {
		return recenterMsg{}
	})
}

// Update scrolls the viewport and completes recenter requests
func (p *OutlinePanel) Update(msg tea.Msg) tea.Cmd {
	if _, ok := msg.(recenterMsg); ok {
		p.refresh()
		p.viewport.GotoTop()
		return nil
	}
	var cmd tea.Cmd
	p.viewport, cmd = p.viewport.Update(msg)
	return cmd
}

// View renders the panel body
func (p *OutlinePanel) View() string {
	return p.viewport.View()
}

func (p *OutlinePanel) refresh() {
	var content string
	switch p.mode {
	case OutlineMarkdown:
		content = mindmap.Pretty(p.outline, p.viewport.Width, p.log)
	default:
		content = mindmap.View(p.outline, p.log)
	}
	p.viewport.SetContent(content)
}
