package tui

import (
	"sync"

	tea "github.com/charmbracelet/bubbletea"

	"adler/internal/adapters/tui/views"
)

// Sink receives document projections and forwards them to the running
// program. It never blocks: the document calls it while holding its lock,
// sometimes from inside Update.
type Sink struct {
	mu     sync.Mutex
	latest views.OutlineMsg
	send   func(tea.Msg)
}

// NewSink creates a sink with no program attached
func NewSink() *Sink {
	return &Sink{}
}

// Redraw implements ports.OutlineSink
func (s *Sink) Redraw(outline string) {
	s.mu.Lock()
	s.latest = views.OutlineMsg{Seq: s.latest.Seq + 1, Outline: outline}
	msg, send := s.latest, s.send
	s.mu.Unlock()

	if send != nil {
		go send(msg)
	}
}

// Attach starts forwarding to p
func (s *Sink) Attach(p *tea.Program) {
	s.AttachFunc(p.Send)
}

// AttachFunc starts forwarding to send
func (s *Sink) AttachFunc(send func(tea.Msg)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.send = send
}

// Latest returns the most recent projection
func (s *Sink) Latest() views.OutlineMsg {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.latest
}
