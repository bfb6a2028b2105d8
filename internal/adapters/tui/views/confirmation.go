package views

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"adler/internal/adapters/tui/styles"
	"adler/internal/application"
)

// ConfirmExpiredMsg is delivered when a pending delete times out
type ConfirmExpiredMsg struct {
	Key string
	At  time.Time
}

// DeleteGuard wires the two-press delete confirmation into bubbletea: the
// first press arms a key and schedules its expiry, the second press inside
// the window fires.
type DeleteGuard struct {
	confirmer *application.Confirmer
	now       func() time.Time
}

// NewDeleteGuard creates a guard around c
func NewDeleteGuard(c *application.Confirmer) *DeleteGuard {
	if c == nil {
		c = application.NewConfirmer(0)
	}
	return &DeleteGuard{confirmer: c, now: time.Now}
}

// Press registers a delete key press for target. It returns true when the
// delete should run; otherwise the returned command expires the pending state.
func (g *DeleteGuard) Press(target string) (bool, tea.Cmd) {
	if g.confirmer.Request(target, g.now()) {
		return true, nil
	}
	return false, tea.Tick(g.confirmer.Timeout(), func(t time.Time) tea.Msg {
		return ConfirmExpiredMsg{Key: target, At: t}
	})
}

// Timeout returns the confirmation window
func (g *DeleteGuard) Timeout() time.Duration {
	return g.confirmer.Timeout()
}

// Expire handles a ConfirmExpiredMsg
func (g *DeleteGuard) Expire(msg ConfirmExpiredMsg) {
	g.confirmer.Expire(msg.Key, msg.At)
}

// Cancel drops any pending state for target
func (g *DeleteGuard) Cancel(target string) {
	g.confirmer.Cancel(target)
}

// Pending reports whether target is armed
func (g *DeleteGuard) Pending(target string) bool {
	return g.confirmer.State(target, g.now()) == application.PendingConfirm
}

// Delete targets for books and chapters. Each row has its own key so arming
// one row never confirms another.
func BookTarget(bookID string) string {
	return "book:" + bookID
}

func ChapterTarget(bookID, chapterID string) string {
	return "chapter:" + bookID + ":" + chapterID
}

// RenderConfirmPrompt renders the hint shown while a delete is armed
func RenderConfirmPrompt(what string, timeout time.Duration) string {
	var b strings.Builder
	b.WriteString(styles.WarningMsg.Render("Delete " + what + "?"))
	b.WriteString(" ")
	b.WriteString(styles.HelpDesc.Render("press "))
	b.WriteString(styles.HelpKey.Render("d"))
	b.WriteString(styles.HelpDesc.Render(fmt.Sprintf(" again within %s", timeout)))
	return b.String()
}
