package application

import (
	"sync"
	"time"
)

// DefaultConfirmTimeout is how long a delete stays armed waiting for the
// second press
const DefaultConfirmTimeout = 4 * time.Second

// ConfirmState is the state of one deletable entity
type ConfirmState int

const (
	Idle ConfirmState = iota
	PendingConfirm
)

func (s ConfirmState) String() string {
	if s == PendingConfirm {
		return "pending"
	}
	return "idle"
}

// Confirmer implements two-press deletion: the first request arms a key, a
// second request before the deadline confirms it. Times are supplied by the
// caller so the UI can drive expiry from its own timers.
type Confirmer struct {
	mu      sync.Mutex
	timeout time.Duration
	pending map[string]time.Time
}

// NewConfirmer creates a confirmer. A non-positive timeout selects
// DefaultConfirmTimeout.
func NewConfirmer(timeout time.Duration) *Confirmer {
	if timeout <= 0 {
		timeout = DefaultConfirmTimeout
	}
	return &Confirmer{
		timeout: timeout,
		pending: make(map[string]time.Time),
	}
}

// Timeout returns the confirmation window
func (c *Confirmer) Timeout() time.Duration {
	return c.timeout
}

// Request reports whether the deletion of key should happen now. It returns
// true when key was armed and the deadline has not passed, clearing the
// pending state. Otherwise it arms key until now+timeout and returns false.
func (c *Confirmer) Request(key string, now time.Time) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if deadline, ok := c.pending[key]; ok && now.Before(deadline) {
		delete(c.pending, key)
		return true
	}
	c.pending[key] = now.Add(c.timeout)
	return false
}

// Expire returns key to Idle if its deadline has passed. Timers left over
// from an earlier arming or a completed confirmation do nothing.
func (c *Confirmer) Expire(key string, now time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if deadline, ok := c.pending[key]; ok && !now.Before(deadline) {
		delete(c.pending, key)
	}
}

// Cancel returns key to Idle
func (c *Confirmer) Cancel(key string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.pending, key)
}

// State reports the state of key at now
func (c *Confirmer) State(key string, now time.Time) ConfirmState {
	c.mu.Lock()
	defer c.mu.Unlock()

	if deadline, ok := c.pending[key]; ok && now.Before(deadline) {
		return PendingConfirm
	}
	return Idle
}
