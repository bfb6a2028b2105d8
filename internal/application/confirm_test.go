package application

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestConfirmer(t *testing.T) {
	t0 := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)

	t.Run("second press within window confirms", func(t *testing.T) {
		c := NewConfirmer(0)
		assert.Equal(t, DefaultConfirmTimeout, c.Timeout())

		assert.False(t, c.Request("book:1", t0))
		assert.Equal(t, PendingConfirm, c.State("book:1", t0.Add(time.Second)))
		assert.True(t, c.Request("book:1", t0.Add(3*time.Second)))
		assert.Equal(t, Idle, c.State("book:1", t0.Add(3*time.Second)))
	})

	t.Run("press after deadline re-arms", func(t *testing.T) {
		c := NewConfirmer(4 * time.Second)
		assert.False(t, c.Request("k", t0))
		assert.False(t, c.Request("k", t0.Add(4*time.Second)))
		assert.Equal(t, PendingConfirm, c.State("k", t0.Add(5*time.Second)))
	})

	t.Run("expiry reverts to idle", func(t *testing.T) {
		c := NewConfirmer(4 * time.Second)
		c.Request("k", t0)
		c.Expire("k", t0.Add(4*time.Second))
		assert.Equal(t, Idle, c.State("k", t0.Add(4*time.Second)))
		assert.False(t, c.Request("k", t0.Add(4*time.Second)))
	})

	t.Run("stale timer is a no-op", func(t *testing.T) {
		c := NewConfirmer(4 * time.Second)
		c.Request("k", t0)
		c.Expire("k", t0.Add(4*time.Second))
		c.Request("k", t0.Add(5*time.Second))

		// the timer armed by the second request fires at +9s; an early one is ignored
		c.Expire("k", t0.Add(8*time.Second))
		assert.Equal(t, PendingConfirm, c.State("k", t0.Add(8*time.Second)))
		assert.True(t, c.Request("k", t0.Add(8*time.Second)))
	})

	t.Run("timer after confirmation is a no-op", func(t *testing.T) {
		c := NewConfirmer(4 * time.Second)
		c.Request("k", t0)
		assert.True(t, c.Request("k", t0.Add(time.Second)))
		c.Expire("k", t0.Add(4*time.Second))
		assert.False(t, c.Request("k", t0.Add(5*time.Second)))
	})

	t.Run("keys are independent", func(t *testing.T) {
		c := NewConfirmer(4 * time.Second)
		c.Request("a", t0)
		assert.False(t, c.Request("b", t0.Add(time.Second)))
		assert.True(t, c.Request("a", t0.Add(time.Second)))
	})

	t.Run("cancel", func(t *testing.T) {
		c := NewConfirmer(4 * time.Second)
		c.Request("k", t0)
		c.Cancel("k")
		assert.Equal(t, Idle, c.State("k", t0))
	})
}

func TestConfirmStateString(t *testing.T) {
	assert.Equal(t, "idle", Idle.String())
	assert.Equal(t, "pending", PendingConfirm.String())
}
