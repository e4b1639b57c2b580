package http

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestRateLimiter_FixedWindow(t *testing.T) {
	now := time.Date(2026, 5, 1, 9, 0, 0, 0, time.UTC)
	l := newRateLimiter(3, 15*time.Minute, func() time.Time { return now })

	for i := 0; i < 3; i++ {
		d := l.Allow("10.0.0.1")
		assert.True(t, d.Allowed)
		assert.Equal(t, 2-i, d.Remaining)
	}

	now = now.Add(5 * time.Minute)
	d := l.Allow("10.0.0.1")
	assert.False(t, d.Allowed)
	assert.Equal(t, 10*time.Minute, d.ResetIn)

	assert.True(t, l.Allow("10.0.0.2").Allowed, "clients are counted separately")

	// the window is anchored at the first request, not slid by later ones
	now = now.Add(10 * time.Minute)
	d = l.Allow("10.0.0.1")
	assert.True(t, d.Allowed)
	assert.Equal(t, 2, d.Remaining)
	assert.Equal(t, 15*time.Minute, d.ResetIn)
}

func TestRateLimiter_SweepsExpiredWindows(t *testing.T) {
	now := time.Date(2026, 5, 1, 9, 0, 0, 0, time.UTC)
	l := newRateLimiter(10, time.Minute, func() time.Time { return now })

	l.Allow("a")
	l.Allow("b")
	assert.Len(t, l.clients, 2)

	now = now.Add(2 * time.Minute)
	l.Allow("c")
	assert.Len(t, l.clients, 1)
	assert.Contains(t, l.clients, "c")
}
