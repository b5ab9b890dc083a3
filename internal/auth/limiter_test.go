package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

type fakeClock struct {
	t time.Time
}

func (c *fakeClock) Now() time.Time { return c.t }

func (c *fakeClock) Advance(d time.Duration) { c.t = c.t.Add(d) }

func newTestLimiter(rate int, window time.Duration) (*Limiter, *fakeClock) {
	clock := &fakeClock{t: time.Date(2025, 3, 3, 9, 0, 0, 0, time.UTC)}
	l := NewLimiter(rate, window)
	l.now = clock.Now
	return l, clock
}

func TestLimiter_Allow(t *testing.T) {
	t.Run("requests within limit are allowed", func(t *testing.T) {
		l, _ := newTestLimiter(3, time.Minute)
		for i := range 3 {
			assert.True(t, l.Allow("a@x.com"), "attempt %d", i+1)
		}
		assert.False(t, l.Allow("a@x.com"))
	})

	t.Run("keys are independent", func(t *testing.T) {
		l, _ := newTestLimiter(1, time.Minute)
		assert.True(t, l.Allow("a@x.com"))
		assert.False(t, l.Allow("a@x.com"))
		assert.True(t, l.Allow("b@x.com"))
	})

	t.Run("tokens refill after window", func(t *testing.T) {
		l, clock := newTestLimiter(2, time.Minute)
		assert.True(t, l.Allow("a@x.com"))
		assert.True(t, l.Allow("a@x.com"))
		assert.False(t, l.Allow("a@x.com"))

		clock.Advance(59 * time.Second)
		assert.False(t, l.Allow("a@x.com"))

		clock.Advance(time.Second)
		assert.True(t, l.Allow("a@x.com"))
	})

	t.Run("reset restores attempts", func(t *testing.T) {
		l, _ := newTestLimiter(1, time.Minute)
		assert.True(t, l.Allow("a@x.com"))
		assert.False(t, l.Allow("a@x.com"))

		l.Reset("a@x.com")
		assert.True(t, l.Allow("a@x.com"))
	})

	t.Run("zero rate disables limiting", func(t *testing.T) {
		l, _ := newTestLimiter(0, time.Minute)
		for range 100 {
			assert.True(t, l.Allow("a@x.com"))
		}
	})

	t.Run("nil limiter allows everything", func(t *testing.T) {
		var l *Limiter
		assert.True(t, l.Allow("a@x.com"))
		l.Reset("a@x.com")
	})
}

func TestLimiter_CleanupOldBuckets(t *testing.T) {
	l, clock := newTestLimiter(5, time.Minute)

	l.Allow("old@x.com")
	clock.Advance(3 * time.Minute)
	l.Allow("new@x.com")

	l.mu.Lock()
	defer l.mu.Unlock()
	assert.NotContains(t, l.buckets, "old@x.com")
	assert.Contains(t, l.buckets, "new@x.com")
}
