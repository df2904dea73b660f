package grid

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeTimer records whether it was stopped.
type fakeTimer struct {
	stopped bool
	fire    func()
}

func (f *fakeTimer) Stop() bool {
	wasActive := !f.stopped
	f.stopped = true
	return wasActive
}

// fakeClock drives a ScrollIndicator without real time.
type fakeClock struct {
	mu     sync.Mutex
	now    time.Time
	timers []*fakeTimer
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

func (c *fakeClock) AfterFunc(_ time.Duration, f func()) Timer {
	c.mu.Lock()
	defer c.mu.Unlock()
	t := &fakeTimer{fire: f}
	c.timers = append(c.timers, t)
	return t
}

func (c *fakeClock) last() *fakeTimer {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.timers[len(c.timers)-1]
}

func newFakeIndicator(onChange func(bool)) (*ScrollIndicator, *fakeClock) {
	clock := &fakeClock{now: time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)}
	s := NewScrollIndicator(onChange)
	s.now = clock.Now
	s.afterFunc = clock.AfterFunc
	return s, clock
}

// TestScrollIndicator_TrailingClear tests that the flag clears after the quiet period.
func TestScrollIndicator_TrailingClear(t *testing.T) {
	var changes []bool
	s, clock := newFakeIndicator(func(active bool) { changes = append(changes, active) })

	s.Touch()
	assert.True(t, s.Active())

	clock.Advance(50 * time.Millisecond)
	s.Touch()
	first := clock.timers[0]
	assert.True(t, first.stopped, "earlier timer is replaced")

	// A stale timer firing late must not clear the flag.
	first.fire()
	assert.True(t, s.Active())

	clock.Advance(ScrollIdleDelay)
	clock.last().fire()
	assert.False(t, s.Active())
	assert.Equal(t, []bool{true, false}, changes)
}

// TestScrollIndicator_ReRaiseWhileScrolling tests that continuous scrolling sets the
// flag again once the idle delay has passed since it was last set.
func TestScrollIndicator_ReRaiseWhileScrolling(t *testing.T) {
	var changes []bool
	s, clock := newFakeIndicator(func(active bool) { changes = append(changes, active) })
	start := clock.Now()

	s.Touch()
	assert.Equal(t, start, s.lastSet)

	clock.Advance(100 * time.Millisecond)
	s.Touch()
	assert.Equal(t, start, s.lastSet, "within the delay the flag is not set again")

	clock.Advance(100 * time.Millisecond)
	s.Touch()
	assert.Equal(t, start.Add(200*time.Millisecond), s.lastSet)
	assert.True(t, s.Active())
	assert.Equal(t, []bool{true}, changes, "an already active flag is not announced twice")
	assert.Len(t, clock.timers, 3)

	clock.last().fire()
	assert.False(t, s.Active())
	assert.Equal(t, []bool{true, false}, changes)
}

// TestScrollIndicator_Stop tests that unmounting cancels the timer.
func TestScrollIndicator_Stop(t *testing.T) {
	s, clock := newFakeIndicator(nil)

	s.Touch()
	pending := clock.last()
	s.Stop()

	assert.True(t, pending.stopped)
	assert.False(t, s.Active())

	// Events after unmount are ignored and a late callback is harmless.
	s.Touch()
	pending.fire()
	assert.False(t, s.Active())
	assert.Len(t, clock.timers, 1)
}

// TestScrollIndicator_RealTimer tests the indicator against the real clock.
func TestScrollIndicator_RealTimer(t *testing.T) {
	done := make(chan bool, 2)
	s := NewScrollIndicator(func(active bool) { done <- active })
	defer s.Stop()

	s.Touch()
	require.True(t, <-done)

	select {
	case active := <-done:
		assert.False(t, active)
	case <-time.After(2 * time.Second):
		t.Fatal("scroll indicator never cleared")
	}
}
