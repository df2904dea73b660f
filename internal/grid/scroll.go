package grid

import (
	"sync"
	"time"
)

// ScrollIdleDelay is the quiet period after the last scroll event before the scrolling
// indicator clears.
const ScrollIdleDelay = 150 * time.Millisecond

// Timer is the subset of *time.Timer the indicator needs.
type Timer interface {
	Stop() bool
}

// AfterFunc schedules f after d. time.AfterFunc satisfies it once wrapped.
type AfterFunc func(d time.Duration, f func()) Timer

// ScrollIndicator tracks the cosmetic "is scrolling" flag. It never affects the window.
// Touch is called from the event loop; the trailing timer fires on its own goroutine,
// so state is guarded by a mutex.
type ScrollIndicator struct {
	mu        sync.Mutex
	delay     time.Duration
	now       func() time.Time
	afterFunc AfterFunc
	onChange  func(active bool)

	active  bool
	lastSet time.Time
	timer   Timer
	gen     uint64
	stopped bool
}

// NewScrollIndicator creates an indicator with the real clock. onChange may be nil.
func NewScrollIndicator(onChange func(active bool)) *ScrollIndicator {
	return &ScrollIndicator{
		delay: ScrollIdleDelay,
		now:   time.Now,
		afterFunc: func(d time.Duration, f func()) Timer {
			return time.AfterFunc(d, f)
		},
		onChange: onChange,
	}
}

// Touch records a scroll event. The flag is raised when more than the idle delay passed
// since it was last raised, and the trailing clear timer is restarted in every case.
func (s *ScrollIndicator) Touch() {
	s.mu.Lock()
	if s.stopped {
		s.mu.Unlock()
		return
	}

	raised := false
	now := s.now()
	if s.lastSet.IsZero() || now.Sub(s.lastSet) > s.delay {
		raised = !s.active
		s.active = true
		s.lastSet = now
	}

	if s.timer != nil {
		s.timer.Stop()
	}
	s.gen++
	gen := s.gen
	s.timer = s.afterFunc(s.delay, func() { s.expire(gen) })
	notify := s.onChange
	s.mu.Unlock()

	if raised && notify != nil {
		notify(true)
	}
}

// Active reports whether the scrolling flag is set.
func (s *ScrollIndicator) Active() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.active
}

// Stop cancels the pending timer. The indicator ignores events afterwards.
func (s *ScrollIndicator) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.stopped = true
	s.active = false
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
}

// expire clears the flag unless a newer Touch rescheduled the timer.
func (s *ScrollIndicator) expire(gen uint64) {
	s.mu.Lock()
	if s.stopped || !s.active || gen != s.gen {
		s.mu.Unlock()
		return
	}
	s.active = false
	s.timer = nil
	notify := s.onChange
	s.mu.Unlock()

	if notify != nil {
		notify(false)
	}
}
