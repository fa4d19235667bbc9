package anim

import (
	"fmt"
	"time"
)

// Timer measures solve time. While running it is registered with the
// scheduler so it refreshes once per frame and reports display changes.
type Timer struct {
	sched *Scheduler
	now   func() time.Time

	start   time.Time
	elapsed time.Duration
	running bool
	shown   string

	// OnChange fires when the formatted time changes.
	OnChange func(elapsed time.Duration, formatted string)
}

// NewTimer creates a stopped timer. now defaults to time.Now.
func NewTimer(s *Scheduler, now func() time.Time) *Timer {
	if now == nil {
		now = time.Now
	}
	return &Timer{sched: s, now: now, shown: FormatClock(0)}
}

// Start starts the timer. With resume set, previously elapsed time is kept.
func (t *Timer) Start(resume bool) {
	if !resume {
		t.elapsed = 0
	}
	t.start = t.now().Add(-t.elapsed)
	t.running = true
	t.sched.Add(t)
}

// Stop stops the timer and returns the elapsed time.
func (t *Timer) Stop() time.Duration {
	if t.running {
		t.elapsed = t.now().Sub(t.start)
		t.running = false
	}
	t.sched.Remove(t)
	return t.elapsed
}

// Reset stops the timer and clears elapsed time.
func (t *Timer) Reset() {
	t.sched.Remove(t)
	t.running = false
	t.elapsed = 0
	t.shown = FormatClock(0)
}

// SetElapsed overrides the elapsed time, used when restoring a saved game.
func (t *Timer) SetElapsed(d time.Duration) {
	t.elapsed = d
	if t.running {
		t.start = t.now().Add(-d)
	}
	t.shown = FormatClock(d)
}

// Running reports whether the timer is running.
func (t *Timer) Running() bool { return t.running }

// Elapsed returns the elapsed time.
func (t *Timer) Elapsed() time.Duration {
	if t.running {
		return t.now().Sub(t.start)
	}
	return t.elapsed
}

// String returns the elapsed time as m:ss.
func (t *Timer) String() string {
	return FormatClock(t.Elapsed())
}

// Update refreshes the elapsed time.
func (t *Timer) Update(time.Duration) {
	if !t.running {
		return
	}
	t.elapsed = t.now().Sub(t.start)
	if s := FormatClock(t.elapsed); s != t.shown {
		t.shown = s
		if t.OnChange != nil {
			t.OnChange(t.elapsed, s)
		}
	}
}

// FormatClock formats a duration as minutes:seconds, e.g. 1:05.
func FormatClock(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	minutes := int(d / time.Minute)
	seconds := int((d % time.Minute) / time.Second)
	return fmt.Sprintf("%d:%02d", minutes, seconds)
}
