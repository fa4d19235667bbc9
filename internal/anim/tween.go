package anim

import "time"

// DefaultDuration is used when a tween is created without a duration.
const DefaultDuration = 500 * time.Millisecond

// TweenOptions configures a Tween.
type TweenOptions struct {
	Duration time.Duration
	Easing   Easing // defaults to Linear
	Delay    time.Duration
	// Yoyo makes the tween ping-pong between 0 and 1 forever. A yoyo tween
	// never completes; Stop it explicitly.
	Yoyo bool

	OnUpdate   func(*Tween)
	OnComplete func(*Tween)
}

// Tween interpolates an eased value from 0 to 1 over a fixed duration.
// Consumers read Delta in OnUpdate to apply incremental changes; the deltas
// of a completed tween sum to exactly 1.
type Tween struct {
	opts  TweenOptions
	sched *Scheduler

	progress  float64
	value     float64
	delta     float64
	waited    time.Duration
	reversing bool
	done      bool
}

// NewTween creates a tween, registers it with s and invokes OnUpdate once
// with zero progress.
func NewTween(s *Scheduler, opts TweenOptions) *Tween {
	if opts.Duration <= 0 {
		opts.Duration = DefaultDuration
	}
	if opts.Easing == nil {
		opts.Easing = Linear
	}
	t := &Tween{opts: opts, sched: s}
	t.Start()
	if t.opts.OnUpdate != nil {
		t.opts.OnUpdate(t)
	}
	return t
}

// Start registers the tween with its scheduler.
func (t *Tween) Start() {
	t.sched.Add(t)
}

// Stop unregisters the tween without firing OnComplete.
func (t *Tween) Stop() {
	t.sched.Remove(t)
}

// Progress returns the raw progress in [0,1].
func (t *Tween) Progress() float64 { return t.progress }

// Value returns the eased value.
func (t *Tween) Value() float64 { return t.value }

// Delta returns the change in value since the previous update.
func (t *Tween) Delta() float64 { return t.delta }

// Done reports whether the tween has completed.
func (t *Tween) Done() bool { return t.done }

// Update advances the tween by dt.
func (t *Tween) Update(dt time.Duration) {
	if t.done {
		return
	}
	if t.waited < t.opts.Delay {
		t.waited += dt
		if t.waited < t.opts.Delay {
			return
		}
		dt = t.waited - t.opts.Delay
	}

	old := t.value
	step := float64(dt) / float64(t.opts.Duration)
	if t.reversing {
		step = -step
	}
	t.progress += step

	if t.opts.Yoyo {
		if t.progress > 1 || t.progress < 0 {
			if t.progress > 1 {
				t.progress = 1
			} else {
				t.progress = 0
			}
			t.reversing = !t.reversing
		}
		t.value = t.opts.Easing(t.progress)
		t.delta = t.value - old
		if t.opts.OnUpdate != nil {
			t.opts.OnUpdate(t)
		}
		return
	}

	if t.progress < 1 {
		t.value = t.opts.Easing(t.progress)
		t.delta = t.value - old
		if t.opts.OnUpdate != nil {
			t.opts.OnUpdate(t)
		}
		return
	}

	t.progress = 1
	t.value = 1
	t.delta = 1 - old
	t.done = true
	if t.opts.OnUpdate != nil {
		t.opts.OnUpdate(t)
	}
	t.Stop()
	if t.opts.OnComplete != nil {
		t.opts.OnComplete(t)
	}
}
