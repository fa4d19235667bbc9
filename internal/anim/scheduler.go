// Package anim drives time-based state changes one display frame at a time.
//
// A Scheduler owns the set of live animators and advances every one of them
// once per Tick. Nothing here blocks: waiting is expressed by registering an
// animator whose completion callback runs on a later frame.
package anim

import "time"

// Animator is anything the scheduler can advance by one frame.
type Animator interface {
	Update(dt time.Duration)
}

// Scheduler advances registered animators once per frame.
// It is not safe for concurrent use; the frame loop is the only caller.
type Scheduler struct {
	active []Animator
	live   map[Animator]struct{}
	frames uint64
}

// NewScheduler creates an empty scheduler.
func NewScheduler() *Scheduler {
	return &Scheduler{live: make(map[Animator]struct{})}
}

// Add registers an animator. Adding one that is already registered is a no-op.
func (s *Scheduler) Add(a Animator) {
	if _, ok := s.live[a]; ok {
		return
	}
	s.live[a] = struct{}{}
	s.active = append(s.active, a)
}

// Remove unregisters an animator. Removing an unknown animator is a no-op.
func (s *Scheduler) Remove(a Animator) {
	if _, ok := s.live[a]; !ok {
		return
	}
	delete(s.live, a)
	for i, x := range s.active {
		if x == a {
			s.active = append(s.active[:i], s.active[i+1:]...)
			break
		}
	}
}

// Has reports whether a is registered.
func (s *Scheduler) Has(a Animator) bool {
	_, ok := s.live[a]
	return ok
}

// Len returns the number of registered animators.
func (s *Scheduler) Len() int {
	return len(s.active)
}

// Idle reports whether nothing is registered.
func (s *Scheduler) Idle() bool {
	return len(s.active) == 0
}

// Frames returns the number of ticks processed so far.
func (s *Scheduler) Frames() uint64 {
	return s.frames
}

// Tick advances every animator registered at the start of the pass by dt.
// Animators removed during the pass are skipped; animators added during the
// pass get their first update on the next tick.
func (s *Scheduler) Tick(dt time.Duration) {
	s.frames++
	if len(s.active) == 0 {
		return
	}
	pass := make([]Animator, len(s.active))
	copy(pass, s.active)
	for _, a := range pass {
		if _, ok := s.live[a]; !ok {
			continue
		}
		a.Update(dt)
	}
}

// Clear unregisters every animator.
func (s *Scheduler) Clear() {
	s.active = nil
	s.live = make(map[Animator]struct{})
}
