// Package clock abstracts timer scheduling so widgets that defer work can
// be driven deterministically under test. The production implementation
// uses real timers; the virtual one advances only when told to.
package clock

import (
	"sync"
	"time"
)

// Callback is a scheduled function.
type Callback func()

// Clock schedules one-shot and recurring callbacks.
type Clock interface {
	Now() time.Time
	SetTimeout(d time.Duration, fn Callback) int
	SetInterval(d time.Duration, fn Callback) int
	Clear(id int)
}

// System is the real-time Clock backed by the runtime's timers.
type System struct {
	mu     sync.Mutex
	timers map[int]*time.Timer
	nextID int
}

// NewSystem creates a real-time clock.
func NewSystem() *System {
	return &System{timers: make(map[int]*time.Timer)}
}

// Now returns the current wall-clock time.
func (s *System) Now() time.Time {
	return time.Now()
}

// SetTimeout schedules fn to run once after d.
func (s *System) SetTimeout(d time.Duration, fn Callback) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextID++
	id := s.nextID
	s.timers[id] = time.AfterFunc(d, func() {
		s.mu.Lock()
		delete(s.timers, id)
		s.mu.Unlock()
		fn()
	})
	return id
}

// SetInterval schedules fn to run every d until cleared.
func (s *System) SetInterval(d time.Duration, fn Callback) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextID++
	id := s.nextID

	var schedule func()
	schedule = func() {
		s.mu.Lock()
		if _, ok := s.timers[id]; !ok {
			s.mu.Unlock()
			return
		}
		s.timers[id] = time.AfterFunc(d, func() {
			fn()
			schedule()
		})
		s.mu.Unlock()
	}
	s.timers[id] = time.AfterFunc(d, func() {
		fn()
		schedule()
	})
	return id
}

// Clear cancels the timer with the given id.
func (s *System) Clear(id int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if t, ok := s.timers[id]; ok {
		t.Stop()
		delete(s.timers, id)
	}
}
