package clock

import (
	"sort"
	"time"
)

// timer is a scheduled callback in a Virtual clock.
type timer struct {
	id       int
	fn       Callback
	due      time.Time
	interval time.Duration // 0 for one-shot
}

// Virtual is a Clock whose time moves only through Advance. Everything is
// single-threaded: callbacks run synchronously inside Advance, in due-time
// order, and may schedule further timers.
type Virtual struct {
	now    time.Time
	timers map[int]*timer
	nextID int
}

// NewVirtual creates a virtual clock starting at a fixed reference time.
func NewVirtual() *Virtual {
	return &Virtual{
		now:    time.Date(2012, 8, 1, 0, 0, 0, 0, time.UTC),
		timers: make(map[int]*timer),
	}
}

// Now returns the virtual current time.
func (v *Virtual) Now() time.Time {
	return v.now
}

// SetTimeout schedules fn once at now+d. A zero delay runs on the next
// Advance call, not immediately.
func (v *Virtual) SetTimeout(d time.Duration, fn Callback) int {
	v.nextID++
	v.timers[v.nextID] = &timer{id: v.nextID, fn: fn, due: v.now.Add(d)}
	return v.nextID
}

// SetInterval schedules fn every d until cleared. Intervals are clamped to
// at least one millisecond; a zero interval would never let Advance finish.
func (v *Virtual) SetInterval(d time.Duration, fn Callback) int {
	if d < time.Millisecond {
		d = time.Millisecond
	}
	v.nextID++
	v.timers[v.nextID] = &timer{id: v.nextID, fn: fn, due: v.now.Add(d), interval: d}
	return v.nextID
}

// Clear cancels the timer with the given id.
func (v *Virtual) Clear(id int) {
	delete(v.timers, id)
}

// Pending returns the number of scheduled timers.
func (v *Virtual) Pending() int {
	return len(v.timers)
}

// Advance moves virtual time forward by d, running every callback that
// comes due, in due-time order (ties break by scheduling order). Interval
// timers reschedule and can fire multiple times within one Advance.
func (v *Virtual) Advance(d time.Duration) {
	target := v.now.Add(d)
	for {
		next := v.nextDue(target)
		if next == nil {
			break
		}
		if next.due.After(v.now) {
			v.now = next.due
		}
		if next.interval > 0 {
			next.due = next.due.Add(next.interval)
		} else {
			delete(v.timers, next.id)
		}
		next.fn()
	}
	v.now = target
}

// nextDue returns the earliest timer due at or before target, or nil.
func (v *Virtual) nextDue(target time.Time) *timer {
	var candidates []*timer
	for _, t := range v.timers {
		if !t.due.After(target) {
			candidates = append(candidates, t)
		}
	}
	if len(candidates) == 0 {
		return nil
	}
	sort.Slice(candidates, func(i, j int) bool {
		if candidates[i].due.Equal(candidates[j].due) {
			return candidates[i].id < candidates[j].id
		}
		return candidates[i].due.Before(candidates[j].due)
	})
	return candidates[0]
}
