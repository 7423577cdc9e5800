// Package harness orchestrates the per-test lifecycle: it builds the fake
// environment widgets run against, collects expectations while the test
// body executes, and checks everything once at teardown.
package harness

import (
	"testing"

	"go.uber.org/zap/zaptest"

	"crisismap/analytics"
	"crisismap/clock"
	"crisismap/dom"
	"crisismap/match"
	"crisismap/mock"
)

// AtLeastOnce makes an expectation pass on any positive count.
const AtLeastOnce = match.AtLeastOnce

// Env is the dependency set widgets receive instead of ambient globals.
// Each test gets a fresh one; nothing in it is shared between tests.
type Env struct {
	Window    *dom.Window
	Doc       *dom.Document
	Analytics *analytics.Recorder
	Registry  *mock.Registry
	Clock     clock.Clock
}

// Verifier inspects an event payload; an expectation with a verifier only
// counts deliveries the verifier accepts.
type Verifier func(payload any) bool

// eventExpectation tracks one declared event-count expectation. The count
// is only ever incremented by the listener attached at declaration time.
type eventExpectation struct {
	source    dom.Emitter
	eventType string
	expected  int
	observed  int
}

// logExpectation is a deferred containment check against a capturer's log.
type logExpectation struct {
	capturer *mock.Capturer
	matcher  match.Matcher
}

// Harness is the per-test lifecycle object. It has two states: active
// (between New and TearDown) and torn down (terminal).
type Harness struct {
	t   testing.TB
	env *Env

	actionLog *mock.Capturer
	timeLog   *mock.Capturer

	events   []*eventExpectation
	logs     []logExpectation
	virtual  *clock.Virtual
	tornDown bool
}

// New builds a fresh fake environment and an active harness around it.
// TearDown is also registered with t.Cleanup so the checks run on every
// exit path, including test failure.
func New(t testing.TB) *Harness {
	t.Helper()

	window := dom.NewWindow()
	recorder := analytics.New(zaptest.NewLogger(t))
	actionLog := mock.NewCapturer("logAction")
	timeLog := mock.NewCapturer("logTime")
	recorder.SetActionHook(actionLog.Call)
	recorder.SetTimeHook(timeLog.Call)

	h := &Harness{
		t: t,
		env: &Env{
			Window:    window,
			Doc:       window.Document(),
			Analytics: recorder,
			Registry:  mock.NewRegistry(),
			Clock:     clock.NewSystem(),
		},
		actionLog: actionLog,
		timeLog:   timeLog,
	}
	t.Cleanup(func() {
		if !h.tornDown {
			h.TearDown()
		}
	})
	return h
}

// Env returns the test's fake environment.
func (h *Harness) Env() *Env {
	return h.env
}

// ActionLog exposes the capturer recording LogAction calls.
func (h *Harness) ActionLog() *mock.Capturer {
	return h.actionLog
}

// TimeLog exposes the capturer recording LogTime calls.
func (h *Harness) TimeLog() *mock.Capturer {
	return h.timeLog
}

// checkActive guards operations that only make sense before teardown.
func (h *Harness) checkActive() {
	if h.tornDown {
		h.t.Helper()
		h.t.Fatal("harness: operation after TearDown")
	}
}

// ExpectEvent declares that source must dispatch eventType exactly count
// times before teardown (or at least once for AtLeastOnce). When a
// verifier is given, only deliveries it accepts are counted.
func (h *Harness) ExpectEvent(source dom.Emitter, eventType string, count int, verifier ...Verifier) {
	h.checkActive()
	exp := &eventExpectation{source: source, eventType: eventType, expected: count}
	var v Verifier
	if len(verifier) > 0 {
		v = verifier[0]
	}
	source.Target().Listen(eventType, func(ev dom.Event) {
		if v == nil || v(ev.Payload) {
			exp.observed++
		}
	})
	h.events = append(h.events, exp)
}

// ExpectLogAction declares that the analytics action log must contain the
// given (action, layer) call exactly count times (AtLeastOnce for one or
// more) by teardown.
func (h *Harness) ExpectLogAction(action, layerID string, count int, value ...int) {
	h.checkActive()
	args := []any{action, layerID}
	if len(value) > 0 {
		args = append(args, value[0])
	}
	h.logs = append(h.logs, logExpectation{
		capturer: h.actionLog,
		matcher:  match.ContainsExactly(match.Equal(args), count),
	})
}

// ExpectLogTime declares the analytics timing log must contain the given
// sample exactly count times by teardown.
func (h *Harness) ExpectLogTime(category, variable string, ms int64, count int) {
	h.checkActive()
	h.logs = append(h.logs, logExpectation{
		capturer: h.timeLog,
		matcher:  match.ContainsExactly(match.Equal([]any{category, variable, ms}), count),
	})
}

// AssertThat applies a matcher to a value. Mismatches are reported as test
// failures but do not stop the test; all messages land in the test output.
func (h *Harness) AssertThat(value any, m match.Matcher) bool {
	h.t.Helper()
	h.checkActive()
	if r := m.Match(value); !r.OK {
		h.t.Errorf("expected %s\n%s", m, r.Description)
		return false
	}
	return true
}

// AssertEq compares got against want with the default deep-equality
// comparator.
func (h *Harness) AssertEq(want, got any) bool {
	h.t.Helper()
	return h.AssertThat(got, match.Equal(want))
}

// UseVirtualClock swaps the environment's clock for a virtual one, which
// is uninstalled again at teardown.
func (h *Harness) UseVirtualClock() *clock.Virtual {
	h.checkActive()
	if h.virtual == nil {
		h.virtual = clock.NewVirtual()
		h.env.Clock = h.virtual
	}
	return h.virtual
}

// TearDown is the terminal transition: it restores every stubbed binding,
// checks all pending expectations, and uninstalls the virtual clock.
// Unmet expectations fail the test here, not at the point of mismatch.
func (h *Harness) TearDown() {
	h.t.Helper()
	if h.tornDown {
		h.t.Fatal("harness: TearDown called twice")
	}
	h.tornDown = true

	h.env.Registry.Restore()

	for _, exp := range h.events {
		switch {
		case exp.expected == AtLeastOnce && exp.observed == 0:
			h.t.Errorf("expected at least one %q event from %s, saw none",
				exp.eventType, describeSource(exp.source))
		case exp.expected != AtLeastOnce && exp.observed != exp.expected:
			h.t.Errorf("expected %d %q events from %s, saw %d",
				exp.expected, exp.eventType, describeSource(exp.source), exp.observed)
		}
	}

	for _, le := range h.logs {
		if r := le.matcher.Match(le.capturer.Calls()); !r.OK {
			h.t.Errorf("%s log: expected %s: %s", le.capturer.Name(), le.matcher, r.Description)
		}
	}

	if h.virtual != nil {
		h.env.Clock = clock.NewSystem()
		h.virtual = nil
	}
}

// describeSource names an event source in failure messages, with a tree
// dump when the source is a node.
func describeSource(source dom.Emitter) string {
	if n, ok := source.(*dom.Node); ok {
		return "node:\n" + n.Render()
	}
	return "source"
}
