package mock

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"crisismap/match"
)

func TestCapturer_RecordsCallsInOrder(t *testing.T) {
	c := NewCapturer("logAction")

	c.Call("OPEN", "layer1")
	c.Call("CLOSE", "layer1", 3)

	require.Equal(t, 2, c.CallCount())
	assert.Equal(t, []any{"OPEN", "layer1"}, c.Calls()[0])
	assert.Equal(t, []any{"CLOSE", "layer1", 3}, c.Calls()[1])

	c.Reset()
	assert.Zero(t, c.CallCount())
}

func TestCapturer_LogSatisfiesContainment(t *testing.T) {
	c := NewCapturer("logAction")
	c.Call("OPEN", "a")
	c.Call("OPEN", "a")
	c.Call("SHARE", "b")

	exactlyTwo := match.ContainsExactly(match.Equal([]any{"OPEN", "a"}), 2)
	assert.True(t, exactlyTwo.Match(c.Calls()).OK)

	once := match.ContainsExactly(match.Equal([]any{"SHARE", "b"}), match.AtLeastOnce)
	assert.True(t, once.Match(c.Calls()).OK)

	never := match.ContainsExactly(match.Equal([]any{"DELETE", "a"}), match.AtLeastOnce)
	assert.False(t, never.Match(c.Calls()).OK)
}

func TestRegistry_StubAndRestore(t *testing.T) {
	reg := NewRegistry()
	reg.Set("shorten", func(args ...any) any { return "real" })

	reg.Stub("shorten", func(args ...any) any { return "fake" })
	reg.Stub("brandNew", func(args ...any) any { return "temp" })

	assert.Equal(t, "fake", reg.Call("shorten"))
	assert.Equal(t, "temp", reg.Call("brandNew"))
	assert.Equal(t, 2, reg.PendingOverrides())

	reg.Restore()

	assert.Equal(t, "real", reg.Call("shorten"), "original restored")
	assert.False(t, reg.Bound("brandNew"), "binding created by a stub is removed")
	assert.Zero(t, reg.PendingOverrides())
}

func TestRegistry_RepeatedStubsRestoreOriginal(t *testing.T) {
	reg := NewRegistry()
	reg.Set("fn", func(args ...any) any { return 1 })

	reg.Stub("fn", func(args ...any) any { return 2 })
	reg.Stub("fn", func(args ...any) any { return 3 })
	reg.Restore()

	assert.Equal(t, 1, reg.Call("fn"))
}

func TestRegistry_CallUnbound(t *testing.T) {
	reg := NewRegistry()
	require.Panics(t, func() { reg.Call("missing") })
}

func TestExpectNew(t *testing.T) {
	reg := NewRegistry()

	inst := ExpectNew(reg, "Widget", match.Equal("x"))

	got := reg.Call("Widget", "x")
	assert.Same(t, inst, got, "matching construction returns the singleton instance")
	got = reg.Call("Widget", "x")
	assert.Same(t, inst, got, "every matching construction returns the same instance")
	assert.Len(t, inst.Calls, 2)
}

func TestExpectNew_NonMatchingArgsFailImmediately(t *testing.T) {
	reg := NewRegistry()
	ExpectNew(reg, "Widget", match.Equal("x"))

	assert.Panics(t, func() { reg.Call("Widget", "y") })
	assert.Panics(t, func() { reg.Call("Widget", "x", "extra") })
}

func TestExpectNew_RebindingCreatesFreshInstance(t *testing.T) {
	reg := NewRegistry()

	first := ExpectNew(reg, "Widget", match.Equal("x"))
	second := ExpectNew(reg, "Widget", match.Equal("y"))
	require.NotSame(t, first, second)

	got := reg.Call("Widget", "y")
	assert.Same(t, second, got)

	// The first call's matchers stop applying once rebound.
	assert.Panics(t, func() { reg.Call("Widget", "x") })
	assert.Empty(t, first.Calls)
}

func TestExpectNoCalls(t *testing.T) {
	reg := NewRegistry()
	reg.Set("dangerous", func(args ...any) any { return nil })

	ExpectNoCalls(reg, "dangerous")
	assert.Panics(t, func() { reg.Call("dangerous") })

	reg.Restore()
	assert.NotPanics(t, func() { reg.Call("dangerous") })
}
