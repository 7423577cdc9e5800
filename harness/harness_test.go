package harness

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"crisismap/clock"
	"crisismap/match"
	"crisismap/mock"
)

// recordingT captures failures instead of failing the real test, so the
// harness's deferred-failure behavior can itself be asserted on.
type recordingT struct {
	testing.TB
	errors []string
	fatals []string
}

func newRecordingT() *recordingT { return &recordingT{} }

func (r *recordingT) Helper() {}
func (r *recordingT) Name() string { return "recording" }
func (r *recordingT) Logf(format string, args ...any) {}
func (r *recordingT) Cleanup(func())                  {}
func (r *recordingT) Errorf(format string, args ...any) {
	r.errors = append(r.errors, fmt.Sprintf(format, args...))
}
func (r *recordingT) Fatal(args ...any) {
	r.fatals = append(r.fatals, fmt.Sprint(args...))
}

func TestNew_BuildsFreshEnv(t *testing.T) {
	h := New(t)
	env := h.Env()

	require.NotNil(t, env.Window)
	require.NotNil(t, env.Doc)
	require.NotNil(t, env.Analytics)
	require.NotNil(t, env.Registry)
	require.NotNil(t, env.Clock)
	assert.Same(t, env.Window.Document(), env.Doc)

	h2 := New(t)
	assert.NotSame(t, env.Doc, h2.Env().Doc, "each harness gets its own document")
}

func TestExpectEvent_MetExactCount(t *testing.T) {
	rt := newRecordingT()
	h := New(rt)

	button := h.Env().Doc.CreateElement("button", nil)
	h.ExpectEvent(button, "click", 2)
	button.Click()
	button.Click()

	h.TearDown()
	assert.Empty(t, rt.errors)
}

func TestExpectEvent_UnmetCountFailsAtTeardown(t *testing.T) {
	rt := newRecordingT()
	h := New(rt)

	button := h.Env().Doc.CreateElement("button", nil)
	h.ExpectEvent(button, "click", 2)
	button.Click()

	// Nothing fails before teardown.
	require.Empty(t, rt.errors)

	h.TearDown()
	require.Len(t, rt.errors, 1)
	assert.Contains(t, rt.errors[0], `expected 2 "click" events`)
	assert.Contains(t, rt.errors[0], "saw 1")
	assert.Contains(t, rt.errors[0], "<button", "failure carries a tree dump")
}

func TestExpectEvent_AtLeastOnce(t *testing.T) {
	rt := newRecordingT()
	h := New(rt)

	src := h.Env().Doc.CreateElement("div", nil)
	h.ExpectEvent(src, "change", AtLeastOnce)
	src.Dispatch("change", nil)
	src.Dispatch("change", nil)
	src.Dispatch("change", nil)

	h.TearDown()
	assert.Empty(t, rt.errors, "any positive count satisfies AtLeastOnce")
}

func TestExpectEvent_VerifierFiltersPayloads(t *testing.T) {
	rt := newRecordingT()
	h := New(rt)

	src := h.Env().Doc.CreateElement("div", nil)
	h.ExpectEvent(src, "change", 1, func(payload any) bool {
		return payload == "accepted"
	})
	src.Dispatch("change", "rejected")
	src.Dispatch("change", "accepted")
	src.Dispatch("change", "rejected")

	h.TearDown()
	assert.Empty(t, rt.errors)
}

func TestExpectLogAction(t *testing.T) {
	rt := newRecordingT()
	h := New(rt)

	h.ExpectLogAction("SHARE_TOGGLED_ON", "", 1)
	h.Env().Analytics.LogAction("SHARE_TOGGLED_ON", "")

	h.TearDown()
	assert.Empty(t, rt.errors)
}

func TestExpectLogAction_UnmetFailsAtTeardown(t *testing.T) {
	rt := newRecordingT()
	h := New(rt)

	h.ExpectLogAction("SHARE_TOGGLED_ON", "", 1)
	h.Env().Analytics.LogAction("SHARE_TOGGLED_ON", "")
	h.Env().Analytics.LogAction("SHARE_TOGGLED_ON", "")

	h.TearDown()
	require.Len(t, rt.errors, 1)
	assert.Contains(t, rt.errors[0], "logAction log")
}

func TestExpectLogTime(t *testing.T) {
	rt := newRecordingT()
	h := New(rt)

	h.ExpectLogTime("load", "map", 125, 1)
	h.Env().Analytics.LogTime("load", "map", 125)

	h.TearDown()
	assert.Empty(t, rt.errors)
}

func TestTearDown_RestoresOverrides(t *testing.T) {
	rt := newRecordingT()
	h := New(rt)
	reg := h.Env().Registry

	reg.Set("shorten", func(args ...any) any { return "real" })
	reg.Stub("shorten", func(args ...any) any { return "fake" })
	mock.ExpectNoCalls(reg, "forbidden")

	h.TearDown()

	assert.Equal(t, "real", reg.Call("shorten"))
	assert.False(t, reg.Bound("forbidden"))
	assert.Zero(t, reg.PendingOverrides(), "every override reverted before the next test")
}

func TestTearDown_Twice(t *testing.T) {
	rt := newRecordingT()
	h := New(rt)

	h.TearDown()
	h.TearDown()
	require.Len(t, rt.fatals, 1)
	assert.Contains(t, rt.fatals[0], "TearDown called twice")
}

func TestOperationAfterTearDown(t *testing.T) {
	rt := newRecordingT()
	h := New(rt)
	src := h.Env().Doc.CreateElement("div", nil)

	h.TearDown()
	h.ExpectEvent(src, "click", 1)
	require.Len(t, rt.fatals, 1)
	assert.Contains(t, rt.fatals[0], "after TearDown")
}

func TestAssertThat(t *testing.T) {
	rt := newRecordingT()
	h := New(rt)

	n := h.Env().Doc.CreateElement("div", map[string]string{"id": "foo", "class": "bar"})
	assert.True(t, h.AssertThat(n, match.WithID("foo")))
	assert.True(t, h.AssertThat(n, match.WithClass("bar")))
	assert.True(t, h.AssertThat(n, match.WithNodeName("div")))

	assert.False(t, h.AssertThat(n, match.WithClass("baz")))
	require.Len(t, rt.errors, 1)
	assert.Contains(t, rt.errors[0], `has class "baz"`)
}

func TestAssertEq_UsesDeepComparator(t *testing.T) {
	rt := newRecordingT()
	h := New(rt)

	assert.True(t, h.AssertEq(map[string]any{"a": []any{1}}, map[string]any{"a": []any{1}}))
	assert.False(t, h.AssertEq(map[string]any{"a": []any{1}}, map[string]any{"a": []any{2}}))
	assert.Len(t, rt.errors, 1)
}

func TestUseVirtualClock(t *testing.T) {
	rt := newRecordingT()
	h := New(rt)

	v := h.UseVirtualClock()
	require.Same(t, v, h.Env().Clock, "virtual clock installed in the env")
	assert.Same(t, v, h.UseVirtualClock(), "repeated calls reuse the same clock")

	fired := false
	h.Env().Clock.SetTimeout(10*time.Millisecond, func() { fired = true })
	v.Advance(10 * time.Millisecond)
	assert.True(t, fired)

	h.TearDown()
	_, isVirtual := h.Env().Clock.(*clock.Virtual)
	assert.False(t, isVirtual, "teardown uninstalls the virtual clock")
}
