package analytics

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap/zaptest"

	"crisismap/mock"
)

func TestRecorder_HooksSeeExactArgs(t *testing.T) {
	r := New(zaptest.NewLogger(t))
	actions := mock.NewCapturer("logAction")
	times := mock.NewCapturer("logTime")
	r.SetActionHook(actions.Call)
	r.SetTimeHook(times.Call)

	r.LogAction("SHARE_TOGGLED_ON", "layer7")
	r.LogAction("ZOOM", "", 12)
	r.LogTime("load", "map", 250)

	assert.Equal(t, [][]any{
		{"SHARE_TOGGLED_ON", "layer7"},
		{"ZOOM", "", 12},
	}, actions.Calls())
	assert.Equal(t, [][]any{{"load", "map", int64(250)}}, times.Calls())
}

func TestRecorder_NoHooksInstalled(t *testing.T) {
	r := New(nil)
	// Must not panic without hooks or a logger.
	r.LogAction("OPEN", "")
	r.LogTime("load", "map", 1)
}
