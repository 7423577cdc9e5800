// Package analytics records user-interaction events. Widgets report actions
// and timings here; production wiring logs them structurally, and the test
// harness installs hooks to capture the calls for assertion.
package analytics

import "go.uber.org/zap"

// Hook receives the exact argument tuple of a logged call.
type Hook func(args ...any) any

// Recorder is the analytics sink handed to widgets.
type Recorder struct {
	log        *zap.Logger
	actionHook Hook
	timeHook   Hook
}

// New creates a Recorder that logs through the given logger.
func New(log *zap.Logger) *Recorder {
	if log == nil {
		log = zap.NewNop()
	}
	return &Recorder{log: log}
}

// SetActionHook installs a hook observing LogAction calls.
func (r *Recorder) SetActionHook(h Hook) {
	r.actionHook = h
}

// SetTimeHook installs a hook observing LogTime calls.
func (r *Recorder) SetTimeHook(h Hook) {
	r.timeHook = h
}

// LogAction records a user action against a layer (or "" for map-level
// actions), with an optional integer value.
func (r *Recorder) LogAction(action, layerID string, value ...int) {
	fields := []zap.Field{
		zap.String("action", action),
		zap.String("layer", layerID),
	}
	args := []any{action, layerID}
	if len(value) > 0 {
		fields = append(fields, zap.Int("value", value[0]))
		args = append(args, value[0])
	}
	r.log.Info("analytics action", fields...)
	if r.actionHook != nil {
		r.actionHook(args...)
	}
}

// LogTime records a timing sample in milliseconds.
func (r *Recorder) LogTime(category, variable string, ms int64) {
	r.log.Info("analytics time",
		zap.String("category", category),
		zap.String("variable", variable),
		zap.Int64("ms", ms))
	if r.timeHook != nil {
		r.timeHook(category, variable, ms)
	}
}
