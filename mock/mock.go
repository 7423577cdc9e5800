// Package mock provides recording stand-ins for functions and constructors.
// A test swaps them in through a Registry, inspects the recorded calls with
// the match package, and the harness restores the originals at teardown.
package mock

import "fmt"

// Func is the shape of every callable bound in a Registry.
type Func func(args ...any) any

// Capturer records each invocation's full argument list in order.
type Capturer struct {
	name  string
	calls [][]any
}

// NewCapturer creates a named capturer.
func NewCapturer(name string) *Capturer {
	return &Capturer{name: name}
}

// Name returns the capturer's name.
func (c *Capturer) Name() string {
	return c.name
}

// Call records one invocation and returns nil.
func (c *Capturer) Call(args ...any) any {
	c.calls = append(c.calls, args)
	return nil
}

// Calls returns the recorded argument lists in invocation order.
func (c *Capturer) Calls() [][]any {
	return c.calls
}

// CallCount returns the number of recorded invocations.
func (c *Capturer) CallCount() int {
	return len(c.calls)
}

// Reset discards the recorded calls.
func (c *Capturer) Reset() {
	c.calls = nil
}

// Func returns the capturer as a Registry-bindable function.
func (c *Capturer) Func() Func {
	return c.Call
}

// override remembers a binding replaced during a test so it can be put back.
type override struct {
	name     string
	original Func
	present  bool
}

// Registry maps names to callables. It replaces the original's ambient
// globals: production wiring binds real functions, a test stubs them, and
// Restore puts every original back before the next test.
type Registry struct {
	bindings  map[string]Func
	overrides []override
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{bindings: make(map[string]Func)}
}

// Set binds a name permanently (not recorded as an override).
func (r *Registry) Set(name string, fn Func) {
	r.bindings[name] = fn
}

// Stub replaces a binding for the duration of the test, recording the
// original for Restore. Stubbing an unbound name is allowed; Restore then
// removes the binding again.
func (r *Registry) Stub(name string, fn Func) {
	original, present := r.bindings[name]
	r.overrides = append(r.overrides, override{name: name, original: original, present: present})
	r.bindings[name] = fn
}

// Restore reverts every stubbed binding to its pre-test value. Distinct
// names are independent, so their revert order does not matter; a name
// stubbed more than once unwinds newest-first so the pre-test original is
// what remains.
func (r *Registry) Restore() {
	for i := len(r.overrides) - 1; i >= 0; i-- {
		o := r.overrides[i]
		if o.present {
			r.bindings[o.name] = o.original
		} else {
			delete(r.bindings, o.name)
		}
	}
	r.overrides = nil
}

// PendingOverrides returns the number of unreverted overrides.
func (r *Registry) PendingOverrides() int {
	return len(r.overrides)
}

// Call invokes the binding for name. Calling an unbound name is a hard
// failure.
func (r *Registry) Call(name string, args ...any) any {
	fn, ok := r.bindings[name]
	if !ok {
		panic(fmt.Sprintf("mock: call to unbound name %q", name))
	}
	return fn(args...)
}

// Bound reports whether name is currently bound.
func (r *Registry) Bound(name string) bool {
	_, ok := r.bindings[name]
	return ok
}
