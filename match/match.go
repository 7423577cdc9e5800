// Package match provides predicate objects for asserting over fake DOM
// trees and recorded call logs. A matcher either accepts a value or
// produces a human-readable mismatch description; mismatches are inert
// until an assertion consumes them.
package match

import "fmt"

// Result is the outcome of applying a matcher to a value.
type Result struct {
	OK          bool
	Description string // mismatch description, empty when OK
}

// Matched is the successful result.
func Matched() Result {
	return Result{OK: true}
}

// Mismatch builds a failing result with a formatted description.
func Mismatch(format string, args ...any) Result {
	return Result{Description: fmt.Sprintf(format, args...)}
}

// Matcher is a named predicate over a value: a fake node, a call-argument
// tuple, or any plain value for the deep-equality matcher.
type Matcher interface {
	Match(value any) Result
	String() string
}

type allOf struct {
	matchers []Matcher
}

// AllOf matches when every sub-matcher matches. Evaluation short-circuits
// on the first failure and surfaces that sub-matcher's message.
func AllOf(matchers ...Matcher) Matcher {
	return &allOf{matchers: matchers}
}

func (m *allOf) Match(value any) Result {
	for _, sub := range m.matchers {
		if r := sub.Match(value); !r.OK {
			return r
		}
	}
	return Matched()
}

func (m *allOf) String() string {
	s := "all of ["
	for i, sub := range m.matchers {
		if i > 0 {
			s += ", "
		}
		s += sub.String()
	}
	return s + "]"
}

type not struct {
	inner Matcher
}

// Not inverts a matcher. The inner matcher is used as a boolean predicate
// only; its mismatch description is discarded.
func Not(inner Matcher) Matcher {
	return &not{inner: inner}
}

func (m *not) Match(value any) Result {
	if r := m.inner.Match(value); r.OK {
		return Mismatch("matched %s, expected not to", m.inner)
	}
	return Matched()
}

func (m *not) String() string {
	return "not(" + m.inner.String() + ")"
}

// predicate is the common shape of the simple matchers in this package.
type predicate struct {
	desc string
	fn   func(value any) Result
}

func (m *predicate) Match(value any) Result { return m.fn(value) }
func (m *predicate) String() string         { return m.desc }
