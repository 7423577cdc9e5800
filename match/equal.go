package match

import (
	"fmt"
	"reflect"
)

// Equaler lets a value supply its own equality check; the comparator
// delegates to it when the wanted side implements it.
type Equaler interface {
	Equals(other any) bool
}

// Equal builds the generic deep-equality matcher used as the default
// comparator for assertions. It recurses through maps (identical key sets)
// and slices/arrays (identical length, element-wise), delegates to an
// Equaler's own method, applies nested Matchers as predicates, and compares
// everything else by strict equality.
func Equal(want any) Matcher {
	return &equalMatcher{want: want}
}

type equalMatcher struct {
	want any
}

func (m *equalMatcher) Match(got any) Result {
	return deepEqual(m.want, got, "value", make(map[visit]bool))
}

func (m *equalMatcher) String() string {
	return fmt.Sprintf("equals %v", m.want)
}

// visit is a (want, got) container pair already on the comparison stack.
type visit struct {
	want, got uintptr
}

func deepEqual(want, got any, path string, seen map[visit]bool) Result {
	// Nested matchers act as predicates at their position.
	if matcher, ok := want.(Matcher); ok {
		if r := matcher.Match(got); !r.OK {
			return Mismatch("%s: %s", path, r.Description)
		}
		return Matched()
	}
	// A value that knows how to compare itself wins over reflection.
	if eq, ok := want.(Equaler); ok {
		if !eq.Equals(got) {
			return Mismatch("%s: %v does not equal %v", path, got, want)
		}
		return Matched()
	}
	if want == nil || got == nil {
		if want == nil && got == nil {
			return Matched()
		}
		return Mismatch("%s: got %v, want %v", path, got, want)
	}

	wv := reflect.ValueOf(want)
	gv := reflect.ValueOf(got)
	if wv.Type() != gv.Type() {
		return Mismatch("%s: type %T, want type %T", path, got, want)
	}

	switch wv.Kind() {
	case reflect.Map:
		v := visit{want: wv.Pointer(), got: gv.Pointer()}
		if seen[v] {
			return Mismatch("%s: cycle detected in compared structures", path)
		}
		seen[v] = true
		defer delete(seen, v)
		if wv.Len() != gv.Len() {
			return Mismatch("%s: map has %d keys, want %d", path, gv.Len(), wv.Len())
		}
		iter := wv.MapRange()
		for iter.Next() {
			key := iter.Key()
			gotVal := gv.MapIndex(key)
			if !gotVal.IsValid() {
				return Mismatch("%s: missing key %v", path, key.Interface())
			}
			elemPath := fmt.Sprintf("%s[%v]", path, key.Interface())
			if r := deepEqual(iter.Value().Interface(), gotVal.Interface(), elemPath, seen); !r.OK {
				return r
			}
		}
		return Matched()

	case reflect.Slice, reflect.Array:
		if wv.Kind() == reflect.Slice {
			v := visit{want: wv.Pointer(), got: gv.Pointer()}
			if seen[v] {
				return Mismatch("%s: cycle detected in compared structures", path)
			}
			seen[v] = true
			defer delete(seen, v)
		}
		if wv.Len() != gv.Len() {
			return Mismatch("%s: length %d, want %d", path, gv.Len(), wv.Len())
		}
		for i := 0; i < wv.Len(); i++ {
			elemPath := fmt.Sprintf("%s[%d]", path, i)
			if r := deepEqual(wv.Index(i).Interface(), gv.Index(i).Interface(), elemPath, seen); !r.OK {
				return r
			}
		}
		return Matched()

	default:
		// Matcher objects and anything else non-container fall back to
		// strict equality; identity for pointers.
		if !wv.Comparable() {
			return Mismatch("%s: cannot compare values of type %T", path, want)
		}
		if want != got {
			return Mismatch("%s: got %v, want %v", path, got, want)
		}
		return Matched()
	}
}
