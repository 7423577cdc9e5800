package match

import (
	"fmt"
	"reflect"
)

// AtLeastOnce is the count sentinel for ContainsExactly meaning "one or
// more candidates match".
const AtLeastOnce = -1

// ContainsExactly matches a slice in which exactly count elements satisfy
// the inner matcher, or at least one element when count is AtLeastOnce.
// It is typically applied to a call capturer's log, with inner matching a
// single call's argument tuple.
func ContainsExactly(inner Matcher, count int) Matcher {
	desc := fmt.Sprintf("contains exactly %d elements matching %s", count, inner)
	if count == AtLeastOnce {
		desc = fmt.Sprintf("contains at least one element matching %s", inner)
	}
	return &predicate{desc: desc, fn: func(value any) Result {
		v := reflect.ValueOf(value)
		if !v.IsValid() || (v.Kind() != reflect.Slice && v.Kind() != reflect.Array) {
			return Mismatch("expected a slice, got %T", value)
		}
		matched := 0
		for i := 0; i < v.Len(); i++ {
			if inner.Match(v.Index(i).Interface()).OK {
				matched++
			}
		}
		if count == AtLeastOnce {
			if matched == 0 {
				return Mismatch("no elements of %d matched %s", v.Len(), inner)
			}
			return Matched()
		}
		if matched != count {
			return Mismatch("%d elements matched %s, want exactly %d", matched, inner, count)
		}
		return Matched()
	}}
}
