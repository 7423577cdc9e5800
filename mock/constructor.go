package mock

import (
	"fmt"

	"crisismap/match"
)

// Instance is the singleton object a mocked constructor hands out. Calls
// records the argument lists of each accepted construction.
type Instance struct {
	Name  string
	Calls [][]any
}

// ExpectNew replaces the named constructor in the registry with a mock
// that checks each argument against the corresponding matcher and always
// returns the same pre-created Instance. Calling ExpectNew again for the
// same name binds fresh matchers to a fresh instance; the earlier
// expectation stops applying. Construction with non-matching arguments is
// an immediate hard failure.
func ExpectNew(reg *Registry, name string, argMatchers ...match.Matcher) *Instance {
	inst := &Instance{Name: name}
	reg.Stub(name, func(args ...any) any {
		if len(args) != len(argMatchers) {
			panic(fmt.Sprintf("mock: %s called with %d args, want %d", name, len(args), len(argMatchers)))
		}
		for i, m := range argMatchers {
			if r := m.Match(args[i]); !r.OK {
				panic(fmt.Sprintf("mock: %s arg %d: %s", name, i, r.Description))
			}
		}
		inst.Calls = append(inst.Calls, args)
		return inst
	})
	return inst
}

// ExpectNoCalls replaces the named binding with one that fails loudly if
// invoked at all.
func ExpectNoCalls(reg *Registry, name string) {
	reg.Stub(name, func(args ...any) any {
		panic(fmt.Sprintf("mock: %s was called but no calls were expected", name))
	})
}
