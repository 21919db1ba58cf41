package pattern

import (
	"fmt"
	"reflect"

	"github.com/coregx/seqvm/vm"
)

// Call invokes a user callback when matching passes its call site, with
// the running parser and a partial match over the current thread's state.
// The callback runs once per epsilon-path that reaches the site, per
// thread: an ambiguous pattern may invoke it several times at one input
// position.
type Call[V comparable, R any] struct {
	callback vm.Callback[V, R]
	sub      Pattern[V, R]
	moment   Moment
}

// NewCall creates a pattern that matches p and invokes callback around it:
// after p has matched (After) or before p is attempted (Before).
//
// Callbacks are opaque: two Call patterns are equal only if they are the
// same instance, and they hash by identity.
// Panics if p or callback is nil, or moment is not Before or After.
func NewCall[V comparable, R any](p Pattern[V, R], callback vm.Callback[V, R], moment Moment) *Call[V, R] {
	if p == nil {
		panic("pattern: NewCall: nil pattern")
	}
	if callback == nil {
		panic("pattern: NewCall: nil callback")
	}
	if moment != Before && moment != After {
		panic(fmt.Sprintf("pattern: NewCall: unsupported moment: %s", moment))
	}
	return &Call[V, R]{callback: callback, sub: p, moment: moment}
}

// Pattern returns the wrapped sub-pattern.
func (c *Call[V, R]) Pattern() Pattern[V, R] {
	return c.sub
}

// Moment returns when the callback runs relative to the sub-pattern.
func (c *Call[V, R]) Moment() Moment {
	return c.moment
}

func (c *Call[V, R]) compile(next *vm.Instruction[V, R]) *vm.Instruction[V, R] {
	switch c.moment {
	case Before:
		return vm.NewCall(c.callback, c.sub.compile(next))
	case After:
		return c.sub.compile(vm.NewCall(c.callback, next))
	default:
		panic(fmt.Sprintf("pattern: unsupported moment: %s", c.moment))
	}
}

// Equal reports whether other is the same Call instance.
func (c *Call[V, R]) Equal(other Pattern[V, R]) bool {
	o, ok := other.(*Call[V, R])
	return ok && c == o
}

// Hash returns an identity-based hash.
func (c *Call[V, R]) Hash() uint64 {
	return hashOf(hashTagCall, uint64(reflect.ValueOf(c).Pointer()))
}

// String returns the printed form of the pattern.
func (c *Call[V, R]) String() string {
	return fmt.Sprintf("Call(%s, %s)", c.sub, c.moment)
}
