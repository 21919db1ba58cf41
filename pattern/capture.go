package pattern

import (
	"fmt"

	"github.com/coregx/seqvm/vm"
)

// Captured records the input range matched by its sub-pattern under a key,
// retrievable from the match via Group.
type Captured[V comparable, R any] struct {
	key any
	sub Pattern[V, R]
}

// NewCaptured creates a pattern that matches p and records the input range
// it consumed under key. The key may be nil, conventionally naming the
// whole match; it must be comparable.
// Panics if p is nil.
func NewCaptured[V comparable, R any](key any, p Pattern[V, R]) *Captured[V, R] {
	if p == nil {
		panic("pattern: NewCaptured: nil pattern")
	}
	return &Captured[V, R]{key: key, sub: p}
}

// Key returns the capture key.
func (c *Captured[V, R]) Key() any {
	return c.key
}

// Pattern returns the captured sub-pattern.
func (c *Captured[V, R]) Pattern() Pattern[V, R] {
	return c.sub
}

func (c *Captured[V, R]) compile(next *vm.Instruction[V, R]) *vm.Instruction[V, R] {
	end := vm.NewSave(c.key, vm.End, next)
	return vm.NewSave(c.key, vm.Start, c.sub.compile(end))
}

// Equal reports whether other is a Captured with an equal key and sub-pattern.
func (c *Captured[V, R]) Equal(other Pattern[V, R]) bool {
	o, ok := other.(*Captured[V, R])
	return ok && c.key == o.key && c.sub.Equal(o.sub)
}

// Hash returns a structural hash of the pattern.
func (c *Captured[V, R]) Hash() uint64 {
	return hashOf(hashTagCaptured, hashKey(c.key), c.sub.Hash())
}

// String returns the printed form of the pattern.
func (c *Captured[V, R]) String() string {
	return fmt.Sprintf("Captured(%v, %s)", c.key, c.sub)
}

// Marked delimits a region of the pattern with a unique marker: while the
// executor is inside the region, callbacks observe the marker via
// CurrentMarker. Each traversal of the region on each thread generates a
// fresh marker; nested regions shadow the outer marker until they end.
type Marked[V comparable, R any] struct {
	sub Pattern[V, R]
}

// NewMarked creates a pattern matching p inside a marked region.
// Panics if p is nil.
func NewMarked[V comparable, R any](p Pattern[V, R]) *Marked[V, R] {
	if p == nil {
		panic("pattern: NewMarked: nil pattern")
	}
	return &Marked[V, R]{sub: p}
}

// Pattern returns the marked sub-pattern.
func (m *Marked[V, R]) Pattern() Pattern[V, R] {
	return m.sub
}

func (m *Marked[V, R]) compile(next *vm.Instruction[V, R]) *vm.Instruction[V, R] {
	end := vm.NewMark[V, R](vm.End, next)
	return vm.NewMark(vm.Start, m.sub.compile(end))
}

// Equal reports whether other is a Marked with an equal sub-pattern.
func (m *Marked[V, R]) Equal(other Pattern[V, R]) bool {
	o, ok := other.(*Marked[V, R])
	return ok && m.sub.Equal(o.sub)
}

// Hash returns a structural hash of the pattern.
func (m *Marked[V, R]) Hash() uint64 {
	return hashOf(hashTagMarked, m.sub.Hash())
}

// String returns the printed form of the pattern.
func (m *Marked[V, R]) String() string {
	return fmt.Sprintf("Marked(%s)", m.sub)
}
