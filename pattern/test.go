package pattern

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/coregx/seqvm/vm"
)

// Test matches one input value satisfying a predicate.
type Test[V comparable, R any] struct {
	predicate vm.Predicate[V]
}

// NewTest creates a pattern matching a single value for which predicate
// returns true.
//
// Predicates are opaque: two Test patterns are equal only if they are the
// same instance, and they hash by identity. Reuse the pattern value when
// equality matters (e.g. for NewAlt deduplication).
// Panics if predicate is nil.
func NewTest[V comparable, R any](predicate vm.Predicate[V]) *Test[V, R] {
	if predicate == nil {
		panic("pattern: NewTest: nil predicate")
	}
	return &Test[V, R]{predicate: predicate}
}

func (t *Test[V, R]) compile(next *vm.Instruction[V, R]) *vm.Instruction[V, R] {
	return vm.NewAtom(t.predicate, next)
}

// Equal reports whether other is the same Test instance.
func (t *Test[V, R]) Equal(other Pattern[V, R]) bool {
	o, ok := other.(*Test[V, R])
	return ok && t == o
}

// Hash returns an identity-based hash.
func (t *Test[V, R]) Hash() uint64 {
	return hashOf(hashTagTest, uint64(reflect.ValueOf(t).Pointer()))
}

// String returns the printed form of the pattern.
func (t *Test[V, R]) String() string {
	return "Test"
}

// Literal matches one input value equal to a given value.
type Literal[V comparable, R any] struct {
	value     V
	predicate vm.Predicate[V]
}

// NewLiteral creates a pattern matching a single value equal to value.
func NewLiteral[V comparable, R any](value V) *Literal[V, R] {
	return &Literal[V, R]{
		value:     value,
		predicate: func(input V) bool { return input == value },
	}
}

// Value returns the value this pattern matches.
func (l *Literal[V, R]) Value() V {
	return l.value
}

func (l *Literal[V, R]) compile(next *vm.Instruction[V, R]) *vm.Instruction[V, R] {
	return vm.NewAtom(l.predicate, next)
}

// Equal reports whether other is a Literal of an equal value.
func (l *Literal[V, R]) Equal(other Pattern[V, R]) bool {
	o, ok := other.(*Literal[V, R])
	return ok && l.value == o.value
}

// Hash returns a structural hash of the pattern.
func (l *Literal[V, R]) Hash() uint64 {
	return hashOf(hashTagLiteral, hashValue(l.value))
}

// String returns the printed form of the pattern.
func (l *Literal[V, R]) String() string {
	return fmt.Sprintf("Literal(%v)", l.value)
}

// Any matches exactly one input value, whatever it is.
type Any[V comparable, R any] struct{}

// NewAny creates a pattern matching any single value.
func NewAny[V comparable, R any]() *Any[V, R] {
	return &Any[V, R]{}
}

func (a *Any[V, R]) compile(next *vm.Instruction[V, R]) *vm.Instruction[V, R] {
	return vm.NewAtom(func(V) bool { return true }, next)
}

// Equal reports whether other is also Any.
func (a *Any[V, R]) Equal(other Pattern[V, R]) bool {
	_, ok := other.(*Any[V, R])
	return ok
}

// Hash returns a structural hash of the pattern.
func (a *Any[V, R]) Hash() uint64 {
	return hashOf(hashTagAny)
}

// String returns the printed form of the pattern.
func (a *Any[V, R]) String() string {
	return "Any"
}

// OneOf matches one input value equal to any of a set of values.
type OneOf[V comparable, R any] struct {
	values    []V // first-seen insertion order, deduplicated
	set       map[V]struct{}
	predicate vm.Predicate[V]
}

// NewOneOf creates a pattern matching a single value equal to one of the
// given values. Duplicates are dropped while preserving first-seen order;
// with a single distinct value the pattern degenerates to a Literal.
func NewOneOf[V comparable, R any](value V, others ...V) Pattern[V, R] {
	set := make(map[V]struct{}, 1+len(others))
	values := make([]V, 0, 1+len(others))
	for _, v := range append([]V{value}, others...) {
		if _, ok := set[v]; ok {
			continue
		}
		set[v] = struct{}{}
		values = append(values, v)
	}
	if len(values) == 1 {
		return NewLiteral[V, R](values[0])
	}
	return &OneOf[V, R]{
		values: values,
		set:    set,
		predicate: func(input V) bool {
			_, ok := set[input]
			return ok
		},
	}
}

// Values returns the accepted values in first-seen insertion order.
// The returned slice must not be modified.
func (o *OneOf[V, R]) Values() []V {
	return o.values
}

func (o *OneOf[V, R]) compile(next *vm.Instruction[V, R]) *vm.Instruction[V, R] {
	return vm.NewAtom(o.predicate, next)
}

// Equal reports whether other is a OneOf accepting the same set of values,
// regardless of insertion order.
func (o *OneOf[V, R]) Equal(other Pattern[V, R]) bool {
	q, ok := other.(*OneOf[V, R])
	if !ok || len(o.values) != len(q.values) {
		return false
	}
	for v := range o.set {
		if _, ok := q.set[v]; !ok {
			return false
		}
	}
	return true
}

// Hash returns a structural hash of the pattern, insensitive to insertion
// order so it stays consistent with Equal.
func (o *OneOf[V, R]) Hash() uint64 {
	var sum uint64
	for _, v := range o.values {
		sum += hashValue(v)
	}
	return hashOf(hashTagOneOf, sum)
}

// String returns the printed form of the pattern.
func (o *OneOf[V, R]) String() string {
	parts := make([]string, len(o.values))
	for i, v := range o.values {
		parts[i] = fmt.Sprintf("%v", v)
	}
	return fmt.Sprintf("OneOf(%s)", strings.Join(parts, ", "))
}
