package pattern

import (
	"fmt"

	"github.com/coregx/seqvm/vm"
)

// ZeroOrOne matches its sub-pattern once or not at all.
type ZeroOrOne[V comparable, R any] struct {
	sub        Pattern[V, R]
	greediness Greediness
}

// NewZeroOrOne creates a pattern matching p once or not at all. Greedy
// prefers matching, Lazy prefers skipping.
// Panics if p is nil or greediness is invalid.
func NewZeroOrOne[V comparable, R any](p Pattern[V, R], greediness Greediness) *ZeroOrOne[V, R] {
	checkRepeatArgs(p, greediness, "NewZeroOrOne")
	return &ZeroOrOne[V, R]{sub: p, greediness: greediness}
}

// Pattern returns the optional sub-pattern.
func (z *ZeroOrOne[V, R]) Pattern() Pattern[V, R] {
	return z.sub
}

// Greediness returns the pattern's greediness.
func (z *ZeroOrOne[V, R]) Greediness() Greediness {
	return z.greediness
}

func (z *ZeroOrOne[V, R]) compile(next *vm.Instruction[V, R]) *vm.Instruction[V, R] {
	code := z.sub.compile(next)
	switch z.greediness {
	case Greedy:
		return vm.NewSplit(code, next)
	case Lazy:
		return vm.NewSplit(next, code)
	default:
		panic(unsupportedGreediness(z.greediness))
	}
}

// Equal reports whether other is a ZeroOrOne with equal sub-pattern and
// greediness.
func (z *ZeroOrOne[V, R]) Equal(other Pattern[V, R]) bool {
	o, ok := other.(*ZeroOrOne[V, R])
	return ok && z.greediness == o.greediness && z.sub.Equal(o.sub)
}

// Hash returns a structural hash of the pattern.
func (z *ZeroOrOne[V, R]) Hash() uint64 {
	return hashOf(hashTagZeroOrOne, uint64(z.greediness), z.sub.Hash())
}

// String returns the printed form of the pattern.
func (z *ZeroOrOne[V, R]) String() string {
	return fmt.Sprintf("ZeroOrOne(%s, %s)", z.sub, z.greediness)
}

// ZeroOrMore matches its sub-pattern any number of times, including zero.
type ZeroOrMore[V comparable, R any] struct {
	sub        Pattern[V, R]
	greediness Greediness
}

// NewZeroOrMore creates a pattern matching p zero or more times. Greedy
// prefers more iterations, Lazy fewer.
// Panics if p is nil or greediness is invalid.
func NewZeroOrMore[V comparable, R any](p Pattern[V, R], greediness Greediness) *ZeroOrMore[V, R] {
	checkRepeatArgs(p, greediness, "NewZeroOrMore")
	return &ZeroOrMore[V, R]{sub: p, greediness: greediness}
}

// Pattern returns the repeated sub-pattern.
func (z *ZeroOrMore[V, R]) Pattern() Pattern[V, R] {
	return z.sub
}

// Greediness returns the pattern's greediness.
func (z *ZeroOrMore[V, R]) Greediness() Greediness {
	return z.greediness
}

// compile allocates the Split first and compiles the body against it, so
// the body's terminal edges loop back: the compiled subgraph is cyclic.
func (z *ZeroOrMore[V, R]) compile(next *vm.Instruction[V, R]) *vm.Instruction[V, R] {
	split := vm.NewSplit[V, R](nil, nil)
	code := z.sub.compile(split)
	switch z.greediness {
	case Greedy:
		split.Next = code
		split.Alt = next
	case Lazy:
		split.Next = next
		split.Alt = code
	default:
		panic(unsupportedGreediness(z.greediness))
	}
	return split
}

// Equal reports whether other is a ZeroOrMore with equal sub-pattern and
// greediness.
func (z *ZeroOrMore[V, R]) Equal(other Pattern[V, R]) bool {
	o, ok := other.(*ZeroOrMore[V, R])
	return ok && z.greediness == o.greediness && z.sub.Equal(o.sub)
}

// Hash returns a structural hash of the pattern.
func (z *ZeroOrMore[V, R]) Hash() uint64 {
	return hashOf(hashTagZeroOrMore, uint64(z.greediness), z.sub.Hash())
}

// String returns the printed form of the pattern.
func (z *ZeroOrMore[V, R]) String() string {
	return fmt.Sprintf("ZeroOrMore(%s, %s)", z.sub, z.greediness)
}

// OneOrMore matches its sub-pattern one or more times.
type OneOrMore[V comparable, R any] struct {
	sub        Pattern[V, R]
	greediness Greediness
}

// NewOneOrMore creates a pattern matching p one or more times. Greedy
// prefers more iterations, Lazy fewer.
// Panics if p is nil or greediness is invalid.
func NewOneOrMore[V comparable, R any](p Pattern[V, R], greediness Greediness) *OneOrMore[V, R] {
	checkRepeatArgs(p, greediness, "NewOneOrMore")
	return &OneOrMore[V, R]{sub: p, greediness: greediness}
}

// Pattern returns the repeated sub-pattern.
func (o *OneOrMore[V, R]) Pattern() Pattern[V, R] {
	return o.sub
}

// Greediness returns the pattern's greediness.
func (o *OneOrMore[V, R]) Greediness() Greediness {
	return o.greediness
}

// compile is the ZeroOrMore construction entered at the body instead of
// the Split, so the body matches at least once.
func (o *OneOrMore[V, R]) compile(next *vm.Instruction[V, R]) *vm.Instruction[V, R] {
	split := vm.NewSplit[V, R](nil, nil)
	code := o.sub.compile(split)
	switch o.greediness {
	case Greedy:
		split.Next = code
		split.Alt = next
	case Lazy:
		split.Next = next
		split.Alt = code
	default:
		panic(unsupportedGreediness(o.greediness))
	}
	return code
}

// Equal reports whether other is a OneOrMore with equal sub-pattern and
// greediness.
func (o *OneOrMore[V, R]) Equal(other Pattern[V, R]) bool {
	q, ok := other.(*OneOrMore[V, R])
	return ok && o.greediness == q.greediness && o.sub.Equal(q.sub)
}

// Hash returns a structural hash of the pattern.
func (o *OneOrMore[V, R]) Hash() uint64 {
	return hashOf(hashTagOneOrMore, uint64(o.greediness), o.sub.Hash())
}

// String returns the printed form of the pattern.
func (o *OneOrMore[V, R]) String() string {
	return fmt.Sprintf("OneOrMore(%s, %s)", o.sub, o.greediness)
}

// Unbounded as a Repeat maximum means the repetition has no upper bound.
const Unbounded = -1

// RepeatLimit caps both Repeat bounds. Finite repetitions expand into
// copies of the sub-pattern at compile time; the cap keeps compiled
// programs small.
const RepeatLimit = 100

// Repeat matches its sub-pattern between a minimum and maximum number of
// times.
type Repeat[V comparable, R any] struct {
	sub        Pattern[V, R]
	min, max   int
	greediness Greediness
}

// NewRepeat creates a pattern matching p at least min and at most max
// times. A max of Unbounded (or any negative max) means no upper bound.
// Bounds are clamped: both are limited to RepeatLimit, a negative min is
// treated as zero, and a min exceeding a finite max is lowered to max.
// Panics if p is nil or greediness is invalid.
func NewRepeat[V comparable, R any](p Pattern[V, R], min, max int, greediness Greediness) *Repeat[V, R] {
	checkRepeatArgs(p, greediness, "NewRepeat")

	if max < 0 {
		max = Unbounded
	} else if max > RepeatLimit {
		max = RepeatLimit
	}
	if min < 0 {
		min = 0
	} else if min > RepeatLimit {
		min = RepeatLimit
	}
	if max != Unbounded && min > max {
		min = max
	}
	return &Repeat[V, R]{sub: p, min: min, max: max, greediness: greediness}
}

// Pattern returns the repeated sub-pattern.
func (r *Repeat[V, R]) Pattern() Pattern[V, R] {
	return r.sub
}

// Min returns the clamped minimum repetition count.
func (r *Repeat[V, R]) Min() int {
	return r.min
}

// Max returns the clamped maximum repetition count, Unbounded if there is
// no upper bound.
func (r *Repeat[V, R]) Max() int {
	return r.max
}

// Greediness returns the pattern's greediness.
func (r *Repeat[V, R]) Greediness() Greediness {
	return r.greediness
}

// compile expands the repetition: min concatenated copies of the
// sub-pattern, then either a ZeroOrMore loop (unbounded) or max-min
// optional copies, all with the repetition's own greediness.
func (r *Repeat[V, R]) compile(next *vm.Instruction[V, R]) *vm.Instruction[V, R] {
	if r.max == 0 {
		return next
	}

	var required Pattern[V, R]
	if r.min > 0 {
		required = r.sub
		for i := 1; i < r.min; i++ {
			required = NewConcat(required, r.sub)
		}
	}

	if r.max == Unbounded {
		loop := NewZeroOrMore(r.sub, r.greediness)
		if required == nil {
			return loop.compile(next)
		}
		return NewConcat[V, R](required, loop).compile(next)
	}

	var optional Pattern[V, R]
	if count := r.max - r.min; count > 0 {
		option := NewZeroOrOne(r.sub, r.greediness)
		optional = option
		for i := 1; i < count; i++ {
			optional = NewConcat[V, R](optional, option)
		}
	}

	switch {
	case required != nil && optional != nil:
		return NewConcat(required, optional).compile(next)
	case required != nil:
		return required.compile(next)
	case optional != nil:
		return optional.compile(next)
	default:
		return next
	}
}

// Equal reports whether other is a Repeat with equal bounds, greediness,
// and sub-pattern.
func (r *Repeat[V, R]) Equal(other Pattern[V, R]) bool {
	o, ok := other.(*Repeat[V, R])
	return ok && r.min == o.min && r.max == o.max &&
		r.greediness == o.greediness && r.sub.Equal(o.sub)
}

// Hash returns a structural hash of the pattern.
func (r *Repeat[V, R]) Hash() uint64 {
	return hashOf(hashTagRepeat, uint64(int64(r.min)), uint64(int64(r.max)),
		uint64(r.greediness), r.sub.Hash())
}

// String returns the printed form of the pattern.
func (r *Repeat[V, R]) String() string {
	if r.min == r.max {
		return fmt.Sprintf("Repeat(%s, %d, %s)", r.sub, r.min, r.greediness)
	}
	return fmt.Sprintf("Repeat(%s, %d, %d, %s)", r.sub, r.min, r.max, r.greediness)
}

func checkRepeatArgs[V comparable, R any](p Pattern[V, R], greediness Greediness, ctor string) {
	if p == nil {
		panic("pattern: " + ctor + ": nil pattern")
	}
	if greediness != Greedy && greediness != Lazy {
		panic(fmt.Sprintf("pattern: %s: unsupported greediness: %s", ctor, greediness))
	}
}

func unsupportedGreediness(greediness Greediness) string {
	return fmt.Sprintf("pattern: unsupported greediness: %s", greediness)
}
