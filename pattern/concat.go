package pattern

import (
	"strings"

	"github.com/coregx/seqvm/vm"
)

// Concat matches its sub-patterns in order.
type Concat[V comparable, R any] struct {
	patterns []Pattern[V, R]
}

// NewConcat creates a pattern matching first followed by each of rest, in
// order. Nested Concat patterns are flattened so that concatenation is
// associative and the printed form is canonical. With no rest patterns,
// first is returned unchanged.
// Panics if any pattern is nil.
func NewConcat[V comparable, R any](first Pattern[V, R], rest ...Pattern[V, R]) Pattern[V, R] {
	if first == nil {
		panic("pattern: NewConcat: nil pattern")
	}
	if len(rest) == 0 {
		return first
	}

	patterns := flattenConcat(first, make([]Pattern[V, R], 0, 1+len(rest)))
	for _, p := range rest {
		if p == nil {
			panic("pattern: NewConcat: nil pattern")
		}
		patterns = flattenConcat(p, patterns)
	}
	return &Concat[V, R]{patterns: patterns}
}

func flattenConcat[V comparable, R any](p Pattern[V, R], dst []Pattern[V, R]) []Pattern[V, R] {
	if c, ok := p.(*Concat[V, R]); ok {
		for _, sub := range c.patterns {
			dst = flattenConcat(sub, dst)
		}
		return dst
	}
	return append(dst, p)
}

// Patterns returns the concatenated sub-patterns in match order.
// The returned slice must not be modified.
func (c *Concat[V, R]) Patterns() []Pattern[V, R] {
	return c.patterns
}

// compile works right-to-left: the last sub-pattern is compiled against
// next, each earlier one against its successor's entry.
func (c *Concat[V, R]) compile(next *vm.Instruction[V, R]) *vm.Instruction[V, R] {
	result := next
	for i := len(c.patterns) - 1; i >= 0; i-- {
		result = c.patterns[i].compile(result)
	}
	return result
}

// Equal reports whether other is a Concat of pairwise equal sub-patterns.
func (c *Concat[V, R]) Equal(other Pattern[V, R]) bool {
	o, ok := other.(*Concat[V, R])
	if !ok || len(c.patterns) != len(o.patterns) {
		return false
	}
	for i, p := range c.patterns {
		if !p.Equal(o.patterns[i]) {
			return false
		}
	}
	return true
}

// Hash returns a structural hash of the pattern.
func (c *Concat[V, R]) Hash() uint64 {
	parts := make([]uint64, 0, 1+len(c.patterns))
	parts = append(parts, hashTagConcat)
	for _, p := range c.patterns {
		parts = append(parts, p.Hash())
	}
	return hashOf(parts...)
}

// String returns the printed form of the pattern.
func (c *Concat[V, R]) String() string {
	return formatPatterns("Concat", c.patterns)
}

func formatPatterns[V comparable, R any](name string, patterns []Pattern[V, R]) string {
	parts := make([]string, len(patterns))
	for i, p := range patterns {
		parts[i] = p.String()
	}
	return name + "(" + strings.Join(parts, ", ") + ")"
}
