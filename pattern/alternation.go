package pattern

import "github.com/coregx/seqvm/vm"

// Alt matches one of a choice of sub-patterns. Branches are
// priority-ordered: the first branch that can lead to an overall match
// wins over later ones.
type Alt[V comparable, R any] struct {
	patterns []Pattern[V, R]
}

// NewAlt creates a pattern matching first or any of rest, preferring
// earlier branches. Nested Alt patterns are flattened, and branches that
// are structurally equal to an earlier one are dropped, preserving
// first-seen order. With no rest patterns, first is returned unchanged.
// Panics if any pattern is nil.
func NewAlt[V comparable, R any](first Pattern[V, R], rest ...Pattern[V, R]) Pattern[V, R] {
	if first == nil {
		panic("pattern: NewAlt: nil pattern")
	}
	if len(rest) == 0 {
		return first
	}

	flat := flattenAlt(first, make([]Pattern[V, R], 0, 1+len(rest)))
	for _, p := range rest {
		if p == nil {
			panic("pattern: NewAlt: nil pattern")
		}
		flat = flattenAlt(p, flat)
	}

	patterns := make([]Pattern[V, R], 0, len(flat))
	for _, p := range flat {
		if !containsPattern(patterns, p) {
			patterns = append(patterns, p)
		}
	}
	return &Alt[V, R]{patterns: patterns}
}

func flattenAlt[V comparable, R any](p Pattern[V, R], dst []Pattern[V, R]) []Pattern[V, R] {
	if a, ok := p.(*Alt[V, R]); ok {
		for _, sub := range a.patterns {
			dst = flattenAlt(sub, dst)
		}
		return dst
	}
	return append(dst, p)
}

func containsPattern[V comparable, R any](patterns []Pattern[V, R], p Pattern[V, R]) bool {
	for _, q := range patterns {
		if q.Equal(p) {
			return true
		}
	}
	return false
}

// Patterns returns the alternative sub-patterns in priority order.
// The returned slice must not be modified.
func (a *Alt[V, R]) Patterns() []Pattern[V, R] {
	return a.patterns
}

// compile builds a right-associated chain of Splits whose preferred links
// lead to earlier branches, so the executor explores them first.
func (a *Alt[V, R]) compile(next *vm.Instruction[V, R]) *vm.Instruction[V, R] {
	if len(a.patterns) == 0 {
		return next
	}
	result := a.patterns[len(a.patterns)-1].compile(next)
	for i := len(a.patterns) - 2; i >= 0; i-- {
		result = vm.NewSplit(a.patterns[i].compile(next), result)
	}
	return result
}

// Equal reports whether other is an Alt of pairwise equal branches.
func (a *Alt[V, R]) Equal(other Pattern[V, R]) bool {
	o, ok := other.(*Alt[V, R])
	if !ok || len(a.patterns) != len(o.patterns) {
		return false
	}
	for i, p := range a.patterns {
		if !p.Equal(o.patterns[i]) {
			return false
		}
	}
	return true
}

// Hash returns a structural hash of the pattern.
func (a *Alt[V, R]) Hash() uint64 {
	parts := make([]uint64, 0, 1+len(a.patterns))
	parts = append(parts, hashTagAlt)
	for _, p := range a.patterns {
		parts = append(parts, p.Hash())
	}
	return hashOf(parts...)
}

// String returns the printed form of the pattern.
func (a *Alt[V, R]) String() string {
	return formatPatterns("Alt", a.patterns)
}
