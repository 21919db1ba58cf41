// Package seqvm provides a virtual-machine pattern engine for sequences of
// arbitrary values.
//
// Patterns are built programmatically from combinators (there is no textual
// regex syntax) and matched against finite indexed sequences of any
// comparable value type, not only characters:
//
//	a := pattern.NewLiteral[rune, any]('a')
//	b := pattern.NewLiteral[rune, any]('b')
//	p := pattern.NewConcat(a, pattern.NewZeroOrMore(b, pattern.Greedy))
//
//	program := seqvm.Compile(p)
//	if m := seqvm.Match(program, []rune("abbb")); m != nil {
//	    // matched a prefix of the input
//	}
//
// The engine is the Pike VM approach: compilation produces a linked graph of
// instructions, and the executor simulates many cooperative logical threads
// in lock-step over the input. Matching runs in O(n*m) time for input length
// n and program size m, regardless of how ambiguous the pattern is.
//
// Matching is anchored at index 0 and accepts a prefix of the input (the
// one preferred by branch priority and greediness, which for lazy
// repetition is not the longest). For unanchored search use a
// Searcher, which scans start offsets, or a ByteSearcher, which prefilters
// candidate offsets with an Aho-Corasick automaton over literal prefixes
// extracted from the pattern.
//
// Patterns may capture sub-ranges (pattern.NewCaptured), delimit regions
// with identity markers (pattern.NewMarked), and invoke callbacks during
// matching (pattern.NewCall); see the pattern and vm packages.
package seqvm

import (
	"github.com/coregx/seqvm/pattern"
	"github.com/coregx/seqvm/vm"
)

// Compile compiles a pattern into an executable program. The program is
// immutable and may be reused across matches and shared across goroutines.
func Compile[V comparable, R any](p pattern.Pattern[V, R]) *vm.Program[V, R] {
	return pattern.Compile(p)
}

// Match runs a compiled program against values, anchored at index 0.
// It returns the match, or nil if the program accepts no prefix of values.
func Match[V comparable, R any](program *vm.Program[V, R], values []V) *vm.Match[V, R] {
	return vm.Run(program, values)
}
