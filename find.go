package seqvm

import (
	"github.com/coregx/ahocorasick"

	"github.com/coregx/seqvm/literal"
	"github.com/coregx/seqvm/pattern"
	"github.com/coregx/seqvm/vm"
)

// wholeMatch keys the capture a Searcher wraps around the pattern to learn
// where each match ends. Being unexported it cannot collide with user keys.
type wholeMatch struct{}

// SearchMatch is the result of an unanchored search: the half-open input
// range [Start, End) of the first match, plus the full Match with the
// user's captures and result. Capture indices inside Match are relative
// to Start.
type SearchMatch[V comparable, R any] struct {
	Start int
	End   int
	Match *vm.Match[V, R]
}

// Searcher finds the first occurrence of a pattern anywhere in a sequence
// by running the anchored program at successive start offsets.
//
// A Searcher is immutable and safe for concurrent use.
type Searcher[V comparable, R any] struct {
	program *vm.Program[V, R]
}

// NewSearcher compiles p for unanchored searching.
// Panics if p is nil.
func NewSearcher[V comparable, R any](p pattern.Pattern[V, R]) *Searcher[V, R] {
	if p == nil {
		panic("seqvm: NewSearcher: nil pattern")
	}
	return &Searcher[V, R]{
		program: pattern.Compile[V, R](pattern.NewCaptured[V, R](wholeMatch{}, p)),
	}
}

// Find returns the first match starting at or after offset at, or nil.
func (s *Searcher[V, R]) Find(values []V, at int) *SearchMatch[V, R] {
	if at < 0 {
		at = 0
	}
	for start := at; start <= len(values); start++ {
		if m := s.matchAt(values, start); m != nil {
			return m
		}
	}
	return nil
}

func (s *Searcher[V, R]) matchAt(values []V, start int) *SearchMatch[V, R] {
	m := vm.Run(s.program, values[start:])
	if m == nil {
		return nil
	}
	_, end, _ := m.GroupIndex(wholeMatch{})
	return &SearchMatch[V, R]{Start: start, End: start + end, Match: m}
}

// ByteSearcher is a Searcher over byte sequences with a literal prefilter:
// when the pattern's literal prefixes are extractable, an Aho-Corasick
// automaton over them locates candidate start offsets, and the virtual
// machine only runs where a candidate occurs. Patterns without usable
// literal prefixes fall back to scanning every offset.
//
// A ByteSearcher is immutable and safe for concurrent use.
type ByteSearcher[R any] struct {
	Searcher[byte, R]
	prefilter *ahocorasick.Automaton
}

// NewByteSearcher compiles p for unanchored searching over []byte inputs,
// building the literal prefilter when the pattern allows one.
// Panics if p is nil.
func NewByteSearcher[R any](p pattern.Pattern[byte, R]) *ByteSearcher[R] {
	s := &ByteSearcher[R]{}
	s.Searcher = *NewSearcher(p)

	seq := literal.Extract(p, literal.DefaultConfig())
	seq.Minimize()
	if !seq.Usable() {
		return s
	}

	// Cut every needle to the shortest literal's length. A prefix of a
	// prefix is still a prefix, and with equal-length needles the
	// automaton's leftmost match start is the leftmost candidate start,
	// so no earlier match can hide behind a longer needle.
	minLen := len(seq.Get(0).Values)
	for _, l := range seq.Literals()[1:] {
		if len(l.Values) < minLen {
			minLen = len(l.Values)
		}
	}
	needles := literal.NewSeq[byte]()
	for _, l := range seq.Literals() {
		needles.Add(literal.Literal[byte]{Values: l.Values[:minLen]})
	}
	needles.Minimize()

	builder := ahocorasick.NewBuilder()
	for _, l := range needles.Literals() {
		builder.AddPattern(l.Values)
	}
	automaton, err := builder.Build()
	if err != nil {
		// No prefilter; searching still works, one offset at a time.
		return s
	}
	s.prefilter = automaton
	return s
}

// HasPrefilter reports whether the searcher runs with a literal prefilter.
func (s *ByteSearcher[R]) HasPrefilter() bool {
	return s.prefilter != nil
}

// Find returns the first match starting at or after offset at, or nil.
func (s *ByteSearcher[R]) Find(input []byte, at int) *SearchMatch[byte, R] {
	if s.prefilter == nil {
		return s.Searcher.Find(input, at)
	}
	if at < 0 {
		at = 0
	}
	for pos := at; pos <= len(input); {
		candidate := s.prefilter.Find(input, pos)
		if candidate == nil {
			return nil
		}
		if m := s.matchAt(input, candidate.Start); m != nil {
			return m
		}
		pos = candidate.Start + 1
	}
	return nil
}
