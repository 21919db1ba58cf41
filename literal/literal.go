// Package literal provides extraction of literal value sequences from
// pattern trees.
//
// The primary use is prefilter optimization: the literal prefixes of a
// pattern (e.g. the alternatives of an alternation of literals) can locate
// candidate match positions cheaply before the full virtual machine runs.
//
// Key concepts:
//   - A Literal is a concrete value sequence that may begin a match. The
//     Complete flag reports whether the literal spans the entire match.
//   - A Seq is the set of alternative literals extracted from one pattern.
package literal

import "fmt"

// Literal is a literal value sequence extracted from a pattern. A match of
// the pattern begins with Values; if Complete is true it is exactly Values.
//
// A Literal with no values and Complete false carries no information: the
// pattern can begin with anything.
type Literal[V comparable] struct {
	// Values is the extracted value sequence.
	Values []V

	// Complete reports whether Values covers the entire match, so that
	// matching the literal alone decides the pattern.
	Complete bool
}

// Empty returns true if the literal carries no values.
func (l Literal[V]) Empty() bool {
	return len(l.Values) == 0
}

// String returns a diagnostic representation of the literal.
func (l Literal[V]) String() string {
	return fmt.Sprintf("literal{%v, complete=%t}", l.Values, l.Complete)
}

// Seq is a sequence of alternative literals extracted from a pattern:
// every match of the pattern begins with one of them.
type Seq[V comparable] struct {
	literals []Literal[V]
}

// NewSeq creates a sequence holding the given literals.
func NewSeq[V comparable](literals ...Literal[V]) *Seq[V] {
	return &Seq[V]{literals: literals}
}

// Add appends a literal to the sequence.
func (s *Seq[V]) Add(l Literal[V]) {
	s.literals = append(s.literals, l)
}

// Len returns the number of literals.
func (s *Seq[V]) Len() int {
	return len(s.literals)
}

// Get returns the literal at index i.
func (s *Seq[V]) Get(i int) Literal[V] {
	return s.literals[i]
}

// IsEmpty returns true if the sequence holds no literals.
func (s *Seq[V]) IsEmpty() bool {
	return len(s.literals) == 0
}

// Literals returns the underlying literals. The returned slice must not
// be modified.
func (s *Seq[V]) Literals() []Literal[V] {
	return s.literals
}

// Usable reports whether the sequence can drive a prefilter: it must be
// non-empty and every literal must carry at least one value. An empty
// literal means some match can begin with anything, so no finite set of
// needles covers all candidates.
func (s *Seq[V]) Usable() bool {
	if s.IsEmpty() {
		return false
	}
	for _, l := range s.literals {
		if l.Empty() {
			return false
		}
	}
	return true
}

// Minimize drops redundant literals: exact duplicates, and literals that
// extend another literal in the sequence (any occurrence of the longer one
// contains an occurrence of its prefix, so the shorter one already yields
// the candidate position). Order is preserved.
func (s *Seq[V]) Minimize() {
	kept := s.literals[:0]
	for _, l := range s.literals {
		redundant := false
		for _, k := range kept {
			if len(k.Values) <= len(l.Values) && equalValues(k.Values, l.Values[:len(k.Values)]) {
				redundant = true
				break
			}
		}
		if !redundant {
			// Literals kept earlier that extend l are redundant as well.
			n := 0
			for _, k := range kept {
				if len(l.Values) > len(k.Values) || !equalValues(l.Values, k.Values[:len(l.Values)]) {
					kept[n] = k
					n++
				}
			}
			kept = append(kept[:n], l)
		}
	}
	s.literals = kept
}

func equalValues[V comparable](a, b []V) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// String returns a diagnostic representation of the sequence.
func (s *Seq[V]) String() string {
	return fmt.Sprintf("seq%v", s.literals)
}
