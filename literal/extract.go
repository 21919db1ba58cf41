package literal

import "github.com/coregx/seqvm/pattern"

// Config bounds literal extraction.
//
// The limits prevent excessive extraction from complex patterns: wide
// alternations multiply under concatenation, and very long literals stop
// paying for themselves as prefilter needles.
type Config struct {
	// MaxLiterals limits how many alternative literals are extracted
	// before extraction gives up. Default: 64.
	MaxLiterals int

	// MaxLiteralLen limits the length of each extracted literal; longer
	// prefixes are truncated and marked incomplete. Default: 64.
	MaxLiteralLen int
}

// DefaultConfig returns the default extraction limits.
func DefaultConfig() Config {
	return Config{
		MaxLiterals:   64,
		MaxLiteralLen: 64,
	}
}

// Extract computes the literal prefixes of p: a Seq such that every
// sequence matched by p begins with one of its literals. A literal marked
// Complete covers a whole alternative of p on its own.
//
// Patterns that cannot contribute a known prefix (predicates, optional or
// unbounded heads, exceeded limits) surface as an empty incomplete
// literal, which makes the resulting Seq unusable for prefiltering; see
// Seq.Usable.
func Extract[V comparable, R any](p pattern.Pattern[V, R], cfg Config) *Seq[V] {
	if cfg.MaxLiterals <= 0 || cfg.MaxLiteralLen <= 0 {
		cfg = DefaultConfig()
	}
	e := extractor[V, R]{cfg: cfg}
	return e.extract(p)
}

type extractor[V comparable, R any] struct {
	cfg Config
}

// unknown is the universal sequence: the pattern may begin with anything.
func (e *extractor[V, R]) unknown() *Seq[V] {
	return NewSeq(Literal[V]{})
}

func (e *extractor[V, R]) extract(p pattern.Pattern[V, R]) *Seq[V] {
	switch q := p.(type) {
	case *pattern.Literal[V, R]:
		return NewSeq(Literal[V]{Values: []V{q.Value()}, Complete: true})

	case *pattern.OneOf[V, R]:
		seq := NewSeq[V]()
		for _, v := range q.Values() {
			seq.Add(Literal[V]{Values: []V{v}, Complete: true})
		}
		return seq

	case *pattern.Concat[V, R]:
		return e.concat(q.Patterns())

	case *pattern.Alt[V, R]:
		seq := NewSeq[V]()
		for _, alternative := range q.Patterns() {
			sub := e.extract(alternative)
			if seq.Len()+sub.Len() > e.cfg.MaxLiterals {
				return e.unknown()
			}
			for _, l := range sub.Literals() {
				seq.Add(l)
			}
		}
		return seq

	case *pattern.Captured[V, R]:
		return e.extract(q.Pattern())

	case *pattern.Marked[V, R]:
		return e.extract(q.Pattern())

	case *pattern.Call[V, R]:
		// Callbacks have no effect on the matched language.
		return e.extract(q.Pattern())

	case *pattern.OneOrMore[V, R]:
		// The first iteration is mandatory; further ones are unknown.
		return incomplete(e.extract(q.Pattern()))

	case *pattern.Repeat[V, R]:
		if q.Min() >= 1 {
			return incomplete(e.extract(q.Pattern()))
		}
		return e.unknown()

	default:
		// Test, Any, ZeroOrOne, ZeroOrMore: no usable prefix.
		return e.unknown()
	}
}

// concat crosses the prefixes of consecutive sub-patterns: complete
// literals extend with the next pattern's literals, incomplete ones are
// already cut and stay as they are.
func (e *extractor[V, R]) concat(patterns []pattern.Pattern[V, R]) *Seq[V] {
	current := NewSeq(Literal[V]{Complete: true})
	for _, p := range patterns {
		if allIncomplete(current) {
			break
		}
		sub := e.extract(p)

		next := NewSeq[V]()
		for _, l := range current.Literals() {
			if !l.Complete {
				next.Add(l)
				continue
			}
			for _, tail := range sub.Literals() {
				if next.Len() >= e.cfg.MaxLiterals {
					return e.unknown()
				}
				next.Add(e.join(l, tail))
			}
		}
		current = next
	}
	return current
}

func (e *extractor[V, R]) join(head, tail Literal[V]) Literal[V] {
	values := make([]V, 0, len(head.Values)+len(tail.Values))
	values = append(values, head.Values...)
	values = append(values, tail.Values...)
	complete := tail.Complete
	if len(values) > e.cfg.MaxLiteralLen {
		values = values[:e.cfg.MaxLiteralLen]
		complete = false
	}
	return Literal[V]{Values: values, Complete: complete}
}

func incomplete[V comparable](seq *Seq[V]) *Seq[V] {
	out := NewSeq[V]()
	for _, l := range seq.Literals() {
		out.Add(Literal[V]{Values: l.Values, Complete: false})
	}
	return out
}

func allIncomplete[V comparable](seq *Seq[V]) bool {
	for _, l := range seq.Literals() {
		if l.Complete {
			return false
		}
	}
	return true
}
