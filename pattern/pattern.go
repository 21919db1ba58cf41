// Package pattern provides a combinator algebra for describing matches over
// sequences of arbitrary comparable values, and its compilation into virtual
// machine instructions.
//
// A pattern is a declarative tree built from constructors such as NewLiteral,
// NewConcat, NewAlt, and NewZeroOrMore. Compile walks the tree in
// continuation-passing style: every pattern knows how to emit the instruction
// subgraph for itself in front of a given continuation, so the whole program
// is produced by a single bottom-up pass ending in an Accept instruction.
//
//	p := pattern.NewConcat(
//	    pattern.NewLiteral[rune, any]('a'),
//	    pattern.NewZeroOrMore(pattern.NewLiteral[rune, any]('b'), pattern.Greedy),
//	)
//	program := pattern.Compile(p)
//	match := vm.Run(program, []rune("abbb"))
//
// The pattern set is a closed sum: the Pattern interface carries an unexported
// method, so the executor's and compiler's case analyses stay exhaustive.
// Patterns support structural equality and hashing (tree shape plus payload),
// which NewAlt uses to drop duplicate branches and callers may use for
// caching. Patterns carrying opaque functions (NewTest, NewCall) compare by
// identity instead; see their constructors.
package pattern

import (
	"hash/maphash"

	"github.com/coregx/seqvm/vm"
)

// Greediness is the priority choice of repetition: prefer more iterations
// (Greedy) or fewer (Lazy).
type Greediness uint8

const (
	// Greedy matches as many occurrences as possible (longest match).
	Greedy Greediness = iota

	// Lazy matches as few occurrences as possible (shortest match).
	Lazy
)

// DefaultGreediness is the default greediness, Greedy. The repetition
// constructors take their greediness explicitly and do not apply it on
// their own.
const DefaultGreediness = Greedy

// String returns a human-readable representation of the Greediness.
func (g Greediness) String() string {
	switch g {
	case Greedy:
		return "Greedy"
	case Lazy:
		return "Lazy"
	default:
		return "Greediness(?)"
	}
}

// Moment selects when a Call pattern's callback runs relative to its
// sub-pattern.
type Moment uint8

const (
	// After invokes the callback once the sub-pattern has matched.
	After Moment = iota

	// Before invokes the callback before the sub-pattern is attempted.
	Before
)

// DefaultMoment is the default moment, After. NewCall takes its moment
// explicitly and does not apply it on its own.
const DefaultMoment = After

// String returns a human-readable representation of the Moment.
func (m Moment) String() string {
	switch m {
	case Before:
		return "Before"
	case After:
		return "After"
	default:
		return "Moment(?)"
	}
}

// Pattern is a declarative description of a match intent over sequences of
// values of type V, producing thread results of type R.
//
// The interface is a closed sum: only the types in this package implement it.
type Pattern[V comparable, R any] interface {
	// Equal reports structural equality: same tree shape and equal payloads.
	Equal(other Pattern[V, R]) bool

	// Hash returns a structural hash consistent with Equal. Hashes are
	// process-local (they incorporate a per-process seed) and must not be
	// persisted.
	Hash() uint64

	// String returns the canonical printed form of the pattern.
	String() string

	// compile emits the instruction subgraph matching this pattern, with
	// every terminal edge leading to next, and returns the entry node.
	compile(next *vm.Instruction[V, R]) *vm.Instruction[V, R]
}

// Compile compiles the pattern into an executable program. The program is
// immutable, reusable, and safe to share across goroutines.
// Panics if p is nil.
func Compile[V comparable, R any](p Pattern[V, R]) *vm.Program[V, R] {
	if p == nil {
		panic("pattern: Compile: nil pattern")
	}
	return vm.NewProgram(p.compile(vm.NewAccept[V, R]()))
}

// hashSeed makes structural hashes process-local.
var hashSeed = maphash.MakeSeed()

// Kind tags feeding structural hashes, one per pattern type.
const (
	hashTagTest uint64 = iota + 1
	hashTagLiteral
	hashTagAny
	hashTagOneOf
	hashTagConcat
	hashTagAlt
	hashTagCaptured
	hashTagMarked
	hashTagCall
	hashTagZeroOrOne
	hashTagZeroOrMore
	hashTagOneOrMore
	hashTagRepeat
)

const (
	fnvOffset64 uint64 = 14695981039346656037
	fnvPrime64  uint64 = 1099511628211
)

// hashOf folds the given words into an FNV-1a hash.
func hashOf(parts ...uint64) uint64 {
	h := fnvOffset64
	for _, part := range parts {
		for i := 0; i < 8; i++ {
			h ^= part & 0xff
			h *= fnvPrime64
			part >>= 8
		}
	}
	return h
}

func hashValue[V comparable](value V) uint64 {
	return maphash.Comparable(hashSeed, value)
}

// hashKey hashes a capture key. Keys are runtime-comparable values; nil is
// the conventional whole-match key.
func hashKey(key any) uint64 {
	if key == nil {
		return 0
	}
	return maphash.Comparable(hashSeed, key)
}
