package pattern

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/coregx/seqvm/vm"
)

func lit(s string) Pattern[string, any] {
	return NewLiteral[string, any](s)
}

func TestLiteralEquality(t *testing.T) {
	assert.True(t, lit("a").Equal(lit("a")))
	assert.False(t, lit("a").Equal(lit("b")))
	assert.False(t, lit("a").Equal(NewAny[string, any]()))
	assert.Equal(t, lit("a").Hash(), lit("a").Hash())
	assert.NotEqual(t, lit("a").Hash(), lit("b").Hash())
}

func TestAnyEquality(t *testing.T) {
	assert.True(t, NewAny[string, any]().Equal(NewAny[string, any]()))
	assert.Equal(t, NewAny[string, any]().Hash(), NewAny[string, any]().Hash())
}

func TestTestEqualityIsIdentity(t *testing.T) {
	vowel := NewTest[rune, any](func(r rune) bool { return r == 'a' || r == 'e' })
	other := NewTest[rune, any](func(r rune) bool { return r == 'a' || r == 'e' })

	assert.True(t, vowel.Equal(vowel))
	assert.False(t, vowel.Equal(other))
}

func TestOneOfDegeneratesToLiteral(t *testing.T) {
	p := NewOneOf[string, any]("a")
	_, ok := p.(*Literal[string, any])
	assert.True(t, ok)

	// Duplicates collapse before the check.
	p = NewOneOf[string, any]("a", "a", "a")
	_, ok = p.(*Literal[string, any])
	assert.True(t, ok)
}

func TestOneOfDeduplicatesPreservingOrder(t *testing.T) {
	p := NewOneOf[string, any]("b", "a", "b", "c", "a")
	oneOf, ok := p.(*OneOf[string, any])
	require.True(t, ok)
	assert.Equal(t, []string{"b", "a", "c"}, oneOf.Values())
}

func TestOneOfEqualityIgnoresOrder(t *testing.T) {
	p := NewOneOf[string, any]("a", "b")
	q := NewOneOf[string, any]("b", "a")
	r := NewOneOf[string, any]("a", "c")

	assert.True(t, p.Equal(q))
	assert.Equal(t, p.Hash(), q.Hash())
	assert.False(t, p.Equal(r))
}

func TestConcatFlattens(t *testing.T) {
	nested := NewConcat(lit("a"), NewConcat(lit("b"), lit("c")))
	flat := NewConcat(NewConcat(lit("a"), lit("b")), lit("c"))

	assert.True(t, nested.Equal(flat))
	assert.Equal(t, nested.Hash(), flat.Hash())

	c, ok := nested.(*Concat[string, any])
	require.True(t, ok)
	assert.Len(t, c.Patterns(), 3)

	assert.Equal(t, "Concat(Literal(a), Literal(b), Literal(c))", nested.String())
}

func TestConcatSingleIsUnchanged(t *testing.T) {
	p := lit("a")
	assert.Same(t, p, NewConcat(p))
}

func TestAltFlattensAndDeduplicates(t *testing.T) {
	p := NewAlt(lit("a"), NewAlt(lit("b"), lit("a")), lit("b"))
	alt, ok := p.(*Alt[string, any])
	require.True(t, ok)

	require.Len(t, alt.Patterns(), 2)
	assert.True(t, alt.Patterns()[0].Equal(lit("a")))
	assert.True(t, alt.Patterns()[1].Equal(lit("b")))
	assert.Equal(t, "Alt(Literal(a), Literal(b))", p.String())
}

func TestAltSingleIsUnchanged(t *testing.T) {
	p := lit("a")
	assert.Same(t, p, NewAlt(p))
}

func TestCapturedEquality(t *testing.T) {
	assert.True(t, NewCaptured("k", lit("a")).Equal(NewCaptured("k", lit("a"))))
	assert.False(t, NewCaptured("k", lit("a")).Equal(NewCaptured("j", lit("a"))))
	assert.True(t, NewCaptured(nil, lit("a")).Equal(NewCaptured(nil, lit("a"))))
	assert.Equal(t,
		NewCaptured(nil, lit("a")).Hash(),
		NewCaptured(nil, lit("a")).Hash())
}

func TestRepetitionEquality(t *testing.T) {
	assert.True(t,
		NewZeroOrMore(lit("a"), Greedy).Equal(NewZeroOrMore(lit("a"), Greedy)))
	assert.False(t,
		NewZeroOrMore(lit("a"), Greedy).Equal(NewZeroOrMore(lit("a"), Lazy)))
	assert.False(t,
		NewZeroOrMore(lit("a"), Greedy).Equal(NewOneOrMore(lit("a"), Greedy)))
	assert.True(t,
		NewRepeat(lit("a"), 1, 3, Greedy).Equal(NewRepeat(lit("a"), 1, 3, Greedy)))
	assert.False(t,
		NewRepeat(lit("a"), 1, 3, Greedy).Equal(NewRepeat(lit("a"), 1, 4, Greedy)))
}

func TestRepeatClamping(t *testing.T) {
	tests := []struct {
		name     string
		min, max int
		wantMin  int
		wantMax  int
	}{
		{"plain", 2, 5, 2, 5},
		{"negative min", -5, 5, 0, 5},
		{"min above max", 5, 2, 2, 2},
		{"bounds above limit", 150, 200, 100, 100},
		{"unbounded keeps min", 3, Unbounded, 3, Unbounded},
		{"any negative max is unbounded", 0, -7, 0, Unbounded},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := NewRepeat(lit("a"), tt.min, tt.max, Greedy)
			assert.Equal(t, tt.wantMin, r.Min())
			assert.Equal(t, tt.wantMax, r.Max())
		})
	}
}

func TestCompileProgramSizes(t *testing.T) {
	a := lit("a")
	tests := []struct {
		name string
		p    Pattern[string, any]
		want int
	}{
		{"literal", a, 2},
		{"concat", NewConcat(a, lit("b"), lit("c")), 4},
		{"alternation", NewAlt(a, lit("b")), 4},
		{"zero or one", NewZeroOrOne(a, Greedy), 3},
		{"zero or more", NewZeroOrMore(a, Greedy), 3},
		{"one or more", NewOneOrMore(a, Lazy), 3},
		{"repeat 2 to 4", NewRepeat(a, 2, 4, Greedy), 7},
		{"repeat 0 to 0", NewRepeat(a, 0, 0, Greedy), 1},
		{"repeat 3 unbounded", NewRepeat(a, 3, Unbounded, Greedy), 6},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Compile(tt.p).NumInstructions())
		})
	}
}

func TestRepeatZeroMinUnboundedMatchesEmpty(t *testing.T) {
	// Repeat(p, 0, Unbounded) is ZeroOrMore, not OneOrMore: the empty
	// input matches.
	program := Compile(NewRepeat(lit("a"), 0, Unbounded, Greedy))
	assert.NotNil(t, vm.Run(program, nil))

	program = Compile(NewRepeat(lit("a"), 1, Unbounded, Greedy))
	assert.Nil(t, vm.Run(program, nil))
	assert.NotNil(t, vm.Run(program, []string{"a"}))
}

func TestConstructorPanics(t *testing.T) {
	tests := []struct {
		name string
		fn   func()
	}{
		{"compile nil", func() { Compile[string, any](nil) }},
		{"test nil predicate", func() { NewTest[string, any](nil) }},
		{"concat nil first", func() { NewConcat[string, any](nil) }},
		{"concat nil rest", func() { NewConcat(lit("a"), nil) }},
		{"alt nil first", func() { NewAlt[string, any](nil) }},
		{"alt nil rest", func() { NewAlt(lit("a"), nil) }},
		{"captured nil", func() { NewCaptured[string, any]("k", nil) }},
		{"marked nil", func() { NewMarked[string, any](nil) }},
		{"call nil pattern", func() { NewCall[string, any](nil, func(*vm.Parser[string, any], *vm.PartialMatch[string, any]) {}, After) }},
		{"call nil callback", func() { NewCall(lit("a"), nil, After) }},
		{"call bad moment", func() { NewCall(lit("a"), func(*vm.Parser[string, any], *vm.PartialMatch[string, any]) {}, Moment(9)) }},
		{"zero or one nil", func() { NewZeroOrOne[string, any](nil, Greedy) }},
		{"zero or more bad greediness", func() { NewZeroOrMore(lit("a"), Greediness(9)) }},
		{"repeat nil", func() { NewRepeat[string, any](nil, 0, 1, Greedy) }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Panics(t, tt.fn)
		})
	}
}

func TestStringForms(t *testing.T) {
	tests := []struct {
		name string
		p    Pattern[string, any]
		want string
	}{
		{"literal", lit("a"), "Literal(a)"},
		{"any", NewAny[string, any](), "Any"},
		{"one of", NewOneOf[string, any]("a", "b"), "OneOf(a, b)"},
		{"captured", NewCaptured("k", lit("a")), "Captured(k, Literal(a))"},
		{"marked", NewMarked(lit("a")), "Marked(Literal(a))"},
		{"zero or one", NewZeroOrOne(lit("a"), Lazy), "ZeroOrOne(Literal(a), Lazy)"},
		{"repeat same bounds", NewRepeat(lit("a"), 2, 2, Greedy), "Repeat(Literal(a), 2, Greedy)"},
		{"repeat range", NewRepeat(lit("a"), 1, 3, Greedy), "Repeat(Literal(a), 1, 3, Greedy)"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.p.String())
		})
	}
}
