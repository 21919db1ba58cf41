package seqvm

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/coregx/seqvm/pattern"
)

func byteLit(b byte) pattern.Pattern[byte, any] {
	return pattern.NewLiteral[byte, any](b)
}

func bytePattern(s string) pattern.Pattern[byte, any] {
	patterns := make([]pattern.Pattern[byte, any], len(s))
	for i := 0; i < len(s); i++ {
		patterns[i] = byteLit(s[i])
	}
	return pattern.NewConcat(patterns[0], patterns[1:]...)
}

func TestSearcherFindsFirstOccurrence(t *testing.T) {
	s := NewSearcher(bytePattern("foo"))

	m := s.Find([]byte("xxfooyyfoo"), 0)
	require.NotNil(t, m)
	assert.Equal(t, 2, m.Start)
	assert.Equal(t, 5, m.End)

	m = s.Find([]byte("xxfooyyfoo"), 3)
	require.NotNil(t, m)
	assert.Equal(t, 7, m.Start)

	assert.Nil(t, s.Find([]byte("xxbaryy"), 0))
	assert.Nil(t, s.Find(nil, 0))
}

func TestSearcherGenericValues(t *testing.T) {
	// Unanchored search works over any comparable value type.
	s := NewSearcher(pattern.NewConcat(
		pattern.NewLiteral[int, any](2),
		pattern.NewLiteral[int, any](3),
	))

	m := s.Find([]int{9, 9, 2, 3, 9}, 0)
	require.NotNil(t, m)
	assert.Equal(t, 2, m.Start)
	assert.Equal(t, 4, m.End)
}

func TestSearcherCapturesAreRelative(t *testing.T) {
	p := pattern.NewCaptured("word", bytePattern("ab"))
	s := NewSearcher[byte, any](p)

	m := s.Find([]byte("zzab"), 0)
	require.NotNil(t, m)
	assert.Equal(t, 2, m.Start)
	assert.Equal(t, 4, m.End)

	// Group indices count from the match start.
	start, end, ok := m.Match.GroupIndex("word")
	require.True(t, ok)
	assert.Equal(t, 0, start)
	assert.Equal(t, 2, end)
	assert.Equal(t, []byte("ab"), m.Match.Group("word"))
}

func TestSearcherGreedyStopsAtFirstStart(t *testing.T) {
	// The searcher is leftmost-first: a later, longer match does not win.
	s := NewSearcher(pattern.NewConcat(
		byteLit('a'),
		pattern.NewZeroOrMore(byteLit('a'), pattern.Greedy),
	))

	m := s.Find([]byte("xaxaaa"), 0)
	require.NotNil(t, m)
	assert.Equal(t, 1, m.Start)
	assert.Equal(t, 2, m.End)
}

func TestByteSearcherPrefilter(t *testing.T) {
	p := pattern.NewAlt(bytePattern("foo"), bytePattern("bar"))
	s := NewByteSearcher[any](p)

	require.True(t, s.HasPrefilter())

	m := s.Find([]byte("zzzbarzz"), 0)
	require.NotNil(t, m)
	assert.Equal(t, 3, m.Start)
	assert.Equal(t, 6, m.End)

	assert.Nil(t, s.Find([]byte("zzzbazz"), 0))
}

func TestByteSearcherWithoutPrefilter(t *testing.T) {
	// A predicate head leaves no literal needles; search still works.
	p := pattern.NewConcat(
		pattern.NewTest[byte, any](func(b byte) bool { return b >= '0' && b <= '9' }),
		byteLit('!'),
	)
	s := NewByteSearcher[any](p)

	assert.False(t, s.HasPrefilter())

	m := s.Find([]byte("ab7!z"), 0)
	require.NotNil(t, m)
	assert.Equal(t, 2, m.Start)
	assert.Equal(t, 4, m.End)
}

func TestByteSearcherAgreesWithNaiveScan(t *testing.T) {
	p := pattern.NewConcat(
		pattern.NewOneOf[byte, any]('c', 'd'),
		pattern.NewZeroOrMore(byteLit('o'), pattern.Greedy),
		byteLit('g'),
	)
	fast := NewByteSearcher[any](p)
	slow := NewSearcher[byte, any](p)

	inputs := []string{
		"",
		"dog",
		"cog",
		"the dog chased the cat",
		"dg cooog",
		"no match here",
		"ddddg",
		"cdcdcd",
	}
	for _, input := range inputs {
		for at := 0; at <= len(input); at++ {
			got := fast.Find([]byte(input), at)
			want := slow.Find([]byte(input), at)
			if want == nil {
				assert.Nil(t, got, "input %q at %d", input, at)
				continue
			}
			require.NotNil(t, got, "input %q at %d", input, at)
			assert.Equal(t, want.Start, got.Start, "input %q at %d", input, at)
			assert.Equal(t, want.End, got.End, "input %q at %d", input, at)
		}
	}
}

func TestByteSearcherUnequalNeedleLengths(t *testing.T) {
	// Needles are cut to the shortest literal's length so the leftmost
	// candidate is the leftmost match start even when one alternative is
	// much longer than the other.
	p := pattern.NewAlt(bytePattern("abc"), byteLit('b'))
	s := NewByteSearcher[any](p)

	m := s.Find([]byte("abc"), 0)
	require.NotNil(t, m)
	assert.Equal(t, 0, m.Start)
	assert.Equal(t, 3, m.End)
}
