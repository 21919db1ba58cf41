package vm

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestConstructorChecks(t *testing.T) {
	accept := NewAccept[rune, any]()

	assert.Panics(t, func() {
		NewAtom[rune, any](nil, accept)
	})
	assert.Panics(t, func() {
		NewCall[rune, any](nil, accept)
	})
	assert.Panics(t, func() {
		NewSave[rune, any]("k", Position(9), accept)
	})
	assert.Panics(t, func() {
		NewMark[rune, any](Position(9), accept)
	})
}

func TestInstructionString(t *testing.T) {
	accept := NewAccept[rune, any]()

	tests := []struct {
		name        string
		instruction *Instruction[rune, any]
		want        string
	}{
		{"atom", NewAtom[rune, any](func(rune) bool { return true }, accept), "Atom"},
		{"split", NewSplit(accept, accept), "Split"},
		{"save start", NewSave[rune, any]("g", Start, accept), "Save(Start: g)"},
		{"save nil key", NewSave[rune, any](nil, End, accept), "Save(End: <nil>)"},
		{"mark", NewMark[rune, any](Start, accept), "Mark(Start)"},
		{"accept", accept, "Accept"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.instruction.String())
		})
	}
}

func TestInstructionAccessors(t *testing.T) {
	accept := NewAccept[rune, any]()
	save := NewSave[rune, any]("g", End, accept)

	assert.Equal(t, OpSave, save.Op())
	assert.Equal(t, "g", save.Key())
	assert.Equal(t, End, save.Position())
	assert.Equal(t, OpAccept, accept.Op())
}
