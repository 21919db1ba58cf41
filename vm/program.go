package vm

import "github.com/coregx/seqvm/internal/conv"

// Program is a compiled pattern: the entry instruction plus a dense
// numbering of every reachable instruction. The numbering powers the
// executor's sparse duplicate-suppression set and keeps lookups O(1)
// without hashing node pointers.
//
// A Program is immutable after construction and may be shared across
// goroutines and reused for any number of matches. An instruction graph
// must belong to at most one Program: numbering is stored in the nodes.
type Program[V comparable, R any] struct {
	start        *Instruction[V, R]
	instructions []*Instruction[V, R]
}

// NewProgram numbers the instruction graph reachable from start in
// breadth-first first-visit order and returns the resulting program.
// Panics if start is nil.
func NewProgram[V comparable, R any](start *Instruction[V, R]) *Program[V, R] {
	if start == nil {
		panic("vm: NewProgram: nil start instruction")
	}
	program := &Program[V, R]{start: start}

	seen := map[*Instruction[V, R]]bool{start: true}
	queue := []*Instruction[V, R]{start}
	for len(queue) > 0 {
		instruction := queue[0]
		queue = queue[1:]

		instruction.id = conv.IntToUint32(len(program.instructions))
		program.instructions = append(program.instructions, instruction)

		for _, successor := range []*Instruction[V, R]{instruction.Next, instruction.Alt} {
			if successor != nil && !seen[successor] {
				seen[successor] = true
				queue = append(queue, successor)
			}
		}
	}
	return program
}

// Start returns the entry instruction of the program.
func (p *Program[V, R]) Start() *Instruction[V, R] {
	return p.start
}

// NumInstructions returns the number of reachable instructions. It bounds
// the executor's live thread count, which is what makes matching run in
// O(len(values) * NumInstructions()) time.
func (p *Program[V, R]) NumInstructions() int {
	return len(p.instructions)
}

// ToDot generates a Graphviz DOT description of the instruction graph.
func (p *Program[V, R]) ToDot() string {
	return p.start.ToDot()
}
