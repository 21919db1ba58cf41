package vm

import (
	"fmt"
	"strings"
)

// ToDot generates a Graphviz DOT description of the graph rooted at this
// instruction, walking breadth-first and numbering nodes by first-visit
// order. The entry and Accept nodes are drawn with a heavier border.
// Provided for debugging, to visualize compiled programs.
func (i *Instruction[V, R]) ToDot() string {
	nextID := 1
	ids := map[*Instruction[V, R]]int{i: nextID}
	nextID++

	queue := []*Instruction[V, R]{i}

	var b strings.Builder
	b.WriteString("digraph code {\n")
	b.WriteString("rankdir = LR\n")
	b.WriteString("node [shape=box]\n")

	for len(queue) > 0 {
		instruction := queue[0]
		queue = queue[1:]
		id := ids[instruction]

		highlight := ""
		if instruction == i || instruction.op == OpAccept {
			highlight = ", penwidth=2"
		}
		fmt.Fprintf(&b, "i%d [label=\"%s %s\"%s]\n",
			id, instruction.op, instruction.argument(), highlight)

		for _, successor := range []*Instruction[V, R]{instruction.Next, instruction.Alt} {
			if successor == nil {
				continue
			}
			succID, ok := ids[successor]
			if !ok {
				succID = nextID
				nextID++
				ids[successor] = succID
				queue = append(queue, successor)
			}
			fmt.Fprintf(&b, "i%d -> i%d\n", id, succID)
		}
	}

	b.WriteString("}\n")
	return b.String()
}
