package vm

import (
	"github.com/coregx/seqvm/internal/conv"
	"github.com/coregx/seqvm/internal/sparse"
)

// thread is a logical thread of execution: a cursor into the instruction
// graph paired with a reference to a ThreadState. Many threads may share
// one state; the reference count on the state tracks exactly how many.
type thread[V comparable, R any] struct {
	instruction *Instruction[V, R]
	state       *ThreadState[R]
}

// Parser matches a compiled Program against a sequence of values by
// advancing all live threads in lock-step over the input.
//
// One Parser serves exactly one match call and is not safe for concurrent
// use; the Program it runs is read-only and freely shared.
type Parser[V comparable, R any] struct {
	program *Program[V, R]
	values  []V

	// seen records instructions already scheduled during the current step,
	// keyed by the program's dense instruction ids. The earlier-scheduled
	// (higher-priority) instance wins.
	seen *sparse.Set

	current []thread[V, R]
	pending []thread[V, R]
}

// Run runs program against values and returns the match, or nil if the
// program accepts no prefix of values.
func Run[V comparable, R any](program *Program[V, R], values []V) *Match[V, R] {
	return newParser(program, values).match()
}

func newParser[V comparable, R any](program *Program[V, R], values []V) *Parser[V, R] {
	if program == nil {
		panic("vm: Match: nil program")
	}
	return &Parser[V, R]{
		program: program,
		values:  values,
		seen:    sparse.NewSet(conv.IntToUint32(program.NumInstructions())),
	}
}

// Values returns the input sequence being matched. Callbacks may use it
// to relate capture indices back to the input.
func (p *Parser[V, R]) Values() []V {
	return p.values
}

// match advances through the input once. At the start of each step,
// current holds only consumer threads (Atom, Accept): everything else
// was expanded by addThread when the thread was scheduled.
func (p *Parser[V, R]) match() *Match[V, R] {
	var matched *ThreadState[R]

	index := 0
	p.addThread(thread[V, R]{p.program.start, newThreadState[R]()}, index, &p.current)

	for len(p.current) > 0 {
		var value V
		inBounds := index < len(p.values)
		if inBounds {
			value = p.values[index]
		}

		p.seen.Clear()

	step:
		for i := 0; i < len(p.current); i++ {
			t := p.current[i]

			switch t.instruction.op {
			case OpAtom:
				if inBounds && t.instruction.pred(value) {
					p.addThread(thread[V, R]{t.instruction.Next, t.state}, index+1, &p.pending)
				} else {
					t.state.deref()
				}

			case OpAccept:
				if matched != nil {
					matched.deref()
				}
				matched = t.state

				// All remaining threads are lower-priority alternatives:
				// discard them. The break is the core priority mechanism.
				for i++; i < len(p.current); i++ {
					p.current[i].state.deref()
				}
				break step

			default:
				panic(unsupportedInstruction(t.instruction))
			}
		}

		p.current, p.pending = p.pending, p.current[:0]

		index++
		if !inBounds {
			break
		}
	}

	if matched == nil {
		return nil
	}
	return &Match[V, R]{input: p.values, state: matched}
}

// addThread schedules t at input position index, expanding the epsilon
// closure so that dst only ever receives consumer threads. Split explores
// its preferred branch first: if both branches reach the same downstream
// consumer, the high-priority copy is the one the seen set keeps.
func (p *Parser[V, R]) addThread(t thread[V, R], index int, dst *[]thread[V, R]) {
	instruction := t.instruction

	if p.seen.Contains(instruction.id) {
		t.state.deref()
		return
	}
	p.seen.Insert(instruction.id)

	switch instruction.op {
	case OpSplit:
		t.state.ref()
		p.addThread(thread[V, R]{instruction.Next, t.state}, index, dst)
		p.addThread(thread[V, R]{instruction.Alt, t.state}, index, dst)

	case OpSave:
		state := t.state.writable()
		switch instruction.pos {
		case Start:
			state.setStart(instruction.key, index)
		case End:
			state.setEnd(instruction.key, index)
		default:
			panic(unsupportedInstruction(instruction))
		}
		p.addThread(thread[V, R]{instruction.Next, state}, index, dst)

	case OpMark:
		state := t.state.writable()
		switch instruction.pos {
		case Start:
			state.pushMark()
		case End:
			state.popMark()
		default:
			panic(unsupportedInstruction(instruction))
		}
		p.addThread(thread[V, R]{instruction.Next, state}, index, dst)

	case OpCall:
		state := t.state.writable()
		instruction.call(p, &PartialMatch[V, R]{Match[V, R]{input: p.values, state: state}})
		p.addThread(thread[V, R]{instruction.Next, state}, index, dst)

	default:
		*dst = append(*dst, t)
	}
}
