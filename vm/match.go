package vm

import "fmt"

// Match is the result of a successful parse: a view tying the input
// sequence to the winning thread's final state.
type Match[V comparable, R any] struct {
	input []V
	state *ThreadState[R]
}

// Group returns the subsequence of the input delimited by the last
// executed Start and End saves for key on the winning thread, or nil if
// the Start save never ran. The returned slice aliases the input.
func (m *Match[V, R]) Group(key any) []V {
	start, end, ok := m.GroupIndex(key)
	if !ok {
		return nil
	}
	return m.input[start:end]
}

// GroupIndex returns the input index range recorded for key. ok is false
// if the group was never fully delimited.
func (m *Match[V, R]) GroupIndex(key any) (start, end int, ok bool) {
	start, ok = m.state.start(key)
	if !ok {
		return 0, 0, false
	}
	end, ok = m.state.end(key)
	if !ok {
		return 0, 0, false
	}
	return start, end, true
}

// Result returns the thread's result slot, the zero value of R if no
// callback ever set it.
func (m *Match[V, R]) Result() R {
	return m.state.result
}

// String returns a diagnostic representation of the match.
func (m *Match[V, R]) String() string {
	return fmt.Sprintf("Match(%s)", m.state)
}

// PartialMatch is the match constructed so far in the current thread.
// Call callbacks receive one and may update the thread's result slot and
// observe the current marker. A PartialMatch is only valid for the
// duration of the callback invocation: the underlying state may be cloned
// by later copy-on-write, and a retained view would no longer track the
// thread it was handed out for.
type PartialMatch[V comparable, R any] struct {
	Match[V, R]
}

// SetResult updates the current thread's result slot.
func (m *PartialMatch[V, R]) SetResult(result R) {
	m.state.result = result
}

// CurrentMarker returns the top of the thread's marker stack, or nil when
// the call site is not inside any marked region.
func (m *PartialMatch[V, R]) CurrentMarker() *Marker {
	return m.state.currentMarker()
}
