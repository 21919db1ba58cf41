package vm

import (
	"fmt"
	"sync/atomic"
)

// markerSeq numbers markers for diagnostics. Identity is pointer identity;
// the sequence number only keeps the struct non-zero-sized so distinct
// allocations never alias, and gives String something stable to print.
var markerSeq atomic.Uint64

// Marker is an opaque identity token pushed by a Mark(Start) instruction.
// Two markers are the same only if they are the same *Marker. References
// may outlive the matching thread via callbacks that captured them.
type Marker struct {
	seq uint64
}

func newMarker() *Marker {
	return &Marker{seq: markerSeq.Add(1)}
}

// String returns a diagnostic representation of the marker.
func (m *Marker) String() string {
	return fmt.Sprintf("Marker(%d)", m.seq)
}

// ThreadState holds the per-thread capture map, marker stack, and result
// slot. Many logical threads share one state through reference counting:
// a thread that wants to write while the state is shared clones it first
// (copy-on-write), so forked branches pay nothing until they diverge.
type ThreadState[R any] struct {
	refs    int
	starts  map[any]int
	ends    map[any]int
	markers []*Marker
	result  R
}

func newThreadState[R any]() *ThreadState[R] {
	return &ThreadState[R]{
		refs:   1,
		starts: make(map[any]int),
		ends:   make(map[any]int),
	}
}

// clone returns a deep copy of the state with a reference count of one.
// Marker tokens are shared: they are identity tokens, not owned data.
func (s *ThreadState[R]) clone() *ThreadState[R] {
	starts := make(map[any]int, len(s.starts))
	for k, v := range s.starts {
		starts[k] = v
	}
	ends := make(map[any]int, len(s.ends))
	for k, v := range s.ends {
		ends[k] = v
	}
	markers := make([]*Marker, len(s.markers))
	copy(markers, s.markers)
	return &ThreadState[R]{
		refs:    1,
		starts:  starts,
		ends:    ends,
		markers: markers,
		result:  s.result,
	}
}

// writable returns a state that the caller may mutate. If the receiver is
// shared it is cloned and the receiver loses one reference; otherwise the
// receiver itself is returned.
func (s *ThreadState[R]) writable() *ThreadState[R] {
	if s.refs > 1 {
		s.refs--
		return s.clone()
	}
	return s
}

func (s *ThreadState[R]) ref() {
	s.refs++
}

func (s *ThreadState[R]) deref() {
	s.refs--
}

func (s *ThreadState[R]) setStart(key any, index int) {
	s.starts[key] = index
}

func (s *ThreadState[R]) setEnd(key any, index int) {
	s.ends[key] = index
}

func (s *ThreadState[R]) start(key any) (int, bool) {
	index, ok := s.starts[key]
	return index, ok
}

func (s *ThreadState[R]) end(key any) (int, bool) {
	index, ok := s.ends[key]
	return index, ok
}

func (s *ThreadState[R]) pushMark() {
	s.markers = append(s.markers, newMarker())
}

func (s *ThreadState[R]) popMark() {
	s.markers = s.markers[:len(s.markers)-1]
}

// currentMarker returns the top of the marker stack, nil when empty.
func (s *ThreadState[R]) currentMarker() *Marker {
	if len(s.markers) == 0 {
		return nil
	}
	return s.markers[len(s.markers)-1]
}

// String returns a diagnostic representation of the state.
func (s *ThreadState[R]) String() string {
	return fmt.Sprintf("State(starts: %v, ends: %v, markers: %v, result: %v)",
		s.starts, s.ends, s.markers, s.result)
}
