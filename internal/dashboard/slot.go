package dashboard

import (
	"sync"
)

// State is a point in time view of a Slot.
type State[T any] struct {
	Loading  bool
	Err      error
	Value    T
	HasValue bool
}

// Ready reports whether the chart can be drawn from this state.
func (s State[T]) Ready() bool {
	return !s.Loading && s.Err == nil && s.HasValue
}

// Slot holds the fetch state of one chart. Every fetch takes a ticket with
// Begin; a completion is applied only when its ticket is the newest one seen
// so far, so a slow response can never overwrite a newer one.
type Slot[T any] struct {
	mu        sync.Mutex
	issued    uint64
	applied   uint64
	state     State[T]
	onDiscard func()
}

func NewSlot[T any](onDiscard func()) *Slot[T] {
	return &Slot[T]{
		onDiscard: onDiscard,
	}
}

func (s *Slot[T]) Begin() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.issued++
	s.state.Loading = true
	return s.issued
}

// Complete applies the result of the fetch holding ticket. It returns false
// when the result was discarded as stale.
func (s *Slot[T]) Complete(ticket uint64, value T, err error) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if ticket <= s.applied {
		if s.onDiscard != nil {
			s.onDiscard()
		}
		return false
	}

	s.applied = ticket
	s.state.Loading = s.applied < s.issued
	s.state.Err = err
	if err != nil {
		var zero T
		s.state.Value = zero
		s.state.HasValue = false
	} else {
		s.state.Value = value
		s.state.HasValue = true
	}
	return true
}

func (s *Slot[T]) Snapshot() State[T] {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

func (s *Slot[T]) Ready() bool {
	return s.Snapshot().Ready()
}
