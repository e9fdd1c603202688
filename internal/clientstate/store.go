package clientstate

import "sync"

type Listener func(State)

type subscription struct {
	id int
	fn Listener
}

// Store serializes dispatches and notifies listeners with the new state after
// each one, in subscription order.
type Store struct {
	mu        sync.Mutex
	state     State
	listeners []subscription
	nextID    int
}

func NewStore() *Store {
	return &Store{state: InitialState()}
}

func (s *Store) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

func (s *Store) Dispatch(a Action) State {
	s.mu.Lock()
	s.state = Reduce(s.state, a)
	state := s.state
	listeners := append([]subscription(nil), s.listeners...)
	s.mu.Unlock()

	for _, l := range listeners {
		l.fn(state)
	}
	return state
}

// Subscribe registers fn and returns a func that removes it. Calling the
// returned func more than once is a no-op.
func (s *Store) Subscribe(fn Listener) func() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextID++
	id := s.nextID
	s.listeners = append(s.listeners, subscription{id: id, fn: fn})

	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		for i, l := range s.listeners {
			if l.id == id {
				s.listeners = append(s.listeners[:i:i], s.listeners[i+1:]...)
				return
			}
		}
	}
}
