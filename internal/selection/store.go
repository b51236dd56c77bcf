package selection

import (
	"errors"
	"fmt"
	"sync"

	"shortlist/internal/search"
)

var ErrPageOutOfRange = errors.New("page out of range")

// Store serializes dispatches and fans the resulting state out to
// subscribers. Subscribers run after the lock is released, in
// registration order.
type Store struct {
	mu     sync.RWMutex
	state  State
	subs   map[int]func(State)
	order  []int
	nextID int
}

func NewStore(initial State) *Store {
	return &Store{state: initial.clone(), subs: make(map[int]func(State))}
}

func (s *Store) State() State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.clone()
}

func (s *Store) Dispatch(a Action) State {
	s.mu.Lock()
	s.state = Reduce(s.state, a)
	next := s.state.clone()
	subs := make([]func(State), 0, len(s.order))
	for _, id := range s.order {
		subs = append(subs, s.subs[id])
	}
	s.mu.Unlock()

	for _, fn := range subs {
		fn(next.clone())
	}
	return next
}

// Subscribe registers fn and returns a function that removes it.
func (s *Store) Subscribe(fn func(State)) func() {
	if fn == nil {
		return func() {}
	}
	s.mu.Lock()
	id := s.nextID
	s.nextID++
	s.subs[id] = fn
	s.order = append(s.order, id)
	s.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			s.mu.Lock()
			defer s.mu.Unlock()
			delete(s.subs, id)
			for i, v := range s.order {
				if v == id {
					s.order = append(s.order[:i:i], s.order[i+1:]...)
					break
				}
			}
		})
	}
}

// GoToPage dispatches SetPage when n is within [1, total pages].
func (s *Store) GoToPage(n int) error {
	pages := s.State().TotalPages()
	if n < 1 || n > pages {
		return fmt.Errorf("%w: %d not in [1, %d]", ErrPageOutOfRange, n, pages)
	}
	s.Dispatch(SetPage{Page: n})
	return nil
}

func (s *Store) Select(c search.ScoredCandidate) State {
	return s.Dispatch(SelectCandidate{Candidate: c})
}

func (s *Store) Remove(email string) State {
	return s.Dispatch(RemoveCandidate{Email: email})
}
