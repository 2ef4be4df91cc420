// Package events implements a minimal typed publish/subscribe signal. Each
// Signal carries one event kind with a strongly typed payload; emission is
// synchronous, so every subscriber has run before Emit returns.
package events

// Signal is a single event kind with subscribers. The zero value is ready
// to use. Signals are not safe for concurrent use; all windrag events fire
// on the X event loop.
type Signal[T any] struct {
	subs   []subscriber[T]
	nextID int
}

type subscriber[T any] struct {
	id int
	fn func(T)
}

// Subscribe registers fn and returns a cancel function that removes it.
// Changes made during an Emit take effect from the next Emit.
func (s *Signal[T]) Subscribe(fn func(T)) func() {
	s.nextID++
	id := s.nextID
	s.subs = append(s.subs, subscriber[T]{id: id, fn: fn})
	return func() {
		kept := s.subs[:0:0]
		for _, sub := range s.subs {
			if sub.id != id {
				kept = append(kept, sub)
			}
		}
		s.subs = kept
	}
}

// Emit delivers ev to every subscriber in subscription order.
func (s *Signal[T]) Emit(ev T) {
	for _, sub := range s.subs {
		sub.fn(ev)
	}
}
