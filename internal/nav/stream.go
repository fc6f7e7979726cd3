package nav

// Stream is a read-only view of a last-value-wins publisher.
type Stream[T any] interface {
	// Value returns the most recently published value.
	Value() T
	// Subscribe registers fn, calls it with the current value and then on
	// every publish. The returned func unsubscribes; it is safe to call
	// more than once.
	Subscribe(fn func(T)) (cancel func())
}

type subscriber[T any] struct {
	id int
	fn func(T)
}

// Subject is a single-threaded publisher holding at most one pending value.
// Each Publish overwrites the previous value; subscribers never see history.
// It is not safe for concurrent use; it lives on the UI update loop.
type Subject[T any] struct {
	value  T
	subs   []subscriber[T]
	nextID int
}

// NewSubject returns a Subject holding initial.
func NewSubject[T any](initial T) *Subject[T] {
	return &Subject[T]{value: initial}
}

// Value returns the most recently published value.
func (s *Subject[T]) Value() T {
	return s.value
}

// Publish stores v and notifies subscribers in subscription order.
func (s *Subject[T]) Publish(v T) {
	s.value = v
	subs := append([]subscriber[T](nil), s.subs...)
	for _, sub := range subs {
		sub.fn(v)
	}
}

// Subscribe implements Stream.
func (s *Subject[T]) Subscribe(fn func(T)) func() {
	id := s.nextID
	s.nextID++
	s.subs = append(s.subs, subscriber[T]{id: id, fn: fn})
	fn(s.value)
	return func() {
		for i, sub := range s.subs {
			if sub.id == id {
				s.subs = append(s.subs[:i], s.subs[i+1:]...)
				return
			}
		}
	}
}

// Subscribers returns the number of live subscriptions.
func (s *Subject[T]) Subscribers() int {
	return len(s.subs)
}
