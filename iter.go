package futureset

import "iter"

// All returns an iterator over every future currently in the set, most
// recently pushed first. Members may be inspected or mutated in place.
// The set must not be pushed to, polled, or cleared during iteration, and
// the usual exclusive-access contract applies.
func (s *Set[T]) All() iter.Seq[Future[T]] {
	return func(yield func(Future[T]) bool) {
		for n := s.headAll; n != nil; n = n.nextAll {
			if !yield(n.future) {
				return
			}
		}
	}
}

// PushAll pushes every future produced by seq, equivalent to repeated
// [Set.Push].
func (s *Set[T]) PushAll(seq iter.Seq[Future[T]]) {
	for f := range seq {
		s.Push(f)
	}
}

// Collect constructs a Set from a sequence of futures, equivalent to
// [New] followed by [Set.PushAll].
func Collect[T any](seq iter.Seq[Future[T]], opts ...Option) *Set[T] {
	s := New[T](opts...)
	s.PushAll(seq)
	return s
}
