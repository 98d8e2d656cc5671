package futureset

import (
	"fmt"
	"weak"

	"github.com/joeycumines/logiface"
)

// Set is an unbounded collection of futures, multiplexed behind a single
// pollable handle, yielding each member's result exactly once, in
// completion order. Instances must be created via [New] or [Collect].
//
// Thread Safety:
// All methods require exclusive access, to be arranged by the caller,
// with one deliberate exception: member wakers (handed out during polls)
// are safe to invoke from any goroutine at any time, including after the
// Set has been cleared or collected.
type Set[T any] struct {
	// queue is the strong reference to the ready queue. Members reach
	// the queue only weakly, so discarding the Set releases the queue
	// once in-flight enqueues settle.
	queue *readyQueue[T]

	// headAll heads the all-list, nil when empty.
	headAll *node[T]

	// length counts members currently linked into the all-list.
	length int

	log *logiface.Logger[logiface.Event]

	stats *setStats
}

// New constructs an empty Set. In this state [Set.PollNext] returns
// [PollExhausted].
func New[T any](opts ...Option) *Set[T] {
	cfg := resolveOptions(opts)
	stats := new(setStats)
	return &Set[T]{
		queue: newReadyQueue[T](stats),
		log:   cfg.logger,
		stats: stats,
	}
}

// Len returns the number of in-flight futures in the set.
func (s *Set[T]) Len() int { return s.length }

// IsEmpty returns true if the set contains no futures.
func (s *Set[T]) IsEmpty() bool { return s.length == 0 }

// Push adds a future to the set.
//
// The future is registered but not polled. The caller must drive the set,
// via [Set.PollNext] or [Set.Next], for the future to make progress or
// for its wakeups to be delivered.
//
// Providing a nil future will cause a panic.
func (s *Set[T]) Push(f Future[T]) {
	if f == nil {
		panic(`futureset: nil future`)
	}
	n := &node[T]{
		future: f,
		queue:  weak.Make(s.queue),
	}
	n.queued.Store(true)
	s.link(n)
	// Enqueue unconditionally so the first poll happens without any
	// explicit wakeup having occurred.
	s.queue.enqueue(n)
	s.stats.pushed.Add(1)
	s.log.Trace().Int(`len`, s.length).Log(`push`)
}

// PollNext drives the set until a member resolves, no member is ready, or
// no members remain.
//
// cx's waker is registered with the set before draining, replacing any
// prior registration, so cross-goroutine wakeups always reach the most
// recent caller; on [PollPending] that waker will be invoked once any
// member requires attention. On [PollReady] the resolved member has been
// removed from the set and its value is returned. [PollExhausted] is
// terminal until the next push.
//
// A panic escaping a member's Poll finalizes that member exactly as if it
// had resolved, minus the value, then propagates. The set and every other
// member remain fully usable.
//
// Providing a nil cx will cause a panic.
func (s *Set[T]) PollNext(cx *Context) (T, PollResult) {
	if cx == nil {
		panic(`futureset: nil context`)
	}
	var zero T

	// Keep cross-goroutine wakeups flowing to the current task.
	s.queue.waker.register(cx.Waker())

	for {
		n, res := s.queue.dequeue()
		switch res {
		case dequeueEmpty:
			if s.length == 0 {
				return zero, PollExhausted
			}
			return zero, PollPending
		case dequeueInconsistent:
			// A producer is mid-insert, and its notification may
			// already have consumed our waker registration.
			// Reschedule ourselves so the retry cannot be lost.
			s.stats.inconsistent.Add(1)
			s.log.Trace().Log(`inconsistent dequeue; rescheduling`)
			cx.Wake()
			return zero, PollPending
		}

		if n == s.queue.stub {
			// The stub only ever signals continuation, never data.
			continue
		}

		if n.future == nil {
			// Zombie: finalized while still enqueued. The queue held
			// the last reference, and this dequeue drained it.
			continue
		}

		s.unlink(n)

		// Clear queued before polling, so a wake delivered during the
		// poll itself is able to re-enqueue the member.
		if !n.queued.Swap(false) {
			panic(`futureset: corrupt member state: dequeued node not marked queued`)
		}

		if v, ok := s.pollMember(n); ok {
			s.stats.completed.Add(1)
			s.log.Trace().Int(`len`, s.length).Log(`resolve`)
			return v, PollReady
		}
	}
}

// pollMember polls n's future with a waker bound to n. n must be unlinked,
// with queued cleared. A pending future is re-linked into the all-list;
// a resolved or panicking one is finalized, the latter before the panic
// continues out of the driver.
func (s *Set[T]) pollMember(n *node[T]) (v T, ok bool) {
	s.stats.polls.Add(1)
	pending := false
	defer func() {
		if !pending {
			s.releaseNode(n)
		}
	}()
	v, ok = n.future.Poll(NewContext(n))
	if !ok {
		s.link(n)
		pending = true
	}
	return
}

// Clear removes and cancels every member, leaving the set empty and
// usable. Members that were still enqueued are inherited by the ready
// queue as zombies, to be drained by later polls or discarded with the
// queue itself.
func (s *Set[T]) Clear() {
	cleared := s.length
	for s.headAll != nil {
		n := s.headAll
		s.unlink(n)
		s.releaseNode(n)
		s.stats.canceled.Add(1)
	}
	if cleared != 0 {
		s.log.Debug().Int(`cleared`, cleared).Log(`clear`)
	}
}

// String returns a debug representation. Member futures are deliberately
// not rendered.
func (s *Set[T]) String() string {
	return fmt.Sprintf("futureset.Set{len: %d}", s.length)
}

// link inserts n at the head of the all-list.
func (s *Set[T]) link(n *node[T]) {
	n.nextAll = s.headAll
	if s.headAll != nil {
		s.headAll.prevAll = n
	}
	s.headAll = n
	s.length++
}

// unlink removes n from the all-list. n must currently be linked.
func (s *Set[T]) unlink(n *node[T]) {
	next := n.nextAll
	prev := n.prevAll
	n.nextAll = nil
	n.prevAll = nil
	if next != nil {
		next.prevAll = prev
	}
	if prev != nil {
		prev.nextAll = next
	} else {
		s.headAll = next
	}
	s.length--
}

// releaseNode finalizes an unlinked node: it permanently blocks further
// enqueues, drops the future, and cancels it if it is a [Canceler]. If the
// node was still enqueued at that moment, the ready queue inherits it; the
// nil future marks it as a zombie for a later dequeue to drain.
func (s *Set[T]) releaseNode(n *node[T]) {
	// queued is never cleared again for this node, which is what makes
	// late wakes no-ops.
	wasQueued := n.queued.Swap(true)
	f := n.future
	n.future = nil
	if c, ok := f.(Canceler); ok {
		c.Cancel()
	}
	if wasQueued {
		s.log.Trace().Log(`released enqueued member; queue inherits zombie`)
	}
}
