package futureset

import "sync/atomic"

// dequeueResult distinguishes the outcomes of readyQueue.dequeue.
type dequeueResult int

const (
	// dequeueEmpty indicates the queue held nothing beyond the stub.
	dequeueEmpty dequeueResult = iota
	// dequeueInconsistent indicates a producer was observed mid-insert;
	// the consumer must retry later rather than conclude emptiness.
	dequeueInconsistent
	// dequeueData indicates a node was dequeued.
	dequeueData
)

// readyQueue is an intrusive lock-free MPSC linked queue of members that
// have requested a poll. Producers are member wakers on arbitrary
// goroutines; the single consumer is whichever goroutine currently polls
// the owning Set.
//
// This is the classic non-blocking MPSC algorithm: a producer swaps itself
// into head and then completes the backward link from the previous head,
// leaving a window during which the consumer can observe the queue as
// structurally incomplete. The permanent stub node makes the
// empty/non-empty transition race-free. Producers never block and never
// fail; Inconsistent is the sole cost of lock-freedom, and resolves as
// soon as the stalled producer finishes its second store.
type readyQueue[T any] struct {
	// waker is notified after each successful member enqueue, scheduling
	// whichever task most recently polled the owning Set.
	waker atomicWaker

	// stats is shared with the owning Set. Wake accounting lives behind
	// the queue because wakers may outlive the Set itself.
	stats *setStats

	// head is the producer side; producers swap themselves in, then link
	// the previous head forward to themselves.
	head atomic.Pointer[node[T]]

	// tail is the consumer side, advanced only by the single consumer as
	// it follows nextReady links.
	tail *node[T]

	// stub is the permanent sentinel. Its queued flag stays set so member
	// wakes can never enqueue it; only dequeue re-inserts it, to step the
	// queue over the empty transition.
	stub *node[T]
}

func newReadyQueue[T any](stats *setStats) *readyQueue[T] {
	stub := new(node[T])
	stub.queued.Store(true)
	q := &readyQueue[T]{stats: stats, stub: stub, tail: stub}
	q.head.Store(stub)
	return q
}

// enqueue inserts n at the head. Safe to call from any goroutine. The
// caller must have claimed n via its queued flag, or own it outright, as
// Push and the stub re-insertion do.
func (q *readyQueue[T]) enqueue(n *node[T]) {
	n.nextReady.Store(nil)
	prev := q.head.Swap(n)
	// Between the swap above and the store below, n is reachable from
	// head but not from tail; dequeue reports this window as
	// Inconsistent rather than advancing through it.
	prev.nextReady.Store(n)
}

// dequeue removes the node at the tail, if any. Single consumer only: the
// caller must hold exclusive access to the owning Set.
func (q *readyQueue[T]) dequeue() (*node[T], dequeueResult) {
	tail := q.tail
	next := tail.nextReady.Load()

	if tail == q.stub {
		if next == nil {
			return nil, dequeueEmpty
		}
		q.tail = next
		tail = next
		next = next.nextReady.Load()
	}

	if next != nil {
		q.tail = next
		return tail, dequeueData
	}

	if q.head.Load() != tail {
		return nil, dequeueInconsistent
	}

	// Tail caught up with head while the links are complete. Re-insert
	// the stub so the final node gains a successor, then re-check; a
	// racing producer can still force the Inconsistent outcome.
	q.enqueue(q.stub)

	next = tail.nextReady.Load()
	if next != nil {
		q.tail = next
		return tail, dequeueData
	}

	return nil, dequeueInconsistent
}
