package futureset

import (
	"sync/atomic"
	"weak"
)

// node is the per-member record. It participates in two intrusive linked
// lists with sharply different access disciplines: the all-list fields and
// the future slot are touched only by the goroutine holding exclusive
// access to the owning Set (single-writer, no synchronization), while the
// ready-queue fields are shared with every goroutine that may wake the
// member.
type node[T any] struct {
	// future is the member computation. nil marks a node finalized while
	// still enqueued; the ready queue drains such zombies on a later
	// dequeue. Accessed only under exclusive Set access.
	future Future[T]

	// nextAll and prevAll link the all-list. Accessed only under
	// exclusive Set access.
	nextAll *node[T]
	prevAll *node[T]

	// nextReady links the ready queue. Stored by producers during
	// enqueue, traversed by the single consumer.
	nextReady atomic.Pointer[node[T]]

	// queued is true while the node is in the ready queue or an insertion
	// is in flight. The false->true transition claims the sole right to
	// enqueue, preventing duplicates.
	queued atomic.Bool

	// queue points back to the ready queue without keeping it alive, so
	// an outstanding waker neither prolongs the queue's lifetime nor
	// touches it after collection.
	queue weak.Pointer[readyQueue[T]]
}

// Wake implements Waker, requesting a re-poll of this member. Any number
// of goroutines may call it concurrently; at most one enqueue results.
// Wakes of an already-scheduled or already-finalized member, or wakes
// arriving after the owning Set has been collected, are no-ops.
func (n *node[T]) Wake() {
	q := n.queue.Value()
	if q == nil {
		// The owning Set and its queue are gone; nothing to schedule.
		return
	}
	if n.queued.Swap(true) {
		// Already enqueued, or another waker won the race. Finalized
		// members land here too: release leaves queued permanently set.
		return
	}
	q.enqueue(n)
	q.stats.wakes.Add(1)
	q.waker.wake()
}
