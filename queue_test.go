package futureset

import (
	"sync"
	"testing"
)

func newTestQueue(t *testing.T) *readyQueue[int] {
	t.Helper()
	q := newReadyQueue[int](new(setStats))
	if q.stub == nil {
		t.Fatal("expected stub")
	}
	if q.tail != q.stub || q.head.Load() != q.stub {
		t.Fatal("expected head and tail at stub")
	}
	if !q.stub.queued.Load() {
		t.Error("stub must be permanently marked queued")
	}
	return q
}

func newQueuedNode() *node[int] {
	n := new(node[int])
	n.queued.Store(true)
	return n
}

func TestReadyQueue_emptyDequeue(t *testing.T) {
	q := newTestQueue(t)
	for i := 0; i < 3; i++ {
		if n, res := q.dequeue(); res != dequeueEmpty || n != nil {
			t.Fatalf("dequeue = %v, %v, want nil, empty", n, res)
		}
	}
}

func TestReadyQueue_fifo(t *testing.T) {
	q := newTestQueue(t)
	a, b, c := newQueuedNode(), newQueuedNode(), newQueuedNode()
	q.enqueue(a)
	q.enqueue(b)
	q.enqueue(c)
	for i, want := range []*node[int]{a, b, c} {
		n, res := q.dequeue()
		if res != dequeueData || n != want {
			t.Fatalf("dequeue %d = %v, %v, want %v, data", i, n, res, want)
		}
	}
	if _, res := q.dequeue(); res != dequeueEmpty {
		t.Fatalf("dequeue = %v, want empty", res)
	}
}

// The queue must go empty and fill again without dropping nodes; the stub
// re-insertion that steps the queue over the empty transition must stay
// invisible to the caller.
func TestReadyQueue_emptyRefillCycles(t *testing.T) {
	q := newTestQueue(t)
	nodes := []*node[int]{newQueuedNode(), newQueuedNode(), newQueuedNode()}
	for cycle := 0; cycle < 5; cycle++ {
		for _, n := range nodes {
			q.enqueue(n)
		}
		for i, want := range nodes {
			n, res := q.dequeue()
			if res != dequeueData || n != want {
				t.Fatalf("cycle %d dequeue %d = %v, %v, want %v, data", cycle, i, n, res, want)
			}
			if n == q.stub {
				t.Fatal("stub must never surface as data")
			}
		}
		if _, res := q.dequeue(); res != dequeueEmpty {
			t.Fatalf("cycle %d: queue should be empty", cycle)
		}
	}
}

// Replicates a producer stalled between its head swap and its backward
// link. The consumer must report Inconsistent, not Empty, and must
// recover once the link completes.
func TestReadyQueue_inconsistentMidInsert(t *testing.T) {
	q := newTestQueue(t)
	a := newQueuedNode()
	q.enqueue(a)

	// First half of enqueue(b): b is reachable from head, but a does not
	// yet link forward to it.
	b := newQueuedNode()
	b.nextReady.Store(nil)
	if prev := q.head.Swap(b); prev != a {
		t.Fatalf("prev = %v, want %v", prev, a)
	}

	if _, res := q.dequeue(); res != dequeueInconsistent {
		t.Fatalf("dequeue = %v, want inconsistent", res)
	}
	// Still inconsistent on retry; the consumer must not spin-block.
	if _, res := q.dequeue(); res != dequeueInconsistent {
		t.Fatalf("dequeue = %v, want inconsistent", res)
	}

	// Producer completes its second store.
	a.nextReady.Store(b)

	n, res := q.dequeue()
	if res != dequeueData || n != a {
		t.Fatalf("dequeue = %v, %v, want %v, data", n, res, a)
	}
	n, res = q.dequeue()
	if res != dequeueData || n != b {
		t.Fatalf("dequeue = %v, %v, want %v, data", n, res, b)
	}
	if _, res := q.dequeue(); res != dequeueEmpty {
		t.Fatalf("dequeue = %v, want empty", res)
	}
}

// Hammer the queue from many producers against a single consumer and
// require every node to come out exactly once. Inconsistent outcomes are
// expected under contention; Empty before all nodes arrive is fine too
// (the consumer simply retries).
func TestReadyQueue_concurrentProducers(t *testing.T) {
	const producers = 8
	const perProducer = 1_000

	q := newTestQueue(t)

	var wg sync.WaitGroup
	nodes := make([][]*node[int], producers)
	for p := 0; p < producers; p++ {
		nodes[p] = make([]*node[int], perProducer)
		for i := range nodes[p] {
			nodes[p][i] = newQueuedNode()
		}
	}
	for p := 0; p < producers; p++ {
		wg.Add(1)
		go func(batch []*node[int]) {
			defer wg.Done()
			for _, n := range batch {
				q.enqueue(n)
			}
		}(nodes[p])
	}

	seen := make(map[*node[int]]int, producers*perProducer)
	total := 0
	for total < producers*perProducer {
		n, res := q.dequeue()
		switch res {
		case dequeueData:
			if n == q.stub {
				t.Fatal("stub must never surface as data")
			}
			seen[n]++
			total++
		case dequeueEmpty, dequeueInconsistent:
			// Not all producers have finished; retry.
		}
	}
	wg.Wait()

	if _, res := q.dequeue(); res != dequeueEmpty {
		t.Fatalf("dequeue = %v, want empty after drain", res)
	}
	for n, count := range seen {
		if count != 1 {
			t.Fatalf("node %p dequeued %d times", n, count)
		}
	}
}
