// Package futureset provides an unbounded set of poll-based asynchronous
// computations ("futures") multiplexed behind a single pollable handle,
// yielding each result exactly once, in completion order.
//
// # Architecture
//
// A [Set] tracks its members on two intrusive linked lists. The all-list is a
// doubly-linked list of every live member, owned exclusively by whichever
// goroutine holds the Set, and used for iteration and bulk teardown. The
// ready queue is a lock-free multi-producer single-consumer linked queue,
// into which any goroutine may insert a member to signal "poll me again".
// Members are only re-polled when they signal readiness, so driving a large
// Set costs work proportional to the number of ready members, not the number
// of live members.
//
// Each member is polled with a [Context] carrying a [Waker] bound to that
// specific member. Waking enqueues the member onto the ready queue (at most
// once; duplicate wakes coalesce) and notifies whichever task most recently
// polled the Set.
//
// # Driving a Set
//
// [Set.PollNext] is the low-level surface: it drains ready members, polls
// them, and returns the first resolved value, or reports [PollPending] or
// [PollExhausted]. It suits callers embedding a Set inside a larger poll
// loop, including another Set.
//
// [Set.Next] and [Set.Results] are the conventional Go surface: they block
// the calling goroutine between results, honoring context cancellation, and
// report exhaustion as [io.EOF].
//
// [Go] adapts an ordinary function running on its own goroutine into a
// cancelable [Future], bridging channel-style concurrency into the poll
// model.
//
// # Thread Safety
//
// Push, iteration, polling, and teardown require exclusive access to the
// Set; serialize them externally if multiple goroutines share one. Waking is
// the deliberate exception: any number of goroutines may concurrently wake
// any member, including after the Set has been cleared or collected.
package futureset
