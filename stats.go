package futureset

import "sync/atomic"

// setStats carries the counters behind [Set.Stats]. It is shared between
// a Set and its ready queue, since wake accounting happens on arbitrary
// goroutines that may outlive the Set.
type setStats struct {
	pushed       atomic.Uint64
	completed    atomic.Uint64
	canceled     atomic.Uint64
	polls        atomic.Uint64
	wakes        atomic.Uint64
	inconsistent atomic.Uint64
}

// Stats is a point-in-time snapshot of a Set's counters, as returned by
// [Set.Stats].
type Stats struct {
	// Pushed counts futures ever added to the set.
	Pushed uint64
	// Completed counts futures that resolved and had their value returned.
	Completed uint64
	// Canceled counts futures dropped by [Set.Clear] before resolving.
	Canceled uint64
	// Polls counts individual member polls, not [Set.PollNext] calls.
	Polls uint64
	// Wakes counts member wakes that claimed an enqueue; coalesced
	// duplicates are not counted.
	Wakes uint64
	// Inconsistent counts transient mid-insert queue states observed by
	// the poller, each of which forced a self-wakeup and retry.
	Inconsistent uint64
}

// Stats returns a snapshot of the set's counters.
//
// Thread Safety: Safe to call concurrently with member wakes. The
// counters are loaded individually, so a snapshot taken during concurrent
// activity may not be mutually consistent.
func (s *Set[T]) Stats() Stats {
	return Stats{
		Pushed:       s.stats.pushed.Load(),
		Completed:    s.stats.completed.Load(),
		Canceled:     s.stats.canceled.Load(),
		Polls:        s.stats.polls.Load(),
		Wakes:        s.stats.wakes.Load(),
		Inconsistent: s.stats.inconsistent.Load(),
	}
}
