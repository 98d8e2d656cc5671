package futureset

import "sync"

// atomicWaker is a single-slot waker registration shared between the task
// polling a Set and the producers waking its members. register overwrites
// any previous registration; wake consumes it, so a registered waker is
// invoked at most once and each poll must re-register.
//
// The zero value is ready for use.
type atomicWaker struct {
	mu sync.Mutex
	w  Waker
}

// register records w as the waker to invoke on the next wake.
func (x *atomicWaker) register(w Waker) {
	x.mu.Lock()
	x.w = w
	x.mu.Unlock()
}

// wake invokes and clears the registered waker, if any. The waker runs
// outside the lock, so it may itself trigger registration without
// deadlocking.
//
// Thread Safety: Safe to call concurrently, including with register.
func (x *atomicWaker) wake() {
	x.mu.Lock()
	w := x.w
	x.w = nil
	x.mu.Unlock()
	if w != nil {
		w.Wake()
	}
}
