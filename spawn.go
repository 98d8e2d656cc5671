package futureset

import (
	"context"
	"sync"
)

// Go runs fn on its own goroutine, immediately, and returns a Future
// resolving to fn's result. It bridges conventional blocking code into
// the poll model.
//
// The returned future implements [Canceler] by canceling the context
// passed to fn. A [Set] therefore signals cancellation to fn when the set
// is cleared, and releases the context promptly once the result has been
// consumed. A result produced after cancellation is discarded, but the
// goroutine itself runs until fn returns; fn must honor ctx for prompt
// shutdown.
//
// Providing a nil fn will cause a panic.
func Go[T any](fn func(ctx context.Context) T) Future[T] {
	if fn == nil {
		panic(`futureset: nil function`)
	}
	ctx, cancel := context.WithCancel(context.Background())
	x := &goFuture[T]{cancel: cancel}
	go func() {
		v := fn(ctx)
		x.mu.Lock()
		x.v = v
		x.done = true
		w := x.waker
		x.waker = nil
		x.mu.Unlock()
		if w != nil {
			w.Wake()
		}
	}()
	return x
}

// goFuture carries a goroutine's eventual result into the poll model via
// a single-slot waker, consumed on completion.
type goFuture[T any] struct {
	cancel context.CancelFunc
	mu     sync.Mutex
	waker  Waker
	v      T
	done   bool
}

// Poll implements Future.
func (x *goFuture[T]) Poll(cx *Context) (T, bool) {
	x.mu.Lock()
	if x.done {
		v := x.v
		x.mu.Unlock()
		return v, true
	}
	x.waker = cx.Waker()
	x.mu.Unlock()
	var zero T
	return zero, false
}

// Cancel implements Canceler.
func (x *goFuture[T]) Cancel() { x.cancel() }
