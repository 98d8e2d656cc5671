package futureset

type (
	// Waker schedules the task associated with the current poll to be run
	// again. Implementations must be safe for concurrent use from any
	// goroutine, and must tolerate calls after the relevant work has
	// already completed (such wakes are no-ops at worst).
	Waker interface {
		// Wake requests that the task be polled again.
		Wake()
	}

	// WakerFunc adapts a function to the Waker interface.
	WakerFunc func()

	// Context carries the Waker for an in-progress poll. The same Context
	// must not be retained beyond the poll call it was provided to; retain
	// the Waker instead, via [Context.Waker].
	Context struct {
		waker Waker
	}

	// Future models a poll-based asynchronous computation resolving to a
	// value of type T.
	//
	// Poll either returns (value, true), exactly once, when the
	// computation has resolved, or arranges for cx's Waker to be invoked
	// once progress is possible and returns (zero, false). Returning false
	// without retaining the Waker means the future may never be polled
	// again.
	//
	// A Future is polled by at most one goroutine at a time, and is never
	// polled again after returning true.
	Future[T any] interface {
		Poll(cx *Context) (T, bool)
	}

	// FutureFunc adapts a function to the Future interface.
	FutureFunc[T any] func(cx *Context) (T, bool)

	// Canceler may be implemented by a Future that owns background
	// resources, e.g. a goroutine or a timer. [Set] calls Cancel exactly
	// once per member, when the member is finalized, whether by resolving,
	// by [Set.Clear], or by cleanup after a panicking poll. Cancel may be
	// called concurrently with or after Poll, and implementations must be
	// idempotent.
	Canceler interface {
		Cancel()
	}
)

// Wake calls f.
func (f WakerFunc) Wake() { f() }

// NewContext returns a Context that polls will use to register wakeups.
// Providing a nil waker will cause a panic.
func NewContext(waker Waker) *Context {
	if waker == nil {
		panic(`futureset: nil waker`)
	}
	return &Context{waker: waker}
}

// Waker returns the waker for the current task. The result is safe to
// retain and to share between goroutines.
func (x *Context) Waker() Waker { return x.waker }

// Wake is shorthand for x.Waker().Wake().
func (x *Context) Wake() { x.waker.Wake() }

// Poll calls f.
func (f FutureFunc[T]) Poll(cx *Context) (T, bool) { return f(cx) }

// Ready returns a Future that resolves to v on its first poll.
func Ready[T any](v T) Future[T] {
	return &readyFuture[T]{v: v}
}

type readyFuture[T any] struct{ v T }

func (x *readyFuture[T]) Poll(*Context) (T, bool) { return x.v, true }

// PendingFor returns a Future that reports pending rounds times, waking
// itself each time, before resolving to v. It is primarily useful for
// exercising schedulers, where "rounds" corresponds to the number of times
// the future defers before completing.
func PendingFor[T any](rounds int, v T) Future[T] {
	return &pendingFuture[T]{v: v, rounds: rounds}
}

type pendingFuture[T any] struct {
	v      T
	rounds int
}

func (x *pendingFuture[T]) Poll(cx *Context) (T, bool) {
	if x.rounds > 0 {
		x.rounds--
		cx.Wake()
		var zero T
		return zero, false
	}
	return x.v, true
}
