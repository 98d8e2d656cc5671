package futureset

import (
	"context"
	"io"
	"iter"
)

// Next drives the set until a member resolves, parking the calling
// goroutine between polls. It returns the resolved value, or io.EOF once
// no members remain, or ctx's error if ctx is done first.
//
// Next shares [Set.PollNext]'s exclusivity contract: only one goroutine
// at a time may drive the set.
//
// Providing a nil ctx will cause a panic.
func (s *Set[T]) Next(ctx context.Context) (T, error) {
	var zero T
	if ctx == nil {
		panic(`futureset: nil context`)
	}

	// guard context cancel - consistent behavior (avoid a poll if canceled)
	if err := ctx.Err(); err != nil {
		return zero, err
	}

	ready := make(chan struct{}, 1)
	cx := NewContext(WakerFunc(func() {
		select {
		case ready <- struct{}{}:
		default:
		}
	}))

	for {
		v, res := s.PollNext(cx)
		switch res {
		case PollReady:
			return v, nil
		case PollExhausted:
			return zero, io.EOF
		}

		select {
		case <-ready:
		case <-ctx.Done():
			return zero, ctx.Err()
		}
	}
}

// Results returns an iterator yielding each result as it completes,
// ending once the set is exhausted. A context error is yielded once, with
// the zero value, and ends the sequence; io.EOF itself is never yielded.
//
// Breaking out of the iteration leaves the set intact, and any remaining
// members can be driven by a later call.
func (s *Set[T]) Results(ctx context.Context) iter.Seq2[T, error] {
	return func(yield func(T, error) bool) {
		for {
			v, err := s.Next(ctx)
			if err == io.EOF {
				return
			}
			if err != nil {
				yield(v, err)
				return
			}
			if !yield(v, nil) {
				return
			}
		}
	}
}
