package futureset

import (
	"bytes"
	"strings"
	"testing"

	"github.com/joeycumines/logiface"
	"github.com/joeycumines/stumpy"
)

func TestNew_nilOptionsSkipped(t *testing.T) {
	s := New[int](nil, WithLogger(nil), nil)
	s.Push(Ready(1))

	cx := NewContext(new(recordWaker))
	if v, res := s.PollNext(cx); res != PollReady || v != 1 {
		t.Fatalf("PollNext = %v, %v, want 1, ready", v, res)
	}
}

func TestWithLogger_lifecycleEvents(t *testing.T) {
	var buf bytes.Buffer
	logger := stumpy.L.New(
		stumpy.L.WithStumpy(stumpy.WithWriter(&buf), stumpy.WithTimeField(``)),
		stumpy.L.WithLevel(logiface.LevelTrace),
	)

	s := New[int](WithLogger(logger.Logger()))
	s.Push(new(manualFuture[int]))
	s.Clear()

	out := buf.String()
	for _, want := range []string{
		`"msg":"push"`,
		`"len":1`,
		// The member was still enqueued from the push when cleared.
		`"msg":"released enqueued member; queue inherits zombie"`,
		`"msg":"clear"`,
		`"cleared":1`,
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %s:\n%s", want, out)
		}
	}
}

func TestWithLogger_levelFiltered(t *testing.T) {
	var buf bytes.Buffer
	logger := stumpy.L.New(
		stumpy.L.WithStumpy(stumpy.WithWriter(&buf), stumpy.WithTimeField(``)),
		stumpy.L.WithLevel(logiface.LevelInformational),
	)

	s := New[int](WithLogger(logger.Logger()))
	s.Push(Ready(1))

	// Push logs at trace; an info-level logger must stay silent.
	if buf.Len() != 0 {
		t.Errorf("unexpected output: %s", buf.String())
	}
}
