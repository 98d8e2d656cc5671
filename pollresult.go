package futureset

// PollResult is the outcome of a single [Set.PollNext] call.
type PollResult int

const (
	// PollPending indicates no member was ready; the registered waker will
	// be invoked once one becomes ready.
	PollPending PollResult = iota
	// PollReady indicates a member resolved and its value was returned.
	PollReady
	// PollExhausted indicates the set holds no members; no further values
	// will be produced until more are pushed.
	PollExhausted
)

// String returns a human-readable representation of the result.
func (r PollResult) String() string {
	switch r {
	case PollPending:
		return "pending"
	case PollReady:
		return "ready"
	case PollExhausted:
		return "exhausted"
	default:
		return "unknown"
	}
}
