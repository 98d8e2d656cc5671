package futureset

import "github.com/joeycumines/logiface"

// options holds configuration options for Set creation.
type options struct {
	logger *logiface.Logger[logiface.Event]
}

// Option configures a Set instance.
type Option interface {
	apply(*options)
}

// optionImpl implements Option.
type optionImpl struct {
	applyFunc func(*options)
}

func (x *optionImpl) apply(opts *options) { x.applyFunc(opts) }

// WithLogger configures structured logging of lifecycle events (pushes,
// clears, zombie handoffs). The logger may be nil, the default, which
// disables logging entirely. Concrete logger implementations are converted
// to the generalized form accepted here via [logiface.Logger.Logger].
func WithLogger(logger *logiface.Logger[logiface.Event]) Option {
	return &optionImpl{func(opts *options) {
		opts.logger = logger
	}}
}

// resolveOptions applies Option instances to options.
func resolveOptions(opts []Option) *options {
	cfg := new(options)
	for _, opt := range opts {
		if opt == nil {
			continue // nil options are simply skipped
		}
		opt.apply(cfg)
	}
	return cfg
}
