package leveling

import "log/slog"

// DefaultMaxLevel is the highest level number propagation may produce.
const DefaultMaxLevel = 20

// Option configures Compute.
type Option func(*options)

type options struct {
	maxLevel   int
	cycleCheck bool
	logger     *slog.Logger
}

func defaultOptions() options {
	return options{
		maxLevel: DefaultMaxLevel,
		logger:   slog.New(slog.DiscardHandler),
	}
}

// WithMaxLevel overrides the level ceiling. Values below 1 keep the default.
func WithMaxLevel(n int) Option {
	return func(o *options) {
		if n >= 1 {
			o.maxLevel = n
		}
	}
}

// WithCycleCheck enables strict mode: Compute fails with
// ErrCircularDependency when the prerequisites contain a cycle and with
// ErrLevelCeilingReached when propagation was truncated.
func WithCycleCheck() Option {
	return func(o *options) {
		o.cycleCheck = true
	}
}

// WithLogger sets the logger used for debug output of both phases.
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		if logger != nil {
			o.logger = logger
		}
	}
}
