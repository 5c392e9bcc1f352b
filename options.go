// File: options.go
package troupe

import "go.uber.org/zap"

// Option configures a backend component (mailbox factory or spawner).
type Option func(*options)

type options struct {
	log *zap.Logger
}

func newOptions(opts []Option) *options {
	o := &options{log: zap.NewNop()}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// WithLogger routes backend diagnostics (dropped deliveries, recovered body
// panics) through the given logger. The default is a no-op logger.
func WithLogger(log *zap.Logger) Option {
	return func(o *options) {
		if log != nil {
			o.log = log
		}
	}
}
