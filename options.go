package gopaginate

import "go.uber.org/zap"

type options struct {
	logger *zap.Logger
	links  LinkBuilder
	filter FilterApplier
}

// Option configures a paginator.
type Option func(*options)

// WithLogger sets the logger. Defaults to zap.NewNop().
func WithLogger(logger *zap.Logger) Option {
	return func(o *options) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// WithLinkBuilder replaces the WindowedLinks link builder.
func WithLinkBuilder(links LinkBuilder) Option {
	return func(o *options) {
		if links != nil {
			o.links = links
		}
	}
}

// WithFilter replaces DefaultFilter. Ignored by OffsetPaginator.
func WithFilter(filter FilterApplier) Option {
	return func(o *options) {
		if filter != nil {
			o.filter = filter
		}
	}
}

func newOptions(opts []Option) options {
	o := options{
		logger: zap.NewNop(),
		links:  NewWindowedLinks(),
		filter: DefaultFilter{},
	}

	for _, opt := range opts {
		opt(&o)
	}

	return o
}
