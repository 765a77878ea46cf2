package platform

import "log/slog"

// options holds the internal configuration for the matchvault service.
type options struct {
	logger    *slog.Logger
	mustExist bool
	autoInit  bool
	noCache   bool
}

// Option defines a functional option for configuring matchvault.
type Option func(*options)

// defaultOptions returns the default configuration.
func defaultOptions() *options {
	return &options{}
}

// WithLogger sets the logger for the service.
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// WithMustExist ensures the store root must already exist.
func WithMustExist(must bool) Option {
	return func(o *options) {
		o.mustExist = must
	}
}

// WithAutoInit enables automatic creation of the store root. Without it
// the root is created lazily by the first write.
func WithAutoInit(auto bool) Option {
	return func(o *options) {
		o.autoInit = auto
	}
}

// WithListCache enables or disables the mtime-keyed list index.
// By default, the cache is enabled.
func WithListCache(enabled bool) Option {
	return func(o *options) {
		o.noCache = !enabled
	}
}
