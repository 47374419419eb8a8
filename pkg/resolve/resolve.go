package resolve

import (
	"github.com/aretw0/sonda/pkg/domain"
)

// Option customizes a Config during resolution.
type Option func(*domain.Config)

// WithCallerTag sets the caller tag prefix.
func WithCallerTag(tag string) Option {
	return func(c *domain.Config) {
		c.CallerTag = tag
	}
}

// WithVerbose sets the per-call-site verbose flag (default true).
func WithVerbose(verbose bool) Option {
	return func(c *domain.Config) {
		c.Verbose = verbose
	}
}

// WithStackTrace captures a stack trace on every Next and Error record.
func WithStackTrace() Option {
	return func(c *domain.Config) {
		c.CaptureTrace = true
	}
}

// WithSelector replaces the lifecycle selector.
func WithSelector(sel domain.LifecycleSelector) Option {
	return func(c *domain.Config) {
		c.Selector = sel
	}
}

// OnSubscribe selects the Subscribed record.
func OnSubscribe() Option {
	return func(c *domain.Config) {
		c.Selector.Subscribe = true
	}
}

// OnUnsubscribe selects the Unsubscribed record.
func OnUnsubscribe() Option {
	return func(c *domain.Config) {
		c.Selector.Unsubscribe = true
	}
}

// OnFinalize selects the Finalized record.
func OnFinalize() Option {
	return func(c *domain.Config) {
		c.Selector.Finalize = true
	}
}

func defaults() domain.Config {
	return domain.Config{Verbose: true}
}

// New resolves a configuration from the required severity and message.
func New(sev domain.Severity, message string, opts ...Option) (domain.Config, error) {
	cfg := defaults()
	cfg.Severity = sev
	cfg.Message = message

	for _, opt := range opts {
		opt(&cfg)
	}

	if err := cfg.Validate(); err != nil {
		return domain.Config{}, err
	}
	return cfg, nil
}

// MustNew is like New but panics on a configuration error.
func MustNew(sev domain.Severity, message string, opts ...Option) domain.Config {
	cfg, err := New(sev, message, opts...)
	if err != nil {
		panic(err)
	}
	return cfg
}

// TaggedVerbose resolves the "caller tag, verbose, severity, message" call shape.
func TaggedVerbose(tag string, verbose bool, sev domain.Severity, message string, opts ...Option) (domain.Config, error) {
	return New(sev, message, prepend(opts, WithCallerTag(tag), WithVerbose(verbose))...)
}

// Tagged resolves the "caller tag, severity, message" call shape.
func Tagged(tag string, sev domain.Severity, message string, opts ...Option) (domain.Config, error) {
	return New(sev, message, prepend(opts, WithCallerTag(tag))...)
}

// Verbose resolves the "verbose, severity, message" call shape.
func Verbose(verbose bool, sev domain.Severity, message string, opts ...Option) (domain.Config, error) {
	return New(sev, message, prepend(opts, WithVerbose(verbose))...)
}

// prepend puts the positional options first so explicit options still win.
func prepend(opts []Option, first ...Option) []Option {
	return append(first, opts...)
}
