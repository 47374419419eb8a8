package domain

// LifecycleSelector opts a call site into the extra subscription lifecycle records.
type LifecycleSelector struct {
	Subscribe   bool `json:"subscribe" yaml:"subscribe" mapstructure:"subscribe"`
	Unsubscribe bool `json:"unsubscribe" yaml:"unsubscribe" mapstructure:"unsubscribe"`
	Finalize    bool `json:"finalize" yaml:"finalize" mapstructure:"finalize"`
}

// Any reports whether at least one lifecycle record is selected.
func (s LifecycleSelector) Any() bool {
	return s.Subscribe || s.Unsubscribe || s.Finalize
}

// Config is the canonical, resolved instrumentation configuration of one call site.
// It is passed by value: an instrumented stream keeps its own copy, so later
// changes by the caller never affect a live subscription.
type Config struct {
	CallerTag    string            `json:"caller_tag,omitempty" yaml:"caller_tag,omitempty" mapstructure:"caller_tag"`
	Verbose      bool              `json:"verbose" yaml:"verbose" mapstructure:"verbose"`
	Severity     Severity          `json:"severity" yaml:"severity" mapstructure:"severity"`
	Message      string            `json:"message" yaml:"message" mapstructure:"message"`
	CaptureTrace bool              `json:"capture_trace,omitempty" yaml:"capture_trace,omitempty" mapstructure:"capture_trace"`
	Selector     LifecycleSelector `json:"selector" yaml:"selector" mapstructure:"selector"`
}

// Validate checks the required fields.
func (c Config) Validate() error {
	if c.Severity == SeverityNone {
		return &ConfigError{Field: "severity", Err: ErrMissingSeverity}
	}
	if !c.Severity.ValidEvent() {
		return &ConfigError{Field: "severity", Err: ErrInvalidSeverity}
	}
	if c.Message == "" {
		return &ConfigError{Field: "message", Err: ErrMissingMessage}
	}
	return nil
}
