package resolve

import (
	"fmt"

	"github.com/mitchellh/mapstructure"

	"github.com/aretw0/sonda/pkg/domain"
)

// Decode resolves a configuration from a loosely typed map, as found in
// settings files. Unknown keys are rejected. Severity may be a name or an ordinal.
func Decode(raw map[string]any) (domain.Config, error) {
	rawSev, ok := raw["severity"]
	if !ok {
		return domain.Config{}, &domain.ConfigError{Field: "severity", Err: domain.ErrMissingSeverity}
	}
	if _, ok := raw["message"]; !ok {
		return domain.Config{}, &domain.ConfigError{Field: "message", Err: domain.ErrMissingMessage}
	}

	sev, err := decodeSeverity(rawSev)
	if err != nil {
		return domain.Config{}, &domain.ConfigError{Field: "severity", Err: err}
	}

	rest := make(map[string]any, len(raw)-1)
	for k, v := range raw {
		if k != "severity" {
			rest[k] = v
		}
	}

	cfg := defaults()
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		ErrorUnused: true,
		Result:      &cfg,
	})
	if err != nil {
		return domain.Config{}, fmt.Errorf("failed to build config decoder: %w", err)
	}
	if err := decoder.Decode(rest); err != nil {
		return domain.Config{}, &domain.ConfigError{Field: "decode", Err: err}
	}

	cfg.Severity = sev
	if err := cfg.Validate(); err != nil {
		return domain.Config{}, err
	}
	return cfg, nil
}

func decodeSeverity(v any) (domain.Severity, error) {
	var sev domain.Severity
	switch s := v.(type) {
	case domain.Severity:
		sev = s
	case string:
		parsed, err := domain.ParseSeverity(s)
		if err != nil {
			return domain.SeverityNone, err
		}
		sev = parsed
	case int:
		sev = domain.Severity(s)
	case int64:
		sev = domain.Severity(s)
	case uint64:
		sev = domain.Severity(s)
	case float64:
		if s != float64(int(s)) {
			return domain.SeverityNone, fmt.Errorf("%w: %v", domain.ErrInvalidSeverity, s)
		}
		sev = domain.Severity(int(s))
	default:
		return domain.SeverityNone, fmt.Errorf("%w: unsupported type %T", domain.ErrInvalidSeverity, v)
	}

	// NONE is a threshold, not an event severity.
	if !sev.ValidEvent() {
		return domain.SeverityNone, fmt.Errorf("%w: %s", domain.ErrInvalidSeverity, sev)
	}
	return sev, nil
}
