// Package config loads the process-wide instrumentation settings from a file
// and the environment.
package config

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"github.com/aretw0/sonda/pkg/domain"
	"github.com/aretw0/sonda/pkg/gate"
	"github.com/aretw0/sonda/pkg/resolve"
)

// Environment variables overriding file values.
const (
	EnvThreshold  = "SONDA_THRESHOLD"
	EnvEnabled    = "SONDA_ENABLED"
	EnvCallerTags = "SONDA_CALLER_TAGS"
	EnvDevMode    = "SONDA_DEV_MODE"
)

// Log configures the application logger.
type Log struct {
	Level  string `yaml:"level" json:"level" toml:"level"`
	Format string `yaml:"format" json:"format" toml:"format"` // auto, text or json
	// Sink names the registered sink records are written to (see sink.Get).
	Sink string `yaml:"sink" json:"sink" toml:"sink"`
}

// Admin configures the admin HTTP surface.
type Admin struct {
	Addr string `yaml:"addr" json:"addr" toml:"addr"`
}

// Redis configures the pub/sub source used by the demo.
type Redis struct {
	Addr    string `yaml:"addr" json:"addr" toml:"addr"`
	Channel string `yaml:"channel" json:"channel" toml:"channel"`
}

// Settings is the full configuration file.
type Settings struct {
	Threshold  string `yaml:"threshold" json:"threshold" toml:"threshold"`
	Enabled    bool   `yaml:"enabled" json:"enabled" toml:"enabled"`
	CallerTags bool   `yaml:"caller_tags" json:"caller_tags" toml:"caller_tags"`
	DevMode    bool   `yaml:"dev_mode" json:"dev_mode" toml:"dev_mode"`

	Log   Log   `yaml:"log" json:"log" toml:"log"`
	Admin Admin `yaml:"admin" json:"admin" toml:"admin"`
	Redis Redis `yaml:"redis" json:"redis" toml:"redis"`

	// Probes holds named call-site profiles, resolved with resolve.Decode.
	Probes map[string]map[string]any `yaml:"probes" json:"probes" toml:"probes"`
}

// Default returns the settings used when no file is present.
func Default() Settings {
	return Settings{
		Threshold:  domain.SeverityNone.String(),
		Enabled:    true,
		CallerTags: true,
		DevMode:    true,
		Log:        Log{Level: "info", Format: "auto", Sink: "slog"},
		Admin:      Admin{Addr: "127.0.0.1:9464"},
		Redis:      Redis{Addr: "127.0.0.1:6379", Channel: "sonda"},
	}
}

// Load reads settings from path, chosen by extension (.yaml, .yml, .json or .toml).
// A missing file yields the defaults. Environment overrides are applied last.
func Load(path string) (Settings, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case errors.Is(err, fs.ErrNotExist):
		case err != nil:
			return Settings{}, fmt.Errorf("failed to read config: %w", err)
		default:
			if err := decode(path, data, &cfg); err != nil {
				return Settings{}, err
			}
		}
	}

	if err := cfg.applyEnv(os.LookupEnv); err != nil {
		return Settings{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Settings{}, err
	}
	return cfg, nil
}

func decode(path string, data []byte, cfg *Settings) error {
	ext := strings.ToLower(filepath.Ext(path))
	switch ext {
	case ".json":
		if err := json.Unmarshal(data, cfg); err != nil {
			return fmt.Errorf("failed to parse %s: %w", filepath.Base(path), err)
		}
	case ".toml":
		dec := toml.NewDecoder(bytes.NewReader(data))
		if err := dec.Decode(cfg); err != nil {
			return fmt.Errorf("failed to parse %s: %w", filepath.Base(path), err)
		}
	case ".yaml", ".yml", "":
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return fmt.Errorf("failed to parse %s: %w", filepath.Base(path), err)
		}
	default:
		return fmt.Errorf("unsupported config format %q", ext)
	}
	return nil
}

func (s *Settings) applyEnv(lookup func(string) (string, bool)) error {
	if v, ok := lookup(EnvThreshold); ok {
		s.Threshold = v
	}
	for _, b := range []struct {
		name string
		dst  *bool
	}{
		{EnvEnabled, &s.Enabled},
		{EnvCallerTags, &s.CallerTags},
		{EnvDevMode, &s.DevMode},
	} {
		v, ok := lookup(b.name)
		if !ok {
			continue
		}
		parsed, err := strconv.ParseBool(strings.TrimSpace(v))
		if err != nil {
			return fmt.Errorf("invalid %s: %w", b.name, err)
		}
		*b.dst = parsed
	}
	return nil
}

// Validate checks the threshold and every probe profile.
func (s Settings) Validate() error {
	if _, err := s.Severity(); err != nil {
		return err
	}
	_, err := s.ResolveProbes()
	return err
}

// Severity parses the configured threshold.
func (s Settings) Severity() (domain.Severity, error) {
	sev, err := domain.ParseSeverity(s.Threshold)
	if err != nil {
		return domain.SeverityNone, &domain.ConfigError{Field: "threshold", Err: err}
	}
	return sev, nil
}

// Apply pushes the process-wide values into g.
func (s Settings) Apply(g *gate.Gate) error {
	sev, err := s.Severity()
	if err != nil {
		return err
	}
	g.SetThreshold(sev)
	g.SetEnabled(s.Enabled)
	g.SetCallerTagsEnabled(s.CallerTags)
	dev := s.DevMode
	g.SetDevMode(func() bool { return dev })
	return nil
}

// ResolveProbes decodes every probe profile.
func (s Settings) ResolveProbes() (map[string]domain.Config, error) {
	names := make([]string, 0, len(s.Probes))
	for name := range s.Probes {
		names = append(names, name)
	}
	sort.Strings(names)

	out := make(map[string]domain.Config, len(names))
	for _, name := range names {
		cfg, err := resolveProbe(name, s.Probes[name])
		if err != nil {
			return nil, err
		}
		out[name] = cfg
	}
	return out, nil
}

// Probe returns the named profile.
func (s Settings) Probe(name string) (domain.Config, error) {
	raw, ok := s.Probes[name]
	if !ok {
		return domain.Config{}, fmt.Errorf("probe %q not configured", name)
	}
	return resolveProbe(name, raw)
}

// resolveProbe defaults the caller tag to the profile name.
func resolveProbe(name string, raw map[string]any) (domain.Config, error) {
	cfg, err := resolve.Decode(raw)
	if err != nil {
		return domain.Config{}, fmt.Errorf("probe %q: %w", name, err)
	}
	if cfg.CallerTag == "" {
		cfg.CallerTag = name
	}
	return cfg, nil
}
