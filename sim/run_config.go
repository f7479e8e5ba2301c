package sim

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"

	"github.com/keepaway-sim/keepaway/sim/trace"
)

// RunConfig holds run configuration loadable from a YAML or TOML file.
// Zero values and nil pointers mean "not set in the file"; they do not
// override CLI defaults. An explicit rounds of 0 selects the policy's
// default round count, as --rounds 0 does.
type RunConfig struct {
	Notes      string `yaml:"notes" toml:"notes"`
	Policy     string `yaml:"policy" toml:"policy"`
	Rounds     *int   `yaml:"rounds" toml:"rounds"`
	Log        string `yaml:"log" toml:"log"`
	TraceLevel string `yaml:"trace_level" toml:"trace_level"`
	TraceOut   string `yaml:"trace_out" toml:"trace_out"`
	Format     string `yaml:"format" toml:"format"`
}

// LoadRunConfig reads a run configuration file. Files ending in .toml are
// decoded as TOML, everything else as YAML. Both decoders are strict:
// unrecognized keys (typos) are rejected. Relative notes and trace_out
// paths are resolved against the config file's directory.
func LoadRunConfig(path string) (*RunConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading run config: %w", err)
	}
	var cfg RunConfig
	if strings.EqualFold(filepath.Ext(path), ".toml") {
		md, err := toml.Decode(string(data), &cfg)
		if err != nil {
			return nil, fmt.Errorf("parsing run config: %w", err)
		}
		if undecoded := md.Undecoded(); len(undecoded) > 0 {
			return nil, fmt.Errorf("parsing run config: unknown keys %v", undecoded)
		}
	} else {
		decoder := yaml.NewDecoder(bytes.NewReader(data))
		decoder.KnownFields(true)
		if err := decoder.Decode(&cfg); err != nil {
			return nil, fmt.Errorf("parsing run config: %w", err)
		}
	}
	base := filepath.Dir(path)
	cfg.Notes = resolveRelative(base, cfg.Notes)
	cfg.TraceOut = resolveRelative(base, cfg.TraceOut)
	logrus.Debugf("Loaded run config from %s", path)
	return &cfg, nil
}

func resolveRelative(base, p string) string {
	if p == "" || filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(base, p)
}

// Validate checks that all names and ranges in the config are valid.
// Empty names are allowed; they fall back to CLI defaults.
func (c *RunConfig) Validate() error {
	if c.Policy != "" && !IsValidOverflowPolicy(c.Policy) {
		return fmt.Errorf("%w: unknown overflow policy %q", ErrInvalidConfig, c.Policy)
	}
	if c.Rounds != nil && *c.Rounds < 0 {
		return fmt.Errorf("%w: rounds must not be negative, got %d", ErrInvalidConfig, *c.Rounds)
	}
	if c.Log != "" {
		if _, err := logrus.ParseLevel(c.Log); err != nil {
			return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
		}
	}
	if !trace.IsValidTraceLevel(c.TraceLevel) {
		return fmt.Errorf("%w: unknown trace level %q", ErrInvalidConfig, c.TraceLevel)
	}
	if !ValidReportFormats[c.Format] {
		return fmt.Errorf("%w: unknown report format %q", ErrInvalidConfig, c.Format)
	}
	return nil
}
