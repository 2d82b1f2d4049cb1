// Package config loads errsum generation settings.
package config

import (
	"encoding"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"gopkg.in/yaml.v3"
)

// DefaultPath is looked up in the working directory when no config path is
// given explicitly. Its absence is not an error.
const DefaultPath = ".errsum.yaml"

// DefaultDirective is the tool prefix of the directive comment,
// //errsum:errors by default.
const DefaultDirective = "errsum"

// Mode describes how malformed directive arguments are treated.
type Mode int

const (
	_ Mode = iota

	// ModeLenient drops malformed arguments silently.
	ModeLenient

	// ModeStrict fails generation on the first malformed argument.
	ModeStrict
)

func (m Mode) String() string {
	v, err := m.MarshalText()
	if err != nil {
		return fmt.Sprintf("invalid(%d)", m)
	}

	return string(v)
}

var _ encoding.TextUnmarshaler = (*Mode)(nil)

func (m *Mode) UnmarshalText(b []byte) error {
	switch string(b) {
	case "lenient":
		*m = ModeLenient
		return nil
	case "strict":
		*m = ModeStrict
		return nil
	default:
		return fmt.Errorf("unknown mode %q", b)
	}
}

// UnmarshalYAML delegates to UnmarshalText: yaml.v3 does not consult
// encoding.TextUnmarshaler on its own.
func (m *Mode) UnmarshalYAML(value *yaml.Node) error {
	var s string
	if err := value.Decode(&s); err != nil {
		return err
	}

	return m.UnmarshalText([]byte(s))
}

func (m Mode) MarshalText() ([]byte, error) {
	switch m {
	case ModeLenient:
		return []byte("lenient"), nil
	case ModeStrict:
		return []byte("strict"), nil
	default:
		return nil, fmt.Errorf("cannot marshal invalid Mode(%d)", m)
	}
}

// Config controls generation behavior.
type Config struct {
	// Mode selects lenient or strict treatment of malformed directive
	// arguments. Lenient is the default.
	Mode Mode `yaml:"mode"`

	// CheckCollisions enables a pre-flight diagnostic when two declared
	// kinds resolve to the same variant name. Off by default: collisions
	// are left for the compiler of the generated code to report.
	CheckCollisions bool `yaml:"check-collisions"`

	// Directive overrides the tool prefix of the directive comment.
	Directive string `yaml:"directive"`
}

// Default returns the configuration used when no file is present.
func Default() Config {
	return Config{
		Mode:      ModeLenient,
		Directive: DefaultDirective,
	}
}

// Load reads the YAML config at path. A missing file at the default path
// yields the defaults; a missing file at an explicitly requested path is an
// error.
func Load(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) && path == DefaultPath {
			return cfg, nil
		}

		return cfg, fmt.Errorf("read config: %w", err)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}

	if cfg.Directive == "" {
		cfg.Directive = DefaultDirective
	}
	if cfg.Mode == 0 {
		cfg.Mode = ModeLenient
	}

	return cfg, nil
}
