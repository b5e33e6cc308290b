// Package config loads treecheck settings from .treecheck/config.yaml.
//
// Values are resolved in order: built-in defaults, the YAML file, then
// TREECHECK_* environment variables. The result is checked against the
// struct tags below before use.
package config

import (
	"bytes"
	stderrors "errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"reflect"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/felixgeelhaar/treecheck/internal/errors"
	"github.com/felixgeelhaar/treecheck/internal/structure"
)

const (
	// DefaultDir is the project-local directory holding treecheck files.
	DefaultDir = ".treecheck"
	// DefaultFile is the config file name inside DefaultDir.
	DefaultFile = "config.yaml"

	EnvLogLevel = "TREECHECK_LOG_LEVEL"
	EnvMinScore = "TREECHECK_MIN_SCORE"
)

// Config is the full treecheck configuration.
type Config struct {
	Rules     structure.Rules `yaml:"rules" json:"rules"`
	Gate      GateConfig      `yaml:"gate" json:"gate"`
	Log       LogConfig       `yaml:"log" json:"log"`
	Telemetry TelemetryConfig `yaml:"telemetry" json:"telemetry"`
}

// GateConfig controls when a validated tree is rejected. MaxNodes and
// MaxDepth bound input size before the engine runs; zero disables a limit.
type GateConfig struct {
	MinScore       int  `yaml:"min_score" json:"min_score" validate:"gte=0,lte=100"`
	FailOnWarnings bool `yaml:"fail_on_warnings" json:"fail_on_warnings"`
	MaxNodes       int  `yaml:"max_nodes" json:"max_nodes" validate:"gte=0"`
	MaxDepth       int  `yaml:"max_depth" json:"max_depth" validate:"gte=0"`
}

type LogConfig struct {
	Level  string `yaml:"level" json:"level" validate:"oneof=debug info warn error"`
	Format string `yaml:"format" json:"format" validate:"oneof=text json"`
}

type TelemetryConfig struct {
	Enabled  bool   `yaml:"enabled" json:"enabled"`
	Endpoint string `yaml:"endpoint,omitempty" json:"endpoint,omitempty" validate:"omitempty,hostname_port"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Rules: structure.DefaultRules(),
		Gate: GateConfig{
			MinScore: 0,
			MaxNodes: 10000,
			MaxDepth: 64,
		},
		Log: LogConfig{
			Level:  "info",
			Format: "text",
		},
	}
}

// DefaultPath returns the config location relative to the working directory.
func DefaultPath() string {
	return filepath.Join(DefaultDir, DefaultFile)
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	// Report fields by their YAML names so messages match the file.
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("yaml"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// Load reads the config at path. An empty path means DefaultPath, and a
// missing default file yields the defaults; a missing explicit path is an
// error.
func Load(path string) (Config, error) {
	explicit := path != ""
	if !explicit {
		path = DefaultPath()
	}

	cfg := Default()

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := decode(data, &cfg); err != nil {
			return Config{}, errors.Wrap(errors.ErrCodeConfigUnmarshal, fmt.Sprintf("failed to parse config: %s", path), err).
				WithSuggestion("Check the YAML syntax and key names")
		}
	case stderrors.Is(err, os.ErrNotExist) && !explicit:
		// defaults only
	case stderrors.Is(err, os.ErrNotExist):
		return Config{}, errors.New(errors.ErrCodeConfigNotFound, fmt.Sprintf("config file not found: %s", path)).
			WithSuggestion("Run 'treecheck config init' to create one")
	default:
		return Config{}, errors.Wrap(errors.ErrCodeFileReadFailed, fmt.Sprintf("failed to read config: %s", path), err)
	}

	if err := applyEnv(&cfg); err != nil {
		return Config{}, err
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, errors.NewConfigInvalidError(path, err)
	}
	return cfg, nil
}

// decode overlays data onto cfg, so keys absent from the file keep their
// defaults. Unknown keys are rejected.
func decode(data []byte, cfg *Config) error {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && err != io.EOF {
		return err
	}
	return nil
}

func applyEnv(cfg *Config) error {
	if v := os.Getenv(EnvLogLevel); v != "" {
		cfg.Log.Level = strings.ToLower(v)
	}
	if v := os.Getenv(EnvMinScore); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return errors.Wrap(errors.ErrCodeConfigInvalid, fmt.Sprintf("%s must be an integer, got %q", EnvMinScore, v), err)
		}
		cfg.Gate.MinScore = n
	}
	return nil
}

// Validate checks every field against its constraints and reports all
// violations at once.
func (c Config) Validate() error {
	err := validate.Struct(c)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !stderrors.As(err, &verrs) {
		return err
	}

	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		field := strings.TrimPrefix(fe.Namespace(), "Config.")
		if fe.Param() != "" {
			msgs = append(msgs, fmt.Sprintf("%s: failed %s=%s (got %v)", field, fe.Tag(), fe.Param(), fe.Value()))
		} else {
			msgs = append(msgs, fmt.Sprintf("%s: failed %s (got %v)", field, fe.Tag(), fe.Value()))
		}
	}
	return stderrors.New(strings.Join(msgs, "; "))
}

// Save writes cfg to path as YAML, creating parent directories.
func Save(path string, cfg Config) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return errors.Wrap(errors.ErrCodeDirectoryFailed, "failed to create config directory", err)
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return errors.Wrap(errors.ErrCodeConfigInvalid, "failed to marshal config", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return errors.Wrap(errors.ErrCodeFileWriteFailed, fmt.Sprintf("failed to write config: %s", path), err)
	}
	return nil
}
