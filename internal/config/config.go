// SPDX-License-Identifier: MIT
// Package config resolves pcawalk settings from defaults, an optional YAML
// file, PCAWALK_* environment variables and command-line flags, in
// increasing order of precedence.
package config

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/katalvlaran/lvpca/internal/logging"
	"github.com/katalvlaran/lvpca/pca"
	"github.com/katalvlaran/lvpca/walkthrough"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// EnvPrefix is prepended to every environment variable, e.g. PCAWALK_LOG_LEVEL.
const EnvPrefix = "PCAWALK"

// ErrInvalid wraps every validation failure.
var ErrInvalid = errors.New("config: invalid value")

// Log configures the slog handler.
type Log struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// Config is the resolved configuration.
type Config struct {
	Solver      string  `mapstructure:"solver"`
	Tolerance   float64 `mapstructure:"tolerance"`
	Components  int     `mapstructure:"components"`
	Whiten      bool    `mapstructure:"whiten"`
	Standardize bool    `mapstructure:"standardize"`
	Data        string  `mapstructure:"data"` // empty means the built-in example
	Output      string  `mapstructure:"output"`
	Precision   int     `mapstructure:"precision"`
	Color       bool    `mapstructure:"color"`
	Log         Log     `mapstructure:"log"`
}

// Default returns the built-in settings.
func Default() Config {
	return Config{
		Solver:    pca.SolverLibrary.String(),
		Tolerance: walkthrough.DefaultTolerance,
		Output:    walkthrough.FormatText.String(),
		Precision: walkthrough.DefaultPrecision,
		Log:       Log{Level: "warn", Format: "text"},
	}
}

// flagKeys maps flag names to configuration keys where they differ.
var flagKeys = map[string]string{
	"log-level":  "log.level",
	"log-format": "log.format",
}

// New returns a viper instance with defaults and environment binding in place.
func New() *viper.Viper {
	v := viper.New()
	d := Default()
	v.SetDefault("solver", d.Solver)
	v.SetDefault("tolerance", d.Tolerance)
	v.SetDefault("components", d.Components)
	v.SetDefault("whiten", d.Whiten)
	v.SetDefault("standardize", d.Standardize)
	v.SetDefault("data", d.Data)
	v.SetDefault("output", d.Output)
	v.SetDefault("precision", d.Precision)
	v.SetDefault("color", d.Color)
	v.SetDefault("log.level", d.Log.Level)
	v.SetDefault("log.format", d.Log.Format)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	return v
}

// BindFlags binds every flag in fs whose name matches a configuration key.
func BindFlags(v *viper.Viper, fs *pflag.FlagSet) error {
	var err error
	fs.VisitAll(func(f *pflag.Flag) {
		if err != nil {
			return
		}
		key := f.Name
		if k, ok := flagKeys[f.Name]; ok {
			key = k
		}
		if !isKnown(v, key) {
			return
		}
		err = v.BindPFlag(key, f)
	})
	return err
}

func isKnown(v *viper.Viper, key string) bool {
	for _, k := range v.AllKeys() {
		if k == key {
			return true
		}
	}
	return false
}

// Load reads the optional config file at path, unmarshals and validates.
func Load(v *viper.Viper, path string) (Config, error) {
	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("config: read %s: %w", path, err)
		}
	}

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return Config{}, fmt.Errorf("config: unmarshal: %w", err)
	}
	if err := c.Validate(); err != nil {
		return Config{}, err
	}

	return c, nil
}

// Validate checks every field that has a restricted domain.
func (c Config) Validate() error {
	if _, err := pca.ParseSolver(c.Solver); err != nil {
		return fmt.Errorf("%w: solver: %v", ErrInvalid, err)
	}
	if !(c.Tolerance > 0) || math.IsInf(c.Tolerance, 0) {
		return fmt.Errorf("%w: tolerance must be finite and > 0, got %v", ErrInvalid, c.Tolerance)
	}
	if c.Components < 0 {
		return fmt.Errorf("%w: components must be >= 0, got %d", ErrInvalid, c.Components)
	}
	if _, err := walkthrough.ParseRenderFormat(c.Output); err != nil {
		return fmt.Errorf("%w: output: %v", ErrInvalid, err)
	}
	if c.Precision < 1 || c.Precision > 15 {
		return fmt.Errorf("%w: precision must be in [1, 15], got %d", ErrInvalid, c.Precision)
	}
	if _, err := logging.ParseLevel(c.Log.Level); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	switch strings.ToLower(c.Log.Format) {
	case "text", "json":
	default:
		return fmt.Errorf("%w: log.format must be text or json, got %q", ErrInvalid, c.Log.Format)
	}

	return nil
}

// SolverValue returns the parsed solver; Validate guarantees success.
func (c Config) SolverValue() pca.Solver {
	s, _ := pca.ParseSolver(c.Solver)
	return s
}

// OutputFormat returns the parsed render format; Validate guarantees success.
func (c Config) OutputFormat() walkthrough.RenderFormat {
	f, _ := walkthrough.ParseRenderFormat(c.Output)
	return f
}

// PCAOptions translates the model settings into pca options.
func (c Config) PCAOptions() []pca.Option {
	opts := []pca.Option{
		pca.WithSolver(c.SolverValue()),
		pca.WithComponents(c.Components),
	}
	if c.Whiten {
		opts = append(opts, pca.WithWhiten())
	}
	if c.Standardize {
		opts = append(opts, pca.WithStandardize())
	}
	return opts
}

// WalkthroughOptions translates the check settings into walkthrough options.
func (c Config) WalkthroughOptions() []walkthrough.Option {
	return []walkthrough.Option{
		walkthrough.WithSolver(c.SolverValue()),
		walkthrough.WithTolerance(c.Tolerance),
	}
}
