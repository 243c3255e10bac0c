// Package config holds the run configuration: which files to clean and what
// counts as loose CSS inside them.
//
// With no config file, environment or flags the values reproduce the original
// cleanup run: seven pages under Frontend/, resolved from the project root one
// level above the directory that holds the executable.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"

	"github.com/jmylchreest/loosecss/pkg/cleaner/loosecss"
)

// EnvPrefix is the prefix for environment overrides, e.g. LOOSECSS_ROOT.
const EnvPrefix = "LOOSECSS"

// DefaultFiles is the list of pages the cleanup was written for.
var DefaultFiles = []string{
	"Frontend/precios.html",
	"Frontend/nomina.html",
	"Frontend/cartera.html",
	"Frontend/skus.html",
	"Frontend/templates.html",
	"Frontend/template-selector.html",
	"Frontend/cashflow.html",
}

// Config is the explicit form of what used to be hard-coded.
type Config struct {
	Root     string   `mapstructure:"root" validate:"required"`
	Files    []string `mapstructure:"files" validate:"required,min=1,dive,required"`
	Patterns []string `mapstructure:"patterns" validate:"required,min=1,dive,required"`
	Markers  []string `mapstructure:"markers" validate:"required,min=1,dive,required"`
	DryRun   bool     `mapstructure:"dry_run"`
	Report   string   `mapstructure:"report" validate:"omitempty,oneof=json jsonl yaml"`
}

// Default returns the configuration of the original cleanup.
func Default() *Config {
	cleaner := loosecss.DefaultConfig()
	return &Config{
		Root:     DefaultRoot(),
		Files:    append([]string(nil), DefaultFiles...),
		Patterns: cleaner.Patterns,
		Markers:  cleaner.Markers,
	}
}

// DefaultRoot is the parent of the directory containing the running binary,
// mirroring a tool installed under <project>/scripts. Falls back to ".".
func DefaultRoot() string {
	exe, err := os.Executable()
	if err != nil {
		return "."
	}
	if resolved, err := filepath.EvalSymlinks(exe); err == nil {
		exe = resolved
	}
	return filepath.Dir(filepath.Dir(exe))
}

// SetDefaults registers every key on v so that env and file values are
// picked up by Unmarshal.
func SetDefaults(v *viper.Viper) {
	d := Default()
	v.SetDefault("root", d.Root)
	v.SetDefault("files", d.Files)
	v.SetDefault("patterns", d.Patterns)
	v.SetDefault("markers", d.Markers)
	v.SetDefault("dry_run", false)
	v.SetDefault("report", "")
}

// Load builds a validated Config from v.
func Load(v *viper.Viper) (*Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decoding config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

var validate = validator.New()

// Validate checks the configuration and reports every violation at once.
func (c *Config) Validate() error {
	err := validate.Struct(c)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("validating config: %w", err)
	}

	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		msgs = append(msgs, describe(fe))
	}
	return fmt.Errorf("invalid config: %s", strings.Join(msgs, "; "))
}

func describe(fe validator.FieldError) string {
	field := strings.ToLower(fe.Namespace())
	field = strings.TrimPrefix(field, "config.")
	switch fe.Tag() {
	case "required":
		return field + " is required"
	case "min":
		return fmt.Sprintf("%s needs at least %s entry", field, fe.Param())
	case "oneof":
		return fmt.Sprintf("%s must be one of [%s], got %q", field, fe.Param(), fe.Value())
	default:
		return fmt.Sprintf("%s failed %q", field, fe.Tag())
	}
}

// CleanerConfig returns the detector settings for the loosecss cleaner.
func (c *Config) CleanerConfig() *loosecss.Config {
	return &loosecss.Config{
		Patterns: c.Patterns,
		Markers:  c.Markers,
	}
}
