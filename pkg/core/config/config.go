// ============================================================================
// cmdscript - Command Script Language
// ============================================================================
//
// Package:     config
// Description: TOML application configuration with defaults and discovery
// Author:      Mike Stoffels with Claude
// Created:     2026-10-17
// License:     MIT
// ============================================================================

package config

import (
	"bytes"
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"

	cserror "github.com/msto63/cmdscript/foundation/core/error"
	cslog "github.com/msto63/cmdscript/foundation/core/log"
)

// EnvConfigPath names the environment variable holding the config path
const EnvConfigPath = "CMDSCRIPT_CONFIG"

// Config holds the complete application configuration
type Config struct {
	General     GeneralConfig     `toml:"general"`
	Interpreter InterpreterConfig `toml:"interpreter"`
	Catalog     CatalogConfig     `toml:"catalog"`
	Console     ConsoleConfig     `toml:"console"`

	// path is the file the config was loaded from, empty for defaults
	path string
}

// GeneralConfig holds general application settings
type GeneralConfig struct {
	Name      string `toml:"name"`
	LogLevel  string `toml:"log_level"`
	LogFormat string `toml:"log_format"`
	LogFile   string `toml:"log_file"`
}

// InterpreterConfig holds interpreter settings
type InterpreterConfig struct {
	ContinueOnError bool     `toml:"continue_on_error"`
	StepDelay       Duration `toml:"step_delay"`
	MaxInputLength  int      `toml:"max_input_length"`
	Timeout         Duration `toml:"timeout"`
}

// CatalogConfig holds service catalog settings
type CatalogConfig struct {
	Dir           string   `toml:"dir"`
	Watch         bool     `toml:"watch"`
	Debounce      Duration `toml:"debounce"`
	CaseSensitive bool     `toml:"case_sensitive"`
}

// ConsoleConfig holds interactive console settings
type ConsoleConfig struct {
	Prompt      string `toml:"prompt"`
	HistorySize int    `toml:"history_size"`
}

// Duration wraps time.Duration for TOML parsing
type Duration struct {
	time.Duration
}

// UnmarshalText parses a duration string
func (d *Duration) UnmarshalText(text []byte) error {
	var err error
	d.Duration, err = time.ParseDuration(string(text))
	return err
}

// MarshalText formats the duration as a string
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.Duration.String()), nil
}

// Default returns a configuration with all defaults applied
func Default() *Config {
	cfg := &Config{}
	cfg.applyDefaults()
	return cfg
}

// Load loads configuration from a TOML file
func Load(path string) (*Config, error) {
	path = os.ExpandEnv(path)

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil, cserror.Newf("config file not found: %s", path).
			WithCode(cserror.CodeMissingConfig).
			WithOperation("config.Load")
	}

	var cfg Config
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return nil, cserror.Wrap(err, "failed to parse config").
			WithCode(cserror.CodeInvalidConfig).
			WithOperation("config.Load").
			WithDetail("path", path)
	}

	cfg.applyDefaults()
	cfg.expandEnvVars()
	cfg.path = path

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// LoadFromEnv loads configuration from CMDSCRIPT_CONFIG or the default
// locations. Without any config file the defaults are returned.
func LoadFromEnv() (*Config, error) {
	if path := os.Getenv(EnvConfigPath); path != "" {
		return Load(path)
	}

	for _, p := range DefaultPaths() {
		if _, err := os.Stat(p); err == nil {
			return Load(p)
		}
	}
	return Default(), nil
}

// DefaultPaths returns the locations searched when no path is given
func DefaultPaths() []string {
	return []string{
		"./configs/cmdscript.toml",
		"./cmdscript.toml",
		filepath.Join(os.Getenv("HOME"), ".config/cmdscript/config.toml"),
	}
}

// Path returns the file the config was loaded from
func (c *Config) Path() string {
	return c.path
}

// applyDefaults sets default values for missing configuration
func (c *Config) applyDefaults() {
	// General
	if c.General.Name == "" {
		c.General.Name = "cmdscript"
	}
	if c.General.LogLevel == "" {
		c.General.LogLevel = "info"
	}
	if c.General.LogFormat == "" {
		c.General.LogFormat = "text"
	}

	// Interpreter
	if c.Interpreter.MaxInputLength == 0 {
		c.Interpreter.MaxInputLength = 16384
	}
	if c.Interpreter.Timeout.Duration == 0 {
		c.Interpreter.Timeout.Duration = 5 * time.Minute
	}

	// Catalog
	if c.Catalog.Dir == "" {
		c.Catalog.Dir = "./catalog"
	}
	if c.Catalog.Debounce.Duration == 0 {
		c.Catalog.Debounce.Duration = 500 * time.Millisecond
	}

	// Console
	if c.Console.Prompt == "" {
		c.Console.Prompt = "> "
	}
	if c.Console.HistorySize == 0 {
		c.Console.HistorySize = 100
	}
}

// expandEnvVars expands environment variables in path values
func (c *Config) expandEnvVars() {
	c.Catalog.Dir = os.ExpandEnv(c.Catalog.Dir)
	c.General.LogFile = os.ExpandEnv(c.General.LogFile)
}

// Validate checks values that defaults cannot repair
func (c *Config) Validate() error {
	invalid := func(field string, value interface{}) error {
		return cserror.Newf("invalid value for %s: %v", field, value).
			WithCode(cserror.CodeInvalidConfig).
			WithOperation("config.Validate").
			WithDetail("field", field)
	}

	if _, err := cslog.ParseLevel(c.General.LogLevel); err != nil {
		return invalid("general.log_level", c.General.LogLevel)
	}
	if _, err := cslog.ParseFormat(c.General.LogFormat); err != nil {
		return invalid("general.log_format", c.General.LogFormat)
	}
	if c.Interpreter.StepDelay.Duration < 0 {
		return invalid("interpreter.step_delay", c.Interpreter.StepDelay)
	}
	if c.Interpreter.MaxInputLength < 0 {
		return invalid("interpreter.max_input_length", c.Interpreter.MaxInputLength)
	}
	if c.Console.HistorySize < 0 {
		return invalid("console.history_size", c.Console.HistorySize)
	}
	return nil
}

// Encode writes the configuration as TOML
func (c *Config) Encode() (string, error) {
	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(c); err != nil {
		return "", cserror.Wrap(err, "failed to encode config").
			WithCode(cserror.CodeInternal).
			WithOperation("config.Encode")
	}
	return buf.String(), nil
}
