// Package config holds the runtime configuration of the blackboard CLI and
// its layered loading through viper.
package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/viper"

	"github.com/hupe1980/blackboard/logging"
)

// EnvPrefix is the prefix of environment overrides, e.g. BLACKBOARD_LOG_LEVEL.
const EnvPrefix = "BLACKBOARD"

// Config is the full runtime configuration.
type Config struct {
	Log LogConfig `mapstructure:"log"`
	Run RunConfig `mapstructure:"run"`
}

// LogConfig configures structured diagnostics.
type LogConfig struct {
	Level     string `mapstructure:"level"`
	Format    string `mapstructure:"format"` // text or json
	AddSource bool   `mapstructure:"add_source"`
}

// RunConfig configures scenario execution.
type RunConfig struct {
	// Strict turns failed pipelines and unmet expectations into a failing
	// exit code.
	Strict bool `mapstructure:"strict"`
	// Dump prints the memory store before and after each run.
	Dump bool `mapstructure:"dump"`
	// SharedMemory reuses one store across all scenarios of an invocation.
	SharedMemory bool `mapstructure:"shared_memory"`
}

// NewDefaultConfig returns the built-in defaults.
func NewDefaultConfig() *Config {
	return &Config{
		Log: LogConfig{Level: "warn", Format: "text"},
		Run: RunConfig{Dump: true},
	}
}

// InitViper creates a viper instance with defaults registered, the optional
// config file read and environment variables bound.
//
// Config precedence (highest to lowest):
//  1. CLI flags (once bound with BindPFlag)
//  2. Environment variables (BLACKBOARD_LOG_LEVEL, BLACKBOARD_RUN_STRICT, ...)
//  3. Config file values
//  4. Defaults from NewDefaultConfig()
func InitViper(configFile string) (*viper.Viper, error) {
	v := viper.New()
	setViperDefaults(v)

	if configFile != "" {
		v.SetConfigFile(configFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("reading config: %w", err)
		}
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	return v, nil
}

func setViperDefaults(v *viper.Viper) {
	d := NewDefaultConfig()

	v.SetDefault("log.level", d.Log.Level)
	v.SetDefault("log.format", d.Log.Format)
	v.SetDefault("log.add_source", d.Log.AddSource)

	v.SetDefault("run.strict", d.Run.Strict)
	v.SetDefault("run.dump", d.Run.Dump)
	v.SetDefault("run.shared_memory", d.Run.SharedMemory)
}

// Load decodes v into a validated Config.
func Load(v *viper.Viper) (*Config, error) {
	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return nil, fmt.Errorf("decoding config: %w", err)
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return &c, nil
}

// Validate checks enumerated values.
func (c *Config) Validate() error {
	var errs []error
	if _, err := logging.ParseLevel(c.Log.Level); err != nil {
		errs = append(errs, err)
	}
	if c.Log.Format != "text" && c.Log.Format != "json" {
		errs = append(errs, fmt.Errorf("invalid log format %q: must be text or json", c.Log.Format))
	}
	return errors.Join(errs...)
}

// LoggerConfig converts the log section into a logging.LoggerConfig. Output
// is left for the caller to set.
func (c *Config) LoggerConfig() *logging.LoggerConfig {
	level, _ := logging.ParseLevel(c.Log.Level)
	return &logging.LoggerConfig{
		Level:     level,
		Format:    c.Log.Format,
		AddSource: c.Log.AddSource,
		Component: "blackboard",
	}
}
