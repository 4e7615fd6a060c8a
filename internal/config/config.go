// Package config loads the configuration of the treapcheck soak runner.
package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// Sentinel validation errors.
var (
	ErrInvalidMode        = errors.New("check mode must be positional or sorted")
	ErrInvalidOps         = errors.New("check ops must be positive")
	ErrInvalidValueRange  = errors.New("check value range must be positive")
	ErrInvalidVerifyEvery = errors.New("check verify_every must be positive")
	ErrInvalidLogFormat   = errors.New("logging format must be text or json")
	ErrInvalidLogLevel    = errors.New("unknown logging level")
)

// Check modes.
const (
	ModePositional = "positional"
	ModeSorted     = "sorted"
)

// Default configuration values.
const (
	defaultOps         = 100000
	defaultValueRange  = 1000
	defaultVerifyEvery = 1000
	defaultSeed        = "treapcheck"
	envPrefix          = "TREAPCHECK"
)

// Config holds all configuration of treapcheck.
type Config struct {
	Check   CheckConfig   `mapstructure:"check"`
	Logging LoggingConfig `mapstructure:"logging"`
}

// CheckConfig describes one soak workload.
type CheckConfig struct {
	Mode        string `mapstructure:"mode"`
	Seed        string `mapstructure:"seed"`
	Ops         int    `mapstructure:"ops"`
	ValueRange  int64  `mapstructure:"value_range"`
	VerifyEvery int    `mapstructure:"verify_every"`
	Hint        uint32 `mapstructure:"hint"`
}

// LoggingConfig holds logging-specific configuration.
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// Load configuration from defaults, an optional file, TREAPCHECK_* environment variables and
// flags, in increasing order of precedence. flags may be nil; a flag named like a key with dots
// replaced by dashes overrides that key (check.value_range is --value-range, check.ops is --ops).
func Load(configPath string, flags *pflag.FlagSet) (*Config, error) {
	viperCfg := viper.New()

	setDefaults(viperCfg)

	if configPath != "" {
		viperCfg.SetConfigFile(configPath)
	} else {
		viperCfg.SetConfigName("treapcheck")
		viperCfg.SetConfigType("yaml")
		viperCfg.AddConfigPath(".")
	}

	viperCfg.SetEnvPrefix(envPrefix)
	viperCfg.AutomaticEnv()
	viperCfg.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if flags != nil {
		bindErr := bindFlags(viperCfg, flags)
		if bindErr != nil {
			return nil, bindErr
		}
	}

	readErr := viperCfg.ReadInConfig()
	if readErr != nil {
		var notFoundErr viper.ConfigFileNotFoundError
		if !errors.As(readErr, &notFoundErr) {
			return nil, fmt.Errorf("failed to read config file: %w", readErr)
		}
	}

	var config Config

	unmarshalErr := viperCfg.Unmarshal(&config)
	if unmarshalErr != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", unmarshalErr)
	}

	validateErr := validateConfig(&config)
	if validateErr != nil {
		return nil, fmt.Errorf("invalid configuration: %w", validateErr)
	}

	return &config, nil
}

// setDefaults sets default configuration values.
func setDefaults(viperCfg *viper.Viper) {
	viperCfg.SetDefault("check.mode", ModePositional)
	viperCfg.SetDefault("check.seed", defaultSeed)
	viperCfg.SetDefault("check.ops", defaultOps)
	viperCfg.SetDefault("check.value_range", defaultValueRange)
	viperCfg.SetDefault("check.verify_every", defaultVerifyEvery)
	viperCfg.SetDefault("check.hint", 0)

	viperCfg.SetDefault("logging.level", "info")
	viperCfg.SetDefault("logging.format", "text")
}

var boundKeys = []string{
	"check.mode", "check.seed", "check.ops", "check.value_range", "check.verify_every", "check.hint",
	"logging.level", "logging.format",
}

func bindFlags(viperCfg *viper.Viper, flags *pflag.FlagSet) error {
	for _, key := range boundKeys {
		name := key[strings.IndexByte(key, '.')+1:]
		if key == "logging.level" || key == "logging.format" {
			name = "log-" + name
		}

		flag := flags.Lookup(strings.ReplaceAll(name, "_", "-"))
		if flag == nil {
			continue
		}

		bindErr := viperCfg.BindPFlag(key, flag)
		if bindErr != nil {
			return fmt.Errorf("failed to bind flag %s: %w", flag.Name, bindErr)
		}
	}

	return nil
}

// Validate the workload parameters.
func (c CheckConfig) Validate() error {
	if c.Mode != ModePositional && c.Mode != ModeSorted {
		return fmt.Errorf("%w: %q", ErrInvalidMode, c.Mode)
	}

	if c.Ops <= 0 {
		return fmt.Errorf("%w: %d", ErrInvalidOps, c.Ops)
	}

	if c.ValueRange <= 0 {
		return fmt.Errorf("%w: %d", ErrInvalidValueRange, c.ValueRange)
	}

	if c.VerifyEvery <= 0 {
		return fmt.Errorf("%w: %d", ErrInvalidVerifyEvery, c.VerifyEvery)
	}

	return nil
}

// validateConfig validates the configuration.
func validateConfig(config *Config) error {
	checkErr := config.Check.Validate()
	if checkErr != nil {
		return checkErr
	}

	switch strings.ToLower(config.Logging.Level) {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("%w: %q", ErrInvalidLogLevel, config.Logging.Level)
	}

	if config.Logging.Format != "text" && config.Logging.Format != "json" {
		return fmt.Errorf("%w: %q", ErrInvalidLogFormat, config.Logging.Format)
	}

	return nil
}
