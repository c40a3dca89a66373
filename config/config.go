// Copyright (C) 2019-2025, Lux Industries Inc All rights reserved.
// See the file LICENSE for licensing terms.

// Package config loads the registry configuration from a JSON file,
// environment variables and command line flags.
package config

import (
	"fmt"
	"strings"

	"github.com/luxfi/geth/common"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// Config is the top-level configuration of a registry deployment.
type Config struct {
	LogLevel       string `mapstructure:"log-level"`
	Network        string `mapstructure:"network"`
	SlashingWindow uint64 `mapstructure:"slashing-window"`
	MetricsPort    uint16 `mapstructure:"metrics-port"`
}

// NetworkAddress parses the configured network address.
func (c *Config) NetworkAddress() common.Address {
	return common.HexToAddress(c.Network)
}

// Validate checks the configuration for consistency.
func (c *Config) Validate() error {
	if c.SlashingWindow == 0 {
		return fmt.Errorf("%s must be positive", SlashingWindowKey)
	}
	if !common.IsHexAddress(c.Network) {
		return fmt.Errorf("invalid %s: %q", NetworkKey, c.Network)
	}
	return nil
}

// NewConfig builds and validates the configuration from a viper instance.
func NewConfig(v *viper.Viper) (Config, error) {
	cfg, err := BuildConfig(v)
	if err != nil {
		return cfg, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("failed to validate configuration: %w", err)
	}
	return cfg, nil
}

// BuildViper constructs the viper instance. All config keys may be
// provided via config file, environment variable or flag; flags take
// precedence.
func BuildViper(fs *pflag.FlagSet) (*viper.Viper, error) {
	v := viper.New()
	v.AutomaticEnv()
	// Flags are capitalized, and hyphens are replaced with underscores,
	// to map flag names to env var names.
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	if err := v.BindPFlags(fs); err != nil {
		return nil, err
	}

	if file := v.GetString(ConfigFileKey); file != "" {
		v.SetConfigFile(file)
		v.SetConfigType("json")
		if err := v.ReadInConfig(); err != nil {
			return nil, err
		}
	}
	return v, nil
}

// SetDefaultConfigValues applies the documented defaults.
func SetDefaultConfigValues(v *viper.Viper) {
	v.SetDefault(LogLevelKey, defaultLogLevel)
	v.SetDefault(SlashingWindowKey, defaultSlashingWindow)
	v.SetDefault(MetricsPortKey, defaultMetricsPort)
}

// BuildConfig unmarshals the configuration from viper.
func BuildConfig(v *viper.Viper) (Config, error) {
	SetDefaultConfigValues(v)

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return cfg, fmt.Errorf("failed to unmarshal viper config: %w", err)
	}
	return cfg, nil
}
