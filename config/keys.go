// Copyright (C) 2019-2025, Lux Industries Inc All rights reserved.
// See the file LICENSE for licensing terms.

package config

const (
	// Command line option keys
	ConfigFileKey = "config-file"
	VersionKey    = "version"
	HelpKey       = "help"

	// Top-level configuration keys
	LogLevelKey       = "log-level"
	NetworkKey        = "network"
	SlashingWindowKey = "slashing-window"
	MetricsPortKey    = "metrics-port"
)

const (
	defaultLogLevel       = "info"
	defaultSlashingWindow = 7 * 24 * 60 * 60
	defaultMetricsPort    = 9090
)
