// Copyright (C) 2019-2025, Lux Industries Inc All rights reserved.
// See the file LICENSE for licensing terms.

package config

import (
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/require"
)

func TestBuildConfigDefaults(t *testing.T) {
	require := require.New(t)

	v := viper.New()
	v.Set(NetworkKey, "0x00000000000000000000000000000000000000ff")

	cfg, err := NewConfig(v)
	require.NoError(err)
	require.Equal("info", cfg.LogLevel)
	require.Equal(uint64(defaultSlashingWindow), cfg.SlashingWindow)
	require.Equal(uint16(defaultMetricsPort), cfg.MetricsPort)
	require.Equal(byte(0xff), cfg.NetworkAddress()[19])
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{
			name: "valid",
			cfg: Config{
				Network:        "0x00000000000000000000000000000000000000ff",
				SlashingWindow: 100,
			},
		},
		{
			name: "zero slashing window",
			cfg: Config{
				Network: "0x00000000000000000000000000000000000000ff",
			},
			wantErr: true,
		},
		{
			name: "bad network address",
			cfg: Config{
				Network:        "not-an-address",
				SlashingWindow: 100,
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
		})
	}
}
