// Copyright (C) 2019-2025, Lux Industries Inc All rights reserved.
// See the file LICENSE for licensing terms.

package main

import (
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/holiman/uint256"
	"github.com/luxfi/geth/common"
	"github.com/luxfi/log"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"

	"github.com/luxfi/restake"
	"github.com/luxfi/restake/config"
)

var (
	version   = "dev"
	buildDate = "unknown"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "restake",
	Short: "Restaking membership-and-penalty registry CLI",
	Long: `restake tracks which collateral vaults back a network, converts
delegated stake into consensus power, and dispatches slashing penalties
against misbehaving operators.

This CLI runs a registry against in-memory collaborators for local
experimentation.`,
	Version: fmt.Sprintf("%s (built %s)", version, buildDate),
}

func init() {
	rootCmd.AddCommand(demoCmd)

	demoCmd.Flags().String(config.ConfigFileKey, "", "Path to a JSON config file")
	demoCmd.Flags().String(config.NetworkKey, "0x0000000000000000000000000000000000000001", "Network address")
	demoCmd.Flags().Uint64(config.SlashingWindowKey, 7*24*60*60, "Slashing window in seconds")
	demoCmd.Flags().Uint16(config.MetricsPortKey, 0, "Port to serve prometheus metrics on (0 disables)")
}

var demoCmd = &cobra.Command{
	Use:   "demo",
	Short: "Run a registry lifecycle against in-memory collaborators",
	RunE: func(cmd *cobra.Command, args []string) error {
		v, err := config.BuildViper(cmd.Flags())
		if err != nil {
			return err
		}
		cfg, err := config.NewConfig(v)
		if err != nil {
			return err
		}
		return runDemo(cfg)
	},
}

func runDemo(cfg config.Config) error {
	logLevel, err := log.ToLevel(cfg.LogLevel)
	if err != nil {
		return fmt.Errorf("invalid log level %q: %w", cfg.LogLevel, err)
	}
	logger := log.NewLogger(
		"restake",
		*log.NewWrappedCore(logLevel, os.Stdout, log.JSON.ConsoleEncoder()),
	)

	listeners := restake.NewSlashListeners()
	if cfg.MetricsPort != 0 {
		gatherer := prometheus.NewRegistry()
		listeners.Register(restake.NewMetrics(gatherer))
		http.Handle("/metrics", promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}))
		go func() {
			addr := fmt.Sprintf(":%d", cfg.MetricsPort)
			if err := http.ListenAndServe(addr, nil); err != nil {
				logger.Error("metrics server exited", log.Err(err))
			}
		}()
	}

	operator := common.HexToAddress("0x00000000000000000000000000000000000000aa")
	sharedVault := common.HexToAddress("0x00000000000000000000000000000000000000b1")
	operatorVault := common.HexToAddress("0x00000000000000000000000000000000000000b2")

	vaults := restake.NewFakeVaultRegistry()
	vaults.Add(sharedVault, &restake.FakeVault{
		Initialized: true,
		Epoch:       4 * cfg.SlashingWindow,
		Del: &restake.FakeDelegator{
			Stakes: map[common.Address]*uint256.Int{
				operator: uint256.NewInt(1_000_000),
			},
		},
		Sl: &restake.FakeInstantSlasher{},
	})
	vaults.Add(operatorVault, &restake.FakeVault{
		Initialized: true,
		Epoch:       4 * cfg.SlashingWindow,
		Del: &restake.FakeDelegator{
			Tag:           restake.OperatorSpecificDelegatorType,
			BoundOperator: operator,
			Stakes: map[common.Address]*uint256.Int{
				operator: uint256.NewInt(500_000),
			},
		},
		Sl: &restake.FakeVetoSlasher{Veto: cfg.SlashingWindow / 4},
	})

	registry, err := restake.New(restake.Config{
		Logger:         logger,
		VaultRegistry:  vaults,
		Network:        cfg.NetworkAddress(),
		SlashingWindow: cfg.SlashingWindow,
		Listener:       listeners,
	})
	if err != nil {
		return err
	}

	if err := registry.RegisterSharedVault(sharedVault); err != nil {
		return err
	}
	if err := registry.RegisterOperatorVault(operator, operatorVault); err != nil {
		return err
	}

	power, err := registry.TotalPower([]common.Address{operator})
	if err != nil {
		return err
	}
	fmt.Printf("operator %s power: %s\n", operator, power)

	// Slash 10% of the operator's stake as of now.
	epochStart := uint64(time.Now().Unix())
	if err := registry.SlashAtEpochStart(epochStart, operator, 100_000_000); err != nil {
		return err
	}
	fmt.Println("slash dispatched")
	return nil
}
