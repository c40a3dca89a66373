// Copyright (C) 2019-2025, Lux Industries Inc All rights reserved.
// See the file LICENSE for licensing terms.

package restake

import (
	"testing"

	"github.com/holiman/uint256"
	"github.com/stretchr/testify/require"
)

func TestSlashAmountMath(t *testing.T) {
	tests := []struct {
		name     string
		stake    uint64
		ppb      uint64
		expected uint64
	}{
		{name: "50 percent", stake: 1000, ppb: 500_000_000, expected: 500},
		{name: "rounds down to zero", stake: 1, ppb: 1, expected: 0},
		{name: "full slash", stake: 1234, ppb: PPBDenominator, expected: 1234},
		{name: "one third", stake: 100, ppb: 333_333_333, expected: 33},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require := require.New(t)
			env := newTestEnv(t)

			operator := addr(1)
			vault := addr(2)
			slasher := &FakeInstantSlasher{}
			env.addVault(vault, &FakeDelegator{Stakes: stakes(operator, tt.stake)}, slasher)
			require.NoError(env.registry.RegisterSharedVault(vault))

			require.NoError(env.registry.SlashAtEpochStart(env.now, operator, tt.ppb))

			if tt.expected == 0 {
				// Zero shares are skipped without an event.
				require.Empty(slasher.Applied)
				require.Empty(env.listener.Instant)
				return
			}
			require.Len(slasher.Applied, 1)
			require.Equal(uint256.NewInt(tt.expected), slasher.Applied[0])
			require.Len(env.listener.Instant, 1)
			require.Equal(uint256.NewInt(tt.expected), env.listener.Instant[0].Amount)
		})
	}
}

func TestSlashRoutesPerStrategy(t *testing.T) {
	require := require.New(t)
	env := newTestEnv(t)

	operator := addr(1)
	instantVault := addr(2)
	vetoVault := addr(3)
	bareVault := addr(4)

	instant := &FakeInstantSlasher{}
	veto := &FakeVetoSlasher{Veto: 40}
	env.addVault(instantVault, &FakeDelegator{Stakes: stakes(operator, 1000)}, instant)
	env.addVault(vetoVault, &FakeDelegator{Stakes: stakes(operator, 2000)}, veto)
	env.addVault(bareVault, &FakeDelegator{Stakes: stakes(operator, 3000)}, nil)

	require.NoError(env.registry.RegisterSharedVault(instantVault))
	require.NoError(env.registry.RegisterSharedVault(vetoVault))
	require.NoError(env.registry.RegisterSharedVault(bareVault))

	require.NoError(env.registry.SlashAtEpochStart(env.now, operator, 500_000_000))

	// Exactly one instant event and one veto event; the slasherless vault
	// is skipped silently.
	require.Len(env.listener.Instant, 1)
	require.Equal(instantVault, env.listener.Instant[0].Vault)
	require.Equal(env.registry.Subnetwork(), env.listener.Instant[0].Subnetwork)
	require.Equal(uint256.NewInt(500), env.listener.Instant[0].Amount)

	require.Len(env.listener.Veto, 1)
	require.Equal(vetoVault, env.listener.Veto[0].Vault)
	require.Equal(uint64(0), env.listener.Veto[0].RequestIndex)
	require.Equal([]*uint256.Int{uint256.NewInt(1000)}, veto.Requests)
}

func TestSlashUnknownStrategyAbortsBatch(t *testing.T) {
	require := require.New(t)
	env := newTestEnv(t)

	operator := addr(1)
	instantVault := addr(2)
	unknownVault := addr(3)

	instant := &FakeInstantSlasher{}
	env.addVault(instantVault, &FakeDelegator{Stakes: stakes(operator, 1000)}, instant)
	env.addVault(unknownVault, &FakeDelegator{Stakes: stakes(operator, 1000)}, nil)

	require.NoError(env.registry.RegisterSharedVault(instantVault))
	require.NoError(env.registry.RegisterSharedVault(unknownVault))

	// Swap in an unrecognized strategy after admission.
	env.vaults.Vaults[unknownVault].Sl = &FakeSlasher{Tag: 99}

	err := env.registry.SlashAtEpochStart(env.now, operator, 500_000_000)
	require.ErrorIs(err, ErrUnknownSlasherType)

	// All-or-nothing: no penalty executed, no events at all.
	require.Empty(instant.Applied)
	require.Empty(env.listener.Instant)
	require.Empty(env.listener.Veto)
}

func TestSlashUsesHistoricalMembership(t *testing.T) {
	require := require.New(t)
	env := newTestEnv(t)

	operator := addr(1)
	vault := addr(2)
	slasher := &FakeInstantSlasher{}
	env.addVault(vault, &FakeDelegator{Stakes: stakes(operator, 1000)}, slasher)
	require.NoError(env.registry.RegisterSharedVault(vault))

	epochStart := env.now
	env.now += 10
	require.NoError(env.registry.PauseSharedVault(vault))

	// The vault was active at the epoch start, so it is still slashable.
	require.NoError(env.registry.SlashAtEpochStart(epochStart, operator, 500_000_000))
	require.Len(slasher.Applied, 1)

	// At a timestamp after the pause it no longer participates.
	env.listener.Instant = nil
	require.NoError(env.registry.SlashAtEpochStart(env.now, operator, 500_000_000))
	require.Empty(env.listener.Instant)
}

func TestFinalizeVetoSlash(t *testing.T) {
	require := require.New(t)
	env := newTestEnv(t)

	operator := addr(1)
	vault := addr(2)
	veto := &FakeVetoSlasher{Veto: 40}
	env.addVault(vault, &FakeDelegator{Stakes: stakes(operator, 1000)}, veto)
	require.NoError(env.registry.RegisterSharedVault(vault))

	require.NoError(env.registry.SlashAtEpochStart(env.now, operator, 500_000_000))
	require.Len(env.listener.Veto, 1)

	applied, err := env.registry.FinalizeVetoSlash(vault, env.listener.Veto[0].RequestIndex, nil)
	require.NoError(err)
	require.Equal(uint256.NewInt(500), applied)
}

func TestFinalizeVetoSlashNonVeto(t *testing.T) {
	require := require.New(t)
	env := newTestEnv(t)

	instantVault := addr(2)
	bareVault := addr(3)
	env.addVault(instantVault, &FakeDelegator{}, &FakeInstantSlasher{})
	env.addVault(bareVault, &FakeDelegator{}, nil)

	_, err := env.registry.FinalizeVetoSlash(instantVault, 0, nil)
	require.ErrorIs(err, ErrNonVetoSlasher)

	_, err = env.registry.FinalizeVetoSlash(bareVault, 0, nil)
	require.ErrorIs(err, ErrNonVetoSlasher)

	_, err = env.registry.FinalizeVetoSlash(addr(9), 0, nil)
	require.ErrorIs(err, ErrNotVault)
}

func TestSlashOperatorVaultScoped(t *testing.T) {
	require := require.New(t)
	env := newTestEnv(t)

	op1 := addr(1)
	op2 := addr(2)
	vault := addr(3)
	slasher := &FakeInstantSlasher{}
	env.addVault(vault, &FakeDelegator{
		Tag:           OperatorSpecificDelegatorType,
		BoundOperator: op1,
		Stakes:        stakes(op1, 1000),
	}, slasher)
	require.NoError(env.registry.RegisterOperatorVault(op1, vault))

	// Another operator has no vaults, so the dispatch is a no-op.
	require.NoError(env.registry.SlashAtEpochStart(env.now, op2, 500_000_000))
	require.Empty(slasher.Applied)

	require.NoError(env.registry.SlashAtEpochStart(env.now, op1, 500_000_000))
	require.Len(slasher.Applied, 1)
	require.Equal(uint256.NewInt(500), slasher.Applied[0])
}
