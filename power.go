// Copyright (C) 2019-2025, Lux Industries Inc All rights reserved.
// See the file LICENSE for licensing terms.

package restake

import (
	"fmt"

	"github.com/holiman/uint256"
	"github.com/luxfi/geth/common"
)

// PowerStrategy converts a vault's raw stake into a comparable power
// figure. Implementations are expected to be monotonic in stake.
type PowerStrategy interface {
	StakeToPower(vault common.Address, stake *uint256.Int) *uint256.Int
}

var _ PowerStrategy = (*StakePower)(nil)

// StakePower is the identity conversion: one unit of stake is one unit of
// power.
type StakePower struct{}

func (StakePower) StakeToPower(_ common.Address, stake *uint256.Int) *uint256.Int {
	return new(uint256.Int).Set(stake)
}

// VaultPowerAt returns the power operator derives from a single vault at
// timestamp, whether or not the vault is registered.
func (r *Registry) VaultPowerAt(timestamp uint64, operator, vault common.Address) (*uint256.Int, error) {
	return r.vaultPower(timestamp, operator, vault)
}

// OperatorPowerAt returns operator's total power at timestamp across the
// vaults active for it at that time.
func (r *Registry) OperatorPowerAt(timestamp uint64, operator common.Address) (*uint256.Int, error) {
	vaults := r.ActiveVaultsAt(timestamp, operator)
	return r.OperatorPowerAtOver(timestamp, operator, vaults)
}

// OperatorPowerAtOver returns operator's total power at timestamp across
// the given vault list. An empty list yields zero; the sum is
// order-independent.
func (r *Registry) OperatorPowerAtOver(timestamp uint64, operator common.Address, vaults []common.Address) (*uint256.Int, error) {
	total := new(uint256.Int)
	for _, vault := range vaults {
		power, err := r.vaultPower(timestamp, operator, vault)
		if err != nil {
			return nil, err
		}
		total.Add(total, power)
	}
	return total, nil
}

// TotalPower returns the summed power of the given operators at the
// current capture time.
func (r *Registry) TotalPower(operators []common.Address) (*uint256.Int, error) {
	return r.TotalPowerAt(r.clock(), operators)
}

// TotalPowerAt returns the summed power of the given operators at
// timestamp.
func (r *Registry) TotalPowerAt(timestamp uint64, operators []common.Address) (*uint256.Int, error) {
	total := new(uint256.Int)
	for _, operator := range operators {
		power, err := r.OperatorPowerAt(timestamp, operator)
		if err != nil {
			return nil, err
		}
		total.Add(total, power)
	}
	return total, nil
}

func (r *Registry) vaultPower(timestamp uint64, operator, vault common.Address) (*uint256.Int, error) {
	stake, err := r.operatorStakeAt(timestamp, operator, vault)
	if err != nil {
		return nil, err
	}
	return r.power.StakeToPower(vault, stake), nil
}

// operatorStakeAt reads the operator's stake in vault at timestamp via
// the vault's delegation strategy, under the default subnetwork.
func (r *Registry) operatorStakeAt(timestamp uint64, operator, vault common.Address) (*uint256.Int, error) {
	v := r.vaultRegistry.Vault(vault)
	if v == nil {
		return nil, fmt.Errorf("%w: %s", ErrNotVault, vault)
	}
	stake, err := v.Delegator().StakeAt(r.Subnetwork(), operator, timestamp, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to read stake of %s in vault %s: %w", operator, vault, err)
	}
	return stake, nil
}
