// Copyright (C) 2019-2025, Lux Industries Inc All rights reserved.
// See the file LICENSE for licensing terms.

package restake

import (
	"fmt"

	"github.com/luxfi/geth/common"
)

// validateVaultForRegistration runs the admission checks that make every
// later slash against the vault well-formed, and returns the resolved
// vault entity. Callers hold the state lock; membership is checked before
// any external call so the admission decision cannot race a re-entrant
// registration.
func (r *Registry) validateVaultForRegistration(vault common.Address) (Vault, error) {
	if r.sharedVaults.Contains(vault) || r.vaultOperator.isBound(vault) {
		return nil, fmt.Errorf("%w: %s", ErrVaultAlreadyRegistered, vault)
	}

	if !r.vaultRegistry.IsEntity(vault) {
		return nil, fmt.Errorf("%w: %s", ErrNotVault, vault)
	}
	v := r.vaultRegistry.Vault(vault)
	if v == nil {
		return nil, fmt.Errorf("%w: %s", ErrNotVault, vault)
	}
	if !v.IsInitialized() {
		return nil, fmt.Errorf("%w: %s", ErrVaultNotInitialized, vault)
	}

	// A veto window eats into the time available to finalize a penalty
	// before the vault's accounting epoch rolls over, so the net window
	// after subtracting it must still cover the slashing window.
	window := v.EpochDuration()
	if slasher := v.Slasher(); slasher != nil {
		switch slasher.Type() {
		case InstantSlasherType:
		case VetoSlasherType:
			vetoDuration := slasher.(VetoSlasher).VetoDuration()
			if vetoDuration >= window {
				window = 0
			} else {
				window -= vetoDuration
			}
		default:
			return nil, fmt.Errorf("%w: %d", ErrUnknownSlasherType, slasher.Type())
		}
	}
	if window < r.slashingWindow {
		return nil, fmt.Errorf("%w: %s: effective window %d < slashing window %d",
			ErrVaultEpochTooShort, vault, window, r.slashingWindow)
	}

	return v, nil
}

// validateOperatorBinding checks that the vault's delegation strategy is
// operator-scoped and bound to exactly the given operator.
func (r *Registry) validateOperatorBinding(v Vault, operator common.Address) error {
	delegator := v.Delegator()
	switch delegator.Type() {
	case OperatorSpecificDelegatorType, OperatorNetworkSpecificDelegatorType:
	default:
		return fmt.Errorf("%w: delegator type %d", ErrNotOperatorSpecificVault, delegator.Type())
	}

	bound := delegator.(OperatorDelegator).Operator()
	if bound != operator {
		return fmt.Errorf("%w: bound to %s, got %s", ErrNotOperatorSpecificVault, bound, operator)
	}
	return nil
}
