// Copyright (C) 2019-2025, Lux Industries Inc All rights reserved.
// See the file LICENSE for licensing terms.

package restake

import (
	"fmt"

	"github.com/holiman/uint256"
	"github.com/luxfi/geth/common"
	"github.com/luxfi/log"
)

// plannedSlash is one vault's share of a dispatch, resolved during the
// plan phase.
type plannedSlash struct {
	vault   common.Address
	slasher Slasher
	amount  *uint256.Int
}

// SlashAtEpochStart slashes operator by slashPPB parts-per-billion of its
// stake in every vault that was active for it at epochStart, routing each
// share to the vault's penalty strategy.
//
// Dispatch is two-phase. The plan phase resolves membership, reads every
// stake and resolves every strategy type; an unknown strategy type aborts
// the whole call here, before any penalty executes or any event fires.
// The execute phase then applies instant slashes and stages veto requests.
// Nothing re-reads stake after an apply, so within one invocation an
// applied amount can only be stale relative to other invocations, which
// the execution model serializes.
func (r *Registry) SlashAtEpochStart(epochStart uint64, operator common.Address, slashPPB uint64) error {
	subnetwork := r.Subnetwork()
	vaults := r.ActiveVaultsAt(epochStart, operator)

	// Plan phase: no external state is mutated and no events fire.
	planned := make([]plannedSlash, 0, len(vaults))
	ppb := uint256.NewInt(slashPPB)
	denominator := uint256.NewInt(PPBDenominator)
	for _, vault := range vaults {
		v := r.vaultRegistry.Vault(vault)
		if v == nil {
			return fmt.Errorf("%w: %s", ErrNotVault, vault)
		}
		stake, err := v.Delegator().StakeAt(subnetwork, operator, epochStart, nil)
		if err != nil {
			return fmt.Errorf("failed to read stake of %s in vault %s: %w", operator, vault, err)
		}

		amount, overflow := new(uint256.Int).MulOverflow(stake, ppb)
		if overflow {
			return fmt.Errorf("%w: vault %s", ErrAmountOverflow, vault)
		}
		amount.Div(amount, denominator)

		slasher := v.Slasher()
		if slasher != nil {
			switch slasher.Type() {
			case InstantSlasherType, VetoSlasherType:
			default:
				return fmt.Errorf("%w: %d: vault %s", ErrUnknownSlasherType, slasher.Type(), vault)
			}
		}

		// A vault with no penalty strategy or a zero share is skipped by
		// policy, not failed.
		if slasher == nil || amount.IsZero() {
			continue
		}
		planned = append(planned, plannedSlash{vault: vault, slasher: slasher, amount: amount})
	}

	// Execute phase.
	for _, p := range planned {
		switch p.slasher.Type() {
		case InstantSlasherType:
			slasher, ok := p.slasher.(InstantSlasher)
			if !ok {
				return fmt.Errorf("%w: vault %s slasher tagged instant", ErrUnknownSlasherType, p.vault)
			}
			applied, err := slasher.Slash(subnetwork, operator, p.amount, epochStart, nil)
			if err != nil {
				return fmt.Errorf("failed to slash vault %s: %w", p.vault, err)
			}
			r.logger.Info("instant slash applied",
				log.Stringer("vault", p.vault),
				log.Stringer("operator", operator),
				log.Stringer("amount", applied),
			)
			r.listener.InstantSlashApplied(InstantSlash{
				Vault:      p.vault,
				Subnetwork: subnetwork,
				Amount:     applied,
			})
		case VetoSlasherType:
			slasher, ok := p.slasher.(VetoSlasher)
			if !ok {
				return fmt.Errorf("%w: vault %s slasher tagged veto", ErrUnknownSlasherType, p.vault)
			}
			index, err := slasher.RequestSlash(subnetwork, operator, p.amount, epochStart, nil)
			if err != nil {
				return fmt.Errorf("failed to request slash on vault %s: %w", p.vault, err)
			}
			r.logger.Info("veto slash requested",
				log.Stringer("vault", p.vault),
				log.Stringer("operator", operator),
				log.Uint64("requestIndex", index),
			)
			r.listener.VetoSlashRequested(VetoSlashRequest{
				Vault:        p.vault,
				Subnetwork:   subnetwork,
				RequestIndex: index,
			})
		default:
			// Unreachable: the plan phase vetted every tag.
			return fmt.Errorf("%w: %d: vault %s", ErrUnknownSlasherType, p.slasher.Type(), p.vault)
		}
	}
	return nil
}

// FinalizeVetoSlash executes a previously requested veto slash on vault
// and returns the amount actually applied, which may be less than
// requested if the request was partially vetoed.
func (r *Registry) FinalizeVetoSlash(vault common.Address, requestIndex uint64, hints []byte) (*uint256.Int, error) {
	v := r.vaultRegistry.Vault(vault)
	if v == nil {
		return nil, fmt.Errorf("%w: %s", ErrNotVault, vault)
	}
	slasher, ok := v.Slasher().(VetoSlasher)
	if !ok || slasher.Type() != VetoSlasherType {
		return nil, fmt.Errorf("%w: vault %s", ErrNonVetoSlasher, vault)
	}

	applied, err := slasher.ExecuteSlash(requestIndex, hints)
	if err != nil {
		return nil, fmt.Errorf("failed to execute slash request %d on vault %s: %w", requestIndex, vault, err)
	}
	r.logger.Info("veto slash executed",
		log.Stringer("vault", vault),
		log.Uint64("requestIndex", requestIndex),
		log.Stringer("amount", applied),
	)
	return applied, nil
}
