// Copyright (C) 2019-2025, Lux Industries Inc All rights reserved.
// See the file LICENSE for licensing terms.

package restake

import (
	"github.com/holiman/uint256"
	"github.com/luxfi/geth/common"
	"github.com/luxfi/ids"
)

// DelegatorType tags a vault's stake-delegation strategy.
type DelegatorType uint64

const (
	// NetworkRestakeDelegatorType delegates network-wide.
	NetworkRestakeDelegatorType DelegatorType = iota

	// FullRestakeDelegatorType restakes the full vault balance.
	FullRestakeDelegatorType

	// OperatorSpecificDelegatorType delegates to a single operator.
	OperatorSpecificDelegatorType

	// OperatorNetworkSpecificDelegatorType delegates to a single operator
	// on a single network.
	OperatorNetworkSpecificDelegatorType
)

// SlasherType tags a vault's penalty-execution strategy.
type SlasherType uint64

const (
	// InstantSlasherType applies penalties immediately.
	InstantSlasherType SlasherType = iota

	// VetoSlasherType requires a request followed by separate execution,
	// with a veto window in between.
	VetoSlasherType
)

// VaultRegistry resolves addresses to vault entities. It is the external
// entity registry this system is configured against.
type VaultRegistry interface {
	// IsEntity reports whether addr was deployed by this registry.
	IsEntity(addr common.Address) bool

	// Vault returns the vault entity at addr, or nil if addr is not a
	// vault of this registry.
	Vault(addr common.Address) Vault
}

// Vault is the collateral container backing the network. Only its
// strategy surface is consumed here; custody and accounting stay behind
// this interface.
type Vault interface {
	// IsInitialized reports whether the vault finished its setup.
	IsInitialized() bool

	// EpochDuration returns the vault's accounting period in seconds.
	EpochDuration() uint64

	// Delegator returns the vault's stake-delegation strategy.
	Delegator() Delegator

	// Slasher returns the vault's penalty-execution strategy, or nil if
	// the vault is not slashable.
	Slasher() Slasher
}

// Delegator computes how much stake a vault attributes to an operator at
// a given time.
type Delegator interface {
	// Type returns the delegation strategy tag.
	Type() DelegatorType

	// StakeAt returns the operator's stake under subnetwork at timestamp.
	// hint is an opaque lookup accelerator forwarded to the strategy.
	StakeAt(subnetwork ids.ID, operator common.Address, timestamp uint64, hint []byte) (*uint256.Int, error)
}

// OperatorDelegator is implemented by the operator-scoped delegation
// strategies. Operator returns the single operator the strategy is bound
// to.
type OperatorDelegator interface {
	Delegator

	Operator() common.Address
}

// Slasher is a penalty-execution strategy. The tag selects which
// specialized interface applies.
type Slasher interface {
	// Type returns the penalty strategy tag.
	Type() SlasherType
}

// InstantSlasher applies a penalty immediately.
type InstantSlasher interface {
	Slasher

	// Slash executes a penalty captured at captureTimestamp and returns
	// the amount actually applied.
	Slash(subnetwork ids.ID, operator common.Address, amount *uint256.Int, captureTimestamp uint64, hint []byte) (*uint256.Int, error)
}

// VetoSlasher stages a penalty behind a veto window.
type VetoSlasher interface {
	Slasher

	// RequestSlash submits a penalty request and returns its index.
	RequestSlash(subnetwork ids.ID, operator common.Address, amount *uint256.Int, captureTimestamp uint64, hint []byte) (uint64, error)

	// ExecuteSlash finalizes a previously submitted request. The applied
	// amount may be less than requested if the request was partially
	// vetoed.
	ExecuteSlash(requestIndex uint64, hints []byte) (*uint256.Int, error)

	// VetoDuration returns the veto window in seconds.
	VetoDuration() uint64
}
