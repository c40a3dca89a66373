// Copyright (C) 2019-2025, Lux Industries Inc All rights reserved.
// See the file LICENSE for licensing terms.

// Package restake tracks which collateral vaults back a network, converts
// delegated stake into consensus power, and dispatches slashing penalties
// against misbehaving operators.
package restake

import (
	"encoding/binary"

	"github.com/luxfi/geth/common"
	"github.com/luxfi/ids"
)

const (
	// PPBDenominator is the denominator of parts-per-billion slash
	// percentages.
	PPBDenominator = 1_000_000_000

	// DefaultSubnetworkIndex is the subnetwork registered at
	// initialization. All stake reads and slashes run under it.
	DefaultSubnetworkIndex uint64 = 0
)

// SubnetworkID composes the full subnetwork identifier from the network
// address and a subnetwork index: 20 address bytes followed by the index
// big-endian in the trailing bytes.
func SubnetworkID(network common.Address, index uint64) ids.ID {
	var id ids.ID
	copy(id[:], network[:])
	binary.BigEndian.PutUint64(id[len(id)-8:], index)
	return id
}
