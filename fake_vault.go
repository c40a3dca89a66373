// Copyright (C) 2019-2025, Lux Industries Inc All rights reserved.
// See the file LICENSE for licensing terms.

package restake

import (
	"github.com/holiman/uint256"
	"github.com/luxfi/geth/common"
	"github.com/luxfi/ids"
)

// FakeVaultRegistry is a test implementation of VaultRegistry backed by a
// map.
type FakeVaultRegistry struct {
	Vaults map[common.Address]*FakeVault
}

// NewFakeVaultRegistry creates an empty FakeVaultRegistry.
func NewFakeVaultRegistry() *FakeVaultRegistry {
	return &FakeVaultRegistry{
		Vaults: make(map[common.Address]*FakeVault),
	}
}

// Add registers a fake vault under addr.
func (f *FakeVaultRegistry) Add(addr common.Address, v *FakeVault) {
	f.Vaults[addr] = v
}

func (f *FakeVaultRegistry) IsEntity(addr common.Address) bool {
	_, ok := f.Vaults[addr]
	return ok
}

func (f *FakeVaultRegistry) Vault(addr common.Address) Vault {
	v, ok := f.Vaults[addr]
	if !ok {
		return nil
	}
	return v
}

// FakeVault is a test implementation of Vault.
type FakeVault struct {
	Initialized bool
	Epoch       uint64
	Del         Delegator
	Sl          Slasher
}

func (v *FakeVault) IsInitialized() bool   { return v.Initialized }
func (v *FakeVault) EpochDuration() uint64 { return v.Epoch }
func (v *FakeVault) Delegator() Delegator  { return v.Del }
func (v *FakeVault) Slasher() Slasher      { return v.Sl }

// FakeDelegator is a test implementation of Delegator with per-operator
// stakes that are constant over time unless StakeFn overrides the lookup.
type FakeDelegator struct {
	Tag           DelegatorType
	BoundOperator common.Address
	Stakes        map[common.Address]*uint256.Int
	StakeFn       func(subnetwork ids.ID, operator common.Address, timestamp uint64, hint []byte) (*uint256.Int, error)
}

func (d *FakeDelegator) Type() DelegatorType      { return d.Tag }
func (d *FakeDelegator) Operator() common.Address { return d.BoundOperator }

func (d *FakeDelegator) StakeAt(subnetwork ids.ID, operator common.Address, timestamp uint64, hint []byte) (*uint256.Int, error) {
	if d.StakeFn != nil {
		return d.StakeFn(subnetwork, operator, timestamp, hint)
	}
	if stake, ok := d.Stakes[operator]; ok {
		return new(uint256.Int).Set(stake), nil
	}
	return new(uint256.Int), nil
}

// FakeSlasher implements only the strategy tag; it stands in for
// unrecognized strategies.
type FakeSlasher struct {
	Tag SlasherType
}

func (s *FakeSlasher) Type() SlasherType { return s.Tag }

// FakeInstantSlasher records Slash calls and applies the full requested
// amount.
type FakeInstantSlasher struct {
	Applied []*uint256.Int
}

func (s *FakeInstantSlasher) Type() SlasherType { return InstantSlasherType }

func (s *FakeInstantSlasher) Slash(_ ids.ID, _ common.Address, amount *uint256.Int, _ uint64, _ []byte) (*uint256.Int, error) {
	applied := new(uint256.Int).Set(amount)
	s.Applied = append(s.Applied, applied)
	return applied, nil
}

// FakeVetoSlasher records slash requests and executes them in full.
type FakeVetoSlasher struct {
	Veto     uint64
	Requests []*uint256.Int
}

func (s *FakeVetoSlasher) Type() SlasherType    { return VetoSlasherType }
func (s *FakeVetoSlasher) VetoDuration() uint64 { return s.Veto }

func (s *FakeVetoSlasher) RequestSlash(_ ids.ID, _ common.Address, amount *uint256.Int, _ uint64, _ []byte) (uint64, error) {
	s.Requests = append(s.Requests, new(uint256.Int).Set(amount))
	return uint64(len(s.Requests) - 1), nil
}

func (s *FakeVetoSlasher) ExecuteSlash(requestIndex uint64, _ []byte) (*uint256.Int, error) {
	return new(uint256.Int).Set(s.Requests[requestIndex]), nil
}

// RecordingSlashListener captures emitted events in order.
type RecordingSlashListener struct {
	Instant []InstantSlash
	Veto    []VetoSlashRequest
}

func (l *RecordingSlashListener) InstantSlashApplied(e InstantSlash) {
	l.Instant = append(l.Instant, e)
}

func (l *RecordingSlashListener) VetoSlashRequested(e VetoSlashRequest) {
	l.Veto = append(l.Veto, e)
}
