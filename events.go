// Copyright (C) 2019-2025, Lux Industries Inc All rights reserved.
// See the file LICENSE for licensing terms.

package restake

import (
	"github.com/holiman/uint256"
	"github.com/luxfi/geth/common"
	"github.com/luxfi/ids"
)

// InstantSlash is emitted after a penalty is applied immediately.
type InstantSlash struct {
	Vault      common.Address
	Subnetwork ids.ID
	Amount     *uint256.Int
}

// VetoSlashRequest is emitted after a penalty request is staged behind a
// veto window.
type VetoSlashRequest struct {
	Vault        common.Address
	Subnetwork   ids.ID
	RequestIndex uint64
}

// SlashListener observes slash dispatch outcomes.
type SlashListener interface {
	InstantSlashApplied(InstantSlash)
	VetoSlashRequested(VetoSlashRequest)
}

var (
	_ SlashListener = (*NoopSlashListener)(nil)
	_ SlashListener = (*SlashListeners)(nil)
)

// NoopSlashListener discards all events.
type NoopSlashListener struct{}

func (NoopSlashListener) InstantSlashApplied(InstantSlash)    {}
func (NoopSlashListener) VetoSlashRequested(VetoSlashRequest) {}

// SlashListeners fans events out to a set of listeners in registration
// order.
type SlashListeners struct {
	listeners []SlashListener
}

// NewSlashListeners creates a fan-out listener group.
func NewSlashListeners(listeners ...SlashListener) *SlashListeners {
	return &SlashListeners{listeners: listeners}
}

// Register appends a listener to the group.
func (g *SlashListeners) Register(l SlashListener) {
	g.listeners = append(g.listeners, l)
}

func (g *SlashListeners) InstantSlashApplied(e InstantSlash) {
	for _, l := range g.listeners {
		l.InstantSlashApplied(e)
	}
}

func (g *SlashListeners) VetoSlashRequested(e VetoSlashRequest) {
	for _, l := range g.listeners {
		l.VetoSlashRequested(e)
	}
}
