// Copyright (C) 2019-2025, Lux Industries Inc All rights reserved.
// See the file LICENSE for licensing terms.

package restake

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/luxfi/geth/common"
	"github.com/luxfi/ids"
	"github.com/luxfi/log"
	"github.com/luxfi/math/set"

	"github.com/luxfi/restake/activeset"
)

// Config configures a Registry.
type Config struct {
	// Logger receives operational logs. Defaults to a no-op logger.
	Logger log.Logger

	// VaultRegistry resolves and vets vault addresses. Required.
	VaultRegistry VaultRegistry

	// Network is the address identifying this network; it prefixes the
	// subnetwork identifier.
	Network common.Address

	// SlashingWindow is the minimum duration, in seconds, for which any
	// past vault state must stay provable and slashable. It is the
	// cooldown for every pause/unregister transition.
	SlashingWindow uint64

	// PowerStrategy converts stake to power. Defaults to StakePower.
	PowerStrategy PowerStrategy

	// Listener observes slash dispatch outcomes. Defaults to
	// NoopSlashListener.
	Listener SlashListener

	// Clock supplies the current unix timestamp in seconds. Defaults to
	// the system clock.
	Clock func() uint64
}

// Registry is the membership-and-penalty registry of a network. It owns
// the subnetwork set, the shared vault set, the per-operator vault sets
// and the vault-operator index, and is the only writer of any of them.
//
// Every operation runs under one lock, so invocations are serialized and
// either complete or fail without partial local writes. Local invariants
// are validated before any external collaborator call, and no write after
// an external call depends on state that call could have mutated.
type Registry struct {
	logger         log.Logger
	vaultRegistry  VaultRegistry
	network        common.Address
	slashingWindow uint64
	power          PowerStrategy
	listener       SlashListener
	clock          func() uint64

	mu             sync.RWMutex
	subnetworks    *activeset.Set[uint64]
	sharedVaults   *activeset.Set[common.Address]
	operatorVaults map[common.Address]*activeset.Set[common.Address]
	vaultOperator  operatorVaultIndex
}

// New creates a Registry and registers the default subnetwork.
func New(cfg Config) (*Registry, error) {
	if cfg.VaultRegistry == nil {
		return nil, errors.New("nil vault registry")
	}
	if cfg.Logger == nil {
		cfg.Logger = log.NoLog{}
	}
	if cfg.PowerStrategy == nil {
		cfg.PowerStrategy = StakePower{}
	}
	if cfg.Listener == nil {
		cfg.Listener = NoopSlashListener{}
	}
	if cfg.Clock == nil {
		cfg.Clock = func() uint64 { return uint64(time.Now().Unix()) }
	}

	r := &Registry{
		subnetworks:    activeset.New[uint64](),
		sharedVaults:   activeset.New[common.Address](),
		operatorVaults: make(map[common.Address]*activeset.Set[common.Address]),
		vaultOperator:  make(operatorVaultIndex),
		logger:         cfg.Logger,
		vaultRegistry:  cfg.VaultRegistry,
		network:        cfg.Network,
		slashingWindow: cfg.SlashingWindow,
		power:          cfg.PowerStrategy,
		listener:       cfg.Listener,
		clock:          cfg.Clock,
	}

	if err := r.subnetworks.Register(r.clock(), DefaultSubnetworkIndex); err != nil {
		return nil, fmt.Errorf("failed to register default subnetwork: %w", err)
	}
	return r, nil
}

// SlashingWindow returns the current slashing window in seconds.
func (r *Registry) SlashingWindow() uint64 {
	return r.slashingWindow
}

// Subnetwork returns the full identifier of the default subnetwork.
func (r *Registry) Subnetwork() ids.ID {
	return SubnetworkID(r.network, DefaultSubnetworkIndex)
}

// RegisterSubnetwork adds a subnetwork index as active from now.
func (r *Registry) RegisterSubnetwork(index uint64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if err := r.subnetworks.Register(r.clock(), index); err != nil {
		return fmt.Errorf("failed to register subnetwork %d: %w", index, err)
	}
	r.logger.Info("registered subnetwork", log.Uint64("index", index))
	return nil
}

// PauseSubnetwork disables a subnetwork index as of now.
func (r *Registry) PauseSubnetwork(index uint64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if err := r.subnetworks.Pause(r.clock(), index); err != nil {
		return fmt.Errorf("failed to pause subnetwork %d: %w", index, err)
	}
	return nil
}

// UnpauseSubnetwork re-activates a subnetwork index once the slashing
// window has elapsed since it was paused.
func (r *Registry) UnpauseSubnetwork(index uint64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if err := r.subnetworks.Unpause(r.clock(), r.slashingWindow, index); err != nil {
		return fmt.Errorf("failed to unpause subnetwork %d: %w", index, err)
	}
	return nil
}

// UnregisterSubnetwork removes a subnetwork index once the slashing
// window has elapsed since it was paused.
func (r *Registry) UnregisterSubnetwork(index uint64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if err := r.subnetworks.Unregister(r.clock(), r.slashingWindow, index); err != nil {
		return fmt.Errorf("failed to unregister subnetwork %d: %w", index, err)
	}
	return nil
}

// ActiveSubnetworksAt returns the subnetwork indices active at timestamp.
func (r *Registry) ActiveSubnetworksAt(timestamp uint64) []uint64 {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.subnetworks.Active(timestamp)
}

// RegisterSharedVault admits a vault backing every operator of the
// network.
func (r *Registry) RegisterSharedVault(vault common.Address) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, err := r.validateVaultForRegistration(vault); err != nil {
		return err
	}
	if err := r.sharedVaults.Register(r.clock(), vault); err != nil {
		return fmt.Errorf("failed to register shared vault %s: %w", vault, err)
	}
	r.logger.Info("registered shared vault", log.Stringer("vault", vault))
	return nil
}

// PauseSharedVault disables a shared vault as of now.
func (r *Registry) PauseSharedVault(vault common.Address) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if err := r.sharedVaults.Pause(r.clock(), vault); err != nil {
		return fmt.Errorf("failed to pause shared vault %s: %w", vault, err)
	}
	return nil
}

// UnpauseSharedVault re-activates a shared vault once the slashing window
// has elapsed since it was paused.
func (r *Registry) UnpauseSharedVault(vault common.Address) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if err := r.sharedVaults.Unpause(r.clock(), r.slashingWindow, vault); err != nil {
		return fmt.Errorf("failed to unpause shared vault %s: %w", vault, err)
	}
	return nil
}

// UnregisterSharedVault removes a shared vault once the slashing window
// has elapsed since it was paused.
func (r *Registry) UnregisterSharedVault(vault common.Address) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if err := r.sharedVaults.Unregister(r.clock(), r.slashingWindow, vault); err != nil {
		return fmt.Errorf("failed to unregister shared vault %s: %w", vault, err)
	}
	r.logger.Info("unregistered shared vault", log.Stringer("vault", vault))
	return nil
}

// RegisterOperatorVault admits a vault whose delegation strategy is bound
// to a single operator.
func (r *Registry) RegisterOperatorVault(operator, vault common.Address) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	v, err := r.validateVaultForRegistration(vault)
	if err != nil {
		return err
	}
	if err := r.validateOperatorBinding(v, operator); err != nil {
		return err
	}

	vaults, ok := r.operatorVaults[operator]
	if !ok {
		vaults = activeset.New[common.Address]()
		r.operatorVaults[operator] = vaults
	}
	if err := vaults.Register(r.clock(), vault); err != nil {
		return fmt.Errorf("failed to register operator vault %s: %w", vault, err)
	}
	r.vaultOperator.bind(vault, operator)
	r.logger.Info("registered operator vault",
		log.Stringer("operator", operator),
		log.Stringer("vault", vault),
	)
	return nil
}

// PauseOperatorVault disables an operator-bound vault as of now.
func (r *Registry) PauseOperatorVault(operator, vault common.Address) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	vaults, ok := r.operatorVaults[operator]
	if !ok {
		return fmt.Errorf("failed to pause operator vault %s: %w", vault, activeset.ErrNotRegistered)
	}
	if err := vaults.Pause(r.clock(), vault); err != nil {
		return fmt.Errorf("failed to pause operator vault %s: %w", vault, err)
	}
	return nil
}

// UnpauseOperatorVault re-activates an operator-bound vault once the
// slashing window has elapsed since it was paused.
func (r *Registry) UnpauseOperatorVault(operator, vault common.Address) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	vaults, ok := r.operatorVaults[operator]
	if !ok {
		return fmt.Errorf("failed to unpause operator vault %s: %w", vault, activeset.ErrNotRegistered)
	}
	if err := vaults.Unpause(r.clock(), r.slashingWindow, vault); err != nil {
		return fmt.Errorf("failed to unpause operator vault %s: %w", vault, err)
	}
	return nil
}

// UnregisterOperatorVault removes an operator-bound vault once the
// slashing window has elapsed since it was paused, and drops its operator
// binding.
func (r *Registry) UnregisterOperatorVault(operator, vault common.Address) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	vaults, ok := r.operatorVaults[operator]
	if !ok {
		return fmt.Errorf("failed to unregister operator vault %s: %w", vault, activeset.ErrNotRegistered)
	}
	if err := vaults.Unregister(r.clock(), r.slashingWindow, vault); err != nil {
		return fmt.Errorf("failed to unregister operator vault %s: %w", vault, err)
	}
	r.vaultOperator.unbind(vault)
	r.logger.Info("unregistered operator vault",
		log.Stringer("operator", operator),
		log.Stringer("vault", vault),
	)
	return nil
}

// OperatorOf returns the operator a vault is bound to, if any.
func (r *Registry) OperatorOf(vault common.Address) (common.Address, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.vaultOperator.operatorOf(vault)
}

// ActiveSharedVaultsAt returns the shared vaults active at timestamp, in
// registration order.
func (r *Registry) ActiveSharedVaultsAt(timestamp uint64) []common.Address {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.sharedVaults.Active(timestamp)
}

// ActiveOperatorVaultsAt returns the operator-bound vaults active at
// timestamp for the given operator, in registration order.
func (r *Registry) ActiveOperatorVaultsAt(timestamp uint64, operator common.Address) []common.Address {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.activeOperatorVaultsAt(timestamp, operator)
}

// ActiveVaultsAt returns every vault backing operator at timestamp: the
// active shared vaults followed by the operator's active bound vaults.
func (r *Registry) ActiveVaultsAt(timestamp uint64, operator common.Address) []common.Address {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.activeVaultsAt(timestamp, operator)
}

func (r *Registry) activeOperatorVaultsAt(timestamp uint64, operator common.Address) []common.Address {
	vaults, ok := r.operatorVaults[operator]
	if !ok {
		return nil
	}
	return vaults.Active(timestamp)
}

func (r *Registry) activeVaultsAt(timestamp uint64, operator common.Address) []common.Address {
	shared := r.sharedVaults.Active(timestamp)
	bound := r.activeOperatorVaultsAt(timestamp, operator)

	// Admission keeps the two scopes disjoint; dedup anyway so a stale
	// binding can never double-count a vault's stake.
	seen := set.NewSet[common.Address](len(shared) + len(bound))
	vaults := make([]common.Address, 0, len(shared)+len(bound))
	for _, v := range shared {
		if seen.Contains(v) {
			continue
		}
		seen.Add(v)
		vaults = append(vaults, v)
	}
	for _, v := range bound {
		if seen.Contains(v) {
			continue
		}
		seen.Add(v)
		vaults = append(vaults, v)
	}
	return vaults
}
