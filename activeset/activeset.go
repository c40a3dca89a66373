// Copyright (C) 2019-2025, Lux Industries Inc All rights reserved.
// See the file LICENSE for licensing terms.

// Package activeset provides a time-windowed membership set. Members move
// through the states {absent, active, disabled}; disabled members are kept
// as tombstones until a cooldown has elapsed, so historical activity
// queries stay answerable for any timestamp still inside that window.
package activeset

import (
	"errors"
)

var (
	ErrAlreadyRegistered  = errors.New("already registered")
	ErrNotRegistered      = errors.New("not registered")
	ErrAlreadyPaused      = errors.New("already paused")
	ErrNotPaused          = errors.New("not paused")
	ErrCooldownNotElapsed = errors.New("cooldown not elapsed")
)

// entry tracks one member's activity window. disabledAt == 0 means the
// member is currently active; enabledAt never changes after registration.
type entry struct {
	enabledAt  uint64
	disabledAt uint64
}

func (e entry) activeAt(timestamp uint64) bool {
	return e.enabledAt <= timestamp && (e.disabledAt == 0 || e.disabledAt > timestamp)
}

// Set is a time-windowed membership set keyed by K. Enumeration preserves
// insertion order. Set is not safe for concurrent use; callers serialize
// access.
type Set[K comparable] struct {
	entries map[K]entry
	order   []K
}

// New creates an empty Set.
func New[K comparable]() *Set[K] {
	return &Set[K]{
		entries: make(map[K]entry),
	}
}

// Register adds key as active from now. It fails with ErrAlreadyRegistered
// while the key is present, including as a disabled tombstone.
func (s *Set[K]) Register(now uint64, key K) error {
	if _, ok := s.entries[key]; ok {
		return ErrAlreadyRegistered
	}
	s.entries[key] = entry{enabledAt: now}
	s.order = append(s.order, key)
	return nil
}

// Pause disables key as of now. The entry remains queryable for
// timestamps before now.
func (s *Set[K]) Pause(now uint64, key K) error {
	e, ok := s.entries[key]
	if !ok {
		return ErrNotRegistered
	}
	if e.disabledAt != 0 {
		return ErrAlreadyPaused
	}
	e.disabledAt = now
	s.entries[key] = e
	return nil
}

// Unpause re-activates a disabled key once cooldown has elapsed since it
// was disabled. The original enabledAt is preserved; the historical window
// [enabledAt, disabledAt) is not altered for past timestamps because the
// disabling event itself already closed it.
func (s *Set[K]) Unpause(now, cooldown uint64, key K) error {
	e, ok := s.entries[key]
	if !ok {
		return ErrNotRegistered
	}
	if e.disabledAt == 0 {
		return ErrNotPaused
	}
	if now < e.disabledAt+cooldown {
		return ErrCooldownNotElapsed
	}
	e.disabledAt = 0
	s.entries[key] = e
	return nil
}

// Unregister deletes key outright. The key must have been disabled and the
// cooldown must have elapsed since the disabling event; an active entry
// cannot be removed because timestamps inside the cooldown window must
// remain queryable.
func (s *Set[K]) Unregister(now, cooldown uint64, key K) error {
	e, ok := s.entries[key]
	if !ok {
		return ErrNotRegistered
	}
	if e.disabledAt == 0 || now < e.disabledAt+cooldown {
		return ErrCooldownNotElapsed
	}
	delete(s.entries, key)
	for i, k := range s.order {
		if k == key {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
	return nil
}

// WasActiveAt reports whether key was active at timestamp.
func (s *Set[K]) WasActiveAt(timestamp uint64, key K) bool {
	e, ok := s.entries[key]
	return ok && e.activeAt(timestamp)
}

// Active returns all keys active at timestamp, in insertion order.
func (s *Set[K]) Active(timestamp uint64) []K {
	active := make([]K, 0, len(s.order))
	for _, k := range s.order {
		if s.entries[k].activeAt(timestamp) {
			active = append(active, k)
		}
	}
	return active
}

// Contains reports whether key is present, active or disabled.
func (s *Set[K]) Contains(key K) bool {
	_, ok := s.entries[key]
	return ok
}

// Len returns the number of present keys, active or disabled.
func (s *Set[K]) Len() int {
	return len(s.entries)
}
