// Copyright (C) 2019-2025, Lux Industries Inc All rights reserved.
// See the file LICENSE for licensing terms.

package restake

import "errors"

// Every failure surfaces as one of these named conditions so callers can
// present a precise reason. All of them abort the enclosing invocation;
// none are retried internally.
var (
	ErrNotVault                 = errors.New("not a vault")
	ErrVaultNotInitialized      = errors.New("vault not initialized")
	ErrVaultAlreadyRegistered   = errors.New("vault already registered")
	ErrVaultEpochTooShort       = errors.New("vault epoch too short")
	ErrUnknownSlasherType       = errors.New("unknown slasher type")
	ErrNonVetoSlasher           = errors.New("not a veto slasher")
	ErrNotOperatorSpecificVault = errors.New("not an operator-specific vault")
	ErrAmountOverflow           = errors.New("slash amount overflow")
)
