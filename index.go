// Copyright (C) 2019-2025, Lux Industries Inc All rights reserved.
// See the file LICENSE for licensing terms.

package restake

import "github.com/luxfi/geth/common"

// operatorVaultIndex maps a vault to the operator it was registered
// against. A vault appears here iff it was registered through the
// operator-bound path; mutual exclusivity with the shared set is enforced
// at admission.
type operatorVaultIndex map[common.Address]common.Address

func (x operatorVaultIndex) bind(vault, operator common.Address) {
	x[vault] = operator
}

func (x operatorVaultIndex) unbind(vault common.Address) {
	delete(x, vault)
}

func (x operatorVaultIndex) operatorOf(vault common.Address) (common.Address, bool) {
	operator, ok := x[vault]
	return operator, ok
}

func (x operatorVaultIndex) isBound(vault common.Address) bool {
	_, ok := x[vault]
	return ok
}
