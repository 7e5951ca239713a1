// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package issuance

import (
	"github.com/bitmark-inc/ctdledger/account"
	"github.com/bitmark-inc/ctdledger/merkle"
)

// SetPrice - operator sets the unit price
func (e *Engine) SetPrice(caller account.Account, units uint64) error {
	return e.update("setPrice", func() error {
		if err := e.isOperator(caller); nil != err {
			return err
		}
		e.sale.SetPrice(units)
		return nil
	})
}

// SetSaleStatus - operator opens or closes the sale
func (e *Engine) SetSaleStatus(caller account.Account, enabled bool) error {
	return e.update("setSaleStatus", func() error {
		if err := e.isOperator(caller); nil != err {
			return err
		}
		return e.sale.SetStatus(enabled)
	})
}

// SetMerkleRoot - operator replaces the allowlist root
func (e *Engine) SetMerkleRoot(caller account.Account, root merkle.Digest) error {
	return e.update("setMerkleRoot", func() error {
		if err := e.isOperator(caller); nil != err {
			return err
		}
		e.allowlist.SetRoot(root)
		return nil
	})
}

// UpdateImageURL - operator replaces the image
func (e *Engine) UpdateImageURL(caller account.Account, s string) error {
	return e.update("updateImageURL", func() error {
		if err := e.isOperator(caller); nil != err {
			return err
		}
		return e.metadata.UpdateImageURL(s)
	})
}

// UpdateAnimationURL - operator replaces the animation
func (e *Engine) UpdateAnimationURL(caller account.Account, s string) error {
	return e.update("updateAnimationURL", func() error {
		if err := e.isOperator(caller); nil != err {
			return err
		}
		return e.metadata.UpdateAnimationURL(s)
	})
}

// UpdateExternalURL - operator replaces the external link
func (e *Engine) UpdateExternalURL(caller account.Account, s string) error {
	return e.update("updateExternalURL", func() error {
		if err := e.isOperator(caller); nil != err {
			return err
		}
		return e.metadata.UpdateExternalURL(s)
	})
}

// FreezeMetadata - operator makes metadata permanent
func (e *Engine) FreezeMetadata(caller account.Account) error {
	return e.update("freezeMetadata", func() error {
		if err := e.isOperator(caller); nil != err {
			return err
		}
		return e.metadata.Freeze()
	})
}
