// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package fault_test

import (
	"testing"

	"github.com/bitmark-inc/ctdledger/fault"
)

var (
	ErrExistsOne     = fault.ExistsError("exists one ")
	ErrExistsTwo     = fault.ExistsError("exists two")
	ErrInvalidOne    = fault.InvalidError("invalid one")
	ErrInvalidTwo    = fault.InvalidError("invalid two")
	ErrLimitOne      = fault.LimitError("limit one")
	ErrLimitTwo      = fault.LimitError("limit two")
	ErrNotFoundOne   = fault.NotFoundError("not found one")
	ErrNotFoundTwo   = fault.NotFoundError("not found two")
	ErrPermissionOne = fault.PermissionError("permission one")
	ErrPermissionTwo = fault.PermissionError("permission two")
	ErrProcessOne    = fault.ProcessError("process one")
	ErrProcessTwo    = fault.ProcessError("process two")
)

// test that various errors can be subclassed
func TestClasses(t *testing.T) {
	errorList := []struct {
		err        error
		exists     bool
		invalid    bool
		limit      bool
		notFound   bool
		permission bool
		process    bool
	}{
		{ErrExistsOne, true, false, false, false, false, false},
		{ErrExistsTwo, true, false, false, false, false, false},
		{ErrInvalidOne, false, true, false, false, false, false},
		{ErrInvalidTwo, false, true, false, false, false, false},
		{ErrLimitOne, false, false, true, false, false, false},
		{ErrLimitTwo, false, false, true, false, false, false},
		{ErrNotFoundOne, false, false, false, true, false, false},
		{ErrNotFoundTwo, false, false, false, true, false, false},
		{ErrPermissionOne, false, false, false, false, true, false},
		{ErrPermissionTwo, false, false, false, false, true, false},
		{ErrProcessOne, false, false, false, false, false, true},
		{ErrProcessTwo, false, false, false, false, false, true},
	}

	for i, e := range errorList {
		err := e.err
		if fault.IsErrExists(err) != e.exists {
			t.Errorf("%d: expected 'exists' == %v for err = %v", i, e.exists, err)
		}
		if fault.IsErrInvalid(err) != e.invalid {
			t.Errorf("%d: expected 'invalid' == %v for err = %v", i, e.invalid, err)
		}
		if fault.IsErrLimit(err) != e.limit {
			t.Errorf("%d: expected 'limit' == %v for err = %v", i, e.limit, err)
		}
		if fault.IsErrNotFound(err) != e.notFound {
			t.Errorf("%d: expected 'not found' == %v for err = %v", i, e.notFound, err)
		}
		if fault.IsErrPermission(err) != e.permission {
			t.Errorf("%d: expected 'permission' == %v for err = %v", i, e.permission, err)
		}
		if fault.IsErrProcess(err) != e.process {
			t.Errorf("%d: expected 'process' == %v for err = %v", i, e.process, err)
		}
	}
}

// each issuance failure must report a distinct message
func TestIssuanceMessagesAreDistinct(t *testing.T) {
	errorList := []error{
		fault.PriceNotSet,
		fault.NotOnSale,
		fault.InvalidPrice,
		fault.OutOfRange,
		fault.InvalidTokenId,
		fault.AlreadyMinted,
		fault.AlreadyClaimed,
		fault.NoMerkleRoot,
		fault.CannotVerify,
		fault.ReserveExhausted,
		fault.InsufficientBalance,
		fault.NonexistentToken,
		fault.AlreadyFrozen,
		fault.NotOperator,
	}

	seen := make(map[string]int)
	for i, err := range errorList {
		if j, ok := seen[err.Error()]; ok {
			t.Errorf("%d: message %q duplicates entry %d", i, err, j)
		}
		seen[err.Error()] = i
	}
}
