// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package storage

// Transaction - the write transaction returned by Begin
//
// pool writes are only legal while a transaction is open
type Transaction interface {
	Commit() error
	Abort()
	Writes() int
}

type transaction struct {
	access Access
}

// Commit - make all staged writes durable
func (t *transaction) Commit() error {
	return t.access.Commit()
}

// Abort - discard all staged writes
func (t *transaction) Abort() {
	t.access.Abort()
}

// Writes - number of writes staged so far
func (t *transaction) Writes() int {
	return t.access.Pending()
}
