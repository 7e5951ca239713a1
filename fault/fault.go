// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package fault

// GenericError - error base
type GenericError string

// to allow for different classes of errors
type ExistsError GenericError
type InvalidError GenericError
type LimitError GenericError
type NotFoundError GenericError
type PermissionError GenericError
type ProcessError GenericError

// common errors - keep in alphabetic order
var (
	AccountMismatch          = InvalidError("account does not match public key")
	AlreadyClaimed           = ExistsError("account minted token already")
	AlreadyFrozen            = ProcessError("already frozen")
	AlreadyInitialised       = ExistsError("already initialised")
	AlreadyMinted            = ExistsError("token already minted")
	AmountOverflow           = LimitError("amount overflow")
	CannotVerify             = InvalidError("can not verify")
	CertificateFileExists    = ExistsError("certificate file already exists")
	ConfigurationNotTable    = InvalidError("configuration result is not a table")
	DatabaseIsNotSet         = NotFoundError("database is not set")
	InsufficientBalance      = LimitError("insufficient balance")
	InvalidAccount           = InvalidError("invalid account")
	InvalidCount             = InvalidError("invalid count")
	InvalidCursor            = InvalidError("invalid cursor")
	InvalidDigest            = InvalidError("invalid digest")
	InvalidField             = InvalidError("invalid metadata field")
	InvalidIpAddress         = InvalidError("invalid IP address")
	InvalidNonce             = InvalidError("invalid nonce")
	InvalidPrice             = InvalidError("invalid price")
	InvalidPublicKey         = InvalidError("invalid public key")
	InvalidSignature         = InvalidError("invalid signature")
	InvalidTokenId           = InvalidError("invalid token id")
	InvalidURL               = InvalidError("invalid URL")
	KeyFileExists            = ExistsError("key file already exists")
	MissingParameters        = InvalidError("missing parameters")
	NoMerkleRoot             = NotFoundError("no merkle root")
	NonexistentToken         = NotFoundError("URI query for nonexistent token")
	NotInitialised           = NotFoundError("not initialised")
	NotOnSale                = ProcessError("not on sale")
	NotOperator              = PermissionError("caller is not the owner")
	OutOfRange               = InvalidError("token id out of range")
	PaymentFailed            = ProcessError("payment failed")
	PriceNotSet              = ProcessError("price is not set yet")
	RateLimiting             = LimitError("rate limiting")
	ReserveExhausted         = LimitError("all reserved tokens are minted")
	TransactionAlreadyInUse  = ProcessError("transaction already in use")
	TransactionNotInProgress = ProcessError("transaction not in progress")
)

// the error interface base method
func (e GenericError) Error() string { return string(e) }

// the error interface methods
func (e ExistsError) Error() string     { return string(e) }
func (e InvalidError) Error() string    { return string(e) }
func (e LimitError) Error() string      { return string(e) }
func (e NotFoundError) Error() string   { return string(e) }
func (e PermissionError) Error() string { return string(e) }
func (e ProcessError) Error() string    { return string(e) }

// determine the class of an error
func IsErrExists(e error) bool     { _, ok := e.(ExistsError); return ok }
func IsErrInvalid(e error) bool    { _, ok := e.(InvalidError); return ok }
func IsErrLimit(e error) bool      { _, ok := e.(LimitError); return ok }
func IsErrNotFound(e error) bool   { _, ok := e.(NotFoundError); return ok }
func IsErrPermission(e error) bool { _, ok := e.(PermissionError); return ok }
func IsErrProcess(e error) bool    { _, ok := e.(ProcessError); return ok }
