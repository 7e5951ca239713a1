// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package ratelimit

import (
	"time"

	"golang.org/x/time/rate"

	"github.com/bitmark-inc/ctdledger/fault"
)

// Limit - wait for a single request slot
func Limit(limiter *rate.Limiter) error {
	return reserve(limiter, 1)
}

// LimitN - wait for count slots of a multiple request
//
// an invalid count is charged as a single request and rejected
func LimitN(limiter *rate.Limiter, count int, maximumCount int) error {
	if count <= 0 || count > maximumCount {
		if err := reserve(limiter, 1); nil != err {
			return err
		}
		return fault.InvalidCount
	}
	return reserve(limiter, count)
}

// LimitClipped - wait for count slots clipped to [1, maximumCount]
//
// for queries that accept any count and clip the result themselves
func LimitClipped(limiter *rate.Limiter, count uint64, maximumCount int) error {
	n := maximumCount
	if count < uint64(maximumCount) {
		n = int(count)
	}
	if n < 1 {
		n = 1
	}
	return reserve(limiter, n)
}

func reserve(limiter *rate.Limiter, n int) error {
	r := limiter.ReserveN(time.Now(), n)
	if !r.OK() {
		return fault.RateLimiting
	}
	time.Sleep(r.Delay())
	return nil
}
