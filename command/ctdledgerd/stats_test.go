// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"testing"
	"time"

	"github.com/bitmark-inc/ctdledger/background"
	"github.com/bitmark-inc/ctdledger/fixtures"
)

func TestMemstatsStops(t *testing.T) {
	fixtures.SetupTestLogger()
	defer fixtures.TeardownTestLogger()

	p := background.Start(background.Processes{newMemstats(time.Millisecond)}, nil)
	time.Sleep(5 * time.Millisecond)

	done := make(chan struct{})
	go func() {
		p.Stop()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("memory stats did not stop")
	}
}
