// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"runtime"
	"time"

	"github.com/bitmark-inc/logger"
)

const (
	statsDelay = 60 * time.Second
	mega       = 1048576
)

// background process to periodically log memory use
type memstats struct {
	log   *logger.L
	delay time.Duration
}

func newMemstats(delay time.Duration) *memstats {
	return &memstats{
		log:   logger.New("memory"),
		delay: delay,
	}
}

func (m *memstats) Run(args interface{}, shutdown <-chan struct{}) {

	defer m.log.Info("stopped")

	ticker := time.NewTicker(m.delay)
	defer ticker.Stop()

	for {
		var s runtime.MemStats
		runtime.ReadMemStats(&s)

		m.log.Infof("allocated: %d M  cumulative: %d M  OS virtual: %d M  heap objects: %d  GC runs: %d",
			s.Alloc/mega, s.TotalAlloc/mega, s.Sys/mega, s.HeapObjects, s.NumGC)

		select {
		case <-shutdown:
			return
		case <-ticker.C:
		}
	}
}
