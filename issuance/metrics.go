// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package issuance

import (
	"github.com/prometheus/client_golang/prometheus"
)

// issue path label values
const (
	pathSale    = "sale"
	pathClaim   = "claim"
	pathReserve = "reserve"
)

type metrics struct {
	issued    *prometheus.CounterVec
	accepted  *prometheus.CounterVec
	rejected  *prometheus.CounterVec
	remaining *prometheus.GaugeVec
	balance   prometheus.Gauge
}

func newMetrics(registerer prometheus.Registerer) (*metrics, error) {
	m := &metrics{
		issued: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "ctdledger_issued_tokens_total",
			Help: "Tokens issued, by issue path",
		}, []string{"path"}),
		accepted: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "ctdledger_accepted_operations_total",
			Help: "Committed mutating operations",
		}, []string{"operation"}),
		rejected: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "ctdledger_rejected_operations_total",
			Help: "Rejected mutating operations, by error",
		}, []string{"operation", "error"}),
		remaining: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "ctdledger_remaining_tokens",
			Help: "Ids still available, by range",
		}, []string{"range"}),
		balance: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "ctdledger_treasury_balance",
			Help: "Value held by the treasury",
		}),
	}

	if nil == registerer {
		return m, nil
	}
	for _, c := range []prometheus.Collector{m.issued, m.accepted, m.rejected, m.remaining, m.balance} {
		if err := registerer.Register(c); nil != err {
			return nil, err
		}
	}
	return m, nil
}
