// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package listeners

import (
	"net"
	"strings"

	"github.com/bitmark-inc/ctdledger/fault"
	"github.com/bitmark-inc/logger"
)

const minConnectionCount = 1

// Listener - a set of bound server sockets
type Listener interface {
	Serve() error
	Addresses() []string
	Close() error
}

// network and address to bind for each configured listen string
//
//   "*:PORT"        tcp  on [::]:PORT (tcp4 and tcp6)
//   "[v6addr]:PORT" tcp6
//   "v4addr:PORT"   tcp4
type bindAddress struct {
	network string
	address string
}

func parseListenAddresses(addresses []string, log *logger.L) ([]bindAddress, error) {
	parsed := make([]bindAddress, 0, len(addresses))
	for _, listen := range addresses {
		host, port, err := net.SplitHostPort(strings.TrimSpace(listen))
		if nil != err {
			log.Errorf("listen address: %q  error: %s", listen, err)
			return nil, fault.InvalidIpAddress
		}

		b := bindAddress{}
		switch {
		case "*" == host:
			b.network = "tcp"
			host = "::"
		case strings.Contains(host, ":"):
			b.network = "tcp6"
		default:
			b.network = "tcp4"
		}

		if ip := net.ParseIP(host); nil == ip {
			log.Errorf("listen address: %q  error: %s", listen, fault.InvalidIpAddress)
			return nil, fault.InvalidIpAddress
		}
		b.address = net.JoinHostPort(host, port)
		parsed = append(parsed, b)
	}
	return parsed, nil
}
