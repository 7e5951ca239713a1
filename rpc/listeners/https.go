// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package listeners

import (
	"crypto/tls"
	"net"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/bitmark-inc/ctdledger/fault"
	"github.com/bitmark-inc/ctdledger/rpc/handler"
	"github.com/bitmark-inc/logger"
)

const (
	httpsLogName     = "https_rpc"
	readWriteTimeout = 10 * time.Second
	keepAlivePeriod  = 3 * time.Minute
)

// HTTPSConfiguration - configuration file data for HTTPS setup
type HTTPSConfiguration struct {
	MaximumConnections uint64              `gluamapper:"maximum_connections" json:"maximum_connections"`
	Listen             []string            `gluamapper:"listen" json:"listen"`
	Certificate        string              `gluamapper:"certificate" json:"certificate"`
	PrivateKey         string              `gluamapper:"private_key" json:"private_key"`
	Allow              map[string][]string `gluamapper:"allow" json:"allow"`
}

type httpsListener struct {
	sync.Mutex
	log       *logger.L
	bind      []bindAddress
	tlsConfig *tls.Config
	mux       *http.ServeMux
	servers   []*http.Server
	listeners []net.Listener
}

// NewHTTPS - JSON-RPC, details and metrics over HTTPS
//
// returns nil, nil when no listen address is configured
func NewHTTPS(
	configuration *HTTPSConfiguration,
	log *logger.L,
	tlsConfig *tls.Config,
	hdlr handler.Handler,
) (Listener, error) {
	if 0 == len(configuration.Listen) {
		log.Infof("disable: %s", httpsLogName)
		return nil, nil
	}

	if configuration.MaximumConnections < minConnectionCount {
		log.Errorf("invalid %s maximum connection limit: %d", httpsLogName, configuration.MaximumConnections)
		return nil, fault.MissingParameters
	}

	bind, err := parseListenAddresses(configuration.Listen, log)
	if nil != err {
		return nil, err
	}

	// create access control
	local := make(map[string][]*net.IPNet)
	for path, addresses := range configuration.Allow {
		set := make([]*net.IPNet, len(addresses))
		local[path] = set
		for i, ip := range addresses {
			_, cidr, err := net.ParseCIDR(strings.Trim(ip, " "))
			if nil != err {
				log.Errorf("%s allow %s: %q  error: %s", httpsLogName, path, ip, err)
				return nil, err
			}
			set[i] = cidr
		}
	}
	hdlr.SetAllow(local)

	mux := http.NewServeMux()
	mux.HandleFunc("/ctdledger/rpc", hdlr.RPC)
	mux.HandleFunc("/ctdledger/details", hdlr.Details)
	mux.HandleFunc("/metrics", hdlr.Metrics)
	mux.HandleFunc("/", hdlr.Root)

	return &httpsListener{
		log:       log,
		bind:      bind,
		tlsConfig: tlsConfig,
		mux:       mux,
	}, nil
}

type tcpKeepAliveListener struct {
	*net.TCPListener
}

func (ln tcpKeepAliveListener) Accept() (net.Conn, error) {
	tc, err := ln.AcceptTCP()
	if nil != err {
		return nil, err
	}
	_ = tc.SetKeepAlive(true)
	_ = tc.SetKeepAlivePeriod(keepAlivePeriod)
	return tc, nil
}

// Serve - bind every address and start serving
func (h *httpsListener) Serve() error {
	h.Lock()
	defer h.Unlock()

	cfg := h.tlsConfig.Clone()
	cfg.NextProtos = []string{"http/1.1"}

	for _, b := range h.bind {
		h.log.Infof("starting server: %s on: %q", httpsLogName, b.address)

		ln, err := net.Listen(b.network, b.address)
		if nil != err {
			h.log.Errorf("%s listen error: %s", httpsLogName, err)
			return err
		}

		s := &http.Server{
			Handler:        h.mux,
			ReadTimeout:    readWriteTimeout,
			WriteTimeout:   readWriteTimeout,
			MaxHeaderBytes: 1 << 20,
		}
		h.servers = append(h.servers, s)
		h.listeners = append(h.listeners, ln)

		tlsListener := tls.NewListener(tcpKeepAliveListener{ln.(*net.TCPListener)}, cfg)
		go func() {
			err := s.Serve(tlsListener)
			if http.ErrServerClosed != err {
				h.log.Errorf("%s serve error: %s", httpsLogName, err)
			}
		}()
	}

	return nil
}

// Addresses - the bound addresses
func (h *httpsListener) Addresses() []string {
	h.Lock()
	defer h.Unlock()

	addresses := make([]string, len(h.listeners))
	for i, l := range h.listeners {
		addresses[i] = l.Addr().String()
	}
	return addresses
}

// Close - stop every server
func (h *httpsListener) Close() error {
	h.Lock()
	defer h.Unlock()

	var err error
	for _, s := range h.servers {
		if e := s.Close(); nil != e {
			err = e
		}
	}
	h.servers = nil
	h.listeners = nil
	return err
}
