// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package rpc

import (
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/bitmark-inc/ctdledger/counter"
	"github.com/bitmark-inc/ctdledger/fault"
	"github.com/bitmark-inc/ctdledger/issuance"
	"github.com/bitmark-inc/ctdledger/rpc/certificate"
	"github.com/bitmark-inc/ctdledger/rpc/handler"
	"github.com/bitmark-inc/ctdledger/rpc/listeners"
	"github.com/bitmark-inc/ctdledger/rpc/server"
	"github.com/bitmark-inc/logger"
)

const (
	rpcName   = "client_rpc"
	httpsName = "https_rpc"
)

// globals
type rpcData struct {
	sync.RWMutex // to allow locking

	log *logger.L // logger

	listeners []listeners.Listener

	// set once during initialise
	initialised bool
}

// global data
var globalData rpcData

// number of open RPC connections
var connectionCountRPC counter.Counter

// Initialise - start the RPC and HTTPS listeners
//
// gatherer may be nil to disable the metrics endpoint
func Initialise(rpcConfiguration *listeners.RPCConfiguration, httpsConfiguration *listeners.HTTPSConfiguration, version string, engine *issuance.Engine, gatherer prometheus.Gatherer) error {

	globalData.Lock()
	defer globalData.Unlock()

	// no need to start if already started
	if globalData.initialised {
		return fault.AlreadyInitialised
	}

	if nil == engine {
		return fault.NotInitialised
	}

	log := logger.New("rpc")
	globalData.log = log
	log.Info("starting…")

	tlsConfig, fingerprint, err := certificate.Get(log, rpcName, rpcConfiguration.Certificate, rpcConfiguration.PrivateKey)
	if nil != err {
		return err
	}

	rpcListener, err := listeners.NewRPC(
		rpcConfiguration,
		log,
		&connectionCountRPC,
		server.Create(log, version, &connectionCountRPC, engine),
		tlsConfig,
		fingerprint,
	)
	if nil != err {
		return err
	}
	err = rpcListener.Serve()
	if nil != err {
		return err
	}
	globalData.listeners = append(globalData.listeners, rpcListener)

	err = initialiseHTTPS(httpsConfiguration, version, engine, gatherer)
	if nil != err {
		closeListeners()
		return err
	}

	// all data initialised
	globalData.initialised = true

	return nil
}

func initialiseHTTPS(configuration *listeners.HTTPSConfiguration, version string, engine *issuance.Engine, gatherer prometheus.Gatherer) error {
	log := globalData.log

	if 0 == len(configuration.Listen) {
		log.Infof("disable: %s", httpsName)
		return nil
	}

	tlsConfig, fingerprint, err := certificate.Get(log, httpsName, configuration.Certificate, configuration.PrivateKey)
	if nil != err {
		return err
	}

	log.Infof("%s: SHA3-256 fingerprint: %x", httpsName, fingerprint)

	var httpsCount counter.Counter
	hdlr := handler.New(
		log,
		server.Create(log, version, &httpsCount, engine),
		time.Now(),
		version,
		configuration.MaximumConnections,
		engine,
		gatherer,
	)

	httpsListener, err := listeners.NewHTTPS(configuration, log, tlsConfig, hdlr)
	if nil != err {
		return err
	}
	err = httpsListener.Serve()
	if nil != err {
		return err
	}
	globalData.listeners = append(globalData.listeners, httpsListener)

	return nil
}

// must hold lock
func closeListeners() {
	for _, l := range globalData.listeners {
		if err := l.Close(); nil != err {
			globalData.log.Warnf("listener close error: %s", err)
		}
	}
	globalData.listeners = nil
}

// Finalise - stop all listeners
func Finalise() error {
	globalData.Lock()
	defer globalData.Unlock()

	if !globalData.initialised {
		return fault.NotInitialised
	}

	globalData.log.Info("shutting down…")
	globalData.log.Flush()

	closeListeners()

	// finally...
	globalData.initialised = false

	globalData.log.Info("finished")
	globalData.log.Flush()

	return nil
}
