// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package handler

import (
	"encoding/json"
	"io"
	"net"
	"net/http"
	"net/rpc"
	"net/rpc/jsonrpc"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/bitmark-inc/ctdledger/counter"
	"github.com/bitmark-inc/ctdledger/issuance"
	"github.com/bitmark-inc/logger"
)

// names used in the allow configuration
const (
	AllowDetails = "details"
	AllowMetrics = "metrics"
)

// Handler - the HTTPS endpoints
type Handler interface {
	RPC(http.ResponseWriter, *http.Request)
	Details(http.ResponseWriter, *http.Request)
	Metrics(http.ResponseWriter, *http.Request)
	Root(http.ResponseWriter, *http.Request)
	SetAllow(map[string][]*net.IPNet)
}

// type to allow rpc system to interface to http request
type internalConnection struct {
	in  io.Reader
	out io.Writer
}

func (c *internalConnection) Read(p []byte) (n int, err error) {
	return c.in.Read(p)
}
func (c *internalConnection) Write(d []byte) (n int, err error) {
	return c.out.Write(d)
}
func (c *internalConnection) Close() error {
	return nil
}

type handler struct {
	log                *logger.L
	server             *rpc.Server
	start              time.Time
	version            string
	engine             *issuance.Engine
	metrics            http.Handler
	allow              map[string][]*net.IPNet
	count              counter.Counter
	maximumConnections uint64
}

// New - create the HTTPS handler
//
// engine and gatherer may be nil to disable details and metrics
func New(log *logger.L, server *rpc.Server, start time.Time, version string, maximumConnections uint64, engine *issuance.Engine, gatherer prometheus.Gatherer) Handler {
	h := &handler{
		log:                log,
		server:             server,
		start:              start,
		version:            version,
		engine:             engine,
		allow:              make(map[string][]*net.IPNet),
		maximumConnections: maximumConnections,
	}
	if nil != gatherer {
		h.metrics = promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})
	}
	return h
}

// SetAllow - replace the per endpoint address restrictions
func (h *handler) SetAllow(allow map[string][]*net.IPNet) {
	h.allow = allow
}

// Root - this matches anything not matched and returns error
func (h *handler) Root(w http.ResponseWriter, _ *http.Request) {
	sendNotFound(w)
}

// RPC - performs a call to any normal RPC
func (h *handler) RPC(w http.ResponseWriter, r *http.Request) {
	if http.MethodPost != r.Method {
		sendMethodNotAllowed(w)
		return
	}

	if !h.count.IncrementUpTo(h.maximumConnections) {
		sendTooManyRequests(w)
		return
	}
	defer h.count.Decrement()

	serverCodec := jsonrpc.NewServerCodec(&internalConnection{in: r.Body, out: w})
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("X-Content-Type-Options", "nosniff")
	err := h.server.ServeRequest(serverCodec)
	if nil != err {
		h.log.Warnf("rpc: serve error: %s", err)
		sendInternalServerError(w)
		return
	}
}

// DetailsReply - result of a details request
type DetailsReply struct {
	Name     string          `json:"name"`
	Symbol   string          `json:"symbol"`
	Price    uint64          `json:"price,string"`
	OnSale   bool            `json:"onSale"`
	Balance  uint64          `json:"balance,string"`
	Supply   issuance.Supply `json:"supply"`
	RPCs     uint64          `json:"rpcs"`
	Version  string          `json:"version"`
	Uptime   string          `json:"uptime"`
	Operator string          `json:"operator"`
}

// Details - GET the same information as Node.Info with sale and treasury state
func (h *handler) Details(w http.ResponseWriter, r *http.Request) {
	if http.MethodGet != r.Method {
		sendMethodNotAllowed(w)
		return
	}

	if !h.allowed(AllowDetails, r) {
		h.log.Warnf("Deny access: %q", r.RemoteAddr)
		sendForbidden(w)
		return
	}

	if nil == h.engine {
		sendNotFound(w)
		return
	}

	if !h.count.IncrementUpTo(h.maximumConnections) {
		sendTooManyRequests(w)
		return
	}
	defer h.count.Decrement()

	reply := DetailsReply{
		Name:     h.engine.Name(),
		Symbol:   h.engine.Symbol(),
		Price:    h.engine.Price(),
		OnSale:   h.engine.IsOnSale(),
		Balance:  h.engine.Balance(),
		Supply:   h.engine.Supply(),
		RPCs:     h.count.Uint64(),
		Version:  h.version,
		Uptime:   time.Since(h.start).String(),
		Operator: h.engine.Operator().String(),
	}

	sendReply(w, reply)
}

// Metrics - Prometheus exposition of the engine counters
func (h *handler) Metrics(w http.ResponseWriter, r *http.Request) {
	if http.MethodGet != r.Method {
		sendMethodNotAllowed(w)
		return
	}

	if !h.allowed(AllowMetrics, r) {
		h.log.Warnf("Deny access: %q", r.RemoteAddr)
		sendForbidden(w)
		return
	}

	if nil == h.metrics {
		sendNotFound(w)
		return
	}

	h.metrics.ServeHTTP(w, r)
}

// check the remote address against an endpoint's allowed networks
func (h *handler) allowed(name string, r *http.Request) bool {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if nil != err {
		return false
	}
	ip := net.ParseIP(host)
	if nil == ip {
		return false
	}
	for _, n := range h.allow[name] {
		if n.Contains(ip) {
			return true
		}
	}
	return false
}

// send an JSON encoded reply
func sendReply(w http.ResponseWriter, data interface{}) {
	text, err := json.Marshal(data)
	if nil != err {
		sendInternalServerError(w)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("X-Content-Type-Options", "nosniff")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(text)
}

// selected errors as required above
func sendNotFound(w http.ResponseWriter) {
	sendError(w, "not found", http.StatusNotFound)
}
func sendMethodNotAllowed(w http.ResponseWriter) {
	sendError(w, "method not allowed", http.StatusMethodNotAllowed)
}
func sendForbidden(w http.ResponseWriter) {
	sendError(w, "forbidden", http.StatusForbidden)
}
func sendTooManyRequests(w http.ResponseWriter) {
	sendError(w, http.StatusText(http.StatusTooManyRequests), http.StatusTooManyRequests)
}
func sendInternalServerError(w http.ResponseWriter) {
	sendError(w, "internal server error", http.StatusInternalServerError)
}

// to compose JSON error messages
type eType struct {
	Code  int    `json:"code"`
	Error string `json:"error"`
}

// output an error with a JSON body
func sendError(w http.ResponseWriter, message string, code int) {
	text, err := json.Marshal(eType{
		Code:  code,
		Error: message,
	})
	if nil != err {
		// manually composed error just incase JSON fails
		http.Error(w, `{"code":500,"error":"Internal Server Error"}`, http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("X-Content-Type-Options", "nosniff")
	w.WriteHeader(code)
	_, _ = w.Write(text)
}
