// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package handler_test

import (
	"bytes"
	"encoding/json"
	"io/ioutil"
	"net"
	"net/http"
	"net/http/httptest"
	"net/rpc"
	"os"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"

	"github.com/bitmark-inc/ctdledger/constants"
	"github.com/bitmark-inc/ctdledger/fixtures"
	rpcfixtures "github.com/bitmark-inc/ctdledger/rpc/fixtures"
	"github.com/bitmark-inc/ctdledger/rpc/handler"
	"github.com/bitmark-inc/logger"
)

const (
	notAllowed      = "method not allowed"
	tooManyRequests = "Too Many Requests"
)

type eResp struct {
	Code  int    `json:"code"`
	Error string `json:"error"`
}

type jResp struct {
	ID     int         `json:"id"`
	Result int         `json:"result"`
	Error  interface{} `json:"error"`
}

type jReq struct {
	ID     int      `json:"id"`
	Method string   `json:"method"`
	Params []AddArg `json:"params"`
}

type Add struct{}
type AddArg struct {
	A int `json:"A"`
	B int `json:"B"`
}

func (a Add) Add(arg *AddArg, reply *int) error {
	*reply = arg.A + arg.B
	return nil
}

func TestMain(m *testing.M) {
	fixtures.SetupTestLogger()
	rc := m.Run()
	fixtures.TeardownTestLogger()
	os.Exit(rc)
}

func newHandler(maximumConnections uint64) handler.Handler {
	s := rpc.NewServer()
	_ = s.Register(Add{})
	return handler.New(logger.New(fixtures.LogCategory), s, time.Now(), "1.0", maximumConnections, nil, nil)
}

func allowLocal(h handler.Handler, names ...string) {
	allow := make(map[string][]*net.IPNet)
	_, ipNet, _ := net.ParseCIDR("192.0.2.1/32")
	for _, name := range names {
		allow[name] = []*net.IPNet{ipNet}
	}
	h.SetAllow(allow)
}

func TestRoot(t *testing.T) {
	h := newHandler(5)

	req := httptest.NewRequest("GET", "http://not.found", nil)
	w := httptest.NewRecorder()
	h.Root(w, req)

	resp := w.Result()
	var j eResp
	_ = json.NewDecoder(resp.Body).Decode(&j)

	assert.Equal(t, "not found", j.Error, "wrong response")
	assert.Equal(t, http.StatusNotFound, j.Code, "wrong http code")
}

func TestRPC(t *testing.T) {
	h := newHandler(5)

	add := AddArg{
		A: 1,
		B: 2,
	}
	arg := jReq{
		ID:     5,
		Method: "Add.Add",
		Params: []AddArg{add},
	}
	data, _ := json.Marshal(arg)

	req := httptest.NewRequest("POST", "http://not.exist", bytes.NewReader(data))
	w := httptest.NewRecorder()
	h.RPC(w, req)

	resp := w.Result()
	var j jResp
	_ = json.NewDecoder(resp.Body).Decode(&j)
	assert.Equal(t, http.StatusOK, resp.StatusCode, "wrong status code")
	assert.Equal(t, 5, j.ID, "wrong id")
	assert.Equal(t, add.A+add.B, j.Result, "wrong result")
	assert.Nil(t, j.Error, "wrong error")
}

func TestRPCWhenWrongHTTPMethod(t *testing.T) {
	h := newHandler(5)

	req := httptest.NewRequest("GET", "http://not.exist", nil)
	w := httptest.NewRecorder()
	h.RPC(w, req)

	var j eResp
	_ = json.NewDecoder(w.Result().Body).Decode(&j)
	assert.Equal(t, notAllowed, j.Error, "wrong method")
}

func TestRPCWhenTooManyConnections(t *testing.T) {
	h := newHandler(0)

	req := httptest.NewRequest("POST", "http://not.exist", nil)
	w := httptest.NewRecorder()
	h.RPC(w, req)

	var j eResp
	_ = json.NewDecoder(w.Result().Body).Decode(&j)
	assert.Equal(t, tooManyRequests, j.Error, "wrong error")
	assert.Equal(t, http.StatusTooManyRequests, j.Code, "wrong code")
}

func TestRPCWhenServeError(t *testing.T) {
	h := newHandler(5)

	req := httptest.NewRequest("POST", "http://not.exist", bytes.NewReader([]byte("not json")))
	w := httptest.NewRecorder()
	h.RPC(w, req)

	b, _ := ioutil.ReadAll(w.Result().Body)
	assert.Contains(t, string(b), "internal server error", "wrong response")
}

func TestDetails(t *testing.T) {
	e := rpcfixtures.NewEngine(t, nil)
	defer e.Close()

	h := handler.New(logger.New(fixtures.LogCategory), rpc.NewServer(), time.Now(), "1.0", 5, e.Engine, nil)
	allowLocal(h, handler.AllowDetails)

	req := httptest.NewRequest("GET", "http://test.com/ctdledger/details", nil)
	w := httptest.NewRecorder()
	h.Details(w, req)

	resp := w.Result()
	assert.Equal(t, http.StatusOK, resp.StatusCode, "wrong status")

	var reply handler.DetailsReply
	_ = json.NewDecoder(resp.Body).Decode(&reply)
	assert.Equal(t, constants.DefaultSymbol, reply.Symbol, "wrong symbol")
	assert.Equal(t, "1.0", reply.Version, "wrong version")
	assert.Equal(t, uint64(constants.PublicSupply), reply.Supply.RemainingForSale, "wrong remaining")
	assert.Equal(t, fixtures.Operator.Account.String(), reply.Operator, "wrong operator")
}

func TestDetailsWhenNotAllow(t *testing.T) {
	e := rpcfixtures.NewEngine(t, nil)
	defer e.Close()

	h := handler.New(logger.New(fixtures.LogCategory), rpc.NewServer(), time.Now(), "1.0", 5, e.Engine, nil)

	req := httptest.NewRequest("GET", "http://test.com/ctdledger/details", nil)
	w := httptest.NewRecorder()
	h.Details(w, req)

	var j eResp
	_ = json.NewDecoder(w.Result().Body).Decode(&j)
	assert.Equal(t, "forbidden", j.Error, "wrong not allow")
}

func TestDetailsWhenWrongHTTPMethod(t *testing.T) {
	h := newHandler(5)

	req := httptest.NewRequest("POST", "http://not.exist", nil)
	w := httptest.NewRecorder()
	h.Details(w, req)

	var j eResp
	_ = json.NewDecoder(w.Result().Body).Decode(&j)
	assert.Equal(t, notAllowed, j.Error, "wrong method")
}

func TestMetrics(t *testing.T) {
	registry := prometheus.NewRegistry()
	c := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "handler_test_total",
		Help: "test counter",
	})
	registry.MustRegister(c)
	c.Inc()

	h := handler.New(logger.New(fixtures.LogCategory), rpc.NewServer(), time.Now(), "1.0", 5, nil, registry)
	allowLocal(h, handler.AllowMetrics)

	req := httptest.NewRequest("GET", "http://test.com/metrics", nil)
	w := httptest.NewRecorder()
	h.Metrics(w, req)

	resp := w.Result()
	b, _ := ioutil.ReadAll(resp.Body)
	assert.Equal(t, http.StatusOK, resp.StatusCode, "wrong status")
	assert.Contains(t, string(b), "handler_test_total 1", "wrong exposition")
}

func TestMetricsWhenNotAllow(t *testing.T) {
	h := handler.New(logger.New(fixtures.LogCategory), rpc.NewServer(), time.Now(), "1.0", 5, nil, prometheus.NewRegistry())
	allowLocal(h, handler.AllowDetails)

	req := httptest.NewRequest("GET", "http://test.com/metrics", nil)
	w := httptest.NewRecorder()
	h.Metrics(w, req)

	var j eResp
	_ = json.NewDecoder(w.Result().Body).Decode(&j)
	assert.Equal(t, "forbidden", j.Error, "wrong not allow")
}
