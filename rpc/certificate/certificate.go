// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package certificate

import (
	"crypto/tls"
	"io/ioutil"
	"os"
	"time"

	"golang.org/x/crypto/sha3"

	"github.com/bitmark-inc/certgen"
	"github.com/bitmark-inc/ctdledger/fault"
	"github.com/bitmark-inc/logger"
)

const validity = 10 * 365 * 24 * time.Hour

// Get - load a certificate and key pair from files
//
// returns a TLS configuration and the fingerprint of the certificate
func Get(log *logger.L, name, certificateFileName, keyFileName string) (*tls.Config, [32]byte, error) {
	var fin [32]byte

	keyPair, err := tls.LoadX509KeyPair(certificateFileName, keyFileName)
	if nil != err {
		log.Errorf("%s failed to load keypair: %v", name, err)
		return nil, fin, err
	}

	tlsConfiguration := &tls.Config{
		Certificates: []tls.Certificate{
			keyPair,
		},
	}

	fin = Fingerprint(keyPair.Certificate[0])

	return tlsConfiguration, fin, nil
}

// Generate - create a self-signed certificate and key pair
//
// existing files are never overwritten
func Generate(name, certificateFileName, keyFileName string, extraHosts []string) error {
	if exists(certificateFileName) {
		return fault.CertificateFileExists
	}
	if exists(keyFileName) {
		return fault.KeyFileExists
	}

	organisation := "ctdledgerd self signed cert for: " + name
	cert, key, err := certgen.NewTLSCertPair(organisation, time.Now().Add(validity), false, extraHosts)
	if nil != err {
		return err
	}

	if err = ioutil.WriteFile(certificateFileName, cert, 0666); nil != err {
		return err
	}

	if err = ioutil.WriteFile(keyFileName, key, 0600); nil != err {
		_ = os.Remove(certificateFileName)
		return err
	}

	return nil
}

// Fingerprint - SHA3-256 of a DER certificate
//
// openssl x509 -outform DER -in ctdledgerd-local-rpc.crt | sha3sum -a 256
func Fingerprint(certificate []byte) [32]byte {
	return sha3.Sum256(certificate)
}

func exists(fileName string) bool {
	_, err := os.Stat(fileName)
	return nil == err
}
