/*
 * Copyright 2024 The Hostmux Authors
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

package config

import (
	"crypto/tls"
)

// TLSCertConfig returns the crypto/tls configuration object with the cert
// derived from the running config, or nil when TLS is not configured
func (c *Config) TLSCertConfig() (*tls.Config, error) {
	if c.Frontend == nil || !c.Frontend.ServeTLS {
		return nil, nil
	}
	cert, err := tls.LoadX509KeyPair(c.Frontend.TLSCertPath, c.Frontend.TLSKeyPath)
	if err != nil {
		return nil, err
	}
	return &tls.Config{
		NextProtos:   []string{"h2"},
		Certificates: []tls.Certificate{cert},
	}, nil
}
