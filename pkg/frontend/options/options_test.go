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

package options

import "testing"

func TestNew(t *testing.T) {
	o := New()
	if o.ListenPort != DefaultProxyListenPort {
		t.Errorf("expected port %d, got %d", DefaultProxyListenPort, o.ListenPort)
	}
	if o.TLSListenPort != DefaultTLSProxyListenPort {
		t.Errorf("expected port %d, got %d", DefaultTLSProxyListenPort, o.TLSListenPort)
	}
}

func TestCloneAndEqual(t *testing.T) {
	o := New()
	o.ConnectionsLimit = 100
	o.TLSCertPath = "/cert.pem"
	o.TLSKeyPath = "/key.pem"
	o.ServeTLS = true

	c := o.Clone()
	if !o.Equal(c) {
		t.Error("expected clone to equal original")
	}
	c.ListenPort++
	if o.Equal(c) {
		t.Error("expected modified clone to differ")
	}
}
