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

// Package urls provides helpers for request URL and hostname handling
package urls

import (
	"net"
	"net/http"
	"net/url"
	"path"
	"strings"
)

// NormalizePath returns the canonical form of the provided URL path,
// eliminating . and .. segments and duplicate slashes. A trailing slash
// survives normalization, and the result always has a leading slash.
// NormalizePath is idempotent.
func NormalizePath(p string) string {
	if p == "" {
		return "/"
	}
	if p[0] != '/' {
		p = "/" + p
	}
	np := path.Clean(p)
	// path.Clean removes the trailing slash except for the root;
	// put it back if the input carried one
	if p[len(p)-1] == '/' && np != "/" {
		if len(p) == len(np)+1 && strings.HasPrefix(p, np) {
			np = p
		} else {
			np += "/"
		}
	}
	return np
}

// RedirectURL returns a relative redirect target for the provided request URL
// with its path replaced by newPath. The query string is preserved and any
// fragment is dropped.
func RedirectURL(u *url.URL, newPath string) string {
	ru := &url.URL{Path: newPath, RawQuery: u.RawQuery}
	return ru.String()
}

// Hostname returns the hostname to use when routing the provided request:
// the Host header with any port stripped, falling back to the hostname
// component of the request URL when no Host header was conveyed.
func Hostname(r *http.Request) string {
	if r.Host != "" {
		return stripHostPort(r.Host)
	}
	return r.URL.Hostname()
}

// stripHostPort removes the :port suffix from h, tolerating IPv6 literals
func stripHostPort(h string) string {
	if !strings.Contains(h, ":") {
		return h
	}
	host, _, err := net.SplitHostPort(h)
	if err != nil {
		return h
	}
	return host
}
