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

// Package router defines the Hostmux Router interface
package router

import (
	"net/http"
)

// Router routes an inbound HTTP request to the handler registered for the
// request's host and path
type Router interface {
	// ServeHTTP services the provided HTTP Request and writes the Response
	ServeHTTP(http.ResponseWriter, *http.Request)
	// RegisterRoute registers a handler for the provided route string.
	// A route ending in "/" matches any path it prefixes, a route not
	// beginning with "/" is host-qualified (e.g., "example.com/path/"),
	// and any other route matches its path exactly.
	RegisterRoute(route string, handler http.Handler) error
	// Handler returns the handler matching the host/path in the Request,
	// along with the route string that produced the match. Redirect and
	// Not Found handlers are synthesized when no registered route serves
	// the request directly.
	Handler(*http.Request) (http.Handler, string)
	// SetMatchingScheme specifies the ways the Router matches requests
	SetMatchingScheme(MatchingScheme)
}

// MatchingScheme is a bitmap of the request attributes a Router considers
type MatchingScheme int

const (
	MatchHostname   MatchingScheme = 1
	MatchPathPrefix MatchingScheme = 2

	DefaultMatchingScheme MatchingScheme = MatchHostname | MatchPathPrefix
)
