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

// Package lm represents a simple Longest Match router. Routes are matched by
// hostname and path: an exact route match always wins, and among subtree
// routes (those ending in "/") the longest registered prefix of the request
// path wins. Host-qualified routes are tried in their entirety before
// host-less routes. Requests for a path one slash short of a registered
// subtree, or for a non-canonical path, receive a 301 redirect to the
// canonical form with the query string preserved.
package lm

import (
	"net/http"
	"sort"
	"strings"
	"sync"

	"github.com/hostmux/hostmux/pkg/errors"
	"github.com/hostmux/hostmux/pkg/proxy/handlers"
	"github.com/hostmux/hostmux/pkg/proxy/headers"
	"github.com/hostmux/hostmux/pkg/proxy/urls"
	"github.com/hostmux/hostmux/pkg/router"
	"github.com/hostmux/hostmux/pkg/router/route"
)

var _ router.Router = &lmRouter{}

type lmRouter struct {
	mtx         sync.RWMutex
	matchScheme router.MatchingScheme
	exact       route.Lookup
	subtrees    route.Routes
	// hasHostRoutes is set once any host-qualified route registers and
	// never reverts; it gates the host-qualified matching phase
	hasHostRoutes bool
}

// NewRouter returns a new Longest Match router
func NewRouter() router.Router {
	return &lmRouter{
		matchScheme: router.DefaultMatchingScheme,
		exact:       make(route.Lookup),
	}
}

// RegisterRoute registers the handler for the provided route string.
// Registration is atomic: on error the route table is unchanged.
func (rt *lmRouter) RegisterRoute(pattern string, handler http.Handler) error {
	if pattern == "" {
		return errors.ErrInvalidRoute
	}
	if handler == nil {
		return errors.ErrNilHandler
	}
	rt.mtx.Lock()
	defer rt.mtx.Unlock()
	if _, ok := rt.exact[pattern]; ok {
		return errors.ErrDuplicateRoute
	}
	r := route.Route{
		Pattern:    pattern,
		PatternLen: len(pattern),
		HasHost:    pattern[0] != '/',
		Handler:    handler,
	}
	rt.exact[pattern] = r
	if pattern[len(pattern)-1] == '/' {
		rt.subtrees = appendSorted(rt.subtrees, r)
	}
	if r.HasHost {
		rt.hasHostRoutes = true
	}
	return nil
}

// appendSorted inserts r into rts, keeping rts in descending Pattern length
// order. The insertion point is located by binary search for the first entry
// strictly shorter than r, so equal-length entries retain registration order.
func appendSorted(rts route.Routes, r route.Route) route.Routes {
	n := len(rts)
	i := sort.Search(n, func(i int) bool {
		return rts[i].PatternLen < r.PatternLen
	})
	if i == n {
		return append(rts, r)
	}
	rts = append(rts, route.Route{})
	copy(rts[i+1:], rts[i:])
	rts[i] = r
	return rts
}

// ServeHTTP services the provided HTTP Request and writes the Response
func (rt *lmRouter) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.RequestURI == "*" {
		if r.ProtoAtLeast(1, 1) {
			w.Header().Set(headers.NameConnection, headers.ValueClose)
		}
		handlers.HandleBadRequest(w, r)
		return
	}
	h, _ := rt.Handler(r)
	h.ServeHTTP(w, r)
}

// Handler returns the handler matching the host/path in the Request along
// with the route string that produced the match. When the request path is
// one slash short of a registered subtree, or is not in canonical form, the
// returned handler issues a 301 redirect to the canonical location. When
// nothing matches, the returned handler synthesizes a 404.
func (rt *lmRouter) Handler(r *http.Request) (http.Handler, string) {
	host := urls.Hostname(r)
	path := urls.NormalizePath(r.URL.Path)

	rt.mtx.RLock()
	defer rt.mtx.RUnlock()

	// a path one slash short of a registered subtree redirects to the
	// subtree; this is checked ahead of handler resolution so that paths
	// that would otherwise 404 still receive the redirect
	if rt.shouldRedirectToSubtree(host, path) {
		np := path + "/"
		return http.RedirectHandler(urls.RedirectURL(r.URL, np),
			http.StatusMovedPermanently), np
	}

	if path != r.URL.Path {
		// the request path was not canonical; redirect to the canonical
		// form, reporting the route that will serve it after the redirect
		_, pattern := rt.match(host, path)
		return http.RedirectHandler(urls.RedirectURL(r.URL, path),
			http.StatusMovedPermanently), pattern
	}

	return rt.match(host, path)
}

// shouldRedirectToSubtree reports whether the request for host/path should
// redirect to path + "/". This is the case when no route exists for either
// candidate key but a subtree route exists exactly one slash longer, and the
// path does not already end in a slash. The caller must hold rt.mtx.
func (rt *lmRouter) shouldRedirectToSubtree(host, path string) bool {
	p := []string{path, host + path}
	for _, c := range p {
		if _, ok := rt.exact[c]; ok {
			return false
		}
	}
	n := len(path)
	if n == 0 {
		return false
	}
	for _, c := range p {
		if _, ok := rt.exact[c+"/"]; ok {
			return path[n-1] != '/'
		}
	}
	return false
}

// match resolves the handler for host/path: the host-qualified phase runs to
// completion (exact, then subtrees) before the host-less phase, so a
// host-qualified subtree match wins over a host-less exact match. The caller
// must hold rt.mtx.
func (rt *lmRouter) match(host, path string) (http.Handler, string) {
	if rt.hasHostRoutes && rt.matchScheme&router.MatchHostname == router.MatchHostname {
		if h, pattern := rt.matchKey(host + path); h != nil {
			return h, pattern
		}
	}
	if h, pattern := rt.matchKey(path); h != nil {
		return h, pattern
	}
	return handlers.NotFoundHandler(), ""
}

// matchKey matches the candidate key against the exact table, then scans the
// subtree list in descending length order for the first (longest) prefix hit
func (rt *lmRouter) matchKey(key string) (http.Handler, string) {
	if r, ok := rt.exact[key]; ok {
		return r.Handler, r.Pattern
	}
	if rt.matchScheme&router.MatchPathPrefix != router.MatchPathPrefix {
		return nil, ""
	}
	lk := len(key)
	for _, r := range rt.subtrees {
		if r.PatternLen > lk {
			continue
		}
		if strings.HasPrefix(key, r.Pattern) {
			return r.Handler, r.Pattern
		}
	}
	return nil, ""
}

// SetMatchingScheme specifies the ways the Router matches requests
func (rt *lmRouter) SetMatchingScheme(s router.MatchingScheme) {
	rt.mtx.Lock()
	rt.matchScheme = s
	rt.mtx.Unlock()
}
