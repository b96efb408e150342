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

package lm

import (
	"net/http"
	"strings"
	"sync"
	"testing"

	"github.com/hostmux/hostmux/pkg/errors"
	"github.com/hostmux/hostmux/pkg/proxy/headers"
	"github.com/hostmux/hostmux/pkg/router"
	"github.com/hostmux/hostmux/pkg/testutil/writer"
)

const testPathExact1 = "/path/exact"
const testPathSubtree1 = "/path/subtree/"
const testPathSubtree2 = "/path/subtree/deeper/"

const testResponse1Text = "test response 1"
const testResponse2Text = "test response 2"
const testResponse3Text = "test response 3"

func testResponse1(w http.ResponseWriter, r *http.Request) {
	http.Error(w, testResponse1Text, http.StatusOK)
}

func testResponse2(w http.ResponseWriter, r *http.Request) {
	http.Error(w, testResponse2Text, http.StatusOK)
}

func testResponse3(w http.ResponseWriter, r *http.Request) {
	http.Error(w, testResponse3Text, http.StatusOK)
}

var testResponse1Handler = http.HandlerFunc(testResponse1)
var testResponse2Handler = http.HandlerFunc(testResponse2)
var testResponse3Handler = http.HandlerFunc(testResponse3)

func serveAndVerifyBody(h http.Handler, w *writer.TestResponseWriter,
	r *http.Request, body string) bool {
	h.ServeHTTP(w, r)
	return w.StatusCode == http.StatusOK &&
		strings.TrimSpace(string(w.Bytes)) == body
}

func serveAndVerifyRedirect(h http.Handler, w *writer.TestResponseWriter,
	r *http.Request, location string) bool {
	h.ServeHTTP(w, r)
	return w.StatusCode == http.StatusMovedPermanently &&
		w.Headers.Get(headers.NameLocation) == location
}

func serveAndVerifyNotFound(h http.Handler, w *writer.TestResponseWriter,
	r *http.Request) bool {
	h.ServeHTTP(w, r)
	return w.StatusCode == http.StatusNotFound
}

func TestRegisterRoute(t *testing.T) {

	r := NewRouter().(*lmRouter)
	if err := r.RegisterRoute(testPathExact1, testResponse1Handler); err != nil {
		t.Fatal(err)
	}

	if _, ok := r.exact[testPathExact1]; !ok {
		t.Fatal("expected route in exact lookup")
	}
	if len(r.subtrees) != 0 {
		t.Fatalf("expected empty subtree list, got %d entries", len(r.subtrees))
	}

	if err := r.RegisterRoute("", testResponse1Handler); err != errors.ErrInvalidRoute {
		t.Fatal("expected error for invalid route")
	}

	if err := r.RegisterRoute(testPathExact1, nil); err != errors.ErrNilHandler {
		t.Fatal("expected error for nil handler")
	}

	if err := r.RegisterRoute(testPathSubtree1, testResponse2Handler); err != nil {
		t.Fatal(err)
	}
	if len(r.subtrees) != 1 {
		t.Fatalf("expected 1 subtree entry, got %d", len(r.subtrees))
	}
}

func TestRegisterRouteDuplicate(t *testing.T) {
	r := NewRouter().(*lmRouter)
	r.RegisterRoute(testPathExact1, testResponse1Handler)
	err := r.RegisterRoute(testPathExact1, testResponse2Handler)
	if err != errors.ErrDuplicateRoute {
		t.Fatal("expected error for duplicate route")
	}

	// the first registration must remain in force
	req, _ := http.NewRequest(http.MethodGet, testPathExact1, nil)
	h, _ := r.Handler(req)
	w := writer.NewWriter().(*writer.TestResponseWriter)
	if !serveAndVerifyBody(h, w, req, testResponse1Text) {
		t.Fatal("expected test response 1 handler")
	}
}

func TestRegisterRouteSubtreeOrder(t *testing.T) {
	r := NewRouter().(*lmRouter)
	// register shortest-first to prove ordering is by length, not insertion
	r.RegisterRoute("/", testResponse1Handler)
	r.RegisterRoute(testPathSubtree1, testResponse2Handler)
	r.RegisterRoute(testPathSubtree2, testResponse3Handler)

	if len(r.subtrees) != 3 {
		t.Fatalf("expected 3 subtree entries, got %d", len(r.subtrees))
	}
	for i := 0; i < len(r.subtrees)-1; i++ {
		if r.subtrees[i].PatternLen < r.subtrees[i+1].PatternLen {
			t.Fatal("expected subtree list in descending length order")
		}
	}
}

func TestHandlerExactMatch(t *testing.T) {
	r := NewRouter().(*lmRouter)
	r.RegisterRoute(testPathExact1, testResponse1Handler)

	req, _ := http.NewRequest(http.MethodGet, testPathExact1, nil)
	h, pattern := r.Handler(req)
	w := writer.NewWriter().(*writer.TestResponseWriter)
	if !serveAndVerifyBody(h, w, req, testResponse1Text) {
		t.Fatal("expected test response 1 handler")
	}
	if pattern != testPathExact1 {
		t.Fatalf("expected pattern %s, got %s", testPathExact1, pattern)
	}
}

func TestHandlerLongestMatch(t *testing.T) {
	r := NewRouter().(*lmRouter)
	// registration order must not matter; only pattern length does
	r.RegisterRoute(testPathSubtree1, testResponse1Handler)
	r.RegisterRoute(testPathSubtree2, testResponse2Handler)
	r.RegisterRoute("/", testResponse3Handler)

	req, _ := http.NewRequest(http.MethodGet, testPathSubtree2+"more/path", nil)
	h, pattern := r.Handler(req)
	w := writer.NewWriter().(*writer.TestResponseWriter)
	if !serveAndVerifyBody(h, w, req, testResponse2Text) {
		t.Fatal("expected test response 2 handler")
	}
	if pattern != testPathSubtree2 {
		t.Fatalf("expected pattern %s, got %s", testPathSubtree2, pattern)
	}

	req, _ = http.NewRequest(http.MethodGet, testPathSubtree1+"other", nil)
	h, _ = r.Handler(req)
	w.Reset()
	if !serveAndVerifyBody(h, w, req, testResponse1Text) {
		t.Fatal("expected test response 1 handler")
	}

	// the root catch-all serves anything no longer prefix serves
	req, _ = http.NewRequest(http.MethodGet, "/elsewhere", nil)
	h, _ = r.Handler(req)
	w.Reset()
	if !serveAndVerifyBody(h, w, req, testResponse3Text) {
		t.Fatal("expected test response 3 handler")
	}
}

func TestHandlerNotFound(t *testing.T) {
	r := NewRouter().(*lmRouter)
	r.RegisterRoute(testPathExact1, testResponse1Handler)

	req, _ := http.NewRequest(http.MethodGet, "/no/such/path", nil)
	h, pattern := r.Handler(req)
	if pattern != "" {
		t.Fatalf("expected empty pattern, got %s", pattern)
	}
	w := writer.NewWriter().(*writer.TestResponseWriter)
	h.ServeHTTP(w, req)
	if w.StatusCode != http.StatusNotFound {
		t.Fatalf("expected status %d, got %d", http.StatusNotFound, w.StatusCode)
	}
	if string(w.Bytes) != "Not Found" {
		t.Fatalf("expected body %s, got %s", "Not Found", string(w.Bytes))
	}
	if w.Headers.Get(headers.NameContentType) != headers.ValueTextPlainUTF8 {
		t.Fatal("expected text/plain content type")
	}
	if w.Headers.Get(headers.NameContentTypeOptions) != headers.ValueNoSniff {
		t.Fatal("expected nosniff content type options")
	}
}

func TestHandlerSubtreeRedirect(t *testing.T) {
	r := NewRouter().(*lmRouter)
	r.RegisterRoute("/path/", testResponse1Handler)

	req, _ := http.NewRequest(http.MethodGet, "/path?qs=test", nil)
	h, _ := r.Handler(req)
	w := writer.NewWriter().(*writer.TestResponseWriter)
	if !serveAndVerifyRedirect(h, w, req, "/path/?qs=test") {
		t.Fatalf("expected 301 to /path/?qs=test, got %d %s",
			w.StatusCode, w.Headers.Get(headers.NameLocation))
	}

	// a path already ending in a slash is served, never redirected
	req, _ = http.NewRequest(http.MethodGet, "/path/", nil)
	h, _ = r.Handler(req)
	w.Reset()
	if !serveAndVerifyBody(h, w, req, testResponse1Text) {
		t.Fatal("expected test response 1 handler")
	}

	// an exact route for the slashless path suppresses the redirect
	r.RegisterRoute("/path", testResponse2Handler)
	req, _ = http.NewRequest(http.MethodGet, "/path", nil)
	h, _ = r.Handler(req)
	w.Reset()
	if !serveAndVerifyBody(h, w, req, testResponse2Text) {
		t.Fatal("expected test response 2 handler")
	}
}

func TestHandlerPathNormalizationRedirect(t *testing.T) {
	r := NewRouter().(*lmRouter)
	r.RegisterRoute("/path/exact", testResponse1Handler)

	req, _ := http.NewRequest(http.MethodGet, "/path/../path//./exact?qs=test", nil)
	h, pattern := r.Handler(req)
	w := writer.NewWriter().(*writer.TestResponseWriter)
	if !serveAndVerifyRedirect(h, w, req, "/path/exact?qs=test") {
		t.Fatalf("expected 301 to /path/exact?qs=test, got %d %s",
			w.StatusCode, w.Headers.Get(headers.NameLocation))
	}
	if pattern != "/path/exact" {
		t.Fatalf("expected pattern /path/exact, got %s", pattern)
	}

	// a canonical path passes through with no redirect
	req, _ = http.NewRequest(http.MethodGet, "/path/exact", nil)
	h, _ = r.Handler(req)
	w.Reset()
	if !serveAndVerifyBody(h, w, req, testResponse1Text) {
		t.Fatal("expected test response 1 handler")
	}
}

func TestHandlerHostMatch(t *testing.T) {
	r := NewRouter().(*lmRouter)
	r.RegisterRoute("example.com/path/", testResponse1Handler)
	r.RegisterRoute("/path/", testResponse2Handler)

	// the host phase runs first, so the host-qualified route wins; any
	// port in the Host header is disregarded
	req, _ := http.NewRequest(http.MethodGet, "/path/x", nil)
	req.Host = "example.com:8080"
	h, pattern := r.Handler(req)
	w := writer.NewWriter().(*writer.TestResponseWriter)
	if !serveAndVerifyBody(h, w, req, testResponse1Text) {
		t.Fatal("expected test response 1 handler")
	}
	if pattern != "example.com/path/" {
		t.Fatalf("expected pattern example.com/path/, got %s", pattern)
	}

	// other hosts fall through to the host-less phase
	req, _ = http.NewRequest(http.MethodGet, "/path/x", nil)
	req.Host = "other.example.com"
	h, _ = r.Handler(req)
	w.Reset()
	if !serveAndVerifyBody(h, w, req, testResponse2Text) {
		t.Fatal("expected test response 2 handler")
	}
}

func TestHandlerHostSubtreeBeatsHostlessExact(t *testing.T) {
	r := NewRouter().(*lmRouter)
	r.RegisterRoute("example.com/", testResponse1Handler)
	r.RegisterRoute("/path/exact", testResponse2Handler)

	// the host-qualified phase completes, subtrees included, before any
	// host-less candidate is considered
	req, _ := http.NewRequest(http.MethodGet, "/path/exact", nil)
	req.Host = "example.com"
	h, _ := r.Handler(req)
	w := writer.NewWriter().(*writer.TestResponseWriter)
	if !serveAndVerifyBody(h, w, req, testResponse1Text) {
		t.Fatal("expected test response 1 handler")
	}

	req, _ = http.NewRequest(http.MethodGet, "/path/exact", nil)
	req.Host = "other.example.com"
	h, _ = r.Handler(req)
	w.Reset()
	if !serveAndVerifyBody(h, w, req, testResponse2Text) {
		t.Fatal("expected test response 2 handler")
	}
}

func TestHandlerIdempotent(t *testing.T) {
	r := NewRouter().(*lmRouter)
	r.RegisterRoute(testPathSubtree1, testResponse1Handler)

	req, _ := http.NewRequest(http.MethodGet, testPathSubtree1+"x", nil)
	w := writer.NewWriter().(*writer.TestResponseWriter)
	for i := 0; i < 3; i++ {
		h, pattern := r.Handler(req)
		w.Reset()
		if !serveAndVerifyBody(h, w, req, testResponse1Text) {
			t.Fatalf("expected test response 1 handler on pass %d", i)
		}
		if pattern != testPathSubtree1 {
			t.Fatalf("expected pattern %s on pass %d, got %s",
				testPathSubtree1, i, pattern)
		}
	}
}

func TestHandlerMatchingScheme(t *testing.T) {
	r := NewRouter().(*lmRouter)
	r.RegisterRoute("example.com"+testPathExact1, testResponse1Handler)
	r.RegisterRoute(testPathSubtree1, testResponse2Handler)

	// disabling hostname matching hides the host-qualified route
	r.SetMatchingScheme(0)
	req, _ := http.NewRequest(http.MethodGet, testPathExact1, nil)
	req.Host = "example.com"
	h, _ := r.Handler(req)
	w := writer.NewWriter().(*writer.TestResponseWriter)
	if !serveAndVerifyNotFound(h, w, req) {
		t.Fatal("expected 404 not found handler")
	}

	// prefix matching is off too, so subtree requests miss
	req, _ = http.NewRequest(http.MethodGet, testPathSubtree1+"x", nil)
	h, _ = r.Handler(req)
	w.Reset()
	if !serveAndVerifyNotFound(h, w, req) {
		t.Fatal("expected 404 not found handler")
	}

	// exact matches still work with a zero scheme
	r.RegisterRoute(testPathExact1, testResponse2Handler)
	req, _ = http.NewRequest(http.MethodGet, testPathExact1, nil)
	h, _ = r.Handler(req)
	w.Reset()
	if !serveAndVerifyBody(h, w, req, testResponse2Text) {
		t.Fatal("expected test response 2 handler")
	}
}

func TestServeHTTP(t *testing.T) {
	r := NewRouter().(*lmRouter)
	r.RegisterRoute("/", testResponse1Handler)

	w := writer.NewWriter().(*writer.TestResponseWriter)
	req, _ := http.NewRequest(http.MethodGet, testPathExact1, nil)
	req.RequestURI = "*"
	r.ServeHTTP(w, req)
	if w.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected status %d, got %d", http.StatusBadRequest, w.StatusCode)
	}
	if w.Headers.Get(headers.NameConnection) != headers.ValueClose {
		t.Fatal("expected Connection: close header")
	}

	req, _ = http.NewRequest(http.MethodGet, testPathExact1, nil)
	w.Reset()
	r.ServeHTTP(w, req)
	if !(w.StatusCode == http.StatusOK &&
		strings.TrimSpace(string(w.Bytes)) == testResponse1Text) {
		t.Fatal("expected test response 1 handler")
	}
}

func TestSetMatchingSchemeConcurrent(t *testing.T) {
	r := NewRouter().(*lmRouter)
	r.RegisterRoute(testPathSubtree1, testResponse1Handler)

	// scheme updates and dispatches may overlap; both must be safe to run
	// concurrently
	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		for i := 0; i < 1000; i++ {
			r.SetMatchingScheme(router.DefaultMatchingScheme)
		}
	}()
	go func() {
		defer wg.Done()
		req, _ := http.NewRequest(http.MethodGet, testPathSubtree1+"x", nil)
		for i := 0; i < 1000; i++ {
			if h, _ := r.Handler(req); h == nil {
				t.Error("expected a handler")
				return
			}
		}
	}()
	wg.Wait()
}
