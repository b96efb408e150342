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

package handler

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/hostmux/hostmux/pkg/proxy/headers"
	strutil "github.com/hostmux/hostmux/pkg/util/strings"

	"github.com/klauspost/compress/gzip"
)

const testBody = "<html><body>this is a test response body</body></html>"

var testCompressTypes = strutil.NewLookup([]string{"text/html", "text/plain"})

func testHandler(contentType string) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set(headers.NameContentType, contentType)
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(testBody))
	})
}

func TestHandleCompressionGZip(t *testing.T) {
	h := HandleCompression(testHandler("text/html"), testCompressTypes)
	r, _ := http.NewRequest(http.MethodGet, "/", nil)
	r.Header.Set(headers.NameAcceptEncoding, "gzip")
	w := httptest.NewRecorder()
	h.ServeHTTP(w, r)

	if ce := w.Header().Get(headers.NameContentEncoding); ce != "gzip" {
		t.Fatalf("expected Content-Encoding gzip, got %q", ce)
	}
	gr, err := gzip.NewReader(w.Body)
	if err != nil {
		t.Fatal(err)
	}
	b, err := io.ReadAll(gr)
	if err != nil {
		t.Fatal(err)
	}
	if string(b) != testBody {
		t.Errorf("expected %q, got %q", testBody, string(b))
	}
}

func TestHandleCompressionIdentity(t *testing.T) {
	h := HandleCompression(testHandler("text/html"), testCompressTypes)
	r, _ := http.NewRequest(http.MethodGet, "/", nil)
	w := httptest.NewRecorder()
	h.ServeHTTP(w, r)

	if ce := w.Header().Get(headers.NameContentEncoding); ce != "" {
		t.Fatalf("expected no Content-Encoding, got %q", ce)
	}
	if w.Body.String() != testBody {
		t.Errorf("expected %q, got %q", testBody, w.Body.String())
	}
}

func TestHandleCompressionNoTransform(t *testing.T) {
	h := HandleCompression(testHandler("text/html"), testCompressTypes)
	r, _ := http.NewRequest(http.MethodGet, "/", nil)
	r.Header.Set(headers.NameAcceptEncoding, "gzip")
	r.Header.Set(headers.NameCacheControl, headers.ValueNoTransform)
	w := httptest.NewRecorder()
	h.ServeHTTP(w, r)

	if ce := w.Header().Get(headers.NameContentEncoding); ce != "" {
		t.Fatalf("expected no Content-Encoding, got %q", ce)
	}
	if w.Body.String() != testBody {
		t.Errorf("expected %q, got %q", testBody, w.Body.String())
	}
}

func TestHandleCompressionUnsupportedType(t *testing.T) {
	h := HandleCompression(testHandler("image/png"), testCompressTypes)
	r, _ := http.NewRequest(http.MethodGet, "/", nil)
	r.Header.Set(headers.NameAcceptEncoding, "gzip")
	w := httptest.NewRecorder()
	h.ServeHTTP(w, r)

	if ce := w.Header().Get(headers.NameContentEncoding); ce != "" {
		t.Fatalf("expected no Content-Encoding, got %q", ce)
	}
	if w.Body.String() != testBody {
		t.Errorf("expected %q, got %q", testBody, w.Body.String())
	}
}

func TestHandleCompressionAlreadyEncoded(t *testing.T) {
	inner := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set(headers.NameContentType, "text/html")
		w.Header().Set(headers.NameContentEncoding, "br")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(testBody))
	})
	h := HandleCompression(inner, testCompressTypes)
	r, _ := http.NewRequest(http.MethodGet, "/", nil)
	r.Header.Set(headers.NameAcceptEncoding, "gzip")
	w := httptest.NewRecorder()
	h.ServeHTTP(w, r)

	if ce := w.Header().Get(headers.NameContentEncoding); ce != "br" {
		t.Fatalf("expected Content-Encoding br, got %q", ce)
	}
	if w.Body.String() != testBody {
		t.Error("expected body to pass through unmodified")
	}
}
