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

// Package handler provides the compression handler that encodes responses
// just-in-time for clients that accept a supported encoding
package handler

import (
	"io"
	"net/http"
	"strings"

	"github.com/hostmux/hostmux/pkg/encoding"
	"github.com/hostmux/hostmux/pkg/proxy/headers"
	strutil "github.com/hostmux/hostmux/pkg/util/strings"
)

// HandleCompression wraps an HTTP response in a compression writer. Any
// response whose Content-Type is in compressTypes is compressed with the
// best encoding the client accepts.
func HandleCompression(next http.Handler, compressTypes strutil.Lookup) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {

		// if the client requested a No-Transform, then serve as-is
		if strings.Contains(r.Header.Get(headers.NameCacheControl), headers.ValueNoTransform) {
			next.ServeHTTP(w, r)
			return
		}

		ev, ep := encoding.Negotiate(r.Header.Get(headers.NameAcceptEncoding))
		if ep == encoding.Identity {
			next.ServeHTTP(w, r)
			return
		}

		ew := NewEncoder(w, ep, ev, compressTypes)
		next.ServeHTTP(ew, r)
		ew.Close()
	})
}

// ResponseEncoder defines the interface for encoding responses just-in-time
type ResponseEncoder interface {
	Write([]byte) (int, error)
	Header() http.Header
	WriteHeader(int)
	Close() error
}

// NewEncoder returns a new ResponseEncoder that applies provider p when the
// response's Content-Type is present in compressTypes
func NewEncoder(w http.ResponseWriter, p encoding.Provider, headerVal string,
	compressTypes strutil.Lookup) ResponseEncoder {
	return &responseEncoder{
		ResponseWriter: w,
		provider:       p,
		headerVal:      headerVal,
		compressTypes:  compressTypes,
	}
}

type responseEncoder struct {
	http.ResponseWriter

	prepared      bool
	provider      encoding.Provider
	headerVal     string
	compressTypes strutil.Lookup
	encoder       io.WriteCloser
}

// Write implements ResponseEncoder.Write
func (ew *responseEncoder) Write(b []byte) (int, error) {
	if !ew.prepared {
		ew.prepareWriter()
	}
	if ew.encoder != nil {
		_, err := ew.encoder.Write(b)
		return len(b), err
	}
	return ew.ResponseWriter.Write(b)
}

// WriteHeader implements ResponseEncoder.WriteHeader
func (ew *responseEncoder) WriteHeader(c int) {
	if !ew.prepared {
		ew.prepareWriter()
	}
	ew.ResponseWriter.WriteHeader(c)
}

// Header implements ResponseEncoder.Header
func (ew *responseEncoder) Header() http.Header {
	return ew.ResponseWriter.Header()
}

// Close flushes the underlying encoder, if one was wired up
func (ew *responseEncoder) Close() error {
	if ew.encoder != nil {
		return ew.encoder.Close()
	}
	return nil
}

// prepareWriter decides, from the response headers as they stand at first
// write, whether this response is encoded; it must run before headers are
// flushed downstream
func (ew *responseEncoder) prepareWriter() {
	ew.prepared = true
	h := ew.Header()
	if h.Get(headers.NameContentEncoding) != "" {
		// content is already encoded, serve as-is
		return
	}
	ct := h.Get(headers.NameContentType)
	if i := strings.Index(ct, ";"); i >= 0 {
		ct = ct[:i]
	}
	ct = strings.TrimSpace(ct)
	if _, ok := ew.compressTypes[ct]; !ok {
		return
	}
	h.Del(headers.NameContentLength)
	h.Set(headers.NameContentEncoding, ew.headerVal)
	ew.encoder = encoding.NewEncoder(ew.ResponseWriter, ew.provider, -1)
}
