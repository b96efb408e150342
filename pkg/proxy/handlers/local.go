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

// Package handlers provides the canned HTTP responses served by Hostmux
// without consulting any upstream
package handlers

import (
	"net/http"

	"github.com/hostmux/hostmux/pkg/proxy/headers"
	"github.com/hostmux/hostmux/pkg/proxy/request"
)

// HandleLocalResponse responds to an HTTP Request based on the route's
// configuration without making any upstream requests
func HandleLocalResponse(w http.ResponseWriter, r *http.Request) {
	rsc := request.GetResources(r)
	if w == nil || rsc == nil {
		return
	}
	p := rsc.PathConfig
	if p == nil {
		return
	}
	if len(p.ResponseHeaders) > 0 {
		headers.UpdateHeaders(w.Header(), p.ResponseHeaders)
	}
	if p.ResponseCode > 0 {
		w.WriteHeader(p.ResponseCode)
	} else {
		w.WriteHeader(http.StatusOK)
	}
	w.Write([]byte(p.ResponseBody))
}

// HandleNotFound responds to an HTTP Request with 404 Not Found
func HandleNotFound(w http.ResponseWriter, r *http.Request) {
	if w == nil {
		return
	}
	w.Header().Set(headers.NameContentType, headers.ValueTextPlainUTF8)
	w.Header().Set(headers.NameContentTypeOptions, headers.ValueNoSniff)
	w.WriteHeader(http.StatusNotFound)
	w.Write([]byte(http.StatusText(http.StatusNotFound)))
}

// NotFoundHandler returns the canned 404 handler
func NotFoundHandler() http.Handler {
	return notFoundHandler
}

var notFoundHandler = http.HandlerFunc(HandleNotFound)

// HandleBadRequest responds to an HTTP Request with 400 Bad Request
func HandleBadRequest(w http.ResponseWriter, r *http.Request) {
	if w == nil {
		return
	}
	w.WriteHeader(http.StatusBadRequest)
	w.Write(nil)
}
