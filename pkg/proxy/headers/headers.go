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

// Package headers provides functionality for HTTP Headers not provided by
// the builtin net/http package
package headers

import (
	"net/http"
)

const (
	// Common HTTP Header Values

	// ValueTextPlain represents the HTTP Header Value of "text/plain"
	ValueTextPlain = "text/plain"
	// ValueTextPlainUTF8 represents the HTTP Header Value of "text/plain; charset=utf-8"
	ValueTextPlainUTF8 = "text/plain; charset=utf-8"
	// ValueNoSniff represents the HTTP Header Value of "nosniff"
	ValueNoSniff = "nosniff"
	// ValueClose represents the HTTP Header Value of "close"
	ValueClose = "close"
	// ValueNoCache represents the HTTP Header Value of "no-cache"
	ValueNoCache = "no-cache"
	// ValueNoTransform represents the HTTP Header Value of "no-transform"
	ValueNoTransform = "no-transform"

	// Common HTTP Header Names

	// NameContentType represents the HTTP Header Name of "Content-Type"
	NameContentType = "Content-Type"
	// NameContentLength represents the HTTP Header Name of "Content-Length"
	NameContentLength = "Content-Length"
	// NameContentEncoding represents the HTTP Header Name of "Content-Encoding"
	NameContentEncoding = "Content-Encoding"
	// NameContentTypeOptions represents the HTTP Header Name of "X-Content-Type-Options"
	NameContentTypeOptions = "X-Content-Type-Options"
	// NameAcceptEncoding represents the HTTP Header Name of "Accept-Encoding"
	NameAcceptEncoding = "Accept-Encoding"
	// NameCacheControl represents the HTTP Header Name of "Cache-Control"
	NameCacheControl = "Cache-Control"
	// NameConnection represents the HTTP Header Name of "Connection"
	NameConnection = "Connection"
	// NameLocation represents the HTTP Header Name of "Location"
	NameLocation = "Location"
)

// UpdateHeaders updates the provided headers collection with the provided updates.
// Keys prefixed with "+" are appended, keys prefixed with "-" are removed, and
// all other keys are set.
func UpdateHeaders(headers http.Header, updates map[string]string) {
	if headers == nil || len(updates) == 0 {
		return
	}
	for k, v := range updates {
		if k == "" {
			continue
		}
		if k[0:1] == "-" {
			k = k[1:]
			headers.Del(k)
			continue
		}
		if k[0:1] == "+" {
			k = k[1:]
			headers.Add(k, v)
			continue
		}
		headers.Set(k, v)
	}
}
