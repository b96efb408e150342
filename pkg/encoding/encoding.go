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

// Package encoding provides the response encodings Hostmux can apply for
// clients, negotiated from the Accept-Encoding request header
package encoding

import (
	"io"
	"strings"

	"github.com/andybalholm/brotli"
	"github.com/klauspost/compress/flate"
	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
)

// Provider is a bitmap of the encodings Hostmux supports
type Provider byte

const (
	Zstandard Provider = 1 << iota // 1
	Brotli                         // 2
	GZip                           // 4
	Deflate                        // 8
	Identity  Provider = 0         // no encoding
)

const (
	ZstandardValue = "zstd"
	BrotliValue    = "br"
	GZipValue      = "gzip"
	DeflateValue   = "deflate"
)

var providerLookup = map[string]Provider{
	ZstandardValue: Zstandard,
	BrotliValue:    Brotli,
	GZipValue:      GZip,
	DeflateValue:   Deflate,
}

// ordered from most to least preferred when the client accepts several
var providerPreference = []Provider{Zstandard, Brotli, GZip, Deflate}

var providerValues = map[Provider]string{
	Zstandard: ZstandardValue,
	Brotli:    BrotliValue,
	GZip:      GZipValue,
	Deflate:   DeflateValue,
}

// String returns the Accept-Encoding token for the Provider
func (p Provider) String() string {
	if v, ok := providerValues[p]; ok {
		return v
	}
	return ""
}

// Negotiate returns the preferred supported encoding named by the provided
// Accept-Encoding header value, along with its header token. Identity and
// the empty string are returned when no supported encoding is accepted.
func Negotiate(acceptedEncodings string) (string, Provider) {
	if acceptedEncodings == "" {
		return "", Identity
	}
	var b Provider
	for _, enc := range strings.Split(acceptedEncodings, ",") {
		// disregard any quality value
		if i := strings.Index(enc, ";"); i >= 0 {
			enc = enc[:i]
		}
		if v, ok := providerLookup[strings.TrimSpace(enc)]; ok {
			b |= v
		}
	}
	for _, p := range providerPreference {
		if b&p == p {
			return providerValues[p], p
		}
	}
	return "", Identity
}

// NewEncoder returns a WriteCloser that encodes writes to w with the provided
// Provider. A level of -1 selects each codec's default. Identity returns nil.
func NewEncoder(w io.Writer, p Provider, level int) io.WriteCloser {
	switch p {
	case Zstandard:
		l := zstd.SpeedDefault
		if level > 3 && level < 8 {
			l = zstd.SpeedBetterCompression
		} else if level > 7 {
			l = zstd.SpeedBestCompression
		} else if level >= 0 && level < 3 {
			l = zstd.SpeedFastest
		}
		zw, _ := zstd.NewWriter(w, zstd.WithEncoderLevel(l))
		return zw
	case Brotli:
		if level < 1 {
			level = 4
		}
		return brotli.NewWriterLevel(w, level)
	case GZip:
		if level == -1 {
			level = 6
		}
		gw, _ := gzip.NewWriterLevel(w, level)
		return gw
	case Deflate:
		fw, _ := flate.NewWriter(w, level)
		return fw
	}
	return nil
}
