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

// Package options provides the configuration options for a routed path
package options

import (
	"strings"

	"github.com/hostmux/hostmux/pkg/errors"
)

const (
	// MatchExact requires the request path to equal the configured path
	MatchExact = "exact"
	// MatchPrefix matches any request path the configured path prefixes
	MatchPrefix = "prefix"
)

// Options defines a statically-configured route and the local response it serves
type Options struct {
	// Path is the request path (or path prefix) this route serves
	Path string `yaml:"path,omitempty"`
	// Host optionally restricts the route to requests for this hostname
	Host string `yaml:"host,omitempty"`
	// Match is "exact" or "prefix"; when empty, a Path ending in "/" is
	// treated as a prefix and any other Path as exact
	Match string `yaml:"match,omitempty"`
	// ResponseCode is the HTTP status code served for this route (default 200)
	ResponseCode int `yaml:"response_code,omitempty"`
	// ResponseBody is the body served for this route
	ResponseBody string `yaml:"response_body,omitempty"`
	// ResponseHeaders are set on responses for this route; a "+" key prefix
	// appends and a "-" key prefix removes
	ResponseHeaders map[string]string `yaml:"response_headers,omitempty"`
}

// New returns a new path Options with default values
func New() *Options {
	return &Options{}
}

// Clone returns an exact copy of the subject Options
func (o *Options) Clone() *Options {
	c := &Options{
		Path:         o.Path,
		Host:         o.Host,
		Match:        o.Match,
		ResponseCode: o.ResponseCode,
		ResponseBody: o.ResponseBody,
	}
	if o.ResponseHeaders != nil {
		c.ResponseHeaders = make(map[string]string, len(o.ResponseHeaders))
		for k, v := range o.ResponseHeaders {
			c.ResponseHeaders[k] = v
		}
	}
	return c
}

// Validate returns an error if the Options are unservable
func (o *Options) Validate() error {
	if o.Path == "" || o.Path[0] != '/' {
		return errors.ErrInvalidRoute
	}
	switch o.Match {
	case "", MatchExact, MatchPrefix:
	default:
		return errors.ErrInvalidMatchType
	}
	if o.ResponseCode != 0 && (o.ResponseCode < 100 || o.ResponseCode > 599) {
		return errors.ErrInvalidResponseCode
	}
	return nil
}

// Route returns the route string to register for these Options: the path,
// host-qualified when Host is set, with a trailing slash enforced for
// prefix-matched routes
func (o *Options) Route() string {
	p := o.Path
	if o.Match == MatchPrefix && !strings.HasSuffix(p, "/") {
		p += "/"
	}
	return o.Host + p
}
