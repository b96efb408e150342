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

// Package request provides the per-request Resources record that handlers
// retrieve from the request context
package request

import (
	"context"
	"net/http"

	po "github.com/hostmux/hostmux/pkg/proxy/paths/options"
)

type contextKey int

const resourcesKey contextKey = iota

// Resources is the collection of configuration references a handler needs to
// service a request for its route
type Resources struct {
	// PathConfig is the configuration for the route serving the request
	PathConfig *po.Options
}

// NewResources returns a Resources for the provided path configuration
func NewResources(pathConfig *po.Options) *Resources {
	return &Resources{PathConfig: pathConfig}
}

// GetResources returns the Resources from the request's context, or nil
func GetResources(r *http.Request) *Resources {
	if r == nil {
		return nil
	}
	v := r.Context().Value(resourcesKey)
	if rsc, ok := v.(*Resources); ok {
		return rsc
	}
	return nil
}

// SetResources returns a shallow copy of r whose context carries rsc
func SetResources(r *http.Request, rsc *Resources) *http.Request {
	if r == nil || rsc == nil {
		return r
	}
	return r.WithContext(context.WithValue(r.Context(), resourcesKey, rsc))
}

// WithResources wraps next such that rsc is attached to each request's
// context before next serves it
func WithResources(next http.Handler, rsc *Resources) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		next.ServeHTTP(w, SetResources(r, rsc))
	})
}
