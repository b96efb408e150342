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

// Package routing is the Hostmux Request Router setup
package routing

import (
	"net/http"
	"net/http/pprof"

	encoding "github.com/hostmux/hostmux/pkg/encoding/handler"
	"github.com/hostmux/hostmux/pkg/errors"
	"github.com/hostmux/hostmux/pkg/observability/logging"
	"github.com/hostmux/hostmux/pkg/observability/tracing"
	"github.com/hostmux/hostmux/pkg/proxy/handlers"
	po "github.com/hostmux/hostmux/pkg/proxy/paths/options"
	"github.com/hostmux/hostmux/pkg/proxy/request"
	"github.com/hostmux/hostmux/pkg/router"
	"github.com/hostmux/hostmux/pkg/util/middleware"
	strutil "github.com/hostmux/hostmux/pkg/util/strings"
)

// DefaultCompressibleTypes returns the list of Content-Types Hostmux
// compresses before serving, when the client accepts an encoding
func DefaultCompressibleTypes() []string {
	return []string{
		"text/html",
		"text/javascript",
		"text/css",
		"text/plain",
		"text/xml",
		"text/json",
		"application/json",
		"application/javascript",
		"application/xml",
	}
}

// RegisterProxyRoutes iterates the configured routes and registers their
// handlers with the router
func RegisterProxyRoutes(r router.Router, routes []*po.Options,
	tracer *tracing.Tracer, log *logging.Logger) error {

	ct := strutil.NewLookup(DefaultCompressibleTypes())

	for _, o := range routes {
		if err := o.Validate(); err != nil {
			return err
		}
		route := o.Route()
		if log != nil {
			log.Debug("registering route",
				logging.Pairs{"route": route, "host": o.Host, "path": o.Path})
		}
		if err := r.RegisterRoute(route, routeHandler(o, route, ct, tracer)); err != nil {
			return err
		}
	}

	// register the default catch-all so unmatched requests resolve to a
	// synthesized 404; a configured root route takes precedence
	if err := r.RegisterRoute("/", handlers.NotFoundHandler()); err != nil &&
		err != errors.ErrDuplicateRoute {
		return err
	}
	return nil
}

// routeHandler assembles the middleware chain around the local response
// handler for a single configured route
func routeHandler(o *po.Options, route string, compressibleTypes strutil.Lookup,
	tracer *tracing.Tracer) http.Handler {
	var h http.Handler = http.HandlerFunc(handlers.HandleLocalResponse)
	// add the route's path config to the request context
	h = request.WithResources(h, request.NewResources(o))
	h = encoding.HandleCompression(h, compressibleTypes)
	// attach distributed tracer
	h = middleware.Trace(tracer, route, h)
	// decorate frontend prometheus metrics
	h = middleware.Decorate(o.Path, h)
	return h
}

// RegisterPprofRoutes will register the Pprof Debugging endpoints to the
// provided router
func RegisterPprofRoutes(routerName string, h *http.ServeMux, log *logging.Logger) {
	log.Info("registering pprof /debug routes", logging.Pairs{"routerName": routerName})
	h.HandleFunc("/debug/pprof/", pprof.Index)
	h.HandleFunc("/debug/pprof/cmdline", pprof.Cmdline)
	h.HandleFunc("/debug/pprof/profile", pprof.Profile)
	h.HandleFunc("/debug/pprof/symbol", pprof.Symbol)
	h.HandleFunc("/debug/pprof/trace", pprof.Trace)
}
