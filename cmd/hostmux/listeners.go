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

package main

import (
	"net/http"

	"github.com/hostmux/hostmux/cmd/hostmux/config"
	tl "github.com/hostmux/hostmux/pkg/observability/logging"
	"github.com/hostmux/hostmux/pkg/observability/metrics"
	"github.com/hostmux/hostmux/pkg/observability/tracing"
	"github.com/hostmux/hostmux/pkg/proxy/handlers"
	"github.com/hostmux/hostmux/pkg/proxy/headers"
	"github.com/hostmux/hostmux/pkg/proxy/listener"
	"github.com/hostmux/hostmux/pkg/routing"
)

var lg = listener.NewListenerGroup()

func applyListenerConfigs(conf *config.Config, router http.Handler,
	tracer *tracing.Tracer, log *tl.Logger) {

	if conf == nil || conf.Frontend == nil {
		return
	}

	var tracerFlusherSet bool

	// if TLS port is configured and a cert is mapped, then set up the tls
	// server listener instance
	if conf.Frontend.ServeTLS && conf.Frontend.TLSListenPort > 0 {
		tlsConfig, err := conf.TLSCertConfig()
		if err != nil {
			log.Error("unable to start tls listener due to certificate error",
				tl.Pairs{"detail": err})
		} else {
			wg.Add(1)
			tracerFlusherSet = true
			go lg.StartListener("tlsListener",
				conf.Frontend.TLSListenAddress, conf.Frontend.TLSListenPort,
				conf.Frontend.ConnectionsLimit, tlsConfig, router, wg, tracer,
				exitFunc, log)
		}
	}

	// if the plaintext HTTP port is configured, then set up the http
	// listener instance
	if conf.Frontend.ListenPort > 0 {
		wg.Add(1)
		var t2 *tracing.Tracer
		if !tracerFlusherSet {
			t2 = tracer
		}
		go lg.StartListener("httpListener",
			conf.Frontend.ListenAddress, conf.Frontend.ListenPort,
			conf.Frontend.ConnectionsLimit, nil, router, wg, t2, exitFunc, log)
	}

	// if the Metrics HTTP port is configured, then set up the http listener
	// instance
	if conf.Metrics != nil && conf.Metrics.ListenPort > 0 {
		metricsRouter := http.NewServeMux()
		metricsRouter.Handle("/metrics", metrics.Handler())
		metricsRouter.HandleFunc(conf.Main.ConfigHandlerPath, configHandleFunc(conf))
		metricsRouter.HandleFunc(conf.Main.PingHandlerPath, handlers.PingHandleFunc())
		if conf.Main.PprofServer == "both" || conf.Main.PprofServer == "metrics" {
			routing.RegisterPprofRoutes("metrics", metricsRouter, log)
		}
		wg.Add(1)
		go lg.StartListener("metricsListener",
			conf.Metrics.ListenAddress, conf.Metrics.ListenPort,
			conf.Frontend.ConnectionsLimit, nil, metricsRouter, wg, nil,
			exitFunc, log)
	}
}

// configHandleFunc serves the running configuration in yaml format
func configHandleFunc(conf *config.Config) func(http.ResponseWriter, *http.Request) {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set(headers.NameContentType, headers.ValueTextPlainUTF8)
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(conf.String()))
	}
}
