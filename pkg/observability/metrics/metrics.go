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

// Package metrics implements prometheus metrics and exposes the metrics HTTP handler
package metrics

import (
	"net/http"
	goruntime "runtime"

	"github.com/hostmux/hostmux/pkg/runtime"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const (
	metricNamespace   = "hostmux"
	proxySubsystem    = "proxy"
	buildSubsystem    = "build"
	frontendSubsystem = "frontend"
)

// Default histogram buckets used by hostmux
var defaultBuckets = []float64{0.05, 0.1, 0.5, 1, 5, 10, 20}

// BuildInfo is a Gauge representing the Hostmux binary build information of
// the running server instance
var BuildInfo *prometheus.GaugeVec

// FrontendRequestStatus is a Counter of front end requests that have been
// processed with their status
var FrontendRequestStatus *prometheus.CounterVec

// FrontendRequestDuration is a histogram that tracks the time it takes to
// process a request
var FrontendRequestDuration *prometheus.HistogramVec

// FrontendRequestWrittenBytes is a Counter of bytes written for front end requests
var FrontendRequestWrittenBytes *prometheus.CounterVec

// ProxyMaxConnections is a Gauge representing the max number of active
// concurrent connections in the server
var ProxyMaxConnections prometheus.Gauge

// ProxyActiveConnections is a Gauge representing the number of active
// connections in the server
var ProxyActiveConnections prometheus.Gauge

// ProxyConnectionRequested is a counter representing the total number of
// connections requested by clients to the Proxy
var ProxyConnectionRequested prometheus.Counter

// ProxyConnectionAccepted is a counter representing the total number of
// connections accepted by the Proxy
var ProxyConnectionAccepted prometheus.Counter

// ProxyConnectionClosed is a counter representing the total number of
// connections closed by the Proxy
var ProxyConnectionClosed prometheus.Counter

// ProxyConnectionFailed is a counter for the total number of connections
// failed to connect for whatever reason
var ProxyConnectionFailed prometheus.Counter

func init() {

	BuildInfo = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Namespace: metricNamespace,
			Subsystem: buildSubsystem,
			Name:      "info",
			Help: "A metric with a constant '1' value labeled by version and" +
				" goversion from which Hostmux was built.",
		},
		[]string{"goversion", "version"},
	)

	FrontendRequestStatus = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: metricNamespace,
			Subsystem: frontendSubsystem,
			Name:      "requests_total",
			Help:      "Count of front end requests handled by Hostmux",
		},
		[]string{"method", "path", "http_status"},
	)

	FrontendRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: metricNamespace,
			Subsystem: frontendSubsystem,
			Name:      "requests_duration_seconds",
			Help:      "Histogram of front end request durations handled by Hostmux",
			Buckets:   defaultBuckets,
		},
		[]string{"method", "path", "http_status"},
	)

	FrontendRequestWrittenBytes = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: metricNamespace,
			Subsystem: frontendSubsystem,
			Name:      "written_bytes_total",
			Help:      "Count of bytes written in front end requests handled by Hostmux",
		},
		[]string{"method", "path", "http_status"},
	)

	ProxyMaxConnections = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: metricNamespace,
			Subsystem: proxySubsystem,
			Name:      "max_connections",
			Help:      "Maximum number of allowable concurrent connections",
		},
	)

	ProxyActiveConnections = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: metricNamespace,
			Subsystem: proxySubsystem,
			Name:      "active_connections",
			Help:      "Number of concurrent connections that are currently active",
		},
	)

	ProxyConnectionRequested = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: metricNamespace,
			Subsystem: proxySubsystem,
			Name:      "requested_connections_total",
			Help:      "Number of connections requested by clients",
		},
	)

	ProxyConnectionAccepted = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: metricNamespace,
			Subsystem: proxySubsystem,
			Name:      "accepted_connections_total",
			Help:      "Number of client connections accepted",
		},
	)

	ProxyConnectionClosed = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: metricNamespace,
			Subsystem: proxySubsystem,
			Name:      "closed_connections_total",
			Help:      "Number of client connections closed",
		},
	)

	ProxyConnectionFailed = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: metricNamespace,
			Subsystem: proxySubsystem,
			Name:      "failed_connections_total",
			Help:      "Number of client connections that failed",
		},
	)

	prometheus.MustRegister(BuildInfo)
	prometheus.MustRegister(FrontendRequestStatus)
	prometheus.MustRegister(FrontendRequestDuration)
	prometheus.MustRegister(FrontendRequestWrittenBytes)
	prometheus.MustRegister(ProxyMaxConnections)
	prometheus.MustRegister(ProxyActiveConnections)
	prometheus.MustRegister(ProxyConnectionRequested)
	prometheus.MustRegister(ProxyConnectionAccepted)
	prometheus.MustRegister(ProxyConnectionClosed)
	prometheus.MustRegister(ProxyConnectionFailed)
}

// RecordBuildInfo sets the build info gauge for the running instance
func RecordBuildInfo() {
	BuildInfo.WithLabelValues(goruntime.Version(),
		runtime.ApplicationVersion).Set(1)
}

// Handler returns the http handler for the prometheus metrics endpoint
func Handler() http.Handler {
	return promhttp.Handler()
}
