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

// Package tracing provides distributed tracing services to Hostmux
package tracing

import (
	"context"

	"github.com/hostmux/hostmux/pkg/observability/tracing/options"

	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/trace"
)

// Tracer is a Tracer object used by Hostmux
type Tracer struct {
	// Name is the name of the tracer as set by the configuration
	Name string
	// Tracer is the underlying OpenTelemetry tracer; nil when tracing is disabled
	Tracer trace.Tracer
	// Options are the configuration options the tracer was built from
	Options *options.Options
	// ShutdownFunc flushes and stops the tracer provider
	ShutdownFunc func(context.Context) error
}

// New returns a new Tracer for the provided options, or nil when the
// configured provider is "none"
func New(o *options.Options) (*Tracer, error) {
	if o == nil {
		o = options.New()
	}
	switch o.Provider {
	case options.ProviderStdout:
		return newStdoutTracer(o)
	}
	return nil, nil
}

func newStdoutTracer(o *options.Options) (*Tracer, error) {
	exporter, err := stdouttrace.New()
	if err != nil {
		return nil, err
	}
	sampler := sdktrace.ParentBased(sdktrace.TraceIDRatioBased(o.SampleRate))
	tp := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exporter),
		sdktrace.WithSampler(sampler),
	)
	return &Tracer{
		Name:         o.Provider,
		Tracer:       tp.Tracer(o.ServiceName),
		Options:      o,
		ShutdownFunc: tp.Shutdown,
	}, nil
}

// Shutdown flushes and stops the provided tracer, tolerating nils
func Shutdown(ctx context.Context, tr *Tracer) error {
	if tr == nil || tr.ShutdownFunc == nil {
		return nil
	}
	return tr.ShutdownFunc(ctx)
}
