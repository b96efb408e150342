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

package options

const (
	// ProviderNone disables tracing
	ProviderNone = "none"
	// ProviderStdout traces to the standard output in OTLP-ish JSON
	ProviderStdout = "stdout"

	// DefaultTracerProvider is the tracer provider used when none is configured
	DefaultTracerProvider = ProviderNone
	// DefaultServiceName is the service name attached to spans when none is configured
	DefaultServiceName = "hostmux"
	// DefaultSampleRate is the share of requests that are traced when none is configured
	DefaultSampleRate = 1.0
)

// Options is a collection of distributed tracing configurations
type Options struct {
	// Provider is the name of the tracer provider ("none" or "stdout")
	Provider string `yaml:"provider,omitempty"`
	// ServiceName is the service name attached to emitted spans
	ServiceName string `yaml:"service_name,omitempty"`
	// SampleRate sets the probability a given request is traced, 0.0 to 1.0
	SampleRate float64 `yaml:"sample_rate,omitempty"`
}

// New returns a new tracing Options with default values
func New() *Options {
	return &Options{
		Provider:    DefaultTracerProvider,
		ServiceName: DefaultServiceName,
		SampleRate:  DefaultSampleRate,
	}
}

// Clone returns a clone of the Options
func (o *Options) Clone() *Options {
	return &Options{
		Provider:    o.Provider,
		ServiceName: o.ServiceName,
		SampleRate:  o.SampleRate,
	}
}
