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

package config

const (
	// DefaultConfigPath defines the default location of the Hostmux config file
	DefaultConfigPath = "/etc/hostmux/hostmux.yaml"
	// DefaultConfigHandlerPath defines the default path for the Config Print Handler
	DefaultConfigHandlerPath = "/hostmux/config"
	// DefaultPingHandlerPath defines the default path for the Ping Handler
	DefaultPingHandlerPath = "/hostmux/ping"
	// DefaultPprofServerName defines the default Pprof Server Name
	DefaultPprofServerName = "both"
)
