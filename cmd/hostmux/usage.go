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
	"fmt"

	"github.com/hostmux/hostmux/pkg/runtime"
)

const usageText = `
Hostmux Usage:

 Print Version Info:
 hostmux -version

 Validate a configuration file:
  hostmux -config /path/to/file.yaml -validate-config

 Run with a configuration file:
  hostmux -config /path/to/file.yaml [-log-level debug|info|warn|error] [-proxy-port 8480] [-metrics-port 8481]

------

Hostmux listens on port 8480 by default. Set in a config file, or override using -proxy-port.

Default log level is INFO. Set in a config file, or override with -log-level.

The configuration file is much more robust than the command line arguments, and the example file
is well-documented.
`

func version() string {
	return fmt.Sprintf("Hostmux version: %s, buildInfo: %s %s",
		runtime.ApplicationVersion, applicationBuildTime, applicationGitCommitID)
}

func printVersion() {
	fmt.Println(version())
}

func printUsage() {
	fmt.Println()
	fmt.Println(version())
	fmt.Print(usageText + "\n")
}
