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

// Package main is the main package for the Hostmux application
package main

import (
	"os"
	"sync"

	"github.com/hostmux/hostmux/pkg/runtime"
)

var (
	applicationGitCommitID string
	applicationBuildTime   string
)

const (
	applicationName    = "hostmux"
	applicationVersion = "1.0.0"
)

var wg = &sync.WaitGroup{}

var exitFunc func() = exitFatal

func main() {
	runtime.ApplicationName = applicationName
	runtime.ApplicationVersion = applicationVersion
	runConfig(wg, os.Args[1:], exitFunc)
	wg.Wait()
}

func exitFatal() {
	os.Exit(1)
}
