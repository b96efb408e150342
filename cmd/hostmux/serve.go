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
	"net/http"
	"os"
	"sync"

	"github.com/hostmux/hostmux/cmd/hostmux/config"
	"github.com/hostmux/hostmux/pkg/observability/logging"
	"github.com/hostmux/hostmux/pkg/observability/metrics"
	"github.com/hostmux/hostmux/pkg/observability/tracing"
	"github.com/hostmux/hostmux/pkg/proxy/handlers"
	"github.com/hostmux/hostmux/pkg/router/lm"
	"github.com/hostmux/hostmux/pkg/routing"
	"github.com/hostmux/hostmux/pkg/runtime"
)

func runConfig(wg *sync.WaitGroup, args []string, errorsFatal func()) {

	metrics.RecordBuildInfo()

	// load the config
	conf, flags, err := config.Load(runtime.ApplicationName,
		runtime.ApplicationVersion, args)
	if err != nil {
		fmt.Println("\nERROR: Could not load configuration:", err.Error())
		if flags != nil && !flags.ValidateConfig {
			printUsage()
		}
		handleStartupIssue("", nil, nil, errorsFatal)
		return
	}

	// if it's a -version command, print version and exit
	if flags.PrintVersion {
		printVersion()
		os.Exit(0)
	}

	if flags.ValidateConfig {
		fmt.Println("Hostmux configuration validation succeeded.")
		os.Exit(0)
	}

	applyConfig(conf, wg, errorsFatal)
}

func applyConfig(conf *config.Config, wg *sync.WaitGroup, errorsFatal func()) {

	if conf == nil {
		return
	}

	log := initLogger(conf)

	for _, w := range conf.LoaderWarnings {
		log.Warn(w, logging.Pairs{})
	}

	tracer, err := tracing.New(conf.Tracing)
	if err != nil {
		handleStartupIssue("tracer registration failed",
			logging.Pairs{"detail": err.Error()}, log, errorsFatal)
		return
	}

	r := lm.NewRouter()
	r.RegisterRoute(conf.Main.PingHandlerPath,
		http.HandlerFunc(handlers.PingHandleFunc()))

	if err := routing.RegisterProxyRoutes(r, conf.Routes, tracer, log); err != nil {
		handleStartupIssue("route registration failed",
			logging.Pairs{"detail": err.Error()}, log, errorsFatal)
		return
	}

	applyListenerConfigs(conf, r, tracer, log)
	startSignalMonitor(conf, log)
}

func initLogger(c *config.Config) *logging.Logger {
	log := logging.New(c.Logging, c.Main.InstanceID)
	log.Info("application loaded from configuration",
		logging.Pairs{
			"name":      runtime.ApplicationName,
			"version":   runtime.ApplicationVersion,
			"commitID":  applicationGitCommitID,
			"buildTime": applicationBuildTime,
			"logLevel":  c.Logging.LogLevel,
			"config":    c.ConfigFilePath(),
		},
	)
	return log
}

func handleStartupIssue(event string, detail logging.Pairs,
	log *logging.Logger, exitFatal func()) {
	if event != "" {
		if log != nil {
			if exitFatal != nil {
				log.Fatal(1, event, detail)
				return
			}
			log.Error(event, detail)
			return
		}
		fmt.Println(event)
	}
	if exitFatal != nil {
		exitFatal()
	}
}
