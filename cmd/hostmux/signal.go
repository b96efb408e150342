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
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/hostmux/hostmux/cmd/hostmux/config"
	tl "github.com/hostmux/hostmux/pkg/observability/logging"
)

var sigs = make(chan os.Signal, 1)

func init() {
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)
}

const drainTimeout = 30 * time.Second

// startSignalMonitor drains and closes all listeners upon SIGINT or SIGTERM
func startSignalMonitor(conf *config.Config, log *tl.Logger) {
	if conf == nil || conf.Resources == nil {
		return
	}
	go func() {
		select {
		case s := <-sigs:
			log.Info("shutting down", tl.Pairs{"signal": s.String()})
			lg.DrainAndCloseAll(drainTimeout)
			log.Close()
		case <-conf.Resources.QuitChan:
			return
		}
	}()
}
