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

// Package logging provides logging functionality to Hostmux
package logging

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"sync"

	lo "github.com/hostmux/hostmux/pkg/observability/logging/options"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
	"github.com/go-stack/stack"
	lumberjack "gopkg.in/natefinch/lumberjack.v2"
)

func mapToArray(event string, detail Pairs) []interface{} {
	a := make([]interface{}, (len(detail)*2)+2)
	var i int

	// Ensure the log level is the first Pair in the output order (after prefixes)
	if level, ok := detail["level"]; ok {
		a[0] = "level"
		a[1] = level
		delete(detail, "level")
		i += 2
	}

	// Ensure the event description is the second Pair in the output order (after prefixes)
	a[i] = "event"
	a[i+1] = event
	i += 2

	for k, v := range detail {
		a[i] = k
		a[i+1] = v
		i += 2
	}
	return a
}

// DefaultLogger returns the default logger, which is the console logger at
// level "info"
func DefaultLogger() *Logger {
	return ConsoleLogger(lo.DefaultLogLevel)
}

func noopLogger() *Logger {
	return &Logger{
		onceRanEntries: make(map[string]bool),
		onceMutex:      &sync.Mutex{},
	}
}

func newLogfmtLogger(wr io.Writer) log.Logger {
	logger := log.NewLogfmtLogger(log.NewSyncWriter(wr))
	return log.With(logger,
		"time", log.DefaultTimestampUTC,
		"app", "hostmux",
		"caller", log.Valuer(func() interface{} {
			return pkgCaller{stack.Caller(6)}
		}),
	)
}

func filterByLevel(logger log.Logger, logLevel string) log.Logger {
	switch logLevel {
	case "debug", "trace":
		return level.NewFilter(logger, level.AllowDebug())
	case "info":
		return level.NewFilter(logger, level.AllowInfo())
	case "warn":
		return level.NewFilter(logger, level.AllowWarn())
	case "error":
		return level.NewFilter(logger, level.AllowError())
	case "none":
		return level.NewFilter(logger, level.AllowNone())
	}
	return level.NewFilter(logger, level.AllowInfo())
}

// ConsoleLogger returns a Logger that prints log events to the Console
func ConsoleLogger(logLevel string) *Logger {
	l := noopLogger()
	l.level = strings.ToLower(logLevel)
	l.logger = filterByLevel(newLogfmtLogger(os.Stdout), l.level)
	return l
}

// StreamLogger returns a Logger that writes log events to the provided writer
func StreamLogger(wr io.Writer, logLevel string) *Logger {
	l := noopLogger()
	l.level = strings.ToLower(logLevel)
	l.logger = filterByLevel(newLogfmtLogger(wr), l.level)
	if c, ok := wr.(io.Closer); ok && c != nil {
		l.closer = c
	}
	return l
}

// New returns a Logger for the provided logging options. The returned Logger
// writes to files distinguished from other Loggers by the instance ID.
func New(conf *lo.Options, instanceID int) *Logger {
	if conf == nil {
		return DefaultLogger()
	}
	if conf.LogFile == "" {
		return ConsoleLogger(conf.LogLevel)
	}
	logFile := conf.LogFile
	if instanceID > 0 {
		logFile = strings.Replace(logFile, ".log",
			"."+strconv.Itoa(instanceID)+".log", 1)
	}
	return StreamLogger(&lumberjack.Logger{
		Filename:   logFile,
		MaxSize:    256,  // megabytes
		MaxBackups: 80,   // 256 megs @ 80 backups is 20GB of Logs
		MaxAge:     7,    // days
		Compress:   true, // Compress Rolled Backups
	}, conf.LogLevel)
}

// Pairs represents a key=value pair that helps to describe a log event
type Pairs map[string]interface{}

// Logger is a container for the underlying log provider
type Logger struct {
	logger log.Logger
	closer io.Closer
	level  string

	onceMutex      *sync.Mutex
	onceRanEntries map[string]bool
}

// Info sends an "INFO" event to the Logger
func (l *Logger) Info(event string, detail Pairs) {
	if l.logger == nil {
		return
	}
	level.Info(l.logger).Log(mapToArray(event, detail)...)
}

// InfoOnce sends an "INFO" event to the Logger only once per key.
// Returns true if this invocation was the first, and thus sent to the Logger
func (l *Logger) InfoOnce(key string, event string, detail Pairs) bool {
	l.onceMutex.Lock()
	defer l.onceMutex.Unlock()
	key = "info." + key
	if _, ok := l.onceRanEntries[key]; !ok {
		l.onceRanEntries[key] = true
		l.Info(event, detail)
		return true
	}
	return false
}

// Warn sends a "WARN" event to the Logger
func (l *Logger) Warn(event string, detail Pairs) {
	if l.logger == nil {
		return
	}
	level.Warn(l.logger).Log(mapToArray(event, detail)...)
}

// WarnOnce sends a "WARN" event to the Logger only once per key.
// Returns true if this invocation was the first, and thus sent to the Logger
func (l *Logger) WarnOnce(key string, event string, detail Pairs) bool {
	l.onceMutex.Lock()
	defer l.onceMutex.Unlock()
	key = "warn." + key
	if _, ok := l.onceRanEntries[key]; !ok {
		l.onceRanEntries[key] = true
		l.Warn(event, detail)
		return true
	}
	return false
}

// HasWarnedOnce returns true if a warning for the key has already been sent
// to the Logger
func (l *Logger) HasWarnedOnce(key string) bool {
	l.onceMutex.Lock()
	defer l.onceMutex.Unlock()
	key = "warn." + key
	_, ok := l.onceRanEntries[key]
	return ok
}

// Error sends an "ERROR" event to the Logger
func (l *Logger) Error(event string, detail Pairs) {
	if l.logger == nil {
		return
	}
	level.Error(l.logger).Log(mapToArray(event, detail)...)
}

// ErrorOnce sends an "ERROR" event to the Logger only once per key.
// Returns true if this invocation was the first, and thus sent to the Logger
func (l *Logger) ErrorOnce(key string, event string, detail Pairs) bool {
	l.onceMutex.Lock()
	defer l.onceMutex.Unlock()
	key = "error." + key
	if _, ok := l.onceRanEntries[key]; !ok {
		l.onceRanEntries[key] = true
		l.Error(event, detail)
		return true
	}
	return false
}

// Debug sends a "DEBUG" event to the Logger
func (l *Logger) Debug(event string, detail Pairs) {
	if l.logger == nil {
		return
	}
	level.Debug(l.logger).Log(mapToArray(event, detail)...)
}

// Trace sends a "TRACE" event to the Logger
func (l *Logger) Trace(event string, detail Pairs) {
	if l.logger == nil {
		return
	}
	// go-kit/log/level does not support Trace, so implemented separately here
	if l.level == "trace" {
		if detail == nil {
			detail = Pairs{}
		}
		detail["level"] = "trace"
		l.logger.Log(mapToArray(event, detail)...)
	}
}

// Fatal sends a "FATAL" event to the Logger and exits the program with the
// provided exit code
func (l *Logger) Fatal(code int, event string, detail Pairs) {
	if l.logger != nil {
		// go-kit/log/level does not support Fatal, so implemented separately here
		if detail == nil {
			detail = Pairs{}
		}
		detail["level"] = "fatal"
		l.logger.Log(mapToArray(event, detail)...)
	}
	// tests pass a negative code to avoid exiting mid-run
	if code >= 0 {
		os.Exit(code)
	}
}

// Level returns the configured Log Level
func (l *Logger) Level() string {
	return l.level
}

// Close closes any opened file handles that were used for logging
func (l *Logger) Close() {
	if l.closer != nil {
		l.closer.Close()
	}
}

// pkgCaller wraps a stack.Call to make the default string output include the
// package path
type pkgCaller struct {
	c stack.Call
}

// String returns a path from the call stack that is relative to the root of
// the project
func (pc pkgCaller) String() string {
	return strings.TrimPrefix(fmt.Sprintf("%+v", pc.c), "github.com/hostmux/hostmux/pkg/")
}
