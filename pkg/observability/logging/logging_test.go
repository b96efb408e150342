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

package logging

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	lo "github.com/hostmux/hostmux/pkg/observability/logging/options"
)

func TestStreamLogger(t *testing.T) {
	buf := &bytes.Buffer{}
	log := StreamLogger(buf, "info")

	log.Info("test info event", Pairs{"testKey": "testValue"})
	out := buf.String()
	if !strings.Contains(out, "test info event") {
		t.Errorf("expected info event in output, got %s", out)
	}
	if !strings.Contains(out, "testKey=testValue") {
		t.Errorf("expected pair in output, got %s", out)
	}
	if !strings.Contains(out, "app=hostmux") {
		t.Errorf("expected app name in output, got %s", out)
	}

	// debug events are filtered at info level
	buf.Reset()
	log.Debug("test debug event", Pairs{})
	if buf.Len() > 0 {
		t.Errorf("expected debug event to be filtered, got %s", buf.String())
	}

	buf.Reset()
	log.Warn("test warn event", Pairs{})
	log.Error("test error event", Pairs{})
	out = buf.String()
	if !strings.Contains(out, "test warn event") ||
		!strings.Contains(out, "test error event") {
		t.Errorf("expected warn and error events in output, got %s", out)
	}
}

func TestLoggerLevels(t *testing.T) {
	buf := &bytes.Buffer{}
	log := StreamLogger(buf, "error")
	if log.Level() != "error" {
		t.Errorf("expected level error, got %s", log.Level())
	}
	log.Info("filtered info", Pairs{})
	log.Warn("filtered warn", Pairs{})
	if buf.Len() > 0 {
		t.Errorf("expected no output at error level, got %s", buf.String())
	}
	log.Error("unfiltered error", Pairs{})
	if !strings.Contains(buf.String(), "unfiltered error") {
		t.Error("expected error event in output")
	}
}

func TestLoggerTrace(t *testing.T) {
	buf := &bytes.Buffer{}
	log := StreamLogger(buf, "trace")
	log.Trace("test trace event", nil)
	if !strings.Contains(buf.String(), "test trace event") {
		t.Errorf("expected trace event in output, got %s", buf.String())
	}

	buf.Reset()
	log = StreamLogger(buf, "info")
	log.Trace("filtered trace event", Pairs{})
	if buf.Len() > 0 {
		t.Errorf("expected trace event to be filtered, got %s", buf.String())
	}
}

func TestLoggerOnce(t *testing.T) {
	buf := &bytes.Buffer{}
	log := StreamLogger(buf, "info")

	if !log.InfoOnce("key1", "once info", Pairs{}) {
		t.Error("expected first InfoOnce to log")
	}
	if log.InfoOnce("key1", "once info", Pairs{}) {
		t.Error("expected second InfoOnce to be suppressed")
	}

	if log.HasWarnedOnce("key2") {
		t.Error("expected no warning for key2 yet")
	}
	if !log.WarnOnce("key2", "once warn", Pairs{}) {
		t.Error("expected first WarnOnce to log")
	}
	if log.WarnOnce("key2", "once warn", Pairs{}) {
		t.Error("expected second WarnOnce to be suppressed")
	}
	if !log.HasWarnedOnce("key2") {
		t.Error("expected HasWarnedOnce to report the warning")
	}

	if !log.ErrorOnce("key3", "once error", Pairs{}) {
		t.Error("expected first ErrorOnce to log")
	}
	if log.ErrorOnce("key3", "once error", Pairs{}) {
		t.Error("expected second ErrorOnce to be suppressed")
	}
}

func TestLoggerFatalNoExit(t *testing.T) {
	buf := &bytes.Buffer{}
	log := StreamLogger(buf, "info")
	log.Fatal(-1, "test fatal event", nil)
	if !strings.Contains(buf.String(), "test fatal event") {
		t.Errorf("expected fatal event in output, got %s", buf.String())
	}
	if !strings.Contains(buf.String(), "level=fatal") {
		t.Errorf("expected fatal level in output, got %s", buf.String())
	}
}

func TestNewFileLogger(t *testing.T) {
	td := t.TempDir()
	conf := &lo.Options{
		LogFile:  filepath.Join(td, "test.log"),
		LogLevel: "info",
	}
	log := New(conf, 0)
	log.Info("test file event", Pairs{})
	log.Close()
	b, err := os.ReadFile(conf.LogFile)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(b), "test file event") {
		t.Error("expected event in log file")
	}
}

func TestNewFileLoggerInstanceID(t *testing.T) {
	td := t.TempDir()
	conf := &lo.Options{
		LogFile:  filepath.Join(td, "test.log"),
		LogLevel: "info",
	}
	log := New(conf, 2)
	log.Info("test instance event", Pairs{})
	log.Close()
	b, err := os.ReadFile(filepath.Join(td, "test.2.log"))
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(b), "test instance event") {
		t.Error("expected event in instance log file")
	}
}

func TestDefaultAndConsoleLogger(t *testing.T) {
	log := DefaultLogger()
	if log.Level() != lo.DefaultLogLevel {
		t.Errorf("expected level %s, got %s", lo.DefaultLogLevel, log.Level())
	}
	log = ConsoleLogger("debug")
	if log.Level() != "debug" {
		t.Errorf("expected level debug, got %s", log.Level())
	}
	log = New(nil, 0)
	if log.Level() != lo.DefaultLogLevel {
		t.Errorf("expected level %s, got %s", lo.DefaultLogLevel, log.Level())
	}
}
