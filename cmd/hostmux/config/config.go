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

// Package config provides Hostmux configuration abilities, including
// parsing and printing configuration files, command line parameters, and
// default values and state.
package config

import (
	"errors"
	"os"
	"time"

	fropt "github.com/hostmux/hostmux/pkg/frontend/options"
	lo "github.com/hostmux/hostmux/pkg/observability/logging/options"
	mo "github.com/hostmux/hostmux/pkg/observability/metrics/options"
	tracing "github.com/hostmux/hostmux/pkg/observability/tracing/options"
	po "github.com/hostmux/hostmux/pkg/proxy/paths/options"

	"gopkg.in/yaml.v2"
)

// Config is the main configuration object
type Config struct {
	// Main is the primary MainConfig section
	Main *MainConfig `yaml:"main,omitempty"`
	// Routes is the list of configured routes and their local responses
	Routes []*po.Options `yaml:"routes,omitempty"`
	// Frontend provides configurations about the Proxy Front End
	Frontend *fropt.Options `yaml:"frontend,omitempty"`
	// Logging provides configurations that affect logging behavior
	Logging *lo.Options `yaml:"logging,omitempty"`
	// Metrics provides configurations for collecting Metrics about the application
	Metrics *mo.Options `yaml:"metrics,omitempty"`
	// Tracing provides the distributed tracing configuration
	Tracing *tracing.Options `yaml:"tracing,omitempty"`

	// Resources holds runtime resources used by the Config
	Resources *Resources `yaml:"-"`

	// LoaderWarnings holds warnings generated during config load
	LoaderWarnings []string `yaml:"-"`
}

// MainConfig is a collection of general configuration values
type MainConfig struct {
	// InstanceID represents a unique ID for the current instance, when
	// multiple instances run on the same host
	InstanceID int `yaml:"instance_id,omitempty"`
	// ConfigHandlerPath provides the path to register the Config Handler
	// for outputting the running configuration
	ConfigHandlerPath string `yaml:"config_handler_path,omitempty"`
	// PingHandlerPath provides the path to register the Ping Handler for
	// checking that Hostmux is running
	PingHandlerPath string `yaml:"ping_handler_path,omitempty"`
	// PprofServer provides the name of the http listener that will host the
	// pprof debugging routes. Options are: "metrics", "off", or "both"
	PprofServer string `yaml:"pprof_server,omitempty"`
	// ServerName represents this server's name; defaults to os.Hostname
	ServerName string `yaml:"server_name,omitempty"`

	configFilePath     string
	configLastModified time.Time
}

// Resources is a collection of values used by configs at runtime that are
// not part of the config itself
type Resources struct {
	QuitChan chan bool `yaml:"-"`
}

// NewConfig returns a Config initialized with default values
func NewConfig() *Config {
	hn, _ := os.Hostname()
	return &Config{
		Main: &MainConfig{
			ConfigHandlerPath: DefaultConfigHandlerPath,
			PingHandlerPath:   DefaultPingHandlerPath,
			PprofServer:       DefaultPprofServerName,
			ServerName:        hn,
		},
		Frontend:       fropt.New(),
		Logging:        lo.New(),
		Metrics:        mo.New(),
		Tracing:        tracing.New(),
		Routes:         make([]*po.Options, 0),
		LoaderWarnings: make([]string, 0),
		Resources: &Resources{
			QuitChan: make(chan bool, 1),
		},
	}
}

// loadFile loads application configuration from a YAML-formatted file
func (c *Config) loadFile(flags *Flags) error {
	b, err := os.ReadFile(flags.ConfigPath)
	if err != nil {
		return err
	}
	return c.loadYAMLConfig(string(b), flags)
}

// loadYAMLConfig loads application configuration from a YAML-formatted string
func (c *Config) loadYAMLConfig(yml string, flags *Flags) error {
	err := yaml.Unmarshal([]byte(yml), &c)
	if err != nil {
		return err
	}
	if err = c.setDefaults(); err == nil {
		c.Main.configFilePath = flags.ConfigPath
		c.Main.configLastModified = c.CheckFileLastModified()
	}
	return err
}

// CheckFileLastModified returns the last modified date of the running
// config file, if present
func (c *Config) CheckFileLastModified() time.Time {
	if c.Main == nil || c.Main.configFilePath == "" {
		return time.Time{}
	}
	file, err := os.Stat(c.Main.configFilePath)
	if err != nil {
		return time.Time{}
	}
	return file.ModTime()
}

func (c *Config) setDefaults() error {
	if err := c.processPprofConfig(); err != nil {
		return err
	}
	if c.Frontend.TLSCertPath != "" && c.Frontend.TLSKeyPath != "" {
		c.Frontend.ServeTLS = true
	}
	return nil
}

// ErrInvalidPprofServerName returns an error for invalid pprof server name
var ErrInvalidPprofServerName = errors.New("invalid pprof server name")

func (c *Config) processPprofConfig() error {
	switch c.Main.PprofServer {
	case "metrics", "off", "both":
		return nil
	case "":
		c.Main.PprofServer = DefaultPprofServerName
		return nil
	}
	return ErrInvalidPprofServerName
}

// Validate returns an error when the running configuration is unservable
func (c *Config) Validate() error {
	for _, o := range c.Routes {
		if err := o.Validate(); err != nil {
			return err
		}
	}
	return nil
}

// Clone returns an exact copy of the subject *Config
func (c *Config) Clone() *Config {

	nc := NewConfig()

	nc.Main.ConfigHandlerPath = c.Main.ConfigHandlerPath
	nc.Main.InstanceID = c.Main.InstanceID
	nc.Main.PingHandlerPath = c.Main.PingHandlerPath
	nc.Main.PprofServer = c.Main.PprofServer
	nc.Main.ServerName = c.Main.ServerName

	nc.Main.configFilePath = c.Main.configFilePath
	nc.Main.configLastModified = c.Main.configLastModified

	if c.Frontend != nil {
		nc.Frontend = c.Frontend.Clone()
	}
	if c.Logging != nil {
		nc.Logging = c.Logging.Clone()
	}
	if c.Metrics != nil {
		nc.Metrics = c.Metrics.Clone()
	}
	if c.Tracing != nil {
		nc.Tracing = c.Tracing.Clone()
	}

	nc.Routes = make([]*po.Options, len(c.Routes))
	for i, o := range c.Routes {
		nc.Routes[i] = o.Clone()
	}

	nc.Resources = &Resources{
		QuitChan: make(chan bool, 1),
	}

	return nc
}

func (c *Config) String() string {
	cp := c.Clone()
	b, err := yaml.Marshal(cp)
	if err == nil {
		return string(b)
	}
	return ""
}

// ConfigFilePath returns the file path from which this configuration is based
func (c *Config) ConfigFilePath() string {
	if c.Main != nil {
		return c.Main.configFilePath
	}
	return ""
}
