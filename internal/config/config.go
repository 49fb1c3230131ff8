// Copyright 2025 Ehab Terra
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package config loads the server configuration from defaults, an optional
// YAML file and USERAPI_* environment variables.
package config

import (
	"errors"
	"fmt"
	"net"
	"os"
	"slices"
	"strconv"
	"time"

	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v3"
)

const (
	DefaultHost            = "0.0.0.0"
	DefaultPort            = 8000
	DefaultRouter          = "chi"
	DefaultTitle           = "User API"
	DefaultVersion         = "1.0.0"
	DefaultReadTimeout     = 10 * time.Second
	DefaultWriteTimeout    = 10 * time.Second
	DefaultShutdownTimeout = 5 * time.Second

	// EnvPrefix is the prefix of every environment variable read by Load.
	EnvPrefix = "USERAPI"
)

// Routers lists the accepted values of Config.Router.
var Routers = []string{"chi", "gin", "echo", "fiber"}

// Config holds the server settings. Environment keys are derived from the
// field names (USERAPI_PORT, USERAPI_READ_TIMEOUT, ...) so that unprefixed
// variables such as HOST are never consulted.
type Config struct {
	Host    string `yaml:"host"`
	Port    int    `yaml:"port"`
	Router  string `yaml:"router"`
	Verbose bool   `yaml:"verbose"`
	// Seed starts the store with the two demo records.
	Seed bool `yaml:"seed"`

	Title   string `yaml:"title"`
	Version string `yaml:"version"`

	ReadTimeout     time.Duration `yaml:"readTimeout" split_words:"true"`
	WriteTimeout    time.Duration `yaml:"writeTimeout" split_words:"true"`
	ShutdownTimeout time.Duration `yaml:"shutdownTimeout" split_words:"true"`
}

// Default returns a Config with default values
func Default() *Config {
	return &Config{
		Host:            DefaultHost,
		Port:            DefaultPort,
		Router:          DefaultRouter,
		Seed:            true,
		Title:           DefaultTitle,
		Version:         DefaultVersion,
		ReadTimeout:     DefaultReadTimeout,
		WriteTimeout:    DefaultWriteTimeout,
		ShutdownTimeout: DefaultShutdownTimeout,
	}
}

// Load builds a Config from the defaults, the YAML file at path (skipped when
// path is empty) and the environment, in that order.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path != "" {
		if err := cfg.LoadFile(path); err != nil {
			return nil, err
		}
	}
	if err := cfg.LoadEnv(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadFile overlays the keys present in the YAML file onto c.
func (c *Config) LoadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("failed to parse config file %s: %w", path, err)
	}
	return nil
}

// LoadEnv overlays the USERAPI_* variables that are set onto c.
func (c *Config) LoadEnv() error {
	if err := envconfig.Process(EnvPrefix, c); err != nil {
		return fmt.Errorf("failed to read environment: %w", err)
	}
	return nil
}

// Validate reports the first invalid setting.
func (c *Config) Validate() error {
	if c.Port < 1 || c.Port > 65535 {
		return fmt.Errorf("invalid port %d: must be between 1 and 65535", c.Port)
	}
	if !slices.Contains(Routers, c.Router) {
		return fmt.Errorf("unknown router %q: must be one of %v", c.Router, Routers)
	}
	if c.ReadTimeout <= 0 || c.WriteTimeout <= 0 || c.ShutdownTimeout <= 0 {
		return errors.New("timeouts must be positive")
	}
	return nil
}

// Addr returns the listen address.
func (c *Config) Addr() string {
	return net.JoinHostPort(c.Host, strconv.Itoa(c.Port))
}
