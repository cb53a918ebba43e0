// Copyright 2025 Arion Yau
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

package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
	"sonyremote/internal/bravia"
	"sonyremote/internal/logger"
	"sonyremote/internal/sequencer"
	"sonyremote/internal/status"
)

// DefaultFileName is looked up in the working directory when no path is given
const DefaultFileName = "sonyremote.yml"

// Config represents the remote configuration structure
type Config struct {
	Remote RemoteConfig `yaml:"remote"`
	Store  StoreConfig  `yaml:"store"`
	Server ServerConfig `yaml:"server"`
	Status StatusConfig `yaml:"status"`
	Log    LogConfig    `yaml:"log"`
}

// RemoteConfig controls how batches are sent to the TV
type RemoteConfig struct {
	SettleDelay     time.Duration `yaml:"settle_delay"`     // pause before every command
	Timeout         time.Duration `yaml:"timeout"`          // per request
	BatchPolicy     string        `yaml:"batch_policy"`     // queue, reject or preempt
	DisplayDuration time.Duration `yaml:"display_duration"` // how long non-error messages stay visible
}

// StoreConfig locates the settings database
type StoreConfig struct {
	Path string `yaml:"path"`
}

// ServerConfig contains HTTP API settings
type ServerConfig struct {
	Listen           string `yaml:"listen"`
	JWTSecret        string `yaml:"jwt_secret"` // empty disables authentication
	JWTIssuer        string `yaml:"jwt_issuer"`
	TokenExpiryHours int    `yaml:"token_expiry_hours"`
}

// StatusConfig sizes the batch history
type StatusConfig struct {
	HistorySize int `yaml:"history_size"`
}

// LogConfig selects the log level
type LogConfig struct {
	Level string `yaml:"level"`
}

// NewDefaultConfig returns the configuration used when no file exists
func NewDefaultConfig() *Config {
	return &Config{
		Remote: RemoteConfig{
			SettleDelay:     sequencer.DefaultSettleDelay,
			Timeout:         bravia.DefaultTimeout,
			BatchPolicy:     string(sequencer.PolicyQueue),
			DisplayDuration: sequencer.DefaultDisplayDuration,
		},
		Store: StoreConfig{
			Path: DefaultStorePath(),
		},
		Server: ServerConfig{
			Listen:           ":8080",
			JWTIssuer:        "sonyremote",
			TokenExpiryHours: 24,
		},
		Status: StatusConfig{
			HistorySize: status.DefaultHistorySize,
		},
		Log: LogConfig{
			Level: logger.LOG_INFO,
		},
	}
}

// DefaultStorePath places the settings database in the user config directory
func DefaultStorePath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "sonyremote.db"
	}
	return filepath.Join(dir, "sonyremote", "settings.db")
}

// LoadConfig loads configuration from a YAML file. Fields absent from the
// file keep their defaults.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	config := NewDefaultConfig()
	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return config, nil
}

// LoadOrDefault loads path when it exists and falls back to the defaults
// otherwise. An empty path means DefaultFileName.
func LoadOrDefault(path string) (*Config, error) {
	if path == "" {
		path = DefaultFileName
	}
	config, err := LoadConfig(path)
	if errors.Is(err, os.ErrNotExist) {
		return NewDefaultConfig(), nil
	}
	return config, err
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.Remote.SettleDelay < 0 {
		return fmt.Errorf("remote.settle_delay must not be negative")
	}
	if c.Remote.Timeout <= 0 {
		return fmt.Errorf("remote.timeout must be positive")
	}
	if c.Remote.DisplayDuration <= 0 {
		return fmt.Errorf("remote.display_duration must be positive")
	}
	if _, err := sequencer.ParsePolicy(c.Remote.BatchPolicy); err != nil {
		return fmt.Errorf("remote.batch_policy: %w", err)
	}

	if c.Store.Path == "" {
		return fmt.Errorf("store.path is required")
	}

	if c.Server.Listen == "" {
		return fmt.Errorf("server.listen is required")
	}
	if c.Server.JWTSecret != "" && len(c.Server.JWTSecret) < 16 {
		return fmt.Errorf("server.jwt_secret must be at least 16 characters")
	}
	if c.Server.TokenExpiryHours <= 0 {
		return fmt.Errorf("server.token_expiry_hours must be positive")
	}

	if c.Status.HistorySize <= 0 {
		return fmt.Errorf("status.history_size must be positive")
	}

	switch c.Log.Level {
	case logger.LOG_DEBUG, logger.LOG_INFO, logger.LOG_WARN, logger.LOG_ERROR:
	default:
		return fmt.Errorf("log.level must be one of debug, info, warn, error")
	}

	return nil
}

// Policy returns the parsed batch policy. Validate has already checked it.
func (c *Config) Policy() sequencer.Policy {
	policy, _ := sequencer.ParsePolicy(c.Remote.BatchPolicy)
	return policy
}

// Save saves the configuration to a YAML file
func (c *Config) Save(path string) error {
	return SaveConfig(c, path)
}

// SaveConfig saves configuration to a YAML file
func SaveConfig(config *Config, path string) error {
	data, err := yaml.Marshal(config)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}
