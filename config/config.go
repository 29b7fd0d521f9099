// Copyright 2026 Krambot Authors
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


// Package config loads application configuration from a YAML file, a .env
// file and KRAMBOT_-prefixed environment variables, in increasing order of
// precedence.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// ErrInvalidConfig is returned when a loaded configuration fails validation.
var ErrInvalidConfig = errors.New("invalid configuration")

// Config holds the full application configuration.
type Config struct {
	Database DatabaseConfig `mapstructure:"database"`
	Catalog  CatalogConfig  `mapstructure:"catalog"`
	AI       AIConfig       `mapstructure:"ai"`
	History  HistoryConfig  `mapstructure:"history"`
	Logging  LoggingConfig  `mapstructure:"logging"`
}

// DatabaseConfig configures the BadgerDB message store.
type DatabaseConfig struct {
	// Path is the directory holding the database files.
	Path string `mapstructure:"path"`

	// InMemory runs the database without touching disk. Intended for tests.
	InMemory bool `mapstructure:"in_memory"`
}

// CatalogConfig configures the store catalog.
type CatalogConfig struct {
	// Path is the JSON catalog file.
	Path string `mapstructure:"path"`
}

// AIConfig configures the language-model services.
type AIConfig struct {
	Host           string  `mapstructure:"host"`
	ResponderModel string  `mapstructure:"responder_model"`
	ExtractorModel string  `mapstructure:"extractor_model"`
	Token          string  `mapstructure:"token"`
	MaxReplyTokens int     `mapstructure:"max_reply_tokens"`
	Temperature    float64 `mapstructure:"temperature"`
}

// HistoryConfig configures conversation history retention.
type HistoryConfig struct {
	// Retention is the number of messages kept per user.
	Retention int `mapstructure:"retention"`
}

// LoggingConfig configures application logging.
type LoggingConfig struct {
	// Level is one of debug, info, warn, error.
	Level string `mapstructure:"level"`
}

// Load reads configuration from config.yaml (searched in the working
// directory and ./configs), layered under a .env file and environment
// variables. A missing config file is not an error; defaults apply.
func Load() (*Config, error) {
	loadEnvFile()

	v := newViper()
	v.SetConfigName("config")
	v.AddConfigPath(".")
	v.AddConfigPath("./configs")

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config: %w", err)
		}
	}

	return unmarshal(v)
}

// LoadFromFile loads configuration from a specific file path.
func LoadFromFile(path string) (*Config, error) {
	loadEnvFile()

	v := newViper()
	v.SetConfigFile(path)

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	return unmarshal(v)
}

func newViper() *viper.Viper {
	v := viper.New()
	v.SetConfigType("yaml")

	v.SetEnvPrefix("KRAMBOT")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("database.path", "data/krambot")
	v.SetDefault("database.in_memory", false)
	v.SetDefault("catalog.path", "stores.json")
	v.SetDefault("ai.host", "http://localhost:11434")
	v.SetDefault("ai.responder_model", "qwen2.5:7b")
	v.SetDefault("ai.extractor_model", "qwen2.5:3b")
	v.SetDefault("ai.token", "none")
	v.SetDefault("ai.max_reply_tokens", 512)
	v.SetDefault("ai.temperature", 0.7)
	v.SetDefault("history.retention", 30)
	v.SetDefault("logging.level", "info")

	return v
}

func unmarshal(v *viper.Viper) (*Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// loadEnvFile loads a .env file from the working directory if one exists.
// Absence is fine; the process environment is used as-is.
func loadEnvFile() {
	if _, err := os.Stat(".env"); err == nil {
		_ = godotenv.Load(".env")
	}
}

// Validate checks that the configuration is usable.
func (c *Config) Validate() error {
	if c.Database.Path == "" && !c.Database.InMemory {
		return fmt.Errorf("%w: database.path is required", ErrInvalidConfig)
	}
	if c.Catalog.Path == "" {
		return fmt.Errorf("%w: catalog.path is required", ErrInvalidConfig)
	}
	if c.AI.Host == "" {
		return fmt.Errorf("%w: ai.host is required", ErrInvalidConfig)
	}
	if c.History.Retention < 0 {
		return fmt.Errorf("%w: history.retention must not be negative", ErrInvalidConfig)
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("%w: logging.level must be one of debug, info, warn, error", ErrInvalidConfig)
	}
	return nil
}
