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


package ai

import (
	"errors"
	"strings"
)

// Config holds configuration for AI service providers.
type Config struct {
	// ResponderHost is the base URL for the chat completion service API.
	// Example: "http://localhost:11434/v1" for local OpenAI-compatible server
	ResponderHost string

	// ExtractorHost is the base URL for the intent extraction service API.
	// Example: "http://localhost:11434/v1" for local OpenAI-compatible server
	ExtractorHost string

	// ResponderModel is the model identifier to use for conversational replies.
	// Example: "qwen2.5:7b", "gpt-4o-mini"
	ResponderModel string

	// ExtractorModel is the model identifier to use for intent extraction.
	// Example: "qwen2.5:3b", "gpt-4o-mini"
	ExtractorModel string

	// Token is the API token sent to both services.
	// Local OpenAI-compatible servers usually accept any value.
	Token string

	// MaxReplyTokens caps the length of generated replies.
	// Default: 512
	MaxReplyTokens int

	// ReplyTemperature controls sampling for conversational replies.
	// Extraction always runs at temperature 0 regardless of this value.
	// Default: 0.7
	ReplyTemperature float64
}

// ConfigOption is a functional option for configuring a Config.
type ConfigOption func(*Config)

// WithResponderHost sets the chat completion service host URL.
func WithResponderHost(host string) ConfigOption {
	return func(c *Config) {
		c.ResponderHost = host
	}
}

// WithExtractorHost sets the intent extraction service host URL.
func WithExtractorHost(host string) ConfigOption {
	return func(c *Config) {
		c.ExtractorHost = host
	}
}

// WithHost sets both responder and extractor hosts to the same URL.
func WithHost(host string) ConfigOption {
	return func(c *Config) {
		c.ResponderHost = host
		c.ExtractorHost = host
	}
}

// WithResponderModel sets the reply model identifier.
func WithResponderModel(model string) ConfigOption {
	return func(c *Config) {
		c.ResponderModel = model
	}
}

// WithExtractorModel sets the extraction model identifier.
func WithExtractorModel(model string) ConfigOption {
	return func(c *Config) {
		c.ExtractorModel = model
	}
}

// WithToken sets the API token.
func WithToken(token string) ConfigOption {
	return func(c *Config) {
		c.Token = token
	}
}

// WithMaxReplyTokens sets the reply length cap.
func WithMaxReplyTokens(n int) ConfigOption {
	return func(c *Config) {
		c.MaxReplyTokens = n
	}
}

// WithReplyTemperature sets the sampling temperature for replies.
func WithReplyTemperature(t float64) ConfigOption {
	return func(c *Config) {
		c.ReplyTemperature = t
	}
}

// DefaultConfig returns a Config with sensible defaults for local
// OpenAI-compatible services. By default, both services use the same host.
func DefaultConfig() *Config {
	defaultHost := "http://localhost:11434/v1"
	return &Config{
		ResponderHost:    defaultHost,
		ExtractorHost:    defaultHost,
		ResponderModel:   "qwen2.5:7b",
		ExtractorModel:   "qwen2.5:3b",
		Token:            "none",
		MaxReplyTokens:   512,
		ReplyTemperature: 0.7,
	}
}

// NewConfig creates a Config with the default values and applies the provided
// options. This is the recommended way to create a Config with custom settings.
//
// Example:
//
//	cfg := NewConfig(
//	    WithHost("http://localhost:11434/v1"),
//	    WithResponderModel("gpt-4o-mini"),
//	)
func NewConfig(opts ...ConfigOption) *Config {
	cfg := DefaultConfig()
	for _, opt := range opts {
		opt(cfg)
	}
	return cfg
}

// Normalize ensures the configuration is in a canonical form.
// It automatically adds the /v1 suffix to hosts if missing, which is required
// by most OpenAI-compatible APIs (Ollama, LocalAI, vLLM, etc).
func (c *Config) Normalize() {
	if c.ResponderHost != "" && !strings.HasSuffix(c.ResponderHost, "/v1") {
		c.ResponderHost = strings.TrimSuffix(c.ResponderHost, "/") + "/v1"
	}
	if c.ExtractorHost != "" && !strings.HasSuffix(c.ExtractorHost, "/v1") {
		c.ExtractorHost = strings.TrimSuffix(c.ExtractorHost, "/") + "/v1"
	}
}

// Validate checks that the configuration is valid and complete.
// It automatically normalizes the configuration before validation.
func (c *Config) Validate() error {
	c.Normalize()

	if c.ResponderHost == "" {
		return errors.New("ai config: ResponderHost is required")
	}
	if c.ExtractorHost == "" {
		return errors.New("ai config: ExtractorHost is required")
	}
	if c.ResponderModel == "" {
		return errors.New("ai config: ResponderModel is required")
	}
	if c.ExtractorModel == "" {
		return errors.New("ai config: ExtractorModel is required")
	}
	if c.MaxReplyTokens < 1 {
		return errors.New("ai config: MaxReplyTokens must be positive")
	}
	if c.ReplyTemperature < 0 || c.ReplyTemperature > 2 {
		return errors.New("ai config: ReplyTemperature must be between 0 and 2")
	}
	return nil
}
