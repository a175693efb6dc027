// Copyright 2025 Labelens Authors
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

// Config holds configuration for the knowledge model client.
type Config struct {
	// KnowledgeHost is the base URL of the OpenAI-compatible chat API.
	// Example: "http://localhost:11434/v1" for a local server
	KnowledgeHost string

	// KnowledgeModel is the model identifier to query.
	// Example: "qwen2.5:3b", "gpt-4o-mini"
	KnowledgeModel string

	// Token is the API token. Local OpenAI-compatible services that don't
	// require authentication accept any non-empty value.
	Token string
}

// ConfigOption is a functional option for configuring a Config.
type ConfigOption func(*Config)

// WithKnowledgeHost sets the knowledge model service host URL.
func WithKnowledgeHost(host string) ConfigOption {
	return func(c *Config) {
		c.KnowledgeHost = host
	}
}

// WithKnowledgeModel sets the knowledge model identifier.
func WithKnowledgeModel(model string) ConfigOption {
	return func(c *Config) {
		c.KnowledgeModel = model
	}
}

// WithToken sets the API token.
func WithToken(token string) ConfigOption {
	return func(c *Config) {
		c.Token = token
	}
}

// DefaultConfig returns a Config with sensible defaults for a local
// OpenAI-compatible service.
func DefaultConfig() *Config {
	return &Config{
		KnowledgeHost:  "http://localhost:11434/v1",
		KnowledgeModel: "qwen2.5:3b",
		Token:          "none",
	}
}

// NewConfig creates a Config with the default values and applies the
// provided options.
func NewConfig(opts ...ConfigOption) *Config {
	cfg := DefaultConfig()
	for _, opt := range opts {
		opt(cfg)
	}
	return cfg
}

// Normalize ensures the configuration is in a canonical form. It adds the
// /v1 suffix to the host if missing, which is required by most
// OpenAI-compatible APIs (Ollama, LocalAI, vLLM, etc).
func (c *Config) Normalize() {
	if c.KnowledgeHost != "" && !strings.HasSuffix(c.KnowledgeHost, "/v1") {
		c.KnowledgeHost = strings.TrimSuffix(c.KnowledgeHost, "/")
		c.KnowledgeHost = c.KnowledgeHost + "/v1"
	}
	if c.Token == "" {
		c.Token = "none"
	}
}

// Validate checks that the configuration is valid and complete.
// It automatically normalizes the configuration before validation.
func (c *Config) Validate() error {
	c.Normalize()

	if c.KnowledgeHost == "" {
		return errors.New("ai config: KnowledgeHost is required")
	}
	if c.KnowledgeModel == "" {
		return errors.New("ai config: KnowledgeModel is required")
	}
	return nil
}
