// Package config loads the service configuration from JSON files and
// environment overrides.
package config

import "time"

// Config is the full service configuration.
type Config struct {
	Version string        `json:"version"`
	API     APIConfig     `json:"api"`
	Agent   AgentConfig   `json:"agent"`
	Server  ServerConfig  `json:"server"`
	Storage StorageConfig `json:"storage"`
	Logging LoggingConfig `json:"logging"`
}

// APIConfig configures the model provider connection.
type APIConfig struct {
	BaseURL      string        `json:"base_url,omitempty"`
	APIKey       string        `json:"api_key,omitempty"`
	APIKeyEnvVar string        `json:"api_key_env_var,omitempty"`
	Timeout      time.Duration `json:"timeout,omitempty"`
	RetryCount   int           `json:"retry_count,omitempty"`
	RetryDelay   time.Duration `json:"retry_delay,omitempty"`
}

// AgentConfig tunes the conversation loop.
type AgentConfig struct {
	// Model is the primary model; FallbackModel is tried when the provider
	// rejects the primary as not-found or unauthorized.
	Model         string  `json:"model"`
	FallbackModel string  `json:"fallback_model,omitempty"`
	MaxTokens     int     `json:"max_tokens,omitempty"`
	Temperature   float64 `json:"temperature,omitempty"`
	MaxTurns      int     `json:"max_turns,omitempty"`
	AddTaskLimit  int     `json:"add_task_limit,omitempty"`
}

// ServerConfig configures the HTTP listener.
type ServerConfig struct {
	Addr         string   `json:"addr"`
	AllowOrigins []string `json:"allow_origins,omitempty"`
}

// StorageConfig configures the database.
type StorageConfig struct {
	DatabasePath string `json:"database_path"`
}

// LoggingConfig configures log output.
type LoggingConfig struct {
	Level string `json:"level"`
}
