package config

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"
)

// Load reads configuration from the given path, falling back to the default
// user config location, and applies environment overrides on top. A missing
// file is not an error; defaults are used.
func Load(path string) (*Config, error) {
	config := DefaultConfig()

	if path == "" {
		path = DefaultConfigPath()
	}

	if file, err := loadFile(path); err == nil {
		config = merge(config, file)
	} else if !os.IsNotExist(err) {
		return nil, fmt.Errorf("failed to load config from %s: %w", path, err)
	}

	applyEnvironmentOverrides(config)

	if config.API.APIKey == "" && config.API.APIKeyEnvVar != "" {
		config.API.APIKey = os.Getenv(config.API.APIKeyEnvVar)
	}

	return config, nil
}

func loadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var config Config
	if err := json.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse JSON: %w", err)
	}
	return &config, nil
}

// merge overlays override onto base; zero values in override do not win.
func merge(base, override *Config) *Config {
	result := *base

	if override.Version != "" {
		result.Version = override.Version
	}
	if override.API.BaseURL != "" {
		result.API.BaseURL = override.API.BaseURL
	}
	if override.API.APIKey != "" {
		result.API.APIKey = override.API.APIKey
	}
	if override.API.APIKeyEnvVar != "" {
		result.API.APIKeyEnvVar = override.API.APIKeyEnvVar
	}
	if override.API.Timeout != 0 {
		result.API.Timeout = override.API.Timeout
	}
	if override.API.RetryCount != 0 {
		result.API.RetryCount = override.API.RetryCount
	}
	if override.API.RetryDelay != 0 {
		result.API.RetryDelay = override.API.RetryDelay
	}

	if override.Agent.Model != "" {
		result.Agent.Model = override.Agent.Model
	}
	if override.Agent.FallbackModel != "" {
		result.Agent.FallbackModel = override.Agent.FallbackModel
	}
	if override.Agent.MaxTokens != 0 {
		result.Agent.MaxTokens = override.Agent.MaxTokens
	}
	if override.Agent.Temperature != 0 {
		result.Agent.Temperature = override.Agent.Temperature
	}
	if override.Agent.MaxTurns != 0 {
		result.Agent.MaxTurns = override.Agent.MaxTurns
	}
	if override.Agent.AddTaskLimit != 0 {
		result.Agent.AddTaskLimit = override.Agent.AddTaskLimit
	}

	if override.Server.Addr != "" {
		result.Server.Addr = override.Server.Addr
	}
	if len(override.Server.AllowOrigins) > 0 {
		result.Server.AllowOrigins = override.Server.AllowOrigins
	}

	if override.Storage.DatabasePath != "" {
		result.Storage.DatabasePath = override.Storage.DatabasePath
	}

	if override.Logging.Level != "" {
		result.Logging.Level = override.Logging.Level
	}

	return &result
}

// applyEnvironmentOverrides applies TASKCHAT_* environment variables, plus
// the provider's conventional key variables.
func applyEnvironmentOverrides(config *Config) {
	if apiKey := os.Getenv("TASKCHAT_API_KEY"); apiKey != "" {
		config.API.APIKey = apiKey
	}
	if config.API.APIKey == "" {
		if apiKey := os.Getenv("COHERE_API_KEY"); apiKey != "" {
			config.API.APIKey = apiKey
		}
	}
	if config.API.APIKey == "" {
		if apiKey := os.Getenv("CO_API_KEY"); apiKey != "" {
			config.API.APIKey = apiKey
		}
	}

	if baseURL := os.Getenv("TASKCHAT_BASE_URL"); baseURL != "" {
		config.API.BaseURL = baseURL
	}
	if model := os.Getenv("TASKCHAT_MODEL"); model != "" {
		config.Agent.Model = model
	}
	if model := os.Getenv("TASKCHAT_FALLBACK_MODEL"); model != "" {
		config.Agent.FallbackModel = model
	}
	if addr := os.Getenv("TASKCHAT_ADDR"); addr != "" {
		config.Server.Addr = addr
	}
	if dbPath := os.Getenv("TASKCHAT_DB_PATH"); dbPath != "" {
		config.Storage.DatabasePath = dbPath
	}
	if level := os.Getenv("TASKCHAT_LOG_LEVEL"); level != "" {
		config.Logging.Level = level
	}
	if turns := os.Getenv("TASKCHAT_MAX_TURNS"); turns != "" {
		if n, err := strconv.Atoi(turns); err == nil && n > 0 {
			config.Agent.MaxTurns = n
		}
	}
}
