package config

import (
	"path/filepath"
	"time"

	"github.com/adrg/xdg"
)

// DefaultConfig returns a configuration with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Version: "1.0",
		API: APIConfig{
			APIKeyEnvVar: "COHERE_API_KEY",
			Timeout:      30 * time.Second,
			RetryCount:   3,
			RetryDelay:   time.Second,
		},
		Agent: AgentConfig{
			Model:         "command-r-08-2024",
			FallbackModel: "command-light",
			MaxTokens:     150,
			Temperature:   0.3,
			MaxTurns:      10,
			AddTaskLimit:  3,
		},
		Server: ServerConfig{
			Addr:         ":8080",
			AllowOrigins: []string{"*"},
		},
		Storage: StorageConfig{
			DatabasePath: DefaultDatabasePath(),
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

// DefaultDatabasePath returns the XDG location for the task database.
func DefaultDatabasePath() string {
	return filepath.Join(xdg.DataHome, "taskchat", "taskchat.db")
}

// DefaultConfigPath returns the XDG location of the user config file.
func DefaultConfigPath() string {
	return filepath.Join(xdg.ConfigHome, "taskchat", "config.json")
}
