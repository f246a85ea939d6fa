package llm

import (
	"log/slog"
	"time"
)

// Config holds configuration for the chat API client
type Config struct {
	APIKey     string        // API key for the chat provider
	BaseURL    string        // Base URL for the chat API
	Logger     *slog.Logger  // Logger for debugging
	Timeout    time.Duration // HTTP timeout
	RetryCount int           // Number of retries for failed requests
	RetryDelay time.Duration // Delay between retries
}
