package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/alecthomas/kong"

	"github.com/elee1766/taskchat/src/api"
	"github.com/elee1766/taskchat/src/chat"
	"github.com/elee1766/taskchat/src/config"
	"github.com/elee1766/taskchat/src/llm"
	"github.com/elee1766/taskchat/src/storage"
	"github.com/elee1766/taskchat/src/taskagent"
)

// ServeCmd starts the chat API server
type ServeCmd struct {
	Addr   string `help:"Listen address (overrides config)"`
	DBPath string `help:"Database path (overrides config)"`
}

// Run executes the serve command
func (c *ServeCmd) Run(ctx *kong.Context, cli *CLI) error {
	logger := newLogger(cli.LogLevel)

	cfg, err := config.Load(cli.Config)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if cli.APIKey != "" {
		cfg.API.APIKey = cli.APIKey
	}
	if c.Addr != "" {
		cfg.Server.Addr = c.Addr
	}
	if c.DBPath != "" {
		cfg.Storage.DatabasePath = c.DBPath
	}
	if cfg.API.APIKey == "" {
		return fmt.Errorf("no API key configured, set COHERE_API_KEY or use --api-key")
	}

	if err := os.MkdirAll(filepath.Dir(cfg.Storage.DatabasePath), 0755); err != nil {
		return fmt.Errorf("failed to create data directory: %w", err)
	}

	db, err := storage.Open(cfg.Storage.DatabasePath)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer db.Close()
	logger.Info("database opened", "path", cfg.Storage.DatabasePath)

	provider := llm.NewClient(llm.Config{
		APIKey:     cfg.API.APIKey,
		BaseURL:    cfg.API.BaseURL,
		Logger:     logger,
		Timeout:    cfg.API.Timeout,
		RetryCount: cfg.API.RetryCount,
		RetryDelay: cfg.API.RetryDelay,
	})

	toolbox, err := taskagent.DefaultToolbox(db, logger)
	if err != nil {
		return fmt.Errorf("failed to build toolbox: %w", err)
	}

	controller := chat.NewController(provider, toolbox, db, chat.Config{
		Models:       []string{cfg.Agent.Model, cfg.Agent.FallbackModel},
		MaxTurns:     cfg.Agent.MaxTurns,
		AddTaskLimit: cfg.Agent.AddTaskLimit,
		Preamble:     taskagent.SystemPreamble,
		MaxTokens:    cfg.Agent.MaxTokens,
		Temperature:  cfg.Agent.Temperature,
	}, logger)

	service := chat.NewService(db, controller, logger)
	server := api.NewServer(db, service, cfg.Server.AllowOrigins, logger)

	httpServer := &http.Server{
		Addr:    cfg.Server.Addr,
		Handler: server.Handler(),
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("listening", "addr", cfg.Server.Addr)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return fmt.Errorf("server error: %w", err)
	case sig := <-stop:
		logger.Info("shutting down", "signal", sig.String())
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown failed: %w", err)
	}
	return nil
}
