package main

import (
	"fmt"
	"log/slog"

	"github.com/gaspigz/taskManagerClg/internal/config"
	"github.com/gaspigz/taskManagerClg/internal/platform/logger"
)

// loadAppConfig loads the application configuration from environment variables or config file.
func loadAppConfig() (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	return cfg, nil
}

// setupAppLogger configures the process-wide logger from the server config
// and logs a summary of the loaded configuration.
func setupAppLogger(cfg *config.Config) (*slog.Logger, error) {
	l, err := logger.Setup(cfg.Server)
	if err != nil {
		return nil, fmt.Errorf("failed to set up logger: %w", err)
	}

	l.Info("server configuration loaded",
		slog.Int("port", cfg.Server.Port),
		slog.String("log_level", cfg.Server.LogLevel))
	l.Debug("optional integrations",
		slog.Bool("redis_enabled", cfg.Redis.Addr != ""),
		slog.Bool("cleanup_enabled", cfg.Cleanup.Enabled))

	return l, nil
}
