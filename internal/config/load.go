package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// EnvPrefix is prepended to every environment variable read by Load.
// For example, server.port is read from TASKS_SERVER_PORT.
const EnvPrefix = "TASKS"

// keys without defaults still have to be bound so that Unmarshal sees them
// when they only exist in the environment.
var boundKeys = []string{
	"database.url",
	"auth.jwt_secret",
	"redis.addr",
	"redis.password",
	"notifications.allowed_origin",
}

// Load configuration from environment variables and optionally config files.
// A .env file in the working directory is loaded into the process environment
// first, if present. Environment variables take precedence over values from
// config files. Returns a populated Config struct or an error if
// loading/validation fails.
func Load() (*Config, error) {
	// Missing .env is the normal case outside local development.
	_ = godotenv.Load()

	v := viper.New()
	setDefaults(v)

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	for _, key := range boundKeys {
		if err := v.BindEnv(key); err != nil {
			return nil, fmt.Errorf("failed to bind environment variable for %s: %w", key, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := validator.New().Struct(&cfg); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.log_level", "info")
	v.SetDefault("server.shutdown_timeout_seconds", 10)

	v.SetDefault("database.max_open_conns", 10)
	v.SetDefault("database.max_idle_conns", 5)
	v.SetDefault("database.auto_migrate", true)

	v.SetDefault("auth.token_lifetime_minutes", 60)
	v.SetDefault("auth.clock_skew_seconds", 0)
	v.SetDefault("auth.bcrypt_cost", 10)

	v.SetDefault("notifications.queue_size", 256)
	v.SetDefault("notifications.worker_count", 1)
	v.SetDefault("notifications.redis_channel", "task-events")

	v.SetDefault("redis.db", 0)
	v.SetDefault("redis.login_rate_limit", 10)
	v.SetDefault("redis.login_window_seconds", 60)

	v.SetDefault("cleanup.enabled", true)
	v.SetDefault("cleanup.interval_minutes", 24*60)
	v.SetDefault("cleanup.retention_hours", 7*24)
	v.SetDefault("cleanup.run_on_start", false)
}
