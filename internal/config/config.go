package config

// Config holds all application configuration.
// It organizes settings into logical groups for better maintainability.
type Config struct {
	Server        ServerConfig        `mapstructure:"server" validate:"required"`
	Database      DatabaseConfig      `mapstructure:"database" validate:"required"`
	Auth          AuthConfig          `mapstructure:"auth" validate:"required"`
	Notifications NotificationsConfig `mapstructure:"notifications" validate:"required"`
	Redis         RedisConfig         `mapstructure:"redis"`
	Cleanup       CleanupConfig       `mapstructure:"cleanup" validate:"required"`
}

// ServerConfig contains all server-related configuration settings.
type ServerConfig struct {
	Port     int    `mapstructure:"port" validate:"required,gt=0,lt=65536"`
	LogLevel string `mapstructure:"log_level" validate:"required,oneof=debug info warn error"`
	// ShutdownTimeoutSeconds bounds graceful shutdown of the HTTP server.
	ShutdownTimeoutSeconds int `mapstructure:"shutdown_timeout_seconds" validate:"gte=1"`
}

// DatabaseConfig contains all database-related configuration settings.
type DatabaseConfig struct {
	URL          string `mapstructure:"url" validate:"required,url"`
	MaxOpenConns int    `mapstructure:"max_open_conns" validate:"gte=1"`
	MaxIdleConns int    `mapstructure:"max_idle_conns" validate:"gte=0"`
	// AutoMigrate applies pending goose migrations on server start.
	AutoMigrate bool `mapstructure:"auto_migrate"`
}

// AuthConfig contains all authentication and authorization settings.
type AuthConfig struct {
	JWTSecret            string `mapstructure:"jwt_secret" validate:"required,min=32"`
	TokenLifetimeMinutes int    `mapstructure:"token_lifetime_minutes" validate:"required,gt=0,lt=44640"` // Max 31 days
	// ClockSkewSeconds is the leeway applied to time-based claims.
	ClockSkewSeconds int `mapstructure:"clock_skew_seconds" validate:"gte=0,lte=300"`
	BcryptCost       int `mapstructure:"bcrypt_cost" validate:"gte=4,lte=31"`
}

// NotificationsConfig controls the task event fan-out.
type NotificationsConfig struct {
	QueueSize   int `mapstructure:"queue_size" validate:"required,gt=0"`
	WorkerCount int `mapstructure:"worker_count" validate:"required,gt=0"`
	// AllowedOrigin restricts websocket upgrades. Empty allows any origin.
	AllowedOrigin string `mapstructure:"allowed_origin"`
	// RedisChannel is the pub/sub channel task events are published on when
	// Redis is configured.
	RedisChannel string `mapstructure:"redis_channel"`
}

// RedisConfig configures the optional Redis connection used for login rate
// limiting and event publishing. An empty Addr disables both.
type RedisConfig struct {
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db" validate:"gte=0"`

	LoginRateLimit     int `mapstructure:"login_rate_limit" validate:"gte=0"`
	LoginWindowSeconds int `mapstructure:"login_window_seconds" validate:"gte=1"`
}

// CleanupConfig controls the periodic purge of soft-deleted tasks.
type CleanupConfig struct {
	Enabled         bool `mapstructure:"enabled"`
	IntervalMinutes int  `mapstructure:"interval_minutes" validate:"required,gt=0"`
	RetentionHours  int  `mapstructure:"retention_hours" validate:"gte=0"`
	// RunOnStart queues a sweep at startup instead of waiting one interval.
	RunOnStart      bool `mapstructure:"run_on_start"`
}
