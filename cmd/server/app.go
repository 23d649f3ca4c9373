package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"sync"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/gaspigz/taskManagerClg/internal/cleanup"
	"github.com/gaspigz/taskManagerClg/internal/config"
	"github.com/gaspigz/taskManagerClg/internal/events"
	"github.com/gaspigz/taskManagerClg/internal/platform/postgres"
	"github.com/gaspigz/taskManagerClg/internal/platform/redis"
	"github.com/gaspigz/taskManagerClg/internal/service"
	"github.com/gaspigz/taskManagerClg/internal/service/auth"
	"github.com/gaspigz/taskManagerClg/internal/store"
	"github.com/gaspigz/taskManagerClg/internal/worker"
	"github.com/gaspigz/taskManagerClg/internal/ws"
)

// application holds all the shared application dependencies to simplify management
// and ensure proper cleanup on shutdown.
type application struct {
	config *config.Config
	logger *slog.Logger
	db     *sql.DB
	redis  *goredis.Client

	userStore store.UserStore
	taskStore store.TaskStore

	tokens       auth.TokenService
	authService  *service.AuthService
	taskService  service.TaskService
	userService  service.UserService
	loginLimiter *redis.RateLimiter

	// Notification fan-out
	hub         *ws.Hub
	eventQueue  *worker.Queue
	eventPool   *worker.Pool
	notifier    events.Notifier
	maintQueue  *worker.Queue
	maintPool   *worker.Pool
	cleanupTick *worker.Scheduler

	closeOnce sync.Once
}

// newApplication wires every dependency. Nothing is started until Run.
func newApplication(ctx context.Context, cfg *config.Config, logger *slog.Logger, db *sql.DB) (*application, error) {
	app := &application{
		config: cfg,
		logger: logger,
		db:     db,
	}

	var err error
	app.tokens, err = auth.NewTokenService(cfg.Auth)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize token service: %w", err)
	}
	logger.Info("JWT authentication service initialized",
		slog.Int("token_lifetime_minutes", cfg.Auth.TokenLifetimeMinutes))

	app.userStore = postgres.NewPostgresUserStore(db, logger)
	app.taskStore = postgres.NewPostgresTaskStore(db, logger)

	app.redis, err = redis.NewClient(ctx, cfg.Redis, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}
	app.loginLimiter = redis.NewRateLimiter(app.redis, "login",
		cfg.Redis.LoginRateLimit, time.Duration(cfg.Redis.LoginWindowSeconds)*time.Second)

	app.setupNotifications()

	gate := auth.NewCredentialGate(app.userStore, auth.NewBcryptVerifier(), logger)
	app.authService = service.NewAuthService(gate, app.tokens, logger)

	lifecycle := service.NewTaskLifecycle(app.taskStore, app.userStore, app.notifier, logger)
	query := service.NewTaskQueryEngine(app.taskStore, logger)
	app.taskService = service.NewTaskService(app.taskStore, app.userStore, lifecycle, query, logger)
	app.userService = service.NewUserService(app.userStore, auth.NewBcryptHasher(cfg.Auth.BcryptCost), db, logger)

	app.maintQueue = worker.NewQueue(1, logger)
	app.maintPool = worker.NewPool(app.maintQueue, worker.DefaultPoolConfig(), logger)
	app.cleanupTick = cleanup.NewScheduler(cfg.Cleanup, app.taskStore, app.maintQueue, logger)

	logger.Info("application initialized")
	return app, nil
}

// setupNotifications builds the event pipeline: fan-out queue, worker pool
// and the sinks every event is delivered to.
func (app *application) setupNotifications() {
	cfg := app.config.Notifications

	emitter := events.NewInMemoryEventEmitter(app.logger)
	emitter.RegisterHandler(events.NewLogSink(app.logger))

	app.hub = ws.NewHub(app.logger)
	emitter.RegisterHandler(app.hub)

	if app.redis != nil && cfg.RedisChannel != "" {
		emitter.RegisterHandler(redis.NewPublisher(app.redis, cfg.RedisChannel))
		app.logger.Info("redis event publisher enabled", slog.String("channel", cfg.RedisChannel))
	}

	app.eventQueue = worker.NewQueue(cfg.QueueSize, app.logger)
	app.eventPool = worker.NewPool(app.eventQueue, worker.PoolConfig{WorkerCount: cfg.WorkerCount}, app.logger)
	app.notifier = events.NewFanout(app.eventQueue, emitter, app.logger)
}

// Run starts the background workers and the HTTP server, and blocks until
// ctx is cancelled or the server fails.
func (app *application) Run(ctx context.Context) error {
	app.eventPool.Start()
	app.maintPool.Start()
	app.startCleanup(ctx)

	err := app.startHTTPServer(ctx, app.setupRouter())
	app.cleanup()
	if err != nil {
		return fmt.Errorf("server error: %w", err)
	}
	return nil
}

// startCleanup starts the purge schedule. The first sweep runs one interval
// after startup unless cleanup.run_on_start is set.
func (app *application) startCleanup(ctx context.Context) {
	if app.cleanupTick == nil {
		return
	}
	app.cleanupTick.Start(ctx)
	if app.config.Cleanup.RunOnStart {
		app.cleanupTick.Trigger()
	}
}

// cleanup handles graceful shutdown of application resources. Queued events
// are drained before the sinks are closed. Only the first call has an effect.
func (app *application) cleanup() {
	app.closeOnce.Do(app.shutdown)
}

func (app *application) shutdown() {
	if app.cleanupTick != nil {
		app.cleanupTick.Stop()
	}
	if app.maintQueue != nil {
		app.maintQueue.Close()
		app.maintPool.Wait()
	}
	if app.eventQueue != nil {
		app.eventQueue.Close()
		app.eventPool.Wait()
	}
	if app.hub != nil {
		app.hub.Close()
	}
	if app.redis != nil {
		if err := app.redis.Close(); err != nil {
			app.logger.Error("error closing redis client", slog.String("error", err.Error()))
		}
	}
	if app.db != nil {
		if err := app.db.Close(); err != nil {
			app.logger.Error("error closing database connection", slog.String("error", err.Error()))
		}
	}
}
