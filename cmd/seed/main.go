// Command seed fills the database with an ADMIN account, demo users
// user1..userN (password passN) and randomly assigned demo tasks.
package main

import (
	"context"
	"database/sql"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"math/rand/v2"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gaspigz/taskManagerClg/internal/config"
	"github.com/gaspigz/taskManagerClg/internal/platform/logger"
	"github.com/gaspigz/taskManagerClg/internal/platform/postgres"
	"github.com/gaspigz/taskManagerClg/internal/platform/prompt"
	"github.com/gaspigz/taskManagerClg/internal/service/auth"
	"github.com/gaspigz/taskManagerClg/internal/store"
	_ "github.com/jackc/pgx/v5/stdlib"
)

var readPassword = prompt.ConfirmedPassword

type cliOptions struct {
	seedOptions
	DatabaseURL string
	Migrate     bool
	RandSeed    uint64
	LogLevel    string
}

func main() {
	if err := run(os.Args[1:], os.Stderr); err != nil {
		fmt.Fprintf(os.Stderr, "seed: %v\n", err)
		os.Exit(1)
	}
}

func parseFlags(args []string, stderr io.Writer) (cliOptions, error) {
	var opts cliOptions
	fs := flag.NewFlagSet("seed", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.StringVar(&opts.AdminPassword, "admin-password", "", "password for the ADMIN account (prompted when empty)")
	fs.IntVar(&opts.Users, "users", 10, "number of demo users")
	fs.IntVar(&opts.Tasks, "tasks", 30, "number of demo tasks")
	fs.StringVar(&opts.DatabaseURL, "database-url", "", "database URL (defaults to the server configuration)")
	fs.BoolVar(&opts.Migrate, "migrate", true, "apply migrations before seeding")
	fs.Uint64Var(&opts.RandSeed, "rand-seed", 0, "seed for task assignment; 0 picks one from the clock")
	fs.StringVar(&opts.LogLevel, "log-level", "info", "log level")
	if err := fs.Parse(args); err != nil {
		return opts, err
	}
	if opts.Users < 0 || opts.Tasks < 0 {
		return opts, fmt.Errorf("users and tasks must not be negative")
	}
	return opts, nil
}

func run(args []string, stderr io.Writer) error {
	opts, err := parseFlags(args, stderr)
	if err != nil {
		return err
	}

	log := logger.SetupWithWriter(stderr, opts.LogLevel)

	bcryptCost := 0
	if opts.DatabaseURL == "" {
		cfg, err := config.Load()
		if err != nil {
			return fmt.Errorf("no -database-url given and configuration failed to load: %w", err)
		}
		opts.DatabaseURL = cfg.Database.URL
		bcryptCost = cfg.Auth.BcryptCost
	}

	if opts.AdminPassword == "" {
		if opts.AdminPassword, err = readPassword(stderr, "Admin password"); err != nil {
			return err
		}
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	ctx = logger.WithContext(ctx, log)

	db, err := sql.Open("pgx", opts.DatabaseURL)
	if err != nil {
		return fmt.Errorf("failed to open database connection: %w", err)
	}
	defer func() { _ = db.Close() }()

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		return fmt.Errorf("failed to ping database: %w", err)
	}

	if opts.Migrate {
		if err := postgres.Migrate(ctx, db, "up", log); err != nil {
			return err
		}
	}

	randSeed := opts.RandSeed
	if randSeed == 0 {
		randSeed = uint64(time.Now().UnixNano())
	}

	users := postgres.NewPostgresUserStore(db, log)
	tasks := postgres.NewPostgresTaskStore(db, log)

	var report seedReport
	err = store.RunInTransaction(ctx, db, func(ctx context.Context, tx *sql.Tx) error {
		s := &seeder{
			users:  users.WithTx(tx),
			tasks:  tasks.WithTx(tx),
			hasher: auth.NewBcryptHasher(bcryptCost),
			rng:    rand.New(rand.NewPCG(randSeed, randSeed)),
			logger: log.With(slog.String("component", "seeder")),
		}
		var seedErr error
		report, seedErr = s.seed(ctx, opts.seedOptions)
		return seedErr
	})
	if err != nil {
		return fmt.Errorf("seeding failed: %w", err)
	}

	log.Info("seeding completed",
		slog.Int("users_created", report.UsersCreated),
		slog.Int("users_skipped", report.UsersSkipped),
		slog.Int("tasks_created", report.TasksCreated),
		slog.Uint64("rand_seed", randSeed))
	return nil
}
