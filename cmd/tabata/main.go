package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/iudanet/tabata/internal/app"
	"github.com/iudanet/tabata/internal/auth"
	"github.com/iudanet/tabata/internal/cli"
	"github.com/iudanet/tabata/internal/cli/iocli"
	"github.com/iudanet/tabata/internal/config"
	"github.com/iudanet/tabata/internal/crypto"
	"github.com/iudanet/tabata/internal/exercise"
	"github.com/iudanet/tabata/internal/logging"
	"github.com/iudanet/tabata/internal/session"
	"github.com/iudanet/tabata/internal/stats"
	"github.com/iudanet/tabata/internal/storage/boltdb"
	"github.com/iudanet/tabata/internal/storage/sqlite"
	"github.com/iudanet/tabata/internal/workout"
)

var (
	// Version information set via ldflags during build
	Version   = "dev"
	BuildDate = "unknown"
	GitCommit = "unknown"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, args, err := config.Load(os.Args[1:])
	if err != nil {
		return err
	}

	if len(args) == 0 {
		cli.New(iocli.NewStdio(), nil, nil, nil, nil).PrintUsage()
		return errors.New("no command given")
	}

	command := args[0]
	if command == "version" {
		printVersion()
		return nil
	}

	logger, closeLog, err := logging.New(os.Stderr, cfg.LogLevel, cfg.LogFile)
	if err != nil {
		return err
	}
	defer func() {
		if err := closeLog(); err != nil {
			fmt.Fprintf(os.Stderr, "failed to close log file: %v\n", err)
		}
	}()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Открываем SQLite storage
	store, err := sqlite.New(ctx, cfg.DBPath)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer func() {
		if err := store.Close(); err != nil {
			logger.Error("failed to close database", slog.Any("error", err))
		}
	}()

	// Файл последней сессии
	lastSession, err := boltdb.New(ctx, cfg.SessionFile)
	if err != nil {
		return fmt.Errorf("failed to open session file: %w", err)
	}
	defer func() {
		if err := lastSession.Close(); err != nil {
			logger.Error("failed to close session file", slog.Any("error", err))
		}
	}()

	authService := auth.NewService(store, crypto.NewPasswordHasher(), logger,
		auth.WithLimiter(auth.NewLimiter(cfg.LoginAttempts, cfg.LoginWindow)),
		auth.WithMinPasswordLength(cfg.PasswordMinLength),
	)
	sessions := session.NewManager(store, logger,
		session.WithTTL(cfg.ShortSessionTTL, cfg.RememberSessionTTL),
	)
	application := app.New(authService, sessions, lastSession, logger)
	application.CleanupSessions(ctx)

	if command == "dbinfo" {
		return printDBInfo(ctx, store)
	}

	c := cli.New(iocli.NewStdio(), application,
		exercise.NewService(store, logger),
		workout.NewService(store, logger, workout.WithInitialCountdown(cfg.InitialCountdown)),
		stats.NewService(store, logger,
			stats.WithTopN(cfg.ReportTopN),
			stats.WithHistoryLimit(cfg.HistoryLimit),
		),
	)

	return c.Run(ctx, command, args[1:])
}

func printDBInfo(ctx context.Context, store *sqlite.Storage) error {
	info, err := store.Info(ctx)
	if err != nil {
		return err
	}

	fmt.Printf("Database:       %s\n", info.Path)
	fmt.Printf("SQLite version: %s\n", info.SQLiteVersion)
	if info.Exists {
		fmt.Printf("Size:           %d bytes\n", info.SizeBytes)
	}
	for _, table := range []string{"users", "user_sessions", "exercises", "workouts", "history"} {
		fmt.Printf("  %-14s %d\n", table, info.TableCounts[table])
	}
	return nil
}

func printVersion() {
	fmt.Printf("Tabata\n")
	fmt.Printf("Version:    %s\n", Version)
	fmt.Printf("Build Date: %s\n", BuildDate)
	fmt.Printf("Git Commit: %s\n", GitCommit)
}
