// Package cli реализует команды tabata поверх сервисов приложения.
package cli

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/iudanet/tabata/internal/app"
	"github.com/iudanet/tabata/internal/cli/iocli"
	"github.com/iudanet/tabata/internal/exercise"
	"github.com/iudanet/tabata/internal/stats"
	"github.com/iudanet/tabata/internal/workout"
)

// ErrUnknownCommand неизвестная команда
var ErrUnknownCommand = errors.New("unknown command")

// TickerFunc возвращает канал тиков и функцию его остановки
type TickerFunc func(d time.Duration) (<-chan time.Time, func())

func systemTicker(d time.Duration) (<-chan time.Time, func()) {
	t := time.NewTicker(d)
	return t.C, t.Stop
}

// Cli исполняет команды пользователя
type Cli struct {
	io        iocli.IO
	app       *app.App
	exercises *exercise.Service
	workouts  *workout.Service
	stats     *stats.Service
	newTicker TickerFunc
}

// Option настраивает Cli
type Option func(*Cli)

// WithTicker подменяет источник секундных тиков
func WithTicker(f TickerFunc) Option {
	return func(c *Cli) {
		c.newTicker = f
	}
}

func New(io iocli.IO, a *app.App, exercises *exercise.Service, workouts *workout.Service, statsSvc *stats.Service, opts ...Option) *Cli {
	c := &Cli{
		io:        io,
		app:       a,
		exercises: exercises,
		workouts:  workouts,
		stats:     statsSvc,
		newTicker: systemTicker,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Run выполняет команду с аргументами
func (c *Cli) Run(ctx context.Context, command string, args []string) error {
	switch command {
	case "register":
		return c.runRegister(ctx)
	case "login":
		return c.runLogin(ctx, args)
	case "logout":
		return c.runLogout(ctx)
	case "status":
		return c.runStatus(ctx)
	case "passwd":
		return c.withAuth(ctx, c.runChangePassword)
	case "profile":
		return c.withAuth(ctx, func(ctx context.Context, cur *app.Current) error {
			return c.runProfile(ctx, cur, args)
		})
	case "exercise":
		return c.withAuth(ctx, func(ctx context.Context, cur *app.Current) error {
			return c.runExercise(ctx, cur, args)
		})
	case "run":
		return c.withAuth(ctx, func(ctx context.Context, cur *app.Current) error {
			return c.runWorkout(ctx, cur, args)
		})
	case "workout":
		return c.withAuth(ctx, func(ctx context.Context, cur *app.Current) error {
			return c.runWorkoutCmd(ctx, cur, args)
		})
	case "stats":
		return c.withAuth(ctx, c.runStats)
	case "history":
		return c.withAuth(ctx, func(ctx context.Context, cur *app.Current) error {
			return c.runHistory(ctx, cur, args)
		})
	case "report":
		return c.withAuth(ctx, func(ctx context.Context, cur *app.Current) error {
			return c.runReport(ctx, cur, args)
		})
	case "help":
		c.PrintUsage()
		return nil
	default:
		c.PrintUsage()
		return fmt.Errorf("%w: %s", ErrUnknownCommand, command)
	}
}

// withAuth восстанавливает сессию и вызывает fn от имени пользователя
func (c *Cli) withAuth(ctx context.Context, fn func(ctx context.Context, cur *app.Current) error) error {
	cur, err := c.app.Restore(ctx)
	if err != nil {
		if errors.Is(err, app.ErrNotAuthenticated) {
			return fmt.Errorf("not authenticated. Please run 'tabata login' first")
		}
		return err
	}
	return fn(ctx, cur)
}

// PrintUsage печатает справку по командам
func (c *Cli) PrintUsage() {
	c.io.Println("Usage: tabata [flags] <command> [args]")
	c.io.Println()
	c.io.Println("Account:")
	c.io.Println("  register                       create an account and log in")
	c.io.Println("  login [-remember]              log in by email and password")
	c.io.Println("  logout                         end the current session")
	c.io.Println("  status                         show who is logged in")
	c.io.Println("  passwd                         change password (logs out everywhere)")
	c.io.Println("  profile [-username U] [-email E]")
	c.io.Println()
	c.io.Println("Exercises:")
	c.io.Println("  exercise add -name N [-desc D] [-sets 5] [-reps 20] [-rest 60] [-prepare 10]")
	c.io.Println("  exercise list")
	c.io.Println("  exercise edit <id> [-name N] [-desc D] [-sets S] [-reps R] [-rest T] [-prepare P]")
	c.io.Println("  exercise delete <id>")
	c.io.Println()
	c.io.Println("Workouts:")
	c.io.Println("  run <exercise-id>              start a workout timer")
	c.io.Println("  workout show <id>              workout with per-set results")
	c.io.Println("  workout rename <id> <name>")
	c.io.Println("  workout delete <id>")
	c.io.Println()
	c.io.Println("Statistics:")
	c.io.Println("  stats                          totals")
	c.io.Println("  history [-limit N]             recent workouts")
	c.io.Println("  report [-from YYYY-MM-DD] [-to YYYY-MM-DD]")
	c.io.Println()
	c.io.Println("Other:")
	c.io.Println("  dbinfo                         database file and row counts")
	c.io.Println("  version")
}
