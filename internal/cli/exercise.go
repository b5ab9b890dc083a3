package cli

import (
	"context"
	"flag"
	"fmt"
	"io"

	"github.com/iudanet/tabata/internal/app"
	"github.com/iudanet/tabata/internal/models"
)

// Значения формы нового упражнения
const (
	defaultSets        = 5
	defaultReps        = 20
	defaultRestTime    = 60
	defaultPrepareTime = 10
)

func (c *Cli) runExercise(ctx context.Context, cur *app.Current, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("usage: tabata exercise <add|list|edit|delete>")
	}

	switch args[0] {
	case "add":
		return c.runExerciseAdd(ctx, cur, args[1:])
	case "list", "ls":
		return c.runExerciseList(ctx, cur)
	case "edit":
		return c.runExerciseEdit(ctx, cur, args[1:])
	case "delete", "rm":
		if len(args) < 2 {
			return fmt.Errorf("usage: tabata exercise delete <id>")
		}
		if err := c.exercises.Delete(ctx, cur.User.ID, args[1]); err != nil {
			return fmt.Errorf("failed to delete exercise: %w", err)
		}
		c.io.Println("✓ Exercise deleted")
		return nil
	default:
		return fmt.Errorf("%w: exercise %s", ErrUnknownCommand, args[0])
	}
}

// exerciseFlags описывает поля упражнения флагами; значения по умолчанию задает base
func exerciseFlags(name string, base models.Exercise) (*flag.FlagSet, *models.Exercise) {
	e := base
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	fs.StringVar(&e.Name, "name", e.Name, "exercise name")
	fs.StringVar(&e.Description, "desc", e.Description, "description")
	fs.IntVar(&e.Sets, "sets", e.Sets, "number of sets")
	fs.IntVar(&e.Reps, "reps", e.Reps, "target reps per set")
	fs.IntVar(&e.RestTime, "rest", e.RestTime, "rest between sets, seconds")
	fs.IntVar(&e.PrepareTime, "prepare", e.PrepareTime, "warning before rest ends, seconds")
	return fs, &e
}

func (c *Cli) runExerciseAdd(ctx context.Context, cur *app.Current, args []string) error {
	fs, e := exerciseFlags("exercise add", models.Exercise{
		Sets:        defaultSets,
		Reps:        defaultReps,
		RestTime:    defaultRestTime,
		PrepareTime: defaultPrepareTime,
	})
	if err := fs.Parse(args); err != nil {
		return err
	}

	created, err := c.exercises.Create(ctx, cur.User.ID, *e)
	if err != nil {
		return fmt.Errorf("failed to create exercise: %w", err)
	}

	c.io.Println("✓ Exercise created")
	c.printExercise(created)
	return nil
}

func (c *Cli) runExerciseEdit(ctx context.Context, cur *app.Current, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("usage: tabata exercise edit <id> [flags]")
	}
	id := args[0]

	fs, e := exerciseFlags("exercise edit", models.Exercise{})
	if err := fs.Parse(args[1:]); err != nil {
		return err
	}

	var patch models.ExercisePatch
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "name":
			patch.Name = &e.Name
		case "desc":
			patch.Description = &e.Description
		case "sets":
			patch.Sets = &e.Sets
		case "reps":
			patch.Reps = &e.Reps
		case "rest":
			patch.RestTime = &e.RestTime
		case "prepare":
			patch.PrepareTime = &e.PrepareTime
		}
	})

	updated, err := c.exercises.Update(ctx, cur.User.ID, id, patch)
	if err != nil {
		return fmt.Errorf("failed to update exercise: %w", err)
	}

	c.io.Println("✓ Exercise updated")
	c.printExercise(updated)
	return nil
}

func (c *Cli) runExerciseList(ctx context.Context, cur *app.Current) error {
	list, err := c.exercises.List(ctx, cur.User.ID)
	if err != nil {
		return fmt.Errorf("failed to list exercises: %w", err)
	}

	c.io.Println("=== Exercises ===")
	if len(list) == 0 {
		c.io.Println("No exercises yet. Add one with 'tabata exercise add -name <name>'.")
		return nil
	}

	for _, e := range list {
		c.io.Println()
		c.printExercise(e)
	}
	return nil
}

func (c *Cli) printExercise(e *models.Exercise) {
	c.io.Printf("ID:       %s\n", e.ID)
	c.io.Printf("Name:     %s\n", e.Name)
	if e.Description != "" {
		c.io.Printf("About:    %s\n", e.Description)
	}
	c.io.Printf("Plan:     %d sets x %d reps, rest %ds, warning %ds\n", e.Sets, e.Reps, e.RestTime, e.PrepareTime)
	c.io.Printf("Estimate: %s\n", formatClock(c.workouts.EstimateDuration(e, estimatedSetSeconds)))
}
