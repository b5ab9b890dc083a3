package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/iudanet/tabata/internal/app"
	"github.com/iudanet/tabata/internal/models"
)

func (c *Cli) runWorkoutCmd(ctx context.Context, cur *app.Current, args []string) error {
	if len(args) < 2 {
		return fmt.Errorf("usage: tabata workout <show|rename|delete> <id>")
	}
	id := args[1]

	switch args[0] {
	case "show":
		return c.runWorkoutShow(ctx, cur, id)
	case "rename":
		if len(args) < 3 {
			return fmt.Errorf("usage: tabata workout rename <id> <name>")
		}
		name := strings.TrimSpace(strings.Join(args[2:], " "))
		w, err := c.workouts.Update(ctx, cur.User.ID, id, models.WorkoutPatch{Name: &name})
		if err != nil {
			return fmt.Errorf("failed to rename workout: %w", err)
		}
		c.io.Printf("✓ Workout renamed to %q\n", w.Name)
		return nil
	case "delete", "rm":
		if err := c.workouts.Delete(ctx, cur.User.ID, id); err != nil {
			return err
		}
		c.io.Println("✓ Workout deleted")
		return nil
	default:
		return fmt.Errorf("%w: workout %s", ErrUnknownCommand, args[0])
	}
}

func (c *Cli) runWorkoutShow(ctx context.Context, cur *app.Current, id string) error {
	w, err := c.workouts.Get(ctx, cur.User.ID, id)
	if err != nil {
		return fmt.Errorf("failed to load workout: %w", err)
	}

	sets, err := c.stats.GetWorkoutSets(ctx, cur.User.ID, id)
	if err != nil {
		return fmt.Errorf("failed to load sets: %w", err)
	}

	c.io.Printf("=== %s ===\n", w.Name)
	c.io.Printf("Date: %s\n", w.CreatedAt.In(c.stats.Location()).Format("2006-01-02 15:04"))
	c.io.Printf("Sets: %d, reps: %d, time: %s, rest: %ds\n", w.Sets, w.Reps, formatClock(w.WorkTime), w.RestTime)
	c.io.Println()

	for _, s := range sets {
		c.io.Printf("  #%-2d %4d reps  %s\n", s.SetNumber, s.Reps, formatClock(s.Duration))
	}

	return nil
}
