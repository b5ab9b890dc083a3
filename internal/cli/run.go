package cli

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/iudanet/tabata/internal/app"
	"github.com/iudanet/tabata/internal/timer"
	"github.com/iudanet/tabata/internal/validation"
	"github.com/iudanet/tabata/internal/workout"
)

// estimatedSetSeconds средняя длительность подхода для оценки времени тренировки
const estimatedSetSeconds = 30

func (c *Cli) runWorkout(ctx context.Context, cur *app.Current, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("usage: tabata run <exercise-id>")
	}

	ex, err := c.exercises.Get(ctx, cur.User.ID, args[0])
	if err != nil {
		return fmt.Errorf("failed to load exercise: %w", err)
	}

	h, events, err := c.workouts.StartWorkout(ctx, cur.User.ID, ex)
	if err != nil {
		return fmt.Errorf("failed to start workout: %w", err)
	}

	c.io.Printf("=== %s: %d sets x %d reps ===\n", ex.Name, ex.Sets, ex.Reps)
	c.io.Println("Commands: 'done [reps]' when a set is finished, 'stop' to quit.")
	c.printEvents(events)

	ticks, stopTicker := c.newTicker(time.Second)
	defer stopTicker()

	lines := make(chan string)
	quit := make(chan struct{})
	defer close(quit)
	go c.readLines(lines, quit)

	for !h.Done() {
		select {
		case <-ctx.Done():
			c.stopWorkout(context.WithoutCancel(ctx), h)
			return ctx.Err()
		case <-ticks:
			c.printEvents(c.workouts.Tick(h))
		case line, ok := <-lines:
			if !ok {
				lines = nil
				c.stopWorkout(ctx, h)
				continue
			}
			c.handleRunInput(ctx, h, line)
		}
	}

	c.printWorkoutSummary(h)
	return nil
}

// readLines пересылает строки ввода в lines до ошибки чтения или закрытия quit
func (c *Cli) readLines(lines chan<- string, quit <-chan struct{}) {
	defer close(lines)
	for {
		line, err := c.io.ReadInput("")
		if err != nil {
			return
		}
		select {
		case lines <- line:
		case <-quit:
			return
		}
	}
}

func (c *Cli) handleRunInput(ctx context.Context, h *workout.Handle, line string) {
	fields := strings.Fields(strings.ToLower(line))
	if len(fields) == 0 {
		c.printSnapshot(h.Snapshot())
		return
	}

	switch fields[0] {
	case "stop", "q", "quit":
		c.stopWorkout(ctx, h)
		return
	case "done", "d":
		fields = fields[1:]
	}

	reps := h.Exercise().Reps
	if len(fields) > 0 {
		n, err := strconv.Atoi(fields[0])
		if err != nil {
			c.io.Println("Unknown input. Type 'done [reps]' or 'stop'.")
			return
		}
		reps = n
	}

	events, err := c.workouts.ConfirmSet(ctx, h, reps)
	if err != nil {
		var vErr *validation.Error
		if errors.As(err, &vErr) {
			c.io.Printf("Invalid result: %s\n", strings.Join(vErr.Problems, "; "))
			return
		}
		c.io.Printf("Could not save the set, try again: %v\n", err)
		return
	}
	if events == nil {
		c.io.Println("Nothing to confirm right now.")
		return
	}

	w := h.Workout()
	c.io.Printf("✓ Set %d saved: %d reps, %s\n", w.Sets, reps, formatClock(w.WorkTime))
	c.printEvents(events)
}

func (c *Cli) stopWorkout(ctx context.Context, h *workout.Handle) {
	events, err := c.workouts.Stop(ctx, h)
	if err != nil {
		c.io.Printf("Warning: %v\n", err)
	}
	c.printEvents(events)
}

func (c *Cli) printEvents(events []timer.Event) {
	for _, ev := range events {
		switch ev.Kind {
		case timer.EventPhaseChanged:
			c.printPhase(ev)
		case timer.EventCue:
			if ev.Signal == timer.SignalPhaseEnd {
				c.io.Printf("\a\a")
			} else {
				c.io.Printf("\a%d... ", ev.Seconds)
			}
		case timer.EventTick:
			if ev.State == timer.StateAwaitingConfirm && ev.Seconds > 0 && ev.Seconds%10 == 0 {
				c.io.Printf("[set %d] %s\n", ev.Set, formatClock(ev.Seconds))
			}
		}
	}
}

func (c *Cli) printPhase(ev timer.Event) {
	switch ev.State {
	case timer.StatePreparing:
		c.io.Printf("Get ready! Starting in %ds\n", ev.Seconds)
	case timer.StateAwaitingConfirm:
		c.io.Printf("\nSet %d: GO!\n", ev.Set)
	case timer.StateResting:
		c.io.Printf("Rest %ds\n", ev.Seconds)
	case timer.StateFinished:
		c.io.Println("\nWorkout finished!")
	case timer.StateStopped:
		c.io.Println("\nWorkout stopped.")
	}
}

func (c *Cli) printSnapshot(s timer.Snapshot) {
	c.io.Printf("%s, set %d/%d, %s\n", s.State, s.CurrentSet, s.TotalSets, formatClock(s.Seconds))
}

func (c *Cli) printWorkoutSummary(h *workout.Handle) {
	w := h.Workout()
	if w.Sets == 0 {
		c.io.Println("No sets completed, workout discarded.")
		return
	}

	c.io.Println()
	c.io.Printf("Workout: %s\n", w.Name)
	c.io.Printf("Sets:    %d\n", w.Sets)
	c.io.Printf("Reps:    %d\n", w.Reps)
	c.io.Printf("Time:    %s\n", formatClock(w.WorkTime))
}
