package cli

import (
	"context"
	"flag"
	"io"
	"strings"

	"github.com/iudanet/tabata/internal/app"
	"github.com/iudanet/tabata/internal/models"
	"github.com/iudanet/tabata/internal/stats"
)

var weekdays = [7]string{"Mon", "Tue", "Wed", "Thu", "Fri", "Sat", "Sun"}

func (c *Cli) runStats(ctx context.Context, cur *app.Current) error {
	s, err := c.stats.GetUserStats(ctx, cur.User.ID)
	if err != nil {
		return err
	}

	c.io.Println("=== Statistics ===")
	c.io.Printf("Workouts:   %d\n", s.TotalWorkouts)
	c.io.Printf("Total time: %s\n", formatClock(s.TotalDuration))
	return nil
}

func (c *Cli) runHistory(ctx context.Context, cur *app.Current, args []string) error {
	fs := flag.NewFlagSet("history", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	limit := fs.Int("limit", 0, "number of workouts")
	if err := fs.Parse(args); err != nil {
		return err
	}

	list, err := c.stats.GetWorkoutHistory(ctx, cur.User.ID, stats.HistoryFilter{Limit: *limit})
	if err != nil {
		return err
	}

	c.io.Println("=== History ===")
	if len(list) == 0 {
		c.io.Println("No workouts yet.")
		return nil
	}

	for _, w := range list {
		c.io.Printf("%s  %-20s %2d sets %4d reps  %s  %s\n",
			w.CreatedAt.In(c.stats.Location()).Format("2006-01-02 15:04"),
			w.Name, w.Sets, w.Reps, formatClock(w.WorkTime), w.ID)
	}
	return nil
}

func (c *Cli) runReport(ctx context.Context, cur *app.Current, args []string) error {
	fs := flag.NewFlagSet("report", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	from := fs.String("from", "", "period start, YYYY-MM-DD")
	to := fs.String("to", "", "period end (inclusive), YYYY-MM-DD")
	if err := fs.Parse(args); err != nil {
		return err
	}

	start, end, err := stats.ParseReportPeriod(*from, *to, c.stats.Location())
	if err != nil {
		return err
	}

	report, err := c.stats.GenerateReport(ctx, cur.User.ID, start, end)
	if err != nil {
		return err
	}

	c.printReport(report)
	return nil
}

func (c *Cli) printReport(r *models.Report) {
	c.io.Println("=== Report ===")

	if !r.HasData {
		c.io.Println("No workouts in this period.")
		c.printRecommendations(r.Recommendations)
		return
	}

	c.io.Printf("Sessions:      %d (%.1f per week)\n", r.Summary.TotalSessions, r.Summary.AvgPerWeek)
	c.io.Printf("Total time:    %s\n", formatClock(r.Summary.TotalDuration))
	c.io.Printf("Average:       %s\n", formatClock(int(r.Summary.AvgDuration)))
	c.io.Println()

	c.io.Println("Top workouts:")
	for i, s := range r.TopWorkouts {
		c.io.Printf("  %d. %s: %d (%.1f%%)\n", i+1, s.Name, s.Count, s.Percentage)
	}
	c.io.Println()

	c.io.Println("By weekday:")
	for i, n := range r.DayDistribution {
		c.io.Printf("  %s %s %d\n", weekdays[i], strings.Repeat("█", n), n)
	}
	c.io.Println()

	c.io.Printf("Trend:         %s (%+.1f%%)\n", r.Progress.Trend, r.Progress.Improvement)
	c.io.Printf("Consistency:   %.1f/100\n", r.Progress.Consistency)

	c.printRecommendations(r.Recommendations)
}

func (c *Cli) printRecommendations(recs []string) {
	if len(recs) == 0 {
		return
	}
	c.io.Println()
	c.io.Println("Recommendations:")
	for _, r := range recs {
		c.io.Printf("  - %s\n", r)
	}
}
