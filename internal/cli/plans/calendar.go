package plans

import (
	"fmt"
	"os"

	"github.com/julianstephens/dayplan/internal/calendar"
	"github.com/julianstephens/dayplan/internal/cli"
)

// CalendarCmd shows externally fetched calendar events alongside the day's
// schedule. The feed is a JSON file produced by whatever fetches the
// calendar; events are display-only and never merged into plans.
type CalendarCmd struct {
	Feed string `arg:"" help:"Path to the exported calendar feed (JSON)."`
}

func (c *CalendarCmd) Run(ctx *cli.Context) error {
	data, err := os.ReadFile(c.Feed)
	if err != nil {
		return fmt.Errorf("failed to read calendar feed: %w", err)
	}
	events, err := calendar.DecodeFeed(data)
	if err != nil {
		return err
	}

	date := ctx.Session.Date()
	day := calendar.EventsOn(events, date)
	if len(day) == 0 {
		fmt.Printf("No calendar events on %s\n", date)
		return nil
	}

	fmt.Printf("Events on %s:\n", date)
	for _, e := range day {
		fmt.Printf("  %s-%s  %s\n", e.Start.Format("15:04"), e.End.Format("15:04"), e.Title)
	}
	return nil
}
