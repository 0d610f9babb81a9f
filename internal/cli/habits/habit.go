package habits

import (
	"fmt"

	"github.com/julianstephens/dayplan/internal/cli"
	"github.com/julianstephens/dayplan/internal/models"
)

type HabitToggleCmd struct {
	Habit string `arg:"" help:"Habit kind (water|exercise|reading|meditation|vitamins|sleep|healthy|journal)."`
}

func (c *HabitToggleCmd) Run(ctx *cli.Context) error {
	habit, ok := models.ParseHabit(c.Habit)
	if !ok {
		return fmt.Errorf("unknown habit %q", c.Habit)
	}
	if err := ctx.Session.ToggleHabit(habit); err != nil {
		return err
	}
	state := "not done"
	if ctx.Session.Plan().CompletedHabits[habit] {
		state = "done"
	}
	fmt.Printf("✓ %s is now %s for %s\n", habit, state, ctx.Session.Date())
	return nil
}

type HabitListCmd struct{}

func (c *HabitListCmd) Run(ctx *cli.Context) error {
	completed := ctx.Session.Plan().CompletedHabits
	for _, h := range models.Habits {
		mark := " "
		if completed[h] {
			mark = "x"
		}
		fmt.Printf("  [%s] %s\n", mark, h)
	}
	return nil
}
