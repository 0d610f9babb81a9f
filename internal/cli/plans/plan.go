package plans

import (
	"fmt"
	"os"
	"time"

	"github.com/julianstephens/dayplan/internal/cli"
	"github.com/julianstephens/dayplan/internal/datekey"
)

type DayCmd struct {
	Date string `arg:"" optional:"" help:"Date to show (YYYY-MM-DD), defaults to the selected date."`
}

func (c *DayCmd) Run(ctx *cli.Context) error {
	if c.Date != "" {
		date, err := datekey.Parse(c.Date)
		if err != nil {
			return err
		}
		if err := ctx.Session.SelectDate(date); err != nil {
			return err
		}
	}
	cli.PrintPlan(os.Stdout, ctx.Session.Plan())
	return nil
}

type DatesCmd struct{}

func (c *DatesCmd) Run(ctx *cli.Context) error {
	dates, err := ctx.Store.AllDates()
	if err != nil {
		return err
	}
	if len(dates) == 0 {
		fmt.Println("No stored plans.")
		return nil
	}
	for _, d := range dates {
		fmt.Println(d)
	}
	return nil
}

type RolloverCmd struct{}

func (c *RolloverCmd) Run(ctx *cli.Context) error {
	// The gate already ran during startup; report its state.
	last, err := ctx.Settings.LastRolloverDate()
	if err != nil {
		return err
	}
	fmt.Printf("Rollover last ran: %s\n", last)
	return nil
}

type PlanDeleteCmd struct {
	Date string `arg:"" help:"Date of the plan to delete (YYYY-MM-DD)."`
}

func (c *PlanDeleteCmd) Run(ctx *cli.Context) error {
	date, err := datekey.Parse(c.Date)
	if err != nil {
		return err
	}
	if err := ctx.Store.Delete(date); err != nil {
		return err
	}
	fmt.Printf("✓ Deleted plan for %s\n", date)
	return nil
}

type MonthCmd struct {
	Month int `arg:"" help:"Month to switch to (1-12); the day clamps to the month's last valid day."`
}

func (c *MonthCmd) Validate() error {
	if c.Month < 1 || c.Month > 12 {
		return fmt.Errorf("month must be between 1 and 12")
	}
	return nil
}

func (c *MonthCmd) Run(ctx *cli.Context) error {
	if err := ctx.Session.SelectMonth(time.Month(c.Month)); err != nil {
		return err
	}
	fmt.Printf("Selected date is now %s\n", ctx.Session.Date())
	return nil
}
