package system

import (
	"errors"
	"fmt"
	"os"

	"github.com/julianstephens/dayplan/internal/cli"
	"github.com/julianstephens/dayplan/internal/keyring"
)

type DoctorCmd struct{}

func (c *DoctorCmd) Run(ctx *cli.Context) error {
	fmt.Println("Running health checks...")
	failed := 0

	check := func(name string, err error) {
		if err != nil {
			failed++
			fmt.Printf("  ✗ %s: %v\n", name, err)
			return
		}
		fmt.Printf("  ✓ %s\n", name)
	}

	_, err := os.Stat(ctx.Store.Dir())
	check("plans directory", err)

	dates, err := ctx.Store.AllDates()
	check("plan enumeration", err)
	if err == nil {
		fmt.Printf("    %d stored plans\n", len(dates))
	}

	last, err := ctx.Settings.LastRolloverDate()
	check("settings database", err)
	if err == nil && !last.IsZero() {
		fmt.Printf("    rollover last ran %s\n", last)
	}

	_, err = keyring.GetSyncToken()
	if errors.Is(err, keyring.ErrNotFound) {
		fmt.Println("  - sync token: not configured (run 'dayplan sync token')")
	} else {
		check("sync token", err)
	}

	if failed > 0 {
		return fmt.Errorf("%d checks failed", failed)
	}
	fmt.Println("All checks passed.")
	return nil
}
