package system

import (
	"fmt"

	"github.com/julianstephens/dayplan/internal/cli"
)

type InitCmd struct{}

func (c *InitCmd) Run(ctx *cli.Context) error {
	// Constructing the context already created the plans directory and the
	// settings database; report where everything landed.
	fmt.Printf("✓ Storage initialized\n")
	fmt.Printf("  Plans:    %s\n", ctx.Store.Dir())
	fmt.Printf("  Settings: %s\n", ctx.Config.SettingsPath())
	return nil
}
