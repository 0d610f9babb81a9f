package system

import (
	"github.com/julianstephens/dayplan/internal/cli"
	"github.com/julianstephens/dayplan/internal/tui"
)

type TuiCmd struct{}

func (c *TuiCmd) Run(ctx *cli.Context) error {
	return tui.Run(ctx.Session)
}
