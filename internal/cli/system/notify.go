package system

import (
	"fmt"

	"github.com/julianstephens/dayplan/internal/cli"
	"github.com/julianstephens/dayplan/internal/logger"
	"github.com/julianstephens/dayplan/internal/notifier"
)

// NotifyCmd pushes the pending-task digest for the active date to the tray
// app. Hidden; invoked by the reminder scheduler, not users.
type NotifyCmd struct{}

func (c *NotifyCmd) Run(ctx *cli.Context) error {
	pending := ctx.Session.PendingTasks()
	if len(pending) == 0 {
		return nil
	}
	if err := notifier.New().NotifyPending(pending); err != nil {
		logger.Warn("Failed to deliver reminder", "error", err)
		return fmt.Errorf("failed to deliver reminder: %w", err)
	}
	return nil
}
