package tasks

import (
	"fmt"
	"os"
	"strings"

	"github.com/julianstephens/dayplan/internal/cli"
)

type TaskAddCmd struct {
	Text []string `arg:"" help:"Task text."`
}

func (c *TaskAddCmd) Run(ctx *cli.Context) error {
	if err := ctx.Session.AddTask(strings.Join(c.Text, " ")); err != nil {
		return err
	}
	fmt.Printf("✓ Task added to %s\n", ctx.Session.Date())
	return nil
}

type TaskToggleCmd struct {
	Index int `arg:"" help:"Task number as shown by 'task list'."`
}

func (c *TaskToggleCmd) Run(ctx *cli.Context) error {
	n := len(ctx.Session.Plan().Tasks)
	if c.Index < 1 || c.Index > n {
		// Out-of-range is not an error; nothing changes.
		fmt.Printf("No task %d (plan has %d tasks)\n", c.Index, n)
		return nil
	}
	if err := ctx.Session.ToggleTask(c.Index - 1); err != nil {
		return err
	}
	task := ctx.Session.Plan().Tasks[c.Index-1]
	state := "open"
	if task.IsCompleted {
		state = "done"
	}
	fmt.Printf("✓ Task %d is now %s\n", c.Index, state)
	return nil
}

type TaskEditCmd struct {
	Index int      `arg:"" help:"Task number as shown by 'task list'."`
	Text  []string `arg:"" help:"New task text."`
}

func (c *TaskEditCmd) Run(ctx *cli.Context) error {
	if err := ctx.Session.SetTaskText(c.Index-1, strings.Join(c.Text, " ")); err != nil {
		return err
	}
	fmt.Printf("✓ Task %d updated\n", c.Index)
	return nil
}

type TaskDeleteCmd struct {
	Index int `arg:"" help:"Task number as shown by 'task list'."`
}

func (c *TaskDeleteCmd) Run(ctx *cli.Context) error {
	if err := ctx.Session.DeleteTask(c.Index - 1); err != nil {
		return err
	}
	fmt.Printf("✓ Task %d deleted\n", c.Index)
	return nil
}

type TaskListCmd struct {
	Pending bool `short:"p" help:"Only show incomplete tasks with text."`
}

func (c *TaskListCmd) Run(ctx *cli.Context) error {
	if c.Pending {
		cli.PrintTasks(os.Stdout, ctx.Session.PendingTasks())
		return nil
	}
	cli.PrintTasks(os.Stdout, ctx.Session.Plan().Tasks)
	return nil
}
