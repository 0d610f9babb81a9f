package plans

import (
	"fmt"
	"os"
	"strings"

	"github.com/julianstephens/dayplan/internal/cli"
	"github.com/julianstephens/dayplan/internal/models"
)

type MoodCmd struct {
	Mood string `arg:"" optional:"" help:"Mood to record (great|good|okay|bad|terrible); omit to show."`
}

func (c *MoodCmd) Run(ctx *cli.Context) error {
	if c.Mood == "" {
		mood := ctx.Session.Plan().SelectedMood
		if mood == "" {
			fmt.Println("No mood recorded.")
		} else {
			fmt.Println(mood)
		}
		return nil
	}

	mood, ok := models.ParseMood(c.Mood)
	if !ok {
		return fmt.Errorf("unknown mood %q", c.Mood)
	}
	if err := ctx.Session.SelectMood(mood); err != nil {
		return err
	}
	fmt.Printf("✓ Mood for %s: %s\n", ctx.Session.Date(), mood)
	return nil
}

type NotesCmd struct {
	Text []string `arg:"" optional:"" help:"Notes text; omit to show."`
}

func (c *NotesCmd) Run(ctx *cli.Context) error {
	if len(c.Text) == 0 {
		fmt.Println(ctx.Session.Plan().Notes)
		return nil
	}
	if err := ctx.Session.UpdateNotes(strings.Join(c.Text, " ")); err != nil {
		return err
	}
	fmt.Printf("✓ Notes updated for %s\n", ctx.Session.Date())
	return nil
}

type PrioritySetCmd struct {
	Number int    `arg:"" help:"Priority number (1-5)."`
	Text   string `arg:"" help:"Priority text."`
}

func (c *PrioritySetCmd) Run(ctx *cli.Context) error {
	if err := ctx.Session.SetPriority(c.Number, c.Text); err != nil {
		return err
	}
	fmt.Printf("✓ Priority %d set\n", c.Number)
	return nil
}

type SlotSetCmd struct {
	Hour int    `arg:"" help:"Hour of the schedule slot (7-23)."`
	Text string `arg:"" help:"Slot text."`
}

func (c *SlotSetCmd) Run(ctx *cli.Context) error {
	if err := ctx.Session.SetSlot(c.Hour, c.Text); err != nil {
		return err
	}
	fmt.Printf("✓ Slot %d:00 set\n", c.Hour)
	return nil
}

type DrawingImportCmd struct {
	File string `arg:"" help:"File whose bytes become the day's drawing blob."`
}

func (c *DrawingImportCmd) Run(ctx *cli.Context) error {
	data, err := os.ReadFile(c.File)
	if err != nil {
		return fmt.Errorf("failed to read drawing file: %w", err)
	}
	if err := ctx.Session.UpdateDrawing(data); err != nil {
		return err
	}
	fmt.Printf("✓ Drawing imported (%d bytes)\n", len(data))
	return nil
}

type DrawingExportCmd struct {
	File string `arg:"" help:"Destination file for the day's drawing blob."`
}

func (c *DrawingExportCmd) Run(ctx *cli.Context) error {
	data := ctx.Session.Plan().DrawingData
	if len(data) == 0 {
		return fmt.Errorf("no drawing stored for %s", ctx.Session.Date())
	}
	if err := os.WriteFile(c.File, data, 0600); err != nil {
		return fmt.Errorf("failed to write drawing file: %w", err)
	}
	fmt.Printf("✓ Drawing exported (%d bytes)\n", len(data))
	return nil
}
