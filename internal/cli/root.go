package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/julianstephens/dayplan/internal/config"
	"github.com/julianstephens/dayplan/internal/models"
	"github.com/julianstephens/dayplan/internal/rollover"
	"github.com/julianstephens/dayplan/internal/session"
	"github.com/julianstephens/dayplan/internal/settings"
	"github.com/julianstephens/dayplan/internal/storage"
)

// Context carries the constructed services into command Run methods.
type Context struct {
	Config   *config.Config
	Store    *storage.DiskStore
	Settings *settings.Store
	Session  *session.Session
	Engine   *rollover.Engine
}

// PrintPlan writes a full day plan in the standard text layout.
func PrintPlan(w io.Writer, plan *models.DayPlan) {
	fmt.Fprintf(w, "%s (%s)\n", plan.Date, plan.Date.Weekday())

	fmt.Fprintln(w, "\nPriorities:")
	for _, p := range plan.Priorities {
		fmt.Fprintf(w, "  %d. %s\n", p.Number, p.Text)
	}

	fmt.Fprintln(w, "\nTasks:")
	PrintTasks(w, plan.Tasks)

	fmt.Fprintln(w, "\nSchedule:")
	for _, slot := range plan.HourlySlots {
		if strings.TrimSpace(slot.Text) == "" {
			continue
		}
		fmt.Fprintf(w, "  %5s  %s\n", slot.DisplayTime(), slot.Text)
	}

	if len(plan.CompletedHabits) > 0 {
		var done []string
		for _, h := range models.Habits {
			if plan.CompletedHabits[h] {
				done = append(done, string(h))
			}
		}
		fmt.Fprintf(w, "\nHabits done: %s\n", strings.Join(done, ", "))
	}
	if plan.SelectedMood != "" {
		fmt.Fprintf(w, "Mood: %s\n", plan.SelectedMood)
	}
	if strings.TrimSpace(plan.Notes) != "" {
		fmt.Fprintf(w, "\nNotes:\n%s\n", plan.Notes)
	}
}

// PrintTasks writes the task list with 1-based indexes and checkboxes.
func PrintTasks(w io.Writer, tasks []models.TaskItem) {
	for i, t := range tasks {
		mark := " "
		if t.IsCompleted {
			mark = "x"
		}
		fmt.Fprintf(w, "  %2d. [%s] %s\n", i+1, mark, t.Text)
	}
}
