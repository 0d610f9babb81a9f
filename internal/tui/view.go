package tui

import (
	"fmt"
	"strings"

	"github.com/julianstephens/dayplan/internal/models"
)

func (m Model) View() string {
	plan := m.session.Plan()
	date := m.session.Date()

	var b strings.Builder
	b.WriteString(titleStyle.Render(fmt.Sprintf("%s  %s", date.Weekday().String(), date.String())))
	b.WriteString("\n\n")

	b.WriteString(m.viewTasks(plan))
	b.WriteString("\n")
	b.WriteString(m.viewHabits(plan))
	b.WriteString("\n")
	b.WriteString(m.viewMood(plan))
	b.WriteString("\n")

	if m.adding {
		b.WriteString(m.input.View())
		b.WriteString("\n")
	}
	if m.err != nil {
		b.WriteString(errStyle.Render(m.err.Error()))
		b.WriteString("\n")
	}

	b.WriteString(helpStyle.Render("tab: section  ↑/↓: move  space: toggle  a: add task  d: delete  q: quit"))
	return b.String()
}

func (m Model) viewTasks(plan *models.DayPlan) string {
	var b strings.Builder
	b.WriteString(sectionStyle.Render("Tasks"))
	b.WriteString("\n")
	if len(plan.Tasks) == 0 {
		b.WriteString(helpStyle.Render("  no tasks yet"))
		b.WriteString("\n")
		return b.String()
	}
	for i, task := range plan.Tasks {
		box := "[ ]"
		line := fmt.Sprintf("%s %s", box, task.Text)
		if task.IsCompleted {
			line = doneStyle.Render(fmt.Sprintf("[x] %s", task.Text))
		}
		b.WriteString(m.renderLine(sectionTasks, i, line))
	}
	return b.String()
}

func (m Model) viewHabits(plan *models.DayPlan) string {
	var b strings.Builder
	b.WriteString(sectionStyle.Render("Habits"))
	b.WriteString("\n")
	for i, habit := range models.Habits {
		box := "[ ]"
		if plan.CompletedHabits[habit] {
			box = "[x]"
		}
		b.WriteString(m.renderLine(sectionHabits, i, fmt.Sprintf("%s %s", box, habit)))
	}
	return b.String()
}

func (m Model) viewMood(plan *models.DayPlan) string {
	var b strings.Builder
	b.WriteString(sectionStyle.Render("Mood"))
	b.WriteString("\n")
	for i, mood := range models.Moods {
		marker := "( )"
		if plan.SelectedMood == mood {
			marker = "(*)"
		}
		b.WriteString(m.renderLine(sectionMood, i, fmt.Sprintf("%s %s", marker, mood)))
	}
	return b.String()
}

func (m Model) renderLine(sec section, index int, line string) string {
	if m.section == sec && m.cursor == index {
		return selectedStyle.Render("> "+line) + "\n"
	}
	return "  " + line + "\n"
}
