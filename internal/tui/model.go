// Package tui is the interactive single-day view: tasks, habits and mood
// for the selected date, with every change persisted as it happens.
package tui

import (
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/julianstephens/dayplan/internal/models"
	"github.com/julianstephens/dayplan/internal/session"
)

type section int

const (
	sectionTasks section = iota
	sectionHabits
	sectionMood
	sectionCount
)

type Model struct {
	session *session.Session

	section section
	cursor  int
	adding  bool
	input   textinput.Model
	err     error
	width   int
}

func New(s *session.Session) Model {
	input := textinput.New()
	input.Placeholder = "new task"
	input.CharLimit = 200

	return Model{session: s, input: input}
}

func (m Model) Init() tea.Cmd {
	return nil
}

// Run starts the program and blocks until the user quits.
func Run(s *session.Session) error {
	p := tea.NewProgram(New(s), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return err
	}
	return s.Flush()
}

func (m Model) itemsInSection() int {
	switch m.section {
	case sectionTasks:
		return len(m.session.Plan().Tasks)
	case sectionHabits:
		return len(models.Habits)
	case sectionMood:
		return len(models.Moods)
	}
	return 0
}
