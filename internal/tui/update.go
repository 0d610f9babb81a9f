package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/julianstephens/dayplan/internal/models"
)

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		return m, nil

	case tea.KeyMsg:
		if m.adding {
			return m.updateAdding(msg)
		}
		return m.updateBrowsing(msg)
	}
	return m, nil
}

func (m Model) updateAdding(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		text := m.input.Value()
		m.adding = false
		m.input.Reset()
		if text != "" {
			m.err = m.session.AddTask(text)
			m.cursor = len(m.session.Plan().Tasks) - 1
		}
		return m, nil
	case "esc":
		m.adding = false
		m.input.Reset()
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m Model) updateBrowsing(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit

	case "tab":
		m.section = (m.section + 1) % sectionCount
		m.cursor = 0

	case "shift+tab":
		m.section = (m.section + sectionCount - 1) % sectionCount
		m.cursor = 0

	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}

	case "down", "j":
		if m.cursor < m.itemsInSection()-1 {
			m.cursor++
		}

	case "a":
		if m.section == sectionTasks {
			m.adding = true
			m.input.Focus()
			return m, nil
		}

	case "d":
		if m.section == sectionTasks {
			m.err = m.session.DeleteTask(m.cursor)
			if n := len(m.session.Plan().Tasks); m.cursor >= n && n > 0 {
				m.cursor = n - 1
			}
		}

	case " ", "enter":
		m.err = m.toggleCurrent()
	}
	return m, nil
}

func (m *Model) toggleCurrent() error {
	switch m.section {
	case sectionTasks:
		return m.session.ToggleTask(m.cursor)
	case sectionHabits:
		if m.cursor < len(models.Habits) {
			return m.session.ToggleHabit(models.Habits[m.cursor])
		}
	case sectionMood:
		if m.cursor < len(models.Moods) {
			return m.session.SelectMood(models.Moods[m.cursor])
		}
	}
	return nil
}
