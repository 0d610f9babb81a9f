// Package session owns the currently selected date and its in-memory plan.
// Every mutation persists synchronously before returning, so the in-memory
// plan and the durable record never diverge across calls.
package session

import (
	"errors"
	"fmt"
	"time"

	"github.com/julianstephens/dayplan/internal/datekey"
	"github.com/julianstephens/dayplan/internal/models"
	"github.com/julianstephens/dayplan/internal/storage"
)

type Session struct {
	store   storage.PlanStore
	current datekey.Key
	plan    *models.DayPlan
}

// New opens a session on the given date, loading its stored plan or creating
// the default one.
func New(store storage.PlanStore, date datekey.Key) (*Session, error) {
	s := &Session{store: store}
	if err := s.load(date); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *Session) load(date datekey.Key) error {
	plan, err := s.store.Load(date)
	if err != nil {
		if !errors.Is(err, storage.ErrNotFound) {
			return fmt.Errorf("failed to load plan for %s: %w", date, err)
		}
		plan = models.NewDayPlan(date)
	}
	s.current = date
	s.plan = plan
	return nil
}

// Date returns the selected date.
func (s *Session) Date() datekey.Key {
	return s.current
}

// Plan returns the in-memory plan for the selected date.
func (s *Session) Plan() *models.DayPlan {
	return s.plan
}

func (s *Session) persist() error {
	return s.store.Save(s.current, s.plan)
}

// SelectDate persists the current plan, then switches to the given date.
func (s *Session) SelectDate(date datekey.Key) error {
	if date == s.current {
		return nil
	}
	if err := s.persist(); err != nil {
		return err
	}
	return s.load(date)
}

// SelectMonth moves the selected date to the given month of the same year,
// clamping the day-of-month to the target month's last valid day.
func (s *Session) SelectMonth(month time.Month) error {
	if month < time.January || month > time.December {
		return fmt.Errorf("invalid month: %d", month)
	}
	return s.SelectDate(s.current.WithMonth(month))
}

// AddTask appends a task and persists.
func (s *Session) AddTask(text string) error {
	s.plan.Tasks = append(s.plan.Tasks, models.NewTaskItem(text))
	return s.persist()
}

// ToggleTask flips completion for the task at index. Out-of-range indexes
// are a silent no-op.
func (s *Session) ToggleTask(index int) error {
	if index < 0 || index >= len(s.plan.Tasks) {
		return nil
	}
	s.plan.Tasks[index].IsCompleted = !s.plan.Tasks[index].IsCompleted
	return s.persist()
}

// SetTaskText updates the text of the task at index. Out-of-range indexes
// are a silent no-op.
func (s *Session) SetTaskText(index int, text string) error {
	if index < 0 || index >= len(s.plan.Tasks) {
		return nil
	}
	s.plan.Tasks[index].Text = text
	return s.persist()
}

// DeleteTask removes the task at index. Out-of-range indexes are a silent
// no-op.
func (s *Session) DeleteTask(index int) error {
	if index < 0 || index >= len(s.plan.Tasks) {
		return nil
	}
	s.plan.Tasks = append(s.plan.Tasks[:index], s.plan.Tasks[index+1:]...)
	return s.persist()
}

// SetPriority updates the text of the fixed priority numbered n.
func (s *Session) SetPriority(n int, text string) error {
	for i := range s.plan.Priorities {
		if s.plan.Priorities[i].Number == n {
			s.plan.Priorities[i].Text = text
			return s.persist()
		}
	}
	return nil
}

// SetSlot updates the text of the hourly slot for the given hour.
func (s *Session) SetSlot(hour int, text string) error {
	for i := range s.plan.HourlySlots {
		if s.plan.HourlySlots[i].Hour == hour {
			s.plan.HourlySlots[i].Text = text
			return s.persist()
		}
	}
	return nil
}

// ToggleHabit flips membership of the habit in the day's completed set.
func (s *Session) ToggleHabit(habit models.Habit) error {
	if s.plan.CompletedHabits[habit] {
		delete(s.plan.CompletedHabits, habit)
	} else {
		s.plan.CompletedHabits[habit] = true
	}
	return s.persist()
}

// SelectMood records the day's mood.
func (s *Session) SelectMood(mood models.Mood) error {
	s.plan.SelectedMood = mood
	return s.persist()
}

// UpdateNotes replaces the day's notes.
func (s *Session) UpdateNotes(notes string) error {
	s.plan.Notes = notes
	return s.persist()
}

// UpdateDrawing replaces the day's drawing blob.
func (s *Session) UpdateDrawing(data []byte) error {
	s.plan.DrawingData = data
	return s.persist()
}

// PendingTasks is the reminder feed: incomplete, non-empty tasks for the
// selected date.
func (s *Session) PendingTasks() []models.TaskItem {
	return s.plan.PendingTasks()
}

// Flush persists the current plan. The mutation methods already persist;
// this exists for shutdown paths.
func (s *Session) Flush() error {
	return s.persist()
}
