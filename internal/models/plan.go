package models

import (
	"strconv"
	"strings"

	"github.com/google/uuid"

	"github.com/julianstephens/dayplan/internal/constants"
	"github.com/julianstephens/dayplan/internal/datekey"
)

type Habit string

const (
	HabitWater      Habit = "water"
	HabitExercise   Habit = "exercise"
	HabitReading    Habit = "reading"
	HabitMeditation Habit = "meditation"
	HabitVitamins   Habit = "vitamins"
	HabitSleep      Habit = "sleep"
	HabitHealthy    Habit = "healthy"
	HabitJournal    Habit = "journal"
)

// Habits lists every trackable habit kind in display order.
var Habits = []Habit{
	HabitWater, HabitExercise, HabitReading, HabitMeditation,
	HabitVitamins, HabitSleep, HabitHealthy, HabitJournal,
}

type Mood string

const (
	MoodGreat    Mood = "great"
	MoodGood     Mood = "good"
	MoodOkay     Mood = "okay"
	MoodBad      Mood = "bad"
	MoodTerrible Mood = "terrible"
)

// Moods lists every selectable mood in display order.
var Moods = []Mood{MoodGreat, MoodGood, MoodOkay, MoodBad, MoodTerrible}

// ParseMood validates a mood identifier.
func ParseMood(s string) (Mood, bool) {
	for _, m := range Moods {
		if string(m) == strings.ToLower(strings.TrimSpace(s)) {
			return m, true
		}
	}
	return "", false
}

// ParseHabit validates a habit identifier.
func ParseHabit(s string) (Habit, bool) {
	for _, h := range Habits {
		if string(h) == strings.ToLower(strings.TrimSpace(s)) {
			return h, true
		}
	}
	return "", false
}

type TaskItem struct {
	ID          string `json:"id"`
	Text        string `json:"text"`
	IsCompleted bool   `json:"is_completed"`
}

// NewTaskItem creates an empty incomplete task with a fresh identity.
func NewTaskItem(text string) TaskItem {
	return TaskItem{ID: uuid.NewString(), Text: text}
}

// NormalizedText is the task's identity for rollover deduplication: trimmed
// and lowercased. Task IDs deliberately play no part in dedup.
func (t TaskItem) NormalizedText() string {
	return strings.ToLower(strings.TrimSpace(t.Text))
}

type PriorityItem struct {
	ID     string `json:"id"`
	Number int    `json:"number"`
	Text   string `json:"text"`
}

type HourlySlot struct {
	ID   string `json:"id"`
	Hour int    `json:"hour"`
	Text string `json:"text"`
}

// DisplayTime renders the slot hour as e.g. "7 am" or "12 pm".
func (s HourlySlot) DisplayTime() string {
	switch {
	case s.Hour == 0:
		return "12 am"
	case s.Hour < 12:
		return strconv.Itoa(s.Hour) + " am"
	case s.Hour == 12:
		return "12 pm"
	default:
		return strconv.Itoa(s.Hour-12) + " pm"
	}
}

// DayPlan is the full record for one calendar day. Tasks grow and shrink;
// priorities and hourly slots are fixed at creation and never renumbered.
type DayPlan struct {
	Date            datekey.Key     `json:"date"`
	Tasks           []TaskItem      `json:"tasks"`
	Priorities      []PriorityItem  `json:"priorities"`
	HourlySlots     []HourlySlot    `json:"hourly_slots"`
	CompletedHabits map[Habit]bool  `json:"completed_habits"`
	SelectedMood    Mood            `json:"selected_mood,omitempty"`
	DrawingData     []byte          `json:"drawing_data,omitempty"`
	Notes           string          `json:"notes"`
}

// NewDayPlan creates the default plan for a date: 8 empty tasks, 5 numbered
// priorities, one slot per hour from 7 to 23.
func NewDayPlan(date datekey.Key) *DayPlan {
	p := &DayPlan{
		Date:            date,
		Tasks:           make([]TaskItem, 0, constants.DefaultTaskCount),
		Priorities:      make([]PriorityItem, 0, constants.DefaultPriorityCount),
		HourlySlots:     make([]HourlySlot, 0, constants.LastScheduleHour-constants.FirstScheduleHour+1),
		CompletedHabits: make(map[Habit]bool),
	}
	for i := 0; i < constants.DefaultTaskCount; i++ {
		p.Tasks = append(p.Tasks, NewTaskItem(""))
	}
	for n := 1; n <= constants.DefaultPriorityCount; n++ {
		p.Priorities = append(p.Priorities, PriorityItem{ID: uuid.NewString(), Number: n})
	}
	for h := constants.FirstScheduleHour; h <= constants.LastScheduleHour; h++ {
		p.HourlySlots = append(p.HourlySlots, HourlySlot{ID: uuid.NewString(), Hour: h})
	}
	return p
}

// Normalize repairs a decoded plan so downstream code never sees nil
// collections.
func (p *DayPlan) Normalize() {
	if p.Tasks == nil {
		p.Tasks = []TaskItem{}
	}
	if p.Priorities == nil {
		p.Priorities = []PriorityItem{}
	}
	if p.HourlySlots == nil {
		p.HourlySlots = []HourlySlot{}
	}
	if p.CompletedHabits == nil {
		p.CompletedHabits = make(map[Habit]bool)
	}
}

// PendingTasks returns the incomplete tasks with non-empty text, the feed
// consumed by the reminder collaborator.
func (p *DayPlan) PendingTasks() []TaskItem {
	var pending []TaskItem
	for _, t := range p.Tasks {
		if !t.IsCompleted && strings.TrimSpace(t.Text) != "" {
			pending = append(pending, t)
		}
	}
	return pending
}

// TaskTextSet returns the set of normalized task texts present on the plan,
// completed or not. Empty texts are excluded.
func (p *DayPlan) TaskTextSet() map[string]bool {
	set := make(map[string]bool, len(p.Tasks))
	for _, t := range p.Tasks {
		if norm := t.NormalizedText(); norm != "" {
			set[norm] = true
		}
	}
	return set
}
