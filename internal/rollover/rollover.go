// Package rollover carries incomplete tasks from past days forward into
// today's plan, at most once per calendar day.
package rollover

import (
	"errors"
	"fmt"

	"github.com/julianstephens/dayplan/internal/datekey"
	"github.com/julianstephens/dayplan/internal/logger"
	"github.com/julianstephens/dayplan/internal/models"
	"github.com/julianstephens/dayplan/internal/storage"
)

// Watermark persists the last date on which rollover ran.
type Watermark interface {
	LastRolloverDate() (datekey.Key, error)
	SetLastRolloverDate(datekey.Key) error
}

type Engine struct {
	store     storage.PlanStore
	watermark Watermark
}

func NewEngine(store storage.PlanStore, watermark Watermark) *Engine {
	return &Engine{store: store, watermark: watermark}
}

// Result describes what a rollover pass did.
type Result struct {
	Ran          bool
	CarriedTasks int
	SkippedDates int
}

// RolloverIfNeeded runs the carry-forward pass unless it already ran for
// today. Source plans are read-only; only today's plan gains entries. The
// watermark is written last, so an interruption mid-scan leaves rollover
// eligible to retry on the next invocation, while a completed pass makes
// every later call today a no-op.
func (e *Engine) RolloverIfNeeded(today datekey.Key) (Result, error) {
	last, err := e.watermark.LastRolloverDate()
	if err != nil {
		return Result{}, fmt.Errorf("failed to read rollover watermark: %w", err)
	}
	if last == today {
		return Result{}, nil
	}

	res := Result{Ran: true}

	dates, err := e.store.AllDates()
	if err != nil {
		return Result{}, fmt.Errorf("failed to enumerate stored dates: %w", err)
	}

	// Collect incomplete tasks from every prior date, deduplicating on
	// trimmed lowercased text. AllDates is ascending, so the earliest
	// occurrence of a text wins deterministically.
	seen := make(map[string]bool)
	var carry []models.TaskItem
	for _, date := range dates {
		if !date.Before(today) {
			continue // today and future dates never feed rollover
		}
		plan, err := e.store.Load(date)
		if err != nil {
			if !errors.Is(err, storage.ErrNotFound) {
				logger.Warn("Skipping unreadable plan during rollover", "date", date.String(), "error", err)
				res.SkippedDates++
			}
			continue
		}
		for _, task := range plan.Tasks {
			if task.IsCompleted {
				continue
			}
			norm := task.NormalizedText()
			if norm == "" || seen[norm] {
				continue
			}
			seen[norm] = true
			carry = append(carry, task)
		}
	}

	if len(carry) > 0 {
		todayPlan, err := e.store.Load(today)
		if err != nil {
			if !errors.Is(err, storage.ErrNotFound) {
				return Result{}, fmt.Errorf("failed to load today's plan: %w", err)
			}
			todayPlan = models.NewDayPlan(today)
		}

		existing := todayPlan.TaskTextSet()
		for _, task := range carry {
			if existing[task.NormalizedText()] {
				continue
			}
			// Fresh identity, original casing, always incomplete.
			todayPlan.Tasks = append(todayPlan.Tasks, models.NewTaskItem(task.Text))
			res.CarriedTasks++
		}

		if res.CarriedTasks > 0 {
			if err := e.store.Save(today, todayPlan); err != nil {
				return Result{}, fmt.Errorf("failed to save today's plan: %w", err)
			}
		}
	}

	if err := e.watermark.SetLastRolloverDate(today); err != nil {
		return Result{}, fmt.Errorf("failed to advance rollover watermark: %w", err)
	}

	if res.CarriedTasks > 0 {
		logger.Info("Rolled over incomplete tasks", "date", today.String(), "count", res.CarriedTasks)
	}
	return res, nil
}
