package storage

import (
	"errors"

	"github.com/julianstephens/dayplan/internal/datekey"
	"github.com/julianstephens/dayplan/internal/models"
)

// ErrNotFound is returned by Load when no record exists for a date. Callers
// treat it as "create a default plan", never as a failure.
var ErrNotFound = errors.New("no plan stored for date")

// PlanStore is the durable per-date plan store. Save must be atomic with
// respect to concurrent reads: a reader never observes a partially written
// record.
type PlanStore interface {
	Save(date datekey.Key, plan *models.DayPlan) error
	Load(date datekey.Key) (*models.DayPlan, error)
	Delete(date datekey.Key) error
	AllDates() ([]datekey.Key, error)
	Dir() string
	Close() error
}
