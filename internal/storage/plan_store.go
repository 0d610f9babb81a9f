package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/peterbourgon/diskv/v3"

	"github.com/julianstephens/dayplan/internal/constants"
	"github.com/julianstephens/dayplan/internal/datekey"
	"github.com/julianstephens/dayplan/internal/logger"
	"github.com/julianstephens/dayplan/internal/models"
)

// DiskStore keeps one JSON document per date in a flat directory, named
// YYYY-MM-DD.json. Writes go through diskv's TempDir mode: serialize to a
// temp file, then rename over the destination, so readers never see a
// partial record.
type DiskStore struct {
	d   *diskv.Diskv
	dir string
}

func NewDiskStore(dir string) (*DiskStore, error) {
	if err := os.MkdirAll(dir, 0700); err != nil {
		return nil, fmt.Errorf("failed to create plans directory: %w", err)
	}
	// Sibling of the plans dir: same filesystem (rename stays atomic) but
	// never visible to AllDates enumeration.
	tempDir := filepath.Join(filepath.Dir(dir), constants.PlansDirName+".tmp")
	if err := os.MkdirAll(tempDir, 0700); err != nil {
		return nil, fmt.Errorf("failed to create temp directory: %w", err)
	}

	return &DiskStore{
		d: diskv.New(diskv.Options{
			BasePath:     dir,
			TempDir:      tempDir,
			Transform:    func(string) []string { return []string{} },
			CacheSizeMax: 1024 * 1024, // 1MB
		}),
		dir: dir,
	}, nil
}

func fileKey(date datekey.Key) string {
	return date.String() + constants.PlanFileExt
}

// Save serializes the plan and atomically replaces the record for the date.
func (s *DiskStore) Save(date datekey.Key, plan *models.DayPlan) error {
	data, err := json.MarshalIndent(plan, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to serialize plan for %s: %w", date, err)
	}
	if err := s.d.Write(fileKey(date), data); err != nil {
		return fmt.Errorf("failed to write plan for %s: %w", date, err)
	}
	return nil
}

// Load returns the stored plan for the date, or ErrNotFound when no record
// exists. A record that exists but cannot be decoded is logged and reported
// as ErrNotFound: falling back to a fresh plan beats blocking the user.
func (s *DiskStore) Load(date datekey.Key) (*models.DayPlan, error) {
	key := fileKey(date)
	if !s.d.Has(key) {
		return nil, ErrNotFound
	}

	data, err := s.d.Read(key)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to read plan for %s: %w", date, err)
	}

	plan := &models.DayPlan{}
	if err := json.Unmarshal(data, plan); err != nil {
		logger.Warn("Discarding unparsable plan record", "date", date.String(), "error", err)
		return nil, ErrNotFound
	}
	plan.Normalize()
	return plan, nil
}

// Delete removes the record for the date. Deleting a date with no record is
// a no-op.
func (s *DiskStore) Delete(date datekey.Key) error {
	key := fileKey(date)
	if !s.d.Has(key) {
		return nil
	}
	if err := s.d.Erase(key); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to delete plan for %s: %w", date, err)
	}
	return nil
}

// AllDates enumerates every date with a stored record, ascending. Filenames
// that do not parse as a date are skipped.
func (s *DiskStore) AllDates() ([]datekey.Key, error) {
	var dates []datekey.Key
	for key := range s.d.Keys(nil) {
		name := strings.TrimSuffix(key, constants.PlanFileExt)
		if name == key {
			continue // wrong extension
		}
		date, err := datekey.Parse(name)
		if err != nil {
			continue
		}
		dates = append(dates, date)
	}
	sort.Slice(dates, func(i, j int) bool { return dates[i].Before(dates[j]) })
	return dates, nil
}

// Dir returns the plans directory, used by the backup manager and the
// remote adapter for raw record access.
func (s *DiskStore) Dir() string {
	return s.dir
}

// ReadRaw returns the serialized record bytes for a date, for upload.
func (s *DiskStore) ReadRaw(date datekey.Key) ([]byte, error) {
	data, err := s.d.Read(fileKey(date))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return data, nil
}

func (s *DiskStore) Close() error {
	return nil
}
