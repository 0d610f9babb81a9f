package remote

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/julianstephens/dayplan/internal/constants"
	"github.com/julianstephens/dayplan/internal/datekey"
	"github.com/julianstephens/dayplan/internal/logger"
	"github.com/julianstephens/dayplan/internal/models"
)

// PlanAccess is the slice of the local store the adapter needs: enumerate,
// read raw record bytes for upload, and save decoded pulls.
type PlanAccess interface {
	AllDates() ([]datekey.Key, error)
	ReadRaw(date datekey.Key) ([]byte, error)
	Save(date datekey.Key, plan *models.DayPlan) error
}

// Bookkeeper persists sync bookkeeping between runs (folder id, last sync).
type Bookkeeper interface {
	Get(key string) (string, error)
	Set(key, value string) error
}

type Adapter struct {
	client     *Client
	store      PlanAccess
	settings   Bookkeeper
	folderName string
}

func NewAdapter(client *Client, store PlanAccess, settings Bookkeeper, folderName string) *Adapter {
	return &Adapter{client: client, store: store, settings: settings, folderName: folderName}
}

// FileResult is the outcome for one record; results are independent across
// files and successes are never rolled back.
type FileResult struct {
	Name string
	Date datekey.Key
	Err  error
}

// Summary aggregates per-file results. The aggregate fails if any file
// failed, but partial application is expected and permitted.
type Summary struct {
	Results []FileResult
}

func (s Summary) Failed() int {
	n := 0
	for _, r := range s.Results {
		if r.Err != nil {
			n++
		}
	}
	return n
}

// Err returns a non-nil aggregate error when any file failed.
func (s Summary) Err() error {
	if failed := s.Failed(); failed > 0 {
		return fmt.Errorf("%d of %d files failed to sync", failed, len(s.Results))
	}
	return nil
}

func (a *Adapter) folderID(ctx context.Context) (string, error) {
	if id, err := a.settings.Get(constants.SettingRemoteFolder); err == nil && id != "" {
		return id, nil
	}
	id, err := a.client.EnsureFolder(ctx, a.folderName)
	if err != nil {
		return "", err
	}
	if err := a.settings.Set(constants.SettingRemoteFolder, id); err != nil {
		logger.Warn("Failed to remember remote folder id", "error", err)
	}
	return id, nil
}

// Push uploads every local record to the remote folder under its local
// filename. Files fan out concurrently; completion waits for all of them.
func (a *Adapter) Push(ctx context.Context) (Summary, error) {
	dates, err := a.store.AllDates()
	if err != nil {
		return Summary{}, fmt.Errorf("failed to enumerate local plans: %w", err)
	}

	folderID, err := a.folderID(ctx)
	if err != nil {
		return Summary{}, fmt.Errorf("failed to access remote folder: %w", err)
	}

	summary := Summary{Results: make([]FileResult, len(dates))}
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(constants.RemoteMaxInFlight)
	for i, date := range dates {
		summary.Results[i] = FileResult{Name: date.String() + constants.PlanFileExt, Date: date}
		g.Go(func() error {
			data, err := a.store.ReadRaw(date)
			if err != nil {
				summary.Results[i].Err = fmt.Errorf("failed to read local record: %w", err)
				return nil
			}
			if err := a.client.Upload(gctx, folderID, summary.Results[i].Name, data); err != nil {
				summary.Results[i].Err = err
			}
			return nil
		})
	}
	g.Wait()

	a.recordSyncTime(summary)
	return summary, summary.Err()
}

// Pull downloads every remote record and saves it locally, overwriting the
// local copy for that date. Remote names that do not parse as a date are
// skipped.
func (a *Adapter) Pull(ctx context.Context) (Summary, error) {
	folderID, err := a.folderID(ctx)
	if err != nil {
		return Summary{}, fmt.Errorf("failed to access remote folder: %w", err)
	}

	files, err := a.client.ListFiles(ctx, folderID)
	if err != nil {
		return Summary{}, fmt.Errorf("failed to list remote records: %w", err)
	}

	type pullTarget struct {
		file File
		date datekey.Key
	}
	var targets []pullTarget
	for _, f := range files {
		date, err := datekey.Parse(strings.TrimSuffix(f.Name, constants.PlanFileExt))
		if err != nil {
			logger.Debug("Skipping remote file with non-date name", "name", f.Name)
			continue
		}
		targets = append(targets, pullTarget{file: f, date: date})
	}

	summary := Summary{Results: make([]FileResult, len(targets))}
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(constants.RemoteMaxInFlight)
	for i, target := range targets {
		summary.Results[i] = FileResult{Name: target.file.Name, Date: target.date}
		g.Go(func() error {
			data, err := a.client.Download(gctx, target.file.ID)
			if err != nil {
				summary.Results[i].Err = err
				return nil
			}
			plan := &models.DayPlan{}
			if err := json.Unmarshal(data, plan); err != nil {
				summary.Results[i].Err = fmt.Errorf("failed to decode remote record: %w", err)
				return nil
			}
			plan.Normalize()
			// Last writer wins: the pulled copy replaces the local one.
			if err := a.store.Save(target.date, plan); err != nil {
				summary.Results[i].Err = fmt.Errorf("failed to save pulled record: %w", err)
			}
			return nil
		})
	}
	g.Wait()

	a.recordSyncTime(summary)
	return summary, summary.Err()
}

func (a *Adapter) recordSyncTime(summary Summary) {
	if summary.Err() != nil {
		return
	}
	if err := a.settings.Set(constants.SettingLastSync, time.Now().UTC().Format(time.RFC3339)); err != nil {
		logger.Warn("Failed to record sync time", "error", err)
	}
}
