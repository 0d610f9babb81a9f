package remote

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"regexp"
	"strings"
	"sync"
	"testing"

	"github.com/julianstephens/dayplan/internal/constants"
	"github.com/julianstephens/dayplan/internal/datekey"
	"github.com/julianstephens/dayplan/internal/models"
	"github.com/julianstephens/dayplan/internal/storage"
)

// fakeDrive is an in-memory stand-in for the remote folder API: one folder,
// files addressed by name, bearer-token checked on every request.
type fakeDrive struct {
	mu            sync.Mutex
	folderID      string
	files         map[string]string // name -> content
	ids           map[string]string // id -> name
	nextID        int
	failUploads   map[string]bool // names whose uploads return 500
	folderLookups int
}

func newFakeDrive() *fakeDrive {
	return &fakeDrive{
		files:       make(map[string]string),
		ids:         make(map[string]string),
		failUploads: make(map[string]bool),
	}
}

var nameQueryRe = regexp.MustCompile(`name='([^']+)'`)

func (d *fakeDrive) handler(t *testing.T) http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/files", func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("Authorization"); got != "Bearer test-token" {
			t.Errorf("missing bearer token, got %q", got)
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		d.mu.Lock()
		defer d.mu.Unlock()

		switch r.Method {
		case http.MethodGet:
			d.handleSearch(w, r)
		case http.MethodPost:
			if r.URL.Query().Get("uploadType") == "multipart" {
				d.handleCreate(w, r)
				return
			}
			// Folder creation.
			var body struct {
				Name string `json:"name"`
			}
			json.NewDecoder(r.Body).Decode(&body)
			d.folderID = "folder-1"
			json.NewEncoder(w).Encode(File{ID: d.folderID, Name: body.Name})
		default:
			w.WriteHeader(http.StatusMethodNotAllowed)
		}
	})
	mux.HandleFunc("/files/", func(w http.ResponseWriter, r *http.Request) {
		d.mu.Lock()
		defer d.mu.Unlock()

		id := strings.TrimPrefix(r.URL.Path, "/files/")
		name, ok := d.ids[id]
		if !ok {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		switch r.Method {
		case http.MethodGet: // alt=media download
			io.WriteString(w, d.files[name])
		case http.MethodPatch: // uploadType=media update
			if d.failUploads[name] {
				w.WriteHeader(http.StatusInternalServerError)
				return
			}
			data, _ := io.ReadAll(r.Body)
			d.files[name] = string(data)
			json.NewEncoder(w).Encode(File{ID: id, Name: name})
		default:
			w.WriteHeader(http.StatusMethodNotAllowed)
		}
	})
	return mux
}

func (d *fakeDrive) handleSearch(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query().Get("q")
	var out fileList
	switch {
	case strings.Contains(q, "mimeType='application/vnd.google-apps.folder'"):
		d.folderLookups++
		if d.folderID != "" {
			out.Files = append(out.Files, File{ID: d.folderID, Name: "whatever"})
		}
	case strings.Contains(q, "in parents") && nameQueryRe.MatchString(q):
		name := nameQueryRe.FindStringSubmatch(q)[1]
		if _, ok := d.files[name]; ok {
			out.Files = append(out.Files, File{ID: d.idFor(name), Name: name})
		}
	case strings.Contains(q, "in parents"):
		for name := range d.files {
			out.Files = append(out.Files, File{ID: d.idFor(name), Name: name})
		}
	}
	json.NewEncoder(w).Encode(out)
}

func (d *fakeDrive) handleCreate(w http.ResponseWriter, r *http.Request) {
	_, params, err := parseContentType(r.Header.Get("Content-Type"))
	if err != nil {
		w.WriteHeader(http.StatusBadRequest)
		return
	}
	name, content, err := readMultipartUpload(r.Body, params["boundary"])
	if err != nil {
		w.WriteHeader(http.StatusBadRequest)
		return
	}
	if d.failUploads[name] {
		w.WriteHeader(http.StatusInternalServerError)
		return
	}
	d.files[name] = content
	json.NewEncoder(w).Encode(File{ID: d.idFor(name), Name: name})
}

func parseContentType(value string) (string, map[string]string, error) {
	return mime.ParseMediaType(value)
}

// readMultipartUpload decodes a two-part create request: JSON metadata
// carrying the name, then the record content.
func readMultipartUpload(body io.Reader, boundary string) (name, content string, err error) {
	reader := multipart.NewReader(body, boundary)

	metaPart, err := reader.NextPart()
	if err != nil {
		return "", "", err
	}
	var meta struct {
		Name string `json:"name"`
	}
	if err := json.NewDecoder(metaPart).Decode(&meta); err != nil {
		return "", "", err
	}

	dataPart, err := reader.NextPart()
	if err != nil {
		return "", "", err
	}
	data, err := io.ReadAll(dataPart)
	if err != nil {
		return "", "", err
	}
	return meta.Name, string(data), nil
}

func (d *fakeDrive) idFor(name string) string {
	for id, n := range d.ids {
		if n == name {
			return id
		}
	}
	d.nextID++
	id := fmt.Sprintf("file-%d", d.nextID)
	d.ids[id] = name
	return id
}

// seed registers a remote file directly, bypassing the HTTP surface.
func (d *fakeDrive) seed(name, content string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.folderID = "folder-1"
	d.files[name] = content
	d.idFor(name)
}

type memBookkeeper struct {
	mu     sync.Mutex
	values map[string]string
}

func newMemBookkeeper() *memBookkeeper {
	return &memBookkeeper{values: make(map[string]string)}
}

func (b *memBookkeeper) Get(key string) (string, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.values[key], nil
}

func (b *memBookkeeper) Set(key, value string) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.values[key] = value
	return nil
}

func newTestAdapter(t *testing.T, drive *fakeDrive) (*Adapter, *storage.DiskStore, *memBookkeeper) {
	t.Helper()
	server := httptest.NewServer(drive.handler(t))
	t.Cleanup(server.Close)

	store, err := storage.NewDiskStore(filepath.Join(t.TempDir(), "plans"))
	if err != nil {
		t.Fatalf("NewDiskStore failed: %v", err)
	}
	bookkeeper := newMemBookkeeper()
	client := NewClient(server.URL, server.URL, "test-token")
	return NewAdapter(client, store, bookkeeper, constants.RemoteFolderName), store, bookkeeper
}

func date(t *testing.T, s string) datekey.Key {
	t.Helper()
	d, err := datekey.Parse(s)
	if err != nil {
		t.Fatalf("bad test date %q: %v", s, err)
	}
	return d
}

func savePlan(t *testing.T, store *storage.DiskStore, day datekey.Key, notes string) {
	t.Helper()
	plan := models.NewDayPlan(day)
	plan.Notes = notes
	if err := store.Save(day, plan); err != nil {
		t.Fatalf("Save %s failed: %v", day, err)
	}
}

func TestPushUploadsAllRecords(t *testing.T) {
	drive := newFakeDrive()
	adapter, store, bookkeeper := newTestAdapter(t, drive)

	days := []string{"2025-03-07", "2025-03-08", "2025-03-09"}
	for _, s := range days {
		savePlan(t, store, date(t, s), "notes for "+s)
	}

	summary, err := adapter.Push(context.Background())
	if err != nil {
		t.Fatalf("Push failed: %v", err)
	}
	if len(summary.Results) != 3 || summary.Failed() != 0 {
		t.Fatalf("summary = %+v", summary)
	}

	for _, s := range days {
		content, ok := drive.files[s+".json"]
		if !ok {
			t.Errorf("%s.json not on remote", s)
			continue
		}
		if !strings.Contains(content, "notes for "+s) {
			t.Errorf("remote %s.json content mismatch", s)
		}
	}

	if id, _ := bookkeeper.Get(constants.SettingRemoteFolder); id != "folder-1" {
		t.Errorf("folder id = %q", id)
	}
	if ts, _ := bookkeeper.Get(constants.SettingLastSync); ts == "" {
		t.Error("last sync time not recorded")
	}
}

func TestPushReplacesExistingRemoteFile(t *testing.T) {
	drive := newFakeDrive()
	adapter, store, _ := newTestAdapter(t, drive)

	drive.seed("2025-03-09.json", `{"stale":true}`)
	savePlan(t, store, date(t, "2025-03-09"), "fresh")

	if _, err := adapter.Push(context.Background()); err != nil {
		t.Fatalf("Push failed: %v", err)
	}
	if !strings.Contains(drive.files["2025-03-09.json"], "fresh") {
		t.Error("remote file not replaced")
	}
	if len(drive.files) != 1 {
		t.Errorf("remote has %d files, want 1", len(drive.files))
	}
}

func TestPushPartialFailure(t *testing.T) {
	drive := newFakeDrive()
	adapter, store, bookkeeper := newTestAdapter(t, drive)

	days := []string{"2025-03-05", "2025-03-06", "2025-03-07", "2025-03-08", "2025-03-09"}
	for _, s := range days {
		savePlan(t, store, date(t, s), "notes")
	}
	drive.failUploads["2025-03-07.json"] = true

	summary, err := adapter.Push(context.Background())
	if err == nil {
		t.Fatal("Push succeeded despite a failing upload")
	}
	if got := err.Error(); got != "1 of 5 files failed to sync" {
		t.Errorf("aggregate error = %q", got)
	}
	if summary.Failed() != 1 {
		t.Errorf("failed = %d, want 1", summary.Failed())
	}
	for _, res := range summary.Results {
		if res.Name == "2025-03-07.json" {
			if res.Err == nil {
				t.Error("failing file reported success")
			}
		} else if res.Err != nil {
			t.Errorf("%s failed: %v", res.Name, res.Err)
		}
	}

	// The other four uploads still landed.
	if len(drive.files) != 4 {
		t.Errorf("remote has %d files, want 4", len(drive.files))
	}
	if ts, _ := bookkeeper.Get(constants.SettingLastSync); ts != "" {
		t.Error("last sync recorded despite failure")
	}
}

func TestPullOverwritesLocal(t *testing.T) {
	drive := newFakeDrive()
	adapter, store, _ := newTestAdapter(t, drive)

	day := date(t, "2025-03-09")
	savePlan(t, store, day, "local version")

	remotePlan := models.NewDayPlan(day)
	remotePlan.Notes = "remote version"
	data, _ := json.Marshal(remotePlan)
	drive.seed("2025-03-09.json", string(data))
	drive.seed("README.txt", "not a plan")

	summary, err := adapter.Pull(context.Background())
	if err != nil {
		t.Fatalf("Pull failed: %v", err)
	}
	if len(summary.Results) != 1 {
		t.Fatalf("results = %+v, want the one date-named file", summary.Results)
	}

	got, err := store.Load(day)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if got.Notes != "remote version" {
		t.Errorf("notes = %q, want the pulled copy", got.Notes)
	}
}

func TestPullPartialFailureOnCorruptRecord(t *testing.T) {
	drive := newFakeDrive()
	adapter, store, _ := newTestAdapter(t, drive)

	good := models.NewDayPlan(date(t, "2025-03-08"))
	good.Notes = "good"
	data, _ := json.Marshal(good)
	drive.seed("2025-03-08.json", string(data))
	drive.seed("2025-03-09.json", "{broken")

	summary, err := adapter.Pull(context.Background())
	if err == nil {
		t.Fatal("Pull succeeded despite a corrupt record")
	}
	if summary.Failed() != 1 {
		t.Errorf("failed = %d, want 1", summary.Failed())
	}

	// The good record was still applied.
	got, err := store.Load(date(t, "2025-03-08"))
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if got.Notes != "good" {
		t.Errorf("notes = %q", got.Notes)
	}
	if _, err := store.Load(date(t, "2025-03-09")); err == nil {
		t.Error("corrupt record produced a local plan")
	}
}

func TestFolderIDCachedInSettings(t *testing.T) {
	drive := newFakeDrive()
	adapter, store, _ := newTestAdapter(t, drive)

	savePlan(t, store, date(t, "2025-03-09"), "notes")

	if _, err := adapter.Push(context.Background()); err != nil {
		t.Fatalf("first Push failed: %v", err)
	}
	if _, err := adapter.Push(context.Background()); err != nil {
		t.Fatalf("second Push failed: %v", err)
	}
	if drive.folderLookups != 1 {
		t.Errorf("folder lookups = %d, want 1 (cached after first push)", drive.folderLookups)
	}
}
