package backup

import (
	"archive/zip"
	"os"
	"path/filepath"
	"testing"
)

func newTestManager(t *testing.T) (*Manager, string) {
	t.Helper()
	plansDir := filepath.Join(t.TempDir(), "plans")
	if err := os.MkdirAll(plansDir, 0700); err != nil {
		t.Fatalf("mkdir failed: %v", err)
	}
	return NewManager(plansDir), plansDir
}

func writeRecord(t *testing.T, plansDir, name, content string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(plansDir, name), []byte(content), 0600); err != nil {
		t.Fatalf("write %s failed: %v", name, err)
	}
}

func archiveNames(t *testing.T, path string) map[string]bool {
	t.Helper()
	zr, err := zip.OpenReader(path)
	if err != nil {
		t.Fatalf("open archive failed: %v", err)
	}
	defer zr.Close()
	names := make(map[string]bool)
	for _, f := range zr.File {
		names[f.Name] = true
	}
	return names
}

func TestCreateBackupArchivesRecords(t *testing.T) {
	m, plansDir := newTestManager(t)
	writeRecord(t, plansDir, "2025-03-08.json", `{"a":1}`)
	writeRecord(t, plansDir, "2025-03-09.json", `{"b":2}`)
	writeRecord(t, plansDir, "stray.txt", "ignore me")

	path, err := m.CreateBackup()
	if err != nil {
		t.Fatalf("CreateBackup failed: %v", err)
	}

	names := archiveNames(t, path)
	if len(names) != 2 || !names["2025-03-08.json"] || !names["2025-03-09.json"] {
		t.Errorf("archive contents = %v", names)
	}
}

func TestCreateBackupUniquePaths(t *testing.T) {
	m, plansDir := newTestManager(t)
	writeRecord(t, plansDir, "2025-03-09.json", `{}`)

	first, err := m.CreateBackup()
	if err != nil {
		t.Fatalf("first CreateBackup failed: %v", err)
	}
	second, err := m.CreateBackup()
	if err != nil {
		t.Fatalf("second CreateBackup failed: %v", err)
	}
	if first == second {
		t.Errorf("both backups wrote %s", first)
	}
}

func TestListBackupsNewestFirst(t *testing.T) {
	m, plansDir := newTestManager(t)
	writeRecord(t, plansDir, "2025-03-09.json", `{}`)

	// No backup dir yet.
	backups, err := m.ListBackups()
	if err != nil || backups != nil {
		t.Fatalf("ListBackups on fresh manager = %v, %v", backups, err)
	}

	if _, err := m.CreateBackup(); err != nil {
		t.Fatalf("CreateBackup failed: %v", err)
	}
	if _, err := m.CreateBackup(); err != nil {
		t.Fatalf("CreateBackup failed: %v", err)
	}

	backups, err = m.ListBackups()
	if err != nil {
		t.Fatalf("ListBackups failed: %v", err)
	}
	if len(backups) != 2 {
		t.Fatalf("backups = %d, want 2", len(backups))
	}
	if backups[0].Timestamp.Before(backups[1].Timestamp) {
		t.Error("backups not newest first")
	}
	if backups[0].Size == 0 {
		t.Error("backup size not recorded")
	}
}

func TestRestoreBackupReplacesRecords(t *testing.T) {
	m, plansDir := newTestManager(t)
	writeRecord(t, plansDir, "2025-03-08.json", `{"era":"old"}`)

	path, err := m.CreateBackup()
	if err != nil {
		t.Fatalf("CreateBackup failed: %v", err)
	}

	// Mutate the directory after the backup.
	writeRecord(t, plansDir, "2025-03-08.json", `{"era":"new"}`)
	writeRecord(t, plansDir, "2025-03-09.json", `{"era":"new"}`)

	if err := m.RestoreBackup(path); err != nil {
		t.Fatalf("RestoreBackup failed: %v", err)
	}

	data, err := os.ReadFile(filepath.Join(plansDir, "2025-03-08.json"))
	if err != nil {
		t.Fatalf("read failed: %v", err)
	}
	if string(data) != `{"era":"old"}` {
		t.Errorf("restored content = %s", data)
	}
	if _, err := os.Stat(filepath.Join(plansDir, "2025-03-09.json")); !os.IsNotExist(err) {
		t.Error("record created after the backup survived restore")
	}

	// Restore took a safety backup of the pre-restore state.
	backups, err := m.ListBackups()
	if err != nil {
		t.Fatalf("ListBackups failed: %v", err)
	}
	if len(backups) < 2 {
		t.Errorf("backups = %d, want the original plus a safety copy", len(backups))
	}
}
