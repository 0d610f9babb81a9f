// Package backup snapshots the plans directory into timestamped zip
// archives with rotation.
package backup

import (
	"archive/zip"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/julianstephens/dayplan/internal/constants"
)

// Info describes one backup archive.
type Info struct {
	Path      string
	Timestamp time.Time
	Size      int64
}

type Manager struct {
	plansDir  string
	backupDir string
}

// NewManager creates a manager for the given plans directory; archives live
// in a sibling backups directory.
func NewManager(plansDir string) *Manager {
	return &Manager{
		plansDir:  plansDir,
		backupDir: filepath.Join(filepath.Dir(plansDir), constants.BackupDirName),
	}
}

func (m *Manager) BackupDir() string {
	return m.backupDir
}

// CreateBackup archives every plan record into a new timestamped zip and
// rotates old archives beyond MaxBackups.
func (m *Manager) CreateBackup() (string, error) {
	return m.createBackup(false)
}

func (m *Manager) createBackup(skipRotation bool) (string, error) {
	if err := os.MkdirAll(m.backupDir, 0700); err != nil {
		return "", fmt.Errorf("failed to create backup directory: %w", err)
	}
	if _, err := os.Stat(m.plansDir); os.IsNotExist(err) {
		return "", fmt.Errorf("plans directory does not exist: %s", m.plansDir)
	}

	backupPath, err := m.uniqueBackupPath()
	if err != nil {
		return "", err
	}
	if err := m.archivePlans(backupPath); err != nil {
		os.Remove(backupPath)
		return "", fmt.Errorf("failed to archive plans: %w", err)
	}

	if !skipRotation {
		if err := m.rotateBackups(); err != nil {
			fmt.Fprintf(os.Stderr, "Warning: failed to rotate old backups: %v\n", err)
		}
	}
	return backupPath, nil
}

func (m *Manager) uniqueBackupPath() (string, error) {
	timestamp := time.Now().Format("20060102-1504")
	path := filepath.Join(m.backupDir, constants.BackupFilePrefix+timestamp+constants.BackupFileSuffix)
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return path, nil
	}

	timestamp = time.Now().Format("20060102-150405")
	path = filepath.Join(m.backupDir, constants.BackupFilePrefix+timestamp+constants.BackupFileSuffix)
	for counter := 1; ; counter++ {
		if _, err := os.Stat(path); os.IsNotExist(err) {
			return path, nil
		}
		if counter > 100 {
			return "", fmt.Errorf("failed to generate unique backup filename")
		}
		path = filepath.Join(m.backupDir,
			fmt.Sprintf("%s%s-%d%s", constants.BackupFilePrefix, timestamp, counter, constants.BackupFileSuffix))
	}
}

func (m *Manager) archivePlans(destPath string) error {
	out, err := os.Create(destPath)
	if err != nil {
		return err
	}
	defer out.Close()

	zw := zip.NewWriter(out)
	defer zw.Close()

	entries, err := os.ReadDir(m.plansDir)
	if err != nil {
		return err
	}
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), constants.PlanFileExt) {
			continue
		}
		src, err := os.Open(filepath.Join(m.plansDir, entry.Name()))
		if err != nil {
			return err
		}
		w, err := zw.Create(entry.Name())
		if err != nil {
			src.Close()
			return err
		}
		if _, err := io.Copy(w, src); err != nil {
			src.Close()
			return err
		}
		src.Close()
	}
	return zw.Close()
}

// ListBackups returns available archives, newest first.
func (m *Manager) ListBackups() ([]Info, error) {
	entries, err := os.ReadDir(m.backupDir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}

	var backups []Info
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !strings.HasPrefix(name, constants.BackupFilePrefix) || !strings.HasSuffix(name, constants.BackupFileSuffix) {
			continue
		}
		fi, err := entry.Info()
		if err != nil {
			continue
		}
		backups = append(backups, Info{
			Path:      filepath.Join(m.backupDir, name),
			Timestamp: fi.ModTime(),
			Size:      fi.Size(),
		})
	}
	sort.Slice(backups, func(i, j int) bool { return backups[i].Timestamp.After(backups[j].Timestamp) })
	return backups, nil
}

func (m *Manager) rotateBackups() error {
	backups, err := m.ListBackups()
	if err != nil {
		return err
	}
	for i := constants.MaxBackups; i < len(backups); i++ {
		if err := os.Remove(backups[i].Path); err != nil {
			return err
		}
	}
	return nil
}

// RestoreBackup replaces the plans directory contents with the archive's.
// A safety backup of the current state is taken first.
func (m *Manager) RestoreBackup(archivePath string) error {
	if _, err := m.createBackup(true); err != nil {
		return fmt.Errorf("failed to create safety backup before restore: %w", err)
	}

	zr, err := zip.OpenReader(archivePath)
	if err != nil {
		return fmt.Errorf("failed to open backup archive: %w", err)
	}
	defer zr.Close()

	// Clear existing records, then unpack.
	entries, err := os.ReadDir(m.plansDir)
	if err != nil {
		return err
	}
	for _, entry := range entries {
		if !entry.IsDir() && strings.HasSuffix(entry.Name(), constants.PlanFileExt) {
			if err := os.Remove(filepath.Join(m.plansDir, entry.Name())); err != nil {
				return err
			}
		}
	}

	for _, f := range zr.File {
		name := filepath.Base(f.Name) // archives are flat; refuse traversal
		if !strings.HasSuffix(name, constants.PlanFileExt) {
			continue
		}
		src, err := f.Open()
		if err != nil {
			return err
		}
		dst, err := os.OpenFile(filepath.Join(m.plansDir, name), os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0600)
		if err != nil {
			src.Close()
			return err
		}
		if _, err := io.Copy(dst, src); err != nil {
			src.Close()
			dst.Close()
			return err
		}
		src.Close()
		dst.Close()
	}
	return nil
}
