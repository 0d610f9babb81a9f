package backups

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/julianstephens/dayplan/internal/backup"
	"github.com/julianstephens/dayplan/internal/cli"
	"github.com/julianstephens/dayplan/internal/constants"
)

type BackupCreateCmd struct{}

func (c *BackupCreateCmd) Run(ctx *cli.Context) error {
	mgr := backup.NewManager(ctx.Store.Dir())
	path, err := mgr.CreateBackup()
	if err != nil {
		return fmt.Errorf("backup failed: %w", err)
	}
	fmt.Printf("✓ Backup created: %s\n", filepath.Base(path))
	return nil
}

type BackupListCmd struct{}

func (c *BackupListCmd) Run(ctx *cli.Context) error {
	mgr := backup.NewManager(ctx.Store.Dir())
	backups, err := mgr.ListBackups()
	if err != nil {
		return fmt.Errorf("failed to list backups: %w", err)
	}
	if len(backups) == 0 {
		fmt.Println("No backups found.")
		fmt.Printf("Backups are stored in: %s\n", mgr.BackupDir())
		return nil
	}

	fmt.Printf("Available backups (%d total, keeping most recent %d):\n\n", len(backups), constants.MaxBackups)
	for _, b := range backups {
		fmt.Printf("  %s  %s  (%.1f KB)\n",
			b.Timestamp.Format("2006-01-02 15:04:05"), filepath.Base(b.Path), float64(b.Size)/1024.0)
	}
	return nil
}

type BackupRestoreCmd struct {
	BackupFile string `arg:"" help:"Path or filename of the backup to restore."`
}

func (c *BackupRestoreCmd) Run(ctx *cli.Context) error {
	mgr := backup.NewManager(ctx.Store.Dir())

	path := c.BackupFile
	if !filepath.IsAbs(path) {
		if _, err := os.Stat(path); err != nil {
			candidate := filepath.Join(mgr.BackupDir(), c.BackupFile)
			if _, err := os.Stat(candidate); err != nil {
				return fmt.Errorf("backup file not found: tried current directory and %s", mgr.BackupDir())
			}
			path = candidate
		}
	} else if _, err := os.Stat(path); err != nil {
		return fmt.Errorf("backup file not found: %s", path)
	}

	if err := mgr.RestoreBackup(path); err != nil {
		return fmt.Errorf("restore failed: %w", err)
	}
	fmt.Println("✓ Plans restored. A safety backup of the previous state was created first.")
	return nil
}
