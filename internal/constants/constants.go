package constants

import "time"

const (
	AppName           = "dayplan"
	Version           = "v0.2.0"
	DefaultKeyringUser = "sync-token"

	// DateFormat is the standard date format used throughout the application (YYYY-MM-DD)
	DateFormat = "2006-01-02"

	// PlanFileExt is the extension of per-date plan records
	PlanFileExt = ".json"
	// PlansDirName is the directory holding per-date plan records
	PlansDirName = "plans"
	// SettingsFileName is the small key-value settings database
	SettingsFileName = "settings.db"

	// Default plan shape for a fresh day.
	DefaultTaskCount     = 8
	DefaultPriorityCount = 5
	FirstScheduleHour    = 7
	LastScheduleHour     = 23

	// Settings keys
	SettingRolloverDate  = "last_rollover_date"
	SettingRemoteFolder  = "remote_folder_id"
	SettingLastSync      = "last_sync_date"

	// Remote sync
	RemoteFolderName    = "DayPlanSync"
	RemoteMaxInFlight   = 4
	RemoteTimeout       = 30 * time.Second

	// Backup constants
	MaxBackups       = 14
	BackupDirName    = "backups"
	BackupFilePrefix = "dayplan-"
	BackupFileSuffix = ".zip"

	// Notify constants
	NotifierLockfileName   = "dayplan-notifier.lock"
	NotificationDurationMs = 5000
	TrayAppIdentifier      = "com.julianstephens.dayplan"
)
