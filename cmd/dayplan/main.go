package main

import (
	"strings"
	"time"

	"github.com/alecthomas/kong"

	"github.com/julianstephens/dayplan/internal/cli"
	"github.com/julianstephens/dayplan/internal/cli/backups"
	"github.com/julianstephens/dayplan/internal/cli/habits"
	"github.com/julianstephens/dayplan/internal/cli/plans"
	"github.com/julianstephens/dayplan/internal/cli/syncs"
	"github.com/julianstephens/dayplan/internal/cli/system"
	"github.com/julianstephens/dayplan/internal/cli/tasks"
	"github.com/julianstephens/dayplan/internal/config"
	"github.com/julianstephens/dayplan/internal/datekey"
	apperrors "github.com/julianstephens/dayplan/internal/errors"
	"github.com/julianstephens/dayplan/internal/logger"
	"github.com/julianstephens/dayplan/internal/rollover"
	"github.com/julianstephens/dayplan/internal/session"
	"github.com/julianstephens/dayplan/internal/settings"
	"github.com/julianstephens/dayplan/internal/storage"
)

var CLI struct {
	Version kong.VersionFlag
	DataDir string `help:"Override the data directory." type:"path"`
	Date    string `help:"Operate on this date instead of today (YYYY-MM-DD)."`
	Debug   bool   `help:"Enable debug logging."`

	Init     system.InitCmd   `cmd:"" help:"Initialize dayplan storage."`
	Doctor   system.DoctorCmd `cmd:"" help:"Run health checks and diagnostics."`
	Tui      system.TuiCmd    `cmd:"" help:"Launch the interactive planner." default:"1"`
	Day      plans.DayCmd     `cmd:"" help:"Show the plan for a day."`
	Dates    plans.DatesCmd   `cmd:"" help:"List all dates with stored plans."`
	Rollover plans.RolloverCmd `cmd:"" help:"Carry incomplete tasks forward to today."`
	Month    plans.MonthCmd   `cmd:"" help:"Jump to the same day in another month."`
	Mood     plans.MoodCmd    `cmd:"" help:"Record the day's mood."`
	Calendar plans.CalendarCmd `cmd:"" help:"Show calendar events for the selected date."`
	Notes    plans.NotesCmd   `cmd:"" help:"Set the day's notes."`
	Task     struct {
		Add    tasks.TaskAddCmd    `cmd:"" help:"Add a task."`
		Toggle tasks.TaskToggleCmd `cmd:"" help:"Toggle a task's completion."`
		Edit   tasks.TaskEditCmd   `cmd:"" help:"Edit a task's text."`
		Delete tasks.TaskDeleteCmd `cmd:"" help:"Delete a task."`
		List   tasks.TaskListCmd   `cmd:"" help:"List the day's tasks." default:"1"`
	} `cmd:"" help:"Manage tasks."`
	Priority struct {
		Set plans.PrioritySetCmd `cmd:"" help:"Set a priority's text." default:"1"`
	} `cmd:"" help:"Manage the day's top priorities."`
	Slot struct {
		Set plans.SlotSetCmd `cmd:"" help:"Set an hourly slot's text." default:"1"`
	} `cmd:"" help:"Manage the hourly schedule."`
	Habit struct {
		Toggle habits.HabitToggleCmd `cmd:"" help:"Toggle a habit."`
		List   habits.HabitListCmd   `cmd:"" help:"List habits and their state." default:"1"`
	} `cmd:"" help:"Track daily habits."`
	Drawing struct {
		Import plans.DrawingImportCmd `cmd:"" help:"Attach a drawing file to the day."`
		Export plans.DrawingExportCmd `cmd:"" help:"Write the day's drawing to a file."`
	} `cmd:"" help:"Manage the day's drawing."`
	Plans struct {
		Delete plans.PlanDeleteCmd `cmd:"" help:"Delete a stored plan."`
	} `cmd:"" help:"Manage stored plans."`
	Sync struct {
		Token  syncs.SyncTokenCmd  `cmd:"" help:"Store or clear the sync access token."`
		Push   syncs.SyncPushCmd   `cmd:"" help:"Upload local plans to the sync folder."`
		Pull   syncs.SyncPullCmd   `cmd:"" help:"Download remote plans, overwriting local copies."`
		Status syncs.SyncStatusCmd `cmd:"" help:"Show sync bookkeeping." default:"1"`
	} `cmd:"" help:"Sync plans with the remote folder."`
	Backup struct {
		Create  backups.BackupCreateCmd  `cmd:"" help:"Create a backup archive." default:"1"`
		List    backups.BackupListCmd    `cmd:"" help:"List available backups."`
		Restore backups.BackupRestoreCmd `cmd:"" help:"Restore plans from a backup."`
	} `cmd:"" help:"Manage plan backups."`
	Notify system.NotifyCmd `cmd:"" hidden:"" help:"Send the pending-task notification (used internally)."`
}

// Commands that must not trigger a rollover: init has nothing to roll,
// token storage never touches plans, and restore is about to replace them.
// Command() includes positional placeholders, so match on the prefix.
func skipsRollover(command string) bool {
	for _, skip := range []string{"init", "sync token", "backup restore"} {
		if command == skip || strings.HasPrefix(command, skip+" ") {
			return true
		}
	}
	return false
}

func main() {
	ctx := kong.Parse(&CLI,
		kong.Name("dayplan"),
		kong.Description("Daily planner: tasks, priorities, habits and an hourly schedule per day"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact:             true,
			NoExpandSubcommands: true,
		}),
		kong.Vars{"version": "v0.1.0"},
	)

	cfg, err := config.Load()
	if err != nil {
		apperrors.Fatal(err)
	}
	if CLI.DataDir != "" {
		cfg.DataDir = CLI.DataDir
	}
	if CLI.Debug {
		cfg.Debug = true
	}

	if err := logger.Init(logger.Config{Debug: cfg.Debug, ConfigDir: cfg.DataDir}); err != nil {
		apperrors.Fatalf("failed to initialize logger: %v", err)
	}

	loc, err := time.LoadLocation(cfg.Timezone)
	if err != nil {
		apperrors.Fatalf("unknown timezone %q: %v", cfg.Timezone, err)
	}

	settingsStore := settings.NewStore(cfg.SettingsPath())
	if err := settingsStore.Open(); err != nil {
		apperrors.Fatal(err)
	}
	defer settingsStore.Close()

	store, err := storage.NewDiskStore(cfg.PlansDir())
	if err != nil {
		apperrors.Fatal(err)
	}

	today := datekey.Today(loc)
	engine := rollover.NewEngine(store, settingsStore)
	if !skipsRollover(ctx.Command()) {
		if result, err := engine.RolloverIfNeeded(today); err != nil {
			settingsStore.Close()
			apperrors.Fatal(err)
		} else if result.Ran && result.CarriedTasks > 0 {
			logger.Info("rollover complete", "carried", result.CarriedTasks, "skipped", result.SkippedDates)
		}
	}

	selected := today
	if CLI.Date != "" {
		selected, err = datekey.Parse(CLI.Date)
		if err != nil {
			apperrors.Fatal(err)
		}
	}

	sess, err := session.New(store, selected)
	if err != nil {
		apperrors.Fatal(err)
	}

	appCtx := &cli.Context{
		Config:   cfg,
		Store:    store,
		Settings: settingsStore,
		Session:  sess,
		Engine:   engine,
	}

	if err := ctx.Run(appCtx); err != nil {
		settingsStore.Close()
		apperrors.Fatal(err)
	}
}
