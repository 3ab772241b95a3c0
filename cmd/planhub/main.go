package main

import (
	"strings"

	"github.com/alecthomas/kong"

	"github.com/julianstephens/planhub/internal/cli"
	"github.com/julianstephens/planhub/internal/config"
	"github.com/julianstephens/planhub/internal/constants"
	"github.com/julianstephens/planhub/internal/errors"
	"github.com/julianstephens/planhub/internal/logger"
	"github.com/julianstephens/planhub/internal/utils"
)

var CLI struct {
	Version    kong.VersionFlag
	ConfigFile string `name:"config" help:"Config file path (default ~/.config/planhub/planhub.yaml, or $PLANHUB_CONFIG)." type:"path"`
	DataDir    string `help:"Override the data directory." type:"path"`
	Driver     string `help:"Override the storage driver (diskv, sqlite, postgres, memory)."`
	Verbose    bool   `name:"debug" help:"Enable debug logging to stderr."`
	DryRun     bool   `help:"Load real data but keep every change in memory."`

	Tui      cli.TuiCmd      `cmd:"" help:"Launch the interactive TUI." default:"1"`
	Calendar cli.CalendarCmd `cmd:"" help:"Show a month calendar with scheduled todos."`
	Day      cli.DayCmd      `cmd:"" help:"Show todos (and today's habits) for a day."`
	Todo     cli.TodoCmd     `cmd:"" help:"Manage todos."`
	Habit    cli.HabitCmd    `cmd:"" help:"Manage habits and today's check-ins."`
	Resource cli.ResourceCmd `cmd:"" help:"Manage learning resources."`
	Backup   cli.BackupCmd   `cmd:"" help:"Manage backups."`
	Validate cli.ValidateCmd `cmd:"" help:"Check stored data for conflicts."`
	Doctor   cli.DoctorCmd   `cmd:"" help:"Run health checks and diagnostics."`
	Debug    cli.DebugCmd    `cmd:"" help:"Debug commands for troubleshooting."`
	Config   cli.ConfigCmd   `cmd:"" help:"Show configuration and manage credentials."`
}

func main() {
	kctx := kong.Parse(&CLI,
		kong.Name("planhub"),
		kong.Description("Personal planner: todo calendar, habit streaks and learning resources"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact:             true,
			NoExpandSubcommands: true,
		}),
		kong.Vars{"version": constants.Version},
	)

	cfg, err := config.Load(CLI.ConfigFile)
	if err != nil {
		errors.Fatal(err)
	}
	if err := applyFlags(&cfg); err != nil {
		errors.Fatal(err)
	}

	if err := logger.Init(logger.Config{Debug: cfg.Debug, DataDir: cfg.DataDir}); err != nil {
		errors.Warnf("file logging disabled: %v", err)
	}
	logger.Debug("Starting", "command", kctx.Command(), "driver", cfg.Storage.Driver)

	// Config commands must work even when storage cannot be opened.
	if strings.HasPrefix(kctx.Command(), "config") {
		appCtx := cli.NewContext(cfg, nil, utils.SystemClock)
		errors.Fatal(kctx.Run(appCtx))
		return
	}

	appCtx, sess, err := cli.Open(cfg, CLI.DryRun, utils.SystemClock)
	if err != nil {
		errors.Fatal(err)
	}

	err = kctx.Run(appCtx)
	sess.Close()
	errors.Fatal(err)
}

func applyFlags(cfg *config.Config) error {
	if CLI.DataDir != "" {
		cfg.DataDir = CLI.DataDir
	}
	if CLI.Driver != "" {
		cfg.Storage.Driver = strings.ToLower(CLI.Driver)
	}
	if CLI.Verbose {
		cfg.Debug = true
	}
	return cfg.Validate()
}
