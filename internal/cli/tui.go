package cli

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/julianstephens/planhub/internal/constants"
	"github.com/julianstephens/planhub/internal/logger"
	"github.com/julianstephens/planhub/internal/tui"
)

type TuiCmd struct {
	NoBackup bool `help:"Skip the automatic daily backup on startup."`
}

func (c *TuiCmd) Run(ctx *Context) error {
	if !c.NoBackup && !ctx.DryRun {
		ctx.PerformAutomaticBackup()
	}

	m := tui.NewModel(tui.Deps{
		Store:     ctx.Store,
		Scheduler: ctx.Scheduler,
		Habits:    ctx.Habits,
		Resources: ctx.Resources,
		Validator: ctx.Validator,
		Clock:     ctx.Clock,
	})

	p := tea.NewProgram(m, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("tui exited: %w", err)
	}
	return nil
}

// PerformAutomaticBackup writes at most one backup per day, and none while
// the store is empty. Failures are logged and never block startup.
func (c *Context) PerformAutomaticBackup() {
	if len(c.Store.Todos())+len(c.Store.Habits())+len(c.Store.Resources()) == 0 {
		return
	}

	backups, err := c.Backups.ListBackups()
	if err != nil {
		logger.Warn("Automatic backup skipped", "err", err)
		return
	}
	today := c.Today()
	if len(backups) > 0 && backups[0].Timestamp.Format(constants.DateFormat) == today {
		return
	}

	path, err := c.Backups.CreateBackup()
	if err != nil {
		logger.Warn("Automatic backup failed", "err", err)
		return
	}
	logger.Info("Automatic backup created", "path", path)
}
