package cli

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/julianstephens/planhub/internal/models"
	"github.com/julianstephens/planhub/internal/storage"
	"github.com/julianstephens/planhub/internal/store"
)

type DoctorCmd struct{}

type check struct {
	name         string
	run          func(ctx *Context) error
	warning      bool
	needsStorage bool
	gatesStorage bool
}

var doctorChecks = []check{
	{name: "Storage reachable", run: checkStorageReachable, gatesStorage: true},
	{name: "Schema version", run: checkSchemaVersion, needsStorage: true},
	{name: "Slots decodable", run: checkSlotsDecodable, needsStorage: true},
	{name: "Backups present", run: checkBackupsPresent, warning: true},
	{name: "Data validation", run: checkValidation, warning: true, needsStorage: true},
	{name: "Clock/timezone", run: checkClockTimezone},
}

func (cmd *DoctorCmd) Run(ctx *Context) error {
	fmt.Fprintln(ctx.Out, "Running diagnostics...")
	fmt.Fprintln(ctx.Out)

	hasError := false
	reachable := true
	for _, c := range doctorChecks {
		if c.needsStorage && !reachable {
			fmt.Fprintf(ctx.Out, "⊘ %s: SKIPPED (storage not reachable)\n", c.name)
			continue
		}
		err := c.run(ctx)
		switch {
		case err == nil:
			fmt.Fprintf(ctx.Out, "✓ %s: OK\n", c.name)
		case c.warning:
			fmt.Fprintf(ctx.Out, "⚠ %s: WARNING\n", c.name)
			fmt.Fprintf(ctx.Out, "   %v\n", err)
		default:
			fmt.Fprintf(ctx.Out, "❌ %s: FAIL\n", c.name)
			fmt.Fprintf(ctx.Out, "   Error: %v\n", err)
			hasError = true
			if c.gatesStorage {
				reachable = false
			}
		}
	}

	fmt.Fprintln(ctx.Out)
	if hasError {
		fmt.Fprintln(ctx.Out, "Diagnostics completed with errors.")
		return fmt.Errorf("one or more health checks failed")
	}

	fmt.Fprintln(ctx.Out, "All diagnostics passed!")
	return nil
}

func checkStorageReachable(ctx *Context) error {
	if _, err := ctx.Provider.Slots(); err != nil {
		return fmt.Errorf("failed to list slots in %s: %w", ctx.Provider.GetConfigPath(), err)
	}
	return nil
}

func checkSchemaVersion(ctx *Context) error {
	reporter, ok := ctx.Provider.(storage.SchemaReporter)
	if !ok {
		// Key-value providers have no schema
		return nil
	}

	current, latest, err := reporter.SchemaVersion()
	if err != nil {
		return err
	}
	if current > latest {
		return fmt.Errorf("database schema version (%d) is newer than supported version (%d)", current, latest)
	}
	if current < latest {
		return fmt.Errorf("migrations incomplete: current version %d, latest version %d", current, latest)
	}
	return nil
}

// checkSlotsDecodable re-reads each slot from the provider. A slot that has
// never been written is fine; one that fails to decode would be silently
// replaced with an empty collection on the next start.
func checkSlotsDecodable(ctx *Context) error {
	for _, c := range store.AllCollections() {
		blob, found, err := ctx.Provider.Load(c.Slot())
		if err != nil {
			return fmt.Errorf("failed to load %s: %w", c.Slot(), err)
		}
		if !found {
			continue
		}
		if err := decodeSlot(c, blob); err != nil {
			return fmt.Errorf("%s is malformed: %w", c.Slot(), err)
		}
	}
	return nil
}

func decodeSlot(c store.Collection, blob []byte) error {
	switch c {
	case store.Todos:
		var v []models.Todo
		return json.Unmarshal(blob, &v)
	case store.Habits:
		var v []models.Habit
		return json.Unmarshal(blob, &v)
	case store.Resources:
		var v []models.Resource
		return json.Unmarshal(blob, &v)
	}
	return fmt.Errorf("unknown collection %q", c)
}

func checkBackupsPresent(ctx *Context) error {
	backups, err := ctx.Backups.ListBackups()
	if err != nil {
		return fmt.Errorf("failed to list backups: %w", err)
	}

	if len(backups) == 0 {
		return fmt.Errorf("no backups found - consider creating one with 'planhub backup create'")
	}

	return nil
}

func checkValidation(ctx *Context) error {
	result := ctx.Validator.Validate(ctx.Store.Todos(), ctx.Store.Habits(), ctx.Store.Resources())
	if result.HasConflicts() {
		return fmt.Errorf("%d conflict(s) found - run 'planhub validate' for details", len(result.Conflicts))
	}
	return nil
}

func checkClockTimezone(ctx *Context) error {
	now := ctx.Clock()

	if now.Year() < 2020 || now.Year() > 2100 {
		return fmt.Errorf("system time appears incorrect: %s", now.Format(time.RFC3339))
	}

	// Day boundaries follow the local zone
	if _, offset := now.Zone(); offset == 0 && now.Location() == time.UTC {
		fmt.Fprintf(ctx.Out, "   Note: timezone is UTC\n")
	}
	return nil
}
