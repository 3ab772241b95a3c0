package cli

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/julianstephens/planhub/internal/store"
)

type DebugCmd struct {
	Path     DebugPathCmd     `cmd:"" help:"Show storage locations."`
	DumpSlot DebugDumpSlotCmd `cmd:"" help:"Dump a persisted slot as JSON."`
}

type DebugPathCmd struct{}

func (cmd *DebugPathCmd) Run(ctx *Context) error {
	// Output in machine-readable format
	output := map[string]string{
		"driver":  ctx.Config.Storage.Driver,
		"storage": ctx.Provider.GetConfigPath(),
		"dataDir": ctx.Config.DataDir,
		"backups": ctx.Backups.GetBackupDir(),
		"config":  ctx.Config.File,
	}

	jsonBytes, err := json.MarshalIndent(output, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal output: %w", err)
	}

	fmt.Fprintln(ctx.Out, string(jsonBytes))
	return nil
}

type DebugDumpSlotCmd struct {
	Collection string `arg:"" enum:"todos,habits,resources" help:"Collection to dump (todos, habits, resources)."`
}

// Run prints the blob exactly as the provider holds it, not the in-memory
// collection.
func (cmd *DebugDumpSlotCmd) Run(ctx *Context) error {
	c := store.Collection(cmd.Collection)
	blob, found, err := ctx.Provider.Load(c.Slot())
	if err != nil {
		return fmt.Errorf("failed to load slot %s: %w", c.Slot(), err)
	}
	if !found {
		return fmt.Errorf("slot %s has never been written", c.Slot())
	}

	var out bytes.Buffer
	if err := json.Indent(&out, blob, "", "  "); err != nil {
		return fmt.Errorf("slot %s does not hold valid JSON: %w", c.Slot(), err)
	}
	fmt.Fprintln(ctx.Out, out.String())
	return nil
}
