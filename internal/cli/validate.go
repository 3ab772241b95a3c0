package cli

import (
	"fmt"

	"github.com/fatih/color"
)

type ValidateCmd struct{}

func (cmd *ValidateCmd) Run(ctx *Context) error {
	result := ctx.Validator.Validate(ctx.Store.Todos(), ctx.Store.Habits(), ctx.Store.Resources())

	if !result.HasConflicts() {
		color.New(color.FgGreen).Fprintln(ctx.Out, result.FormatReport())
		return nil
	}

	// Conflicts are reported, never fatal.
	color.New(color.FgYellow).Fprint(ctx.Out, result.FormatReport())
	fmt.Fprintf(ctx.Out, "\n%d conflict(s) found.\n", len(result.Conflicts))
	return nil
}
