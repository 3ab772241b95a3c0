package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/gosuri/uitable"

	"github.com/julianstephens/planhub/internal/constants"
	"github.com/julianstephens/planhub/internal/keyring"
	"github.com/julianstephens/planhub/internal/storage"
)

// ConfigCmd and its subcommands run without opening storage.
type ConfigCmd struct {
	Show ConfigShowCmd `cmd:"" help:"Show the effective configuration." default:"1"`
	Dsn  ConfigDsnCmd  `cmd:"" help:"Manage the PostgreSQL connection string in the OS keyring."`
}

type ConfigShowCmd struct{}

func (c *ConfigShowCmd) Run(ctx *Context) error {
	cfg := ctx.Config

	tbl := uitable.New()
	tbl.Separator = "  "
	tbl.AddRow("config file", cfg.File)
	tbl.AddRow("data_dir", cfg.DataDir)
	tbl.AddRow("storage.driver", cfg.Storage.Driver)
	if p := cfg.StoragePath(); p != "" {
		tbl.AddRow("storage.path", p)
	}
	if cfg.Storage.Driver == constants.DriverPostgres {
		tbl.AddRow("storage.dsn", dsnSource(cfg.Storage.DSN))
	}
	tbl.AddRow("log.debug", cfg.Debug)

	fmt.Fprintln(ctx.Out, tbl)
	return nil
}

// dsnSource never prints the connection string itself.
func dsnSource(configured string) string {
	_, source, err := keyring.ResolveConnectionString(configured)
	if err != nil {
		return "(not set)"
	}
	return fmt.Sprintf("(from %s)", source)
}

type ConfigDsnCmd struct {
	Set   ConfigDsnSetCmd   `cmd:"" help:"Store a connection string in the OS keyring."`
	Clear ConfigDsnClearCmd `cmd:"" help:"Remove the stored connection string."`
}

type ConfigDsnSetCmd struct {
	ConnString string `arg:"" help:"PostgreSQL connection string (no password; use .pgpass or PGPASSWORD)."`
}

func (c *ConfigDsnSetCmd) Run(ctx *Context) error {
	connStr := strings.TrimSpace(c.ConnString)
	if err := storage.ValidateConnString(connStr); err != nil {
		return err
	}
	if !keyring.IsAvailable() {
		return fmt.Errorf("%w; set %s instead", keyring.ErrKeyringUnavailable, constants.EnvDBConnection)
	}
	if err := keyring.SetConnectionString(connStr); err != nil {
		return err
	}
	fmt.Fprintln(ctx.Out, "✓ Connection string stored in OS keyring.")
	return nil
}

type ConfigDsnClearCmd struct{}

func (c *ConfigDsnClearCmd) Run(ctx *Context) error {
	err := keyring.DeleteConnectionString()
	if errors.Is(err, keyring.ErrNotFound) {
		fmt.Fprintln(ctx.Out, "No connection string stored.")
		return nil
	}
	if err != nil {
		return err
	}
	fmt.Fprintln(ctx.Out, "✓ Connection string removed from OS keyring.")
	return nil
}
