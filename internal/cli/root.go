package cli

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/fatih/color"

	"github.com/julianstephens/planhub/internal/backup"
	"github.com/julianstephens/planhub/internal/config"
	"github.com/julianstephens/planhub/internal/constants"
	"github.com/julianstephens/planhub/internal/habits"
	"github.com/julianstephens/planhub/internal/keyring"
	"github.com/julianstephens/planhub/internal/logger"
	"github.com/julianstephens/planhub/internal/resources"
	"github.com/julianstephens/planhub/internal/scheduler"
	"github.com/julianstephens/planhub/internal/storage"
	"github.com/julianstephens/planhub/internal/store"
	"github.com/julianstephens/planhub/internal/utils"
	"github.com/julianstephens/planhub/internal/validation"
)

// Context is handed to every command's Run method.
type Context struct {
	Config    config.Config
	Provider  storage.Provider
	Store     *store.Store
	Scheduler *scheduler.Controller
	Habits    *habits.Tracker
	Resources *resources.Classifier
	Backups   *backup.Manager
	Validator *validation.Validator
	Clock     utils.Clock
	DryRun    bool
	In        io.Reader
	Out       io.Writer
}

// NewContext wires the controllers around a fresh store. The caller hydrates
// the store and attaches a persister.
func NewContext(cfg config.Config, provider storage.Provider, clock utils.Clock) *Context {
	if clock == nil {
		clock = utils.SystemClock
	}
	s := store.New(clock)
	return &Context{
		Config:    cfg,
		Provider:  provider,
		Store:     s,
		Scheduler: scheduler.New(s),
		Habits:    habits.New(s, clock),
		Resources: resources.New(s, clock),
		Backups:   backup.NewManager(cfg.DataDir, s, clock),
		Validator: validation.New(),
		Clock:     clock,
		In:        os.Stdin,
		Out:       color.Output,
	}
}

// OpenProvider builds the slot store named by cfg.Storage.Driver. It does
// not call Init.
func OpenProvider(cfg config.Config) (storage.Provider, error) {
	switch cfg.Storage.Driver {
	case constants.DriverDiskv:
		return storage.NewDiskvStore(cfg.StoragePath()), nil
	case constants.DriverSQLite:
		return storage.NewSQLiteStore(cfg.StoragePath()), nil
	case constants.DriverMemory:
		return storage.NewMemoryStore(), nil
	case constants.DriverPostgres:
		connStr, source, err := keyring.ResolveConnectionString(cfg.Storage.DSN)
		if err != nil {
			return nil, fmt.Errorf("postgres storage: %w (set storage.dsn, %s, or run 'planhub config dsn set')", err, constants.EnvDBConnection)
		}
		if err := storage.ValidateConnString(connStr); err != nil {
			return nil, err
		}
		logger.Debug("Using PostgreSQL storage", "source", source)
		return storage.NewPostgresStore(connStr), nil
	}
	return nil, fmt.Errorf("%w %q", config.ErrUnknownDriver, cfg.Storage.Driver)
}

// Today returns the device-local date.
func (c *Context) Today() string {
	return utils.Today(c.Clock)
}

// ResolveDate accepts YYYY-MM-DD or "today"; empty means today.
func (c *Context) ResolveDate(date string) (string, error) {
	date = strings.TrimSpace(date)
	if date == "" || strings.EqualFold(date, "today") {
		return c.Today(), nil
	}
	if !utils.ValidateDateFormat(date) {
		return "", fmt.Errorf("invalid date %q (expected YYYY-MM-DD or 'today')", date)
	}
	return date, nil
}

// ParseID parses an entity id given on the command line.
func ParseID(s string) (int64, error) {
	id, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid id %q", s)
	}
	return id, nil
}

// notFound reports a missing entity without failing the command.
func (c *Context) notFound(kind string, id int64) error {
	fmt.Fprintf(c.Out, "No %s with id %d; nothing changed.\n", kind, id)
	return nil
}
