// Package errors prints command failures for the terminal. Failures planhub
// knows how to recover from get a hint line under the message.
package errors

import (
	stderrors "errors"
	"fmt"
	"io"
	"os"

	"github.com/julianstephens/planhub/internal/config"
	"github.com/julianstephens/planhub/internal/constants"
	"github.com/julianstephens/planhub/internal/lock"
	"github.com/julianstephens/planhub/internal/logger"
	"github.com/julianstephens/planhub/internal/storage"
)

type hint struct {
	target error
	text   string
}

// Checked in order; the first match wins.
var hints = []hint{
	{lock.ErrLocked, "Close the other planhub session, or pass --dry-run to read without writing."},
	{config.ErrUnknownDriver, "Set storage.driver (or --driver) to diskv, sqlite, postgres or memory."},
	{storage.ErrEmbeddedCredentials, "Keep the password in ~/.pgpass or PGPASSWORD and store the connection string without it."},
	{storage.ErrInvalidConnectionString, "Check storage.dsn, " + constants.EnvDBConnection + " or 'planhub config dsn set'."},
}

var exit = os.Exit

// Hint returns the recovery hint for err, or "" when there is none.
func Hint(err error) string {
	for _, h := range hints {
		if stderrors.Is(err, h.target) {
			return h.text
		}
	}
	return ""
}

// Format renders err as "Error: ..." followed by its hint, if any.
func Format(err error) string {
	if err == nil {
		return ""
	}
	msg := fmt.Sprintf("Error: %v", err)
	if h := Hint(err); h != "" {
		msg += "\nHint: " + h
	}
	return msg
}

// Fatal logs err, prints it to stderr and exits 1. A nil err is a no-op.
func Fatal(err error) {
	fatal(os.Stderr, err)
}

func fatal(w io.Writer, err error) {
	if err == nil {
		return
	}
	logger.Error("Command execution failed", "error", err)
	fmt.Fprintln(w, Format(err))
	exit(1)
}

// Warnf logs a warning and prints it to stderr without exiting.
func Warnf(format string, args ...interface{}) {
	warnf(os.Stderr, format, args...)
}

func warnf(w io.Writer, format string, args ...interface{}) {
	msg := fmt.Sprintf(format, args...)
	logger.Warn(msg)
	fmt.Fprintf(w, "Warning: %s\n", msg)
}
