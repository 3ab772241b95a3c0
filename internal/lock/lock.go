// Package lock keeps two planhub processes from writing the same data
// directory at once.
package lock

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/mitchellh/go-ps"

	"github.com/julianstephens/planhub/internal/constants"
	"github.com/julianstephens/planhub/internal/logger"
)

var (
	findProcessFunc = ps.FindProcess
	getpidFunc      = os.Getpid
	executableFunc  = func() string { return filepath.Base(os.Args[0]) }
)

// ErrLocked is returned when another live planhub process holds the lock.
var ErrLocked = errors.New("data directory is in use by another planhub process")

type Lock struct {
	path string
	pid  int
}

// Holder describes the process named in a lockfile.
type Holder struct {
	PID        int
	Executable string
}

// Acquire takes the lock in dir. A lockfile left by a dead process, or by a
// process whose pid now belongs to a different program, is replaced.
func Acquire(dir string) (*Lock, error) {
	if err := os.MkdirAll(dir, 0700); err != nil {
		return nil, fmt.Errorf("failed to create lock directory: %w", err)
	}
	path := filepath.Join(dir, constants.LockfileName)

	if holder, err := readLockfile(path); err == nil {
		if holder.PID != getpidFunc() && isAlive(holder) {
			return nil, fmt.Errorf("%w (pid %d)", ErrLocked, holder.PID)
		}
		logger.Debug("Replacing stale lockfile", "pid", holder.PID, "executable", holder.Executable)
	} else if !errors.Is(err, os.ErrNotExist) {
		logger.Warn("Ignoring unreadable lockfile", "path", path, "error", err)
	}

	pid := getpidFunc()
	content := fmt.Sprintf("%d|%s", pid, executableFunc())
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		return nil, fmt.Errorf("failed to write lockfile: %w", err)
	}
	return &Lock{path: path, pid: pid}, nil
}

// Release removes the lockfile if this process still owns it.
func (l *Lock) Release() error {
	if l == nil {
		return nil
	}
	holder, err := readLockfile(l.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return err
	}
	if holder.PID != l.pid {
		return nil
	}
	if err := os.Remove(l.path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("failed to remove lockfile: %w", err)
	}
	return nil
}

func readLockfile(path string) (Holder, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return Holder{}, err
	}

	parts := strings.Split(strings.TrimSpace(string(content)), "|")
	if len(parts) != 2 {
		return Holder{}, errors.New("lockfile is malformed")
	}

	pid, err := strconv.Atoi(parts[0])
	if err != nil || pid < 1 {
		return Holder{}, errors.New("invalid process ID in lockfile")
	}

	executable := strings.TrimSpace(parts[1])
	if executable == "" {
		return Holder{}, errors.New("executable in lockfile is empty")
	}

	return Holder{PID: pid, Executable: executable}, nil
}

func isAlive(h Holder) bool {
	process, err := findProcessFunc(h.PID)
	if err != nil || process == nil {
		return false
	}
	return process.Executable() == h.Executable
}
