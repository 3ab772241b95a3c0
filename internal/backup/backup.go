package backup

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/julianstephens/planhub/internal/constants"
	"github.com/julianstephens/planhub/internal/logger"
	"github.com/julianstephens/planhub/internal/storage"
	"github.com/julianstephens/planhub/internal/store"
	"github.com/julianstephens/planhub/internal/utils"
)

// BundleVersion is written into every backup file.
const BundleVersion = 1

// ErrInvalidBundle is returned when a backup file cannot be read as a bundle.
var ErrInvalidBundle = errors.New("backup file is not a planhub bundle")

// Bundle is the on-disk backup format: every slot blob, keyed by slot name.
type Bundle struct {
	Version   int                        `json:"version"`
	CreatedAt string                     `json:"createdAt"`
	Slots     map[string]json.RawMessage `json:"slots"`
}

// BackupInfo contains information about a backup file
type BackupInfo struct {
	Path      string
	Timestamp time.Time
	Size      int64
}

// Manager snapshots the store into bundle files and restores them.
type Manager struct {
	store     *store.Store
	backupDir string
	now       utils.Clock
}

func NewManager(dataDir string, s *store.Store, clock utils.Clock) *Manager {
	if clock == nil {
		clock = utils.SystemClock
	}
	return &Manager{
		store:     s,
		backupDir: filepath.Join(dataDir, constants.BackupDirName),
		now:       clock,
	}
}

func (m *Manager) GetBackupDir() string {
	return m.backupDir
}

// CreateBackup writes the current collections to a new bundle and rotates
// old bundles down to MaxBackups.
func (m *Manager) CreateBackup() (string, error) {
	return m.createBackup(false)
}

// skipRotation keeps a pre-restore backup from pushing out the one being restored.
func (m *Manager) createBackup(skipRotation bool) (string, error) {
	if err := os.MkdirAll(m.backupDir, 0700); err != nil {
		return "", fmt.Errorf("failed to create backup directory: %w", err)
	}

	backupPath, err := m.nextBackupPath()
	if err != nil {
		return "", err
	}

	bundle := Bundle{
		Version:   BundleVersion,
		CreatedAt: utils.FormatTimestamp(m.now()),
		Slots:     make(map[string]json.RawMessage),
	}
	for _, c := range store.AllCollections() {
		blob, err := json.Marshal(m.store.Snapshot(c))
		if err != nil {
			return "", fmt.Errorf("failed to encode %s: %w", c, err)
		}
		bundle.Slots[c.Slot()] = blob
	}

	data, err := json.MarshalIndent(bundle, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to encode bundle: %w", err)
	}
	if err := writeFileAtomic(backupPath, data); err != nil {
		return "", fmt.Errorf("failed to write backup: %w", err)
	}
	logger.Info("Created backup", "path", backupPath)

	if !skipRotation {
		if err := m.rotateBackups(); err != nil {
			logger.Warn("Failed to rotate old backups", "error", err)
		}
	}

	return backupPath, nil
}

// nextBackupPath uses minute precision, then seconds, then a counter.
func (m *Manager) nextBackupPath() (string, error) {
	now := m.now()
	path := m.backupPathFor(now.Format("20060102-1504"))
	if !exists(path) {
		return path, nil
	}

	timestamp := now.Format("20060102-150405")
	path = m.backupPathFor(timestamp)
	for counter := 1; exists(path); counter++ {
		if counter > 100 {
			return "", fmt.Errorf("failed to generate unique backup filename")
		}
		path = m.backupPathFor(fmt.Sprintf("%s-%d", timestamp, counter))
	}
	return path, nil
}

func (m *Manager) backupPathFor(stamp string) string {
	return filepath.Join(m.backupDir, constants.BackupFilePrefix+stamp+constants.BackupFileSuffix)
}

func exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// ListBackups returns bundles newest first. Files whose names do not carry
// a backup timestamp are ignored.
func (m *Manager) ListBackups() ([]BackupInfo, error) {
	entries, err := os.ReadDir(m.backupDir)
	if err != nil {
		if os.IsNotExist(err) {
			return []BackupInfo{}, nil
		}
		return nil, fmt.Errorf("failed to read backup directory: %w", err)
	}

	backups := []BackupInfo{}
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}

		timestamp, ok := parseBackupName(entry.Name())
		if !ok {
			continue
		}

		info, err := entry.Info()
		if err != nil {
			continue
		}

		backups = append(backups, BackupInfo{
			Path:      filepath.Join(m.backupDir, entry.Name()),
			Timestamp: timestamp,
			Size:      info.Size(),
		})
	}

	sort.SliceStable(backups, func(i, j int) bool {
		if backups[i].Timestamp.Equal(backups[j].Timestamp) {
			return backups[i].Path > backups[j].Path
		}
		return backups[i].Timestamp.After(backups[j].Timestamp)
	})

	return backups, nil
}

func parseBackupName(name string) (time.Time, bool) {
	if !strings.HasPrefix(name, constants.BackupFilePrefix) || !strings.HasSuffix(name, constants.BackupFileSuffix) {
		return time.Time{}, false
	}
	stamp := strings.TrimSuffix(strings.TrimPrefix(name, constants.BackupFilePrefix), constants.BackupFileSuffix)

	// Drop a trailing -N collision counter.
	parts := strings.Split(stamp, "-")
	if len(parts) == 3 && isDigits(parts[2]) {
		stamp = parts[0] + "-" + parts[1]
	}

	for _, layout := range []string{"20060102-1504", "20060102-150405"} {
		if t, err := time.ParseInLocation(layout, stamp, time.Local); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, c := range s {
		if c < '0' || c > '9' {
			return false
		}
	}
	return true
}

func (m *Manager) rotateBackups() error {
	backups, err := m.ListBackups()
	if err != nil {
		return err
	}

	for i := constants.MaxBackups; i < len(backups); i++ {
		if err := os.Remove(backups[i].Path); err != nil {
			return fmt.Errorf("failed to remove old backup %s: %w", backups[i].Path, err)
		}
	}
	return nil
}

// ReadBundle loads and checks a bundle file without applying it.
func ReadBundle(path string) (Bundle, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Bundle{}, fmt.Errorf("failed to read backup: %w", err)
	}

	var bundle Bundle
	if err := json.Unmarshal(data, &bundle); err != nil {
		return Bundle{}, fmt.Errorf("%w: %v", ErrInvalidBundle, err)
	}
	if bundle.Version < 1 || bundle.Version > BundleVersion {
		return Bundle{}, fmt.Errorf("%w: unsupported version %d", ErrInvalidBundle, bundle.Version)
	}
	if bundle.Slots == nil {
		return Bundle{}, fmt.Errorf("%w: no slots", ErrInvalidBundle)
	}
	return bundle, nil
}

// RestoreBackup replaces every collection with the bundle's contents. The
// current state is backed up first. A slot missing from the bundle, or one
// that does not decode, restores as an empty collection.
func (m *Manager) RestoreBackup(backupPath string) (string, error) {
	bundle, err := ReadBundle(backupPath)
	if err != nil {
		return "", err
	}

	current, err := m.createBackup(true)
	if err != nil {
		return "", fmt.Errorf("failed to backup current state before restore: %w", err)
	}

	for _, c := range store.AllCollections() {
		if err := storage.ApplySlot(m.store, c, bundle.Slots[c.Slot()]); err != nil {
			logger.Warn("Malformed slot in backup, restored empty", "slot", c.Slot(), "error", err)
		}
	}
	logger.Info("Restored backup", "path", backupPath, "previous", current)

	return current, nil
}

func writeFileAtomic(path string, data []byte) error {
	tempPath := path + ".tmp"
	if err := os.WriteFile(tempPath, data, 0600); err != nil {
		return err
	}
	if err := os.Rename(tempPath, path); err != nil {
		if removeErr := os.Remove(tempPath); removeErr != nil {
			logger.Warn("Failed to remove temporary file", "path", tempPath, "error", removeErr)
		}
		return err
	}
	return nil
}
