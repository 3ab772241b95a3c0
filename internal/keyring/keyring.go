package keyring

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/julianstephens/planhub/internal/constants"
	"github.com/zalando/go-keyring"
)

var (
	// ErrNotFound is returned when no connection string is stored in the keyring
	ErrNotFound = errors.New("credentials not found in keyring")
	// ErrKeyringUnavailable is returned when the OS keyring is not available
	ErrKeyringUnavailable = errors.New("OS keyring is not available")
	// ErrNoConnectionString is returned when no source supplies a connection string
	ErrNoConnectionString = errors.New("no PostgreSQL connection string configured")
)

// Source names where a resolved connection string came from.
type Source string

const (
	SourceConfig  Source = "config"
	SourceEnv     Source = "env"
	SourceKeyring Source = "keyring"
)

// GetConnectionString reads the stored connection string.
func GetConnectionString() (string, error) {
	connStr, err := keyring.Get(constants.AppName, constants.DefaultKeyringUser)
	if err != nil {
		if errors.Is(err, keyring.ErrNotFound) {
			return "", ErrNotFound
		}
		return "", fmt.Errorf("%w: %v", ErrKeyringUnavailable, err)
	}
	return connStr, nil
}

func SetConnectionString(connStr string) error {
	if strings.TrimSpace(connStr) == "" {
		return errors.New("connection string cannot be empty")
	}
	if err := keyring.Set(constants.AppName, constants.DefaultKeyringUser, connStr); err != nil {
		return fmt.Errorf("failed to store credentials in keyring: %w", err)
	}
	return nil
}

func DeleteConnectionString() error {
	err := keyring.Delete(constants.AppName, constants.DefaultKeyringUser)
	if err != nil {
		if errors.Is(err, keyring.ErrNotFound) {
			return ErrNotFound
		}
		return fmt.Errorf("failed to delete credentials from keyring: %w", err)
	}
	return nil
}

// IsAvailable is a best-effort probe of the OS keyring.
func IsAvailable() bool {
	_, err := keyring.Get(constants.AppName, "test-availability")
	return err == nil || errors.Is(err, keyring.ErrNotFound)
}

// ResolveConnectionString picks the first non-empty connection string from
// the configured value, the PLANHUB_DB_CONNECTION env var and the keyring.
func ResolveConnectionString(configured string) (string, Source, error) {
	if s := strings.TrimSpace(configured); s != "" {
		return s, SourceConfig, nil
	}
	if s := strings.TrimSpace(os.Getenv(constants.EnvDBConnection)); s != "" {
		return s, SourceEnv, nil
	}

	connStr, err := GetConnectionString()
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return "", "", ErrNoConnectionString
		}
		return "", "", err
	}
	return connStr, SourceKeyring, nil
}
