// Package config loads planhub settings from a YAML file, PLANHUB_* env vars
// and built-in defaults, in that order of precedence after env.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/mitchellh/go-homedir"
	"github.com/spf13/viper"

	"github.com/julianstephens/planhub/internal/constants"
)

const (
	KeyDataDir       = "data_dir"
	KeyStorageDriver = "storage.driver"
	KeyStoragePath   = "storage.path"
	KeyStorageDSN    = "storage.dsn"
	KeyLogDebug      = "log.debug"

	configFileName = "planhub.yaml"
)

// ErrUnknownDriver is wrapped by Validate when storage.driver names no provider.
var ErrUnknownDriver = errors.New("unknown storage driver")

type StorageConfig struct {
	Driver string
	Path   string
	DSN    string
}

type Config struct {
	File    string
	DataDir string
	Storage StorageConfig
	Debug   bool
}

// DefaultFile is ~/.config/planhub/planhub.yaml unless PLANHUB_CONFIG names
// another file.
func DefaultFile() (string, error) {
	if override := os.Getenv("PLANHUB_CONFIG"); override != "" {
		return homedir.Expand(override)
	}
	dir, err := homedir.Expand(constants.DefaultConfigDir)
	if err != nil {
		return "", fmt.Errorf("failed to resolve config directory: %w", err)
	}
	return filepath.Join(dir, configFileName), nil
}

// Load reads file, creating it with default values when it does not exist.
// An empty file argument means DefaultFile.
func Load(file string) (Config, error) {
	if file == "" {
		var err error
		if file, err = DefaultFile(); err != nil {
			return Config{}, err
		}
	}

	v := viper.New()
	v.SetConfigFile(file)
	v.SetConfigType("yaml")
	v.SetEnvPrefix(constants.EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault(KeyDataDir, constants.DefaultConfigDir)
	v.SetDefault(KeyStorageDriver, constants.DriverDiskv)
	v.SetDefault(KeyStoragePath, "")
	v.SetDefault(KeyStorageDSN, "")
	v.SetDefault(KeyLogDebug, false)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok && !os.IsNotExist(err) {
			return Config{}, fmt.Errorf("error reading config file %s: %w", file, err)
		}
		if err := os.MkdirAll(filepath.Dir(file), 0700); err != nil {
			return Config{}, fmt.Errorf("failed to create config directory: %w", err)
		}
		if err := v.WriteConfigAs(file); err != nil {
			return Config{}, fmt.Errorf("error creating config file: %w", err)
		}
	}

	dataDir, err := homedir.Expand(v.GetString(KeyDataDir))
	if err != nil {
		return Config{}, fmt.Errorf("invalid %s: %w", KeyDataDir, err)
	}
	storagePath, err := homedir.Expand(v.GetString(KeyStoragePath))
	if err != nil {
		return Config{}, fmt.Errorf("invalid %s: %w", KeyStoragePath, err)
	}

	cfg := Config{
		File:    file,
		DataDir: dataDir,
		Storage: StorageConfig{
			Driver: strings.ToLower(strings.TrimSpace(v.GetString(KeyStorageDriver))),
			Path:   storagePath,
			DSN:    v.GetString(KeyStorageDSN),
		},
		Debug: v.GetBool(KeyLogDebug),
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) Validate() error {
	switch c.Storage.Driver {
	case constants.DriverDiskv, constants.DriverSQLite, constants.DriverPostgres, constants.DriverMemory:
	default:
		return fmt.Errorf("%w %q in %s (want diskv, sqlite, postgres or memory)", ErrUnknownDriver, c.Storage.Driver, KeyStorageDriver)
	}
	if c.DataDir == "" {
		return fmt.Errorf("%s must not be empty", KeyDataDir)
	}
	return nil
}

// StoragePath is where the file-backed drivers keep their data.
func (c Config) StoragePath() string {
	if c.Storage.Path != "" {
		return c.Storage.Path
	}
	switch c.Storage.Driver {
	case constants.DriverSQLite:
		return filepath.Join(c.DataDir, constants.DatabaseFileName)
	case constants.DriverDiskv:
		return filepath.Join(c.DataDir, constants.SlotsDirName)
	}
	return ""
}
