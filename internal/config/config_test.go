package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLoadWritesDefaults(t *testing.T) {
	file := filepath.Join(t.TempDir(), "nested", "planhub.yaml")

	cfg, err := Load(file)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Storage.Driver != "diskv" {
		t.Errorf("driver = %q, want diskv", cfg.Storage.Driver)
	}
	if cfg.Debug {
		t.Error("debug should default to false")
	}
	if strings.HasPrefix(cfg.DataDir, "~") {
		t.Errorf("data dir not expanded: %s", cfg.DataDir)
	}

	content, err := os.ReadFile(file)
	if err != nil {
		t.Fatalf("config file was not created: %v", err)
	}
	if !strings.Contains(string(content), "driver: diskv") {
		t.Errorf("written config = %s", content)
	}
}

func TestLoadReadsFile(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "planhub.yaml")
	content := "data_dir: " + dir + "\nstorage:\n  driver: SQLite\nlog:\n  debug: true\n"
	if err := os.WriteFile(file, []byte(content), 0600); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(file)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Storage.Driver != "sqlite" {
		t.Errorf("driver = %q, want sqlite", cfg.Storage.Driver)
	}
	if !cfg.Debug {
		t.Error("debug = false, want true")
	}
	if got, want := cfg.StoragePath(), filepath.Join(dir, "planhub.db"); got != want {
		t.Errorf("StoragePath = %s, want %s", got, want)
	}
}

func TestEnvOverridesFile(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "planhub.yaml")
	if err := os.WriteFile(file, []byte("storage:\n  driver: sqlite\n"), 0600); err != nil {
		t.Fatal(err)
	}
	t.Setenv("PLANHUB_STORAGE_DRIVER", "memory")
	t.Setenv("PLANHUB_DATA_DIR", dir)

	cfg, err := Load(file)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Storage.Driver != "memory" {
		t.Errorf("driver = %q, want memory from env", cfg.Storage.Driver)
	}
	if cfg.DataDir != dir {
		t.Errorf("data dir = %q, want %q", cfg.DataDir, dir)
	}
}

func TestLoadRejectsUnknownDriver(t *testing.T) {
	file := filepath.Join(t.TempDir(), "planhub.yaml")
	if err := os.WriteFile(file, []byte("storage:\n  driver: redis\n"), 0600); err != nil {
		t.Fatal(err)
	}
	_, err := Load(file)
	if !errors.Is(err, ErrUnknownDriver) {
		t.Errorf("Load() error = %v, want ErrUnknownDriver", err)
	}
}

func TestLoadRejectsBrokenYAML(t *testing.T) {
	file := filepath.Join(t.TempDir(), "planhub.yaml")
	if err := os.WriteFile(file, []byte("storage: [unterminated\n"), 0600); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(file); err == nil {
		t.Error("expected error for malformed yaml")
	}
}

func TestStoragePath(t *testing.T) {
	tests := []struct {
		cfg  Config
		want string
	}{
		{Config{DataDir: "/data", Storage: StorageConfig{Driver: "diskv"}}, "/data/slots"},
		{Config{DataDir: "/data", Storage: StorageConfig{Driver: "sqlite"}}, "/data/planhub.db"},
		{Config{DataDir: "/data", Storage: StorageConfig{Driver: "sqlite", Path: "/elsewhere.db"}}, "/elsewhere.db"},
		{Config{DataDir: "/data", Storage: StorageConfig{Driver: "postgres"}}, ""},
	}

	for _, tt := range tests {
		if got := tt.cfg.StoragePath(); got != tt.want {
			t.Errorf("StoragePath(%+v) = %q, want %q", tt.cfg.Storage, got, tt.want)
		}
	}
}

func TestDefaultFileOverride(t *testing.T) {
	t.Setenv("PLANHUB_CONFIG", "/tmp/custom.yaml")
	got, err := DefaultFile()
	if err != nil {
		t.Fatalf("DefaultFile failed: %v", err)
	}
	if got != "/tmp/custom.yaml" {
		t.Errorf("DefaultFile = %q", got)
	}
}
