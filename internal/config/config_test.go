package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	if cfg.Graphics.Width != 1280 || cfg.Graphics.Height != 800 {
		t.Errorf("unexpected default window size: %dx%d", cfg.Graphics.Width, cfg.Graphics.Height)
	}
	if cfg.Viewer.Shape != "cube" {
		t.Errorf("default shape = %q, want cube", cfg.Viewer.Shape)
	}
	if cfg.Viewer.SphereSectors != 12 || cfg.Viewer.SphereRings != 8 {
		t.Errorf("unexpected sphere tessellation: %d sectors, %d rings",
			cfg.Viewer.SphereSectors, cfg.Viewer.SphereRings)
	}
	if cfg.Viewer.SnapshotDir != "snapshots" {
		t.Errorf("default snapshot dir = %q", cfg.Viewer.SnapshotDir)
	}
	if cfg.Logging.Level != "info" {
		t.Errorf("default log level = %q, want info", cfg.Logging.Level)
	}
}

func TestLoadFromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")

	content := `
graphics:
  width: 1920
viewer:
  shape: sphere
  sphere_sectors: 24
logging:
  level: debug
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	cfg := Default()
	if err := loadFromFile(cfg, path); err != nil {
		t.Fatalf("loadFromFile failed: %v", err)
	}

	if cfg.Graphics.Width != 1920 {
		t.Errorf("width = %d, want 1920", cfg.Graphics.Width)
	}
	// Height absent from the file keeps the default.
	if cfg.Graphics.Height != 800 {
		t.Errorf("height = %d, want default 800", cfg.Graphics.Height)
	}
	if cfg.Viewer.Shape != "sphere" {
		t.Errorf("shape = %q, want sphere", cfg.Viewer.Shape)
	}
	if cfg.Viewer.SphereSectors != 24 {
		t.Errorf("sphere sectors = %d, want 24", cfg.Viewer.SphereSectors)
	}
	if cfg.Viewer.SphereRings != 8 {
		t.Errorf("sphere rings = %d, want default 8", cfg.Viewer.SphereRings)
	}
	if cfg.Logging.Level != "debug" {
		t.Errorf("log level = %q, want debug", cfg.Logging.Level)
	}
}

func TestLoadFromFileInvalidYAML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")

	if err := os.WriteFile(path, []byte("graphics: [not a map"), 0644); err != nil {
		t.Fatal(err)
	}

	cfg := Default()
	if err := loadFromFile(cfg, path); err == nil {
		t.Error("expected error for invalid YAML")
	}
}

func TestLoadFromFileMissing(t *testing.T) {
	cfg := Default()
	if err := loadFromFile(cfg, filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestSaveRoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "nested", "config.yaml")

	cfg := Default()
	cfg.Viewer.Shape = "cone"
	cfg.Graphics.Width = 1600

	if err := cfg.SaveTo(path); err != nil {
		t.Fatalf("SaveTo failed: %v", err)
	}

	loaded := Default()
	if err := loadFromFile(loaded, path); err != nil {
		t.Fatalf("loadFromFile failed: %v", err)
	}

	if loaded.Viewer.Shape != "cone" {
		t.Errorf("shape = %q, want cone", loaded.Viewer.Shape)
	}
	if loaded.Graphics.Width != 1600 {
		t.Errorf("width = %d, want 1600", loaded.Graphics.Width)
	}
}

func TestConfigDir(t *testing.T) {
	dir := ConfigDir()
	if dir == "" {
		t.Fatal("ConfigDir returned empty string")
	}
	if !filepath.IsAbs(dir) {
		t.Errorf("ConfigDir not absolute: %s", dir)
	}
	lower := strings.ToLower(dir)
	if !strings.Contains(lower, "meshanatomy") {
		t.Errorf("ConfigDir missing app name: %s", dir)
	}
}

func TestApplyFlags(t *testing.T) {
	// Flag values are package globals; restore them after the test.
	origDebug, origShape := *flagDebug, *flagShape
	origWidth, origHeight := *flagWidth, *flagHeight
	defer func() {
		*flagDebug, *flagShape = origDebug, origShape
		*flagWidth, *flagHeight = origWidth, origHeight
	}()

	*flagDebug = true
	*flagShape = "cylinder"
	*flagWidth = 1024
	*flagHeight = 0

	cfg := Default()
	applyFlags(cfg)

	if cfg.Logging.Level != "debug" {
		t.Errorf("log level = %q, want debug", cfg.Logging.Level)
	}
	if cfg.Viewer.Shape != "cylinder" {
		t.Errorf("shape = %q, want cylinder", cfg.Viewer.Shape)
	}
	if cfg.Graphics.Width != 1024 {
		t.Errorf("width = %d, want 1024", cfg.Graphics.Width)
	}
	if cfg.Graphics.Height != 800 {
		t.Errorf("height = %d, want default 800", cfg.Graphics.Height)
	}
}
