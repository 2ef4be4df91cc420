package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestDefaultConfig_Validates(t *testing.T) {
	cfg := DefaultConfig()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("expected defaults to validate, got %v", err)
	}
	if cfg.Move.ActivateButton != "Mod4-1" {
		t.Fatalf("expected activate_button Mod4-1, got %q", cfg.Move.ActivateButton)
	}
	if cfg.Move.WorkspaceSwitchAfter != -1 {
		t.Fatalf("expected workspace_switch_after -1, got %d", cfg.Move.WorkspaceSwitchAfter)
	}
	if cfg.Drag.ScaleAnimationMS != 300 {
		t.Fatalf("expected scale_animation_ms 300, got %d", cfg.Drag.ScaleAnimationMS)
	}
}

func TestBoolGetters_DefaultTrue(t *testing.T) {
	cfg := DefaultConfig()
	if !cfg.Move.GetEnableSnap() {
		t.Errorf("expected enable_snap to default to true")
	}
	if !cfg.Move.GetEnableSnapOff() {
		t.Errorf("expected enable_snap_off to default to true")
	}
	if !cfg.Drag.GetDimWindow() {
		t.Errorf("expected dim_window to default to true")
	}

	off := false
	cfg.Move.EnableSnapOff = &off
	if cfg.Move.GetEnableSnapOff() {
		t.Errorf("expected explicit false to win over the default")
	}
}

func TestValidate_RejectsBadValues(t *testing.T) {
	tests := []struct {
		name     string
		mutate   func(*Config)
		wantPath string
	}{
		{
			name:     "empty activate button",
			mutate:   func(c *Config) { c.Move.ActivateButton = "  " },
			wantPath: "move.activate_button",
		},
		{
			name:     "negative snap threshold",
			mutate:   func(c *Config) { c.Move.SnapThreshold = -1 },
			wantPath: "move.snap_threshold",
		},
		{
			name:     "negative snap off threshold",
			mutate:   func(c *Config) { c.Move.SnapOffThreshold = -5 },
			wantPath: "move.snap_off_threshold",
		},
		{
			name:     "workspace switch below -1",
			mutate:   func(c *Config) { c.Move.WorkspaceSwitchAfter = -2 },
			wantPath: "move.workspace_switch_after",
		},
		{
			name:     "zero initial scale",
			mutate:   func(c *Config) { c.Drag.InitialScale = 0 },
			wantPath: "drag.initial_scale",
		},
		{
			name:     "overlay fps out of range",
			mutate:   func(c *Config) { c.Drag.OverlayFPS = 1000 },
			wantPath: "drag.overlay_fps",
		},
		{
			name:     "unknown log level",
			mutate:   func(c *Config) { c.Logging.Level = "loud" },
			wantPath: "logging.level",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			if err == nil {
				t.Fatalf("expected validation error for %s", tt.wantPath)
			}
			var verr *ValidationError
			if !errors.As(err, &verr) {
				t.Fatalf("expected *ValidationError, got %T: %v", err, err)
			}
			if verr.Path != tt.wantPath {
				t.Errorf("error path = %q, want %q", verr.Path, tt.wantPath)
			}
		})
	}
}

func TestLoadFromPath_MissingFileUsesDefaults(t *testing.T) {
	cfg, err := LoadFromPath(filepath.Join(t.TempDir(), "nope.yaml"))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Move.ActivateButton != "Mod4-1" {
		t.Fatalf("expected default activate_button, got %q", cfg.Move.ActivateButton)
	}
}

func TestLoadFromPath_PartialFileKeepsDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	data := strings.Join([]string{
		"move:",
		"  snap_off_threshold: 24",
		"  enable_snap: false",
		"drag:",
		"  overlay_fps: 30",
		"",
	}, "\n")
	if err := os.WriteFile(path, []byte(data), 0644); err != nil {
		t.Fatalf("write: %v", err)
	}

	cfg, err := LoadFromPath(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Move.SnapOffThreshold != 24 {
		t.Errorf("snap_off_threshold = %d, want 24", cfg.Move.SnapOffThreshold)
	}
	if cfg.Move.GetEnableSnap() {
		t.Errorf("expected enable_snap false from file")
	}
	if cfg.Drag.OverlayFPS != 30 {
		t.Errorf("overlay_fps = %d, want 30", cfg.Drag.OverlayFPS)
	}
	if cfg.Move.QuarterSnapThreshold != 50 {
		t.Errorf("quarter_snap_threshold = %d, want default 50", cfg.Move.QuarterSnapThreshold)
	}
	if cfg.Drag.ScaleAnimationMS != 300 {
		t.Errorf("scale_animation_ms = %d, want default 300", cfg.Drag.ScaleAnimationMS)
	}
}

func TestLoadFromPath_UnknownKeyIsAnError(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	if err := os.WriteFile(path, []byte("mvoe:\n  snap_threshold: 5\n"), 0644); err != nil {
		t.Fatalf("write: %v", err)
	}

	if _, err := LoadFromPath(path); err == nil {
		t.Fatalf("expected an error for the misspelled key")
	}
}

func TestSaveThenLoad_RoundTrips(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "sub", "config.yaml")

	cfg := DefaultConfig()
	cfg.Move.SnapOffThreshold = 42
	cfg.Display = ":1"
	if err := cfg.Save(path); err != nil {
		t.Fatalf("save: %v", err)
	}

	loaded, err := LoadFromPath(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if loaded.Move.SnapOffThreshold != 42 {
		t.Errorf("snap_off_threshold = %d, want 42", loaded.Move.SnapOffThreshold)
	}
	if loaded.Display != ":1" {
		t.Errorf("display = %q, want :1", loaded.Display)
	}
}
