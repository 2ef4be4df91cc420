package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// LogLevel controls daemon log verbosity.
type LogLevel string

const (
	LogLevelDebug LogLevel = "debug"
	LogLevelInfo  LogLevel = "info"
	LogLevelWarn  LogLevel = "warn"
	LogLevelError LogLevel = "error"
)

// MoveConfig holds the interactive move bindings and snapping behavior.
type MoveConfig struct {
	// ActivateButton starts a drag on the window under the pointer, in
	// xgbutil mousebind syntax, e.g. "Mod4-1" for super + left button.
	ActivateButton string `yaml:"activate_button"`

	// ActivateKey starts a drag of the focused window, centering it
	// under the pointer; a click drops it. Empty disables the binding.
	ActivateKey string `yaml:"activate_key,omitempty"`

	EnableSnap           *bool `yaml:"enable_snap"`            // Snap to screen edges on release.
	SnapThreshold        int   `yaml:"snap_threshold"`         // Pixels from an edge to snap to halves.
	QuarterSnapThreshold int   `yaml:"quarter_snap_threshold"` // Pixels from a corner to snap to quarters.

	EnableSnapOff    *bool `yaml:"enable_snap_off"`    // Tiled windows stay put until dragged past the threshold.
	SnapOffThreshold int   `yaml:"snap_off_threshold"` // Pixels of pointer travel before a tiled window detaches.

	// WorkspaceSwitchAfter switches desktops when the pointer rests on a
	// screen edge for this many milliseconds. -1 disables.
	WorkspaceSwitchAfter int `yaml:"workspace_switch_after"`
}

// DragConfig holds the presentation options for an in-flight drag.
type DragConfig struct {
	InitialScale     float64 `yaml:"initial_scale"`      // Size multiplier applied when a drag starts.
	ScaleAnimationMS int     `yaml:"scale_animation_ms"` // Duration of scale changes.
	OverlayFPS       int     `yaml:"overlay_fps"`        // Overlay repaint rate while dragging.
	DimWindow        *bool   `yaml:"dim_window"`         // Dim the real window while its overlay is shown.
}

// LoggingConfig holds daemon log settings.
type LoggingConfig struct {
	Level LogLevel `yaml:"level"`
}

// Config is the root windrag configuration.
type Config struct {
	Move    MoveConfig    `yaml:"move"`
	Drag    DragConfig    `yaml:"drag"`
	Logging LoggingConfig `yaml:"logging"`

	// Display overrides $DISPLAY when set.
	Display string `yaml:"display,omitempty"`
}

// DefaultConfig returns the configuration used when no file exists.
func DefaultConfig() *Config {
	return &Config{
		Move: MoveConfig{
			ActivateButton:       "Mod4-1",
			SnapThreshold:        10,
			QuarterSnapThreshold: 50,
			SnapOffThreshold:     10,
			WorkspaceSwitchAfter: -1,
		},
		Drag: DragConfig{
			InitialScale:     1.0,
			ScaleAnimationMS: 300,
			OverlayFPS:       60,
		},
		Logging: LoggingConfig{
			Level: LogLevelInfo,
		},
	}
}

// GetEnableSnap returns whether edge snapping is enabled (default true).
func (m *MoveConfig) GetEnableSnap() bool {
	if m.EnableSnap == nil {
		return true
	}
	return *m.EnableSnap
}

// GetEnableSnapOff returns whether snap-off is enabled (default true).
func (m *MoveConfig) GetEnableSnapOff() bool {
	if m.EnableSnapOff == nil {
		return true
	}
	return *m.EnableSnapOff
}

// GetDimWindow returns whether the dragged window is dimmed (default true).
func (d *DragConfig) GetDimWindow() bool {
	if d.DimWindow == nil {
		return true
	}
	return *d.DimWindow
}

// ValidationError describes a single invalid configuration value.
type ValidationError struct {
	Path string
	Err  error
}

func (e *ValidationError) Error() string {
	if e == nil {
		return "<nil>"
	}
	return fmt.Sprintf("%s: %v", e.Path, e.Err)
}

func (e *ValidationError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// Validate checks the configuration for errors. Suspicious but workable
// values produce warnings on stderr instead.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.Move.ActivateButton) == "" {
		return &ValidationError{Path: "move.activate_button", Err: fmt.Errorf("must not be empty")}
	}
	if c.Move.SnapThreshold < 0 {
		return &ValidationError{Path: "move.snap_threshold", Err: fmt.Errorf("must be >= 0, got %d", c.Move.SnapThreshold)}
	}
	if c.Move.QuarterSnapThreshold < 0 {
		return &ValidationError{Path: "move.quarter_snap_threshold", Err: fmt.Errorf("must be >= 0, got %d", c.Move.QuarterSnapThreshold)}
	}
	if c.Move.SnapOffThreshold < 0 {
		return &ValidationError{Path: "move.snap_off_threshold", Err: fmt.Errorf("must be >= 0, got %d", c.Move.SnapOffThreshold)}
	}
	if c.Move.WorkspaceSwitchAfter < -1 {
		return &ValidationError{Path: "move.workspace_switch_after", Err: fmt.Errorf("must be -1 or a timeout in ms, got %d", c.Move.WorkspaceSwitchAfter)}
	}
	if c.Drag.InitialScale <= 0 {
		return &ValidationError{Path: "drag.initial_scale", Err: fmt.Errorf("must be > 0, got %g", c.Drag.InitialScale)}
	}
	if c.Drag.ScaleAnimationMS < 0 {
		return &ValidationError{Path: "drag.scale_animation_ms", Err: fmt.Errorf("must be >= 0, got %d", c.Drag.ScaleAnimationMS)}
	}
	if c.Drag.OverlayFPS < 1 || c.Drag.OverlayFPS > 240 {
		return &ValidationError{Path: "drag.overlay_fps", Err: fmt.Errorf("must be between 1 and 240, got %d", c.Drag.OverlayFPS)}
	}
	switch c.Logging.Level {
	case "", LogLevelDebug, LogLevelInfo, LogLevelWarn, LogLevelError:
	default:
		return &ValidationError{Path: "logging.level", Err: fmt.Errorf("unknown level %q", c.Logging.Level)}
	}

	if c.Drag.InitialScale > 1.0 {
		fmt.Fprintf(os.Stderr, "Warning: drag.initial_scale %g grows windows while dragging\n", c.Drag.InitialScale)
	}
	if c.Move.WorkspaceSwitchAfter == 0 {
		fmt.Fprintf(os.Stderr, "Warning: move.workspace_switch_after 0 switches desktops the instant the pointer touches an edge\n")
	}
	return nil
}

// Save writes the configuration to the given path, creating parent
// directories as needed.
func (c *Config) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	return nil
}
