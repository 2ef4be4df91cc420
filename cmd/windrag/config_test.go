package main

import (
	"os"
	"path/filepath"
	"testing"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestRunConfigValidateAcceptsGoodConfig(t *testing.T) {
	path := writeConfig(t, `
move:
  activate_button: Mod4-1
  snap_threshold: 20
drag:
  initial_scale: 0.8
`)

	if rc := runConfig([]string{"validate", "--path", path}); rc != 0 {
		t.Fatalf("validate rc=%d, want 0", rc)
	}
}

func TestRunConfigValidateRejectsBadValues(t *testing.T) {
	path := writeConfig(t, `
move:
  snap_threshold: -5
`)

	if rc := runConfig([]string{"validate", "--path", path}); rc != 1 {
		t.Fatalf("validate rc=%d, want 1", rc)
	}
}

func TestRunConfigValidateRejectsUnknownKeys(t *testing.T) {
	path := writeConfig(t, `
move:
  snap_treshold: 20
`)

	if rc := runConfig([]string{"validate", "--path", path}); rc != 1 {
		t.Fatalf("validate rc=%d, want 1", rc)
	}
}

func TestRunConfigPrintDefaults(t *testing.T) {
	if rc := runConfig([]string{"print", "--defaults"}); rc != 0 {
		t.Fatalf("print rc=%d, want 0", rc)
	}
}

func TestRunMoveArgumentParsing(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want int
	}{
		{"no args", []string{}, 2},
		{"no target", []string{"--window", "0x1234"}, 2},
		{"both targets", []string{"--window", "0x1234", "--output", "DP-1", "--x", "10", "--y", "20"}, 2},
		{"bad window", []string{"--window", "notawindow", "--output", "DP-1"}, 2},
		{"x without y", []string{"--window", "0x1234", "--x", "10"}, 2},
		{"positional leftover", []string{"--window", "0x1234", "extra"}, 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if rc := runMove(tt.args); rc != tt.want {
				t.Fatalf("runMove(%v) rc=%d, want %d", tt.args, rc, tt.want)
			}
		})
	}
}
