package mcp

// DragStatusInput is the input for the drag_status tool.
type DragStatusInput struct{}

// DragStatus describes the drag in progress, if any.
type DragStatus struct {
	Dragging    bool    `json:"dragging"`
	Window      uint32  `json:"window,omitempty"`
	Output      string  `json:"output,omitempty"`
	Slot        int     `json:"slot,omitempty"`
	HeldInPlace bool    `json:"held_in_place,omitempty"`
	Scale       float64 `json:"scale,omitempty"`
}

// DragStatusOutput is the output for the drag_status tool.
type DragStatusOutput struct {
	DaemonRunning bool       `json:"daemon_running"`
	UptimeSeconds int64      `json:"uptime_seconds"`
	PointerOutput string     `json:"pointer_output,omitempty"`
	Drag          DragStatus `json:"drag"`
}

// ListOutputsInput is the input for the list_outputs tool.
type ListOutputsInput struct{}

// OutputInfo describes a single connected output.
type OutputInfo struct {
	Name       string `json:"name"`
	X          int    `json:"x"`
	Y          int    `json:"y"`
	Width      int    `json:"width"`
	Height     int    `json:"height"`
	WorkX      int    `json:"work_x"`
	WorkY      int    `json:"work_y"`
	WorkWidth  int    `json:"work_width"`
	WorkHeight int    `json:"work_height"`
}

// ListOutputsOutput is the output for the list_outputs tool.
type ListOutputsOutput struct {
	Outputs []OutputInfo `json:"outputs"`
}

// ListWindowsInput is the input for the list_windows tool.
type ListWindowsInput struct{}

// WindowInfo describes a single managed window.
type WindowInfo struct {
	ID      uint32 `json:"id"`
	Title   string `json:"title"`
	Class   string `json:"class"`
	Desktop int    `json:"desktop"`
	X       int    `json:"x"`
	Y       int    `json:"y"`
	Width   int    `json:"width"`
	Height  int    `json:"height"`
}

// ListWindowsOutput is the output for the list_windows tool.
type ListWindowsOutput struct {
	Windows []WindowInfo `json:"windows"`
}

// MoveWindowInput is the input for the move_window tool. Either Output or
// the X/Y pair names the target.
type MoveWindowInput struct {
	Window uint32 `json:"window" jsonschema:"required,X11 window ID to move (from list_windows)"`
	Output string `json:"output,omitempty" jsonschema:"Output name to center the window on (from list_outputs)"`
	X      int    `json:"x,omitempty" jsonschema:"Target x position in root coordinates, used when output is not set"`
	Y      int    `json:"y,omitempty" jsonschema:"Target y position in root coordinates, used when output is not set"`
}

// MoveWindowOutput is the output for the move_window tool.
type MoveWindowOutput struct {
	Moved bool `json:"moved"`
}

// ReloadConfigInput is the input for the reload_config tool.
type ReloadConfigInput struct{}

// ReloadConfigOutput is the output for the reload_config tool.
type ReloadConfigOutput struct {
	Reloaded bool `json:"reloaded"`
}
