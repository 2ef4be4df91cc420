package ipc

import (
	"encoding/json"
	"fmt"
)

// CommandType represents different IPC command types
type CommandType string

const (
	CommandPing       CommandType = "PING"
	CommandReload     CommandType = "RELOAD_CONFIG"
	CommandGetStatus  CommandType = "GET_STATUS"
	CommandGetOutputs CommandType = "GET_OUTPUTS"
	CommandGetWindows CommandType = "GET_WINDOWS"
	CommandMoveWindow CommandType = "MOVE_WINDOW"
)

// Request represents an IPC request from client to server
type Request struct {
	Command CommandType     `json:"command"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

// Response represents an IPC response from server to client
type Response struct {
	Status string          `json:"status"` // "OK" or "ERROR"
	Data   json.RawMessage `json:"data,omitempty"`
	Error  string          `json:"error,omitempty"`
}

// DragInfo describes the drag in progress, if any.
type DragInfo struct {
	Dragging    bool    `json:"dragging"`
	Window      uint32  `json:"window,omitempty"`
	Output      string  `json:"output,omitempty"`
	Slot        int     `json:"slot,omitempty"`
	HeldInPlace bool    `json:"held_in_place,omitempty"`
	Scale       float64 `json:"scale,omitempty"`
}

// StatusData represents the data returned by GET_STATUS
type StatusData struct {
	DaemonRunning bool     `json:"daemon_running"`
	UptimeSeconds int64    `json:"uptime_seconds"`
	PointerOutput string   `json:"pointer_output,omitempty"`
	Drag          DragInfo `json:"drag"`
}

// OutputInfo represents a single connected output
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

// OutputsData represents the data returned by GET_OUTPUTS
type OutputsData struct {
	Outputs []OutputInfo `json:"outputs"`
}

// WindowData represents a single managed window
type WindowData struct {
	ID      uint32 `json:"id"`
	Title   string `json:"title"`
	Class   string `json:"class"`
	Desktop int    `json:"desktop"`
	X       int    `json:"x"`
	Y       int    `json:"y"`
	Width   int    `json:"width"`
	Height  int    `json:"height"`
}

// WindowsData represents the data returned by GET_WINDOWS
type WindowsData struct {
	Windows []WindowData `json:"windows"`
}

// MoveWindowPayload represents the payload for MOVE_WINDOW. A non-empty
// Output targets the center of that output's work area; otherwise X and Y
// give the target point in layout coordinates.
type MoveWindowPayload struct {
	Window uint32 `json:"window"`
	Output string `json:"output,omitempty"`
	X      int    `json:"x"`
	Y      int    `json:"y"`
}

// NewOKResponse creates a successful response with optional data
func NewOKResponse(data interface{}) (*Response, error) {
	var dataBytes json.RawMessage
	if data != nil {
		bytes, err := json.Marshal(data)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal response data: %w", err)
		}
		dataBytes = bytes
	}

	return &Response{
		Status: "OK",
		Data:   dataBytes,
	}, nil
}

// NewErrorResponse creates an error response with a message
func NewErrorResponse(errMsg string) *Response {
	return &Response{
		Status: "ERROR",
		Error:  errMsg,
	}
}

// ParseRequest parses a request from JSON bytes
func ParseRequest(data []byte) (*Request, error) {
	var req Request
	if err := json.Unmarshal(data, &req); err != nil {
		return nil, fmt.Errorf("failed to parse request: %w", err)
	}
	return &req, nil
}

// Marshal converts a response to JSON bytes
func (r *Response) Marshal() ([]byte, error) {
	return json.Marshal(r)
}
