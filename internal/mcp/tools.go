package mcp

import (
	"context"
	"fmt"

	mcpsdk "github.com/modelcontextprotocol/go-sdk/mcp"
)

func (s *Server) handleDragStatus(_ context.Context, _ *mcpsdk.CallToolRequest, args DragStatusInput) (*mcpsdk.CallToolResult, DragStatusOutput, error) {
	status, err := s.client.GetStatus()
	if err != nil {
		return nil, DragStatusOutput{}, err
	}

	out := DragStatusOutput{
		DaemonRunning: status.DaemonRunning,
		UptimeSeconds: status.UptimeSeconds,
		PointerOutput: status.PointerOutput,
		Drag: DragStatus{
			Dragging:    status.Drag.Dragging,
			Window:      status.Drag.Window,
			Output:      status.Drag.Output,
			Slot:        status.Drag.Slot,
			HeldInPlace: status.Drag.HeldInPlace,
			Scale:       status.Drag.Scale,
		},
	}
	return nil, out, nil
}

func (s *Server) handleListOutputs(_ context.Context, _ *mcpsdk.CallToolRequest, args ListOutputsInput) (*mcpsdk.CallToolResult, ListOutputsOutput, error) {
	data, err := s.client.GetOutputs()
	if err != nil {
		return nil, ListOutputsOutput{}, err
	}

	out := ListOutputsOutput{Outputs: make([]OutputInfo, len(data.Outputs))}
	for i, o := range data.Outputs {
		out.Outputs[i] = OutputInfo{
			Name:       o.Name,
			X:          o.X,
			Y:          o.Y,
			Width:      o.Width,
			Height:     o.Height,
			WorkX:      o.WorkX,
			WorkY:      o.WorkY,
			WorkWidth:  o.WorkWidth,
			WorkHeight: o.WorkHeight,
		}
	}
	return nil, out, nil
}

func (s *Server) handleListWindows(_ context.Context, _ *mcpsdk.CallToolRequest, args ListWindowsInput) (*mcpsdk.CallToolResult, ListWindowsOutput, error) {
	data, err := s.client.GetWindows()
	if err != nil {
		return nil, ListWindowsOutput{}, err
	}

	out := ListWindowsOutput{Windows: make([]WindowInfo, len(data.Windows))}
	for i, w := range data.Windows {
		out.Windows[i] = WindowInfo{
			ID:      w.ID,
			Title:   w.Title,
			Class:   w.Class,
			Desktop: w.Desktop,
			X:       w.X,
			Y:       w.Y,
			Width:   w.Width,
			Height:  w.Height,
		}
	}
	return nil, out, nil
}

func (s *Server) handleMoveWindow(_ context.Context, _ *mcpsdk.CallToolRequest, args MoveWindowInput) (*mcpsdk.CallToolResult, MoveWindowOutput, error) {
	if args.Window == 0 {
		return nil, MoveWindowOutput{}, fmt.Errorf("window is required; use list_windows to find window IDs")
	}

	var err error
	if args.Output != "" {
		err = s.client.MoveWindowToOutput(args.Window, args.Output)
	} else {
		err = s.client.MoveWindowToPoint(args.Window, args.X, args.Y)
	}
	if err != nil {
		return nil, MoveWindowOutput{}, err
	}
	return nil, MoveWindowOutput{Moved: true}, nil
}

func (s *Server) handleReloadConfig(_ context.Context, _ *mcpsdk.CallToolRequest, args ReloadConfigInput) (*mcpsdk.CallToolResult, ReloadConfigOutput, error) {
	if err := s.client.Reload(); err != nil {
		return nil, ReloadConfigOutput{}, err
	}
	return nil, ReloadConfigOutput{Reloaded: true}, nil
}
