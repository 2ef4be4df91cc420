package mcp

import (
	"context"

	mcpsdk "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/wrensk/windrag/internal/ipc"
)

const (
	ServerName    = "windrag"
	ServerVersion = "0.1.0"
)

// Server is the MCP server exposing the windrag daemon to MCP clients.
// Every tool talks to the daemon over its IPC socket, so the server holds
// no window-system state of its own.
type Server struct {
	mcpServer *mcpsdk.Server
	client    *ipc.Client
}

// NewServer creates a new MCP server backed by the daemon's IPC socket.
func NewServer() *Server {
	s := &Server{
		client: ipc.NewClient(),
	}

	s.mcpServer = mcpsdk.NewServer(
		&mcpsdk.Implementation{
			Name:    ServerName,
			Version: ServerVersion,
		},
		nil,
	)

	s.registerTools()
	return s
}

// Run starts the MCP server on stdio transport, blocking until done.
func (s *Server) Run(ctx context.Context) error {
	return s.mcpServer.Run(ctx, &mcpsdk.StdioTransport{})
}

func (s *Server) registerTools() {
	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "drag_status",
		Description: "Get the windrag daemon's status: uptime, the output under the pointer, and details of any drag in progress (window, output, snap slot, scale).",
	}, s.handleDragStatus)

	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "list_outputs",
		Description: "List all connected outputs with their full geometry and dock-adjusted work area in root coordinates.",
	}, s.handleListOutputs)

	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "list_windows",
		Description: "List managed windows with their ID, title, class, desktop, and geometry. Window IDs feed move_window.",
	}, s.handleListWindows)

	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "move_window",
		Description: "Drag a window to a target through a scripted drag session. Give either an output name (the window centers on its work area) or an x/y point in root coordinates.",
	}, s.handleMoveWindow)

	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "reload_config",
		Description: "Reload the daemon's configuration from disk and apply it to the running move bindings.",
	}, s.handleReloadConfig)
}
