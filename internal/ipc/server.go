package ipc

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net"
	"os"
	"sync"
	"time"

	"github.com/wrensk/windrag/internal/config"
	"github.com/wrensk/windrag/internal/geometry"
	"github.com/wrensk/windrag/internal/move"
	"github.com/wrensk/windrag/internal/runtimepath"
	"github.com/wrensk/windrag/internal/x11"
)

// Server handles IPC requests from clients
type Server struct {
	socketPath   string
	listener     net.Listener
	cfg          *config.Config
	cfgMu        sync.RWMutex
	conn         *x11.Connection
	plugin       *move.Plugin
	startTime    time.Time
	reloadChan   chan struct{}
	shuttingDown bool
	shutdownMu   sync.Mutex
}

// NewServer creates a new IPC server
func NewServer(cfg *config.Config, conn *x11.Connection, plugin *move.Plugin, reloadChan chan struct{}) (*Server, error) {
	socketPath, err := runtimepath.SocketPath()
	if err != nil {
		return nil, fmt.Errorf("failed to resolve IPC socket path: %w", err)
	}

	// Remove existing socket if present
	os.Remove(socketPath)

	return &Server{
		socketPath: socketPath,
		cfg:        cfg,
		conn:       conn,
		plugin:     plugin,
		startTime:  time.Now(),
		reloadChan: reloadChan,
	}, nil
}

// Start begins listening for IPC connections
func (s *Server) Start() error {
	listener, err := net.Listen("unix", s.socketPath)
	if err != nil {
		return fmt.Errorf("failed to create IPC socket: %w", err)
	}
	s.listener = listener

	// Set socket permissions
	if err := os.Chmod(s.socketPath, 0600); err != nil {
		return fmt.Errorf("failed to set socket permissions: %w", err)
	}

	log.Printf("IPC server listening on %s", s.socketPath)

	// Accept connections
	go s.acceptLoop()

	return nil
}

// acceptLoop accepts incoming connections
func (s *Server) acceptLoop() {
	for {
		conn, err := s.listener.Accept()
		if err != nil {
			s.shutdownMu.Lock()
			if s.shuttingDown {
				s.shutdownMu.Unlock()
				return
			}
			s.shutdownMu.Unlock()
			log.Printf("IPC accept error: %v", err)
			continue
		}

		go s.handleConnection(conn)
	}
}

// handleConnection handles a single IPC connection
func (s *Server) handleConnection(conn net.Conn) {
	defer conn.Close()

	reader := bufio.NewReader(conn)

	// Read the request (expect JSON on a single line)
	data, err := reader.ReadBytes('\n')
	if err != nil && err != io.EOF {
		log.Printf("IPC read error: %v", err)
		return
	}

	// Parse request
	req, err := ParseRequest(data)
	if err != nil {
		s.sendError(conn, fmt.Sprintf("Invalid request: %v", err))
		return
	}

	// Handle command
	resp := s.handleCommand(req)

	// Send response
	respData, err := resp.Marshal()
	if err != nil {
		log.Printf("Failed to marshal response: %v", err)
		return
	}

	respData = append(respData, '\n')
	if _, err := conn.Write(respData); err != nil {
		log.Printf("Failed to send response: %v", err)
	}
}

// handleCommand processes an IPC command and returns a response
func (s *Server) handleCommand(req *Request) *Response {
	switch req.Command {
	case CommandPing:
		resp, _ := NewOKResponse(nil)
		return resp
	case CommandReload:
		return s.handleReload()
	case CommandGetStatus:
		return s.handleGetStatus()
	case CommandGetOutputs:
		return s.handleGetOutputs()
	case CommandGetWindows:
		return s.handleGetWindows()
	case CommandMoveWindow:
		return s.handleMoveWindow(req.Payload)
	default:
		return NewErrorResponse(fmt.Sprintf("Unknown command: %s", req.Command))
	}
}

// handleReload reloads the configuration
func (s *Server) handleReload() *Response {
	log.Println("IPC: Received RELOAD_CONFIG command")

	// Load new config
	newCfg, err := config.Load()
	if err != nil {
		return NewErrorResponse(fmt.Sprintf("Failed to reload config: %v", err))
	}

	// Update config atomically
	s.cfgMu.Lock()
	s.cfg = newCfg
	s.cfgMu.Unlock()

	// Notify the main daemon via channel (non-blocking)
	select {
	case s.reloadChan <- struct{}{}:
	default:
	}

	log.Println("IPC: Config reloaded successfully")

	resp, _ := NewOKResponse(nil)
	return resp
}

// handleGetStatus returns current daemon status
func (s *Server) handleGetStatus() *Response {
	st := s.plugin.Status()
	status := StatusData{
		DaemonRunning: true,
		UptimeSeconds: int64(time.Since(s.startTime).Seconds()),
		PointerOutput: s.pointerOutput(),
		Drag: DragInfo{
			Dragging:    st.Dragging,
			Window:      st.Window,
			Output:      st.Output,
			Slot:        st.Slot,
			HeldInPlace: st.HeldInPlace,
			Scale:       st.Scale,
		},
	}

	resp, _ := NewOKResponse(status)
	return resp
}

// pointerOutput names the output under the pointer. It queries the X
// server directly so IPC goroutines stay off the event loop's state.
func (s *Server) pointerOutput() string {
	pos, err := s.conn.QueryPointer()
	if err != nil {
		return ""
	}
	monitors, err := s.conn.Monitors()
	if err != nil {
		return ""
	}
	for _, m := range monitors {
		if m.Geometry.Contains(pos) {
			return m.Name
		}
	}
	return ""
}

// handleGetOutputs returns information about all connected outputs
func (s *Server) handleGetOutputs() *Response {
	monitors, err := s.conn.Monitors()
	if err != nil {
		return NewErrorResponse(fmt.Sprintf("Failed to get outputs: %v", err))
	}

	infos := make([]OutputInfo, len(monitors))
	for i, m := range monitors {
		infos[i] = OutputInfo{
			Name:       m.Name,
			X:          m.Geometry.X,
			Y:          m.Geometry.Y,
			Width:      m.Geometry.Width,
			Height:     m.Geometry.Height,
			WorkX:      m.WorkArea.X,
			WorkY:      m.WorkArea.Y,
			WorkWidth:  m.WorkArea.Width,
			WorkHeight: m.WorkArea.Height,
		}
	}

	resp, _ := NewOKResponse(OutputsData{Outputs: infos})
	return resp
}

// handleGetWindows returns the managed windows
func (s *Server) handleGetWindows() *Response {
	windows, err := s.conn.ListWindows()
	if err != nil {
		return NewErrorResponse(fmt.Sprintf("Failed to list windows: %v", err))
	}

	infos := make([]WindowData, len(windows))
	for i, w := range windows {
		infos[i] = WindowData{
			ID:      uint32(w.ID),
			Title:   w.Title,
			Class:   w.Class,
			Desktop: w.Desktop,
			X:       w.Geometry.X,
			Y:       w.Geometry.Y,
			Width:   w.Geometry.Width,
			Height:  w.Geometry.Height,
		}
	}

	resp, _ := NewOKResponse(WindowsData{Windows: infos})
	return resp
}

// handleMoveWindow drags a window to the requested target through a full
// scripted core session.
func (s *Server) handleMoveWindow(payload json.RawMessage) *Response {
	var req MoveWindowPayload
	if err := json.Unmarshal(payload, &req); err != nil {
		return NewErrorResponse(fmt.Sprintf("Invalid move payload: %v", err))
	}
	if req.Window == 0 {
		return NewErrorResponse("window is required")
	}

	target := geometry.Point{X: req.X, Y: req.Y}
	if req.Output != "" {
		monitors, err := s.conn.Monitors()
		if err != nil {
			return NewErrorResponse(fmt.Sprintf("Failed to get outputs: %v", err))
		}
		found := false
		for _, m := range monitors {
			if m.Name == req.Output {
				target = m.WorkArea.Center()
				found = true
				break
			}
		}
		if !found {
			return NewErrorResponse(fmt.Sprintf("Unknown output: %s", req.Output))
		}
	}

	if err := s.plugin.ScriptedMove(req.Window, target); err != nil {
		return NewErrorResponse(fmt.Sprintf("Failed to move window: %v", err))
	}

	resp, _ := NewOKResponse(nil)
	return resp
}

// sendError sends an error response
func (s *Server) sendError(conn net.Conn, errMsg string) {
	resp := NewErrorResponse(errMsg)
	data, _ := resp.Marshal()
	data = append(data, '\n')
	conn.Write(data)
}

// Stop gracefully shuts down the IPC server
func (s *Server) Stop() {
	s.shutdownMu.Lock()
	s.shuttingDown = true
	s.shutdownMu.Unlock()

	if s.listener != nil {
		s.listener.Close()
	}
	os.Remove(s.socketPath)
}

// GetConfig returns the current config (thread-safe)
func (s *Server) GetConfig() *config.Config {
	s.cfgMu.RLock()
	defer s.cfgMu.RUnlock()
	return s.cfg
}

// UpdateConfig updates the config (thread-safe)
func (s *Server) UpdateConfig(cfg *config.Config) {
	s.cfgMu.Lock()
	defer s.cfgMu.Unlock()
	s.cfg = cfg
}
