package ipc

import (
	"encoding/json"
	"strings"
	"testing"
)

func TestParseRequest(t *testing.T) {
	tests := []struct {
		name    string
		data    string
		wantCmd CommandType
		wantErr bool
	}{
		{"ping", `{"command":"PING"}`, CommandPing, false},
		{"status", `{"command":"GET_STATUS"}`, CommandGetStatus, false},
		{"move with payload", `{"command":"MOVE_WINDOW","payload":{"window":42,"x":10,"y":20}}`, CommandMoveWindow, false},
		{"trailing newline", "{\"command\":\"RELOAD_CONFIG\"}\n", CommandReload, false},
		{"not json", `command=PING`, "", true},
		{"empty", ``, "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, err := ParseRequest([]byte(tt.data))
			if tt.wantErr {
				if err == nil {
					t.Fatalf("ParseRequest(%q) succeeded, want error", tt.data)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseRequest(%q) error: %v", tt.data, err)
			}
			if req.Command != tt.wantCmd {
				t.Fatalf("Command = %q, want %q", req.Command, tt.wantCmd)
			}
		})
	}
}

func TestNewOKResponseCarriesData(t *testing.T) {
	resp, err := NewOKResponse(StatusData{DaemonRunning: true, UptimeSeconds: 7})
	if err != nil {
		t.Fatalf("NewOKResponse error: %v", err)
	}
	if resp.Status != "OK" {
		t.Fatalf("Status = %q, want OK", resp.Status)
	}

	var status StatusData
	if err := json.Unmarshal(resp.Data, &status); err != nil {
		t.Fatalf("unmarshal data: %v", err)
	}
	if !status.DaemonRunning || status.UptimeSeconds != 7 {
		t.Fatalf("round-tripped status = %+v", status)
	}
}

func TestNewOKResponseNilData(t *testing.T) {
	resp, err := NewOKResponse(nil)
	if err != nil {
		t.Fatalf("NewOKResponse error: %v", err)
	}

	data, err := resp.Marshal()
	if err != nil {
		t.Fatalf("Marshal error: %v", err)
	}
	if strings.Contains(string(data), `"data"`) {
		t.Fatalf("nil data serialized: %s", data)
	}
}

func TestNewErrorResponse(t *testing.T) {
	resp := NewErrorResponse("no such window")
	if resp.Status != "ERROR" {
		t.Fatalf("Status = %q, want ERROR", resp.Status)
	}
	if resp.Error != "no such window" {
		t.Fatalf("Error = %q", resp.Error)
	}

	data, err := resp.Marshal()
	if err != nil {
		t.Fatalf("Marshal error: %v", err)
	}
	var parsed Response
	if err := json.Unmarshal(data, &parsed); err != nil {
		t.Fatalf("unmarshal response: %v", err)
	}
	if parsed.Status != "ERROR" || parsed.Error != "no such window" {
		t.Fatalf("round-tripped response = %+v", parsed)
	}
}

func TestMoveWindowPayloadOmitsEmptyOutput(t *testing.T) {
	data, err := json.Marshal(MoveWindowPayload{Window: 42, X: 100, Y: 200})
	if err != nil {
		t.Fatalf("marshal payload: %v", err)
	}
	if strings.Contains(string(data), "output") {
		t.Fatalf("empty output serialized: %s", data)
	}

	data, err = json.Marshal(MoveWindowPayload{Window: 42, Output: "DP-1"})
	if err != nil {
		t.Fatalf("marshal payload: %v", err)
	}
	var parsed MoveWindowPayload
	if err := json.Unmarshal(data, &parsed); err != nil {
		t.Fatalf("unmarshal payload: %v", err)
	}
	if parsed.Window != 42 || parsed.Output != "DP-1" {
		t.Fatalf("round-tripped payload = %+v", parsed)
	}
}
