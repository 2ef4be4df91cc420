package tui

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/term"

	"github.com/wrensk/windrag/internal/ipc"
)

// RunPlain prints one status line per second without taking over the
// terminal, for logging pipelines or terminals too dumb for the full
// monitor. It stops on interrupt.
func RunPlain() error {
	client := ipc.NewClient()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigCh)

	ticker := time.NewTicker(statusPollInterval)
	defer ticker.Stop()

	for {
		fmt.Println(clipLine(plainStatusLine(client), plainWidth()))

		select {
		case <-sigCh:
			return nil
		case <-ticker.C:
		}
	}
}

// plainWidth returns the terminal width, or 0 when stdout is not a
// terminal and lines should not be clipped.
func plainWidth() int {
	fd := int(os.Stdout.Fd())
	if !term.IsTerminal(fd) {
		return 0
	}
	w, _, err := term.GetSize(fd)
	if err != nil {
		return 0
	}
	return w
}

func clipLine(line string, width int) string {
	if width <= 0 || len(line) <= width {
		return line
	}
	return line[:width]
}

func plainStatusLine(client *ipc.Client) string {
	status, err := client.GetStatus()
	if err != nil {
		return "daemon not running"
	}

	d := status.Drag
	if !d.Dragging {
		return fmt.Sprintf("idle  uptime %s  pointer %s",
			formatUptime(status.UptimeSeconds),
			displayOrDefault(status.PointerOutput, "?"))
	}
	return fmt.Sprintf("dragging 0x%08x  output %s  slot %s  held %v  scale %.2f",
		d.Window,
		displayOrDefault(d.Output, "?"),
		slotName(d.Slot),
		d.HeldInPlace,
		d.Scale)
}
