package main

import (
	"flag"
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"

	"github.com/wrensk/windrag/internal/config"
	"github.com/wrensk/windrag/internal/ipc"
	"github.com/wrensk/windrag/internal/tui"
)

func runStatus(args []string) int {
	fs := flag.NewFlagSet("status", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	fs.Usage = func() {
		fmt.Fprintln(os.Stderr, "Usage: windrag status")
		fmt.Fprintln(os.Stderr, "")
		fmt.Fprintln(os.Stderr, "Show daemon and drag status via IPC.")
	}
	if err := fs.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return 0
		}
		return 2
	}
	if fs.NArg() != 0 {
		fmt.Fprintln(os.Stderr, "status takes no arguments")
		fs.Usage()
		return 2
	}

	client := ipc.NewClient()
	status, err := client.GetStatus()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	fmt.Printf("daemon_running: %v\n", status.DaemonRunning)
	fmt.Printf("uptime_seconds: %d\n", status.UptimeSeconds)
	fmt.Printf("pointer_output: %s\n", status.PointerOutput)
	fmt.Printf("dragging:       %v\n", status.Drag.Dragging)
	if status.Drag.Dragging {
		fmt.Printf("drag_window:    0x%08x\n", status.Drag.Window)
		fmt.Printf("drag_output:    %s\n", status.Drag.Output)
		fmt.Printf("drag_slot:      %d\n", status.Drag.Slot)
		fmt.Printf("held_in_place:  %v\n", status.Drag.HeldInPlace)
		fmt.Printf("drag_scale:     %.2f\n", status.Drag.Scale)
	}
	return 0
}

func runOutputs(args []string) int {
	fs := flag.NewFlagSet("outputs", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	fs.Usage = func() {
		fmt.Fprintln(os.Stderr, "Usage: windrag outputs")
		fmt.Fprintln(os.Stderr, "")
		fmt.Fprintln(os.Stderr, "List connected outputs with geometry and work area.")
	}
	if err := fs.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return 0
		}
		return 2
	}
	if fs.NArg() != 0 {
		fmt.Fprintln(os.Stderr, "outputs takes no arguments")
		fs.Usage()
		return 2
	}

	client := ipc.NewClient()
	data, err := client.GetOutputs()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	for _, out := range data.Outputs {
		fmt.Printf("%s: %dx%d+%d+%d work %dx%d+%d+%d\n",
			out.Name,
			out.Width, out.Height, out.X, out.Y,
			out.WorkWidth, out.WorkHeight, out.WorkX, out.WorkY)
	}
	return 0
}

func runWindows(args []string) int {
	fs := flag.NewFlagSet("windows", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	fs.Usage = func() {
		fmt.Fprintln(os.Stderr, "Usage: windrag windows")
		fmt.Fprintln(os.Stderr, "")
		fmt.Fprintln(os.Stderr, "List managed windows with desktop, geometry, class and title.")
	}
	if err := fs.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return 0
		}
		return 2
	}
	if fs.NArg() != 0 {
		fmt.Fprintln(os.Stderr, "windows takes no arguments")
		fs.Usage()
		return 2
	}

	client := ipc.NewClient()
	data, err := client.GetWindows()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	for _, w := range data.Windows {
		fmt.Printf("0x%08x  desktop %d  %dx%d+%d+%d  %s  %s\n",
			w.ID, w.Desktop, w.Width, w.Height, w.X, w.Y, w.Class, w.Title)
	}
	return 0
}

func runMove(args []string) int {
	fs := flag.NewFlagSet("move", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	window := fs.String("window", "", "Window ID, decimal or 0x hex (from 'windrag windows')")
	output := fs.String("output", "", "Output name to center the window on (from 'windrag outputs')")
	x := fs.Int("x", 0, "Target x in root coordinates (with --y)")
	y := fs.Int("y", 0, "Target y in root coordinates (with --x)")
	fs.Usage = func() {
		fmt.Fprintln(os.Stderr, "Usage: windrag move --window <id> (--output <name> | --x <x> --y <y>)")
		fmt.Fprintln(os.Stderr, "")
		fmt.Fprintln(os.Stderr, "Move a window through a scripted drag session in the daemon.")
		fmt.Fprintln(os.Stderr, "With --output the window centers on that output's work area;")
		fmt.Fprintln(os.Stderr, "with --x/--y it is dragged to that point in root coordinates.")
		fmt.Fprintln(os.Stderr, "")
		fmt.Fprintln(os.Stderr, "Flags:")
		fs.PrintDefaults()
	}
	if err := fs.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return 0
		}
		return 2
	}
	if fs.NArg() != 0 {
		fmt.Fprintln(os.Stderr, "move takes no positional arguments")
		fs.Usage()
		return 2
	}
	if *window == "" {
		fmt.Fprintln(os.Stderr, "move requires --window")
		fs.Usage()
		return 2
	}
	id, err := strconv.ParseUint(*window, 0, 32)
	if err != nil {
		fmt.Fprintf(os.Stderr, "invalid window ID %q: %v\n", *window, err)
		return 2
	}

	xSet, ySet := false, false
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "x":
			xSet = true
		case "y":
			ySet = true
		}
	})
	hasOutput := *output != ""
	hasPoint := xSet || ySet
	if hasOutput == hasPoint {
		fmt.Fprintln(os.Stderr, "move requires exactly one target: --output or --x/--y")
		fs.Usage()
		return 2
	}
	if hasPoint && (!xSet || !ySet) {
		fmt.Fprintln(os.Stderr, "move requires both --x and --y for a point target")
		fs.Usage()
		return 2
	}

	client := ipc.NewClient()
	if hasOutput {
		err = client.MoveWindowToOutput(uint32(id), *output)
	} else {
		err = client.MoveWindowToPoint(uint32(id), *x, *y)
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	return 0
}

func runReload(args []string) int {
	fs := flag.NewFlagSet("reload", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	fs.Usage = func() {
		fmt.Fprintln(os.Stderr, "Usage: windrag reload")
		fmt.Fprintln(os.Stderr, "")
		fmt.Fprintln(os.Stderr, "Ask the daemon to reload its configuration from disk.")
	}
	if err := fs.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return 0
		}
		return 2
	}
	if fs.NArg() != 0 {
		fmt.Fprintln(os.Stderr, "reload takes no arguments")
		fs.Usage()
		return 2
	}

	client := ipc.NewClient()
	if err := client.Reload(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	return 0
}

func runConfig(args []string) int {
	if len(args) == 0 || args[0] == "help" || args[0] == "-h" || args[0] == "--help" {
		fmt.Fprintln(os.Stderr, "Usage:")
		fmt.Fprintln(os.Stderr, "  windrag config validate [--path PATH]")
		fmt.Fprintln(os.Stderr, "  windrag config print [--path PATH] [--defaults]")
		return 2
	}

	switch args[0] {
	case "validate":
		fs := flag.NewFlagSet("validate", flag.ContinueOnError)
		fs.SetOutput(os.Stderr)
		path := fs.String("path", "", "Config file path (default: ~/.config/windrag/config.yaml)")
		if err := fs.Parse(args[1:]); err != nil {
			return 2
		}

		var err error
		if *path == "" {
			_, err = config.Load()
		} else {
			_, err = config.LoadFromPath(*path)
		}
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			return 1
		}
		fmt.Println("config: ok")
		return 0

	case "print":
		fs := flag.NewFlagSet("print", flag.ContinueOnError)
		fs.SetOutput(os.Stderr)
		path := fs.String("path", "", "Config file path (default: ~/.config/windrag/config.yaml)")
		printDefaults := fs.Bool("defaults", false, "Print built-in defaults (no files)")
		if err := fs.Parse(args[1:]); err != nil {
			return 2
		}

		var cfg *config.Config
		if *printDefaults {
			cfg = config.DefaultConfig()
		} else {
			var err error
			if *path == "" {
				cfg, err = config.Load()
			} else {
				cfg, err = config.LoadFromPath(*path)
			}
			if err != nil {
				fmt.Fprintln(os.Stderr, err)
				return 1
			}
		}

		data, err := yaml.Marshal(cfg)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			return 1
		}
		fmt.Print(string(data))
		return 0

	default:
		fmt.Fprintf(os.Stderr, "Unknown config subcommand: %s\n", args[0])
		return 2
	}
}

func runMonitor(args []string) int {
	fs := flag.NewFlagSet("monitor", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	path := fs.String("path", "", "Config file path (default: ~/.config/windrag/config.yaml)")
	plain := fs.Bool("plain", false, "Print one status line per second instead of the TUI")

	if len(args) > 0 && (args[0] == "help" || args[0] == "-h" || args[0] == "--help") {
		fmt.Fprintln(os.Stderr, "Usage: windrag monitor [--path PATH] [--plain]")
		fmt.Fprintln(os.Stderr, "")
		fmt.Fprintln(os.Stderr, "Interactive monitor for watching drags and editing settings.")
		fmt.Fprintln(os.Stderr, "Works as an offline settings editor when the daemon is not running.")
		fmt.Fprintln(os.Stderr, "With --plain, prints a status line per second for logging or piping.")
		fmt.Fprintln(os.Stderr, "")
		fmt.Fprintln(os.Stderr, "Keybindings:")
		fmt.Fprintln(os.Stderr, "  tab/shift-tab  Switch tabs")
		fmt.Fprintln(os.Stderr, "  1/2/3          Jump to Status/Outputs/Settings")
		fmt.Fprintln(os.Stderr, "  r              Refresh daemon state")
		fmt.Fprintln(os.Stderr, "  e              Edit settings (on the Settings tab)")
		fmt.Fprintln(os.Stderr, "  q, Ctrl+C      Quit")
		return 0
	}

	if err := fs.Parse(args); err != nil {
		return 2
	}

	if *plain {
		if err := tui.RunPlain(); err != nil {
			fmt.Fprintln(os.Stderr, err)
			return 1
		}
		return 0
	}

	if err := tui.Run(*path); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}

	return 0
}
