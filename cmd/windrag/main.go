package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/wrensk/windrag/internal/config"
	"github.com/wrensk/windrag/internal/daemon"
	"github.com/wrensk/windrag/internal/drag"
	"github.com/wrensk/windrag/internal/ipc"
	"github.com/wrensk/windrag/internal/move"
	"github.com/wrensk/windrag/internal/x11"
)

const version = "0.1.0"

func main() {
	if len(os.Args) < 2 {
		printMainUsage(os.Stdout)
		os.Exit(0)
	}

	switch os.Args[1] {
	case "daemon":
		os.Exit(runDaemon(os.Args[2:]))
	case "status":
		os.Exit(runStatus(os.Args[2:]))
	case "outputs":
		os.Exit(runOutputs(os.Args[2:]))
	case "windows":
		os.Exit(runWindows(os.Args[2:]))
	case "move":
		os.Exit(runMove(os.Args[2:]))
	case "reload":
		os.Exit(runReload(os.Args[2:]))
	case "config":
		os.Exit(runConfig(os.Args[2:]))
	case "monitor":
		os.Exit(runMonitor(os.Args[2:]))
	case "mcp":
		os.Exit(runMCP(os.Args[2:]))
	case "version", "-v", "--version":
		fmt.Printf("windrag %s\n", version)
		os.Exit(0)
	case "help", "-h", "--help":
		printMainUsage(os.Stdout)
		os.Exit(0)
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", os.Args[1])
		printMainUsage(os.Stderr)
		os.Exit(2)
	}
}

func printMainUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: windrag <command> [options]")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "Commands:")
	fmt.Fprintln(w, "  daemon              Start the windrag daemon (foreground)")
	fmt.Fprintln(w, "  status              Show daemon and drag status")
	fmt.Fprintln(w, "  outputs             List connected outputs")
	fmt.Fprintln(w, "  windows             List managed windows")
	fmt.Fprintln(w, "  move                Move a window via the daemon")
	fmt.Fprintln(w, "  reload              Reload daemon configuration")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "  config validate     Validate configuration")
	fmt.Fprintln(w, "  config print        Print configuration")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "  monitor             Open the interactive monitor")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "  mcp serve           Start MCP server (stdio transport)")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "  version             Print version")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "Run 'windrag <command> --help' for command-specific options.")
}

func slogLevel(l config.LogLevel) slog.Level {
	switch l {
	case config.LogLevelDebug:
		return slog.LevelDebug
	case config.LogLevelWarn:
		return slog.LevelWarn
	case config.LogLevelError:
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func runDaemon(args []string) int {
	fs := flag.NewFlagSet("daemon", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	debug := fs.Bool("debug", false, "Log at debug level regardless of config")
	fs.Usage = func() {
		fmt.Fprintln(os.Stderr, "Usage: windrag daemon [--debug]")
		fmt.Fprintln(os.Stderr, "")
		fmt.Fprintln(os.Stderr, "Run the windrag daemon in the foreground.")
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
		fmt.Fprintln(os.Stderr, "daemon takes no arguments")
		fs.Usage()
		return 2
	}

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	log.Printf("Configuration loaded (activate button: %s)", cfg.Move.ActivateButton)

	level := slogLevel(cfg.Logging.Level)
	if *debug {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	}))

	// Connect to display server
	conn, err := x11.NewConnection(cfg.Display)
	if err != nil {
		log.Fatalf("Failed to connect to display: %v", err)
	}
	defer conn.Close()

	log.Println("windrag daemon started successfully")

	// Track outputs and managed windows
	screen, err := x11.NewScreen(conn, logger, cfg.Drag.GetDimWindow())
	if err != nil {
		log.Fatalf("Failed to initialize screen state: %v", err)
	}
	log.Printf("Screen initialized with %d outputs", len(screen.Outputs()))

	// Create the shared drag core
	core := drag.New(screen, nil, logger)
	core.SetScaleDuration(time.Duration(cfg.Drag.ScaleAnimationMS) * time.Millisecond)

	// Create and bind the move plugin
	plugin := move.New(conn, screen, core, cfg, logger)
	if err := plugin.Bind(); err != nil {
		log.Fatalf("Failed to bind activation button: %v", err)
	}

	// Create config reload channel
	reloadChan := make(chan struct{}, 1)

	// Start IPC server
	ipcServer, err := ipc.NewServer(cfg, conn, plugin, reloadChan)
	if err != nil {
		log.Fatalf("Failed to create IPC server: %v", err)
	}
	if err := ipcServer.Start(); err != nil {
		log.Fatalf("Failed to start IPC server: %v", err)
	}
	defer ipcServer.Stop()

	// Set up the maintenance reconciler, sharing the plugin's event lock
	reconciler := daemon.NewReconciler(daemon.ReconcilerConfig{
		Interval: 10 * time.Second,
		Logger:   logger,
	}, screen, plugin.Locker())

	// Run an immediate reconciliation pass on startup to pick up output
	// changes from a previous daemon lifecycle.
	reconciler.ReconcileNow()

	// Start reconciler in background
	reconcilerCtx, reconcilerCancel := context.WithCancel(context.Background())
	defer reconcilerCancel()
	go reconciler.Run(reconcilerCtx)

	// Setup signal handlers
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM, syscall.SIGHUP)

	// Handle signals and config reloads
	go func() {
		for {
			select {
			case sig := <-sigCh:
				switch sig {
				case syscall.SIGHUP:
					log.Println("Received SIGHUP, reloading config...")
					newCfg, err := config.Load()
					if err != nil {
						log.Printf("Config reload failed: %v", err)
						continue
					}

					// Update config in IPC server
					ipcServer.UpdateConfig(newCfg)

					// Update plugin config, rebinding if needed
					if err := plugin.Reload(newCfg); err != nil {
						log.Printf("Config reload: rebind failed: %v", err)
					}

					log.Println("Config reloaded successfully")

				case os.Interrupt, syscall.SIGTERM:
					log.Println("Shutting down windrag daemon...")
					reconcilerCancel()
					plugin.Shutdown()
					ipcServer.Stop()
					os.Exit(0)
				}

			case <-reloadChan:
				// Config was reloaded via IPC, update components
				newCfg := ipcServer.GetConfig()
				if err := plugin.Reload(newCfg); err != nil {
					log.Printf("Config reload: rebind failed: %v", err)
				}
			}
		}
	}()

	// Start event loop (blocking)
	log.Println("Entering event loop...")
	conn.EventLoop()
	return 0
}
