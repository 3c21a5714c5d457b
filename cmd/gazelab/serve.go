package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/gazelab/internal/platform/tui"
)

var (
	flagSSHAddr     string
	flagHostKey     string
	flagIdleTimeout int
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the SSH server",
	Long: `Start an SSH server that lets participants connect and run programs.

Each SSH connection gets its own session with a program picker menu.
Results and clicks go to the server's database.

Host key handling:
  - If --host-key is provided, uses that key file
  - Otherwise, auto-generates a key at ~/.gazelab/host_key

Examples:
  gazelab serve                           # Listen on :23234 with auto-generated key
  gazelab serve --ssh :2222               # Listen on port 2222
  gazelab serve --host-key ./my_host_key  # Use specific host key
  gazelab serve --db ./scores.db          # Use specific database

Connect with:
  ssh localhost -p 23234`,
	Run: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&flagSSHAddr, "ssh", ":23234", "SSH server address (host:port)")
	serveCmd.Flags().StringVar(&flagHostKey, "host-key", "", "Path to host key file (auto-generated if not specified)")
	serveCmd.Flags().IntVar(&flagIdleTimeout, "idle-timeout", 30, "Idle timeout in minutes before disconnecting")
	addProgramFlags(serveCmd)
}

func runServe(_ *cobra.Command, _ []string) {
	// Sessions create programs from the registry, which reads these configs.
	if _, err := loadDotSweep(); err != nil {
		fatal("invalid dotsweep config", err)
	}
	if _, err := loadSpotDiff(); err != nil {
		logger.Warn("spotdiff levels unavailable", "error", err)
	}

	cfg := tui.DefaultSSHServerConfig()
	cfg.Address = flagSSHAddr
	cfg.HostKeyPath = flagHostKey
	cfg.DBPath = flagDBPath
	cfg.IdleTimeout = time.Duration(flagIdleTimeout) * time.Minute
	if flagFPS > 0 {
		cfg.TickRate = flagFPS
	}

	server, err := tui.NewSSHServer(cfg)
	if err != nil {
		fatal("cannot create server", err)
	}

	fmt.Printf("Starting gazelab SSH server on %s\n", cfg.Address)
	fmt.Println("Press Ctrl+C to stop")

	if err := server.ListenAndServe(); err != nil {
		fatal("server error", err)
	}
}
