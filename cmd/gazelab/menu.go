package main

import (
	"context"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/gazelab/internal/platform/tui"
)

var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Start with a program picker menu",
	Long: `Start in interactive menu mode.

Use arrow keys or w/s to navigate, Enter to start a program.
When a program ends you return to the menu.

Controls:
  Up/Down/w/s  - Navigate menu
  Enter        - Start program
  Tab          - Results and runs history
  Q/Esc        - Quit

Examples:
  gazelab menu
  gazelab menu --levels "./Simple Images"
  gazelab menu --db ./scores.db`,
	Run: runMenu,
}

func init() {
	addProgramFlags(menuCmd)
}

func runMenu(_ *cobra.Command, _ []string) {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM)
	defer stop()

	store := openStore()
	cfg := terminalConfig()

	for {
		menuResult, err := tui.RunMenu(store, cfg)
		if err != nil {
			logger.Error("menu failed", "error", err)
			break
		}
		cfg = menuResult.Config

		if menuResult.Quit {
			break
		}

		if menuResult.WantsHistory {
			goBack, histErr := tui.RunHistory(store, cfg.ScreenW, cfg.ScreenH, "")
			if histErr != nil {
				logger.Error("history failed", "error", histErr)
			}
			if goBack {
				continue
			}
			break
		}

		if menuResult.GameID == "" {
			break
		}

		if err := playProgram(ctx, menuResult.GameID, store, cfg); err != nil {
			logger.Error("run failed", "program", menuResult.GameID, "error", err)
		}
	}

	if store != nil {
		store.Close()
	}
}
