package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/gazelab/internal/registry"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List all available programs",
	Long:  `Shows a list of all registered stimulus programs.`,
	Run:   runList,
}

func runList(_ *cobra.Command, _ []string) {
	games := registry.List()

	if len(games) == 0 {
		fmt.Println("No programs available.")
		return
	}

	fmt.Println("Available programs:")
	fmt.Println()

	maxIDLen := 2 // "ID" header
	for _, g := range games {
		maxIDLen = max(maxIDLen, len(g.ID))
	}

	fmt.Printf("  %-*s  %s\n", maxIDLen, "ID", "Title")
	fmt.Printf("  %-*s  %s\n", maxIDLen, "--", "-----")
	for _, g := range games {
		fmt.Printf("  %-*s  %s\n", maxIDLen, g.ID, g.Title)
		if g.Description != "" {
			fmt.Printf("  %-*s  %s\n", maxIDLen, "", g.Description)
		}
	}

	fmt.Println()
	fmt.Println("Run 'gazelab play <id>' or 'gazelab desktop <id>' to start one.")
}
