package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-asteroids/internal/registry"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List all available games",
	Long:  `Shows a list of all registered games.`,
	Run:   runList,
}

func runList(cmd *cobra.Command, args []string) {
	games := registry.List()

	if len(games) == 0 {
		fmt.Println("No games available.")
		return
	}

	fmt.Println("Available games:")
	fmt.Println()

	maxIDLen := 2 // "ID" header
	for _, g := range games {
		maxIDLen = max(maxIDLen, len(g.ID))
	}

	fmt.Printf("  %-*s  %-10s  %s\n", maxIDLen, "ID", "Title", "Console")
	fmt.Printf("  %-*s  %-10s  %s\n", maxIDLen, "--", "-----", "-------")
	for _, g := range games {
		console := "no"
		if g.Console {
			console = "yes"
		}
		fmt.Printf("  %-*s  %-10s  %s\n", maxIDLen, g.ID, g.Title, console)
	}

	fmt.Println()
	fmt.Println("Run 'asteroids play' to play.")
}
