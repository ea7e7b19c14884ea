package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-asteroids/internal/collision"
)

var modesCmd = &cobra.Command{
	Use:   "modes",
	Short: "List collision detection modes",
	Long: `Shows the broad and narrow phase names accepted by --broad, --narrow,
the config file and the in-game console.`,
	Run: runModes,
}

func runModes(cmd *cobra.Command, args []string) {
	fmt.Println("Broad phase:")
	for _, m := range collision.BroadPhases() {
		fmt.Printf("  %s\n", m)
	}
	fmt.Println()
	fmt.Println("Narrow phase:")
	for _, m := range collision.NarrowPhases() {
		fmt.Printf("  %s\n", m)
	}
}
