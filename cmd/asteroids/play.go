package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-asteroids/internal/collision"
	"github.com/vovakirdan/tui-asteroids/internal/config"
	"github.com/vovakirdan/tui-asteroids/internal/core"
	"github.com/vovakirdan/tui-asteroids/internal/games/asteroids"
	"github.com/vovakirdan/tui-asteroids/internal/platform/tui"
	"github.com/vovakirdan/tui-asteroids/internal/registry"
)

// Flags shared by play and bench.
var (
	flagConfig     string
	flagDifficulty string
	flagBroad      string
	flagNarrow     string
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play asteroids",
	Long: `Start the game in the terminal.

Controls:
  Left/A, Right/D  - Rotate
  Up/W             - Thrust
  Space            - Fire
  P                - Pause
  R                - Restart
  I                - Collision info panel
  Tab              - Command console (type 'help')
  Ctrl+S           - Screenshot
  Q/Ctrl+C         - Quit

Difficulty options:
  easy   - Fewer, slower asteroids
  normal - Configured values
  hard   - More, faster asteroids
  fixed  - No progression between waves

Examples:
  asteroids play
  asteroids play --difficulty hard
  asteroids play --broad bruteforce --narrow aabb
  asteroids play --config ./my-asteroids.yaml --log-file asteroids.log`,
	Args: cobra.NoArgs,
	Run:  runPlay,
}

func init() {
	for _, cmd := range []*cobra.Command{playCmd, benchCmd} {
		cmd.Flags().StringVar(&flagConfig, "config", "", "Path to custom game config YAML")
		cmd.Flags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard, fixed")
		cmd.Flags().StringVar(&flagBroad, "broad", "", "Broad phase: bruteforce, uniformgrid, quadtree")
		cmd.Flags().StringVar(&flagNarrow, "narrow", "", "Narrow phase: aabb, sat")
	}
}

// validateGameFlags rejects bad --config, --difficulty, --broad and --narrow
// values before anything starts.
func validateGameFlags() error {
	if flagConfig != "" {
		if _, err := config.LoadAsteroids(flagConfig); err != nil {
			return err
		}
	}
	if _, err := config.ParseDifficultyPreset(flagDifficulty); err != nil {
		return err
	}
	if flagBroad != "" {
		if _, err := collision.ParseBroadPhase(flagBroad); err != nil {
			return err
		}
	}
	if flagNarrow != "" {
		if _, err := collision.ParseNarrowPhase(flagNarrow); err != nil {
			return err
		}
	}
	return nil
}

func runPlay(cmd *cobra.Command, args []string) {
	if err := validateGameFlags(); err != nil {
		fail(err)
	}

	// The alternate screen owns the terminal, so logs only go to a file.
	var w io.Writer = io.Discard
	if flagLogFile != "" {
		f, err := os.OpenFile(flagLogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			fail(fmt.Errorf("open log file: %w", err))
		}
		defer f.Close()
		w = f
	}
	logger, err := newLogger(w, "asteroids")
	if err != nil {
		fail(err)
	}

	width, height := 80, 24 // Defaults
	if tw, th, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		width = tw
		height = th
	}

	cfg := core.RuntimeConfig{
		ScreenW:  width,
		ScreenH:  height,
		TickRate: flagFPS,
		Seed:     flagSeed,
	}

	asteroids.SetConfigPath(flagConfig)
	asteroids.SetDifficultyPreset(flagDifficulty)
	asteroids.SetCollisionModes(flagBroad, flagNarrow)
	asteroids.SetLogger(logger)

	game, err := registry.Create("asteroids")
	if err != nil {
		fail(err)
	}

	if err := tui.Run(game, cfg, logger); err != nil {
		logger.Error("game exited", "error", err)
		fail(err)
	}
}
