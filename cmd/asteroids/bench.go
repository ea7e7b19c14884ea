package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"runtime"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/vovakirdan/tui-asteroids/internal/collision"
	"github.com/vovakirdan/tui-asteroids/internal/config"
	"github.com/vovakirdan/tui-asteroids/internal/core"
	"github.com/vovakirdan/tui-asteroids/internal/games/asteroids"
)

var flagFrames int

var benchCmd = &cobra.Command{
	Use:   "bench",
	Short: "Compare collision modes on a scripted run",
	Long: `Runs the game headless once per broad x narrow combination with the same
seed and the same scripted input, then prints the number of tests and
collisions each combination performed.

--broad and --narrow restrict the run to the given modes.

Examples:
  asteroids bench
  asteroids bench --frames 3600 --seed 42
  asteroids bench --narrow sat --difficulty hard`,
	Args: cobra.NoArgs,
	Run:  runBench,
}

func init() {
	benchCmd.Flags().IntVar(&flagFrames, "frames", 1800, "Frames to simulate per combination")
}

// combo is one broad x narrow pairing.
type combo struct {
	Broad  collision.BroadPhase
	Narrow collision.NarrowPhase
}

// benchResult is the outcome of one headless run.
type benchResult struct {
	combo
	Stats   collision.Stats
	Score   int
	Elapsed time.Duration
}

func runBench(cmd *cobra.Command, args []string) {
	if err := validateGameFlags(); err != nil {
		fail(err)
	}
	if flagFrames <= 0 {
		fail(fmt.Errorf("--frames must be positive, got %d", flagFrames))
	}

	var w io.Writer = os.Stderr
	if flagLogFile != "" {
		f, err := os.OpenFile(flagLogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			fail(fmt.Errorf("open log file: %w", err))
		}
		defer f.Close()
		w = f
	}
	logger, err := newLogger(w, "bench")
	if err != nil {
		fail(err)
	}

	cfg, err := config.LoadAsteroids(flagConfig)
	if err != nil {
		fail(err)
	}
	preset, _ := config.ParseDifficultyPreset(flagDifficulty)
	if preset != "" {
		config.ApplyAsteroidsPreset(&cfg, preset)
	}

	seed := flagSeed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	combos, err := selectCombos(flagBroad, flagNarrow)
	if err != nil {
		fail(err)
	}

	runtimeCfg := core.RuntimeConfig{ScreenW: 80, ScreenH: 24, TickRate: flagFPS, Seed: seed}
	logger.Info("bench started", "combinations", len(combos), "frames", flagFrames, "seed", seed)

	results, err := runBenchmarks(cmd.Context(), combos, cfg, runtimeCfg, flagFrames, logger)
	if err != nil {
		fail(err)
	}

	fmt.Printf("seed %d, %d frames\n", seed, flagFrames)
	fmt.Println(renderBenchTable(results))
}

// selectCombos returns every broad x narrow pairing, narrowed to the given
// mode names when they are not empty.
func selectCombos(broad, narrow string) ([]combo, error) {
	broads := collision.BroadPhases()
	if broad != "" {
		m, err := collision.ParseBroadPhase(broad)
		if err != nil {
			return nil, err
		}
		broads = []collision.BroadPhase{m}
	}
	narrows := collision.NarrowPhases()
	if narrow != "" {
		m, err := collision.ParseNarrowPhase(narrow)
		if err != nil {
			return nil, err
		}
		narrows = []collision.NarrowPhase{m}
	}

	combos := make([]combo, 0, len(broads)*len(narrows))
	for _, b := range broads {
		for _, n := range narrows {
			combos = append(combos, combo{Broad: b, Narrow: n})
		}
	}
	return combos, nil
}

// runBenchmarks simulates frames ticks of a separate game per combination in
// parallel. Results keep the order of combos.
func runBenchmarks(ctx context.Context, combos []combo, cfg config.AsteroidsConfig, rt core.RuntimeConfig, frames int, logger *log.Logger) ([]benchResult, error) {
	results := make([]benchResult, len(combos))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.NumCPU())

	for i, c := range combos {
		g.Go(func() error {
			runLogger := logger.With("broad", c.Broad, "narrow", c.Narrow)

			game := asteroids.New()
			game.SetLogger(runLogger)
			game.ResetWithConfig(rt, cfg)
			if err := game.SetBroadPhase(c.Broad); err != nil {
				return err
			}
			if err := game.SetNarrowPhase(c.Narrow); err != nil {
				return err
			}

			start := time.Now()
			for tick := range frames {
				if tick%256 == 0 {
					if err := ctx.Err(); err != nil {
						return err
					}
				}
				game.Step(asteroids.Autopilot(uint64(tick)))
				if err := game.Err(); err != nil {
					return fmt.Errorf("%s/%s: %w", c.Broad, c.Narrow, err)
				}
			}
			elapsed := time.Since(start)

			results[i] = benchResult{
				combo:   c,
				Stats:   game.Stats(),
				Score:   game.State().Score,
				Elapsed: elapsed,
			}
			runLogger.Info("bench finished", "tests", results[i].Stats.TotalTests, "elapsed", elapsed)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

var (
	benchHeaderStyle = lipgloss.NewStyle().Bold(true).Padding(0, 1)
	benchCellStyle   = lipgloss.NewStyle().Padding(0, 1)
	benchNumStyle    = benchCellStyle.Align(lipgloss.Right)
)

// renderBenchTable formats results as a bordered table.
func renderBenchTable(results []benchResult) string {
	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers("BROAD", "NARROW", "TESTS", "AVG", "MIN", "MAX", "COLLISIONS", "AVG COL", "SCORE", "TIME").
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == table.HeaderRow:
				return benchHeaderStyle
			case col < 2:
				return benchCellStyle
			default:
				return benchNumStyle
			}
		})

	for _, r := range results {
		t.Row(
			r.Broad.String(),
			r.Narrow.String(),
			fmt.Sprint(r.Stats.TotalTests),
			fmt.Sprintf("%.1f", r.Stats.AvgTests()),
			fmt.Sprint(r.Stats.MinTests),
			fmt.Sprint(r.Stats.MaxTests),
			fmt.Sprint(r.Stats.TotalCollisions),
			fmt.Sprintf("%.2f", r.Stats.AvgCollisions()),
			fmt.Sprint(r.Score),
			r.Elapsed.Round(time.Microsecond).String(),
		)
	}
	return t.Render()
}
