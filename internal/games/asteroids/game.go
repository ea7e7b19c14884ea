// Package asteroids implements a wireframe asteroids game built around a
// switchable collision pipeline.
//
// Every tick runs a fixed sequence: input, movement, re-indexing of the
// active spatial index, one collision pass, then the deferred effects of
// that pass (bullet removal, asteroid splitting, recolouring) and finally
// wave management. The broad and narrow collision phases can be swapped at
// runtime from the console.
package asteroids

import (
	"fmt"
	"io"
	"math"
	"math/rand"
	"slices"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-asteroids/internal/collision"
	"github.com/vovakirdan/tui-asteroids/internal/config"
	"github.com/vovakirdan/tui-asteroids/internal/core"
	"github.com/vovakirdan/tui-asteroids/internal/entity"
	"github.com/vovakirdan/tui-asteroids/internal/registry"
	"github.com/vovakirdan/tui-asteroids/internal/spatial"
)

// configPath stores the custom config path set via CLI
var configPath string

// difficultyPreset stores the difficulty preset set via CLI
var difficultyPreset config.DifficultyPreset

// broadOverride and narrowOverride replace the configured collision modes
// when set via CLI.
var broadOverride, narrowOverride string

// defaultLogger is handed to every new game.
var defaultLogger = log.New(io.Discard)

// SetConfigPath sets the custom config path for loading.
func SetConfigPath(path string) {
	configPath = path
}

// SetDifficultyPreset sets the difficulty preset.
func SetDifficultyPreset(preset string) {
	switch preset {
	case "easy":
		difficultyPreset = config.DifficultyEasy
	case "normal":
		difficultyPreset = config.DifficultyNormal
	case "hard":
		difficultyPreset = config.DifficultyHard
	case "fixed":
		difficultyPreset = config.DifficultyFixed
	default:
		difficultyPreset = ""
	}
}

// SetCollisionModes overrides the configured broad and narrow phase names.
// Empty strings keep the configured value.
func SetCollisionModes(broad, narrow string) {
	broadOverride = broad
	narrowOverride = narrow
}

// SetLogger sets the logger used by games created afterwards.
func SetLogger(l *log.Logger) {
	if l == nil {
		l = log.New(io.Discard)
	}
	defaultLogger = l
}

func init() {
	registry.Register("asteroids", func() registry.Game {
		return New()
	})
}

// Game implements the asteroids game logic.
type Game struct {
	runtime    core.RuntimeConfig
	cfg        config.AsteroidsConfig
	difficulty *config.DifficultyManager
	logger     *log.Logger
	rng        *rand.Rand

	field   entity.Field
	spawner *entity.Spawner

	player    *entity.Entity
	asteroids []*entity.Entity
	bullets   []*entity.Entity

	grid    *spatial.Grid[*entity.Entity]
	tree    *spatial.QuadTree[*entity.Entity]
	handler *collision.Handler
	stats   collision.Stats
	err     error // last collision pass failure

	tick          uint64
	score         int
	wave          int
	shootInterval int // ticks between shots
	shootCooldown int
	paused        bool

	drawGrid bool
	showInfo bool
}

// New creates a new asteroids game instance. Call Reset before stepping it.
func New() *Game {
	return &Game{logger: defaultLogger}
}

// ID returns the unique identifier for this game.
func (g *Game) ID() string {
	return "asteroids"
}

// Title returns the display name for this game.
func (g *Game) Title() string {
	return "Asteroids"
}

// SetLogger replaces the game's logger.
func (g *Game) SetLogger(l *log.Logger) {
	if l == nil {
		l = log.New(io.Discard)
	}
	g.logger = l
}

// Reset loads the configuration and starts a new round.
func (g *Game) Reset(runtime core.RuntimeConfig) {
	cfg, err := config.LoadAsteroids(configPath)
	if err != nil {
		g.logger.Warn("using default config", "error", err)
		cfg = config.DefaultAsteroidsConfig()
	}
	if difficultyPreset != "" {
		config.ApplyAsteroidsPreset(&cfg, difficultyPreset)
	}
	if broadOverride != "" {
		cfg.Collision.Broad = broadOverride
	}
	if narrowOverride != "" {
		cfg.Collision.Narrow = narrowOverride
	}
	g.ResetWithConfig(runtime, cfg)
}

// ResetWithConfig starts a new round with an explicit configuration.
// Invalid collision mode names fall back to uniform grid + SAT.
func (g *Game) ResetWithConfig(runtime core.RuntimeConfig, cfg config.AsteroidsConfig) {
	if g.logger == nil {
		g.logger = defaultLogger
	}
	if runtime.TickRate <= 0 {
		runtime.TickRate = core.DefaultTickRate
	}
	g.runtime = runtime
	g.cfg = cfg
	g.difficulty = config.NewDifficultyManager(cfg.Difficulty)
	g.rng = rand.New(rand.NewSource(runtime.Seed))

	g.field = entity.Field{Width: cfg.World.Width, Height: cfg.World.Height}
	g.spawner = entity.NewSpawner(entity.Params{
		Field:            g.field,
		PlayerScale:      cfg.Player.Scale,
		BulletScale:      cfg.Bullet.Scale,
		BulletSpeed:      cfg.Bullet.Speed,
		AsteroidRadii:    cfg.Asteroids.Radii,
		AsteroidVertices: cfg.Asteroids.Vertices,
		AsteroidSpin:     cfg.Asteroids.Rotation,
		AsteroidSpeed:    cfg.Asteroids.SpawnSpeed,
		SplitFactor:      cfg.Asteroids.SplitFactor,
	}, g.rng.Int63())

	cellSize := cfg.World.CellSize
	if minCell := cfg.MinCellSize(); cellSize < minCell {
		g.logger.Warn("grid cell too small, widening", "cell_size", cellSize, "min", minCell)
		cellSize = minCell
	}
	g.grid = spatial.NewGrid[*entity.Entity](g.field.Width, g.field.Height, cellSize)
	// Shapes poke past the field before they wrap; the tree must still hold them.
	root := spatial.RegionOf(g.field.Bounds().Expand(cellSize))
	g.tree = spatial.NewQuadTree[*entity.Entity](root, cfg.World.QuadtreeCapacity)
	g.handler = collision.NewHandler(g, g.grid, g.tree)
	g.handler.SetPlayerCollision(cfg.Collision.Player)
	g.handler.SetAsteroidCollision(cfg.Collision.Asteroid)
	g.handler.SetBulletCollision(cfg.Collision.Bullet)

	broad, err := collision.ParseBroadPhase(cfg.Collision.Broad)
	if err != nil {
		g.logger.Warn("invalid broad phase in config", "error", err)
		broad = collision.UniformGrid
	}
	narrow, err := collision.ParseNarrowPhase(cfg.Collision.Narrow)
	if err != nil {
		g.logger.Warn("invalid narrow phase in config", "error", err)
		narrow = collision.SAT
	}
	g.handler.SetBroadPhase(broad)
	g.handler.SetNarrowPhase(narrow)

	g.stats.Reset()
	g.err = nil
	g.tick = 0
	g.score = 0
	g.wave = 0
	g.paused = false
	g.shootCooldown = 0
	g.shootInterval = max(int(math.Round(cfg.Player.ShootInterval*float64(runtime.TickRate))), 1)

	g.player = g.spawner.Player()
	g.asteroids = nil
	g.bullets = nil
	g.index(g.player)
	g.spawnWave()
}

// Player returns the ship.
func (g *Game) Player() *entity.Entity { return g.player }

// Asteroids returns the live asteroids.
func (g *Game) Asteroids() []*entity.Entity { return g.asteroids }

// Bullets returns the live bullets.
func (g *Game) Bullets() []*entity.Entity { return g.bullets }

// Stats returns the collision statistics since the last reset.
func (g *Game) Stats() collision.Stats { return g.stats }

// Err returns the error of the last failed collision pass, if any.
func (g *Game) Err() error { return g.err }

// Config returns the active configuration.
func (g *Game) Config() config.AsteroidsConfig { return g.cfg }

// BroadPhase returns the active broad-phase mode.
func (g *Game) BroadPhase() collision.BroadPhase { return g.handler.BroadPhase() }

// NarrowPhase returns the active narrow-phase mode.
func (g *Game) NarrowPhase() collision.NarrowPhase { return g.handler.NarrowPhase() }

// SetBroadPhase switches the broad-phase mode and rebuilds the index it
// needs from scratch.
func (g *Game) SetBroadPhase(m collision.BroadPhase) error {
	if !m.Valid() {
		return fmt.Errorf("%w: %d", collision.ErrUnknownBroadPhase, int(m))
	}
	g.grid.Reset()
	g.tree.Clear()
	g.handler.SetBroadPhase(m)
	g.each(g.index)
	g.err = nil
	g.logger.Info("broad phase changed", "mode", m)
	return nil
}

// SetNarrowPhase switches the narrow-phase mode.
func (g *Game) SetNarrowPhase(m collision.NarrowPhase) error {
	if !m.Valid() {
		return fmt.Errorf("%w: %d", collision.ErrUnknownNarrowPhase, int(m))
	}
	g.handler.SetNarrowPhase(m)
	g.err = nil
	g.logger.Info("narrow phase changed", "mode", m)
	return nil
}

// ShowInfo reports whether the collision info panel is visible.
func (g *Game) ShowInfo() bool { return g.showInfo }

// Step advances the game by one tick.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	if in.Has(core.ActionRestart) {
		runtime := g.runtime
		runtime.Seed = g.rng.Int63()
		broad, narrow := g.BroadPhase(), g.NarrowPhase()
		g.ResetWithConfig(runtime, g.cfg)
		if err := g.SetBroadPhase(broad); err != nil {
			g.logger.Warn("restore broad phase failed", "error", err)
		}
		if err := g.SetNarrowPhase(narrow); err != nil {
			g.logger.Warn("restore narrow phase failed", "error", err)
		}
		return core.StepResult{State: g.State()}
	}

	if in.Has(core.ActionPause) {
		g.paused = !g.paused
	}
	if in.Has(core.ActionToggleInfo) {
		g.showInfo = !g.showInfo
	}
	if g.paused {
		return core.StepResult{State: g.State(), Err: g.err}
	}

	g.tick++
	g.handleInput(in)
	g.move()
	if err := g.reindex(); err != nil {
		g.fail(err)
		return core.StepResult{State: g.State(), Err: err}
	}

	for _, a := range g.asteroids {
		a.SetTouching(false)
	}
	data, err := g.handler.HandleCollision()
	if err != nil {
		g.fail(err)
		return core.StepResult{State: g.State(), Err: err}
	}
	g.stats.Record(data)

	g.applyEffects(data)
	if len(g.asteroids) == 0 {
		g.spawnWave()
	}

	return core.StepResult{State: g.State()}
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	return core.GameState{
		Score:  g.score,
		Wave:   g.wave,
		Paused: g.paused,
	}
}

// fail records a collision failure and pauses the game until the mode is fixed.
func (g *Game) fail(err error) {
	g.err = err
	g.paused = true
	g.logger.Error("collision pass failed", "tick", g.tick, "error", err)
}

func (g *Game) handleInput(in core.InputFrame) {
	if in.Has(core.ActionRotateLeft) {
		g.player.Rotate(-g.cfg.Player.Rotation)
	}
	if in.Has(core.ActionRotateRight) {
		g.player.Rotate(g.cfg.Player.Rotation)
	}
	if in.Has(core.ActionThrust) {
		g.player.Thrust(g.cfg.Player.Acceleration, g.cfg.Player.MaxVelocity)
	}

	if g.shootCooldown > 0 {
		g.shootCooldown--
	}
	if in.Has(core.ActionFire) && g.shootCooldown == 0 {
		b := g.spawner.Bullet(g.player)
		g.bullets = append(g.bullets, b)
		g.index(b)
		g.shootCooldown = g.shootInterval
	}
}

func (g *Game) move() {
	g.player.Update()
	g.player.Wrap(g.field)
	for _, a := range g.asteroids {
		a.Update()
		a.Wrap(g.field)
	}
	for _, b := range g.bullets {
		b.Update()
	}
}

// reindex brings the active spatial index up to date with the moved entities.
func (g *Game) reindex() error {
	switch g.handler.BroadPhase() {
	case collision.UniformGrid:
		var firstErr error
		g.each(func(e *entity.Entity) {
			if firstErr != nil {
				return
			}
			if _, err := g.grid.Rebucket(e); err != nil {
				firstErr = fmt.Errorf("rebucket entity %d: %w", e.ID(), err)
			}
		})
		return firstErr
	case collision.QuadTree:
		g.tree.Clear()
		g.each(func(e *entity.Entity) { g.tree.Insert(e) })
	}
	return nil
}

// applyEffects performs the mutations requested by the last collision pass.
func (g *Game) applyEffects(data collision.PhaseData) {
	fx := g.handler.Effects()

	var fragments []*entity.Entity
	for _, req := range fx.Splits {
		a := req.Asteroid
		g.score += g.cfg.Asteroids.Points[a.Size()]
		fragments = append(fragments, g.spawner.Split(a)...)
		g.unindex(a)
	}
	if len(fx.Splits) > 0 {
		g.asteroids = slices.DeleteFunc(g.asteroids, (*entity.Entity).MarkedForSplit)
		g.logger.Debug("asteroids split", "tick", g.tick, "count", len(fx.Splits), "score", g.score)
	}
	for _, f := range fragments {
		g.asteroids = append(g.asteroids, f)
		g.index(f)
	}

	g.bullets = slices.DeleteFunc(g.bullets, func(b *entity.Entity) bool {
		if b.Disabled() || b.OutsideField(g.field) {
			g.unindex(b)
			return true
		}
		return false
	})

	if data.PlayerColliding {
		g.player.SetColor(core.ColorYellow)
	} else {
		g.player.SetColor(core.ColorCyan)
	}
	for _, a := range g.asteroids {
		if a.Touching() {
			a.SetColor(core.ColorMagenta)
		} else {
			a.SetColor(core.ColorWhite)
		}
	}
}

// spawnWave launches the next wave of large asteroids.
func (g *Game) spawnWave() {
	g.wave++
	count := g.difficulty.WaveSize(g.cfg.Asteroids.InitialCount, g.score, int(g.tick))
	speed := g.difficulty.Speed(g.cfg.Asteroids.SpawnSpeed, g.score, int(g.tick))
	g.spawner.SetAsteroidSpeed(speed)
	g.SpawnAsteroids(count)
	g.logger.Info("wave spawned", "wave", g.wave, "asteroids", count, "speed", speed)
}

// SpawnAsteroids adds n large asteroids away from the centre of the field.
func (g *Game) SpawnAsteroids(n int) {
	for range n {
		a := g.spawner.Asteroid()
		g.asteroids = append(g.asteroids, a)
		g.index(a)
	}
}

// each calls fn for the player, every asteroid and every bullet, in that order.
func (g *Game) each(fn func(*entity.Entity)) {
	if g.player != nil {
		fn(g.player)
	}
	for _, a := range g.asteroids {
		fn(a)
	}
	for _, b := range g.bullets {
		fn(b)
	}
}

// index adds a new entity to the index of the active broad phase.
func (g *Game) index(e *entity.Entity) {
	switch g.handler.BroadPhase() {
	case collision.UniformGrid:
		if err := g.grid.Insert(e); err != nil {
			g.logger.Warn("grid insert failed", "entity", e.ID(), "error", err)
		}
	case collision.QuadTree:
		g.tree.Insert(e)
	}
}

// unindex removes an entity from every index that holds it.
func (g *Game) unindex(e *entity.Entity) {
	m := e.Membership()
	if m.InGrid() {
		if err := g.grid.Remove(e); err != nil {
			g.logger.Warn("grid remove failed", "entity", e.ID(), "error", err)
		}
	}
	if m.InTree() {
		if err := g.tree.Remove(e); err != nil {
			g.logger.Warn("quadtree remove failed", "entity", e.ID(), "error", err)
		}
	}
}
