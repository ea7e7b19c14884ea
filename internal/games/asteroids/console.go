package asteroids

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/vovakirdan/tui-asteroids/internal/collision"
)

var (
	// ErrUnknownCommand is returned for a console line that names no command.
	ErrUnknownCommand = errors.New("unknown command")
	// ErrBadArgument is returned when a command's arguments cannot be used.
	ErrBadArgument = errors.New("bad argument")
)

// maxSpawn caps a single spawn command.
const maxSpawn = 100

const consoleHelp = `set col-broad bruteforce|uniformgrid|quadtree
set col-narrow aabb|sat
toggle col-player|col-asteroid|col-bullet|draw-grid|col-info
spawn asteroid <n>
reset-stats
help`

// Exec runs one console command and returns the text to show for it.
// An empty line is a no-op.
func (g *Game) Exec(line string) (string, error) {
	fields := strings.Fields(strings.ToLower(line))
	if len(fields) == 0 {
		return "", nil
	}

	out, err := g.exec(fields)
	if err != nil {
		g.logger.Warn("console command failed", "command", line, "error", err)
		return "", err
	}
	g.logger.Info("console command", "command", line)
	return out, nil
}

func (g *Game) exec(fields []string) (string, error) {
	cmd, args := fields[0], fields[1:]

	switch cmd {
	case "set":
		if len(args) != 2 {
			return "", fmt.Errorf("%w: usage: set col-broad|col-narrow <mode>", ErrBadArgument)
		}
		return g.set(args[0], args[1])
	case "toggle":
		if len(args) != 1 {
			return "", fmt.Errorf("%w: usage: toggle <switch>", ErrBadArgument)
		}
		return g.toggle(args[0])
	case "spawn":
		if len(args) != 2 || args[0] != "asteroid" {
			return "", fmt.Errorf("%w: usage: spawn asteroid <n>", ErrBadArgument)
		}
		n, err := strconv.Atoi(args[1])
		if err != nil || n < 1 || n > maxSpawn {
			return "", fmt.Errorf("%w: asteroid count must be 1..%d, got %q", ErrBadArgument, maxSpawn, args[1])
		}
		g.SpawnAsteroids(n)
		return fmt.Sprintf("spawned %d asteroids", n), nil
	case "reset-stats":
		g.stats.Reset()
		return "stats reset", nil
	case "help":
		return consoleHelp, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownCommand, cmd)
	}
}

func (g *Game) set(key, value string) (string, error) {
	switch key {
	case "col-broad":
		m, err := collision.ParseBroadPhase(value)
		if err != nil {
			return "", fmt.Errorf("%w: %w", ErrBadArgument, err)
		}
		if err := g.SetBroadPhase(m); err != nil {
			return "", err
		}
		return fmt.Sprintf("col-broad = %s", m), nil
	case "col-narrow":
		m, err := collision.ParseNarrowPhase(value)
		if err != nil {
			return "", fmt.Errorf("%w: %w", ErrBadArgument, err)
		}
		if err := g.SetNarrowPhase(m); err != nil {
			return "", err
		}
		return fmt.Sprintf("col-narrow = %s", m), nil
	default:
		return "", fmt.Errorf("%w: %q cannot be set", ErrBadArgument, key)
	}
}

func (g *Game) toggle(name string) (string, error) {
	var v bool
	switch name {
	case "col-player":
		v = !g.handler.PlayerCollision()
		g.handler.SetPlayerCollision(v)
	case "col-asteroid":
		v = !g.handler.AsteroidCollision()
		g.handler.SetAsteroidCollision(v)
	case "col-bullet":
		v = !g.handler.BulletCollision()
		g.handler.SetBulletCollision(v)
	case "draw-grid":
		g.drawGrid = !g.drawGrid
		v = g.drawGrid
	case "col-info":
		g.showInfo = !g.showInfo
		v = g.showInfo
	default:
		return "", fmt.Errorf("%w: unknown switch %q", ErrBadArgument, name)
	}
	return fmt.Sprintf("%s = %s", name, onOff(v)), nil
}

func onOff(v bool) string {
	if v {
		return "on"
	}
	return "off"
}
