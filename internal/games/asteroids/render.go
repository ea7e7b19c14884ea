package asteroids

import (
	"fmt"
	"math"

	"github.com/vovakirdan/tui-asteroids/internal/collision"
	"github.com/vovakirdan/tui-asteroids/internal/core"
	"github.com/vovakirdan/tui-asteroids/internal/entity"
	"github.com/vovakirdan/tui-asteroids/internal/spatial"
)

// Outline glyphs by entity kind
const (
	PlayerGlyph   = '#'
	AsteroidGlyph = '*'
	BulletGlyph   = '+'
	GridGlyph     = '·'
)

// hudHeight is the number of rows above the play field.
const hudHeight = 1

// Minimum screen size for a readable field
const (
	minScreenW = 20
	minScreenH = 8
)

// viewport maps world coordinates onto the screen rows below the HUD.
type viewport struct {
	sx, sy float64
}

func (g *Game) viewport(dst *core.Screen) viewport {
	return viewport{
		sx: float64(dst.Width()-1) / g.field.Width,
		sy: float64(dst.Height()-hudHeight-1) / g.field.Height,
	}
}

func (v viewport) point(p core.Vec2) (int, int) {
	return int(math.Round(p.X * v.sx)), hudHeight + int(math.Round(p.Y*v.sy))
}

func (v viewport) rect(b core.Bounds) core.Rect {
	x0, y0 := v.point(core.V(b.Left, b.Top))
	x1, y1 := v.point(core.V(b.Right(), b.Bottom()))
	return core.NewRect(x0, y0, x1-x0+1, y1-y0+1)
}

// Render draws the game to the screen.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()

	if dst.Width() < minScreenW || dst.Height() < minScreenH {
		dst.DrawTextCentered(dst.Height()/2, "Too small")
		return
	}

	vp := g.viewport(dst)
	if g.drawGrid {
		g.renderIndex(dst, vp)
	}

	for _, a := range g.asteroids {
		drawPolygon(dst, vp, a, AsteroidGlyph)
	}
	for _, b := range g.bullets {
		drawPolygon(dst, vp, b, BulletGlyph)
	}
	drawPolygon(dst, vp, g.player, PlayerGlyph)

	g.renderHUD(dst)
	if g.showInfo {
		g.renderInfo(dst)
	}

	switch {
	case g.err != nil:
		g.renderOverlay(dst, "Collision error", g.err.Error())
	case g.paused:
		g.renderOverlay(dst, "Paused", "Press P to continue")
	}
}

func drawPolygon(dst *core.Screen, vp viewport, e *entity.Entity, glyph rune) {
	pts := e.Points()
	for i, p := range pts {
		q := pts[(i+1)%len(pts)]
		x0, y0 := vp.point(p)
		x1, y1 := vp.point(q)
		dst.DrawLine(x0, y0, x1, y1, glyph, e.Color())
	}
}

// renderIndex overlays the active spatial index: grid cell borders or
// quadtree node boundaries.
func (g *Game) renderIndex(dst *core.Screen, vp viewport) {
	switch g.handler.BroadPhase() {
	case collision.UniformGrid:
		size := g.grid.CellSize()
		for col := 1; col < g.grid.Cols(); col++ {
			x0, y0 := vp.point(core.V(float64(col)*size, 0))
			x1, y1 := vp.point(core.V(float64(col)*size, g.field.Height))
			dst.DrawLine(x0, y0, x1, y1, GridGlyph, core.ColorDarkGray)
		}
		for row := 1; row < g.grid.Rows(); row++ {
			x0, y0 := vp.point(core.V(0, float64(row)*size))
			x1, y1 := vp.point(core.V(g.field.Width, float64(row)*size))
			dst.DrawLine(x0, y0, x1, y1, GridGlyph, core.ColorDarkGray)
		}
	case collision.QuadTree:
		g.tree.Root().Walk(func(n *spatial.QuadNode[*entity.Entity]) {
			dst.DrawBox(vp.rect(n.Region().Bounds()), core.ColorDarkGray)
		})
	}
}

// renderHUD draws the top status bar.
func (g *Game) renderHUD(dst *core.Screen) {
	hud := fmt.Sprintf(" Asteroids | Score: %d  Wave: %d  Collision: %s/%s",
		g.score, g.wave, g.handler.BroadPhase(), g.handler.NarrowPhase())
	dst.DrawText(0, 0, hud)
}

// InfoLines returns the rows of the collision info panel.
func (g *Game) InfoLines() []string {
	last := g.stats.Last
	return []string{
		fmt.Sprintf("tests:      %d", last.Tests),
		fmt.Sprintf("collisions: %d", last.Collisions),
		fmt.Sprintf("max tests:  %d", g.stats.MaxTests),
		fmt.Sprintf("min tests:  %d", g.stats.MinTests),
		fmt.Sprintf("avg tests:  %.1f", g.stats.AvgTests()),
		fmt.Sprintf("broad:      %s", g.handler.BroadPhase()),
		fmt.Sprintf("narrow:     %s", g.handler.NarrowPhase()),
		fmt.Sprintf("player:     %s", onOff(g.handler.PlayerCollision())),
		fmt.Sprintf("asteroid:   %s", onOff(g.handler.AsteroidCollision())),
		fmt.Sprintf("bullet:     %s", onOff(g.handler.BulletCollision())),
		fmt.Sprintf("asteroids:  %d", len(g.asteroids)),
		fmt.Sprintf("bullets:    %d", len(g.bullets)),
	}
}

// renderInfo draws the collision info panel in the top-left corner.
func (g *Game) renderInfo(dst *core.Screen) {
	lines := g.InfoLines()
	w := 0
	for _, l := range lines {
		w = max(w, len(l))
	}
	box := core.NewRect(0, hudHeight, w+4, len(lines)+2)
	dst.FillRect(box, ' ', core.ColorDefault)
	dst.DrawBox(box, core.ColorGray)
	for i, l := range lines {
		dst.DrawTextColored(2, hudHeight+1+i, l, core.ColorGreen)
	}
}

// renderOverlay draws a centered overlay message.
func (g *Game) renderOverlay(dst *core.Screen, line1, line2 string) {
	boxW := max(len(line1), len(line2)) + 4
	boxW = min(boxW, dst.Width())
	box := core.NewRect((dst.Width()-boxW)/2, (dst.Height()-5)/2, boxW, 5)

	dst.FillRect(box, ' ', core.ColorDefault)
	dst.DrawBox(box, core.ColorWhite)
	dst.DrawTextCentered(box.Y+1, line1)
	dst.DrawTextCentered(box.Y+3, line2)
}
