package asteroids

import "github.com/vovakirdan/tui-asteroids/internal/core"

// Autopilot returns a fixed, repeatable input for a tick: the ship turns
// steadily, fires continuously and gives short bursts of thrust. Headless
// runs use it so every mode combination sees the same inputs.
func Autopilot(tick uint64) core.InputFrame {
	in := core.NewInputFrame()
	in.Set(core.ActionFire)
	if tick%240 < 180 {
		in.Set(core.ActionRotateRight)
	} else {
		in.Set(core.ActionRotateLeft)
	}
	if tick%300 < 15 {
		in.Set(core.ActionThrust)
	}
	return in
}
