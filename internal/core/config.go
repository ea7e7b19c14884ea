package core

// DefaultTickRate is the simulation rate used when none is configured.
const DefaultTickRate = 60

// RuntimeConfig is what the platform hands a game on Reset.
// The seed drives every random choice, so equal configs give equal runs.
type RuntimeConfig struct {
	ScreenW  int   // terminal columns available to the game
	ScreenH  int   // terminal rows available to the game
	TickRate int   // simulation ticks per second
	Seed     int64 // 0 asks the platform to pick one from the clock
}

// DefaultConfig returns an 80x24 screen at DefaultTickRate with no seed.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		ScreenW:  80,
		ScreenH:  24,
		TickRate: DefaultTickRate,
	}
}

// GameState is the summary the platform shows and logs.
type GameState struct {
	Score  int
	Wave   int  // current asteroid wave, starting at 1
	Paused bool // paused by the player or by a failed collision pass
}

// StepResult is returned by Game.Step after each tick.
type StepResult struct {
	State GameState
	Err   error // set when the tick could not complete
}
