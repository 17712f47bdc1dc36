package core

// RuntimeConfig contains configuration passed to the game at initialization.
// The game uses this to size its render targets and for deterministic mazes.
type RuntimeConfig struct {
	ScreenW  int   // Screen width in characters
	ScreenH  int   // Screen height in characters
	TickRate int   // Simulation ticks per second (default 60)
	Seed     int64 // RNG seed for deterministic maze generation
}

// DefaultConfig returns a RuntimeConfig with sensible defaults.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		ScreenW:  80,
		ScreenH:  24,
		TickRate: 60,
		Seed:     0, // 0 means use current time in platform layer
	}
}

// Aspect returns the display aspect ratio corrected for terminal cells,
// which are roughly twice as tall as they are wide.
func (c RuntimeConfig) Aspect() float64 {
	if c.ScreenH <= 0 {
		return 1
	}
	return float64(c.ScreenW) / (2 * float64(c.ScreenH))
}

// GameState represents the current state of a session.
// Returned by Game.State() to communicate status to the platform.
type GameState struct {
	Depth      int  // Index of the level receiving input (0 = root)
	MaxDepth   int  // Deepest level reached this session
	Levels     int  // Number of allocated levels
	NearScreen bool // Whether the avatar is close enough to descend
	Paused     bool // Whether physics is suspended
}

// StepResult is returned by Game.Step() after each simulation tick.
type StepResult struct {
	State GameState

	// Transition is set when the cursor moved this tick.
	Transition Transition
}

// Transition describes a change of the current level.
type Transition int

const (
	TransitionNone Transition = iota
	TransitionDescend
	TransitionAscend
	TransitionDenied // Descent requested away from the screen
)

// String returns a human-readable name for the transition.
func (t Transition) String() string {
	switch t {
	case TransitionNone:
		return "none"
	case TransitionDescend:
		return "descend"
	case TransitionAscend:
		return "ascend"
	case TransitionDenied:
		return "denied"
	default:
		return "unknown"
	}
}
