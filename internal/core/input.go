package core

// Action represents a semantic game action, abstracted from physical key presses.
// The core never sees key identities; the platform maps keys to actions.
type Action int

const (
	ActionNone        Action = iota
	ActionForward            // W, Up arrow - held movement intent
	ActionBackward           // S, Down arrow - held movement intent
	ActionStrafeLeft         // A - held movement intent
	ActionStrafeRight        // D - held movement intent
	ActionTurnLeft           // Left arrow - look control
	ActionTurnRight          // Right arrow - look control
	ActionLookUp             // PgUp - look control
	ActionLookDown           // PgDown - look control
	ActionDescend            // E - edge-triggered, step into the screen
	ActionAscend             // Q - edge-triggered, back out one level
	ActionPause              // P - pause/unpause
	ActionToggleView         // V - switch between root and current view
	ActionQuit               // Ctrl+C, Esc - exit session
)

// String returns a human-readable name for the action.
func (a Action) String() string {
	switch a {
	case ActionNone:
		return "None"
	case ActionForward:
		return "Forward"
	case ActionBackward:
		return "Backward"
	case ActionStrafeLeft:
		return "StrafeLeft"
	case ActionStrafeRight:
		return "StrafeRight"
	case ActionTurnLeft:
		return "TurnLeft"
	case ActionTurnRight:
		return "TurnRight"
	case ActionLookUp:
		return "LookUp"
	case ActionLookDown:
		return "LookDown"
	case ActionDescend:
		return "Descend"
	case ActionAscend:
		return "Ascend"
	case ActionPause:
		return "Pause"
	case ActionToggleView:
		return "ToggleView"
	case ActionQuit:
		return "Quit"
	default:
		return "Unknown"
	}
}

// Intent is the per-tick snapshot of the four movement flags.
type Intent struct {
	Forward, Backward, Left, Right bool
}

// Any reports whether any movement flag is set.
func (i Intent) Any() bool {
	return i.Forward || i.Backward || i.Left || i.Right
}

// InputFrame represents the input state during one simulation tick.
type InputFrame struct {
	// Actions maps action types to whether they were triggered this frame.
	// Using a map allows checking multiple actions without order dependency.
	Actions map[Action]bool
}

// NewInputFrame creates an empty input frame.
func NewInputFrame() InputFrame {
	return InputFrame{
		Actions: make(map[Action]bool),
	}
}

// Set marks an action as triggered for this frame.
func (f *InputFrame) Set(a Action) {
	if f.Actions == nil {
		f.Actions = make(map[Action]bool)
	}
	f.Actions[a] = true
}

// Has returns true if the given action was triggered this frame.
func (f InputFrame) Has(a Action) bool {
	if f.Actions == nil {
		return false
	}
	return f.Actions[a]
}

// Intent extracts the movement flags.
func (f InputFrame) Intent() Intent {
	return Intent{
		Forward:  f.Has(ActionForward),
		Backward: f.Has(ActionBackward),
		Left:     f.Has(ActionStrafeLeft),
		Right:    f.Has(ActionStrafeRight),
	}
}

// Clear resets all actions for the next frame.
func (f *InputFrame) Clear() {
	for k := range f.Actions {
		delete(f.Actions, k)
	}
}

// Clone creates a copy of this input frame.
func (f InputFrame) Clone() InputFrame {
	clone := NewInputFrame()
	for k, v := range f.Actions {
		clone.Actions[k] = v
	}
	return clone
}
