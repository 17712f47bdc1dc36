package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/nestmaze/internal/core"
)

// GameKeyMap defines the key bindings used while a maze is running.
type GameKeyMap struct {
	Forward     key.Binding
	Backward    key.Binding
	StrafeLeft  key.Binding
	StrafeRight key.Binding
	TurnLeft    key.Binding
	TurnRight   key.Binding
	LookUp      key.Binding
	LookDown    key.Binding
	Descend     key.Binding
	Ascend      key.Binding
	Pause       key.Binding
	ToggleView  key.Binding
	Screenshot  key.Binding
	Back        key.Binding
	Quit        key.Binding
}

// ShortHelp returns key bindings for the footer.
func (k GameKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Forward, k.TurnLeft, k.TurnRight, k.Descend, k.Ascend, k.Pause, k.Back}
}

// FullHelp returns key bindings for the full help view.
func (k GameKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Forward, k.Backward, k.StrafeLeft, k.StrafeRight},
		{k.TurnLeft, k.TurnRight, k.LookUp, k.LookDown},
		{k.Descend, k.Ascend, k.Pause, k.ToggleView, k.Screenshot, k.Back, k.Quit},
	}
}

// DefaultGameKeyMap returns the default bindings.
func DefaultGameKeyMap() GameKeyMap {
	return GameKeyMap{
		Forward: key.NewBinding(
			key.WithKeys("w", "up"),
			key.WithHelp("w/↑", "forward"),
		),
		Backward: key.NewBinding(
			key.WithKeys("s", "down"),
			key.WithHelp("s/↓", "back"),
		),
		StrafeLeft: key.NewBinding(
			key.WithKeys("a"),
			key.WithHelp("a", "strafe left"),
		),
		StrafeRight: key.NewBinding(
			key.WithKeys("d"),
			key.WithHelp("d", "strafe right"),
		),
		TurnLeft: key.NewBinding(
			key.WithKeys("left"),
			key.WithHelp("←", "turn left"),
		),
		TurnRight: key.NewBinding(
			key.WithKeys("right"),
			key.WithHelp("→", "turn right"),
		),
		LookUp: key.NewBinding(
			key.WithKeys("pgup"),
			key.WithHelp("pgup", "look up"),
		),
		LookDown: key.NewBinding(
			key.WithKeys("pgdown"),
			key.WithHelp("pgdn", "look down"),
		),
		Descend: key.NewBinding(
			key.WithKeys("e", "enter"),
			key.WithHelp("e", "step inside"),
		),
		Ascend: key.NewBinding(
			key.WithKeys("q", "backspace"),
			key.WithHelp("q", "step out"),
		),
		Pause: key.NewBinding(
			key.WithKeys("p", " "),
			key.WithHelp("p", "pause"),
		),
		ToggleView: key.NewBinding(
			key.WithKeys("v"),
			key.WithHelp("v", "switch view"),
		),
		Screenshot: key.NewBinding(
			key.WithKeys("ctrl+s"),
			key.WithHelp("ctrl+s", "screenshot"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "menu"),
		),
		Quit: key.NewBinding(
			key.WithKeys("ctrl+c"),
			key.WithHelp("ctrl+c", "quit"),
		),
	}
}

// held maps the bindings of continuous actions. Terminals report no key
// releases, so these go through the KeyLatch.
func (k GameKeyMap) held() []struct {
	binding key.Binding
	action  core.Action
} {
	return []struct {
		binding key.Binding
		action  core.Action
	}{
		{k.Forward, core.ActionForward},
		{k.Backward, core.ActionBackward},
		{k.StrafeLeft, core.ActionStrafeLeft},
		{k.StrafeRight, core.ActionStrafeRight},
		{k.TurnLeft, core.ActionTurnLeft},
		{k.TurnRight, core.ActionTurnRight},
		{k.LookUp, core.ActionLookUp},
		{k.LookDown, core.ActionLookDown},
	}
}

// MapKey translates a key message to an action.
// held is true for continuous actions that should be latched.
func (k GameKeyMap) MapKey(msg tea.KeyMsg) (action core.Action, held bool) {
	for _, h := range k.held() {
		if key.Matches(msg, h.binding) {
			return h.action, true
		}
	}

	switch {
	case key.Matches(msg, k.Descend):
		return core.ActionDescend, false
	case key.Matches(msg, k.Ascend):
		return core.ActionAscend, false
	case key.Matches(msg, k.Pause):
		return core.ActionPause, false
	case key.Matches(msg, k.ToggleView):
		return core.ActionToggleView, false
	case key.Matches(msg, k.Quit):
		return core.ActionQuit, false
	}

	return core.ActionNone, false
}

// opposite pairs cancel each other so a quick direction change is not
// blended with the latched previous key.
var opposite = map[core.Action]core.Action{
	core.ActionForward:     core.ActionBackward,
	core.ActionBackward:    core.ActionForward,
	core.ActionStrafeLeft:  core.ActionStrafeRight,
	core.ActionStrafeRight: core.ActionStrafeLeft,
	core.ActionTurnLeft:    core.ActionTurnRight,
	core.ActionTurnRight:   core.ActionTurnLeft,
	core.ActionLookUp:      core.ActionLookDown,
	core.ActionLookDown:    core.ActionLookUp,
}

// KeyLatch keeps continuous actions active for a number of ticks after each
// key press, bridging the gap between terminal key repeats.
type KeyLatch struct {
	window    int
	remaining map[core.Action]int
}

// NewKeyLatch creates a latch holding each press for window ticks.
func NewKeyLatch(window int) *KeyLatch {
	if window < 1 {
		window = 1
	}
	return &KeyLatch{
		window:    window,
		remaining: make(map[core.Action]int),
	}
}

// Press (re)starts the hold window of an action.
func (l *KeyLatch) Press(a core.Action) {
	if o, ok := opposite[a]; ok {
		delete(l.remaining, o)
	}
	l.remaining[a] = l.window
}

// Apply sets every latched action on the frame and advances the latch by
// one tick.
func (l *KeyLatch) Apply(frame *core.InputFrame) {
	for a, n := range l.remaining {
		frame.Set(a)
		if n <= 1 {
			delete(l.remaining, a)
		} else {
			l.remaining[a] = n - 1
		}
	}
}

// Release drops every latched action, e.g. when focus is lost.
func (l *KeyLatch) Release() {
	clear(l.remaining)
}

// Held reports whether an action is currently latched.
func (l *KeyLatch) Held(a core.Action) bool {
	return l.remaining[a] > 0
}

// MenuKeyMap defines the key bindings of the variant picker.
type MenuKeyMap struct {
	Up      key.Binding
	Down    key.Binding
	Select  key.Binding
	Records key.Binding
	Quit    key.Binding
}

// ShortHelp returns key bindings for the footer.
func (k MenuKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Select, k.Records, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k MenuKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp()}
}

// DefaultMenuKeyMap returns the default menu bindings.
func DefaultMenuKeyMap() MenuKeyMap {
	return MenuKeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k", "w"),
			key.WithHelp("↑/k", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j", "s"),
			key.WithHelp("↓/j", "down"),
		),
		Select: key.NewBinding(
			key.WithKeys("enter", " "),
			key.WithHelp("enter", "play"),
		),
		Records: key.NewBinding(
			key.WithKeys("tab", "r"),
			key.WithHelp("tab", "records"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "esc", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}
