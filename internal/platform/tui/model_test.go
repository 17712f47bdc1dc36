package tui

import (
	"path/filepath"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/nestmaze/internal/config"
	"github.com/vovakirdan/nestmaze/internal/core"
	"github.com/vovakirdan/nestmaze/internal/game"
	"github.com/vovakirdan/nestmaze/internal/storage"
)

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestMapKey(t *testing.T) {
	keys := DefaultGameKeyMap()

	tests := []struct {
		name   string
		msg    tea.KeyMsg
		action core.Action
		held   bool
	}{
		{"w", runes("w"), core.ActionForward, true},
		{"up", tea.KeyMsg{Type: tea.KeyUp}, core.ActionForward, true},
		{"s", runes("s"), core.ActionBackward, true},
		{"a", runes("a"), core.ActionStrafeLeft, true},
		{"d", runes("d"), core.ActionStrafeRight, true},
		{"left", tea.KeyMsg{Type: tea.KeyLeft}, core.ActionTurnLeft, true},
		{"right", tea.KeyMsg{Type: tea.KeyRight}, core.ActionTurnRight, true},
		{"pgup", tea.KeyMsg{Type: tea.KeyPgUp}, core.ActionLookUp, true},
		{"pgdown", tea.KeyMsg{Type: tea.KeyPgDown}, core.ActionLookDown, true},
		{"e", runes("e"), core.ActionDescend, false},
		{"q", runes("q"), core.ActionAscend, false},
		{"p", runes("p"), core.ActionPause, false},
		{"space", tea.KeyMsg{Type: tea.KeySpace}, core.ActionPause, false},
		{"v", runes("v"), core.ActionToggleView, false},
		{"ctrl+c", tea.KeyMsg{Type: tea.KeyCtrlC}, core.ActionQuit, false},
		{"unbound", runes("z"), core.ActionNone, false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			action, held := keys.MapKey(tc.msg)
			if action != tc.action || held != tc.held {
				t.Errorf("MapKey(%q) = %v/%v, expected %v/%v", tc.msg.String(), action, held, tc.action, tc.held)
			}
		})
	}
}

func TestKeyLatch(t *testing.T) {
	l := NewKeyLatch(3)
	l.Press(core.ActionForward)

	for i := 0; i < 3; i++ {
		f := core.NewInputFrame()
		l.Apply(&f)
		if !f.Has(core.ActionForward) {
			t.Fatalf("tick %d: forward should still be held", i)
		}
	}

	f := core.NewInputFrame()
	l.Apply(&f)
	if f.Has(core.ActionForward) {
		t.Error("forward should expire after the window")
	}

	l.Press(core.ActionForward)
	l.Press(core.ActionBackward)
	if l.Held(core.ActionForward) || !l.Held(core.ActionBackward) {
		t.Error("opposite press should cancel the latched direction")
	}

	l.Press(core.ActionTurnLeft)
	l.Release()
	if l.Held(core.ActionBackward) || l.Held(core.ActionTurnLeft) {
		t.Error("Release should drop everything")
	}

	if NewKeyLatch(0).window != 1 {
		t.Error("window should be at least one tick")
	}
}

func TestLatchTicks(t *testing.T) {
	if got := latchTicks(60); got != 10 {
		t.Errorf("latchTicks(60) = %d", got)
	}
	if got := latchTicks(30); got != 5 {
		t.Errorf("latchTicks(30) = %d", got)
	}
}

var testRuntime = core.RuntimeConfig{ScreenW: 40, ScreenH: 13, TickRate: 30, Seed: 7}

func newTestModel(t *testing.T, store *storage.Store, opts ...ModelOption) (Model, *game.Controller) {
	t.Helper()
	cfg := config.DefaultMazeConfig()
	cfg.Growth = config.GrowthConfig{Enabled: false, BaseSize: 2}
	cfg.Stack.Lookahead = 0
	cfg.Screen.TargetWidth = 16
	cfg.Screen.TargetHeight = 6

	g := game.New(game.VariantFree, game.WithConfig(cfg))
	m := NewModel(g, store, testRuntime, opts...)
	m.Init()
	if err := g.Err(); err != nil {
		t.Fatalf("Reset failed: %v", err)
	}
	return m, g
}

func update(t *testing.T, m Model, msg tea.Msg) Model {
	t.Helper()
	next, _ := m.Update(msg)
	nm, ok := next.(Model)
	if !ok {
		t.Fatalf("Update returned %T", next)
	}
	return nm
}

func TestModelDescendAscend(t *testing.T) {
	m, g := newTestModel(t, nil)

	m = update(t, m, runes("e"))
	m = update(t, m, TickMsg(time.Now()))
	if m.State().Depth != 1 || m.State().Levels != 2 {
		t.Fatalf("after e: %+v", m.State())
	}

	// Edge actions fire once
	m = update(t, m, TickMsg(time.Now()))
	if g.Stats().Descents != 1 {
		t.Errorf("Descents = %d", g.Stats().Descents)
	}

	m = update(t, m, runes("q"))
	m = update(t, m, TickMsg(time.Now()))
	if m.State().Depth != 0 {
		t.Errorf("after q: %+v", m.State())
	}
}

func TestModelHeldKeyMoves(t *testing.T) {
	m, g := newTestModel(t, nil)
	start := g.Stack().Current().Avatar()

	m = update(t, m, tea.KeyMsg{Type: tea.KeyLeft})
	for i := 0; i < 3; i++ {
		m = update(t, m, TickMsg(time.Now()))
	}
	if g.Stack().Current().Avatar().Yaw == start.Yaw {
		t.Error("latched turn key should rotate over several ticks")
	}
}

func TestModelFocus(t *testing.T) {
	m, g := newTestModel(t, nil)

	m = update(t, m, tea.BlurMsg{})
	if !g.Paused() {
		t.Fatal("losing focus should pause")
	}
	m = update(t, m, tea.FocusMsg{})
	if g.Paused() {
		t.Error("regaining focus should resume")
	}
}

func TestModelResizeKeepsSession(t *testing.T) {
	m, g := newTestModel(t, nil)
	m = update(t, m, runes("e"))
	m = update(t, m, TickMsg(time.Now()))

	m = update(t, m, tea.WindowSizeMsg{Width: 60, Height: 21})
	if g.State().Depth != 1 {
		t.Error("resize should not restart the session")
	}
	if m.screen.Width() != 60 || m.screen.Height() != 20 {
		t.Errorf("game screen = %dx%d, expected 60x20", m.screen.Width(), m.screen.Height())
	}

	view := m.View()
	if !strings.Contains(view, "Depth 1/1") {
		t.Errorf("view should include the HUD, got %q", view)
	}
}

func TestModelSavesRunOnExit(t *testing.T) {
	store, err := storage.Open(filepath.Join(t.TempDir(), "runs.db"))
	if err != nil {
		t.Fatal(err)
	}
	defer store.Close()

	m, _ := newTestModel(t, store)
	m = update(t, m, runes("e"))
	m = update(t, m, TickMsg(time.Now()))

	next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	m = next.(Model)
	if cmd == nil || !m.BackToMenu() {
		t.Fatal("esc should end a standalone session")
	}
	// A second exit must not store the run twice
	m = update(t, m, tea.KeyMsg{Type: tea.KeyCtrlC})

	runs, err := store.TopRuns(game.VariantFree, 10)
	if err != nil {
		t.Fatal(err)
	}
	if len(runs) != 1 {
		t.Fatalf("expected one stored run, got %d", len(runs))
	}
	r := runs[0]
	if r.MaxDepth != 1 || r.Descents != 1 || r.Levels != 2 || r.Seed != testRuntime.Seed {
		t.Errorf("stored run = %+v", r)
	}
}

func TestModelSavesDeniedDescents(t *testing.T) {
	store, err := storage.Open(filepath.Join(t.TempDir(), "runs.db"))
	if err != nil {
		t.Fatal(err)
	}
	defer store.Close()

	cfg := config.DefaultMazeConfig()
	cfg.Growth = config.GrowthConfig{Enabled: false, BaseSize: 3}
	cfg.Stack.Lookahead = 0
	g := game.New(game.VariantGated, game.WithConfig(cfg))
	m := NewModel(g, store, testRuntime)
	m.Init()

	// The screen is two cells away, so stepping inside is refused
	m = update(t, m, runes("e"))
	m = update(t, m, TickMsg(time.Now()))
	if m.State().Depth != 0 {
		t.Fatalf("descent should be refused, state %+v", m.State())
	}
	m = update(t, m, tea.KeyMsg{Type: tea.KeyCtrlC})

	runs, err := store.TopRuns(game.VariantGated, 10)
	if err != nil || len(runs) != 1 {
		t.Fatalf("TopRuns() = %v, %v", runs, err)
	}
	if runs[0].Denied != 1 {
		t.Errorf("Denied = %d, expected 1", runs[0].Denied)
	}
}

func TestModelBackToMenu(t *testing.T) {
	m, _ := newTestModel(t, nil, WithBackToMenu())

	next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	m = next.(Model)
	if cmd != nil {
		t.Error("esc inside a session should not quit the program")
	}
	if !m.BackToMenu() || m.IsQuitting() {
		t.Errorf("BackToMenu() = %v, IsQuitting() = %v", m.BackToMenu(), m.IsQuitting())
	}
}

func TestPainterRender(t *testing.T) {
	s := core.NewScreen(6, 2)
	s.DrawColoredText(0, 0, "ab", core.ColorRed)
	s.DrawText(2, 0, "cd")
	s.DrawColoredText(0, 1, "zz", core.Color(200))

	out := NewPainter(nil).Render(s)
	lines := strings.Split(out, "\n")
	if len(lines) != 2 {
		t.Fatalf("expected 2 lines, got %d", len(lines))
	}
	if !strings.Contains(lines[0], "ab") || !strings.Contains(lines[0], "cd") {
		t.Errorf("line 0 = %q", lines[0])
	}
	if !strings.Contains(lines[1], "zz") {
		t.Errorf("unknown colors should fall back to plain text, got %q", lines[1])
	}
}

func TestFormatDuration(t *testing.T) {
	tests := []struct {
		in   time.Duration
		want string
	}{
		{0, "0:00"},
		{59 * time.Second, "0:59"},
		{90*time.Second + 400*time.Millisecond, "1:30"},
		{61 * time.Minute, "61:00"},
	}
	for _, tc := range tests {
		if got := formatDuration(tc.in); got != tc.want {
			t.Errorf("formatDuration(%v) = %q, expected %q", tc.in, got, tc.want)
		}
	}
}

func TestModelFocusKeepsManualPause(t *testing.T) {
	m, g := newTestModel(t, nil)

	m = update(t, m, runes("p"))
	m = update(t, m, TickMsg(time.Now()))
	if !g.Paused() {
		t.Fatal("p should pause")
	}

	m = update(t, m, tea.BlurMsg{})
	m = update(t, m, tea.FocusMsg{})
	if !g.Paused() {
		t.Error("focus should not undo a pause the player chose")
	}
}
