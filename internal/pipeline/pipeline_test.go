package pipeline

import (
	"errors"
	"testing"

	"github.com/vovakirdan/nestmaze/internal/core"
	"github.com/vovakirdan/nestmaze/internal/level"
	"github.com/vovakirdan/nestmaze/internal/scene/scenetest"
	"github.com/vovakirdan/nestmaze/internal/stack"
)

func newStack(t *testing.T, backend *scenetest.Backend, depth int) *stack.Stack {
	t.Helper()
	factory := stack.LevelFactory(backend, stack.LinearSizer{Base: 1, Step: 1}, core.ColorBlindPalette, level.DefaultParams(0, 0), 7)
	s, err := stack.New(factory)
	if err != nil {
		t.Fatalf("stack.New failed: %v", err)
	}
	for i := 0; i < depth; i++ {
		if err := s.Descend(); err != nil {
			t.Fatalf("Descend failed: %v", err)
		}
	}
	return s
}

func TestFrameRenderOrder(t *testing.T) {
	backend := scenetest.New()
	s := newStack(t, backend, 3)
	p := New(backend, s, PresentRoot)

	if err := p.Frame(0.016, false); err != nil {
		t.Fatalf("Frame failed: %v", err)
	}

	if len(backend.Renders) != 4 {
		t.Fatalf("expected 4 renders for 4 levels, got %d", len(backend.Renders))
	}

	// Deepest first, each into its parent's screen, root to the display
	for n, r := range backend.Renders[:3] {
		depth := 3 - n
		if r.Scene != backend.Scenes[depth] {
			t.Errorf("render %d drew scene %d, expected %d", n, r.Scene.ID, depth)
		}
		if r.Camera != backend.Cameras[depth] {
			t.Errorf("render %d used camera %d, expected %d", n, r.Camera.ID, depth)
		}
		if r.Target == nil || r.Target != s.At(depth-1).ScreenTarget() {
			t.Errorf("render %d should target the screen of depth %d", n, depth-1)
		}
	}

	last := backend.Renders[3]
	if last.Target != nil || last.Scene != backend.Scenes[0] {
		t.Errorf("root should be presented to the display last, got %+v", last)
	}
	if p.Frames() != 1 {
		t.Errorf("Frames() = %d", p.Frames())
	}
}

func TestFrameSingleLevel(t *testing.T) {
	backend := scenetest.New()
	s := newStack(t, backend, 0)
	p := New(backend, s, PresentRoot)

	if err := p.Frame(0.016, false); err != nil {
		t.Fatalf("Frame failed: %v", err)
	}
	if len(backend.Renders) != 1 || backend.Renders[0].Target != nil {
		t.Errorf("single level should render straight to the display, got %+v", backend.Renders)
	}
}

func TestFrameUpdatesCurrentLevel(t *testing.T) {
	backend := scenetest.New()
	s := newStack(t, backend, 1)
	p := New(backend, s, PresentRoot)

	cur := s.Current()
	cur.SetIntent(core.Intent{Forward: true})
	start := cur.Avatar().Position
	root := s.At(0).Avatar()

	for i := 0; i < 10; i++ {
		if err := p.Frame(1.0/60, false); err != nil {
			t.Fatalf("Frame failed: %v", err)
		}
	}

	if cur.Avatar().Position == start && cur.Avatar().Velocity == (core.Vec2{}) {
		t.Error("current level should have been updated")
	}
	if s.At(0).Avatar() != root {
		t.Error("disabled root level must not change")
	}
}

func TestFramePausedSkipsUpdates(t *testing.T) {
	backend := scenetest.New()
	s := newStack(t, backend, 1)
	p := New(backend, s, PresentRoot)

	cur := s.Current()
	cur.SetIntent(core.Intent{Forward: true})
	before := cur.Avatar()

	for i := 0; i < 5; i++ {
		if err := p.Frame(1.0/60, true); err != nil {
			t.Fatalf("Frame failed: %v", err)
		}
	}

	if cur.Avatar() != before {
		t.Error("paused frames must not advance physics")
	}
	if len(backend.Renders) != 10 {
		t.Errorf("paused frames should still render, got %d renders", len(backend.Renders))
	}
}

func TestFramePresentCurrent(t *testing.T) {
	backend := scenetest.New()
	s := newStack(t, backend, 3)
	s.Ascend()
	p := New(backend, s, PresentCurrent)

	if err := p.Frame(0.016, false); err != nil {
		t.Fatalf("Frame failed: %v", err)
	}

	// Cursor at 2: depth 3 into 2's screen, then 2 to the display
	if len(backend.Renders) != 2 {
		t.Fatalf("expected 2 renders, got %d", len(backend.Renders))
	}
	if backend.Renders[0].Scene != backend.Scenes[3] || backend.Renders[0].Target != s.At(2).ScreenTarget() {
		t.Error("first render should draw depth 3 into depth 2's screen")
	}
	if backend.Renders[1].Scene != backend.Scenes[2] || backend.Renders[1].Target != nil {
		t.Error("current level should be presented")
	}
}

func TestFrameRenderError(t *testing.T) {
	backend := scenetest.New()
	backend.FailAfter = 1
	s := newStack(t, backend, 2)
	p := New(backend, s, PresentRoot)

	err := p.Frame(0.016, false)
	if !errors.Is(err, scenetest.ErrRenderFailed) {
		t.Errorf("Frame() error = %v, expected ErrRenderFailed", err)
	}
	if p.Frames() != 0 {
		t.Error("failed frame should not be counted")
	}
}

func TestParsePresentMode(t *testing.T) {
	tests := []struct {
		in       string
		expected PresentMode
	}{
		{"root", PresentRoot},
		{"CURRENT", PresentCurrent},
		{"", PresentRoot},
	}
	for _, tc := range tests {
		if got := ParsePresentMode(tc.in); got != tc.expected {
			t.Errorf("ParsePresentMode(%q) = %v, expected %v", tc.in, got, tc.expected)
		}
	}
	if PresentCurrent.String() != "current" {
		t.Errorf("String() = %q", PresentCurrent.String())
	}
}
