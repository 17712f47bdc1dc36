// Package pipeline drives the per-frame update and the nested render pass.
//
// Levels are processed deepest first. Each level is updated and then drawn
// into the nested screen target of the level above it, so every screen shows
// its child's state from the same frame. The shallowest processed level is
// drawn to the display last.
package pipeline

import (
	"fmt"
	"strings"

	"github.com/vovakirdan/nestmaze/internal/scene"
	"github.com/vovakirdan/nestmaze/internal/stack"
)

// PresentMode selects which level is drawn to the display.
type PresentMode int

const (
	// PresentRoot always shows the root level; the player's current level
	// is seen through the chain of nested screens.
	PresentRoot PresentMode = iota

	// PresentCurrent shows the current level and skips everything above it.
	PresentCurrent
)

// String returns the config name of the mode.
func (m PresentMode) String() string {
	switch m {
	case PresentCurrent:
		return "current"
	default:
		return "root"
	}
}

// ParsePresentMode resolves a config name. Unknown names select PresentRoot.
func ParsePresentMode(name string) PresentMode {
	if strings.EqualFold(strings.TrimSpace(name), "current") {
		return PresentCurrent
	}
	return PresentRoot
}

// Pipeline renders a level stack through a backend.
type Pipeline struct {
	backend scene.Backend
	stack   *stack.Stack
	mode    PresentMode
	frames  uint64
}

// New creates a pipeline.
func New(backend scene.Backend, st *stack.Stack, mode PresentMode) *Pipeline {
	return &Pipeline{backend: backend, stack: st, mode: mode}
}

// Mode returns the present mode.
func (p *Pipeline) Mode() PresentMode {
	return p.mode
}

// SetMode changes the present mode for subsequent frames.
func (p *Pipeline) SetMode(m PresentMode) {
	p.mode = m
}

// Frames returns the number of completed frames.
func (p *Pipeline) Frames() uint64 {
	return p.frames
}

// first returns the shallowest level drawn this frame.
func (p *Pipeline) first() int {
	if p.mode == PresentCurrent {
		return p.stack.CurrentIndex()
	}
	return 0
}

// Frame advances physics by dt (unless paused) and renders every level from
// the deepest allocated one up to the presented one.
func (p *Pipeline) Frame(dt float64, paused bool) error {
	levels := p.stack.Levels()
	first := p.first()

	for i := len(levels) - 1; i > first; i-- {
		l := levels[i]
		if !paused {
			l.Update(dt)
		}
		parent := levels[i-1]
		if err := p.backend.RenderSceneToTarget(l.Scene(), l.Camera(), parent.ScreenTarget()); err != nil {
			return fmt.Errorf("pipeline: render depth %d: %w", i, err)
		}
	}

	top := levels[first]
	if !paused {
		top.Update(dt)
	}
	if err := p.backend.RenderSceneToTarget(top.Scene(), top.Camera(), nil); err != nil {
		return fmt.Errorf("pipeline: present depth %d: %w", first, err)
	}

	p.frames++
	return nil
}
