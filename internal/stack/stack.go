// Package stack manages the growable sequence of nested levels and the cursor
// marking which one receives input.
//
// Exactly one level is enabled at any time and it is always the level under
// the cursor. Levels are created on first need and kept for the whole
// session, so backing out and returning finds every maze as it was left.
package stack

import (
	"errors"
	"fmt"

	"github.com/vovakirdan/nestmaze/internal/level"
)

// Factory creates the level for a given depth.
type Factory func(depth int) (*level.Level, error)

// Listener is notified after every level allocation.
type Listener func(l *level.Level)

// Stack is the ordered sequence of levels plus the current cursor.
type Stack struct {
	factory   Factory
	lookahead int
	onAlloc   Listener

	levels  []*level.Level
	current int
	aspect  float64 // Last Resize, applied to levels allocated after it
}

// Option configures a Stack.
type Option func(*Stack)

// WithLookahead keeps n spare levels allocated below the cursor so their
// first frame is ready before the player steps in. Negative values are
// treated as zero.
func WithLookahead(n int) Option {
	return func(s *Stack) {
		s.lookahead = max(n, 0)
	}
}

// WithAllocListener registers a callback invoked for every new level.
func WithAllocListener(fn Listener) Option {
	return func(s *Stack) {
		s.onAlloc = fn
	}
}

// New allocates the root level, enables it, and preallocates lookahead levels.
func New(factory Factory, opts ...Option) (*Stack, error) {
	if factory == nil {
		return nil, errors.New("stack: nil level factory")
	}

	s := &Stack{factory: factory}
	for _, opt := range opts {
		opt(s)
	}

	if err := s.fill(); err != nil {
		return nil, err
	}
	s.levels[0].EnableControls()
	return s, nil
}

// fill appends levels until the lookahead below the cursor is satisfied.
func (s *Stack) fill() error {
	for len(s.levels) <= s.current+s.lookahead {
		depth := len(s.levels)
		l, err := s.factory(depth)
		if err != nil {
			return fmt.Errorf("stack: allocate depth %d: %w", depth, err)
		}
		l.DisableControls()
		if s.aspect > 0 {
			l.Resize(s.aspect)
		}
		s.levels = append(s.levels, l)
		if s.onAlloc != nil {
			s.onAlloc(l)
		}
	}
	return nil
}

// Descend moves the cursor one level down, allocating as needed.
// Proximity gating is the caller's business.
//
// If allocation fails the stack is left unchanged.
func (s *Stack) Descend() error {
	prev := s.current
	s.current++
	if err := s.fill(); err != nil {
		s.current = prev
		return err
	}

	s.levels[prev].DisableControls()
	s.levels[s.current].EnableControls()
	return nil
}

// Ascend moves the cursor one level up. At the root it does nothing and
// returns false.
func (s *Stack) Ascend() bool {
	if s.current == 0 {
		return false
	}
	s.levels[s.current].DisableControls()
	s.current--
	s.levels[s.current].EnableControls()
	return true
}

// Current returns the level under the cursor.
func (s *Stack) Current() *level.Level {
	if s.current >= len(s.levels) {
		panic(fmt.Sprintf("stack: cursor %d beyond %d allocated levels", s.current, len(s.levels)))
	}
	return s.levels[s.current]
}

// CurrentIndex returns the cursor.
func (s *Stack) CurrentIndex() int {
	return s.current
}

// Len returns the number of allocated levels.
func (s *Stack) Len() int {
	return len(s.levels)
}

// At returns the level at depth i.
func (s *Stack) At(i int) *level.Level {
	return s.levels[i]
}

// Levels returns the allocated levels, root first. The slice must not be
// modified.
func (s *Stack) Levels() []*level.Level {
	return s.levels
}

// Lookahead returns the number of spare levels kept below the cursor.
func (s *Stack) Lookahead() int {
	return s.lookahead
}

// Resize propagates a new aspect ratio to every allocated level and to
// levels allocated later.
func (s *Stack) Resize(aspect float64) {
	if aspect <= 0 {
		return
	}
	s.aspect = aspect
	for _, l := range s.levels {
		l.Resize(aspect)
	}
}

// CheckInvariants verifies that exactly the current level is enabled.
func (s *Stack) CheckInvariants() error {
	if len(s.levels) < s.current+1 {
		return fmt.Errorf("stack: %d levels allocated with cursor at %d", len(s.levels), s.current)
	}
	for i, l := range s.levels {
		if l.Enabled() != (i == s.current) {
			return fmt.Errorf("stack: level %d enabled=%v with cursor at %d", i, l.Enabled(), s.current)
		}
	}
	return nil
}
