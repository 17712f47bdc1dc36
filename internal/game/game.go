// Package game implements the nested maze session controller.
//
// The controller owns the level stack and the render pipeline, turns input
// frames into level transitions and avatar intents, and owns the pause
// lifecycle. It satisfies registry.Game so the platform can drive it like any
// other variant.
package game

import (
	"fmt"
	"io"
	"math"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/nestmaze/internal/collision"
	"github.com/vovakirdan/nestmaze/internal/config"
	"github.com/vovakirdan/nestmaze/internal/core"
	"github.com/vovakirdan/nestmaze/internal/level"
	"github.com/vovakirdan/nestmaze/internal/pipeline"
	"github.com/vovakirdan/nestmaze/internal/raycast"
	"github.com/vovakirdan/nestmaze/internal/registry"
	"github.com/vovakirdan/nestmaze/internal/stack"
)

// Variant IDs.
const (
	VariantGated = "nestmaze"
	VariantFree  = "nestmaze_free"
)

// hudRows is the number of rows reserved below the 3D view.
const hudRows = 1

// messageTicks is how long a HUD notice stays visible.
const messageTicks = 90

// configPath stores the custom config path set via CLI
var configPath string

// difficultyPreset stores the difficulty preset set via CLI
var difficultyPreset config.DifficultyPreset

// SetConfigPath sets the custom config path for loading.
func SetConfigPath(path string) {
	configPath = path
}

// SetDifficultyPreset sets the growth preset. Unknown names clear it.
func SetDifficultyPreset(preset string) {
	p, ok := config.ParsePreset(preset)
	if !ok {
		p = ""
	}
	difficultyPreset = p
}

// sessionLogger is used by controllers created without WithLogger
var sessionLogger *log.Logger

// SetLogger sets the logger for controllers created by the registry.
func SetLogger(l *log.Logger) {
	sessionLogger = l
}

func init() {
	registry.Register(VariantGated, func() registry.Game {
		return New(VariantGated)
	})
	registry.Register(VariantFree, func() registry.Game {
		return New(VariantFree)
	})
}

// Stats summarizes a session for the run log.
type Stats struct {
	MaxDepth int
	Levels   int
	Descents int
	Ascents  int
	Denied   int
	Elapsed  time.Duration // Unpaused simulated time
	Frames   uint64
}

// Option configures a Controller.
type Option func(*Controller)

// WithConfig uses cfg instead of loading configuration on Reset.
func WithConfig(cfg config.MazeConfig) Option {
	return func(c *Controller) {
		c.fixedCfg = &cfg
	}
}

// WithLogger sets the logger for session events.
func WithLogger(l *log.Logger) Option {
	return func(c *Controller) {
		if l != nil {
			c.logger = l
		}
	}
}

// Controller runs one nested maze session.
type Controller struct {
	variant  string
	fixedCfg *config.MazeConfig
	logger   *log.Logger

	runtime core.RuntimeConfig
	cfg     config.MazeConfig
	growth  *config.GrowthManager
	backend *raycast.Backend
	stack   *stack.Stack
	pipe    *pipeline.Pipeline
	gated   bool
	paused  bool
	stats   Stats
	err     error

	message      string
	messageTicks int
}

// New creates a controller for a variant. Reset must be called before use.
func New(variant string, opts ...Option) *Controller {
	c := &Controller{
		variant: variant,
		logger:  sessionLogger,
	}
	if c.logger == nil {
		c.logger = log.New(io.Discard)
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// ID returns the variant identifier.
func (c *Controller) ID() string {
	return c.variant
}

// Title returns the display name.
func (c *Controller) Title() string {
	if c.variant == VariantFree {
		return "Nested Maze (Free Descent)"
	}
	return "Nested Maze"
}

// Description returns the menu blurb.
func (c *Controller) Description() string {
	if c.variant == VariantFree {
		return "Step into the screen from anywhere"
	}
	return "Walk up to the screen to step inside"
}

// loadConfig resolves the session configuration. Invalid files fall back to
// the defaults rather than refusing to start.
func (c *Controller) loadConfig() config.MazeConfig {
	if c.fixedCfg != nil {
		return *c.fixedCfg
	}

	cfg, err := config.Resolve(configPath, difficultyPreset)
	if err != nil {
		c.logger.Warn("config rejected, using defaults", "path", configPath, "err", err)
	}
	return cfg
}

// levelTemplate maps configuration onto level parameters. Depth, size,
// color and seed are filled in per level by the stack factory.
func levelTemplate(cfg config.MazeConfig, aspect float64) level.Params {
	return level.Params{
		Geometry: level.Geometry{
			WallLength: cfg.Geometry.WallLength,
			WallHeight: cfg.Geometry.WallHeight,
			WallWidth:  cfg.Geometry.WallWidth,
		},
		Physics: level.Physics{
			Drag:    cfg.Physics.Drag,
			Impulse: cfg.Physics.Impulse,
			Margin:  cfg.Physics.Margin,
		},
		Strategy:        collision.ParseStrategy(cfg.Collision.Strategy),
		EyeHeight:       cfg.Physics.EyeHeight,
		ScreenSize:      cfg.Screen.Size,
		ProximityRadius: cfg.Screen.ProximityRadius,
		FOV:             cfg.Camera.FOV,
		Aspect:          aspect,
		Near:            cfg.Camera.Near,
		Far:             cfg.Camera.Far,
		TargetW:         cfg.Screen.TargetWidth,
		TargetH:         cfg.Screen.TargetHeight,
	}
}

// viewConfig returns the runtime config of the 3D view, which excludes the HUD.
func viewConfig(rt core.RuntimeConfig) core.RuntimeConfig {
	rt.ScreenH = max(rt.ScreenH-hudRows, 1)
	return rt
}

// Reset starts a new session.
func (c *Controller) Reset(rt core.RuntimeConfig) {
	if rt.TickRate <= 0 {
		rt.TickRate = 60
	}
	c.runtime = rt
	c.cfg = c.loadConfig()
	c.growth = config.NewGrowthManager(c.cfg.Growth)
	c.gated = c.variant != VariantFree && c.cfg.Stack.GatedDescent
	c.paused = false
	c.stats = Stats{}
	c.err = nil
	c.message = ""
	c.messageTicks = 0

	view := viewConfig(rt)
	c.backend = raycast.New(view.ScreenW, view.ScreenH)

	tmpl := levelTemplate(c.cfg, view.Aspect())
	factory := stack.LevelFactory(c.backend, c.growth, c.cfg.Colors(), tmpl, rt.Seed)

	st, err := stack.New(factory,
		stack.WithLookahead(c.cfg.Stack.Lookahead),
		stack.WithAllocListener(func(l *level.Level) {
			w, h := l.Size()
			c.logger.Debug("level allocated", "depth", l.Depth(), "size", fmt.Sprintf("%dx%d", w, h), "walls", len(l.Obstacles()))
		}),
	)
	if err != nil {
		c.fail(err)
		return
	}

	c.stack = st
	c.pipe = pipeline.New(c.backend, st, pipeline.ParsePresentMode(c.cfg.Stack.Present))
	c.stats.Levels = st.Len()
	c.logger.Info("session started", "variant", c.variant, "seed", rt.Seed, "gated", c.gated, "lookahead", st.Lookahead())
}

func (c *Controller) fail(err error) {
	if c.err == nil {
		c.err = err
		c.logger.Error("session failed", "err", err)
	}
}

// Err returns the fatal error that stopped the session, if any.
func (c *Controller) Err() error {
	return c.err
}

// Step advances the session by one fixed tick.
func (c *Controller) Step(in core.InputFrame) core.StepResult {
	result := core.StepResult{}
	if c.stack == nil || c.err != nil {
		result.State = c.State()
		return result
	}

	dt := 1.0 / float64(c.runtime.TickRate)

	if in.Has(core.ActionPause) {
		if c.paused {
			c.Unpause()
		} else {
			c.Pause()
		}
	}
	if in.Has(core.ActionToggleView) {
		c.ToggleView()
	}

	if !c.paused {
		switch {
		case in.Has(core.ActionDescend):
			result.Transition = c.Descend()
		case in.Has(core.ActionAscend):
			result.Transition = c.Ascend()
		}

		cur := c.stack.Current()
		cur.SetIntent(in.Intent())
		c.look(cur, in, dt)
	}

	c.OnFrame(dt)

	if c.messageTicks > 0 {
		c.messageTicks--
	}

	result.State = c.State()
	return result
}

// look applies held turn keys to the current level.
func (c *Controller) look(l *level.Level, in core.InputFrame, dt float64) {
	var dYaw, dPitch float64
	if in.Has(core.ActionTurnLeft) {
		dYaw += c.cfg.Camera.TurnRate * dt
	}
	if in.Has(core.ActionTurnRight) {
		dYaw -= c.cfg.Camera.TurnRate * dt
	}
	if in.Has(core.ActionLookUp) {
		dPitch += c.cfg.Camera.PitchRate * dt
	}
	if in.Has(core.ActionLookDown) {
		dPitch -= c.cfg.Camera.PitchRate * dt
	}
	if dYaw != 0 || dPitch != 0 {
		l.Look(dYaw, dPitch)
	}
}

// OnFrame runs one pipeline pass. dt is clamped to the configured maximum so
// a stalled host does not launch the avatar through a wall.
func (c *Controller) OnFrame(dt float64) {
	if c.pipe == nil || c.err != nil {
		return
	}
	dt = core.ClampF(dt, 0, c.cfg.Physics.MaxFrameDelta)

	if err := c.pipe.Frame(dt, c.paused); err != nil {
		c.fail(err)
		return
	}

	c.stats.Frames = c.pipe.Frames()
	if !c.paused {
		c.stats.Elapsed += time.Duration(dt * float64(time.Second))
	}
}

// Descend steps into the current level's screen. With gating on, the avatar
// must be near the screen.
func (c *Controller) Descend() core.Transition {
	if c.stack == nil || c.err != nil {
		return core.TransitionNone
	}

	cur := c.stack.Current()
	if c.gated && !cur.IsNearProximityTarget() {
		c.stats.Denied++
		c.notify("Get closer to the screen to step inside")
		c.logger.Debug("descent denied", "depth", cur.Depth(), "cell", cur.AvatarCell(), "distance", math.Round(cur.DistanceToScreen()))
		return core.TransitionDenied
	}

	if err := c.stack.Descend(); err != nil {
		c.fail(err)
		return core.TransitionNone
	}

	depth := c.stack.CurrentIndex()
	c.stats.Descents++
	c.stats.MaxDepth = max(c.stats.MaxDepth, depth)
	c.stats.Levels = c.stack.Len()
	c.notify(fmt.Sprintf("Depth %d", depth))
	c.logger.Info("descend", "depth", depth, "levels", c.stack.Len())
	return core.TransitionDescend
}

// Ascend backs out one level. At the root nothing happens.
func (c *Controller) Ascend() core.Transition {
	if c.stack == nil || c.err != nil || !c.stack.Ascend() {
		return core.TransitionNone
	}
	c.stats.Ascents++
	c.notify(fmt.Sprintf("Depth %d", c.stack.CurrentIndex()))
	c.logger.Info("ascend", "depth", c.stack.CurrentIndex())
	return core.TransitionAscend
}

func (c *Controller) notify(msg string) {
	c.message = msg
	c.messageTicks = messageTicks
}

// ToggleView switches the display between the root level and the current
// level.
func (c *Controller) ToggleView() {
	if c.pipe == nil {
		return
	}
	mode := pipeline.PresentCurrent
	if c.pipe.Mode() == pipeline.PresentCurrent {
		mode = pipeline.PresentRoot
	}
	c.pipe.SetMode(mode)
	c.notify("View: " + mode.String())
	c.logger.Debug("view switched", "mode", mode)
}

// Pause suspends physics in every level. Rendering continues.
func (c *Controller) Pause() {
	c.paused = true
}

// Unpause resumes physics.
func (c *Controller) Unpause() {
	c.paused = false
}

// Paused reports whether physics is suspended.
func (c *Controller) Paused() bool {
	return c.paused
}

// OnResize propagates a new aspect ratio to every allocated level.
func (c *Controller) OnResize(aspect float64) {
	if c.stack == nil {
		return
	}
	c.stack.Resize(aspect)
}

// Resize adapts the display buffer and camera aspect to a new terminal size.
func (c *Controller) Resize(rt core.RuntimeConfig) {
	c.runtime.ScreenW, c.runtime.ScreenH = rt.ScreenW, rt.ScreenH
	if c.backend == nil {
		return
	}
	view := viewConfig(c.runtime)
	c.backend.Resize(view.ScreenW, view.ScreenH)
	c.OnResize(view.Aspect())
}

// State returns the current session state.
func (c *Controller) State() core.GameState {
	s := core.GameState{
		MaxDepth: c.stats.MaxDepth,
		Paused:   c.paused,
	}
	if c.stack != nil {
		s.Depth = c.stack.CurrentIndex()
		s.Levels = c.stack.Len()
		s.NearScreen = c.stack.Current().IsNearProximityTarget()
	}
	return s
}

// Stats returns the session summary.
func (c *Controller) Stats() Stats {
	return c.stats
}

// Variant returns the variant ID.
func (c *Controller) Variant() string {
	return c.variant
}

// Gated reports whether descent requires standing near the screen.
func (c *Controller) Gated() bool {
	return c.gated
}

// Stack exposes the level stack for inspection.
func (c *Controller) Stack() *stack.Stack {
	return c.stack
}

// Config returns the active configuration.
func (c *Controller) Config() config.MazeConfig {
	return c.cfg
}
