// Package level implements one self-contained maze instance: its walls, the
// avatar moving through them, and the nested screen that shows the level below.
package level

import (
	"fmt"
	"math"
	"math/rand"

	"github.com/vovakirdan/nestmaze/internal/collision"
	"github.com/vovakirdan/nestmaze/internal/core"
	"github.com/vovakirdan/nestmaze/internal/maze"
	"github.com/vovakirdan/nestmaze/internal/scene"
)

// Physics constants for avatar movement.
type Physics struct {
	Drag    float64 // Velocity decay rate per second
	Impulse float64 // Velocity added per second of held intent
	Margin  float64 // Obstacle inflation
}

// DefaultPhysics matches the classic movement feel.
var DefaultPhysics = Physics{
	Drag:    10,
	Impulse: 400,
	Margin:  collision.DefaultMargin,
}

// Params configures a new level.
type Params struct {
	Depth  int
	Width  int // Maze cells along X
	Height int // Maze cells along Z
	Color  core.Color
	Seed   int64

	Geometry Geometry
	Physics  Physics
	Strategy collision.Strategy

	EyeHeight       float64 // Fixed avatar height
	ScreenSize      float64 // Edge length of the nested screen box
	ProximityRadius float64 // Descent is allowed within this distance of the screen

	FOV    float64 // Vertical field of view in degrees
	Aspect float64
	Near   float64
	Far    float64

	TargetW int // Nested screen resolution
	TargetH int
}

// DefaultParams returns parameters for a square maze of the given size.
func DefaultParams(depth, size int) Params {
	return Params{
		Depth:           depth,
		Width:           size,
		Height:          size,
		Color:           core.PaletteColor(core.ColorBlindPalette, depth),
		Geometry:        DefaultGeometry,
		Physics:         DefaultPhysics,
		Strategy:        collision.StrategyAABB,
		EyeHeight:       10,
		ScreenSize:      15,
		ProximityRadius: 15,
		FOV:             75,
		Aspect:          1,
		Near:            1,
		Far:             1000,
		TargetW:         64,
		TargetH:         24,
	}
}

// Avatar is the first-person viewpoint of a level.
type Avatar struct {
	Position core.Vec3
	Velocity core.Vec2 // World frame
	Yaw      float64   // 0 faces -Z
	Pitch    float64
}

// Level owns one maze and everything placed in it.
type Level struct {
	params    Params
	grid      *maze.Grid
	obstacles []core.Box
	resolver  collision.Resolver

	avatar  Avatar
	intent  core.Intent
	enabled bool

	scene        scene.Scene
	camera       scene.Camera
	screenTarget scene.Target
	screenNode   scene.Node
	screenPos    core.Vec3
	aspect       float64
}

// New generates the maze and builds the level's scene through backend.
// The level starts disabled.
func New(backend scene.Backend, p Params) (*Level, error) {
	grid, err := maze.Generate(p.Width, p.Height, rand.New(rand.NewSource(p.Seed)))
	if err != nil {
		return nil, fmt.Errorf("level %d: %w", p.Depth, err)
	}
	if p.Aspect <= 0 {
		p.Aspect = 1
	}

	l := &Level{
		params:    p,
		grid:      grid,
		obstacles: BuildObstacles(grid, p.Geometry),
		aspect:    p.Aspect,
	}
	l.resolver = collision.New(p.Strategy, l.obstacles, p.Physics.Margin)

	l.avatar = Avatar{
		Position: p.Geometry.CellCenter(maze.Cell{}, p.EyeHeight),
		Yaw:      math.Pi,
	}
	l.screenPos = p.Geometry.CellCenter(maze.Cell{X: p.Width - 1, Z: p.Height - 1}, p.EyeHeight)

	l.scene = backend.CreateScene()
	l.camera = backend.CreatePerspectiveCamera(p.FOV, p.Aspect, p.Near, p.Far)
	l.screenTarget = backend.CreateRenderTarget(p.TargetW, p.TargetH, scene.ScreenFilter)

	wall := scene.Material{Color: p.Color}
	for _, b := range l.obstacles {
		l.scene.AddBox(b, wall)
	}
	l.screenNode = l.scene.AddBox(l.screenBox(), scene.Material{
		Color:   core.ColorWhite,
		Texture: l.screenTarget,
	})

	l.syncCamera()
	return l, nil
}

// screenBox is the screen cube squashed vertically by 1/aspect.
func (l *Level) screenBox() core.Box {
	s := l.params.ScreenSize
	return core.BoxAround(l.screenPos, s, s/l.aspect, s)
}

func (l *Level) syncCamera() {
	l.camera.SetPose(l.avatar.Position, l.avatar.Yaw, l.avatar.Pitch)
}

// EnableControls lets the level consume input and advance physics.
func (l *Level) EnableControls() {
	l.enabled = true
}

// DisableControls freezes the level. Held intents are dropped so the avatar
// does not resume moving when the level is enabled again.
func (l *Level) DisableControls() {
	l.enabled = false
	l.intent = core.Intent{}
}

// Enabled reports whether the level is accepting input.
func (l *Level) Enabled() bool {
	return l.enabled
}

// SetIntent replaces the held movement flags. Ignored while disabled.
func (l *Level) SetIntent(in core.Intent) {
	if !l.enabled {
		return
	}
	l.intent = in
}

// Intent returns the held movement flags.
func (l *Level) Intent() core.Intent {
	return l.intent
}

// Look turns the avatar. Pitch is clamped to straight up or down.
func (l *Level) Look(dYaw, dPitch float64) {
	l.avatar.Yaw = math.Remainder(l.avatar.Yaw+dYaw, 2*math.Pi)
	l.avatar.Pitch = core.ClampF(l.avatar.Pitch+dPitch, -math.Pi/2, math.Pi/2)
	l.syncCamera()
}

// Update advances physics by dt seconds. Disabled levels do not change.
func (l *Level) Update(dt float64) {
	if !l.enabled || dt <= 0 {
		return
	}

	ph := l.params.Physics
	a := &l.avatar

	// Semi-implicit drag
	a.Velocity = a.Velocity.Sub(a.Velocity.Scale(ph.Drag * dt))

	// Impulses are given in the avatar's frame: forward is -Z, right is +X
	var local core.Vec2
	step := ph.Impulse * dt
	if l.intent.Forward {
		local.Z -= step
	}
	if l.intent.Backward {
		local.Z += step
	}
	if l.intent.Left {
		local.X -= step
	}
	if l.intent.Right {
		local.X += step
	}
	a.Velocity = a.Velocity.Add(local.Rotate(a.Yaw))

	before := a.Position.XZ()
	after := before.Add(a.Velocity.Scale(dt))
	res := l.resolver.Resolve(before, after)

	a.Position = a.Position.WithXZ(res.Position)
	if res.Collided() {
		if res.BlockX {
			a.Velocity.X = 0
		}
		if res.BlockZ {
			a.Velocity.Z = 0
		}
	}

	l.syncCamera()
}

// IsNearProximityTarget reports whether the avatar is close enough to the
// nested screen to step through it.
func (l *Level) IsNearProximityTarget() bool {
	return l.avatar.Position.DistanceTo(l.screenPos) < l.params.ProximityRadius
}

// DistanceToScreen returns the avatar's distance to the nested screen.
func (l *Level) DistanceToScreen() float64 {
	return l.avatar.Position.DistanceTo(l.screenPos)
}

// Resize updates the camera projection and rescales the nested screen so it
// keeps the display's proportions.
func (l *Level) Resize(aspect float64) {
	if aspect <= 0 {
		return
	}
	l.aspect = aspect
	l.camera.SetAspect(aspect)
	l.screenNode.SetBox(l.screenBox())
}

// Depth returns the level's index in the stack.
func (l *Level) Depth() int { return l.params.Depth }

// Size returns the maze dimensions in cells.
func (l *Level) Size() (w, h int) { return l.params.Width, l.params.Height }

// Color returns the wall color.
func (l *Level) Color() core.Color { return l.params.Color }

// Seed returns the seed the maze was generated from.
func (l *Level) Seed() int64 { return l.params.Seed }

// Avatar returns a copy of the avatar state.
func (l *Level) Avatar() Avatar { return l.avatar }

// AvatarCell returns the maze cell the avatar stands in.
func (l *Level) AvatarCell() maze.Cell {
	return l.params.Geometry.CellAt(l.avatar.Position.XZ())
}

// Obstacles returns the wall boxes. The slice must not be modified.
func (l *Level) Obstacles() []core.Box { return l.obstacles }

// Maze returns the passage grid.
func (l *Level) Maze() *maze.Grid { return l.grid }

// Scene returns the level's scene.
func (l *Level) Scene() scene.Scene { return l.scene }

// Camera returns the level's camera.
func (l *Level) Camera() scene.Camera { return l.camera }

// ScreenTarget returns the target shown on the nested screen.
func (l *Level) ScreenTarget() scene.Target { return l.screenTarget }

// ScreenPosition returns the center of the nested screen.
func (l *Level) ScreenPosition() core.Vec3 { return l.screenPos }

// ScreenCell returns the maze cell holding the nested screen.
func (l *Level) ScreenCell() maze.Cell {
	return maze.Cell{X: l.params.Width - 1, Z: l.params.Height - 1}
}

// Aspect returns the last applied aspect ratio.
func (l *Level) Aspect() float64 { return l.aspect }
