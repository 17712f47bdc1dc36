// Package raycast renders scenes of axis-aligned boxes onto character grids.
//
// Every column casts one ray across the X/Z plane and intersects it with the
// footprint of every box. Hits are drawn far to near so that short boxes,
// such as nested screens, can sit in front of walls without hiding what is
// above and below them. Textured boxes sample the cells of their target.
package raycast

import (
	"fmt"
	"math"
	"sort"

	"github.com/vovakirdan/nestmaze/internal/core"
	"github.com/vovakirdan/nestmaze/internal/scene"
)

// Shading runes from nearest to farthest.
var shades = []rune{'█', '▓', '▒', '░'}

const (
	floorRune = '.'
	maxPitch  = 1.2 // Render-time pitch clamp; tan grows without bound near pi/2
)

// Node is a box in a Scene.
type Node struct {
	box core.Box
	mat scene.Material
}

func (n *Node) Box() core.Box     { return n.box }
func (n *Node) SetBox(b core.Box) { n.box = b }

// Scene holds boxes in insertion order.
type Scene struct {
	nodes []*Node
}

// AddBox implements scene.Scene.
func (s *Scene) AddBox(b core.Box, m scene.Material) scene.Node {
	n := &Node{box: b, mat: m}
	s.nodes = append(s.nodes, n)
	return n
}

// Len returns the number of boxes.
func (s *Scene) Len() int {
	return len(s.nodes)
}

// Camera is a perspective camera with a vertical field of view in degrees.
type Camera struct {
	pos        core.Vec3
	yaw, pitch float64
	fov        float64
	aspect     float64
	near, far  float64
}

// SetPose implements scene.Camera.
func (c *Camera) SetPose(pos core.Vec3, yaw, pitch float64) {
	c.pos, c.yaw, c.pitch = pos, yaw, pitch
}

// SetAspect implements scene.Camera.
func (c *Camera) SetAspect(aspect float64) {
	if aspect > 0 {
		c.aspect = aspect
	}
}

// Target is an offscreen character grid.
type Target struct {
	screen *core.Screen
	filter scene.FilterConfig
}

// Size implements scene.Target.
func (t *Target) Size() (int, int) {
	return t.screen.Width(), t.screen.Height()
}

// Screen exposes the target's cells.
func (t *Target) Screen() *core.Screen {
	return t.screen
}

// Backend is a scene.Backend drawing to character grids.
type Backend struct {
	display *core.Screen
}

// New creates a backend with a display of the given size.
func New(w, h int) *Backend {
	return &Backend{display: core.NewScreen(w, h)}
}

// Display returns the presented frame.
func (b *Backend) Display() *core.Screen {
	return b.display
}

// Resize changes the display size.
func (b *Backend) Resize(w, h int) {
	b.display.Resize(w, h)
}

// CreateScene implements scene.Backend.
func (b *Backend) CreateScene() scene.Scene {
	return &Scene{}
}

// CreatePerspectiveCamera implements scene.Backend.
func (b *Backend) CreatePerspectiveCamera(fov, aspect, near, far float64) scene.Camera {
	if aspect <= 0 {
		aspect = 1
	}
	return &Camera{fov: fov, aspect: aspect, near: near, far: far}
}

// CreateRenderTarget implements scene.Backend.
func (b *Backend) CreateRenderTarget(w, h int, filter scene.FilterConfig) scene.Target {
	return &Target{screen: core.NewScreen(w, h), filter: filter}
}

// RenderSceneToTarget implements scene.Backend. A nil target draws to the
// display. Passing objects created by another backend is a programming
// error and panics.
func (b *Backend) RenderSceneToTarget(s scene.Scene, c scene.Camera, t scene.Target) error {
	sc, ok := s.(*Scene)
	if !ok {
		panic(fmt.Sprintf("raycast: foreign scene %T", s))
	}
	cam, ok := c.(*Camera)
	if !ok {
		panic(fmt.Sprintf("raycast: foreign camera %T", c))
	}

	dst := b.display
	if t != nil {
		tgt, ok := t.(*Target)
		if !ok {
			panic(fmt.Sprintf("raycast: foreign target %T", t))
		}
		dst = tgt.screen
	}

	render(sc, cam, dst)
	return nil
}

type hit struct {
	node  *Node
	dist  float64 // Perpendicular depth
	point core.Vec2
	xFace bool // Entered through a face of constant X
}

func render(s *Scene, c *Camera, dst *core.Screen) {
	dst.Clear()
	w, h := dst.Width(), dst.Height()
	if w == 0 || h == 0 {
		return
	}

	tanV := math.Tan(c.fov * math.Pi / 360)
	if tanV <= 0 || math.IsNaN(tanV) {
		tanV = 1
	}
	tanH := tanV * c.aspect

	half := float64(h) / 2
	pitch := core.ClampF(c.pitch, -maxPitch, maxPitch)
	horizon := half + math.Tan(pitch)/tanV*half

	// Floor below the horizon
	for y := max(int(math.Ceil(horizon)), 0); y < h; y++ {
		for x := 0; x < w; x++ {
			dst.SetCell(x, y, core.Cell{Rune: floorRune, Color: core.ColorGray})
		}
	}

	origin := c.pos.XZ()
	hits := make([]hit, 0, 16)

	for col := 0; col < w; col++ {
		offset := (2*(float64(col)+0.5)/float64(w) - 1) * tanH
		dir := core.V2(offset, -1).Rotate(c.yaw)

		hits = hits[:0]
		for _, n := range s.nodes {
			if hh, ok := intersect(origin, dir, n.box); ok && hh.dist >= c.near && hh.dist <= c.far {
				hh.node = n
				hits = append(hits, hh)
			}
		}

		// Painter's order: far first
		sort.Slice(hits, func(i, j int) bool { return hits[i].dist > hits[j].dist })

		for _, hh := range hits {
			scale := half / (hh.dist * tanV)
			top := horizon - (hh.node.box.Max.Y-c.pos.Y)*scale
			bottom := horizon - (hh.node.box.Min.Y-c.pos.Y)*scale

			y0 := max(int(math.Floor(top)), 0)
			y1 := min(int(math.Ceil(bottom)), h)
			for y := y0; y < y1; y++ {
				v := (float64(y) + 0.5 - top) / (bottom - top)
				dst.SetCell(col, y, shade(hh, v, c.far))
			}
		}
	}
}

// intersect runs a slab test of the ray against the box footprint.
// The ray direction has unit forward component, so distances are
// perpendicular depths.
func intersect(o, d core.Vec2, b core.Box) (hit, bool) {
	tx1, tx2, okX := slab(o.X, d.X, b.Min.X, b.Max.X)
	tz1, tz2, okZ := slab(o.Z, d.Z, b.Min.Z, b.Max.Z)
	if !okX || !okZ {
		return hit{}, false
	}

	tNear := math.Max(tx1, tz1)
	tFar := math.Min(tx2, tz2)
	if tNear > tFar || tNear <= 0 {
		return hit{}, false
	}

	return hit{
		dist:  tNear,
		point: o.Add(d.Scale(tNear)),
		xFace: tx1 >= tz1,
	}, true
}

func slab(o, d, lo, hi float64) (float64, float64, bool) {
	if d == 0 {
		if o < lo || o > hi {
			return 0, 0, false
		}
		return math.Inf(-1), math.Inf(1), true
	}
	t1 := (lo - o) / d
	t2 := (hi - o) / d
	if t1 > t2 {
		t1, t2 = t2, t1
	}
	return t1, t2, true
}

// shade picks the cell for one row of a hit; v runs 0..1 from the box top.
func shade(hh hit, v, far float64) core.Cell {
	mat := hh.node.mat
	if tgt, ok := mat.Texture.(*Target); ok && tgt != nil {
		return sample(tgt, hh, v)
	}

	idx := int(hh.dist / (far / 20))
	if !hh.xFace {
		idx++
	}
	idx = core.Clamp(idx, 0, len(shades)-1)
	return core.Cell{Rune: shades[idx], Color: mat.Color}
}

// sample reads the target cell under a hit.
func sample(t *Target, hh hit, v float64) core.Cell {
	b := hh.node.box
	var u float64
	if hh.xFace {
		u = (hh.point.Z - b.Min.Z) / (b.Max.Z - b.Min.Z)
	} else {
		u = (hh.point.X - b.Min.X) / (b.Max.X - b.Min.X)
	}

	tw, th := t.Size()
	x := core.Clamp(int(u*float64(tw)), 0, tw-1)
	y := core.Clamp(int(v*float64(th)), 0, th-1)

	cell := t.screen.GetCell(x, y)
	if cell.Rune == 0 || cell.Rune == ' ' {
		return core.Cell{Rune: ' ', Color: core.ColorDefault}
	}
	return cell
}
