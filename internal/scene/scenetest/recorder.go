// Package scenetest provides a recording scene.Backend for tests.
package scenetest

import (
	"errors"
	"sync"

	"github.com/vovakirdan/nestmaze/internal/core"
	"github.com/vovakirdan/nestmaze/internal/scene"
)

// ErrRenderFailed is returned by RenderSceneToTarget once FailAfter renders
// have succeeded.
var ErrRenderFailed = errors.New("scenetest: render failed")

// Node records one added box.
type Node struct {
	box      core.Box
	Material scene.Material
}

func (n *Node) Box() core.Box { return n.box }
func (n *Node) SetBox(b core.Box) { n.box = b }

// Scene records its boxes in insertion order.
type Scene struct {
	ID    int
	Nodes []*Node
}

func (s *Scene) AddBox(b core.Box, m scene.Material) scene.Node {
	n := &Node{box: b, Material: m}
	s.Nodes = append(s.Nodes, n)
	return n
}

// Textured returns the nodes that carry a texture.
func (s *Scene) Textured() []*Node {
	var out []*Node
	for _, n := range s.Nodes {
		if n.Material.Texture != nil {
			out = append(out, n)
		}
	}
	return out
}

// Camera records its last pose and projection.
type Camera struct {
	ID                     int
	FOV, Aspect, Near, Far float64
	Position               core.Vec3
	Yaw, Pitch             float64
	Poses                  int
}

func (c *Camera) SetPose(pos core.Vec3, yaw, pitch float64) {
	c.Position = pos
	c.Yaw = yaw
	c.Pitch = pitch
	c.Poses++
}

func (c *Camera) SetAspect(aspect float64) { c.Aspect = aspect }

// Target is a sized placeholder surface.
type Target struct {
	ID     int
	W, H   int
	Filter scene.FilterConfig
}

func (t *Target) Size() (int, int) { return t.W, t.H }

// Render is one recorded RenderSceneToTarget call. Target is nil for the
// display.
type Render struct {
	Scene  *Scene
	Camera *Camera
	Target *Target
}

// Backend records everything it creates and renders.
type Backend struct {
	mu sync.Mutex

	Scenes  []*Scene
	Cameras []*Camera
	Targets []*Target
	Renders []Render

	// FailAfter makes rendering fail once this many renders succeeded.
	// Zero disables failures.
	FailAfter int
}

// New returns an empty recorder.
func New() *Backend {
	return &Backend{}
}

func (b *Backend) CreateScene() scene.Scene {
	b.mu.Lock()
	defer b.mu.Unlock()
	s := &Scene{ID: len(b.Scenes)}
	b.Scenes = append(b.Scenes, s)
	return s
}

func (b *Backend) CreatePerspectiveCamera(fov, aspect, near, far float64) scene.Camera {
	b.mu.Lock()
	defer b.mu.Unlock()
	c := &Camera{ID: len(b.Cameras), FOV: fov, Aspect: aspect, Near: near, Far: far}
	b.Cameras = append(b.Cameras, c)
	return c
}

func (b *Backend) CreateRenderTarget(w, h int, filter scene.FilterConfig) scene.Target {
	b.mu.Lock()
	defer b.mu.Unlock()
	t := &Target{ID: len(b.Targets), W: w, H: h, Filter: filter}
	b.Targets = append(b.Targets, t)
	return t
}

func (b *Backend) RenderSceneToTarget(s scene.Scene, c scene.Camera, t scene.Target) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.FailAfter > 0 && len(b.Renders) >= b.FailAfter {
		return ErrRenderFailed
	}

	r := Render{Scene: s.(*Scene), Camera: c.(*Camera)}
	if t != nil {
		r.Target = t.(*Target)
	}
	b.Renders = append(b.Renders, r)
	return nil
}

// Reset drops recorded renders, keeping created objects.
func (b *Backend) Reset() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.Renders = nil
}
