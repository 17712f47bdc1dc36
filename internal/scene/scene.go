// Package scene defines the rendering collaborator the maze core draws through.
//
// The core only builds boxes, positions cameras and asks for a scene to be
// rendered either into an offscreen target or to the display. How pixels (or
// terminal cells) are produced is up to the Backend.
package scene

import "github.com/vovakirdan/nestmaze/internal/core"

// Filter selects how a target is sampled when it is scaled.
type Filter int

const (
	FilterLinear Filter = iota
	FilterNearest
)

// FilterConfig holds minification and magnification filters for a target.
type FilterConfig struct {
	Min Filter
	Mag Filter
}

// ScreenFilter is the filter setup used for nested screens.
var ScreenFilter = FilterConfig{Min: FilterLinear, Mag: FilterNearest}

// Material describes how a box is drawn. When Texture is set the box faces
// show the texture's contents instead of the flat color.
type Material struct {
	Color   core.Color
	Texture Target
}

// Node is a box placed in a scene.
type Node interface {
	Box() core.Box
	SetBox(b core.Box)
}

// Scene is a collection of boxes.
type Scene interface {
	AddBox(b core.Box, m Material) Node
}

// Camera is a perspective camera.
type Camera interface {
	SetPose(pos core.Vec3, yaw, pitch float64)
	SetAspect(aspect float64)
}

// Target is an offscreen render surface.
type Target interface {
	Size() (w, h int)
}

// Backend creates scene objects and renders them.
type Backend interface {
	CreateScene() Scene
	CreatePerspectiveCamera(fov, aspect, near, far float64) Camera
	CreateRenderTarget(w, h int, filter FilterConfig) Target

	// RenderSceneToTarget draws s through c into t. A nil target renders to
	// the display.
	RenderSceneToTarget(s Scene, c Camera, t Target) error
}
