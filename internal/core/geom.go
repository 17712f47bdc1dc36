// Package core provides fundamental types and utilities for the maze game.
// It contains no external dependencies (especially no Bubble Tea) to keep game
// logic pure and testable.
package core

import "math"

// Vec2 is a point or direction on the horizontal (X/Z) plane.
type Vec2 struct {
	X, Z float64
}

// V2 is a shorthand constructor for Vec2.
func V2(x, z float64) Vec2 {
	return Vec2{X: x, Z: z}
}

// Add returns v + o.
func (v Vec2) Add(o Vec2) Vec2 {
	return Vec2{X: v.X + o.X, Z: v.Z + o.Z}
}

// Sub returns v - o.
func (v Vec2) Sub(o Vec2) Vec2 {
	return Vec2{X: v.X - o.X, Z: v.Z - o.Z}
}

// Scale returns v * s.
func (v Vec2) Scale(s float64) Vec2 {
	return Vec2{X: v.X * s, Z: v.Z * s}
}

// Len returns the Euclidean length.
func (v Vec2) Len() float64 {
	return math.Hypot(v.X, v.Z)
}

// Rotate rotates v around the vertical axis by yaw radians.
// Yaw 0 maps local forward (0, -1) to world -Z, matching a right-handed Y-up camera.
func (v Vec2) Rotate(yaw float64) Vec2 {
	sin, cos := math.Sincos(yaw)
	return Vec2{
		X: v.X*cos + v.Z*sin,
		Z: -v.X*sin + v.Z*cos,
	}
}

// Vec3 is a point in world space. Y is up.
type Vec3 struct {
	X, Y, Z float64
}

// V3 is a shorthand constructor for Vec3.
func V3(x, y, z float64) Vec3 {
	return Vec3{X: x, Y: y, Z: z}
}

// XZ drops the vertical component.
func (v Vec3) XZ() Vec2 {
	return Vec2{X: v.X, Z: v.Z}
}

// WithXZ returns v with its horizontal components replaced.
func (v Vec3) WithXZ(p Vec2) Vec3 {
	return Vec3{X: p.X, Y: v.Y, Z: p.Z}
}

// DistanceTo returns the Euclidean distance between two points.
func (v Vec3) DistanceTo(o Vec3) float64 {
	dx, dy, dz := v.X-o.X, v.Y-o.Y, v.Z-o.Z
	return math.Sqrt(dx*dx + dy*dy + dz*dz)
}

// Box is an axis-aligned bounding box in world space.
// Boxes are values; once placed in a scene they are never mutated.
type Box struct {
	Min, Max Vec3
}

// BoxAround builds a box from a center point and full extents.
func BoxAround(center Vec3, sx, sy, sz float64) Box {
	return Box{
		Min: Vec3{X: center.X - sx/2, Y: center.Y - sy/2, Z: center.Z - sz/2},
		Max: Vec3{X: center.X + sx/2, Y: center.Y + sy/2, Z: center.Z + sz/2},
	}
}

// Center returns the midpoint of the box.
func (b Box) Center() Vec3 {
	return Vec3{
		X: (b.Min.X + b.Max.X) / 2,
		Y: (b.Min.Y + b.Max.Y) / 2,
		Z: (b.Min.Z + b.Max.Z) / 2,
	}
}

// Inflate grows the box by d on every side of the horizontal plane.
// The vertical extent is left alone; collision only looks at X/Z.
func (b Box) Inflate(d float64) Box {
	return Box{
		Min: Vec3{X: b.Min.X - d, Y: b.Min.Y, Z: b.Min.Z - d},
		Max: Vec3{X: b.Max.X + d, Y: b.Max.Y, Z: b.Max.Z + d},
	}
}

// ContainsXZ reports whether p lies strictly inside the box's X/Z footprint.
// Points exactly on the boundary are outside.
func (b Box) ContainsXZ(p Vec2) bool {
	return p.X > b.Min.X && p.X < b.Max.X && p.Z > b.Min.Z && p.Z < b.Max.Z
}

// CoversXZ is the inclusive variant of ContainsXZ.
func (b Box) CoversXZ(p Vec2) bool {
	return p.X >= b.Min.X && p.X <= b.Max.X && p.Z >= b.Min.Z && p.Z <= b.Max.Z
}

// Rect represents an axis-aligned rectangle of screen cells.
type Rect struct {
	X, Y int // Top-left corner position
	W, H int // Width and height
}

// NewRect creates a new rectangle with the given position and dimensions.
func NewRect(x, y, w, h int) Rect {
	return Rect{X: x, Y: y, W: w, H: h}
}

// Right returns the x-coordinate of the right edge.
func (r Rect) Right() int {
	return r.X + r.W
}

// Bottom returns the y-coordinate of the bottom edge.
func (r Rect) Bottom() int {
	return r.Y + r.H
}

// Contains returns true if the cell (x, y) is inside this rectangle.
func (r Rect) Contains(x, y int) bool {
	return x >= r.X && x < r.Right() && y >= r.Y && y < r.Bottom()
}

// Clamp restricts a value to be within [min, max].
func Clamp(val, min, max int) int {
	if val < min {
		return min
	}
	if val > max {
		return max
	}
	return val
}

// ClampF restricts a float64 value to be within [min, max].
func ClampF(val, min, max float64) float64 {
	if val < min {
		return min
	}
	if val > max {
		return max
	}
	return val
}
