package config

import (
	"errors"
	"fmt"

	"github.com/vovakirdan/nestmaze/internal/core"
)

// Validate reports every invalid value in cfg, joined into one error.
func (c MazeConfig) Validate() error {
	var errs []error
	check := func(ok bool, format string, args ...any) {
		if !ok {
			errs = append(errs, fmt.Errorf(format, args...))
		}
	}

	g := c.Growth
	check(g.BaseSize >= 1, "growth.base_size must be at least 1, got %d", g.BaseSize)
	check(g.Step >= 0, "growth.step must not be negative, got %d", g.Step)
	check(g.MaxSize == 0 || g.MaxSize >= g.BaseSize,
		"growth.max_size %d is below base_size %d", g.MaxSize, g.BaseSize)

	geo := c.Geometry
	check(geo.WallLength > 0, "geometry.wall_length must be positive, got %v", geo.WallLength)
	check(geo.WallHeight > 0, "geometry.wall_height must be positive, got %v", geo.WallHeight)
	check(geo.WallWidth > 0 && geo.WallWidth < geo.WallLength,
		"geometry.wall_width must be in (0, wall_length), got %v", geo.WallWidth)

	ph := c.Physics
	check(ph.Drag >= 0, "physics.drag must not be negative, got %v", ph.Drag)
	check(ph.Impulse > 0, "physics.impulse must be positive, got %v", ph.Impulse)
	check(ph.Margin >= 0, "physics.margin must not be negative, got %v", ph.Margin)
	check(ph.MaxFrameDelta > 0, "physics.max_frame_delta must be positive, got %v", ph.MaxFrameDelta)
	// Above 1 the drag step overshoots zero and velocity grows
	check(ph.Drag*ph.MaxFrameDelta <= 1,
		"physics.drag %v times max_frame_delta %v must not exceed 1", ph.Drag, ph.MaxFrameDelta)
	check(2*ph.Margin+geo.WallWidth < geo.WallLength,
		"physics.margin %v leaves no corridor between walls", ph.Margin)

	switch c.Collision.Strategy {
	case "aabb", "segment":
	default:
		errs = append(errs, fmt.Errorf("collision.strategy must be aabb or segment, got %q", c.Collision.Strategy))
	}

	sc := c.Screen
	check(sc.Size > 0, "screen.size must be positive, got %v", sc.Size)
	check(sc.ProximityRadius > 0, "screen.proximity_radius must be positive, got %v", sc.ProximityRadius)
	check(sc.TargetWidth >= 1 && sc.TargetHeight >= 1,
		"screen target must be at least 1x1, got %dx%d", sc.TargetWidth, sc.TargetHeight)

	cam := c.Camera
	check(cam.FOV > 0 && cam.FOV < 180, "camera.fov must be in (0, 180), got %v", cam.FOV)
	check(cam.Near > 0 && cam.Far > cam.Near,
		"camera near/far must satisfy 0 < near < far, got %v/%v", cam.Near, cam.Far)
	check(cam.TurnRate >= 0 && cam.PitchRate >= 0, "camera rates must not be negative")

	st := c.Stack
	check(st.Lookahead >= 0, "stack.lookahead must not be negative, got %d", st.Lookahead)
	check(st.Present == "root" || st.Present == "current",
		"stack.present must be root or current, got %q", st.Present)

	for _, name := range c.Palette {
		if _, ok := core.ParseColor(name); !ok {
			errs = append(errs, fmt.Errorf("palette: unknown color %q", name))
		}
	}

	return errors.Join(errs...)
}
