package core

import (
	"math"
	"testing"
)

const eps = 1e-9

func near(a, b float64) bool {
	return math.Abs(a-b) < eps
}

func TestVec2Rotate(t *testing.T) {
	forward := V2(0, -1)

	tests := []struct {
		name     string
		yaw      float64
		expected Vec2
	}{
		{"yaw 0 faces -Z", 0, V2(0, -1)},
		{"quarter turn faces -X", math.Pi / 2, V2(-1, 0)},
		{"half turn faces +Z", math.Pi, V2(0, 1)},
		{"three quarters faces +X", 3 * math.Pi / 2, V2(1, 0)},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := forward.Rotate(tc.yaw)
			if !near(got.X, tc.expected.X) || !near(got.Z, tc.expected.Z) {
				t.Errorf("Rotate(%v) = %+v, expected %+v", tc.yaw, got, tc.expected)
			}
		})
	}

	// Strafe right stays perpendicular to forward
	right := V2(1, 0).Rotate(math.Pi)
	if !near(right.X, -1) || !near(right.Z, 0) {
		t.Errorf("right at yaw pi = %+v, expected (-1, 0)", right)
	}
}

func TestVec2Arithmetic(t *testing.T) {
	a := V2(3, 4)
	if a.Len() != 5 {
		t.Errorf("Len() = %v, expected 5", a.Len())
	}
	if got := a.Add(V2(1, 1)).Sub(V2(2, 2)); got != V2(2, 3) {
		t.Errorf("Add/Sub = %+v, expected (2, 3)", got)
	}
	if got := a.Scale(0.5); got != V2(1.5, 2) {
		t.Errorf("Scale = %+v, expected (1.5, 2)", got)
	}
}

func TestVec3(t *testing.T) {
	p := V3(1, 2, 3)
	if p.XZ() != V2(1, 3) {
		t.Errorf("XZ() = %+v", p.XZ())
	}
	if q := p.WithXZ(V2(7, 8)); q != V3(7, 2, 8) {
		t.Errorf("WithXZ() = %+v", q)
	}
	if d := V3(0, 0, 0).DistanceTo(V3(2, 3, 6)); d != 7 {
		t.Errorf("DistanceTo() = %v, expected 7", d)
	}
}

func TestBoxContainsXZ(t *testing.T) {
	b := Box{Min: V3(0, 0, 0), Max: V3(10, 20, 4)}

	tests := []struct {
		name     string
		p        Vec2
		contains bool
		covers   bool
	}{
		{"inside", V2(5, 2), true, true},
		{"on min edge", V2(0, 2), false, true},
		{"on max corner", V2(10, 4), false, true},
		{"outside x", V2(11, 2), false, false},
		{"outside z", V2(5, -0.1), false, false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := b.ContainsXZ(tc.p); got != tc.contains {
				t.Errorf("ContainsXZ(%+v) = %v, expected %v", tc.p, got, tc.contains)
			}
			if got := b.CoversXZ(tc.p); got != tc.covers {
				t.Errorf("CoversXZ(%+v) = %v, expected %v", tc.p, got, tc.covers)
			}
		})
	}
}

func TestBoxInflate(t *testing.T) {
	b := Box{Min: V3(0, 0, 0), Max: V3(10, 20, 4)}.Inflate(3)

	if b.Min != V3(-3, 0, -3) || b.Max != V3(13, 20, 7) {
		t.Errorf("Inflate(3) = %+v", b)
	}
	if !b.ContainsXZ(V2(-2.9, 6.9)) {
		t.Error("inflated box should contain points inside the margin")
	}
}

func TestBoxAround(t *testing.T) {
	b := BoxAround(V3(10, 10, 10), 4, 2, 6)
	if b.Min != V3(8, 9, 7) || b.Max != V3(12, 11, 13) {
		t.Errorf("BoxAround() = %+v", b)
	}
	if b.Center() != V3(10, 10, 10) {
		t.Errorf("Center() = %+v", b.Center())
	}
}

func TestRectEdges(t *testing.T) {
	r := NewRect(5, 10, 20, 15)

	if r.Right() != 25 {
		t.Errorf("Right() = %d, expected 25", r.Right())
	}
	if r.Bottom() != 25 {
		t.Errorf("Bottom() = %d, expected 25", r.Bottom())
	}
	if !r.Contains(5, 10) || r.Contains(25, 25) {
		t.Error("Contains should include the top-left and exclude the bottom-right edge")
	}
}

func TestClamp(t *testing.T) {
	tests := []struct {
		val, min, max, expected int
	}{
		{5, 0, 10, 5},   // within range
		{-5, 0, 10, 0},  // below min
		{15, 0, 10, 10}, // above max
		{0, 0, 10, 0},   // at min
		{10, 0, 10, 10}, // at max
	}

	for _, tc := range tests {
		result := Clamp(tc.val, tc.min, tc.max)
		if result != tc.expected {
			t.Errorf("Clamp(%d, %d, %d) = %d, expected %d", tc.val, tc.min, tc.max, result, tc.expected)
		}
	}
}

func TestClampF(t *testing.T) {
	tests := []struct {
		val, min, max, expected float64
	}{
		{5.5, 0.0, 10.0, 5.5},
		{-5.5, 0.0, 10.0, 0.0},
		{15.5, 0.0, 10.0, 10.0},
	}

	for _, tc := range tests {
		result := ClampF(tc.val, tc.min, tc.max)
		if result != tc.expected {
			t.Errorf("ClampF(%f, %f, %f) = %f, expected %f", tc.val, tc.min, tc.max, result, tc.expected)
		}
	}
}
