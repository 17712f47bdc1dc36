package core

import "testing"

func TestInputFrameIntent(t *testing.T) {
	f := NewInputFrame()
	if f.Intent().Any() {
		t.Error("empty frame should carry no intent")
	}

	f.Set(ActionForward)
	f.Set(ActionStrafeRight)
	f.Set(ActionDescend)

	in := f.Intent()
	if !in.Forward || !in.Right || in.Backward || in.Left {
		t.Errorf("Intent() = %+v, expected forward+right", in)
	}

	clone := f.Clone()
	f.Clear()
	if f.Has(ActionForward) {
		t.Error("Clear should drop all actions")
	}
	if !clone.Has(ActionDescend) {
		t.Error("Clone should be independent of the original")
	}
}

func TestInputFrameZeroValue(t *testing.T) {
	var f InputFrame
	if f.Has(ActionPause) {
		t.Error("zero frame should report no actions")
	}
	f.Set(ActionPause)
	if !f.Has(ActionPause) {
		t.Error("Set on a zero frame should allocate")
	}
}

func TestParseColor(t *testing.T) {
	tests := []struct {
		name     string
		expected Color
		ok       bool
	}{
		{"orange", ColorOrange, true},
		{" Bright_Cyan ", ColorBrightCyan, true},
		{"ultraviolet", ColorDefault, false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			c, ok := ParseColor(tc.name)
			if c != tc.expected || ok != tc.ok {
				t.Errorf("ParseColor(%q) = %v, %v; expected %v, %v", tc.name, c, ok, tc.expected, tc.ok)
			}
		})
	}

	if ColorGray.String() != "gray" {
		t.Errorf("String() = %q", ColorGray.String())
	}
}

func TestPaletteColor(t *testing.T) {
	if PaletteColor(ColorBlindPalette, 0) != ColorOrange {
		t.Error("depth 0 should use the first palette entry")
	}
	if PaletteColor(ColorBlindPalette, len(ColorBlindPalette)) != ColorOrange {
		t.Error("palette should wrap around")
	}
	if PaletteColor(nil, 3) != ColorDefault {
		t.Error("empty palette should yield the default color")
	}
}

func TestRuntimeConfigAspect(t *testing.T) {
	cfg := RuntimeConfig{ScreenW: 80, ScreenH: 20}
	if cfg.Aspect() != 2 {
		t.Errorf("Aspect() = %v, expected 2", cfg.Aspect())
	}
	if (RuntimeConfig{}).Aspect() != 1 {
		t.Error("zero height should fall back to 1")
	}
}
