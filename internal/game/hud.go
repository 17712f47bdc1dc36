package game

import (
	"fmt"
	"strings"

	"github.com/vovakirdan/nestmaze/internal/core"
)

// Render copies the presented frame into dst and draws the HUD line.
func (c *Controller) Render(dst *core.Screen) {
	if c.err != nil {
		c.renderError(dst)
		return
	}
	if c.backend == nil || c.stack == nil {
		return
	}

	dst.CopyFrom(c.backend.Display())
	c.renderHUD(dst, dst.Height()-hudRows)
}

func (c *Controller) renderHUD(dst *core.Screen, y int) {
	if y < 0 {
		return
	}
	dst.DrawRect(core.NewRect(0, y, dst.Width(), hudRows), core.Cell{Rune: ' '})

	cur := c.stack.Current()
	w, h := cur.Size()

	var parts []string
	parts = append(parts, fmt.Sprintf("Depth %d/%d", c.stack.CurrentIndex(), c.stats.MaxDepth))
	size := fmt.Sprintf("Maze %dx%d", w, h)
	if c.growth != nil && c.growth.Level(cur.Depth()) >= 1 {
		size += " max"
	}
	parts = append(parts, size)

	// Notices take priority over the status hint
	switch {
	case c.paused:
		parts = append(parts, "PAUSED")
	case c.messageTicks > 0 && c.message != "":
		parts = append(parts, c.message)
	case cur.IsNearProximityTarget():
		parts = append(parts, "[E] step inside")
	case c.gated:
		parts = append(parts, fmt.Sprintf("Screen %.0fm", cur.DistanceToScreen()))
	}

	dst.DrawColoredText(0, y, truncate(" "+strings.Join(parts, "  │  "), dst.Width()), cur.Color())
}

// renderError draws a framed panel with the error that stopped the session.
func (c *Controller) renderError(dst *core.Screen) {
	msg := truncate(c.err.Error(), max(dst.Width()-4, 0))
	w := min(max(len([]rune(msg)), 13)+4, dst.Width())
	panel := core.NewRect((dst.Width()-w)/2, dst.Height()/2-2, w, 4)

	dst.DrawRect(panel, core.Cell{Rune: ' '})
	dst.DrawBox(panel)
	dst.DrawTextCentered(panel.Y+1, "Render failed")
	dst.DrawTextCentered(panel.Y+2, msg)
}

// truncate clips s to n runes.
func truncate(s string, n int) string {
	r := []rune(s)
	if n < 0 {
		n = 0
	}
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}
