package render

import (
	"math"

	"github.com/lixenwraith/cubit/vmath"
)

// CellWidth is the number of terminal columns per world unit; terminal cells are roughly 1:2
const CellWidth = 2

// Camera maps world coordinates (y up, tiles centered on integers) to screen cells (y down)
type Camera struct {
	// Left and Top are the world tile coordinates shown at the view origin
	Left, Top int
	// OffsetX and OffsetY place the view origin on screen
	OffsetX, OffsetY int
}

// Frame positions the camera for a world of gridW x gridH tiles inside a view of
// viewW x viewH cells at (offX, offY). Axes that fit are centered, others follow focus
func Frame(gridW, gridH, viewW, viewH, offX, offY int, focus vmath.Vec2) Camera {
	cam := Camera{OffsetX: offX, OffsetY: offY}

	cols := viewW / CellWidth
	if gridW <= cols {
		cam.Left = 0
		cam.OffsetX += (viewW - gridW*CellWidth) / 2
	} else {
		cam.Left = clampInt(round(focus.X)-cols/2, 0, gridW-cols)
	}

	if gridH <= viewH {
		cam.Top = gridH - 1
		cam.OffsetY += (viewH - gridH) / 2
	} else {
		cam.Top = clampInt(round(focus.Y)+viewH/2, viewH-1, gridH-1)
	}
	return cam
}

// Cell returns the screen column and row of the tile nearest to p
func (c Camera) Cell(p vmath.Vec2) (int, int) {
	return c.Tile(round(p.X), round(p.Y))
}

// Tile returns the screen column and row of tile (x, y)
func (c Camera) Tile(x, y int) (int, int) {
	return c.OffsetX + (x-c.Left)*CellWidth, c.OffsetY + (c.Top - y)
}

func round(v float64) int {
	return int(math.Floor(v + 0.5))
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
