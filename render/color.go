package render

import (
	"github.com/gdamore/tcell/v2"
)

// RGB stores explicit 8-bit color channels, decoupled from tcell
type RGB struct {
	R, G, B uint8
}

// Palette
var (
	RgbBackground = RGB{26, 27, 38} // Tokyo Night background
	RgbTile       = RGB{86, 95, 137}
	RgbTileAlt    = RGB{65, 72, 104}
	RgbPlayer     = RGB{255, 255, 255}
	RgbRedCube    = RGB{255, 80, 80}
	RgbFly        = RGB{255, 165, 0}
	RgbBullet     = RGB{255, 255, 0}
	RgbWounded    = RGB{90, 30, 30} // Enemies blend toward this as health drops
	RgbHudText    = RGB{0, 0, 0}
	RgbHudBg      = RGB{135, 206, 250}
	RgbHealthBg   = RGB{144, 238, 144}
	RgbLowHealth  = RGB{200, 50, 50}
	RgbWonBg      = RGB{144, 238, 144}
	RgbLostBg     = RGB{200, 50, 50}
)

// Blend performs alpha blending: result = src*alpha + dst*(1-alpha)
func (dst RGB) Blend(src RGB, alpha float64) RGB {
	if alpha <= 0 {
		return dst
	}
	if alpha >= 1 {
		return src
	}
	inv := 1.0 - alpha
	return RGB{
		R: uint8(float64(src.R)*alpha + float64(dst.R)*inv),
		G: uint8(float64(src.G)*alpha + float64(dst.G)*inv),
		B: uint8(float64(src.B)*alpha + float64(dst.B)*inv),
	}
}

// Tcell converts to a true-color tcell color
func (c RGB) Tcell() tcell.Color {
	return tcell.NewRGBColor(int32(c.R), int32(c.G), int32(c.B))
}

// style builds a tcell style from foreground and background
func style(fg, bg RGB) tcell.Style {
	return tcell.StyleDefault.Foreground(fg.Tcell()).Background(bg.Tcell())
}
