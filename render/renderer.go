// Package render draws session snapshots onto a tcell screen
package render

import (
	"fmt"

	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/cubit/component"
	"github.com/lixenwraith/cubit/engine"
	"github.com/lixenwraith/cubit/tile"
	"github.com/lixenwraith/cubit/vmath"
)

// HUDHeight is the number of rows reserved above the play field
const HUDHeight = 1

// Glyphs, two columns per world unit
const (
	glyphTile    = "██"
	glyphPlayer  = "@@"
	glyphRedCube = "■■"
	glyphFly     = "vv"
	glyphBullet  = "•"
)

// Renderer draws snapshots; it never touches the session
type Renderer struct {
	screen tcell.Screen
	camera Camera
}

// NewRenderer creates a renderer bound to screen
func NewRenderer(screen tcell.Screen) *Renderer {
	return &Renderer{screen: screen}
}

// Camera returns the camera used by the last Draw
func (r *Renderer) Camera() Camera {
	return r.camera
}

// Draw renders one frame and shows it
func (r *Renderer) Draw(snap engine.Snapshot) {
	r.screen.Clear()
	w, h := r.screen.Size()
	bg := style(RgbBackground, RgbBackground)
	r.screen.Fill(' ', bg)

	if snap.Grid != nil {
		focus := vmath.V2(float64(snap.Grid.Width)/2, float64(snap.Grid.Height)/2)
		if len(snap.Entities) > 0 {
			focus = snap.Entities[0].Position
		}
		r.camera = Frame(snap.Grid.Width, snap.Grid.Height, w, h-HUDHeight, 0, HUDHeight, focus)
		r.drawTiles(snap.Grid, snap.Tileset, w, h)
		r.drawEntities(snap.Entities, w, h)
	}

	r.drawHUD(snap, w)
	r.drawOutcome(snap.State, w, h)
	r.screen.Show()
}

func (r *Renderer) drawTiles(g *tile.Grid, ts *tile.Tileset, w, h int) {
	if ts == nil {
		ts = tile.DefaultTileset()
	}
	for y := 0; y < g.Height; y++ {
		for x := 0; x < g.Width; x++ {
			id := topTile(g, ts, x, y)
			if id == tile.Empty {
				continue
			}
			color := RgbTile
			if id != tile.Block {
				color = RgbTileAlt
			}
			sx, sy := r.camera.Tile(x, y)
			r.drawString(sx, sy, glyphTile, style(color, RgbBackground), w, h)
		}
	}
}

// topTile returns the first solid tile across layers at (x, y)
func topTile(g *tile.Grid, ts *tile.Tileset, x, y int) tile.ID {
	for z := 0; z < g.Depth; z++ {
		if id := g.Get(x, y, z); ts.Solid(id) {
			return id
		}
	}
	return tile.Empty
}

func (r *Renderer) drawEntities(entities []engine.EntityView, w, h int) {
	// Player is first in registry order; draw it last so it stays on top
	for i := len(entities) - 1; i >= 0; i-- {
		e := entities[i]
		glyph, fg := entityGlyph(e)
		sx, sy := r.camera.Cell(e.Position)
		r.drawString(sx, sy, glyph, style(fg, RgbBackground), w, h)
	}
}

func entityGlyph(e engine.EntityView) (string, RGB) {
	switch e.Kind {
	case component.KindPlayer:
		return glyphPlayer, RgbPlayer
	case component.KindRedCube:
		return glyphRedCube, woundedTint(RgbRedCube, e)
	case component.KindFly:
		return glyphFly, woundedTint(RgbFly, e)
	case component.KindBullet:
		return glyphBullet, RgbBullet
	}
	return "??", RgbPlayer
}

// woundedTint darkens base toward RgbWounded as health drops
func woundedTint(base RGB, e engine.EntityView) RGB {
	if e.StartHealth <= 0 {
		return base
	}
	lost := 1 - float64(e.Health)/float64(e.StartHealth)
	return base.Blend(RgbWounded, lost*0.7)
}

func (r *Renderer) drawHUD(snap engine.Snapshot, w int) {
	hud := style(RgbHudText, RgbHudBg)
	for x := 0; x < w; x++ {
		r.screen.SetContent(x, 0, ' ', nil, hud)
	}

	p := snap.Player
	hpBg := RgbHealthBg
	if p.StartHealth > 0 && p.Health*4 <= p.StartHealth {
		hpBg = RgbLowHealth
	}
	x := r.drawString(0, 0, fmt.Sprintf(" HP %d/%d ", p.Health, p.StartHealth), style(RgbHudText, hpBg), w, 1)

	ammo := fmt.Sprintf(" %s %d/%d ", p.Equipped, p.Magazine, p.Ammo)
	if p.Equipped == component.WeaponSword {
		ammo = fmt.Sprintf(" %s ", p.Equipped)
	}
	x = r.drawString(x, 0, ammo, hud, w, 1)
	x = r.drawString(x, 0, fmt.Sprintf(" Enemies %d ", snap.EnemyCount), hud, w, 1)
	x = r.drawString(x, 0, fmt.Sprintf(" %.1fs ", snap.LevelTime.Seconds()), hud, w, 1)
	if p.DashReady {
		r.drawString(x, 0, " DASH ", hud.Bold(true), w, 1)
	}
}

func (r *Renderer) drawOutcome(state engine.State, w, h int) {
	var msg string
	var bg RGB
	switch state {
	case engine.StateWon:
		msg, bg = " LEVEL CLEARED - r restart, q quit ", RgbWonBg
	case engine.StateLost:
		msg, bg = " YOU DIED - r restart, q quit ", RgbLostBg
	default:
		return
	}
	x := (w - len([]rune(msg))) / 2
	if x < 0 {
		x = 0
	}
	r.drawString(x, h/2, msg, style(RgbHudText, bg).Bold(true), w, h)
}

// drawString writes s clipped to the w x h area and returns the column after it
func (r *Renderer) drawString(x, y int, s string, st tcell.Style, w, h int) int {
	for _, ch := range s {
		if x >= 0 && x < w && y >= 0 && y < h {
			r.screen.SetContent(x, y, ch, nil, st)
		}
		x++
	}
	return x
}
