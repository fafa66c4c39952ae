// Package mesh turns the solid cells of a tile grid into static edge geometry
// Greedy 1D run merging along rows then columns; parallel duplicates at shared
// boundaries are expected, the physics engine only needs edges
package mesh

import (
	"github.com/lixenwraith/cubit/tile"
	"github.com/lixenwraith/cubit/vmath"
)

// Face identifies which side of the solid region a segment bounds
type Face uint8

const (
	FaceTop Face = iota
	FaceBottom
	FaceLeft
	FaceRight
)

func (f Face) String() string {
	switch f {
	case FaceTop:
		return "top"
	case FaceBottom:
		return "bottom"
	case FaceLeft:
		return "left"
	case FaceRight:
		return "right"
	}
	return "unknown"
}

// Segment is a two-point edge on the tile half-integer lattice
// From→To winding puts the right-hand normal (dy, -dx) outside the solid region
type Segment struct {
	From, To vmath.Vec2
	Face     Face
}

// Length returns the segment length in tiles
func (s Segment) Length() float64 {
	return vmath.Distance(s.From, s.To)
}

// Degenerate reports a zero-length segment
func (s Segment) Degenerate() bool {
	return s.From == s.To
}

// run is an open edge run along the sweep axis
type run struct {
	open       bool
	start, end vmath.Vec2
}

// extend grows the run by one tile or opens it at [start, end]
func (r *run) extend(start, end, step vmath.Vec2) {
	if r.open {
		r.end = r.end.Add(step)
		return
	}
	r.open = true
	r.start = start
	r.end = end
}

// close emits the run if open and resets it
func (r *run) close(out []Segment, face Face, reversed bool) []Segment {
	if !r.open {
		return out
	}
	r.open = false
	seg := Segment{From: r.start, To: r.end, Face: face}
	if reversed {
		seg.From, seg.To = r.end, r.start
	}
	if seg.Degenerate() {
		return out
	}
	return append(out, seg)
}

// Build sweeps layer 0 of grid and returns the boundary segments of all solid tiles
// Out-of-bounds neighbours count as non-solid on every side
func Build(grid *tile.Grid, ts *tile.Tileset) []Segment {
	var out []Segment

	unitX := vmath.V2(1, 0)
	unitY := vmath.V2(0, 1)

	// Horizontal pass: top and bottom faces, row by row
	for y := 0; y < grid.Height; y++ {
		var top, bottom run

		for x := 0; x < grid.Width; x++ {
			fx, fy := float64(x), float64(y)

			if !grid.Solid(ts, x, y, 0) {
				out = top.close(out, FaceTop, true)
				out = bottom.close(out, FaceBottom, false)
				continue
			}

			if !grid.Solid(ts, x, y+1, 0) {
				top.extend(vmath.V2(fx-0.5, fy+0.5), vmath.V2(fx+0.5, fy+0.5), unitX)
			} else {
				out = top.close(out, FaceTop, true)
			}

			if !grid.Solid(ts, x, y-1, 0) {
				bottom.extend(vmath.V2(fx-0.5, fy-0.5), vmath.V2(fx+0.5, fy-0.5), unitX)
			} else {
				out = bottom.close(out, FaceBottom, false)
			}
		}

		out = top.close(out, FaceTop, true)
		out = bottom.close(out, FaceBottom, false)
	}

	// Vertical pass: left and right faces, column by column
	for x := 0; x < grid.Width; x++ {
		var left, right run

		for y := 0; y < grid.Height; y++ {
			fx, fy := float64(x), float64(y)

			if !grid.Solid(ts, x, y, 0) {
				out = left.close(out, FaceLeft, true)
				out = right.close(out, FaceRight, false)
				continue
			}

			if !grid.Solid(ts, x-1, y, 0) {
				left.extend(vmath.V2(fx-0.5, fy-0.5), vmath.V2(fx-0.5, fy+0.5), unitY)
			} else {
				out = left.close(out, FaceLeft, true)
			}

			if !grid.Solid(ts, x+1, y, 0) {
				right.extend(vmath.V2(fx+0.5, fy-0.5), vmath.V2(fx+0.5, fy+0.5), unitY)
			} else {
				out = right.close(out, FaceRight, false)
			}
		}

		out = left.close(out, FaceLeft, true)
		out = right.close(out, FaceRight, false)
	}

	return out
}
