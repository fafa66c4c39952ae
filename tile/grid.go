package tile

import (
	"errors"
	"fmt"
	"math"

	"github.com/lixenwraith/cubit/vmath"
)

var ErrExtents = errors.New("tile: grid extents must be positive and within MaxCells")

// MaxCells bounds Width*Height*Depth of any grid
const MaxCells = 1 << 24

// Grid is a dense Width*Height*Depth array of tile IDs
// Tile (x, y) is centered at world (x, y); its edges sit on the half-integers
// Never resized in place, a new level allocates a new Grid
type Grid struct {
	Width, Height, Depth int
	data                 []ID
}

// NewGrid allocates an all-empty grid
func NewGrid(width, height, depth int) (*Grid, error) {
	if width <= 0 || height <= 0 || depth <= 0 ||
		width > MaxCells/height || width*height > MaxCells/depth {
		return nil, fmt.Errorf("%w: %dx%dx%d", ErrExtents, width, height, depth)
	}
	return &Grid{
		Width:  width,
		Height: height,
		Depth:  depth,
		data:   make([]ID, width*height*depth),
	}, nil
}

// Len returns the number of cells
func (g *Grid) Len() int {
	return len(g.data)
}

// InBounds reports whether the coordinate addresses a cell
func (g *Grid) InBounds(x, y, z int) bool {
	return x >= 0 && x < g.Width && y >= 0 && y < g.Height && z >= 0 && z < g.Depth
}

func (g *Grid) index(x, y, z int) int {
	return z*g.Width*g.Height + y*g.Width + x
}

// At returns the tile at a coordinate that must be in bounds
// Out-of-range access is a caller bug and panics
func (g *Grid) At(x, y, z int) ID {
	if !g.InBounds(x, y, z) {
		panic(fmt.Sprintf("tile: At(%d,%d,%d) outside %dx%dx%d", x, y, z, g.Width, g.Height, g.Depth))
	}
	return g.data[g.index(x, y, z)]
}

// Get returns the tile at a coordinate, Empty when out of bounds
func (g *Grid) Get(x, y, z int) ID {
	if !g.InBounds(x, y, z) {
		return Empty
	}
	return g.data[g.index(x, y, z)]
}

// Set writes a tile; out-of-bounds writes are ignored
func (g *Grid) Set(x, y, z int, id ID) {
	if !g.InBounds(x, y, z) {
		return
	}
	g.data[g.index(x, y, z)] = id
}

// Raw exposes the linear backing slice in z, y, x order
func (g *Grid) Raw() []ID {
	return g.data
}

// Fill sets every cell in the inclusive rectangle of layer z
func (g *Grid) Fill(x0, y0, x1, y1, z int, id ID) {
	for y := y0; y <= y1; y++ {
		for x := x0; x <= x1; x++ {
			g.Set(x, y, z, id)
		}
	}
}

// Solid reports whether the tile at (x, y, z) is solid in ts; out of bounds is not solid
func (g *Grid) Solid(ts *Tileset, x, y, z int) bool {
	return ts.Solid(g.Get(x, y, z))
}

// Raycast walks layer 0 from origin along dir using DDA and returns the distance
// to the first solid tile boundary crossed, limited to maxDist
func (g *Grid) Raycast(ts *Tileset, origin, dir vmath.Vec2, maxDist float64) (float64, bool) {
	dir = dir.Normalize()
	if dir.IsZero() {
		return 0, false
	}

	cellX := int(math.Round(origin.X))
	cellY := int(math.Round(origin.Y))

	stepX, unitX, lenX := axisSetup(origin.X, dir.X, cellX)
	stepY, unitY, lenY := axisSetup(origin.Y, dir.Y, cellY)

	dist := 0.0
	for dist < maxDist {
		if lenX < lenY {
			cellX += stepX
			dist = lenX
			lenX += unitX
		} else {
			cellY += stepY
			dist = lenY
			lenY += unitY
		}
		if dist > maxDist {
			break
		}
		if g.Solid(ts, cellX, cellY, 0) {
			return dist, true
		}
	}
	return maxDist, false
}

// axisSetup returns the step direction, the ray length per unit cell and the
// ray length to the first boundary crossing for a single axis
func axisSetup(origin, dir float64, cell int) (step int, unit float64, first float64) {
	if dir == 0 {
		return 0, math.Inf(1), math.Inf(1)
	}
	unit = math.Abs(1 / dir)
	if dir < 0 {
		return -1, unit, (origin - float64(cell) + 0.5) * unit
	}
	return 1, unit, (float64(cell) - origin + 0.5) * unit
}
