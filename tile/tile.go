// Package tile holds the static level geometry: tile IDs, their solidity table
// and the dense 3D grid loaded from a level file
package tile

// ID indexes a Tileset; 0 is always empty space
type ID uint8

const (
	Empty ID = 0
	Block ID = 1
)

// Tile carries per-ID properties relevant to the simulation
type Tile struct {
	Solid bool
}

// Tileset is the lookup table of per-ID properties
type Tileset struct {
	Tiles []Tile
}

// DefaultTileset returns the stock table: 0 empty, everything in 1..4 solid
func DefaultTileset() *Tileset {
	ts := &Tileset{Tiles: make([]Tile, 5)}
	for i := range ts.Tiles {
		ts.Tiles[i].Solid = ID(i) != Empty
	}
	return ts
}

// Solid reports solidity for id; IDs outside the table are not solid
func (ts *Tileset) Solid(id ID) bool {
	if int(id) >= len(ts.Tiles) {
		return false
	}
	return ts.Tiles[id].Solid
}
