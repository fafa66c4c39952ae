// Package level loads tile maps and their entity placements
// A level is a run-length encoded tile file (W H D, then "id count" pairs)
// plus a sibling ".metadata" YAML file listing entity placements
package level

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/lixenwraith/cubit/component"
	"github.com/lixenwraith/cubit/tile"
	"github.com/lixenwraith/cubit/vmath"
)

const (
	// TileExt is the tile file extension
	TileExt = ".malen"
	// MetadataExt replaces TileExt for the placement file
	MetadataExt = ".metadata"
)

var (
	ErrMalformed       = errors.New("level: malformed data")
	ErrTileCount       = errors.New("level: tile count does not match extents")
	ErrMissingMetadata = errors.New("level: metadata file not found")
	ErrUnknownEntity   = errors.New("level: unknown entity type")
)

// Placement is one entity of the metadata file, position in tile units
type Placement struct {
	Kind     component.Kind
	Position vmath.Vec2
}

// Level is a decoded map ready for session construction
type Level struct {
	Name       string
	Grid       *tile.Grid
	Placements []Placement // File order; exactly one KindPlayer
}

// Player returns the player placement
func (l *Level) Player() Placement {
	for _, p := range l.Placements {
		if p.Kind == component.KindPlayer {
			return p
		}
	}
	return Placement{}
}

// Enemies counts enemy placements
func (l *Level) Enemies() int {
	n := 0
	for _, p := range l.Placements {
		if p.Kind.IsEnemy() {
			n++
		}
	}
	return n
}

// MetadataPath returns the placement file path for a tile file path
func MetadataPath(path string) string {
	return strings.TrimSuffix(path, filepath.Ext(path)) + MetadataExt
}

// Load reads the tile file at path and its metadata sibling
func Load(path string) (*Level, error) {
	tf, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("level: open %s: %w", path, err)
	}
	defer tf.Close()

	metaPath := MetadataPath(path)
	mf, err := os.Open(metaPath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%s: %w", metaPath, ErrMissingMetadata)
		}
		return nil, fmt.Errorf("level: open %s: %w", metaPath, err)
	}
	defer mf.Close()

	grid, err := DecodeTiles(tf)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	placements, err := DecodeMetadata(mf)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", metaPath, err)
	}

	return &Level{
		Name:       strings.TrimSuffix(filepath.Base(path), filepath.Ext(path)),
		Grid:       grid,
		Placements: placements,
	}, nil
}
