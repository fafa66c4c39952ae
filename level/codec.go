package level

import (
	"bufio"
	"fmt"
	"io"
	"strconv"

	"gopkg.in/yaml.v3"

	"github.com/lixenwraith/cubit/component"
	"github.com/lixenwraith/cubit/tile"
	"github.com/lixenwraith/cubit/vmath"
)

// DecodeTiles parses "W H D" followed by whitespace-separated "id count" pairs
// The pair counts must sum to exactly W*H*D
func DecodeTiles(r io.Reader) (*tile.Grid, error) {
	sc := bufio.NewScanner(r)
	sc.Split(bufio.ScanWords)

	next := func(what string, bits int) (uint64, bool, error) {
		if !sc.Scan() {
			if err := sc.Err(); err != nil {
				return 0, false, err
			}
			return 0, false, nil
		}
		v, err := strconv.ParseUint(sc.Text(), 10, bits)
		if err != nil {
			return 0, true, fmt.Errorf("%s %q: %w", what, sc.Text(), ErrMalformed)
		}
		return v, true, nil
	}

	var ext [3]int
	for i, name := range [3]string{"width", "height", "depth"} {
		v, ok, err := next(name, 32)
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, fmt.Errorf("missing %s: %w", name, ErrMalformed)
		}
		ext[i] = int(v)
	}

	if uint64(ext[0])*uint64(ext[1]) > tile.MaxCells || uint64(ext[0])*uint64(ext[1])*uint64(ext[2]) > tile.MaxCells {
		return nil, fmt.Errorf("extents %dx%dx%d exceed %d tiles: %w", ext[0], ext[1], ext[2], tile.MaxCells, ErrMalformed)
	}

	grid, err := tile.NewGrid(ext[0], ext[1], ext[2])
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMalformed, err)
	}

	data := grid.Raw()
	filled := 0
	for {
		id, ok, err := next("tile id", 8)
		if err != nil {
			return nil, err
		}
		if !ok {
			break
		}
		count, ok, err := next("run length", 32)
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, fmt.Errorf("tile id %d without run length: %w", id, ErrMalformed)
		}
		if filled+int(count) > len(data) {
			return nil, fmt.Errorf("runs exceed %d tiles: %w", len(data), ErrTileCount)
		}
		for i := 0; i < int(count); i++ {
			data[filled+i] = tile.ID(id)
		}
		filled += int(count)
	}

	if filled != len(data) {
		return nil, fmt.Errorf("runs cover %d of %d tiles: %w", filled, len(data), ErrTileCount)
	}
	return grid, nil
}

// EncodeTiles writes g in the run-length format read by DecodeTiles
func EncodeTiles(w io.Writer, g *tile.Grid) error {
	bw := bufio.NewWriter(w)
	fmt.Fprintf(bw, "%d %d %d\n", g.Width, g.Height, g.Depth)

	data := g.Raw()
	if len(data) > 0 {
		current, count := data[0], 0
		for _, id := range data {
			if id == current {
				count++
				continue
			}
			fmt.Fprintf(bw, "%d %d\n", current, count)
			current, count = id, 1
		}
		fmt.Fprintf(bw, "%d %d\n", current, count)
	}
	return bw.Flush()
}

type metadataFile struct {
	Entities []entityNode `yaml:"Entities"`
}

type entityNode struct {
	Type     string    `yaml:"Type"`
	Position []float64 `yaml:"Position,flow"`
}

// DecodeMetadata parses the placement list; exactly one Player is required
func DecodeMetadata(r io.Reader) ([]Placement, error) {
	var meta metadataFile
	if err := yaml.NewDecoder(r).Decode(&meta); err != nil {
		if err == io.EOF {
			return nil, fmt.Errorf("empty metadata: %w", ErrMalformed)
		}
		return nil, fmt.Errorf("%v: %w", err, ErrMalformed)
	}

	placements := make([]Placement, 0, len(meta.Entities))
	players := 0
	for i, n := range meta.Entities {
		kind, ok := component.ParseKind(n.Type)
		if !ok || kind == component.KindBullet {
			return nil, fmt.Errorf("entity %d type %q: %w", i, n.Type, ErrUnknownEntity)
		}
		if len(n.Position) != 2 {
			return nil, fmt.Errorf("entity %d position needs 2 components, got %d: %w", i, len(n.Position), ErrMalformed)
		}
		if kind == component.KindPlayer {
			players++
		}
		placements = append(placements, Placement{Kind: kind, Position: vmath.V2(n.Position[0], n.Position[1])})
	}

	if players != 1 {
		return nil, fmt.Errorf("need exactly one Player, got %d: %w", players, ErrMalformed)
	}
	return placements, nil
}

// EncodeMetadata writes placements in the format read by DecodeMetadata
func EncodeMetadata(w io.Writer, placements []Placement) error {
	meta := metadataFile{Entities: make([]entityNode, 0, len(placements))}
	for _, p := range placements {
		meta.Entities = append(meta.Entities, entityNode{
			Type:     p.Kind.String(),
			Position: []float64{p.Position.X, p.Position.Y},
		})
	}
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(&meta); err != nil {
		return err
	}
	return enc.Close()
}
