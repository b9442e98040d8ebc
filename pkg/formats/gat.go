package formats

import (
	"fmt"
	"os"

	"github.com/haneul-ro/grfkit/pkg/binreader"
	"github.com/haneul-ro/grfkit/pkg/grferr"
)

const gatSignature = "GRAT\x01\x02"

// gatHeaderSize is the fixed 14-byte header: signature (6) + width (4) +
// height (4).
const gatHeaderSize = 14

// gatTileSize is the fixed 20-byte on-disk tile record: four heights (16)
// + a type word (4).
const gatTileSize = 20

// GATTile is a single ground-altitude tile. Heights are the four corner
// altitudes in file order; Type is the raw cell-type word as stored on
// disk. This module does not interpret Type against any walkability or
// water-level model — that is left to the caller.
type GATTile struct {
	Heights [4]float32
	Type    uint32
}

// Altitude returns the mean of the tile's four corner heights.
func (t GATTile) Altitude() float32 {
	return (t.Heights[0] + t.Heights[1] + t.Heights[2] + t.Heights[3]) / 4
}

// GAT is a parsed Ground Altitude Table. Tiles are decoded lazily and
// cached on first access; Get is the only way to reach tile data.
type GAT struct {
	data   []byte
	Width  int
	Height int

	tiles map[int]GATTile
}

// ParseGAT parses a GAT file already read into memory. Tile data is not
// decoded until Get is called.
func ParseGAT(data []byte) (*GAT, error) {
	r := binreader.New(data)

	sig, err := r.Bytes(len(gatSignature))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", grferr.ErrTruncated, err)
	}
	if string(sig) != gatSignature {
		return nil, fmt.Errorf("%w: expected %q, got %q", grferr.ErrInvalidSignature, gatSignature, sig)
	}

	width, err := r.U32()
	if err != nil {
		return nil, fmt.Errorf("%w: reading width: %v", grferr.ErrTruncated, err)
	}
	height, err := r.U32()
	if err != nil {
		return nil, fmt.Errorf("%w: reading height: %v", grferr.ErrTruncated, err)
	}

	need := int(width) * int(height) * gatTileSize
	if len(data)-gatHeaderSize != need {
		return nil, fmt.Errorf("%w: need exactly %d tile bytes for %dx%d tiles, have %d", grferr.ErrCorrupt, need, width, height, len(data)-gatHeaderSize)
	}

	return &GAT{
		data:   data,
		Width:  int(width),
		Height: int(height),
		tiles:  make(map[int]GATTile),
	}, nil
}

// ParseGATFile reads and parses a GAT file from disk.
func ParseGATFile(path string) (*GAT, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading GAT file: %w", err)
	}
	return ParseGAT(data)
}

// Get returns the tile at (x, y). Tiles are stored column-major on disk:
// the tile at (x, y) lives at index y + x*width, not the more familiar
// row-major y*width + x.
func (g *GAT) Get(x, y int) (GATTile, error) {
	if x < 0 || y < 0 || x >= g.Width || y >= g.Height {
		return GATTile{}, fmt.Errorf("%w: (%d, %d) outside %dx%d", grferr.ErrOutOfBounds, x, y, g.Width, g.Height)
	}

	index := y + x*g.Width
	if t, ok := g.tiles[index]; ok {
		return t, nil
	}

	offset := gatHeaderSize + index*gatTileSize
	r := binreader.New(g.data)
	r.Seek(offset)

	var tile GATTile
	for i := 0; i < 4; i++ {
		h, err := r.F32()
		if err != nil {
			return GATTile{}, fmt.Errorf("%w: reading height %d of tile (%d,%d): %v", grferr.ErrTruncated, i, x, y, err)
		}
		// Heights are stored sign-inverted on disk.
		tile.Heights[i] = -h
	}
	typ, err := r.U32()
	if err != nil {
		return GATTile{}, fmt.Errorf("%w: reading type of tile (%d,%d): %v", grferr.ErrTruncated, x, y, err)
	}
	tile.Type = typ

	g.tiles[index] = tile
	return tile, nil
}
