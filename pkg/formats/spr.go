package formats

import (
	"fmt"
	"os"

	"github.com/haneul-ro/grfkit/pkg/binreader"
	"github.com/haneul-ro/grfkit/pkg/geom"
	"github.com/haneul-ro/grfkit/pkg/grferr"
)

const sprSignature = "SP"

var sprSupportedVersions = []uint16{0x100, 0x101, 0x200, 0x201}

const sprPaletteSize = 256 * 4

// SPR is a parsed sprite sheet. Images are decoded lazily: Len is known as
// soon as the header and counts are read, but pixel data for image i is
// not produced until Get(i) is called, since later images' file offsets
// depend on the (possibly RLE-compressed) size of every image before them.
type SPR struct {
	data    []byte
	Version uint16

	indexedCount   int
	trueColorCount int
	hasPalette     bool
	palette        [256]geom.Color

	cursor    int
	nextIndex int
	cache     []sprResult
}

type sprResult struct {
	img geom.Image
	err error
}

// ParseSPR parses an SPR file already read into memory.
func ParseSPR(data []byte) (*SPR, error) {
	r := binreader.New(data)

	version, err := binreader.ProbeSignatureAndVersion(r, sprSignature, sprSupportedVersions)
	if err != nil {
		return nil, err
	}

	indexedCount, err := r.U16()
	if err != nil {
		return nil, fmt.Errorf("%w: reading indexed image count: %v", grferr.ErrTruncated, err)
	}

	var trueColorCount uint16
	if version >= 0x200 {
		trueColorCount, err = r.U16()
		if err != nil {
			return nil, fmt.Errorf("%w: reading true-color image count: %v", grferr.ErrTruncated, err)
		}
	}

	spr := &SPR{
		data:           data,
		Version:        version,
		indexedCount:   int(indexedCount),
		trueColorCount: int(trueColorCount),
		hasPalette:     version >= 0x101,
		cursor:         r.Pos(),
		cache:          make([]sprResult, 0, int(indexedCount)+int(trueColorCount)),
	}

	if spr.hasPalette {
		if len(data) < sprPaletteSize {
			return nil, fmt.Errorf("%w: file too small for palette", grferr.ErrTruncated)
		}
		paletteOffset := len(data) - sprPaletteSize
		pr := binreader.New(data)
		pr.Seek(paletteOffset)
		for i := 0; i < 256; i++ {
			b, err := pr.Bytes(4)
			if err != nil {
				return nil, fmt.Errorf("%w: reading palette entry %d: %v", grferr.ErrTruncated, i, err)
			}
			// The 4th byte of each group is ignored; entry 0 is forced
			// transparent, every other entry fully opaque.
			alpha := uint8(255)
			if i == 0 {
				alpha = 0
			}
			spr.palette[i] = geom.Color{R: b[0], G: b[1], B: b[2], A: alpha}
		}
	}

	return spr, nil
}

// ParseSPRFile reads and parses an SPR file from disk.
func ParseSPRFile(path string) (*SPR, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading SPR file: %w", err)
	}
	return ParseSPR(data)
}

// Len returns the total image count (indexed plus true-color).
func (s *SPR) Len() int {
	return s.indexedCount + s.trueColorCount
}

// Palette returns the 256-entry palette and true if one is present.
// Files below version 0x101 carry no palette.
func (s *SPR) Palette() ([256]geom.Color, bool) {
	return s.palette, s.hasPalette
}

// Get returns the decoded image at index i. Negative indices count from
// the end, matching Python-style indexing. Requesting an indexed image
// from a file with no palette (version 0x100) returns grferr.ErrNoPalette.
func (s *SPR) Get(i int) (geom.Image, error) {
	n := s.Len()
	if i < 0 {
		i += n
	}
	if i < 0 || i >= n {
		return geom.Image{}, fmt.Errorf("%w: image index %d, have %d", grferr.ErrOutOfBounds, i, n)
	}

	for s.nextIndex <= i {
		s.decodeNext()
	}

	res := s.cache[i]
	return res.img, res.err
}

func (s *SPR) decodeNext() {
	index := s.nextIndex
	r := binreader.New(s.data)
	r.Seek(s.cursor)

	var res sprResult
	if index < s.indexedCount {
		useRLE := s.Version >= 0x201
		res = s.decodeIndexedImage(r, useRLE)
	} else {
		res = s.decodeTrueColorImage(r)
	}

	s.cursor = r.Pos()
	s.cache = append(s.cache, res)
	s.nextIndex++
}

func (s *SPR) decodeIndexedImage(r *binreader.Reader, useRLE bool) sprResult {
	width, err := r.U16()
	if err != nil {
		return sprResult{err: fmt.Errorf("%w: reading width: %v", grferr.ErrTruncated, err)}
	}
	height, err := r.U16()
	if err != nil {
		return sprResult{err: fmt.Errorf("%w: reading height: %v", grferr.ErrTruncated, err)}
	}

	pixelCount := int(width) * int(height)
	var indices []byte

	if useRLE {
		compressedSize, err := r.U16()
		if err != nil {
			return sprResult{err: fmt.Errorf("%w: reading compressed size: %v", grferr.ErrTruncated, err)}
		}
		compressed, err := r.Bytes(int(compressedSize))
		if err != nil {
			return sprResult{err: fmt.Errorf("%w: reading compressed data: %v", grferr.ErrTruncated, err)}
		}
		indices = decompressRLE(compressed, pixelCount)
	} else {
		raw, err := r.Bytes(pixelCount)
		if err != nil {
			return sprResult{err: fmt.Errorf("%w: reading pixel indices: %v", grferr.ErrTruncated, err)}
		}
		indices = raw
	}

	if !s.hasPalette {
		return sprResult{err: fmt.Errorf("%w: indexed image in version 0x%03x file", grferr.ErrNoPalette, s.Version)}
	}

	pixels := make([]geom.Color, pixelCount)
	for i, idx := range indices {
		pixels[i] = s.palette[idx]
	}

	return sprResult{img: geom.Image{Width: int(width), Height: int(height), Pixels: pixels}}
}

// decompressRLE decompresses zero-run RLE data: a 0x00 byte followed by a
// count N expands to N literal zero bytes (0x00 0x00 expands to zero
// bytes, a no-op); any other byte is copied through literally.
func decompressRLE(compressed []byte, targetSize int) []byte {
	result := make([]byte, 0, targetSize)

	for i := 0; i < len(compressed) && len(result) < targetSize; {
		b := compressed[i]
		i++

		if b == 0 {
			if i >= len(compressed) {
				break
			}
			count := compressed[i]
			i++

			for j := uint8(0); j < count && len(result) < targetSize; j++ {
				result = append(result, 0)
			}
		} else {
			result = append(result, b)
		}
	}

	for len(result) < targetSize {
		result = append(result, 0)
	}

	return result
}

// decodeTrueColorImage reads a direct-color image: w*h little-endian u32
// pixels, each unpacked via geom.ColorFromRGBA32, stored bottom-up. Rows
// are reversed on decode so the exposed order matches indexed images
// (top-down row-major).
func (s *SPR) decodeTrueColorImage(r *binreader.Reader) sprResult {
	width, err := r.U16()
	if err != nil {
		return sprResult{err: fmt.Errorf("%w: reading width: %v", grferr.ErrTruncated, err)}
	}
	height, err := r.U16()
	if err != nil {
		return sprResult{err: fmt.Errorf("%w: reading height: %v", grferr.ErrTruncated, err)}
	}

	w, h := int(width), int(height)
	pixelCount := w * h
	stored := make([]geom.Color, pixelCount)
	for i := 0; i < pixelCount; i++ {
		v, err := r.U32()
		if err != nil {
			return sprResult{err: fmt.Errorf("%w: reading pixel %d: %v", grferr.ErrTruncated, i, err)}
		}
		stored[i] = geom.ColorFromRGBA32(v)
	}

	pixels := make([]geom.Color, pixelCount)
	for row := 0; row < h; row++ {
		destRow := h - 1 - row
		copy(pixels[destRow*w:(destRow+1)*w], stored[row*w:(row+1)*w])
	}

	return sprResult{img: geom.Image{Width: w, Height: h, Pixels: pixels}}
}
