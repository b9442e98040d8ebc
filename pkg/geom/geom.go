// Package geom holds the small value types shared by every decoded asset:
// pixel colors, integer and float 2D coordinates, and decoded images.
// Grounded in original_source/pygrf/graphics.py's Point/Vector2/Color/Image
// NamedTuples, adapted to Go value structs in the teacher's pkg/math style.
package geom

// Color is a 4-channel 8-bit color.
type Color struct {
	R, G, B, A uint8
}

// ToRGBA32 packs the color into a single uint32 with R in the high byte and
// A in the low byte, matching original_source/pygrf/graphics.py's
// Color.to_rgba32.
func (c Color) ToRGBA32() uint32 {
	return uint32(c.R)<<24 | uint32(c.G)<<16 | uint32(c.B)<<8 | uint32(c.A)
}

// ColorFromRGBA32 unpacks a uint32 produced by ToRGBA32 back into a Color.
func ColorFromRGBA32(v uint32) Color {
	return Color{
		R: uint8(v >> 24),
		G: uint8(v >> 16),
		B: uint8(v >> 8),
		A: uint8(v),
	}
}

// Point is an integer 2D coordinate.
type Point struct {
	X, Y int
}

// Vector2 is a floating-point 2D coordinate or scale factor.
type Vector2 struct {
	X, Y float32
}

// Image is a decoded bitmap: width*height Colors in row-major order, top
// row first. Direct-color sprite images are row-reversed into this order
// at decode time (see pkg/formats).
type Image struct {
	Width, Height int
	Pixels        []Color
}

// At returns the pixel at (x, y). It panics if the coordinates are outside
// the image, matching the teacher's plain-index convention for in-memory
// pixel buffers (callers that accept untrusted coordinates should bounds
// check before calling, as pkg/formats does for tile/image lookups).
func (img Image) At(x, y int) Color {
	return img.Pixels[y*img.Width+x]
}
