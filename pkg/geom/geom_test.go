package geom

import "testing"

func TestColorRGBA32RoundTrip(t *testing.T) {
	c := Color{R: 0x12, G: 0x34, B: 0x56, A: 0x78}
	v := c.ToRGBA32()
	if v != 0x12345678 {
		t.Errorf("ToRGBA32() = 0x%08x, want 0x12345678", v)
	}
	got := ColorFromRGBA32(v)
	if got != c {
		t.Errorf("ColorFromRGBA32(ToRGBA32(c)) = %+v, want %+v", got, c)
	}
}

func TestImageAt(t *testing.T) {
	img := Image{
		Width:  2,
		Height: 2,
		Pixels: []Color{
			{R: 1}, {R: 2},
			{R: 3}, {R: 4},
		},
	}
	if img.At(0, 0).R != 1 || img.At(1, 0).R != 2 {
		t.Errorf("top row = %v, %v; want R=1, R=2", img.At(0, 0), img.At(1, 0))
	}
	if img.At(0, 1).R != 3 || img.At(1, 1).R != 4 {
		t.Errorf("bottom row = %v, %v; want R=3, R=4", img.At(0, 1), img.At(1, 1))
	}
}
