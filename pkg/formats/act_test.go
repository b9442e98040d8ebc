package formats

import (
	"bytes"
	"encoding/binary"
	"errors"
	"testing"

	"github.com/haneul-ro/grfkit/pkg/geom"
	"github.com/haneul-ro/grfkit/pkg/grferr"
)

// actLayerSpec describes one layer to emit, in the builder's own terms
// rather than the file's raw bytes.
type actLayerSpec struct {
	x, y         int32
	spriteIndex  uint32
	flipped      bool
	color        geom.Color
	zoomX, zoomY float32
	angle        float32
}

// actBuilder assembles a synthetic ACT byte stream.
type actBuilder struct {
	buf     bytes.Buffer
	version uint16
}

func newACTBuilder(version uint16, animationCount uint16) *actBuilder {
	b := &actBuilder{version: version}
	b.buf.WriteString(actSignature)
	binary.Write(&b.buf, binary.LittleEndian, version)
	binary.Write(&b.buf, binary.LittleEndian, animationCount)
	b.buf.Write(make([]byte, 10)) // header padding
	return b
}

// writeAnimation appends one animation's frames. Each element of frames is
// the list of layer specs for that frame; trigger defaults to -1.
func (b *actBuilder) writeAnimation(frames [][]actLayerSpec) {
	binary.Write(&b.buf, binary.LittleEndian, uint32(len(frames)))
	for _, layers := range frames {
		b.writeFrame(layers, -1)
	}
}

func (b *actBuilder) writeFrame(layers []actLayerSpec, trigger int32) {
	b.buf.Write(make([]byte, 32)) // reserved range rects
	binary.Write(&b.buf, binary.LittleEndian, int32(len(layers)))
	for _, l := range layers {
		b.writeLayer(l)
	}
	binary.Write(&b.buf, binary.LittleEndian, trigger)
	if b.version >= 0x203 {
		binary.Write(&b.buf, binary.LittleEndian, int32(0)) // no anchors
	}
}

func (b *actBuilder) writeLayer(l actLayerSpec) {
	binary.Write(&b.buf, binary.LittleEndian, l.x)
	binary.Write(&b.buf, binary.LittleEndian, l.y)
	binary.Write(&b.buf, binary.LittleEndian, l.spriteIndex)
	var flags uint32
	if l.flipped {
		flags = 1
	}
	binary.Write(&b.buf, binary.LittleEndian, flags)
	b.buf.Write([]byte{l.color.R, l.color.G, l.color.B, l.color.A})
	binary.Write(&b.buf, binary.LittleEndian, l.zoomX)
	if b.version >= 0x204 {
		binary.Write(&b.buf, binary.LittleEndian, l.zoomY)
	}
	binary.Write(&b.buf, binary.LittleEndian, l.angle)
	b.buf.Write(make([]byte, 4)) // reserved
	if b.version >= 0x205 {
		b.buf.Write(make([]byte, 8)) // reserved
	}
}

func (b *actBuilder) writeTriggers(names []string) {
	binary.Write(&b.buf, binary.LittleEndian, int32(len(names)))
	for _, n := range names {
		rec := make([]byte, 40)
		copy(rec, n)
		b.buf.Write(rec)
	}
}

func (b *actBuilder) writeIntervals(intervals []float32) {
	for _, f := range intervals {
		binary.Write(&b.buf, binary.LittleEndian, f)
	}
}

func (b *actBuilder) bytes() []byte {
	return b.buf.Bytes()
}

func solidLayer(spriteIndex uint32) actLayerSpec {
	return actLayerSpec{spriteIndex: spriteIndex, zoomX: 1, zoomY: 1, angle: 0}
}

func TestACTv0x200Defaults(t *testing.T) {
	b := newACTBuilder(0x200, 1)
	b.writeAnimation([][]actLayerSpec{{solidLayer(3)}})

	act, err := ParseACT(b.bytes())
	if err != nil {
		t.Fatalf("ParseACT: %v", err)
	}
	if len(act.Animations) != 1 {
		t.Fatalf("len(Animations) = %d, want 1", len(act.Animations))
	}
	anim := act.Animations[0]
	if anim.Interval != defaultInterval {
		t.Errorf("Interval = %v, want default %v", anim.Interval, defaultInterval)
	}
	if len(anim.Frames) != 1 {
		t.Fatalf("len(Frames) = %d, want 1", len(anim.Frames))
	}
	frame := anim.Frames[0]
	if frame.Trigger != -1 {
		t.Errorf("Trigger = %d, want -1", frame.Trigger)
	}
	if len(frame.Layers) != 1 {
		t.Fatalf("len(Layers) = %d, want 1", len(frame.Layers))
	}
	layer := frame.Layers[0]
	if layer.SpriteIndex != 3 {
		t.Errorf("SpriteIndex = %d, want 3", layer.SpriteIndex)
	}
	if layer.Zoom != (geom.Vector2{X: 1, Y: 1}) {
		t.Errorf("Zoom = %v, want {1,1}", layer.Zoom)
	}
	if act.Triggers != nil {
		t.Errorf("Triggers = %v, want nil for version < 0x201", act.Triggers)
	}
}

func TestACTFlippedFlag(t *testing.T) {
	b := newACTBuilder(0x200, 1)
	flipped := solidLayer(1)
	flipped.flipped = true
	b.writeAnimation([][]actLayerSpec{{flipped}})

	act, err := ParseACT(b.bytes())
	if err != nil {
		t.Fatalf("ParseACT: %v", err)
	}
	if !act.Animations[0].Frames[0].Layers[0].Flipped {
		t.Error("Flipped = false, want true")
	}
}

func TestACTv0x204SeparateZoomAxes(t *testing.T) {
	b := newACTBuilder(0x204, 1)
	l := solidLayer(0)
	l.zoomX, l.zoomY = 1.2, 0.8
	b.writeAnimation([][]actLayerSpec{{l}})

	act, err := ParseACT(b.bytes())
	if err != nil {
		t.Fatalf("ParseACT: %v", err)
	}
	zoom := act.Animations[0].Frames[0].Layers[0].Zoom
	if zoom.X != 1.2 || zoom.Y != 0.8 {
		t.Errorf("Zoom = %v, want {1.2, 0.8}", zoom)
	}
}

func TestACTTriggersAndIntervals(t *testing.T) {
	b := newACTBuilder(0x202, 2)
	b.writeAnimation([][]actLayerSpec{{solidLayer(0)}})
	b.writeAnimation([][]actLayerSpec{{solidLayer(1)}})
	b.writeTriggers([]string{"die", "attack"})
	b.writeIntervals([]float32{2.0, 5.5})

	act, err := ParseACT(b.bytes())
	if err != nil {
		t.Fatalf("ParseACT: %v", err)
	}
	if len(act.Triggers) != 2 || act.Triggers[0] != "die" || act.Triggers[1] != "attack" {
		t.Errorf("Triggers = %v, want [die attack]", act.Triggers)
	}
	if act.Animations[0].Interval != 2.0 {
		t.Errorf("Animations[0].Interval = %v, want 2.0", act.Animations[0].Interval)
	}
	if act.Animations[1].Interval != 5.5 {
		t.Errorf("Animations[1].Interval = %v, want 5.5", act.Animations[1].Interval)
	}
}

func TestACTMissingTrailersTolerated(t *testing.T) {
	b := newACTBuilder(0x202, 1)
	b.writeAnimation([][]actLayerSpec{{solidLayer(0)}})
	// No triggers or intervals trailer at all.

	act, err := ParseACT(b.bytes())
	if err != nil {
		t.Fatalf("ParseACT: %v", err)
	}
	if act.Animations[0].Interval != defaultInterval {
		t.Errorf("Interval = %v, want default %v when intervals trailer is absent", act.Animations[0].Interval, defaultInterval)
	}
	if act.Triggers != nil {
		t.Errorf("Triggers = %v, want nil when trailer is absent", act.Triggers)
	}
}

func TestACTv0x205ReservedBytesSkipped(t *testing.T) {
	b := newACTBuilder(0x205, 1)
	l := solidLayer(9)
	l.zoomX, l.zoomY, l.angle = 1, 1, 90
	b.writeAnimation([][]actLayerSpec{{l, solidLayer(10)}})

	act, err := ParseACT(b.bytes())
	if err != nil {
		t.Fatalf("ParseACT: %v", err)
	}
	layers := act.Animations[0].Frames[0].Layers
	if len(layers) != 2 {
		t.Fatalf("len(Layers) = %d, want 2", len(layers))
	}
	if layers[0].Angle != 90 {
		t.Errorf("Layers[0].Angle = %v, want 90", layers[0].Angle)
	}
	if layers[1].SpriteIndex != 10 {
		t.Errorf("Layers[1].SpriteIndex = %d, want 10 (reserved bytes misaligned the cursor)", layers[1].SpriteIndex)
	}
}

func TestACTInvalidSignature(t *testing.T) {
	b := newACTBuilder(0x200, 0)
	data := b.bytes()
	data[0] = 'X'
	if _, err := ParseACT(data); !errors.Is(err, grferr.ErrInvalidSignature) {
		t.Errorf("error = %v, want ErrInvalidSignature", err)
	}
}

func TestACTUnsupportedVersion(t *testing.T) {
	b := newACTBuilder(0x100, 0)
	if _, err := ParseACT(b.bytes()); !errors.Is(err, grferr.ErrUnsupportedVersion) {
		t.Errorf("error = %v, want ErrUnsupportedVersion", err)
	}
}

func TestACTTruncated(t *testing.T) {
	b := newACTBuilder(0x200, 1)
	b.writeAnimation([][]actLayerSpec{{solidLayer(0)}})
	data := b.bytes()
	truncated := data[:len(data)-2]
	if _, err := ParseACT(truncated); !errors.Is(err, grferr.ErrTruncated) {
		t.Errorf("error = %v, want ErrTruncated", err)
	}
}
