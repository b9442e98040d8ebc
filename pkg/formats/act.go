package formats

import (
	"fmt"
	"os"

	"github.com/haneul-ro/grfkit/pkg/binreader"
	"github.com/haneul-ro/grfkit/pkg/geom"
	"github.com/haneul-ro/grfkit/pkg/grferr"
)

const actSignature = "AC"

var actSupportedVersions = []uint16{0x200, 0x201, 0x202, 0x203, 0x204, 0x205}

const defaultInterval = float32(4.0)

// ACT is a parsed animation file: a sequence of animations, each a
// sequence of frames, each a stack of sprite layers, plus a trailing
// table of trigger names frames may reference.
type ACT struct {
	Version    uint16
	Animations []Animation
	Triggers   []string // version >= 0x201
}

// Animation is one animation sequence (what RO tooling usually calls an
// "action"): a list of frames played in order, Interval milliseconds
// apart.
type Animation struct {
	Frames   []Frame
	Interval float32 // version >= 0x202; defaults to 4.0 otherwise
}

// Frame is a single step of an animation: a stack of layers composited
// together, plus an optional trigger index into ACT.Triggers.
type Frame struct {
	Layers  []Layer
	Trigger int32 // -1 means no trigger
}

// Layer is one sprite placement within a frame.
type Layer struct {
	Offset      geom.Point
	SpriteIndex uint32
	Flipped     bool
	Color       geom.Color
	Zoom        geom.Vector2
	Angle       float32
}

// ParseACT parses an ACT file already read into memory.
func ParseACT(data []byte) (*ACT, error) {
	r := binreader.New(data)

	version, err := binreader.ProbeSignatureAndVersion(r, actSignature, actSupportedVersions)
	if err != nil {
		return nil, err
	}

	animationCount, err := r.U16()
	if err != nil {
		return nil, fmt.Errorf("%w: reading animation count: %v", grferr.ErrTruncated, err)
	}
	// 10 reserved bytes complete the 16-byte header; no known semantics.
	if _, err := r.Bytes(10); err != nil {
		return nil, fmt.Errorf("%w: reading header padding: %v", grferr.ErrTruncated, err)
	}

	act := &ACT{
		Version:    version,
		Animations: make([]Animation, animationCount),
	}

	for i := range act.Animations {
		anim, err := parseAnimation(r, version)
		if err != nil {
			return nil, fmt.Errorf("parsing animation %d: %w", i, err)
		}
		anim.Interval = defaultInterval
		act.Animations[i] = anim
	}

	if version >= 0x201 {
		count, err := r.I32()
		if err == nil {
			for i := int32(0); i < count; i++ {
				name, err := parseTriggerName(r)
				if err != nil {
					return nil, fmt.Errorf("parsing trigger %d: %w", i, err)
				}
				act.Triggers = append(act.Triggers, name)
			}
		}
		// A missing trigger trailer is tolerated: some files end exactly
		// at the last animation's data.
	}

	if version >= 0x202 {
		for i := range act.Animations {
			interval, err := r.F32()
			if err != nil {
				break
			}
			act.Animations[i].Interval = interval
		}
	}

	return act, nil
}

// ParseACTFile reads and parses an ACT file from disk.
func ParseACTFile(path string) (*ACT, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading ACT file: %w", err)
	}
	return ParseACT(data)
}

// AnimationName returns the conventional RO action/direction name for the
// animation at index i (e.g. "Walk SW"), guessed from the sheet's total
// animation count the same way GetAnimationName does.
func (a *ACT) AnimationName(i int) string {
	return GetAnimationName(i, len(a.Animations))
}

func parseAnimation(r *binreader.Reader, version uint16) (Animation, error) {
	frameCount, err := r.U32()
	if err != nil {
		return Animation{}, fmt.Errorf("%w: reading frame count: %v", grferr.ErrTruncated, err)
	}

	anim := Animation{Frames: make([]Frame, frameCount)}
	for i := range anim.Frames {
		frame, err := parseFrame(r, version)
		if err != nil {
			return Animation{}, fmt.Errorf("parsing frame %d: %w", i, err)
		}
		anim.Frames[i] = frame
	}
	return anim, nil
}

func parseFrame(r *binreader.Reader, version uint16) (Frame, error) {
	// Two reserved 16-byte "range rect" arrays; no known semantics.
	if _, err := r.Bytes(32); err != nil {
		return Frame{}, fmt.Errorf("%w: skipping reserved ranges: %v", grferr.ErrTruncated, err)
	}

	layerCount, err := r.I32()
	if err != nil {
		return Frame{}, fmt.Errorf("%w: reading layer count: %v", grferr.ErrTruncated, err)
	}

	frame := Frame{Layers: make([]Layer, layerCount), Trigger: -1}
	for i := range frame.Layers {
		layer, err := parseLayer(r, version)
		if err != nil {
			return Frame{}, fmt.Errorf("parsing layer %d: %w", i, err)
		}
		frame.Layers[i] = layer
	}

	trigger, err := r.I32()
	if err != nil {
		return Frame{}, fmt.Errorf("%w: reading trigger: %v", grferr.ErrTruncated, err)
	}
	frame.Trigger = trigger

	if version >= 0x203 {
		anchorCount, err := r.I32()
		if err != nil {
			return Frame{}, fmt.Errorf("%w: reading anchor count: %v", grferr.ErrTruncated, err)
		}
		for i := int32(0); i < anchorCount; i++ {
			// Anchors (4 bytes padding + X/Y/attribute, 16 bytes total) are
			// read and discarded: this module defines no anchor contract.
			if _, err := r.Bytes(16); err != nil {
				return Frame{}, fmt.Errorf("%w: skipping anchor %d: %v", grferr.ErrTruncated, i, err)
			}
		}
	}

	return frame, nil
}

func parseLayer(r *binreader.Reader, version uint16) (Layer, error) {
	var layer Layer

	x, err := r.I32()
	if err != nil {
		return Layer{}, fmt.Errorf("%w: reading X: %v", grferr.ErrTruncated, err)
	}
	y, err := r.I32()
	if err != nil {
		return Layer{}, fmt.Errorf("%w: reading Y: %v", grferr.ErrTruncated, err)
	}
	layer.Offset = geom.Point{X: int(x), Y: int(y)}

	spriteIndex, err := r.U32()
	if err != nil {
		return Layer{}, fmt.Errorf("%w: reading sprite index: %v", grferr.ErrTruncated, err)
	}
	layer.SpriteIndex = spriteIndex

	flags, err := r.U32()
	if err != nil {
		return Layer{}, fmt.Errorf("%w: reading flags: %v", grferr.ErrTruncated, err)
	}
	layer.Flipped = flags&1 != 0

	// Every field from here on is gated on version >= 0x200, which this
	// parser always satisfies (ACT below 0x200 is not a supported version).
	colorBytes, err := r.Bytes(4)
	if err != nil {
		return Layer{}, fmt.Errorf("%w: reading color: %v", grferr.ErrTruncated, err)
	}
	// Read in file order and assigned directly to (r,g,b,a): the source
	// format's true channel order is ambiguous, and this preserves the
	// observed behavior rather than guessing at BGRA or ABGR.
	layer.Color = geom.Color{R: colorBytes[0], G: colorBytes[1], B: colorBytes[2], A: colorBytes[3]}

	zoomX, err := r.F32()
	if err != nil {
		return Layer{}, fmt.Errorf("%w: reading zoom: %v", grferr.ErrTruncated, err)
	}
	if version >= 0x204 {
		zoomY, err := r.F32()
		if err != nil {
			return Layer{}, fmt.Errorf("%w: reading zoom Y: %v", grferr.ErrTruncated, err)
		}
		layer.Zoom = geom.Vector2{X: zoomX, Y: zoomY}
	} else {
		layer.Zoom = geom.Vector2{X: zoomX, Y: zoomX}
	}

	angle, err := r.F32()
	if err != nil {
		return Layer{}, fmt.Errorf("%w: reading angle: %v", grferr.ErrTruncated, err)
	}
	layer.Angle = angle

	// 4 reserved bytes, always present at this version; 8 more from 0x205.
	if _, err := r.Bytes(4); err != nil {
		return Layer{}, fmt.Errorf("%w: skipping reserved layer bytes: %v", grferr.ErrTruncated, err)
	}
	if version >= 0x205 {
		if _, err := r.Bytes(8); err != nil {
			return Layer{}, fmt.Errorf("%w: skipping 0x205 reserved layer bytes: %v", grferr.ErrTruncated, err)
		}
	}

	return layer, nil
}

// parseTriggerName reads a fixed 40-byte null-terminated trigger name.
func parseTriggerName(r *binreader.Reader) (string, error) {
	buf, err := r.Bytes(40)
	if err != nil {
		return "", fmt.Errorf("%w: reading trigger name: %v", grferr.ErrTruncated, err)
	}

	end := len(buf)
	for i, b := range buf {
		if b == 0 {
			end = i
			break
		}
	}
	return string(buf[:end]), nil
}
