// Package binreader provides a bounds-checked little-endian cursor over an
// in-memory byte slice, plus a signature+version probe shared by the SPR
// and ACT decoders. Grounded in the teacher's pkg/grf binary.Read usage,
// generalized to a reusable cursor because every sub-format decoder in
// pkg/formats needs the same bounds-checked reads over a fully-buffered
// payload rather than a live io.Reader.
package binreader

import (
	"encoding/binary"
	"fmt"
	"math"

	"github.com/haneul-ro/grfkit/pkg/grferr"
)

// Reader is a cursor over a byte slice. All reads advance the cursor and
// return grferr.ErrTruncated if insufficient bytes remain.
type Reader struct {
	buf []byte
	pos int
}

// New wraps buf in a Reader positioned at offset 0.
func New(buf []byte) *Reader {
	return &Reader{buf: buf}
}

// Len returns the number of bytes remaining after the cursor.
func (r *Reader) Len() int {
	return len(r.buf) - r.pos
}

// Pos returns the current cursor offset.
func (r *Reader) Pos() int {
	return r.pos
}

// Seek moves the cursor to an absolute offset. It does not itself bounds
// check against the end of the buffer; the next read will.
func (r *Reader) Seek(offset int) {
	r.pos = offset
}

// Bytes reads and returns the next n bytes, advancing the cursor.
func (r *Reader) Bytes(n int) ([]byte, error) {
	if n < 0 || r.pos+n > len(r.buf) {
		return nil, fmt.Errorf("%w: need %d bytes at offset %d, have %d", grferr.ErrTruncated, n, r.pos, len(r.buf))
	}
	b := r.buf[r.pos : r.pos+n]
	r.pos += n
	return b, nil
}

// U8 reads a single byte.
func (r *Reader) U8() (uint8, error) {
	b, err := r.Bytes(1)
	if err != nil {
		return 0, err
	}
	return b[0], nil
}

// U16 reads a little-endian uint16.
func (r *Reader) U16() (uint16, error) {
	b, err := r.Bytes(2)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint16(b), nil
}

// U32 reads a little-endian uint32.
func (r *Reader) U32() (uint32, error) {
	b, err := r.Bytes(4)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint32(b), nil
}

// I32 reads a little-endian int32.
func (r *Reader) I32() (int32, error) {
	v, err := r.U32()
	return int32(v), err
}

// F32 reads a little-endian IEEE-754 float32.
func (r *Reader) F32() (float32, error) {
	v, err := r.U32()
	if err != nil {
		return 0, err
	}
	return math.Float32frombits(v), nil
}

// ProbeSignatureAndVersion reads len(sig) literal bytes and checks them
// against sig, then reads a little-endian uint16 version. If supported is
// non-empty, the version must be one of its values. The cursor is left
// just past the version field on success. Grounded in
// original_source/pygrf/util.py's get_version.
func ProbeSignatureAndVersion(r *Reader, sig string, supported []uint16) (uint16, error) {
	got, err := r.Bytes(len(sig))
	if err != nil {
		return 0, fmt.Errorf("%w: %v", grferr.ErrInvalidSignature, err)
	}
	if string(got) != sig {
		return 0, fmt.Errorf("%w: expected %q, got %q", grferr.ErrInvalidSignature, sig, got)
	}
	version, err := r.U16()
	if err != nil {
		return 0, fmt.Errorf("%w: %v", grferr.ErrTruncated, err)
	}
	if len(supported) > 0 {
		ok := false
		for _, v := range supported {
			if v == version {
				ok = true
				break
			}
		}
		if !ok {
			return 0, fmt.Errorf("%w: 0x%04x", grferr.ErrUnsupportedVersion, version)
		}
	}
	return version, nil
}
