package grf

import (
	"bytes"
	"compress/zlib"
	"fmt"
	"io"
	"iter"

	"github.com/haneul-ro/grfkit/pkg/binreader"
	"github.com/haneul-ro/grfkit/pkg/encoding"
	"github.com/haneul-ro/grfkit/pkg/grferr"
)

// FileHeader is one 17-byte GRF index record.
type FileHeader struct {
	CompressedSize uint32
	ArchivedSize   uint32
	RealSize       uint32
	Flags          uint8
	Position       uint32 // absolute offset into the archive
}

const (
	flagFile             = 0x01
	flagMixedEncryption  = 0x02
	flagHeaderEncryption = 0x04
)

// index is the lazily-populated (name -> FileHeader) table described by
// spec section 4.4: names are decoded and headers parsed on demand,
// cached in the order encountered, and never reparsed once cached.
type index struct {
	buf     []byte
	cursor  int
	names   []string // insertion order, for iteration
	headers map[string]FileHeader
	done    bool
}

func newIndex(compressed []byte, realLen int) (*index, error) {
	zr, err := zlib.NewReader(bytes.NewReader(compressed))
	if err != nil {
		return nil, fmt.Errorf("%w: opening index zlib stream: %v", grferr.ErrCorrupt, err)
	}
	defer zr.Close()

	buf := make([]byte, realLen)
	if _, err := io.ReadFull(zr, buf); err != nil {
		return nil, fmt.Errorf("%w: inflating index: %v", grferr.ErrCorrupt, err)
	}

	return &index{
		buf:     buf,
		headers: make(map[string]FileHeader),
	}, nil
}

// get resumes parsing from the cursor until name is found or the index is
// exhausted.
func (idx *index) get(name string) (FileHeader, error) {
	if h, ok := idx.headers[name]; ok {
		return h, nil
	}
	for !idx.done {
		n, h, err := idx.advance()
		if err != nil {
			return FileHeader{}, err
		}
		if !idx.done {
			idx.store(n, h)
			if n == name {
				return h, nil
			}
		}
	}
	return FileHeader{}, fmt.Errorf("%w: %s", grferr.ErrNotFound, name)
}

// all yields every (name, header) pair, cached entries first in insertion
// order, then newly parsed records in on-disk order. Two full iterations
// over the same index yield the same order.
func (idx *index) all() iter.Seq2[string, FileHeader] {
	return func(yield func(string, FileHeader) bool) {
		for _, n := range idx.names {
			if !yield(n, idx.headers[n]) {
				return
			}
		}
		for !idx.done {
			n, h, err := idx.advance()
			if err != nil || idx.done {
				return
			}
			idx.store(n, h)
			if !yield(n, h) {
				return
			}
		}
	}
}

func (idx *index) store(name string, h FileHeader) {
	if _, ok := idx.headers[name]; ok {
		return
	}
	idx.headers[name] = h
	idx.names = append(idx.names, name)
}

// advance decodes the next (name, header) record from the cursor. It sets
// idx.done and returns zero values once the buffer is exhausted.
func (idx *index) advance() (string, FileHeader, error) {
	if idx.cursor >= len(idx.buf) {
		idx.done = true
		return "", FileHeader{}, nil
	}

	nameEnd := bytes.IndexByte(idx.buf[idx.cursor:], 0)
	if nameEnd < 0 {
		idx.done = true
		return "", FileHeader{}, nil
	}
	rawName := idx.buf[idx.cursor : idx.cursor+nameEnd]
	idx.cursor += nameEnd + 1

	r := binreader.New(idx.buf)
	r.Seek(idx.cursor)

	compressedSize, err := r.U32()
	if err != nil {
		return "", FileHeader{}, fmt.Errorf("%w: reading compressed size: %v", grferr.ErrTruncated, err)
	}
	archivedSize, err := r.U32()
	if err != nil {
		return "", FileHeader{}, fmt.Errorf("%w: reading archived size: %v", grferr.ErrTruncated, err)
	}
	realSize, err := r.U32()
	if err != nil {
		return "", FileHeader{}, fmt.Errorf("%w: reading real size: %v", grferr.ErrTruncated, err)
	}
	flags, err := r.U8()
	if err != nil {
		return "", FileHeader{}, fmt.Errorf("%w: reading flags: %v", grferr.ErrTruncated, err)
	}
	position, err := r.U32()
	if err != nil {
		return "", FileHeader{}, fmt.Errorf("%w: reading position: %v", grferr.ErrTruncated, err)
	}
	idx.cursor = r.Pos()

	return encoding.DecodePath(rawName), FileHeader{
		CompressedSize: compressedSize,
		ArchivedSize:   archivedSize,
		RealSize:       realSize,
		Flags:          flags,
		Position:       position + grfHeaderSize,
	}, nil
}
