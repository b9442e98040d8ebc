package grf

import (
	"bytes"
	"compress/zlib"
	"fmt"
	"io"
	"iter"
	"os"

	"github.com/haneul-ro/grfkit/pkg/binreader"
	"github.com/haneul-ro/grfkit/pkg/formats"
	"github.com/haneul-ro/grfkit/pkg/grferr"
)

// PayloadKind identifies which sub-format, if any, a Payload's bytes were
// recognized as.
type PayloadKind int

const (
	KindRaw PayloadKind = iota
	KindGAT
	KindSPR
	KindACT
)

// Payload is one decompressed GRF entry, optionally dispatched to a
// sub-format parser based on its leading bytes.
type Payload struct {
	Name string
	Data []byte
	Kind PayloadKind

	GAT *formats.GAT
	SPR *formats.SPR
	ACT *formats.ACT
}

// Archive is an opened GRF container. It exclusively owns its underlying
// source until Close is called; a parser instance (and the index it
// holds) must not be used from more than one goroutine at a time.
type Archive struct {
	src    io.ReadSeeker
	closer io.Closer
	header Header
	index  *index
	closed bool
}

// Open opens the GRF archive at path.
func Open(path string) (*Archive, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	a, err := OpenReader(f)
	if err != nil {
		f.Close()
		return nil, err
	}
	a.closer = f
	return a, nil
}

// OpenReader opens a GRF archive over an already-open seekable source. The
// caller is responsible for closing src unless it also implements
// io.Closer and Archive.Close is used.
func OpenReader(src io.ReadSeeker) (*Archive, error) {
	if _, err := src.Seek(0, io.SeekStart); err != nil {
		return nil, err
	}
	headerBuf := make([]byte, grfHeaderSize)
	if _, err := io.ReadFull(src, headerBuf); err != nil {
		return nil, fmt.Errorf("%w: reading header: %v", grferr.ErrTruncated, err)
	}
	header, err := parseHeader(headerBuf)
	if err != nil {
		return nil, err
	}

	if _, err := src.Seek(int64(header.IndexOffset), io.SeekStart); err != nil {
		return nil, fmt.Errorf("%w: seeking to index: %v", grferr.ErrTruncated, err)
	}
	lenBuf := make([]byte, 8)
	if _, err := io.ReadFull(src, lenBuf); err != nil {
		return nil, fmt.Errorf("%w: reading index lengths: %v", grferr.ErrTruncated, err)
	}
	lr := binreader.New(lenBuf)
	compressedLen, _ := lr.U32()
	realLen, _ := lr.U32()

	compressed := make([]byte, compressedLen)
	if _, err := io.ReadFull(src, compressed); err != nil {
		return nil, fmt.Errorf("%w: reading compressed index: %v", grferr.ErrTruncated, err)
	}

	idx, err := newIndex(compressed, int(realLen))
	if err != nil {
		return nil, err
	}

	var closer io.Closer
	if c, ok := src.(io.Closer); ok {
		closer = c
	}
	return &Archive{src: src, closer: closer, header: header, index: idx}, nil
}

// Close releases the underlying source exactly once. After Close, Open and
// Extract return grferr.ErrClosed; Files and the header accessors do not
// check for a closed archive and keep serving the in-memory index and
// header.
func (a *Archive) Close() error {
	if a.closed {
		return nil
	}
	a.closed = true
	if a.closer != nil {
		return a.closer.Close()
	}
	return nil
}

// Version returns the archive's masked GRF version (e.g. 0x200).
func (a *Archive) Version() uint32 { return a.header.Version }

// AllowEncryption reports the header's encryption-allowed flag.
func (a *Archive) AllowEncryption() bool { return a.header.AllowEncryption }

// Len returns the archive's declared file count.
func (a *Archive) Len() int { return int(a.header.FileCount) }

// Files returns an iterator over every entry name, in on-disk order.
func (a *Archive) Files() iter.Seq[string] {
	return func(yield func(string) bool) {
		for name, _ := range a.index.all() {
			if !yield(name) {
				return
			}
		}
	}
}

// Open decompresses and dispatches the named entry.
func (a *Archive) Open(name string) (*Payload, error) {
	if a.closed {
		return nil, grferr.ErrClosed
	}
	h, err := a.index.get(name)
	if err != nil {
		return nil, err
	}

	if h.RealSize == 0 {
		return &Payload{Name: name, Data: nil, Kind: KindRaw}, nil
	}

	// Entries flagged mixed- or header-encrypted (0x02, 0x04) are still
	// read and decompressed below; this module never decrypts them, so
	// their payload bytes may not be meaningful.
	if _, err := a.src.Seek(int64(h.Position), io.SeekStart); err != nil {
		return nil, fmt.Errorf("%w: seeking to %s: %v", grferr.ErrTruncated, name, err)
	}
	archived := make([]byte, h.ArchivedSize)
	if _, err := io.ReadFull(a.src, archived); err != nil {
		return nil, fmt.Errorf("%w: reading %s: %v", grferr.ErrTruncated, name, err)
	}

	zr, err := zlib.NewReader(bytes.NewReader(archived[:h.CompressedSize]))
	if err != nil {
		return nil, fmt.Errorf("%w: opening zlib stream for %s: %v", grferr.ErrCorrupt, name, err)
	}
	defer zr.Close()

	data := make([]byte, h.RealSize)
	n, err := io.ReadFull(zr, data)
	if err != nil || uint32(n) != h.RealSize {
		return nil, fmt.Errorf("%w: decompressed size mismatch for %s", grferr.ErrCorrupt, name)
	}

	return dispatch(name, data)
}

func dispatch(name string, data []byte) (*Payload, error) {
	p := &Payload{Name: name, Data: data, Kind: KindRaw}

	switch {
	case len(data) >= 2 && data[0] == 'A' && data[1] == 'C':
		act, err := formats.ParseACT(data)
		if err != nil {
			return nil, fmt.Errorf("parsing %s as ACT: %w", name, err)
		}
		p.Kind, p.ACT = KindACT, act
	case len(data) >= 2 && data[0] == 'S' && data[1] == 'P':
		spr, err := formats.ParseSPR(data)
		if err != nil {
			return nil, fmt.Errorf("parsing %s as SPR: %w", name, err)
		}
		p.Kind, p.SPR = KindSPR, spr
	case len(data) >= 6 && string(data[:6]) == "GRAT\x01\x02":
		gat, err := formats.ParseGAT(data)
		if err != nil {
			return nil, fmt.Errorf("parsing %s as GAT: %w", name, err)
		}
		p.Kind, p.GAT = KindGAT, gat
	}

	return p, nil
}

// With opens the archive at path, runs fn, and closes the archive exactly
// once on return, regardless of whether fn returns an error.
func With(path string, fn func(*Archive) error) error {
	a, err := Open(path)
	if err != nil {
		return err
	}
	defer a.Close()
	return fn(a)
}
