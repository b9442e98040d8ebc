// Package grf reads "Master of Magic" GRF archives: a fixed header, a
// zlib-compressed, lazily-parsed file index, and per-file zlib-compressed
// payloads dispatched to the matching pkg/formats sub-parser.
package grf

import (
	"bytes"
	"fmt"

	"github.com/haneul-ro/grfkit/pkg/binreader"
	"github.com/haneul-ro/grfkit/pkg/grferr"
)

const (
	grfSignature        = "Master of Magic"
	grfHeaderSize       = 46
	supportedGRFVersion uint32 = 0x200
)

// Header is the fixed 46-byte GRF header.
type Header struct {
	AllowEncryption bool
	IndexOffset     uint32 // absolute: stored offset + grfHeaderSize
	FileCount       int32
	Version         uint32
}

var grfEncryptionOff = [15]byte{0, 1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12, 13, 14}

func parseHeader(data []byte) (Header, error) {
	r := binreader.New(data)

	sig, err := r.Bytes(len(grfSignature))
	if err != nil {
		return Header{}, fmt.Errorf("%w: %v", grferr.ErrTruncated, err)
	}
	if string(sig) != grfSignature {
		return Header{}, fmt.Errorf("%w: expected %q, got %q", grferr.ErrInvalidSignature, grfSignature, sig)
	}

	encFlag, err := r.Bytes(15)
	if err != nil {
		return Header{}, fmt.Errorf("%w: %v", grferr.ErrTruncated, err)
	}
	var allowEncryption bool
	switch {
	case bytes.Equal(encFlag, make([]byte, 15)):
		allowEncryption = false
	case bytes.Equal(encFlag, grfEncryptionOff[:]):
		allowEncryption = true
	default:
		return Header{}, fmt.Errorf("%w: unrecognized encryption flag % x", grferr.ErrInvalidEncryption, encFlag)
	}

	indexOffset, err := r.U32()
	if err != nil {
		return Header{}, fmt.Errorf("%w: reading index offset: %v", grferr.ErrTruncated, err)
	}

	b, err := r.U32()
	if err != nil {
		return Header{}, fmt.Errorf("%w: reading reserved count: %v", grferr.ErrTruncated, err)
	}
	a, err := r.U32()
	if err != nil {
		return Header{}, fmt.Errorf("%w: reading file count: %v", grferr.ErrTruncated, err)
	}
	fileCount := int64(a) - int64(b) - 7
	if fileCount < 0 {
		return Header{}, fmt.Errorf("%w: %d - %d - 7 = %d", grferr.ErrInvalidFileCount, a, b, fileCount)
	}

	rawVersion, err := r.U32()
	if err != nil {
		return Header{}, fmt.Errorf("%w: reading version: %v", grferr.ErrTruncated, err)
	}
	version := rawVersion & 0xFF00
	if version != supportedGRFVersion {
		return Header{}, fmt.Errorf("%w: 0x%x", grferr.ErrUnsupportedVersion, version)
	}

	return Header{
		AllowEncryption: allowEncryption,
		IndexOffset:     indexOffset + grfHeaderSize,
		FileCount:       int32(fileCount),
		Version:         version,
	}, nil
}
