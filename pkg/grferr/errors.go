// Package grferr defines the error kinds shared by every parser in this
// module. Callers match on these with errors.Is; each parser wraps one of
// them with fmt.Errorf("%w: ...") to add file-specific context.
package grferr

import "errors"

var (
	// ErrInvalidSignature means a file's leading magic bytes did not match
	// what the format requires.
	ErrInvalidSignature = errors.New("grfkit: invalid signature")

	// ErrInvalidEncryption means a GRF header's encryption fields are
	// present but disallowed, or otherwise malformed.
	ErrInvalidEncryption = errors.New("grfkit: invalid encryption flag")

	// ErrInvalidFileCount means a GRF header's derived file count is
	// negative or otherwise nonsensical.
	ErrInvalidFileCount = errors.New("grfkit: invalid file count")

	// ErrUnsupportedVersion means a file's version field was read
	// successfully but is outside the range this module decodes.
	ErrUnsupportedVersion = errors.New("grfkit: unsupported version")

	// ErrNotFound means a requested name or index does not exist.
	ErrNotFound = errors.New("grfkit: not found")

	// ErrOutOfBounds means a requested coordinate or index lies outside
	// the bounds of a parsed structure.
	ErrOutOfBounds = errors.New("grfkit: out of bounds")

	// ErrNoPalette means indexed pixel data was requested from an image
	// that carries no palette.
	ErrNoPalette = errors.New("grfkit: no palette")

	// ErrTruncated means a read ran past the end of the available bytes.
	ErrTruncated = errors.New("grfkit: truncated data")

	// ErrCorrupt means decompressed or decoded data failed a consistency
	// check (e.g. a length mismatch).
	ErrCorrupt = errors.New("grfkit: corrupt data")

	// ErrClosed means an operation was attempted on an archive or reader
	// after it was closed.
	ErrClosed = errors.New("grfkit: already closed")
)
