// Package encoding decodes the legacy East-Asian filenames stored inside
// GRF archives. GRF was built for a Korean client but has shipped with
// Japanese and Chinese asset sets over the years, so a filename's bytes
// may be EUC-KR, Johab, UHC (CP949), or Shift_JIS/CP932 depending on
// which client built the archive. There is no per-entry encoding tag, so
// every candidate is tried in turn.
package encoding

import (
	"bytes"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/ianaindex"
	"golang.org/x/text/encoding/japanese"
	"golang.org/x/text/encoding/korean"
)

// codecChain is the ordered list of legacy encodings tried when decoding a
// GRF entry name. EUC-KR comes from golang.org/x/text/encoding/korean,
// whose EUCKR decoder also accepts the UHC (CP949) extension, so UHC needs
// no entry of its own; Johab has no dedicated x/text package and is looked
// up by name through ianaindex instead, and is left out of the chain when
// that lookup finds nothing.
var codecChain = buildCodecChain()

func buildCodecChain() []encoding.Encoding {
	chain := []encoding.Encoding{
		korean.EUCKR,
	}
	if johab, err := ianaindex.IANA.Encoding("johab"); err == nil && johab != nil {
		chain = append(chain, johab)
	}
	chain = append(chain, japanese.ShiftJIS)
	return chain
}

// DecodeName decodes a single raw GRF table-entry name (already
// null-stripped) into UTF-8. Each codec in the chain is tried until one
// decodes the whole string cleanly; the legacy korean/japanese decoders
// substitute U+FFFD for undecodable bytes instead of returning an error,
// so a clean decode is one with no replacement character, not merely one
// with a nil error. A byte sequence that defeats every codec is
// hex-escaped rather than dropped, so DecodeName never fails.
func DecodeName(raw []byte) string {
	for _, codec := range codecChain {
		decoded, err := codec.NewDecoder().Bytes(raw)
		if err == nil && !bytes.ContainsRune(decoded, utf8.RuneError) {
			return string(decoded)
		}
	}
	return hexEscape(raw)
}

// hexEscape renders each byte outside the ASCII range as a two-digit hex
// pair, leaving ASCII bytes literal; the fallback used when no legacy
// codec can decode a name cleanly.
func hexEscape(raw []byte) string {
	var b strings.Builder
	b.Grow(len(raw))
	const hexDigits = "0123456789abcdef"
	for _, c := range raw {
		if c < 0x80 {
			b.WriteByte(c)
			continue
		}
		b.WriteByte(hexDigits[c>>4])
		b.WriteByte(hexDigits[c&0xf])
	}
	return b.String()
}

// DecodePath decodes a full GRF entry path. Paths are stored with
// backslash separators and, conventionally, a leading "data" directory
// component that callers re-add on extraction (see pkg/grf.Archive.Extract);
// it is stripped here so the returned path is relative to that root. Each
// remaining component is decoded independently, since a single path may
// mix encodings across directory levels in practice.
func DecodePath(raw []byte) string {
	parts := strings.Split(string(raw), "\\")
	decoded := make([]string, 0, len(parts))
	for i, part := range parts {
		if i == 0 && strings.EqualFold(part, "data") {
			continue
		}
		decoded = append(decoded, DecodeName([]byte(part)))
	}
	return strings.Join(decoded, "/")
}
