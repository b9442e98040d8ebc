package encoding

import "testing"

func TestDecodeNameASCII(t *testing.T) {
	got := DecodeName([]byte("prontera.bmp"))
	if got != "prontera.bmp" {
		t.Errorf("DecodeName(ascii) = %q, want %q", got, "prontera.bmp")
	}
}

func TestDecodeNameEUCKR(t *testing.T) {
	// "가" (U+AC00) encodes to 0xB0 0xA1 in EUC-KR.
	got := DecodeName([]byte{0xB0, 0xA1})
	if got != "가" {
		t.Errorf("DecodeName(EUC-KR) = %q, want %q", got, "가")
	}
}

func TestDecodeNameNeverFails(t *testing.T) {
	// Every possible byte, and a few adversarial sequences, must decode to
	// *something* rather than panicking or returning an error path.
	for b := 0; b < 256; b++ {
		_ = DecodeName([]byte{byte(b)})
	}
	sequences := [][]byte{
		{0xFF, 0xFE, 0xFD},
		{0x80, 0x81, 0x82, 0x83},
		{},
		{0x00},
	}
	for _, seq := range sequences {
		_ = DecodeName(seq)
	}
}

func TestDecodeNameHexEscapeKeepsASCIILiteral(t *testing.T) {
	// 0xFF is not a valid byte in EUC-KR/CP949 or Shift_JIS, so every codec
	// fails and the name falls through to hexEscape; the ASCII prefix must
	// survive untouched, only the bad byte gets hex-coded.
	got := DecodeName([]byte("abc\xff"))
	want := "abcff"
	if got != want {
		t.Errorf("DecodeName(abc\\xff) = %q, want %q", got, want)
	}
}

func TestDecodePathStripsLeadingDataComponent(t *testing.T) {
	got := DecodePath([]byte(`data\sprite\npc\001.spr`))
	want := "sprite/npc/001.spr"
	if got != want {
		t.Errorf("DecodePath = %q, want %q", got, want)
	}
}

func TestDecodePathLeadingDataIsCaseInsensitive(t *testing.T) {
	got := DecodePath([]byte(`DATA\texture\foo.bmp`))
	want := "texture/foo.bmp"
	if got != want {
		t.Errorf("DecodePath = %q, want %q", got, want)
	}
}

func TestDecodePathWithoutLeadingData(t *testing.T) {
	got := DecodePath([]byte(`sprite\npc\001.spr`))
	want := "sprite/npc/001.spr"
	if got != want {
		t.Errorf("DecodePath = %q, want %q", got, want)
	}
}
