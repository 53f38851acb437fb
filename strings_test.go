package wld

import (
	"bytes"
	"errors"
	"reflect"
	"testing"
)

// scrambled returns the wire form of raw pool content.
func scrambled(s string) []byte {
	b := []byte(s)
	scramble(b)
	return b
}

func TestScramble_Involution(t *testing.T) {
	b := []byte("HELLO_WORLD.BMP and some longer content to cross the key boundary")
	orig := append([]byte(nil), b...)
	scramble(b)
	if bytes.Equal(b, orig) {
		t.Fatal("scramble changed nothing")
	}
	scramble(b)
	if !bytes.Equal(b, orig) {
		t.Fatal("scrambling twice must restore the input")
	}
}

func TestScramble_KnownByte(t *testing.T) {
	b := []byte{'A'}
	scramble(b)
	if b[0] != 'A'^0x95 {
		t.Fatalf("first key byte: got 0x%02X", b[0])
	}
}

func TestStringPool_EntryPerNul(t *testing.T) {
	p := parseStringPool(scrambled("a\x00b\x00"))
	if p.Len() != 2 {
		t.Fatalf("Len = %d, want 2", p.Len())
	}
	if s, ok := p.Get(0); !ok || s != "a" {
		t.Fatalf("Get(0) = %q, %v", s, ok)
	}
	if s, ok := p.Get(2); !ok || s != "b" {
		t.Fatalf("Get(2) = %q, %v", s, ok)
	}
	if _, ok := p.Get(1); ok {
		t.Fatal("offset into the middle of a segment must miss")
	}
	if _, ok := p.Get(4); ok {
		t.Fatal("offset past the last segment must miss")
	}
}

func TestStringPool_NegativeOffset(t *testing.T) {
	p := parseStringPool(scrambled("a\x00b\x00"))
	if s, ok := p.Get(-2); !ok || s != "b" {
		t.Fatalf("Get(-2) = %q, %v", s, ok)
	}
}

func TestStringPool_EmptyFirstSegment(t *testing.T) {
	p := parseStringPool(scrambled("\x00SGRASS\x00"))
	if p.Len() != 2 {
		t.Fatalf("Len = %d, want 2", p.Len())
	}
	if s, ok := p.Get(0); !ok || s != "" {
		t.Fatalf("Get(0) = %q, %v", s, ok)
	}
	if s, ok := p.Get(1); !ok || s != "SGRASS" {
		t.Fatalf("Get(1) = %q, %v", s, ok)
	}
}

func TestStringPool_TailPaddingProducesNoEntry(t *testing.T) {
	// Alignment padding is raw zero bytes appended after scrambling.
	data := append(scrambled("abcde\x00"), 0, 0)
	p := parseStringPool(data)
	if p.Len() != 1 {
		t.Fatalf("Len = %d, want 1", p.Len())
	}
	if s, ok := p.Get(0); !ok || s != "abcde" {
		t.Fatalf("Get(0) = %q, %v", s, ok)
	}
}

func TestStringPool_Add(t *testing.T) {
	p := NewStringPool()
	if off := p.Add("HI"); off != 0 {
		t.Fatalf("first offset = %d", off)
	}
	if off := p.Add(""); off != 3 {
		t.Fatalf("second offset = %d", off)
	}
	if off := p.Add("X"); off != 4 {
		t.Fatalf("third offset = %d", off)
	}
	if got := p.Offsets(); !reflect.DeepEqual(got, []int32{0, 3, 4}) {
		t.Fatalf("Offsets = %v", got)
	}
}

func TestStringPool_EncodeRoundTrip(t *testing.T) {
	p := NewStringPool()
	p.Add("")
	p.Add("SGRASS")
	p.Add("GRASS_SPRITE")
	p.Add("")
	enc, err := p.encode()
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	if len(enc)%4 != 0 {
		t.Fatalf("encoded pool is %d bytes, not 4-aligned", len(enc))
	}
	q := parseStringPool(enc)
	if !reflect.DeepEqual(p, q) {
		t.Fatalf("pool mismatch\nwant: %#v\ngot:  %#v", p, q)
	}
	again, err := q.encode()
	if err != nil {
		t.Fatalf("re-encode: %v", err)
	}
	if !bytes.Equal(enc, again) {
		t.Fatal("re-encode not byte-identical")
	}
}

func TestStringPool_EncodePadIsRawZero(t *testing.T) {
	p := NewStringPool()
	p.Add("abcde") // six bytes with NUL, two bytes of padding
	enc, err := p.encode()
	if err != nil {
		t.Fatal(err)
	}
	if len(enc) != 8 {
		t.Fatalf("encoded pool is %d bytes, want 8", len(enc))
	}
	if enc[6] != 0 || enc[7] != 0 {
		t.Fatalf("padding bytes scrambled: % X", enc[6:8])
	}
}

func TestStringPool_Windows1252(t *testing.T) {
	p := NewStringPool()
	p.Add("CAFÉ_MDF") // É is 0xC9 in Windows-1252
	enc, err := p.encode()
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	q := parseStringPool(enc)
	if s, ok := q.Get(0); !ok || s != "CAFÉ_MDF" {
		t.Fatalf("Get(0) = %q, %v", s, ok)
	}
}

func TestEncodeString_Unmappable(t *testing.T) {
	_, err := encodeString("世界")
	if !errors.Is(err, ErrStringEncoding) {
		t.Fatalf("expected ErrStringEncoding, got %v", err)
	}
}

func TestEncodedString_TrimsTrailingNuls(t *testing.T) {
	r := newReader(scrambled("AB\x00\x00"))
	if s := r.encodedString(4); s != "AB" {
		t.Fatalf("encodedString = %q", s)
	}
	if r.err() != nil {
		t.Fatal(r.err())
	}
}

func TestEncodedTail_RoundTrip(t *testing.T) {
	w := newWriter()
	w.encodedTail(3, "HI")
	body, err := w.finish()
	if err != nil {
		t.Fatal(err)
	}
	// Size word, three content bytes, one raw zero pad byte.
	if len(body) != 8 {
		t.Fatalf("tail is %d bytes, want 8", len(body))
	}
	if body[7] != 0 {
		t.Fatalf("pad byte scrambled: 0x%02X", body[7])
	}
	r := newReader(body)
	size, s := r.encodedTail()
	if size != 3 || s != "HI" {
		t.Fatalf("encodedTail = %d, %q", size, s)
	}
}
