package wld

import (
	"fmt"
	"strings"

	"golang.org/x/text/encoding/charmap"
)

// stringKey is the cyclic XOR mask applied to every byte of stored string
// data. Applying it twice restores the original bytes.
var stringKey = [8]byte{0x95, 0x3A, 0xC5, 0x2A, 0x95, 0x7A, 0x95, 0x6A}

// scramble XORs b in place with the cyclic key.
func scramble(b []byte) {
	for i := range b {
		b[i] ^= stringKey[i%len(stringKey)]
	}
}

func decode1252(b []byte) string {
	// Windows-1252 decoding is total; undefined bytes become U+FFFD.
	s, _ := charmap.Windows1252.NewDecoder().Bytes(b)
	return string(s)
}

func encode1252(s string) ([]byte, error) {
	b, err := charmap.Windows1252.NewEncoder().Bytes([]byte(s))
	if err != nil {
		return nil, fmt.Errorf("%w: %q", ErrStringEncoding, s)
	}
	return b, nil
}

// decodeString unscrambles b and converts it from Windows-1252.
func decodeString(b []byte) string {
	tmp := make([]byte, len(b))
	copy(tmp, b)
	scramble(tmp)
	return decode1252(tmp)
}

// encodeString converts s to Windows-1252 and scrambles the result.
func encodeString(s string) ([]byte, error) {
	b, err := encode1252(s)
	if err != nil {
		return nil, err
	}
	scramble(b)
	return b, nil
}

// StringPool holds a document's scrambled string block. Fragments refer
// to names by byte offset into the decoded block; a fragment's own name
// reference stores the negated offset.
type StringPool struct {
	offsets []int32
	entries map[int32]string
	next    int32
}

// NewStringPool returns an empty pool for authoring documents from
// scratch.
func NewStringPool() *StringPool {
	return &StringPool{entries: make(map[int32]string)}
}

// parseStringPool decodes a scrambled string block. One entry is recorded
// per NUL terminator, keyed by the raw byte offset where that string
// begins. Bytes after the final NUL are alignment padding and produce no
// entry.
func parseStringPool(data []byte) *StringPool {
	raw := make([]byte, len(data))
	copy(raw, data)
	scramble(raw)

	p := NewStringPool()
	start := 0
	for i, b := range raw {
		if b != 0 {
			continue
		}
		off := int32(start)
		p.entries[off] = decode1252(raw[start:i])
		p.offsets = append(p.offsets, off)
		start = i + 1
	}
	p.next = int32(start)
	return p
}

// Get returns the string starting at the given offset. Negative offsets
// are accepted and negated, so a fragment's raw name reference can be
// passed directly. Only exact segment starts resolve; offsets into the
// middle of a stored string report false.
func (p *StringPool) Get(offset int32) (string, bool) {
	if offset < 0 {
		offset = -offset
	}
	s, ok := p.entries[offset]
	return s, ok
}

// Add records s at the next free offset and returns that offset. The
// offset negated is the value to store in a fragment's name reference.
func (p *StringPool) Add(s string) int32 {
	off := p.next
	p.entries[off] = s
	p.offsets = append(p.offsets, off)
	p.next += int32(len(s)) + 1
	return off
}

// Len reports the number of stored strings.
func (p *StringPool) Len() int { return len(p.offsets) }

// Offsets returns the segment start offsets in ascending order. The slice
// is a copy.
func (p *StringPool) Offsets() []int32 {
	out := make([]int32, len(p.offsets))
	copy(out, p.offsets)
	return out
}

// encode renders the pool back to its scrambled wire form: each string in
// offset order followed by its NUL, XOR-scrambled, then zero-padded to a
// four-byte boundary. The padding is appended after scrambling, matching
// the stored layout.
func (p *StringPool) encode() ([]byte, error) {
	var sb strings.Builder
	for _, off := range p.offsets {
		sb.WriteString(p.entries[off])
		sb.WriteByte(0)
	}
	enc, err := encodeString(sb.String())
	if err != nil {
		return nil, err
	}
	return append(enc, make([]byte, pad4(len(enc)))...), nil
}

// encodedString reads n scrambled bytes from the body and returns the
// decoded string with trailing NULs removed.
func (r *reader) encodedString(n int) string {
	b := r.take(n)
	if b == nil {
		return ""
	}
	return strings.TrimRight(decodeString(b), "\x00")
}

// encodedString appends the scrambled form of s plus its NUL terminator.
func (w *writer) encodedString(s string) {
	b, err := encodeString(s + "\x00")
	if err != nil {
		if w.fail == nil {
			w.fail = err
		}
		return
	}
	w.bytes(b)
}

// encodedTail reads the size-prefixed user data string that closes object
// location and region flag bodies.
func (r *reader) encodedTail() (uint32, string) {
	size := r.u32()
	return size, r.encodedString(int(size))
}

// encodedTail writes the stored size word, then the scrambled string
// resized to the stored size plus alignment padding. The size is kept
// verbatim rather than derived from the string because the stored form
// may carry extra trailing NULs that decoding strips.
func (w *writer) encodedTail(size uint32, s string) {
	w.u32(size)
	b, err := encodeString(s + "\x00")
	if err != nil {
		if w.fail == nil {
			w.fail = err
		}
		return
	}
	want := int(size) + pad4(int(size))
	for len(b) < want {
		b = append(b, 0)
	}
	w.bytes(b[:want])
}
