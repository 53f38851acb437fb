package wld

import (
	"encoding/binary"
	"fmt"
)

// Magic is the first word of every scene document.
const Magic uint32 = 0x54503D02

// Version words the client shipped with. OldVersion is the original 1999
// format. NewVersion appeared with the updated client; it changes how
// texture coordinates are interpreted but not the wire shapes.
const (
	OldVersion uint32 = 0x00015500
	NewVersion uint32 = 0x1000C800
)

// headerSize is the fixed preamble length in bytes.
const headerSize = 28

// Header carries the preamble words that survive a rewrite. The fragment
// count and string pool size describe the tables that follow and are
// recomputed on encode; the other three words hold client bookkeeping
// (region count, largest object size, string count) that this package
// stores bit-for-bit without interpreting.
type Header struct {
	Version        uint32
	RegionCount    uint32
	MaxObjectBytes uint32
	StringCount    uint32
}

// Old reports whether the document uses the original version word. Old
// documents store texture coordinates in 1/256 units; new ones store
// whole floats.
func (h Header) Old() bool { return h.Version == OldVersion }

// Document is a parsed scene file: header, string pool, and every
// fragment in file order. No method mutates a Document after Parse, so
// concurrent readers need no locking. To author a document from scratch,
// fill the fields and call Encode once.
type Document struct {
	Header    Header
	Strings   *StringPool
	Fragments []Fragment
}

// Parse reads a scene document from data.
//
// Parsing proceeds in order:
//  1. Fixed header: magic, version, table sizes. An unknown version word
//     fails with ErrUnsupportedVersion before anything else is read.
//  2. String pool: the scrambled block declared by the header.
//  3. Fragments: exactly the declared count, each dispatched to its
//     codec by type code. A code outside the known set or a body that
//     ends early fails with a *FragmentError carrying the position,
//     type, offset, and raw body.
//
// Bytes after the last fragment (the customary 0xFFFFFFFF trailer) are
// ignored. Documents the client shipped re-encode byte-identically.
func Parse(data []byte, opts ...ParseOption) (*Document, error) {
	var cfg parseConfig
	for _, o := range opts {
		o(&cfg)
	}
	lim := cfg.limits.withDefaults()
	if err := lim.validate(); err != nil {
		return nil, err
	}

	if len(data) < headerSize {
		return nil, fmt.Errorf("%w: %d byte input, header needs %d", ErrTruncated, len(data), headerSize)
	}
	if magic := binary.LittleEndian.Uint32(data[0:4]); magic != Magic {
		return nil, fmt.Errorf("%w: 0x%08x", ErrBadMagic, magic)
	}
	h := Header{
		Version:        binary.LittleEndian.Uint32(data[4:8]),
		RegionCount:    binary.LittleEndian.Uint32(data[12:16]),
		MaxObjectBytes: binary.LittleEndian.Uint32(data[16:20]),
		StringCount:    binary.LittleEndian.Uint32(data[24:28]),
	}
	if h.Version != OldVersion && h.Version != NewVersion {
		return nil, fmt.Errorf("%w: 0x%08x", ErrUnsupportedVersion, h.Version)
	}
	fragmentCount := binary.LittleEndian.Uint32(data[8:12])
	poolSize := binary.LittleEndian.Uint32(data[20:24])
	if int64(fragmentCount) > int64(lim.MaxFragments) {
		return nil, fmt.Errorf("%w: %d fragments, limit %d", ErrTooLarge, fragmentCount, lim.MaxFragments)
	}
	if int64(poolSize) > int64(lim.MaxStringPoolSize) {
		return nil, fmt.Errorf("%w: %d byte string pool, limit %d", ErrTooLarge, poolSize, lim.MaxStringPoolSize)
	}

	off := headerSize
	if int64(len(data)-off) < int64(poolSize) {
		return nil, fmt.Errorf("%w: string pool declares %d bytes, have %d", ErrTruncated, poolSize, len(data)-off)
	}
	doc := &Document{
		Header:    h,
		Strings:   parseStringPool(data[off : off+int(poolSize)]),
		Fragments: make([]Fragment, 0, int(fragmentCount)),
	}
	off += int(poolSize)

	for i := 1; i <= int(fragmentCount); i++ {
		if len(data)-off < 8 {
			return nil, fmt.Errorf("%w: fragment %d header at offset %d", ErrTruncated, i, off)
		}
		size := binary.LittleEndian.Uint32(data[off : off+4])
		typ := binary.LittleEndian.Uint32(data[off+4 : off+8])
		if int64(size) > int64(lim.MaxFragmentSize) {
			return nil, fmt.Errorf("%w: fragment %d declares %d bytes, limit %d", ErrTooLarge, i, size, lim.MaxFragmentSize)
		}
		rest := data[off+8:]
		if int64(len(rest)) < int64(size) {
			return nil, &FragmentError{
				Index: i, Type: typ, Offset: int64(off),
				Body: append([]byte(nil), rest...),
				Err:  fmt.Errorf("%w: body declares %d bytes, have %d", ErrTruncated, size, len(rest)),
			}
		}
		body := rest[:size]
		decode, known := codecs[typ]
		if !known {
			return nil, &FragmentError{
				Index: i, Type: typ, Offset: int64(off),
				Body: append([]byte(nil), body...),
				Err:  ErrUnknownFragment,
			}
		}
		f, err := decode(newReader(body))
		if err != nil {
			return nil, &FragmentError{
				Index: i, Type: typ, Offset: int64(off),
				Body: append([]byte(nil), body...),
				Err:  err,
			}
		}
		doc.Fragments = append(doc.Fragments, f)
		off += 8 + int(size)
	}
	return doc, nil
}

// Encode renders the document back to wire form. The header's fragment
// count and string pool size are derived from the current tables;
// fragment bodies are padded to four-byte boundaries; the 0xFFFFFFFF
// trailer the client writes after the last fragment is appended.
func (d *Document) Encode() ([]byte, error) {
	var pool []byte
	if d.Strings != nil {
		var err error
		pool, err = d.Strings.encode()
		if err != nil {
			return nil, err
		}
	}

	buf := make([]byte, headerSize, headerSize+len(pool)+64*len(d.Fragments))
	binary.LittleEndian.PutUint32(buf[0:4], Magic)
	binary.LittleEndian.PutUint32(buf[4:8], d.Header.Version)
	binary.LittleEndian.PutUint32(buf[8:12], uint32(len(d.Fragments)))
	binary.LittleEndian.PutUint32(buf[12:16], d.Header.RegionCount)
	binary.LittleEndian.PutUint32(buf[16:20], d.Header.MaxObjectBytes)
	binary.LittleEndian.PutUint32(buf[20:24], uint32(len(pool)))
	binary.LittleEndian.PutUint32(buf[24:28], d.Header.StringCount)
	buf = append(buf, pool...)

	for i, f := range d.Fragments {
		body, err := f.Encode()
		if err != nil {
			return nil, fmt.Errorf("wld: encode fragment %d type 0x%02x: %w", i+1, f.TypeCode(), err)
		}
		pad := pad4(len(body))
		buf = binary.LittleEndian.AppendUint32(buf, uint32(len(body)+pad))
		buf = binary.LittleEndian.AppendUint32(buf, f.TypeCode())
		buf = append(buf, body...)
		for ; pad > 0; pad-- {
			buf = append(buf, 0)
		}
	}

	// Trailer after the last fragment. The client always writes it and
	// never reads it.
	return binary.LittleEndian.AppendUint32(buf, 0xFFFFFFFF), nil
}

// At returns the fragment at 1-based position i, or nil when i is out of
// range. Wire references count fragments from one; zero is the "no
// fragment" value.
func (d *Document) At(i int) Fragment {
	if i < 1 || i > len(d.Fragments) {
		return nil
	}
	return d.Fragments[i-1]
}

// FragmentName resolves a fragment's own name against the string pool.
// Fragments with a zero name word have no name.
func (d *Document) FragmentName(f Fragment) (string, bool) {
	if d.Strings == nil || f.nameRef() == 0 {
		return "", false
	}
	return d.Strings.Get(f.nameRef())
}

// NameRef returns a fragment's own name reference word: zero or a
// negated string pool offset.
func NameRef(f Fragment) int32 { return f.nameRef() }
