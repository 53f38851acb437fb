package wld

import (
	"bytes"
	"encoding/binary"
	"errors"
	"reflect"
	"testing"
)

// sampleDoc builds a small zone document with a complete texture chain,
// a mesh, and one placed object. Every slice field is populated so the
// parsed form compares equal to this authored form.
func sampleDoc() *Document {
	pool := NewStringPool()
	pool.Add("") // real pools open with a NUL, offset 0 never names anything
	spriteName := pool.Add("GRASS_SPRITE")
	mdfName := pool.Add("GRASS_MDF")
	mpName := pool.Add("GRASS_MP")
	meshName := pool.Add("GRASS_DMSPRITEDEF")
	actorName := pool.Add("TREE1_ACTORDEF") // no matching fragment, stays dangling

	radius := float32(0.5)
	loc := Location{X: -10.25, Y: 20.5, Z: 1.5, RotateZ: 128}

	return &Document{
		Header:  Header{Version: OldVersion, RegionCount: 1, MaxObjectBytes: 64, StringCount: 6},
		Strings: pool,
		Fragments: []Fragment{
			&TextureImages{
				Entries: []EncodedFilename{{NameLen: 10, Name: "GRASS.BMP"}},
			},
			&Texture{
				NameRef: -spriteName,
				Frames:  []Ref[*TextureImages]{RefByIndex[*TextureImages](1)},
			},
			&TextureReference{
				Texture: RefByIndex[*Texture](2),
				Flags:   0x50,
			},
			&Material{
				NameRef:      -mdfName,
				Flags:        0x02,
				Transparency: 0x80000001,
				MaskColor:    [2]float32{0, 0.75},
				Texture:      RefByIndex[*TextureReference](3),
				Pair:         &MaterialPair{A: 0, B: 0},
			},
			&MaterialList{
				NameRef:   -mpName,
				Materials: []Ref[*Material]{RefByIndex[*Material](4)},
			},
			&Mesh{
				NameRef:      -meshName,
				Flags:        0x00018003,
				MaterialList: RefByIndex[*MaterialList](5),
				Center:       [3]float32{-2502, -2432, 190},
				MaxDistance:  37.5,
				Min:          [3]float32{-2503, -2433, 189},
				Max:          [3]float32{-2501, -2431, 191},
				Scale:        5,
				Positions:    [][3]int16{{2, -1154, -3}, {30, -1152, -3}, {16, -1120, 5}, {40, -1110, 6}},
				TexCoords:    [][2]int16{{77, 77}, {205, 77}, {141, 205}, {230, 230}},
				Normals:      [][3]int8{{29, 31, 119}, {0, 0, 127}, {-29, -31, 119}, {0, 127, 0}},
				Colors:       []uint32{0xF0B0B0B0, 0xF0B0B0B0, 0xF0D0D0D0, 0xF0FFFFFF},
				Polygons: []MeshPolygon{
					{Indexes: [3]uint16{0, 1, 2}},
					{Flags: 0x10, Indexes: [3]uint16{1, 3, 2}},
				},
				VertexPieces:     []MeshVertexPiece{{Count: 4, Index: 1}},
				PolygonMaterials: []MeshMaterialGroup{{Count: 2, Index: 0}},
				VertexMaterials:  []MeshMaterialGroup{{Count: 4, Index: 0}},
				MeshOps: []MeshOp{
					{Index1: 4, Type: 2},
					{Offset: 1.5, Param1: 1, Type: 4},
				},
			},
			&ObjectLocation{
				ActorDefRef:    -actorName,
				Flags:          0x26, // location, bounding radius, active
				Location:       &loc,
				BoundingRadius: &radius,
			},
		},
	}
}

func mustEncode(t *testing.T, doc *Document) []byte {
	t.Helper()
	data, err := doc.Encode()
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	return data
}

// fragmentTableOffset returns the byte offset of the first fragment
// record: the fixed header plus the pool size stored at bytes 20..24.
func fragmentTableOffset(b []byte) int {
	return headerSize + int(binary.LittleEndian.Uint32(b[20:24]))
}

func TestParseEncode_RoundTrip(t *testing.T) {
	doc := sampleDoc()
	data := mustEncode(t, doc)

	got, err := Parse(data)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if got.Header != doc.Header {
		t.Fatalf("header mismatch: %#v vs %#v", doc.Header, got.Header)
	}
	if !reflect.DeepEqual(doc, got) {
		t.Fatalf("doc mismatch\nwant: %#v\ngot:  %#v", doc, got)
	}

	again := mustEncode(t, got)
	if !bytes.Equal(data, again) {
		t.Fatalf("re-encode not byte-identical: %d vs %d bytes", len(data), len(again))
	}
}

func TestParse_TrailingBytesIgnored(t *testing.T) {
	doc := sampleDoc()
	data := mustEncode(t, doc)
	data = append(data, 0xDE, 0xAD, 0xBE, 0xEF, 0x00)

	got, err := Parse(data)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if !reflect.DeepEqual(doc, got) {
		t.Fatal("doc mismatch after trailing garbage")
	}
}

func TestParse_ShortHeader(t *testing.T) {
	data := mustEncode(t, sampleDoc())
	_, err := Parse(data[:27])
	if !errors.Is(err, ErrTruncated) {
		t.Fatalf("expected ErrTruncated, got %v", err)
	}
}

func TestParse_BadMagic(t *testing.T) {
	data := mustEncode(t, sampleDoc())
	data[0] ^= 0xFF
	_, err := Parse(data)
	if !errors.Is(err, ErrBadMagic) {
		t.Fatalf("expected ErrBadMagic, got %v", err)
	}
}

func TestParse_UnsupportedVersion(t *testing.T) {
	data := mustEncode(t, sampleDoc())
	binary.LittleEndian.PutUint32(data[4:8], 0x00015501)
	_, err := Parse(data)
	if !errors.Is(err, ErrUnsupportedVersion) {
		t.Fatalf("expected ErrUnsupportedVersion, got %v", err)
	}
}

func TestParse_StringPoolTruncated(t *testing.T) {
	data := mustEncode(t, sampleDoc())
	// Declare a pool larger than the whole file.
	binary.LittleEndian.PutUint32(data[20:24], uint32(len(data)))
	_, err := Parse(data)
	if !errors.Is(err, ErrTruncated) {
		t.Fatalf("expected ErrTruncated, got %v", err)
	}
}

func TestParse_FragmentHeaderTruncated(t *testing.T) {
	data := mustEncode(t, sampleDoc())
	// Cut the file four bytes into the first fragment record.
	_, err := Parse(data[:fragmentTableOffset(data)+4])
	if !errors.Is(err, ErrTruncated) {
		t.Fatalf("expected ErrTruncated, got %v", err)
	}
}

func TestParse_FragmentBodyTruncated(t *testing.T) {
	data := mustEncode(t, sampleDoc())
	off := fragmentTableOffset(data)
	// First fragment claims more body bytes than the file holds.
	binary.LittleEndian.PutUint32(data[off:off+4], uint32(len(data)))
	_, err := Parse(data)
	if !errors.Is(err, ErrTruncated) {
		t.Fatalf("expected ErrTruncated, got %v", err)
	}
	if !errors.Is(err, ErrFragment) {
		t.Fatalf("expected ErrFragment, got %v", err)
	}
	var fe *FragmentError
	if !errors.As(err, &fe) {
		t.Fatalf("expected *FragmentError, got %T", err)
	}
	if fe.Index != 1 || fe.Type != 0x03 || fe.Offset != int64(off) {
		t.Fatalf("unexpected fragment error detail: %#v", fe)
	}
}

func TestParse_BodyShorterThanFields(t *testing.T) {
	data := mustEncode(t, sampleDoc())
	off := fragmentTableOffset(data)
	// Shrink the first body to its name word; the codec runs out of
	// bytes reading the entry count.
	binary.LittleEndian.PutUint32(data[off:off+4], 4)
	_, err := Parse(data)
	var fe *FragmentError
	if !errors.As(err, &fe) {
		t.Fatalf("expected *FragmentError, got %v", err)
	}
	if fe.Index != 1 || !errors.Is(fe.Err, ErrTruncated) {
		t.Fatalf("unexpected fragment error detail: %#v", fe)
	}
}

func TestParse_UnknownFragmentType(t *testing.T) {
	data := mustEncode(t, sampleDoc())
	off := fragmentTableOffset(data)
	size := binary.LittleEndian.Uint32(data[off : off+4])
	binary.LittleEndian.PutUint32(data[off+4:off+8], 0xEE)
	_, err := Parse(data)
	if !errors.Is(err, ErrUnknownFragment) {
		t.Fatalf("expected ErrUnknownFragment, got %v", err)
	}
	var fe *FragmentError
	if !errors.As(err, &fe) {
		t.Fatalf("expected *FragmentError, got %T", err)
	}
	if fe.Index != 1 || fe.Type != 0xEE || fe.Offset != int64(off) || len(fe.Body) != int(size) {
		t.Fatalf("unexpected fragment error detail: %#v", fe)
	}
}

func TestParse_MaxFragmentsLimit(t *testing.T) {
	data := mustEncode(t, sampleDoc())
	_, err := Parse(data, WithLimits(Limits{MaxFragments: 2}))
	if !errors.Is(err, ErrTooLarge) {
		t.Fatalf("expected ErrTooLarge, got %v", err)
	}
}

func TestParse_MaxFragmentSizeLimit(t *testing.T) {
	data := mustEncode(t, sampleDoc())
	_, err := Parse(data, WithLimits(Limits{MaxFragmentSize: 8}))
	if !errors.Is(err, ErrTooLarge) {
		t.Fatalf("expected ErrTooLarge, got %v", err)
	}
}

func TestParse_MaxStringPoolLimit(t *testing.T) {
	data := mustEncode(t, sampleDoc())
	_, err := Parse(data, WithLimits(Limits{MaxStringPoolSize: 4}))
	if !errors.Is(err, ErrTooLarge) {
		t.Fatalf("expected ErrTooLarge, got %v", err)
	}
}

func TestParse_NegativeLimitRejected(t *testing.T) {
	data := mustEncode(t, sampleDoc())
	_, err := Parse(data, WithLimits(Limits{MaxFragments: -1}))
	if !errors.Is(err, ErrTooLarge) {
		t.Fatalf("expected ErrTooLarge, got %v", err)
	}
}

func TestEncode_UnmappableName(t *testing.T) {
	doc := sampleDoc()
	doc.Strings.Add("世界") // outside Windows-1252
	_, err := doc.Encode()
	if !errors.Is(err, ErrStringEncoding) {
		t.Fatalf("expected ErrStringEncoding, got %v", err)
	}
}

func TestDocument_At(t *testing.T) {
	doc := sampleDoc()
	if doc.At(0) != nil || doc.At(len(doc.Fragments)+1) != nil {
		t.Fatal("out of range positions must return nil")
	}
	if _, ok := doc.At(1).(*TextureImages); !ok {
		t.Fatalf("expected *TextureImages at position 1, got %T", doc.At(1))
	}
	if _, ok := doc.At(6).(*Mesh); !ok {
		t.Fatalf("expected *Mesh at position 6, got %T", doc.At(6))
	}
}

func TestDocument_FragmentName(t *testing.T) {
	doc := sampleDoc()
	name, ok := doc.FragmentName(doc.At(6))
	if !ok || name != "GRASS_DMSPRITEDEF" {
		t.Fatalf("mesh name = %q, %v", name, ok)
	}
	if _, ok := doc.FragmentName(doc.At(1)); ok {
		t.Fatal("unnamed fragment must not resolve a name")
	}
}

func TestHeader_Old(t *testing.T) {
	if !(Header{Version: OldVersion}).Old() {
		t.Fatal("OldVersion must report old")
	}
	if (Header{Version: NewVersion}).Old() {
		t.Fatal("NewVersion must not report old")
	}
}
