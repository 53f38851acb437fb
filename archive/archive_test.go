package archive

import (
	"bytes"
	"encoding/binary"
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

// sampleArchive builds an archive with a small member, a member large
// enough to span several blocks, and an empty member.
func sampleArchive() *Archive {
	big := make([]byte, 20000)
	for i := range big {
		big[i] = byte(i * 7)
	}
	a := New()
	a.Add("grass.bmp", []byte("not really a bitmap"))
	a.Add("gfaydark.wld", big)
	a.Add("empty.txt", nil)
	return a
}

func encodeArchive(t *testing.T, a *Archive) []byte {
	t.Helper()
	var buf bytes.Buffer
	if err := a.Encode(&buf); err != nil {
		t.Fatalf("Encode: %v", err)
	}
	return buf.Bytes()
}

func decodeArchive(t *testing.T, data []byte) *Archive {
	t.Helper()
	a, err := Decode(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	return a
}

func TestRoundTrip(t *testing.T) {
	src := sampleArchive()
	got := decodeArchive(t, encodeArchive(t, src))

	if !reflect.DeepEqual(got.Names(), src.Names()) {
		t.Fatalf("names = %v, want %v", got.Names(), src.Names())
	}
	for _, f := range src.Files() {
		data, err := got.File(f.Name)
		if err != nil {
			t.Fatalf("File(%q): %v", f.Name, err)
		}
		if !bytes.Equal(data, f.Data) {
			t.Errorf("File(%q) came back %d bytes, want %d", f.Name, len(data), len(f.Data))
		}
	}
	if got.Footer == nil {
		t.Fatal("footer lost in round trip")
	}
	if string(got.Footer.Tag[:]) != "STEVE" || got.Footer.Date != 0 {
		t.Errorf("footer = %q date %d, want STEVE date 0", got.Footer.Tag, got.Footer.Date)
	}
}

func TestEncode_Deterministic(t *testing.T) {
	a := sampleArchive()
	if !bytes.Equal(encodeArchive(t, a), encodeArchive(t, a)) {
		t.Fatal("same archive encoded differently twice")
	}
}

func TestEncode_SplitsLargeMembers(t *testing.T) {
	big := make([]byte, 20000)
	for i := range big {
		big[i] = byte(i)
	}
	a := New()
	a.Add("big.bin", big)
	enc := encodeArchive(t, a)

	// The first block starts right after the header and holds a full
	// 8192 uncompressed bytes.
	if got := binary.LittleEndian.Uint32(enc[16:20]); got != 8192 {
		t.Fatalf("first block inflates to %d bytes, want 8192", got)
	}
	data, err := decodeArchive(t, enc).File("big.bin")
	if err != nil {
		t.Fatalf("File: %v", err)
	}
	if !bytes.Equal(data, big) {
		t.Fatal("multi-block member changed in round trip")
	}
}

func TestDecode_EmptyArchive(t *testing.T) {
	got := decodeArchive(t, encodeArchive(t, New()))
	if got.Len() != 0 {
		t.Fatalf("Len = %d, want 0", got.Len())
	}
}

func TestDecode_BadMagic(t *testing.T) {
	enc := encodeArchive(t, sampleArchive())
	enc[5] ^= 0xFF
	if _, err := Decode(bytes.NewReader(enc)); !errors.Is(err, ErrBadMagic) {
		t.Fatalf("err = %v, want ErrBadMagic", err)
	}
}

func TestDecode_UnsupportedVersion(t *testing.T) {
	enc := encodeArchive(t, sampleArchive())
	enc[10] ^= 0xFF
	if _, err := Decode(bytes.NewReader(enc)); !errors.Is(err, ErrUnsupportedVersion) {
		t.Fatalf("err = %v, want ErrUnsupportedVersion", err)
	}
}

func TestDecode_ShortInput(t *testing.T) {
	enc := encodeArchive(t, sampleArchive())
	if _, err := Decode(bytes.NewReader(enc[:8])); !errors.Is(err, ErrTruncated) {
		t.Fatalf("err = %v, want ErrTruncated", err)
	}
}

func TestDecode_TruncatedIndex(t *testing.T) {
	enc := encodeArchive(t, sampleArchive())
	indexOff := binary.LittleEndian.Uint32(enc[0:4])
	if _, err := Decode(bytes.NewReader(enc[:indexOff+5])); !errors.Is(err, ErrTruncated) {
		t.Fatalf("err = %v, want ErrTruncated", err)
	}
}

func TestDecode_IndexOffsetPastEnd(t *testing.T) {
	enc := encodeArchive(t, sampleArchive())
	binary.LittleEndian.PutUint32(enc[0:4], uint32(len(enc)+1))
	if _, err := Decode(bytes.NewReader(enc)); !errors.Is(err, ErrTruncated) {
		t.Fatalf("err = %v, want ErrTruncated", err)
	}
}

func TestDecode_ChecksumMismatch(t *testing.T) {
	enc := encodeArchive(t, sampleArchive())
	indexOff := binary.LittleEndian.Uint32(enc[0:4])
	// First index entry's stored hash.
	enc[indexOff+4] ^= 0xFF
	if _, err := Decode(bytes.NewReader(enc)); !errors.Is(err, ErrChecksum) {
		t.Fatalf("err = %v, want ErrChecksum", err)
	}
}

func TestDecode_LyingBlockSize(t *testing.T) {
	enc := encodeArchive(t, sampleArchive())
	// First block's uncompressed size word disagrees with its stream.
	binary.LittleEndian.PutUint32(enc[16:20], 7)
	if _, err := Decode(bytes.NewReader(enc)); !errors.Is(err, ErrCorrupt) {
		t.Fatalf("err = %v, want ErrCorrupt", err)
	}
}

func TestDecode_GarbledBlockData(t *testing.T) {
	enc := encodeArchive(t, sampleArchive())
	// Inside the first deflated stream.
	enc[25] ^= 0xFF
	if _, err := Decode(bytes.NewReader(enc)); !errors.Is(err, ErrCorrupt) {
		t.Fatalf("err = %v, want ErrCorrupt", err)
	}
}

func TestDecode_HeaderRelativeOffsets(t *testing.T) {
	// Some tools write data offsets relative to the end of the header
	// rather than the start of the file. The reader takes the first
	// block at or past the stored offset, so both spellings load.
	src := sampleArchive()
	enc := encodeArchive(t, src)
	indexOff := binary.LittleEndian.Uint32(enc[0:4])
	count := binary.LittleEndian.Uint32(enc[indexOff : indexOff+4])
	for i := uint32(0); i < count; i++ {
		field := indexOff + 4 + i*indexEntrySize + 4
		off := binary.LittleEndian.Uint32(enc[field : field+4])
		binary.LittleEndian.PutUint32(enc[field:field+4], off-headerSize)
	}

	got := decodeArchive(t, enc)
	if !reflect.DeepEqual(got.Names(), src.Names()) {
		t.Fatalf("names = %v, want %v", got.Names(), src.Names())
	}
	for _, f := range src.Files() {
		data, err := got.File(f.Name)
		if err != nil {
			t.Fatalf("File(%q): %v", f.Name, err)
		}
		if !bytes.Equal(data, f.Data) {
			t.Errorf("File(%q) came back %d bytes, want %d", f.Name, len(data), len(f.Data))
		}
	}
}

func TestDecode_FileCountLimit(t *testing.T) {
	enc := encodeArchive(t, sampleArchive())
	_, err := Decode(bytes.NewReader(enc), WithLimits(Limits{MaxFiles: 2}))
	if !errors.Is(err, ErrTooLarge) {
		t.Fatalf("err = %v, want ErrTooLarge", err)
	}
}

func TestDecode_FileSizeLimit(t *testing.T) {
	enc := encodeArchive(t, sampleArchive())
	_, err := Decode(bytes.NewReader(enc), WithLimits(Limits{MaxFileSize: 1024}))
	if !errors.Is(err, ErrTooLarge) {
		t.Fatalf("err = %v, want ErrTooLarge", err)
	}
}

func TestFile_CaseInsensitive(t *testing.T) {
	a := sampleArchive()
	data, err := a.File("GRASS.BMP")
	if err != nil {
		t.Fatalf("File(GRASS.BMP): %v", err)
	}
	if string(data) != "not really a bitmap" {
		t.Fatalf("File(GRASS.BMP) = %q", data)
	}
	if _, err := a.File("missing.bmp"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
}

func TestAdd_ReplacesByFoldedName(t *testing.T) {
	a := New()
	a.Add("grass.bmp", []byte("one"))
	a.Add("GRASS.BMP", []byte("two"))
	if a.Len() != 1 {
		t.Fatalf("Len = %d, want 1", a.Len())
	}
	data, err := a.File("grass.bmp")
	if err != nil || string(data) != "two" {
		t.Fatalf("File = %q, %v", data, err)
	}
	if got := a.Names()[0]; got != "GRASS.BMP" {
		t.Fatalf("replacement kept the old spelling %q", got)
	}
}

func TestRemove(t *testing.T) {
	a := sampleArchive()
	if !a.Remove("GFAYDARK.WLD") {
		t.Fatal("Remove missed a present member")
	}
	if a.Remove("gfaydark.wld") {
		t.Fatal("Remove found a member twice")
	}
	if got := a.Names(); !reflect.DeepEqual(got, []string{"grass.bmp", "empty.txt"}) {
		t.Fatalf("names after remove = %v", got)
	}
}

func TestFooter_AbsentStaysAbsent(t *testing.T) {
	a := sampleArchive()
	a.Footer = nil
	enc := encodeArchive(t, a)
	if got := decodeArchive(t, enc); got.Footer != nil {
		t.Fatalf("footer appeared from nowhere: %+v", got.Footer)
	}
	indexOff := binary.LittleEndian.Uint32(enc[0:4])
	count := binary.LittleEndian.Uint32(enc[indexOff : indexOff+4])
	if want := int(indexOff) + 4 + int(count)*indexEntrySize; len(enc) != want {
		t.Fatalf("len(enc) = %d, want %d with no footer", len(enc), want)
	}
}

func TestFooter_ForeignTagPreserved(t *testing.T) {
	a := sampleArchive()
	a.Footer = &Footer{Tag: [5]byte{'H', 'E', 'L', 'L', 'O'}, Date: 0x12345678}
	got := decodeArchive(t, encodeArchive(t, a))
	if got.Footer == nil {
		t.Fatal("footer lost")
	}
	if string(got.Footer.Tag[:]) != "HELLO" || got.Footer.Date != 0x12345678 {
		t.Fatalf("footer = %q date 0x%08x", got.Footer.Tag, got.Footer.Date)
	}
}

func TestOpen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sample.s3d")
	if err := os.WriteFile(path, encodeArchive(t, sampleArchive()), 0o644); err != nil {
		t.Fatal(err)
	}
	a, err := Open(path)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if a.Len() != 3 {
		t.Fatalf("Len = %d, want 3", a.Len())
	}
}
