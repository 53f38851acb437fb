package archive

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"
	"math"
	"os"
	"sort"
	"strings"

	"github.com/klauspost/compress/zlib"
)

// Magic is the second header word, "PFS " read as a little-endian u32.
const Magic uint32 = 0x20534650

// Version is the only archive revision the client ever shipped.
const Version uint32 = 0x00020000

const (
	headerSize     = 12
	indexEntrySize = 12
	footerSize     = 9

	// Members are split into independently deflated blocks of this many
	// uncompressed bytes.
	blockSize = 8192

	// The directory's index entry carries this instead of a name hash.
	directoryCRC uint32 = 0xFFFFFFFF
)

var footerTag = [5]byte{'S', 'T', 'E', 'V', 'E'}

// File is one named archive member.
type File struct {
	Name string
	Data []byte
}

// Footer trails most shipped archives: a five-byte tag, customarily
// "STEVE", and a date word. Decode keeps it when present so Encode can
// write it back; archives without one re-encode without one.
type Footer struct {
	Tag  [5]byte
	Date uint32
}

// Archive is a decoded container: an ordered list of named members and
// the optional footer. Members keep the directory's order from Decode,
// or insertion order when built with Add. Set Footer to nil to encode
// without one.
type Archive struct {
	files  []File
	Footer *Footer
}

// New returns an empty archive that encodes with the customary "STEVE"
// footer.
func New() *Archive {
	return &Archive{Footer: &Footer{Tag: footerTag}}
}

// Len returns the number of members.
func (a *Archive) Len() int { return len(a.files) }

// Names lists member names in archive order.
func (a *Archive) Names() []string {
	names := make([]string, len(a.files))
	for i, f := range a.files {
		names[i] = f.Name
	}
	return names
}

// Files returns the members in archive order. The slice is a copy; the
// member data is shared.
func (a *Archive) Files() []File {
	return append([]File(nil), a.files...)
}

// File returns the named member's contents. Name comparison ignores
// case, matching how the client requests assets.
func (a *Archive) File(name string) ([]byte, error) {
	for _, f := range a.files {
		if strings.EqualFold(f.Name, name) {
			return f.Data, nil
		}
	}
	return nil, fmt.Errorf("%w: %s", ErrNotFound, name)
}

// Add appends a member, replacing any existing member whose name
// matches ignoring case. The name is stored as given.
func (a *Archive) Add(name string, data []byte) {
	for i := range a.files {
		if strings.EqualFold(a.files[i].Name, name) {
			a.files[i] = File{Name: name, Data: data}
			return
		}
	}
	a.files = append(a.files, File{Name: name, Data: data})
}

// Remove deletes the named member, ignoring case, and reports whether
// it was present.
func (a *Archive) Remove(name string) bool {
	for i := range a.files {
		if strings.EqualFold(a.files[i].Name, name) {
			a.files = append(a.files[:i], a.files[i+1:]...)
			return true
		}
	}
	return false
}

// Open reads the archive at path.
func Open(path string, opts ...DecodeOption) (*Archive, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return Decode(f, opts...)
}

type indexEntry struct {
	crc    uint32
	offset uint32 // file offset of the member's first block
	size   uint32 // total uncompressed bytes
}

// Decode reads an archive from r and inflates every member.
//
// Reading proceeds in order: the fixed header, the block region between
// header and index, the index, and the footer when one trails the
// index. The index entry with the highest data offset is the directory;
// the remaining entries, sorted by data offset, pair positionally with
// the directory's name list. Each member's stored name hash is checked
// against its name and a mismatch fails with ErrChecksum.
func Decode(r io.Reader, opts ...DecodeOption) (*Archive, error) {
	var cfg decodeConfig
	for _, o := range opts {
		o(&cfg)
	}
	lim := cfg.limits.withDefaults()
	if err := lim.validate(); err != nil {
		return nil, err
	}

	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	if len(data) < headerSize {
		return nil, fmt.Errorf("%w: %d byte input, header needs %d", ErrTruncated, len(data), headerSize)
	}
	indexOff := binary.LittleEndian.Uint32(data[0:4])
	if magic := binary.LittleEndian.Uint32(data[4:8]); magic != Magic {
		return nil, fmt.Errorf("%w: 0x%08x", ErrBadMagic, magic)
	}
	if v := binary.LittleEndian.Uint32(data[8:12]); v != Version {
		return nil, fmt.Errorf("%w: 0x%08x", ErrUnsupportedVersion, v)
	}
	if int64(indexOff) < headerSize || int64(indexOff) > int64(len(data)) {
		return nil, fmt.Errorf("%w: index offset %d outside %d byte input", ErrTruncated, indexOff, len(data))
	}

	blocks, err := parseBlocks(data[headerSize:indexOff])
	if err != nil {
		return nil, err
	}

	rest := data[indexOff:]
	if len(rest) < 4 {
		return nil, fmt.Errorf("%w: index count at offset %d", ErrTruncated, indexOff)
	}
	count := binary.LittleEndian.Uint32(rest[0:4])
	if count == 0 {
		return nil, fmt.Errorf("%w: index has no directory entry", ErrCorrupt)
	}
	if int64(count)-1 > int64(lim.MaxFiles) {
		return nil, fmt.Errorf("%w: %d members, limit %d", ErrTooLarge, count-1, lim.MaxFiles)
	}
	if int64(len(rest)-4) < int64(count)*indexEntrySize {
		return nil, fmt.Errorf("%w: index declares %d entries, have %d bytes", ErrTruncated, count, len(rest)-4)
	}
	entries := make([]indexEntry, count)
	for i := range entries {
		off := 4 + i*indexEntrySize
		entries[i] = indexEntry{
			crc:    binary.LittleEndian.Uint32(rest[off : off+4]),
			offset: binary.LittleEndian.Uint32(rest[off+4 : off+8]),
			size:   binary.LittleEndian.Uint32(rest[off+8 : off+12]),
		}
	}

	var footer *Footer
	if tail := rest[4+int(count)*indexEntrySize:]; len(tail) >= footerSize {
		footer = &Footer{Date: binary.LittleEndian.Uint32(tail[5:9])}
		copy(footer.Tag[:], tail[0:5])
	}

	// The directory has the highest data offset. The sort is stable so
	// a zero-length member sharing the directory's offset cannot
	// displace it.
	sort.SliceStable(entries, func(i, j int) bool { return entries[i].offset < entries[j].offset })
	dirData, err := gather(blocks, entries[len(entries)-1], lim)
	if err != nil {
		return nil, fmt.Errorf("directory: %w", err)
	}
	names, err := parseDirectory(dirData, lim)
	if err != nil {
		return nil, err
	}
	if len(names) != len(entries)-1 {
		return nil, fmt.Errorf("%w: directory lists %d names for %d entries", ErrCorrupt, len(names), len(entries)-1)
	}

	a := &Archive{files: make([]File, 0, len(names)), Footer: footer}
	for i, e := range entries[:len(entries)-1] {
		if want := NameCRC(names[i]); e.crc != want {
			return nil, fmt.Errorf("%w: %s stored 0x%08x, computed 0x%08x", ErrChecksum, names[i], e.crc, want)
		}
		fileData, err := gather(blocks, e, lim)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", names[i], err)
		}
		a.files = append(a.files, File{Name: names[i], Data: fileData})
	}
	return a, nil
}

type block struct {
	offset int    // file offset of this block's size words
	size   int    // uncompressed bytes it inflates to
	data   []byte // deflated payload
}

// parseBlocks splits the region between header and index into blocks.
// Offsets are kept file-absolute because index entries point into the
// file, not into the region.
func parseBlocks(region []byte) ([]block, error) {
	var blocks []block
	pos := 0
	for pos < len(region) {
		if len(region)-pos < 8 {
			return nil, fmt.Errorf("%w: block header at offset %d", ErrTruncated, headerSize+pos)
		}
		csize := binary.LittleEndian.Uint32(region[pos : pos+4])
		usize := binary.LittleEndian.Uint32(region[pos+4 : pos+8])
		if int64(csize) > int64(len(region)-pos-8) {
			return nil, fmt.Errorf("%w: block at offset %d declares %d deflated bytes, have %d",
				ErrTruncated, headerSize+pos, csize, len(region)-pos-8)
		}
		end := pos + 8 + int(csize)
		blocks = append(blocks, block{
			offset: headerSize + pos,
			size:   int(usize),
			data:   region[pos+8 : end],
		})
		pos = end
	}
	return blocks, nil
}

// gather inflates the run of blocks holding one member. A member's
// blocks are contiguous starting at its index offset; some writers
// store offsets without the 12-byte header bias, so the first block at
// or past the offset is taken rather than requiring an exact match.
func gather(blocks []block, e indexEntry, lim Limits) ([]byte, error) {
	if int64(e.size) > int64(lim.MaxFileSize) {
		return nil, fmt.Errorf("%w: member declares %d bytes, limit %d", ErrTooLarge, e.size, lim.MaxFileSize)
	}
	out := make([]byte, 0, int(e.size))
	i := sort.Search(len(blocks), func(i int) bool { return int64(blocks[i].offset) >= int64(e.offset) })
	for len(out) < int(e.size) {
		if i >= len(blocks) {
			return nil, fmt.Errorf("%w: member at offset %d declares %d bytes, blocks end after %d",
				ErrCorrupt, e.offset, e.size, len(out))
		}
		chunk, err := inflate(blocks[i].data, blocks[i].size, lim)
		if err != nil {
			return nil, err
		}
		out = append(out, chunk...)
		i++
	}
	if len(out) != int(e.size) {
		return nil, fmt.Errorf("%w: member declares %d bytes, blocks inflate to %d", ErrCorrupt, e.size, len(out))
	}
	return out, nil
}

// inflate decompresses one block and checks the declared size. The
// reader is capped one byte past the declared size so a lying block
// cannot balloon.
func inflate(in []byte, declared int, lim Limits) ([]byte, error) {
	if declared < 0 || declared > lim.MaxFileSize {
		return nil, fmt.Errorf("%w: block declares %d bytes, limit %d", ErrTooLarge, declared, lim.MaxFileSize)
	}
	zr, err := zlib.NewReader(bytes.NewReader(in))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorrupt, err)
	}
	defer zr.Close()
	out, err := io.ReadAll(io.LimitReader(zr, int64(declared)+1))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorrupt, err)
	}
	if len(out) != declared {
		return nil, fmt.Errorf("%w: block inflates to %d bytes, declared %d", ErrCorrupt, len(out), declared)
	}
	return out, nil
}

// parseDirectory reads the name list: a count, then per name a length
// word that includes the terminator, the bytes, and a NUL.
func parseDirectory(data []byte, lim Limits) ([]string, error) {
	if len(data) < 4 {
		return nil, fmt.Errorf("%w: directory count", ErrTruncated)
	}
	count := binary.LittleEndian.Uint32(data[0:4])
	if int64(count) > int64(lim.MaxFiles) {
		return nil, fmt.Errorf("%w: directory lists %d names, limit %d", ErrTooLarge, count, lim.MaxFiles)
	}
	names := make([]string, 0, int(count))
	pos := 4
	for i := uint32(0); i < count; i++ {
		if len(data)-pos < 4 {
			return nil, fmt.Errorf("%w: directory name %d length", ErrTruncated, i)
		}
		n := int(binary.LittleEndian.Uint32(data[pos : pos+4]))
		pos += 4
		if n <= 0 || n > len(data)-pos {
			return nil, fmt.Errorf("%w: directory name %d declares %d bytes, have %d", ErrCorrupt, i, n, len(data)-pos)
		}
		if data[pos+n-1] != 0 {
			return nil, fmt.Errorf("%w: directory name %d not terminated", ErrCorrupt, i)
		}
		names = append(names, string(data[pos:pos+n-1]))
		pos += n
	}
	return names, nil
}

// Encode writes the archive: header, every member's blocks in archive
// order, the directory's blocks, the index, and the footer when one is
// set. The directory lands after the members so its index entry carries
// the highest data offset, which is how readers find it.
func (a *Archive) Encode(w io.Writer) error {
	dir := binary.LittleEndian.AppendUint32(nil, uint32(len(a.files)))
	for _, f := range a.files {
		dir = binary.LittleEndian.AppendUint32(dir, uint32(len(f.Name)+1))
		dir = append(dir, f.Name...)
		dir = append(dir, 0)
	}

	var body []byte
	entries := make([]indexEntry, 0, len(a.files)+1)
	appendMember := func(crc uint32, data []byte) error {
		if int64(headerSize+len(body)) > math.MaxUint32 {
			return fmt.Errorf("%w: block data overflows the 32-bit offset space", ErrTooLarge)
		}
		e := indexEntry{crc: crc, offset: uint32(headerSize + len(body)), size: uint32(len(data))}
		for len(data) > 0 {
			chunk := data
			if len(chunk) > blockSize {
				chunk = chunk[:blockSize]
			}
			deflated, err := deflate(chunk)
			if err != nil {
				return err
			}
			body = binary.LittleEndian.AppendUint32(body, uint32(len(deflated)))
			body = binary.LittleEndian.AppendUint32(body, uint32(len(chunk)))
			body = append(body, deflated...)
			data = data[len(chunk):]
		}
		entries = append(entries, e)
		return nil
	}
	for _, f := range a.files {
		if int64(len(f.Data)) > math.MaxUint32 {
			return fmt.Errorf("%w: %s is %d bytes", ErrTooLarge, f.Name, len(f.Data))
		}
		if err := appendMember(NameCRC(f.Name), f.Data); err != nil {
			return err
		}
	}
	if err := appendMember(directoryCRC, dir); err != nil {
		return err
	}
	if int64(headerSize+len(body)) > math.MaxUint32 {
		return fmt.Errorf("%w: block data overflows the 32-bit offset space", ErrTooLarge)
	}

	var hdr [headerSize]byte
	binary.LittleEndian.PutUint32(hdr[0:4], uint32(headerSize+len(body)))
	binary.LittleEndian.PutUint32(hdr[4:8], Magic)
	binary.LittleEndian.PutUint32(hdr[8:12], Version)
	if _, err := w.Write(hdr[:]); err != nil {
		return err
	}
	if _, err := w.Write(body); err != nil {
		return err
	}

	idx := binary.LittleEndian.AppendUint32(nil, uint32(len(entries)))
	for _, e := range entries {
		idx = binary.LittleEndian.AppendUint32(idx, e.crc)
		idx = binary.LittleEndian.AppendUint32(idx, e.offset)
		idx = binary.LittleEndian.AppendUint32(idx, e.size)
	}
	if _, err := w.Write(idx); err != nil {
		return err
	}
	if a.Footer != nil {
		var f [footerSize]byte
		copy(f[0:5], a.Footer.Tag[:])
		binary.LittleEndian.PutUint32(f[5:9], a.Footer.Date)
		if _, err := w.Write(f[:]); err != nil {
			return err
		}
	}
	return nil
}

// deflate compresses one block.
func deflate(in []byte) ([]byte, error) {
	var buf bytes.Buffer
	zw := zlib.NewWriter(&buf)
	if _, err := zw.Write(in); err != nil {
		_ = zw.Close()
		return nil, err
	}
	if err := zw.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
