package scene

import (
	"encoding/binary"
	"sort"

	"github.com/logicossoftware/go-wld"
)

// Region is a read-only view over one BSP leaf volume.
type Region struct {
	doc   *wld.Document
	frag  *wld.BspRegion
	index int
}

// Fragment returns the underlying fragment.
func (r Region) Fragment() *wld.BspRegion { return r.frag }

// Index returns the region's ordinal, counting from zero in document
// order. Visibility streams and region flag lists identify regions by
// this ordinal.
func (r Region) Index() int { return r.index }

// Mesh returns the geometry contained in the volume, for regions that
// carry any.
func (r Region) Mesh() (Mesh, bool) {
	if r.frag.Mesh == nil {
		return Mesh{}, false
	}
	m, ok := wld.Get(r.doc, *r.frag.Mesh)
	if !ok {
		return Mesh{}, false
	}
	return Mesh{doc: r.doc, frag: m}, true
}

// Nearby returns the ordinals of the regions the client treats as close
// to this one, ascending. Every visibility stream the region stores is
// decoded and the results merged.
func (r Region) Nearby() []uint32 {
	seen := make(map[uint32]struct{})
	for _, p := range r.frag.PVS {
		for _, id := range DecodeVisibility(p.Data) {
			seen[id] = struct{}{}
		}
	}
	if len(seen) == 0 {
		return nil
	}
	out := make([]uint32, 0, len(seen))
	for id := range seen {
		out = append(out, id)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// DecodeVisibility expands one run-length-encoded visibility stream
// into the region ordinals it marks as nearby. The stream walks the
// ordinal space upward from zero. Bytes 0x00..0x3E skip that many
// ordinals and 0x3F skips by the following 16-bit word; 0x40..0x7F skip
// by bits 3..5 then include bits 0..2, while 0x80..0xBF include bits
// 3..5 then skip bits 0..2; 0xC0..0xFE include the value less 0xC0 and
// 0xFF includes by the following word. A stream cut off inside a word
// escape yields the ordinals decoded up to that point.
func DecodeVisibility(data []byte) []uint32 {
	var out []uint32
	current := uint32(0)
	include := func(n uint32) {
		for ; n > 0; n-- {
			out = append(out, current)
			current++
		}
	}
	for i := 0; i < len(data); i++ {
		b := data[i]
		switch {
		case b <= 0x3E:
			current += uint32(b)
		case b == 0x3F:
			if i+2 >= len(data) {
				return out
			}
			current += uint32(binary.LittleEndian.Uint16(data[i+1 : i+3]))
			i += 2
		case b <= 0x7F:
			current += uint32(b>>3) & 7
			include(uint32(b) & 7)
		case b <= 0xBF:
			include(uint32(b>>3) & 7)
			current += uint32(b) & 7
		case b <= 0xFE:
			include(uint32(b) - 0xC0)
		default: // 0xFF
			if i+2 >= len(data) {
				return out
			}
			include(uint32(binary.LittleEndian.Uint16(data[i+1 : i+3])))
			i += 2
		}
	}
	return out
}
