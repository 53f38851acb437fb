package scene

import (
	"math"

	"github.com/logicossoftware/go-wld"
)

// Mesh is one mesh fragment with its packing undone. Accessors allocate
// fresh slices on every call.
type Mesh struct {
	doc  *wld.Document
	frag *wld.Mesh
}

// Fragment returns the wire-level mesh.
func (m Mesh) Fragment() *wld.Mesh { return m.frag }

// Name resolves the mesh's own name.
func (m Mesh) Name() (string, bool) {
	if m.frag == nil {
		return "", false
	}
	return m.doc.FragmentName(m.frag)
}

// Center returns the point vertex positions are packed around, in world
// units.
func (m Mesh) Center() [3]float32 {
	if m.frag == nil {
		return [3]float32{}
	}
	return m.frag.Center
}

// unpackFactor converts a fixed-point denominator exponent to a
// multiplier. Ldexp keeps a hostile exponent from shifting past the
// integer width; absurd exponents flush toward zero instead.
func unpackFactor(scale uint16) float32 {
	return float32(math.Ldexp(1, -int(scale)))
}

// Positions returns world-space vertex positions: the mesh center plus
// each packed value over 2^scale.
func (m Mesh) Positions() [][3]float32 {
	if m.frag == nil {
		return nil
	}
	factor := unpackFactor(m.frag.Scale)
	center := m.frag.Center
	out := make([][3]float32, len(m.frag.Positions))
	for i, v := range m.frag.Positions {
		out[i] = [3]float32{
			center[0] + float32(v[0])*factor,
			center[1] + float32(v[1])*factor,
			center[2] + float32(v[2])*factor,
		}
	}
	return out
}

// Normals returns unit-range vertex normals. The wire stores each
// component as a signed byte where 127 means 1.0.
func (m Mesh) Normals() [][3]float32 {
	if m.frag == nil {
		return nil
	}
	out := make([][3]float32, len(m.frag.Normals))
	for i, v := range m.frag.Normals {
		out[i] = [3]float32{
			float32(v[0]) / 127,
			float32(v[1]) / 127,
			float32(v[2]) / 127,
		}
	}
	return out
}

// TexCoords returns texture coordinates. Old-version documents store
// them in 1/256 units; new-version documents store whole units.
func (m Mesh) TexCoords() [][2]float32 {
	if m.frag == nil {
		return nil
	}
	out := make([][2]float32, len(m.frag.TexCoords))
	if m.doc.Header.Old() {
		for i, v := range m.frag.TexCoords {
			out[i] = [2]float32{float32(v[0]) / 256, float32(v[1]) / 256}
		}
	} else {
		for i, v := range m.frag.TexCoords {
			out[i] = [2]float32{float32(v[0]), float32(v[1])}
		}
	}
	return out
}

// Colors returns the per-vertex baked lighting values, one RGBA word
// per vertex.
func (m Mesh) Colors() []uint32 {
	if m.frag == nil {
		return nil
	}
	return append([]uint32(nil), m.frag.Colors...)
}

// Triangle is one mesh face ready for a triangle list. Indexes count
// into Positions. Material indexes the mesh's material list, or -1 when
// no material group covers the face. Passable faces do not block
// movement and are skipped when building collision geometry.
type Triangle struct {
	Indexes  [3]uint32
	Material int
	Passable bool
}

// Triangles returns every face with its material resolved from the
// consecutive material group runs.
func (m Mesh) Triangles() []Triangle {
	if m.frag == nil {
		return nil
	}
	tris := make([]Triangle, len(m.frag.Polygons))
	for i, p := range m.frag.Polygons {
		tris[i] = Triangle{
			Indexes:  [3]uint32{uint32(p.Indexes[0]), uint32(p.Indexes[1]), uint32(p.Indexes[2])},
			Material: -1,
			Passable: p.Passable(),
		}
	}
	pos := 0
	for _, g := range m.frag.PolygonMaterials {
		for n := 0; n < int(g.Count) && pos < len(tris); n++ {
			tris[pos].Material = int(g.Index)
			pos++
		}
	}
	return tris
}

// MaterialGroup is a run of consecutive triangles drawn with one
// material, the unit a renderer batches by. First and Count locate the
// run in Triangles; Material indexes the mesh's material list.
type MaterialGroup struct {
	First    int
	Count    int
	Material int
}

// MaterialGroups returns the material runs in face order. A run that
// would overshoot the face table is clamped to what exists.
func (m Mesh) MaterialGroups() []MaterialGroup {
	if m.frag == nil {
		return nil
	}
	groups := make([]MaterialGroup, 0, len(m.frag.PolygonMaterials))
	pos := 0
	for _, g := range m.frag.PolygonMaterials {
		count := int(g.Count)
		if pos+count > len(m.frag.Polygons) {
			count = len(m.frag.Polygons) - pos
		}
		if count < 0 {
			count = 0
		}
		groups = append(groups, MaterialGroup{First: pos, Count: count, Material: int(g.Index)})
		pos += count
	}
	return groups
}

// Materials resolves the mesh's material list in list order. A slot
// whose reference does not resolve stays as a zero Material rather than
// being dropped, so Triangle and MaterialGroup indexes keep their
// meaning.
func (m Mesh) Materials() []Material {
	if m.frag == nil {
		return nil
	}
	list, ok := wld.Get(m.doc, m.frag.MaterialList)
	if !ok {
		return nil
	}
	out := make([]Material, len(list.Materials))
	for i, ref := range list.Materials {
		if mat, ok := wld.Get(m.doc, ref); ok {
			out[i] = Material{doc: m.doc, frag: mat}
		}
	}
	return out
}

// AnimatedFrames resolves the mesh's replacement vertex animation, if
// any, into world-space positions per frame. Frames share the space of
// Positions: the mesh center plus each packed value over the animation's
// own scale.
func (m Mesh) AnimatedFrames() [][][3]float32 {
	if m.frag == nil {
		return nil
	}
	ref, ok := wld.Get(m.doc, m.frag.Animation)
	if !ok {
		return nil
	}
	anim, ok := wld.Get(m.doc, ref.Vertices)
	if !ok {
		return nil
	}
	factor := unpackFactor(anim.Scale)
	center := m.frag.Center
	out := make([][][3]float32, len(anim.Frames))
	for i, frame := range anim.Frames {
		verts := make([][3]float32, len(frame))
		for j, v := range frame {
			verts[j] = [3]float32{
				center[0] + float32(v[0])*factor,
				center[1] + float32(v[1])*factor,
				center[2] + float32(v[2])*factor,
			}
		}
		out[i] = verts
	}
	return out
}
