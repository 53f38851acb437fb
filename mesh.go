package wld

import (
	"encoding/binary"
	"math"
)

// MeshPolygon is one triangle of a Mesh. Flags usually holds zero;
// 0x10 marks a surface the player can pass through, such as water or
// tree leaves. Indexes name three entries in the mesh position table.
type MeshPolygon struct {
	Flags   uint16
	Indexes [3]uint16
}

const meshPolygonPassable = 0x10

// Passable reports whether the triangle does not block movement.
func (p MeshPolygon) Passable() bool { return p.Flags&meshPolygonPassable != 0 }

// MeshVertexPiece assigns a run of consecutive vertices to one skeleton
// piece. Count vertices belong to the piece at Index in the skeleton's
// entry table. Only animated models carry these.
type MeshVertexPiece struct {
	Count uint16
	Index uint16
}

// MeshMaterialGroup assigns a run of consecutive polygons or vertices
// to one material. Count elements use the material at Index in the
// referenced material list. Groups are sorted by material so each
// material's elements are contiguous.
type MeshMaterialGroup struct {
	Count uint16
	Index uint16
}

// MeshOp is one entry of the mesh optimization table found on animated
// models. The first four wire bytes are a union picked by Type: type 4
// stores Offset and every other type stores Index1 and Index2. Param1
// and Type follow as single bytes. Entries appear in blocks, each block
// closed by a type 4 entry.
type MeshOp struct {
	Index1 uint16
	Index2 uint16
	Offset float32
	Param1 uint8
	Type   uint8
}

func readMeshOp(r *reader) MeshOp {
	var op MeshOp
	union := r.take(4)
	op.Param1 = r.u8()
	op.Type = r.u8()
	if union == nil {
		return op
	}
	if op.Type == 4 {
		op.Offset = math.Float32frombits(binary.LittleEndian.Uint32(union))
	} else {
		op.Index1 = binary.LittleEndian.Uint16(union[0:2])
		op.Index2 = binary.LittleEndian.Uint16(union[2:4])
	}
	return op
}

func (w *writer) meshOp(op MeshOp) {
	if op.Type == 4 {
		w.f32(op.Offset)
	} else {
		w.u16(op.Index1)
		w.u16(op.Index2)
	}
	w.u8(op.Param1)
	w.u8(op.Type)
}

// Mesh is triangle geometry: the zone terrain itself and most placeable
// objects. Vertex data is packed to keep files small. Positions are
// signed 16-bit fixed-point values relative to Center with 2^Scale
// denominators, so the world position of vertex v is
//
//	Center[i] + float32(v[i]) / float32(int32(1)<<Scale)
//
// Normals store each component as a signed byte where 127 means 1.0.
// Texture coordinates are signed 16-bit values; on old-version
// documents they are in 1/256 units, on new-version documents whole
// units. Colors hold one RGBA value per vertex for baked lighting.
//
// MaterialList points at the material table the polygon and vertex
// material groups index into. Animation is set on meshes whose vertices
// are replaced per frame, such as swaying trees and flags. Min and Max
// bound the mesh in world units and MaxDistance is the radius around
// Center enclosing it.
//
// Type code 0x36.
type Mesh struct {
	NameRef      int32
	Flags        uint32
	MaterialList Ref[*MaterialList]
	Animation    Ref[*MeshAnimatedVerticesReference]
	Fragment3    Ref[Fragment]
	Fragment4    Ref[Fragment]
	Center       [3]float32
	Params2      [3]uint32
	MaxDistance  float32
	Min          [3]float32
	Max          [3]float32
	Scale        uint16

	Positions        [][3]int16
	TexCoords        [][2]int16
	Normals          [][3]int8
	Colors           []uint32
	Polygons         []MeshPolygon
	VertexPieces     []MeshVertexPiece
	PolygonMaterials []MeshMaterialGroup
	VertexMaterials  []MeshMaterialGroup
	MeshOps          []MeshOp
}

func (f *Mesh) TypeCode() uint32 { return 0x36 }
func (f *Mesh) nameRef() int32   { return f.NameRef }

func decodeMesh(r *reader) (Fragment, error) {
	f := &Mesh{}
	f.NameRef = r.i32()
	f.Flags = r.u32()
	f.MaterialList = readRef[*MaterialList](r)
	f.Animation = readRef[*MeshAnimatedVerticesReference](r)
	f.Fragment3 = readRef[Fragment](r)
	f.Fragment4 = readRef[Fragment](r)
	f.Center = r.vec3()
	f.Params2 = [3]uint32{r.u32(), r.u32(), r.u32()}
	f.MaxDistance = r.f32()
	f.Min = r.vec3()
	f.Max = r.vec3()
	positionCount := r.u16()
	texCoordCount := r.u16()
	normalCount := r.u16()
	colorCount := r.u16()
	polygonCount := r.u16()
	vertexPieceCount := r.u16()
	polygonMaterialCount := r.u16()
	vertexMaterialCount := r.u16()
	meshOpCount := r.u16()
	f.Scale = r.u16()

	n := r.count(uint32(positionCount), 6)
	f.Positions = make([][3]int16, 0, n)
	for i := 0; i < n && r.ok(); i++ {
		f.Positions = append(f.Positions, [3]int16{r.i16(), r.i16(), r.i16()})
	}
	n = r.count(uint32(texCoordCount), 4)
	f.TexCoords = make([][2]int16, 0, n)
	for i := 0; i < n && r.ok(); i++ {
		f.TexCoords = append(f.TexCoords, [2]int16{r.i16(), r.i16()})
	}
	n = r.count(uint32(normalCount), 3)
	f.Normals = make([][3]int8, 0, n)
	for i := 0; i < n && r.ok(); i++ {
		f.Normals = append(f.Normals, [3]int8{r.i8(), r.i8(), r.i8()})
	}
	f.Colors = r.u32s(uint32(colorCount))
	n = r.count(uint32(polygonCount), 8)
	f.Polygons = make([]MeshPolygon, 0, n)
	for i := 0; i < n && r.ok(); i++ {
		f.Polygons = append(f.Polygons, MeshPolygon{
			Flags:   r.u16(),
			Indexes: [3]uint16{r.u16(), r.u16(), r.u16()},
		})
	}
	n = r.count(uint32(vertexPieceCount), 4)
	f.VertexPieces = make([]MeshVertexPiece, 0, n)
	for i := 0; i < n && r.ok(); i++ {
		f.VertexPieces = append(f.VertexPieces, MeshVertexPiece{Count: r.u16(), Index: r.u16()})
	}
	n = r.count(uint32(polygonMaterialCount), 4)
	f.PolygonMaterials = make([]MeshMaterialGroup, 0, n)
	for i := 0; i < n && r.ok(); i++ {
		f.PolygonMaterials = append(f.PolygonMaterials, MeshMaterialGroup{Count: r.u16(), Index: r.u16()})
	}
	n = r.count(uint32(vertexMaterialCount), 4)
	f.VertexMaterials = make([]MeshMaterialGroup, 0, n)
	for i := 0; i < n && r.ok(); i++ {
		f.VertexMaterials = append(f.VertexMaterials, MeshMaterialGroup{Count: r.u16(), Index: r.u16()})
	}
	n = r.count(uint32(meshOpCount), 6)
	f.MeshOps = make([]MeshOp, 0, n)
	for i := 0; i < n && r.ok(); i++ {
		f.MeshOps = append(f.MeshOps, readMeshOp(r))
	}
	return f, r.err()
}

func (f *Mesh) Encode() ([]byte, error) {
	w := newWriter()
	w.ref(f.NameRef)
	w.u32(f.Flags)
	w.ref(f.MaterialList.Raw())
	w.ref(f.Animation.Raw())
	w.ref(f.Fragment3.Raw())
	w.ref(f.Fragment4.Raw())
	w.vec3(f.Center)
	w.u32(f.Params2[0])
	w.u32(f.Params2[1])
	w.u32(f.Params2[2])
	w.f32(f.MaxDistance)
	w.vec3(f.Min)
	w.vec3(f.Max)
	w.u16(uint16(len(f.Positions)))
	w.u16(uint16(len(f.TexCoords)))
	w.u16(uint16(len(f.Normals)))
	w.u16(uint16(len(f.Colors)))
	w.u16(uint16(len(f.Polygons)))
	w.u16(uint16(len(f.VertexPieces)))
	w.u16(uint16(len(f.PolygonMaterials)))
	w.u16(uint16(len(f.VertexMaterials)))
	w.u16(uint16(len(f.MeshOps)))
	w.u16(f.Scale)
	for _, p := range f.Positions {
		w.i16(p[0])
		w.i16(p[1])
		w.i16(p[2])
	}
	for _, t := range f.TexCoords {
		w.i16(t[0])
		w.i16(t[1])
	}
	for _, v := range f.Normals {
		w.i8(v[0])
		w.i8(v[1])
		w.i8(v[2])
	}
	w.u32s(f.Colors)
	for _, p := range f.Polygons {
		w.u16(p.Flags)
		w.u16(p.Indexes[0])
		w.u16(p.Indexes[1])
		w.u16(p.Indexes[2])
	}
	for _, v := range f.VertexPieces {
		w.u16(v.Count)
		w.u16(v.Index)
	}
	for _, g := range f.PolygonMaterials {
		w.u16(g.Count)
		w.u16(g.Index)
	}
	for _, g := range f.VertexMaterials {
		w.u16(g.Count)
		w.u16(g.Index)
	}
	for _, op := range f.MeshOps {
		w.meshOp(op)
	}
	return w.finish()
}

// MeshReference makes a mesh addressable from a skeleton entry or a
// model. The target is usually a Mesh but old object archives point
// these at AlternateMesh fragments instead, so the reference is left
// untyped.
//
// Type code 0x2D.
type MeshReference struct {
	NameRef int32
	Mesh    Ref[Fragment]
	Params  uint32
}

func (f *MeshReference) TypeCode() uint32 { return 0x2D }
func (f *MeshReference) nameRef() int32   { return f.NameRef }

func decodeMeshReference(r *reader) (Fragment, error) {
	f := &MeshReference{}
	f.NameRef = r.i32()
	f.Mesh = readRef[Fragment](r)
	f.Params = r.u32()
	return f, r.err()
}

func (f *MeshReference) Encode() ([]byte, error) {
	w := newWriter()
	w.ref(f.NameRef)
	w.ref(f.Mesh.Raw())
	w.u32(f.Params)
	return w.finish()
}

// AlternateMeshPolygon is one triangle of an AlternateMesh. Flags
// usually holds 0x004B. Data is unused in every known file.
type AlternateMeshPolygon struct {
	Flags   uint16
	Data    [4]uint16
	Indexes [3]uint16
}

// AlternateMeshData6 is one entry of the AlternateMesh animation table,
// the older cousin of MeshOp with full-width fields. Type picks which
// of VertexIndex and Offset is meaningful: type 4 uses Offset, types 1
// through 3 use VertexIndex. Both words are stored either way.
type AlternateMeshData6 struct {
	Type        uint32
	VertexIndex uint32
	Offset      float32
	Param1      uint16
	Param2      uint16
}

// AlternateMeshMaterialGroup assigns Count consecutive vertices to the
// material at Index. Params is unused in every known file.
type AlternateMeshMaterialGroup struct {
	Count  uint16
	Index  uint16
	Params [3]uint32
}

// AlternateMesh is the early mesh layout that survives in a few old
// object archives, mostly equipment models. Unlike Mesh it stores
// positions, normals, and texture coordinates as whole floats with no
// packing. Most fields mirror Mesh; the Data4, Data6, and Data8 tables
// have no known use beyond round-tripping.
//
// Type code 0x2C.
type AlternateMesh struct {
	NameRef      int32
	Flags        uint32
	MaterialList Ref[*MaterialList]
	Fragment2    uint32
	Fragment3    uint32
	Center       [3]float32
	Params2      uint32

	Vertices        [][3]float32
	TexCoords       [][2]float32
	Normals         [][3]float32
	Data4           []uint32
	Polygons        []AlternateMeshPolygon
	Data6           []AlternateMeshData6
	VertexPieces    []MeshVertexPiece
	Data8           []uint32
	VertexMaterials []AlternateMeshMaterialGroup
}

func (f *AlternateMesh) TypeCode() uint32 { return 0x2C }
func (f *AlternateMesh) nameRef() int32   { return f.NameRef }

func decodeAlternateMesh(r *reader) (Fragment, error) {
	f := &AlternateMesh{}
	f.NameRef = r.i32()
	f.Flags = r.u32()
	vertexCount := r.u32()
	texCoordCount := r.u32()
	normalCount := r.u32()
	size4 := r.u32()
	polygonCount := r.u32()
	size6 := r.u16()
	vertexPieceCount := r.i16()
	f.MaterialList = readRef[*MaterialList](r)
	f.Fragment2 = r.u32()
	f.Fragment3 = r.u32()
	f.Center = r.vec3()
	f.Params2 = r.u32()

	n := r.count(vertexCount, 12)
	f.Vertices = make([][3]float32, 0, n)
	for i := 0; i < n && r.ok(); i++ {
		f.Vertices = append(f.Vertices, r.vec3())
	}
	n = r.count(texCoordCount, 8)
	f.TexCoords = make([][2]float32, 0, n)
	for i := 0; i < n && r.ok(); i++ {
		f.TexCoords = append(f.TexCoords, r.vec2())
	}
	n = r.count(normalCount, 12)
	f.Normals = make([][3]float32, 0, n)
	for i := 0; i < n && r.ok(); i++ {
		f.Normals = append(f.Normals, r.vec3())
	}
	f.Data4 = r.u32s(size4)
	n = r.count(polygonCount, 16)
	f.Polygons = make([]AlternateMeshPolygon, 0, n)
	for i := 0; i < n && r.ok(); i++ {
		f.Polygons = append(f.Polygons, AlternateMeshPolygon{
			Flags:   r.u16(),
			Data:    [4]uint16{r.u16(), r.u16(), r.u16(), r.u16()},
			Indexes: [3]uint16{r.u16(), r.u16(), r.u16()},
		})
	}
	n = r.count(uint32(size6), 16)
	f.Data6 = make([]AlternateMeshData6, 0, n)
	for i := 0; i < n && r.ok(); i++ {
		f.Data6 = append(f.Data6, AlternateMeshData6{
			Type:        r.u32(),
			VertexIndex: r.u32(),
			Offset:      r.f32(),
			Param1:      r.u16(),
			Param2:      r.u16(),
		})
	}
	n = r.count(uint32(vertexPieceCount), 4)
	f.VertexPieces = make([]MeshVertexPiece, 0, n)
	for i := 0; i < n && r.ok(); i++ {
		f.VertexPieces = append(f.VertexPieces, MeshVertexPiece{Count: r.u16(), Index: r.u16()})
	}
	f.Data8 = r.u32s(r.u32())
	vertexMaterialCount := r.u32()
	n = r.count(vertexMaterialCount, 16)
	f.VertexMaterials = make([]AlternateMeshMaterialGroup, 0, n)
	for i := 0; i < n && r.ok(); i++ {
		f.VertexMaterials = append(f.VertexMaterials, AlternateMeshMaterialGroup{
			Count:  r.u16(),
			Index:  r.u16(),
			Params: [3]uint32{r.u32(), r.u32(), r.u32()},
		})
	}
	return f, r.err()
}

func (f *AlternateMesh) Encode() ([]byte, error) {
	w := newWriter()
	w.ref(f.NameRef)
	w.u32(f.Flags)
	w.u32(uint32(len(f.Vertices)))
	w.u32(uint32(len(f.TexCoords)))
	w.u32(uint32(len(f.Normals)))
	w.u32(uint32(len(f.Data4)))
	w.u32(uint32(len(f.Polygons)))
	w.u16(uint16(len(f.Data6)))
	w.i16(int16(len(f.VertexPieces)))
	w.ref(f.MaterialList.Raw())
	w.u32(f.Fragment2)
	w.u32(f.Fragment3)
	w.vec3(f.Center)
	w.u32(f.Params2)
	for _, v := range f.Vertices {
		w.vec3(v)
	}
	for _, t := range f.TexCoords {
		w.vec2(t)
	}
	for _, v := range f.Normals {
		w.vec3(v)
	}
	w.u32s(f.Data4)
	for _, p := range f.Polygons {
		w.u16(p.Flags)
		for _, d := range p.Data {
			w.u16(d)
		}
		w.u16(p.Indexes[0])
		w.u16(p.Indexes[1])
		w.u16(p.Indexes[2])
	}
	for _, d := range f.Data6 {
		w.u32(d.Type)
		w.u32(d.VertexIndex)
		w.f32(d.Offset)
		w.u16(d.Param1)
		w.u16(d.Param2)
	}
	for _, v := range f.VertexPieces {
		w.u16(v.Count)
		w.u16(v.Index)
	}
	w.u32(uint32(len(f.Data8)))
	w.u32s(f.Data8)
	w.u32(uint32(len(f.VertexMaterials)))
	for _, g := range f.VertexMaterials {
		w.u16(g.Count)
		w.u16(g.Index)
		w.u32(g.Params[0])
		w.u32(g.Params[1])
		w.u32(g.Params[2])
	}
	return w.finish()
}

// MeshAnimatedVertices holds per-frame replacement positions for an
// animated mesh. Each frame carries one position for every vertex of
// the target mesh, packed the same way as Mesh positions with a
// 2^Scale denominator, and the client cycles through the frames.
// VertexCount must match the target mesh; it sizes each frame on the
// wire, so it stays independent of the frame list.
//
// Type code 0x37.
type MeshAnimatedVertices struct {
	NameRef     int32
	Flags       uint32
	VertexCount uint16
	Param1      uint16
	Param2      uint16
	Scale       uint16
	Frames      [][][3]int16
	Size6       uint16
}

func (f *MeshAnimatedVertices) TypeCode() uint32 { return 0x37 }
func (f *MeshAnimatedVertices) nameRef() int32   { return f.NameRef }

func decodeMeshAnimatedVertices(r *reader) (Fragment, error) {
	f := &MeshAnimatedVertices{}
	f.NameRef = r.i32()
	f.Flags = r.u32()
	f.VertexCount = r.u16()
	frameCount := r.u16()
	f.Param1 = r.u16()
	f.Param2 = r.u16()
	f.Scale = r.u16()
	frameSize := int(f.VertexCount) * 6
	if frameSize == 0 {
		frameSize = 1
	}
	n := r.count(uint32(frameCount), frameSize)
	f.Frames = make([][][3]int16, 0, n)
	for i := 0; i < n && r.ok(); i++ {
		frame := make([][3]int16, f.VertexCount)
		for j := range frame {
			frame[j] = [3]int16{r.i16(), r.i16(), r.i16()}
		}
		f.Frames = append(f.Frames, frame)
	}
	f.Size6 = r.u16()
	return f, r.err()
}

func (f *MeshAnimatedVertices) Encode() ([]byte, error) {
	w := newWriter()
	w.ref(f.NameRef)
	w.u32(f.Flags)
	w.u16(f.VertexCount)
	w.u16(uint16(len(f.Frames)))
	w.u16(f.Param1)
	w.u16(f.Param2)
	w.u16(f.Scale)
	for _, frame := range f.Frames {
		for _, v := range frame {
			w.i16(v[0])
			w.i16(v[1])
			w.i16(v[2])
		}
	}
	w.u16(f.Size6)
	return w.finish()
}

// MeshAnimatedVerticesReference binds an animated vertex set to the
// mesh that plays it.
//
// Type code 0x2F.
type MeshAnimatedVerticesReference struct {
	NameRef  int32
	Vertices Ref[*MeshAnimatedVertices]
	Flags    uint32
}

func (f *MeshAnimatedVerticesReference) TypeCode() uint32 { return 0x2F }
func (f *MeshAnimatedVerticesReference) nameRef() int32   { return f.NameRef }

func decodeMeshAnimatedVerticesReference(r *reader) (Fragment, error) {
	f := &MeshAnimatedVerticesReference{}
	f.NameRef = r.i32()
	f.Vertices = readRef[*MeshAnimatedVertices](r)
	f.Flags = r.u32()
	return f, r.err()
}

func (f *MeshAnimatedVerticesReference) Encode() ([]byte, error) {
	w := newWriter()
	w.ref(f.NameRef)
	w.ref(f.Vertices.Raw())
	w.u32(f.Flags)
	return w.finish()
}
