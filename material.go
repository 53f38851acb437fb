package wld

const materialHasPair = 0x02

// Transparency bit patterns stored in a material's render word. Visible
// is a two-bit pattern, not a single flag; the client checks both bits.
const (
	materialVisible      = 0x80000001
	materialMasked       = 0x02
	materialOpacity      = 0x04
	materialTransparency = 0x08
	materialMaskedOpaque = 0x10
)

// Material pairs a texture reference with its render transparency mode.
//
// Type code 0x30.
type Material struct {
	NameRef int32
	Flags   uint32

	// Transparency is the render mode word; see the Visible and
	// Masked predicates.
	Transparency uint32

	// Params2 typically holds 0x004E4E4E, occasionally 0xB2B2B2.
	Params2 uint32

	MaskColor [2]float32
	Texture   Ref[*TextureReference]
	Pair      *MaterialPair // bit 0x02
}

// MaterialPair is the extra word pair present on most zone materials.
type MaterialPair struct {
	A uint32
	B float32
}

func (f *Material) TypeCode() uint32 { return 0x30 }
func (f *Material) nameRef() int32   { return f.NameRef }

// Visible reports whether the material renders at all. Invisible
// materials mark collision-only geometry such as zone walls.
func (f *Material) Visible() bool {
	return f.Transparency&materialVisible == materialVisible
}

// Masked reports whether the material cuts out texels using the mask
// color.
func (f *Material) Masked() bool { return f.Transparency&materialMasked != 0 }

func decodeMaterial(r *reader) (Fragment, error) {
	f := &Material{}
	f.NameRef = r.i32()
	f.Flags = r.u32()
	f.Transparency = r.u32()
	f.Params2 = r.u32()
	f.MaskColor = r.vec2()
	f.Texture = readRef[*TextureReference](r)
	if f.Flags&materialHasPair != 0 {
		f.Pair = &MaterialPair{A: r.u32(), B: r.f32()}
	}
	return f, r.err()
}

func (f *Material) Encode() ([]byte, error) {
	w := newWriter()
	w.ref(f.NameRef)
	w.u32(f.Flags)
	w.u32(f.Transparency)
	w.u32(f.Params2)
	w.vec2(f.MaskColor)
	w.ref(f.Texture.Raw())
	if f.Flags&materialHasPair != 0 && f.Pair != nil {
		w.u32(f.Pair.A)
		w.f32(f.Pair.B)
	}
	return w.finish()
}

// MaterialList is the material palette a mesh indexes into. Mesh
// polygon material groups count into this list in order.
//
// Type code 0x31.
type MaterialList struct {
	NameRef   int32
	Flags     uint32
	Materials []Ref[*Material]
}

func (f *MaterialList) TypeCode() uint32 { return 0x31 }
func (f *MaterialList) nameRef() int32   { return f.NameRef }

func decodeMaterialList(r *reader) (Fragment, error) {
	f := &MaterialList{}
	f.NameRef = r.i32()
	f.Flags = r.u32()
	n := r.count(r.u32(), 4)
	f.Materials = make([]Ref[*Material], 0, n)
	for i := 0; i < n; i++ {
		f.Materials = append(f.Materials, readRef[*Material](r))
	}
	return f, r.err()
}

func (f *MaterialList) Encode() ([]byte, error) {
	w := newWriter()
	w.ref(f.NameRef)
	w.u32(f.Flags)
	w.u32(uint32(len(f.Materials)))
	for _, m := range f.Materials {
		w.ref(m.Raw())
	}
	return w.finish()
}
