package wld

// VertexColor carries pre-baked lighting for a placed object: one RGBA
// word per mesh vertex. The three data words around the count are
// undeciphered and kept verbatim.
//
// Type code 0x32.
type VertexColor struct {
	NameRef int32
	Data1   uint32
	Data2   uint32
	Data3   uint32
	Data4   uint32
	Colors  []uint32
}

func (f *VertexColor) TypeCode() uint32 { return 0x32 }
func (f *VertexColor) nameRef() int32   { return f.NameRef }

func decodeVertexColor(r *reader) (Fragment, error) {
	f := &VertexColor{}
	f.NameRef = r.i32()
	f.Data1 = r.u32()
	colorCount := r.u32()
	f.Data2 = r.u32()
	f.Data3 = r.u32()
	f.Data4 = r.u32()
	f.Colors = r.u32s(colorCount)
	return f, r.err()
}

func (f *VertexColor) Encode() ([]byte, error) {
	w := newWriter()
	w.ref(f.NameRef)
	w.u32(f.Data1)
	w.u32(uint32(len(f.Colors)))
	w.u32(f.Data2)
	w.u32(f.Data3)
	w.u32(f.Data4)
	w.u32s(f.Colors)
	return w.finish()
}

// VertexColorReference points an object location at its baked vertex
// colors.
//
// Type code 0x33.
type VertexColorReference struct {
	NameRef int32
	Colors  Ref[*VertexColor]
	Flags   uint32
}

func (f *VertexColorReference) TypeCode() uint32 { return 0x33 }
func (f *VertexColorReference) nameRef() int32   { return f.NameRef }

func decodeVertexColorReference(r *reader) (Fragment, error) {
	f := &VertexColorReference{}
	f.NameRef = r.i32()
	f.Colors = readRef[*VertexColor](r)
	f.Flags = r.u32()
	return f, r.err()
}

func (f *VertexColorReference) Encode() ([]byte, error) {
	w := newWriter()
	w.ref(f.NameRef)
	w.ref(f.Colors.Raw())
	w.u32(f.Flags)
	return w.finish()
}
