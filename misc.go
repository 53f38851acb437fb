package wld

// First is the opening fragment of every zone file. It carries nothing
// but its name reference, which is always the 0xFF000000 bit pattern.
//
// Type code 0x35.
type First struct {
	NameRef int32
}

func (f *First) TypeCode() uint32 { return 0x35 }
func (f *First) nameRef() int32   { return f.NameRef }

func decodeFirst(r *reader) (Fragment, error) {
	f := &First{}
	f.NameRef = r.i32()
	return f, r.err()
}

func (f *First) Encode() ([]byte, error) {
	w := newWriter()
	w.ref(f.NameRef)
	return w.finish()
}

// Unknown0x2E appears in a handful of old zone files with an empty
// body. Nothing references it.
//
// Type code 0x2E.
type Unknown0x2E struct {
	NameRef int32
}

func (f *Unknown0x2E) TypeCode() uint32 { return 0x2E }
func (f *Unknown0x2E) nameRef() int32   { return f.NameRef }

func decodeUnknown0x2E(r *reader) (Fragment, error) {
	f := &Unknown0x2E{}
	f.NameRef = r.i32()
	return f, r.err()
}

func (f *Unknown0x2E) Encode() ([]byte, error) {
	w := newWriter()
	w.ref(f.NameRef)
	return w.finish()
}

// Unknown0x34 shows up alongside particle systems and points at a blit
// sprite definition. Its twenty fixed words are undeciphered and kept
// under positional names.
//
// Type code 0x34.
type Unknown0x34 struct {
	NameRef   int32
	Unknown1  uint32
	Unknown2  uint32
	Unknown3  uint32
	Unknown4  uint32
	Unknown5  uint32
	Unknown6  uint32
	Unknown7  uint32
	Unknown8  uint32
	Unknown9  uint32
	Unknown10 uint32
	Unknown11 float32
	Unknown12 float32
	Unknown13 uint32
	Unknown14 float32
	Unknown15 uint32
	Unknown16 float32
	Unknown17 uint32
	Unknown18 uint32
	Unknown19 float32
	Unknown20 float32
	BlitRef   Ref[*BlitSpriteDefinition]
}

func (f *Unknown0x34) TypeCode() uint32 { return 0x34 }
func (f *Unknown0x34) nameRef() int32   { return f.NameRef }

func decodeUnknown0x34(r *reader) (Fragment, error) {
	f := &Unknown0x34{}
	f.NameRef = r.i32()
	f.Unknown1 = r.u32()
	f.Unknown2 = r.u32()
	f.Unknown3 = r.u32()
	f.Unknown4 = r.u32()
	f.Unknown5 = r.u32()
	f.Unknown6 = r.u32()
	f.Unknown7 = r.u32()
	f.Unknown8 = r.u32()
	f.Unknown9 = r.u32()
	f.Unknown10 = r.u32()
	f.Unknown11 = r.f32()
	f.Unknown12 = r.f32()
	f.Unknown13 = r.u32()
	f.Unknown14 = r.f32()
	f.Unknown15 = r.u32()
	f.Unknown16 = r.f32()
	f.Unknown17 = r.u32()
	f.Unknown18 = r.u32()
	f.Unknown19 = r.f32()
	f.Unknown20 = r.f32()
	f.BlitRef = readRef[*BlitSpriteDefinition](r)
	return f, r.err()
}

func (f *Unknown0x34) Encode() ([]byte, error) {
	w := newWriter()
	w.ref(f.NameRef)
	w.u32(f.Unknown1)
	w.u32(f.Unknown2)
	w.u32(f.Unknown3)
	w.u32(f.Unknown4)
	w.u32(f.Unknown5)
	w.u32(f.Unknown6)
	w.u32(f.Unknown7)
	w.u32(f.Unknown8)
	w.u32(f.Unknown9)
	w.u32(f.Unknown10)
	w.f32(f.Unknown11)
	w.f32(f.Unknown12)
	w.u32(f.Unknown13)
	w.f32(f.Unknown14)
	w.u32(f.Unknown15)
	w.f32(f.Unknown16)
	w.u32(f.Unknown17)
	w.u32(f.Unknown18)
	w.f32(f.Unknown19)
	w.f32(f.Unknown20)
	w.ref(f.BlitRef.Raw())
	return w.finish()
}
