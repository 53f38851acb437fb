package wld

const (
	lightHasColor      = 0x10
	lightHasAttenuated = 0x08
)

// LightColor is the RGB triple plus its undeciphered lead byte.
type LightColor struct {
	Params4 uint8
	R       uint8
	G       uint8
	B       uint8
}

// LightSource defines a light. The layout flips on bit 0x10: plain
// lights store a single float after params2, colored lights store four
// bytes of color, and lights with both 0x10 and 0x08 set carry an extra
// word between the two.
//
// Type code 0x1B.
type LightSource struct {
	NameRef int32
	Flags   uint32
	Params2 uint32

	// Params3a exists only when bit 0x10 is clear.
	Params3a *float32

	// Params3b exists only when bits 0x10 and 0x08 are both set.
	Params3b *uint32

	// Color exists only when bit 0x10 is set.
	Color *LightColor
}

func (f *LightSource) TypeCode() uint32 { return 0x1B }
func (f *LightSource) nameRef() int32   { return f.NameRef }

func decodeLightSource(r *reader) (Fragment, error) {
	f := &LightSource{}
	f.NameRef = r.i32()
	f.Flags = r.u32()
	f.Params2 = r.u32()
	if f.Flags&lightHasColor == 0 {
		v := r.f32()
		f.Params3a = &v
	}
	if f.Flags&(lightHasColor|lightHasAttenuated) == lightHasColor|lightHasAttenuated {
		v := r.u32()
		f.Params3b = &v
	}
	if f.Flags&lightHasColor != 0 {
		f.Color = &LightColor{Params4: r.u8(), R: r.u8(), G: r.u8(), B: r.u8()}
	}
	return f, r.err()
}

func (f *LightSource) Encode() ([]byte, error) {
	w := newWriter()
	w.ref(f.NameRef)
	w.u32(f.Flags)
	w.u32(f.Params2)
	if f.Flags&lightHasColor == 0 && f.Params3a != nil {
		w.f32(*f.Params3a)
	}
	if f.Flags&(lightHasColor|lightHasAttenuated) == lightHasColor|lightHasAttenuated && f.Params3b != nil {
		w.u32(*f.Params3b)
	}
	if f.Flags&lightHasColor != 0 && f.Color != nil {
		w.u8(f.Color.Params4)
		w.u8(f.Color.R)
		w.u8(f.Color.G)
		w.u8(f.Color.B)
	}
	return w.finish()
}

// LightSourceReference makes a light addressable from placements.
//
// Type code 0x1C.
type LightSourceReference struct {
	NameRef int32
	Light   Ref[*LightSource]
	Flags   uint32
}

func (f *LightSourceReference) TypeCode() uint32 { return 0x1C }
func (f *LightSourceReference) nameRef() int32   { return f.NameRef }

func decodeLightSourceReference(r *reader) (Fragment, error) {
	f := &LightSourceReference{}
	f.NameRef = r.i32()
	f.Light = readRef[*LightSource](r)
	f.Flags = r.u32()
	return f, r.err()
}

func (f *LightSourceReference) Encode() ([]byte, error) {
	w := newWriter()
	w.ref(f.NameRef)
	w.ref(f.Light.Raw())
	w.u32(f.Flags)
	return w.finish()
}

// LightInfo places a referenced light at a point in the zone with a
// radius of effect.
//
// Type code 0x28.
type LightInfo struct {
	NameRef int32
	Light   Ref[*LightSourceReference]
	Flags   uint32
	X       float32
	Y       float32
	Z       float32
	Radius  float32
}

func (f *LightInfo) TypeCode() uint32 { return 0x28 }
func (f *LightInfo) nameRef() int32   { return f.NameRef }

func decodeLightInfo(r *reader) (Fragment, error) {
	f := &LightInfo{}
	f.NameRef = r.i32()
	f.Light = readRef[*LightSourceReference](r)
	f.Flags = r.u32()
	f.X = r.f32()
	f.Y = r.f32()
	f.Z = r.f32()
	f.Radius = r.f32()
	return f, r.err()
}

func (f *LightInfo) Encode() ([]byte, error) {
	w := newWriter()
	w.ref(f.NameRef)
	w.ref(f.Light.Raw())
	w.u32(f.Flags)
	w.f32(f.X)
	w.f32(f.Y)
	w.f32(f.Z)
	w.f32(f.Radius)
	return w.finish()
}

// AmbientLight applies a referenced light to a list of BSP regions.
//
// Type code 0x2A.
type AmbientLight struct {
	NameRef int32
	Light   Ref[*LightSourceReference]
	Flags   uint32
	Regions []uint32
}

func (f *AmbientLight) TypeCode() uint32 { return 0x2A }
func (f *AmbientLight) nameRef() int32   { return f.NameRef }

func decodeAmbientLight(r *reader) (Fragment, error) {
	f := &AmbientLight{}
	f.NameRef = r.i32()
	f.Light = readRef[*LightSourceReference](r)
	f.Flags = r.u32()
	f.Regions = r.u32s(r.u32())
	return f, r.err()
}

func (f *AmbientLight) Encode() ([]byte, error) {
	w := newWriter()
	w.ref(f.NameRef)
	w.ref(f.Light.Raw())
	w.u32(f.Flags)
	w.u32(uint32(len(f.Regions)))
	w.u32s(f.Regions)
	return w.finish()
}
