package wld

// PolygonAnimationEntry maps one set of vertex indexes inside a polygon
// animation.
type PolygonAnimationEntry struct {
	Indexes []uint32
}

// PolygonAnimation deforms mesh geometry over time, storing a vertex
// table and per-entry index lists. Most of its words remain
// undeciphered.
//
// Type code 0x17.
type PolygonAnimation struct {
	NameRef  int32
	Flags    uint32
	Params1  float32
	Params2  float32
	Vertices [][3]float32
	Entries  []PolygonAnimationEntry
}

func (f *PolygonAnimation) TypeCode() uint32 { return 0x17 }
func (f *PolygonAnimation) nameRef() int32   { return f.NameRef }

func decodePolygonAnimation(r *reader) (Fragment, error) {
	f := &PolygonAnimation{}
	f.NameRef = r.i32()
	f.Flags = r.u32()
	size1 := r.u32()
	size2 := r.u32()
	f.Params1 = r.f32()
	f.Params2 = r.f32()
	n := r.count(size1, 12)
	f.Vertices = make([][3]float32, 0, n)
	for i := 0; i < n; i++ {
		f.Vertices = append(f.Vertices, r.vec3())
	}
	c := r.count(size2, 4)
	f.Entries = make([]PolygonAnimationEntry, 0, c)
	for i := 0; i < c && r.ok(); i++ {
		f.Entries = append(f.Entries, PolygonAnimationEntry{Indexes: r.u32s(r.u32())})
	}
	return f, r.err()
}

func (f *PolygonAnimation) Encode() ([]byte, error) {
	w := newWriter()
	w.ref(f.NameRef)
	w.u32(f.Flags)
	w.u32(uint32(len(f.Vertices)))
	w.u32(uint32(len(f.Entries)))
	w.f32(f.Params1)
	w.f32(f.Params2)
	for _, v := range f.Vertices {
		w.vec3(v)
	}
	for _, e := range f.Entries {
		w.u32(uint32(len(e.Indexes)))
		w.u32s(e.Indexes)
	}
	return w.finish()
}

const polyAnimHasScaleFactor = 0x01

// PolygonAnimationReference binds an animation to geometry, optionally
// scaled.
//
// Type code 0x18.
type PolygonAnimationReference struct {
	NameRef     int32
	Animation   Ref[*PolygonAnimation]
	Flags       uint32
	ScaleFactor *float32 // bit 0x01
}

func (f *PolygonAnimationReference) TypeCode() uint32 { return 0x18 }
func (f *PolygonAnimationReference) nameRef() int32   { return f.NameRef }

func decodePolygonAnimationReference(r *reader) (Fragment, error) {
	f := &PolygonAnimationReference{}
	f.NameRef = r.i32()
	f.Animation = readRef[*PolygonAnimation](r)
	f.Flags = r.u32()
	if f.Flags&polyAnimHasScaleFactor != 0 {
		v := r.f32()
		f.ScaleFactor = &v
	}
	return f, r.err()
}

func (f *PolygonAnimationReference) Encode() ([]byte, error) {
	w := newWriter()
	w.ref(f.NameRef)
	w.ref(f.Animation.Raw())
	w.u32(f.Flags)
	if f.Flags&polyAnimHasScaleFactor != 0 && f.ScaleFactor != nil {
		w.f32(*f.ScaleFactor)
	}
	return w.finish()
}
