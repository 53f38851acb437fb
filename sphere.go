package wld

const sphereListHasScaleFactor = 0x01

// SphereListDef is a set of collision spheres, each stored as center
// plus radius.
//
// Type code 0x19.
type SphereListDef struct {
	NameRef        int32
	Flags          uint32
	BoundingRadius float32
	ScaleFactor    *float32 // bit 0x01
	Spheres        [][4]float32
}

func (f *SphereListDef) TypeCode() uint32 { return 0x19 }
func (f *SphereListDef) nameRef() int32   { return f.NameRef }

func decodeSphereListDef(r *reader) (Fragment, error) {
	f := &SphereListDef{}
	f.NameRef = r.i32()
	f.Flags = r.u32()
	sphereCount := r.u32()
	f.BoundingRadius = r.f32()
	if f.Flags&sphereListHasScaleFactor != 0 {
		v := r.f32()
		f.ScaleFactor = &v
	}
	n := r.count(sphereCount, 16)
	f.Spheres = make([][4]float32, 0, n)
	for i := 0; i < n; i++ {
		f.Spheres = append(f.Spheres, [4]float32{r.f32(), r.f32(), r.f32(), r.f32()})
	}
	return f, r.err()
}

func (f *SphereListDef) Encode() ([]byte, error) {
	w := newWriter()
	w.ref(f.NameRef)
	w.u32(f.Flags)
	w.u32(uint32(len(f.Spheres)))
	w.f32(f.BoundingRadius)
	if f.Flags&sphereListHasScaleFactor != 0 && f.ScaleFactor != nil {
		w.f32(*f.ScaleFactor)
	}
	for _, s := range f.Spheres {
		w.f32(s[0])
		w.f32(s[1])
		w.f32(s[2])
		w.f32(s[3])
	}
	return w.finish()
}

// SphereList attaches a sphere list definition to the scene.
//
// Type code 0x1A.
type SphereList struct {
	NameRef int32
	List    Ref[*SphereListDef]
	Params1 uint32
}

func (f *SphereList) TypeCode() uint32 { return 0x1A }
func (f *SphereList) nameRef() int32   { return f.NameRef }

func decodeSphereList(r *reader) (Fragment, error) {
	f := &SphereList{}
	f.NameRef = r.i32()
	f.List = readRef[*SphereListDef](r)
	f.Params1 = r.u32()
	return f, r.err()
}

func (f *SphereList) Encode() ([]byte, error) {
	w := newWriter()
	w.ref(f.NameRef)
	w.ref(f.List.Raw())
	w.u32(f.Params1)
	return w.finish()
}
