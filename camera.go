package wld

// Camera is the zone viewpoint definition. Every known file stores the
// same 26 words here; none of them have been deciphered, so they are
// kept verbatim under positional names.
//
// Type code 0x08.
type Camera struct {
	NameRef  int32
	Params0  uint32
	Params1  uint32
	Params2  float32
	Params3  uint32
	Params4  uint32
	Params5  float32
	Params6  float32
	Params7  uint32
	Params8  float32
	Params9  float32
	Params10 uint32
	Params11 float32
	Params12 float32
	Params13 uint32
	Params14 float32
	Params15 float32
	Params16 uint32
	Params17 uint32
	Params18 uint32
	Params19 uint32
	Params20 uint32
	Params21 uint32
	Params22 uint32
	Params23 uint32
	Params24 uint32
	Params25 uint32
}

func (f *Camera) TypeCode() uint32 { return 0x08 }
func (f *Camera) nameRef() int32   { return f.NameRef }

func decodeCamera(r *reader) (Fragment, error) {
	f := &Camera{}
	f.NameRef = r.i32()
	f.Params0 = r.u32()
	f.Params1 = r.u32()
	f.Params2 = r.f32()
	f.Params3 = r.u32()
	f.Params4 = r.u32()
	f.Params5 = r.f32()
	f.Params6 = r.f32()
	f.Params7 = r.u32()
	f.Params8 = r.f32()
	f.Params9 = r.f32()
	f.Params10 = r.u32()
	f.Params11 = r.f32()
	f.Params12 = r.f32()
	f.Params13 = r.u32()
	f.Params14 = r.f32()
	f.Params15 = r.f32()
	f.Params16 = r.u32()
	f.Params17 = r.u32()
	f.Params18 = r.u32()
	f.Params19 = r.u32()
	f.Params20 = r.u32()
	f.Params21 = r.u32()
	f.Params22 = r.u32()
	f.Params23 = r.u32()
	f.Params24 = r.u32()
	f.Params25 = r.u32()
	return f, r.err()
}

func (f *Camera) Encode() ([]byte, error) {
	w := newWriter()
	w.ref(f.NameRef)
	w.u32(f.Params0)
	w.u32(f.Params1)
	w.f32(f.Params2)
	w.u32(f.Params3)
	w.u32(f.Params4)
	w.f32(f.Params5)
	w.f32(f.Params6)
	w.u32(f.Params7)
	w.f32(f.Params8)
	w.f32(f.Params9)
	w.u32(f.Params10)
	w.f32(f.Params11)
	w.f32(f.Params12)
	w.u32(f.Params13)
	w.f32(f.Params14)
	w.f32(f.Params15)
	w.u32(f.Params16)
	w.u32(f.Params17)
	w.u32(f.Params18)
	w.u32(f.Params19)
	w.u32(f.Params20)
	w.u32(f.Params21)
	w.u32(f.Params22)
	w.u32(f.Params23)
	w.u32(f.Params24)
	w.u32(f.Params25)
	return w.finish()
}

// CameraReference makes the camera addressable from other fragments.
//
// Type code 0x09.
type CameraReference struct {
	NameRef int32
	Camera  Ref[*Camera]
	Flags   uint32
}

func (f *CameraReference) TypeCode() uint32 { return 0x09 }
func (f *CameraReference) nameRef() int32   { return f.NameRef }

func decodeCameraReference(r *reader) (Fragment, error) {
	f := &CameraReference{}
	f.NameRef = r.i32()
	f.Camera = readRef[*Camera](r)
	f.Flags = r.u32()
	return f, r.err()
}

func (f *CameraReference) Encode() ([]byte, error) {
	w := newWriter()
	w.ref(f.NameRef)
	w.ref(f.Camera.Raw())
	w.u32(f.Flags)
	return w.finish()
}
