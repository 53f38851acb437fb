package wld

const (
	particleHasCenterOffset   = 0x01
	particleHasBoundingRadius = 0x02
)

// ParticleSpriteDef is the geometry for a particle emitter sprite: a
// small fan of vertices with a pen color per vertex.
//
// Type code 0x0C.
type ParticleSpriteDef struct {
	NameRef        int32
	Flags          uint32
	Unknown        uint32
	CenterOffset   *[3]float32 // bit 0x01
	BoundingRadius *float32    // bit 0x02
	Vertices       [][3]float32
	RenderMethod   uint32
	Render         RenderInfo
	Pens           []uint32 // one per vertex
}

func (f *ParticleSpriteDef) TypeCode() uint32 { return 0x0C }
func (f *ParticleSpriteDef) nameRef() int32   { return f.NameRef }

func decodeParticleSpriteDef(r *reader) (Fragment, error) {
	f := &ParticleSpriteDef{}
	f.NameRef = r.i32()
	f.Flags = r.u32()
	vertexCount := r.u32()
	f.Unknown = r.u32()
	if f.Flags&particleHasCenterOffset != 0 {
		v := r.vec3()
		f.CenterOffset = &v
	}
	if f.Flags&particleHasBoundingRadius != 0 {
		v := r.f32()
		f.BoundingRadius = &v
	}
	n := r.count(vertexCount, 12)
	f.Vertices = make([][3]float32, 0, n)
	for i := 0; i < n; i++ {
		f.Vertices = append(f.Vertices, r.vec3())
	}
	f.RenderMethod = r.u32()
	f.Render = readRenderInfo(r)
	f.Pens = r.u32s(vertexCount)
	return f, r.err()
}

func (f *ParticleSpriteDef) Encode() ([]byte, error) {
	w := newWriter()
	w.ref(f.NameRef)
	w.u32(f.Flags)
	w.u32(uint32(len(f.Vertices)))
	w.u32(f.Unknown)
	if f.Flags&particleHasCenterOffset != 0 && f.CenterOffset != nil {
		w.vec3(*f.CenterOffset)
	}
	if f.Flags&particleHasBoundingRadius != 0 && f.BoundingRadius != nil {
		w.f32(*f.BoundingRadius)
	}
	for _, v := range f.Vertices {
		w.vec3(v)
	}
	w.u32(f.RenderMethod)
	w.renderInfo(f.Render)
	w.u32s(f.Pens)
	return w.finish()
}

// ParticleSprite attaches a particle sprite definition to the scene.
//
// Type code 0x0D.
type ParticleSprite struct {
	NameRef int32
	Sprite  Ref[*ParticleSpriteDef]
	Params1 uint32
}

func (f *ParticleSprite) TypeCode() uint32 { return 0x0D }
func (f *ParticleSprite) nameRef() int32   { return f.NameRef }

func decodeParticleSprite(r *reader) (Fragment, error) {
	f := &ParticleSprite{}
	f.NameRef = r.i32()
	f.Sprite = readRef[*ParticleSpriteDef](r)
	f.Params1 = r.u32()
	return f, r.err()
}

func (f *ParticleSprite) Encode() ([]byte, error) {
	w := newWriter()
	w.ref(f.NameRef)
	w.ref(f.Sprite.Raw())
	w.u32(f.Params1)
	return w.finish()
}
