package wld

const (
	renderHasPen           = 0x01
	renderHasBrightness    = 0x02
	renderHasScaledAmbient = 0x04
	renderHasSimpleSprite  = 0x08
	renderHasUVInfo        = 0x10
	renderHasUVMap         = 0x20
	renderTwoSided         = 0x40
)

// RenderInfo describes how a sprite surface is shaded and textured.
// Every field beyond Flags is present only when its bit is set.
type RenderInfo struct {
	Flags         uint32
	Pen           *uint32     // bit 0x01
	Brightness    *float32    // bit 0x02
	ScaledAmbient *float32    // bit 0x04
	SimpleSprite  *uint32     // bit 0x08
	UVInfo        *UVInfo     // bit 0x10
	UVMap         *UVMap      // bit 0x20
}

// TwoSided reports whether both faces of the surface are drawn.
func (ri RenderInfo) TwoSided() bool { return ri.Flags&renderTwoSided != 0 }

// UVInfo maps a surface into texture space with an origin and two axes.
type UVInfo struct {
	Origin [3]float32
	UAxis  [3]float32
	VAxis  [3]float32
}

// UVMap lists explicit texture coordinates for a surface.
type UVMap struct {
	Entries [][2]float32
}

func readRenderInfo(r *reader) RenderInfo {
	ri := RenderInfo{Flags: r.u32()}
	if ri.Flags&renderHasPen != 0 {
		v := r.u32()
		ri.Pen = &v
	}
	if ri.Flags&renderHasBrightness != 0 {
		v := r.f32()
		ri.Brightness = &v
	}
	if ri.Flags&renderHasScaledAmbient != 0 {
		v := r.f32()
		ri.ScaledAmbient = &v
	}
	if ri.Flags&renderHasSimpleSprite != 0 {
		v := r.u32()
		ri.SimpleSprite = &v
	}
	if ri.Flags&renderHasUVInfo != 0 {
		ri.UVInfo = &UVInfo{Origin: r.vec3(), UAxis: r.vec3(), VAxis: r.vec3()}
	}
	if ri.Flags&renderHasUVMap != 0 {
		n := r.count(r.u32(), 8)
		m := &UVMap{Entries: make([][2]float32, 0, n)}
		for i := 0; i < n; i++ {
			m.Entries = append(m.Entries, r.vec2())
		}
		ri.UVMap = m
	}
	return ri
}

func (w *writer) renderInfo(ri RenderInfo) {
	w.u32(ri.Flags)
	if ri.Flags&renderHasPen != 0 && ri.Pen != nil {
		w.u32(*ri.Pen)
	}
	if ri.Flags&renderHasBrightness != 0 && ri.Brightness != nil {
		w.f32(*ri.Brightness)
	}
	if ri.Flags&renderHasScaledAmbient != 0 && ri.ScaledAmbient != nil {
		w.f32(*ri.ScaledAmbient)
	}
	if ri.Flags&renderHasSimpleSprite != 0 && ri.SimpleSprite != nil {
		w.u32(*ri.SimpleSprite)
	}
	if ri.Flags&renderHasUVInfo != 0 && ri.UVInfo != nil {
		w.vec3(ri.UVInfo.Origin)
		w.vec3(ri.UVInfo.UAxis)
		w.vec3(ri.UVInfo.VAxis)
	}
	if ri.Flags&renderHasUVMap != 0 && ri.UVMap != nil {
		w.u32(uint32(len(ri.UVMap.Entries)))
		for _, e := range ri.UVMap.Entries {
			w.vec2(e)
		}
	}
}

const (
	twodHasCenterOffset   = 0x01
	twodHasBoundingRadius = 0x02
	twodHasCurrentFrame   = 0x04
	twodHasSleep          = 0x08
	twodSkipFrames        = 0x40
	twodHasDepthScale     = 0x80
)

// SpriteHeading is one camera heading within a pitch band. Its frame
// reference count is the sprite's FrameCount.
type SpriteHeading struct {
	Cap    uint32
	Frames []uint32
}

// SpritePitch groups the headings for one camera pitch band.
type SpritePitch struct {
	Cap      int32
	Headings []SpriteHeading
}

// TwoDimensionalObject is a camera-facing sprite with per-pitch,
// per-heading frame lists. FrameCount is kept explicitly because it
// sizes the frame list inside every heading.
//
// Type code 0x06.
type TwoDimensionalObject struct {
	NameRef        int32
	Flags          uint32
	FrameCount     uint32
	SpriteSize     [2]float32
	SphereRef      uint32
	DepthScale     *float32    // bit 0x80
	CenterOffset   *[3]float32 // bit 0x01
	BoundingRadius *float32    // bit 0x02
	CurrentFrame   *uint32     // bit 0x04
	Sleep          *uint32     // bit 0x08
	Pitches        []SpritePitch
	RenderMethod   uint32
	Render         RenderInfo
}

func (f *TwoDimensionalObject) TypeCode() uint32 { return 0x06 }
func (f *TwoDimensionalObject) nameRef() int32   { return f.NameRef }

func decodeTwoDimensionalObject(r *reader) (Fragment, error) {
	f := &TwoDimensionalObject{}
	f.NameRef = r.i32()
	f.Flags = r.u32()
	f.FrameCount = r.u32()
	pitchCount := r.u32()
	f.SpriteSize = r.vec2()
	f.SphereRef = r.u32()
	if f.Flags&twodHasDepthScale != 0 {
		v := r.f32()
		f.DepthScale = &v
	}
	if f.Flags&twodHasCenterOffset != 0 {
		v := r.vec3()
		f.CenterOffset = &v
	}
	if f.Flags&twodHasBoundingRadius != 0 {
		v := r.f32()
		f.BoundingRadius = &v
	}
	if f.Flags&twodHasCurrentFrame != 0 {
		v := r.u32()
		f.CurrentFrame = &v
	}
	if f.Flags&twodHasSleep != 0 {
		v := r.u32()
		f.Sleep = &v
	}
	n := r.count(pitchCount, 8)
	f.Pitches = make([]SpritePitch, 0, n)
	for i := 0; i < n && r.ok(); i++ {
		p := SpritePitch{Cap: r.i32()}
		hc := r.count(r.u32(), 4)
		p.Headings = make([]SpriteHeading, 0, hc)
		for j := 0; j < hc && r.ok(); j++ {
			h := SpriteHeading{Cap: r.u32(), Frames: r.u32s(f.FrameCount)}
			p.Headings = append(p.Headings, h)
		}
		f.Pitches = append(f.Pitches, p)
	}
	f.RenderMethod = r.u32()
	f.Render = readRenderInfo(r)
	return f, r.err()
}

func (f *TwoDimensionalObject) Encode() ([]byte, error) {
	w := newWriter()
	w.ref(f.NameRef)
	w.u32(f.Flags)
	w.u32(f.FrameCount)
	w.u32(uint32(len(f.Pitches)))
	w.vec2(f.SpriteSize)
	w.u32(f.SphereRef)
	if f.Flags&twodHasDepthScale != 0 && f.DepthScale != nil {
		w.f32(*f.DepthScale)
	}
	if f.Flags&twodHasCenterOffset != 0 && f.CenterOffset != nil {
		w.vec3(*f.CenterOffset)
	}
	if f.Flags&twodHasBoundingRadius != 0 && f.BoundingRadius != nil {
		w.f32(*f.BoundingRadius)
	}
	if f.Flags&twodHasCurrentFrame != 0 && f.CurrentFrame != nil {
		w.u32(*f.CurrentFrame)
	}
	if f.Flags&twodHasSleep != 0 && f.Sleep != nil {
		w.u32(*f.Sleep)
	}
	for _, p := range f.Pitches {
		w.i32(p.Cap)
		w.u32(uint32(len(p.Headings)))
		for _, h := range p.Headings {
			w.u32(h.Cap)
			w.u32s(h.Frames)
		}
	}
	w.u32(f.RenderMethod)
	w.renderInfo(f.Render)
	return w.finish()
}

// TwoDimensionalObjectReference points a placement at a sprite.
//
// Type code 0x07.
type TwoDimensionalObjectReference struct {
	NameRef int32
	Sprite  Ref[*TwoDimensionalObject]
	Flags   uint32
}

func (f *TwoDimensionalObjectReference) TypeCode() uint32 { return 0x07 }
func (f *TwoDimensionalObjectReference) nameRef() int32   { return f.NameRef }

func decodeTwoDimensionalObjectReference(r *reader) (Fragment, error) {
	f := &TwoDimensionalObjectReference{}
	f.NameRef = r.i32()
	f.Sprite = readRef[*TwoDimensionalObject](r)
	f.Flags = r.u32()
	return f, r.err()
}

func (f *TwoDimensionalObjectReference) Encode() ([]byte, error) {
	w := newWriter()
	w.ref(f.NameRef)
	w.ref(f.Sprite.Raw())
	w.u32(f.Flags)
	return w.finish()
}
