package wld

const (
	skeletonHasUnknownParams1 = 0x01
	skeletonHasUnknownParams2 = 0x02
	skeletonHasMeshRefs       = 0x200
)

// SkeletonEntry is one bone in a skeleton tree. Track usually points at
// a 0x13 piece track reference and MeshRef sometimes at a 0x2D mesh
// reference; both are kept as raw words because real files are loose
// about what they store here. Children holds the indexes of the bones
// attached below this one.
type SkeletonEntry struct {
	NameRef  uint32
	Flags    uint32
	Track    uint32
	MeshRef  uint32
	Children []uint32
}

// SkeletonTrackSet is the bone hierarchy for an animated model. Walking
// starts at the first entry and follows Children recursively; piece
// tracks hang off each entry. When bit 0x200 is set the fragment also
// carries the mesh references that make up the model's skin.
//
// Type code 0x10.
type SkeletonTrackSet struct {
	NameRef int32
	Flags   uint32

	// PolygonAnimRef may point at a polygon animation reference. Kept
	// raw; nothing in the known files resolves it consistently.
	PolygonAnimRef uint32

	UnknownParams1 *[3]uint32 // bit 0x01
	UnknownParams2 *float32   // bit 0x02

	Entries []SkeletonEntry

	// MeshRefs and Data3 exist only when bit 0x200 is set and always
	// hold the same number of words.
	MeshRefs []uint32
	Data3    []uint32
}

func (f *SkeletonTrackSet) TypeCode() uint32 { return 0x10 }
func (f *SkeletonTrackSet) nameRef() int32   { return f.NameRef }

func decodeSkeletonTrackSet(r *reader) (Fragment, error) {
	f := &SkeletonTrackSet{}
	f.NameRef = r.i32()
	f.Flags = r.u32()
	entryCount := r.u32()
	f.PolygonAnimRef = r.u32()
	if f.Flags&skeletonHasUnknownParams1 != 0 {
		v := [3]uint32{r.u32(), r.u32(), r.u32()}
		f.UnknownParams1 = &v
	}
	if f.Flags&skeletonHasUnknownParams2 != 0 {
		v := r.f32()
		f.UnknownParams2 = &v
	}
	n := r.count(entryCount, 20)
	f.Entries = make([]SkeletonEntry, 0, n)
	for i := 0; i < n && r.ok(); i++ {
		e := SkeletonEntry{
			NameRef: r.u32(),
			Flags:   r.u32(),
			Track:   r.u32(),
			MeshRef: r.u32(),
		}
		e.Children = r.u32s(r.u32())
		f.Entries = append(f.Entries, e)
	}
	if f.Flags&skeletonHasMeshRefs != 0 {
		size2 := r.u32()
		f.MeshRefs = r.u32s(size2)
		f.Data3 = r.u32s(size2)
	}
	return f, r.err()
}

func (f *SkeletonTrackSet) Encode() ([]byte, error) {
	w := newWriter()
	w.ref(f.NameRef)
	w.u32(f.Flags)
	w.u32(uint32(len(f.Entries)))
	w.u32(f.PolygonAnimRef)
	if f.Flags&skeletonHasUnknownParams1 != 0 && f.UnknownParams1 != nil {
		w.u32(f.UnknownParams1[0])
		w.u32(f.UnknownParams1[1])
		w.u32(f.UnknownParams1[2])
	}
	if f.Flags&skeletonHasUnknownParams2 != 0 && f.UnknownParams2 != nil {
		w.f32(*f.UnknownParams2)
	}
	for _, e := range f.Entries {
		w.u32(e.NameRef)
		w.u32(e.Flags)
		w.u32(e.Track)
		w.u32(e.MeshRef)
		w.u32(uint32(len(e.Children)))
		w.u32s(e.Children)
	}
	if f.Flags&skeletonHasMeshRefs != 0 {
		w.u32(uint32(len(f.MeshRefs)))
		w.u32s(f.MeshRefs)
		w.u32s(f.Data3)
	}
	return w.finish()
}

// SkeletonTrackSetReference makes a skeleton addressable from a model.
//
// Type code 0x11.
type SkeletonTrackSetReference struct {
	NameRef  int32
	Skeleton Ref[*SkeletonTrackSet]
	Params1  uint32
}

func (f *SkeletonTrackSetReference) TypeCode() uint32 { return 0x11 }
func (f *SkeletonTrackSetReference) nameRef() int32   { return f.NameRef }

func decodeSkeletonTrackSetReference(r *reader) (Fragment, error) {
	f := &SkeletonTrackSetReference{}
	f.NameRef = r.i32()
	f.Skeleton = readRef[*SkeletonTrackSet](r)
	f.Params1 = r.u32()
	return f, r.err()
}

func (f *SkeletonTrackSetReference) Encode() ([]byte, error) {
	w := newWriter()
	w.ref(f.NameRef)
	w.ref(f.Skeleton.Raw())
	w.u32(f.Params1)
	return w.finish()
}

const trackHasData2 = 0x08

// MobSkeletonPieceTrack positions one skeleton piece relative to its
// parent. Rotation and shift are stored as integer fractions: each axis
// numerator divides by the matching denominator, and a zero denominator
// means the component should be ignored. Size counts data words that no
// known file actually stores; when bit 0x08 is set and bytes remain,
// they are kept raw in Data2.
//
// Type code 0x12.
type MobSkeletonPieceTrack struct {
	NameRef     int32
	Flags       uint32
	Size        uint32
	RotateDenom int16
	RotateX     int16
	RotateY     int16
	RotateZ     int16
	ShiftX      int16
	ShiftY      int16
	ShiftZ      int16
	ShiftDenom  int16
	Data2       []byte
}

func (f *MobSkeletonPieceTrack) TypeCode() uint32 { return 0x12 }
func (f *MobSkeletonPieceTrack) nameRef() int32   { return f.NameRef }

func decodeMobSkeletonPieceTrack(r *reader) (Fragment, error) {
	f := &MobSkeletonPieceTrack{}
	f.NameRef = r.i32()
	f.Flags = r.u32()
	f.Size = r.u32()
	f.RotateDenom = r.i16()
	f.RotateX = r.i16()
	f.RotateY = r.i16()
	f.RotateZ = r.i16()
	f.ShiftX = r.i16()
	f.ShiftY = r.i16()
	f.ShiftZ = r.i16()
	f.ShiftDenom = r.i16()
	if f.Flags&trackHasData2 != 0 && r.remaining() > 0 {
		f.Data2 = r.rest()
	}
	return f, r.err()
}

func (f *MobSkeletonPieceTrack) Encode() ([]byte, error) {
	w := newWriter()
	w.ref(f.NameRef)
	w.u32(f.Flags)
	w.u32(f.Size)
	w.i16(f.RotateDenom)
	w.i16(f.RotateX)
	w.i16(f.RotateY)
	w.i16(f.RotateZ)
	w.i16(f.ShiftX)
	w.i16(f.ShiftY)
	w.i16(f.ShiftZ)
	w.i16(f.ShiftDenom)
	w.bytes(f.Data2)
	return w.finish()
}

const trackRefHasParams1 = 0x01

// MobSkeletonPieceTrackReference binds a piece track into a skeleton.
// Alternate animation sets reuse these by name with a set prefix.
//
// Type code 0x13.
type MobSkeletonPieceTrackReference struct {
	NameRef int32
	Track   Ref[*MobSkeletonPieceTrack]
	Flags   uint32
	Params1 *uint32 // bit 0x01
}

func (f *MobSkeletonPieceTrackReference) TypeCode() uint32 { return 0x13 }
func (f *MobSkeletonPieceTrackReference) nameRef() int32   { return f.NameRef }

func decodeMobSkeletonPieceTrackReference(r *reader) (Fragment, error) {
	f := &MobSkeletonPieceTrackReference{}
	f.NameRef = r.i32()
	f.Track = readRef[*MobSkeletonPieceTrack](r)
	f.Flags = r.u32()
	if f.Flags&trackRefHasParams1 != 0 {
		v := r.u32()
		f.Params1 = &v
	}
	return f, r.err()
}

func (f *MobSkeletonPieceTrackReference) Encode() ([]byte, error) {
	w := newWriter()
	w.ref(f.NameRef)
	w.ref(f.Track.Raw())
	w.u32(f.Flags)
	if f.Flags&trackRefHasParams1 != 0 && f.Params1 != nil {
		w.u32(*f.Params1)
	}
	return w.finish()
}
