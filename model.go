package wld

// Location places an object in zone space. In main zone files it holds
// the zone's minimum corner; for placeable objects it is the instance
// position with rotations in 512/360 degree units. The wire stores
// rotations Z, Y, X in that order.
type Location struct {
	X       float32
	Y       float32
	Z       float32
	RotateZ float32
	RotateY float32
	RotateX float32
	Unknown uint32
}

func readLocation(r *reader) Location {
	return Location{
		X:       r.f32(),
		Y:       r.f32(),
		Z:       r.f32(),
		RotateZ: r.f32(),
		RotateY: r.f32(),
		RotateX: r.f32(),
		Unknown: r.u32(),
	}
}

func (w *writer) location(l Location) {
	w.f32(l.X)
	w.f32(l.Y)
	w.f32(l.Z)
	w.f32(l.RotateZ)
	w.f32(l.RotateY)
	w.f32(l.RotateX)
	w.u32(l.Unknown)
}

const (
	modelHasCurrentAction = 0x01
	modelHasLocation      = 0x02
	modelActiveGeometry   = 0x40
	modelSpriteVolumeOnly = 0x80
)

// ModelAction is one action a model can perform, with a render distance
// per level of detail.
type ModelAction struct {
	Unknown   uint32
	Distances []float32
}

// Model is an actor definition: the template a placed object or mob
// instantiates. FragmentRefs point at the skeleton or mesh references
// that render it; they stay raw words because zone files store several
// reference kinds here.
//
// Type code 0x14.
type Model struct {
	NameRef         int32
	Flags           uint32
	CallbackNameRef int32
	BoundsRef       uint32
	CurrentAction   *uint32   // bit 0x01
	Location        *Location // bit 0x02
	Actions         []ModelAction
	FragmentRefs    []uint32
	Unknown         uint32
}

func (f *Model) TypeCode() uint32 { return 0x14 }
func (f *Model) nameRef() int32   { return f.NameRef }

func decodeModel(r *reader) (Fragment, error) {
	f := &Model{}
	f.NameRef = r.i32()
	f.Flags = r.u32()
	f.CallbackNameRef = r.i32()
	actionCount := r.u32()
	refCount := r.u32()
	f.BoundsRef = r.u32()
	if f.Flags&modelHasCurrentAction != 0 {
		v := r.u32()
		f.CurrentAction = &v
	}
	if f.Flags&modelHasLocation != 0 {
		v := readLocation(r)
		f.Location = &v
	}
	n := r.count(actionCount, 8)
	f.Actions = make([]ModelAction, 0, n)
	for i := 0; i < n && r.ok(); i++ {
		lodCount := r.u32()
		a := ModelAction{Unknown: r.u32()}
		a.Distances = r.f32s(lodCount)
		f.Actions = append(f.Actions, a)
	}
	f.FragmentRefs = r.u32s(refCount)
	f.Unknown = r.u32()
	return f, r.err()
}

func (f *Model) Encode() ([]byte, error) {
	w := newWriter()
	w.ref(f.NameRef)
	w.u32(f.Flags)
	w.ref(f.CallbackNameRef)
	w.u32(uint32(len(f.Actions)))
	w.u32(uint32(len(f.FragmentRefs)))
	w.u32(f.BoundsRef)
	if f.Flags&modelHasCurrentAction != 0 && f.CurrentAction != nil {
		w.u32(*f.CurrentAction)
	}
	if f.Flags&modelHasLocation != 0 && f.Location != nil {
		w.location(*f.Location)
	}
	for _, a := range f.Actions {
		w.u32(uint32(len(a.Distances)))
		w.u32(a.Unknown)
		w.f32s(a.Distances)
	}
	w.u32s(f.FragmentRefs)
	w.u32(f.Unknown)
	return w.finish()
}

const (
	locationHasCurrentAction  = 0x01
	locationHasLocation       = 0x02
	locationHasBoundingRadius = 0x04
	locationHasScaleFactor    = 0x08
	locationHasSound          = 0x10
	locationActive            = 0x20
	locationSpriteVolumeOnly  = 0x80
	locationHasVertexColorRef = 0x100
)

// ObjectLocation places one instance of an actor definition in the zone.
// In main zone files ActorDefRef points at a player info fragment; for
// placeable objects it is a string reference to the definition's name.
// The body always closes with a size-prefixed user data string, kept
// with its stored size so rewrites are byte-exact.
//
// Type code 0x15.
type ObjectLocation struct {
	NameRef     int32
	ActorDefRef int32
	Flags       uint32
	SphereRef   Ref[*ZoneUnknown]

	CurrentAction  *uint32                     // bit 0x01
	Location       *Location                   // bit 0x02
	BoundingRadius *float32                    // bit 0x04
	ScaleFactor    *float32                    // bit 0x08
	SoundNameRef   *int32                      // bit 0x10
	VertexColor    *Ref[*VertexColorReference] // bit 0x100

	UserDataSize uint32
	UserData     string
}

func (f *ObjectLocation) TypeCode() uint32 { return 0x15 }
func (f *ObjectLocation) nameRef() int32   { return f.NameRef }

// Active reports the placement flag the client sets on live geometry.
func (f *ObjectLocation) Active() bool { return f.Flags&locationActive != 0 }

// SpriteVolumeOnly reports whether the instance is a bounding volume
// with no drawn geometry.
func (f *ObjectLocation) SpriteVolumeOnly() bool {
	return f.Flags&locationSpriteVolumeOnly != 0
}

func decodeObjectLocation(r *reader) (Fragment, error) {
	f := &ObjectLocation{}
	f.NameRef = r.i32()
	f.ActorDefRef = r.i32()
	f.Flags = r.u32()
	f.SphereRef = readRef[*ZoneUnknown](r)
	if f.Flags&locationHasCurrentAction != 0 {
		v := r.u32()
		f.CurrentAction = &v
	}
	if f.Flags&locationHasLocation != 0 {
		v := readLocation(r)
		f.Location = &v
	}
	if f.Flags&locationHasBoundingRadius != 0 {
		v := r.f32()
		f.BoundingRadius = &v
	}
	if f.Flags&locationHasScaleFactor != 0 {
		v := r.f32()
		f.ScaleFactor = &v
	}
	if f.Flags&locationHasSound != 0 {
		v := r.i32()
		f.SoundNameRef = &v
	}
	if f.Flags&locationHasVertexColorRef != 0 {
		v := readRef[*VertexColorReference](r)
		f.VertexColor = &v
	}
	f.UserDataSize, f.UserData = r.encodedTail()
	return f, r.err()
}

func (f *ObjectLocation) Encode() ([]byte, error) {
	w := newWriter()
	w.ref(f.NameRef)
	w.ref(f.ActorDefRef)
	w.u32(f.Flags)
	w.ref(f.SphereRef.Raw())
	if f.Flags&locationHasCurrentAction != 0 && f.CurrentAction != nil {
		w.u32(*f.CurrentAction)
	}
	if f.Flags&locationHasLocation != 0 && f.Location != nil {
		w.location(*f.Location)
	}
	if f.Flags&locationHasBoundingRadius != 0 && f.BoundingRadius != nil {
		w.f32(*f.BoundingRadius)
	}
	if f.Flags&locationHasScaleFactor != 0 && f.ScaleFactor != nil {
		w.f32(*f.ScaleFactor)
	}
	if f.Flags&locationHasSound != 0 && f.SoundNameRef != nil {
		w.ref(*f.SoundNameRef)
	}
	if f.Flags&locationHasVertexColorRef != 0 && f.VertexColor != nil {
		w.ref(f.VertexColor.Raw())
	}
	w.encodedTail(f.UserDataSize, f.UserData)
	return w.finish()
}

// ZoneUnknown is a bounding sphere an object location can point at.
//
// Type code 0x16.
type ZoneUnknown struct {
	NameRef int32
	Radius  float32
}

func (f *ZoneUnknown) TypeCode() uint32 { return 0x16 }
func (f *ZoneUnknown) nameRef() int32   { return f.NameRef }

func decodeZoneUnknown(r *reader) (Fragment, error) {
	f := &ZoneUnknown{}
	f.NameRef = r.i32()
	f.Radius = r.f32()
	return f, r.err()
}

func (f *ZoneUnknown) Encode() ([]byte, error) {
	w := newWriter()
	w.ref(f.NameRef)
	w.f32(f.Radius)
	return w.finish()
}
