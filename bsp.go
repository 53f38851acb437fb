package wld

// BspNode is one node of the zone's space partition: a splitting plane,
// a region reference for leaves, and the 1-based positions of the child
// nodes inside the same array. Zero means no child on that side.
type BspNode struct {
	Normal        [3]float32
	SplitDistance float32
	Region        Ref[*BspRegion]
	Front         int32
	Back          int32
}

// BspTree carries the zone's binary space partition as a flat node
// array starting at node 1.
//
// Type code 0x21.
type BspTree struct {
	NameRef int32
	Nodes   []BspNode
}

func (f *BspTree) TypeCode() uint32 { return 0x21 }
func (f *BspTree) nameRef() int32   { return f.NameRef }

func decodeBspTree(r *reader) (Fragment, error) {
	f := &BspTree{}
	f.NameRef = r.i32()
	n := r.count(r.u32(), 28)
	f.Nodes = make([]BspNode, 0, n)
	for i := 0; i < n; i++ {
		f.Nodes = append(f.Nodes, BspNode{
			Normal:        r.vec3(),
			SplitDistance: r.f32(),
			Region:        readRef[*BspRegion](r),
			Front:         r.i32(),
			Back:          r.i32(),
		})
	}
	return f, r.err()
}

func (f *BspTree) Encode() ([]byte, error) {
	w := newWriter()
	w.ref(f.NameRef)
	w.u32(uint32(len(f.Nodes)))
	for _, n := range f.Nodes {
		w.vec3(n.Normal)
		w.f32(n.SplitDistance)
		w.ref(n.Region.Raw())
		w.i32(n.Front)
		w.i32(n.Back)
	}
	return w.finish()
}

const (
	bspRegionWordPVS = 0x20
	bspRegionBytePVS = 0x80
	bspRegionHasMesh = 0x100

	bspWallHasParams = 0x02
)

// BspRegionWall is one of the undeciphered wall records a region can
// carry.
type BspRegionWall struct {
	Flags   uint32
	Data    []uint32
	Params1 *[3]uint32 // bit 0x02
	Params2 *uint32    // bit 0x02
}

// BspRegionObstacle is one of the undeciphered obstacle records a
// region can carry. Types above 7 store two extra words before the
// name.
type BspRegionObstacle struct {
	Flags    uint32
	Params1  uint32
	Type     uint32
	Params2a *uint32
	Params2b *uint32
	Name     []byte
}

// BspRegionData5 is a block of seven words, usually all zero except the
// fifth.
type BspRegionData5 struct {
	Params1 [3]uint32
	Params2 uint32
	Params3 uint32
	Params4 uint32
	Params5 uint32
}

// RegionPVS is the run-length-encoded visible set for one region. The
// stream stays raw; the client walks it to find nearby regions.
type RegionPVS struct {
	Data []byte
}

// BspRegion is one leaf volume of the space partition. Unlike every
// other fragment the body starts directly at the flags word; regions
// are unnamed. Regions containing polygons set bit 0x100 and reference
// the mesh that holds exactly the geometry inside the volume.
//
// Type code 0x22.
type BspRegion struct {
	Flags     uint32
	Fragment1 Ref[Fragment]
	Params1   uint32
	Params2   uint32
	Data1     []byte
	Data2     []byte
	Walls     []BspRegionWall
	Obstacles []BspRegionObstacle
	Data5     []BspRegionData5
	PVS       []RegionPVS

	// Size7 and Name7 close the body: a stored size word followed by
	// twelve bytes read unconditionally, kept verbatim.
	Size7 uint32
	Name7 [12]byte

	Fragment2 Ref[Fragment]
	Mesh      *Ref[*Mesh] // bit 0x100
}

func (f *BspRegion) TypeCode() uint32 { return 0x22 }
func (f *BspRegion) nameRef() int32   { return 0 }

func decodeBspRegion(r *reader) (Fragment, error) {
	f := &BspRegion{}
	f.Flags = r.u32()
	f.Fragment1 = readRef[Fragment](r)
	size1 := r.u32()
	size2 := r.u32()
	f.Params1 = r.u32()
	size3 := r.u32()
	size4 := r.u32()
	f.Params2 = r.u32()
	size5 := r.u32()
	pvsCount := r.u32()

	f.Data1 = r.bytes(r.count(size1, 1))
	f.Data2 = r.bytes(r.count(size2, 1))

	n3 := r.count(size3, 8)
	f.Walls = make([]BspRegionWall, 0, n3)
	for i := 0; i < n3 && r.ok(); i++ {
		wall := BspRegionWall{Flags: r.u32()}
		wall.Data = r.u32s(r.u32())
		if wall.Flags&bspWallHasParams != 0 {
			p1 := [3]uint32{r.u32(), r.u32(), r.u32()}
			p2 := r.u32()
			wall.Params1 = &p1
			wall.Params2 = &p2
		}
		f.Walls = append(f.Walls, wall)
	}

	n4 := r.count(size4, 16)
	f.Obstacles = make([]BspRegionObstacle, 0, n4)
	for i := 0; i < n4 && r.ok(); i++ {
		o := BspRegionObstacle{Flags: r.u32(), Params1: r.u32(), Type: r.u32()}
		if o.Type > 7 {
			a := r.u32()
			b := r.u32()
			o.Params2a = &a
			o.Params2b = &b
		}
		o.Name = r.bytes(r.count(r.u32(), 1))
		f.Obstacles = append(f.Obstacles, o)
	}

	n5 := r.count(size5, 28)
	f.Data5 = make([]BspRegionData5, 0, n5)
	for i := 0; i < n5; i++ {
		f.Data5 = append(f.Data5, BspRegionData5{
			Params1: [3]uint32{r.u32(), r.u32(), r.u32()},
			Params2: r.u32(),
			Params3: r.u32(),
			Params4: r.u32(),
			Params5: r.u32(),
		})
	}

	np := r.count(pvsCount, 2)
	f.PVS = make([]RegionPVS, 0, np)
	for i := 0; i < np && r.ok(); i++ {
		f.PVS = append(f.PVS, RegionPVS{Data: r.bytes(int(r.u16()))})
	}

	f.Size7 = r.u32()
	copy(f.Name7[:], r.bytes(12))
	f.Fragment2 = readRef[Fragment](r)
	if f.Flags&bspRegionHasMesh != 0 {
		v := readRef[*Mesh](r)
		f.Mesh = &v
	}
	return f, r.err()
}

func (f *BspRegion) Encode() ([]byte, error) {
	w := newWriter()
	w.u32(f.Flags)
	w.ref(f.Fragment1.Raw())
	w.u32(uint32(len(f.Data1)))
	w.u32(uint32(len(f.Data2)))
	w.u32(f.Params1)
	w.u32(uint32(len(f.Walls)))
	w.u32(uint32(len(f.Obstacles)))
	w.u32(f.Params2)
	w.u32(uint32(len(f.Data5)))
	w.u32(uint32(len(f.PVS)))
	w.bytes(f.Data1)
	w.bytes(f.Data2)
	for _, wall := range f.Walls {
		w.u32(wall.Flags)
		w.u32(uint32(len(wall.Data)))
		w.u32s(wall.Data)
		if wall.Flags&bspWallHasParams != 0 && wall.Params1 != nil {
			w.u32(wall.Params1[0])
			w.u32(wall.Params1[1])
			w.u32(wall.Params1[2])
		}
		if wall.Flags&bspWallHasParams != 0 && wall.Params2 != nil {
			w.u32(*wall.Params2)
		}
	}
	for _, o := range f.Obstacles {
		w.u32(o.Flags)
		w.u32(o.Params1)
		w.u32(o.Type)
		if o.Params2a != nil {
			w.u32(*o.Params2a)
		}
		if o.Params2b != nil {
			w.u32(*o.Params2b)
		}
		w.u32(uint32(len(o.Name)))
		w.bytes(o.Name)
	}
	for _, d := range f.Data5 {
		w.u32(d.Params1[0])
		w.u32(d.Params1[1])
		w.u32(d.Params1[2])
		w.u32(d.Params2)
		w.u32(d.Params3)
		w.u32(d.Params4)
		w.u32(d.Params5)
	}
	for _, p := range f.PVS {
		w.u16(uint16(len(p.Data)))
		w.bytes(p.Data)
	}
	w.u32(f.Size7)
	w.bytes(f.Name7[:])
	w.ref(f.Fragment2.Raw())
	if f.Flags&bspRegionHasMesh != 0 && f.Mesh != nil {
		w.ref(f.Mesh.Raw())
	}
	return w.finish()
}

// RegionFlag tags a list of BSP regions with a type string such as a
// water or lava marker, stored in the user data tail.
//
// Type code 0x29.
type RegionFlag struct {
	NameRef int32
	Flags   uint32
	Regions []uint32

	UserDataSize uint32
	UserData     string
}

func (f *RegionFlag) TypeCode() uint32 { return 0x29 }
func (f *RegionFlag) nameRef() int32   { return f.NameRef }

func decodeRegionFlag(r *reader) (Fragment, error) {
	f := &RegionFlag{}
	f.NameRef = r.i32()
	f.Flags = r.u32()
	f.Regions = r.u32s(r.u32())
	f.UserDataSize, f.UserData = r.encodedTail()
	return f, r.err()
}

func (f *RegionFlag) Encode() ([]byte, error) {
	w := newWriter()
	w.ref(f.NameRef)
	w.u32(f.Flags)
	w.u32(uint32(len(f.Regions)))
	w.u32s(f.Regions)
	w.encodedTail(f.UserDataSize, f.UserData)
	return w.finish()
}
