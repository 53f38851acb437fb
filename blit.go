package wld

const blitTransparent = 0x100

// BlitSpriteDefinition describes a billboard sprite, used for particle
// effects and spell visuals. The reference word points at the sprite's
// texture but is kept raw because old files store several kinds here.
//
// Type code 0x26.
type BlitSpriteDefinition struct {
	NameRef  int32
	Flags    uint32
	BlitRef  uint32
	Unknown  int32
}

func (f *BlitSpriteDefinition) TypeCode() uint32 { return 0x26 }
func (f *BlitSpriteDefinition) nameRef() int32   { return f.NameRef }

// Transparent reports whether the sprite renders with transparency.
func (f *BlitSpriteDefinition) Transparent() bool { return f.Flags&blitTransparent != 0 }

func decodeBlitSpriteDefinition(r *reader) (Fragment, error) {
	f := &BlitSpriteDefinition{}
	f.NameRef = r.i32()
	f.Flags = r.u32()
	f.BlitRef = r.u32()
	f.Unknown = r.i32()
	return f, r.err()
}

func (f *BlitSpriteDefinition) Encode() ([]byte, error) {
	w := newWriter()
	w.ref(f.NameRef)
	w.u32(f.Flags)
	w.u32(f.BlitRef)
	w.i32(f.Unknown)
	return w.finish()
}

// BlitSpriteReference attaches a billboard sprite definition. It is the
// one reference fragment with no flags word.
//
// Type code 0x27.
type BlitSpriteReference struct {
	NameRef int32
	BlitRef uint32
	Unknown int32
}

func (f *BlitSpriteReference) TypeCode() uint32 { return 0x27 }
func (f *BlitSpriteReference) nameRef() int32   { return f.NameRef }

func decodeBlitSpriteReference(r *reader) (Fragment, error) {
	f := &BlitSpriteReference{}
	f.NameRef = r.i32()
	f.BlitRef = r.u32()
	f.Unknown = r.i32()
	return f, r.err()
}

func (f *BlitSpriteReference) Encode() ([]byte, error) {
	w := newWriter()
	w.ref(f.NameRef)
	w.u32(f.BlitRef)
	w.i32(f.Unknown)
	return w.finish()
}
