package wld

// EncodedFilename is one scrambled, length-prefixed bitmap filename.
// NameLen keeps the stored byte length verbatim; the name is written
// back with a single NUL terminator, which is the only form any known
// file stores.
type EncodedFilename struct {
	NameLen uint16
	Name    string
}

func readEncodedFilename(r *reader) EncodedFilename {
	n := r.u16()
	return EncodedFilename{NameLen: n, Name: r.encodedString(int(n))}
}

func (w *writer) encodedFilename(e EncodedFilename) {
	w.u16(e.NameLen)
	w.encodedString(e.Name)
}

// TextureImages lists the bitmap filenames behind one texture frame.
// Every known file stores a single entry. The stored count word is one
// less than the real entry count.
//
// Type code 0x03.
type TextureImages struct {
	NameRef int32
	Entries []EncodedFilename
}

func (f *TextureImages) TypeCode() uint32 { return 0x03 }
func (f *TextureImages) nameRef() int32   { return f.NameRef }

func decodeTextureImages(r *reader) (Fragment, error) {
	f := &TextureImages{}
	f.NameRef = r.i32()
	n := r.u32() + 1
	c := r.count(n, 2)
	f.Entries = make([]EncodedFilename, 0, c)
	for i := 0; i < c && r.ok(); i++ {
		f.Entries = append(f.Entries, readEncodedFilename(r))
	}
	return f, r.err()
}

func (f *TextureImages) Encode() ([]byte, error) {
	w := newWriter()
	w.ref(f.NameRef)
	w.u32(uint32(len(f.Entries) - 1))
	for _, e := range f.Entries {
		w.encodedFilename(e)
	}
	return w.finish()
}

const (
	textureSkipFrames      = 0x02
	textureAnimated        = 0x08
	textureHasSleep        = 0x10
	textureHasCurrentFrame = 0x20
)

// Texture groups bitmap name lists into a single drawable texture and,
// for animated textures, carries the frame timing.
//
// Type code 0x04.
type Texture struct {
	NameRef int32
	Flags   uint32

	// CurrentFrame is present when Flags has bit 0x20 set.
	CurrentFrame *uint32

	// Sleep is the delay between frames in milliseconds, present when
	// Flags has both 0x08 and 0x10 set.
	Sleep *uint32

	Frames []Ref[*TextureImages]
}

func (f *Texture) TypeCode() uint32 { return 0x04 }
func (f *Texture) nameRef() int32   { return f.NameRef }

// Animated reports whether the texture cycles through its frames.
func (f *Texture) Animated() bool { return f.Flags&textureAnimated != 0 }

func decodeTexture(r *reader) (Fragment, error) {
	f := &Texture{}
	f.NameRef = r.i32()
	f.Flags = r.u32()
	frameCount := r.u32()
	if f.Flags&textureHasCurrentFrame != 0 {
		v := r.u32()
		f.CurrentFrame = &v
	}
	if f.Flags&textureAnimated != 0 && f.Flags&textureHasSleep != 0 {
		v := r.u32()
		f.Sleep = &v
	}
	n := r.count(frameCount, 4)
	f.Frames = make([]Ref[*TextureImages], 0, n)
	for i := 0; i < n; i++ {
		f.Frames = append(f.Frames, readRef[*TextureImages](r))
	}
	return f, r.err()
}

func (f *Texture) Encode() ([]byte, error) {
	w := newWriter()
	w.ref(f.NameRef)
	w.u32(f.Flags)
	w.u32(uint32(len(f.Frames)))
	if f.Flags&textureHasCurrentFrame != 0 && f.CurrentFrame != nil {
		w.u32(*f.CurrentFrame)
	}
	if f.Flags&textureAnimated != 0 && f.Flags&textureHasSleep != 0 && f.Sleep != nil {
		w.u32(*f.Sleep)
	}
	for _, ref := range f.Frames {
		w.ref(ref.Raw())
	}
	return w.finish()
}

// TextureReference points a material at a texture.
//
// Type code 0x05.
type TextureReference struct {
	NameRef int32
	Texture Ref[*Texture]
	Flags   uint32
}

func (f *TextureReference) TypeCode() uint32 { return 0x05 }
func (f *TextureReference) nameRef() int32   { return f.NameRef }

func decodeTextureReference(r *reader) (Fragment, error) {
	f := &TextureReference{}
	f.NameRef = r.i32()
	f.Texture = readRef[*Texture](r)
	f.Flags = r.u32()
	return f, r.err()
}

func (f *TextureReference) Encode() ([]byte, error) {
	w := newWriter()
	w.ref(f.NameRef)
	w.ref(f.Texture.Raw())
	w.u32(f.Flags)
	return w.finish()
}
