package wld

// Ref is a soft reference from one fragment to another. The wire form is
// a single signed word: positive values index fragments by 1-based
// document position, negative values name a fragment by string pool
// offset, and zero means no reference. Resolution is deferred until the
// document is asked, so dangling references survive parsing and encode
// back out unchanged.
type Ref[T Fragment] struct {
	raw int32
}

// RefByIndex references the fragment at the given 1-based document
// position.
func RefByIndex[T Fragment](index uint32) Ref[T] {
	return Ref[T]{raw: int32(index)}
}

// RefByName references the fragment whose own name sits at the given
// string pool offset.
func RefByName[T Fragment](offset int32) Ref[T] {
	if offset < 0 {
		offset = -offset
	}
	return Ref[T]{raw: -offset}
}

// Raw returns the signed wire value.
func (r Ref[T]) Raw() int32 { return r.raw }

// IsZero reports whether the reference is the zero word, which real
// files use to mean no reference.
func (r Ref[T]) IsZero() bool { return r.raw == 0 }

// Index returns the 1-based fragment position for positional references.
func (r Ref[T]) Index() (uint32, bool) {
	if r.raw > 0 {
		return uint32(r.raw), true
	}
	return 0, false
}

// NameOffset returns the string pool offset for name references.
func (r Ref[T]) NameOffset() (int32, bool) {
	if r.raw < 0 {
		return -r.raw, true
	}
	return 0, false
}

func readRef[T Fragment](r *reader) Ref[T] {
	return Ref[T]{raw: r.i32()}
}

func (w *writer) ref(raw int32) { w.i32(raw) }

// Get resolves a reference against a document. Positional references must
// land inside the fragment table and hold the expected concrete type.
// Name references fetch the string at the pool offset, then scan the
// table for the first fragment whose own name matches; the match must
// hold the expected type. Every failure mode reports (zero, false),
// never an error.
func Get[T Fragment](d *Document, ref Ref[T]) (T, bool) {
	var zero T
	switch {
	case ref.raw > 0:
		f := d.At(int(ref.raw))
		if f == nil {
			return zero, false
		}
		t, ok := f.(T)
		return t, ok
	case ref.raw < 0:
		if d.Strings == nil {
			return zero, false
		}
		name, ok := d.Strings.Get(ref.raw)
		if !ok {
			return zero, false
		}
		for _, f := range d.Fragments {
			if f.nameRef() == 0 {
				continue
			}
			n, ok := d.Strings.Get(f.nameRef())
			if !ok || n != name {
				continue
			}
			t, ok := f.(T)
			return t, ok
		}
		return zero, false
	default:
		return zero, false
	}
}

// FragmentsOf collects every fragment of one concrete type in document
// order.
func FragmentsOf[T Fragment](d *Document) []T {
	var out []T
	for _, f := range d.Fragments {
		if t, ok := f.(T); ok {
			out = append(out, t)
		}
	}
	return out
}
