package wld

import (
	"strings"
	"testing"
)

func zoneSpheres(n int) []Fragment {
	out := make([]Fragment, n)
	for i := range out {
		out[i] = &ZoneUnknown{Radius: float32(i + 1)}
	}
	return out
}

func TestGet_ByIndex(t *testing.T) {
	doc := &Document{Strings: NewStringPool(), Fragments: zoneSpheres(10)}
	got, ok := Get(doc, RefByIndex[*ZoneUnknown](5))
	if !ok || got.Radius != 5 {
		t.Fatalf("Get index 5 = %#v, %v", got, ok)
	}
}

func TestGet_IndexOutOfRange(t *testing.T) {
	doc := &Document{Strings: NewStringPool(), Fragments: zoneSpheres(3)}
	if _, ok := Get(doc, RefByIndex[*ZoneUnknown](5)); ok {
		t.Fatal("index past the table must miss")
	}
	if _, ok := Get(doc, RefByIndex[*ZoneUnknown](0)); ok {
		t.Fatal("zero reference must miss")
	}
}

func TestGet_IndexWrongType(t *testing.T) {
	doc := &Document{Strings: NewStringPool(), Fragments: zoneSpheres(3)}
	if _, ok := Get(doc, RefByIndex[*Mesh](2)); ok {
		t.Fatal("type mismatch must miss")
	}
}

// nameDoc pads the pool so "DOOR_MESH" lands at offset 31, then names
// its fragments with it.
func nameDoc(frags ...Fragment) (*Document, int32) {
	pool := NewStringPool()
	pool.Add(strings.Repeat("P", 30))
	off := pool.Add("DOOR_MESH")
	return &Document{Strings: pool, Fragments: frags}, off
}

func TestGet_ByName(t *testing.T) {
	doc, off := nameDoc(
		&ZoneUnknown{Radius: 1},
		&ZoneUnknown{Radius: 2},
	)
	doc.Fragments[1].(*ZoneUnknown).NameRef = -off
	got, ok := Get(doc, RefByName[*ZoneUnknown](off))
	if !ok || got.Radius != 2 {
		t.Fatalf("Get by name = %#v, %v", got, ok)
	}
}

func TestGet_NameUnknownOffset(t *testing.T) {
	doc, _ := nameDoc(&ZoneUnknown{Radius: 1})
	// Offset 5 is inside the padding string, not a segment start.
	if _, ok := Get(doc, RefByName[*ZoneUnknown](5)); ok {
		t.Fatal("offset without a pool segment must miss")
	}
}

func TestGet_NameNoFragmentCarriesIt(t *testing.T) {
	doc, off := nameDoc(&ZoneUnknown{Radius: 1})
	if _, ok := Get(doc, RefByName[*ZoneUnknown](off)); ok {
		t.Fatal("name with no matching fragment must miss")
	}
}

func TestGet_NameFirstMatchWins(t *testing.T) {
	doc, off := nameDoc(
		&ZoneUnknown{Radius: 1},
		&ZoneUnknown{Radius: 2},
	)
	doc.Fragments[0].(*ZoneUnknown).NameRef = -off
	doc.Fragments[1].(*ZoneUnknown).NameRef = -off
	got, ok := Get(doc, RefByName[*ZoneUnknown](off))
	if !ok || got.Radius != 1 {
		t.Fatalf("expected first match, got %#v, %v", got, ok)
	}
}

func TestGet_NameFirstMatchWrongType(t *testing.T) {
	doc, off := nameDoc(
		&ZoneUnknown{Radius: 1},
		&Mesh{},
	)
	doc.Fragments[0].(*ZoneUnknown).NameRef = -off
	doc.Fragments[1].(*Mesh).NameRef = -off
	// The first fragment carrying the name is a sphere, so a mesh
	// lookup fails rather than scanning on to the second carrier.
	if _, ok := Get(doc, RefByName[*Mesh](off)); ok {
		t.Fatal("lookup must stop at the first name carrier")
	}
}

func TestRef_Accessors(t *testing.T) {
	idx := RefByIndex[*Mesh](7)
	if v, ok := idx.Index(); !ok || v != 7 {
		t.Fatalf("Index = %d, %v", v, ok)
	}
	if _, ok := idx.NameOffset(); ok {
		t.Fatal("positional ref must not report a name offset")
	}
	if idx.IsZero() || idx.Raw() != 7 {
		t.Fatalf("raw = %d", idx.Raw())
	}

	name := RefByName[*Mesh](31)
	if v, ok := name.NameOffset(); !ok || v != 31 {
		t.Fatalf("NameOffset = %d, %v", v, ok)
	}
	if _, ok := name.Index(); ok {
		t.Fatal("name ref must not report an index")
	}
	if name.Raw() != -31 {
		t.Fatalf("raw = %d", name.Raw())
	}

	var zero Ref[*Mesh]
	if !zero.IsZero() {
		t.Fatal("zero value must report IsZero")
	}
}

func TestFragmentsOf(t *testing.T) {
	doc := sampleDoc()
	meshes := FragmentsOf[*Mesh](doc)
	if len(meshes) != 1 || len(meshes[0].Polygons) != 2 {
		t.Fatalf("FragmentsOf[*Mesh] = %#v", meshes)
	}
	if FragmentsOf[*ZoneUnknown](doc) != nil {
		t.Fatal("absent type must return nil")
	}
}
