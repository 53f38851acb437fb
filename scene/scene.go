package scene

import "github.com/logicossoftware/go-wld"

// Scene is a read-only view over a parsed document. The zero value is
// not usable; construct with New. A Scene holds no state beyond the
// document pointer, so it is as safe for concurrent use as the document
// itself.
type Scene struct {
	doc *wld.Document
}

// New wraps a parsed document.
func New(doc *wld.Document) *Scene {
	return &Scene{doc: doc}
}

// Document returns the underlying document.
func (s *Scene) Document() *wld.Document { return s.doc }

// Meshes lists every mesh fragment in document order.
func (s *Scene) Meshes() []Mesh {
	frags := wld.FragmentsOf[*wld.Mesh](s.doc)
	out := make([]Mesh, len(frags))
	for i, f := range frags {
		out[i] = Mesh{doc: s.doc, frag: f}
	}
	return out
}

// Materials lists every material fragment in document order.
func (s *Scene) Materials() []Material {
	frags := wld.FragmentsOf[*wld.Material](s.doc)
	out := make([]Material, len(frags))
	for i, f := range frags {
		out[i] = Material{doc: s.doc, frag: f}
	}
	return out
}

// Models lists every actor definition in document order.
func (s *Scene) Models() []Model {
	frags := wld.FragmentsOf[*wld.Model](s.doc)
	out := make([]Model, len(frags))
	for i, f := range frags {
		out[i] = Model{doc: s.doc, frag: f}
	}
	return out
}

// Objects lists every placed instance in document order.
func (s *Scene) Objects() []Object {
	frags := wld.FragmentsOf[*wld.ObjectLocation](s.doc)
	out := make([]Object, len(frags))
	for i, f := range frags {
		out[i] = Object{doc: s.doc, frag: f}
	}
	return out
}

// Regions lists every BSP leaf region in document order.
func (s *Scene) Regions() []Region {
	frags := wld.FragmentsOf[*wld.BspRegion](s.doc)
	out := make([]Region, len(frags))
	for i, f := range frags {
		out[i] = Region{doc: s.doc, frag: f, index: i}
	}
	return out
}
