package scene

import "github.com/logicossoftware/go-wld"

// Model is one actor definition: the template placed objects and mobs
// instantiate.
type Model struct {
	doc  *wld.Document
	frag *wld.Model
}

// Fragment returns the wire-level actor definition.
func (m Model) Fragment() *wld.Model { return m.frag }

// Name resolves the model's own name.
func (m Model) Name() (string, bool) {
	if m.frag == nil {
		return "", false
	}
	return m.doc.FragmentName(m.frag)
}

// CallbackName resolves the client callback the model is driven by,
// usually SPRITECALLBACK or FLYCAMCALLBACK.
func (m Model) CallbackName() (string, bool) {
	if m.frag == nil || m.doc.Strings == nil {
		return "", false
	}
	return m.doc.Strings.Get(m.frag.CallbackNameRef)
}

// Mesh walks the model's fragment references to the first mesh that
// renders it. Static models point at a mesh through a mesh reference;
// references that do not resolve that way are skipped.
func (m Model) Mesh() (Mesh, bool) {
	if m.frag == nil {
		return Mesh{}, false
	}
	for _, raw := range m.frag.FragmentRefs {
		mr, ok := wld.Get(m.doc, wld.RefByIndex[*wld.MeshReference](raw))
		if !ok {
			continue
		}
		target, ok := wld.Get(m.doc, mr.Mesh)
		if !ok {
			continue
		}
		if mf, ok := target.(*wld.Mesh); ok {
			return Mesh{doc: m.doc, frag: mf}, true
		}
	}
	return Mesh{}, false
}

// Skeleton walks the model's fragment references to its bone hierarchy.
// Animated models point at a skeleton track set through a reference
// fragment; static models report false.
func (m Model) Skeleton() (*wld.SkeletonTrackSet, bool) {
	if m.frag == nil {
		return nil, false
	}
	for _, raw := range m.frag.FragmentRefs {
		sr, ok := wld.Get(m.doc, wld.RefByIndex[*wld.SkeletonTrackSetReference](raw))
		if !ok {
			continue
		}
		if sk, ok := wld.Get(m.doc, sr.Skeleton); ok {
			return sk, true
		}
	}
	return nil, false
}

// Object is one placed instance of a model in the zone.
type Object struct {
	doc  *wld.Document
	frag *wld.ObjectLocation
}

// Fragment returns the wire-level placement.
func (o Object) Fragment() *wld.ObjectLocation { return o.frag }

// ModelName resolves the name of the actor definition this instance
// places. Placement files reference definitions by name.
func (o Object) ModelName() (string, bool) {
	if o.frag == nil || o.doc.Strings == nil || o.frag.ActorDefRef >= 0 {
		return "", false
	}
	return o.doc.Strings.Get(o.frag.ActorDefRef)
}

// Location returns the instance's raw placement record.
func (o Object) Location() (wld.Location, bool) {
	if o.frag == nil || o.frag.Location == nil {
		return wld.Location{}, false
	}
	return *o.frag.Location, true
}

// Position returns the instance's world position, zero when the
// placement has no location record.
func (o Object) Position() [3]float32 {
	loc, ok := o.Location()
	if !ok {
		return [3]float32{}
	}
	return [3]float32{loc.X, loc.Y, loc.Z}
}

// RotationDegrees converts the stored rotation to degrees about X, Y,
// and Z. The client stores rotations in 512ths of a full turn.
func (o Object) RotationDegrees() [3]float32 {
	loc, ok := o.Location()
	if !ok {
		return [3]float32{}
	}
	const unit = 360.0 / 512.0
	return [3]float32{loc.RotateX * unit, loc.RotateY * unit, loc.RotateZ * unit}
}

// ScaleFactor returns the instance's uniform scale when present.
func (o Object) ScaleFactor() (float32, bool) {
	if o.frag == nil || o.frag.ScaleFactor == nil {
		return 0, false
	}
	return *o.frag.ScaleFactor, true
}

// BoundingRadius returns the instance's bounding radius when present.
func (o Object) BoundingRadius() (float32, bool) {
	if o.frag == nil || o.frag.BoundingRadius == nil {
		return 0, false
	}
	return *o.frag.BoundingRadius, true
}
