package wld

import "fmt"

// Validate walks the fragment table and reports the first broken
// internal link. A positional reference word must land inside the
// fragment table and a name word must land on a pool string. BSP node
// children must stay inside the node array and skeleton bone children
// inside the bone table. Words the format keeps raw, such as a model's
// fragment list, are not checked.
//
// Validation is advisory and Encode never calls it: a parsed document
// re-encodes byte for byte even when references dangle, so the check
// serves hand-built documents and triage of suspect files.
func (d *Document) Validate() error {
	if d == nil {
		return fmt.Errorf("%w: document is nil", ErrValidation)
	}
	for i, f := range d.Fragments {
		if f == nil {
			return fmt.Errorf("%w: fragment %d is nil", ErrValidation, i+1)
		}
		if err := d.validateFragment(i+1, f); err != nil {
			return err
		}
	}
	return nil
}

func (d *Document) validateFragment(pos int, f Fragment) error {
	check := func(label string, raw int32) error {
		if err := d.checkRefWord(raw); err != nil {
			return fmt.Errorf("%w: fragment %d (0x%02X) %s: %v",
				ErrValidation, pos, f.TypeCode(), label, err)
		}
		return nil
	}
	if err := check("name", f.nameRef()); err != nil {
		return err
	}

	switch f := f.(type) {
	case *Texture:
		for j, ref := range f.Frames {
			if err := check(fmt.Sprintf("frame %d", j), ref.Raw()); err != nil {
				return err
			}
		}

	case *TextureReference:
		return check("texture", f.Texture.Raw())

	case *TwoDimensionalObjectReference:
		return check("sprite", f.Sprite.Raw())

	case *CameraReference:
		return check("camera", f.Camera.Raw())

	case *SkeletonTrackSet:
		for j, e := range f.Entries {
			for _, c := range e.Children {
				if int(c) >= len(f.Entries) {
					return fmt.Errorf("%w: fragment %d (0x%02X) bone %d: child %d outside bone table of %d",
						ErrValidation, pos, f.TypeCode(), j, c, len(f.Entries))
				}
			}
		}

	case *SkeletonTrackSetReference:
		return check("skeleton", f.Skeleton.Raw())

	case *MobSkeletonPieceTrackReference:
		return check("track", f.Track.Raw())

	case *Model:
		return check("callback", f.CallbackNameRef)

	case *ObjectLocation:
		if err := check("actor", f.ActorDefRef); err != nil {
			return err
		}
		if err := check("sphere", f.SphereRef.Raw()); err != nil {
			return err
		}
		if f.SoundNameRef != nil {
			if err := check("sound", *f.SoundNameRef); err != nil {
				return err
			}
		}
		if f.VertexColor != nil {
			return check("colors", f.VertexColor.Raw())
		}

	case *PolygonAnimationReference:
		return check("animation", f.Animation.Raw())

	case *SphereList:
		return check("list", f.List.Raw())

	case *LightSourceReference:
		return check("light", f.Light.Raw())

	case *LightInfo:
		return check("light", f.Light.Raw())

	case *AmbientLight:
		return check("light", f.Light.Raw())

	case *BspTree:
		for j, n := range f.Nodes {
			if err := check(fmt.Sprintf("node %d region", j+1), n.Region.Raw()); err != nil {
				return err
			}
			if n.Front < 0 || int(n.Front) > len(f.Nodes) {
				return fmt.Errorf("%w: fragment %d (0x%02X) node %d: front %d outside node array of %d",
					ErrValidation, pos, f.TypeCode(), j+1, n.Front, len(f.Nodes))
			}
			if n.Back < 0 || int(n.Back) > len(f.Nodes) {
				return fmt.Errorf("%w: fragment %d (0x%02X) node %d: back %d outside node array of %d",
					ErrValidation, pos, f.TypeCode(), j+1, n.Back, len(f.Nodes))
			}
		}

	case *BspRegion:
		if err := check("fragment1", f.Fragment1.Raw()); err != nil {
			return err
		}
		if err := check("fragment2", f.Fragment2.Raw()); err != nil {
			return err
		}
		if f.Mesh != nil {
			return check("mesh", f.Mesh.Raw())
		}

	case *ParticleSprite:
		return check("sprite", f.Sprite.Raw())

	case *AlternateMesh:
		return check("materials", f.MaterialList.Raw())

	case *MeshReference:
		return check("mesh", f.Mesh.Raw())

	case *MeshAnimatedVerticesReference:
		return check("vertices", f.Vertices.Raw())

	case *Material:
		return check("texture", f.Texture.Raw())

	case *MaterialList:
		for j, ref := range f.Materials {
			if err := check(fmt.Sprintf("material %d", j), ref.Raw()); err != nil {
				return err
			}
		}

	case *VertexColorReference:
		return check("colors", f.Colors.Raw())

	case *Unknown0x34:
		return check("blit", f.BlitRef.Raw())

	case *Mesh:
		if err := check("materials", f.MaterialList.Raw()); err != nil {
			return err
		}
		if err := check("animation", f.Animation.Raw()); err != nil {
			return err
		}
		if err := check("fragment3", f.Fragment3.Raw()); err != nil {
			return err
		}
		return check("fragment4", f.Fragment4.Raw())
	}
	return nil
}

// checkRefWord validates one signed reference word. Positive words must
// land inside the fragment table, negative words must land on a pool
// string, and zero always passes.
func (d *Document) checkRefWord(raw int32) error {
	switch {
	case raw > 0 && int(raw) > len(d.Fragments):
		return fmt.Errorf("positional ref %d outside table of %d", raw, len(d.Fragments))
	case raw < 0:
		if d.Strings == nil {
			return fmt.Errorf("name ref %d with no string pool", raw)
		}
		if _, ok := d.Strings.Get(raw); !ok {
			return fmt.Errorf("name ref %d lands between pool strings", raw)
		}
	}
	return nil
}
