package main

import (
	"fmt"
	"strings"

	"github.com/logicossoftware/go-wld"
)

// describeFragment renders the detail pane text for the fragment at
// 1-based index i: a short header, then the fields that matter for the
// concrete type. Types without a dedicated case show the header only.
func describeFragment(doc *wld.Document, i int) string {
	f := doc.At(i)
	if f == nil {
		return "no fragment selected"
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Fragment #%d\n", i)
	field(&b, "Type", "0x%02X %s", f.TypeCode(), wld.TypeName(f.TypeCode()))
	if name, ok := doc.FragmentName(f); ok {
		field(&b, "Name", "%s", name)
	}
	if body, err := f.Encode(); err == nil {
		field(&b, "Size", "%d bytes", len(body))
	}
	b.WriteByte('\n')

	switch f := f.(type) {
	case *wld.TextureImages:
		field(&b, "Entries", "%d", len(f.Entries))
		for j, e := range f.Entries {
			field(&b, fmt.Sprintf("  [%d]", j), "%s", e.Name)
		}

	case *wld.Texture:
		field(&b, "Flags", "0x%08X", f.Flags)
		field(&b, "Animated", "%v", f.Animated())
		if f.CurrentFrame != nil {
			field(&b, "Frame", "%d", *f.CurrentFrame)
		}
		if f.Sleep != nil {
			field(&b, "Sleep", "%d ms", *f.Sleep)
		}
		field(&b, "Frames", "%d", len(f.Frames))
		for j, ref := range f.Frames {
			field(&b, fmt.Sprintf("  [%d]", j), "%s", refString(doc, ref.Raw()))
		}

	case *wld.TextureReference:
		field(&b, "Texture", "%s", refString(doc, f.Texture.Raw()))
		field(&b, "Flags", "0x%08X", f.Flags)

	case *wld.Material:
		field(&b, "Flags", "0x%08X", f.Flags)
		field(&b, "Render", "0x%08X", f.Transparency)
		field(&b, "Visible", "%v", f.Visible())
		field(&b, "Masked", "%v", f.Masked())
		field(&b, "MaskColor", "%g, %g", f.MaskColor[0], f.MaskColor[1])
		field(&b, "Texture", "%s", refString(doc, f.Texture.Raw()))

	case *wld.MaterialList:
		field(&b, "Flags", "0x%08X", f.Flags)
		field(&b, "Materials", "%d", len(f.Materials))
		for j, ref := range f.Materials {
			field(&b, fmt.Sprintf("  [%d]", j), "%s", refString(doc, ref.Raw()))
		}

	case *wld.Mesh:
		field(&b, "Flags", "0x%08X", f.Flags)
		field(&b, "Materials", "%s", refString(doc, f.MaterialList.Raw()))
		if !f.Animation.IsZero() {
			field(&b, "Animation", "%s", refString(doc, f.Animation.Raw()))
		}
		field(&b, "Center", "%g, %g, %g", f.Center[0], f.Center[1], f.Center[2])
		field(&b, "Scale", "1/%d", int32(1)<<f.Scale)
		field(&b, "Vertices", "%d", len(f.Positions))
		field(&b, "TexCoords", "%d", len(f.TexCoords))
		field(&b, "Normals", "%d", len(f.Normals))
		field(&b, "Colors", "%d", len(f.Colors))
		field(&b, "Triangles", "%d (%d passable)", len(f.Polygons), passableCount(f))
		field(&b, "MatGroups", "%d", len(f.PolygonMaterials))
		if len(f.VertexPieces) > 0 {
			field(&b, "BonePieces", "%d", len(f.VertexPieces))
		}

	case *wld.MeshReference:
		field(&b, "Mesh", "%s", refString(doc, f.Mesh.Raw()))
		field(&b, "Params", "0x%08X", f.Params)

	case *wld.MeshAnimatedVertices:
		field(&b, "Flags", "0x%08X", f.Flags)
		field(&b, "Vertices", "%d", f.VertexCount)
		field(&b, "Frames", "%d", len(f.Frames))
		field(&b, "Scale", "1/%d", int32(1)<<f.Scale)

	case *wld.MeshAnimatedVerticesReference:
		field(&b, "Vertices", "%s", refString(doc, f.Vertices.Raw()))
		field(&b, "Flags", "0x%08X", f.Flags)

	case *wld.Model:
		field(&b, "Flags", "0x%08X", f.Flags)
		field(&b, "Callback", "%s", refString(doc, f.CallbackNameRef))
		if f.Location != nil {
			describeLocation(&b, *f.Location)
		}
		field(&b, "Actions", "%d", len(f.Actions))
		field(&b, "Refs", "%d", len(f.FragmentRefs))
		for j, ref := range f.FragmentRefs {
			field(&b, fmt.Sprintf("  [%d]", j), "%s", refString(doc, int32(ref)))
		}

	case *wld.ObjectLocation:
		field(&b, "Actor", "%s", refString(doc, f.ActorDefRef))
		field(&b, "Flags", "0x%08X", f.Flags)
		if f.Location != nil {
			describeLocation(&b, *f.Location)
		}
		if f.BoundingRadius != nil {
			field(&b, "Bounds", "%g", *f.BoundingRadius)
		}
		if f.ScaleFactor != nil {
			field(&b, "Scale", "%g", *f.ScaleFactor)
		}
		if f.VertexColor != nil {
			field(&b, "Colors", "%s", refString(doc, f.VertexColor.Raw()))
		}

	case *wld.ZoneUnknown:
		field(&b, "Radius", "%g", f.Radius)

	case *wld.SkeletonTrackSet:
		field(&b, "Flags", "0x%08X", f.Flags)
		field(&b, "Bones", "%d", len(f.Entries))
		for j, e := range f.Entries {
			field(&b, fmt.Sprintf("  [%d]", j), "%s track %s children %v",
				refString(doc, int32(e.NameRef)), refString(doc, int32(e.Track)), e.Children)
		}
		if len(f.MeshRefs) > 0 {
			field(&b, "Skins", "%d", len(f.MeshRefs))
			for j, ref := range f.MeshRefs {
				field(&b, fmt.Sprintf("  [%d]", j), "%s", refString(doc, int32(ref)))
			}
		}

	case *wld.SkeletonTrackSetReference:
		field(&b, "Skeleton", "%s", refString(doc, f.Skeleton.Raw()))
		field(&b, "Params", "0x%08X", f.Params1)

	case *wld.MobSkeletonPieceTrack:
		field(&b, "Flags", "0x%08X", f.Flags)
		field(&b, "Rotate", "%d, %d, %d / %d", f.RotateX, f.RotateY, f.RotateZ, f.RotateDenom)
		field(&b, "Shift", "%d, %d, %d / %d", f.ShiftX, f.ShiftY, f.ShiftZ, f.ShiftDenom)

	case *wld.MobSkeletonPieceTrackReference:
		field(&b, "Track", "%s", refString(doc, f.Track.Raw()))
		field(&b, "Flags", "0x%08X", f.Flags)

	case *wld.BspTree:
		field(&b, "Nodes", "%d", len(f.Nodes))
		for j, n := range f.Nodes {
			if j >= 64 {
				field(&b, "", "... %d more", len(f.Nodes)-j)
				break
			}
			field(&b, fmt.Sprintf("  [%d]", j+1), "normal %g,%g,%g dist %g front %d back %d region %s",
				n.Normal[0], n.Normal[1], n.Normal[2], n.SplitDistance,
				n.Front, n.Back, refString(doc, n.Region.Raw()))
		}

	case *wld.BspRegion:
		field(&b, "Flags", "0x%08X", f.Flags)
		field(&b, "Walls", "%d", len(f.Walls))
		field(&b, "Obstacles", "%d", len(f.Obstacles))
		field(&b, "PVS", "%d entries", len(f.PVS))
		if f.Mesh != nil {
			field(&b, "Mesh", "%s", refString(doc, f.Mesh.Raw()))
		}

	case *wld.RegionFlag:
		field(&b, "Flags", "0x%08X", f.Flags)
		field(&b, "Regions", "%v", f.Regions)
		if f.UserData != "" {
			field(&b, "UserData", "%q", f.UserData)
		}

	case *wld.LightSource:
		field(&b, "Flags", "0x%08X", f.Flags)
		field(&b, "Params2", "%d", f.Params2)
		if f.Color != nil {
			field(&b, "Color", "%d, %d, %d", f.Color.R, f.Color.G, f.Color.B)
		}

	case *wld.LightSourceReference:
		field(&b, "Light", "%s", refString(doc, f.Light.Raw()))
		field(&b, "Flags", "0x%08X", f.Flags)

	case *wld.LightInfo:
		field(&b, "Light", "%s", refString(doc, f.Light.Raw()))
		field(&b, "Position", "%g, %g, %g", f.X, f.Y, f.Z)
		field(&b, "Radius", "%g", f.Radius)

	case *wld.AmbientLight:
		field(&b, "Light", "%s", refString(doc, f.Light.Raw()))
		field(&b, "Regions", "%d", len(f.Regions))

	case *wld.VertexColor:
		field(&b, "Colors", "%d", len(f.Colors))

	case *wld.VertexColorReference:
		field(&b, "Colors", "%s", refString(doc, f.Colors.Raw()))
		field(&b, "Flags", "0x%08X", f.Flags)
	}

	return b.String()
}

func field(b *strings.Builder, label, format string, args ...any) {
	fmt.Fprintf(b, "%-12s ", label)
	fmt.Fprintf(b, format, args...)
	b.WriteByte('\n')
}

func describeLocation(b *strings.Builder, l wld.Location) {
	field(b, "Position", "%g, %g, %g", l.X, l.Y, l.Z)
	field(b, "Rotation", "%g, %g, %g", l.RotateX, l.RotateY, l.RotateZ)
}

func passableCount(m *wld.Mesh) int {
	n := 0
	for _, p := range m.Polygons {
		if p.Passable() {
			n++
		}
	}
	return n
}

// refString renders a reference word for display. Positive words point
// at a fragment by index, negative words name a pool string, zero is
// empty.
func refString(doc *wld.Document, raw int32) string {
	switch {
	case raw == 0:
		return "none"
	case raw > 0:
		target := doc.At(int(raw))
		if target == nil {
			return fmt.Sprintf("#%d (dangling)", raw)
		}
		if name, ok := doc.FragmentName(target); ok {
			return fmt.Sprintf("#%d %s (%s)", raw, wld.TypeName(target.TypeCode()), name)
		}
		return fmt.Sprintf("#%d %s", raw, wld.TypeName(target.TypeCode()))
	default:
		if name, ok := doc.Strings.Get(raw); ok {
			return fmt.Sprintf("name %q", name)
		}
		return fmt.Sprintf("name ref %d (dangling)", raw)
	}
}
