// Package scene projects parsed WLD documents into renderer-facing
// geometry. The wire fragments keep vertex data packed the way the
// client stores it: fixed-point positions around a center, signed-byte
// normals, texture coordinates whose unit depends on the document
// version. This package applies that arithmetic and walks the
// cross-reference graph so a consumer sees plain float slices, resolved
// material lists, lowercased texture file names ready to look up in the
// zone's archive, and region visibility sets expanded from their
// run-length encoding.
//
//	doc, _ := wld.Parse(data)
//	s := scene.New(doc)
//	for _, m := range s.Meshes() {
//		name, _ := m.Name()
//		draw(name, m.Positions(), m.Triangles())
//	}
//
// Every graph hop tolerates dangling references: a missing target drops
// the element or reports a false ok instead of failing, because shipped
// zones do contain references to fragments that were never written.
package scene
