// Package wld reads and writes WLD scene files, the zone and model
// format shipped with the 1999-era EverQuest client.
//
// WLD is a little-endian binary format. Zones, placeable objects,
// character models, lights, and BSP trees all live in the same file as
// a flat list of type-tagged records called fragments.
//
// # File Format Overview
//
// A WLD file consists of:
//   - A 28-byte fixed header with magic bytes, a version word, and table sizes
//   - A string pool, XOR-scrambled, holding NUL-terminated Windows-1252 names
//   - A sequence of fragments, each a size word, a type code, and a body
//
// Fragments refer to each other with reference words: a positive value
// is a 1-based index into the fragment list, a negative value names a
// string pool offset, and zero means no target. [Get] resolves either
// kind against a parsed [Document].
//
// # Basic Usage
//
// To read a WLD file and walk its meshes:
//
//	data, _ := os.ReadFile("gfaydark.wld")
//	doc, err := wld.Parse(data)
//	if err != nil {
//		log.Fatal(err)
//	}
//	for _, m := range wld.FragmentsOf[*wld.Mesh](doc) {
//		name, _ := doc.FragmentName(m)
//		fmt.Println(name, len(m.Polygons), "triangles")
//	}
//
// To write one back:
//
//	out, err := doc.Encode()
//
// Encoding a just-parsed document reproduces the input byte for byte,
// so the package can rewrite client files without disturbing records it
// does not understand the meaning of.
//
// # Security Considerations
//
// Fragment bodies carry element counts that size allocations, so the
// decoder checks every count against the bytes actually present before
// allocating, and [Limits] caps the table sizes declared in the header.
// All limits are enforced during parsing to prevent resource
// exhaustion on hostile input.
//
// # Related Packages
//
// Package scene derives world-space triangle geometry from parsed
// documents. Package archive reads and writes the PFS archives
// (.s3d files) that WLD files ship inside.
package wld
