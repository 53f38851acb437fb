// Package archive reads and writes PFS archives, the .s3d container
// format the EverQuest client loads zone and character assets from. A
// single archive bundles the zone's WLD scene files with the textures
// and sounds they reference.
//
// # File Format Overview
//
// An archive consists of:
//   - A 12-byte header with the index offset, magic bytes, and a version word
//   - Data blocks, each a deflated slice of at most 8192 uncompressed bytes
//   - An index of entries holding a filename hash, a data offset, and a size
//   - An optional nine-byte footer with a "STEVE" tag and a date word
//
// Filenames live in a directory, itself stored as an ordinary blocked
// member whose index entry carries the hash 0xFFFFFFFF and the highest
// data offset. Index entries sorted by data offset pair positionally
// with the directory's name list.
//
// # Basic Usage
//
// To pull a scene file out of a zone archive:
//
//	a, err := archive.Open("gfaydark.s3d")
//	if err != nil {
//		log.Fatal(err)
//	}
//	data, err := a.File("gfaydark.wld")
//
// To build one:
//
//	a := archive.New()
//	a.Add("gfaydark.wld", data)
//	err := a.Encode(w)
//
// # Security Considerations
//
// Index entries and block headers carry sizes that drive allocation and
// inflation, so the decoder checks every declared size against [Limits]
// and caps each block's inflation at its declared length before
// trusting it.
package archive
