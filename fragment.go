package wld

// Fragment is one record of a scene document. The concrete types cover
// every tag the 1999-era client emits; the set is closed, so resolving a
// reference or switching on a fragment's type never meets a value from
// outside this package.
type Fragment interface {
	// TypeCode reports the wire type tag.
	TypeCode() uint32

	// Encode renders the fragment body, without the size and type words
	// of the record header.
	Encode() ([]byte, error)

	// nameRef reports the fragment's own name reference word: zero or a
	// negated string pool offset.
	nameRef() int32
}

// codecs maps each known type code to its body decoder. Parse rejects
// any code outside this table.
var codecs = map[uint32]func(*reader) (Fragment, error){
	0x03: decodeTextureImages,
	0x04: decodeTexture,
	0x05: decodeTextureReference,
	0x06: decodeTwoDimensionalObject,
	0x07: decodeTwoDimensionalObjectReference,
	0x08: decodeCamera,
	0x09: decodeCameraReference,
	0x0C: decodeParticleSpriteDef,
	0x0D: decodeParticleSprite,
	0x10: decodeSkeletonTrackSet,
	0x11: decodeSkeletonTrackSetReference,
	0x12: decodeMobSkeletonPieceTrack,
	0x13: decodeMobSkeletonPieceTrackReference,
	0x14: decodeModel,
	0x15: decodeObjectLocation,
	0x16: decodeZoneUnknown,
	0x17: decodePolygonAnimation,
	0x18: decodePolygonAnimationReference,
	0x19: decodeSphereListDef,
	0x1A: decodeSphereList,
	0x1B: decodeLightSource,
	0x1C: decodeLightSourceReference,
	0x21: decodeBspTree,
	0x22: decodeBspRegion,
	0x26: decodeBlitSpriteDefinition,
	0x27: decodeBlitSpriteReference,
	0x28: decodeLightInfo,
	0x29: decodeRegionFlag,
	0x2A: decodeAmbientLight,
	0x2C: decodeAlternateMesh,
	0x2D: decodeMeshReference,
	0x2E: decodeUnknown0x2E,
	0x2F: decodeMeshAnimatedVerticesReference,
	0x30: decodeMaterial,
	0x31: decodeMaterialList,
	0x32: decodeVertexColor,
	0x33: decodeVertexColorReference,
	0x34: decodeUnknown0x34,
	0x35: decodeFirst,
	0x36: decodeMesh,
	0x37: decodeMeshAnimatedVertices,
}

var typeNames = map[uint32]string{
	0x03: "TextureImages",
	0x04: "Texture",
	0x05: "TextureReference",
	0x06: "TwoDimensionalObject",
	0x07: "TwoDimensionalObjectReference",
	0x08: "Camera",
	0x09: "CameraReference",
	0x0C: "ParticleSpriteDef",
	0x0D: "ParticleSprite",
	0x10: "SkeletonTrackSet",
	0x11: "SkeletonTrackSetReference",
	0x12: "MobSkeletonPieceTrack",
	0x13: "MobSkeletonPieceTrackReference",
	0x14: "Model",
	0x15: "ObjectLocation",
	0x16: "ZoneUnknown",
	0x17: "PolygonAnimation",
	0x18: "PolygonAnimationReference",
	0x19: "SphereListDef",
	0x1A: "SphereList",
	0x1B: "LightSource",
	0x1C: "LightSourceReference",
	0x21: "BspTree",
	0x22: "BspRegion",
	0x26: "BlitSpriteDefinition",
	0x27: "BlitSpriteReference",
	0x28: "LightInfo",
	0x29: "RegionFlag",
	0x2A: "AmbientLight",
	0x2C: "AlternateMesh",
	0x2D: "MeshReference",
	0x2E: "Unknown0x2E",
	0x2F: "MeshAnimatedVerticesReference",
	0x30: "Material",
	0x31: "MaterialList",
	0x32: "VertexColor",
	0x33: "VertexColorReference",
	0x34: "Unknown0x34",
	0x35: "First",
	0x36: "Mesh",
	0x37: "MeshAnimatedVertices",
}

// TypeName returns a human-readable name for a fragment type code, or
// "" for codes outside the known set.
func TypeName(code uint32) string { return typeNames[code] }
