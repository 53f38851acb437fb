package scene

import (
	"strings"

	"github.com/logicossoftware/go-wld"
)

// Material is one material fragment with its texture chain resolvable.
// The zero value answers every accessor as absent.
type Material struct {
	doc  *wld.Document
	frag *wld.Material
}

// Fragment returns the wire-level material, or nil for a zero slot.
func (m Material) Fragment() *wld.Material { return m.frag }

// Name resolves the material's own name.
func (m Material) Name() (string, bool) {
	if m.frag == nil {
		return "", false
	}
	return m.doc.FragmentName(m.frag)
}

// Visible reports whether the material renders at all. Invisible
// materials mark collision-only geometry.
func (m Material) Visible() bool {
	return m.frag != nil && m.frag.Visible()
}

// Masked reports whether the material cuts out texels using its mask
// color.
func (m Material) Masked() bool {
	return m.frag != nil && m.frag.Masked()
}

// BaseColorTexture chases the material's texture reference to the
// texture it draws with.
func (m Material) BaseColorTexture() (Texture, bool) {
	if m.frag == nil {
		return Texture{}, false
	}
	ref, ok := wld.Get(m.doc, m.frag.Texture)
	if !ok {
		return Texture{}, false
	}
	tex, ok := wld.Get(m.doc, ref.Texture)
	if !ok {
		return Texture{}, false
	}
	return Texture{doc: m.doc, frag: tex}, true
}

// Texture is one texture fragment with its image file names reachable.
type Texture struct {
	doc  *wld.Document
	frag *wld.Texture
}

// Fragment returns the wire-level texture.
func (t Texture) Fragment() *wld.Texture { return t.frag }

// Name resolves the texture's own name.
func (t Texture) Name() (string, bool) {
	if t.frag == nil {
		return "", false
	}
	return t.doc.FragmentName(t.frag)
}

// Animated reports whether the texture cycles through its frames.
func (t Texture) Animated() bool {
	return t.frag != nil && t.frag.Animated()
}

// Sleep returns the frame delay in milliseconds for animated textures.
func (t Texture) Sleep() (uint32, bool) {
	if t.frag == nil || t.frag.Sleep == nil {
		return 0, false
	}
	return *t.frag.Sleep, true
}

// Sources returns the image file names behind every frame, lowercased.
// The fragments store names in upper case while archives store their
// members in lower case; lowercasing here makes the result a direct
// archive lookup key. Frames that do not resolve are skipped.
func (t Texture) Sources() []string {
	if t.frag == nil {
		return nil
	}
	var out []string
	for _, ref := range t.frag.Frames {
		images, ok := wld.Get(t.doc, ref)
		if !ok {
			continue
		}
		for _, e := range images.Entries {
			out = append(out, strings.ToLower(e.Name))
		}
	}
	return out
}

// Source returns the first image file name. Textures support several in
// theory; shipped files carry one per frame.
func (t Texture) Source() (string, bool) {
	sources := t.Sources()
	if len(sources) == 0 {
		return "", false
	}
	return sources[0], true
}
