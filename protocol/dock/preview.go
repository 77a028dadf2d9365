package dock

import "github.com/nongio/otto/internal/scene"

// PreviewRegistry resolves a PreviewSurface to the scene Layer that
// currently renders its live content, so a dock item's thumbnail mirrors
// the running client frame-by-frame rather than a one-shot snapshot
// (grounded on original_source/components/otto-kit/src/surfaces/
// subsurface.rs and dockitem.rs, where the dock tile holds a live
// wl_surface reference and redraws it on every compositor frame rather than
// capturing a still image at set_preview time).
type PreviewRegistry struct {
	layers map[PreviewSurface]scene.Handle
}

// NewPreviewRegistry constructs an empty registry.
func NewPreviewRegistry() *PreviewRegistry {
	return &PreviewRegistry{layers: make(map[PreviewSurface]scene.Handle)}
}

// Bind associates surface with the scene Layer that should be mirrored
// whenever a DockItem's Preview points at it. Called by the compositor's
// surface-commit path, not by the dock protocol itself.
func (p *PreviewRegistry) Bind(surface PreviewSurface, layer scene.Handle) {
	p.layers[surface] = layer
}

// Unbind drops the association, e.g. when the client surface is destroyed.
func (p *PreviewRegistry) Unbind(surface PreviewSurface) {
	delete(p.layers, surface)
}

// Resolve returns the live Layer backing a DockItem's current preview, if
// any. It reads the current binding on every call and caches nothing, so a
// caller that resolves once per frame always sees the latest Bind/Unbind.
func (p *PreviewRegistry) Resolve(item *DockItem) (scene.Handle, bool) {
	if item.Preview == nil {
		return scene.Handle{}, false
	}
	h, ok := p.layers[*item.Preview]
	return h, ok
}
