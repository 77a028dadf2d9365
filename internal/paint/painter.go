package paint

import (
	"math"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/nongio/otto/internal/scene"
)

// Canvas is the concrete surface handed to a Layer's DrawFunc via
// DrawContext.Surface. Callers type-assert ctx.Surface.(*paint.Canvas) to
// reach the underlying image; kept as a thin wrapper (rather than exposing
// *ebiten.Image directly) so internal/scene never has to import ebiten.
type Canvas struct {
	Image *ebiten.Image
	// OriginX/OriginY is this layer's top-left position on Image, in pixels —
	// draw callbacks paint in layer-local coordinates offset by this origin.
	OriginX, OriginY float64
}

// cacheEntry pairs a cached raster with the scene.Layer.ContentGen value it
// was rendered at, so a stale entry is detected and rebuilt automatically
// instead of relying on an explicit invalidation call.
type cacheEntry struct {
	img *ebiten.Image
	gen uint64
}

// Painter walks a scene.Engine and composites every visible layer's
// background/border/shadow, content-clip mask, and draw callback onto a
// target image, optionally caching stable-content subtrees as offscreen
// rasters (spec.md §4.4). Grounded on phanxgames-willow's render.go
// traverse/renderSpecialNode tree walk and rendertarget.go's
// SetCacheAsTexture/InvalidateCache API, adapted from the teacher's
// *Node-keyed cache fields (not available on our value-typed Layer) to a
// Handle-keyed cache map owned by the Painter itself.
type Painter struct {
	pool  rtPool
	cache map[scene.Handle]cacheEntry
}

// NewPainter constructs an empty Painter.
func NewPainter() *Painter {
	return &Painter{cache: make(map[scene.Handle]cacheEntry)}
}

// Invalidate drops any cached raster for h, forcing it to be rebuilt on the
// next Paint call — the Handle-keyed equivalent of node.go's
// InvalidateCache. Paint already invalidates automatically whenever a
// cached layer's content generation changes (spec.md §4.4); this remains
// for callers that need to force a rebuild without an underlying property
// mutation, e.g. after swapping a Draw callback.
func (p *Painter) Invalidate(h scene.Handle) {
	if entry, ok := p.cache[h]; ok {
		entry.img.Deallocate()
		delete(p.cache, h)
	}
}

// Paint renders the engine's visible tree onto target, starting from the
// engine's root.
func (p *Painter) Paint(e *scene.Engine, target *ebiten.Image) {
	p.paintLayer(e, e.Root(), target, 0, 0)
}

func (p *Painter) paintLayer(e *scene.Engine, h scene.Handle, target *ebiten.Image, offsetX, offsetY float64) {
	l, ok := e.Get(h)
	if !ok || !l.IsVisible() {
		return
	}

	screenX := l.WorldTransform.TX + offsetX
	screenY := l.WorldTransform.TY + offsetY

	if l.Cacheable() {
		gen := l.ContentGen()
		if entry, ok := p.cache[h]; ok && entry.gen == gen {
			p.blit(target, entry.img, screenX, screenY, l.WorldAlpha)
			return
		} else if ok {
			entry.img.Deallocate()
		}
		w := int(math.Ceil(l.Size.Current.X))
		hgt := int(math.Ceil(l.Size.Current.Y))
		if w > 0 && hgt > 0 {
			rt := ebiten.NewImage(w, hgt)
			p.paintSubtreeAt(e, h, rt, 0, 0)
			p.cache[h] = cacheEntry{img: rt, gen: gen}
			p.blit(target, rt, screenX, screenY, l.WorldAlpha)
			return
		}
		delete(p.cache, h)
	}

	p.paintSubtreeAt(e, h, target, screenX, screenY)
}

// paintSubtreeAt paints l (background, content, children) directly onto
// dst at the given pixel origin, without consulting the cache — used both
// for the normal (uncached) path and to populate a cache-miss raster.
func (p *Painter) paintSubtreeAt(e *scene.Engine, h scene.Handle, dst *ebiten.Image, originX, originY float64) {
	l, ok := e.Get(h)
	if !ok {
		return
	}

	if l.ContentClip.Current {
		p.paintClipped(e, h, dst, originX, originY)
		return
	}

	p.drawBackground(dst, l, originX, originY)
	p.drawContent(l, dst, originX, originY)

	// Children carry world transforms, so shift them by this layer's own
	// offset on dst rather than adding its full screen position again.
	for _, c := range l.Children {
		p.paintLayer(e, c, dst, originX-l.WorldTransform.TX, originY-l.WorldTransform.TY)
	}
}

// paintClipped renders l's background, content, and children into an
// offscreen RT, then masks the result against a rounded-rect matching l's
// own geometry before compositing — mask.go's dest-in contract, but with
// the mask generated procedurally instead of from a second rendered
// subtree, since content-clip always clips to the layer's own rounded box.
func (p *Painter) paintClipped(e *scene.Engine, h scene.Handle, dst *ebiten.Image, originX, originY float64) {
	l, _ := e.Get(h)
	w := int(math.Ceil(l.Size.Current.X))
	hgt := int(math.Ceil(l.Size.Current.Y))
	if w <= 0 || hgt <= 0 {
		return
	}

	content := p.pool.Acquire(w, hgt)
	defer p.pool.Release(content)
	p.drawBackground(content, l, 0, 0)
	p.drawContent(l, content, 0, 0)
	for _, c := range l.Children {
		p.paintLayer(e, c, content, -l.WorldTransform.TX, -l.WorldTransform.TY)
	}

	mask := p.pool.Acquire(w, hgt)
	defer p.pool.Release(mask)
	p.drawRoundedRectMask(mask, l)

	masked := p.pool.Acquire(w, hgt)
	defer p.pool.Release(masked)
	shader := ensureMaskShader()
	var op ebiten.DrawRectShaderOptions
	op.Images[0] = content
	op.Images[1] = mask
	masked.DrawRectShader(w, hgt, shader, &op)

	p.blit(dst, masked, originX, originY, 1.0)
}

func (p *Painter) blit(dst, src *ebiten.Image, x, y, alpha float64) {
	var op ebiten.DrawImageOptions
	op.GeoM.Translate(x, y)
	op.ColorScale.ScaleAlpha(float32(alpha))
	dst.DrawImage(src, &op)
}

// drawBackground fills l's rounded-rect background/border/shadow in one
// shader pass (shaders.go roundedRectShaderSrc).
func (p *Painter) drawBackground(dst *ebiten.Image, l *scene.Layer, originX, originY float64) {
	w := l.Size.Current.X
	h := l.Size.Current.Y
	if w <= 0 || h <= 0 {
		return
	}
	bg := l.BackgroundColor.Current
	border := l.BorderColor.Current
	shadow := l.Shadow.Current
	r := l.CornerRadius.Current

	if bg.A == 0 && border.A == 0 && shadow.Color.A == 0 {
		return
	}

	shader := ensureRoundedRectShader()
	var op ebiten.DrawRectShaderOptions
	op.GeoM.Translate(originX, originY)
	op.Uniforms = map[string]any{
		"Size":         [2]float32{float32(w), float32(h)},
		"Radius":       [4]float32{float32(r.TL), float32(r.TR), float32(r.BR), float32(r.BL)},
		"FillColor":    [4]float32{float32(bg.R), float32(bg.G), float32(bg.B), float32(bg.A)},
		"BorderColor":  [4]float32{float32(border.R), float32(border.G), float32(border.B), float32(border.A)},
		"BorderWidth":  float32(l.BorderWidth.Current),
		"ShadowColor":  [4]float32{float32(shadow.Color.R), float32(shadow.Color.G), float32(shadow.Color.B), float32(shadow.Color.A)},
		"ShadowOffset": [2]float32{float32(shadow.OffsetX), float32(shadow.OffsetY)},
		"ShadowBlur":   float32(shadow.Blur),
		"ShadowSpread": float32(shadow.Spread),
	}
	dst.DrawRectShader(int(math.Ceil(w)), int(math.Ceil(h)), shader, &op)
}

// drawRoundedRectMask renders a solid-white rounded rect matching l's
// geometry, for use as a content-clip mask.
func (p *Painter) drawRoundedRectMask(dst *ebiten.Image, l *scene.Layer) {
	w := l.Size.Current.X
	h := l.Size.Current.Y
	r := l.CornerRadius.Current
	shader := ensureRoundedRectShader()
	var op ebiten.DrawRectShaderOptions
	op.Uniforms = map[string]any{
		"Size":         [2]float32{float32(w), float32(h)},
		"Radius":       [4]float32{float32(r.TL), float32(r.TR), float32(r.BR), float32(r.BL)},
		"FillColor":    [4]float32{1, 1, 1, 1},
		"BorderColor":  [4]float32{0, 0, 0, 0},
		"BorderWidth":  float32(0),
		"ShadowColor":  [4]float32{0, 0, 0, 0},
		"ShadowOffset": [2]float32{0, 0},
		"ShadowBlur":   float32(0),
		"ShadowSpread": float32(0),
	}
	dst.DrawRectShader(int(math.Ceil(w)), int(math.Ceil(h)), shader, &op)
}

// drawContent invokes l's draw callback, if any, offering it a Canvas
// positioned at the layer's pixel origin on dst.
func (p *Painter) drawContent(l *scene.Layer, dst *ebiten.Image, originX, originY float64) {
	if l.Draw == nil {
		return
	}
	l.Draw(scene.DrawContext{
		Alpha:   l.WorldAlpha,
		Surface: &Canvas{Image: dst, OriginX: originX, OriginY: originY},
	})
}
