// Package paint is the painter bridge (C4): it walks an *scene.Engine,
// composites each visible Layer's background/border/shadow via Ebitengine
// Kage shaders, invokes each layer's draw callback for its own content, and
// optionally rasterizes stable-content layers to a cached offscreen image.
// Grounded on phanxgames-willow's render.go (tree walk, offscreen-RT special
// node path), filter.go (Kage shader compilation pattern), and mask.go
// (content-clip compositing) — see DESIGN.md.
package paint

import "github.com/hajimehoshi/ebiten/v2"

// roundedRectShaderSrc fills a rounded rectangle with a solid color, an
// optional border, and an optional drop shadow, all in one pass. It follows
// filter.go's house style: //kage:unit pixels, un-premultiply before
// blending, re-premultiply on output.
const roundedRectShaderSrc = `//kage:unit pixels
package main

var Size vec2
var Radius vec4 // TL, TR, BR, BL
var FillColor vec4
var BorderColor vec4
var BorderWidth float
var ShadowColor vec4
var ShadowOffset vec2
var ShadowBlur float
var ShadowSpread float

func cornerRadiusFor(p vec2, size vec2, r vec4) float {
	if p.x < size.x/2 {
		if p.y < size.y/2 {
			return r.x // TL
		}
		return r.w // BL
	}
	if p.y < size.y/2 {
		return r.y // TR
	}
	return r.z // BR
}

func roundedBoxSDF(p vec2, size vec2, radius float) float {
	q := abs(p) - size + radius
	return min(max(q.x, q.y), 0) + length(max(q, vec2(0))) - radius

}

func Fragment(dst vec4, src vec2, color vec4) vec4 {
	center := Size / 2
	p := src - center
	radius := cornerRadiusFor(src, Size, Radius)
	d := roundedBoxSDF(p, center, radius)

	shadowP := p - ShadowOffset
	shadowD := roundedBoxSDF(shadowP, center+vec2(ShadowSpread), radius)
	shadowAlpha := 1 - smoothstep(-ShadowBlur, ShadowBlur, shadowD)
	shadowAlpha *= ShadowColor.a

	fillAlpha := 1 - smoothstep(-1, 1, d)
	borderAlpha := float(0)
	if BorderWidth > 0 {
		innerD := d + BorderWidth
		borderAlpha = (1 - smoothstep(-1, 1, d)) - (1 - smoothstep(-1, 1, innerD))
	}

	out := ShadowColor.rgb * shadowAlpha * (1 - fillAlpha)
	outA := shadowAlpha * (1 - fillAlpha)

	out = out*(1-fillAlpha) + FillColor.rgb*fillAlpha
	outA = outA*(1-fillAlpha) + FillColor.a*fillAlpha

	out = out*(1-borderAlpha) + BorderColor.rgb*borderAlpha
	outA = outA*(1-borderAlpha) + BorderColor.a*borderAlpha

	return vec4(out*outA, outA)
}
`

// maskShaderSrc composites src against a separately-rendered mask image,
// keeping only the parts of src where the mask has alpha — the same
// dest-in compositing mask.go documents, expressed as a Kage pass instead
// of an ebiten.Blend so the content-clip rounded-rect mask can be generated
// procedurally rather than requiring a second rendered subtree.
const maskShaderSrc = `//kage:unit pixels
package main

func Fragment(dst vec4, src vec2, color vec4) vec4 {
	c := imageSrc0At(src)
	m := imageSrc1At(src)
	return c * m.a
}
`

var (
	roundedRectShader *ebiten.Shader
	maskShader        *ebiten.Shader
)

// ensureRoundedRectShader lazily compiles the rounded-rect shader. No
// sync.Once, matching filter.go's "willow is single-threaded" rationale —
// the painter always runs on the compositor's main/render goroutine
// (spec.md §5).
func ensureRoundedRectShader() *ebiten.Shader {
	if roundedRectShader == nil {
		s, err := ebiten.NewShader([]byte(roundedRectShaderSrc))
		if err != nil {
			panic("paint: failed to compile rounded-rect shader: " + err.Error())
		}
		roundedRectShader = s
	}
	return roundedRectShader
}

func ensureMaskShader() *ebiten.Shader {
	if maskShader == nil {
		s, err := ebiten.NewShader([]byte(maskShaderSrc))
		if err != nil {
			panic("paint: failed to compile mask shader: " + err.Error())
		}
		maskShader = s
	}
	return maskShader
}
