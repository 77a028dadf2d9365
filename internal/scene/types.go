// Package scene implements the retained scene graph (C2: layer/property
// store, C3: engine, arena, layout, damage, hit-testing) described by
// spec.md §3/§4.2/§4.3. Layers are stored by value in a slotted arena and
// addressed by Handle rather than pointer, per spec.md design note 1 — the
// one place this module departs from the teacher's (phanxgames-willow)
// pointer-tree Node, since the spec explicitly calls for handle addressing.
package scene

import "math"

// Vec2 is a 2D vector used for position, size, anchor, and scale (spec.md §3).
type Vec2 struct{ X, Y float64 }

// Color is an RGBA color with components in [0,1], unpremultiplied — mirrors
// phanxgames-willow's willow.go Color type.
type Color struct{ R, G, B, A float64 }

// CornerRadius holds a per-corner border radius (spec.md §3: "per-corner radius").
type CornerRadius struct{ TL, TR, BR, BL float64 }

// Shadow is an outer drop-shadow specification (spec.md §3).
type Shadow struct {
	Color           Color
	OffsetX, OffsetY float64
	Blur, Spread    float64
}

// Matrix is a 2D affine transform [a b c d tx ty], the same layout
// phanxgames-willow's transform.go uses:
//
//	| A  C  TX |
//	| B  D  TY |
//	| 0  0   1 |
type Matrix struct{ A, B, C, D, TX, TY float64 }

// IdentityMatrix is the identity affine transform.
var IdentityMatrix = Matrix{1, 0, 0, 1, 0, 0}

// Multiply computes p*c, following phanxgames-willow's multiplyAffine
// (parent-then-child composition order).
func Multiply(p, c Matrix) Matrix {
	return Matrix{
		A:  p.A*c.A + p.C*c.B,
		B:  p.B*c.A + p.D*c.B,
		C:  p.A*c.C + p.C*c.D,
		D:  p.B*c.C + p.D*c.D,
		TX: p.A*c.TX + p.C*c.TY + p.TX,
		TY: p.B*c.TX + p.D*c.TY + p.TY,
	}
}

// Decompose extracts translation, rotation (radians), and scale from an
// affine matrix, used by transform-channel transitions to slerp the
// rotational part independently of translation/scale (spec.md §4.1:
// "transforms by matrix slerp of the rotational part and linear
// interpolation of translation and scale").
func (m Matrix) Decompose() (translate Vec2, rotation float64, scale Vec2) {
	translate = Vec2{m.TX, m.TY}
	scaleX := math.Hypot(m.A, m.B)
	scaleY := math.Hypot(m.C, m.D)
	rotation = math.Atan2(m.B, m.A)
	return translate, rotation, Vec2{scaleX, scaleY}
}

// ComposeMatrix rebuilds an affine matrix from translation/rotation/scale.
func ComposeMatrix(translate Vec2, rotation float64, scale Vec2) Matrix {
	sin, cos := math.Sincos(rotation)
	return Matrix{
		A: cos * scale.X, B: sin * scale.X,
		C: -sin * scale.Y, D: cos * scale.Y,
		TX: translate.X, TY: translate.Y,
	}
}

// Rect is an axis-aligned rectangle, origin top-left, Y increasing downward —
// mirrors phanxgames-willow's willow.go Rect.
type Rect struct{ X, Y, Width, Height float64 }

// Contains reports whether (x,y) lies within r (edges inclusive).
func (r Rect) Contains(x, y float64) bool {
	return x >= r.X && x <= r.X+r.Width && y >= r.Y && y <= r.Y+r.Height
}

// Union returns the smallest rectangle containing both r and other. A zero
// rect on either side is treated as "empty" and skipped so damage
// accumulation doesn't grow unbounded from an uninitialized Rect{}.
func (r Rect) Union(other Rect) Rect {
	if r.Width == 0 && r.Height == 0 {
		return other
	}
	if other.Width == 0 && other.Height == 0 {
		return r
	}
	minX := math.Min(r.X, other.X)
	minY := math.Min(r.Y, other.Y)
	maxX := math.Max(r.X+r.Width, other.X+other.Width)
	maxY := math.Max(r.Y+r.Height, other.Y+other.Height)
	return Rect{minX, minY, maxX - minX, maxY - minY}
}

// Intersects reports whether r and other overlap, edges inclusive — mirrors
// phanxgames-willow's willow.go Rect.Intersects.
func (r Rect) Intersects(other Rect) bool {
	return r.X <= other.X+other.Width && r.X+r.Width >= other.X &&
		r.Y <= other.Y+other.Height && r.Y+r.Height >= other.Y
}

// BlendMode selects a compositing operation, a discrete (non-interpolated)
// property (spec.md §3/§4.1).
type BlendMode uint8

const (
	BlendNormal BlendMode = iota
	BlendMultiply
	BlendScreen
	BlendAdd
)

// SizeMode distinguishes an absolute pixel length from a percentage of the
// parent's content box, per spec.md §3 ("size (2D, may be length or percent)").
type SizeMode uint8

const (
	SizeLength SizeMode = iota
	SizePercent
)
