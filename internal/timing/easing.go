package timing

import (
	"math"

	"github.com/tanema/gween/ease"
)

// CubicBezier is a timing function defined by the four control scalars of a
// unit cubic Bézier curve (x1, y1, x2, y2), the same parameterization CSS
// and otto_timing_function_v1's cubic-bezier constructor use. The curve maps
// unit time to unit progress; x1/x2 are clamped to [0,1] to keep the curve
// monotone in time (spec.md 4.1: "bounded duration, monotone parameterization").
type CubicBezier struct {
	X1, Y1, X2, Y2 float64
}

// EaseLinear, EaseIn, EaseOut, EaseInOut are the conventional CSS presets.
var (
	EaseLinear = CubicBezier{0, 0, 1, 1}
	EaseIn     = CubicBezier{0.42, 0, 1, 1}
	EaseOut    = CubicBezier{0, 0, 0.58, 1}
	EaseInOut  = CubicBezier{0.42, 0, 0.58, 1}
)

// Evaluate implements Function. d == 0 or t >= d short-circuits to (1, true)
// per spec.md 4.1's numerical edge case rule.
func (c CubicBezier) Evaluate(t, d float64) (float64, bool) {
	if d <= 0 {
		return 1, true
	}
	u := Clamp01(t / d)
	finished := t >= d
	return c.solve(u), finished
}

// solve finds the Bézier's y for a given unit time x via a few iterations of
// Newton-Raphson on the x(u) curve, falling back to bisection — the
// standard approach used by browser cubic-bezier() implementations. No pack
// repo exposes a raw 4-control-point Bézier solver (gween/ease ships a fixed
// preset table only), so this is implemented directly against math.
func (c CubicBezier) solve(x float64) float64 {
	x1, y1, x2, y2 := clamp01(c.X1), c.Y1, clamp01(c.X2), c.Y2
	if x <= 0 {
		return 0
	}
	if x >= 1 {
		return 1
	}

	bezierX := func(u float64) float64 {
		v := 1 - u
		return 3*v*v*u*x1 + 3*v*u*u*x2 + u*u*u
	}
	bezierY := func(u float64) float64 {
		v := 1 - u
		return 3*v*v*u*y1 + 3*v*u*u*y2 + u*u*u
	}
	dBezierX := func(u float64) float64 {
		v := 1 - u
		return 3*v*v*x1 + 6*v*u*(x2-x1) + 3*u*u*(1-x2)
	}

	u := x
	for i := 0; i < 8; i++ {
		fx := bezierX(u) - x
		if math.Abs(fx) < 1e-6 {
			return bezierY(u)
		}
		d := dBezierX(u)
		if math.Abs(d) < 1e-9 {
			break
		}
		u -= fx / d
		u = Clamp01(u)
	}

	// Bisection fallback for ill-conditioned regions.
	lo, hi := 0.0, 1.0
	for i := 0; i < 24; i++ {
		mid := (lo + hi) / 2
		if bezierX(mid) < x {
			lo = mid
		} else {
			hi = mid
		}
	}
	return bezierY((lo + hi) / 2)
}

func clamp01(v float64) float64 { return Clamp01(v) }

// Steps is a step timing function: progress jumps between n discrete plateaus.
type Steps struct {
	N     int
	Start bool // JumpStart: the first jump happens at t=0 rather than at the first step boundary
}

// Evaluate implements Function.
func (s Steps) Evaluate(t, d float64) (float64, bool) {
	if d <= 0 || s.N <= 0 {
		return 1, true
	}
	u := Clamp01(t / d)
	finished := t >= d
	step := math.Floor(u * float64(s.N))
	if s.Start {
		step++
	}
	step = math.Min(step, float64(s.N))
	return step / float64(s.N), finished
}

// Preset adapts one of gween/ease's named functions (the teacher's own
// tweening vocabulary) into a Function, for callers that want the classic
// named curves (e.g. ease.OutBounce) instead of raw Bézier control points.
type Preset struct {
	Fn ease.TweenFunc
}

// Evaluate implements Function by sampling the gween ease function at begin=0,
// change=1, over duration d.
func (p Preset) Evaluate(t, d float64) (float64, bool) {
	if d <= 0 {
		return 1, true
	}
	tt := float32(Clamp01(t / d))
	v := p.Fn(tt*float32(d), 0, 1, float32(d))
	return float64(v), t >= d
}
