package timing

import "github.com/tanema/gween"

// Tween wraps a github.com/tanema/gween.Tween as a Function, reusing the
// teacher's (phanxgames-willow) tweening engine for the bounded-duration
// case when a caller already has a gween.Tween (e.g. ported demo code)
// rather than Bézier control points.
type Tween struct {
	t     *gween.Tween
	from  float64
	to    float64
	lastT float64
}

// NewTween builds a Function backed by gween, using fn as the underlying
// easing curve.
func NewTween(from, to float64, duration float32, fn func(t, b, c, d float32) float32) *Tween {
	return &Tween{t: gween.New(float32(from), float32(to), duration, fn), from: from, to: to}
}

// Evaluate advances the wrapped tween by the delta since the last Evaluate
// call (gween.Tween.Update is itself incremental, matching TweenGroup.Update
// in the teacher) and reports unit progress against from/to.
func (tw *Tween) Evaluate(t, d float64) (float64, bool) {
	dt := t - tw.lastT
	tw.lastT = t
	val, finished := tw.t.Update(float32(dt))
	if tw.to == tw.from {
		return 1, true
	}
	return (float64(val) - tw.from) / (tw.to - tw.from), finished
}
