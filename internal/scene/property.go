package scene

import (
	"math"

	"github.com/nongio/otto/internal/timing"
)

// Interpolator supplies the per-property-type math a Property[T] needs:
// straight Lerp for bounded easing curves, and a decompose/compose pair for
// driving one independent timing.Spring per scalar channel (spec.md §4.1:
// "Interpolation is defined per property type"). Discrete properties (bool,
// BlendMode) set Discrete and leave the rest nil — they never interpolate,
// they flip at transition start (spec.md §4.1/§4.2).
type Interpolator[T any] struct {
	Lerp       func(from, to T, u float64) T
	Components func(v T) []float64
	Compose    func(channels []float64) T
	Discrete   bool
}

// transition is the in-flight interpolation state for one Property[T],
// corresponding to spec.md §3's Transition entity. Exactly one may be
// pending per Property at a time (spec.md §8 "Transition uniqueness").
type transition[T any] struct {
	from, to   T
	duration   float64
	delay      float64
	elapsed    float64
	timing     timing.Function
	springs    []*timing.Spring
	replace    ReplacePolicy
	onComplete func(cancelled bool)
	discrete   bool
	started    bool
}

// ReplacePolicy controls what happens when a new transition is scheduled on
// a (layer, property) pair that already has one in flight (spec.md §3:
// "a new transition for the same pair cancels or replaces its predecessor
// per the pair's configured replace policy").
type ReplacePolicy uint8

const (
	// ReplaceCancel cancels the predecessor immediately; its completion
	// callback fires with cancelled=true. This is the default.
	ReplaceCancel ReplacePolicy = iota
	// ReplaceFromCurrent cancels the predecessor and starts the new
	// transition from the predecessor's current interpolated value. Every
	// step writes that value into Current, which is also where ReplaceCancel
	// starts from, so the two policies produce the same "from".
	ReplaceFromCurrent
)

// TransitionSpec configures a Property.Set animated path.
type TransitionSpec struct {
	Duration   float64
	Delay      float64
	Timing     timing.Function // nil + Spring != nil means spring-driven
	Spring     *timing.Spring  // prototype cloned per scalar channel
	Replace    ReplacePolicy
	OnComplete func(cancelled bool)
}

// Property is the (current_value, pending_transition?) pair described by
// spec.md §4.2 for one animatable field of one Layer.
type Property[T any] struct {
	Current T
	pending *transition[T]
	interp  Interpolator[T]

	// gen counts every write to Current, immediate or interpolated. Consumers
	// that cache derived state (internal/paint's raster cache) key their
	// cache validity off the sum of the gens of the properties that feed the
	// cached content, so they never need a caller-driven invalidation call
	// (spec.md §4.4).
	gen uint64
}

// NewProperty constructs a Property with its initial value and the
// interpolation rules for T.
func NewProperty[T any](initial T, interp Interpolator[T]) Property[T] {
	return Property[T]{Current: initial, interp: interp}
}

// Active reports whether a transition is currently in flight.
func (p *Property[T]) Active() bool { return p.pending != nil }

// Gen returns the current write generation, bumped on every change to
// Current. It never resets and never has a meaning beyond equality
// comparison across two points in time.
func (p *Property[T]) Gen() uint64 { return p.gen }

// setCurrent assigns value to Current and bumps the write generation. Every
// mutation of Current, immediate or interpolated, must go through this so
// Gen() stays an accurate change signal.
func (p *Property[T]) setCurrent(value T) {
	p.Current = value
	p.gen++
}

// SetLayoutComputed writes a value derived by a layout pass (spec.md §4.3
// step 3) without disturbing an in-flight transition: if a transition is
// already animating this property, the write is dropped for this frame so
// the transition keeps driving Current uninterrupted; layout recomputes and
// retries the write on every later frame, so it takes effect as soon as the
// transition finishes on its own. Layout engines must use this instead of
// Set for the Position/Size they compute, or every layout pass would cancel
// any transition a caller started on those properties.
func (p *Property[T]) SetLayoutComputed(value T) {
	if p.pending != nil {
		return
	}
	p.setCurrent(value)
}

// Set applies the spec.md §4.2 setter contract: with spec == nil the value
// applies immediately and any in-flight transition is cancelled; with a
// non-nil spec a new transition is scheduled from the current value,
// cancelling any predecessor per its replace policy.
func (p *Property[T]) Set(value T, spec *TransitionSpec) {
	if spec == nil {
		p.cancelPending()
		p.setCurrent(value)
		return
	}

	from := p.Current
	if p.pending != nil && spec.Replace == ReplaceFromCurrent {
		from = p.pending.currentValue(p)
	}
	p.cancelPending()

	tr := &transition[T]{
		from:       from,
		to:         value,
		duration:   spec.Duration,
		delay:      spec.Delay,
		onComplete: spec.OnComplete,
		discrete:   p.interp.Discrete,
	}
	if spec.Spring != nil && !p.interp.Discrete {
		fromComps := p.interp.Components(from)
		toComps := p.interp.Components(value)
		tr.springs = make([]*timing.Spring, len(fromComps))
		for i := range fromComps {
			sp := spec.Spring.Clone()
			sp.SetRange(fromComps[i], toComps[i])
			tr.springs[i] = sp
		}
	} else {
		tr.timing = spec.Timing
	}
	p.pending = tr
}

// currentValue returns the Property's current interpolated value — used
// only by ReplaceFromCurrent to seed the next transition's "from".
func (tr *transition[T]) currentValue(p *Property[T]) T {
	return p.Current
}

// Step advances any pending transition by dt seconds. It returns whether a
// transition remains active after the step, which the engine uses to decide
// whether the overall frame still needs_redraw (spec.md §4.3 step 6).
func (p *Property[T]) Step(dt float64) bool {
	tr := p.pending
	if tr == nil {
		return false
	}

	if tr.delay > 0 {
		consume := math.Min(dt, tr.delay)
		tr.delay -= consume
		dt -= consume
		if tr.delay > 1e-12 {
			return true
		}
	}
	if !tr.started {
		tr.started = true
		if tr.discrete {
			p.setCurrent(tr.to)
		}
	}
	if dt <= 0 {
		return true
	}

	if tr.discrete {
		tr.elapsed += dt
		if tr.elapsed >= tr.duration {
			p.finish(false)
			return false
		}
		return true
	}

	if tr.springs != nil {
		comps := make([]float64, len(tr.springs))
		allDone := true
		for i, sp := range tr.springs {
			sp.Step(dt)
			comps[i] = sp.Value()
			if !sp.Finished() {
				allDone = false
			}
		}
		if allDone {
			p.setCurrent(tr.to)
			p.finish(false)
			return false
		}
		p.setCurrent(p.interp.Compose(comps))
		return true
	}

	tr.elapsed += dt
	u, finished := tr.timing.Evaluate(tr.elapsed, tr.duration)
	if finished {
		p.setCurrent(tr.to)
		p.finish(false)
		return false
	}
	p.setCurrent(p.interp.Lerp(tr.from, tr.to, u))
	return true
}

// finish clears the pending transition and invokes its completion callback.
func (p *Property[T]) finish(cancelled bool) {
	tr := p.pending
	p.pending = nil
	if tr != nil && tr.onComplete != nil {
		tr.onComplete(cancelled)
	}
}

// cancelPending cancels any in-flight transition, firing its completion
// callback with cancelled=true (spec.md §3/§5).
func (p *Property[T]) cancelPending() {
	if p.pending != nil {
		p.finish(true)
	}
}

// --- Built-in interpolators (spec.md §4.1 "interpolation is defined per property type") ---

// Float64Interp linearly interpolates a bare scalar (rotation, opacity,
// border width, ...) and springs it as a single channel.
var Float64Interp = Interpolator[float64]{
	Lerp:       func(from, to float64, u float64) float64 { return timing.Lerp(from, to, u) },
	Components: func(v float64) []float64 { return []float64{v} },
	Compose:    func(c []float64) float64 { return c[0] },
}

// Vec2Interp linearly interpolates each axis independently.
var Vec2Interp = Interpolator[Vec2]{
	Lerp: func(from, to Vec2, u float64) Vec2 {
		return Vec2{timing.Lerp(from.X, to.X, u), timing.Lerp(from.Y, to.Y, u)}
	},
	Components: func(v Vec2) []float64 { return []float64{v.X, v.Y} },
	Compose:    func(c []float64) Vec2 { return Vec2{c[0], c[1]} },
}

// ColorInterp interpolates RGBA linearly (spec.md §4.1: "colors in
// premultiplied RGBA linearly" — callers are expected to store/compare
// premultiplied values; the channel math itself is the same linear
// component-wise lerp either way).
var ColorInterp = Interpolator[Color]{
	Lerp: func(from, to Color, u float64) Color {
		return Color{
			timing.Lerp(from.R, to.R, u),
			timing.Lerp(from.G, to.G, u),
			timing.Lerp(from.B, to.B, u),
			timing.Lerp(from.A, to.A, u),
		}
	},
	Components: func(v Color) []float64 { return []float64{v.R, v.G, v.B, v.A} },
	Compose:    func(c []float64) Color { return Color{c[0], c[1], c[2], c[3]} },
}

// CornerRadiusInterp interpolates each corner independently.
var CornerRadiusInterp = Interpolator[CornerRadius]{
	Lerp: func(from, to CornerRadius, u float64) CornerRadius {
		return CornerRadius{
			timing.Lerp(from.TL, to.TL, u),
			timing.Lerp(from.TR, to.TR, u),
			timing.Lerp(from.BR, to.BR, u),
			timing.Lerp(from.BL, to.BL, u),
		}
	},
	Components: func(v CornerRadius) []float64 { return []float64{v.TL, v.TR, v.BR, v.BL} },
	Compose:    func(c []float64) CornerRadius { return CornerRadius{c[0], c[1], c[2], c[3]} },
}

// ShadowInterp interpolates color and geometry channels independently.
var ShadowInterp = Interpolator[Shadow]{
	Lerp: func(from, to Shadow, u float64) Shadow {
		return Shadow{
			Color:    ColorInterp.Lerp(from.Color, to.Color, u),
			OffsetX:  timing.Lerp(from.OffsetX, to.OffsetX, u),
			OffsetY:  timing.Lerp(from.OffsetY, to.OffsetY, u),
			Blur:     timing.Lerp(from.Blur, to.Blur, u),
			Spread:   timing.Lerp(from.Spread, to.Spread, u),
		}
	},
	Components: func(v Shadow) []float64 {
		return []float64{v.Color.R, v.Color.G, v.Color.B, v.Color.A, v.OffsetX, v.OffsetY, v.Blur, v.Spread}
	},
	Compose: func(c []float64) Shadow {
		return Shadow{Color: Color{c[0], c[1], c[2], c[3]}, OffsetX: c[4], OffsetY: c[5], Blur: c[6], Spread: c[7]}
	},
}

// MatrixInterp slerps the rotational part and linearly interpolates
// translation/scale, per spec.md §4.1.
var MatrixInterp = Interpolator[Matrix]{
	Lerp: func(from, to Matrix, u float64) Matrix {
		ft, fr, fs := from.Decompose()
		tt, tr, ts := to.Decompose()
		// Shortest-path angular interpolation.
		delta := math.Mod(tr-fr+math.Pi, 2*math.Pi) - math.Pi
		rot := fr + delta*u
		return ComposeMatrix(
			Vec2{timing.Lerp(ft.X, tt.X, u), timing.Lerp(ft.Y, tt.Y, u)},
			rot,
			Vec2{timing.Lerp(fs.X, ts.X, u), timing.Lerp(fs.Y, ts.Y, u)},
		)
	},
	Components: func(v Matrix) []float64 {
		t, r, s := v.Decompose()
		return []float64{t.X, t.Y, r, s.X, s.Y}
	},
	Compose: func(c []float64) Matrix {
		return ComposeMatrix(Vec2{c[0], c[1]}, c[2], Vec2{c[3], c[4]})
	},
}

// BoolInterp is a discrete (non-interpolated) property.
var BoolInterp = Interpolator[bool]{Discrete: true}

// BlendModeInterp is a discrete (non-interpolated) property.
var BlendModeInterp = Interpolator[BlendMode]{Discrete: true}
