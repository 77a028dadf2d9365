package style

import (
	"github.com/nongio/otto/internal/timing"
	"github.com/nongio/otto/protocol/wire"
)

// TimingFunctionKind tags which member of the otto_timing_function_v1
// tagged union a TimingFunction holds (spec.md §3 "Timing function —
// tagged union of: cubic Bézier... step function, or spring").
type TimingFunctionKind uint8

const (
	KindBezier TimingFunctionKind = iota
	KindSteps
	KindSpring
)

// TimingFunction is the otto_timing_function_v1 protocol object: created via
// Manager.CreateTimingFunction, owned by the client, and attachable to
// multiple transactions (spec.md §4.5 "Timing-function object").
type TimingFunction struct {
	wire.Resource

	Kind TimingFunctionKind

	Bezier timing.CubicBezier
	Steps  timing.Steps

	// Spring parameters. Either the raw physical triple or the
	// duration+bounce convenience form is used, selected by SpringUsesDuration
	// (spec.md §4.1 "spring_uses_duration").
	SpringMass            float64
	SpringStiffness       float64
	SpringDamping         float64
	SpringInitialVelocity float64
	SpringUsesDuration    bool
	SpringDuration        float64
	SpringBounce          float64
}

// NewBezierTimingFunction constructs a cubic-Bézier timing function.
func NewBezierTimingFunction(x1, y1, x2, y2 float64) *TimingFunction {
	return &TimingFunction{Kind: KindBezier, Bezier: timing.CubicBezier{X1: x1, Y1: y1, X2: x2, Y2: y2}}
}

// NewStepsTimingFunction constructs a step timing function.
func NewStepsTimingFunction(n int, jumpStart bool) *TimingFunction {
	return &TimingFunction{Kind: KindSteps, Steps: timing.Steps{N: n, Start: jumpStart}}
}

// NewSpringTimingFunction constructs a spring timing function from raw
// physical parameters.
func NewSpringTimingFunction(mass, stiffness, damping, initialVelocity float64) *TimingFunction {
	return &TimingFunction{
		Kind:                  KindSpring,
		SpringMass:            mass,
		SpringStiffness:       stiffness,
		SpringDamping:         damping,
		SpringInitialVelocity: initialVelocity,
	}
}

// NewSpringTimingFunctionFromDuration constructs a spring timing function
// from the duration+bounce convenience parameterization.
func NewSpringTimingFunctionFromDuration(duration, bounce, initialVelocity float64) *TimingFunction {
	return &TimingFunction{
		Kind:                  KindSpring,
		SpringUsesDuration:    true,
		SpringDuration:        duration,
		SpringBounce:          bounce,
		SpringInitialVelocity: initialVelocity,
	}
}

// Resolve builds the scene.TransitionSpec's Timing/Spring pair for this
// timing function: exactly one of the two return values is non-nil, matching
// the split scene.Property[T].Set already expects.
func (tf *TimingFunction) Resolve() (fn timing.Function, spring *timing.Spring) {
	switch tf.Kind {
	case KindSteps:
		return tf.Steps, nil
	case KindSpring:
		if tf.SpringUsesDuration {
			return nil, timing.NewSpringFromDuration(tf.SpringDuration, tf.SpringBounce, tf.SpringInitialVelocity)
		}
		return nil, timing.NewSpring(tf.SpringMass, tf.SpringStiffness, tf.SpringDamping, tf.SpringInitialVelocity)
	default:
		return tf.Bezier, nil
	}
}
