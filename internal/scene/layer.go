package scene

// DrawContext is the render-context argument passed to a Layer's DrawFunc,
// carrying the cumulative alpha the painter (C4) has composited down to
// this layer plus a canvas-agnostic surface the callback paints onto
// (spec.md §3: "optional draw callback (canvas, alpha, render-context) →
// damage-rect"). The concrete Canvas is supplied by internal/paint; scene
// only needs to thread the callback through, so it is typed as an opaque
// interface here to avoid an import cycle between scene and paint.
type DrawContext struct {
	Alpha   float64
	Surface any
}

// DrawFunc is a layer's content draw callback. It returns the local-space
// rectangle it touched, which the engine folds into this frame's damage
// (spec.md §4.3 step 5; §9 design note: "capture environment by value;
// main-thread only" — no Sendable constraint since the engine never runs on
// a worker goroutine, per spec.md §5).
type DrawFunc func(ctx DrawContext) Rect

// LayoutStyle is the flexbox-style block consumed by the external layout
// engine (spec.md §3/§4.3), generalized from gioui.org/layout's
// Flex/FlexChild model (see DESIGN.md).
type LayoutStyle struct {
	Display       DisplayMode
	Direction     FlexDirection
	Gap           float64
	AlignItems    AlignItems
	JustifyContent JustifyContent
	Padding       Insets
	Margin        Insets
	Grow          float64 // flex-grow factor for this layer within its parent
	Shrink        float64 // flex-shrink factor
	Basis         *float64 // flex-basis along the main axis; nil means "auto" (use Size)
}

// DisplayMode selects whether a layer participates in flex layout at all.
type DisplayMode uint8

const (
	DisplayFlex DisplayMode = iota
	DisplayNone
)

// FlexDirection is the main axis of a flex container.
type FlexDirection uint8

const (
	FlexRow FlexDirection = iota
	FlexColumn
)

// AlignItems controls cross-axis alignment of children within a flex container.
type AlignItems uint8

const (
	AlignStart AlignItems = iota
	AlignCenter
	AlignEnd
	AlignStretch
)

// JustifyContent controls main-axis distribution of children.
type JustifyContent uint8

const (
	JustifyStart JustifyContent = iota
	JustifyCenter
	JustifyEnd
	JustifySpaceBetween
)

// Insets is a four-sided padding/margin block.
type Insets struct{ Top, Right, Bottom, Left float64 }

// Layer is the scene graph node (spec.md §3). It is stored by value inside
// an Engine's arena and referenced by Handle, matching phanxgames-willow's
// single-flat-struct-for-all-node-kinds design ("to avoid interface
// dispatch on the hot path") generalized from pointer identity to
// arena-slot identity (spec.md §9 design note 1).
type Layer struct {
	// Structural (spec.md §3)
	Key          string
	Parent       Handle
	Children     []Handle
	ZIndex       int
	Hidden       Property[bool]
	PointerEvents bool

	// Animatable properties (spec.md §3)
	Position        Property[Vec2]
	Size            Property[Vec2]
	SizeMode        [2]SizeMode // per-axis length-vs-percent tag; structural, not itself animated
	Anchor          Property[Vec2]
	Scale           Property[Vec2]
	Rotation        Property[float64]
	Opacity         Property[float64]
	BackgroundColor Property[Color]
	BorderColor     Property[Color]
	BorderWidth     Property[float64]
	CornerRadius    Property[CornerRadius]
	Shadow          Property[Shadow]
	ContentClip     Property[bool]
	BlendMode       Property[BlendMode]
	Transform       Property[Matrix] // custom transform matrix, composed after the computed layout transform

	// Layout (spec.md §3/§4.3)
	Style LayoutStyle

	// Content (spec.md §3)
	Draw DrawFunc

	// Computed each frame by the engine (spec.md §4.3 steps 3-4)
	WorldTransform Matrix
	WorldAlpha     float64
	WorldAABB      Rect
	layoutDirty    bool

	// cacheableContent is set by SetCacheable; consumed by internal/paint to
	// opt a stable-content layer into rasterization caching (spec.md §4.4).
	cacheableContent bool
}

// newLayer builds the zero-value defaults for a freshly allocated Layer
// (spec.md §3 Lifecycle: "created by engine.new_layer(); inserts into
// arena, not yet in tree").
func newLayer(key string) Layer {
	l := Layer{
		Key:           key,
		PointerEvents: true,
		Style:         LayoutStyle{Grow: 0, Shrink: 1},
	}
	l.Hidden = NewProperty(false, BoolInterp)
	l.Position = NewProperty(Vec2{}, Vec2Interp)
	l.Size = NewProperty(Vec2{}, Vec2Interp)
	l.Anchor = NewProperty(Vec2{}, Vec2Interp)
	l.Scale = NewProperty(Vec2{1, 1}, Vec2Interp)
	l.Rotation = NewProperty(0, Float64Interp)
	l.Opacity = NewProperty(1, Float64Interp)
	l.BackgroundColor = NewProperty(Color{0, 0, 0, 0}, ColorInterp)
	l.BorderColor = NewProperty(Color{0, 0, 0, 0}, ColorInterp)
	l.BorderWidth = NewProperty(0, Float64Interp)
	l.CornerRadius = NewProperty(CornerRadius{}, CornerRadiusInterp)
	l.Shadow = NewProperty(Shadow{}, ShadowInterp)
	l.ContentClip = NewProperty(false, BoolInterp)
	l.BlendMode = NewProperty(BlendNormal, BlendModeInterp)
	l.Transform = NewProperty(IdentityMatrix, MatrixInterp)
	l.layoutDirty = true
	return l
}

// SetCacheable marks whether this layer's painted output may be cached as an
// offscreen raster by the painter bridge (spec.md §4.4: "layers with stable
// content... opt-in flag").
func (l *Layer) SetCacheable(v bool) { l.cacheableContent = v }

// Cacheable reports the opt-in cache flag set via SetCacheable.
func (l *Layer) Cacheable() bool { return l.cacheableContent }

// IsVisible reports whether the layer should be painted and hit-tested:
// not hidden (spec.md §3 invariant: "hidden subtrees are skipped by both
// painter and hit-test").
func (l *Layer) IsVisible() bool { return !l.Hidden.Current }

// cancelAllTransitions cancels every property's pending transition, firing
// each one's completion callback with cancelled=true. Called before a layer
// is freed from the arena so a removed layer's in-flight animations still
// resolve their callbacks exactly once (spec.md §5: "a transition is
// cancelled when... the target layer is removed").
func (l *Layer) cancelAllTransitions() {
	l.Hidden.cancelPending()
	l.Position.cancelPending()
	l.Size.cancelPending()
	l.Anchor.cancelPending()
	l.Scale.cancelPending()
	l.Rotation.cancelPending()
	l.Opacity.cancelPending()
	l.BackgroundColor.cancelPending()
	l.BorderColor.cancelPending()
	l.BorderWidth.cancelPending()
	l.CornerRadius.cancelPending()
	l.Shadow.cancelPending()
	l.ContentClip.cancelPending()
	l.BlendMode.cancelPending()
	l.Transform.cancelPending()
}

// ContentGen sums the write generations of the properties that feed a
// cached raster (background, border, shadow, corner radius, content clip,
// blend mode, and the size that determines the raster's pixel dimensions).
// internal/paint's cache keys its validity off this value instead of
// requiring callers to invalidate explicitly (spec.md §4.4). Position and
// opacity are deliberately excluded: both are applied at blit time rather
// than baked into the cached pixels, so changing them must not invalidate
// the cache.
func (l *Layer) ContentGen() uint64 {
	return l.Size.Gen() + l.BackgroundColor.Gen() + l.BorderColor.Gen() +
		l.BorderWidth.Gen() + l.CornerRadius.Gen() + l.Shadow.Gen() +
		l.ContentClip.Gen() + l.BlendMode.Gen()
}
