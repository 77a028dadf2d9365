package dock

import "math"

// RightClickBehavior resolves spec.md §9's Open Question: what happens when
// a right-click lands on a dock tile whose app has no live protocol
// resource to route `menu_requested` to.
type RightClickBehavior uint8

const (
	// RightClickNoop drops the click; no fallback context menu is shown.
	// Chosen as the default: inventing a fallback menu would be otto
	// guessing at otto-kit's UI, which is out of scope (spec.md §1).
	RightClickNoop RightClickBehavior = iota
	// RightClickFallbackToLeftClick treats the right-click as a left-click
	// (focus-or-launch) when there is no live resource to notify.
	RightClickFallbackToLeftClick
)

// Config tunes the interaction Router.
type Config struct {
	RightClickFallback RightClickBehavior
	// MaxMagnification is the scale factor applied directly under the
	// pointer (1.0 disables magnification).
	MaxMagnification float64
	// FalloffWidth is the Gaussian sigma, in the same units as tile
	// centers/widths — spec.md §4.6 "falloff width approximately one tile".
	FalloffWidth float64
}

// DefaultConfig matches spec.md §4.6's described defaults.
func DefaultConfig() Config {
	return Config{
		RightClickFallback: RightClickNoop,
		MaxMagnification:   1.6,
		FalloffWidth:       64,
	}
}

// Tile is one dock tile's layout, as known to the Router: enough to compute
// magnification and to resolve a click back to an app.
type Tile struct {
	AppID    string
	CenterX  float64
	HasWindow bool
}

// MouseButton identifies which pointer button triggered HandleClick.
type MouseButton uint8

const (
	ButtonLeft MouseButton = iota
	ButtonRight
)

// Router tracks hover/drag pointer state and drives both the magnification
// curve and click routing (spec.md §4.6). Grounded on
// phanxgames-willow/input.go's per-pointer hover/drag state tracked across
// frames, generalized from hit-testable scene nodes to dock tiles.
type Router struct {
	cfg      Config
	dragging bool
}

// NewRouter constructs a Router with cfg. A zero Config behaves like
// DefaultConfig only if the caller passes DefaultConfig() explicitly — the
// zero value intentionally disables magnification (MaxMagnification 0 would
// be nonsensical, so callers should always pass an explicit Config).
func NewRouter(cfg Config) *Router {
	return &Router{cfg: cfg}
}

// BeginDrag suspends magnification for the duration of a drag gesture
// (spec.md §4.6: "dragging suspends magnification").
func (r *Router) BeginDrag() { r.dragging = true }

// EndDrag resumes normal hover magnification.
func (r *Router) EndDrag() { r.dragging = false }

// Dragging reports whether a drag gesture is in progress.
func (r *Router) Dragging() bool { return r.dragging }

// Magnify returns, for each tile, its scale factor under hover at pointerX.
// While dragging, every tile reports 1.0 regardless of pointer position.
func (r *Router) Magnify(pointerX float64, hovering bool, tiles []Tile) []float64 {
	scales := make([]float64, len(tiles))
	if r.dragging || !hovering || r.cfg.FalloffWidth <= 0 {
		for i := range scales {
			scales[i] = 1.0
		}
		return scales
	}
	extra := r.cfg.MaxMagnification - 1.0
	sigma := r.cfg.FalloffWidth
	for i, t := range tiles {
		dx := pointerX - t.CenterX
		falloff := math.Exp(-(dx * dx) / (2 * sigma * sigma))
		scales[i] = 1.0 + extra*falloff
	}
	return scales
}

// HandleClick routes a click on tile (spec.md §4.6):
//   - left button: focus if hasWindow, otherwise launch (caller-supplied callbacks).
//   - right button with a live protocol resource: emits menu_requested and
//     suppresses focus/launch.
//   - right button with no live resource: resolved per Config.RightClickFallback.
//
// launch and focus are invoked at most once; x,y are pointer coordinates
// relative to the dock item, passed through to menu_requested.
func (r *Router) HandleClick(button MouseButton, item *DockItem, hasWindow bool, x, y int, launch, focus func()) {
	if button == ButtonLeft {
		r.focusOrLaunch(hasWindow, launch, focus)
		return
	}

	if item != nil && !item.Destroyed() {
		item.RequestMenu(x, y)
		return
	}

	switch r.cfg.RightClickFallback {
	case RightClickFallbackToLeftClick:
		r.focusOrLaunch(hasWindow, launch, focus)
	case RightClickNoop:
	}
}

func (r *Router) focusOrLaunch(hasWindow bool, launch, focus func()) {
	if hasWindow {
		if focus != nil {
			focus()
		}
		return
	}
	if launch != nil {
		launch()
	}
}
