package style

import (
	"github.com/nongio/otto/internal/scene"
	"github.com/nongio/otto/protocol/wire"
)

// SurfaceID identifies a client Wayland surface. Surface lifetime itself is
// owned by the display-server backend (out of scope, spec.md §1); this
// package only needs a stable key to look up or create the ScLayer/Layer
// backing a surface's style augmentations.
type SurfaceID uint32

// ZOrder places a ScLayer relative to its surface's own content (spec.md §3
// ScLayer).
type ZOrder uint8

const (
	BelowSurface ZOrder = iota
	AboveSurface
)

// ScLayer binds a protocol resource to a scene-graph Layer and a client
// surface (spec.md §3 "ScLayer"). One Layer per ScLayer; multiple ScLayers
// may attach to the same surface, stacked by ZOrder then creation order.
type ScLayer struct {
	wire.Resource
	Layer     scene.Handle
	Surface   SurfaceID
	Z         ZOrder
	createdAt uint64
}

// Manager is the otto_surface_style_manager_v1 global: factory for Style,
// Transaction, and TimingFunction objects (spec.md §4.5, §6).
type Manager struct {
	wire.Resource

	engine     *scene.Engine
	dispatcher *wire.Dispatcher

	surfaceLayers map[SurfaceID]scene.Handle
	scLayers      map[SurfaceID][]*ScLayer
	creationSeq   uint64
}

// NewManager constructs a Manager bound to engine. dispatcher tracks
// allocated protocol object ids (protocol/wire).
func NewManager(engine *scene.Engine, dispatcher *wire.Dispatcher) *Manager {
	return &Manager{
		engine:        engine,
		dispatcher:    dispatcher,
		surfaceLayers: make(map[SurfaceID]scene.Handle),
		scLayers:      make(map[SurfaceID][]*ScLayer),
	}
}

// GetSurfaceStyle implements `get_surface_style(new_id, surface)`: looks up
// or lazily creates the scene Layer backing surface, creates a new ScLayer
// binding stacked after any existing ones for that surface, and returns the
// Style protocol object the client uses to configure it (spec.md §4.5
// "ScLayer lifecycle").
func (m *Manager) GetSurfaceStyle(surface SurfaceID) (*Style, error) {
	layerHandle, ok := m.surfaceLayers[surface]
	if !ok {
		h, err := m.engine.NewLayer("")
		if err != nil {
			return nil, err
		}
		if err := m.engine.AppendChild(m.engine.Root(), h); err != nil {
			return nil, err
		}
		m.surfaceLayers[surface] = h
		layerHandle = h
	}

	m.creationSeq++
	sc := &ScLayer{Layer: layerHandle, Surface: surface, createdAt: m.creationSeq}
	m.dispatcher.Register(sc)
	m.scLayers[surface] = append(m.scLayers[surface], sc)

	st := &Style{manager: m, scLayer: sc}
	m.dispatcher.Register(st)
	return st, nil
}

// CreateTransaction implements `create_transaction(new_id)`.
func (m *Manager) CreateTransaction(handlers *TransactionHandlers) *Transaction {
	t := NewTransaction(handlers)
	m.dispatcher.Register(t)
	return t
}

// CreateTimingFunction implements `create_timing_function(new_id, kind, params...)`.
func (m *Manager) CreateTimingFunction(tf *TimingFunction) *TimingFunction {
	m.dispatcher.Register(tf)
	return tf
}

// Destroy implements `destroy` on the otto_surface_style_manager_v1 global
// (spec.md §6). It does not cascade to already-issued Style/Transaction/
// TimingFunction objects; clients release those individually.
func (m *Manager) Destroy() {
	m.Resource.Destroy()
}

// releaseScLayer removes sc from its surface's stack — called by
// Style.Destroy (spec.md §4.5: "When the client destroys the handle, the
// ScLayer is removed from the surface's augmentation list; the scene-graph
// Layer persists if it backs the surface's own rendering").
func (m *Manager) releaseScLayer(sc *ScLayer) {
	list := m.scLayers[sc.Surface]
	for i, s := range list {
		if s == sc {
			m.scLayers[sc.Surface] = append(list[:i], list[i+1:]...)
			break
		}
	}
}

// Style is the otto_surface_style_v1 protocol object bound to a client
// surface via a ScLayer (spec.md §4.5, §6).
type Style struct {
	wire.Resource
	manager *Manager
	scLayer *ScLayer
}

func (s *Style) layer() (*scene.Layer, bool) {
	return s.manager.engine.Get(s.scLayer.Layer)
}

// stageOrApply either buffers change into txn (if non-nil) or applies it
// immediately against the manager's engine (spec.md §4.5: "If omitted, the
// change applies immediately... if present, the change is buffered").
func (s *Style) stageOrApply(txn *Transaction, change stagedChange) error {
	if s.Destroyed() {
		return wire.ErrDestroyed{Interface: "otto_surface_style_v1"}
	}
	if txn != nil {
		return txn.stage(change)
	}
	change(s.manager.engine, nil)
	return nil
}

// SetBackgroundColor implements `set_background_color(a,r,g,b, txn?)`.
func (s *Style) SetBackgroundColor(c scene.Color, txn *Transaction) error {
	h := s.scLayer.Layer
	return s.stageOrApply(txn, func(e *scene.Engine, spec *scene.TransitionSpec) {
		if l, ok := e.Get(h); ok {
			l.BackgroundColor.Set(c, spec)
		}
	})
}

// SetCornerRadius implements `set_corner_radius(tl,tr,br,bl, txn?)`.
func (s *Style) SetCornerRadius(r scene.CornerRadius, txn *Transaction) error {
	h := s.scLayer.Layer
	return s.stageOrApply(txn, func(e *scene.Engine, spec *scene.TransitionSpec) {
		if l, ok := e.Get(h); ok {
			l.CornerRadius.Set(r, spec)
		}
	})
}

// SetBorder implements `set_border(color, width, txn?)`.
func (s *Style) SetBorder(color scene.Color, width float64, txn *Transaction) error {
	h := s.scLayer.Layer
	return s.stageOrApply(txn, func(e *scene.Engine, spec *scene.TransitionSpec) {
		// Two transitions come from this one staged change; report completion
		// once, when the later of the two finishes.
		if spec != nil && spec.OnComplete != nil {
			done, remaining := spec.OnComplete, 2
			joined := *spec
			joined.OnComplete = func(cancelled bool) {
				remaining--
				if remaining == 0 {
					done(cancelled)
				}
			}
			spec = &joined
		}
		if l, ok := e.Get(h); ok {
			l.BorderColor.Set(color, spec)
			l.BorderWidth.Set(width, spec)
		}
	})
}

// SetShadow implements `set_shadow(color, dx, dy, blur, spread, txn?)`.
func (s *Style) SetShadow(shadow scene.Shadow, txn *Transaction) error {
	h := s.scLayer.Layer
	return s.stageOrApply(txn, func(e *scene.Engine, spec *scene.TransitionSpec) {
		if l, ok := e.Get(h); ok {
			l.Shadow.Set(shadow, spec)
		}
	})
}

// SetOpacity implements `set_opacity(value, txn?)`.
func (s *Style) SetOpacity(value float64, txn *Transaction) error {
	h := s.scLayer.Layer
	return s.stageOrApply(txn, func(e *scene.Engine, spec *scene.TransitionSpec) {
		if l, ok := e.Get(h); ok {
			l.Opacity.Set(value, spec)
		}
	})
}

// SetTransform implements `set_transform(matrix[6], txn?)`.
func (s *Style) SetTransform(m scene.Matrix, txn *Transaction) error {
	h := s.scLayer.Layer
	return s.stageOrApply(txn, func(e *scene.Engine, spec *scene.TransitionSpec) {
		if l, ok := e.Get(h); ok {
			l.Transform.Set(m, spec)
		}
	})
}

// SetBlendMode implements `set_blend_mode(mode)` — always immediate, a
// discrete property never takes a transaction argument per the wire
// protocol in spec.md §6.
func (s *Style) SetBlendMode(mode scene.BlendMode) error {
	if l, ok := s.layer(); ok {
		l.BlendMode.Set(mode, nil)
		return nil
	}
	return wire.ErrDestroyed{Interface: "otto_surface_style_v1"}
}

// SetZOrder implements `set_z_order(below|above)` — immediate.
func (s *Style) SetZOrder(z ZOrder) error {
	if s.Destroyed() {
		return wire.ErrDestroyed{Interface: "otto_surface_style_v1"}
	}
	s.scLayer.Z = z
	return nil
}

// SetContentClip implements `set_content_clip(bool)` — immediate.
func (s *Style) SetContentClip(clip bool) error {
	if l, ok := s.layer(); ok {
		l.ContentClip.Set(clip, nil)
		return nil
	}
	return wire.ErrDestroyed{Interface: "otto_surface_style_v1"}
}

// Destroy implements `destroy`, removing this Style's ScLayer from its
// surface's augmentation list. The backing scene Layer is left in place.
func (s *Style) Destroy() {
	if s.Destroyed() {
		return
	}
	s.manager.releaseScLayer(s.scLayer)
	s.Resource.Destroy()
}
