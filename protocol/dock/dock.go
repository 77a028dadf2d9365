// Package dock implements the otto-dock-v1 wire protocol (spec.md §4.6,
// §6): a dock manager global, per-app dock item resources with
// badge/progress/preview state, and the hover-magnification/right-click
// routing layer that drives the dock's interactive behavior. Grounded on
// protocol/wire's object-lifecycle scaffolding (see DESIGN.md) and, for the
// interaction routing, phanxgames-willow's input.go pointer-state tracking
// pattern generalized from per-node hit state to per-tile dock state.
package dock

import "github.com/nongio/otto/protocol/wire"

// ItemType is the dock item's presentation kind (spec.md §3: "item type
// (AppElement by default)").
type ItemType uint8

const (
	AppElement ItemType = iota
)

// PreviewSurface identifies the client surface mirrored as a dock item's
// live thumbnail (spec.md §3 "optional preview client surface"). Kept as a
// bare identifier rather than importing protocol/style's SurfaceID so dock
// has no compile-time dependency on style.
type PreviewSurface uint32

// DockItemHandlers carries the otto_dock_item_v1 `menu_requested` event
// callback (spec.md §4.6, §6).
type DockItemHandlers struct {
	OnMenuRequested func(x, y int)
}

// DockItem is the otto_dock_item_v1 protocol object: one per live app
// binding (spec.md §3 "DockItem").
type DockItem struct {
	wire.Resource

	AppID    string
	Type     ItemType
	Width    float64
	Height   float64
	Badge    *string
	Progress *float64 // nil means "no progress bar" (spec.md §3)

	Preview           *PreviewSurface
	PreviewSubSurface *PreviewSurface

	handlers *DockItemHandlers
}

// SetPreview implements `set_preview(surface?)`. A nil surface clears the
// mirrored preview.
func (d *DockItem) SetPreview(surface *PreviewSurface) error {
	if d.Destroyed() {
		return wire.ErrDestroyed{Interface: "otto_dock_item_v1"}
	}
	d.Preview = surface
	return nil
}

// SetBadge implements `set_badge(text?)`. A nil text hides the overlay
// (spec.md §3 invariant: "badge None hides the overlay").
func (d *DockItem) SetBadge(text *string) error {
	if d.Destroyed() {
		return wire.ErrDestroyed{Interface: "otto_dock_item_v1"}
	}
	d.Badge = text
	return nil
}

// SetProgress implements `set_progress(value)`: negative values clear the
// progress bar, everything else is clamped to [0,1] (spec.md §3 invariant;
// §8 testable property "Progress clamping").
func (d *DockItem) SetProgress(value float64) error {
	if d.Destroyed() {
		return wire.ErrDestroyed{Interface: "otto_dock_item_v1"}
	}
	if value < 0 {
		d.Progress = nil
		return nil
	}
	clamped := value
	if clamped > 1 {
		clamped = 1
	}
	d.Progress = &clamped
	return nil
}

// RequestMenu invokes the `menu_requested` event — called by the
// interaction Router when a right-click targets this item (spec.md §4.6).
func (d *DockItem) RequestMenu(x, y int) {
	if d.handlers != nil && d.handlers.OnMenuRequested != nil {
		d.handlers.OnMenuRequested(x, y)
	}
}

// Destroy implements `destroy`.
func (d *DockItem) Destroy() {
	d.Resource.Destroy()
}

// Manager is the otto_dock_manager_v1 global (spec.md §4.6 "State
// registry"): keeps object_id→DockItem (via the shared wire.Dispatcher) and
// app_id→DockItem maps.
type Manager struct {
	wire.Resource

	dispatcher *wire.Dispatcher
	byAppID    map[string]*DockItem
}

// NewManager constructs an empty Manager.
func NewManager(dispatcher *wire.Dispatcher) *Manager {
	return &Manager{dispatcher: dispatcher, byAppID: make(map[string]*DockItem)}
}

// GetDockItem implements `get_dock_item(new_id, app_id)`. A second binding
// for the same app id replaces the first: the prior DockItem is marked
// destroyed and dropped from the registry (spec.md §3 invariant, §4.6,
// §8 scenario 4).
func (m *Manager) GetDockItem(appID string, handlers *DockItemHandlers) *DockItem {
	if prior, ok := m.byAppID[appID]; ok {
		m.dispatcher.Unregister(prior.ID())
		prior.Destroy()
	}
	item := &DockItem{AppID: appID, Type: AppElement, handlers: handlers}
	m.dispatcher.Register(item)
	m.byAppID[appID] = item
	return item
}

// Lookup resolves an app id to its live DockItem, if any.
func (m *Manager) Lookup(appID string) (*DockItem, bool) {
	item, ok := m.byAppID[appID]
	return item, ok && !item.Destroyed()
}

// Destroy implements `destroy` on the otto_dock_manager_v1 global (spec.md
// §6). It does not cascade to already-issued DockItems; clients release
// those individually via DockItem.Destroy.
func (m *Manager) Destroy() {
	m.Resource.Destroy()
}
