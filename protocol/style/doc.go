// Package style implements the otto-scene-v1 wire protocol (spec.md §6):
// a surface-style manager, per-surface style objects, transactions, and
// timing-function objects that let a client augment its own Wayland surface
// with compositor-owned visual state (corner radius, shadow, blur,
// transform, ...) driven by transactional animations on top of
// internal/scene. Grounded on friedelschoen-ctxmenu's wayland.go binding
// shape (protocol/wire), inverted for the server role — see DESIGN.md.
//
// Limitation (spec.md §9 open question, "transaction commit ordering
// across surfaces"): atomicity here applies only to scheduling — Commit
// enqueues every accumulated change as a single burst on the same engine
// Update tick (spec.md §4.5), so they are all scheduled together or not at
// all. It does NOT guarantee the visual reveal lands in the same display
// frame when a transaction spans layers attached to different client
// surfaces with independent swap timing; that reveal-level synchronization
// would require display-server-level frame coordination this package does
// not implement. Callers that need cross-surface reveal atomicity must
// layer it on top.
package style
