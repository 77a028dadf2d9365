package scene

import "sort"

// Layouter runs the flexbox-style layout pass over a subtree, writing each
// visited layer's resolved Size/Position back through its Property setters.
// Defined here (rather than imported from internal/layout) so scene has no
// dependency on layout; internal/layout depends on scene and supplies the
// concrete implementation, wired in by cmd/otto at startup.
type Layouter interface {
	Layout(e *Engine, root Handle)
}

// noopLayouter is the Engine's default Layouter so Update works before a
// real layout engine is wired in (e.g. in engine-only unit tests).
type noopLayouter struct{}

func (noopLayouter) Layout(*Engine, Handle) {}

// Engine owns the layer arena and drives the per-frame update contract
// described by spec.md §4.3: a queued structural-change log is drained,
// transitions step, layout resolves, world transforms compose, damage
// accumulates, and the frame reports whether another redraw is still needed.
type Engine struct {
	arena  *arena
	root   Handle
	queue  []func(*Engine)
	damage Rect
	Layout Layouter
}

// NewEngine constructs an Engine with its own arena and a root layer. A
// capacity of 0 means the arena is unbounded (spec.md §7 notes arena
// capacity as a configurable resource limit, not an inherent one).
func NewEngine(capacity int) *Engine {
	e := &Engine{arena: newArena(capacity), Layout: noopLayouter{}}
	root, err := e.arena.alloc(newLayer("root"))
	if err != nil {
		panic("scene: NewEngine: initial root allocation failed: " + err.Error())
	}
	e.root = root
	return e
}

// Root returns the handle of the engine's permanent root layer.
func (e *Engine) Root() Handle { return e.root }

// Get resolves a Handle to its Layer, or false if the handle is stale or
// unknown.
func (e *Engine) Get(h Handle) (*Layer, bool) { return e.arena.get(h) }

// NewLayer allocates a new, detached Layer (no parent, no children) and
// returns its Handle (spec.md §3 Lifecycle: "created by engine.new_layer()").
func (e *Engine) NewLayer(key string) (Handle, error) {
	return e.arena.alloc(newLayer(key))
}

// Enqueue schedules fn to run at the start of the next Update call, before
// transitions step. Structural mutations (AppendChild, Remove, Property.Set)
// made from outside the frame loop — e.g. in response to a protocol request —
// should go through Enqueue so they apply atomically at a frame boundary
// rather than mid-traversal (spec.md §4.3: "the queued-change step").
func (e *Engine) Enqueue(fn func(*Engine)) {
	e.queue = append(e.queue, fn)
}

// AppendChild attaches child as the last child of parent, detaching it from
// any previous parent first. It refuses to create a cycle (spec.md §3
// invariant: "the tree is acyclic") and refuses to reparent the root.
func (e *Engine) AppendChild(parent, child Handle) error {
	if _, ok := e.arena.get(parent); !ok {
		return ErrUnknownHandle
	}
	childLayer, ok := e.arena.get(child)
	if !ok {
		return ErrUnknownHandle
	}
	if child == e.root {
		return ErrCycle
	}
	if parent == child || e.isAncestor(child, parent) {
		return ErrCycle
	}
	e.detach(child)
	childLayer.Parent = parent
	parentLayer, _ := e.arena.get(parent)
	parentLayer.Children = append(parentLayer.Children, child)
	parentLayer.layoutDirty = true
	return nil
}

// isAncestor reports whether candidate is an ancestor of h (walking up via
// Parent), used to reject cycle-forming AppendChild calls.
func (e *Engine) isAncestor(candidate, h Handle) bool {
	cur := h
	for {
		l, ok := e.arena.get(cur)
		if !ok || l.Parent.IsNil() {
			return false
		}
		if l.Parent == candidate {
			return true
		}
		cur = l.Parent
	}
}

// detach removes h from its current parent's Children slice, if any, and
// clears h's Parent field. It is a no-op if h is already detached.
func (e *Engine) detach(h Handle) {
	l, ok := e.arena.get(h)
	if !ok || l.Parent.IsNil() {
		return
	}
	parent, ok := e.arena.get(l.Parent)
	if ok {
		for i, c := range parent.Children {
			if c == h {
				parent.Children = append(parent.Children[:i], parent.Children[i+1:]...)
				break
			}
		}
		parent.layoutDirty = true
	}
	l.Parent = NilHandle
}

// Remove detaches h and frees its entire subtree from the arena. Handles
// into the removed subtree become stale and resolve to ErrUnknownHandle from
// then on (spec.md §3 Lifecycle).
func (e *Engine) Remove(h Handle) error {
	l, ok := e.arena.get(h)
	if !ok {
		return ErrUnknownHandle
	}
	if h == e.root {
		return ErrCycle // root is never removable
	}
	e.detach(h)
	e.freeSubtree(h, l)
	return nil
}

func (e *Engine) freeSubtree(h Handle, l *Layer) {
	children := append([]Handle(nil), l.Children...)
	for _, c := range children {
		if cl, ok := e.arena.get(c); ok {
			e.freeSubtree(c, cl)
		}
	}
	// Cancel every pending transition before the layer data is wiped, so a
	// removed layer's in-flight animations still fire their completion
	// callback with cancelled=true instead of being dropped silently
	// (spec.md §5, §8 "Completion event exactly-once").
	l.cancelAllTransitions()
	e.arena.free(h)
}

// Count returns the number of live layers currently in the arena.
func (e *Engine) Count() int { return e.arena.count() }

// Update advances the scene by dt seconds and reports whether another
// redraw is needed, following the six-step contract of spec.md §4.3:
//  1. drain the queued-change log
//  2. step every in-flight transition
//  3. run the layout pass
//  4. compose world transforms/alpha/AABB
//  5. accumulate damage
//  6. report needs_redraw
func (e *Engine) Update(dt float64) bool {
	e.drainQueue()
	transitionsActive := e.stepTransitions(e.root, dt)
	e.Layout.Layout(e, e.root)
	e.compose(e.root, IdentityMatrix, 1.0)
	damaged := e.accumulateDamage(e.root)
	return transitionsActive || damaged
}

func (e *Engine) drainQueue() {
	if len(e.queue) == 0 {
		return
	}
	pending := e.queue
	e.queue = nil
	for _, fn := range pending {
		fn(e)
	}
}

// stepTransitions walks the subtree rooted at h, stepping every animatable
// property's pending transition. It returns whether any property in the
// subtree still has a transition active after the step.
func (e *Engine) stepTransitions(h Handle, dt float64) bool {
	l, ok := e.arena.get(h)
	if !ok {
		return false
	}
	active := false
	active = l.Hidden.Step(dt) || active
	active = l.Position.Step(dt) || active
	active = l.Size.Step(dt) || active
	active = l.Anchor.Step(dt) || active
	active = l.Scale.Step(dt) || active
	active = l.Rotation.Step(dt) || active
	active = l.Opacity.Step(dt) || active
	active = l.BackgroundColor.Step(dt) || active
	active = l.BorderColor.Step(dt) || active
	active = l.BorderWidth.Step(dt) || active
	active = l.CornerRadius.Step(dt) || active
	active = l.Shadow.Step(dt) || active
	active = l.ContentClip.Step(dt) || active
	active = l.BlendMode.Step(dt) || active
	active = l.Transform.Step(dt) || active

	for _, c := range l.Children {
		if e.stepTransitions(c, dt) {
			active = true
		}
	}
	return active
}

// compose recomputes WorldTransform/WorldAlpha/WorldAABB top-down, following
// phanxgames-willow's node.go updateTransform pass generalized to
// handle-addressed children and to fold in the Transform property's custom
// matrix after the layout-derived local transform.
func (e *Engine) compose(h Handle, parentWorld Matrix, parentAlpha float64) {
	l, ok := e.arena.get(h)
	if !ok {
		return
	}
	local := ComposeMatrix(
		Vec2{l.Position.Current.X - l.Anchor.Current.X*l.Size.Current.X, l.Position.Current.Y - l.Anchor.Current.Y*l.Size.Current.Y},
		l.Rotation.Current,
		l.Scale.Current,
	)
	local = Multiply(local, l.Transform.Current)
	l.WorldTransform = Multiply(parentWorld, local)
	l.WorldAlpha = parentAlpha * l.Opacity.Current
	l.WorldAABB = Rect{
		X:      l.WorldTransform.TX,
		Y:      l.WorldTransform.TY,
		Width:  l.Size.Current.X,
		Height: l.Size.Current.Y,
	}
	for _, c := range l.Children {
		e.compose(c, l.WorldTransform, l.WorldAlpha)
	}
}

// accumulateDamage unions every visible layer's draw callback's reported
// rect (transformed to world space) into the engine's pending damage, and
// reports whether anything was damaged this frame.
func (e *Engine) accumulateDamage(h Handle) bool {
	l, ok := e.arena.get(h)
	if !ok {
		return false
	}
	damaged := false
	if l.IsVisible() && l.Draw != nil {
		local := l.Draw(DrawContext{Alpha: l.WorldAlpha})
		world := Rect{
			X:      l.WorldTransform.TX + local.X,
			Y:      l.WorldTransform.TY + local.Y,
			Width:  local.Width,
			Height: local.Height,
		}
		e.damage = e.damage.Union(world)
		damaged = true
	}
	for _, c := range l.Children {
		if e.accumulateDamage(c) {
			damaged = true
		}
	}
	return damaged
}

// TakeDamage returns the accumulated damage rect since the last call and
// resets it to empty (spec.md §4.3/§4.4: the painter pulls damage once per
// frame after Update returns).
func (e *Engine) TakeDamage() Rect {
	d := e.damage
	e.damage = Rect{}
	return d
}

// HitTest returns the topmost layer under (x, y), walking children in
// reverse z-order (highest ZIndex first, reverse insertion order as a
// tiebreak) and descending depth-first, matching phanxgames-willow's
// input.go hit-test order. Hidden layers are skipped along with their
// entire subtree; a layer with PointerEvents disabled is never itself a
// hit, but its children are still tested.
func (e *Engine) HitTest(x, y float64) (Handle, bool) {
	return e.hitTest(e.root, x, y)
}

func (e *Engine) hitTest(h Handle, x, y float64) (Handle, bool) {
	l, ok := e.arena.get(h)
	if !ok || !l.IsVisible() {
		return NilHandle, false
	}

	children := make([]Handle, 0, len(l.Children))
	for i := len(l.Children) - 1; i >= 0; i-- {
		children = append(children, l.Children[i])
	}
	sort.SliceStable(children, func(i, j int) bool {
		li, _ := e.arena.get(children[i])
		lj, _ := e.arena.get(children[j])
		if li == nil || lj == nil {
			return false
		}
		return li.ZIndex > lj.ZIndex
	})
	for _, c := range children {
		if hit, ok := e.hitTest(c, x, y); ok {
			return hit, true
		}
	}

	if l.PointerEvents && l.WorldAABB.Contains(x, y) {
		return h, true
	}
	return NilHandle, false
}
