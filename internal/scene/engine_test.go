package scene

import (
	"testing"

	"github.com/nongio/otto/internal/timing"
)

func TestAppendChildRejectsCycle(t *testing.T) {
	e := NewEngine(0)
	a, _ := e.NewLayer("a")
	b, _ := e.NewLayer("b")
	if err := e.AppendChild(e.Root(), a); err != nil {
		t.Fatalf("append a under root: %v", err)
	}
	if err := e.AppendChild(a, b); err != nil {
		t.Fatalf("append b under a: %v", err)
	}
	if err := e.AppendChild(b, a); err != ErrCycle {
		t.Fatalf("expected ErrCycle, got %v", err)
	}
}

func TestAppendChildReparentsSingleParent(t *testing.T) {
	e := NewEngine(0)
	p1, _ := e.NewLayer("p1")
	p2, _ := e.NewLayer("p2")
	child, _ := e.NewLayer("child")
	_ = e.AppendChild(e.Root(), p1)
	_ = e.AppendChild(e.Root(), p2)
	_ = e.AppendChild(p1, child)

	l1, _ := e.Get(p1)
	if len(l1.Children) != 1 {
		t.Fatalf("expected 1 child under p1, got %d", len(l1.Children))
	}

	if err := e.AppendChild(p2, child); err != nil {
		t.Fatalf("reparent: %v", err)
	}
	l1, _ = e.Get(p1)
	l2, _ := e.Get(p2)
	if len(l1.Children) != 0 {
		t.Fatalf("expected p1 to have 0 children after reparent, got %d", len(l1.Children))
	}
	if len(l2.Children) != 1 {
		t.Fatalf("expected p2 to have 1 child after reparent, got %d", len(l2.Children))
	}
	cl, _ := e.Get(child)
	if cl.Parent != p2 {
		t.Fatalf("expected child's parent to be p2")
	}
}

func TestRemoveFreesSubtreeAndStalesHandles(t *testing.T) {
	e := NewEngine(0)
	parent, _ := e.NewLayer("parent")
	child, _ := e.NewLayer("child")
	_ = e.AppendChild(e.Root(), parent)
	_ = e.AppendChild(parent, child)

	if err := e.Remove(parent); err != nil {
		t.Fatalf("remove: %v", err)
	}
	if _, ok := e.Get(parent); ok {
		t.Fatalf("expected parent handle to be stale after removal")
	}
	if _, ok := e.Get(child); ok {
		t.Fatalf("expected child handle to be stale after subtree removal")
	}
}

func TestRemoveCancelsPendingTransitions(t *testing.T) {
	e := NewEngine(0)
	l, _ := e.NewLayer("l")
	_ = e.AppendChild(e.Root(), l)
	layer, _ := e.Get(l)

	fired := false
	cancelled := false
	layer.Opacity.Set(0, &TransitionSpec{
		Duration: 1,
		Timing:   timing.EaseLinear,
		OnComplete: func(c bool) {
			fired = true
			cancelled = c
		},
	})

	if err := e.Remove(l); err != nil {
		t.Fatalf("remove: %v", err)
	}
	if !fired {
		t.Fatalf("expected completion callback to fire when the layer was removed")
	}
	if !cancelled {
		t.Fatalf("expected completion callback to fire with cancelled=true")
	}
}

func TestRemoveRootRejected(t *testing.T) {
	e := NewEngine(0)
	if err := e.Remove(e.Root()); err == nil {
		t.Fatalf("expected error removing root")
	}
}

func TestHandleReuseBumpsGeneration(t *testing.T) {
	e := NewEngine(0)
	a, _ := e.NewLayer("a")
	_ = e.Remove(a)
	b, _ := e.NewLayer("b")
	if a.index == b.index && a.generation == b.generation {
		t.Fatalf("expected reused slot to carry a bumped generation")
	}
	if _, ok := e.Get(a); ok {
		t.Fatalf("stale handle a should not resolve after slot reuse")
	}
}

func TestEnqueueDrainsBeforeTransitionStep(t *testing.T) {
	e := NewEngine(0)
	var created Handle
	e.Enqueue(func(e *Engine) {
		h, _ := e.NewLayer("queued")
		_ = e.AppendChild(e.Root(), h)
		created = h
	})
	e.Update(0.016)
	if _, ok := e.Get(created); !ok {
		t.Fatalf("expected queued change to have been applied during Update")
	}
}

func TestHitTestPrefersHigherZIndex(t *testing.T) {
	e := NewEngine(0)
	back, _ := e.NewLayer("back")
	front, _ := e.NewLayer("front")
	_ = e.AppendChild(e.Root(), back)
	_ = e.AppendChild(e.Root(), front)

	bl, _ := e.Get(back)
	bl.Size.Current = Vec2{100, 100}
	bl.ZIndex = 0
	fl, _ := e.Get(front)
	fl.Size.Current = Vec2{100, 100}
	fl.ZIndex = 1

	e.Update(0)

	hit, ok := e.HitTest(50, 50)
	if !ok || hit != front {
		t.Fatalf("expected hit-test to prefer the higher z-index layer")
	}
}

func TestHitTestSkipsHiddenLayers(t *testing.T) {
	e := NewEngine(0)
	l, _ := e.NewLayer("l")
	_ = e.AppendChild(e.Root(), l)
	layer, _ := e.Get(l)
	layer.Size.Current = Vec2{100, 100}
	layer.Hidden.Set(true, nil)

	e.Update(0)

	if _, ok := e.HitTest(50, 50); ok {
		t.Fatalf("expected hidden layer to be excluded from hit-testing")
	}
}

func TestUpdateReportsRedrawWhileTransitionActive(t *testing.T) {
	e := NewEngine(0)
	l, _ := e.NewLayer("l")
	_ = e.AppendChild(e.Root(), l)
	layer, _ := e.Get(l)
	layer.Opacity.Set(0, &TransitionSpec{Duration: 1, Timing: timing.EaseLinear})

	redraw := e.Update(0.1)
	if !redraw {
		t.Fatalf("expected needs_redraw=true while a transition is in flight")
	}
}
