package style

import (
	"testing"

	"github.com/nongio/otto/internal/scene"
	"github.com/nongio/otto/protocol/wire"
)

func newManager() (*Manager, *scene.Engine) {
	e := scene.NewEngine(0)
	d := wire.NewDispatcher()
	return NewManager(e, d), e
}

func TestGetSurfaceStyleLazilyCreatesLayer(t *testing.T) {
	m, e := newManager()
	st, err := m.GetSurfaceStyle(SurfaceID(1))
	if err != nil {
		t.Fatalf("GetSurfaceStyle: %v", err)
	}
	if _, ok := e.Get(st.scLayer.Layer); !ok {
		t.Fatalf("expected a live layer to back the new ScLayer")
	}
}

func TestSecondGetSurfaceStyleReusesSameLayer(t *testing.T) {
	m, _ := newManager()
	a, _ := m.GetSurfaceStyle(SurfaceID(1))
	b, _ := m.GetSurfaceStyle(SurfaceID(1))
	if a.scLayer.Layer != b.scLayer.Layer {
		t.Fatalf("expected both ScLayers to bind the same underlying Layer")
	}
}

func TestImmediateSetterAppliesWithoutTransition(t *testing.T) {
	m, e := newManager()
	st, _ := m.GetSurfaceStyle(SurfaceID(1))
	_ = st.SetOpacity(0.5, nil)

	l, _ := e.Get(st.scLayer.Layer)
	if l.Opacity.Current != 0.5 {
		t.Fatalf("expected immediate opacity = 0.5, got %v", l.Opacity.Current)
	}
	if l.Opacity.Active() {
		t.Fatalf("expected no transition for an immediate setter")
	}
}

// Scenario 1 (spec.md §8): opacity 0 -> 1 over 0.5s ease; check midpoint and finish.
func TestOpacityTransitionScenario(t *testing.T) {
	m, e := newManager()
	st, _ := m.GetSurfaceStyle(SurfaceID(1))
	_ = st.SetOpacity(0.0, nil)

	txn := m.CreateTransaction(nil)
	_ = txn.SetDuration(0.5)
	tf := NewBezierTimingFunction(0, 0, 1, 1) // linear
	_ = txn.SetTimingFunction(tf)
	_ = st.SetOpacity(1.0, txn)
	if err := txn.Commit(e); err != nil {
		t.Fatalf("commit: %v", err)
	}

	e.Update(0.25)
	l, _ := e.Get(st.scLayer.Layer)
	if l.Opacity.Current < 0.4 || l.Opacity.Current > 0.6 {
		t.Fatalf("expected opacity ~0.5 at t=0.25/0.5, got %v", l.Opacity.Current)
	}

	e.Update(0.25)
	if l.Opacity.Current != 1.0 {
		t.Fatalf("expected opacity=1.0 after full duration, got %v", l.Opacity.Current)
	}
	if l.Opacity.Active() {
		t.Fatalf("expected the transition to have finished")
	}
}

func TestContentClipAndZOrderAreImmediate(t *testing.T) {
	m, e := newManager()
	st, _ := m.GetSurfaceStyle(SurfaceID(1))
	_ = st.SetContentClip(true)
	_ = st.SetZOrder(AboveSurface)

	l, _ := e.Get(st.scLayer.Layer)
	if !l.ContentClip.Current {
		t.Fatalf("expected content clip to be set immediately")
	}
	if st.scLayer.Z != AboveSurface {
		t.Fatalf("expected z-order to be set immediately")
	}
}

func TestDestroyedStyleRejectsSetters(t *testing.T) {
	m, _ := newManager()
	st, _ := m.GetSurfaceStyle(SurfaceID(1))
	st.Destroy()
	if err := st.SetOpacity(1.0, nil); err == nil {
		t.Fatalf("expected an error setting a property on a destroyed style object")
	}
}

func TestManagerDestroyMarksDestroyed(t *testing.T) {
	m, _ := newManager()
	if m.Destroyed() {
		t.Fatalf("expected a fresh manager to not be destroyed")
	}
	m.Destroy()
	if !m.Destroyed() {
		t.Fatalf("expected Destroy to mark the manager destroyed")
	}
}

// Register must stamp the allocated id back onto the returned object so
// Destroy/Unregister-style bookkeeping downstream (protocol/wire) has a
// real key to operate on.
func TestGetSurfaceStyleAssignsRegisteredID(t *testing.T) {
	m, _ := newManager()
	st, _ := m.GetSurfaceStyle(SurfaceID(1))
	if st.ID() == 0 {
		t.Fatalf("expected GetSurfaceStyle's Style to carry a nonzero registered id")
	}
}
