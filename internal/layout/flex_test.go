package layout

import (
	"testing"

	"github.com/nongio/otto/internal/scene"
	"github.com/nongio/otto/internal/timing"
)

func buildRow(t *testing.T) (*scene.Engine, scene.Handle) {
	t.Helper()
	e := scene.NewEngine(0)
	root := e.Root()
	rootLayer, _ := e.Get(root)
	rootLayer.Size.Current = scene.Vec2{X: 300, Y: 100}
	rootLayer.Style.Direction = scene.FlexRow
	rootLayer.Style.Gap = 10

	a, _ := e.NewLayer("a")
	b, _ := e.NewLayer("b")
	_ = e.AppendChild(root, a)
	_ = e.AppendChild(root, b)

	al, _ := e.Get(a)
	al.Size.Current = scene.Vec2{X: 50, Y: 20}
	al.Style.Grow = 1
	bl, _ := e.Get(b)
	bl.Size.Current = scene.Vec2{X: 50, Y: 20}
	bl.Style.Grow = 1

	return e, root
}

func TestFlexDistributesGrowEvenly(t *testing.T) {
	e, root := buildRow(t)
	Flex{}.Layout(e, root)

	a, _ := e.Get(mustChild(t, e, root, 0))
	b, _ := e.Get(mustChild(t, e, root, 1))

	// content width 300, gap 10, basis 50+50=100 => leftover 190, split evenly
	wantEach := 50.0 + 190.0/2
	if diff := a.Size.Current.X - wantEach; diff > 1e-6 || diff < -1e-6 {
		t.Fatalf("child a width = %v, want %v", a.Size.Current.X, wantEach)
	}
	if b.Position.Current.X <= a.Position.Current.X {
		t.Fatalf("expected b to be positioned after a on the main axis")
	}
}

func TestFlexAlignItemsCenterOnCrossAxis(t *testing.T) {
	e, root := buildRow(t)
	rootLayer, _ := e.Get(root)
	rootLayer.Style.AlignItems = scene.AlignCenter

	a, _ := e.Get(mustChild(t, e, root, 0))
	a.Size.Current.Y = 20
	Flex{}.Layout(e, root)

	wantY := (100.0 - 20.0) / 2
	if diff := a.Position.Current.Y - wantY; diff > 1e-6 || diff < -1e-6 {
		t.Fatalf("child a Y = %v, want %v", a.Position.Current.Y, wantY)
	}
}

// TestFlexPreservesInFlightPositionTransition guards against layout writing
// Position/Size through Property.Set, which would cancel any transition
// already animating those properties every single frame layout runs.
func TestFlexPreservesInFlightPositionTransition(t *testing.T) {
	e, root := buildRow(t)
	a := mustChild(t, e, root, 0)
	al, _ := e.Get(a)

	cancelled := false
	al.Position.Set(scene.Vec2{X: 5, Y: 5}, &scene.TransitionSpec{
		Duration:   1,
		Timing:     timing.EaseLinear,
		OnComplete: func(c bool) { cancelled = c },
	})
	if !al.Position.Active() {
		t.Fatalf("expected Position transition to be active before layout")
	}

	Flex{}.Layout(e, root)

	if cancelled {
		t.Fatalf("layout pass cancelled an in-flight Position transition")
	}
	if !al.Position.Active() {
		t.Fatalf("expected Position transition to survive a layout pass")
	}
}

func mustChild(t *testing.T, e *scene.Engine, parent scene.Handle, idx int) scene.Handle {
	t.Helper()
	l, ok := e.Get(parent)
	if !ok || idx >= len(l.Children) {
		t.Fatalf("no child at index %d", idx)
	}
	return l.Children[idx]
}
