package paint

import (
	"testing"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/nongio/otto/internal/scene"
)

func TestPaintDoesNotPanicOnBasicTree(t *testing.T) {
	e := scene.NewEngine(0)
	root := e.Root()
	rootLayer, _ := e.Get(root)
	rootLayer.Size.Current = scene.Vec2{X: 200, Y: 200}

	child, _ := e.NewLayer("card")
	_ = e.AppendChild(root, child)
	cl, _ := e.Get(child)
	cl.Size.Current = scene.Vec2{X: 100, Y: 60}
	cl.BackgroundColor.Current = scene.Color{R: 1, G: 0, B: 0, A: 1}
	cl.CornerRadius.Current = scene.CornerRadius{TL: 8, TR: 8, BR: 8, BL: 8}
	cl.ContentClip.Current = true

	e.Update(0)

	target := ebiten.NewImage(200, 200)
	p := NewPainter()
	p.Paint(e, target)
}

func TestCacheableLayerIsReusedAcrossPaints(t *testing.T) {
	e := scene.NewEngine(0)
	root := e.Root()
	rootLayer, _ := e.Get(root)
	rootLayer.Size.Current = scene.Vec2{X: 100, Y: 100}
	rootLayer.SetCacheable(true)

	e.Update(0)
	target := ebiten.NewImage(100, 100)
	p := NewPainter()
	p.Paint(e, target)
	if _, ok := p.cache[root]; !ok {
		t.Fatalf("expected root's raster to be cached after first paint")
	}
	cached := p.cache[root]
	p.Paint(e, target)
	if p.cache[root] != cached {
		t.Fatalf("expected the same cached image to be reused on the second paint")
	}

	p.Invalidate(root)
	if _, ok := p.cache[root]; ok {
		t.Fatalf("expected Invalidate to drop the cached raster")
	}
}

func TestCacheableLayerInvalidatesAutomaticallyOnMutation(t *testing.T) {
	e := scene.NewEngine(0)
	root := e.Root()
	rootLayer, _ := e.Get(root)
	rootLayer.Size.Current = scene.Vec2{X: 100, Y: 100}
	rootLayer.SetCacheable(true)

	e.Update(0)
	target := ebiten.NewImage(100, 100)
	p := NewPainter()
	p.Paint(e, target)
	first := p.cache[root]

	rootLayer.BackgroundColor.Set(scene.Color{R: 1, G: 0, B: 0, A: 1}, nil)
	p.Paint(e, target)
	second, ok := p.cache[root]
	if !ok {
		t.Fatalf("expected root to still be cached after repaint")
	}
	if second == first {
		t.Fatalf("expected a background color mutation to invalidate the cache without an explicit Invalidate call")
	}
}
