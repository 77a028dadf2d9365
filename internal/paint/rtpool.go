package paint

import (
	"image"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
)

// rtPool manages reusable offscreen ebiten.Images keyed by power-of-two
// dimensions, so cached/clipped layer rasterization doesn't allocate once
// the working set stabilizes — phanxgames-willow's rendertarget.go
// renderTexturePool, unchanged in shape.
type rtPool struct {
	buckets map[uint64][]*ebiten.Image
}

func poolKey(w, h int) uint64 { return uint64(w)<<32 | uint64(h) }

func nextPowerOfTwo(n int) int {
	if n <= 1 {
		return 1
	}
	return 1 << int(math.Ceil(math.Log2(float64(n))))
}

// Acquire returns a cleared offscreen image with at least (w, h) pixels.
func (p *rtPool) Acquire(w, h int) *ebiten.Image {
	pw, ph := nextPowerOfTwo(w), nextPowerOfTwo(h)
	key := poolKey(pw, ph)
	if p.buckets != nil {
		if stack := p.buckets[key]; len(stack) > 0 {
			img := stack[len(stack)-1]
			p.buckets[key] = stack[:len(stack)-1]
			img.Clear()
			return img
		}
	}
	return ebiten.NewImageWithOptions(image.Rect(0, 0, pw, ph), &ebiten.NewImageOptions{Unmanaged: true})
}

// Release returns img to the pool for reuse by a future Acquire.
func (p *rtPool) Release(img *ebiten.Image) {
	if img == nil {
		return
	}
	b := img.Bounds()
	key := poolKey(b.Dx(), b.Dy())
	if p.buckets == nil {
		p.buckets = make(map[uint64][]*ebiten.Image)
	}
	p.buckets[key] = append(p.buckets[key], img)
}
