// Package layout implements the flexbox-style layout pass scene.Layouter
// expects (spec.md §3/§4.3): a single-axis flex container that distributes
// grow/shrink space among children and aligns them on the cross axis. The
// single/main/cross-axis accounting below is modeled on gioui.org/layout's
// Flex/FlexChild design (not imported — see SPEC_FULL.md Domain Stack and
// DESIGN.md for why pulling in all of gioui would drag in an unrelated GUI
// toolkit), adapted to operate over scene.Handle/scene.Layer instead of
// gioui's immediate-mode ops list.
package layout

import "github.com/nongio/otto/internal/scene"

// Flex is a scene.Layouter that resolves each container layer's children
// along its configured LayoutStyle.Direction, recursing into grandchildren
// bottom-up so nested flex containers see their own children's resolved
// sizes before their own pass runs.
type Flex struct{}

// Layout implements scene.Layouter.
func (Flex) Layout(e *scene.Engine, root scene.Handle) {
	layoutSubtree(e, root)
}

func layoutSubtree(e *scene.Engine, h scene.Handle) {
	l, ok := e.Get(h)
	if !ok {
		return
	}
	for _, c := range l.Children {
		layoutSubtree(e, c)
	}
	if l.Style.Display == scene.DisplayNone || len(l.Children) == 0 {
		return
	}
	layoutContainer(e, l)
}

type childMetrics struct {
	handle scene.Handle
	layer  *scene.Layer
	basis  float64
	grow   float64
	shrink float64
}

// layoutContainer distributes l's content box among its visible children
// along l.Style.Direction, following the classic flex algorithm: start from
// each child's basis (explicit Basis, else its current main-axis Size),
// compute the leftover space, then distribute it proportionally via Grow
// (leftover > 0) or Shrink (leftover < 0).
func layoutContainer(e *scene.Engine, l *scene.Layer) {
	mainAxisX := l.Style.Direction == scene.FlexRow
	contentW := l.Size.Current.X - l.Style.Padding.Left - l.Style.Padding.Right
	contentH := l.Size.Current.Y - l.Style.Padding.Top - l.Style.Padding.Bottom
	mainSize := contentW
	if !mainAxisX {
		mainSize = contentH
	}

	var metrics []childMetrics
	for _, c := range l.Children {
		cl, ok := e.Get(c)
		if !ok || cl.Style.Display == scene.DisplayNone {
			continue
		}
		basis := cl.Size.Current.X
		if !mainAxisX {
			basis = cl.Size.Current.Y
		}
		if cl.Style.Basis != nil {
			basis = *cl.Style.Basis
		}
		metrics = append(metrics, childMetrics{c, cl, basis, cl.Style.Grow, cl.Style.Shrink})
	}
	if len(metrics) == 0 {
		return
	}

	gap := l.Style.Gap * float64(len(metrics)-1)
	usedBasis := gap
	totalGrow, totalShrink := 0.0, 0.0
	for _, m := range metrics {
		usedBasis += m.basis
		totalGrow += m.grow
		totalShrink += m.shrink
	}
	leftover := mainSize - usedBasis

	resolved := make([]float64, len(metrics))
	for i, m := range metrics {
		size := m.basis
		switch {
		case leftover > 0 && totalGrow > 0:
			size += leftover * (m.grow / totalGrow)
		case leftover < 0 && totalShrink > 0:
			size += leftover * (m.shrink / totalShrink)
		}
		if size < 0 {
			size = 0
		}
		resolved[i] = size
	}

	cursor := l.Style.Padding.Left
	if !mainAxisX {
		cursor = l.Style.Padding.Top
	}
	for i, m := range metrics {
		crossOffset := crossAxisOffset(l, m.layer, mainAxisX, contentW, contentH)
		var pos scene.Vec2
		var size scene.Vec2
		if mainAxisX {
			pos = scene.Vec2{X: cursor, Y: crossOffset}
			size = scene.Vec2{X: resolved[i], Y: m.layer.Size.Current.Y}
			if l.Style.AlignItems == scene.AlignStretch {
				size.Y = contentH
			}
		} else {
			pos = scene.Vec2{X: crossOffset, Y: cursor}
			size = scene.Vec2{X: m.layer.Size.Current.X, Y: resolved[i]}
			if l.Style.AlignItems == scene.AlignStretch {
				size.X = contentW
			}
		}
		// SetLayoutComputed, not Set: a plain Set(pos, nil) would cancel any
		// transition a caller already started on Position/Size, firing its
		// completion callback with cancelled=true every single frame layout
		// runs (spec.md §4.3 step 3 — layout must not disturb in-flight
		// transitions on the properties it writes).
		m.layer.Position.SetLayoutComputed(pos)
		m.layer.Size.SetLayoutComputed(size)
		cursor += resolved[i] + l.Style.Gap
	}
}

func crossAxisOffset(container, child *scene.Layer, mainAxisX bool, contentW, contentH float64) float64 {
	crossSize := contentH
	childCross := child.Size.Current.Y
	pad := container.Style.Padding.Top
	if !mainAxisX {
		crossSize = contentW
		childCross = child.Size.Current.X
		pad = container.Style.Padding.Left
	}
	switch container.Style.AlignItems {
	case scene.AlignCenter:
		return pad + (crossSize-childCross)/2
	case scene.AlignEnd:
		return pad + crossSize - childCross
	default: // AlignStart, AlignStretch
		return pad
	}
}
