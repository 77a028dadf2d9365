package dock

import "testing"

func TestMagnifyPeaksAtHoveredTile(t *testing.T) {
	r := NewRouter(DefaultConfig())
	tiles := []Tile{{AppID: "a", CenterX: 0}, {AppID: "b", CenterX: 64}, {AppID: "c", CenterX: 128}}
	scales := r.Magnify(64, true, tiles)

	if scales[1] <= scales[0] || scales[1] <= scales[2] {
		t.Fatalf("expected the hovered tile to have the largest scale, got %v", scales)
	}
	if scales[1] < r.cfg.MaxMagnification-0.01 {
		t.Fatalf("expected the hovered tile to be near max magnification, got %v", scales[1])
	}
}

// Scenario 5 (spec.md §8): dragging suspends magnification even while
// hovering.
func TestMagnifySuspendedWhileDragging(t *testing.T) {
	r := NewRouter(DefaultConfig())
	r.BeginDrag()
	tiles := []Tile{{AppID: "a", CenterX: 0}, {AppID: "b", CenterX: 64}}
	scales := r.Magnify(0, true, tiles)
	for i, s := range scales {
		if s != 1.0 {
			t.Fatalf("expected no magnification while dragging, tile %d got %v", i, s)
		}
	}
	r.EndDrag()
	if r.Dragging() {
		t.Fatalf("expected dragging to end")
	}
}

func TestHandleClickLeftFocusesExistingWindow(t *testing.T) {
	r := NewRouter(DefaultConfig())
	focused, launched := false, false
	r.HandleClick(ButtonLeft, nil, true, 0, 0,
		func() { launched = true }, func() { focused = true })
	if !focused || launched {
		t.Fatalf("expected focus (not launch) for an app with an existing window")
	}
}

func TestHandleClickLeftLaunchesWithoutWindow(t *testing.T) {
	r := NewRouter(DefaultConfig())
	focused, launched := false, false
	r.HandleClick(ButtonLeft, nil, false, 0, 0,
		func() { launched = true }, func() { focused = true })
	if !launched || focused {
		t.Fatalf("expected launch (not focus) for an app with no existing window")
	}
}

func TestHandleClickRightWithResourceEmitsMenuAndSuppressesFocus(t *testing.T) {
	m := newManager()
	called := false
	item := m.GetDockItem("org.example.App", &DockItemHandlers{
		OnMenuRequested: func(x, y int) { called = true },
	})

	r := NewRouter(DefaultConfig())
	focused := false
	r.HandleClick(ButtonRight, item, true, 5, 6, nil, func() { focused = true })
	if !called {
		t.Fatalf("expected menu_requested to fire")
	}
	if focused {
		t.Fatalf("expected focus to be suppressed for a right-click with a live resource")
	}
}

func TestHandleClickRightWithoutResourceFollowsFallback(t *testing.T) {
	r := NewRouter(Config{RightClickFallback: RightClickNoop, MaxMagnification: 1.6, FalloffWidth: 64})
	focused := false
	r.HandleClick(ButtonRight, nil, true, 0, 0, nil, func() { focused = true })
	if focused {
		t.Fatalf("expected RightClickNoop to not fall back to focus")
	}

	r2 := NewRouter(Config{RightClickFallback: RightClickFallbackToLeftClick, MaxMagnification: 1.6, FalloffWidth: 64})
	focused2 := false
	r2.HandleClick(ButtonRight, nil, true, 0, 0, nil, func() { focused2 = true })
	if !focused2 {
		t.Fatalf("expected RightClickFallbackToLeftClick to fall back to focus")
	}
}
