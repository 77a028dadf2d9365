package timing

import "testing"

func TestCubicBezierEndpoints(t *testing.T) {
	c := EaseInOut
	if v, fin := c.Evaluate(0, 1); v != 0 || fin {
		t.Fatalf("t=0: got (%v,%v), want (0,false)", v, fin)
	}
	v, fin := c.Evaluate(1, 1)
	if !fin {
		t.Fatalf("t=d: expected finished")
	}
	if v < 0.999 || v > 1.001 {
		t.Fatalf("t=d: expected progress ~1, got %v", v)
	}
}

func TestCubicBezierZeroDurationShortCircuits(t *testing.T) {
	v, fin := EaseLinear.Evaluate(0, 0)
	if v != 1 || !fin {
		t.Fatalf("zero duration should short-circuit to (1,true), got (%v,%v)", v, fin)
	}
}

func TestCubicBezierMonotone(t *testing.T) {
	c := EaseInOut
	prev := -1.0
	for i := 0; i <= 20; i++ {
		frac := float64(i) / 20
		v, _ := c.Evaluate(frac, 1)
		if v < prev-1e-9 {
			t.Fatalf("progress not monotone at frac=%v: %v < %v", frac, v, prev)
		}
		prev = v
	}
}

func TestStepsJumpEnd(t *testing.T) {
	s := Steps{N: 4}
	v, _ := s.Evaluate(0, 1)
	if v != 0 {
		t.Fatalf("jump-end at t=0: want 0, got %v", v)
	}
	v, _ = s.Evaluate(0.26, 1)
	if v != 0.25 {
		t.Fatalf("want 0.25 at 0.26, got %v", v)
	}
}

func TestStepsJumpStart(t *testing.T) {
	s := Steps{N: 4, Start: true}
	v, _ := s.Evaluate(0, 1)
	if v != 0.25 {
		t.Fatalf("jump-start at t=0: want 0.25, got %v", v)
	}
}
