package main

import (
	"os"
	"testing"
)

func TestResolveBackendExplicitFlagWins(t *testing.T) {
	b, err := resolveBackend(&flags{ttyUdev: true}, "winit")
	if err != nil {
		t.Fatalf("resolveBackend: %v", err)
	}
	if b != BackendTTYUdev {
		t.Fatalf("expected explicit flag to win, got %v", b)
	}
}

func TestResolveBackendRejectsAmbiguousFlags(t *testing.T) {
	_, err := resolveBackend(&flags{winit: true, x11: true}, "")
	if err != ErrAmbiguousBackend {
		t.Fatalf("expected ErrAmbiguousBackend, got %v", err)
	}
}

func TestResolveBackendUsesConfigDefault(t *testing.T) {
	b, err := resolveBackend(&flags{}, "x11")
	if err != nil {
		t.Fatalf("resolveBackend: %v", err)
	}
	if b != BackendX11 {
		t.Fatalf("expected config default x11, got %v", b)
	}
}

func TestResolveBackendAutoSelectsWinitWhenDisplayPresent(t *testing.T) {
	old := os.Getenv("WAYLAND_DISPLAY")
	os.Setenv("WAYLAND_DISPLAY", "wayland-0")
	defer os.Setenv("WAYLAND_DISPLAY", old)

	b, err := resolveBackend(&flags{}, "")
	if err != nil {
		t.Fatalf("resolveBackend: %v", err)
	}
	if b != BackendWinit {
		t.Fatalf("expected auto-selected winit, got %v", b)
	}
}

func TestResolveBackendAutoSelectsTTYUdevWithoutDisplay(t *testing.T) {
	oldWayland, oldX := os.Getenv("WAYLAND_DISPLAY"), os.Getenv("DISPLAY")
	os.Unsetenv("WAYLAND_DISPLAY")
	os.Unsetenv("DISPLAY")
	defer func() {
		os.Setenv("WAYLAND_DISPLAY", oldWayland)
		os.Setenv("DISPLAY", oldX)
	}()

	b, err := resolveBackend(&flags{}, "")
	if err != nil {
		t.Fatalf("resolveBackend: %v", err)
	}
	if b != BackendTTYUdev {
		t.Fatalf("expected auto-selected tty-udev, got %v", b)
	}
}
