package wire

import "testing"

type fakeResource struct {
	Resource
}

func TestRegisterStampsIDOntoResource(t *testing.T) {
	d := NewDispatcher()
	item := &fakeResource{}

	id := d.Register(item)

	if item.ID() != id {
		t.Fatalf("item.ID() = %v, want the id Register returned (%v)", item.ID(), id)
	}
}

func TestUnregisterRemovesTrackedEntry(t *testing.T) {
	d := NewDispatcher()
	item := &fakeResource{}
	id := d.Register(item)

	if _, ok := d.Lookup(id); !ok {
		t.Fatalf("expected Lookup to find the registered object")
	}

	d.Unregister(item.ID())

	if _, ok := d.Lookup(id); ok {
		t.Fatalf("expected Unregister(item.ID()) to remove the tracked entry")
	}
}
