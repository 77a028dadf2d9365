// Package wire supplies the shared object-lifecycle scaffolding protocol/style
// and protocol/dock build their interfaces on top of. It models the shape of
// a Wayland protocol binding — NewXxx(handlers) constructors, a per-interface
// Handlers struct of event callbacks, Destroy() lifecycle — grounded on
// friedelschoen-ctxmenu's wayland.go (github.com/rajveermalviya/go-wayland
// client-proxy style), but inverted for the SERVER role spec.md §1 scopes
// otto into: what a go-wayland *client* binding calls a "request" (a method
// call that serializes a message to the server) is, from otto's side, simply
// a direct Go method call the compositor's window-manager logic makes; what
// that binding calls an "event" (a deserialized server→client message
// delivered to a Handlers callback) is, symmetrically, otto invoking a
// Handlers callback to notify whichever client-facing transport is wired in.
// Actual socket transport/wire (de)serialization is out of scope (spec.md
// §1 Non-goals) — ObjectID exists so a future transport layer has something
// stable to serialize against, not because this package speaks the wire
// protocol itself.
package wire

import (
	"fmt"
	"sync/atomic"
)

// ObjectID is a protocol object identifier, analogous to a Wayland wl_object
// id. Allocated monotonically per Dispatcher; never reused.
type ObjectID uint32

// Resource is embedded by every protocol object (style.Manager, dock.DockItem,
// ...) to provide the shared id/destroyed bookkeeping the teacher's
// proto.NewXxx(handlers) constructors give each binding for free.
type Resource struct {
	id        ObjectID
	destroyed bool
}

// ID returns the object's protocol identifier.
func (r *Resource) ID() ObjectID { return r.id }

// setID stores the id a Dispatcher allocated for this resource. Unexported:
// only Dispatcher.Register, via the identifiable interface below, is meant
// to call it.
func (r *Resource) setID(id ObjectID) { r.id = id }

// Destroyed reports whether Destroy has already been called.
func (r *Resource) Destroyed() bool { return r.destroyed }

// Destroy marks the resource destroyed. Protocol objects embedding Resource
// should call this from their own Destroy() method and guard any
// request/event handling with !Destroyed() afterward (mirrors
// proto.Xxx.Destroy() semantics — a destroyed object's proxy is dead and
// further wayland.Event delivery would be a protocol error).
func (r *Resource) Destroy() { r.destroyed = true }

// Dispatcher allocates ObjectIDs and tracks live resources, standing in for
// the go-wayland wayland.Conn's object table (spec.md §1: socket transport
// itself is out of scope, but the id-allocation discipline it implies is
// part of the protocol's observable contract — e.g. "ids are never reused").
type Dispatcher struct {
	next    uint32
	objects map[ObjectID]any
}

// NewDispatcher constructs an empty Dispatcher. IDs start at 1; 0 is
// reserved (wl_display's null object id in the real protocol).
func NewDispatcher() *Dispatcher {
	return &Dispatcher{next: 1, objects: make(map[ObjectID]any)}
}

// identifiable is satisfied by any *T that embeds Resource by value, since
// Go promotes Resource's pointer-receiver methods to *T automatically.
// Register uses it to stamp the allocated id back onto obj; every protocol
// object (style.Style, style.Transaction, dock.DockItem, ...) is always
// registered by pointer, so the assertion below never fails in practice.
type identifiable interface {
	setID(ObjectID)
}

// Register allocates a fresh ObjectID for obj, stores it back onto obj's
// embedded Resource so obj.ID() reports it, and tracks obj under that id.
// Call once per NewXxx(...) constructor.
func (d *Dispatcher) Register(obj any) ObjectID {
	id := ObjectID(atomic.AddUint32(&d.next, 1) - 1)
	if r, ok := obj.(identifiable); ok {
		r.setID(id)
	}
	d.objects[id] = obj
	return id
}

// Lookup resolves an ObjectID back to the object Register returned it for.
func (d *Dispatcher) Lookup(id ObjectID) (any, bool) {
	obj, ok := d.objects[id]
	return obj, ok
}

// Unregister removes id from the table (called alongside the object's own
// Destroy()).
func (d *Dispatcher) Unregister(id ObjectID) {
	delete(d.objects, id)
}

// ErrDestroyed is returned by request methods called on an already-destroyed
// resource, mirroring the wayland protocol error a real client would get for
// using a destroyed proxy.
type ErrDestroyed struct{ Interface string }

func (e ErrDestroyed) Error() string {
	return fmt.Sprintf("wire: %s: object already destroyed", e.Interface)
}
