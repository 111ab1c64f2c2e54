package backend

import (
	"context"
	"fmt"
	"io"
)

// Handle is a constructed connection, open directory or client for one
// backend kind. Capabilities bound to the same kind share one Handle.
type Handle interface {
	io.Closer
}

// HandleBuilder constructs the handle of a backend kind
type HandleBuilder func(ctx context.Context) (Handle, error)

// Factory binds a capability to a handle. Returning false leaves the
// capability slot empty.
type Factory func(h Handle) (any, bool)

type slotKey struct {
	op   Operation
	kind Kind
}

// Registry indexes handle builders by kind and capability factories by
// (operation, kind). Implementations that are not compiled in are simply
// absent from it.
type Registry struct {
	handles   map[Kind]HandleBuilder
	factories map[slotKey]Factory
}

// NewRegistry creates an empty registry
func NewRegistry() *Registry {
	return &Registry{
		handles:   make(map[Kind]HandleBuilder),
		factories: make(map[slotKey]Factory),
	}
}

// RegisterHandle sets the handle builder of kind
func (r *Registry) RegisterHandle(kind Kind, build HandleBuilder) {
	r.handles[kind] = build
}

// Register sets the factory serving op with kind. It panics when kind
// cannot serve op.
func (r *Registry) Register(op Operation, kind Kind, factory Factory) {
	if !Supports(op, kind) {
		panic(fmt.Sprintf("backend: %s cannot serve %s", kind, op))
	}
	r.factories[slotKey{op, kind}] = factory
}

// Lookup returns the factory serving op with kind, if both the factory
// and the handle builder of kind are registered
func (r *Registry) Lookup(op Operation, kind Kind) (Factory, bool) {
	if !r.HasHandle(kind) {
		return nil, false
	}
	f, ok := r.factories[slotKey{op, kind}]
	return f, ok
}

// HasHandle reports whether a handle builder is registered for kind
func (r *Registry) HasHandle(kind Kind) bool {
	_, ok := r.handles[kind]
	return ok
}

// Kinds returns the kinds with a registered handle builder
func (r *Registry) Kinds() []Kind {
	var kinds []Kind
	for _, k := range Kinds() {
		if r.HasHandle(k) {
			kinds = append(kinds, k)
		}
	}
	return kinds
}

// As converts a handle to the concrete type a factory expects
func As[T Handle](h Handle) (T, bool) {
	t, ok := h.(T)
	return t, ok
}

// Bind returns a factory converting the handle to T before calling fn.
// A handle of another type leaves the slot empty.
func Bind[T Handle, C any](fn func(T) (C, bool)) Factory {
	return func(h Handle) (any, bool) {
		t, ok := As[T](h)
		if !ok {
			return nil, false
		}
		return fn(t)
	}
}
