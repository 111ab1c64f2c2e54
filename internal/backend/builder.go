package backend

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"
)

// AccountConfig tells the builder which kind, if any, serves each
// operation for the active account
type AccountConfig interface {
	AccountName() string
	BackendKind(op Operation) (Kind, bool)
}

// Registration collects the operations a command needs
type Registration struct {
	account  AccountConfig
	requests []request
}

type request struct {
	op       Operation
	kind     Kind
	explicit bool
	factory  Factory
}

// Kind returns the kind configured for op
func (r *Registration) Kind(op Operation) (Kind, bool) {
	return r.account.BackendKind(op)
}

// Enable requests ops served by their configured kinds and the registry
// factories
func (r *Registration) Enable(ops ...Operation) {
	for _, op := range ops {
		r.requests = append(r.requests, request{op: op})
	}
}

// EnableKind requests op served by kind instead of its configured kind
func (r *Registration) EnableKind(op Operation, kind Kind) {
	r.requests = append(r.requests, request{op: op, kind: kind, explicit: true})
}

// EnableWith requests op served by its configured kind through factory
// instead of the registry one
func (r *Registration) EnableWith(op Operation, factory Factory) {
	r.requests = append(r.requests, request{op: op, factory: factory})
}

// EnableGetMessages requests GetMessages, plus PeekMessages and AddFlags
// on the same kind so the Backend can emulate it when the kind has no
// native getter
func (r *Registration) EnableGetMessages() {
	r.Enable(GetMessages)
	if kind, ok := r.Kind(GetMessages); ok {
		r.EnableKind(PeekMessages, kind)
		r.EnableKind(AddFlags, kind)
	}
}

// Builder assembles a Backend for one account
type Builder struct {
	account  AccountConfig
	registry *Registry
	logger   *logrus.Logger
}

// NewBuilder creates a builder for account using the factories of registry
func NewBuilder(account AccountConfig, registry *Registry, logger *logrus.Logger) *Builder {
	return &Builder{
		account:  account,
		registry: registry,
		logger:   logger,
	}
}

type planned struct {
	op      Operation
	kind    Kind
	factory Factory
}

// Build runs the registration step, builds every needed handle once and
// binds the capabilities. A handle construction failure aborts the
// assembly and no Backend is returned.
func (b *Builder) Build(ctx context.Context, register func(r *Registration)) (*Backend, error) {
	reg := &Registration{account: b.account}
	if register != nil {
		register(reg)
	}

	be := &Backend{
		account: b.account.AccountName(),
		kinds:   make(map[Operation]Kind),
		served:  make(map[Operation]Kind),
		slots:   make(map[Operation]any),
		pool:    NewPool(b.registry, b.logger),
		logger:  b.logger,
	}

	plan := b.plan(reg, be)

	for _, p := range plan {
		if _, err := be.pool.Get(ctx, p.kind); err != nil {
			if cerr := be.pool.Close(); cerr != nil {
				b.logger.WithError(cerr).Warn("Failed to release backend handles")
			}
			return nil, err
		}
	}

	for _, p := range plan {
		h, err := be.pool.Get(ctx, p.kind)
		if err != nil {
			be.Close() //nolint:errcheck
			return nil, err
		}
		c, ok := p.factory(h)
		if !ok || c == nil {
			b.logger.WithFields(logrus.Fields{
				"operation": p.op.String(),
				"kind":      p.kind.String(),
			}).Debug("Factory left capability empty")
			continue
		}
		if !Implements(p.op, c) {
			be.Close() //nolint:errcheck
			return nil, fmt.Errorf("factory for %s with %s returned %T", p.op, p.kind, c)
		}
		be.slots[p.op] = c
		be.served[p.op] = p.kind
	}

	b.logger.WithFields(logrus.Fields{
		"account":      be.account,
		"handles":      be.pool.Built(),
		"capabilities": len(be.slots),
	}).Debug("Backend assembled")

	return be, nil
}

// plan resolves the kind and factory of every request, dropping the ones
// that cannot be served. Later requests for the same operation win, even
// when they cannot be served: the earlier entry is dropped too.
func (b *Builder) plan(reg *Registration, be *Backend) []planned {
	var order []Operation
	byOp := make(map[Operation]planned)

	for _, req := range reg.requests {
		if !containsOp(order, req.op) {
			order = append(order, req.op)
		}
		delete(byOp, req.op)

		kind, ok := req.kind, req.explicit
		if !ok {
			kind, ok = b.account.BackendKind(req.op)
		}

		fields := logrus.Fields{"operation": req.op.String()}
		if !ok {
			delete(be.kinds, req.op)
			b.logger.WithFields(fields).Debug("No backend configured for operation")
			continue
		}
		be.kinds[req.op] = kind
		fields["kind"] = kind.String()

		if !Supports(req.op, kind) {
			b.logger.WithFields(fields).Debug("Backend kind cannot serve operation")
			continue
		}

		factory := req.factory
		if factory == nil {
			factory, ok = b.registry.Lookup(req.op, kind)
		} else {
			ok = b.registry.HasHandle(kind)
		}
		if !ok {
			b.logger.WithFields(fields).Debug("Backend kind is not compiled in")
			continue
		}

		byOp[req.op] = planned{op: req.op, kind: kind, factory: factory}
	}

	plan := make([]planned, 0, len(byOp))
	for _, op := range order {
		if p, ok := byOp[op]; ok {
			plan = append(plan, p)
		}
	}
	return plan
}

func containsOp(ops []Operation, op Operation) bool {
	for _, candidate := range ops {
		if candidate == op {
			return true
		}
	}
	return false
}
