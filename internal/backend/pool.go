package backend

import (
	"context"
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"
)

// Pool lazily builds and caches at most one handle per kind. A pool
// belongs to exactly one Backend.
type Pool struct {
	registry *Registry
	logger   *logrus.Logger
	handles  map[Kind]Handle
	order    []Kind
}

// NewPool creates an empty pool building handles from registry
func NewPool(registry *Registry, logger *logrus.Logger) *Pool {
	return &Pool{
		registry: registry,
		logger:   logger,
		handles:  make(map[Kind]Handle),
	}
}

// Get returns the handle of kind, building it on first use
func (p *Pool) Get(ctx context.Context, kind Kind) (Handle, error) {
	if h, ok := p.handles[kind]; ok {
		return h, nil
	}

	build, ok := p.registry.handles[kind]
	if !ok {
		return nil, &HandleError{Kind: kind, Err: fmt.Errorf("%s support is not compiled in", kind)}
	}

	h, err := build(ctx)
	if err != nil {
		return nil, &HandleError{Kind: kind, Err: err}
	}

	p.handles[kind] = h
	p.order = append(p.order, kind)
	p.logger.WithField("kind", kind.String()).Debug("Built backend handle")
	return h, nil
}

// Built returns the kinds built so far, in construction order
func (p *Pool) Built() []Kind {
	return append([]Kind(nil), p.order...)
}

// Close closes every built handle in reverse construction order
func (p *Pool) Close() error {
	var errs []error
	for i := len(p.order) - 1; i >= 0; i-- {
		kind := p.order[i]
		if err := p.handles[kind].Close(); err != nil {
			errs = append(errs, fmt.Errorf("failed to close %s backend: %w", kind, err))
		}
		delete(p.handles, kind)
	}
	p.order = nil
	return errors.Join(errs...)
}
