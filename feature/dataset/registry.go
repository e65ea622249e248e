package dataset

import (
	"context"
	"fmt"
	"sort"
	"time"

	"table-reconciler/core/reconcile"

	"go.uber.org/zap"
)

// Registry dispatches load requests to the loader registered for the
// identifier scheme. It implements reconcile.Loader.
type Registry struct {
	loaders map[string]reconcile.Loader
	logger  *zap.Logger
}

// NewRegistry creates a registry holding the given loaders, keyed by their Name.
func NewRegistry(logger *zap.Logger, loaders ...reconcile.Loader) *Registry {
	r := &Registry{
		loaders: make(map[string]reconcile.Loader, len(loaders)),
		logger:  logger,
	}
	for _, l := range loaders {
		r.Register(l)
	}
	return r
}

// Register adds or replaces the loader for its scheme.
func (r *Registry) Register(l reconcile.Loader) {
	r.loaders[l.Name()] = l
}

// Schemes returns the registered schemes in sorted order.
func (r *Registry) Schemes() []string {
	schemes := make([]string, 0, len(r.loaders))
	for s := range r.loaders {
		schemes = append(schemes, s)
	}
	sort.Strings(schemes)
	return schemes
}

// Name returns the loader name.
func (r *Registry) Name() string {
	return "registry"
}

// Load resolves the scheme of req.Source and delegates to its loader.
func (r *Registry) Load(ctx context.Context, req reconcile.LoadRequest) (*reconcile.Dataset, error) {
	src, err := ParseSource(req.Source)
	if err != nil {
		return nil, err
	}
	l, ok := r.loaders[src.Scheme]
	if !ok {
		return nil, fmt.Errorf("%w %q (registered: %v)", ErrUnknownScheme, src.Scheme, r.Schemes())
	}

	start := time.Now()
	ds, err := l.Load(ctx, req)
	if err != nil {
		r.logger.Warn("Dataset load failed",
			zap.String("loader", l.Name()),
			zap.String("source", req.Source),
			zap.Error(err),
		)
		return nil, err
	}

	r.logger.Info("Dataset loaded",
		zap.String("loader", l.Name()),
		zap.String("source", req.Source),
		zap.String("origin", string(req.Origin)),
		zap.Int("rows", ds.Len()),
		zap.Int("columns", len(ds.Columns)),
		zap.Duration("elapsed", time.Since(start)),
	)
	return ds, nil
}
