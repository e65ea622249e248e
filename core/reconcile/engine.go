package reconcile

import (
	"context"
	"errors"
	"time"

	"golang.org/x/sync/errgroup"
)

// Reconcile matches the rows of source against destination and returns the report.
//
// Both datasets are validated before any grouping: compare-by columns must exist
// in both schemas (MissingColumnError), rows must fit their schema, and the
// compared schema must be resolvable on both sides (SchemaMismatchError). No
// partial report is returned on error. Inputs are never modified.
func Reconcile(source, destination *Dataset, opts Options) (*Report, error) {
	if source == nil || destination == nil {
		return nil, errors.New("source and destination datasets are required")
	}
	if len(opts.CompareBy) == 0 {
		return nil, ErrNoKeyColumns
	}
	mode, err := ParseMatchMode(string(opts.Mode))
	if err != nil {
		return nil, err
	}

	srcKey, srcErr := ResolveColumns(source, OriginSource, opts.CompareBy)
	dstKey, dstErr := ResolveColumns(destination, OriginDestination, opts.CompareBy)
	if err := errors.Join(srcErr, dstErr); err != nil {
		return nil, err
	}
	if err := source.Validate(); err != nil {
		return nil, err
	}
	if err := destination.Validate(); err != nil {
		return nil, err
	}
	proj, err := NewProjection(source, destination, opts.Columns)
	if err != nil {
		return nil, err
	}

	plan := buildPlan(Group(source, srcKey), Group(destination, dstKey))
	m := &matcher{source: source, destination: destination, proj: proj, mode: mode}
	matches := m.matchAll(plan, opts.Workers)

	return Assemble(source, destination, proj, opts.CompareBy, mode, matches), nil
}

// ReconcileSources loads both datasets through the loader (concurrently, via the
// cache when one is given) and reconciles them.
func ReconcileSources(ctx context.Context, spec *Spec, loader Loader, cache *Cache) (*Report, error) {
	start := time.Now()

	var source, destination *Dataset
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		ds, err := cache.GetOrLoad(gctx, loader, LoadRequest{Source: spec.Source, Origin: OriginSource, Limit: spec.Limit})
		if err != nil {
			return &LoadError{Origin: OriginSource, Source: spec.Source, Err: err}
		}
		source = ds
		return nil
	})

	g.Go(func() error {
		ds, err := cache.GetOrLoad(gctx, loader, LoadRequest{Source: spec.Destination, Origin: OriginDestination, Limit: spec.Limit})
		if err != nil {
			return &LoadError{Origin: OriginDestination, Source: spec.Destination, Err: err}
		}
		destination = ds
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}

	report, err := Reconcile(source, destination, spec.Options)
	if err != nil {
		return nil, err
	}
	report.Elapsed = time.Since(start)
	return report, nil
}
