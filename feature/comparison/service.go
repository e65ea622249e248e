package comparison

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"table-reconciler/core/reconcile"

	"go.uber.org/zap"
)

// ErrInvalidRequest marks request validation failures.
var ErrInvalidRequest = errors.New("invalid comparison request")

// DatasetLister lists loadable dataset identifiers.
type DatasetLister interface {
	List(ctx context.Context, prefix string) ([]string, error)
}

// Service runs comparisons with configured defaults.
type Service struct {
	loader   reconcile.Loader
	cache    *reconcile.Cache
	lister   DatasetLister
	defaults reconcile.Config
	logger   *zap.Logger
}

// NewService creates a comparison service. The cache and lister may be nil.
func NewService(loader reconcile.Loader, cache *reconcile.Cache, lister DatasetLister, defaults reconcile.Config, logger *zap.Logger) *Service {
	return &Service{
		loader:   loader,
		cache:    cache,
		lister:   lister,
		defaults: defaults,
		logger:   logger,
	}
}

// CompareRequest describes a comparison of two loadable datasets.
type CompareRequest struct {
	Source      string   `json:"source"`
	Destination string   `json:"destination"`
	CompareBy   []string `json:"compare_by"`
	Columns     []string `json:"columns"`
	Mode        string   `json:"mode"`
	Limit       int      `json:"limit"`
	Workers     int      `json:"workers"`
}

// InlineDataset is a dataset posted in a request body.
type InlineDataset struct {
	Name    string   `json:"name"`
	Columns []string `json:"columns"`
	Rows    [][]any  `json:"rows"`
}

// InlineRequest describes a comparison of two posted datasets.
type InlineRequest struct {
	Source      InlineDataset `json:"source"`
	Destination InlineDataset `json:"destination"`
	CompareBy   []string      `json:"compare_by"`
	Columns     []string      `json:"columns"`
	Mode        string        `json:"mode"`
	Workers     int           `json:"workers"`
}

// Options merges request settings over the configured defaults.
func (s *Service) Options(compareBy, columns []string, mode string, workers int) (reconcile.Options, error) {
	opts, err := s.defaults.Options()
	if err != nil {
		return reconcile.Options{}, err
	}
	if len(compareBy) > 0 {
		opts.CompareBy = compareBy
	}
	if mode != "" {
		m, err := reconcile.ParseMatchMode(mode)
		if err != nil {
			return reconcile.Options{}, err
		}
		opts.Mode = m
	}
	if workers < 0 {
		return reconcile.Options{}, fmt.Errorf("%w: workers must not be negative", ErrInvalidRequest)
	}
	if workers > 0 {
		opts.Workers = workers
	}
	opts.Columns = columns
	return opts, nil
}

// Compare loads both datasets and reconciles them.
func (s *Service) Compare(ctx context.Context, req CompareRequest) (*reconcile.Report, error) {
	if req.Source == "" || req.Destination == "" {
		return nil, fmt.Errorf("%w: source and destination are required", ErrInvalidRequest)
	}
	if req.Limit < 0 {
		return nil, fmt.Errorf("%w: limit must not be negative", ErrInvalidRequest)
	}
	opts, err := s.Options(req.CompareBy, req.Columns, req.Mode, req.Workers)
	if err != nil {
		return nil, err
	}
	limit := req.Limit
	if limit == 0 {
		limit = s.defaults.RowLimit
	}

	report, err := reconcile.ReconcileSources(ctx, &reconcile.Spec{
		Source:      req.Source,
		Destination: req.Destination,
		Limit:       limit,
		Options:     opts,
	}, s.loader, s.cache)
	if err != nil {
		return nil, err
	}

	s.logSummary(report)
	return report, nil
}

// CompareInline reconciles two datasets posted in the request.
// JSON numbers must be decoded as json.Number so integers stay int64.
func (s *Service) CompareInline(req InlineRequest) (*reconcile.Report, error) {
	start := time.Now()
	opts, err := s.Options(req.CompareBy, req.Columns, req.Mode, req.Workers)
	if err != nil {
		return nil, err
	}

	src, err := req.Source.dataset("source", reconcile.OriginSource)
	if err != nil {
		return nil, err
	}
	dst, err := req.Destination.dataset("destination", reconcile.OriginDestination)
	if err != nil {
		return nil, err
	}

	report, err := reconcile.Reconcile(src, dst, opts)
	if err != nil {
		return nil, err
	}
	report.Elapsed = time.Since(start)

	s.logSummary(report)
	return report, nil
}

// ListDatasets returns the dataset identifiers available in object storage.
func (s *Service) ListDatasets(ctx context.Context, prefix string) ([]string, error) {
	if s.lister == nil {
		return []string{}, nil
	}
	ids, err := s.lister.List(ctx, prefix)
	if err != nil {
		return nil, err
	}
	if ids == nil {
		ids = []string{}
	}
	return ids, nil
}

func (s *Service) logSummary(r *reconcile.Report) {
	sum := r.Summary
	s.logger.Info("Comparison completed",
		zap.String("source", r.Source),
		zap.String("destination", r.Destination),
		zap.Strings("compare_by", r.CompareBy),
		zap.String("mode", string(r.Mode)),
		zap.Int("source_rows", sum.SourceRows),
		zap.Int("destination_rows", sum.DestinationRows),
		zap.Int("exact", sum.Exact),
		zap.Int("partial", sum.Partial),
		zap.Int("source_only", sum.SourceOnly),
		zap.Int("destination_only", sum.DestinationOnly),
		zap.Duration("elapsed", r.Elapsed),
	)
}

func (d InlineDataset) dataset(fallback string, origin reconcile.Origin) (*reconcile.Dataset, error) {
	name := d.Name
	if name == "" {
		name = fallback
	}
	values := make([][]any, len(d.Rows))
	for i, row := range d.Rows {
		values[i] = make([]any, len(row))
		for j, v := range row {
			cv, err := inlineValue(v)
			if err != nil {
				return nil, fmt.Errorf("%w: %s row %d column %d: %v", ErrInvalidRequest, name, i, j, err)
			}
			values[i][j] = cv
		}
	}
	return reconcile.NewDataset(name, origin, d.Columns, values)
}

// inlineValue maps a decoded JSON value onto the row value domain.
func inlineValue(v any) (any, error) {
	switch x := v.(type) {
	case nil, string, bool, int64, float64:
		return x, nil
	case json.Number:
		if i, err := x.Int64(); err == nil {
			return i, nil
		}
		f, err := x.Float64()
		if err != nil {
			return nil, err
		}
		return f, nil
	default:
		return nil, fmt.Errorf("unsupported value of type %T", v)
	}
}
