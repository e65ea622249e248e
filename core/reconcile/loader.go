package reconcile

import (
	"context"
	"strconv"
)

// LoadRequest describes a dataset to fetch.
type LoadRequest struct {
	// Source is the loader-specific identifier (e.g. "sql:users", "s3:exports/users.csv").
	Source string

	// Origin tags the loaded rows as source or destination.
	Origin Origin

	// Limit caps the number of rows read. Zero means no limit.
	Limit int
}

// cacheKey identifies a request in the dataset cache.
func (r LoadRequest) cacheKey() string {
	return string(r.Origin) + "|" + strconv.Itoa(r.Limit) + "|" + r.Source
}

// Loader fetches or generates datasets. Implementations are responsible for
// producing consistent column schemas and value types for both sides of a
// reconciliation; the engine performs no coercion.
type Loader interface {
	// Name returns the loader name used in logs (e.g. "sql", "registry").
	Name() string

	// Load returns the dataset for the request.
	// Rows must be tagged with req.Origin and their position.
	Load(ctx context.Context, req LoadRequest) (*Dataset, error)
}

// Spec bundles everything needed to reconcile two loadable datasets.
type Spec struct {
	// Source and Destination are loader identifiers.
	Source      string
	Destination string

	// Limit caps the rows loaded from each side. Zero means no limit.
	Limit int

	// Options configures matching.
	Options Options
}
