package reconcile

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrNoKeyColumns is returned when Options.CompareBy is empty.
	ErrNoKeyColumns = errors.New("at least one compare-by column is required")

	// ErrUnknownMatchMode is returned for match modes other than exact and positional.
	ErrUnknownMatchMode = errors.New("unknown match mode")

	// ErrMalformedRow is returned when a dataset row does not fit its schema.
	ErrMalformedRow = errors.New("malformed dataset")
)

// MissingColumnError reports compare-by columns absent from a dataset schema.
type MissingColumnError struct {
	// Dataset names the dataset missing the columns.
	Dataset string
	// Origin tells whether the dataset is the source or destination.
	Origin Origin
	// Columns lists the absent columns in compare-by order.
	Columns []string
}

func (e *MissingColumnError) Error() string {
	return fmt.Sprintf("%s dataset %q is missing compare-by column(s): %s",
		e.Origin, e.Dataset, strings.Join(e.Columns, ", "))
}

// SchemaMismatchError reports schemas that cannot be diffed column by column.
type SchemaMismatchError struct {
	// Source and Destination hold the column lists as supplied.
	Source      []string
	Destination []string
	// Missing lists compared columns absent from either side, prefixed with the origin.
	Missing []string
}

func (e *SchemaMismatchError) Error() string {
	if len(e.Missing) > 0 {
		return fmt.Sprintf("schema mismatch: missing column(s) %s", strings.Join(e.Missing, ", "))
	}
	return fmt.Sprintf("schema mismatch: source columns [%s] differ from destination columns [%s]",
		strings.Join(e.Source, ", "), strings.Join(e.Destination, ", "))
}

// LoadError reports a dataset that could not be loaded.
type LoadError struct {
	// Origin tells which side failed.
	Origin Origin
	// Source is the loader identifier.
	Source string
	// Err is the loader error.
	Err error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("failed to load %s %q: %v", e.Origin, e.Source, e.Err)
}

func (e *LoadError) Unwrap() error {
	return e.Err
}
