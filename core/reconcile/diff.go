package reconcile

import (
	"reflect"
	"slices"
)

// Projection aligns the compared columns with their positions in each dataset.
type Projection struct {
	// Columns is the compared schema.
	Columns []string
	// Source and Destination hold the position of each compared column.
	Source      []int
	Destination []int
}

// NewProjection resolves the compared schema for a pair of datasets.
// With explicit columns both datasets are projected by name. Without them the
// two column lists must be identical, order included.
func NewProjection(source, destination *Dataset, columns []string) (*Projection, error) {
	if len(columns) == 0 {
		if !slices.Equal(source.Columns, destination.Columns) {
			return nil, &SchemaMismatchError{Source: source.Columns, Destination: destination.Columns}
		}
		idx := make([]int, len(source.Columns))
		for i := range idx {
			idx[i] = i
		}
		return &Projection{Columns: source.Columns, Source: idx, Destination: idx}, nil
	}

	p := &Projection{
		Columns:     columns,
		Source:      make([]int, len(columns)),
		Destination: make([]int, len(columns)),
	}
	var missing []string
	for i, name := range columns {
		s, ok := source.ColumnIndex(name)
		if !ok {
			missing = append(missing, string(OriginSource)+"."+name)
		}
		d, ok := destination.ColumnIndex(name)
		if !ok {
			missing = append(missing, string(OriginDestination)+"."+name)
		}
		p.Source[i], p.Destination[i] = s, d
	}
	if len(missing) > 0 {
		return nil, &SchemaMismatchError{Source: source.Columns, Destination: destination.Columns, Missing: missing}
	}
	return p, nil
}

// Diff computes the per-column mask of a row pair: true where the values differ.
func Diff(source, destination Row, p *Projection) DiffMask {
	mask := make(DiffMask, len(p.Columns))
	for i := range p.Columns {
		mask[i] = !ValueEqual(source.Values[p.Source[i]], destination.Values[p.Destination[i]])
	}
	return mask
}

// RowsEqual reports whether the pair agrees on every compared column.
// It stops at the first difference.
func RowsEqual(source, destination Row, p *Projection) bool {
	for i := range p.Columns {
		if !ValueEqual(source.Values[p.Source[i]], destination.Values[p.Destination[i]]) {
			return false
		}
	}
	return true
}

// AllDifferent returns the mask used for unpaired rows.
func AllDifferent(n int) DiffMask {
	mask := make(DiffMask, n)
	for i := range mask {
		mask[i] = true
	}
	return mask
}

// ValueEqual compares two scalar values. nil equals only nil and values of
// different types are never equal; callers normalise types before loading.
func ValueEqual(a, b any) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	switch x := a.(type) {
	case string:
		y, ok := b.(string)
		return ok && x == y
	case int64:
		y, ok := b.(int64)
		return ok && x == y
	case float64:
		y, ok := b.(float64)
		return ok && x == y
	case bool:
		y, ok := b.(bool)
		return ok && x == y
	default:
		return reflect.DeepEqual(a, b)
	}
}
