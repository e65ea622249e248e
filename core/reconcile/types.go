package reconcile

import (
	"fmt"
	"time"
)

// Origin tags a row with the dataset it was loaded from.
type Origin string

const (
	// OriginSource marks rows of the source dataset.
	OriginSource Origin = "source"
	// OriginDestination marks rows of the destination dataset.
	OriginDestination Origin = "destination"
)

// Row is a single record of a Dataset.
// Values are aligned to the owning dataset's Columns and hold one of
// string, int64, float64, bool or nil.
type Row struct {
	// Origin is the dataset this row belongs to.
	Origin Origin `json:"origin"`

	// Index is the original position of the row in its dataset.
	Index int `json:"index"`

	// Values holds one value per dataset column.
	Values []any `json:"values"`
}

// Dataset is an ordered collection of rows sharing one column schema.
// The engine only reads datasets; callers own them.
type Dataset struct {
	// Name identifies the dataset in logs and reports (e.g. "sql:users").
	Name string `json:"name"`

	// Columns is the ordered column schema.
	Columns []string `json:"columns"`

	// Rows holds the records in load order.
	Rows []Row `json:"rows"`
}

// NewDataset builds a dataset from raw value slices, tagging every row
// with its origin and position.
func NewDataset(name string, origin Origin, columns []string, values [][]any) (*Dataset, error) {
	ds := &Dataset{
		Name:    name,
		Columns: columns,
		Rows:    make([]Row, len(values)),
	}
	for i, v := range values {
		ds.Rows[i] = Row{Origin: origin, Index: i, Values: v}
	}
	if err := ds.Validate(); err != nil {
		return nil, err
	}
	return ds, nil
}

// Len returns the number of rows.
func (d *Dataset) Len() int {
	return len(d.Rows)
}

// ColumnIndex returns the position of the named column.
func (d *Dataset) ColumnIndex(name string) (int, bool) {
	for i, c := range d.Columns {
		if c == name {
			return i, true
		}
	}
	return -1, false
}

// Validate checks that column names are unique and every row has one value per column.
func (d *Dataset) Validate() error {
	seen := make(map[string]struct{}, len(d.Columns))
	for _, c := range d.Columns {
		if _, dup := seen[c]; dup {
			return fmt.Errorf("dataset %q: duplicate column %q: %w", d.Name, c, ErrMalformedRow)
		}
		seen[c] = struct{}{}
	}
	for i, r := range d.Rows {
		if len(r.Values) != len(d.Columns) {
			return fmt.Errorf("dataset %q: row %d has %d values, schema has %d columns: %w",
				d.Name, i, len(r.Values), len(d.Columns), ErrMalformedRow)
		}
	}
	return nil
}

// MatchMode selects the pairing policy used for rows sharing a key.
type MatchMode string

const (
	// MatchExact pairs each source row with the first unconsumed destination row
	// equal on every compared column, falling back to the first unconsumed
	// same-key destination row. Cost is O(s*d) per key.
	MatchExact MatchMode = "exact"

	// MatchPositional pairs the i-th source row of a key with the i-th destination
	// row of the same key, regardless of content. Cost is O(max(s,d)) per key.
	// Reordering same-key rows changes the resulting diff masks.
	MatchPositional MatchMode = "positional"
)

// ParseMatchMode converts a configuration string into a MatchMode.
// An empty string selects MatchExact.
func ParseMatchMode(s string) (MatchMode, error) {
	switch MatchMode(s) {
	case "", MatchExact:
		return MatchExact, nil
	case MatchPositional:
		return MatchPositional, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownMatchMode, s)
	}
}

// Options configures a reconciliation.
type Options struct {
	// CompareBy lists the key columns. At least one is required.
	CompareBy []string

	// Columns restricts the compared schema to the named columns, projected by
	// name from both datasets. When empty both datasets must share the exact
	// same column list.
	Columns []string

	// Mode is the pairing policy. Zero value means MatchExact.
	Mode MatchMode

	// Workers is the number of goroutines matching disjoint key partitions.
	// Values below 2 run sequentially.
	Workers int
}

// DiffMask flags, per compared column, whether the paired values differ.
type DiffMask []bool

// Any reports whether at least one column differs.
func (m DiffMask) Any() bool {
	for _, d := range m {
		if d {
			return true
		}
	}
	return false
}

// OutcomeKind classifies an Outcome.
type OutcomeKind string

const (
	// KindMatched is a source row paired with a same-key destination row.
	KindMatched OutcomeKind = "matched"
	// KindSourceOnly is a source row with no destination counterpart left.
	KindSourceOnly OutcomeKind = "source_only"
	// KindDestinationOnly is a destination row never paired.
	KindDestinationOnly OutcomeKind = "destination_only"
)

// Outcome is one entry of a Report.
type Outcome struct {
	// Kind classifies the entry.
	Kind OutcomeKind `json:"kind"`

	// Key is the compare-by tuple shared by the row(s).
	Key Key `json:"key"`

	// Source is set for matched and source-only outcomes.
	Source *Row `json:"source,omitempty"`

	// Destination is set for matched and destination-only outcomes.
	Destination *Row `json:"destination,omitempty"`

	// Diff is aligned to Report.Columns. Unpaired rows are all true.
	Diff DiffMask `json:"diff"`
}

// Exact reports whether the outcome is a match on every compared column.
func (o Outcome) Exact() bool {
	return o.Kind == KindMatched && !o.Diff.Any()
}

// Partial reports whether the outcome pairs rows that differ in at least one column.
func (o Outcome) Partial() bool {
	return o.Kind == KindMatched && o.Diff.Any()
}

// Summary provides aggregate counts for a Report.
type Summary struct {
	// SourceRows is the number of rows in the source dataset.
	SourceRows int `json:"source_rows"`

	// DestinationRows is the number of rows in the destination dataset.
	DestinationRows int `json:"destination_rows"`

	// Matched counts all paired outcomes, exact and partial.
	Matched int `json:"matched"`

	// Exact counts paired outcomes with an all-false diff mask.
	Exact int `json:"exact"`

	// Partial counts paired outcomes with at least one differing column.
	Partial int `json:"partial"`

	// SourceOnly counts unpaired source rows.
	SourceOnly int `json:"source_only"`

	// DestinationOnly counts unpaired destination rows.
	DestinationOnly int `json:"destination_only"`

	// ColumnDiffs counts, per column, the partial matches differing on it.
	ColumnDiffs map[string]int `json:"column_diffs"`
}

// Report is the ordered result of a reconciliation.
type Report struct {
	// Source and Destination name the reconciled datasets.
	Source      string `json:"source"`
	Destination string `json:"destination"`

	// Columns is the compared schema that diff masks are aligned to.
	Columns []string `json:"columns"`

	// CompareBy lists the key columns.
	CompareBy []string `json:"compare_by"`

	// Mode is the pairing policy used.
	Mode MatchMode `json:"mode"`

	// Outcomes holds one entry per source row (grouped by key in source
	// first-encounter order) followed by unpaired destination rows in
	// destination order.
	Outcomes []Outcome `json:"outcomes"`

	// Summary aggregates Outcomes.
	Summary Summary `json:"summary"`

	// Elapsed is the wall time spent loading and matching, when known.
	Elapsed time.Duration `json:"elapsed_ns,omitempty"`

	proj *Projection
}

// Cells returns the values of row aligned to Columns. Rows of reports that
// were not built by Assemble are returned as stored.
func (r *Report) Cells(row *Row) []any {
	if row == nil {
		return nil
	}
	if r.proj == nil {
		return row.Values
	}
	idx := r.proj.Source
	if row.Origin == OriginDestination {
		idx = r.proj.Destination
	}
	cells := make([]any, len(idx))
	for i, j := range idx {
		cells[i] = row.Values[j]
	}
	return cells
}

// Clean reports whether every row was matched exactly.
func (r *Report) Clean() bool {
	s := r.Summary
	return s.Partial == 0 && s.SourceOnly == 0 && s.DestinationOnly == 0
}
