package reconcile

import (
	"context"
	"errors"
	"fmt"
	"math"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newDataset is a test helper building a validated dataset.
func newDataset(t *testing.T, name string, origin Origin, columns []string, rows ...[]any) *Dataset {
	t.Helper()
	ds, err := NewDataset(name, origin, columns, rows)
	require.NoError(t, err)
	return ds
}

// assertConservation checks that every row of both datasets appears exactly once.
func assertConservation(t *testing.T, r *Report, src, dst *Dataset) {
	t.Helper()
	seenSrc := make(map[int]int)
	seenDst := make(map[int]int)
	for _, o := range r.Outcomes {
		if o.Source != nil {
			seenSrc[o.Source.Index]++
		}
		if o.Destination != nil {
			seenDst[o.Destination.Index]++
		}
		assert.Len(t, o.Diff, len(r.Columns))
	}
	assert.Len(t, seenSrc, src.Len())
	assert.Len(t, seenDst, dst.Len())
	for idx, n := range seenSrc {
		assert.Equal(t, 1, n, "source row %d used %d times", idx, n)
	}
	for idx, n := range seenDst {
		assert.Equal(t, 1, n, "destination row %d used %d times", idx, n)
	}
	s := r.Summary
	assert.Equal(t, src.Len(), s.Matched+s.SourceOnly)
	assert.Equal(t, dst.Len(), s.Matched+s.DestinationOnly)
}

func kinds(r *Report) []OutcomeKind {
	out := make([]OutcomeKind, len(r.Outcomes))
	for i, o := range r.Outcomes {
		out[i] = o.Kind
	}
	return out
}

var kv = []string{"k", "v"}

// TestReconcile_Identity tests that a dataset compared with itself only yields exact matches.
func TestReconcile_Identity(t *testing.T) {
	cols := []string{"id", "name", "flag"}
	ds := newDataset(t, "users", OriginSource, cols,
		[]any{int64(1), "ALICE", true},
		[]any{int64(1), "ALICE", true},
		[]any{int64(2), nil, false},
		[]any{int64(3), "CAROL", nil},
	)

	for _, mode := range []MatchMode{MatchExact, MatchPositional} {
		t.Run(string(mode), func(t *testing.T) {
			r, err := Reconcile(ds, ds, Options{CompareBy: []string{"id"}, Mode: mode})
			require.NoError(t, err)

			assert.Len(t, r.Outcomes, 4)
			for i, o := range r.Outcomes {
				assert.Equal(t, KindMatched, o.Kind)
				assert.False(t, o.Diff.Any(), "outcome %d should be exact", i)
				assert.Equal(t, o.Source.Index, o.Destination.Index)
			}
			assert.True(t, r.Clean())
			assert.Equal(t, 4, r.Summary.Exact)
			assertConservation(t, r, ds, ds)
		})
	}
}

// TestReconcile_DuplicateKeyMultiplicity tests source keys [A,A,B] against destination keys [A,A,A,C].
func TestReconcile_DuplicateKeyMultiplicity(t *testing.T) {
	src := newDataset(t, "src", OriginSource, kv,
		[]any{"A", int64(1)},
		[]any{"A", int64(2)},
		[]any{"B", int64(3)},
	)
	dst := newDataset(t, "dst", OriginDestination, kv,
		[]any{"A", int64(1)},
		[]any{"A", int64(2)},
		[]any{"A", int64(9)},
		[]any{"C", int64(4)},
	)

	r, err := Reconcile(src, dst, Options{CompareBy: []string{"k"}, Mode: MatchExact})
	require.NoError(t, err)

	assert.Equal(t, []OutcomeKind{KindMatched, KindMatched, KindSourceOnly, KindDestinationOnly, KindDestinationOnly}, kinds(r))
	assert.Equal(t, 2, r.Summary.Matched)
	assert.Equal(t, 1, r.Summary.SourceOnly)
	assert.Equal(t, 2, r.Summary.DestinationOnly)

	// 3 source rows: 2 matched + 1 source-only; 4 destination rows: 2 matched + 2 destination-only.
	assert.Equal(t, 3, r.Summary.Matched+r.Summary.SourceOnly)
	assert.Equal(t, 4, r.Summary.Matched+r.Summary.DestinationOnly)

	assert.Equal(t, 0, r.Outcomes[0].Destination.Index)
	assert.Equal(t, 1, r.Outcomes[1].Destination.Index)
	assert.Equal(t, 2, r.Outcomes[3].Destination.Index)
	assert.Equal(t, Key{"C"}, r.Outcomes[4].Key)
	assertConservation(t, r, src, dst)
}

// TestReconcile_ExactPrefersFullMatch tests that a later full match wins over an earlier partial candidate.
func TestReconcile_ExactPrefersFullMatch(t *testing.T) {
	src := newDataset(t, "src", OriginSource, kv, []any{"A", int64(2)})
	dst := newDataset(t, "dst", OriginDestination, kv,
		[]any{"A", int64(1)},
		[]any{"A", int64(2)},
	)

	r, err := Reconcile(src, dst, Options{CompareBy: []string{"k"}})
	require.NoError(t, err)

	require.Len(t, r.Outcomes, 2)
	assert.True(t, r.Outcomes[0].Exact())
	assert.Equal(t, 1, r.Outcomes[0].Destination.Index)
	assert.Equal(t, KindDestinationOnly, r.Outcomes[1].Kind)
	assert.Equal(t, 0, r.Outcomes[1].Destination.Index)
	assert.Equal(t, DiffMask{true, true}, r.Outcomes[1].Diff)
}

// TestReconcile_ExactPartialFallback tests that without a full match the first remaining same-key row is paired.
func TestReconcile_ExactPartialFallback(t *testing.T) {
	src := newDataset(t, "src", OriginSource, kv,
		[]any{"A", int64(5)},
		[]any{"A", int64(6)},
		[]any{"A", int64(7)},
	)
	dst := newDataset(t, "dst", OriginDestination, kv,
		[]any{"A", int64(1)},
		[]any{"A", int64(6)},
	)

	r, err := Reconcile(src, dst, Options{CompareBy: []string{"k"}, Mode: MatchExact})
	require.NoError(t, err)

	require.Len(t, r.Outcomes, 3)
	// First source row takes the first unconsumed candidate as a partial match.
	assert.True(t, r.Outcomes[0].Partial())
	assert.Equal(t, 0, r.Outcomes[0].Destination.Index)
	assert.Equal(t, DiffMask{false, true}, r.Outcomes[0].Diff)
	// Second source row still finds its exact counterpart.
	assert.True(t, r.Outcomes[1].Exact())
	assert.Equal(t, 1, r.Outcomes[1].Destination.Index)
	// Nothing left for the third.
	assert.Equal(t, KindSourceOnly, r.Outcomes[2].Kind)
	assert.Equal(t, DiffMask{true, true}, r.Outcomes[2].Diff)

	assert.Equal(t, 1, r.Summary.Partial)
	assert.Equal(t, 1, r.Summary.Exact)
	assert.Equal(t, map[string]int{"k": 0, "v": 1}, r.Summary.ColumnDiffs)
	assertConservation(t, r, src, dst)
}

// TestReconcile_NoDoubleConsumption tests that identical destination rows are consumed one at a time.
func TestReconcile_NoDoubleConsumption(t *testing.T) {
	src := newDataset(t, "src", OriginSource, kv,
		[]any{"A", int64(1)},
		[]any{"A", int64(1)},
		[]any{"A", int64(1)},
	)
	dst := newDataset(t, "dst", OriginDestination, kv,
		[]any{"A", int64(1)},
		[]any{"A", int64(1)},
	)

	r, err := Reconcile(src, dst, Options{CompareBy: []string{"k"}, Mode: MatchExact})
	require.NoError(t, err)

	assert.Equal(t, []OutcomeKind{KindMatched, KindMatched, KindSourceOnly}, kinds(r))
	assert.Equal(t, 0, r.Outcomes[0].Destination.Index)
	assert.Equal(t, 1, r.Outcomes[1].Destination.Index)
	assertConservation(t, r, src, dst)
}

// TestReconcile_PositionalAlignment tests that positional mode pairs strictly by position.
func TestReconcile_PositionalAlignment(t *testing.T) {
	src := newDataset(t, "src", OriginSource, kv,
		[]any{"K", "x"},
		[]any{"K", "y"},
	)
	dst := newDataset(t, "dst", OriginDestination, kv,
		[]any{"K", "y"},
		[]any{"K", "x"},
		[]any{"K", "z"},
	)

	r, err := Reconcile(src, dst, Options{CompareBy: []string{"k"}, Mode: MatchPositional})
	require.NoError(t, err)

	assert.Equal(t, []OutcomeKind{KindMatched, KindMatched, KindDestinationOnly}, kinds(r))
	assert.Equal(t, 0, r.Outcomes[0].Source.Index)
	assert.Equal(t, 0, r.Outcomes[0].Destination.Index)
	assert.Equal(t, 1, r.Outcomes[1].Source.Index)
	assert.Equal(t, 1, r.Outcomes[1].Destination.Index)
	assert.Equal(t, 2, r.Outcomes[2].Destination.Index)
	assert.Equal(t, DiffMask{false, true}, r.Outcomes[0].Diff)
	assert.Equal(t, DiffMask{false, true}, r.Outcomes[1].Diff)
	assertConservation(t, r, src, dst)

	// The same input in exact mode finds the swapped counterparts.
	r, err = Reconcile(src, dst, Options{CompareBy: []string{"k"}, Mode: MatchExact})
	require.NoError(t, err)
	assert.Equal(t, 1, r.Outcomes[0].Destination.Index)
	assert.Equal(t, 0, r.Outcomes[1].Destination.Index)
	assert.Equal(t, 2, r.Summary.Exact)
}

// TestReconcile_PositionalSourceSurplus tests that extra source rows become source-only.
func TestReconcile_PositionalSourceSurplus(t *testing.T) {
	src := newDataset(t, "src", OriginSource, kv,
		[]any{"K", int64(1)},
		[]any{"K", int64(2)},
		[]any{"L", int64(3)},
	)
	dst := newDataset(t, "dst", OriginDestination, kv,
		[]any{"M", int64(0)},
		[]any{"K", int64(2)},
	)

	r, err := Reconcile(src, dst, Options{CompareBy: []string{"k"}, Mode: MatchPositional})
	require.NoError(t, err)

	assert.Equal(t, []OutcomeKind{KindMatched, KindSourceOnly, KindSourceOnly, KindDestinationOnly}, kinds(r))
	assert.Equal(t, DiffMask{false, true}, r.Outcomes[0].Diff)
	assert.Equal(t, Key{"M"}, r.Outcomes[3].Key)
	assertConservation(t, r, src, dst)
}

// TestReconcile_OutputOrdering tests source first-encounter key order and destination order for leftovers.
func TestReconcile_OutputOrdering(t *testing.T) {
	src := newDataset(t, "src", OriginSource, kv,
		[]any{"B", int64(1)},
		[]any{"A", int64(1)},
		[]any{"B", int64(2)},
	)
	dst := newDataset(t, "dst", OriginDestination, kv,
		[]any{"Z", int64(0)},
		[]any{"A", int64(1)},
		[]any{"A", int64(8)},
		[]any{"B", int64(2)},
		[]any{"B", int64(1)},
		[]any{"Y", int64(0)},
	)

	r, err := Reconcile(src, dst, Options{CompareBy: []string{"k"}})
	require.NoError(t, err)

	require.Len(t, r.Outcomes, 6)
	assert.Equal(t, Key{"B"}, r.Outcomes[0].Key)
	assert.Equal(t, 0, r.Outcomes[0].Source.Index)
	assert.Equal(t, 4, r.Outcomes[0].Destination.Index)
	assert.Equal(t, Key{"B"}, r.Outcomes[1].Key)
	assert.Equal(t, 2, r.Outcomes[1].Source.Index)
	assert.Equal(t, 3, r.Outcomes[1].Destination.Index)
	assert.Equal(t, Key{"A"}, r.Outcomes[2].Key)

	var leftovers []int
	for _, o := range r.Outcomes[3:] {
		assert.Equal(t, KindDestinationOnly, o.Kind)
		leftovers = append(leftovers, o.Destination.Index)
	}
	assert.Equal(t, []int{0, 2, 5}, leftovers)
}

// TestReconcile_EmptyDatasets tests the degenerate empty-input cases.
func TestReconcile_EmptyDatasets(t *testing.T) {
	empty := newDataset(t, "empty", OriginSource, kv)
	full := newDataset(t, "full", OriginDestination, kv,
		[]any{"A", int64(1)},
		[]any{"B", int64(2)},
		[]any{"A", int64(3)},
	)

	for _, mode := range []MatchMode{MatchExact, MatchPositional} {
		t.Run("source empty "+string(mode), func(t *testing.T) {
			r, err := Reconcile(empty, full, Options{CompareBy: []string{"k"}, Mode: mode})
			require.NoError(t, err)
			assert.Equal(t, []OutcomeKind{KindDestinationOnly, KindDestinationOnly, KindDestinationOnly}, kinds(r))
			assert.Equal(t, 0, r.Summary.Matched)
			assert.Equal(t, 0, r.Summary.SourceOnly)
			assert.Equal(t, 3, r.Summary.DestinationOnly)
		})

		t.Run("destination empty "+string(mode), func(t *testing.T) {
			r, err := Reconcile(full, empty, Options{CompareBy: []string{"k"}, Mode: mode})
			require.NoError(t, err)
			assert.Equal(t, []OutcomeKind{KindSourceOnly, KindSourceOnly, KindSourceOnly}, kinds(r))
		})
	}
}

// TestReconcile_MissingColumn tests that missing compare-by columns fail before any matching.
func TestReconcile_MissingColumn(t *testing.T) {
	src := newDataset(t, "src", OriginSource, []string{"id", "v"}, []any{int64(1), "a"})
	dst := newDataset(t, "dst", OriginDestination, []string{"uid", "v"}, []any{int64(1), "a"})

	r, err := Reconcile(src, dst, Options{CompareBy: []string{"id"}})
	assert.Nil(t, r)
	require.Error(t, err)

	var mce *MissingColumnError
	require.True(t, errors.As(err, &mce))
	assert.Equal(t, OriginDestination, mce.Origin)
	assert.Equal(t, "dst", mce.Dataset)
	assert.Equal(t, []string{"id"}, mce.Columns)

	// Missing on both sides reports both datasets.
	r, err = Reconcile(src, dst, Options{CompareBy: []string{"id", "missing"}})
	assert.Nil(t, r)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "source dataset \"src\"")
	assert.Contains(t, err.Error(), "destination dataset \"dst\"")
}

// TestReconcile_SchemaMismatch tests column-set and column-order mismatches.
func TestReconcile_SchemaMismatch(t *testing.T) {
	src := newDataset(t, "src", OriginSource, []string{"id", "a", "b"}, []any{int64(1), "x", "y"})
	reordered := newDataset(t, "dst", OriginDestination, []string{"id", "b", "a"}, []any{int64(1), "y", "x"})
	narrower := newDataset(t, "dst", OriginDestination, []string{"id", "a"}, []any{int64(1), "x"})

	t.Run("order differs", func(t *testing.T) {
		_, err := Reconcile(src, reordered, Options{CompareBy: []string{"id"}})
		var sme *SchemaMismatchError
		require.True(t, errors.As(err, &sme))
		assert.Empty(t, sme.Missing)
	})

	t.Run("explicit columns project by name", func(t *testing.T) {
		r, err := Reconcile(src, reordered, Options{CompareBy: []string{"id"}, Columns: []string{"id", "a", "b"}})
		require.NoError(t, err)
		require.Len(t, r.Outcomes, 1)
		assert.True(t, r.Outcomes[0].Exact())
	})

	t.Run("explicit column missing", func(t *testing.T) {
		_, err := Reconcile(src, narrower, Options{CompareBy: []string{"id"}, Columns: []string{"id", "b"}})
		var sme *SchemaMismatchError
		require.True(t, errors.As(err, &sme))
		assert.Equal(t, []string{"destination.b"}, sme.Missing)
	})
}

// TestReconcile_InvalidOptions tests configuration errors.
func TestReconcile_InvalidOptions(t *testing.T) {
	ds := newDataset(t, "ds", OriginSource, kv, []any{"A", int64(1)})

	_, err := Reconcile(ds, ds, Options{})
	assert.ErrorIs(t, err, ErrNoKeyColumns)

	_, err = Reconcile(ds, ds, Options{CompareBy: []string{"k"}, Mode: "fuzzy"})
	assert.ErrorIs(t, err, ErrUnknownMatchMode)

	_, err = Reconcile(nil, ds, Options{CompareBy: []string{"k"}})
	assert.Error(t, err)

	bad := &Dataset{Name: "bad", Columns: kv, Rows: []Row{{Values: []any{"A"}}}}
	_, err = Reconcile(ds, bad, Options{CompareBy: []string{"k"}})
	assert.ErrorIs(t, err, ErrMalformedRow)
}

// TestReconcile_CompositeKeyWithNulls tests multi-column keys where nil equals nil.
func TestReconcile_CompositeKeyWithNulls(t *testing.T) {
	cols := []string{"a", "b", "v"}
	src := newDataset(t, "src", OriginSource, cols,
		[]any{nil, int64(1), "x"},
		[]any{"1", int64(1), "y"},
	)
	dst := newDataset(t, "dst", OriginDestination, cols,
		[]any{int64(1), int64(1), "y"},
		[]any{nil, int64(1), nil},
	)

	r, err := Reconcile(src, dst, Options{CompareBy: []string{"a", "b"}})
	require.NoError(t, err)

	assert.Equal(t, []OutcomeKind{KindMatched, KindSourceOnly, KindDestinationOnly}, kinds(r))
	assert.Equal(t, DiffMask{false, false, true}, r.Outcomes[0].Diff)
	// "1" and int64(1) are different keys.
	assert.Equal(t, 0, r.Outcomes[2].Destination.Index)
}

// TestReconcile_SignedZeroKeys tests that -0 and 0 are the same key.
func TestReconcile_SignedZeroKeys(t *testing.T) {
	src := newDataset(t, "src", OriginSource, kv, []any{math.Copysign(0, -1), "x"})
	dst := newDataset(t, "dst", OriginDestination, kv, []any{float64(0), "x"})

	r, err := Reconcile(src, dst, Options{CompareBy: []string{"k"}})
	require.NoError(t, err)

	assert.Equal(t, []OutcomeKind{KindMatched}, kinds(r))
	assert.Equal(t, 1, r.Summary.Exact)
}

// TestReconcile_NaNValues tests that NaN keys group while NaN values differ.
func TestReconcile_NaNValues(t *testing.T) {
	ds := newDataset(t, "ds", OriginSource, kv, []any{"A", math.NaN()})
	nanKeys := newDataset(t, "nan", OriginSource, kv, []any{math.NaN(), "x"})

	r, err := Reconcile(ds, ds, Options{CompareBy: []string{"k"}})
	require.NoError(t, err)

	assert.Equal(t, []OutcomeKind{KindMatched}, kinds(r))
	assert.Equal(t, DiffMask{false, true}, r.Outcomes[0].Diff)
	assert.Equal(t, 0, r.Summary.Exact)

	r, err = Reconcile(nanKeys, nanKeys, Options{CompareBy: []string{"k"}})
	require.NoError(t, err)
	assert.Equal(t, []OutcomeKind{KindMatched}, kinds(r))
}

// TestReconcile_WorkersDeterministic tests that parallel matching yields the sequential report.
func TestReconcile_WorkersDeterministic(t *testing.T) {
	cols := []string{"id", "v"}
	var srcRows, dstRows [][]any
	for i := 0; i < 500; i++ {
		srcRows = append(srcRows, []any{int64(i % 37), fmt.Sprintf("v%d", i%11)})
	}
	for i := 0; i < 650; i++ {
		dstRows = append(dstRows, []any{int64(i % 41), fmt.Sprintf("v%d", i%13)})
	}
	src, err := NewDataset("src", OriginSource, cols, srcRows)
	require.NoError(t, err)
	dst, err := NewDataset("dst", OriginDestination, cols, dstRows)
	require.NoError(t, err)

	for _, mode := range []MatchMode{MatchExact, MatchPositional} {
		t.Run(string(mode), func(t *testing.T) {
			seq, err := Reconcile(src, dst, Options{CompareBy: []string{"id"}, Mode: mode})
			require.NoError(t, err)
			par, err := Reconcile(src, dst, Options{CompareBy: []string{"id"}, Mode: mode, Workers: 8})
			require.NoError(t, err)

			assert.Equal(t, seq.Outcomes, par.Outcomes)
			assert.Equal(t, seq.Summary, par.Summary)
			assertConservation(t, par, src, dst)
		})
	}
}

// TestReconcile_DoesNotMutateInput tests that datasets are left untouched.
func TestReconcile_DoesNotMutateInput(t *testing.T) {
	src := newDataset(t, "src", OriginSource, kv,
		[]any{"A", int64(1)},
		[]any{"A", int64(2)},
	)
	dst := newDataset(t, "dst", OriginDestination, kv,
		[]any{"A", int64(2)},
		[]any{"B", int64(3)},
	)
	before := fmt.Sprintf("%v|%v", src.Rows, dst.Rows)

	_, err := Reconcile(src, dst, Options{CompareBy: []string{"k"}, Workers: 2})
	require.NoError(t, err)

	assert.Equal(t, before, fmt.Sprintf("%v|%v", src.Rows, dst.Rows))
	assert.Len(t, src.Rows, 2)
	assert.Len(t, dst.Rows, 2)
}

// fakeLoader serves datasets from a map and counts loads.
type fakeLoader struct {
	datasets map[string]*Dataset
	err      map[string]error
	calls    atomic.Int32
}

func (f *fakeLoader) Name() string {
	return "fake"
}

func (f *fakeLoader) Load(ctx context.Context, req LoadRequest) (*Dataset, error) {
	f.calls.Add(1)
	if err, ok := f.err[req.Source]; ok {
		return nil, err
	}
	ds, ok := f.datasets[req.Source]
	if !ok {
		return nil, fmt.Errorf("unknown source %s", req.Source)
	}
	return ds, nil
}

// TestReconcileSources tests loading both sides through a Loader.
func TestReconcileSources(t *testing.T) {
	src := newDataset(t, "a", OriginSource, kv, []any{"A", int64(1)})
	dst := newDataset(t, "b", OriginDestination, kv, []any{"A", int64(2)})
	loader := &fakeLoader{
		datasets: map[string]*Dataset{"a": src, "b": dst},
		err:      map[string]error{"broken": errors.New("connection refused")},
	}

	t.Run("success", func(t *testing.T) {
		r, err := ReconcileSources(context.Background(), &Spec{
			Source:      "a",
			Destination: "b",
			Options:     Options{CompareBy: []string{"k"}},
		}, loader, nil)
		require.NoError(t, err)
		assert.Equal(t, "a", r.Source)
		assert.Equal(t, "b", r.Destination)
		assert.Equal(t, 1, r.Summary.Partial)
		assert.GreaterOrEqual(t, int64(r.Elapsed), int64(0))
	})

	t.Run("load error", func(t *testing.T) {
		_, err := ReconcileSources(context.Background(), &Spec{
			Source:      "a",
			Destination: "broken",
			Options:     Options{CompareBy: []string{"k"}},
		}, loader, nil)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to load destination")
		assert.Contains(t, err.Error(), "connection refused")

		var loadErr *LoadError
		require.ErrorAs(t, err, &loadErr)
		assert.Equal(t, OriginDestination, loadErr.Origin)
		assert.Equal(t, "broken", loadErr.Source)
	})
}

// TestReport_Cells tests that cells follow the compared column order.
func TestReport_Cells(t *testing.T) {
	src := newDataset(t, "s", OriginSource, []string{"id", "name", "extra"}, []any{int64(1), "A", "x"})
	dst := newDataset(t, "d", OriginDestination, []string{"name", "id"}, []any{"B", int64(1)})

	r, err := Reconcile(src, dst, Options{CompareBy: []string{"id"}, Columns: []string{"id", "name"}})
	require.NoError(t, err)
	require.Len(t, r.Outcomes, 1)

	o := r.Outcomes[0]
	assert.Equal(t, []any{int64(1), "A"}, r.Cells(o.Source))
	assert.Equal(t, []any{int64(1), "B"}, r.Cells(o.Destination))
	assert.Nil(t, r.Cells(nil))

	// Without a projection rows are returned as stored.
	plain := &Report{}
	assert.Equal(t, []any{"B", int64(1)}, plain.Cells(o.Destination))
}
