// Package reconcile matches the rows of two tabular datasets and reports where
// they diverge. It is the engine behind migration and ETL validation: given a
// key made of one or more columns it pairs source and destination rows, even
// when keys repeat and row counts differ, and classifies every row.
//
// # Pipeline
//
//  1. Key extraction: compare-by columns are resolved once for both datasets.
//     A missing column fails the call with *MissingColumnError before any row
//     is touched.
//
//  2. Grouping: each dataset is bucketed by key in one pass. Buckets keep the
//     original row order.
//
//  3. Matching: rows sharing a key are paired according to the MatchMode.
//     Distinct keys are independent and may be spread over Options.Workers
//     goroutines.
//
//  4. Diffing: every pair gets a DiffMask aligned to the compared columns.
//
//  5. Assembly: outcomes are ordered by source key first-encounter, followed by
//     unpaired destination rows in destination order.
//
// # Match modes
//
// MatchExact consumes duplicates greedily: each source row takes the first
// unconsumed same-key destination row equal on every column, or else the first
// unconsumed same-key row as a partial match. It costs O(s*d) per key, which
// becomes O(n*m) when nearly all rows share one key.
//
// MatchPositional pairs same-key rows by ordinal position. It costs O(max(s,d))
// per key and is meant for large pre-sorted inputs. It does not look for the
// best pairing, so reordering same-key rows changes the diff masks.
//
// # Equality
//
// Values are equal only when they have the same type and value, and nil equals
// only nil. Floats compare numerically, so -0 and 0 are one key. NaN is the
// exception: NaN keys are grouped together but a NaN value never equals
// another, so a dataset holding NaN outside its key columns does not reconcile
// as an exact match against itself.
//
// # Usage Example
//
//	report, err := reconcile.Reconcile(src, dst, reconcile.Options{
//	    CompareBy: []string{"id"},
//	    Mode:      reconcile.MatchExact,
//	})
//
//	// Loading through a Loader, with a 5 minute dataset cache
//	cache := reconcile.NewCache(5 * time.Minute)
//	report, err := reconcile.ReconcileSources(ctx, &reconcile.Spec{
//	    Source:      "sql:users",
//	    Destination: "s3:exports/users.csv",
//	    Options:     opts,
//	}, registry, cache)
package reconcile
