// Package dataset loads reconciliation inputs from databases, object storage
// and a synthetic generator.
//
// Every loader implements reconcile.Loader and handles one identifier scheme:
//
//   - sql:<table>?order=<column>  (SQLLoader, gorm)
//   - s3:<object key>?trim=1      (CSVLoader, minio)
//   - synthetic:<rows>?seed=<n>   (SyntheticLoader)
//
// Registry dispatches on the scheme and logs every load. Values are folded into
// the row value domain (string, int64, float64, bool, nil) with core/utils so
// rows from different schemes compare on the same types.
//
// # Synthetic pairs
//
// GeneratePair produces a source and destination dataset with ids drawn from
// 1..50, five letter uppercase names and random flags, then overwrites random
// destination rows with copies of random source rows. ExportCSV uploads them
// so they can be reconciled later through the s3 scheme.
package dataset
