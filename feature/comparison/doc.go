// Package comparison exposes dataset reconciliation over HTTP and renders
// reports as HTML.
//
// # Endpoints
//
//   - GET /compare: loads two datasets by identifier and reconciles them.
//   - POST /compare: reconciles two datasets posted as JSON.
//   - GET /compare/datasets: lists CSV datasets in the storage bucket.
//
// Both compare endpoints answer with the JSON report, the summary only
// (summary=true) or the colored side by side HTML view (format=html).
//
// Configuration errors (missing compare-by columns, schema mismatches, unknown
// match modes) answer 400. Datasets that cannot be loaded answer 502.
package comparison
