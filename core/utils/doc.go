// Package utils provides value conversion helpers shared by the dataset loaders.
//
// NormalizeValue folds database driver values into the row value domain and
// ParseScalar types CSV fields, so rows from different sources compare on the
// same value types. ToString is the inverse used for CSV export and rendering.
package utils
