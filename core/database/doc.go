// Package database handles database connections and schema inspection.
//
// It wraps GORM to open MySQL or SQLite connections from the application's
// configuration. SQLite is used for local files and in-memory test fixtures.
//
// # Schema Inspection
//
// GetTableColumns lists the columns of a table in ordinal order, which is the
// column order the SQL dataset loader hands to the reconciliation engine.
// Table names are checked with ValidateIdentifier before being interpolated.
//
// # Usage
//
//	db, err := database.Connect(cfg.Database)
//	if err != nil {
//	    log.Fatal("Database connection failed", err)
//	}
//
//	columns, err := database.GetTableColumns(db, "orders")
package database
