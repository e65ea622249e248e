package dataset

import (
	"context"
	"fmt"
	"strings"

	"table-reconciler/core/database"
	"table-reconciler/core/reconcile"
	"table-reconciler/core/utils"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// SQLLoader reads a database table. Identifiers look like "sql:<table>?order=<column>".
type SQLLoader struct {
	db *gorm.DB
}

// NewSQLLoader creates a loader reading from db.
func NewSQLLoader(db *gorm.DB) *SQLLoader {
	return &SQLLoader{db: db}
}

// Name returns the scheme handled by the loader.
func (l *SQLLoader) Name() string {
	return "sql"
}

// Load selects every column of the table in ordinal order.
func (l *SQLLoader) Load(ctx context.Context, req reconcile.LoadRequest) (*reconcile.Dataset, error) {
	if l.db == nil {
		return nil, fmt.Errorf("database is not configured")
	}
	src, err := ParseSource(req.Source)
	if err != nil {
		return nil, err
	}
	table := src.Target

	columns, err := database.GetTableColumns(l.db.WithContext(ctx), table)
	if err != nil {
		return nil, err
	}
	if len(columns) == 0 {
		return nil, fmt.Errorf("table %s not found or has no columns", table)
	}
	names := database.ColumnNames(columns)

	selected := make([]clause.Column, len(names))
	for i, n := range names {
		selected[i] = clause.Column{Name: n}
	}
	q := l.db.WithContext(ctx).Table(table).Clauses(clause.Select{Columns: selected})
	if order := src.Params.Get("order"); order != "" {
		if err := database.ValidateIdentifier(order); err != nil {
			return nil, err
		}
		q = q.Order(clause.OrderByColumn{Column: clause.Column{Name: order}})
	}
	if req.Limit > 0 {
		q = q.Limit(req.Limit)
	}

	rows, err := q.Rows()
	if err != nil {
		return nil, fmt.Errorf("failed to query table %s: %w", table, err)
	}
	defer rows.Close()

	boolColumn := make([]bool, len(columns))
	for i, c := range columns {
		boolColumn[i] = isBoolType(c.Type)
	}

	var values [][]any
	for rows.Next() {
		raw := make([]any, len(names))
		ptrs := make([]any, len(names))
		for i := range raw {
			ptrs[i] = &raw[i]
		}
		if err := rows.Scan(ptrs...); err != nil {
			return nil, fmt.Errorf("failed to scan row of %s: %w", table, err)
		}
		for i, v := range raw {
			if boolColumn[i] && v != nil {
				raw[i] = utils.ToBool(v)
				continue
			}
			raw[i] = utils.NormalizeValue(v)
		}
		values = append(values, raw)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read table %s: %w", table, err)
	}

	return reconcile.NewDataset(req.Source, req.Origin, names, values)
}

// isBoolType reports whether a column type holds booleans (MySQL tinyint(1), SQLite boolean).
func isBoolType(t string) bool {
	return t == "tinyint(1)" || strings.HasPrefix(t, "bool")
}
