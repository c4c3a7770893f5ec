package store

import (
	"context"
	"database/sql"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/jmoiron/sqlx"
)

// Rows per multi-row INSERT, well under sqlite's bound parameter limit.
const batchSize = 500

// insertBatch runs a named multi-row insert over items in chunks of batchSize.
func insertBatch[T any](ctx context.Context, tx *sqlx.Tx, query string, items []T) error {
	for start := 0; start < len(items); start += batchSize {
		end := min(start+batchSize, len(items))
		if _, err := tx.NamedExecContext(ctx, query, items[start:end]); err != nil {
			return err
		}
	}
	return nil
}

// checkAffectedRows reports sql.ErrNoRows when a write touched nothing.
func checkAffectedRows(result sql.Result) error {
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check affected rows: %w", err)
	}
	if rowsAffected == 0 {
		return sql.ErrNoRows
	}
	return nil
}

func selectBuilt(ctx context.Context, q sqlx.QueryerContext, dest any, b sq.SelectBuilder) error {
	query, args, err := b.ToSql()
	if err != nil {
		return fmt.Errorf("build query: %w", err)
	}
	return sqlx.SelectContext(ctx, q, dest, sqlx.Rebind(sqlx.BindType(driverOf(q)), query), args...)
}

func driverOf(q sqlx.QueryerContext) string {
	switch v := q.(type) {
	case *sqlx.DB:
		return v.DriverName()
	case *sqlx.Tx:
		return v.DriverName()
	}
	return ""
}
