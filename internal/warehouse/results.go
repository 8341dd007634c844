package warehouse

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/salescope/salescope/internal/engine"
	"github.com/salescope/salescope/internal/logging"
)

// materializeBatchSize is the number of result rows per INSERT statement.
const materializeBatchSize = 500

// Materialize replaces the named result table with the result set's rows
// inside a single transaction: either the new result is committed whole or
// the previous table survives untouched. Partial results are never visible.
func Materialize(ctx context.Context, pool *pgxpool.Pool, table string, rs *engine.ResultSet) error {
	tx, err := pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, fmt.Sprintf("DROP TABLE IF EXISTS %s", table)); err != nil {
		return fmt.Errorf("failed to drop %s: %w", table, err)
	}
	if _, err := tx.Exec(ctx, createTableSQL(table, rs.Columns)); err != nil {
		return fmt.Errorf("failed to create %s: %w", table, err)
	}

	columns := make([]string, len(rs.Columns))
	for i, c := range rs.Columns {
		columns[i] = c.Name
	}
	columnList := "(" + strings.Join(columns, ", ") + ")"

	batch := make([]string, 0, materializeBatchSize)
	flush := func() error {
		if len(batch) == 0 {
			return nil
		}
		sql := fmt.Sprintf("INSERT INTO %s %s VALUES %s", table, columnList, strings.Join(batch, ", "))
		if _, err := tx.Exec(ctx, sql); err != nil {
			return fmt.Errorf("failed to insert into %s: %w", table, err)
		}
		batch = batch[:0]
		return nil
	}

	for _, row := range rs.Rows {
		batch = append(batch, rowValuesSQL(row))
		if len(batch) >= materializeBatchSize {
			if err := flush(); err != nil {
				return err
			}
		}
	}
	if err := flush(); err != nil {
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit %s: %w", table, err)
	}

	logging.Debug().
		Str("table", table).
		Int("rows", len(rs.Rows)).
		Msg("Materialized result table")

	return nil
}

func createTableSQL(table string, cols []engine.Column) string {
	defs := make([]string, len(cols))
	for i, c := range cols {
		var sqlType string
		switch c.Type {
		case engine.TextColumn:
			sqlType = "TEXT"
		case engine.NumericColumn:
			sqlType = "NUMERIC(14,4)"
		case engine.IntegerColumn:
			sqlType = "INTEGER"
		}
		defs[i] = c.Name + " " + sqlType
	}
	return fmt.Sprintf("CREATE TABLE %s (%s)", table, strings.Join(defs, ", "))
}

func rowValuesSQL(row []any) string {
	vals := make([]string, len(row))
	for i, v := range row {
		switch v := v.(type) {
		case string:
			vals[i] = "'" + strings.ReplaceAll(v, "'", "''") + "'"
		case float64:
			vals[i] = fmt.Sprintf("%g", v)
		case int:
			vals[i] = fmt.Sprintf("%d", v)
		default:
			vals[i] = fmt.Sprintf("'%v'", v)
		}
	}
	return "(" + strings.Join(vals, ", ") + ")"
}
