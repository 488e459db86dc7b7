package engine

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"schema-sync/internal/dialect"
	"schema-sync/internal/schema"
)

// Apply runs every operation of the plan, in plan order, each inside its
// own explicit transaction. Existence is re-checked against the live
// database immediately before each DDL statement, so a stale plan or a
// concurrent run makes an operation a no-op rather than an error.
//
// A failed operation is recorded against its entity and execution
// continues: one entity's failure must not block the others. Cancellation
// is honored between operations, never mid-statement.
func Apply(ctx context.Context, db *sql.DB, d dialect.Dialect, schemaName string, plan *Plan) *Report {
	target := d.GetSchemaName(schemaName)
	rep := &Report{Notes: plan.Notes}

	for _, op := range plan.Ops {
		if err := ctx.Err(); err != nil {
			rep.Failures = append(rep.Failures, Failure{Entity: op.Entity, Operation: op.String(), Err: err})
			break
		}
		if err := applyOne(ctx, db, d, target, op, rep); err != nil {
			rep.Failures = append(rep.Failures, Failure{Entity: op.Entity, Operation: op.String(), Err: err})
		}
	}

	return rep
}

func applyOne(ctx context.Context, db *sql.DB, d dialect.Dialect, target string, op Operation, rep *Report) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	switch op.Kind {
	case OpCreateTable:
		ok, err := exists(ctx, tx, d.TableExistsQuery(), target, op.Table.Name)
		if err != nil {
			return fmt.Errorf("failed to check table %s: %w", op.Table.Name, err)
		}
		if ok {
			rep.Skipped++
			return nil
		}
		// Enum types the new table references must exist first; created
		// here as part of the same operation, inside the same transaction.
		for _, c := range op.Table.Columns {
			if c.Enum == nil {
				continue
			}
			ok, err := exists(ctx, tx, d.EnumTypeExistsQuery(), target, c.Enum.Name)
			if err != nil {
				return fmt.Errorf("failed to check enum type %s: %w", c.Enum.Name, err)
			}
			if ok {
				continue
			}
			if _, err := tx.ExecContext(ctx, d.CreateEnumTypeQuery(c.Enum.Name, c.Enum.Values)); err != nil {
				return fmt.Errorf("failed to create enum type %s: %w", c.Enum.Name, err)
			}
		}
		if _, err := tx.ExecContext(ctx, d.CreateTableQuery(op.Table.Name, columnDefs(d, op.Table.Columns))); err != nil {
			return fmt.Errorf("failed to create table %s: %w", op.Table.Name, err)
		}
		if err := tx.Commit(); err != nil {
			return fmt.Errorf("failed to commit create table %s: %w", op.Table.Name, err)
		}
		rep.TablesCreated++

	case OpCreateEnumType:
		ok, err := exists(ctx, tx, d.EnumTypeExistsQuery(), target, op.Enum.Name)
		if err != nil {
			return fmt.Errorf("failed to check enum type %s: %w", op.Enum.Name, err)
		}
		if ok {
			rep.Skipped++
			return nil
		}
		if _, err := tx.ExecContext(ctx, d.CreateEnumTypeQuery(op.Enum.Name, op.Enum.Values)); err != nil {
			return fmt.Errorf("failed to create enum type %s: %w", op.Enum.Name, err)
		}
		if err := tx.Commit(); err != nil {
			return fmt.Errorf("failed to commit create enum type %s: %w", op.Enum.Name, err)
		}
		rep.EnumTypesCreated++

	case OpAddColumn:
		ok, err := exists(ctx, tx, d.ColumnExistsQuery(), target, op.Entity, op.Column.Name)
		if err != nil {
			return fmt.Errorf("failed to check column %s.%s: %w", op.Entity, op.Column.Name, err)
		}
		if ok {
			rep.Skipped++
			return nil
		}
		if _, err := tx.ExecContext(ctx, d.AddColumnQuery(op.Entity, columnDef(d, op.Column))); err != nil {
			return fmt.Errorf("failed to add column %s.%s: %w", op.Entity, op.Column.Name, err)
		}
		if err := tx.Commit(); err != nil {
			return fmt.Errorf("failed to commit add column %s.%s: %w", op.Entity, op.Column.Name, err)
		}
		rep.ColumnsAdded++

	default:
		return fmt.Errorf("unknown operation kind: %s", op.Kind)
	}

	return nil
}

func exists(ctx context.Context, tx *sql.Tx, query string, args ...interface{}) (bool, error) {
	var one int
	err := tx.QueryRowContext(ctx, query, args...).Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

func columnDefs(d dialect.Dialect, cols []*schema.ColumnDeclaration) []dialect.ColumnDef {
	defs := make([]dialect.ColumnDef, 0, len(cols))
	for _, c := range cols {
		defs = append(defs, columnDef(d, c))
	}
	return defs
}

func columnDef(d dialect.Dialect, c *schema.ColumnDeclaration) dialect.ColumnDef {
	enumName := ""
	if c.Enum != nil {
		enumName = c.Enum.Name
	}
	return dialect.ColumnDef{
		Name:       c.Name,
		SQLType:    d.ColumnSQLType(string(c.Type), enumName),
		Nullable:   c.Nullable,
		PrimaryKey: c.PrimaryKey,
		Default:    c.Default,
	}
}
