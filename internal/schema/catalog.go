package schema

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"schema-sync/internal/dialect"
)

// ErrCatalogUnavailable marks introspection failures (connectivity,
// privileges). It is fatal to a reconciliation run: no plan is built.
var ErrCatalogUnavailable = errors.New("catalog unavailable")

// ColumnInfo is the catalog's view of one existing column. DataType is
// already normalized by the dialect.
type ColumnInfo struct {
	DataType string
	Nullable bool
}

// Snapshot is a read-only, point-in-time view of the live database state.
// It is built once per reconciliation run, before any DDL, and never
// mutated afterwards.
type Snapshot struct {
	Tables    map[string]map[string]ColumnInfo
	EnumTypes map[string][]string
}

func (s *Snapshot) HasTable(name string) bool {
	_, ok := s.Tables[name]
	return ok
}

func (s *Snapshot) HasColumn(table, column string) bool {
	cols, ok := s.Tables[table]
	if !ok {
		return false
	}
	_, ok = cols[column]
	return ok
}

func (s *Snapshot) HasEnumType(name string) bool {
	_, ok := s.EnumTypes[name]
	return ok
}

// Column returns the catalog info for one column, when present.
func (s *Snapshot) Column(table, column string) (ColumnInfo, bool) {
	cols, ok := s.Tables[table]
	if !ok {
		return ColumnInfo{}, false
	}
	ci, ok := cols[column]
	return ci, ok
}

// ReadCatalog introspects the live database and returns a Snapshot of its
// tables, columns and enum types. It reflects committed state only and has
// no side effects.
func ReadCatalog(ctx context.Context, db *sql.DB, d dialect.Dialect, schemaName string) (*Snapshot, error) {
	target := d.GetSchemaName(schemaName)

	if err := db.PingContext(ctx); err != nil {
		return nil, fmt.Errorf("%w: failed to connect: %w", ErrCatalogUnavailable, err)
	}

	snap := &Snapshot{
		Tables:    make(map[string]map[string]ColumnInfo),
		EnumTypes: make(map[string][]string),
	}

	// --- Step 1: Fetch Tables ---
	rows, err := db.QueryContext(ctx, d.TablesQuery(target), target)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to query tables: %w", ErrCatalogUnavailable, err)
	}
	defer rows.Close()

	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("%w: failed to scan table name: %w", ErrCatalogUnavailable, err)
		}
		snap.Tables[name] = make(map[string]ColumnInfo)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: error iterating tables: %w", ErrCatalogUnavailable, err)
	}

	// --- Step 2: Fetch Columns ---
	colRows, err := db.QueryContext(ctx, d.ColumnsQuery(target), target)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to query columns: %w", ErrCatalogUnavailable, err)
	}
	defer colRows.Close()

	for colRows.Next() {
		var tName, cName, dType, udtName, isNull sql.NullString
		if err := colRows.Scan(&tName, &cName, &dType, &udtName, &isNull); err != nil {
			return nil, fmt.Errorf("%w: failed to scan column (table: %s): %w", ErrCatalogUnavailable, tName.String, err)
		}
		if !tName.Valid || !cName.Valid {
			continue // Skip invalid rows
		}

		cols, ok := snap.Tables[tName.String]
		if !ok {
			continue
		}

		// Prefer udt_name: it names the enum type where data_type only
		// says USER-DEFINED.
		storage := dType.String
		if udtName.Valid && udtName.String != "" {
			storage = udtName.String
		}
		cols[cName.String] = ColumnInfo{
			DataType: d.NormalizeType(storage),
			Nullable: isNull.String == "YES",
		}
	}
	if err := colRows.Err(); err != nil {
		return nil, fmt.Errorf("%w: error iterating columns: %w", ErrCatalogUnavailable, err)
	}

	// --- Step 3: Fetch Enum Types ---
	enumRows, err := db.QueryContext(ctx, d.EnumTypesQuery(target), target)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to query enum types: %w", ErrCatalogUnavailable, err)
	}
	defer enumRows.Close()

	for enumRows.Next() {
		var typName, label string
		if err := enumRows.Scan(&typName, &label); err != nil {
			return nil, fmt.Errorf("%w: failed to scan enum label: %w", ErrCatalogUnavailable, err)
		}
		snap.EnumTypes[typName] = append(snap.EnumTypes[typName], label)
	}
	if err := enumRows.Err(); err != nil {
		return nil, fmt.Errorf("%w: error iterating enum types: %w", ErrCatalogUnavailable, err)
	}

	return snap, nil
}
