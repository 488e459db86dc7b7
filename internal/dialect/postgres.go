package dialect

import (
	"fmt"
	"strings"
)

type PostgresDialect struct{}

func (d *PostgresDialect) TablesQuery(schema string) string {
	// use $1 placeholder
	return `SELECT TABLE_NAME FROM information_schema.TABLES WHERE TABLE_SCHEMA = $1 AND TABLE_TYPE = 'BASE TABLE'`
}

func (d *PostgresDialect) ColumnsQuery(schema string) string {
	// udt_name carries the real storage type for user-defined types
	// (enum columns report data_type = 'USER-DEFINED').
	return `SELECT 
    c.table_name, 
    c.column_name, 
    c.data_type, 
    c.udt_name, 
    c.is_nullable
FROM information_schema.columns c
WHERE c.table_schema = $1 
ORDER BY c.table_name, c.ordinal_position`
}

func (d *PostgresDialect) EnumTypesQuery(schema string) string {
	// enumsortorder preserves the declared label order.
	return `SELECT t.typname, e.enumlabel
FROM pg_type t
JOIN pg_enum e ON e.enumtypid = t.oid
JOIN pg_namespace n ON n.oid = t.typnamespace
WHERE n.nspname = $1
ORDER BY t.typname, e.enumsortorder`
}

func (d *PostgresDialect) TableExistsQuery() string {
	return `SELECT 1 FROM information_schema.tables WHERE table_schema = $1 AND table_name = $2`
}

func (d *PostgresDialect) ColumnExistsQuery() string {
	return `SELECT 1 FROM information_schema.columns WHERE table_schema = $1 AND table_name = $2 AND column_name = $3`
}

func (d *PostgresDialect) EnumTypeExistsQuery() string {
	return `SELECT 1 FROM pg_type t JOIN pg_namespace n ON n.oid = t.typnamespace WHERE n.nspname = $1 AND t.typname = $2`
}

func (d *PostgresDialect) CreateTableQuery(table string, cols []ColumnDef) string {
	defs := make([]string, 0, len(cols))
	for _, c := range cols {
		defs = append(defs, d.columnDDL(c))
	}
	return fmt.Sprintf("CREATE TABLE %s (%s)", table, strings.Join(defs, ", "))
}

func (d *PostgresDialect) CreateEnumTypeQuery(name string, values []string) string {
	quoted := make([]string, 0, len(values))
	for _, v := range values {
		quoted = append(quoted, quoteLiteral(v))
	}
	return fmt.Sprintf("CREATE TYPE %s AS ENUM (%s)", name, strings.Join(quoted, ", "))
}

func (d *PostgresDialect) AddColumnQuery(table string, col ColumnDef) string {
	return fmt.Sprintf("ALTER TABLE %s ADD COLUMN %s", table, d.columnDDL(col))
}

// columnDDL renders one column definition. Integer primary keys become
// serial columns, matching how the tables were originally created.
func (d *PostgresDialect) columnDDL(c ColumnDef) string {
	var b strings.Builder
	b.WriteString(c.Name)
	b.WriteString(" ")

	if c.PrimaryKey {
		switch strings.ToUpper(c.SQLType) {
		case "INTEGER":
			b.WriteString("SERIAL")
		case "BIGINT":
			b.WriteString("BIGSERIAL")
		default:
			b.WriteString(c.SQLType)
		}
		b.WriteString(" PRIMARY KEY")
		return b.String()
	}

	b.WriteString(c.SQLType)
	if c.Default != "" {
		b.WriteString(" DEFAULT ")
		b.WriteString(c.Default)
	}
	if !c.Nullable {
		b.WriteString(" NOT NULL")
	}
	return b.String()
}

func (d *PostgresDialect) InsertQuery(table string, cols []string) string {
	vals := GeneratePlaceholders(len(cols), d.Placeholder)
	return fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s) ON CONFLICT DO NOTHING", table, strings.Join(cols, ", "), vals)
}

func (d *PostgresDialect) Placeholder(index int) string {
	return fmt.Sprintf("$%d", index+1)
}

func (d *PostgresDialect) ColumnSQLType(semantic string, enumName string) string {
	switch semantic {
	case "integer":
		return "INTEGER"
	case "big-integer":
		return "BIGINT"
	case "text":
		return "TEXT"
	case "boolean":
		return "BOOLEAN"
	case "timestamp":
		return "TIMESTAMP"
	case "enumerated":
		return enumName
	default:
		// Unknown semantic types degrade to TEXT rather than failing DDL.
		return "TEXT"
	}
}

// NormalizeType collapses the catalog's storage type aliases onto the
// canonical names the differ compares against. Enum columns come through
// as their udt_name and are returned unchanged.
func (d *PostgresDialect) NormalizeType(sqlType string) string {
	t := strings.ToLower(sqlType)
	switch t {
	case "int2", "int4", "serial":
		return "integer"
	case "int8", "bigserial":
		return "bigint"
	case "bool":
		return "boolean"
	case "text", "varchar", "bpchar":
		return "text"
	case "timestamp", "timestamptz":
		return "timestamp"
	default:
		return t
	}
}

func (d *PostgresDialect) GetSchemaName(input string) string {
	if input == "" {
		return "public"
	}
	return input
}

func quoteLiteral(v string) string {
	return "'" + strings.ReplaceAll(v, "'", "''") + "'"
}
