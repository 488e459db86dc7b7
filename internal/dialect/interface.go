package dialect

// ColumnDef is a dialect-neutral column definition, resolved from a
// declaration by the engine before DDL is rendered. SQLType is already the
// concrete storage type (or the enum type name).
type ColumnDef struct {
	Name       string
	SQLType    string
	Nullable   bool
	PrimaryKey bool
	Default    string // raw SQL literal, empty when absent
}

// Dialect abstracts database-specific introspection and DDL generation.
type Dialect interface {
	// Metadata Queries (Schema Introspection)
	TablesQuery(schema string) string
	ColumnsQuery(schema string) string
	EnumTypesQuery(schema string) string

	// Existence Checks - run immediately before each DDL statement so a
	// stale plan or a concurrent run degrades to a no-op, never an error.
	TableExistsQuery() string
	ColumnExistsQuery() string
	EnumTypeExistsQuery() string

	// DDL Generation (additive only)
	CreateTableQuery(table string, cols []ColumnDef) string
	CreateEnumTypeQuery(name string, values []string) string
	AddColumnQuery(table string, col ColumnDef) string

	// Query Generation (seeding)
	InsertQuery(table string, cols []string) string
	Placeholder(index int) string // Returns $1, $2, ...

	// Helpers
	ColumnSQLType(semantic string, enumName string) string
	NormalizeType(sqlType string) string
	GetSchemaName(input string) string
}
