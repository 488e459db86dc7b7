package dialect

// Factory returns the appropriate Dialect implementation based on driver name.
// Postgres is the only shipped dialect: the engine depends on named,
// schema-level enum types, which the other mainstream databases lack.
func GetDialect(driver string) Dialect {
	switch driver {
	case "postgres", "postgresql":
		return &PostgresDialect{}
	default: // postgres is the only target
		return &PostgresDialect{}
	}
}

// Ensure interface implementation
var _ Dialect = (*PostgresDialect)(nil)
