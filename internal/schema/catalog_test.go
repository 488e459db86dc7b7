package schema_test

import (
	"context"
	"errors"
	"testing"

	"schema-sync/internal/dialect"
	"schema-sync/internal/schema"

	"github.com/DATA-DOG/go-sqlmock"
)

func TestReadCatalog(t *testing.T) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherEqual))
	if err != nil {
		t.Fatalf("failed to create sqlmock: %v", err)
	}
	defer db.Close()

	d := &dialect.PostgresDialect{}

	mock.ExpectQuery(d.TablesQuery("public")).WithArgs("public").
		WillReturnRows(sqlmock.NewRows([]string{"table_name"}).
			AddRow("admins").
			AddRow("users"))

	mock.ExpectQuery(d.ColumnsQuery("public")).WithArgs("public").
		WillReturnRows(sqlmock.NewRows([]string{"table_name", "column_name", "data_type", "udt_name", "is_nullable"}).
			AddRow("admins", "id", "integer", "int4", "NO").
			AddRow("admins", "telegram_id", "bigint", "int8", "NO").
			AddRow("admins", "role", "USER-DEFINED", "role", "NO").
			AddRow("users", "id", "bigint", "int8", "NO").
			AddRow("users", "language_code", "character varying", "varchar", "YES"))

	mock.ExpectQuery(d.EnumTypesQuery("public")).WithArgs("public").
		WillReturnRows(sqlmock.NewRows([]string{"typname", "enumlabel"}).
			AddRow("role", "admin").
			AddRow("role", "sadmin"))

	snap, err := schema.ReadCatalog(context.Background(), db, d, "public")
	if err != nil {
		t.Fatalf("ReadCatalog failed: %v", err)
	}

	if !snap.HasTable("admins") || !snap.HasTable("users") {
		t.Errorf("Expected admins and users tables, got %v", snap.Tables)
	}
	if !snap.HasColumn("admins", "role") {
		t.Error("Expected admins.role in snapshot")
	}

	// udt_name wins over data_type, then gets normalized.
	if ci, _ := snap.Column("admins", "role"); ci.DataType != "role" {
		t.Errorf("Expected enum column type 'role', got %q", ci.DataType)
	}
	if ci, _ := snap.Column("users", "id"); ci.DataType != "bigint" {
		t.Errorf("Expected normalized bigint, got %q", ci.DataType)
	}
	if ci, _ := snap.Column("users", "language_code"); ci.DataType != "text" || !ci.Nullable {
		t.Errorf("Expected nullable text, got %+v", ci)
	}

	if got := snap.EnumTypes["role"]; len(got) != 2 || got[0] != "admin" || got[1] != "sadmin" {
		t.Errorf("Expected role labels in declared order, got %v", got)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestReadCatalog_Unavailable(t *testing.T) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherEqual))
	if err != nil {
		t.Fatalf("failed to create sqlmock: %v", err)
	}
	defer db.Close()

	d := &dialect.PostgresDialect{}
	mock.ExpectQuery(d.TablesQuery("public")).WithArgs("public").
		WillReturnError(errors.New("pq: password authentication failed"))

	_, err = schema.ReadCatalog(context.Background(), db, d, "public")
	if !errors.Is(err, schema.ErrCatalogUnavailable) {
		t.Fatalf("Expected ErrCatalogUnavailable, got %v", err)
	}
}

func TestReadCatalog_IgnoresColumnsOfUnknownTables(t *testing.T) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherEqual))
	if err != nil {
		t.Fatalf("failed to create sqlmock: %v", err)
	}
	defer db.Close()

	d := &dialect.PostgresDialect{}

	mock.ExpectQuery(d.TablesQuery("public")).WithArgs("public").
		WillReturnRows(sqlmock.NewRows([]string{"table_name"}).AddRow("users"))
	mock.ExpectQuery(d.ColumnsQuery("public")).WithArgs("public").
		WillReturnRows(sqlmock.NewRows([]string{"table_name", "column_name", "data_type", "udt_name", "is_nullable"}).
			AddRow("phantom", "id", "integer", "int4", "NO").
			AddRow("users", "id", "bigint", "int8", "NO"))
	mock.ExpectQuery(d.EnumTypesQuery("public")).WithArgs("public").
		WillReturnRows(sqlmock.NewRows([]string{"typname", "enumlabel"}))

	snap, err := schema.ReadCatalog(context.Background(), db, d, "public")
	if err != nil {
		t.Fatalf("ReadCatalog failed: %v", err)
	}
	if snap.HasTable("phantom") {
		t.Error("Columns of tables missing from the table list must be dropped")
	}
	if !snap.HasColumn("users", "id") {
		t.Error("Expected users.id in snapshot")
	}
}
