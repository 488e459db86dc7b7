package engine_test

import (
	"context"
	"testing"

	"schema-sync/internal/dialect"
	"schema-sync/internal/engine"
	"schema-sync/internal/schema"

	"github.com/DATA-DOG/go-sqlmock"
)

func TestSeed(t *testing.T) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherEqual))
	if err != nil {
		t.Fatalf("failed to create sqlmock: %v", err)
	}
	defer db.Close()

	d := &dialect.PostgresDialect{}
	themes := &schema.EntityDeclaration{
		Name: "shop_themes",
		Columns: []*schema.ColumnDeclaration{
			{Name: "id", Type: schema.TypeInteger, PrimaryKey: true},
			{Name: "name", Type: schema.TypeText, Nullable: true},
			{Name: "logo", Type: schema.TypeText},
		},
	}

	insert := d.InsertQuery("shop_themes", []string{"name", "logo"})
	mock.ExpectBegin()
	mock.ExpectExec(insert).WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectExec(insert).WillReturnResult(sqlmock.NewResult(2, 1))
	mock.ExpectCommit()

	ticks := 0
	results := engine.Seed(context.Background(), db, d, []*schema.EntityDeclaration{themes}, 2, func() { ticks++ })

	if len(results) != 1 {
		t.Fatalf("Expected 1 result, got %d", len(results))
	}
	r := results[0]
	if r.Status != "OK" || r.Inserted != 2 {
		t.Errorf("Expected OK with 2 rows, got %+v", r)
	}
	if ticks != 2 {
		t.Errorf("Expected 2 progress ticks, got %d", ticks)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestSeed_PrimaryKeyOnlyTableSkipped(t *testing.T) {
	db, _, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to create sqlmock: %v", err)
	}
	defer db.Close()

	bare := &schema.EntityDeclaration{
		Name:    "counters",
		Columns: []*schema.ColumnDeclaration{{Name: "id", Type: schema.TypeInteger, PrimaryKey: true}},
	}

	results := engine.Seed(context.Background(), db, &dialect.PostgresDialect{}, []*schema.EntityDeclaration{bare}, 5, nil)
	if len(results) != 1 || results[0].Status != "SKIPPED" {
		t.Errorf("Expected SKIPPED for a PK-only table, got %+v", results)
	}
}
