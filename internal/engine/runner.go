package engine

import (
	"context"
	"database/sql"
	"log"

	"schema-sync/internal/dialect"
	"schema-sync/internal/schema"
)

// Run performs one full reconciliation: read the catalog, diff it against
// the declarations, apply the plan. The two run-level failures (catalog
// unavailable, enum type conflict) abort before any DDL and surface as a
// hard error; per-operation DDL failures are data in the returned report.
func Run(ctx context.Context, db *sql.DB, d dialect.Dialect, entities []*schema.EntityDeclaration, schemaName string) (*Report, error) {
	if err := schema.ValidateAll(entities); err != nil {
		return nil, err
	}

	snap, err := schema.ReadCatalog(ctx, db, d, schemaName)
	if err != nil {
		return nil, err
	}

	plan, err := Diff(entities, snap)
	if err != nil {
		return nil, err
	}

	if plan.Empty() {
		log.Printf("Schema up to date (%d entities checked)", len(entities))
	} else {
		log.Printf("Applying %d operation(s)...", len(plan.Ops))
	}

	return Apply(ctx, db, d, schemaName, plan), nil
}
