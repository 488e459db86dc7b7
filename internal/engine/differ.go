package engine

import (
	"errors"
	"fmt"

	"schema-sync/internal/schema"
)

// ErrEnumTypeConflict marks two declarations that disagree on an enum
// type's value set. This is a configuration bug: it aborts plan
// construction for the whole run, before any DDL.
var ErrEnumTypeConflict = errors.New("enum type conflict")

// Diff compares the declared entities against the catalog snapshot and
// produces the minimal additive plan. It never emits drop or alter
// operations.
func Diff(entities []*schema.EntityDeclaration, snap *schema.Snapshot) (*Plan, error) {
	if err := checkEnumConflicts(entities); err != nil {
		return nil, err
	}

	plan := &Plan{}
	// Enum types already covered by this plan, either by an explicit
	// create-enum-type or implied by an earlier create-table.
	queued := make(map[string]bool)

	for _, e := range entities {
		if !snap.HasTable(e.Name) {
			// A brand-new table is one self-contained operation: it
			// creates its columns and any enum types they need.
			plan.Ops = append(plan.Ops, Operation{Kind: OpCreateTable, Entity: e.Name, Table: e})
			for _, c := range e.Columns {
				if c.Enum != nil {
					queued[c.Enum.Name] = true
				}
			}
			continue
		}

		for _, c := range e.Columns {
			if snap.HasColumn(e.Name, c.Name) {
				noteDrift(plan, snap, e, c)
				continue
			}
			if c.Enum != nil && !snap.HasEnumType(c.Enum.Name) && !queued[c.Enum.Name] {
				plan.Ops = append(plan.Ops, Operation{Kind: OpCreateEnumType, Entity: e.Name, Enum: c.Enum})
				queued[c.Enum.Name] = true
			}
			plan.Ops = append(plan.Ops, Operation{Kind: OpAddColumn, Entity: e.Name, Column: c})
		}
	}

	return plan, nil
}

// checkEnumConflicts verifies that every declaration of an enum type name
// carries an identical value set.
func checkEnumConflicts(entities []*schema.EntityDeclaration) error {
	seen := make(map[string][]string)
	owner := make(map[string]string)

	for _, e := range entities {
		for _, c := range e.Columns {
			if c.Enum == nil {
				continue
			}
			prev, ok := seen[c.Enum.Name]
			if !ok {
				seen[c.Enum.Name] = c.Enum.Values
				owner[c.Enum.Name] = e.Name
				continue
			}
			if !equalValues(prev, c.Enum.Values) {
				return fmt.Errorf("%w: type %s declared as %v by %s but as %v by %s",
					ErrEnumTypeConflict, c.Enum.Name, prev, owner[c.Enum.Name], c.Enum.Values, e.Name)
			}
		}
	}
	return nil
}

func equalValues(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// noteDrift records a type or nullability mismatch on an existing column.
// Detected but never acted on.
func noteDrift(plan *Plan, snap *schema.Snapshot, e *schema.EntityDeclaration, c *schema.ColumnDeclaration) {
	info, ok := snap.Column(e.Name, c.Name)
	if !ok {
		return
	}

	want := expectedCatalogType(c)
	if want != "" && info.DataType != want {
		plan.Notes = append(plan.Notes, fmt.Sprintf(
			"%s.%s: declared %s but catalog has %s (left untouched)",
			e.Name, c.Name, want, info.DataType))
	}
	if info.Nullable != c.Nullable && !c.PrimaryKey {
		plan.Notes = append(plan.Notes, fmt.Sprintf(
			"%s.%s: declared nullable=%t but catalog has nullable=%t (left untouched)",
			e.Name, c.Name, c.Nullable, info.Nullable))
	}
}

// expectedCatalogType maps a semantic type onto the normalized name the
// catalog reader reports for it.
func expectedCatalogType(c *schema.ColumnDeclaration) string {
	switch c.Type {
	case schema.TypeInteger:
		return "integer"
	case schema.TypeBigInt:
		return "bigint"
	case schema.TypeText:
		return "text"
	case schema.TypeBoolean:
		return "boolean"
	case schema.TypeTimestamp:
		return "timestamp"
	case schema.TypeEnum:
		return c.Enum.Name
	default:
		return ""
	}
}
