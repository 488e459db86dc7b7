package engine

import (
	"fmt"

	"schema-sync/internal/schema"
)

type OpKind string

const (
	OpCreateTable    OpKind = "create-table"
	OpCreateEnumType OpKind = "create-enum-type"
	OpAddColumn      OpKind = "add-column"
)

// Operation is one additive DDL step. It carries enough information to be
// applied independently and idempotently: the executor re-checks existence
// immediately before acting.
type Operation struct {
	Kind   OpKind
	Entity string // owning entity, for report attribution

	Table  *schema.EntityDeclaration // OpCreateTable
	Column *schema.ColumnDeclaration // OpAddColumn
	Enum   *schema.EnumType          // OpCreateEnumType
}

func (op Operation) String() string {
	switch op.Kind {
	case OpCreateTable:
		return fmt.Sprintf("create-table %s", op.Table.Name)
	case OpCreateEnumType:
		return fmt.Sprintf("create-enum-type %s", op.Enum.Name)
	case OpAddColumn:
		return fmt.Sprintf("add-column %s.%s", op.Entity, op.Column.Name)
	default:
		return string(op.Kind)
	}
}

// Plan is the ordered list of operations computed by the differ. For any
// add-column referencing an enum type, the corresponding create-enum-type
// (when one is needed) appears strictly earlier. A plan is built fresh each
// run, consumed once by the executor, and discarded.
type Plan struct {
	Ops []Operation

	// Notes records declaration-vs-catalog drift on existing columns
	// (type or nullability). Informational only: altering live columns
	// risks data loss and is out of scope.
	Notes []string
}

func (p *Plan) Empty() bool {
	return len(p.Ops) == 0
}
