package schema

import "fmt"

// ColumnType is the semantic type of a declared column. The dialect maps it
// to the concrete SQL storage type.
type ColumnType string

const (
	TypeInteger   ColumnType = "integer"
	TypeBigInt    ColumnType = "big-integer"
	TypeText      ColumnType = "text"
	TypeBoolean   ColumnType = "boolean"
	TypeTimestamp ColumnType = "timestamp"
	TypeEnum      ColumnType = "enumerated"
)

// EnumType is a named database-level type with a fixed ordered set of labels.
// Identity is the name: two declarations using the same name must carry
// identical value sets.
type EnumType struct {
	Name   string
	Values []string
}

type ColumnDeclaration struct {
	Name       string
	Type       ColumnType
	Nullable   bool
	PrimaryKey bool
	Default    string // raw SQL literal, empty when absent
	Enum       *EnumType
}

// EntityDeclaration describes one target table. Column order is declaration
// order and determines the order in which missing columns are added.
type EntityDeclaration struct {
	Name    string
	Columns []*ColumnDeclaration
}

// Validate checks the structural invariants of a single entity: unique
// column names, and a non-empty unique value set on every enum column.
func (e *EntityDeclaration) Validate() error {
	if e.Name == "" {
		return fmt.Errorf("entity has no name")
	}
	if len(e.Columns) == 0 {
		return fmt.Errorf("entity %s declares no columns", e.Name)
	}

	seen := make(map[string]bool)
	for _, c := range e.Columns {
		if c.Name == "" {
			return fmt.Errorf("entity %s has an unnamed column", e.Name)
		}
		if seen[c.Name] {
			return fmt.Errorf("entity %s declares column %s twice", e.Name, c.Name)
		}
		seen[c.Name] = true

		if c.Type == TypeEnum {
			if c.Enum == nil || c.Enum.Name == "" {
				return fmt.Errorf("entity %s column %s is enumerated but has no enum reference", e.Name, c.Name)
			}
			if len(c.Enum.Values) == 0 {
				return fmt.Errorf("enum type %s (entity %s, column %s) declares no values", c.Enum.Name, e.Name, c.Name)
			}
			vals := make(map[string]bool)
			for _, v := range c.Enum.Values {
				if vals[v] {
					return fmt.Errorf("enum type %s declares value %q twice", c.Enum.Name, v)
				}
				vals[v] = true
			}
		} else if c.Enum != nil {
			return fmt.Errorf("entity %s column %s carries an enum reference but is not enumerated", e.Name, c.Name)
		}
	}
	return nil
}

// ValidateAll validates every entity in the declaration set.
func ValidateAll(entities []*EntityDeclaration) error {
	names := make(map[string]bool)
	for _, e := range entities {
		if err := e.Validate(); err != nil {
			return err
		}
		if names[e.Name] {
			return fmt.Errorf("entity %s declared twice", e.Name)
		}
		names[e.Name] = true
	}
	return nil
}
