package schema_test

import (
	"strings"
	"testing"

	"schema-sync/internal/schema"
)

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		entity  *schema.EntityDeclaration
		wantErr string // empty means valid
	}{
		{
			name: "valid entity",
			entity: &schema.EntityDeclaration{
				Name: "widgets",
				Columns: []*schema.ColumnDeclaration{
					{Name: "id", Type: schema.TypeInteger, PrimaryKey: true},
					{Name: "status", Type: schema.TypeEnum, Enum: &schema.EnumType{Name: "widget_status", Values: []string{"active", "retired"}}},
				},
			},
		},
		{
			name: "duplicate column",
			entity: &schema.EntityDeclaration{
				Name: "widgets",
				Columns: []*schema.ColumnDeclaration{
					{Name: "id", Type: schema.TypeInteger},
					{Name: "id", Type: schema.TypeBigInt},
				},
			},
			wantErr: "twice",
		},
		{
			name: "enum without values",
			entity: &schema.EntityDeclaration{
				Name: "widgets",
				Columns: []*schema.ColumnDeclaration{
					{Name: "status", Type: schema.TypeEnum, Enum: &schema.EnumType{Name: "widget_status"}},
				},
			},
			wantErr: "no values",
		},
		{
			name: "enum with duplicate values",
			entity: &schema.EntityDeclaration{
				Name: "widgets",
				Columns: []*schema.ColumnDeclaration{
					{Name: "status", Type: schema.TypeEnum, Enum: &schema.EnumType{Name: "widget_status", Values: []string{"active", "active"}}},
				},
			},
			wantErr: "twice",
		},
		{
			name: "enum column without reference",
			entity: &schema.EntityDeclaration{
				Name: "widgets",
				Columns: []*schema.ColumnDeclaration{
					{Name: "status", Type: schema.TypeEnum},
				},
			},
			wantErr: "no enum reference",
		},
		{
			name: "enum reference on plain column",
			entity: &schema.EntityDeclaration{
				Name: "widgets",
				Columns: []*schema.ColumnDeclaration{
					{Name: "status", Type: schema.TypeText, Enum: &schema.EnumType{Name: "widget_status", Values: []string{"a"}}},
				},
			},
			wantErr: "not enumerated",
		},
		{
			name:    "no columns",
			entity:  &schema.EntityDeclaration{Name: "widgets"},
			wantErr: "no columns",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.entity.Validate()
			if tt.wantErr == "" {
				if err != nil {
					t.Errorf("Expected valid, got %v", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("Expected error containing %q, got %v", tt.wantErr, err)
			}
		})
	}
}

func TestValidateAll_DuplicateEntity(t *testing.T) {
	e := func() *schema.EntityDeclaration {
		return &schema.EntityDeclaration{
			Name:    "widgets",
			Columns: []*schema.ColumnDeclaration{{Name: "id", Type: schema.TypeInteger}},
		}
	}
	if err := schema.ValidateAll([]*schema.EntityDeclaration{e(), e()}); err == nil {
		t.Error("Expected error for duplicate entity name")
	}
}

func TestEntitiesRegistryIsValid(t *testing.T) {
	entities := schema.Entities()
	if err := schema.ValidateAll(entities); err != nil {
		t.Fatalf("declared registry must validate: %v", err)
	}

	// The admins entity carries both application enums.
	var admins *schema.EntityDeclaration
	for _, e := range entities {
		if e.Name == "admins" {
			admins = e
		}
	}
	if admins == nil {
		t.Fatal("admins entity missing from registry")
	}
	enums := map[string][]string{}
	for _, c := range admins.Columns {
		if c.Enum != nil {
			enums[c.Enum.Name] = c.Enum.Values
		}
	}
	if got := enums["role"]; len(got) != 2 || got[0] != "admin" {
		t.Errorf("Expected role enum [admin sadmin], got %v", got)
	}
	if got := enums["broadcasting"]; len(got) != 2 || got[0] != "forward" {
		t.Errorf("Expected broadcasting enum [forward copy], got %v", got)
	}
}
