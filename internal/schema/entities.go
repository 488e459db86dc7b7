package schema

// Entities returns the declared target schema for the shop application.
// The slice is built fresh on every call so callers can mutate their copy
// (tests do) without affecting later runs. Declaration order is the order
// in which entities are reconciled.
func Entities() []*EntityDeclaration {
	return []*EntityDeclaration{
		{
			Name: "users",
			Columns: []*ColumnDeclaration{
				{Name: "id", Type: TypeBigInt, PrimaryKey: true},
				{Name: "telegram_id", Type: TypeBigInt},
				{Name: "language_code", Type: TypeText, Nullable: true},
				{Name: "is_active", Type: TypeBoolean, Nullable: true, Default: "true"},
				{Name: "created_at", Type: TypeInteger},
				{Name: "updated_at", Type: TypeInteger, Nullable: true},
				{Name: "last_interaction", Type: TypeInteger, Nullable: true},
			},
		},
		{
			Name: "admins",
			Columns: []*ColumnDeclaration{
				{Name: "id", Type: TypeInteger, PrimaryKey: true},
				{Name: "telegram_id", Type: TypeBigInt},
				{Name: "role", Type: TypeEnum, Enum: &EnumType{
					Name:   "role",
					Values: []string{"admin", "sadmin"},
				}},
				{Name: "broadcasting", Type: TypeEnum, Nullable: true, Enum: &EnumType{
					Name:   "broadcasting",
					Values: []string{"forward", "copy"},
				}},
			},
		},
		{
			Name: "items",
			Columns: []*ColumnDeclaration{
				{Name: "id", Type: TypeInteger, PrimaryKey: true},
				{Name: "title", Type: TypeText},
				{Name: "price", Type: TypeInteger},
				{Name: "image", Type: TypeText, Nullable: true},
				{Name: "sizes", Type: TypeText},
				{Name: "description", Type: TypeText, Nullable: true},
				{Name: "category_id", Type: TypeInteger, Nullable: true},
				{Name: "created_at", Type: TypeInteger},
				{Name: "updated_at", Type: TypeInteger, Nullable: true},
				{Name: "created_by", Type: TypeBigInt, Nullable: true},
				{Name: "updated_by", Type: TypeBigInt, Nullable: true},
			},
		},
		{
			Name: "orders",
			Columns: []*ColumnDeclaration{
				{Name: "id", Type: TypeInteger, PrimaryKey: true},
				{Name: "user_id", Type: TypeBigInt},
				{Name: "user_name", Type: TypeText, Nullable: true},
				{Name: "user_phone", Type: TypeText, Nullable: true},
				{Name: "location", Type: TypeText, Nullable: true},
				{Name: "items", Type: TypeText},
				{Name: "created_at", Type: TypeInteger},
			},
		},
		{
			Name: "cart_items",
			Columns: []*ColumnDeclaration{
				{Name: "id", Type: TypeInteger, PrimaryKey: true},
				{Name: "user_id", Type: TypeBigInt},
				{Name: "item_id", Type: TypeInteger},
				{Name: "size", Type: TypeText},
				{Name: "gender", Type: TypeText, Nullable: true},
				{Name: "quantity", Type: TypeInteger},
				{Name: "created_at", Type: TypeInteger},
			},
		},
		{
			Name: "shop_themes",
			Columns: []*ColumnDeclaration{
				{Name: "id", Type: TypeInteger, PrimaryKey: true},
				{Name: "name", Type: TypeText, Nullable: true},
				{Name: "logo", Type: TypeText},
			},
		},
	}
}
