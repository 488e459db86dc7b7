package engine

import (
	"context"
	"database/sql"
	"fmt"
	"math/rand"
	"strings"
	"time"

	"schema-sync/internal/dialect"
	"schema-sync/internal/schema"

	"github.com/brianvoe/gofakeit/v6"
)

var seededRand = rand.New(rand.NewSource(time.Now().UnixNano()))

// SeedResult is the per-table outcome of a seeding run.
type SeedResult struct {
	TableName string
	Target    int
	Inserted  int
	Status    string
	ErrorMsg  string
}

// Seed inserts count generated rows into each declared entity, one
// transaction per table. Serial primary keys are left to the database;
// enum columns draw from their declared value set. Tables must already be
// reconciled: a missing table fails that table only.
func Seed(ctx context.Context, db *sql.DB, d dialect.Dialect, entities []*schema.EntityDeclaration, count int, onProgress func()) []SeedResult {
	var results []SeedResult

	for _, e := range entities {
		res := SeedResult{TableName: e.Name, Target: count, Status: "OK"}

		var insertCols []*schema.ColumnDeclaration
		var colNames []string
		for _, c := range e.Columns {
			if c.PrimaryKey {
				continue
			}
			insertCols = append(insertCols, c)
			colNames = append(colNames, c.Name)
		}
		if len(insertCols) == 0 {
			res.Status = "SKIPPED"
			res.ErrorMsg = "no seedable columns"
			results = append(results, res)
			continue
		}

		query := d.InsertQuery(e.Name, colNames)

		tx, err := db.BeginTx(ctx, nil)
		if err != nil {
			res.Status = "FAILED"
			res.ErrorMsg = err.Error()
			results = append(results, res)
			continue
		}

		for i := 0; i < count; i++ {
			values := make([]interface{}, 0, len(insertCols))
			for _, c := range insertCols {
				values = append(values, seedValue(c))
			}
			if _, err := tx.ExecContext(ctx, query, values...); err != nil {
				res.ErrorMsg = err.Error()
				break
			}
			res.Inserted++
			if onProgress != nil {
				onProgress()
			}
		}

		if err := tx.Commit(); err != nil {
			res.Status = "FAILED"
			res.ErrorMsg = err.Error()
			res.Inserted = 0
		} else if res.Inserted < count {
			res.Status = "PARTIAL"
		}
		results = append(results, res)
	}

	return results
}

// seedValue generates a value for one column, name heuristics first, then
// the semantic type.
func seedValue(c *schema.ColumnDeclaration) interface{} {
	if c.Type == schema.TypeEnum && c.Enum != nil {
		if c.Nullable && seededRand.Intn(4) == 0 {
			return nil
		}
		return c.Enum.Values[seededRand.Intn(len(c.Enum.Values))]
	}

	name := strings.ToLower(c.Name)
	switch {
	case strings.HasSuffix(name, "_at") || strings.Contains(name, "interaction"):
		// epoch seconds, how the original application stores timestamps
		return int(time.Now().Unix())
	case strings.Contains(name, "telegram") || strings.HasSuffix(name, "_by"):
		return int64(gofakeit.Number(100_000_000, 999_999_999))
	case name == "user_id":
		return int64(gofakeit.Number(100_000_000, 999_999_999))
	case strings.Contains(name, "phone"):
		return gofakeit.Phone()
	case strings.Contains(name, "email"):
		return gofakeit.Email()
	case name == "title":
		return gofakeit.ProductName()
	case strings.Contains(name, "name"):
		return gofakeit.Name()
	case strings.Contains(name, "location"):
		return gofakeit.City()
	case strings.Contains(name, "image") || strings.Contains(name, "logo"):
		return gofakeit.URL()
	case strings.Contains(name, "description"):
		return gofakeit.Sentence(8)
	case name == "language_code":
		return gofakeit.LanguageAbbreviation()
	case name == "sizes":
		return "44, 45, 46, 47"
	case name == "size":
		return fmt.Sprintf("%d", gofakeit.Number(40, 48))
	case name == "gender":
		if seededRand.Intn(3) == 0 {
			return nil
		}
		return []string{"male", "female"}[seededRand.Intn(2)]
	case name == "items":
		return fmt.Sprintf(`{"%d": %d}`, gofakeit.Number(1, 50), gofakeit.Number(1, 3))
	case name == "price":
		return gofakeit.Number(10, 500)
	case name == "quantity":
		return gofakeit.Number(1, 5)
	}

	switch c.Type {
	case schema.TypeInteger:
		return gofakeit.Number(1, 10_000)
	case schema.TypeBigInt:
		return int64(gofakeit.Number(1, 1_000_000))
	case schema.TypeBoolean:
		return gofakeit.Bool()
	case schema.TypeTimestamp:
		return gofakeit.DateRange(time.Now().AddDate(-1, 0, 0), time.Now())
	default:
		if c.Nullable && seededRand.Intn(5) == 0 {
			return nil
		}
		return gofakeit.Word()
	}
}
