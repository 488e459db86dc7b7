package engine

import (
	"fmt"
	"strings"
)

// Failure records one DDL statement that failed. Non-fatal: the run
// continues with the remaining operations.
type Failure struct {
	Entity    string
	Operation string
	Err       error
}

// Report is the structured outcome of one reconciliation run. It is
// populated by the executor, returned to the caller, and immutable
// thereafter. Per-operation failures are data here, never control flow:
// the caller decides whether a non-empty failure list is fatal.
type Report struct {
	TablesCreated    int
	ColumnsAdded     int
	EnumTypesCreated int
	Skipped          int // operations found already applied at execution time

	Notes    []string
	Failures []Failure
}

// Clean reports whether the run completed without operation failures.
func (r *Report) Clean() bool {
	return len(r.Failures) == 0
}

// UpToDate reports whether the run had nothing to do.
func (r *Report) UpToDate() bool {
	return r.TablesCreated == 0 && r.ColumnsAdded == 0 && r.EnumTypesCreated == 0
}

// Summary renders the human-readable report printed after a run.
func (r *Report) Summary() string {
	var b strings.Builder

	b.WriteString("📊 Reconciliation Report:\n")
	fmt.Fprintf(&b, "  Tables created     : %d\n", r.TablesCreated)
	fmt.Fprintf(&b, "  Columns added      : %d\n", r.ColumnsAdded)
	fmt.Fprintf(&b, "  Enum types created : %d\n", r.EnumTypesCreated)
	fmt.Fprintf(&b, "  Already applied    : %d\n", r.Skipped)

	if len(r.Notes) > 0 {
		b.WriteString("\n⚠️  Drift notes (informational only):\n")
		for _, n := range r.Notes {
			fmt.Fprintf(&b, "  - %s\n", n)
		}
	}

	if len(r.Failures) > 0 {
		b.WriteString("\n❌ Failures:\n")
		for _, f := range r.Failures {
			fmt.Fprintf(&b, "  - [%s] %s: %v\n", f.Entity, f.Operation, f.Err)
		}
	} else if r.UpToDate() {
		b.WriteString("\n✅ Database is up to date!\n")
	} else {
		b.WriteString("\n✅ Reconciliation completed successfully!\n")
	}

	return b.String()
}
