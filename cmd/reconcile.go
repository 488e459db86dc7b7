package cmd

import (
	"context"
	"fmt"
	"log"
	"time"

	"schema-sync/internal/dialect"
	"schema-sync/internal/engine"
	"schema-sync/internal/schema"

	"github.com/spf13/cobra"
)

var (
	dryRun  bool
	strict  bool
	timeout time.Duration
)

var reconcileCmd = &cobra.Command{
	Use:   "reconcile",
	Short: "Reconcile the database schema with the declared entities",
	RunE: func(cmd *cobra.Command, args []string) error {
		// Named config overrides the schema when one is active; the DSN
		// was already resolved by the root command.
		if activeConfig, err := GetActiveDBConfig(); err == nil {
			if activeConfig.Schema != "" {
				SchemaName = activeConfig.Schema
			}
			fmt.Printf("🔄 Target: %s (schema: %s)\n", activeConfig.Name, SchemaName)
		}

		d := dialect.GetDialect("postgres")
		entities := schema.Entities()

		ctx := cmd.Context()
		if timeout > 0 {
			var cancel context.CancelFunc
			ctx, cancel = context.WithTimeout(ctx, timeout)
			defer cancel()
		}

		if dryRun {
			log.Println("[SIMULATION] Dry-Run Mode Active: No DDL will be executed.")
			snap, err := schema.ReadCatalog(ctx, DB, d, SchemaName)
			if err != nil {
				return err
			}
			plan, err := engine.Diff(entities, snap)
			if err != nil {
				return err
			}
			if plan.Empty() {
				fmt.Println("✅ Database is up to date, nothing to do.")
			} else {
				fmt.Printf("🔍 Planned operations (%d):\n", len(plan.Ops))
				for i, op := range plan.Ops {
					fmt.Printf("[%02d] %s\n", i+1, op)
				}
			}
			for _, n := range plan.Notes {
				fmt.Printf("  ⚠️  %s\n", n)
			}
			return nil
		}

		log.Printf("Reconciling %d entities against schema %q...", len(entities), SchemaName)
		start := time.Now()

		report, err := engine.Run(ctx, DB, d, entities, SchemaName)
		if err != nil {
			return err
		}

		fmt.Println()
		fmt.Print(report.Summary())
		log.Printf("Reconcile Done! Time Elapsed: %s", time.Since(start))

		if strict && !report.Clean() {
			return fmt.Errorf("reconciliation finished with %d failure(s)", len(report.Failures))
		}
		return nil
	},
}

func init() {
	RootCmd.AddCommand(reconcileCmd)

	reconcileCmd.Flags().BoolVar(&dryRun, "dry-run", false, "Print the plan without executing any DDL")
	reconcileCmd.Flags().BoolVar(&strict, "strict", false, "Exit non-zero if any operation failed")
	reconcileCmd.Flags().DurationVar(&timeout, "timeout", 2*time.Minute, "Bound on the whole run (0 disables)")
}
