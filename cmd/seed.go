package cmd

import (
	"fmt"
	"log"
	"strings"
	"time"

	"schema-sync/internal/dialect"
	"schema-sync/internal/engine"
	"schema-sync/internal/schema"

	"github.com/gosuri/uiprogress"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	count  int
	tables []string
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Fill the declared tables with generated data",
	RunE: func(cmd *cobra.Command, args []string) error {
		// Fetch count from Viper (Flag > Config > Default)
		targetCount := viper.GetInt("settings.default_count")
		if count > 0 { // Flag override
			targetCount = count
		}

		d := dialect.GetDialect("postgres")
		allEntities := schema.Entities()

		// Filter strategy: CLI flag, then config, then everything.
		targetNames := tables
		if len(targetNames) == 0 {
			targetNames = viper.GetStringSlice("settings.tables")
		}

		entities := allEntities
		if len(targetNames) > 0 {
			requested := make(map[string]bool)
			for _, t := range targetNames {
				requested[strings.ToLower(t)] = true
			}
			entities = nil
			for _, e := range allEntities {
				if requested[strings.ToLower(e.Name)] {
					entities = append(entities, e)
				}
			}
			if len(entities) == 0 {
				return fmt.Errorf("no matching tables found for inputs: %v", targetNames)
			}
		}

		log.Printf("Seeding %d table(s) with count=%d...", len(entities), targetCount)
		start := time.Now()

		uiprogress.Start()
		bar := uiprogress.AddBar(targetCount * len(entities)).AppendCompleted().PrependElapsed()
		bar.PrependFunc(func(b *uiprogress.Bar) string {
			return "Seeding:    "
		})

		results := engine.Seed(cmd.Context(), DB, d, entities, targetCount, func() {
			bar.Incr()
		})

		uiprogress.Stop()

		fmt.Println("\n📊 Seed Report:")
		total := 0
		for i, r := range results {
			icon := "✓"
			if r.Status != "OK" {
				icon = "!"
			}
			fmt.Printf("[%s] [%02d/%02d] %-20s : %d rows (Target: %d) - %s\n",
				icon, i+1, len(results), r.TableName, r.Inserted, r.Target, r.Status)
			if r.ErrorMsg != "" {
				fmt.Printf("    └ Error: %s\n", r.ErrorMsg)
			}
			total += r.Inserted
		}
		fmt.Println("--------------------------------------------------")
		fmt.Printf("Total Rows Inserted: %d\n", total)
		log.Printf("Seed Done! Time Elapsed: %s", time.Since(start))

		return nil
	},
}

func init() {
	RootCmd.AddCommand(seedCmd)

	seedCmd.Flags().IntVar(&count, "count", 0, "Number of rows to generate per table (overrides config)")
	seedCmd.Flags().StringSliceVarP(&tables, "tables", "t", []string{}, "Specific tables to seed (comma-separated)")

	viper.BindPFlag("settings.default_count", seedCmd.Flags().Lookup("count"))
	viper.SetDefault("settings.default_count", 100)
}
