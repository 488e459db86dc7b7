package cmd

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "github.com/lib/pq"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	dsn        string
	DB         *sql.DB
	SchemaName string // Target schema, "public" unless configured
	cfgFile    string
)

var RootCmd = &cobra.Command{
	Use:   "schema-sync",
	Short: "A declarative schema reconciliation tool for PostgreSQL",
	Long: `
  ____   ____ _   _ _____ __  __    _      ______   ___   _  ____ 
 / ___| / ___| | | | ____|  \/  |  / \    / ___\ \ / / \ | |/ ___|
 \___ \| |   | |_| |  _| | |\/| | / _ \   \___ \\ V /|  \| | |    
  ___) | |___|  _  | |___| |  | |/ ___ \   ___) || | | |\  | |___ 
 |____/ \____|_| |_|_____|_|  |_/_/   \_\ |____/ |_| |_| \_|\____|
                                                                  
SCHEMA SYNC 🔄 - Declarative Schema Reconciler

Compares the declared entities against the live database and applies the
minimal additive DDL to close the gap. Never drops, renames or alters
existing columns.
`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// Use Viper to get DSN (Flag > Config > Default)
		connStr := viper.GetString("database.dsn")
		if connStr == "" {
			return fmt.Errorf("database.dsn is required (via flag or config)")
		}

		var err error
		DB, err = sql.Open("postgres", connStr)
		if err != nil {
			return fmt.Errorf("failed to open db: %w", err)
		}
		if err := DB.Ping(); err != nil {
			return fmt.Errorf("failed to connect to db: %w", err)
		}

		SchemaName = viper.GetString("database.schema")
		if SchemaName == "" {
			SchemaName = "public"
		}

		return nil
	},
}

func Execute() {
	if err := RootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	// Define flags
	RootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./schema-sync.yaml)")
	RootCmd.PersistentFlags().StringVar(&dsn, "dsn", "", "PostgreSQL Data Source Name (DSN)")

	// Bind dsn flag to viper
	viper.BindPFlag("database.dsn", RootCmd.PersistentFlags().Lookup("dsn"))
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	if cfgFile != "" {
		// Use config file from the flag.
		viper.SetConfigFile(cfgFile)
	} else {
		// 1. Executable Directory (Priority 1)
		ex, err := os.Executable()
		if err == nil {
			exePath := filepath.Dir(ex)
			viper.AddConfigPath(exePath)
		}

		// 2. Current Directory (Priority 2)
		viper.AddConfigPath(".")

		viper.SetConfigName("schema-sync")
		viper.SetConfigType("yaml")
	}

	viper.AutomaticEnv() // read in environment variables that match

	// If a config file is found, read it in.
	if err := viper.ReadInConfig(); err == nil {
		fmt.Println("Using config file:", viper.ConfigFileUsed())
	}
}
