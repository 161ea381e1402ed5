package cmd

import (
	"fmt"
	"log"

	"crm-matcher/core/config"
	"crm-matcher/core/database"

	"github.com/spf13/cobra"
)

// dbCmd inspects the matcher database: which tables exist and their columns.
var dbCmd = &cobra.Command{
	Use:   "db",
	Short: "Inspect the matcher database",
}

var dbTablesCmd = &cobra.Command{
	Use:   "tables",
	Short: "List database tables",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.LoadConfig(".")
		if err != nil {
			log.Fatalf("Failed to load configuration: %v", err)
		}
		db, err := database.Connect(cfg.Database)
		if err != nil {
			return err
		}
		tables, err := database.ListTables(db)
		if err != nil {
			return err
		}
		for _, tbl := range tables {
			fmt.Println(tbl)
		}
		return nil
	},
}

var dbColumnsCmd = &cobra.Command{
	Use:   "columns <table>",
	Short: "Show a table's columns",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.LoadConfig(".")
		if err != nil {
			log.Fatalf("Failed to load configuration: %v", err)
		}
		db, err := database.Connect(cfg.Database)
		if err != nil {
			return err
		}
		columns, err := database.GetTableColumns(db, args[0])
		if err != nil {
			return err
		}
		for _, col := range columns {
			fmt.Printf("%-30s %s\n", col.Field, col.Type)
		}
		return nil
	},
}

func init() {
	dbCmd.AddCommand(dbTablesCmd)
	dbCmd.AddCommand(dbColumnsCmd)
	RootCmd.AddCommand(dbCmd)
}
