package cmd

import (
	"fmt"
	"log"

	"crm-matcher/core/config"
	"crm-matcher/core/database"
	"crm-matcher/core/logger"
	"crm-matcher/feature/filters"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var filtersCmd = &cobra.Command{
	Use:   "filters",
	Short: "Manage synced CRM filters",
}

var filtersListCmd = &cobra.Command{
	Use:   "list",
	Short: "List synced filters",
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, _, err := filterService()
		if err != nil {
			return err
		}
		entries, err := svc.List()
		if err != nil {
			return err
		}
		for _, e := range entries {
			if e.FilterID == nil {
				fmt.Printf("%-10s %s\n", "-", e.Name)
				continue
			}
			fmt.Printf("%-10s %s (%d organizations, synced %s)\n",
				*e.FilterID, e.Name, e.ItemCount, e.CreatedAt.Format("2006-01-02"))
		}
		return nil
	},
}

var filtersResolveCmd = &cobra.Command{
	Use:   "resolve <reference>",
	Short: "Extract the filter id from a CRM URL or reference",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := filters.ResolveReference(args[0])
		if err != nil {
			return err
		}
		fmt.Println(id)
		return nil
	},
}

var filtersDeleteCmd = &cobra.Command{
	Use:   "delete <filter-id>",
	Short: "Remove a synced filter and its membership",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, logg, err := filterService()
		if err != nil {
			return err
		}
		if err := svc.Delete(args[0]); err != nil {
			return err
		}
		logg.Info("Filter removed", zap.String("filter_id", args[0]))
		return nil
	},
}

func filterService() (*filters.Service, *zap.Logger, error) {
	cfg, err := config.LoadConfig(".")
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	logg, err := logger.New(&cfg.Log)
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}

	db, err := database.Connect(cfg.Database)
	if err != nil {
		return nil, nil, err
	}
	svc := filters.NewService(db, logg)
	if err := svc.Migrate(); err != nil {
		return nil, nil, err
	}
	return svc, logg, nil
}

func init() {
	filtersCmd.AddCommand(filtersListCmd)
	filtersCmd.AddCommand(filtersResolveCmd)
	filtersCmd.AddCommand(filtersDeleteCmd)
	RootCmd.AddCommand(filtersCmd)
}
