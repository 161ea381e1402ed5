package cmd

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"time"

	"crm-matcher/core/config"
	"crm-matcher/core/crm"
	"crm-matcher/core/database"
	"crm-matcher/core/leads"
	"crm-matcher/core/logger"
	"crm-matcher/core/normalize"
	"crm-matcher/core/storage"
	"crm-matcher/feature/filters"
	"crm-matcher/feature/matching"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	matchForce   bool
	matchExport  bool
	matchCSV     string
	matchXLSX    string
	matchColumn  string
	matchNoTrim  bool
	matchNoLower bool
)

// matchCmd runs one reconciliation from the command line. The comparison side
// comes from --csv, --xlsx, or stdin; the optional argument is a filter
// reference (URL or id), omitted for a run against all organizations.
var matchCmd = &cobra.Command{
	Use:   "match [filter-reference]",
	Short: "Run a matching reconciliation",
	Long: `Reconciles a list of company names against the organizations of a CRM
filter (or all organizations) and prints the summary. Company names are read
from --csv, --xlsx, or standard input.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.LoadConfig(".")
		if err != nil {
			log.Fatalf("Failed to load configuration: %v", err)
		}
		logg, err := logger.New(&cfg.Log)
		if err != nil {
			log.Fatalf("Failed to initialize logger: %v", err)
		}
		defer logg.Sync()

		db, err := database.Connect(cfg.Database)
		if err != nil {
			return err
		}

		lines, err := readLeadLines(cmd.InOrStdin())
		if err != nil {
			return err
		}

		registry := filters.NewService(db, logg)
		if err := registry.Migrate(); err != nil {
			return err
		}
		cache := matching.NewCache(db)
		if err := cache.Migrate(); err != nil {
			return err
		}

		var exporter *matching.Exporter
		if matchExport {
			store, err := storage.NewClient(cfg.Storage)
			if err != nil {
				return err
			}
			exporter = matching.NewExporter(store, cfg.Storage.Bucket, logg)
		}

		crmClient := crm.NewHTTPClient(cfg.CRM, logg)
		fetchTimeout := time.Duration(cfg.Server.FetchTimeoutSeconds) * time.Second
		svc := matching.NewService(cache, registry, crmClient, exporter, logg, fetchTimeout)

		ctx := context.Background()
		var filterID *string
		if len(args) == 1 {
			id, existing, err := svc.ProcessFilterReference(ctx, args[0])
			if err != nil {
				return err
			}
			filterID = &id
			logg.Info("Filter reference resolved",
				zap.String("filter_id", id),
				zap.Bool("existing", existing),
			)
		}

		result, err := svc.RunMatching(ctx, filterID, matching.RunInput{
			Lines: lines,
			Options: normalize.Options{
				Trim:            !matchNoTrim,
				CaseInsensitive: !matchNoLower,
			},
			ForceRefresh: matchForce,
			Export:       matchExport,
		})
		if err != nil {
			return err
		}

		s := result.Summary
		fmt.Printf("Filter:           %s\n", s.FilterName)
		fmt.Printf("CRM side:         %d names (%d unique)\n", s.SideATotal, s.SideAUnique)
		fmt.Printf("Lead side:        %d names (%d unique)\n", s.SideBTotal, s.SideBUnique)
		fmt.Printf("Matches:          %d (%.2f%%)\n", s.MatchCount, s.MatchPercentage)
		fmt.Printf("Only in CRM:      %d\n", s.OnlyACount)
		fmt.Printf("Only in leads:    %d\n", s.OnlyBCount)
		fmt.Printf("From cache:       %v\n", result.FromCache)
		if result.ExportPrefix != "" {
			fmt.Printf("Exported to:      %s/%s\n", cfg.Storage.Bucket, result.ExportPrefix)
		}
		return nil
	},
}

// readLeadLines resolves the comparison side from the selected source.
func readLeadLines(stdin io.Reader) ([]string, error) {
	switch {
	case matchCSV != "":
		f, err := os.Open(matchCSV)
		if err != nil {
			return nil, err
		}
		defer f.Close()
		return leads.FromCSV(f, matchColumn)
	case matchXLSX != "":
		return leads.FromXLSX(matchXLSX, matchColumn)
	default:
		data, err := io.ReadAll(stdin)
		if err != nil {
			return nil, err
		}
		return leads.FromText(string(data)), nil
	}
}

func init() {
	matchCmd.Flags().BoolVar(&matchForce, "force", false, "bypass the summary cache and re-pull the filter from the CRM")
	matchCmd.Flags().BoolVar(&matchExport, "export", false, "upload matched/only-CRM/only-leads CSVs to object storage")
	matchCmd.Flags().StringVar(&matchCSV, "csv", "", "read company names from a CSV file")
	matchCmd.Flags().StringVar(&matchXLSX, "xlsx", "", "read company names from an XLSX workbook")
	matchCmd.Flags().StringVar(&matchColumn, "column", leads.DefaultColumn, "company name column for --csv/--xlsx")
	matchCmd.Flags().BoolVar(&matchNoTrim, "no-trim", false, "keep leading/trailing whitespace when comparing")
	matchCmd.Flags().BoolVar(&matchNoLower, "case-sensitive", false, "compare names case-sensitively")
	RootCmd.AddCommand(matchCmd)
}
