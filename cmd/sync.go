package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"

	"catalog-sync/core/config"
	"catalog-sync/core/database"
	"catalog-sync/core/logger"
	"catalog-sync/feature/catalog"
	"catalog-sync/feature/distributor"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// syncJob adapts the distributor service to the scheduler.
type syncJob struct {
	service *distributor.Service
	logger  *zap.Logger
}

func (j syncJob) Name() string { return "distributor-sync" }

func (j syncJob) Run(ctx context.Context) {
	result := j.service.RunSync(ctx)
	j.logger.Info("Scheduled sync finished",
		zap.Bool("success", result.Success),
		zap.Int("total_records", result.TotalRecords),
		zap.Int("updated_products", result.UpdatedProducts),
		zap.Int("new_products", result.NewProducts),
		zap.Int("errors", len(result.Errors)),
	)
}

// newSyncService wires a distributor service from configuration for the
// one-shot CLI commands.
func newSyncService() (*distributor.Service, *zap.Logger, error) {
	cfg, err := config.LoadConfig(".")
	if err != nil {
		return nil, nil, err
	}

	logg, err := logger.New(&cfg.Log)
	if err != nil {
		return nil, nil, err
	}

	db, err := database.Connect(cfg.Database)
	if err != nil {
		return nil, nil, err
	}

	feature := distributor.NewFeature(catalog.NewRepository(db), cfg.Distributor, logg)
	if !feature.IsEnabled() {
		return nil, nil, fmt.Errorf("no distributor host configured")
	}
	return feature.Service(), logg, nil
}

// syncCmd runs one reconciliation pass and prints the report.
var syncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Run one distributor sync",
	Long: `Pulls the distributor inventory feed, reconciles it against local
products, and prints the sync report as JSON. Exits non-zero when the run
fails.`,
	Run: func(cmd *cobra.Command, args []string) {
		service, logg, err := newSyncService()
		if err != nil {
			log.Fatalf("Failed to initialize sync: %v", err)
		}
		defer logg.Sync()

		result := service.RunSync(cmd.Context())

		out, err := json.MarshalIndent(result, "", "  ")
		if err != nil {
			logg.Fatal("Failed to render sync report", zap.Error(err))
		}
		fmt.Println(string(out))

		if !result.Success {
			os.Exit(1)
		}
	},
}

func init() {
	RootCmd.AddCommand(syncCmd)
}
