package commands

import (
	"context"
	"fmt"

	"github.com/communitydesk/helpdesk/internal/domain/catalog"
	"github.com/communitydesk/helpdesk/internal/rag/ingest"
	"github.com/spf13/cobra"
)

var (
	datasetPath string
	forceIngest bool
)

var initdbCmd = &cobra.Command{
	Use:   "initdb",
	Short: "Load the seed dataset into the knowledge base",
	Long: `Load service records from the seed dataset file into Qdrant.

A non-empty knowledge base is left untouched unless --force is given;
forced runs overwrite records by ID, so re-running after editing the
dataset is safe.

Examples:
  helpdesk initdb
  helpdesk initdb --force --dataset ./data/community_services.json`,
	RunE: runInitdb,
}

func init() {
	initdbCmd.Flags().StringVar(&datasetPath, "dataset", "", "dataset file (default: dataset.path from config)")
	initdbCmd.Flags().BoolVar(&forceIngest, "force", false, "ingest even when the knowledge base already has records")
}

func runInitdb(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	path := datasetPath
	if path == "" {
		path = cfg.Dataset.Path
	}

	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	vector, embedder, err := connectKnowledgeBase(ctx, cfg)
	if err != nil {
		return err
	}

	existing, err := vector.Count(ctx)
	if err != nil {
		return err
	}
	if existing > 0 && !forceIngest {
		return fmt.Errorf("knowledge base already holds %d records (use --force to re-ingest)", existing)
	}

	services, skipped, err := ingest.LoadDataset(path)
	if err != nil {
		return err
	}
	fmt.Printf("Loaded %d records from %s (%d skipped as invalid)\n", len(services), path, skipped)
	if len(services) > 0 {
		sample := services[0]
		fmt.Printf("Sample record: %s [%s] %s\n", sample.ID, sample.Category, sample.ServiceName)
	}

	if err := ingest.BatchIngestRecords(ctx, services, vector, embedder); err != nil {
		return fmt.Errorf("ingestion failed: %w", err)
	}

	total, err := vector.Count(ctx)
	if err != nil {
		return err
	}
	fmt.Printf("\nKnowledge base now holds %d records:\n", total)
	for _, category := range catalog.Categories {
		count, err := vector.CountByCategory(ctx, category.Name)
		if err != nil || count == 0 {
			continue
		}
		fmt.Printf("  %s %-28s %d\n", category.Icon, category.Name, count)
	}
	return nil
}
