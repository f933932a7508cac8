package commands

import (
	"context"
	"fmt"
	"time"

	"github.com/communitydesk/helpdesk/internal/launcher"
	"github.com/communitydesk/helpdesk/internal/rag/ingest"
	"github.com/communitydesk/helpdesk/internal/tui"
	"github.com/communitydesk/helpdesk/pkg/logx"
	"github.com/spf13/cobra"
)

var (
	noFrontend   bool
	skipSeed     bool
	readyTimeout time.Duration
)

var upCmd = &cobra.Command{
	Use:   "up",
	Short: "Check prerequisites, start the stack and attach the chat frontend",
	Long: `Bring the full helpdesk stack up in one step.

Before starting anything the command verifies every prerequisite: the seed
dataset file, the Qdrant instance and the configured model provider. When a
prerequisite is missing it reports which one and exits without starting any
service.

Once the backend reports healthy, the knowledge base is seeded from the
dataset file if it is empty, and the chat frontend attaches to the terminal.

Examples:
  # Full stack with the chat frontend
  helpdesk up

  # Backend only
  helpdesk up --no-frontend`,
	RunE: runUp,
}

func init() {
	upCmd.Flags().BoolVar(&noFrontend, "no-frontend", false, "do not attach the chat frontend")
	upCmd.Flags().BoolVar(&skipSeed, "skip-seed", false, "do not seed the knowledge base even when it is empty")
	upCmd.Flags().DurationVar(&readyTimeout, "ready-timeout", 30*time.Second, "how long to wait for the backend to report healthy")
}

func runUp(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	logger := logx.NewLogger("launcher")
	ctx := cmd.Context()

	// Nothing starts until every prerequisite is in place.
	if err := launcher.CheckPrerequisites(ctx, cfg); err != nil {
		return err
	}

	b, err := startBackend(cfg)
	if err != nil {
		return err
	}
	defer b.closeServices()

	healthURL := "http://localhost" + cfg.API.ListenAddr + "/health"
	if err := launcher.WaitUntilReady(ctx, healthURL, readyTimeout); err != nil {
		b.shutdown()
		<-b.stopExecution
		return fmt.Errorf("backend never became ready: %w", err)
	}

	if !skipSeed {
		if err := seedIfEmpty(ctx, cfg.Dataset.Path, b); err != nil {
			b.shutdown()
			<-b.stopExecution
			return err
		}
	}

	launcher.PrintBanner(cfg.API.ListenAddr, !noFrontend)

	if noFrontend {
		<-b.stopExecution
		logger.Info("Server stopped")
		return nil
	}

	err = tui.Run(tui.Options{
		BaseURL:   "http://localhost" + cfg.API.ListenAddr,
		AuthToken: cfg.API.AuthToken,
	})
	b.shutdown()
	<-b.stopExecution
	logger.Info("Server stopped")
	return err
}

// seedIfEmpty loads the dataset into the vector store on first run.
func seedIfEmpty(ctx context.Context, datasetPath string, b *backend) error {
	logger := logx.NewLogger("launcher")

	count, err := b.vector.Count(ctx)
	if err != nil {
		return fmt.Errorf("failed to inspect knowledge base: %w", err)
	}
	if count > 0 {
		logger.Info("Knowledge base already seeded", "records", count)
		return nil
	}

	services, skipped, err := ingest.LoadDataset(datasetPath)
	if err != nil {
		return fmt.Errorf("failed to load dataset: %w", err)
	}
	if skipped > 0 {
		logger.Warn("Skipped invalid dataset records", "skipped", skipped)
	}

	logger.Info("Seeding knowledge base", "records", len(services))
	if err := ingest.BatchIngestRecords(ctx, services, b.vector, b.embedder); err != nil {
		return fmt.Errorf("failed to seed knowledge base: %w", err)
	}
	return nil
}
