package commands

import (
	"context"
	"fmt"

	"github.com/communitydesk/helpdesk/internal/domain/catalog"
	"github.com/spf13/cobra"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show knowledge base statistics",
	RunE:  runStats,
}

func runStats(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	vector, _, err := connectKnowledgeBase(ctx, cfg)
	if err != nil {
		return err
	}

	total, err := vector.Count(ctx)
	if err != nil {
		return err
	}

	fmt.Printf("Collection: %s\n", cfg.Qdrant.Collection)
	fmt.Printf("Total services: %d\n\n", total)
	for _, category := range catalog.Categories {
		count, err := vector.CountByCategory(ctx, category.Name)
		if err != nil {
			continue
		}
		fmt.Printf("  %s %-28s %d\n", category.Icon, category.Name, count)
	}
	return nil
}
