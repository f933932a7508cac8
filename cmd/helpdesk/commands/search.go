package commands

import (
	"context"
	"fmt"
	"strings"

	"github.com/communitydesk/helpdesk/internal/rag/vectorDB"
	"github.com/spf13/cobra"
)

var (
	searchLocality string
	searchTopK     int
)

var searchCmd = &cobra.Command{
	Use:   "search <query>",
	Short: "Semantic search over the knowledge base",
	Long: `Run a semantic search directly against the knowledge base, bypassing
the chat pipeline. Useful for checking what the retriever would hand to
the model for a given question.

Examples:
  helpdesk search "emergency ambulance"
  helpdesk search --locality Adyar "blood bank"`,
	Args: cobra.MinimumNArgs(1),
	RunE: runSearch,
}

func init() {
	searchCmd.Flags().StringVar(&searchLocality, "locality", "", "restrict results to a locality")
	searchCmd.Flags().IntVar(&searchTopK, "top-k", 0, "number of results (default: retrieval.top_k from config)")
}

func runSearch(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	query := strings.Join(args, " ")

	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	vector, embedder, err := connectKnowledgeBase(ctx, cfg)
	if err != nil {
		return err
	}

	queryVector, err := embedder.GetEmbedding(ctx, query)
	if err != nil {
		return fmt.Errorf("embedding failed: %w", err)
	}

	topK := searchTopK
	if topK <= 0 {
		topK = cfg.Retrieval.TopK
	}
	filter := vectorDB.SearchFilter{Locality: searchLocality}
	retrieved, _, err := vector.SearchServices(ctx, queryVector, filter, topK)
	if err != nil {
		return fmt.Errorf("search failed: %w", err)
	}

	if len(retrieved) == 0 {
		fmt.Println("No matching services found.")
		return nil
	}
	for i, r := range retrieved {
		svc := r.Service
		fmt.Printf("%d. %s (%s) score=%.3f\n", i+1, svc.ServiceName, svc.Category, r.Similarity)
		if svc.Address != "" {
			fmt.Printf("   %s\n", svc.Address)
		}
		if svc.ContactPhone != "" {
			fmt.Printf("   Phone: %s\n", svc.ContactPhone)
		}
	}
	return nil
}
