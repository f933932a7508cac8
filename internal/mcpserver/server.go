// Package mcpserver exposes the knowledge base over the Model Context
// Protocol so external agents can query local services directly.
package mcpserver

import (
	"context"
	"fmt"

	"github.com/communitydesk/helpdesk/internal/config"
	"github.com/communitydesk/helpdesk/internal/domain/catalog"
	"github.com/communitydesk/helpdesk/internal/rag/embedding"
	"github.com/communitydesk/helpdesk/internal/rag/prompt"
	"github.com/communitydesk/helpdesk/internal/rag/vectorDB"
	"github.com/communitydesk/helpdesk/pkg/logx"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

type Server struct {
	vector   vectorDB.DataProcessor
	embedder embedding.Embedder
	cfg      *config.Config
	logger   *logx.Logger
}

func New(vector vectorDB.DataProcessor, embedder embedding.Embedder, cfg *config.Config) *Server {
	return &Server{
		vector:   vector,
		embedder: embedder,
		cfg:      cfg,
		logger:   logx.NewLogger("mcp_server"),
	}
}

type searchInput struct {
	Query    string `json:"query" jsonschema:"the search query about local community services"`
	Locality string `json:"locality,omitempty" jsonschema:"optional locality filter, e.g. Adyar"`
}

type searchOutput struct {
	Services []catalog.Service `json:"services"`
	Context  string            `json:"context"`
}

type statsInput struct{}

type statsOutput struct {
	TotalServices     uint64            `json:"total_services"`
	CategoryBreakdown map[string]uint64 `json:"category_breakdown"`
}

type categoryInput struct {
	Category string `json:"category" jsonschema:"one of the service categories, e.g. Healthcare"`
	Limit    int    `json:"limit,omitempty" jsonschema:"maximum records to return, defaults to 20"`
}

type categoryOutput struct {
	Services []catalog.Service `json:"services"`
}

// Run serves the knowledge base tools over stdio until the context ends.
func (s *Server) Run(ctx context.Context) error {
	impl := &mcp.Implementation{
		Name:    "community-helpdesk",
		Title:   "Community Helpdesk Knowledge Base",
		Version: s.cfg.API.Version,
	}
	server := mcp.NewServer(impl, nil)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "search_services",
		Description: "Semantic search over community service records for Chennai, Tamil Nadu",
	}, s.searchServices)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "service_stats",
		Description: "Knowledge base record counts, total and per category",
	}, s.serviceStats)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "services_by_category",
		Description: "List service records belonging to a category",
	}, s.servicesByCategory)

	s.logger.Info("MCP server listening on stdio")
	return server.Run(ctx, &mcp.StdioTransport{})
}

func (s *Server) searchServices(ctx context.Context, req *mcp.CallToolRequest, input searchInput) (*mcp.CallToolResult, searchOutput, error) {
	if input.Query == "" {
		return nil, searchOutput{}, fmt.Errorf("query must not be empty")
	}

	vector, err := s.embedder.GetEmbedding(ctx, input.Query)
	if err != nil {
		return nil, searchOutput{}, fmt.Errorf("embedding failed: %w", err)
	}

	filter := vectorDB.SearchFilter{Locality: input.Locality}
	retrieved, _, err := s.vector.SearchServices(ctx, vector, filter, s.cfg.Retrieval.TopK)
	if err != nil {
		return nil, searchOutput{}, fmt.Errorf("search failed: %w", err)
	}

	services := make([]catalog.Service, 0, len(retrieved))
	for _, r := range retrieved {
		services = append(services, r.Service)
	}

	return nil, searchOutput{
		Services: services,
		Context:  prompt.FormatServicesContext(retrieved),
	}, nil
}

func (s *Server) serviceStats(ctx context.Context, req *mcp.CallToolRequest, input statsInput) (*mcp.CallToolResult, statsOutput, error) {
	total, err := s.vector.Count(ctx)
	if err != nil {
		return nil, statsOutput{}, fmt.Errorf("count failed: %w", err)
	}

	breakdown := make(map[string]uint64, len(catalog.Categories))
	for _, cat := range catalog.Categories {
		count, err := s.vector.CountByCategory(ctx, cat.Name)
		if err != nil {
			continue
		}
		breakdown[cat.Name] = count
	}

	return nil, statsOutput{
		TotalServices:     total,
		CategoryBreakdown: breakdown,
	}, nil
}

func (s *Server) servicesByCategory(ctx context.Context, req *mcp.CallToolRequest, input categoryInput) (*mcp.CallToolResult, categoryOutput, error) {
	if input.Category == "" {
		return nil, categoryOutput{}, fmt.Errorf("category must not be empty")
	}
	limit := input.Limit
	if limit <= 0 {
		limit = 20
	}

	services, err := s.vector.ServicesByCategory(ctx, input.Category, limit)
	if err != nil {
		return nil, categoryOutput{}, fmt.Errorf("category listing failed: %w", err)
	}

	return nil, categoryOutput{Services: services}, nil
}
