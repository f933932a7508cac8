package commands

import (
	"context"

	"github.com/communitydesk/helpdesk/internal/mcpserver"
	"github.com/spf13/cobra"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Serve the knowledge base over the Model Context Protocol",
	Long: `Expose the knowledge base as MCP tools over stdio so external agents
can search services and read statistics directly.

Typically launched by an MCP client, not by hand:

  {
    "mcpServers": {
      "helpdesk": {"command": "helpdesk", "args": ["mcp"]}
    }
  }`,
	RunE: runMCP,
}

func runMCP(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	vector, embedder, err := connectKnowledgeBase(ctx, cfg)
	if err != nil {
		return err
	}

	return mcpserver.New(vector, embedder, cfg).Run(ctx)
}
