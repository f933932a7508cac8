package commands

import (
	"github.com/communitydesk/helpdesk/pkg/logx"
	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the helpdesk API server",
	Long: `Run the helpdesk API server in the foreground.

Unlike "up", this command assumes the external services (Qdrant, Redis,
Ollama) are already running and does not start the chat frontend.

Examples:
  # Serve with default config locations
  helpdesk serve

  # Serve with a specific config file
  helpdesk serve --config /etc/helpdesk/helpdesk.yaml

  # Override settings through the environment
  HELPDESK_LOGGING_LEVEL=DEBUG helpdesk serve`,
	RunE: runServe,
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	logger := logx.NewLogger("main")

	b, err := startBackend(cfg)
	if err != nil {
		return err
	}
	defer b.closeServices()

	<-b.stopExecution
	logger.Info("Server stopped")
	return nil
}
