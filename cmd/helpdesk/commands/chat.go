package commands

import (
	"github.com/communitydesk/helpdesk/internal/tui"
	"github.com/spf13/cobra"
)

var chatServer string

var chatCmd = &cobra.Command{
	Use:   "chat",
	Short: "Open the chat frontend against a running helpdesk server",
	Long: `Open the terminal chat frontend. The server must already be running,
either via "helpdesk up" on another machine or "helpdesk serve".

Examples:
  helpdesk chat
  helpdesk chat --server http://helpdesk.internal:8000`,
	RunE: runChat,
}

func init() {
	chatCmd.Flags().StringVar(&chatServer, "server", "", "server base URL (default: http://localhost + api.listen_addr)")
}

func runChat(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	baseURL := chatServer
	if baseURL == "" {
		baseURL = "http://localhost" + cfg.API.ListenAddr
	}
	return tui.Run(tui.Options{
		BaseURL:   baseURL,
		AuthToken: cfg.API.AuthToken,
	})
}
