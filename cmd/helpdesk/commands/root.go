// Package commands implements the helpdesk CLI.
package commands

import (
	"github.com/communitydesk/helpdesk/internal/config"
	"github.com/communitydesk/helpdesk/pkg/logx"
	"github.com/spf13/cobra"
)

// Version is injected at build time via ldflags.
var Version = "dev"

var cfgFile string

var rootCmd = &cobra.Command{
	Use:   "helpdesk",
	Short: "Community Helpdesk - local services chatbot",
	Long: `Community Helpdesk is a retrieval-augmented chatbot for local community
services (hospitals, schools, utilities, civic services and more).

It answers questions against a curated knowledge base stored in Qdrant,
generates responses with Ollama or Gemini, and escalates to customer care
when it cannot help.

Use "helpdesk [command] --help" for more information about a command.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the root command. Called once from main.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: ./helpdesk.yaml or $HOME/.config/helpdesk/helpdesk.yaml)")

	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(upCmd)
	rootCmd.AddCommand(initdbCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(searchCmd)
	rootCmd.AddCommand(chatCmd)
	rootCmd.AddCommand(mcpCmd)
	rootCmd.AddCommand(configCmd)

	rootCmd.CompletionOptions.DisableDefaultCmd = true
}

// loadConfig resolves the configuration and initializes logging from it.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return nil, err
	}
	logx.Init(cfg.Logging.Production, cfg.Logging.SlogLevel())
	return cfg, nil
}
