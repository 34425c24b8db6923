package app

import (
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/blackwell-systems/reposcribe/internal/server"
)

var serveFlagAddr string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the dashboard JSON API",
	Long: `Serve exposes analysis, health scoring, deployment lookup, and
README generation over a JSON HTTP API. Credentials come from the config
by default and can be overridden per request with the X-GitHub-Token,
X-AI-Key and X-Vercel-Token headers.`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&serveFlagAddr, "addr", "", "Listen address (default from config)")

	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if serveFlagAddr != "" {
		cfg.ListenAddr = serveFlagAddr
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	return server.New(cfg, logger).ListenAndServe()
}
