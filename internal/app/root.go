// Package app contains the Cobra command tree for reposcribe.
package app

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/blackwell-systems/reposcribe/internal/config"
	"github.com/blackwell-systems/reposcribe/internal/github"
	"github.com/blackwell-systems/reposcribe/internal/output"
)

var appVersion = "dev"

// SetVersion sets the application version (called from main with ldflags value).
func SetVersion(v string) {
	appVersion = v
	rootCmd.Version = v
}

var (
	flagNoColor bool
	flagConfig  string
)

var rootCmd = &cobra.Command{
	Use:   "reposcribe",
	Short: "Analyze GitHub repositories and generate READMEs",
	Long: `reposcribe scans your GitHub repositories, infers project metadata
(languages, dependencies, structure), detects live deployment URLs, and
produces an AI-generated README that can be previewed, saved locally, or
committed back to the repository.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		if flagNoColor || !output.IsTerminal() {
			output.DisableColor()
		}
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		fmt.Println("reposcribe", appVersion)
		fmt.Println()
		fmt.Println("Use a subcommand:")
		fmt.Println("  list      List your repositories")
		fmt.Println("  analyze   Analyze one repository")
		fmt.Println("  generate  Generate a README for a repository")
		fmt.Println("  batch     Generate READMEs for many repositories")
		fmt.Println("  health    Score repository hygiene and scan for secrets")
		fmt.Println("  history   Compare health scores across runs")
		fmt.Println("  serve     Run the dashboard JSON API")
		return nil
	},
}

// Execute is the entry point called from main.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Config file path (default: ~/.config/reposcribe/config.yaml)")
	rootCmd.PersistentFlags().BoolVar(&flagNoColor, "no-color", false, "Disable colored output")
}

// loadConfig loads configuration honoring the --config flag.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	return cfg, nil
}

// githubClient builds the hosting client or explains which credential is
// missing.
func githubClient(cfg *config.Config) (*github.Client, error) {
	if cfg.GitHubToken == "" {
		return nil, fmt.Errorf("GITHUB_TOKEN is not set (env, .env, or github_token in config)")
	}
	client := github.NewClient(cfg.GitHubToken, cfg.RequestTimeout)
	client.TreeDepth = cfg.TreeDepth
	client.TreeWidth = cfg.TreeWidth
	return client, nil
}
