package app

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/blackwell-systems/reposcribe/internal/output"
)

var (
	listFlagIncludeForks bool
	listFlagJSON         bool
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List your repositories",
	Long: `List shows every repository visible to the authenticated user with
its primary language, star count, and whether it already has a README.`,
	RunE: runList,
}

func init() {
	listCmd.Flags().BoolVar(&listFlagIncludeForks, "include-forks", false, "Include forked repositories")
	listCmd.Flags().BoolVar(&listFlagJSON, "json", false, "Output as JSON")

	rootCmd.AddCommand(listCmd)
}

func runList(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	client, err := githubClient(cfg)
	if err != nil {
		return err
	}

	repos, err := client.ListRepos(cmd.Context(), listFlagIncludeForks)
	if err != nil {
		return fmt.Errorf("listing repositories: %w", err)
	}

	if listFlagJSON {
		return json.NewEncoder(os.Stdout).Encode(repos)
	}

	table := output.NewTable("Repository", "Language", "README", "Stars")
	for _, r := range repos {
		readmeCol := "No"
		if r.HasReadme {
			readmeCol = "Yes"
		}
		lang := r.Language
		if lang == "" {
			lang = "N/A"
		}
		table.AddRow(r.Name, lang, readmeCol, strconv.Itoa(r.Stars))
	}
	table.Print()

	fmt.Printf("\nTotal: %d repositories\n", len(repos))
	return nil
}
