package app

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/blackwell-systems/reposcribe/internal/analyzer"
	"github.com/blackwell-systems/reposcribe/internal/deploy"
	"github.com/blackwell-systems/reposcribe/internal/output"
)

var analyzeFlagJSON bool

var analyzeCmd = &cobra.Command{
	Use:   "analyze <repo>",
	Short: "Analyze one repository",
	Long: `Analyze infers a repository's language breakdown, declared
dependencies per ecosystem, key files and a bounded structure sample, and
checks whether the repository has a live deployment.`,
	Args: cobra.ExactArgs(1),
	RunE: runAnalyze,
}

func init() {
	analyzeCmd.Flags().BoolVar(&analyzeFlagJSON, "json", false, "Output as JSON")

	rootCmd.AddCommand(analyzeCmd)
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	client, err := githubClient(cfg)
	if err != nil {
		return err
	}
	repo := args[0]

	// The analysis and the deployment lookup are independent; join them.
	var (
		analysis  *analyzer.Result
		deployURL string
	)
	g, ctx := errgroup.WithContext(cmd.Context())
	g.Go(func() error {
		var err error
		analysis, err = analyzer.New(client).Analyze(ctx, repo)
		return err
	})
	g.Go(func() error {
		deployURL = deploy.NewDetector(cfg.VercelToken).ProjectURL(ctx, repo)
		return nil
	})
	if err := g.Wait(); err != nil {
		return err
	}

	if analyzeFlagJSON {
		return json.NewEncoder(os.Stdout).Encode(map[string]any{
			"analysis":   analysis,
			"deploy_url": deployURL,
		})
	}

	fmt.Println(output.Section("Repository"))
	fmt.Printf(" %s\n", output.StyleBold.Render(analysis.Name))
	if analysis.Description != "" {
		fmt.Printf(" %s\n", analysis.Description)
	}
	if analysis.License != "" {
		fmt.Printf(" License: %s\n", analysis.License)
	}

	fmt.Println(output.Section("Languages"))
	printLanguages(analysis.Languages)

	fmt.Println(output.Section("Key Files"))
	if len(analysis.KeyFiles) == 0 {
		fmt.Println(output.StyleMuted.Render(" none detected"))
	}
	for _, f := range analysis.KeyFiles {
		fmt.Printf(" - %s\n", f)
	}

	fmt.Println(output.Section("Dependencies"))
	printDependencies(analysis.Dependencies)

	fmt.Println(output.Section("Deployment"))
	if deployURL != "" {
		fmt.Printf(" %s\n", output.StyleSuccess.Render(deployURL))
	} else {
		fmt.Println(output.StyleMuted.Render(" not deployed"))
	}
	fmt.Println()
	return nil
}

func printLanguages(languages map[string]int) {
	if len(languages) == 0 {
		fmt.Println(output.StyleMuted.Render(" none reported"))
		return
	}
	names := make([]string, 0, len(languages))
	for name := range languages {
		names = append(names, name)
	}
	sort.Slice(names, func(i, j int) bool {
		if languages[names[i]] != languages[names[j]] {
			return languages[names[i]] > languages[names[j]]
		}
		return names[i] < names[j]
	})
	for _, name := range names {
		fmt.Printf(" %-16s %d%%\n", name, languages[name])
	}
}

func printDependencies(deps map[string][]string) {
	ecosystems := make([]string, 0, len(deps))
	for name := range deps {
		ecosystems = append(ecosystems, name)
	}
	sort.Strings(ecosystems)

	found := false
	for _, eco := range ecosystems {
		names := deps[eco]
		if len(names) == 0 {
			continue
		}
		found = true
		fmt.Printf(" %s:\n", output.StyleBold.Render(eco))
		limit := 10
		if len(names) < limit {
			limit = len(names)
		}
		for _, name := range names[:limit] {
			fmt.Printf("   - %s\n", name)
		}
		if len(names) > limit {
			fmt.Printf("   %s\n", output.StyleMuted.Render(fmt.Sprintf("… and %d more", len(names)-limit)))
		}
	}
	if !found {
		fmt.Println(output.StyleMuted.Render(" none detected"))
	}
}
