package app

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/blackwell-systems/reposcribe/internal/analyzer"
	"github.com/blackwell-systems/reposcribe/internal/config"
	"github.com/blackwell-systems/reposcribe/internal/deploy"
	"github.com/blackwell-systems/reposcribe/internal/output"
	"github.com/blackwell-systems/reposcribe/internal/readme"
)

var (
	batchFlagMissingOnly  bool
	batchFlagDryRun       bool
	batchFlagIncludeForks bool
)

var batchCmd = &cobra.Command{
	Use:   "batch",
	Short: "Generate READMEs for many repositories",
	Long: `Batch walks your repositories, generates a README for each one, and
commits it. With --missing-only, repositories that already have a README are
skipped. With --dry-run every README is still generated and its size
reported, but nothing is committed. Failures on one repository never stop
the rest of the run.`,
	RunE: runBatch,
}

func init() {
	batchCmd.Flags().BoolVar(&batchFlagMissingOnly, "missing-only", false, "Only process repositories without a README")
	batchCmd.Flags().BoolVar(&batchFlagDryRun, "dry-run", false, "Generate and report READMEs without committing them")
	batchCmd.Flags().BoolVar(&batchFlagIncludeForks, "include-forks", false, "Include forked repositories")

	rootCmd.AddCommand(batchCmd)
}

func runBatch(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	client, err := githubClient(cfg)
	if err != nil {
		return err
	}
	if cfg.AIKey == "" {
		return fmt.Errorf("GOOGLE_AI_API_KEY is not set (env, .env, or ai_key in config)")
	}

	repos, err := client.ListRepos(cmd.Context(), batchFlagIncludeForks)
	if err != nil {
		return fmt.Errorf("listing repositories: %w", err)
	}
	if batchFlagMissingOnly {
		kept := repos[:0]
		for _, r := range repos {
			if !r.HasReadme {
				kept = append(kept, r)
			}
		}
		repos = kept
	}
	if len(repos) == 0 {
		fmt.Println("Nothing to do.")
		return nil
	}

	generator, err := readme.NewGeminiGenerator(cmd.Context(), cfg.AIKey, cfg.Model)
	if err != nil {
		return err
	}
	detector := deploy.NewDetector(cfg.VercelToken)

	var done, failed int
	for i, repo := range repos {
		prefix := output.Step(i+1, len(repos))
		fmt.Printf("%s %s\n", prefix, output.StyleBold.Render(repo.Name))

		text, err := batchGenerate(cmd.Context(), cfg, client, detector, generator, repo.Name)
		if err != nil {
			fmt.Printf("    %s %v\n", output.StyleError.Render("failed:"), err)
			failed++
			continue
		}

		if batchFlagDryRun {
			fmt.Printf("    %s would commit README (%d bytes)\n", output.CheckMark(true), len(text))
			done++
			continue
		}
		if err := client.CommitReadme(cmd.Context(), repo.Name, text, "Update README.md via reposcribe"); err != nil {
			fmt.Printf("    %s %v\n", output.StyleError.Render("failed:"), fmt.Errorf("committing: %w", err))
			failed++
			continue
		}
		fmt.Printf("    %s README committed\n", output.CheckMark(true))
		done++
	}

	fmt.Println()
	if batchFlagDryRun {
		fmt.Printf("Dry run: %d generated, %d failed; nothing committed.\n", done, failed)
		return nil
	}
	fmt.Printf("Done: %d committed, %d failed.\n", done, failed)
	return nil
}

// batchGenerate runs analysis and generation for a single repository and
// returns the README text. Errors are reported to the caller, which
// isolates them from the rest of the batch; committing is the caller's
// decision.
func batchGenerate(ctx context.Context, cfg *config.Config, source analyzer.Source, detector *deploy.Detector, generator readme.Generator, repo string) (string, error) {
	analysis, err := analyzer.New(source).Analyze(ctx, repo)
	if err != nil {
		return "", fmt.Errorf("analyzing: %w", err)
	}
	deployURL := detector.ProjectURL(ctx, repo)

	genCtx, cancel := context.WithTimeout(ctx, cfg.GenerateTimeout)
	defer cancel()
	return readme.NewComposer(generator, cfg.Limits).Compose(genCtx, analysis, deployURL)
}
