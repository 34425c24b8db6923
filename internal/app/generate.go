package app

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/blackwell-systems/reposcribe/internal/analyzer"
	"github.com/blackwell-systems/reposcribe/internal/deploy"
	"github.com/blackwell-systems/reposcribe/internal/output"
	"github.com/blackwell-systems/reposcribe/internal/readme"
)

var (
	generateFlagOutput string
	generateFlagCommit bool
	generateFlagYes    bool
)

var generateCmd = &cobra.Command{
	Use:   "generate <repo>",
	Short: "Generate a README for a repository",
	Long: `Generate analyzes the repository, builds a generation prompt from the
analysis (and the deployment URL when one is found), and produces a README
with the configured model. The result is printed, written to a file with
-o, or committed back to the repository with --commit.`,
	Args: cobra.ExactArgs(1),
	RunE: runGenerate,
}

func init() {
	generateCmd.Flags().StringVarP(&generateFlagOutput, "output", "o", "", "Write the README to a local file")
	generateCmd.Flags().BoolVar(&generateFlagCommit, "commit", false, "Commit the README to the repository")
	generateCmd.Flags().BoolVar(&generateFlagYes, "yes", false, "Skip the commit confirmation prompt")

	rootCmd.AddCommand(generateCmd)
}

func runGenerate(cmd *cobra.Command, args []string) error {
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
	repo := args[0]

	fmt.Printf("Analyzing %s...\n", repo)

	var (
		analysis  *analyzer.Result
		deployURL string
	)
	g, gctx := errgroup.WithContext(cmd.Context())
	g.Go(func() error {
		var err error
		analysis, err = analyzer.New(client).Analyze(gctx, repo)
		return err
	})
	g.Go(func() error {
		deployURL = deploy.NewDetector(cfg.VercelToken).ProjectURL(gctx, repo)
		return nil
	})
	if err := g.Wait(); err != nil {
		return err
	}

	if deployURL != "" {
		fmt.Printf("Found deployment: %s\n", deployURL)
	}

	fmt.Println("Generating README...")
	generator, err := readme.NewGeminiGenerator(cmd.Context(), cfg.AIKey, cfg.Model)
	if err != nil {
		return err
	}
	genCtx, cancel := context.WithTimeout(cmd.Context(), cfg.GenerateTimeout)
	defer cancel()
	text, err := readme.NewComposer(generator, cfg.Limits).Compose(genCtx, analysis, deployURL)
	if err != nil {
		return err
	}

	switch {
	case generateFlagOutput != "":
		if err := os.WriteFile(generateFlagOutput, []byte(text), 0o644); err != nil {
			return fmt.Errorf("writing %s: %w", generateFlagOutput, err)
		}
		fmt.Printf("README saved to %s\n", generateFlagOutput)
	default:
		fmt.Println(output.Section("Generated README"))
		fmt.Println(text)
	}

	if generateFlagCommit {
		if !generateFlagYes && !confirm("Commit this README to the repository?") {
			fmt.Println("Not committed.")
			return nil
		}
		if err := client.CommitReadme(cmd.Context(), repo, text, "Update README.md via reposcribe"); err != nil {
			return fmt.Errorf("committing README: %w", err)
		}
		fmt.Println(output.StyleSuccess.Render("README committed."))
	}
	return nil
}

// confirm prompts on stdin for a y/n answer.
func confirm(question string) bool {
	fmt.Printf("%s (y/n): ", question)
	reader := bufio.NewReader(os.Stdin)
	answer, err := reader.ReadString('\n')
	if err != nil {
		return false
	}
	return strings.EqualFold(strings.TrimSpace(answer), "y")
}
