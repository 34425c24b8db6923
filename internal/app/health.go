package app

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/blackwell-systems/reposcribe/internal/analyzer"
	"github.com/blackwell-systems/reposcribe/internal/config"
	"github.com/blackwell-systems/reposcribe/internal/health"
	"github.com/blackwell-systems/reposcribe/internal/output"
	"github.com/blackwell-systems/reposcribe/internal/store"
)

var (
	healthFlagJSON bool
	healthFlagSave bool
)

var healthCmd = &cobra.Command{
	Use:   "health <repo>",
	Short: "Score repository hygiene and scan for secrets",
	Long: `Health runs a fixed battery of hygiene checks (README, license,
tests, CI, .gitignore) against a repository, grades the result, and scans
for committed secrets. With --save the result is recorded so that later
runs can be compared with the history command.`,
	Args: cobra.ExactArgs(1),
	RunE: runHealth,
}

func init() {
	healthCmd.Flags().BoolVar(&healthFlagJSON, "json", false, "Output as JSON")
	healthCmd.Flags().BoolVar(&healthFlagSave, "save", false, "Record the result for history comparison")

	rootCmd.AddCommand(healthCmd)
}

func runHealth(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	client, err := githubClient(cfg)
	if err != nil {
		return err
	}
	repo := args[0]

	analysis, err := analyzer.New(client).Analyze(cmd.Context(), repo)
	if err != nil {
		return err
	}
	report := health.Evaluate(cmd.Context(), client, repo, analysis)

	if healthFlagSave {
		if err := saveHealthSnapshot(repo, report); err != nil {
			return fmt.Errorf("saving snapshot: %w", err)
		}
	}

	if healthFlagJSON {
		return json.NewEncoder(os.Stdout).Encode(report)
	}

	fmt.Println(output.Section(fmt.Sprintf("Health: %s", repo)))
	fmt.Printf(" %s  grade %s\n", output.ScoreBar(report.Score, 20), output.GradeStyle(report.Grade).Render(report.Grade))
	fmt.Println()
	for _, check := range report.Checks {
		fmt.Printf(" %s %-12s %s\n", output.CheckMark(check.Passed), check.Name, output.StyleMuted.Render(check.Detail))
	}

	fmt.Println(output.Section("Security"))
	if len(report.Security.Issues) == 0 && len(report.Security.Warnings) == 0 {
		fmt.Println(output.StyleSuccess.Render(" no findings"))
	}
	for _, f := range report.Security.Issues {
		fmt.Printf(" %s %s: %s\n", output.StyleError.Render(health.SeverityCritical), f.File, f.Message)
	}
	for _, f := range report.Security.Warnings {
		fmt.Printf(" %s %s: %s\n", output.StyleWarning.Render(health.SeverityWarning), f.File, f.Message)
	}
	fmt.Println()

	if healthFlagSave {
		fmt.Println(output.StyleMuted.Render("Result saved. Compare runs with: reposcribe history"))
	}
	return nil
}

func saveHealthSnapshot(repo string, report *health.Report) error {
	db, err := store.Open(config.DBPath())
	if err != nil {
		return err
	}
	defer db.Close()

	snapshotID, err := db.CreateSnapshot("health", appVersion)
	if err != nil {
		return err
	}
	rs := &store.RepoScore{
		SnapshotID: snapshotID,
		Repo:       repo,
		Score:      report.Score,
		Grade:      report.Grade,
		Criticals:  len(report.Security.Issues),
		Warnings:   len(report.Security.Warnings),
	}
	for _, check := range report.Checks {
		switch check.Name {
		case "readme":
			rs.HasReadme = check.Passed
		case "license":
			rs.HasLicense = check.Passed
		case "tests":
			rs.HasTests = check.Passed
		case "ci":
			rs.HasCI = check.Passed
		case "gitignore":
			rs.HasGitignore = check.Passed
		}
	}
	return db.InsertRepoScore(rs)
}
