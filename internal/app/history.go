package app

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/blackwell-systems/reposcribe/internal/config"
	"github.com/blackwell-systems/reposcribe/internal/output"
	"github.com/blackwell-systems/reposcribe/internal/store"
)

var historyFlagJSON bool

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Compare health scores across runs",
	Long: `History compares the two most recent saved health runs and shows
which repositories improved, regressed, or held steady. Runs are recorded
with 'health --save'.`,
	RunE: runHistory,
}

func init() {
	historyCmd.Flags().BoolVar(&historyFlagJSON, "json", false, "Output as JSON")

	rootCmd.AddCommand(historyCmd)
}

func runHistory(cmd *cobra.Command, args []string) error {
	db, err := store.Open(config.DBPath())
	if err != nil {
		return fmt.Errorf("opening history database: %w", err)
	}
	defer db.Close()

	diff, err := db.Diff()
	if err != nil {
		return err
	}
	if diff == nil || diff.Previous == nil {
		fmt.Println("Not enough saved runs to compare. Record runs with: reposcribe health <repo> --save")
		return nil
	}

	if historyFlagJSON {
		return json.NewEncoder(os.Stdout).Encode(diff)
	}

	fmt.Println(output.Section("Score History"))
	fmt.Printf(" %s  →  %s\n",
		output.StyleMuted.Render(diff.Previous.TakenAt.Format("2006-01-02 15:04")),
		output.StyleMuted.Render(diff.Current.TakenAt.Format("2006-01-02 15:04")))
	fmt.Println()

	table := output.NewTable("Repository", "Previous", "Current", "Change")
	for _, d := range diff.Deltas {
		table.AddRow(d.Repo,
			fmt.Sprintf("%d", d.Previous),
			fmt.Sprintf("%d", d.Current),
			renderDelta(d))
	}
	fmt.Println(table.Render())
	return nil
}

func renderDelta(d store.ScoreDelta) string {
	switch d.Direction {
	case "improved":
		return output.StyleSuccess.Render(fmt.Sprintf("+%d", d.Delta))
	case "regressed":
		return output.StyleError.Render(fmt.Sprintf("%d", d.Delta))
	default:
		return output.StyleMuted.Render("=")
	}
}
