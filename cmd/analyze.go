package cmd

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/kilianp07/orsched/app"
	"github.com/kilianp07/orsched/config"
	"github.com/kilianp07/orsched/core/analyzer"
	"github.com/kilianp07/orsched/core/model"
	"github.com/kilianp07/orsched/core/schedule"
	"github.com/kilianp07/orsched/fixtures"
)

var (
	analyzeFormat        string
	analyzeChronological bool
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze",
	Short: "Print recommendations for the configured schedule",
	RunE:  runAnalyze,
}

func init() {
	analyzeCmd.Flags().StringVar(&analyzeFormat, "format", "text", "output format: text or json")
	analyzeCmd.Flags().BoolVar(&analyzeChronological, "chronological", false, "sort each surgeon's bookings by start before checking conflicts")
	rootCmd.AddCommand(analyzeCmd)
}

// loadSchedule returns the configuration, its snapshot and analyzer.
func loadSchedule() (*config.Config, schedule.Snapshot, *analyzer.Analyzer, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, schedule.Snapshot{}, nil, err
	}
	snap, err := fixtures.Load(cfg.Fixtures.Path)
	if err != nil {
		return nil, schedule.Snapshot{}, nil, fmt.Errorf("fixtures: %w", err)
	}
	an, err := app.BuildAnalyzer(cfg)
	if err != nil {
		return nil, schedule.Snapshot{}, nil, err
	}
	return cfg, snap, an, nil
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	_, snap, an, err := loadSchedule()
	if err != nil {
		return err
	}
	if analyzeChronological {
		an = an.WithConflictMode(analyzer.ConflictChronological)
	}
	recs := an.GenerateRecommendations(snap.Surgeries, snap.Rooms, snap.Surgeons)
	out := cmd.OutOrStdout()
	switch analyzeFormat {
	case "json":
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(recs)
	case "text":
		return printRecommendations(out, recs)
	default:
		return fmt.Errorf("unknown format %q", analyzeFormat)
	}
}

func printRecommendations(w io.Writer, recs []model.Recommendation) error {
	if len(recs) == 0 {
		_, err := fmt.Fprintln(w, "No recommendations: the schedule looks balanced.")
		return err
	}
	for _, r := range recs {
		if _, err := fmt.Fprintf(w, "[%s] %s (%.0f%%): %s\n    -> %s\n", r.Impact, r.ID, r.Confidence*100, r.Message, r.SuggestedAction); err != nil {
			return err
		}
	}
	return nil
}
