package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/kilianp07/orsched/core/schedule"
	"github.com/kilianp07/orsched/pkg/export"
)

var (
	exportWhat   string
	exportFormat string
	exportOutput string
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export the timeline or recommendations as JSON or CSV, or a utilization chart",
	RunE:  runExport,
}

func init() {
	exportCmd.Flags().StringVar(&exportWhat, "what", "timeline", "timeline, recommendations or chart (HTML, ignores --format)")
	exportCmd.Flags().StringVar(&exportFormat, "format", "csv", "json or csv")
	exportCmd.Flags().StringVarP(&exportOutput, "output", "o", "", "output file (stdout when empty)")
	rootCmd.AddCommand(exportCmd)
}

func runExport(cmd *cobra.Command, args []string) (err error) {
	format, err := export.ParseFormat(exportFormat)
	if err != nil {
		return err
	}
	_, snap, an, err := loadSchedule()
	if err != nil {
		return err
	}
	var w io.Writer = cmd.OutOrStdout()
	if exportOutput != "" {
		f, cerr := os.Create(exportOutput)
		if cerr != nil {
			return fmt.Errorf("create output: %w", cerr)
		}
		defer func() {
			if cerr := f.Close(); cerr != nil && err == nil {
				err = cerr
			}
		}()
		w = f
	}
	switch exportWhat {
	case "timeline":
		timeline := schedule.Timeline(snap.Surgeries)
		if format == export.FormatJSON {
			return export.WriteTimelineJSON(w, timeline)
		}
		return export.WriteTimelineCSV(w, timeline)
	case "recommendations":
		recs := an.GenerateRecommendations(snap.Surgeries, snap.Rooms, snap.Surgeons)
		if format == export.FormatJSON {
			return export.WriteRecommendationsJSON(w, recs)
		}
		return export.WriteRecommendationsCSV(w, recs)
	case "chart":
		return export.WriteUtilizationChart(w, an.RoomUtilizations(snap.Surgeries, snap.Rooms))
	default:
		return fmt.Errorf("unknown export %q", exportWhat)
	}
}
