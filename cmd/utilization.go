package cmd

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/kilianp07/orsched/core/analyzer"
)

var utilizationCmd = &cobra.Command{
	Use:   "utilization",
	Short: "Print per-room utilization for the configured schedule",
	RunE:  runUtilization,
}

func init() {
	rootCmd.AddCommand(utilizationCmd)
}

func runUtilization(cmd *cobra.Command, args []string) error {
	_, snap, an, err := loadSchedule()
	if err != nil {
		return err
	}
	sum := an.Summarize(snap.Surgeries, snap.Rooms)
	tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ROOM\tNAME\tSURGERIES\tHOURS\tUTILIZATION\tCURRENT")
	for _, r := range sum.Rooms {
		current := "-"
		if s, ok := analyzer.CurrentSurgery(r.RoomID, snap.Surgeries); ok {
			current = s.Procedure
		}
		fmt.Fprintf(tw, "%s\t%s\t%d\t%.1f/%.1f\t%.1f%%\t%s\n", r.RoomID, r.RoomName, r.Surgeries, r.ScheduledHours, r.AvailableHours, r.UtilizationRate, current)
	}
	fmt.Fprintf(tw, "\nOverall %.1f%%, %d rooms available, %d surgeries in progress\n", sum.Overall, sum.AvailableRooms, sum.ActiveSurgeries)
	return tw.Flush()
}
