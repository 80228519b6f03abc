package export

import (
	"fmt"
	"io"
	"math"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"

	"github.com/kilianp07/orsched/core/model"
)

// WriteUtilizationChart renders a standalone HTML bar chart of per-room
// utilization.
func WriteUtilizationChart(w io.Writer, rooms []model.RoomUtilization) error {
	bar := charts.NewBar()
	bar.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{Title: "Room Utilization"}),
		charts.WithXAxisOpts(opts.XAxis{Name: "Room"}),
		charts.WithYAxisOpts(opts.YAxis{Name: "Utilization (%)"}),
	)

	names := make([]string, 0, len(rooms))
	data := make([]opts.BarData, 0, len(rooms))
	for _, r := range rooms {
		names = append(names, r.RoomName)
		data = append(data, opts.BarData{Value: math.Round(r.UtilizationRate*10) / 10})
	}
	bar.SetXAxis(names).AddSeries("Utilization", data)

	if err := bar.Render(w); err != nil {
		return fmt.Errorf("render chart: %w", err)
	}
	return nil
}
