package analyzer

import (
	"fmt"
	"math"
	"strings"

	"gonum.org/v1/gonum/stat"

	"github.com/kilianp07/orsched/core/model"
)

type roomLoad struct {
	room      model.OperatingRoom
	minutes   float64
	surgeries int
}

// roomLoads sums scheduled minutes per room in room order. A duplicated room
// id keeps its first position.
func roomLoads(surgeries []model.Surgery, rooms []model.OperatingRoom) []roomLoad {
	index := make(map[string]int, len(rooms))
	loads := make([]roomLoad, 0, len(rooms))
	for _, r := range rooms {
		if _, ok := index[r.ID]; ok {
			continue
		}
		index[r.ID] = len(loads)
		loads = append(loads, roomLoad{room: r})
	}
	for _, s := range surgeries {
		i, ok := index[s.RoomID]
		if !ok {
			continue
		}
		loads[i].minutes += s.ScheduledMinutes()
		loads[i].surgeries++
	}
	return loads
}

// UtilizationRatios returns the raw, uncapped share of the working day booked
// in each room, keyed by room id.
func (a *Analyzer) UtilizationRatios(surgeries []model.Surgery, rooms []model.OperatingRoom) map[string]float64 {
	out := make(map[string]float64, len(rooms))
	for _, l := range roomLoads(surgeries, rooms) {
		out[l.room.ID] = l.minutes / a.cfg.WorkdayMinutes
	}
	return out
}

// EvaluateRoomUtilization flags rooms booked for less than the threshold
// share of the working day. One advisory covers all of them and names the
// first two.
func (a *Analyzer) EvaluateRoomUtilization(surgeries []model.Surgery, rooms []model.OperatingRoom) (Advisory, bool) {
	var under []string
	for _, l := range roomLoads(surgeries, rooms) {
		if l.minutes/a.cfg.WorkdayMinutes < a.cfg.UnderutilizationThreshold {
			under = append(under, l.room.ID)
		}
	}
	if len(under) == 0 {
		return Advisory{}, false
	}
	named := under
	if len(named) > 2 {
		named = named[:2]
	}
	return Advisory{
		Message: fmt.Sprintf("%d rooms are underutilized (< %s%%)", len(under), formatPercent(a.cfg.UnderutilizationThreshold)),
		Action:  "Consider consolidating surgeries to rooms " + strings.Join(named, ", "),
	}, true
}

func formatPercent(ratio float64) string {
	return fmt.Sprintf("%g", math.Round(ratio*1000)/10)
}

// ResourceSummary is the dashboard view of room usage.
type ResourceSummary struct {
	// Overall is the mean of the capped per-room percentages.
	Overall         float64                 `json:"overall_utilization"`
	AvailableRooms  int                     `json:"available_rooms"`
	ActiveSurgeries int                     `json:"active_surgeries"`
	Rooms           []model.RoomUtilization `json:"rooms"`
}

// RoomUtilizations reports each room's booked share of the day as a
// percentage capped at 100.
func (a *Analyzer) RoomUtilizations(surgeries []model.Surgery, rooms []model.OperatingRoom) []model.RoomUtilization {
	loads := roomLoads(surgeries, rooms)
	out := make([]model.RoomUtilization, 0, len(loads))
	available := a.cfg.WorkdayMinutes / 60
	for _, l := range loads {
		out = append(out, model.RoomUtilization{
			RoomID:          l.room.ID,
			RoomName:        l.room.Name,
			UtilizationRate: math.Min(l.minutes/a.cfg.WorkdayMinutes*100, 100),
			ScheduledHours:  l.minutes / 60,
			AvailableHours:  available,
			Surgeries:       l.surgeries,
		})
	}
	return out
}

// Summarize builds the resource summary. With no rooms the overall figure
// is zero.
func (a *Analyzer) Summarize(surgeries []model.Surgery, rooms []model.OperatingRoom) ResourceSummary {
	util := a.RoomUtilizations(surgeries, rooms)
	sum := ResourceSummary{Rooms: util}
	if len(util) > 0 {
		rates := make([]float64, len(util))
		for i, u := range util {
			rates[i] = u.UtilizationRate
		}
		sum.Overall = stat.Mean(rates, nil)
	}
	for _, r := range rooms {
		if r.Status == model.RoomAvailable {
			sum.AvailableRooms++
		}
	}
	for _, s := range surgeries {
		if s.Status == model.StatusInProgress {
			sum.ActiveSurgeries++
		}
	}
	return sum
}

// CurrentSurgery returns the first in-progress booking for the room.
func CurrentSurgery(roomID string, surgeries []model.Surgery) (model.Surgery, bool) {
	for _, s := range surgeries {
		if s.RoomID == roomID && s.Status == model.StatusInProgress {
			return s, true
		}
	}
	return model.Surgery{}, false
}
