package analyzer

import (
	"fmt"
	"sort"

	"github.com/kilianp07/orsched/core/model"
)

// suggestionTimeFormat renders the end of the earlier booking.
const suggestionTimeFormat = "3:04:05 PM"

// Conflict flags two bookings of the same surgeon that overlap.
type Conflict struct {
	SurgeonID string `json:"surgeon_id"`
	// SurgeryID is the later booking of the pair, the one to move.
	SurgeryID  string `json:"surgery_id"`
	PreviousID string `json:"previous_id"`
	Message    string `json:"message"`
	Suggestion string `json:"suggestion"`
}

// DetectConflicts groups bookings by surgeon, in order of first appearance,
// and flags each adjacent pair whose earlier end is strictly after the next
// start. Touching windows do not conflict.
func (a *Analyzer) DetectConflicts(surgeries []model.Surgery) []Conflict {
	var order []string
	groups := make(map[string][]model.Surgery)
	for _, s := range surgeries {
		if _, ok := groups[s.SurgeonID]; !ok {
			order = append(order, s.SurgeonID)
		}
		groups[s.SurgeonID] = append(groups[s.SurgeonID], s)
	}

	var conflicts []Conflict
	for _, surgeonID := range order {
		group := groups[surgeonID]
		if a.cfg.ConflictMode == ConflictChronological {
			sort.SliceStable(group, func(i, j int) bool {
				return group[i].ScheduledStart.Before(group[j].ScheduledStart)
			})
		}
		for i := 0; i+1 < len(group); i++ {
			cur, next := group[i], group[i+1]
			if !cur.ScheduledEnd.After(next.ScheduledStart) {
				continue
			}
			conflicts = append(conflicts, Conflict{
				SurgeonID:  surgeonID,
				SurgeryID:  next.ID,
				PreviousID: cur.ID,
				Message:    fmt.Sprintf("Surgeon %s has overlapping surgeries", surgeonID),
				Suggestion: fmt.Sprintf("Reschedule surgery %s to start after %s",
					next.ID, cur.ScheduledEnd.Format(suggestionTimeFormat)),
			})
		}
	}
	return conflicts
}
