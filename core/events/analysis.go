package events

import (
	"time"

	"github.com/kilianp07/orsched/core/analyzer"
	"github.com/kilianp07/orsched/core/model"
)

// AnalysisCompleted is published after every analysis run.
type AnalysisCompleted struct {
	RunID           string
	At              time.Time
	Duration        time.Duration
	Recommendations []model.Recommendation
	Conflicts       int
	Summary         analyzer.ResourceSummary
	// NewAlerts holds only the alerts raised by this run.
	NewAlerts []model.Alert
}

// ScheduleChanged is published when a booking is modified.
type ScheduleChanged struct {
	SurgeryID string
	Reason    string
	At        time.Time
}
