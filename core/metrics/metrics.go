package metrics

import (
	"time"

	"github.com/kilianp07/orsched/core/analyzer"
	"github.com/kilianp07/orsched/core/model"
)

// AnalysisEvent describes one analysis run.
type AnalysisEvent struct {
	RunID           string
	Time            time.Time
	Duration        time.Duration
	Recommendations []model.Recommendation
	Conflicts       int
	Summary         analyzer.ResourceSummary
}

// MetricsSink records analysis runs.
type MetricsSink interface {
	RecordAnalysis(ev AnalysisEvent) error
}

// RoomUtilizationRecorder records per-room utilization.
type RoomUtilizationRecorder interface {
	RecordRoomUtilization(rooms []model.RoomUtilization, at time.Time) error
}

// PredictionEvent is a single duration estimate served to a caller.
type PredictionEvent struct {
	SurgeonID  string
	Procedure  string
	Complexity float64
	Minutes    int
	Time       time.Time
}

// PredictionRecorder records duration estimates.
type PredictionRecorder interface {
	RecordPrediction(ev PredictionEvent) error
}

// NopSink implements every recorder with no-op methods.
type NopSink struct{}

func (NopSink) RecordAnalysis(AnalysisEvent) error                            { return nil }
func (NopSink) RecordRoomUtilization([]model.RoomUtilization, time.Time) error { return nil }
func (NopSink) RecordPrediction(PredictionEvent) error                        { return nil }
