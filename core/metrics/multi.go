package metrics

import (
	"time"

	"github.com/kilianp07/orsched/core/model"
)

// MultiSink fans records out to several sinks. Optional recorders are only
// called on sinks that implement them.
type MultiSink struct {
	Sinks []MetricsSink
}

// NewMultiSink creates a MultiSink with the provided sinks.
func NewMultiSink(sinks ...MetricsSink) *MultiSink {
	return &MultiSink{Sinks: sinks}
}

// RecordAnalysis forwards to all sinks, returning the first error.
func (m *MultiSink) RecordAnalysis(ev AnalysisEvent) error {
	for _, s := range m.Sinks {
		if err := s.RecordAnalysis(ev); err != nil {
			return err
		}
	}
	return nil
}

// RecordRoomUtilization forwards utilization snapshots.
func (m *MultiSink) RecordRoomUtilization(rooms []model.RoomUtilization, at time.Time) error {
	for _, s := range m.Sinks {
		if rec, ok := s.(RoomUtilizationRecorder); ok {
			if err := rec.RecordRoomUtilization(rooms, at); err != nil {
				return err
			}
		}
	}
	return nil
}

// RecordPrediction forwards duration estimates.
func (m *MultiSink) RecordPrediction(ev PredictionEvent) error {
	for _, s := range m.Sinks {
		if rec, ok := s.(PredictionRecorder); ok {
			if err := rec.RecordPrediction(ev); err != nil {
				return err
			}
		}
	}
	return nil
}
