package metrics

import (
	"errors"
	"testing"
	"time"

	"github.com/kilianp07/orsched/core/model"
)

type recordSink struct {
	analyses    int
	utilization int
	predictions int
	err         error
}

func (r *recordSink) RecordAnalysis(AnalysisEvent) error {
	r.analyses++
	return r.err
}

func (r *recordSink) RecordRoomUtilization([]model.RoomUtilization, time.Time) error {
	r.utilization++
	return r.err
}

func (r *recordSink) RecordPrediction(PredictionEvent) error {
	r.predictions++
	return r.err
}

type analysisOnly struct{ n int }

func (a *analysisOnly) RecordAnalysis(AnalysisEvent) error {
	a.n++
	return nil
}

func TestMultiSink(t *testing.T) {
	s1 := &recordSink{}
	s2 := &analysisOnly{}
	m := NewMultiSink(s1, s2)
	if err := m.RecordAnalysis(AnalysisEvent{RunID: "r1"}); err != nil {
		t.Fatalf("record analysis: %v", err)
	}
	if err := m.RecordRoomUtilization(nil, time.Now()); err != nil {
		t.Fatalf("record utilization: %v", err)
	}
	if err := m.RecordPrediction(PredictionEvent{Minutes: 259}); err != nil {
		t.Fatalf("record prediction: %v", err)
	}
	if s1.analyses != 1 || s1.utilization != 1 || s1.predictions != 1 {
		t.Fatalf("records not forwarded: %+v", s1)
	}
	if s2.n != 1 {
		t.Fatalf("analysis not forwarded to partial sink")
	}
}

func TestMultiSinkStopsOnError(t *testing.T) {
	boom := errors.New("boom")
	s1 := &recordSink{err: boom}
	s2 := &recordSink{}
	m := NewMultiSink(s1, s2)
	if err := m.RecordAnalysis(AnalysisEvent{}); !errors.Is(err, boom) {
		t.Fatalf("expected boom, got %v", err)
	}
	if s2.analyses != 0 {
		t.Fatalf("second sink should not be called")
	}
}
