package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"

	coremetrics "github.com/kilianp07/orsched/core/metrics"
	"github.com/kilianp07/orsched/core/model"
)

// PromSink exposes analysis results as Prometheus metrics.
type PromSink struct {
	recommendations *prometheus.CounterVec
	conflicts       prometheus.Gauge
	overall         prometheus.Gauge
	rooms           *prometheus.GaugeVec
	duration        prometheus.Histogram
	predicted       *prometheus.HistogramVec
}

// NewPromSink registers the analysis metrics on the default registerer.
// The /metrics endpoint is started separately with StartPromServer.
func NewPromSink() (*PromSink, error) {
	return NewPromSinkWithRegistry(prometheus.DefaultRegisterer)
}

// NewPromSinkWithRegistry registers metrics on the provided registerer.
// A nil registerer defaults to the global Prometheus registerer. Collectors
// already registered by an earlier sink are reused.
func NewPromSinkWithRegistry(reg prometheus.Registerer) (*PromSink, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	s := &PromSink{
		recommendations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "orsched_recommendations_total",
			Help: "Recommendations emitted by analysis runs",
		}, []string{"type", "impact"}),
		conflicts: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "orsched_conflicts",
			Help: "Surgeon double-bookings found by the last analysis run",
		}),
		overall: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "orsched_overall_utilization_percent",
			Help: "Mean room utilization of the last analysis run",
		}),
		rooms: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "orsched_room_utilization_percent",
			Help: "Booked share of the workday per operating room",
		}, []string{"room_id"}),
		duration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "orsched_analysis_duration_seconds",
			Help:    "Time spent in one analysis run",
			Buckets: prometheus.DefBuckets,
		}),
		predicted: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "orsched_predicted_duration_minutes",
			Help:    "Predicted surgery durations served",
			Buckets: prometheus.LinearBuckets(30, 30, 12),
		}, []string{"procedure"}),
	}

	var err error
	if s.recommendations, err = register(reg, s.recommendations); err != nil {
		return nil, err
	}
	if s.conflicts, err = register(reg, s.conflicts); err != nil {
		return nil, err
	}
	if s.overall, err = register(reg, s.overall); err != nil {
		return nil, err
	}
	if s.rooms, err = register(reg, s.rooms); err != nil {
		return nil, err
	}
	if s.duration, err = register(reg, s.duration); err != nil {
		return nil, err
	}
	if s.predicted, err = register(reg, s.predicted); err != nil {
		return nil, err
	}
	return s, nil
}

func register[C prometheus.Collector](reg prometheus.Registerer, c C) (C, error) {
	if err := reg.Register(c); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			if existing, ok := are.ExistingCollector.(C); ok {
				return existing, nil
			}
		}
		return c, err
	}
	return c, nil
}

// RecordAnalysis updates counters and gauges for one run.
func (s *PromSink) RecordAnalysis(ev coremetrics.AnalysisEvent) error {
	for _, r := range ev.Recommendations {
		s.recommendations.WithLabelValues(string(r.Type), string(r.Impact)).Inc()
	}
	s.conflicts.Set(float64(ev.Conflicts))
	s.overall.Set(ev.Summary.Overall)
	s.duration.Observe(ev.Duration.Seconds())
	return nil
}

// RecordRoomUtilization sets the per-room gauge.
func (s *PromSink) RecordRoomUtilization(rooms []model.RoomUtilization, _ time.Time) error {
	for _, r := range rooms {
		s.rooms.WithLabelValues(r.RoomID).Set(r.UtilizationRate)
	}
	return nil
}

// RecordPrediction observes a served estimate.
func (s *PromSink) RecordPrediction(ev coremetrics.PredictionEvent) error {
	s.predicted.WithLabelValues(ev.Procedure).Observe(float64(ev.Minutes))
	return nil
}
