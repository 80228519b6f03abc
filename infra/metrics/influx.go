package metrics

import (
	"context"
	"math"
	"net/http"
	"strings"
	"time"

	influxdb2 "github.com/influxdata/influxdb-client-go/v2"
	"github.com/influxdata/influxdb-client-go/v2/api"
	"github.com/influxdata/influxdb-client-go/v2/api/write"

	coremetrics "github.com/kilianp07/orsched/core/metrics"
	"github.com/kilianp07/orsched/core/model"
	"github.com/kilianp07/orsched/infra/logger"
)

// InfluxSink writes analysis results to an InfluxDB instance.
type InfluxSink struct {
	client   influxdb2.Client
	writeAPI api.WriteAPIBlocking
	log      logger.Logger
}

// NewInfluxSink creates a sink configured for the given InfluxDB endpoint.
func NewInfluxSink(url, token, org, bucket string) *InfluxSink {
	base := strings.TrimSuffix(url, "/api/v2/write")
	client := influxdb2.NewClientWithOptions(base, token,
		influxdb2.DefaultOptions().SetHTTPClient(&http.Client{Timeout: 5 * time.Second}))
	return &InfluxSink{
		client:   client,
		writeAPI: client.WriteAPIBlocking(org, bucket),
		log:      logger.New("influx-sink"),
	}
}

// NewInfluxSinkWithFallback pings the InfluxDB instance and returns a
// NopSink if the health check fails.
func NewInfluxSinkWithFallback(url, token, org, bucket string) coremetrics.MetricsSink {
	sink := NewInfluxSink(url, token, org, bucket)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	health, err := sink.client.Health(ctx)
	if err != nil || health.Status != "pass" {
		if err != nil {
			sink.log.Errorf("influx health check error: %v", err)
		} else {
			sink.log.Errorf("influx health status: %s", health.Status)
		}
		sink.client.Close()
		return coremetrics.NopSink{}
	}
	return sink
}

// Close releases the underlying client.
func (s *InfluxSink) Close() {
	s.client.Close()
}

// RecordAnalysis writes one point per run and one per recommendation.
func (s *InfluxSink) RecordAnalysis(ev coremetrics.AnalysisEvent) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	p := write.NewPointWithMeasurement("analysis_run").
		AddTag("run_id", ev.RunID).
		AddField("conflicts", ev.Conflicts).
		AddField("recommendations", len(ev.Recommendations)).
		AddField("overall_utilization", round3(ev.Summary.Overall)).
		AddField("active_surgeries", ev.Summary.ActiveSurgeries).
		AddField("duration_ms", round3(ev.Duration.Seconds()*1000)).
		SetTime(ev.Time)
	if err := s.writeAPI.WritePoint(ctx, p); err != nil {
		return err
	}
	for _, r := range ev.Recommendations {
		rp := write.NewPointWithMeasurement("recommendation").
			AddTag("run_id", ev.RunID).
			AddTag("type", string(r.Type)).
			AddTag("impact", string(r.Impact)).
			AddField("confidence", round3(r.Confidence)).
			AddField("message", r.Message).
			SetTime(ev.Time)
		if err := s.writeAPI.WritePoint(ctx, rp); err != nil {
			return err
		}
	}
	return nil
}

// RecordRoomUtilization writes a point per room.
func (s *InfluxSink) RecordRoomUtilization(rooms []model.RoomUtilization, at time.Time) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	for _, r := range rooms {
		p := write.NewPointWithMeasurement("room_utilization").
			AddTag("room_id", r.RoomID).
			AddField("utilization_percent", round3(r.UtilizationRate)).
			AddField("scheduled_hours", round3(r.ScheduledHours)).
			AddField("surgeries", r.Surgeries).
			SetTime(at)
		if err := s.writeAPI.WritePoint(ctx, p); err != nil {
			return err
		}
	}
	return nil
}

// RecordPrediction writes a served estimate.
func (s *InfluxSink) RecordPrediction(ev coremetrics.PredictionEvent) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	p := write.NewPointWithMeasurement("duration_prediction").
		AddTag("surgeon_id", ev.SurgeonID).
		AddTag("procedure", ev.Procedure).
		AddField("complexity", round3(ev.Complexity)).
		AddField("minutes", ev.Minutes).
		SetTime(ev.Time)
	return s.writeAPI.WritePoint(ctx, p)
}

func round3(f float64) float64 {
	return math.Round(f*1000) / 1000
}
