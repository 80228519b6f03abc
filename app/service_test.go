package app

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kilianp07/orsched/config"
	coremetrics "github.com/kilianp07/orsched/core/metrics"
	"github.com/kilianp07/orsched/core/model"
	"github.com/kilianp07/orsched/infra/logger"
	"github.com/kilianp07/orsched/infra/mqtt"
)

var fixedNow = time.Date(2024, 1, 15, 10, 0, 0, 0, time.UTC)

type recordingSink struct {
	mu       sync.Mutex
	analyses []coremetrics.AnalysisEvent
	rooms    [][]model.RoomUtilization
	preds    []coremetrics.PredictionEvent
}

func (r *recordingSink) RecordAnalysis(ev coremetrics.AnalysisEvent) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.analyses = append(r.analyses, ev)
	return nil
}

func (r *recordingSink) RecordRoomUtilization(rooms []model.RoomUtilization, _ time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rooms = append(r.rooms, rooms)
	return nil
}

func (r *recordingSink) RecordPrediction(ev coremetrics.PredictionEvent) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.preds = append(r.preds, ev)
	return nil
}

func (r *recordingSink) analysisCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.analyses)
}

func newTestService(t *testing.T, cfg *config.Config) (*Service, *recordingSink, *mqtt.MockPublisher) {
	t.Helper()
	sink := &recordingSink{}
	pub := mqtt.NewMockPublisher()
	svc, err := New(cfg, WithMetricsSink(sink), WithPublisher(pub), WithClock(func() time.Time { return fixedNow }), WithLogger(logger.NopLogger{}))
	require.NoError(t, err)
	t.Cleanup(func() { _ = svc.Close() })
	return svc, sink, pub
}

func TestAnalyze(t *testing.T) {
	svc, sink, _ := newTestService(t, config.Default())
	sub := svc.Subscribe()

	ev, err := svc.Analyze(context.Background())
	require.NoError(t, err)
	assert.NotEmpty(t, ev.RunID)
	assert.Equal(t, fixedNow, ev.At)
	require.Len(t, ev.Recommendations, 1)
	assert.Equal(t, "room-optimization", ev.Recommendations[0].ID)
	assert.Zero(t, ev.Conflicts)
	assert.InDelta(t, 43.75, ev.Summary.Overall, 1e-9)
	require.Len(t, ev.NewAlerts, 1)
	assert.Equal(t, model.SeverityWarning, ev.NewAlerts[0].Severity)

	select {
	case got := <-sub:
		assert.Equal(t, ev.RunID, got.RunID)
	case <-time.After(time.Second):
		t.Fatal("analysis not published")
	}

	require.Len(t, sink.analyses, 1)
	require.Len(t, sink.rooms, 1)
	assert.Len(t, sink.rooms[0], 4)

	// Unchanged schedule raises nothing new.
	again, err := svc.Analyze(context.Background())
	require.NoError(t, err)
	assert.Empty(t, again.NewAlerts)
	assert.Len(t, svc.Alerts().List(""), 1)
}

func TestAnalyzeAfterConflict(t *testing.T) {
	svc, _, _ := newTestService(t, config.Default())
	_, err := svc.Store().Reschedule("surgery-4", fixedNow.Add(time.Hour), fixedNow.Add(4*time.Hour))
	require.NoError(t, err)

	ev, err := svc.Analyze(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, ev.Conflicts)
	assert.Equal(t, "conflict-0", ev.Recommendations[0].ID)
	assert.Equal(t, 1, svc.Alerts().Counts().Critical)
}

func TestAnalyzeCanceledContext(t *testing.T) {
	svc, sink, _ := newTestService(t, config.Default())
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := svc.Analyze(ctx)
	require.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, sink.analyses)
}

func TestHandlerRecordsPredictions(t *testing.T) {
	svc, sink, _ := newTestService(t, config.Default())
	rr := httptest.NewRecorder()
	svc.Handler().ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/api/predict?surgeon_id=surgeon-1&procedure=Coronary%20Bypass", nil))
	require.Equal(t, http.StatusOK, rr.Code)
	var body struct {
		Minutes int `json:"minutes"`
	}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
	assert.Equal(t, 259, body.Minutes)
	require.Len(t, sink.preds, 1)
}

func TestConfiguredPredictor(t *testing.T) {
	cfg := config.Default()
	cfg.Predictor.Type = "mock"
	cfg.Predictor.Conf = map[string]any{"default": 42}
	svc, _, _ := newTestService(t, cfg)
	rr := httptest.NewRecorder()
	svc.Handler().ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/api/predict?surgeon_id=surgeon-1&procedure=Coronary%20Bypass", nil))
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), `"minutes":42`)
}

func TestNewErrors(t *testing.T) {
	cfg := config.Default()
	cfg.Fixtures.Path = "schedule.toml"
	_, err := New(cfg, WithMetricsSink(coremetrics.NopSink{}))
	assert.ErrorContains(t, err, "fixtures")

	cfg = config.Default()
	cfg.Predictor.Type = "neural"
	_, err = New(cfg, WithMetricsSink(coremetrics.NopSink{}))
	assert.ErrorContains(t, err, "predictor")
}

func TestRunPublishesAlertsAndReanalyzesOnChange(t *testing.T) {
	cfg := config.Default()
	cfg.Server.Address = "127.0.0.1:0"
	cfg.Server.AnalysisInterval = time.Hour
	svc, sink, pub := newTestService(t, cfg)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- svc.Run(ctx) }()

	require.Eventually(t, func() bool { return sink.analysisCount() >= 1 }, 2*time.Second, 10*time.Millisecond)
	require.Eventually(t, func() bool { return len(pub.Messages()) == 1 }, 2*time.Second, 10*time.Millisecond)
	assert.Equal(t, "orsched/alerts/warning", pub.Messages()[0].Topic)

	rr := httptest.NewRecorder()
	body := `{"start":"2024-01-15T11:00:00Z","end":"2024-01-15T14:00:00Z"}`
	svc.Handler().ServeHTTP(rr, httptest.NewRequest(http.MethodPost, "/api/surgeries/surgery-4/reschedule", strings.NewReader(body)))
	require.Equal(t, http.StatusOK, rr.Code)

	require.Eventually(t, func() bool { return sink.analysisCount() >= 2 }, 2*time.Second, 10*time.Millisecond)
	require.Eventually(t, func() bool { return len(pub.Messages()) == 2 }, 2*time.Second, 10*time.Millisecond)
	assert.Equal(t, "orsched/alerts/critical", pub.Messages()[1].Topic)

	cancel()
	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("service did not stop")
	}
}
