package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"

	scheduleapi "github.com/kilianp07/orsched/api/schedule"
	"github.com/kilianp07/orsched/app/plugins"
	"github.com/kilianp07/orsched/config"
	"github.com/kilianp07/orsched/core/alerts"
	"github.com/kilianp07/orsched/core/analyzer"
	"github.com/kilianp07/orsched/core/events"
	coremetrics "github.com/kilianp07/orsched/core/metrics"
	coremon "github.com/kilianp07/orsched/core/monitoring"
	"github.com/kilianp07/orsched/core/schedule"
	"github.com/kilianp07/orsched/fixtures"
	"github.com/kilianp07/orsched/infra/logger"
	"github.com/kilianp07/orsched/infra/metrics"
	"github.com/kilianp07/orsched/infra/mqtt"
	"github.com/kilianp07/orsched/internal/eventbus"
)

// Service runs the analyzer over the schedule store, keeps the alert book
// current and serves the HTTP API.
type Service struct {
	cfg      *config.Config
	store    schedule.Store
	analyzer *analyzer.Analyzer
	sink     coremetrics.MetricsSink
	book     *alerts.Book
	bus      *eventbus.Bus[events.AnalysisCompleted]
	pub      alerts.Publisher
	notifier *alerts.Notifier
	handler  http.Handler
	changes  chan events.ScheduleChanged
	log      logger.Logger
	now      func() time.Time

	mu sync.Mutex
}

// Option customizes a Service.
type Option func(*Service)

// WithPublisher replaces the MQTT alert publisher.
func WithPublisher(p alerts.Publisher) Option { return func(s *Service) { s.pub = p } }

// WithMetricsSink replaces the configured metrics sinks.
func WithMetricsSink(m coremetrics.MetricsSink) Option { return func(s *Service) { s.sink = m } }

// WithClock sets the time source used for alerts and events.
func WithClock(now func() time.Time) Option { return func(s *Service) { s.now = now } }

// WithLogger sets the service logger.
func WithLogger(l logger.Logger) Option { return func(s *Service) { s.log = l } }

// New creates a Service from the configuration.
func New(cfg *config.Config, opts ...Option) (*Service, error) {
	s := &Service{
		cfg:     cfg,
		book:    alerts.NewBook(),
		bus:     eventbus.New[events.AnalysisCompleted](),
		changes: make(chan events.ScheduleChanged, 16),
		now:     time.Now,
	}
	for _, o := range opts {
		o(s)
	}
	if s.log == nil {
		s.log = logger.New("service")
	}

	snap, err := fixtures.Load(cfg.Fixtures.Path)
	if err != nil {
		return nil, fmt.Errorf("fixtures: %w", err)
	}
	s.store = schedule.NewMemoryStore(snap)

	an, err := BuildAnalyzer(cfg)
	if err != nil {
		return nil, err
	}
	s.analyzer = an

	if s.sink == nil {
		sink, err := coremetrics.NewMetricsSink(cfg.Metrics.Sinks)
		if err != nil {
			return nil, fmt.Errorf("metrics sink: %w", err)
		}
		s.sink = sink
	}

	if s.pub == nil && cfg.Alerts.Enabled {
		pub, err := mqtt.NewPahoPublisher(cfg.Alerts.MQTT)
		if err != nil {
			return nil, fmt.Errorf("mqtt publisher: %w", err)
		}
		s.pub = pub
	}
	if s.pub != nil {
		s.notifier = alerts.NewNotifier(s.pub, cfg.Alerts.TopicPrefix, logger.New("alert_notifier"))
	}

	apiOpts := scheduleapi.Options{
		Store:    s.store,
		Analyzer: s.analyzer,
		Alerts:   s.book,
		OnChange: s.onChange,
		Logger:   logger.New("api"),
		Now:      s.now,
	}
	if rec, ok := s.sink.(coremetrics.PredictionRecorder); ok {
		apiOpts.Predictions = rec
	}
	s.handler = scheduleapi.NewHandler(apiOpts)
	return s, nil
}

// BuildAnalyzer returns the analyzer described by cfg, with the configured
// duration model when one is set.
func BuildAnalyzer(cfg *config.Config) (*analyzer.Analyzer, error) {
	an := analyzer.New(cfg.Analyzer)
	// A bare "historical" entry keeps the analyzer's own factors.
	if cfg.Predictor.Type == "" || (cfg.Predictor.Type == "historical" && len(cfg.Predictor.Conf) == 0) {
		return an, nil
	}
	p, err := plugins.NewPredictor(cfg.Predictor)
	if err != nil {
		return nil, fmt.Errorf("predictor: %w", err)
	}
	return an.WithPredictor(p), nil
}

// Handler returns the HTTP API.
func (s *Service) Handler() http.Handler { return s.handler }

// Store returns the schedule store.
func (s *Service) Store() schedule.Store { return s.store }

// Alerts returns the alert book.
func (s *Service) Alerts() *alerts.Book { return s.book }

// Subscribe returns a channel receiving every analysis result.
func (s *Service) Subscribe() <-chan events.AnalysisCompleted { return s.bus.Subscribe() }

// Analyze runs one analysis over the current schedule, records metrics,
// syncs the alert book and publishes the result on the bus. Runs are
// serialized.
func (s *Service) Analyze(ctx context.Context) (events.AnalysisCompleted, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := ctx.Err(); err != nil {
		return events.AnalysisCompleted{}, err
	}
	start := time.Now()
	snap := s.store.Snapshot()
	recs := s.analyzer.GenerateRecommendations(snap.Surgeries, snap.Rooms, snap.Surgeons)
	conflicts := len(s.analyzer.DetectConflicts(snap.Surgeries))
	summary := s.analyzer.Summarize(snap.Surgeries, snap.Rooms)
	now := s.now()
	raised := s.book.Sync(recs, now)
	ev := events.AnalysisCompleted{
		RunID:           uuid.NewString(),
		At:              now,
		Duration:        time.Since(start),
		Recommendations: recs,
		Conflicts:       conflicts,
		Summary:         summary,
		NewAlerts:       raised,
	}
	s.record(ev)
	s.bus.Publish(ev)
	s.log.Infow("analysis completed", map[string]any{
		"run_id":          ev.RunID,
		"recommendations": len(recs),
		"conflicts":       conflicts,
		"new_alerts":      len(raised),
		"utilization":     summary.Overall,
	})
	return ev, nil
}

func (s *Service) record(ev events.AnalysisCompleted) {
	err := s.sink.RecordAnalysis(coremetrics.AnalysisEvent{
		RunID:           ev.RunID,
		Time:            ev.At,
		Duration:        ev.Duration,
		Recommendations: ev.Recommendations,
		Conflicts:       ev.Conflicts,
		Summary:         ev.Summary,
	})
	if err != nil {
		s.log.Errorf("record analysis: %v", err)
		coremon.CaptureException(err, map[string]string{"module": "metrics", "run_id": ev.RunID})
	}
	if rec, ok := s.sink.(coremetrics.RoomUtilizationRecorder); ok {
		if err := rec.RecordRoomUtilization(ev.Summary.Rooms, ev.At); err != nil {
			s.log.Errorf("record room utilization: %v", err)
		}
	}
}

func (s *Service) onChange(ev events.ScheduleChanged) {
	select {
	case s.changes <- ev:
	default:
		s.log.Warnf("change queue full, %s picked up by next run", ev.SurgeryID)
	}
}

// Run serves the API and re-analyzes on every tick and after each booking
// change. It blocks until ctx is canceled or the HTTP server fails.
func (s *Service) Run(ctx context.Context) error {
	if s.notifier != nil {
		sub := s.bus.Subscribe()
		coremon.Go(func() { s.notifier.Run(ctx, sub) })
	}
	if addr := s.cfg.Metrics.PrometheusAddress; addr != "" {
		coremon.Go(func() {
			if err := metrics.StartPromServer(ctx, addr, s.log); err != nil {
				s.log.Errorf("prom server: %v", err)
			}
		})
	}

	srv := &http.Server{Addr: s.cfg.Server.Address, Handler: s.handler, ReadHeaderTimeout: 5 * time.Second}
	errCh := make(chan error, 1)
	coremon.Go(func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	})
	s.log.Infof("serving schedule API on %s", s.cfg.Server.Address)

	s.analyzeLogged(ctx)
	ticker := time.NewTicker(s.cfg.Server.AnalysisInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := srv.Shutdown(shutdownCtx); err != nil {
				s.log.Errorf("http shutdown: %v", err)
			}
			return nil
		case err := <-errCh:
			coremon.CaptureException(err, map[string]string{"module": "http"})
			return fmt.Errorf("http server: %w", err)
		case <-ticker.C:
			s.analyzeLogged(ctx)
		case ev := <-s.changes:
			s.log.Debugw("schedule changed", map[string]any{"surgery_id": ev.SurgeryID, "reason": ev.Reason})
			s.analyzeLogged(ctx)
		}
	}
}

func (s *Service) analyzeLogged(ctx context.Context) {
	if _, err := s.Analyze(ctx); err != nil && !errors.Is(err, context.Canceled) {
		s.log.Errorf("analysis: %v", err)
	}
}

// Close releases the bus, the MQTT connection and the metrics sinks.
func (s *Service) Close() error {
	s.bus.Close()
	if d, ok := s.pub.(interface{ Disconnect() }); ok {
		d.Disconnect()
	}
	closeSink(s.sink)
	coremon.Flush(2 * time.Second)
	return nil
}

func closeSink(m coremetrics.MetricsSink) {
	switch v := m.(type) {
	case *coremetrics.MultiSink:
		for _, inner := range v.Sinks {
			closeSink(inner)
		}
	case interface{ Close() }:
		v.Close()
	}
}
