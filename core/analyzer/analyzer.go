package analyzer

import (
	"fmt"

	"github.com/kilianp07/orsched/core/model"
	"github.com/kilianp07/orsched/core/prediction"
)

const (
	conflictConfidence = 0.95
	roomConfidence     = 0.87
	balanceConfidence  = 0.82

	roomRecommendationID    = "room-optimization"
	balanceRecommendationID = "schedule-optimization"
)

// Advisory is the message/action pair produced by a single check.
type Advisory struct {
	Message string `json:"message"`
	Action  string `json:"action"`
}

// Analyzer holds immutable settings; it is safe for concurrent use.
type Analyzer struct {
	cfg       Config
	predictor prediction.DurationPredictor
}

// New returns an Analyzer using cfg with defaults applied.
func New(cfg Config) *Analyzer {
	cfg.SetDefaults()
	return &Analyzer{
		cfg: cfg,
		predictor: prediction.HistoricalPredictor{
			BaseMinutes:      cfg.FallbackMinutes,
			ExperienceFactor: cfg.ExperienceFactor,
		},
	}
}

// WithPredictor returns a copy of a using p for duration estimates.
func (a *Analyzer) WithPredictor(p prediction.DurationPredictor) *Analyzer {
	cp := *a
	if p != nil {
		cp.predictor = p
	}
	return &cp
}

// WithConflictMode returns a copy of a ordering conflict checks by mode.
// An empty mode keeps the current one.
func (a *Analyzer) WithConflictMode(mode ConflictMode) *Analyzer {
	cp := *a
	if mode != "" {
		cp.cfg.ConflictMode = mode
	}
	return &cp
}

// Config returns the effective configuration.
func (a *Analyzer) Config() Config { return a.cfg }

// PredictDuration estimates the procedure length in minutes.
func (a *Analyzer) PredictDuration(procedure string, surgeon model.Surgeon, complexity float64) int {
	return a.predictor.PredictDuration(procedure, surgeon, complexity)
}

// GenerateRecommendations runs every check and returns the advisories in
// fixed order: conflicts first, then room utilization, then balance.
// Surgeons are accepted for interface stability; no check uses them yet.
func (a *Analyzer) GenerateRecommendations(surgeries []model.Surgery, rooms []model.OperatingRoom, _ []model.Surgeon) []model.Recommendation {
	recs := make([]model.Recommendation, 0)

	for i, c := range a.DetectConflicts(surgeries) {
		recs = append(recs, model.Recommendation{
			ID:              fmt.Sprintf("conflict-%d", i),
			Type:            model.RecConflictResolution,
			Message:         "Scheduling conflict detected: " + c.Message,
			Confidence:      conflictConfidence,
			SuggestedAction: c.Suggestion,
			Impact:          model.ImpactHigh,
		})
	}

	if adv, ok := a.EvaluateRoomUtilization(surgeries, rooms); ok {
		recs = append(recs, model.Recommendation{
			ID:              roomRecommendationID,
			Type:            model.RecResourceAllocation,
			Message:         adv.Message,
			Confidence:      roomConfidence,
			SuggestedAction: adv.Action,
			Impact:          model.ImpactMedium,
		})
	}

	if adv, ok := EvaluateScheduleBalance(surgeries); ok {
		recs = append(recs, model.Recommendation{
			ID:              balanceRecommendationID,
			Type:            model.RecScheduleOptimization,
			Message:         adv.Message,
			Confidence:      balanceConfidence,
			SuggestedAction: adv.Action,
			Impact:          model.ImpactMedium,
		})
	}
	return recs
}

var defaultAnalyzer = New(Config{})

// PredictDuration uses the default analyzer.
func PredictDuration(procedure string, surgeon model.Surgeon, complexity float64) int {
	return defaultAnalyzer.PredictDuration(procedure, surgeon, complexity)
}

// DetectConflicts uses the default analyzer (input-order mode).
func DetectConflicts(surgeries []model.Surgery) []Conflict {
	return defaultAnalyzer.DetectConflicts(surgeries)
}

// EvaluateRoomUtilization uses the default 8-hour day and 60% threshold.
func EvaluateRoomUtilization(surgeries []model.Surgery, rooms []model.OperatingRoom) (Advisory, bool) {
	return defaultAnalyzer.EvaluateRoomUtilization(surgeries, rooms)
}

// GenerateRecommendations uses the default analyzer.
func GenerateRecommendations(surgeries []model.Surgery, rooms []model.OperatingRoom, surgeons []model.Surgeon) []model.Recommendation {
	return defaultAnalyzer.GenerateRecommendations(surgeries, rooms, surgeons)
}
