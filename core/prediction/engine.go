package prediction

import (
	"fmt"
	"math"

	"github.com/kilianp07/orsched/core/model"
)

const (
	// DefaultBaseMinutes is used when a surgeon has no history for a procedure.
	DefaultBaseMinutes = 120
	// DefaultExperienceFactor assumes experienced surgeons work 10% faster.
	DefaultExperienceFactor = 0.9
	// DefaultComplexity is the neutral patient complexity.
	DefaultComplexity = 1.0
)

// DurationPredictor estimates procedure durations in whole minutes.
type DurationPredictor interface {
	PredictDuration(procedure string, surgeon model.Surgeon, complexity float64) int
}

// HistoricalPredictor scales the surgeon's historical average.
// The zero value uses the package defaults.
type HistoricalPredictor struct {
	BaseMinutes      float64
	ExperienceFactor float64
}

// NewHistoricalPredictor returns a predictor with the default factors.
func NewHistoricalPredictor() HistoricalPredictor {
	return HistoricalPredictor{BaseMinutes: DefaultBaseMinutes, ExperienceFactor: DefaultExperienceFactor}
}

// PredictDuration returns round(base * (0.8 + complexity*0.4) * experience).
// Unknown procedures and non-positive averages fall back to the base
// minutes. Negative complexity is treated as zero and a non-finite one as
// DefaultComplexity.
func (p HistoricalPredictor) PredictDuration(procedure string, surgeon model.Surgeon, complexity float64) int {
	base, ok := surgeon.AverageDuration(procedure)
	if !ok || base <= 0 {
		base = p.baseMinutes()
	}
	complexity = EffectiveComplexity(complexity)
	complexityFactor := 0.8 + complexity*0.4
	return int(math.Round(base * complexityFactor * p.experienceFactor()))
}

// EffectiveComplexity returns the complexity the predictor actually applies.
func EffectiveComplexity(c float64) float64 {
	switch {
	case math.IsNaN(c), math.IsInf(c, 0):
		return DefaultComplexity
	case c < 0:
		return 0
	}
	return c
}

// ValidateComplexity rejects values callers should not submit.
func ValidateComplexity(c float64) error {
	if math.IsNaN(c) || math.IsInf(c, 0) || c < 0 {
		return fmt.Errorf("complexity must be a finite value >= 0, got %v", c)
	}
	return nil
}

func (p HistoricalPredictor) baseMinutes() float64 {
	if p.BaseMinutes <= 0 {
		return DefaultBaseMinutes
	}
	return p.BaseMinutes
}

func (p HistoricalPredictor) experienceFactor() float64 {
	if p.ExperienceFactor <= 0 {
		return DefaultExperienceFactor
	}
	return p.ExperienceFactor
}
