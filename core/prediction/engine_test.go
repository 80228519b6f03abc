package prediction

import (
	"math"
	"testing"

	"github.com/kilianp07/orsched/core/model"
)

func cardiac() model.Surgeon {
	return model.Surgeon{
		ID:        "surgeon-1",
		Specialty: "Cardiothoracic Surgery",
		AverageDurations: map[string]float64{
			"Coronary Bypass":   240,
			"Valve Replacement": 180,
			"Angioplasty":       90,
			"Broken":            0,
		},
	}
}

func TestHistoricalPredictor_KnownProcedure(t *testing.T) {
	p := NewHistoricalPredictor()
	if got := p.PredictDuration("Coronary Bypass", cardiac(), 1); got != 259 {
		t.Fatalf("expected 259 got %d", got)
	}
	if got := p.PredictDuration("Angioplasty", cardiac(), 1); got != 97 {
		t.Fatalf("expected 97 got %d", got)
	}
}

func TestHistoricalPredictor_UnknownProcedure(t *testing.T) {
	p := NewHistoricalPredictor()
	// 120 * 1.2 * 0.9 = 129.6
	if got := p.PredictDuration("Appendectomy", cardiac(), 1); got != 130 {
		t.Fatalf("expected 130 got %d", got)
	}
	neuro := model.Surgeon{ID: "surgeon-3", Specialty: "Neurosurgery"}
	if got := p.PredictDuration("Appendectomy", neuro, 1); got != 130 {
		t.Fatalf("fallback must not depend on specialty, got %d", got)
	}
	if got := p.PredictDuration("Broken", cardiac(), 1); got != 130 {
		t.Fatalf("zero average should fall back, got %d", got)
	}
}

func TestHistoricalPredictor_Complexity(t *testing.T) {
	p := HistoricalPredictor{}
	cases := []struct {
		complexity float64
		want       int
	}{
		{0, 173},   // 240*0.8*0.9 = 172.8
		{2, 346},   // 240*1.6*0.9 = 345.6
		{0.5, 216}, // 240*1.0*0.9
		{-3, 173},  // clamped to 0
		{math.NaN(), 259},
		{math.Inf(1), 259},
		{math.Inf(-1), 259},
	}
	for _, c := range cases {
		if got := p.PredictDuration("Coronary Bypass", cardiac(), c.complexity); got != c.want {
			t.Errorf("complexity %.1f: expected %d got %d", c.complexity, c.want, got)
		}
	}
}

func TestHistoricalPredictor_CustomFactors(t *testing.T) {
	p := HistoricalPredictor{BaseMinutes: 60, ExperienceFactor: 1}
	if got := p.PredictDuration("Unknown", model.Surgeon{}, 1); got != 72 {
		t.Fatalf("expected 72 got %d", got)
	}
}

func TestMockPredictor(t *testing.T) {
	m := MockPredictor{Durations: map[string]int{"Arthroscopy": 45}, Default: 100}
	if m.PredictDuration("Arthroscopy", model.Surgeon{}, 1) != 45 {
		t.Fatalf("expected configured value")
	}
	if m.PredictDuration("Other", model.Surgeon{}, 1) != 100 {
		t.Fatalf("expected default value")
	}
}

func TestValidateComplexity(t *testing.T) {
	for _, c := range []float64{0, 1, 2.5} {
		if err := ValidateComplexity(c); err != nil {
			t.Errorf("complexity %v: unexpected error %v", c, err)
		}
	}
	for _, c := range []float64{-1, math.NaN(), math.Inf(1), math.Inf(-1)} {
		if err := ValidateComplexity(c); err == nil {
			t.Errorf("complexity %v: expected error", c)
		}
	}
}

func TestEffectiveComplexity(t *testing.T) {
	cases := map[float64]float64{-2: 0, 0: 0, 1.5: 1.5, math.Inf(1): DefaultComplexity}
	for in, want := range cases {
		if got := EffectiveComplexity(in); got != want {
			t.Errorf("complexity %v: expected %v got %v", in, want, got)
		}
	}
	if got := EffectiveComplexity(math.NaN()); got != DefaultComplexity {
		t.Errorf("NaN: expected %v got %v", DefaultComplexity, got)
	}
}
