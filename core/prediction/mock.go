package prediction

import "github.com/kilianp07/orsched/core/model"

// MockPredictor returns fixed durations per procedure.
type MockPredictor struct {
	Durations map[string]int
	Default   int
}

// PredictDuration returns the configured value for the procedure or Default.
func (m MockPredictor) PredictDuration(procedure string, _ model.Surgeon, _ float64) int {
	if v, ok := m.Durations[procedure]; ok {
		return v
	}
	return m.Default
}
