package plugins

import (
	"github.com/kilianp07/orsched/core/factory"
	"github.com/kilianp07/orsched/core/prediction"
)

func init() {
	_ = RegisterPredictor("historical", func(conf map[string]any) (prediction.DurationPredictor, error) {
		var c struct {
			BaseMinutes      float64 `json:"base_minutes"`
			ExperienceFactor float64 `json:"experience_factor"`
		}
		if err := factory.Decode(conf, &c); err != nil {
			return nil, err
		}
		return prediction.HistoricalPredictor{BaseMinutes: c.BaseMinutes, ExperienceFactor: c.ExperienceFactor}, nil
	})
	_ = RegisterPredictor("mock", func(conf map[string]any) (prediction.DurationPredictor, error) {
		var c struct {
			Durations map[string]int `json:"durations"`
			Default   int            `json:"default"`
		}
		if err := factory.Decode(conf, &c); err != nil {
			return nil, err
		}
		return prediction.MockPredictor{Durations: c.Durations, Default: c.Default}, nil
	})
}
