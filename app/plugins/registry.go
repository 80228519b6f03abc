// Package plugins holds the registries of pluggable service components.
package plugins

import (
	"github.com/kilianp07/orsched/core/factory"
	"github.com/kilianp07/orsched/core/prediction"
)

// Predictors builds duration models by type name.
var Predictors = factory.NewRegistry[prediction.DurationPredictor]()

// RegisterPredictor adds a duration model factory.
func RegisterPredictor(name string, f factory.Factory[prediction.DurationPredictor]) error {
	return Predictors.Register(name, f)
}

// NewPredictor instantiates the duration model described by cfg.
func NewPredictor(cfg factory.ModuleConfig) (prediction.DurationPredictor, error) {
	return Predictors.Create(cfg)
}
