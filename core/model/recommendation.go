package model

// RecommendationType classifies an advisory.
type RecommendationType string

const (
	RecScheduleOptimization RecommendationType = "schedule_optimization"
	RecConflictResolution   RecommendationType = "conflict_resolution"
	RecResourceAllocation   RecommendationType = "resource_allocation"
)

// Impact grades how much acting on a recommendation matters.
type Impact string

const (
	ImpactHigh   Impact = "high"
	ImpactMedium Impact = "medium"
	ImpactLow    Impact = "low"
)

// Recommendation is an advisory derived from the current booking set. It is
// recomputed on every analysis and never stored.
type Recommendation struct {
	ID              string             `json:"id"`
	Type            RecommendationType `json:"type"`
	Message         string             `json:"message"`
	Confidence      float64            `json:"confidence"`
	SuggestedAction string             `json:"suggested_action"`
	Impact          Impact             `json:"impact"`
}
