package model

import "time"

// TimeSlot is a half-open availability window.
type TimeSlot struct {
	Start time.Time `json:"start" yaml:"start"`
	End   time.Time `json:"end" yaml:"end"`
}

// Surgeon is immutable reference data.
type Surgeon struct {
	ID           string     `json:"id" yaml:"id"`
	Name         string     `json:"name" yaml:"name"`
	Specialty    string     `json:"specialty" yaml:"specialty"`
	Availability []TimeSlot `json:"availability,omitempty" yaml:"availability,omitempty"`
	// AverageDurations maps a procedure name to its historical mean in minutes.
	AverageDurations map[string]float64 `json:"average_durations" yaml:"average_durations"`
}

// AverageDuration returns the recorded mean for procedure, if any.
func (s Surgeon) AverageDuration(procedure string) (float64, bool) {
	if s.AverageDurations == nil {
		return 0, false
	}
	v, ok := s.AverageDurations[procedure]
	return v, ok
}

// Patient waits for a procedure performed by the referenced surgeon.
type Patient struct {
	ID                string   `json:"id" yaml:"id"`
	Name              string   `json:"name" yaml:"name"`
	Priority          Priority `json:"priority" yaml:"priority"`
	Procedure         string   `json:"procedure" yaml:"procedure"`
	EstimatedDuration float64  `json:"estimated_duration" yaml:"estimated_duration"`
	RequiredEquipment []string `json:"required_equipment,omitempty" yaml:"required_equipment,omitempty"`
	SurgeonID         string   `json:"surgeon_id" yaml:"surgeon_id"`
}
