package model

import (
	"fmt"
	"time"
)

// Severity orders alerts for display and routing.
type Severity string

const (
	SeverityCritical Severity = "critical"
	SeverityWarning  Severity = "warning"
	SeverityInfo     Severity = "info"
)

// ParseSeverity converts a raw string into a Severity.
func ParseSeverity(s string) (Severity, error) {
	switch Severity(s) {
	case SeverityCritical, SeverityWarning, SeverityInfo:
		return Severity(s), nil
	}
	return "", fmt.Errorf("unknown severity %q", s)
}

// AlertCategory groups alerts by the part of the theatre they concern.
type AlertCategory string

const (
	CategoryScheduling AlertCategory = "scheduling"
	CategoryEquipment  AlertCategory = "equipment"
	CategoryStaff      AlertCategory = "staff"
	CategorySystem     AlertCategory = "system"
)

// Alert is an operator-facing notice raised from a recommendation.
type Alert struct {
	ID           string        `json:"id"`
	Severity     Severity      `json:"severity"`
	Category     AlertCategory `json:"category"`
	Title        string        `json:"title"`
	Description  string        `json:"description"`
	Action       string        `json:"action,omitempty"`
	Source       string        `json:"source"`
	CreatedAt    time.Time     `json:"created_at"`
	Acknowledged bool          `json:"acknowledged"`
}
