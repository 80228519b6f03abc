package analyzer

import "fmt"

// ConflictMode selects how a surgeon's bookings are ordered before the
// adjacent-pair overlap check.
type ConflictMode string

const (
	// ConflictInputOrder keeps the caller's ordering.
	ConflictInputOrder ConflictMode = "input_order"
	// ConflictChronological sorts each surgeon's bookings by scheduled start.
	ConflictChronological ConflictMode = "chronological"
)

const (
	DefaultWorkdayMinutes            = 8 * 60
	DefaultUnderutilizationThreshold = 0.6
)

// Config tunes the analyzer. Zero values fall back to the defaults.
type Config struct {
	WorkdayMinutes            float64      `json:"workday_minutes"`
	UnderutilizationThreshold float64      `json:"underutilization_threshold"`
	FallbackMinutes           float64      `json:"fallback_minutes"`
	ExperienceFactor          float64      `json:"experience_factor"`
	ConflictMode              ConflictMode `json:"conflict_mode"`
}

// SetDefaults fills unset fields.
func (c *Config) SetDefaults() {
	if c.WorkdayMinutes <= 0 {
		c.WorkdayMinutes = DefaultWorkdayMinutes
	}
	if c.UnderutilizationThreshold <= 0 {
		c.UnderutilizationThreshold = DefaultUnderutilizationThreshold
	}
	if c.ConflictMode == "" {
		c.ConflictMode = ConflictInputOrder
	}
}

// Validate checks value ranges.
func (c Config) Validate() error {
	if c.UnderutilizationThreshold > 1 {
		return fmt.Errorf("underutilization_threshold must be in (0,1], got %v", c.UnderutilizationThreshold)
	}
	switch c.ConflictMode {
	case "", ConflictInputOrder, ConflictChronological:
	default:
		return fmt.Errorf("unknown conflict_mode %q", c.ConflictMode)
	}
	if c.FallbackMinutes < 0 {
		return fmt.Errorf("fallback_minutes must not be negative")
	}
	if c.ExperienceFactor < 0 {
		return fmt.Errorf("experience_factor must not be negative")
	}
	return nil
}

// ParseConflictMode converts a raw string into a ConflictMode. The empty
// string maps to ConflictInputOrder.
func ParseConflictMode(s string) (ConflictMode, error) {
	switch m := ConflictMode(s); m {
	case "":
		return ConflictInputOrder, nil
	case ConflictInputOrder, ConflictChronological:
		return m, nil
	}
	return "", fmt.Errorf("unknown conflict_mode %q", s)
}
