package model

import (
	"errors"
	"fmt"
	"time"
)

// SurgeryStatus is the lifecycle state of a booking.
type SurgeryStatus string

const (
	StatusScheduled  SurgeryStatus = "scheduled"
	StatusInProgress SurgeryStatus = "in-progress"
	StatusCompleted  SurgeryStatus = "completed"
	StatusCancelled  SurgeryStatus = "cancelled"
)

// Valid reports whether s is a known status.
func (s SurgeryStatus) Valid() bool {
	switch s {
	case StatusScheduled, StatusInProgress, StatusCompleted, StatusCancelled:
		return true
	}
	return false
}

// ParseSurgeryStatus converts a raw string into a SurgeryStatus.
func ParseSurgeryStatus(s string) (SurgeryStatus, error) {
	st := SurgeryStatus(s)
	if !st.Valid() {
		return "", fmt.Errorf("unknown surgery status %q", s)
	}
	return st, nil
}

// Priority ranks how urgently a surgery must happen.
type Priority string

const (
	PriorityEmergency Priority = "emergency"
	PriorityUrgent    Priority = "urgent"
	PriorityRoutine   Priority = "routine"
)

// Valid reports whether p is a known priority.
func (p Priority) Valid() bool {
	switch p {
	case PriorityEmergency, PriorityUrgent, PriorityRoutine:
		return true
	}
	return false
}

// ParsePriority converts a raw string into a Priority.
func ParsePriority(s string) (Priority, error) {
	p := Priority(s)
	if !p.Valid() {
		return "", fmt.Errorf("unknown priority %q", s)
	}
	return p, nil
}

// ErrInvalidWindow is returned when a booking does not end after it starts.
var ErrInvalidWindow = errors.New("scheduled end must be after scheduled start")

// Surgery is a booking of an operating room by a surgeon for a patient.
// Patient, surgeon and room are referenced by identifier only.
type Surgery struct {
	ID             string        `json:"id" yaml:"id"`
	PatientID      string        `json:"patient_id" yaml:"patient_id"`
	SurgeonID      string        `json:"surgeon_id" yaml:"surgeon_id"`
	RoomID         string        `json:"room_id" yaml:"room_id"`
	Procedure      string        `json:"procedure" yaml:"procedure"`
	ScheduledStart time.Time     `json:"scheduled_start" yaml:"scheduled_start"`
	ScheduledEnd   time.Time     `json:"scheduled_end" yaml:"scheduled_end"`
	ActualStart    *time.Time    `json:"actual_start,omitempty" yaml:"actual_start,omitempty"`
	ActualEnd      *time.Time    `json:"actual_end,omitempty" yaml:"actual_end,omitempty"`
	Status         SurgeryStatus `json:"status" yaml:"status"`
	Priority       Priority      `json:"priority" yaml:"priority"`
}

// ScheduledMinutes returns the booked length in minutes. A window whose end
// precedes its start yields a negative value.
func (s Surgery) ScheduledMinutes() float64 {
	return s.ScheduledEnd.Sub(s.ScheduledStart).Minutes()
}

// Validate checks the booking window and enumerations. The analyzer never
// calls it; callers that accept external input do.
func (s Surgery) Validate() error {
	if s.ID == "" {
		return fmt.Errorf("surgery id is required")
	}
	if !s.ScheduledEnd.After(s.ScheduledStart) {
		return fmt.Errorf("surgery %s: %w", s.ID, ErrInvalidWindow)
	}
	if s.Status != "" && !s.Status.Valid() {
		return fmt.Errorf("surgery %s: unknown status %q", s.ID, s.Status)
	}
	if s.Priority != "" && !s.Priority.Valid() {
		return fmt.Errorf("surgery %s: unknown priority %q", s.ID, s.Priority)
	}
	return nil
}
