package model

import "fmt"

// RoomStatus is the operational state of an operating room.
type RoomStatus string

const (
	RoomAvailable     RoomStatus = "available"
	RoomOccupied      RoomStatus = "occupied"
	RoomMaintenance   RoomStatus = "maintenance"
	RoomSterilization RoomStatus = "sterilization"
)

// Valid reports whether s is a known room status.
func (s RoomStatus) Valid() bool {
	switch s {
	case RoomAvailable, RoomOccupied, RoomMaintenance, RoomSterilization:
		return true
	}
	return false
}

// ParseRoomStatus converts a raw string into a RoomStatus.
func ParseRoomStatus(s string) (RoomStatus, error) {
	st := RoomStatus(s)
	if !st.Valid() {
		return "", fmt.Errorf("unknown room status %q", s)
	}
	return st, nil
}

// OperatingRoom describes a room and the equipment installed in it.
type OperatingRoom struct {
	ID        string     `json:"id" yaml:"id"`
	Name      string     `json:"name" yaml:"name"`
	Equipment []string   `json:"equipment,omitempty" yaml:"equipment,omitempty"`
	Status    RoomStatus `json:"status" yaml:"status"`
}

// RoomUtilization summarizes how much of the working day a room is booked.
type RoomUtilization struct {
	RoomID   string `json:"room_id"`
	RoomName string `json:"room_name"`
	// UtilizationRate is a percentage capped at 100.
	UtilizationRate float64 `json:"utilization_rate"`
	ScheduledHours  float64 `json:"scheduled_hours"`
	AvailableHours  float64 `json:"available_hours"`
	Surgeries       int     `json:"surgeries"`
}
