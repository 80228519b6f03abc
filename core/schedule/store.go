// Package schedule owns the in-memory booking set and the reference data it
// points to. Bookings change only through status and time updates.
package schedule

import (
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/kilianp07/orsched/core/model"
)

// ErrNotFound is returned for unknown identifiers.
var ErrNotFound = errors.New("not found")

// Snapshot is a complete copy of the schedule data.
type Snapshot struct {
	Surgeons  []model.Surgeon       `json:"surgeons" yaml:"surgeons"`
	Rooms     []model.OperatingRoom `json:"rooms" yaml:"rooms"`
	Surgeries []model.Surgery       `json:"surgeries" yaml:"surgeries"`
	Patients  []model.Patient       `json:"patients,omitempty" yaml:"patients,omitempty"`
}

// Filter narrows a surgery listing. Empty fields match everything.
type Filter struct {
	Status    model.SurgeryStatus
	RoomID    string
	SurgeonID string
	Priority  model.Priority
}

func (f Filter) match(s model.Surgery) bool {
	if f.Status != "" && s.Status != f.Status {
		return false
	}
	if f.RoomID != "" && s.RoomID != f.RoomID {
		return false
	}
	if f.SurgeonID != "" && s.SurgeonID != f.SurgeonID {
		return false
	}
	if f.Priority != "" && s.Priority != f.Priority {
		return false
	}
	return true
}

// Store exposes the schedule to the service and the HTTP API.
type Store interface {
	Snapshot() Snapshot
	Surgeries(Filter) []model.Surgery
	Surgery(id string) (model.Surgery, error)
	Surgeon(id string) (model.Surgeon, error)
	Patient(id string) (model.Patient, error)
	UpdateStatus(id string, status model.SurgeryStatus, at time.Time) (model.Surgery, error)
	Reschedule(id string, start, end time.Time) (model.Surgery, error)
}

// MemoryStore keeps bookings in caller order, which the analyzer relies on.
type MemoryStore struct {
	mu        sync.RWMutex
	surgeons  []model.Surgeon
	rooms     []model.OperatingRoom
	surgeries []model.Surgery
	patients  []model.Patient
}

// NewMemoryStore copies snap into a new store.
func NewMemoryStore(snap Snapshot) *MemoryStore {
	return &MemoryStore{
		surgeons:  append([]model.Surgeon(nil), snap.Surgeons...),
		rooms:     append([]model.OperatingRoom(nil), snap.Rooms...),
		surgeries: append([]model.Surgery(nil), snap.Surgeries...),
		patients:  append([]model.Patient(nil), snap.Patients...),
	}
}

// Snapshot returns a copy of every collection.
func (s *MemoryStore) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return Snapshot{
		Surgeons:  append([]model.Surgeon{}, s.surgeons...),
		Rooms:     append([]model.OperatingRoom{}, s.rooms...),
		Surgeries: append([]model.Surgery{}, s.surgeries...),
		Patients:  append([]model.Patient{}, s.patients...),
	}
}

// Surgeries lists the bookings matching f in stored order.
func (s *MemoryStore) Surgeries(f Filter) []model.Surgery {
	s.mu.RLock()
	defer s.mu.RUnlock()
	res := make([]model.Surgery, 0, len(s.surgeries))
	for _, sg := range s.surgeries {
		if f.match(sg) {
			res = append(res, sg)
		}
	}
	return res
}

// Surgery returns the booking with the given id or ErrNotFound.
func (s *MemoryStore) Surgery(id string) (model.Surgery, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	i := s.indexOf(id)
	if i < 0 {
		return model.Surgery{}, fmt.Errorf("surgery %s: %w", id, ErrNotFound)
	}
	return s.surgeries[i], nil
}

// Surgeon returns the surgeon with the given id or ErrNotFound.
func (s *MemoryStore) Surgeon(id string) (model.Surgeon, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, sg := range s.surgeons {
		if sg.ID == id {
			return sg, nil
		}
	}
	return model.Surgeon{}, fmt.Errorf("surgeon %s: %w", id, ErrNotFound)
}

// Patient returns the patient with the given id or ErrNotFound.
func (s *MemoryStore) Patient(id string) (model.Patient, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, p := range s.patients {
		if p.ID == id {
			return p, nil
		}
	}
	return model.Patient{}, fmt.Errorf("patient %s: %w", id, ErrNotFound)
}

// UpdateStatus moves a booking to status. Starting a surgery stamps its
// actual start, completing it stamps its actual end.
func (s *MemoryStore) UpdateStatus(id string, status model.SurgeryStatus, at time.Time) (model.Surgery, error) {
	if !status.Valid() {
		return model.Surgery{}, fmt.Errorf("unknown surgery status %q", status)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.indexOf(id)
	if i < 0 {
		return model.Surgery{}, fmt.Errorf("surgery %s: %w", id, ErrNotFound)
	}
	sg := s.surgeries[i]
	sg.Status = status
	ts := at
	switch status {
	case model.StatusInProgress:
		if sg.ActualStart == nil {
			sg.ActualStart = &ts
		}
	case model.StatusCompleted:
		if sg.ActualStart == nil {
			start := sg.ScheduledStart
			sg.ActualStart = &start
		}
		sg.ActualEnd = &ts
	}
	s.surgeries[i] = sg
	return sg, nil
}

// Reschedule moves a booking to a new window. The window must be non-empty.
func (s *MemoryStore) Reschedule(id string, start, end time.Time) (model.Surgery, error) {
	if !end.After(start) {
		return model.Surgery{}, fmt.Errorf("surgery %s: %w", id, model.ErrInvalidWindow)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.indexOf(id)
	if i < 0 {
		return model.Surgery{}, fmt.Errorf("surgery %s: %w", id, ErrNotFound)
	}
	s.surgeries[i].ScheduledStart = start
	s.surgeries[i].ScheduledEnd = end
	return s.surgeries[i], nil
}

func (s *MemoryStore) indexOf(id string) int {
	for i, sg := range s.surgeries {
		if sg.ID == id {
			return i
		}
	}
	return -1
}

// Timeline returns a copy of surgeries ordered by scheduled start. Ties keep
// their relative order.
func Timeline(surgeries []model.Surgery) []model.Surgery {
	out := append([]model.Surgery{}, surgeries...)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].ScheduledStart.Before(out[j].ScheduledStart)
	})
	return out
}
