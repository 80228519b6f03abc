// Package alerts raises operator alerts from recommendations and tracks
// their acknowledgement.
package alerts

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/kilianp07/orsched/core/model"
)

// ErrNotFound is returned for unknown alert ids.
var ErrNotFound = errors.New("alert not found")

// Counts summarizes the book for badges.
type Counts struct {
	Critical       int `json:"critical"`
	Warning        int `json:"warning"`
	Info           int `json:"info"`
	Unacknowledged int `json:"unacknowledged"`
}

// Book holds the alerts derived from the latest analysis.
type Book struct {
	mu        sync.RWMutex
	alerts    []model.Alert
	dismissed map[string]struct{}
	newID     func() string
}

// NewBook returns an empty book.
func NewBook() *Book {
	return &Book{dismissed: map[string]struct{}{}, newID: uuid.NewString}
}

func key(source, description string) string { return source + "\x00" + description }

// Sync aligns the book with recs. Alerts whose recommendation is unchanged
// keep their id and acknowledgement, resolved ones are dropped and dismissed
// ones stay hidden while the recommendation persists. It returns the alerts
// raised by this call.
func (b *Book) Sync(recs []model.Recommendation, now time.Time) []model.Alert {
	b.mu.Lock()
	defer b.mu.Unlock()

	existing := make(map[string]model.Alert, len(b.alerts))
	for _, a := range b.alerts {
		existing[key(a.Source, a.Description)] = a
	}
	present := make(map[string]struct{}, len(recs))
	next := make([]model.Alert, 0, len(recs))
	var raised []model.Alert
	for _, r := range recs {
		k := key(r.ID, r.Message)
		if _, dup := present[k]; dup {
			continue
		}
		present[k] = struct{}{}
		if _, ok := b.dismissed[k]; ok {
			continue
		}
		if a, ok := existing[k]; ok {
			fresh := FromRecommendation(r, a.ID, a.CreatedAt)
			fresh.Acknowledged = a.Acknowledged
			next = append(next, fresh)
			continue
		}
		a := FromRecommendation(r, b.newID(), now)
		next = append(next, a)
		raised = append(raised, a)
	}
	for k := range b.dismissed {
		if _, ok := present[k]; !ok {
			delete(b.dismissed, k)
		}
	}
	b.alerts = next
	return raised
}

// Acknowledge marks the alert as seen.
func (b *Book) Acknowledge(id string) (model.Alert, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	for i := range b.alerts {
		if b.alerts[i].ID == id {
			b.alerts[i].Acknowledged = true
			return b.alerts[i], nil
		}
	}
	return model.Alert{}, fmt.Errorf("%s: %w", id, ErrNotFound)
}

// Dismiss removes the alert until its recommendation goes away.
func (b *Book) Dismiss(id string) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	for i, a := range b.alerts {
		if a.ID == id {
			b.dismissed[key(a.Source, a.Description)] = struct{}{}
			b.alerts = append(b.alerts[:i], b.alerts[i+1:]...)
			return nil
		}
	}
	return fmt.Errorf("%s: %w", id, ErrNotFound)
}

// List returns the alerts of the given severity, or all of them when
// severity is empty.
func (b *Book) List(severity model.Severity) []model.Alert {
	b.mu.RLock()
	defer b.mu.RUnlock()
	out := make([]model.Alert, 0, len(b.alerts))
	for _, a := range b.alerts {
		if severity == "" || a.Severity == severity {
			out = append(out, a)
		}
	}
	return out
}

// Counts tallies alerts per severity.
func (b *Book) Counts() Counts {
	b.mu.RLock()
	defer b.mu.RUnlock()
	var c Counts
	for _, a := range b.alerts {
		switch a.Severity {
		case model.SeverityCritical:
			c.Critical++
		case model.SeverityWarning:
			c.Warning++
		case model.SeverityInfo:
			c.Info++
		}
		if !a.Acknowledged {
			c.Unacknowledged++
		}
	}
	return c
}

// FromRecommendation maps a recommendation onto an alert.
func FromRecommendation(r model.Recommendation, id string, now time.Time) model.Alert {
	a := model.Alert{
		ID:          id,
		Severity:    severityFor(r.Impact),
		Description: r.Message,
		Action:      r.SuggestedAction,
		Source:      r.ID,
		CreatedAt:   now,
	}
	switch r.Type {
	case model.RecConflictResolution:
		a.Category = model.CategoryScheduling
		a.Title = "Scheduling Conflict"
	case model.RecResourceAllocation:
		a.Category = model.CategoryEquipment
		a.Title = "Room Underutilization"
	case model.RecScheduleOptimization:
		a.Category = model.CategoryScheduling
		a.Title = "Emergency Load"
	default:
		a.Category = model.CategorySystem
		a.Title = "Schedule Advisory"
	}
	return a
}

func severityFor(i model.Impact) model.Severity {
	switch i {
	case model.ImpactHigh:
		return model.SeverityCritical
	case model.ImpactMedium:
		return model.SeverityWarning
	default:
		return model.SeverityInfo
	}
}
