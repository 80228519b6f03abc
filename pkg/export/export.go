// Package export writes schedule timelines and recommendations as JSON or
// CSV for reporting tools.
package export

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/kilianp07/orsched/core/model"
)

// Format selects the output encoding.
type Format string

const (
	FormatJSON Format = "json"
	FormatCSV  Format = "csv"
)

// ParseFormat validates a format name.
func ParseFormat(s string) (Format, error) {
	switch f := Format(s); f {
	case FormatJSON, FormatCSV:
		return f, nil
	}
	return "", fmt.Errorf("unknown export format %q", s)
}

// WriteTimelineJSON writes the surgeries to w in JSON format.
func WriteTimelineJSON(w io.Writer, surgeries []model.Surgery) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(surgeries)
}

// WriteTimelineCSV writes one row per surgery. Actual times are left empty
// until recorded.
func WriteTimelineCSV(w io.Writer, surgeries []model.Surgery) error {
	cw := csv.NewWriter(w)
	header := []string{"id", "procedure", "surgeon_id", "room_id", "patient_id", "scheduled_start", "scheduled_end", "duration_min", "status", "priority", "actual_start", "actual_end"}
	if err := cw.Write(header); err != nil {
		return err
	}
	for _, s := range surgeries {
		rec := []string{
			s.ID,
			s.Procedure,
			s.SurgeonID,
			s.RoomID,
			s.PatientID,
			s.ScheduledStart.Format(time.RFC3339),
			s.ScheduledEnd.Format(time.RFC3339),
			strconv.FormatFloat(s.ScheduledMinutes(), 'f', -1, 64),
			string(s.Status),
			string(s.Priority),
			formatOptional(s.ActualStart),
			formatOptional(s.ActualEnd),
		}
		if err := cw.Write(rec); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteRecommendationsJSON writes the recommendations to w in JSON format.
func WriteRecommendationsJSON(w io.Writer, recs []model.Recommendation) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(recs)
}

// WriteRecommendationsCSV writes one row per recommendation.
func WriteRecommendationsCSV(w io.Writer, recs []model.Recommendation) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"id", "type", "impact", "confidence", "message", "suggested_action"}); err != nil {
		return err
	}
	for _, r := range recs {
		rec := []string{
			r.ID,
			string(r.Type),
			string(r.Impact),
			strconv.FormatFloat(r.Confidence, 'f', -1, 64),
			r.Message,
			r.SuggestedAction,
		}
		if err := cw.Write(rec); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func formatOptional(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format(time.RFC3339)
}
