// Package schedule exposes the booking set, analysis results and alerts
// over HTTP.
package schedule

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/kilianp07/orsched/core/alerts"
	"github.com/kilianp07/orsched/core/analyzer"
	"github.com/kilianp07/orsched/core/events"
	"github.com/kilianp07/orsched/core/logger"
	coremetrics "github.com/kilianp07/orsched/core/metrics"
	"github.com/kilianp07/orsched/core/model"
	"github.com/kilianp07/orsched/core/prediction"
	coreschedule "github.com/kilianp07/orsched/core/schedule"
	"github.com/kilianp07/orsched/pkg/export"
)

// Options wires the handler to the service.
type Options struct {
	Store    coreschedule.Store
	Analyzer *analyzer.Analyzer
	Alerts   *alerts.Book
	// Predictions records served estimates; nil disables recording.
	Predictions coremetrics.PredictionRecorder
	// OnChange is called after every successful booking update.
	OnChange func(events.ScheduleChanged)
	Logger   logger.Logger
	Now      func() time.Time
}

// Handler serves the schedule API.
type Handler struct {
	opts Options
	mux  *http.ServeMux
}

// NewHandler registers every route on a fresh ServeMux.
func NewHandler(opts Options) *Handler {
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.Analyzer == nil {
		opts.Analyzer = analyzer.New(analyzer.Config{})
	}
	h := &Handler{opts: opts, mux: http.NewServeMux()}
	h.mux.HandleFunc("GET /api/schedule", h.timeline)
	h.mux.HandleFunc("POST /api/surgeries/{id}/status", h.updateStatus)
	h.mux.HandleFunc("POST /api/surgeries/{id}/reschedule", h.reschedule)
	h.mux.HandleFunc("GET /api/recommendations", h.recommendations)
	h.mux.HandleFunc("GET /api/utilization", h.utilization)
	h.mux.HandleFunc("GET /api/utilization/chart", h.utilizationChart)
	h.mux.HandleFunc("GET /api/predict", h.predict)
	if opts.Alerts != nil {
		h.mux.HandleFunc("GET /api/alerts", h.listAlerts)
		h.mux.HandleFunc("POST /api/alerts/{id}/ack", h.ackAlert)
		h.mux.HandleFunc("DELETE /api/alerts/{id}", h.dismissAlert)
	}
	return h
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.mux.ServeHTTP(w, r)
}

func (h *Handler) timeline(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	f := coreschedule.Filter{RoomID: q.Get("room_id"), SurgeonID: q.Get("surgeon_id")}
	if s := q.Get("status"); s != "" {
		st, err := model.ParseSurgeryStatus(s)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		f.Status = st
	}
	if s := q.Get("priority"); s != "" {
		p, err := model.ParsePriority(s)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		f.Priority = p
	}
	h.writeJSON(w, http.StatusOK, coreschedule.Timeline(h.opts.Store.Surgeries(f)))
}

type statusRequest struct {
	Status string     `json:"status"`
	At     *time.Time `json:"at,omitempty"`
}

func (h *Handler) updateStatus(w http.ResponseWriter, r *http.Request) {
	var req statusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid body: "+err.Error(), http.StatusBadRequest)
		return
	}
	st, err := model.ParseSurgeryStatus(req.Status)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	at := h.opts.Now()
	if req.At != nil {
		at = *req.At
	}
	id := r.PathValue("id")
	sg, err := h.opts.Store.UpdateStatus(id, st, at)
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.changed(id, "status:"+string(st))
	h.writeJSON(w, http.StatusOK, sg)
}

type rescheduleRequest struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

func (h *Handler) reschedule(w http.ResponseWriter, r *http.Request) {
	var req rescheduleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid body: "+err.Error(), http.StatusBadRequest)
		return
	}
	id := r.PathValue("id")
	sg, err := h.opts.Store.Reschedule(id, req.Start, req.End)
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.changed(id, "reschedule")
	h.writeJSON(w, http.StatusOK, sg)
}

func (h *Handler) recommendations(w http.ResponseWriter, r *http.Request) {
	a := h.opts.Analyzer
	if m := r.URL.Query().Get("mode"); m != "" {
		mode, err := analyzer.ParseConflictMode(m)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		a = a.WithConflictMode(mode)
	}
	snap := h.opts.Store.Snapshot()
	h.writeJSON(w, http.StatusOK, a.GenerateRecommendations(snap.Surgeries, snap.Rooms, snap.Surgeons))
}

func (h *Handler) utilization(w http.ResponseWriter, _ *http.Request) {
	snap := h.opts.Store.Snapshot()
	h.writeJSON(w, http.StatusOK, h.opts.Analyzer.Summarize(snap.Surgeries, snap.Rooms))
}

func (h *Handler) utilizationChart(w http.ResponseWriter, _ *http.Request) {
	snap := h.opts.Store.Snapshot()
	var buf bytes.Buffer
	if err := export.WriteUtilizationChart(&buf, h.opts.Analyzer.RoomUtilizations(snap.Surgeries, snap.Rooms)); err != nil {
		h.writeError(w, err)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write(buf.Bytes())
}

type predictResponse struct {
	SurgeonID  string  `json:"surgeon_id"`
	Procedure  string  `json:"procedure"`
	Complexity float64 `json:"complexity"`
	Minutes    int     `json:"minutes"`
}

// predict accepts either surgeon_id+procedure or patient_id, which supplies
// both from the patient record.
func (h *Handler) predict(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	surgeonID, procedure := q.Get("surgeon_id"), q.Get("procedure")
	if pid := q.Get("patient_id"); pid != "" {
		p, err := h.opts.Store.Patient(pid)
		if err != nil {
			h.writeError(w, err)
			return
		}
		if surgeonID == "" {
			surgeonID = p.SurgeonID
		}
		if procedure == "" {
			procedure = p.Procedure
		}
	}
	if surgeonID == "" || procedure == "" {
		http.Error(w, "surgeon_id and procedure are required", http.StatusBadRequest)
		return
	}
	complexity := 1.0
	if c := q.Get("complexity"); c != "" {
		v, err := strconv.ParseFloat(c, 64)
		if err != nil {
			http.Error(w, fmt.Sprintf("invalid complexity %q", c), http.StatusBadRequest)
			return
		}
		if err := prediction.ValidateComplexity(v); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		complexity = v
	}
	surgeon, err := h.opts.Store.Surgeon(surgeonID)
	if err != nil {
		h.writeError(w, err)
		return
	}
	minutes := h.opts.Analyzer.PredictDuration(procedure, surgeon, complexity)
	if h.opts.Predictions != nil {
		ev := coremetrics.PredictionEvent{SurgeonID: surgeonID, Procedure: procedure, Complexity: complexity, Minutes: minutes, Time: h.opts.Now()}
		if err := h.opts.Predictions.RecordPrediction(ev); err != nil {
			h.logf("record prediction: %v", err)
		}
	}
	h.writeJSON(w, http.StatusOK, predictResponse{SurgeonID: surgeonID, Procedure: procedure, Complexity: complexity, Minutes: minutes})
}

type alertsResponse struct {
	Alerts []model.Alert `json:"alerts"`
	Counts alerts.Counts `json:"counts"`
}

func (h *Handler) listAlerts(w http.ResponseWriter, r *http.Request) {
	var sev model.Severity
	if s := r.URL.Query().Get("severity"); s != "" {
		v, err := model.ParseSeverity(s)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		sev = v
	}
	h.writeJSON(w, http.StatusOK, alertsResponse{Alerts: h.opts.Alerts.List(sev), Counts: h.opts.Alerts.Counts()})
}

func (h *Handler) ackAlert(w http.ResponseWriter, r *http.Request) {
	a, err := h.opts.Alerts.Acknowledge(r.PathValue("id"))
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, a)
}

func (h *Handler) dismissAlert(w http.ResponseWriter, r *http.Request) {
	if err := h.opts.Alerts.Dismiss(r.PathValue("id")); err != nil {
		h.writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) changed(id, reason string) {
	if h.opts.OnChange != nil {
		h.opts.OnChange(events.ScheduleChanged{SurgeryID: id, Reason: reason, At: h.opts.Now()})
	}
}

func (h *Handler) writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, coreschedule.ErrNotFound), errors.Is(err, alerts.ErrNotFound):
		http.Error(w, err.Error(), http.StatusNotFound)
	case errors.Is(err, model.ErrInvalidWindow):
		http.Error(w, err.Error(), http.StatusBadRequest)
	default:
		h.logf("request failed: %v", err)
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func (h *Handler) writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		h.logf("encode response: %v", err)
	}
}

func (h *Handler) logf(format string, args ...any) {
	if h.opts.Logger != nil {
		h.opts.Logger.Errorf(format, args...)
	}
}
