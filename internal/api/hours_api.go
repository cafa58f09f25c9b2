package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"openhours/internal/export"
	"openhours/internal/metrics"
	"openhours/internal/model"
)

// WeekRequest is the request body for PUT .../hours. Days are indexed
// 0 = Sunday .. 6 = Saturday; an empty day means closed all day.
type WeekRequest struct {
	Days [7][]model.TimeWindow `json:"days"`
}

// WeekResponse is the response for GET .../hours.
type WeekResponse struct {
	Days [7][]model.TimeWindow `json:"days"`
}

func weekResponse(week model.WeeklySchedule) WeekResponse {
	var resp WeekResponse
	for d := range week {
		windows := week[d]
		if windows == nil {
			windows = []model.TimeWindow{}
		}
		resp.Days[d] = windows
	}
	return resp
}

// handleStatus resolves the live open/closed status.
// GET /api/v1/locations/{id}/status?at=RFC3339&preview=true
func (s *HTTPServer) handleStatus(w http.ResponseWriter, r *http.Request) {
	metrics.IncHTTP("status")
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	id, ok := locationID(r)
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid location id")
		return
	}

	now := time.Now()
	if atStr := r.URL.Query().Get("at"); atStr != "" {
		parsed, err := time.Parse(time.RFC3339, atStr)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid at parameter; expected RFC3339")
			return
		}
		now = parsed
	}

	var (
		status model.Status
		err    error
	)
	if r.URL.Query().Get("preview") == "true" {
		status, err = s.svc.PreviewStatus(r.Context(), id, now)
	} else {
		status, err = s.svc.CurrentStatus(r.Context(), id, now)
	}
	if err != nil {
		s.logger.Error().Err(err).Int64("location_id", id).Msg("status resolution failed")
		writeError(w, http.StatusInternalServerError, "failed to resolve status")
		return
	}

	writeJSON(w, http.StatusOK, status)
}

// handleHours returns or replaces the weekly pattern.
// GET /api/v1/locations/{id}/hours
// PUT /api/v1/locations/{id}/hours
func (s *HTTPServer) handleHours(w http.ResponseWriter, r *http.Request) {
	metrics.IncHTTP("hours")

	id, ok := locationID(r)
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid location id")
		return
	}

	switch r.Method {
	case http.MethodGet:
		week, err := s.svc.EffectiveWeek(r.Context(), id)
		if err != nil {
			s.logger.Error().Err(err).Int64("location_id", id).Msg("load weekly schedule failed")
			writeError(w, http.StatusInternalServerError, "failed to load weekly schedule")
			return
		}
		writeJSON(w, http.StatusOK, weekResponse(week))

	case http.MethodPut:
		var req WeekRequest
		decoder := json.NewDecoder(r.Body)
		decoder.DisallowUnknownFields()
		if err := decoder.Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid JSON body")
			return
		}

		saved, err := s.svc.ReplaceWeek(r.Context(), id, model.WeeklySchedule(req.Days))
		if err != nil {
			if isValidationError(err) {
				writeError(w, http.StatusBadRequest, err.Error())
				return
			}
			s.logger.Error().Err(err).Int64("location_id", id).Msg("replace weekly schedule failed")
			writeError(w, http.StatusInternalServerError, "failed to replace weekly schedule")
			return
		}
		writeJSON(w, http.StatusOK, weekResponse(saved))

	default:
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
	}
}

// handleExport streams the hours workbook.
// GET /api/v1/locations/{id}/hours/export
func (s *HTTPServer) handleExport(w http.ResponseWriter, r *http.Request) {
	metrics.IncHTTP("export")
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	id, ok := locationID(r)
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid location id")
		return
	}

	week, err := s.svc.EffectiveWeek(r.Context(), id)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to load weekly schedule")
		return
	}
	overrides, err := s.svc.Overrides(r.Context(), id)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to load overrides")
		return
	}

	report, err := export.NewHoursReport(week, overrides)
	if err != nil {
		s.logger.Error().Err(err).Int64("location_id", id).Msg("report build failed")
		writeError(w, http.StatusInternalServerError, "failed to build report")
		return
	}
	defer report.Close()

	var buf bytes.Buffer
	if _, err := report.WriteTo(&buf); err != nil {
		writeError(w, http.StatusInternalServerError, "failed to render report")
		return
	}

	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=hours_location_%d.xlsx", id))
	_, _ = w.Write(buf.Bytes())
}
