package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"openhours/internal/db"
	"openhours/internal/hours"
	"openhours/internal/metrics"
	"openhours/internal/model"
)

// OverrideResponse wraps a created override plus the refreshed list.
type OverrideResponse struct {
	Override  *model.Override  `json:"override,omitempty"`
	Overrides []model.Override `json:"overrides"`
}

// handleOverrides lists or creates overrides for a location.
// GET  /api/v1/locations/{id}/overrides
// POST /api/v1/locations/{id}/overrides
func (s *HTTPServer) handleOverrides(w http.ResponseWriter, r *http.Request) {
	metrics.IncHTTP("overrides")

	id, ok := locationID(r)
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid location id")
		return
	}

	switch r.Method {
	case http.MethodGet:
		overrides, err := s.svc.Overrides(r.Context(), id)
		if err != nil {
			writeError(w, http.StatusInternalServerError, "failed to load overrides")
			return
		}
		writeJSON(w, http.StatusOK, OverrideResponse{Overrides: emptyIfNil(overrides)})

	case http.MethodPost:
		var payload model.OverridePayload
		decoder := json.NewDecoder(r.Body)
		decoder.DisallowUnknownFields()
		if err := decoder.Decode(&payload); err != nil {
			writeError(w, http.StatusBadRequest, "invalid JSON body")
			return
		}

		created, refreshed, err := s.svc.SubmitOverride(r.Context(), id, payload, time.Now())
		if err != nil {
			if isValidationError(err) {
				writeError(w, http.StatusBadRequest, err.Error())
				return
			}
			s.logger.Error().Err(err).Int64("location_id", id).Msg("override creation failed")
			writeError(w, http.StatusInternalServerError, "failed to create override")
			return
		}
		writeJSON(w, http.StatusCreated, OverrideResponse{Override: created, Overrides: emptyIfNil(refreshed)})

	default:
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
	}
}

// handleOverrideByID deletes a single override.
// DELETE /api/v1/locations/{id}/overrides/{overrideID}
func (s *HTTPServer) handleOverrideByID(w http.ResponseWriter, r *http.Request) {
	metrics.IncHTTP("override_delete")
	if r.Method != http.MethodDelete {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	id, ok := locationID(r)
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid location id")
		return
	}
	overrideID, err := strconv.ParseInt(r.PathValue("overrideID"), 10, 64)
	if err != nil || overrideID <= 0 {
		writeError(w, http.StatusBadRequest, "invalid override id")
		return
	}

	refreshed, err := s.svc.RemoveOverride(r.Context(), id, overrideID)
	if err != nil {
		if errors.Is(err, db.ErrOverrideNotFound) {
			writeError(w, http.StatusNotFound, "override not found")
			return
		}
		s.logger.Error().Err(err).Int64("override_id", overrideID).Msg("override deletion failed")
		writeError(w, http.StatusInternalServerError, "failed to delete override")
		return
	}

	writeJSON(w, http.StatusOK, OverrideResponse{Overrides: emptyIfNil(refreshed)})
}

func emptyIfNil(overrides []model.Override) []model.Override {
	if overrides == nil {
		return []model.Override{}
	}
	return overrides
}

func isValidationError(err error) bool {
	return errors.Is(err, hours.ErrInvalidWindow) ||
		errors.Is(err, hours.ErrInvalidRange) ||
		errors.Is(err, hours.ErrPastDate) ||
		errors.Is(err, hours.ErrOpenTimeInPast) ||
		errors.Is(err, hours.ErrMissingReason)
}
