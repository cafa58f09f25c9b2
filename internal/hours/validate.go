// Package hours holds the pure scheduling logic: window and override
// validation plus the open/closed resolver. Nothing in this package
// performs I/O or reads the system clock.
package hours

import (
	"errors"
	"strings"
	"time"

	"openhours/internal/model"
)

var (
	ErrInvalidWindow  = errors.New("zero-length window")
	ErrInvalidRange   = errors.New("open time must be before close time")
	ErrPastDate       = errors.New("date is in the past")
	ErrOpenTimeInPast = errors.New("open time is already in the past")
	ErrMissingReason  = errors.New("reason is required")
)

// ValidateWindow checks a weekly schedule window. The only hard
// rejection is open == close, a zero-length window that does not cross
// midnight. Midnight-crossing windows are legal.
func ValidateWindow(w model.TimeWindow) error {
	if w.Open == w.Close {
		return ErrInvalidWindow
	}
	return nil
}

// ValidateOverride checks an override submission against the current
// instant. Overrides are stricter than weekly windows: a single window
// only, no midnight-crossing, and never dated in the past.
func ValidateOverride(p model.OverridePayload, now time.Time) error {
	today := model.DateOf(now)
	if p.Date.Before(today) {
		return ErrPastDate
	}
	if p.Date == today && !p.IsClosed && p.Open.Before(model.TimeOfDayOf(now)) {
		return ErrOpenTimeInPast
	}
	if !p.IsClosed && p.Open >= p.Close {
		return ErrInvalidRange
	}
	if strings.TrimSpace(p.Reason) == "" {
		return ErrMissingReason
	}
	return nil
}
