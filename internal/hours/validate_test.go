package hours

import (
	"errors"
	"testing"
	"time"

	"openhours/internal/model"
)

func TestValidateWindow(t *testing.T) {
	tests := []struct {
		name    string
		window  model.TimeWindow
		wantErr error
	}{
		{
			name:   "normal window",
			window: model.TimeWindow{Open: model.NewTimeOfDay(9, 0), Close: model.NewTimeOfDay(17, 0)},
		},
		{
			name:   "midnight-crossing is legal",
			window: model.TimeWindow{Open: model.NewTimeOfDay(20, 0), Close: model.NewTimeOfDay(2, 0)},
		},
		{
			name:   "close at midnight is legal",
			window: model.TimeWindow{Open: model.NewTimeOfDay(22, 0), Close: model.NewTimeOfDay(0, 0)},
		},
		{
			name:    "zero-length window",
			window:  model.TimeWindow{Open: model.NewTimeOfDay(9, 0), Close: model.NewTimeOfDay(9, 0)},
			wantErr: ErrInvalidWindow,
		},
		{
			name:    "zero-length at midnight",
			window:  model.TimeWindow{Open: model.NewTimeOfDay(0, 0), Close: model.NewTimeOfDay(0, 0)},
			wantErr: ErrInvalidWindow,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateWindow(tt.window)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("expected %v, got %v", tt.wantErr, err)
			}
		})
	}
}

func TestValidateOverride(t *testing.T) {
	// Fixed "now": 2026-06-10 at 14:00.
	now := time.Date(2026, 6, 10, 14, 0, 0, 0, time.Local)

	date := func(day int) model.Date {
		return model.Date{Year: 2026, Month: time.June, Day: day}
	}

	tests := []struct {
		name    string
		payload model.OverridePayload
		wantErr error
	}{
		{
			name: "closed day in the future",
			payload: model.OverridePayload{
				Date: date(11), IsClosed: true, Reason: "holiday",
			},
		},
		{
			name: "special hours later today",
			payload: model.OverridePayload{
				Date: date(10), Open: model.NewTimeOfDay(15, 0), Close: model.NewTimeOfDay(20, 0), Reason: "late opening",
			},
		},
		{
			name: "date one day in the past",
			payload: model.OverridePayload{
				Date: date(9), IsClosed: true, Reason: "holiday",
			},
			wantErr: ErrPastDate,
		},
		{
			name: "today with open time already passed",
			payload: model.OverridePayload{
				Date: date(10), Open: model.NewTimeOfDay(10, 0), Close: model.NewTimeOfDay(13, 0), Reason: "short day",
			},
			wantErr: ErrOpenTimeInPast,
		},
		{
			name: "open not before close",
			payload: model.OverridePayload{
				Date: date(12), Open: model.NewTimeOfDay(18, 0), Close: model.NewTimeOfDay(10, 0), Reason: "event",
			},
			wantErr: ErrInvalidRange,
		},
		{
			name: "zero-length override window",
			payload: model.OverridePayload{
				Date: date(12), Open: model.NewTimeOfDay(10, 0), Close: model.NewTimeOfDay(10, 0), Reason: "event",
			},
			wantErr: ErrInvalidRange,
		},
		{
			name: "missing reason",
			payload: model.OverridePayload{
				Date: date(12), Open: model.NewTimeOfDay(10, 0), Close: model.NewTimeOfDay(12, 0),
			},
			wantErr: ErrMissingReason,
		},
		{
			name: "whitespace reason",
			payload: model.OverridePayload{
				Date: date(12), IsClosed: true, Reason: "   ",
			},
			wantErr: ErrMissingReason,
		},
		{
			name: "closed day skips time checks",
			payload: model.OverridePayload{
				Date: date(10), IsClosed: true,
				Open: model.NewTimeOfDay(10, 0), Close: model.NewTimeOfDay(9, 0),
				Reason: "holiday",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateOverride(tt.payload, now)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("expected %v, got %v", tt.wantErr, err)
			}
		})
	}
}
