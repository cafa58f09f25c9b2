package model

import "time"

// TimeWindow is one open/close pair within a single day. A close at or
// before the open denotes a window crossing midnight (e.g. 20:00-02:00);
// a literal 00:00 close means "end of day", never "start of day".
type TimeWindow struct {
	Open  TimeOfDay `json:"open"`
	Close TimeOfDay `json:"close"`
}

// CrossesMidnight reports whether the window runs past midnight. A 00:00
// close counts as end of day, not a crossing.
func (w TimeWindow) CrossesMidnight() bool {
	return w.Close != 0 && w.Close <= w.Open
}

// WeeklySchedule maps weekdays (0 = Sunday .. 6 = Saturday) to their
// ordered open windows. A day with no windows is closed all day; there
// is no separate closed flag.
type WeeklySchedule [7][]TimeWindow

// Day returns the windows for a weekday.
func (s WeeklySchedule) Day(d time.Weekday) []TimeWindow {
	return s[d]
}

// Clone returns a deep copy. Window lists are copied, never aliased.
func (s WeeklySchedule) Clone() WeeklySchedule {
	var out WeeklySchedule
	for d, windows := range s {
		if windows == nil {
			continue
		}
		out[d] = make([]TimeWindow, len(windows))
		copy(out[d], windows)
	}
	return out
}

// Equal compares two schedules day by day, window by window.
func (s WeeklySchedule) Equal(other WeeklySchedule) bool {
	for d := range s {
		if len(s[d]) != len(other[d]) {
			return false
		}
		for i, w := range s[d] {
			if w != other[d][i] {
				return false
			}
		}
	}
	return true
}

// Override is a date-specific exception that fully replaces the weekly
// pattern for its date. Either the location is closed for the whole day
// or a single special window applies; overrides never carry multiple
// windows and never cross midnight.
type Override struct {
	ID         int64       `json:"id"`
	LocationID int64       `json:"location_id"`
	Date       Date        `json:"date"`
	IsClosed   bool        `json:"is_closed"`
	Window     *TimeWindow `json:"window,omitempty"`
	Reason     string      `json:"reason"`
	CreatedAt  time.Time   `json:"created_at"`
	UpdatedAt  time.Time   `json:"updated_at"`
}

// OverridePayload is an override submission before the server assigns
// an ID.
type OverridePayload struct {
	Date     Date      `json:"date"`
	IsClosed bool      `json:"is_closed"`
	Open     TimeOfDay `json:"open"`
	Close    TimeOfDay `json:"close"`
	Reason   string    `json:"reason"`
}

// Window returns the payload's window, or nil for a fully closed day.
// Time fields on a closed payload are discarded even if set.
func (p OverridePayload) Window() *TimeWindow {
	if p.IsClosed {
		return nil
	}
	return &TimeWindow{Open: p.Open, Close: p.Close}
}

// Status is the resolved open/closed state at a single instant.
type Status struct {
	Open     bool       `json:"open"`
	ClosesAt *TimeOfDay `json:"closes_at,omitempty"`
	Reason   string     `json:"reason,omitempty"`
}
