package hours

import (
	"time"

	"openhours/internal/model"
)

// endOfDay is the exclusive upper bound used when a window's close
// collapses to the end of the current day.
const endOfDay = model.TimeOfDay(24 * 60)

// ResolveStatus answers whether the location is open at the given
// instant. now is an explicit parameter so callers inject the clock;
// the resolver itself never reads one.
//
// An override for today's date takes absolute precedence: a closed
// override closes the whole day, an open one makes its single window
// the only window in effect. Otherwise the weekly windows for today's
// weekday apply. A midnight-crossing window is collapsed to "open until
// end of today" for the resolution instant; the resolver does not chase
// the window into the next calendar day.
func ResolveStatus(now time.Time, week model.WeeklySchedule, overrides []model.Override) model.Status {
	today := model.DateOf(now)
	at := model.TimeOfDayOf(now)

	if o, ok := overrideFor(overrides, today); ok {
		if o.IsClosed {
			return model.Status{Open: false, Reason: o.Reason}
		}
		if o.Window == nil {
			// Stored data is trusted; an open override without a
			// window behaves like a day with no windows.
			return model.Status{Open: false}
		}
		return resolveWindows([]model.TimeWindow{*o.Window}, at)
	}

	return resolveWindows(week.Day(now.Weekday()), at)
}

func overrideFor(overrides []model.Override, date model.Date) (model.Override, bool) {
	for _, o := range overrides {
		if o.Date == date {
			return o, true
		}
	}
	return model.Override{}, false
}

// resolveWindows reports the first window containing at. Windows are
// additive: any match opens the location. No deduplication or merging
// of overlapping windows is performed.
func resolveWindows(windows []model.TimeWindow, at model.TimeOfDay) model.Status {
	for _, w := range windows {
		if windowContains(w, at) {
			closes := w.Close
			return model.Status{Open: true, ClosesAt: &closes}
		}
	}
	return model.Status{Open: false}
}

func windowContains(w model.TimeWindow, at model.TimeOfDay) bool {
	end := w.Close
	if w.Close == 0 || w.Close <= w.Open {
		end = endOfDay
	}
	return at >= w.Open && at < end
}
