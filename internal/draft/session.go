// Package draft provides the in-memory editing session for a location's
// weekly schedule. Edits accumulate locally and hit persistence only on
// an explicit commit, which replaces the whole week at once.
package draft

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"openhours/internal/hours"
	"openhours/internal/model"
)

// State represents the current state of an editing session.
type State string

const (
	// StateClean means the draft equals the last committed schedule.
	StateClean State = "clean"
	// StateDirty means the draft has uncommitted local edits.
	StateDirty State = "dirty"
	// StateCommitting means a commit is in flight; further commits are
	// rejected until it resolves.
	StateCommitting State = "committing"
)

// Field addresses one side of a window in UpdateSlot.
type Field string

const (
	FieldOpen  Field = "open"
	FieldClose Field = "close"
)

// DefaultWindow is appended by AddSlot.
var DefaultWindow = model.TimeWindow{
	Open:  model.NewTimeOfDay(9, 0),
	Close: model.NewTimeOfDay(17, 0),
}

var ErrCommitInFlight = errors.New("commit already in progress")

// ScheduleSaver persists the full weekly schedule in one replace-all
// write. Either all seven days are replaced together or nothing
// changes server-side.
type ScheduleSaver interface {
	ReplaceWeeklySchedule(ctx context.Context, locationID int64, week model.WeeklySchedule) (model.WeeklySchedule, error)
}

// Session wraps one location's weekly schedule as a working copy.
type Session struct {
	locationID int64
	saver      ScheduleSaver

	mu        sync.Mutex
	state     State
	committed model.WeeklySchedule
	draft     model.WeeklySchedule
	updatedAt time.Time
}

// NewSession starts a clean session over the committed schedule.
func NewSession(locationID int64, committed model.WeeklySchedule, saver ScheduleSaver) *Session {
	return &Session{
		locationID: locationID,
		saver:      saver,
		state:      StateClean,
		committed:  committed.Clone(),
		draft:      committed.Clone(),
		updatedAt:  time.Now(),
	}
}

// State returns the current session state.
func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Dirty reports whether the session has uncommitted edits.
func (s *Session) Dirty() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state != StateClean
}

// Draft returns a deep copy of the working schedule, safe for the
// resolver to consume as a live preview.
func (s *Session) Draft() model.WeeklySchedule {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.draft.Clone()
}

// AddSlot appends a default 09:00-17:00 window to the day.
func (s *Session) AddSlot(day time.Weekday) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state == StateCommitting || day < time.Sunday || day > time.Saturday {
		return
	}
	s.draft[day] = append(s.draft[day], DefaultWindow)
	s.markDirty()
}

// RemoveSlot removes the window at index. Out-of-range day or index is
// a no-op with no state change.
func (s *Session) RemoveSlot(day time.Weekday, index int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state == StateCommitting || day < time.Sunday || day > time.Saturday {
		return
	}
	windows := s.draft[day]
	if index < 0 || index >= len(windows) {
		return
	}
	s.draft[day] = append(windows[:index], windows[index+1:]...)
	s.markDirty()
}

// UpdateSlot replaces the open or close time on the addressed window.
// No eager validation: transient invalid values while the operator is
// typing are allowed and caught at commit time.
func (s *Session) UpdateSlot(day time.Weekday, index int, field Field, value model.TimeOfDay) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state == StateCommitting || day < time.Sunday || day > time.Saturday {
		return
	}
	if index < 0 || index >= len(s.draft[day]) {
		return
	}
	switch field {
	case FieldOpen:
		s.draft[day][index].Open = value
	case FieldClose:
		s.draft[day][index].Close = value
	default:
		return
	}
	s.markDirty()
}

// CopyDayToAll overwrites every other day with a structural copy of the
// source day's windows. The source day is left untouched and later
// edits to one day never leak into another.
func (s *Session) CopyDayToAll(source time.Weekday) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state == StateCommitting || source < time.Sunday || source > time.Saturday {
		return
	}
	for d := time.Sunday; d <= time.Saturday; d++ {
		if d == source {
			continue
		}
		s.draft[d] = make([]model.TimeWindow, len(s.draft[source]))
		copy(s.draft[d], s.draft[source])
	}
	s.markDirty()
}

// Commit validates every window in the draft and, if all pass, replaces
// the entire weekly schedule in persistence. On a validation failure
// the first error is returned, no persistence call is made and the
// draft is untouched. On a persistence failure the session stays dirty
// and the error is surfaced wrapped; re-invoking Commit with the same
// draft is always a valid retry.
func (s *Session) Commit(ctx context.Context) error {
	s.mu.Lock()
	if s.state == StateCommitting {
		s.mu.Unlock()
		return ErrCommitInFlight
	}

	for d := time.Sunday; d <= time.Saturday; d++ {
		for i, w := range s.draft[d] {
			if err := hours.ValidateWindow(w); err != nil {
				s.mu.Unlock()
				return fmt.Errorf("%s slot %d: %w", d, i+1, err)
			}
		}
	}

	s.state = StateCommitting
	snapshot := s.draft.Clone()
	s.mu.Unlock()

	saved, err := s.saver.ReplaceWeeklySchedule(ctx, s.locationID, snapshot)

	s.mu.Lock()
	defer s.mu.Unlock()
	if err != nil {
		s.state = StateDirty
		return fmt.Errorf("replace weekly schedule: %w", err)
	}

	s.committed = saved.Clone()
	s.draft = saved.Clone()
	s.state = StateClean
	s.updatedAt = time.Now()
	return nil
}

// Reset replaces both copies with a schedule committed elsewhere, for
// example after switching the active location.
func (s *Session) Reset(committed model.WeeklySchedule) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state == StateCommitting {
		return
	}
	s.committed = committed.Clone()
	s.draft = committed.Clone()
	s.state = StateClean
	s.updatedAt = time.Now()
}

// IsExpired checks if the session has been idle longer than timeout.
func (s *Session) IsExpired(timeout time.Duration) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return time.Since(s.updatedAt) > timeout
}

func (s *Session) markDirty() {
	s.state = StateDirty
	s.updatedAt = time.Now()
}
