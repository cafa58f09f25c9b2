// Package service is the engine facade consumed by the presentation
// layer. It loads the committed schedule and overrides through the
// store, runs the resolver, owns the per-location draft sessions and
// routes override mutations through validation before any I/O.
package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"openhours/internal/draft"
	"openhours/internal/hours"
	"openhours/internal/metrics"
	"openhours/internal/model"
)

// Store is the persistence collaborator. The sqlite store and the
// Redis-cached decorator both satisfy it.
type Store interface {
	GetWeeklySchedule(ctx context.Context, locationID int64) (model.WeeklySchedule, error)
	ReplaceWeeklySchedule(ctx context.Context, locationID int64, week model.WeeklySchedule) (model.WeeklySchedule, error)
	ListOverrides(ctx context.Context, locationID int64) ([]model.Override, error)
	CreateOverride(ctx context.Context, locationID int64, p model.OverridePayload) (*model.Override, error)
	DeleteOverride(ctx context.Context, locationID, overrideID int64) error
}

// Service exposes the scheduling engine to callers.
type Service struct {
	store    Store
	sessions *draft.SessionStore
	logger   *zerolog.Logger
}

// New builds a Service with the given draft session idle timeout.
func New(store Store, sessionTimeout time.Duration, logger *zerolog.Logger) *Service {
	return &Service{
		store:    store,
		sessions: draft.NewSessionStore(sessionTimeout),
		logger:   logger,
	}
}

// CurrentStatus resolves the committed schedule at the given instant.
// now is injected by the caller; the engine never reads a clock during
// resolution.
func (s *Service) CurrentStatus(ctx context.Context, locationID int64, now time.Time) (model.Status, error) {
	week, err := s.store.GetWeeklySchedule(ctx, locationID)
	if err != nil {
		return model.Status{}, fmt.Errorf("load weekly schedule: %w", err)
	}
	overrides, err := s.store.ListOverrides(ctx, locationID)
	if err != nil {
		return model.Status{}, fmt.Errorf("load overrides: %w", err)
	}

	status := hours.ResolveStatus(now, week, overrides)
	metrics.IncStatusResolved(status.Open)
	return status, nil
}

// PreviewStatus resolves against the draft schedule when an editing
// session exists, giving the operator a live preview of unsaved edits.
// Without a session it behaves like CurrentStatus.
func (s *Service) PreviewStatus(ctx context.Context, locationID int64, now time.Time) (model.Status, error) {
	session := s.sessions.Get(locationID)
	if session == nil {
		return s.CurrentStatus(ctx, locationID, now)
	}

	overrides, err := s.store.ListOverrides(ctx, locationID)
	if err != nil {
		return model.Status{}, fmt.Errorf("load overrides: %w", err)
	}
	return hours.ResolveStatus(now, session.Draft(), overrides), nil
}

// EffectiveWeek returns the committed weekly pattern for read-only
// display. Overrides never alter this view; they are listed separately.
func (s *Service) EffectiveWeek(ctx context.Context, locationID int64) (model.WeeklySchedule, error) {
	return s.store.GetWeeklySchedule(ctx, locationID)
}

// Overrides returns the current override list.
func (s *Service) Overrides(ctx context.Context, locationID int64) ([]model.Override, error) {
	return s.store.ListOverrides(ctx, locationID)
}

// SubmitOverride validates the payload and, only if it passes, creates
// the override. Validation failures return before any I/O. The
// refreshed override list is returned alongside the created record.
func (s *Service) SubmitOverride(ctx context.Context, locationID int64, p model.OverridePayload, now time.Time) (*model.Override, []model.Override, error) {
	if err := hours.ValidateOverride(p, now); err != nil {
		return nil, nil, err
	}

	created, err := s.store.CreateOverride(ctx, locationID, p)
	if err != nil {
		metrics.IncOverride("create_failed")
		return nil, nil, fmt.Errorf("create override: %w", err)
	}
	metrics.IncOverride("created")
	s.logger.Info().
		Int64("location_id", locationID).
		Str("date", created.Date.String()).
		Bool("is_closed", created.IsClosed).
		Msg("override created")

	refreshed, err := s.store.ListOverrides(ctx, locationID)
	if err != nil {
		return created, nil, fmt.Errorf("refresh overrides: %w", err)
	}
	return created, refreshed, nil
}

// RemoveOverride deletes an override and returns the refreshed list.
// Any confirmation step is the caller's concern.
func (s *Service) RemoveOverride(ctx context.Context, locationID, overrideID int64) ([]model.Override, error) {
	if err := s.store.DeleteOverride(ctx, locationID, overrideID); err != nil {
		metrics.IncOverride("delete_failed")
		return nil, fmt.Errorf("delete override: %w", err)
	}
	metrics.IncOverride("deleted")

	refreshed, err := s.store.ListOverrides(ctx, locationID)
	if err != nil {
		return nil, fmt.Errorf("refresh overrides: %w", err)
	}
	return refreshed, nil
}

// OpenDraft returns the location's editing session, creating one over
// the committed schedule if none exists.
func (s *Service) OpenDraft(ctx context.Context, locationID int64) (*draft.Session, error) {
	if session := s.sessions.Get(locationID); session != nil {
		return session, nil
	}

	week, err := s.store.GetWeeklySchedule(ctx, locationID)
	if err != nil {
		return nil, fmt.Errorf("load weekly schedule: %w", err)
	}

	session := draft.NewSession(locationID, week, s.store)
	s.sessions.Put(locationID, session)
	return session, nil
}

// DiscardDraft drops the location's editing session, if any.
func (s *Service) DiscardDraft(locationID int64) {
	s.sessions.Delete(locationID)
}

// CommitDraft commits the location's draft session.
func (s *Service) CommitDraft(ctx context.Context, locationID int64) error {
	session := s.sessions.Get(locationID)
	if session == nil {
		return fmt.Errorf("no draft session for location %d", locationID)
	}

	if err := session.Commit(ctx); err != nil {
		metrics.IncCommit("failed")
		return err
	}
	metrics.IncCommit("ok")
	s.logger.Info().Int64("location_id", locationID).Msg("weekly schedule committed")
	return nil
}

// ReplaceWeek validates and replaces the whole weekly schedule in one
// call, bypassing any draft session. Sessions for the location are
// reset to the new committed schedule.
func (s *Service) ReplaceWeek(ctx context.Context, locationID int64, week model.WeeklySchedule) (model.WeeklySchedule, error) {
	for d := time.Sunday; d <= time.Saturday; d++ {
		for i, w := range week.Day(d) {
			if err := hours.ValidateWindow(w); err != nil {
				return model.WeeklySchedule{}, fmt.Errorf("%s slot %d: %w", d, i+1, err)
			}
		}
	}

	saved, err := s.store.ReplaceWeeklySchedule(ctx, locationID, week)
	if err != nil {
		metrics.IncCommit("failed")
		return model.WeeklySchedule{}, fmt.Errorf("replace weekly schedule: %w", err)
	}
	metrics.IncCommit("ok")

	if session := s.sessions.Get(locationID); session != nil {
		session.Reset(saved)
	}
	return saved, nil
}

// CleanupSessions drops expired draft sessions.
func (s *Service) CleanupSessions() int {
	return s.sessions.Cleanup()
}
