package db

import (
	"context"
	"errors"
	"io"
	"path/filepath"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"openhours/internal/model"
)

func newTestDB(t *testing.T) *DB {
	t.Helper()
	logger := zerolog.New(io.Discard)
	database, err := New(filepath.Join(t.TempDir(), "test.db"), &logger)
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	t.Cleanup(func() { database.Close() })
	return database
}

func sampleWeek() model.WeeklySchedule {
	var week model.WeeklySchedule
	week[time.Monday] = []model.TimeWindow{
		{Open: model.NewTimeOfDay(9, 0), Close: model.NewTimeOfDay(12, 0)},
		{Open: model.NewTimeOfDay(14, 0), Close: model.NewTimeOfDay(18, 0)},
	}
	week[time.Friday] = []model.TimeWindow{
		{Open: model.NewTimeOfDay(20, 0), Close: model.NewTimeOfDay(2, 0)},
	}
	return week
}

func TestWeeklyScheduleRoundTrip(t *testing.T) {
	database := newTestDB(t)
	ctx := context.Background()

	week := sampleWeek()
	saved, err := database.ReplaceWeeklySchedule(ctx, 7, week)
	if err != nil {
		t.Fatalf("replace: %v", err)
	}
	if !saved.Equal(week) {
		t.Error("replace must return the saved schedule")
	}

	loaded, err := database.GetWeeklySchedule(ctx, 7)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if !loaded.Equal(week) {
		t.Errorf("round trip mismatch:\nwant %+v\ngot  %+v", week, loaded)
	}

	// Unknown location loads as an all-closed week.
	empty, err := database.GetWeeklySchedule(ctx, 99)
	if err != nil {
		t.Fatalf("get empty: %v", err)
	}
	if !empty.Equal(model.WeeklySchedule{}) {
		t.Error("unknown location must have no windows")
	}
}

func TestReplaceWeeklyScheduleIsFullReplace(t *testing.T) {
	database := newTestDB(t)
	ctx := context.Background()

	if _, err := database.ReplaceWeeklySchedule(ctx, 7, sampleWeek()); err != nil {
		t.Fatalf("first replace: %v", err)
	}

	var next model.WeeklySchedule
	next[time.Sunday] = []model.TimeWindow{
		{Open: model.NewTimeOfDay(10, 0), Close: model.NewTimeOfDay(16, 0)},
	}
	if _, err := database.ReplaceWeeklySchedule(ctx, 7, next); err != nil {
		t.Fatalf("second replace: %v", err)
	}

	loaded, err := database.GetWeeklySchedule(ctx, 7)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if !loaded.Equal(next) {
		t.Error("previous windows must be gone after a full replace")
	}
}

func TestReplaceWeeklyScheduleIsolatedPerLocation(t *testing.T) {
	database := newTestDB(t)
	ctx := context.Background()

	if _, err := database.ReplaceWeeklySchedule(ctx, 1, sampleWeek()); err != nil {
		t.Fatalf("replace loc 1: %v", err)
	}
	if _, err := database.ReplaceWeeklySchedule(ctx, 2, model.WeeklySchedule{}); err != nil {
		t.Fatalf("replace loc 2: %v", err)
	}

	loaded, err := database.GetWeeklySchedule(ctx, 1)
	if err != nil {
		t.Fatalf("get loc 1: %v", err)
	}
	if !loaded.Equal(sampleWeek()) {
		t.Error("replacing one location must not touch another")
	}
}

func TestOverrideLifecycle(t *testing.T) {
	database := newTestDB(t)
	ctx := context.Background()

	payload := model.OverridePayload{
		Date:   model.Date{Year: 2026, Month: time.July, Day: 4},
		Open:   model.NewTimeOfDay(10, 0),
		Close:  model.NewTimeOfDay(14, 0),
		Reason: "short holiday hours",
	}

	created, err := database.CreateOverride(ctx, 7, payload)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if created.ID == 0 {
		t.Error("expected server-assigned id")
	}
	if created.Window == nil || created.Window.Open != payload.Open {
		t.Errorf("unexpected window: %+v", created.Window)
	}

	overrides, err := database.ListOverrides(ctx, 7)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(overrides) != 1 {
		t.Fatalf("expected 1 override, got %d", len(overrides))
	}
	got := overrides[0]
	if got.Date != payload.Date || got.Reason != payload.Reason {
		t.Errorf("unexpected override: %+v", got)
	}
	if got.Window == nil || got.Window.Close != payload.Close {
		t.Errorf("unexpected window: %+v", got.Window)
	}

	if err := database.DeleteOverride(ctx, 7, created.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	overrides, err = database.ListOverrides(ctx, 7)
	if err != nil {
		t.Fatalf("list after delete: %v", err)
	}
	if len(overrides) != 0 {
		t.Errorf("expected no overrides, got %d", len(overrides))
	}
}

func TestCreateClosedOverrideDiscardsTimes(t *testing.T) {
	database := newTestDB(t)
	ctx := context.Background()

	created, err := database.CreateOverride(ctx, 7, model.OverridePayload{
		Date:     model.Date{Year: 2026, Month: time.December, Day: 25},
		IsClosed: true,
		Open:     model.NewTimeOfDay(9, 0),
		Close:    model.NewTimeOfDay(17, 0),
		Reason:   "Christmas",
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if created.Window != nil {
		t.Error("closed override must not carry a window")
	}

	overrides, err := database.ListOverrides(ctx, 7)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if overrides[0].Window != nil {
		t.Error("closed override must load without a window")
	}
}

func TestDeleteOverrideNotFound(t *testing.T) {
	database := newTestDB(t)

	err := database.DeleteOverride(context.Background(), 7, 12345)
	if !errors.Is(err, ErrOverrideNotFound) {
		t.Errorf("expected ErrOverrideNotFound, got %v", err)
	}
}

func TestCreateOverrideDuplicateDate(t *testing.T) {
	database := newTestDB(t)
	ctx := context.Background()

	payload := model.OverridePayload{
		Date:     model.Date{Year: 2026, Month: time.July, Day: 4},
		IsClosed: true,
		Reason:   "holiday",
	}
	if _, err := database.CreateOverride(ctx, 7, payload); err != nil {
		t.Fatalf("first create: %v", err)
	}
	if _, err := database.CreateOverride(ctx, 7, payload); err == nil {
		t.Error("expected error for duplicate date")
	}

	// The same date is allowed for a different location.
	if _, err := database.CreateOverride(ctx, 8, payload); err != nil {
		t.Errorf("other location must be independent: %v", err)
	}
}
