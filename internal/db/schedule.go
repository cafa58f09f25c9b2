package db

import (
	"context"
	"fmt"
	"time"

	"openhours/internal/model"
)

// GetWeeklySchedule loads all windows for a location grouped by weekday.
func (db *DB) GetWeeklySchedule(ctx context.Context, locationID int64) (model.WeeklySchedule, error) {
	rows, err := db.QueryContext(ctx, `
		SELECT day_of_week, open_time, close_time
		FROM location_hours
		WHERE location_id = ?
		ORDER BY day_of_week, id`,
		locationID,
	)
	if err != nil {
		return model.WeeklySchedule{}, fmt.Errorf("query weekly schedule: %w", err)
	}
	defer rows.Close()

	var week model.WeeklySchedule
	for rows.Next() {
		var day int
		var openStr, closeStr string
		if err := rows.Scan(&day, &openStr, &closeStr); err != nil {
			return model.WeeklySchedule{}, fmt.Errorf("scan schedule row: %w", err)
		}

		window, err := parseWindow(openStr, closeStr)
		if err != nil {
			return model.WeeklySchedule{}, fmt.Errorf("day %d: %w", day, err)
		}
		if day < 0 || day > 6 {
			return model.WeeklySchedule{}, fmt.Errorf("invalid day of week: %d", day)
		}
		week[day] = append(week[day], window)
	}
	return week, rows.Err()
}

// ReplaceWeeklySchedule substitutes the entire weekly schedule for a
// location in a single transaction. There is no per-slot patching:
// either all seven days are replaced together or nothing changes.
func (db *DB) ReplaceWeeklySchedule(ctx context.Context, locationID int64, week model.WeeklySchedule) (model.WeeklySchedule, error) {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return model.WeeklySchedule{}, fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx,
		"DELETE FROM location_hours WHERE location_id = ?", locationID,
	); err != nil {
		return model.WeeklySchedule{}, fmt.Errorf("clear weekly schedule: %w", err)
	}

	for d := time.Sunday; d <= time.Saturday; d++ {
		for _, w := range week.Day(d) {
			if _, err := tx.ExecContext(ctx, `
				INSERT INTO location_hours (location_id, day_of_week, open_time, close_time)
				VALUES (?, ?, ?, ?)`,
				locationID, int(d), w.Open.String(), w.Close.String(),
			); err != nil {
				return model.WeeklySchedule{}, fmt.Errorf("insert window %s %s-%s: %w", d, w.Open, w.Close, err)
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return model.WeeklySchedule{}, fmt.Errorf("commit tx: %w", err)
	}

	if db.logger != nil {
		db.logger.Info().Int64("location_id", locationID).Msg("weekly schedule replaced")
	}
	return week.Clone(), nil
}

func parseWindow(openStr, closeStr string) (model.TimeWindow, error) {
	open, err := model.ParseTimeOfDay(openStr)
	if err != nil {
		return model.TimeWindow{}, fmt.Errorf("open time: %w", err)
	}
	closeAt, err := model.ParseTimeOfDay(closeStr)
	if err != nil {
		return model.TimeWindow{}, fmt.Errorf("close time: %w", err)
	}
	return model.TimeWindow{Open: open, Close: closeAt}, nil
}
