package db

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"openhours/internal/model"
)

// ListOverrides returns all overrides for a location ordered by date.
func (db *DB) ListOverrides(ctx context.Context, locationID int64) ([]model.Override, error) {
	rows, err := db.QueryContext(ctx, `
		SELECT id, location_id, date, is_closed, open_time, close_time, reason, created_at, updated_at
		FROM hours_overrides
		WHERE location_id = ?
		ORDER BY date`,
		locationID,
	)
	if err != nil {
		return nil, fmt.Errorf("query overrides: %w", err)
	}
	defer rows.Close()

	var overrides []model.Override
	for rows.Next() {
		o, err := scanOverride(rows)
		if err != nil {
			return nil, err
		}
		overrides = append(overrides, *o)
	}
	return overrides, rows.Err()
}

// CreateOverride inserts an override and returns it with its assigned
// ID. Time fields on a closed payload are discarded before storage.
func (db *DB) CreateOverride(ctx context.Context, locationID int64, p model.OverridePayload) (*model.Override, error) {
	var openVal, closeVal any
	if w := p.Window(); w != nil {
		openVal = w.Open.String()
		closeVal = w.Close.String()
	}

	now := time.Now()
	res, err := db.ExecContext(ctx, `
		INSERT INTO hours_overrides (location_id, date, is_closed, open_time, close_time, reason, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		locationID, p.Date.String(), p.IsClosed, openVal, closeVal, p.Reason, now, now,
	)
	if err != nil {
		return nil, fmt.Errorf("insert override: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("override id: %w", err)
	}

	return &model.Override{
		ID:         id,
		LocationID: locationID,
		Date:       p.Date,
		IsClosed:   p.IsClosed,
		Window:     p.Window(),
		Reason:     p.Reason,
		CreatedAt:  now,
		UpdatedAt:  now,
	}, nil
}

// DeleteOverride removes an override by ID within a location.
func (db *DB) DeleteOverride(ctx context.Context, locationID, overrideID int64) error {
	res, err := db.ExecContext(ctx,
		"DELETE FROM hours_overrides WHERE id = ? AND location_id = ?",
		overrideID, locationID,
	)
	if err != nil {
		return fmt.Errorf("delete override: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete override: %w", err)
	}
	if affected == 0 {
		return ErrOverrideNotFound
	}
	return nil
}

func scanOverride(rows *sql.Rows) (*model.Override, error) {
	var o model.Override
	var dateStr string
	var openStr, closeStr sql.NullString
	if err := rows.Scan(
		&o.ID, &o.LocationID, &dateStr, &o.IsClosed, &openStr, &closeStr,
		&o.Reason, &o.CreatedAt, &o.UpdatedAt,
	); err != nil {
		return nil, fmt.Errorf("scan override: %w", err)
	}

	date, err := model.ParseDate(dateStr)
	if err != nil {
		return nil, fmt.Errorf("override %d: %w", o.ID, err)
	}
	o.Date = date

	if !o.IsClosed && openStr.Valid && closeStr.Valid {
		w, err := parseWindow(openStr.String, closeStr.String)
		if err != nil {
			return nil, fmt.Errorf("override %d: %w", o.ID, err)
		}
		o.Window = &w
	}
	return &o, nil
}
