// Package export renders a location's hours as an Excel workbook for
// the operator: one sheet with the weekly pattern, one with overrides.
package export

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	"openhours/internal/model"
)

// HoursReport builds the workbook content.
type HoursReport struct {
	file       *excelize.File
	currentRow int
	sheet      string
}

// NewHoursReport creates a report for the given week and overrides.
func NewHoursReport(week model.WeeklySchedule, overrides []model.Override) (*HoursReport, error) {
	r := &HoursReport{file: excelize.NewFile()}

	if err := r.addSheet("Weekly hours"); err != nil {
		return nil, err
	}
	if err := r.writeRow([]any{"Day", "Hours"}); err != nil {
		return nil, err
	}
	for d := time.Sunday; d <= time.Saturday; d++ {
		if err := r.writeRow([]any{d.String(), formatDay(week.Day(d))}); err != nil {
			return nil, err
		}
	}

	if err := r.addSheet("Overrides"); err != nil {
		return nil, err
	}
	if err := r.writeRow([]any{"Date", "Status", "Hours", "Reason"}); err != nil {
		return nil, err
	}
	for _, o := range overrides {
		status, windowStr := "Special hours", ""
		if o.IsClosed {
			status = "Closed"
		} else if o.Window != nil {
			windowStr = fmt.Sprintf("%s-%s", o.Window.Open, o.Window.Close)
		}
		if err := r.writeRow([]any{o.Date.String(), status, windowStr, o.Reason}); err != nil {
			return nil, err
		}
	}

	return r, nil
}

// WriteTo streams the workbook.
func (r *HoursReport) WriteTo(w io.Writer) (int64, error) {
	return r.file.WriteTo(w)
}

// Close releases the underlying workbook.
func (r *HoursReport) Close() error {
	return r.file.Close()
}

func (r *HoursReport) addSheet(name string) error {
	// Excel limits sheet names to 31 chars.
	if len(name) > 31 {
		name = name[:31]
	}

	if r.sheet == "" {
		r.file.SetSheetName("Sheet1", name)
	} else {
		if _, err := r.file.NewSheet(name); err != nil {
			return fmt.Errorf("create sheet %s: %w", name, err)
		}
	}

	r.sheet = name
	r.currentRow = 0
	return nil
}

func (r *HoursReport) writeRow(values []any) error {
	r.currentRow++
	for i, v := range values {
		cell, err := excelize.CoordinatesToCellName(i+1, r.currentRow)
		if err != nil {
			return err
		}
		if err := r.file.SetCellValue(r.sheet, cell, v); err != nil {
			return fmt.Errorf("write cell %s: %w", cell, err)
		}
	}
	return nil
}

func formatDay(windows []model.TimeWindow) string {
	if len(windows) == 0 {
		return "Closed"
	}
	parts := make([]string, len(windows))
	for i, w := range windows {
		parts[i] = fmt.Sprintf("%s-%s", w.Open, w.Close)
	}
	return strings.Join(parts, ", ")
}
