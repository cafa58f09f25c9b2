package export

import (
	"bytes"
	"testing"
	"time"

	"github.com/xuri/excelize/v2"

	"openhours/internal/model"
)

func buildWorkbook(t *testing.T, week model.WeeklySchedule, overrides []model.Override) *excelize.File {
	t.Helper()

	report, err := NewHoursReport(week, overrides)
	if err != nil {
		t.Fatalf("build report: %v", err)
	}
	defer report.Close()

	var buf bytes.Buffer
	if _, err := report.WriteTo(&buf); err != nil {
		t.Fatalf("render report: %v", err)
	}

	f, err := excelize.OpenReader(&buf)
	if err != nil {
		t.Fatalf("reopen workbook: %v", err)
	}
	t.Cleanup(func() { f.Close() })
	return f
}

func cell(t *testing.T, f *excelize.File, sheet, ref string) string {
	t.Helper()
	v, err := f.GetCellValue(sheet, ref)
	if err != nil {
		t.Fatalf("read %s!%s: %v", sheet, ref, err)
	}
	return v
}

func TestHoursReportWeeklySheet(t *testing.T) {
	var week model.WeeklySchedule
	week[time.Monday] = []model.TimeWindow{
		{Open: model.NewTimeOfDay(9, 0), Close: model.NewTimeOfDay(12, 0)},
		{Open: model.NewTimeOfDay(13, 0), Close: model.NewTimeOfDay(17, 30)},
	}

	f := buildWorkbook(t, week, nil)

	if got := cell(t, f, "Weekly hours", "A1"); got != "Day" {
		t.Errorf("header A1 = %q", got)
	}
	// Rows follow Sunday..Saturday, so Monday lands on row 3.
	if got := cell(t, f, "Weekly hours", "A3"); got != "Monday" {
		t.Errorf("A3 = %q", got)
	}
	if got := cell(t, f, "Weekly hours", "B3"); got != "09:00-12:00, 13:00-17:30" {
		t.Errorf("B3 = %q", got)
	}
	if got := cell(t, f, "Weekly hours", "B2"); got != "Closed" {
		t.Errorf("sunday B2 = %q, want Closed", got)
	}
}

func TestHoursReportOverridesSheet(t *testing.T) {
	window := model.TimeWindow{Open: model.NewTimeOfDay(10, 0), Close: model.NewTimeOfDay(14, 0)}
	overrides := []model.Override{
		{
			Date:     model.Date{Year: 2026, Month: time.December, Day: 24},
			IsClosed: true,
			Reason:   "holiday",
		},
		{
			Date:   model.Date{Year: 2026, Month: time.December, Day: 26},
			Window: &window,
			Reason: "short day",
		},
	}

	f := buildWorkbook(t, model.WeeklySchedule{}, overrides)

	if got := cell(t, f, "Overrides", "A2"); got != "2026-12-24" {
		t.Errorf("A2 = %q", got)
	}
	if got := cell(t, f, "Overrides", "B2"); got != "Closed" {
		t.Errorf("B2 = %q", got)
	}
	if got := cell(t, f, "Overrides", "B3"); got != "Special hours" {
		t.Errorf("B3 = %q", got)
	}
	if got := cell(t, f, "Overrides", "C3"); got != "10:00-14:00" {
		t.Errorf("C3 = %q", got)
	}
	if got := cell(t, f, "Overrides", "D3"); got != "short day" {
		t.Errorf("D3 = %q", got)
	}
}

func TestHoursReportEmptyOverrides(t *testing.T) {
	f := buildWorkbook(t, model.WeeklySchedule{}, nil)

	if got := cell(t, f, "Overrides", "A1"); got != "Date" {
		t.Errorf("header A1 = %q", got)
	}
	if got := cell(t, f, "Overrides", "A2"); got != "" {
		t.Errorf("expected empty A2, got %q", got)
	}
}
