package engine

import (
	"errors"
	"testing"
	"time"

	apperrors "courtside/pkg/errors"
	"courtside/pkg/model"
)

func daysOnlySetting(createdAt time.Time, horizon int, days ...string) *model.SlotSetting {
	return &model.SlotSetting{
		SectionID:             testSectionID,
		Name:                  "setting",
		Days:                  days,
		Timings:               []model.TimeRange{{StartTime: "09:00", EndTime: "17:00"}},
		SlotDurationMin:       60,
		PricePerHour:          100,
		MaxAdvanceBookingDays: horizon,
		Active:                true,
		CreatedAt:             createdAt,
	}
}

func TestSelectSetting_NewestWins(t *testing.T) {
	older := daysOnlySetting(time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC), 30)
	newer := daysOnlySetting(time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC), 30)
	newer.PricePerHour = 120

	today := time.Date(2026, 8, 28, 0, 0, 0, 0, time.UTC)
	date := time.Date(2026, 8, 31, 0, 0, 0, 0, time.UTC)

	got, err := SelectSetting(testSectionID, []*model.SlotSetting{older, newer}, date, today)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != newer {
		t.Error("expected the newest matching setting to win")
	}

	// Order of the input slice must not matter.
	got, err = SelectSetting(testSectionID, []*model.SlotSetting{newer, older}, date, today)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != newer {
		t.Error("expected the newest matching setting to win regardless of input order")
	}
}

func TestSelectSetting_AdvanceHorizon(t *testing.T) {
	setting := daysOnlySetting(time.Now(), 5)
	today := time.Date(2026, 8, 28, 0, 0, 0, 0, time.UTC)

	// Day 5 is exactly at the horizon and succeeds.
	day5 := today.AddDate(0, 0, 5)
	if _, err := SelectSetting(testSectionID, []*model.SlotSetting{setting}, day5, today); err != nil {
		t.Fatalf("day 5 should be bookable, got %v", err)
	}

	// Day 6 is one past the horizon; earliest permissible booking day is
	// day 6 - 5 = day 1.
	day6 := today.AddDate(0, 0, 6)
	_, err := SelectSetting(testSectionID, []*model.SlotSetting{setting}, day6, today)
	if err == nil {
		t.Fatal("day 6 should be rejected")
	}
	var appErr *apperrors.AppError
	if !errors.As(err, &appErr) || appErr.Code != apperrors.CodeAdvanceTooFar {
		t.Fatalf("expected %s, got %v", apperrors.CodeAdvanceTooFar, err)
	}
	wantEarliest := today.AddDate(0, 0, 1).Format("2006-01-02")
	if appErr.Details["earliest_date"] != wantEarliest {
		t.Errorf("earliest_date = %v, want %s", appErr.Details["earliest_date"], wantEarliest)
	}
}

func TestSelectSetting_HorizonUsesLargestAcrossMatches(t *testing.T) {
	short := daysOnlySetting(time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC), 3)
	long := daysOnlySetting(time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC), 10)

	today := time.Date(2026, 8, 28, 0, 0, 0, 0, time.UTC)
	date := today.AddDate(0, 0, 20)

	_, err := SelectSetting(testSectionID, []*model.SlotSetting{short, long}, date, today)
	var appErr *apperrors.AppError
	if !errors.As(err, &appErr) || appErr.Code != apperrors.CodeAdvanceTooFar {
		t.Fatalf("expected %s, got %v", apperrors.CodeAdvanceTooFar, err)
	}
	wantEarliest := date.AddDate(0, 0, -10).Format("2006-01-02")
	if appErr.Details["earliest_date"] != wantEarliest {
		t.Errorf("earliest_date = %v, want %s (largest horizon across matches)", appErr.Details["earliest_date"], wantEarliest)
	}
}

func TestSelectSetting_OlderEligibleIgnoredWhenNewerWithinHorizon(t *testing.T) {
	// The newest matching setting wins among horizon-eligible ones even if
	// an older setting has a longer horizon.
	longOld := daysOnlySetting(time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC), 60)
	shortNew := daysOnlySetting(time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC), 7)

	today := time.Date(2026, 8, 28, 0, 0, 0, 0, time.UTC)
	date := today.AddDate(0, 0, 3)

	got, err := SelectSetting(testSectionID, []*model.SlotSetting{longOld, shortNew}, date, today)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != shortNew {
		t.Error("expected the newest eligible setting to win")
	}
}

func TestSelectSetting_WeekdayAndWindowFilters(t *testing.T) {
	today := time.Date(2026, 8, 28, 0, 0, 0, 0, time.UTC)
	monday := time.Date(2026, 8, 31, 0, 0, 0, 0, time.UTC)

	saturdayOnly := daysOnlySetting(time.Now(), 30, model.Saturday)
	_, err := SelectSetting(testSectionID, []*model.SlotSetting{saturdayOnly}, monday, today)
	var appErr *apperrors.AppError
	if !errors.As(err, &appErr) || appErr.Code != apperrors.CodeNoAvailability {
		t.Fatalf("expected %s for weekday mismatch, got %v", apperrors.CodeNoAvailability, err)
	}

	expired := daysOnlySetting(time.Now(), 30)
	endDate := time.Date(2026, 8, 30, 0, 0, 0, 0, time.UTC)
	expired.EndDate = &endDate
	_, err = SelectSetting(testSectionID, []*model.SlotSetting{expired}, monday, today)
	if !errors.As(err, &appErr) || appErr.Code != apperrors.CodeNoAvailability {
		t.Fatalf("expected %s for out-of-window date, got %v", apperrors.CodeNoAvailability, err)
	}

	inactive := daysOnlySetting(time.Now(), 30)
	inactive.Active = false
	_, err = SelectSetting(testSectionID, []*model.SlotSetting{inactive}, monday, today)
	if !errors.As(err, &appErr) || appErr.Code != apperrors.CodeNoAvailability {
		t.Fatalf("expected %s for inactive setting, got %v", apperrors.CodeNoAvailability, err)
	}
}

func TestSelectSetting_EmptyDaysMeansEveryDay(t *testing.T) {
	setting := daysOnlySetting(time.Now(), 30)
	today := time.Date(2026, 8, 28, 0, 0, 0, 0, time.UTC)

	for i := 0; i < 7; i++ {
		date := today.AddDate(0, 0, i)
		if _, err := SelectSetting(testSectionID, []*model.SlotSetting{setting}, date, today); err != nil {
			t.Errorf("day %d: unexpected error: %v", i, err)
		}
	}
}
