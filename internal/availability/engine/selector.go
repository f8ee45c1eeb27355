package engine

import (
	"time"

	apperrors "courtside/pkg/errors"
	"courtside/pkg/model"
	"courtside/pkg/timeutil"
)

// SelectSetting picks the one recurring setting that governs a section on
// a date. Among active settings matching the weekday and validity window,
// only those whose advance-booking horizon reaches the date are eligible,
// and the newest by creation time wins outright; older matches are
// ignored entirely, never merged.
//
// When matches exist but the date is beyond every horizon, the error
// carries the earliest date on which booking becomes possible. When
// nothing matches at all, the section simply has no availability
// configured for that day.
func SelectSetting(sectionID string, settings []*model.SlotSetting, date, today time.Time) (*model.SlotSetting, error) {
	weekday := timeutil.DayOfWeek(date)
	diffDays := timeutil.DaysBetween(today, date)

	var winner *model.SlotSetting
	matched := false
	maxHorizon := 0

	for _, s := range settings {
		if !s.Active || !s.AppliesToDay(weekday) || !s.ContainsDate(date) {
			continue
		}
		matched = true
		if s.MaxAdvanceBookingDays > maxHorizon {
			maxHorizon = s.MaxAdvanceBookingDays
		}
		if s.MaxAdvanceBookingDays < diffDays {
			continue
		}
		if winner == nil || s.CreatedAt.After(winner.CreatedAt) {
			winner = s
		}
	}

	if winner != nil {
		return winner, nil
	}
	if matched {
		earliest := date.AddDate(0, 0, -maxHorizon)
		return nil, apperrors.AdvanceTooFar(date, earliest)
	}
	return nil, apperrors.NoAvailability(sectionID, date)
}
