package model

import "time"

// TimeRange is a [StartTime, EndTime) pair in HH:MM, minute resolution.
// Used both for a setting's timing bands and a blackout rule's ranges.
type TimeRange struct {
	Name      string `json:"name,omitempty" bson:"name,omitempty" validate:"omitempty,max=100"`
	StartTime string `json:"start_time" bson:"start_time" validate:"required,clock_time"`
	EndTime   string `json:"end_time" bson:"end_time" validate:"required,clock_time"`
}

// SlotSetting is a recurring availability template for one section: when
// the section can be booked, in slots of which duration, at what price.
// When several settings match the same section, date and weekday, the one
// with the latest CreatedAt wins outright; older matches are ignored.
type SlotSetting struct {
	ID        string `json:"id,omitempty" bson:"_id,omitempty" validate:"omitempty,mongodb"`
	VenueID   string `json:"venue_id" bson:"venue_id" validate:"required,mongodb"`
	SectionID string `json:"section_id" bson:"section_id" validate:"required,mongodb"`
	Name      string `json:"name" bson:"name" validate:"required,min=2,max=100"`

	// Optional inclusive validity window, date-only precision. A nil bound
	// is open-ended.
	StartDate *time.Time `json:"start_date,omitempty" bson:"start_date,omitempty"`
	EndDate   *time.Time `json:"end_date,omitempty" bson:"end_date,omitempty"`

	// Days the setting applies to; empty means every day.
	Days []string `json:"days,omitempty" bson:"days" validate:"omitempty,max=7,dive,oneof=SUN MON TUE WED THU FRI SAT"`

	Timings         []TimeRange `json:"timings" bson:"timings" validate:"required,min=1,dive"`
	SlotDurationMin int         `json:"slot_duration_min" bson:"slot_duration_min" validate:"required,min=5,max=480"`

	PricePerHour float64 `json:"price_per_hour" bson:"price_per_hour" validate:"required,gt=0"`
	// Per-weekday hourly price overrides keyed by weekday label.
	DayPrices map[string]float64 `json:"day_prices,omitempty" bson:"day_prices,omitempty" validate:"omitempty,day_prices"`

	// How many days ahead of today a booking may be placed.
	MaxAdvanceBookingDays int `json:"max_advance_booking_days" bson:"max_advance_booking_days" validate:"required,min=1,max=365"`

	Active    bool      `json:"active" bson:"active"`
	CreatedAt time.Time `json:"created_at" bson:"created_at" validate:"omitempty"`
}

type SlotSettingUpdate struct {
	Name                  string             `json:"name,omitempty" validate:"omitempty,min=2,max=100"`
	StartDate             *time.Time         `json:"start_date,omitempty"`
	EndDate               *time.Time         `json:"end_date,omitempty"`
	Days                  *[]string          `json:"days,omitempty" validate:"omitempty,max=7,dive,oneof=SUN MON TUE WED THU FRI SAT"`
	Timings               *[]TimeRange       `json:"timings,omitempty" validate:"omitempty,min=1,dive"`
	SlotDurationMin       *int               `json:"slot_duration_min,omitempty" validate:"omitempty,min=5,max=480"`
	PricePerHour          *float64           `json:"price_per_hour,omitempty" validate:"omitempty,gt=0"`
	DayPrices             *map[string]float64 `json:"day_prices,omitempty" validate:"omitempty,day_prices"`
	MaxAdvanceBookingDays *int               `json:"max_advance_booking_days,omitempty" validate:"omitempty,min=1,max=365"`
	Active                *bool              `json:"active,omitempty"`
}

// AppliesToDay reports whether the setting covers the given weekday label.
// An empty day set means every day.
func (s *SlotSetting) AppliesToDay(weekday string) bool {
	if len(s.Days) == 0 {
		return true
	}
	for _, d := range s.Days {
		if d == weekday {
			return true
		}
	}
	return false
}

// ContainsDate reports whether a normalized date falls inside the
// setting's validity window. Nil bounds are open-ended.
func (s *SlotSetting) ContainsDate(date time.Time) bool {
	if s.StartDate != nil && date.Before(*s.StartDate) {
		return false
	}
	if s.EndDate != nil && date.After(*s.EndDate) {
		return false
	}
	return true
}
