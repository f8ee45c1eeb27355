package model

import "time"

// BlockedSetting is a blackout rule removing availability from a section.
// An empty Timings list blocks the entire day. Several rules may be active
// for the same section and date; any overlapping rule blocks, and the
// newest overlapping rule supplies the reason that gets reported.
type BlockedSetting struct {
	ID        string `json:"id,omitempty" bson:"_id,omitempty" validate:"omitempty,mongodb"`
	VenueID   string `json:"venue_id" bson:"venue_id" validate:"required,mongodb"`
	SectionID string `json:"section_id" bson:"section_id" validate:"required,mongodb"`

	StartDate *time.Time `json:"start_date,omitempty" bson:"start_date,omitempty"`
	EndDate   *time.Time `json:"end_date,omitempty" bson:"end_date,omitempty"`

	// Days the rule applies to; empty means every day.
	Days []string `json:"days,omitempty" bson:"days" validate:"omitempty,max=7,dive,oneof=SUN MON TUE WED THU FRI SAT"`

	// Blocked time ranges; empty means the whole day is blocked.
	Timings []TimeRange `json:"timings,omitempty" bson:"timings" validate:"omitempty,dive"`

	Reason    string    `json:"reason" bson:"reason" validate:"required,min=2,max=200"`
	Active    bool      `json:"active" bson:"active"`
	CreatedAt time.Time `json:"created_at" bson:"created_at" validate:"omitempty"`
}

type BlockedSettingUpdate struct {
	StartDate *time.Time   `json:"start_date,omitempty"`
	EndDate   *time.Time   `json:"end_date,omitempty"`
	Days      *[]string    `json:"days,omitempty" validate:"omitempty,max=7,dive,oneof=SUN MON TUE WED THU FRI SAT"`
	Timings   *[]TimeRange `json:"timings,omitempty" validate:"omitempty,dive"`
	Reason    string       `json:"reason,omitempty" validate:"omitempty,min=2,max=200"`
	Active    *bool        `json:"active,omitempty"`
}

// BlocksWholeDay reports whether the rule has no explicit time ranges and
// therefore blocks every minute of a matching day.
func (b *BlockedSetting) BlocksWholeDay() bool {
	return len(b.Timings) == 0
}
