package model

import "time"

// Slot is a derived bookable window. Slots are never persisted: the
// generator recomputes them on every availability query, and SlotID ties
// them to confirmed bookings.
type Slot struct {
	SlotID      string    `json:"slot_id"`
	SectionID   string    `json:"section_id"`
	Date        time.Time `json:"date"`
	StartTime   string    `json:"start_time"`
	EndTime     string    `json:"end_time"`
	DurationMin int       `json:"duration_min"`
	Price       float64   `json:"price"`
	SettingName string    `json:"setting_name"`
	Available   bool      `json:"available"`
}

// Availability is the orchestrator's answer for one section and day.
// BlockedReason is only populated when every generated slot was blocked,
// so callers can explain an empty result.
type Availability struct {
	SectionID     string    `json:"section_id"`
	Date          time.Time `json:"date"`
	Slots         []Slot    `json:"slots"`
	BlockedReason string    `json:"blocked_reason,omitempty"`
}
