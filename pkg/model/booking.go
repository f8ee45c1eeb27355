package model

import (
	"fmt"
	"time"
)

// Booking statuses. Bookings are never physically deleted; cancellation is
// a status transition that releases the slot for rebooking.
const (
	BookingConfirmed = "confirmed"
	BookingCancelled = "cancelled"
	BookingCompleted = "completed"
)

// Payment statuses. Payment processing is out of scope; bookings are
// recorded as already settled.
const (
	PaymentCompleted = "completed"
)

// Booking is one confirmed reservation of a slot. SlotID is the uniqueness
// anchor: a partial unique index over non-cancelled bookings guarantees at
// most one holder per slot.
type Booking struct {
	ID        string `json:"id,omitempty" bson:"_id,omitempty" validate:"omitempty,mongodb"`
	VenueID   string `json:"venue_id,omitempty" bson:"venue_id" validate:"omitempty,mongodb"`
	SectionID string `json:"section_id" bson:"section_id" validate:"required,mongodb"`
	UserID    string `json:"user_id" bson:"user_id" validate:"required,min=1,max=64"`

	Date        time.Time `json:"date" bson:"date" validate:"required"`
	StartTime   string    `json:"start_time" bson:"start_time" validate:"required,clock_time"`
	EndTime     string    `json:"end_time" bson:"end_time" validate:"required,clock_time"`
	DurationMin int       `json:"duration_min" bson:"duration_min" validate:"omitempty,min=1"`
	Price       float64   `json:"price" bson:"price" validate:"omitempty,gte=0"`

	SlotID        string `json:"slot_id,omitempty" bson:"slot_id" validate:"omitempty"`
	Status        string `json:"status" bson:"status" validate:"omitempty,oneof=confirmed cancelled completed"`
	PaymentStatus string `json:"payment_status" bson:"payment_status" validate:"omitempty"`
	Notes         string `json:"notes,omitempty" bson:"notes,omitempty" validate:"omitempty,max=500"`

	CreatedAt time.Time `json:"created_at" bson:"created_at" validate:"omitempty"`
}

// SlotKey derives the deterministic slot identifier for a section, day and
// start time: "{sectionId}-{YYYY-MM-DD}-{HH:MM}". The generator and the
// committer must agree on this format exactly so booked slots can be
// excluded from availability by set membership.
func SlotKey(sectionID string, date time.Time, startTime string) string {
	return fmt.Sprintf("%s-%s-%s", sectionID, date.UTC().Format("2006-01-02"), startTime)
}
