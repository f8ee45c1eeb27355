package model

import "time"

// Venue is a bookable facility owned by a vendor. Venues are soft-flagged
// inactive, never hard-deleted, because sections and bookings keep
// referencing them.
type Venue struct {
	ID          string    `json:"id,omitempty" bson:"_id,omitempty" validate:"omitempty,mongodb"`
	OwnerID     string    `json:"owner_id" bson:"owner_id" validate:"required,min=1,max=64"`
	Name        string    `json:"name" bson:"name" validate:"required,min=2,max=100"`
	OpeningTime string    `json:"opening_time" bson:"opening_time" validate:"required,clock_time"`
	ClosingTime string    `json:"closing_time" bson:"closing_time" validate:"required,clock_time"`
	Sports      []string  `json:"sports" bson:"sports" validate:"required,min=1,dive,min=2,max=50"`
	Active      bool      `json:"active" bson:"active"`
	CreatedAt   time.Time `json:"created_at" bson:"created_at" validate:"omitempty"`
}

type VenueUpdate struct {
	Name        string   `json:"name,omitempty" validate:"omitempty,min=2,max=100"`
	OpeningTime string   `json:"opening_time,omitempty" validate:"omitempty,clock_time"`
	ClosingTime string   `json:"closing_time,omitempty" validate:"omitempty,clock_time"`
	Sports      []string `json:"sports,omitempty" validate:"omitempty,min=1,dive,min=2,max=50"`
	Active      *bool    `json:"active,omitempty"`
}

// Section is a court or field inside a venue. A venue exclusively owns its
// sections: deactivating the venue cascades deactivation here.
type Section struct {
	ID           string    `json:"id,omitempty" bson:"_id,omitempty" validate:"omitempty,mongodb"`
	VenueID      string    `json:"venue_id" bson:"venue_id" validate:"required,mongodb"`
	Name         string    `json:"name" bson:"name" validate:"required,min=2,max=100"`
	Sport        string    `json:"sport" bson:"sport" validate:"required,min=2,max=50"`
	PricePerHour float64   `json:"price_per_hour" bson:"price_per_hour" validate:"required,gt=0"`
	Capacity     int       `json:"capacity" bson:"capacity" validate:"required,min=1,max=500"`
	Active       bool      `json:"active" bson:"active"`
	CreatedAt    time.Time `json:"created_at" bson:"created_at" validate:"omitempty"`
}

type SectionUpdate struct {
	Name         string   `json:"name,omitempty" validate:"omitempty,min=2,max=100"`
	Sport        string   `json:"sport,omitempty" validate:"omitempty,min=2,max=50"`
	PricePerHour *float64 `json:"price_per_hour,omitempty" validate:"omitempty,gt=0"`
	Capacity     *int     `json:"capacity,omitempty" validate:"omitempty,min=1,max=500"`
	Active       *bool    `json:"active,omitempty"`
}
