package events

import (
	"context"
	"time"

	"courtside/pkg/kafka"
	"courtside/pkg/logger"
	"courtside/pkg/model"
)

const (
	source = "bookings"

	TypeBookingConfirmed = "booking.confirmed"
	TypeBookingCancelled = "booking.cancelled"
)

// BookingEvent is the payload published for every booking state change.
type BookingEvent struct {
	BookingID string    `json:"booking_id"`
	VenueID   string    `json:"venue_id"`
	SectionID string    `json:"section_id"`
	UserID    string    `json:"user_id"`
	SlotID    string    `json:"slot_id"`
	Date      string    `json:"date"`
	StartTime string    `json:"start_time"`
	EndTime   string    `json:"end_time"`
	Price     float64   `json:"price"`
	Status    string    `json:"status"`
	At        time.Time `json:"at"`
}

type producer interface {
	Publish(ctx context.Context, msg kafka.Message) error
}

// Publisher emits booking lifecycle events. Event delivery is best-effort:
// a publish failure is logged and the booking operation still succeeds.
// A nil producer disables publishing, which is how services run without
// Kafka configured.
type Publisher struct {
	producer producer
	log      *logger.Logger
}

func NewPublisher(p *kafka.Producer, log *logger.Logger) *Publisher {
	if p == nil {
		return &Publisher{log: log}
	}
	return &Publisher{producer: p, log: log}
}

func (p *Publisher) BookingConfirmed(ctx context.Context, booking *model.Booking) {
	p.publish(ctx, TypeBookingConfirmed, booking)
}

func (p *Publisher) BookingCancelled(ctx context.Context, booking *model.Booking) {
	p.publish(ctx, TypeBookingCancelled, booking)
}

func (p *Publisher) publish(ctx context.Context, eventType string, booking *model.Booking) {
	if p.producer == nil {
		return
	}

	event := BookingEvent{
		BookingID: booking.ID,
		VenueID:   booking.VenueID,
		SectionID: booking.SectionID,
		UserID:    booking.UserID,
		SlotID:    booking.SlotID,
		Date:      booking.Date.UTC().Format("2006-01-02"),
		StartTime: booking.StartTime,
		EndTime:   booking.EndTime,
		Price:     booking.Price,
		Status:    booking.Status,
		At:        time.Now().UTC(),
	}

	// Events for the same slot share a key, keeping them ordered.
	msg, err := kafka.NewEvent(eventType, source, booking.SlotID, event)
	if err != nil {
		p.log.Error("Failed to encode booking event",
			"event_type", eventType,
			"booking_id", booking.ID,
			"error", err,
		)
		return
	}

	if err := p.producer.Publish(ctx, msg); err != nil {
		p.log.Error("Failed to publish booking event",
			"event_type", eventType,
			"booking_id", booking.ID,
			"slot_id", booking.SlotID,
			"error", err,
		)
		return
	}

	p.log.Debug("Booking event published",
		"event_type", eventType,
		"booking_id", booking.ID,
		"slot_id", booking.SlotID,
	)
}
