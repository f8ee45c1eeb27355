package repository

import (
	"context"
	"fmt"
	"time"

	"courtside/pkg/config"
	"courtside/pkg/model"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// BookingCollection is owned by the bookings vertical; this repository only
// reads it to exclude already-taken slots from availability results.
const BookingCollection = "bookings"

type BookingLookupRepository interface {
	FindNonCancelledBookings(ctx context.Context, sectionID string, date time.Time) ([]*model.Booking, error)
}

type mongoBookingLookupRepository struct {
	cfg        *config.Config
	collection *mongo.Collection
}

func NewMongoBookingLookupRepository(cfg *config.Config) BookingLookupRepository {
	db := cfg.Client.Mongo.Database(cfg.MongoDatabaseName)
	return &mongoBookingLookupRepository{
		cfg:        cfg,
		collection: db.Collection(BookingCollection),
	}
}

func (r *mongoBookingLookupRepository) FindNonCancelledBookings(ctx context.Context, sectionID string, date time.Time) ([]*model.Booking, error) {
	ctx, cancel := withTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	filter := bson.M{
		"section_id": sectionID,
		"date":       date,
		"status":     bson.M{"$ne": model.BookingCancelled},
	}

	cursor, err := r.collection.Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to query bookings: %w", err)
	}
	defer cursor.Close(ctx)

	var bookings []*model.Booking
	if err = cursor.All(ctx, &bookings); err != nil {
		return nil, fmt.Errorf("failed to decode bookings: %w", err)
	}
	return bookings, nil
}
