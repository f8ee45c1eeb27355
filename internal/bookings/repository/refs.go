package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	bookingerrors "courtside/internal/bookings/errors"
	"courtside/pkg/config"
	"courtside/pkg/model"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// Collections owned by other verticals; the committer only reads them to
// resolve references and pick the governing setting.
const (
	SectionCollection     = "sections"
	VenueCollection       = "venues"
	SlotSettingCollection = "slot_settings"
)

var (
	ErrSectionNotFound = errors.New("section not found")
	ErrVenueNotFound   = errors.New("venue not found")
)

// ReferenceRepository resolves the documents a booking points at.
type ReferenceRepository interface {
	FindSectionByID(ctx context.Context, id string) (*model.Section, error)
	FindVenueByID(ctx context.Context, id string) (*model.Venue, error)
	FindActiveSettings(ctx context.Context, sectionID, weekday string, date time.Time) ([]*model.SlotSetting, error)
}

type mongoReferenceRepository struct {
	cfg      *config.Config
	sections *mongo.Collection
	venues   *mongo.Collection
	settings *mongo.Collection
}

func NewMongoReferenceRepository(cfg *config.Config) ReferenceRepository {
	db := cfg.Client.Mongo.Database(cfg.MongoDatabaseName)
	return &mongoReferenceRepository{
		cfg:      cfg,
		sections: db.Collection(SectionCollection),
		venues:   db.Collection(VenueCollection),
		settings: db.Collection(SlotSettingCollection),
	}
}

func (r *mongoReferenceRepository) FindSectionByID(ctx context.Context, id string) (*model.Section, error) {
	ctx, cancel := withTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", bookingerrors.ErrInvalidID, id)
	}

	var section model.Section
	err = r.sections.FindOne(ctx, bson.M{"_id": objectID}).Decode(&section)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, fmt.Errorf("%w: %s", ErrSectionNotFound, id)
		}
		return nil, fmt.Errorf("failed to find section: %w", err)
	}
	return &section, nil
}

func (r *mongoReferenceRepository) FindVenueByID(ctx context.Context, id string) (*model.Venue, error) {
	ctx, cancel := withTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", bookingerrors.ErrInvalidID, id)
	}

	var venue model.Venue
	err = r.venues.FindOne(ctx, bson.M{"_id": objectID}).Decode(&venue)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, fmt.Errorf("%w: %s", ErrVenueNotFound, id)
		}
		return nil, fmt.Errorf("failed to find venue: %w", err)
	}
	return &venue, nil
}

// FindActiveSettings mirrors the availability service's query so the
// committer resolves the same winning setting the customer was shown.
func (r *mongoReferenceRepository) FindActiveSettings(ctx context.Context, sectionID, weekday string, date time.Time) ([]*model.SlotSetting, error) {
	ctx, cancel := withTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	filter := bson.M{
		"section_id": sectionID,
		"active":     true,
		"$and": []bson.M{
			{"$or": []bson.M{
				{"days": weekday},
				{"days": bson.M{"$size": 0}},
				{"days": bson.M{"$exists": false}},
			}},
			{"$or": []bson.M{
				{"start_date": bson.M{"$exists": false}},
				{"start_date": nil},
				{"start_date": bson.M{"$lte": date}},
			}},
			{"$or": []bson.M{
				{"end_date": bson.M{"$exists": false}},
				{"end_date": nil},
				{"end_date": bson.M{"$gte": date}},
			}},
		},
	}

	cursor, err := r.settings.Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to query active slot settings: %w", err)
	}
	defer cursor.Close(ctx)

	var settings []*model.SlotSetting
	if err = cursor.All(ctx, &settings); err != nil {
		return nil, fmt.Errorf("failed to decode active slot settings: %w", err)
	}
	return settings, nil
}
