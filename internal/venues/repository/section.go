package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	venueerrors "courtside/internal/venues/errors"
	"courtside/pkg/config"
	"courtside/pkg/model"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	SectionCollection = "sections"
)

type SectionRepository interface {
	Create(ctx context.Context, section *model.Section) error
	FindByID(ctx context.Context, id string) (*model.Section, error)
	FindByVenue(ctx context.Context, venueID string, limit, offset int) ([]*model.Section, error)
	CountByVenue(ctx context.Context, venueID string) (int64, error)
	Update(ctx context.Context, id string, section *model.Section) error
	DeactivateByVenue(ctx context.Context, venueID string) (int64, error)
}

type mongoSectionRepository struct {
	cfg        *config.Config
	collection *mongo.Collection
}

func NewMongoSectionRepository(cfg *config.Config) SectionRepository {
	db := cfg.Client.Mongo.Database(cfg.MongoDatabaseName)
	return &mongoSectionRepository{
		cfg:        cfg,
		collection: db.Collection(SectionCollection),
	}
}

func (r *mongoSectionRepository) Create(ctx context.Context, section *model.Section) error {
	ctx, cancel := withTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	section.CreatedAt = time.Now().UTC().Truncate(time.Millisecond)
	result, err := r.collection.InsertOne(ctx, section)
	if err != nil {
		return fmt.Errorf("failed to create section: %w", err)
	}

	if oid, ok := result.InsertedID.(primitive.ObjectID); ok {
		section.ID = oid.Hex()
	}
	return nil
}

func (r *mongoSectionRepository) FindByID(ctx context.Context, id string) (*model.Section, error) {
	ctx, cancel := withTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", venueerrors.ErrInvalidID, id)
	}

	var section model.Section
	err = r.collection.FindOne(ctx, bson.M{"_id": objectID}).Decode(&section)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, fmt.Errorf("%w: %s", venueerrors.ErrSectionNotFound, id)
		}
		return nil, fmt.Errorf("failed to find section: %w", err)
	}
	return &section, nil
}

func (r *mongoSectionRepository) FindByVenue(ctx context.Context, venueID string, limit, offset int) ([]*model.Section, error) {
	ctx, cancel := withTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	opts := options.Find().
		SetLimit(int64(limit)).
		SetSkip(int64(offset)).
		SetSort(bson.D{{Key: "created_at", Value: -1}})

	cursor, err := r.collection.Find(ctx, bson.M{"venue_id": venueID}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to query sections: %w", err)
	}
	defer cursor.Close(ctx)

	var sections []*model.Section
	if err = cursor.All(ctx, &sections); err != nil {
		return nil, fmt.Errorf("failed to decode sections: %w", err)
	}
	return sections, nil
}

func (r *mongoSectionRepository) CountByVenue(ctx context.Context, venueID string) (int64, error) {
	ctx, cancel := withTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	count, err := r.collection.CountDocuments(ctx, bson.M{"venue_id": venueID})
	if err != nil {
		return 0, fmt.Errorf("failed to count sections: %w", err)
	}
	return count, nil
}

func (r *mongoSectionRepository) Update(ctx context.Context, id string, section *model.Section) error {
	ctx, cancel := withTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return fmt.Errorf("%w: %s", venueerrors.ErrInvalidID, id)
	}

	update := bson.M{
		"$set": bson.M{
			"name":           section.Name,
			"sport":          section.Sport,
			"price_per_hour": section.PricePerHour,
			"capacity":       section.Capacity,
			"active":         section.Active,
		},
	}

	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": objectID}, update)
	if err != nil {
		return fmt.Errorf("failed to update section: %w", err)
	}
	if result.MatchedCount == 0 {
		return fmt.Errorf("%w: %s", venueerrors.ErrSectionNotFound, id)
	}
	return nil
}

// DeactivateByVenue flips every section of a venue inactive. Runs inside
// the venue-deactivation transaction so the venue and its sections change
// together.
func (r *mongoSectionRepository) DeactivateByVenue(ctx context.Context, venueID string) (int64, error) {
	ctx, cancel := withTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	result, err := r.collection.UpdateMany(ctx,
		bson.M{"venue_id": venueID, "active": true},
		bson.M{"$set": bson.M{"active": false}},
	)
	if err != nil {
		return 0, fmt.Errorf("failed to deactivate sections: %w", err)
	}
	return result.ModifiedCount, nil
}
