package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	availerrors "courtside/internal/availability/errors"
	"courtside/pkg/config"
	"courtside/pkg/model"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	BlockedSettingCollection = "blocked_settings"
)

type BlockedSettingRepository interface {
	Create(ctx context.Context, blocked *model.BlockedSetting) error
	FindByID(ctx context.Context, id string) (*model.BlockedSetting, error)
	FindBySection(ctx context.Context, sectionID string, limit, offset int) ([]*model.BlockedSetting, error)
	CountBySection(ctx context.Context, sectionID string) (int64, error)
	FindActiveBlockedRules(ctx context.Context, venueID, sectionID, weekday string, date time.Time) ([]*model.BlockedSetting, error)
	Update(ctx context.Context, id string, blocked *model.BlockedSetting) error
	Deactivate(ctx context.Context, id string) error
}

type mongoBlockedSettingRepository struct {
	cfg        *config.Config
	collection *mongo.Collection
}

func NewMongoBlockedSettingRepository(cfg *config.Config) BlockedSettingRepository {
	db := cfg.Client.Mongo.Database(cfg.MongoDatabaseName)
	return &mongoBlockedSettingRepository{
		cfg:        cfg,
		collection: db.Collection(BlockedSettingCollection),
	}
}

func (r *mongoBlockedSettingRepository) Create(ctx context.Context, blocked *model.BlockedSetting) error {
	ctx, cancel := withTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	blocked.CreatedAt = time.Now().UTC().Truncate(time.Millisecond)
	result, err := r.collection.InsertOne(ctx, blocked)
	if err != nil {
		return fmt.Errorf("failed to create blocked setting: %w", err)
	}

	if oid, ok := result.InsertedID.(primitive.ObjectID); ok {
		blocked.ID = oid.Hex()
	}
	return nil
}

func (r *mongoBlockedSettingRepository) FindByID(ctx context.Context, id string) (*model.BlockedSetting, error) {
	ctx, cancel := withTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", availerrors.ErrInvalidID, id)
	}

	var blocked model.BlockedSetting
	err = r.collection.FindOne(ctx, bson.M{"_id": objectID}).Decode(&blocked)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, fmt.Errorf("%w: %s", availerrors.ErrBlockedSettingNotFound, id)
		}
		return nil, fmt.Errorf("failed to find blocked setting: %w", err)
	}
	return &blocked, nil
}

func (r *mongoBlockedSettingRepository) FindBySection(ctx context.Context, sectionID string, limit, offset int) ([]*model.BlockedSetting, error) {
	ctx, cancel := withTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	opts := options.Find().
		SetLimit(int64(limit)).
		SetSkip(int64(offset)).
		SetSort(bson.D{{Key: "created_at", Value: -1}})

	cursor, err := r.collection.Find(ctx, bson.M{"section_id": sectionID}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to query blocked settings: %w", err)
	}
	defer cursor.Close(ctx)

	var blocked []*model.BlockedSetting
	if err = cursor.All(ctx, &blocked); err != nil {
		return nil, fmt.Errorf("failed to decode blocked settings: %w", err)
	}
	return blocked, nil
}

func (r *mongoBlockedSettingRepository) CountBySection(ctx context.Context, sectionID string) (int64, error) {
	ctx, cancel := withTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	count, err := r.collection.CountDocuments(ctx, bson.M{"section_id": sectionID})
	if err != nil {
		return 0, fmt.Errorf("failed to count blocked settings: %w", err)
	}
	return count, nil
}

// FindActiveBlockedRules returns the active blackout rules hitting the
// section on the given day. Weekday and validity-window filtering happens
// here; overlap arithmetic stays in the engine.
func (r *mongoBlockedSettingRepository) FindActiveBlockedRules(ctx context.Context, venueID, sectionID, weekday string, date time.Time) ([]*model.BlockedSetting, error) {
	ctx, cancel := withTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	filter := bson.M{
		"venue_id":   venueID,
		"section_id": sectionID,
		"active":     true,
		"$and":       append(dateWindowClause(date), weekdayClause(weekday)),
	}

	cursor, err := r.collection.Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to query blocked rules: %w", err)
	}
	defer cursor.Close(ctx)

	var blocked []*model.BlockedSetting
	if err = cursor.All(ctx, &blocked); err != nil {
		return nil, fmt.Errorf("failed to decode blocked rules: %w", err)
	}
	return blocked, nil
}

func (r *mongoBlockedSettingRepository) Update(ctx context.Context, id string, blocked *model.BlockedSetting) error {
	ctx, cancel := withTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return fmt.Errorf("%w: %s", availerrors.ErrInvalidID, id)
	}

	update := bson.M{
		"$set": bson.M{
			"start_date": blocked.StartDate,
			"end_date":   blocked.EndDate,
			"days":       blocked.Days,
			"timings":    blocked.Timings,
			"reason":     blocked.Reason,
			"active":     blocked.Active,
		},
	}

	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": objectID}, update)
	if err != nil {
		return fmt.Errorf("failed to update blocked setting: %w", err)
	}
	if result.MatchedCount == 0 {
		return fmt.Errorf("%w: %s", availerrors.ErrBlockedSettingNotFound, id)
	}
	return nil
}

// Deactivate flips the active flag instead of removing the document, the
// same lifecycle slot settings follow.
func (r *mongoBlockedSettingRepository) Deactivate(ctx context.Context, id string) error {
	ctx, cancel := withTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return fmt.Errorf("%w: %s", availerrors.ErrInvalidID, id)
	}

	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": objectID}, bson.M{
		"$set": bson.M{"active": false},
	})
	if err != nil {
		return fmt.Errorf("failed to deactivate blocked setting: %w", err)
	}
	if result.MatchedCount == 0 {
		return fmt.Errorf("%w: %s", availerrors.ErrBlockedSettingNotFound, id)
	}
	return nil
}
