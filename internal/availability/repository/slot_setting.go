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
	SlotSettingCollection = "slot_settings"
)

type SlotSettingRepository interface {
	Create(ctx context.Context, setting *model.SlotSetting) error
	FindByID(ctx context.Context, id string) (*model.SlotSetting, error)
	FindBySection(ctx context.Context, sectionID string, limit, offset int) ([]*model.SlotSetting, error)
	CountBySection(ctx context.Context, sectionID string) (int64, error)
	FindActiveSettings(ctx context.Context, sectionID, weekday string, date time.Time) ([]*model.SlotSetting, error)
	Update(ctx context.Context, id string, setting *model.SlotSetting) error
	Deactivate(ctx context.Context, id string) error
}

type mongoSlotSettingRepository struct {
	cfg        *config.Config
	collection *mongo.Collection
}

func NewMongoSlotSettingRepository(cfg *config.Config) SlotSettingRepository {
	db := cfg.Client.Mongo.Database(cfg.MongoDatabaseName)
	return &mongoSlotSettingRepository{
		cfg:        cfg,
		collection: db.Collection(SlotSettingCollection),
	}
}

// withTimeout wraps the context with a timeout unless it already carries a
// transaction session, which must not be re-wrapped.
func withTimeout(ctx context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	if _, ok := ctx.(mongo.SessionContext); ok {
		return ctx, func() {}
	}
	if _, hasDeadline := ctx.Deadline(); hasDeadline {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, timeout)
}

// weekdayClause matches documents whose day set is empty, absent, or
// contains the weekday label.
func weekdayClause(weekday string) bson.M {
	return bson.M{"$or": []bson.M{
		{"days": weekday},
		{"days": bson.M{"$size": 0}},
		{"days": bson.M{"$exists": false}},
	}}
}

// dateWindowClause matches documents whose optional validity window
// contains the date. Absent bounds are open-ended.
func dateWindowClause(date time.Time) []bson.M {
	return []bson.M{
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
	}
}

func (r *mongoSlotSettingRepository) Create(ctx context.Context, setting *model.SlotSetting) error {
	ctx, cancel := withTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	setting.CreatedAt = time.Now().UTC().Truncate(time.Millisecond)
	result, err := r.collection.InsertOne(ctx, setting)
	if err != nil {
		return fmt.Errorf("failed to create slot setting: %w", err)
	}

	if oid, ok := result.InsertedID.(primitive.ObjectID); ok {
		setting.ID = oid.Hex()
	}
	return nil
}

func (r *mongoSlotSettingRepository) FindByID(ctx context.Context, id string) (*model.SlotSetting, error) {
	ctx, cancel := withTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", availerrors.ErrInvalidID, id)
	}

	var setting model.SlotSetting
	err = r.collection.FindOne(ctx, bson.M{"_id": objectID}).Decode(&setting)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, fmt.Errorf("%w: %s", availerrors.ErrSettingNotFound, id)
		}
		return nil, fmt.Errorf("failed to find slot setting: %w", err)
	}
	return &setting, nil
}

func (r *mongoSlotSettingRepository) FindBySection(ctx context.Context, sectionID string, limit, offset int) ([]*model.SlotSetting, error) {
	ctx, cancel := withTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	opts := options.Find().
		SetLimit(int64(limit)).
		SetSkip(int64(offset)).
		SetSort(bson.D{{Key: "created_at", Value: -1}})

	cursor, err := r.collection.Find(ctx, bson.M{"section_id": sectionID}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to query slot settings: %w", err)
	}
	defer cursor.Close(ctx)

	var settings []*model.SlotSetting
	if err = cursor.All(ctx, &settings); err != nil {
		return nil, fmt.Errorf("failed to decode slot settings: %w", err)
	}
	return settings, nil
}

func (r *mongoSlotSettingRepository) CountBySection(ctx context.Context, sectionID string) (int64, error) {
	ctx, cancel := withTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	count, err := r.collection.CountDocuments(ctx, bson.M{"section_id": sectionID})
	if err != nil {
		return 0, fmt.Errorf("failed to count slot settings: %w", err)
	}
	return count, nil
}

// FindActiveSettings returns the active settings that could govern the
// section on the given day: weekday and validity-window filtering happens
// here, horizon eligibility and tie-breaking stay in the engine.
func (r *mongoSlotSettingRepository) FindActiveSettings(ctx context.Context, sectionID, weekday string, date time.Time) ([]*model.SlotSetting, error) {
	ctx, cancel := withTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	filter := bson.M{
		"section_id": sectionID,
		"active":     true,
		"$and":       append(dateWindowClause(date), weekdayClause(weekday)),
	}

	cursor, err := r.collection.Find(ctx, filter)
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

func (r *mongoSlotSettingRepository) Update(ctx context.Context, id string, setting *model.SlotSetting) error {
	ctx, cancel := withTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return fmt.Errorf("%w: %s", availerrors.ErrInvalidID, id)
	}

	update := bson.M{
		"$set": bson.M{
			"name":                     setting.Name,
			"start_date":               setting.StartDate,
			"end_date":                 setting.EndDate,
			"days":                     setting.Days,
			"timings":                  setting.Timings,
			"slot_duration_min":        setting.SlotDurationMin,
			"price_per_hour":           setting.PricePerHour,
			"day_prices":               setting.DayPrices,
			"max_advance_booking_days": setting.MaxAdvanceBookingDays,
			"active":                   setting.Active,
		},
	}

	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": objectID}, update)
	if err != nil {
		return fmt.Errorf("failed to update slot setting: %w", err)
	}
	if result.MatchedCount == 0 {
		return fmt.Errorf("%w: %s", availerrors.ErrSettingNotFound, id)
	}
	return nil
}

// Deactivate flips the active flag instead of removing the document.
// Bookings keep slot IDs derived from this setting, so it must stay around.
func (r *mongoSlotSettingRepository) Deactivate(ctx context.Context, id string) error {
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
		return fmt.Errorf("failed to deactivate slot setting: %w", err)
	}
	if result.MatchedCount == 0 {
		return fmt.Errorf("%w: %s", availerrors.ErrSettingNotFound, id)
	}
	return nil
}
