package service

import (
	"context"
	"time"

	"courtside/internal/availability/engine"
	"courtside/internal/availability/repository"
	"courtside/internal/availability/validator"
	"courtside/pkg/config"
	apperrors "courtside/pkg/errors"
	"courtside/pkg/model"
	"courtside/pkg/timeutil"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type AvailabilityService interface {
	GetAvailableSlots(ctx context.Context, sectionID, date string) (*model.Availability, error)

	CreateSetting(ctx context.Context, setting *model.SlotSetting) error
	GetSettingByID(ctx context.Context, id string) (*model.SlotSetting, error)
	ListSettingsBySection(ctx context.Context, sectionID string, limit, offset int) ([]*model.SlotSetting, int64, error)
	UpdateSetting(ctx context.Context, id string, updates *model.SlotSettingUpdate) error
	DeactivateSetting(ctx context.Context, id string) error

	CreateBlockedSetting(ctx context.Context, blocked *model.BlockedSetting) error
	GetBlockedSettingByID(ctx context.Context, id string) (*model.BlockedSetting, error)
	ListBlockedSettingsBySection(ctx context.Context, sectionID string, limit, offset int) ([]*model.BlockedSetting, int64, error)
	UpdateBlockedSetting(ctx context.Context, id string, updates *model.BlockedSettingUpdate) error
	DeactivateBlockedSetting(ctx context.Context, id string) error
}

type availabilityService struct {
	settings  repository.SlotSettingRepository
	blocked   repository.BlockedSettingRepository
	bookings  repository.BookingLookupRepository
	validator *validator.SettingValidator
	cfg       *config.Config

	// now is swapped out by tests to pin the booking horizon.
	now func() time.Time
}

func NewAvailabilityService(
	settings repository.SlotSettingRepository,
	blocked repository.BlockedSettingRepository,
	bookings repository.BookingLookupRepository,
	validator *validator.SettingValidator,
	cfg *config.Config,
) AvailabilityService {
	return &availabilityService{
		settings:  settings,
		blocked:   blocked,
		bookings:  bookings,
		validator: validator,
		cfg:       cfg,
		now:       time.Now,
	}
}

// GetAvailableSlots computes the bookable slots for a section on a day.
// The result is derived on every call: the winning setting is expanded into
// candidate slots, blackout rules drop candidates, and slots already held
// by a non-cancelled booking are excluded. When everything was blocked, the
// first blocking reason is reported so an empty answer can be explained.
func (s *availabilityService) GetAvailableSlots(ctx context.Context, sectionID, date string) (*model.Availability, error) {
	if sectionID == "" {
		return nil, apperrors.InvalidInput("Section ID cannot be empty")
	}
	if _, err := primitive.ObjectIDFromHex(sectionID); err != nil {
		return nil, apperrors.InvalidInput("Invalid section ID format")
	}

	day, err := timeutil.ParseDate(date)
	if err != nil {
		return nil, err
	}

	today := timeutil.Normalize(s.now())
	if day.Before(today) {
		return nil, apperrors.PastDate(day)
	}

	weekday := timeutil.DayOfWeek(day)

	candidates, err := s.settings.FindActiveSettings(ctx, sectionID, weekday, day)
	if err != nil {
		s.cfg.Log.Error("Failed to load slot settings",
			"section_id", sectionID,
			"date", date,
			"error", err,
		)
		return nil, apperrors.Unavailable("Slot settings store", err)
	}

	winner, err := engine.SelectSetting(sectionID, candidates, day, today)
	if err != nil {
		return nil, err
	}

	rules, err := s.blocked.FindActiveBlockedRules(ctx, winner.VenueID, sectionID, weekday, day)
	if err != nil {
		s.cfg.Log.Error("Failed to load blocked rules",
			"section_id", sectionID,
			"date", date,
			"error", err,
		)
		return nil, apperrors.Unavailable("Blocked settings store", err)
	}

	gen := engine.Generate(winner, day, engine.NewBlackoutResolver(rules))

	booked, err := s.bookings.FindNonCancelledBookings(ctx, sectionID, day)
	if err != nil {
		s.cfg.Log.Error("Failed to load bookings for exclusion",
			"section_id", sectionID,
			"date", date,
			"error", err,
		)
		return nil, apperrors.Unavailable("Bookings store", err)
	}

	taken := make(map[string]struct{}, len(booked))
	for _, b := range booked {
		taken[b.SlotID] = struct{}{}
	}

	slots := make([]model.Slot, 0, len(gen.Slots))
	for _, slot := range gen.Slots {
		if _, held := taken[slot.SlotID]; held {
			continue
		}
		slots = append(slots, slot)
	}

	availability := &model.Availability{
		SectionID: sectionID,
		Date:      day,
		Slots:     slots,
	}
	if len(slots) == 0 {
		availability.BlockedReason = gen.BlockedReason
	}

	s.cfg.Log.Debug("Availability computed",
		"section_id", sectionID,
		"date", date,
		"setting", winner.Name,
		"generated", len(gen.Slots),
		"available", len(slots),
	)
	return availability, nil
}
