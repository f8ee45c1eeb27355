package service

import (
	"context"
	"errors"
	"time"

	"courtside/internal/availability/engine"
	bookingerrors "courtside/internal/bookings/errors"
	"courtside/internal/bookings/events"
	"courtside/internal/bookings/repository"
	"courtside/internal/bookings/validator"
	"courtside/pkg/config"
	apperrors "courtside/pkg/errors"
	"courtside/pkg/model"
	"courtside/pkg/sanitizer"
	"courtside/pkg/timeutil"

	"go.mongodb.org/mongo-driver/mongo"
)

type BookingService interface {
	Create(ctx context.Context, booking *model.Booking) error
	Cancel(ctx context.Context, id string) error
	Complete(ctx context.Context, id string) error
	GetByID(ctx context.Context, id string) (*model.Booking, error)
	ListBySection(ctx context.Context, sectionID, date string, limit, offset int) ([]*model.Booking, int64, error)
}

type bookingService struct {
	repo      repository.BookingRepository
	refs      repository.ReferenceRepository
	validator *validator.BookingValidator
	events    *events.Publisher
	cfg       *config.Config

	// now is swapped out by tests to pin the booking horizon.
	now func() time.Time
}

func NewBookingService(
	repo repository.BookingRepository,
	refs repository.ReferenceRepository,
	validator *validator.BookingValidator,
	events *events.Publisher,
	cfg *config.Config,
) BookingService {
	return &bookingService{
		repo:      repo,
		refs:      refs,
		validator: validator,
		events:    events,
		cfg:       cfg,
		now:       time.Now,
	}
}

// Create commits a reservation. The caller supplies section, user, date and
// start time; everything else is derived from the setting that governs the
// day, exactly as the availability query derives it. The slot-conflict
// check and the insert run inside one transaction, and the partial unique
// index on slot_id backstops the race where two requests pass the check
// together.
func (s *bookingService) Create(ctx context.Context, booking *model.Booking) error {
	if booking == nil {
		return apperrors.InvalidInput("Booking body is required")
	}

	booking.UserID = sanitizer.TrimAndNormalize(booking.UserID)
	booking.Notes = sanitizer.NormalizeReason(booking.Notes)

	if booking.SectionID == "" {
		return apperrors.InvalidInput("Section ID cannot be empty")
	}
	if booking.UserID == "" {
		return apperrors.InvalidInput("User ID cannot be empty")
	}
	if booking.Date.IsZero() {
		return apperrors.InvalidInput("Booking date is required")
	}

	startMin, err := timeutil.ToMinutes(booking.StartTime)
	if err != nil {
		return err
	}

	day := timeutil.Normalize(booking.Date)
	today := timeutil.Normalize(s.now())
	if day.Before(today) {
		return apperrors.PastDate(day)
	}

	section, err := s.refs.FindSectionByID(ctx, booking.SectionID)
	if err != nil {
		if errors.Is(err, repository.ErrSectionNotFound) {
			return apperrors.NotFoundWithID("Section", booking.SectionID)
		}
		if errors.Is(err, bookingerrors.ErrInvalidID) {
			return apperrors.InvalidInput("Invalid section ID format")
		}
		s.cfg.Log.Error("Failed to resolve section", "section_id", booking.SectionID, "error", err)
		return apperrors.Unavailable("Sections store", err)
	}
	if !section.Active {
		return apperrors.Conflict("Section is not open for booking")
	}

	venue, err := s.refs.FindVenueByID(ctx, section.VenueID)
	if err != nil {
		if errors.Is(err, repository.ErrVenueNotFound) {
			return apperrors.NotFoundWithID("Venue", section.VenueID)
		}
		s.cfg.Log.Error("Failed to resolve venue", "venue_id", section.VenueID, "error", err)
		return apperrors.Unavailable("Venues store", err)
	}
	if !venue.Active {
		return apperrors.Conflict("Venue is not open for booking")
	}

	weekday := timeutil.DayOfWeek(day)
	candidates, err := s.refs.FindActiveSettings(ctx, booking.SectionID, weekday, day)
	if err != nil {
		s.cfg.Log.Error("Failed to load slot settings", "section_id", booking.SectionID, "error", err)
		return apperrors.Unavailable("Slot settings store", err)
	}

	setting, err := engine.SelectSetting(booking.SectionID, candidates, day, today)
	if err != nil {
		return err
	}

	// Duration follows the requested window when an end time was given;
	// otherwise the setting's slot duration fills it in.
	duration := setting.SlotDurationMin
	if booking.EndTime != "" {
		requestedEnd, err := timeutil.ToMinutes(booking.EndTime)
		if err != nil {
			return err
		}
		if requestedEnd <= startMin {
			return apperrors.InvalidInput("End time must be after start time")
		}
		duration = requestedEnd - startMin
	}
	endMin := startMin + duration
	if endMin >= timeutil.MinutesPerDay {
		return apperrors.InvalidInput("Requested slot runs past midnight")
	}

	booking.VenueID = section.VenueID
	booking.Date = day
	booking.StartTime = timeutil.FromMinutes(startMin)
	booking.EndTime = timeutil.FromMinutes(endMin)
	booking.DurationMin = duration
	booking.Price = engine.Price(setting, weekday, duration)
	booking.SlotID = model.SlotKey(booking.SectionID, day, booking.StartTime)
	booking.Status = model.BookingConfirmed
	booking.PaymentStatus = model.PaymentCompleted

	if err := s.validator.Validate(booking); err != nil {
		s.cfg.Log.Warn("Booking validation failed",
			"section_id", booking.SectionID,
			"slot_id", booking.SlotID,
			"error", err,
		)
		return apperrors.Validation("Booking validation failed", map[string]any{
			"error": err.Error(),
		})
	}

	err = s.repo.ExecuteTransaction(ctx, func(sessCtx mongo.SessionContext) error {
		_, err := s.repo.FindBySlotID(sessCtx, booking.SlotID, true)
		if err == nil {
			return apperrors.Conflict("Slot is already booked")
		}
		if !errors.Is(err, bookingerrors.ErrNotFound) {
			return apperrors.Internal("Failed to check slot availability", err)
		}

		if err := s.repo.Insert(sessCtx, booking); err != nil {
			if errors.Is(err, bookingerrors.ErrSlotTaken) {
				return apperrors.Conflict("Slot is already booked")
			}
			return apperrors.Internal("Failed to create booking", err)
		}
		return nil
	})
	if err != nil {
		s.cfg.Log.Error("Failed to commit booking",
			"section_id", booking.SectionID,
			"slot_id", booking.SlotID,
			"error", err,
		)
		return err
	}

	s.events.BookingConfirmed(ctx, booking)

	s.cfg.Log.Info("Booking created",
		"id", booking.ID,
		"section_id", booking.SectionID,
		"slot_id", booking.SlotID,
		"user_id", booking.UserID,
		"price", booking.Price,
	)
	return nil
}

// Cancel releases a confirmed booking's slot. Cancelled bookings stay in
// the collection but leave the availability exclusion set, so the slot can
// be booked again.
func (s *bookingService) Cancel(ctx context.Context, id string) error {
	booking, err := s.GetByID(ctx, id)
	if err != nil {
		return err
	}

	switch booking.Status {
	case model.BookingCancelled:
		return apperrors.Conflict("Booking is already cancelled")
	case model.BookingCompleted:
		return apperrors.Conflict("Completed bookings cannot be cancelled")
	}

	if err := s.repo.UpdateStatus(ctx, id, model.BookingCancelled); err != nil {
		if errors.Is(err, bookingerrors.ErrNotFound) {
			return apperrors.NotFoundWithID("Booking", id)
		}
		s.cfg.Log.Error("Failed to cancel booking", "id", id, "error", err)
		return apperrors.Internal("Failed to cancel booking", err)
	}

	booking.Status = model.BookingCancelled
	s.events.BookingCancelled(ctx, booking)

	s.cfg.Log.Info("Booking cancelled", "id", id, "slot_id", booking.SlotID)
	return nil
}

// Complete marks a confirmed booking as fulfilled after the slot was used.
func (s *bookingService) Complete(ctx context.Context, id string) error {
	booking, err := s.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if booking.Status != model.BookingConfirmed {
		return apperrors.Conflict("Only confirmed bookings can be completed")
	}

	if err := s.repo.UpdateStatus(ctx, id, model.BookingCompleted); err != nil {
		if errors.Is(err, bookingerrors.ErrNotFound) {
			return apperrors.NotFoundWithID("Booking", id)
		}
		s.cfg.Log.Error("Failed to complete booking", "id", id, "error", err)
		return apperrors.Internal("Failed to complete booking", err)
	}

	s.cfg.Log.Info("Booking completed", "id", id, "slot_id", booking.SlotID)
	return nil
}

func (s *bookingService) GetByID(ctx context.Context, id string) (*model.Booking, error) {
	if id == "" {
		return nil, apperrors.InvalidInput("Booking ID cannot be empty")
	}

	booking, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, bookingerrors.ErrNotFound) {
			return nil, apperrors.NotFoundWithID("Booking", id)
		}
		if errors.Is(err, bookingerrors.ErrInvalidID) {
			return nil, apperrors.InvalidInput("Invalid booking ID format")
		}
		s.cfg.Log.Error("Failed to get booking", "id", id, "error", err)
		return nil, apperrors.Internal("Failed to retrieve booking", err)
	}
	return booking, nil
}

func (s *bookingService) ListBySection(ctx context.Context, sectionID, date string, limit, offset int) ([]*model.Booking, int64, error) {
	if sectionID == "" {
		return nil, 0, apperrors.InvalidInput("Section ID cannot be empty")
	}

	var day time.Time
	if date != "" {
		parsed, err := timeutil.ParseDate(date)
		if err != nil {
			return nil, 0, err
		}
		day = parsed
	}

	limit = config.NormalizePaginationLimit(limit)
	if offset < 0 {
		offset = 0
	}

	bookings, err := s.repo.FindBySection(ctx, sectionID, day, limit, offset)
	if err != nil {
		s.cfg.Log.Error("Failed to list bookings", "section_id", sectionID, "error", err)
		return nil, 0, apperrors.Internal("Failed to retrieve bookings", err)
	}
	count, err := s.repo.CountBySection(ctx, sectionID, day)
	if err != nil {
		s.cfg.Log.Error("Failed to count bookings", "section_id", sectionID, "error", err)
		return nil, 0, apperrors.Internal("Failed to count bookings", err)
	}
	return bookings, count, nil
}
