package service

import (
	"context"
	"errors"

	venueerrors "courtside/internal/venues/errors"
	"courtside/internal/venues/repository"
	"courtside/internal/venues/validator"
	"courtside/pkg/config"
	apperrors "courtside/pkg/errors"
	"courtside/pkg/model"
	"courtside/pkg/sanitizer"

	"go.mongodb.org/mongo-driver/mongo"
)

type VenueService interface {
	Create(ctx context.Context, venue *model.Venue) error
	GetByID(ctx context.Context, id string) (*model.Venue, error)
	GetAll(ctx context.Context, limit, offset int) ([]*model.Venue, int64, error)
	Update(ctx context.Context, id string, updates *model.VenueUpdate) error
	Deactivate(ctx context.Context, id string) error

	CreateSection(ctx context.Context, section *model.Section) error
	GetSectionByID(ctx context.Context, id string) (*model.Section, error)
	ListSectionsByVenue(ctx context.Context, venueID string, limit, offset int) ([]*model.Section, int64, error)
	UpdateSection(ctx context.Context, id string, updates *model.SectionUpdate) error
}

type venueService struct {
	venues    repository.VenueRepository
	sections  repository.SectionRepository
	validator *validator.VenueValidator
	cfg       *config.Config
}

func NewVenueService(
	venues repository.VenueRepository,
	sections repository.SectionRepository,
	validator *validator.VenueValidator,
	cfg *config.Config,
) VenueService {
	return &venueService{
		venues:    venues,
		sections:  sections,
		validator: validator,
		cfg:       cfg,
	}
}

func (s *venueService) Create(ctx context.Context, venue *model.Venue) error {
	venue.Name = sanitizer.NormalizeName(venue.Name)
	venue.OwnerID = sanitizer.TrimAndNormalize(venue.OwnerID)
	for i, sport := range venue.Sports {
		venue.Sports[i] = sanitizer.NormalizeLabel(sport)
	}
	venue.Active = true

	if err := s.validator.Validate(venue); err != nil {
		s.cfg.Log.Warn("Venue validation failed",
			"name", venue.Name,
			"owner_id", venue.OwnerID,
			"error", err,
		)
		return apperrors.Validation("Venue validation failed", map[string]any{
			"error": err.Error(),
		})
	}

	if err := s.venues.Create(ctx, venue); err != nil {
		s.cfg.Log.Error("Failed to create venue", "name", venue.Name, "error", err)
		return apperrors.Internal("Failed to create venue", err)
	}

	s.cfg.Log.Info("Venue created", "id", venue.ID, "name", venue.Name, "owner_id", venue.OwnerID)
	return nil
}

func (s *venueService) GetByID(ctx context.Context, id string) (*model.Venue, error) {
	if id == "" {
		return nil, apperrors.InvalidInput("Venue ID cannot be empty")
	}

	venue, err := s.venues.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, venueerrors.ErrVenueNotFound) {
			return nil, apperrors.NotFoundWithID("Venue", id)
		}
		if errors.Is(err, venueerrors.ErrInvalidID) {
			return nil, apperrors.InvalidInput("Invalid venue ID format")
		}
		s.cfg.Log.Error("Failed to get venue", "id", id, "error", err)
		return nil, apperrors.Internal("Failed to retrieve venue", err)
	}
	return venue, nil
}

func (s *venueService) GetAll(ctx context.Context, limit, offset int) ([]*model.Venue, int64, error) {
	limit = config.NormalizePaginationLimit(limit)
	if offset < 0 {
		offset = 0
	}

	venues, err := s.venues.FindAll(ctx, limit, offset)
	if err != nil {
		s.cfg.Log.Error("Failed to list venues", "error", err)
		return nil, 0, apperrors.Internal("Failed to retrieve venues", err)
	}
	count, err := s.venues.Count(ctx)
	if err != nil {
		s.cfg.Log.Error("Failed to count venues", "error", err)
		return nil, 0, apperrors.Internal("Failed to count venues", err)
	}
	return venues, count, nil
}

func (s *venueService) Update(ctx context.Context, id string, updates *model.VenueUpdate) error {
	if id == "" {
		return apperrors.InvalidInput("Venue ID cannot be empty")
	}

	existing, err := s.GetByID(ctx, id)
	if err != nil {
		return err
	}

	// Deactivation cascades to sections; route it through Deactivate so the
	// transaction is never skipped.
	if updates.Active != nil && !*updates.Active && existing.Active {
		return apperrors.InvalidInput("Use the deactivate endpoint to deactivate a venue")
	}

	merged := s.mergeVenueUpdates(existing, updates)
	if err := s.validator.Validate(merged); err != nil {
		s.cfg.Log.Warn("Venue validation failed", "id", id, "error", err)
		return apperrors.Validation("Venue validation failed", map[string]any{
			"error": err.Error(),
		})
	}

	if err := s.venues.Update(ctx, id, merged); err != nil {
		if errors.Is(err, venueerrors.ErrVenueNotFound) {
			return apperrors.NotFoundWithID("Venue", id)
		}
		s.cfg.Log.Error("Failed to update venue", "id", id, "error", err)
		return apperrors.Internal("Failed to update venue", err)
	}

	s.cfg.Log.Info("Venue updated", "id", id, "name", merged.Name)
	return nil
}

// Deactivate soft-deletes a venue and all of its sections in a single
// transaction. Venues are never hard-deleted: bookings and settings keep
// referencing them.
func (s *venueService) Deactivate(ctx context.Context, id string) error {
	venue, err := s.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if !venue.Active {
		return apperrors.Conflict("Venue is already inactive")
	}

	var deactivatedSections int64
	err = s.venues.ExecuteTransaction(ctx, func(sessCtx mongo.SessionContext) error {
		venue.Active = false
		if err := s.venues.Update(sessCtx, id, venue); err != nil {
			return apperrors.Internal("Failed to deactivate venue", err)
		}
		n, err := s.sections.DeactivateByVenue(sessCtx, id)
		if err != nil {
			return apperrors.Internal("Failed to deactivate venue sections", err)
		}
		deactivatedSections = n
		return nil
	})
	if err != nil {
		s.cfg.Log.Error("Failed to deactivate venue", "id", id, "error", err)
		return err
	}

	s.cfg.Log.Info("Venue deactivated",
		"id", id,
		"name", venue.Name,
		"sections_deactivated", deactivatedSections,
	)
	return nil
}

func (s *venueService) CreateSection(ctx context.Context, section *model.Section) error {
	section.Name = sanitizer.NormalizeName(section.Name)
	section.Sport = sanitizer.NormalizeLabel(section.Sport)
	section.Active = true

	venue, err := s.GetByID(ctx, section.VenueID)
	if err != nil {
		return err
	}
	if !venue.Active {
		return apperrors.Conflict("Cannot add sections to an inactive venue")
	}

	if err := s.validator.ValidateSection(section, venue); err != nil {
		s.cfg.Log.Warn("Section validation failed",
			"name", section.Name,
			"venue_id", section.VenueID,
			"error", err,
		)
		return apperrors.Validation("Section validation failed", map[string]any{
			"error": err.Error(),
		})
	}

	if err := s.sections.Create(ctx, section); err != nil {
		s.cfg.Log.Error("Failed to create section", "name", section.Name, "error", err)
		return apperrors.Internal("Failed to create section", err)
	}

	s.cfg.Log.Info("Section created",
		"id", section.ID,
		"name", section.Name,
		"venue_id", section.VenueID,
		"sport", section.Sport,
	)
	return nil
}

func (s *venueService) GetSectionByID(ctx context.Context, id string) (*model.Section, error) {
	if id == "" {
		return nil, apperrors.InvalidInput("Section ID cannot be empty")
	}

	section, err := s.sections.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, venueerrors.ErrSectionNotFound) {
			return nil, apperrors.NotFoundWithID("Section", id)
		}
		if errors.Is(err, venueerrors.ErrInvalidID) {
			return nil, apperrors.InvalidInput("Invalid section ID format")
		}
		s.cfg.Log.Error("Failed to get section", "id", id, "error", err)
		return nil, apperrors.Internal("Failed to retrieve section", err)
	}
	return section, nil
}

func (s *venueService) ListSectionsByVenue(ctx context.Context, venueID string, limit, offset int) ([]*model.Section, int64, error) {
	if venueID == "" {
		return nil, 0, apperrors.InvalidInput("Venue ID cannot be empty")
	}
	limit = config.NormalizePaginationLimit(limit)
	if offset < 0 {
		offset = 0
	}

	sections, err := s.sections.FindByVenue(ctx, venueID, limit, offset)
	if err != nil {
		s.cfg.Log.Error("Failed to list sections", "venue_id", venueID, "error", err)
		return nil, 0, apperrors.Internal("Failed to retrieve sections", err)
	}
	count, err := s.sections.CountByVenue(ctx, venueID)
	if err != nil {
		s.cfg.Log.Error("Failed to count sections", "venue_id", venueID, "error", err)
		return nil, 0, apperrors.Internal("Failed to count sections", err)
	}
	return sections, count, nil
}

func (s *venueService) UpdateSection(ctx context.Context, id string, updates *model.SectionUpdate) error {
	if id == "" {
		return apperrors.InvalidInput("Section ID cannot be empty")
	}

	existing, err := s.GetSectionByID(ctx, id)
	if err != nil {
		return err
	}
	venue, err := s.GetByID(ctx, existing.VenueID)
	if err != nil {
		return err
	}

	merged := s.mergeSectionUpdates(existing, updates)
	if err := s.validator.ValidateSection(merged, venue); err != nil {
		s.cfg.Log.Warn("Section validation failed", "id", id, "error", err)
		return apperrors.Validation("Section validation failed", map[string]any{
			"error": err.Error(),
		})
	}

	if err := s.sections.Update(ctx, id, merged); err != nil {
		if errors.Is(err, venueerrors.ErrSectionNotFound) {
			return apperrors.NotFoundWithID("Section", id)
		}
		s.cfg.Log.Error("Failed to update section", "id", id, "error", err)
		return apperrors.Internal("Failed to update section", err)
	}

	s.cfg.Log.Info("Section updated", "id", id, "name", merged.Name)
	return nil
}

func (s *venueService) mergeVenueUpdates(existing *model.Venue, updates *model.VenueUpdate) *model.Venue {
	merged := *existing

	if updates.Name != "" {
		merged.Name = sanitizer.NormalizeName(updates.Name)
	}
	if updates.OpeningTime != "" {
		merged.OpeningTime = updates.OpeningTime
	}
	if updates.ClosingTime != "" {
		merged.ClosingTime = updates.ClosingTime
	}
	if updates.Sports != nil {
		sports := make([]string, len(updates.Sports))
		for i, sport := range updates.Sports {
			sports[i] = sanitizer.NormalizeLabel(sport)
		}
		merged.Sports = sports
	}
	if updates.Active != nil {
		merged.Active = *updates.Active
	}

	merged.ID = existing.ID
	merged.OwnerID = existing.OwnerID
	merged.CreatedAt = existing.CreatedAt
	return &merged
}

func (s *venueService) mergeSectionUpdates(existing *model.Section, updates *model.SectionUpdate) *model.Section {
	merged := *existing

	if updates.Name != "" {
		merged.Name = sanitizer.NormalizeName(updates.Name)
	}
	if updates.Sport != "" {
		merged.Sport = sanitizer.NormalizeLabel(updates.Sport)
	}
	if updates.PricePerHour != nil {
		merged.PricePerHour = *updates.PricePerHour
	}
	if updates.Capacity != nil {
		merged.Capacity = *updates.Capacity
	}
	if updates.Active != nil {
		merged.Active = *updates.Active
	}

	merged.ID = existing.ID
	merged.VenueID = existing.VenueID
	merged.CreatedAt = existing.CreatedAt
	return &merged
}
