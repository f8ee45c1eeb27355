package service

import (
	"context"
	"errors"
	"time"

	availerrors "courtside/internal/availability/errors"
	"courtside/pkg/config"
	apperrors "courtside/pkg/errors"
	"courtside/pkg/model"
	"courtside/pkg/sanitizer"
	"courtside/pkg/timeutil"
)

func (s *availabilityService) CreateSetting(ctx context.Context, setting *model.SlotSetting) error {
	setting.Name = sanitizer.NormalizeName(setting.Name)
	s.applySettingDefaults(setting)
	setting.StartDate = normalizeDatePtr(setting.StartDate)
	setting.EndDate = normalizeDatePtr(setting.EndDate)

	if err := s.validator.Validate(setting); err != nil {
		s.cfg.Log.Warn("Slot setting validation failed",
			"name", setting.Name,
			"section_id", setting.SectionID,
			"error", err,
		)
		return apperrors.Validation("Slot setting validation failed", map[string]any{
			"error": err.Error(),
		})
	}

	if err := s.settings.Create(ctx, setting); err != nil {
		s.cfg.Log.Error("Failed to create slot setting",
			"name", setting.Name,
			"section_id", setting.SectionID,
			"error", err,
		)
		return apperrors.Internal("Failed to create slot setting", err)
	}

	s.cfg.Log.Info("Slot setting created",
		"id", setting.ID,
		"name", setting.Name,
		"section_id", setting.SectionID,
	)
	return nil
}

func (s *availabilityService) GetSettingByID(ctx context.Context, id string) (*model.SlotSetting, error) {
	if id == "" {
		return nil, apperrors.InvalidInput("Slot setting ID cannot be empty")
	}

	setting, err := s.settings.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, availerrors.ErrSettingNotFound) {
			return nil, apperrors.NotFoundWithID("Slot setting", id)
		}
		if errors.Is(err, availerrors.ErrInvalidID) {
			return nil, apperrors.InvalidInput("Invalid slot setting ID format")
		}
		s.cfg.Log.Error("Failed to get slot setting", "id", id, "error", err)
		return nil, apperrors.Internal("Failed to retrieve slot setting", err)
	}
	return setting, nil
}

func (s *availabilityService) ListSettingsBySection(ctx context.Context, sectionID string, limit, offset int) ([]*model.SlotSetting, int64, error) {
	if sectionID == "" {
		return nil, 0, apperrors.InvalidInput("Section ID cannot be empty")
	}
	limit = config.NormalizePaginationLimit(limit)
	if offset < 0 {
		offset = 0
	}

	settings, err := s.settings.FindBySection(ctx, sectionID, limit, offset)
	if err != nil {
		s.cfg.Log.Error("Failed to list slot settings", "section_id", sectionID, "error", err)
		return nil, 0, apperrors.Internal("Failed to retrieve slot settings", err)
	}
	count, err := s.settings.CountBySection(ctx, sectionID)
	if err != nil {
		s.cfg.Log.Error("Failed to count slot settings", "section_id", sectionID, "error", err)
		return nil, 0, apperrors.Internal("Failed to count slot settings", err)
	}
	return settings, count, nil
}

func (s *availabilityService) UpdateSetting(ctx context.Context, id string, updates *model.SlotSettingUpdate) error {
	if id == "" {
		return apperrors.InvalidInput("Slot setting ID cannot be empty")
	}

	existing, err := s.settings.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, availerrors.ErrSettingNotFound) {
			return apperrors.NotFoundWithID("Slot setting", id)
		}
		if errors.Is(err, availerrors.ErrInvalidID) {
			return apperrors.InvalidInput("Invalid slot setting ID format")
		}
		return apperrors.Internal("Failed to check slot setting existence", err)
	}

	merged := s.mergeSettingUpdates(existing, updates)
	if err := s.validator.Validate(merged); err != nil {
		s.cfg.Log.Warn("Slot setting validation failed",
			"id", id,
			"name", merged.Name,
			"error", err,
		)
		return apperrors.Validation("Slot setting validation failed", map[string]any{
			"error": err.Error(),
		})
	}

	if err := s.settings.Update(ctx, id, merged); err != nil {
		if errors.Is(err, availerrors.ErrSettingNotFound) {
			return apperrors.NotFoundWithID("Slot setting", id)
		}
		s.cfg.Log.Error("Failed to update slot setting", "id", id, "error", err)
		return apperrors.Internal("Failed to update slot setting", err)
	}

	s.cfg.Log.Info("Slot setting updated", "id", id, "name", merged.Name)
	return nil
}

// DeactivateSetting retires a setting without removing it. Existing bookings
// reference slot IDs derived from it, so documents are never dropped.
func (s *availabilityService) DeactivateSetting(ctx context.Context, id string) error {
	if id == "" {
		return apperrors.InvalidInput("Slot setting ID cannot be empty")
	}

	if err := s.settings.Deactivate(ctx, id); err != nil {
		if errors.Is(err, availerrors.ErrSettingNotFound) {
			return apperrors.NotFoundWithID("Slot setting", id)
		}
		if errors.Is(err, availerrors.ErrInvalidID) {
			return apperrors.InvalidInput("Invalid slot setting ID format")
		}
		s.cfg.Log.Error("Failed to deactivate slot setting", "id", id, "error", err)
		return apperrors.Internal("Failed to deactivate slot setting", err)
	}

	s.cfg.Log.Info("Slot setting deactivated", "id", id)
	return nil
}

func (s *availabilityService) applySettingDefaults(setting *model.SlotSetting) {
	if setting.SlotDurationMin == 0 {
		setting.SlotDurationMin = s.cfg.DefaultSlotDurationMin
	}
	if setting.MaxAdvanceBookingDays == 0 {
		setting.MaxAdvanceBookingDays = s.cfg.DefaultMaxAdvanceBookingDays
	}
}

// normalizeDatePtr truncates an optional window bound to UTC midnight so
// window containment compares whole days only.
func normalizeDatePtr(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	n := timeutil.Normalize(*t)
	return &n
}

func (s *availabilityService) mergeSettingUpdates(existing *model.SlotSetting, updates *model.SlotSettingUpdate) *model.SlotSetting {
	merged := *existing

	if updates.Name != "" {
		merged.Name = sanitizer.NormalizeName(updates.Name)
	}
	if updates.StartDate != nil {
		merged.StartDate = normalizeDatePtr(updates.StartDate)
	}
	if updates.EndDate != nil {
		merged.EndDate = normalizeDatePtr(updates.EndDate)
	}
	if updates.Days != nil {
		merged.Days = *updates.Days
	}
	if updates.Timings != nil {
		merged.Timings = *updates.Timings
	}
	if updates.SlotDurationMin != nil {
		merged.SlotDurationMin = *updates.SlotDurationMin
	}
	if updates.PricePerHour != nil {
		merged.PricePerHour = *updates.PricePerHour
	}
	if updates.DayPrices != nil {
		merged.DayPrices = *updates.DayPrices
	}
	if updates.MaxAdvanceBookingDays != nil {
		merged.MaxAdvanceBookingDays = *updates.MaxAdvanceBookingDays
	}
	if updates.Active != nil {
		merged.Active = *updates.Active
	}

	merged.ID = existing.ID
	merged.CreatedAt = existing.CreatedAt
	return &merged
}
