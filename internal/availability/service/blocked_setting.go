package service

import (
	"context"
	"errors"

	availerrors "courtside/internal/availability/errors"
	"courtside/pkg/config"
	apperrors "courtside/pkg/errors"
	"courtside/pkg/model"
	"courtside/pkg/sanitizer"
)

func (s *availabilityService) CreateBlockedSetting(ctx context.Context, blocked *model.BlockedSetting) error {
	blocked.Reason = sanitizer.NormalizeReason(blocked.Reason)
	blocked.StartDate = normalizeDatePtr(blocked.StartDate)
	blocked.EndDate = normalizeDatePtr(blocked.EndDate)

	if err := s.validator.ValidateBlocked(blocked); err != nil {
		s.cfg.Log.Warn("Blocked setting validation failed",
			"section_id", blocked.SectionID,
			"reason", blocked.Reason,
			"error", err,
		)
		return apperrors.Validation("Blocked setting validation failed", map[string]any{
			"error": err.Error(),
		})
	}

	if err := s.blocked.Create(ctx, blocked); err != nil {
		s.cfg.Log.Error("Failed to create blocked setting",
			"section_id", blocked.SectionID,
			"error", err,
		)
		return apperrors.Internal("Failed to create blocked setting", err)
	}

	s.cfg.Log.Info("Blocked setting created",
		"id", blocked.ID,
		"section_id", blocked.SectionID,
		"reason", blocked.Reason,
		"whole_day", blocked.BlocksWholeDay(),
	)
	return nil
}

func (s *availabilityService) GetBlockedSettingByID(ctx context.Context, id string) (*model.BlockedSetting, error) {
	if id == "" {
		return nil, apperrors.InvalidInput("Blocked setting ID cannot be empty")
	}

	blocked, err := s.blocked.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, availerrors.ErrBlockedSettingNotFound) {
			return nil, apperrors.NotFoundWithID("Blocked setting", id)
		}
		if errors.Is(err, availerrors.ErrInvalidID) {
			return nil, apperrors.InvalidInput("Invalid blocked setting ID format")
		}
		s.cfg.Log.Error("Failed to get blocked setting", "id", id, "error", err)
		return nil, apperrors.Internal("Failed to retrieve blocked setting", err)
	}
	return blocked, nil
}

func (s *availabilityService) ListBlockedSettingsBySection(ctx context.Context, sectionID string, limit, offset int) ([]*model.BlockedSetting, int64, error) {
	if sectionID == "" {
		return nil, 0, apperrors.InvalidInput("Section ID cannot be empty")
	}
	limit = config.NormalizePaginationLimit(limit)
	if offset < 0 {
		offset = 0
	}

	blocked, err := s.blocked.FindBySection(ctx, sectionID, limit, offset)
	if err != nil {
		s.cfg.Log.Error("Failed to list blocked settings", "section_id", sectionID, "error", err)
		return nil, 0, apperrors.Internal("Failed to retrieve blocked settings", err)
	}
	count, err := s.blocked.CountBySection(ctx, sectionID)
	if err != nil {
		s.cfg.Log.Error("Failed to count blocked settings", "section_id", sectionID, "error", err)
		return nil, 0, apperrors.Internal("Failed to count blocked settings", err)
	}
	return blocked, count, nil
}

func (s *availabilityService) UpdateBlockedSetting(ctx context.Context, id string, updates *model.BlockedSettingUpdate) error {
	if id == "" {
		return apperrors.InvalidInput("Blocked setting ID cannot be empty")
	}

	existing, err := s.blocked.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, availerrors.ErrBlockedSettingNotFound) {
			return apperrors.NotFoundWithID("Blocked setting", id)
		}
		if errors.Is(err, availerrors.ErrInvalidID) {
			return apperrors.InvalidInput("Invalid blocked setting ID format")
		}
		return apperrors.Internal("Failed to check blocked setting existence", err)
	}

	merged := s.mergeBlockedUpdates(existing, updates)
	if err := s.validator.ValidateBlocked(merged); err != nil {
		s.cfg.Log.Warn("Blocked setting validation failed",
			"id", id,
			"error", err,
		)
		return apperrors.Validation("Blocked setting validation failed", map[string]any{
			"error": err.Error(),
		})
	}

	if err := s.blocked.Update(ctx, id, merged); err != nil {
		if errors.Is(err, availerrors.ErrBlockedSettingNotFound) {
			return apperrors.NotFoundWithID("Blocked setting", id)
		}
		s.cfg.Log.Error("Failed to update blocked setting", "id", id, "error", err)
		return apperrors.Internal("Failed to update blocked setting", err)
	}

	s.cfg.Log.Info("Blocked setting updated", "id", id)
	return nil
}

func (s *availabilityService) DeactivateBlockedSetting(ctx context.Context, id string) error {
	if id == "" {
		return apperrors.InvalidInput("Blocked setting ID cannot be empty")
	}

	if err := s.blocked.Deactivate(ctx, id); err != nil {
		if errors.Is(err, availerrors.ErrBlockedSettingNotFound) {
			return apperrors.NotFoundWithID("Blocked setting", id)
		}
		if errors.Is(err, availerrors.ErrInvalidID) {
			return apperrors.InvalidInput("Invalid blocked setting ID format")
		}
		s.cfg.Log.Error("Failed to deactivate blocked setting", "id", id, "error", err)
		return apperrors.Internal("Failed to deactivate blocked setting", err)
	}

	s.cfg.Log.Info("Blocked setting deactivated", "id", id)
	return nil
}

func (s *availabilityService) mergeBlockedUpdates(existing *model.BlockedSetting, updates *model.BlockedSettingUpdate) *model.BlockedSetting {
	merged := *existing

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
	if updates.Reason != "" {
		merged.Reason = sanitizer.NormalizeReason(updates.Reason)
	}
	if updates.Active != nil {
		merged.Active = *updates.Active
	}

	merged.ID = existing.ID
	merged.CreatedAt = existing.CreatedAt
	return &merged
}
