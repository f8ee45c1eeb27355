package service

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	availerrors "courtside/internal/availability/errors"
	apperrors "courtside/pkg/errors"
	"courtside/pkg/model"
)

func TestCreateSetting_AppliesDefaults(t *testing.T) {
	var created *model.SlotSetting
	settings := &fakeSlotSettingRepository{
		createFunc: func(ctx context.Context, setting *model.SlotSetting) error {
			created = setting
			return nil
		},
	}
	svc := newTestService(settings, &fakeBlockedSettingRepository{}, &fakeBookingLookupRepository{}, testNow)

	setting := mondaySetting()
	setting.ID = ""
	setting.SlotDurationMin = 0
	setting.MaxAdvanceBookingDays = 0

	if err := svc.CreateSetting(context.Background(), setting); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if created == nil {
		t.Fatal("repository was not called")
	}
	if created.SlotDurationMin != 60 {
		t.Errorf("duration = %d, want the configured default 60", created.SlotDurationMin)
	}
	if created.MaxAdvanceBookingDays != 30 {
		t.Errorf("horizon = %d, want the configured default 30", created.MaxAdvanceBookingDays)
	}
}

func TestCreateSetting_ValidationFailure(t *testing.T) {
	repoCalled := false
	settings := &fakeSlotSettingRepository{
		createFunc: func(ctx context.Context, setting *model.SlotSetting) error {
			repoCalled = true
			return nil
		},
	}
	svc := newTestService(settings, &fakeBlockedSettingRepository{}, &fakeBookingLookupRepository{}, testNow)

	setting := mondaySetting()
	setting.ID = ""
	setting.Timings = []model.TimeRange{{StartTime: "12:00", EndTime: "09:00"}}

	err := svc.CreateSetting(context.Background(), setting)
	var appErr *apperrors.AppError
	if !errors.As(err, &appErr) || appErr.Code != apperrors.CodeValidation {
		t.Fatalf("expected %s, got %v", apperrors.CodeValidation, err)
	}
	if repoCalled {
		t.Error("invalid setting must never reach the repository")
	}
}

func TestCreateSetting_NormalizesWindowBounds(t *testing.T) {
	var created *model.SlotSetting
	settings := &fakeSlotSettingRepository{
		createFunc: func(ctx context.Context, setting *model.SlotSetting) error {
			created = setting
			return nil
		},
	}
	svc := newTestService(settings, &fakeBlockedSettingRepository{}, &fakeBookingLookupRepository{}, testNow)

	setting := mondaySetting()
	setting.ID = ""
	start := time.Date(2026, 9, 1, 14, 45, 12, 0, time.FixedZone("IST", 2*60*60))
	setting.StartDate = &start

	if err := svc.CreateSetting(context.Background(), setting); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)
	if created.StartDate == nil || !created.StartDate.Equal(want) {
		t.Errorf("start date = %v, want UTC midnight %v", created.StartDate, want)
	}
}

func TestUpdateSetting_MergesOntoExisting(t *testing.T) {
	existing := mondaySetting()
	var updated *model.SlotSetting
	settings := &fakeSlotSettingRepository{
		findByIDFunc: func(ctx context.Context, id string) (*model.SlotSetting, error) {
			return existing, nil
		},
		updateFunc: func(ctx context.Context, id string, setting *model.SlotSetting) error {
			updated = setting
			return nil
		},
	}
	svc := newTestService(settings, &fakeBlockedSettingRepository{}, &fakeBookingLookupRepository{}, testNow)

	newPrice := 250.0
	err := svc.UpdateSetting(context.Background(), existing.ID, &model.SlotSettingUpdate{
		PricePerHour: &newPrice,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if updated.PricePerHour != 250 {
		t.Errorf("price = %v, want 250", updated.PricePerHour)
	}
	if updated.Name != existing.Name || updated.SlotDurationMin != existing.SlotDurationMin {
		t.Error("untouched fields must carry over from the existing setting")
	}
	if !updated.CreatedAt.Equal(existing.CreatedAt) {
		t.Error("CreatedAt must never change on update, it is the tie-break key")
	}
}

func TestDeactivateSetting_RetiresWithoutRemoving(t *testing.T) {
	setting := mondaySetting()
	settings := &fakeSlotSettingRepository{
		deactivateFunc: func(ctx context.Context, id string) error {
			if id != setting.ID {
				t.Errorf("deactivate ID = %s, want %s", id, setting.ID)
			}
			setting.Active = false
			return nil
		},
		findByIDFunc: func(ctx context.Context, id string) (*model.SlotSetting, error) {
			return setting, nil
		},
	}
	svc := newTestService(settings, &fakeBlockedSettingRepository{}, &fakeBookingLookupRepository{}, testNow)

	if err := svc.DeactivateSetting(context.Background(), setting.ID); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// Bookings hold slot IDs derived from the setting, so the document must
	// remain readable after retirement.
	got, err := svc.GetSettingByID(context.Background(), setting.ID)
	if err != nil {
		t.Fatalf("setting must stay readable after deactivation: %v", err)
	}
	if got.Active {
		t.Error("setting must be inactive after deactivation")
	}
}

func TestDeactivateSetting_NotFound(t *testing.T) {
	settings := &fakeSlotSettingRepository{
		deactivateFunc: func(ctx context.Context, id string) error {
			return fmt.Errorf("%w: %s", availerrors.ErrSettingNotFound, id)
		},
	}
	svc := newTestService(settings, &fakeBlockedSettingRepository{}, &fakeBookingLookupRepository{}, testNow)

	err := svc.DeactivateSetting(context.Background(), "64f1a2b3c4d5e6f7a8b9c0ff")
	var appErr *apperrors.AppError
	if !errors.As(err, &appErr) || appErr.Code != apperrors.CodeNotFound {
		t.Fatalf("expected %s, got %v", apperrors.CodeNotFound, err)
	}
}

func TestDeactivateBlockedSetting_RetiresWithoutRemoving(t *testing.T) {
	rule := &model.BlockedSetting{
		ID:        "64f1a2b3c4d5e6f7a8b9c0e5",
		VenueID:   testVenueID,
		SectionID: testSectionID,
		Reason:    "Resurfacing",
		Active:    true,
	}
	blocked := &fakeBlockedSettingRepository{
		deactivateFunc: func(ctx context.Context, id string) error {
			if id != rule.ID {
				t.Errorf("deactivate ID = %s, want %s", id, rule.ID)
			}
			rule.Active = false
			return nil
		},
		findByIDFunc: func(ctx context.Context, id string) (*model.BlockedSetting, error) {
			return rule, nil
		},
	}
	svc := newTestService(&fakeSlotSettingRepository{}, blocked, &fakeBookingLookupRepository{}, testNow)

	if err := svc.DeactivateBlockedSetting(context.Background(), rule.ID); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	got, err := svc.GetBlockedSettingByID(context.Background(), rule.ID)
	if err != nil {
		t.Fatalf("blocked setting must stay readable after deactivation: %v", err)
	}
	if got.Active {
		t.Error("blocked setting must be inactive after deactivation")
	}
}
