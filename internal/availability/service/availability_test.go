package service

import (
	"context"
	"errors"
	"io"
	"reflect"
	"testing"
	"time"

	"courtside/internal/availability/validator"
	"courtside/pkg/config"
	apperrors "courtside/pkg/errors"
	"courtside/pkg/logger"
	"courtside/pkg/model"
)

const (
	testVenueID   = "64f1a2b3c4d5e6f7a8b9c0d0"
	testSectionID = "64f1a2b3c4d5e6f7a8b9c0d1"
)

type fakeSlotSettingRepository struct {
	createFunc             func(ctx context.Context, setting *model.SlotSetting) error
	findByIDFunc           func(ctx context.Context, id string) (*model.SlotSetting, error)
	findBySectionFunc      func(ctx context.Context, sectionID string, limit, offset int) ([]*model.SlotSetting, error)
	countBySectionFunc     func(ctx context.Context, sectionID string) (int64, error)
	findActiveSettingsFunc func(ctx context.Context, sectionID, weekday string, date time.Time) ([]*model.SlotSetting, error)
	updateFunc             func(ctx context.Context, id string, setting *model.SlotSetting) error
	deactivateFunc         func(ctx context.Context, id string) error
}

func (f *fakeSlotSettingRepository) Create(ctx context.Context, setting *model.SlotSetting) error {
	if f.createFunc != nil {
		return f.createFunc(ctx, setting)
	}
	return nil
}

func (f *fakeSlotSettingRepository) FindByID(ctx context.Context, id string) (*model.SlotSetting, error) {
	if f.findByIDFunc != nil {
		return f.findByIDFunc(ctx, id)
	}
	return nil, nil
}

func (f *fakeSlotSettingRepository) FindBySection(ctx context.Context, sectionID string, limit, offset int) ([]*model.SlotSetting, error) {
	if f.findBySectionFunc != nil {
		return f.findBySectionFunc(ctx, sectionID, limit, offset)
	}
	return nil, nil
}

func (f *fakeSlotSettingRepository) CountBySection(ctx context.Context, sectionID string) (int64, error) {
	if f.countBySectionFunc != nil {
		return f.countBySectionFunc(ctx, sectionID)
	}
	return 0, nil
}

func (f *fakeSlotSettingRepository) FindActiveSettings(ctx context.Context, sectionID, weekday string, date time.Time) ([]*model.SlotSetting, error) {
	if f.findActiveSettingsFunc != nil {
		return f.findActiveSettingsFunc(ctx, sectionID, weekday, date)
	}
	return nil, nil
}

func (f *fakeSlotSettingRepository) Update(ctx context.Context, id string, setting *model.SlotSetting) error {
	if f.updateFunc != nil {
		return f.updateFunc(ctx, id, setting)
	}
	return nil
}

func (f *fakeSlotSettingRepository) Deactivate(ctx context.Context, id string) error {
	if f.deactivateFunc != nil {
		return f.deactivateFunc(ctx, id)
	}
	return nil
}

type fakeBlockedSettingRepository struct {
	createFunc                 func(ctx context.Context, blocked *model.BlockedSetting) error
	findByIDFunc               func(ctx context.Context, id string) (*model.BlockedSetting, error)
	findBySectionFunc          func(ctx context.Context, sectionID string, limit, offset int) ([]*model.BlockedSetting, error)
	countBySectionFunc         func(ctx context.Context, sectionID string) (int64, error)
	findActiveBlockedRulesFunc func(ctx context.Context, venueID, sectionID, weekday string, date time.Time) ([]*model.BlockedSetting, error)
	updateFunc                 func(ctx context.Context, id string, blocked *model.BlockedSetting) error
	deactivateFunc             func(ctx context.Context, id string) error
}

func (f *fakeBlockedSettingRepository) Create(ctx context.Context, blocked *model.BlockedSetting) error {
	if f.createFunc != nil {
		return f.createFunc(ctx, blocked)
	}
	return nil
}

func (f *fakeBlockedSettingRepository) FindByID(ctx context.Context, id string) (*model.BlockedSetting, error) {
	if f.findByIDFunc != nil {
		return f.findByIDFunc(ctx, id)
	}
	return nil, nil
}

func (f *fakeBlockedSettingRepository) FindBySection(ctx context.Context, sectionID string, limit, offset int) ([]*model.BlockedSetting, error) {
	if f.findBySectionFunc != nil {
		return f.findBySectionFunc(ctx, sectionID, limit, offset)
	}
	return nil, nil
}

func (f *fakeBlockedSettingRepository) CountBySection(ctx context.Context, sectionID string) (int64, error) {
	if f.countBySectionFunc != nil {
		return f.countBySectionFunc(ctx, sectionID)
	}
	return 0, nil
}

func (f *fakeBlockedSettingRepository) FindActiveBlockedRules(ctx context.Context, venueID, sectionID, weekday string, date time.Time) ([]*model.BlockedSetting, error) {
	if f.findActiveBlockedRulesFunc != nil {
		return f.findActiveBlockedRulesFunc(ctx, venueID, sectionID, weekday, date)
	}
	return nil, nil
}

func (f *fakeBlockedSettingRepository) Update(ctx context.Context, id string, blocked *model.BlockedSetting) error {
	if f.updateFunc != nil {
		return f.updateFunc(ctx, id, blocked)
	}
	return nil
}

func (f *fakeBlockedSettingRepository) Deactivate(ctx context.Context, id string) error {
	if f.deactivateFunc != nil {
		return f.deactivateFunc(ctx, id)
	}
	return nil
}

type fakeBookingLookupRepository struct {
	findNonCancelledFunc func(ctx context.Context, sectionID string, date time.Time) ([]*model.Booking, error)
}

func (f *fakeBookingLookupRepository) FindNonCancelledBookings(ctx context.Context, sectionID string, date time.Time) ([]*model.Booking, error) {
	if f.findNonCancelledFunc != nil {
		return f.findNonCancelledFunc(ctx, sectionID, date)
	}
	return nil, nil
}

func testConfig() *config.Config {
	log := logger.New(logger.Config{
		Level:   "error",
		Format:  logger.FormatJSON,
		Output:  io.Discard,
		Service: "test",
	})
	return &config.Config{
		Log:                          log,
		ReadTimeout:                  5 * time.Second,
		WriteTimeout:                 5 * time.Second,
		DefaultSlotDurationMin:       60,
		DefaultMaxAdvanceBookingDays: 30,
	}
}

func newTestService(
	settings *fakeSlotSettingRepository,
	blocked *fakeBlockedSettingRepository,
	bookings *fakeBookingLookupRepository,
	now time.Time,
) *availabilityService {
	cfg := testConfig()
	return &availabilityService{
		settings:  settings,
		blocked:   blocked,
		bookings:  bookings,
		validator: validator.NewSettingValidator(cfg.Log),
		cfg:       cfg,
		now:       func() time.Time { return now },
	}
}

// Friday afternoon; the queried Monday is three days ahead.
var testNow = time.Date(2026, 8, 28, 15, 30, 0, 0, time.UTC)

func mondaySetting() *model.SlotSetting {
	return &model.SlotSetting{
		ID:                    "64f1a2b3c4d5e6f7a8b9c0e1",
		VenueID:               testVenueID,
		SectionID:             testSectionID,
		Name:                  "monday mornings",
		Days:                  []string{model.Monday},
		Timings:               []model.TimeRange{{StartTime: "09:00", EndTime: "11:00"}},
		SlotDurationMin:       60,
		PricePerHour:          200,
		MaxAdvanceBookingDays: 30,
		Active:                true,
		CreatedAt:             time.Date(2026, 7, 1, 0, 0, 0, 0, time.UTC),
	}
}

func TestGetAvailableSlots_MondayWithMaintenanceWindow(t *testing.T) {
	settings := &fakeSlotSettingRepository{
		findActiveSettingsFunc: func(ctx context.Context, sectionID, weekday string, date time.Time) ([]*model.SlotSetting, error) {
			if weekday != model.Monday {
				t.Errorf("weekday = %s, want MON", weekday)
			}
			return []*model.SlotSetting{mondaySetting()}, nil
		},
	}
	blocked := &fakeBlockedSettingRepository{
		findActiveBlockedRulesFunc: func(ctx context.Context, venueID, sectionID, weekday string, date time.Time) ([]*model.BlockedSetting, error) {
			if venueID != testVenueID {
				t.Errorf("venueID = %s, want the winning setting's venue", venueID)
			}
			return []*model.BlockedSetting{{
				VenueID:   testVenueID,
				SectionID: testSectionID,
				Timings:   []model.TimeRange{{StartTime: "10:00", EndTime: "10:30"}},
				Reason:    "Maintenance",
				Active:    true,
				CreatedAt: time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC),
			}}, nil
		},
	}
	svc := newTestService(settings, blocked, &fakeBookingLookupRepository{}, testNow)

	availability, err := svc.GetAvailableSlots(context.Background(), testSectionID, "2026-08-31")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// 09:00-10:00 survives; 10:00-11:00 overlaps the maintenance window.
	if len(availability.Slots) != 1 {
		t.Fatalf("expected 1 slot, got %d", len(availability.Slots))
	}
	slot := availability.Slots[0]
	if slot.StartTime != "09:00" || slot.EndTime != "10:00" {
		t.Errorf("slot window = %s-%s, want 09:00-10:00", slot.StartTime, slot.EndTime)
	}
	if slot.Price != 200 {
		t.Errorf("slot price = %v, want 200", slot.Price)
	}
	if slot.SlotID != testSectionID+"-2026-08-31-09:00" {
		t.Errorf("slot ID = %s", slot.SlotID)
	}
	// The list is not empty, so no blocked reason is surfaced.
	if availability.BlockedReason != "" {
		t.Errorf("blocked reason = %q, want empty", availability.BlockedReason)
	}
}

func TestGetAvailableSlots_Idempotent(t *testing.T) {
	settings := &fakeSlotSettingRepository{
		findActiveSettingsFunc: func(ctx context.Context, sectionID, weekday string, date time.Time) ([]*model.SlotSetting, error) {
			return []*model.SlotSetting{mondaySetting()}, nil
		},
	}
	svc := newTestService(settings, &fakeBlockedSettingRepository{}, &fakeBookingLookupRepository{}, testNow)

	first, err := svc.GetAvailableSlots(context.Background(), testSectionID, "2026-08-31")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	second, err := svc.GetAvailableSlots(context.Background(), testSectionID, "2026-08-31")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !reflect.DeepEqual(first, second) {
		t.Error("repeated queries over unchanged data must return identical results")
	}
}

func TestGetAvailableSlots_ExcludesBookedSlots(t *testing.T) {
	settings := &fakeSlotSettingRepository{
		findActiveSettingsFunc: func(ctx context.Context, sectionID, weekday string, date time.Time) ([]*model.SlotSetting, error) {
			return []*model.SlotSetting{mondaySetting()}, nil
		},
	}
	bookings := &fakeBookingLookupRepository{
		findNonCancelledFunc: func(ctx context.Context, sectionID string, date time.Time) ([]*model.Booking, error) {
			return []*model.Booking{{
				SectionID: testSectionID,
				SlotID:    testSectionID + "-2026-08-31-09:00",
				Status:    model.BookingConfirmed,
			}}, nil
		},
	}
	svc := newTestService(settings, &fakeBlockedSettingRepository{}, bookings, testNow)

	availability, err := svc.GetAvailableSlots(context.Background(), testSectionID, "2026-08-31")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(availability.Slots) != 1 {
		t.Fatalf("expected 1 free slot, got %d", len(availability.Slots))
	}
	if availability.Slots[0].StartTime != "10:00" {
		t.Errorf("remaining slot start = %s, want 10:00", availability.Slots[0].StartTime)
	}
}

func TestGetAvailableSlots_PastDate(t *testing.T) {
	svc := newTestService(&fakeSlotSettingRepository{}, &fakeBlockedSettingRepository{}, &fakeBookingLookupRepository{}, testNow)

	_, err := svc.GetAvailableSlots(context.Background(), testSectionID, "2026-08-27")
	var appErr *apperrors.AppError
	if !errors.As(err, &appErr) || appErr.Code != apperrors.CodePastDate {
		t.Fatalf("expected %s, got %v", apperrors.CodePastDate, err)
	}
}

func TestGetAvailableSlots_TodayIsNotPast(t *testing.T) {
	settings := &fakeSlotSettingRepository{
		findActiveSettingsFunc: func(ctx context.Context, sectionID, weekday string, date time.Time) ([]*model.SlotSetting, error) {
			setting := mondaySetting()
			setting.Days = nil // every day
			return []*model.SlotSetting{setting}, nil
		},
	}
	svc := newTestService(settings, &fakeBlockedSettingRepository{}, &fakeBookingLookupRepository{}, testNow)

	// now is 15:30 on the 28th; the 28th itself must still be queryable.
	if _, err := svc.GetAvailableSlots(context.Background(), testSectionID, "2026-08-28"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestGetAvailableSlots_NoAvailabilityConfigured(t *testing.T) {
	svc := newTestService(&fakeSlotSettingRepository{}, &fakeBlockedSettingRepository{}, &fakeBookingLookupRepository{}, testNow)

	_, err := svc.GetAvailableSlots(context.Background(), testSectionID, "2026-08-31")
	var appErr *apperrors.AppError
	if !errors.As(err, &appErr) || appErr.Code != apperrors.CodeNoAvailability {
		t.Fatalf("expected %s, got %v", apperrors.CodeNoAvailability, err)
	}
}

func TestGetAvailableSlots_AdvanceHorizon(t *testing.T) {
	setting := mondaySetting()
	setting.Days = nil
	setting.MaxAdvanceBookingDays = 5

	settings := &fakeSlotSettingRepository{
		findActiveSettingsFunc: func(ctx context.Context, sectionID, weekday string, date time.Time) ([]*model.SlotSetting, error) {
			return []*model.SlotSetting{setting}, nil
		},
	}
	svc := newTestService(settings, &fakeBlockedSettingRepository{}, &fakeBookingLookupRepository{}, testNow)

	// Day 5 from the 28th is 2026-09-02 and is still bookable.
	if _, err := svc.GetAvailableSlots(context.Background(), testSectionID, "2026-09-02"); err != nil {
		t.Fatalf("day 5 should be bookable, got %v", err)
	}

	// Day 6 is past the horizon; the earliest day it opens up is day 1.
	_, err := svc.GetAvailableSlots(context.Background(), testSectionID, "2026-09-03")
	var appErr *apperrors.AppError
	if !errors.As(err, &appErr) || appErr.Code != apperrors.CodeAdvanceTooFar {
		t.Fatalf("expected %s, got %v", apperrors.CodeAdvanceTooFar, err)
	}
	if appErr.Details["earliest_date"] != "2026-08-29" {
		t.Errorf("earliest_date = %v, want 2026-08-29", appErr.Details["earliest_date"])
	}
}

func TestGetAvailableSlots_AllBlockedReportsReason(t *testing.T) {
	settings := &fakeSlotSettingRepository{
		findActiveSettingsFunc: func(ctx context.Context, sectionID, weekday string, date time.Time) ([]*model.SlotSetting, error) {
			return []*model.SlotSetting{mondaySetting()}, nil
		},
	}
	blocked := &fakeBlockedSettingRepository{
		findActiveBlockedRulesFunc: func(ctx context.Context, venueID, sectionID, weekday string, date time.Time) ([]*model.BlockedSetting, error) {
			return []*model.BlockedSetting{{
				VenueID:   testVenueID,
				SectionID: testSectionID,
				Reason:    "closed for tournament",
				Active:    true,
				CreatedAt: time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC),
			}}, nil
		},
	}
	svc := newTestService(settings, blocked, &fakeBookingLookupRepository{}, testNow)

	availability, err := svc.GetAvailableSlots(context.Background(), testSectionID, "2026-08-31")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(availability.Slots) != 0 {
		t.Fatalf("expected no slots, got %d", len(availability.Slots))
	}
	if availability.BlockedReason != "closed for tournament" {
		t.Errorf("blocked reason = %q, want %q", availability.BlockedReason, "closed for tournament")
	}
}

func TestGetAvailableSlots_InvalidInput(t *testing.T) {
	svc := newTestService(&fakeSlotSettingRepository{}, &fakeBlockedSettingRepository{}, &fakeBookingLookupRepository{}, testNow)

	var appErr *apperrors.AppError

	_, err := svc.GetAvailableSlots(context.Background(), "", "2026-08-31")
	if !errors.As(err, &appErr) || appErr.Code != apperrors.CodeInvalidInput {
		t.Errorf("empty section ID: expected %s, got %v", apperrors.CodeInvalidInput, err)
	}

	_, err = svc.GetAvailableSlots(context.Background(), "not-an-object-id", "2026-08-31")
	if !errors.As(err, &appErr) || appErr.Code != apperrors.CodeInvalidInput {
		t.Errorf("malformed section ID: expected %s, got %v", apperrors.CodeInvalidInput, err)
	}

	_, err = svc.GetAvailableSlots(context.Background(), testSectionID, "31-08-2026")
	if !errors.As(err, &appErr) || appErr.Code != apperrors.CodeInvalidInput {
		t.Errorf("malformed date: expected %s, got %v", apperrors.CodeInvalidInput, err)
	}
}

func TestGetAvailableSlots_StoreFailureIsUnavailable(t *testing.T) {
	settings := &fakeSlotSettingRepository{
		findActiveSettingsFunc: func(ctx context.Context, sectionID, weekday string, date time.Time) ([]*model.SlotSetting, error) {
			return nil, errors.New("connection reset")
		},
	}
	svc := newTestService(settings, &fakeBlockedSettingRepository{}, &fakeBookingLookupRepository{}, testNow)

	_, err := svc.GetAvailableSlots(context.Background(), testSectionID, "2026-08-31")
	var appErr *apperrors.AppError
	if !errors.As(err, &appErr) || appErr.Code != apperrors.CodeUnavailable {
		t.Fatalf("expected %s, got %v", apperrors.CodeUnavailable, err)
	}
}
