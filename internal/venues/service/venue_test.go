package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"testing"
	"time"

	venueerrors "courtside/internal/venues/errors"
	"courtside/internal/venues/validator"
	"courtside/pkg/config"
	mongotx "courtside/pkg/db/mongo"
	apperrors "courtside/pkg/errors"
	"courtside/pkg/logger"
	"courtside/pkg/model"
)

const (
	testVenueID   = "64f1a2b3c4d5e6f7a8b9c0d0"
	testSectionID = "64f1a2b3c4d5e6f7a8b9c0d1"
)

type fakeVenueRepository struct {
	createFunc      func(ctx context.Context, venue *model.Venue) error
	findByIDFunc    func(ctx context.Context, id string) (*model.Venue, error)
	findAllFunc     func(ctx context.Context, limit, offset int) ([]*model.Venue, error)
	countFunc       func(ctx context.Context) (int64, error)
	findByOwnerFunc func(ctx context.Context, ownerID string) ([]*model.Venue, error)
	updateFunc      func(ctx context.Context, id string, venue *model.Venue) error
}

func (f *fakeVenueRepository) Create(ctx context.Context, venue *model.Venue) error {
	if f.createFunc != nil {
		return f.createFunc(ctx, venue)
	}
	return nil
}

func (f *fakeVenueRepository) FindByID(ctx context.Context, id string) (*model.Venue, error) {
	if f.findByIDFunc != nil {
		return f.findByIDFunc(ctx, id)
	}
	return nil, fmt.Errorf("%w: %s", venueerrors.ErrVenueNotFound, id)
}

func (f *fakeVenueRepository) FindAll(ctx context.Context, limit, offset int) ([]*model.Venue, error) {
	if f.findAllFunc != nil {
		return f.findAllFunc(ctx, limit, offset)
	}
	return nil, nil
}

func (f *fakeVenueRepository) Count(ctx context.Context) (int64, error) {
	if f.countFunc != nil {
		return f.countFunc(ctx)
	}
	return 0, nil
}

func (f *fakeVenueRepository) FindByOwner(ctx context.Context, ownerID string) ([]*model.Venue, error) {
	if f.findByOwnerFunc != nil {
		return f.findByOwnerFunc(ctx, ownerID)
	}
	return nil, nil
}

func (f *fakeVenueRepository) Update(ctx context.Context, id string, venue *model.Venue) error {
	if f.updateFunc != nil {
		return f.updateFunc(ctx, id, venue)
	}
	return nil
}

func (f *fakeVenueRepository) ExecuteTransaction(ctx context.Context, fn mongotx.TransactionFunc) error {
	return fn(nil)
}

type fakeSectionRepository struct {
	createFunc            func(ctx context.Context, section *model.Section) error
	findByIDFunc          func(ctx context.Context, id string) (*model.Section, error)
	findByVenueFunc       func(ctx context.Context, venueID string, limit, offset int) ([]*model.Section, error)
	countByVenueFunc      func(ctx context.Context, venueID string) (int64, error)
	updateFunc            func(ctx context.Context, id string, section *model.Section) error
	deactivateByVenueFunc func(ctx context.Context, venueID string) (int64, error)
}

func (f *fakeSectionRepository) Create(ctx context.Context, section *model.Section) error {
	if f.createFunc != nil {
		return f.createFunc(ctx, section)
	}
	return nil
}

func (f *fakeSectionRepository) FindByID(ctx context.Context, id string) (*model.Section, error) {
	if f.findByIDFunc != nil {
		return f.findByIDFunc(ctx, id)
	}
	return nil, fmt.Errorf("%w: %s", venueerrors.ErrSectionNotFound, id)
}

func (f *fakeSectionRepository) FindByVenue(ctx context.Context, venueID string, limit, offset int) ([]*model.Section, error) {
	if f.findByVenueFunc != nil {
		return f.findByVenueFunc(ctx, venueID, limit, offset)
	}
	return nil, nil
}

func (f *fakeSectionRepository) CountByVenue(ctx context.Context, venueID string) (int64, error) {
	if f.countByVenueFunc != nil {
		return f.countByVenueFunc(ctx, venueID)
	}
	return 0, nil
}

func (f *fakeSectionRepository) Update(ctx context.Context, id string, section *model.Section) error {
	if f.updateFunc != nil {
		return f.updateFunc(ctx, id, section)
	}
	return nil
}

func (f *fakeSectionRepository) DeactivateByVenue(ctx context.Context, venueID string) (int64, error) {
	if f.deactivateByVenueFunc != nil {
		return f.deactivateByVenueFunc(ctx, venueID)
	}
	return 0, nil
}

func newTestService(venues *fakeVenueRepository, sections *fakeSectionRepository) VenueService {
	log := logger.New(logger.Config{
		Level:   "error",
		Format:  logger.FormatJSON,
		Output:  io.Discard,
		Service: "test",
	})
	cfg := &config.Config{
		Log:          log,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 5 * time.Second,
	}
	return NewVenueService(venues, sections, validator.NewVenueValidator(log), cfg)
}

func activeVenue() *model.Venue {
	return &model.Venue{
		ID:          testVenueID,
		OwnerID:     "owner-7",
		Name:        "riverside sports center",
		OpeningTime: "07:00",
		ClosingTime: "23:00",
		Sports:      []string{"tennis", "padel"},
		Active:      true,
		CreatedAt:   time.Date(2026, 1, 10, 0, 0, 0, 0, time.UTC),
	}
}

func TestDeactivate_CascadesToSections(t *testing.T) {
	venue := activeVenue()
	var venueDeactivated bool
	var cascadeVenueID string

	venues := &fakeVenueRepository{
		findByIDFunc: func(ctx context.Context, id string) (*model.Venue, error) {
			snapshot := *venue
			return &snapshot, nil
		},
		updateFunc: func(ctx context.Context, id string, v *model.Venue) error {
			venueDeactivated = !v.Active
			return nil
		},
	}
	sections := &fakeSectionRepository{
		deactivateByVenueFunc: func(ctx context.Context, venueID string) (int64, error) {
			cascadeVenueID = venueID
			return 3, nil
		},
	}
	svc := newTestService(venues, sections)

	if err := svc.Deactivate(context.Background(), testVenueID); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !venueDeactivated {
		t.Error("venue was not flipped inactive")
	}
	if cascadeVenueID != testVenueID {
		t.Errorf("cascade ran for venue %q, want %q", cascadeVenueID, testVenueID)
	}
}

func TestDeactivate_AlreadyInactive(t *testing.T) {
	venue := activeVenue()
	venue.Active = false
	venues := &fakeVenueRepository{
		findByIDFunc: func(ctx context.Context, id string) (*model.Venue, error) {
			return venue, nil
		},
	}
	svc := newTestService(venues, &fakeSectionRepository{})

	err := svc.Deactivate(context.Background(), testVenueID)
	var appErr *apperrors.AppError
	if !errors.As(err, &appErr) || appErr.Code != apperrors.CodeConflict {
		t.Fatalf("expected %s, got %v", apperrors.CodeConflict, err)
	}
}

func TestCreateSection_SportMustBeOffered(t *testing.T) {
	venues := &fakeVenueRepository{
		findByIDFunc: func(ctx context.Context, id string) (*model.Venue, error) {
			return activeVenue(), nil
		},
	}
	created := false
	sections := &fakeSectionRepository{
		createFunc: func(ctx context.Context, section *model.Section) error {
			created = true
			return nil
		},
	}
	svc := newTestService(venues, sections)

	section := &model.Section{
		VenueID:      testVenueID,
		Name:         "court 1",
		Sport:        "basketball",
		PricePerHour: 120,
		Capacity:     4,
	}
	err := svc.CreateSection(context.Background(), section)
	var appErr *apperrors.AppError
	if !errors.As(err, &appErr) || appErr.Code != apperrors.CodeValidation {
		t.Fatalf("expected %s, got %v", apperrors.CodeValidation, err)
	}
	if created {
		t.Error("section with an unoffered sport must not be created")
	}

	section.Sport = "tennis"
	if err := svc.CreateSection(context.Background(), section); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestCreateSection_InactiveVenue(t *testing.T) {
	venue := activeVenue()
	venue.Active = false
	venues := &fakeVenueRepository{
		findByIDFunc: func(ctx context.Context, id string) (*model.Venue, error) {
			return venue, nil
		},
	}
	svc := newTestService(venues, &fakeSectionRepository{})

	section := &model.Section{
		VenueID:      testVenueID,
		Name:         "court 1",
		Sport:        "tennis",
		PricePerHour: 120,
		Capacity:     4,
	}
	err := svc.CreateSection(context.Background(), section)
	var appErr *apperrors.AppError
	if !errors.As(err, &appErr) || appErr.Code != apperrors.CodeConflict {
		t.Fatalf("expected %s, got %v", apperrors.CodeConflict, err)
	}
}

func TestUpdate_DeactivationMustUseEndpoint(t *testing.T) {
	venues := &fakeVenueRepository{
		findByIDFunc: func(ctx context.Context, id string) (*model.Venue, error) {
			return activeVenue(), nil
		},
	}
	svc := newTestService(venues, &fakeSectionRepository{})

	inactive := false
	err := svc.Update(context.Background(), testVenueID, &model.VenueUpdate{Active: &inactive})
	var appErr *apperrors.AppError
	if !errors.As(err, &appErr) || appErr.Code != apperrors.CodeInvalidInput {
		t.Fatalf("expected %s, got %v", apperrors.CodeInvalidInput, err)
	}
}

func TestCreate_ClosingBeforeOpening(t *testing.T) {
	svc := newTestService(&fakeVenueRepository{}, &fakeSectionRepository{})

	venue := activeVenue()
	venue.ID = ""
	venue.OpeningTime = "22:00"
	venue.ClosingTime = "08:00"

	err := svc.Create(context.Background(), venue)
	var appErr *apperrors.AppError
	if !errors.As(err, &appErr) || appErr.Code != apperrors.CodeValidation {
		t.Fatalf("expected %s, got %v", apperrors.CodeValidation, err)
	}
}
