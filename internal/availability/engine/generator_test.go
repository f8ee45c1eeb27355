package engine

import (
	"reflect"
	"testing"
	"time"

	"courtside/pkg/model"
)

const testSectionID = "64f1a2b3c4d5e6f7a8b9c0d1"

func hourlySetting(bands ...model.TimeRange) *model.SlotSetting {
	return &model.SlotSetting{
		SectionID:             testSectionID,
		Name:                  "weekday mornings",
		Timings:               bands,
		SlotDurationMin:       60,
		PricePerHour:          200,
		MaxAdvanceBookingDays: 30,
		Active:                true,
		CreatedAt:             time.Now(),
	}
}

func TestGenerate_WalksBandInDurationSteps(t *testing.T) {
	setting := hourlySetting(model.TimeRange{StartTime: "09:00", EndTime: "12:00"})
	date := time.Date(2026, 8, 31, 0, 0, 0, 0, time.UTC) // Monday

	gen := Generate(setting, date, NewBlackoutResolver(nil))

	if len(gen.Slots) != 3 {
		t.Fatalf("expected 3 slots, got %d", len(gen.Slots))
	}
	wantStarts := []string{"09:00", "10:00", "11:00"}
	for i, slot := range gen.Slots {
		if slot.StartTime != wantStarts[i] {
			t.Errorf("slot %d start = %s, want %s", i, slot.StartTime, wantStarts[i])
		}
		if slot.Price != 200 {
			t.Errorf("slot %d price = %v, want 200", i, slot.Price)
		}
		if slot.SlotID != model.SlotKey(testSectionID, date, slot.StartTime) {
			t.Errorf("slot %d has mismatched slot ID %s", i, slot.SlotID)
		}
	}
}

func TestGenerate_PartialSlotDoesNotFit(t *testing.T) {
	// 09:00-10:30 fits exactly one 60-minute slot; the trailing 30 minutes
	// are dropped.
	setting := hourlySetting(model.TimeRange{StartTime: "09:00", EndTime: "10:30"})
	date := time.Date(2026, 8, 31, 0, 0, 0, 0, time.UTC)

	gen := Generate(setting, date, NewBlackoutResolver(nil))

	if len(gen.Slots) != 1 {
		t.Fatalf("expected 1 slot, got %d", len(gen.Slots))
	}
	if gen.Slots[0].EndTime != "10:00" {
		t.Errorf("slot end = %s, want 10:00", gen.Slots[0].EndTime)
	}
}

func TestGenerate_MultipleBandsInDeclaredOrder(t *testing.T) {
	setting := hourlySetting(
		model.TimeRange{Name: "evening", StartTime: "18:00", EndTime: "20:00"},
		model.TimeRange{Name: "morning", StartTime: "08:00", EndTime: "10:00"},
	)
	date := time.Date(2026, 8, 31, 0, 0, 0, 0, time.UTC)

	gen := Generate(setting, date, NewBlackoutResolver(nil))

	wantStarts := []string{"18:00", "19:00", "08:00", "09:00"}
	if len(gen.Slots) != len(wantStarts) {
		t.Fatalf("expected %d slots, got %d", len(wantStarts), len(gen.Slots))
	}
	for i, slot := range gen.Slots {
		if slot.StartTime != wantStarts[i] {
			t.Errorf("slot %d start = %s, want %s (band order must be preserved)", i, slot.StartTime, wantStarts[i])
		}
	}
}

func TestGenerate_SkipsUnparseableBand(t *testing.T) {
	setting := hourlySetting(
		model.TimeRange{StartTime: "morning", EndTime: "10:00"},
		model.TimeRange{StartTime: "14:00", EndTime: "16:00"},
	)
	date := time.Date(2026, 8, 31, 0, 0, 0, 0, time.UTC)

	gen := Generate(setting, date, NewBlackoutResolver(nil))

	if len(gen.Slots) != 2 {
		t.Fatalf("expected 2 slots from the valid band, got %d", len(gen.Slots))
	}
	if gen.Slots[0].StartTime != "14:00" {
		t.Errorf("first slot start = %s, want 14:00", gen.Slots[0].StartTime)
	}
}

func TestGenerate_BlockedSlotsDroppedReasonRetained(t *testing.T) {
	setting := hourlySetting(model.TimeRange{StartTime: "09:00", EndTime: "11:00"})
	date := time.Date(2026, 8, 31, 0, 0, 0, 0, time.UTC)

	blackout := NewBlackoutResolver([]*model.BlockedSetting{
		blockedRule(time.Now(), "Maintenance", model.TimeRange{StartTime: "10:00", EndTime: "10:30"}),
	})

	gen := Generate(setting, date, blackout)

	// 09:00-10:00 survives (half-open boundary), 10:00-11:00 is blocked.
	if len(gen.Slots) != 1 {
		t.Fatalf("expected 1 slot, got %d", len(gen.Slots))
	}
	if gen.Slots[0].StartTime != "09:00" {
		t.Errorf("surviving slot start = %s, want 09:00", gen.Slots[0].StartTime)
	}
	if gen.BlockedReason != "Maintenance" {
		t.Errorf("blocked reason = %q, want %q", gen.BlockedReason, "Maintenance")
	}
}

func TestGenerate_Deterministic(t *testing.T) {
	setting := hourlySetting(
		model.TimeRange{StartTime: "09:00", EndTime: "12:00"},
		model.TimeRange{StartTime: "14:00", EndTime: "17:00"},
	)
	date := time.Date(2026, 8, 31, 0, 0, 0, 0, time.UTC)
	blackout := NewBlackoutResolver([]*model.BlockedSetting{
		blockedRule(time.Now(), "league training", model.TimeRange{StartTime: "15:00", EndTime: "16:00"}),
	})

	first := Generate(setting, date, blackout)
	second := Generate(setting, date, blackout)

	if !reflect.DeepEqual(first, second) {
		t.Error("generation must be reproducible for fixed inputs")
	}
}
